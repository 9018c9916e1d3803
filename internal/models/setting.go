package models

// Setting is a single key/value row. The only key the projection core
// depends on is SettingInitialBalance, the zero-point for balance math.
type Setting struct {
	Key       string `gorm:"primaryKey" json:"key"`
	Value     string `gorm:"not null" json:"value"`
	UpdatedAt int64  `gorm:"autoUpdateTime" json:"updated_at"`
}

// SettingInitialBalance is the key holding the account's starting balance.
const SettingInitialBalance = "initial_balance"
