package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "cashplan/internal/errors"
	"cashplan/internal/models"
)

// settingsService handles scalar settings, most importantly the initial
// balance that anchors all balance computation.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// InitialBalance returns the configured starting balance. A missing row
// means the balance has never been set and counts as zero.
func (s *settingsService) InitialBalance() (decimal.Decimal, error) {
	var setting models.Setting
	if err := s.db.Where("key = ?", models.SettingInitialBalance).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	balance, err := decimal.NewFromString(setting.Value)
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return balance, nil
}

// SetInitialBalance stores the starting balance, creating the row on first use.
func (s *settingsService) SetInitialBalance(balance decimal.Decimal) error {
	setting := models.Setting{
		Key:   models.SettingInitialBalance,
		Value: balance.StringFixed(2),
	}
	if err := s.db.Save(&setting).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
