package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "cashplan/internal/errors"
	"cashplan/internal/services"
)

// --- mock settings service ---

type mockSettingsService struct {
	initialBalanceFn    func() (decimal.Decimal, error)
	setInitialBalanceFn func(balance decimal.Decimal) error
}

func (m *mockSettingsService) InitialBalance() (decimal.Decimal, error) {
	if m.initialBalanceFn != nil {
		return m.initialBalanceFn()
	}
	return decimal.Zero, nil
}

func (m *mockSettingsService) SetInitialBalance(balance decimal.Decimal) error {
	if m.setInitialBalanceFn != nil {
		return m.setInitialBalanceFn(balance)
	}
	return nil
}

var _ services.SettingsServicer = (*mockSettingsService)(nil)

func setupSettingsRouter(handler *SettingsHandler) *gin.Engine {
	r := gin.New()
	r.GET("/settings/initial-balance", handler.GetInitialBalance)
	r.PUT("/settings/initial-balance", handler.SetInitialBalance)
	return r
}

// --- tests ---

func TestSettingsHandler_GetInitialBalance(t *testing.T) {
	t.Run("returns 200 with stored balance", func(t *testing.T) {
		settingsSvc := &mockSettingsService{
			initialBalanceFn: func() (decimal.Decimal, error) {
				return decimal.RequireFromString("1234.56"), nil
			},
		}
		handler := NewSettingsHandler(settingsSvc)
		r := setupSettingsRouter(handler)

		rec := doRequest(r, "GET", "/settings/initial-balance", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["initial_balance"] != "1234.56" {
			t.Errorf("expected initial_balance 1234.56, got %v", result["initial_balance"])
		}
	})

	t.Run("returns 500 on store failure", func(t *testing.T) {
		settingsSvc := &mockSettingsService{
			initialBalanceFn: func() (decimal.Decimal, error) {
				return decimal.Zero, apperrors.ErrInternalServer
			},
		}
		handler := NewSettingsHandler(settingsSvc)
		r := setupSettingsRouter(handler)

		rec := doRequest(r, "GET", "/settings/initial-balance", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestSettingsHandler_SetInitialBalance(t *testing.T) {
	t.Run("returns 200 and persists the balance", func(t *testing.T) {
		var got decimal.Decimal
		settingsSvc := &mockSettingsService{
			setInitialBalanceFn: func(balance decimal.Decimal) error {
				got = balance
				return nil
			},
		}
		handler := NewSettingsHandler(settingsSvc)
		r := setupSettingsRouter(handler)

		rec := doRequest(r, "PUT", "/settings/initial-balance", `{"initial_balance":2500.75}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.Equal(decimal.RequireFromString("2500.75")) {
			t.Errorf("expected persisted balance 2500.75, got %s", got)
		}
	})

	t.Run("allows a negative balance", func(t *testing.T) {
		var got decimal.Decimal
		settingsSvc := &mockSettingsService{
			setInitialBalanceFn: func(balance decimal.Decimal) error {
				got = balance
				return nil
			},
		}
		handler := NewSettingsHandler(settingsSvc)
		r := setupSettingsRouter(handler)

		rec := doRequest(r, "PUT", "/settings/initial-balance", `{"initial_balance":-300}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !got.Equal(decimal.NewFromInt(-300)) {
			t.Errorf("expected persisted balance -300, got %s", got)
		}
	})

	t.Run("returns 400 on malformed body", func(t *testing.T) {
		handler := NewSettingsHandler(&mockSettingsService{})
		r := setupSettingsRouter(handler)

		rec := doRequest(r, "PUT", "/settings/initial-balance", `{"initial_balance":"lots"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
