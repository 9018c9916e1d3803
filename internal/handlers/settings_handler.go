package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "cashplan/internal/errors"
	"cashplan/internal/services"
)

// SettingsHandler handles settings requests.
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// InitialBalanceRequest represents the request payload for setting the initial balance
type InitialBalanceRequest struct {
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// InitialBalanceResponse represents the initial balance in a response
type InitialBalanceResponse struct {
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// GetInitialBalance handles the retrieval of the initial balance
// @Summary     Get initial balance
// @Description Get the configured initial balance the projection anchors on. Defaults to zero when never set.
// @Tags        settings
// @Accept      json
// @Produce     json
// @Success     200 {object} InitialBalanceResponse "Initial balance"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/initial-balance [get]
func (h *SettingsHandler) GetInitialBalance(c *gin.Context) {
	balance, err := h.settingsService.InitialBalance()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, InitialBalanceResponse{InitialBalance: balance})
}

// SetInitialBalance handles updating the initial balance
// @Summary     Set initial balance
// @Description Set the initial balance the projection anchors on. Negative values are allowed.
// @Tags        settings
// @Accept      json
// @Produce     json
// @Param       request body InitialBalanceRequest true "Initial balance"
// @Success     200 {object} InitialBalanceResponse "Initial balance updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/initial-balance [put]
func (h *SettingsHandler) SetInitialBalance(c *gin.Context) {
	var req InitialBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.settingsService.SetInitialBalance(req.InitialBalance); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, InitialBalanceResponse{InitialBalance: req.InitialBalance})
}
