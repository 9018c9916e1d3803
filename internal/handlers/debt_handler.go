package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "cashplan/internal/errors"
	"cashplan/internal/pagination"
	"cashplan/internal/services"
)

// DebtHandler handles debt-related requests.
type DebtHandler struct {
	debtService services.DebtServicer
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtService services.DebtServicer) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// DebtRequest represents the request payload for creating or updating a debt
type DebtRequest struct {
	Description  string          `json:"description" binding:"required,max=200"`
	TotalAmount  decimal.Decimal `json:"total_amount" binding:"required"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	StartDate    string          `json:"start_date" binding:"required"`
	EndDate      *string         `json:"end_date"`
	CategoryID   *string         `json:"category_id" binding:"omitempty,uuid"`
}

// RecordPaymentRequest represents the request payload for recording a debt payment
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        *string         `json:"date"`
	Description string          `json:"description" binding:"max=200"`
}

func (r DebtRequest) toInput() (services.DebtInput, error) {
	in := services.DebtInput{
		Description:  r.Description,
		TotalAmount:  r.TotalAmount,
		InterestRate: r.InterestRate,
		CategoryID:   r.CategoryID,
	}

	start, err := parseFlexibleTime(r.StartDate)
	if err != nil {
		return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start_date format, use RFC3339 or YYYY-MM-DD")
	}
	in.StartDate = start

	if r.EndDate != nil && *r.EndDate != "" {
		end, endErr := parseFlexibleTime(*r.EndDate)
		if endErr != nil {
			return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid end_date format, use RFC3339 or YYYY-MM-DD")
		}
		in.EndDate = &end
	}

	return in, nil
}

// CreateDebt handles the creation of a new debt
// @Summary     Create a debt
// @Description Create a new debt. The remaining amount starts equal to the total amount.
// @Tags        debts
// @Accept      json
// @Produce     json
// @Param       request body DebtRequest true "Debt details"
// @Success     201 {object} models.Debt "Debt created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts [post]
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	var req DebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	debt, err := h.debtService.CreateDebt(in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"debt": debt})
}

// ListDebts handles the retrieval of all debts
// @Summary     List debts
// @Description Get a paginated list of debts
// @Tags        debts
// @Accept      json
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Debt] "Paginated debts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts [get]
func (h *DebtHandler) ListDebts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.debtService.ListDebts(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDebtByID handles the retrieval of a specific debt
// @Summary     Get debt by ID
// @Description Get a specific debt by ID, including its payments
// @Tags        debts
// @Accept      json
// @Produce     json
// @Param       id path string true "Debt ID"
// @Success     200 {object} models.Debt "Debt details"
// @Failure     400 {object} ErrorResponse "Invalid debt ID"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [get]
func (h *DebtHandler) GetDebtByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	debt, err := h.debtService.GetDebtByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// UpdateDebt handles updating a debt
// @Summary     Update a debt
// @Description Update a debt's fields. Changing the total amount shifts the remaining amount by the same difference, clamped at zero.
// @Tags        debts
// @Accept      json
// @Produce     json
// @Param       id      path string      true "Debt ID"
// @Param       request body DebtRequest true "Updated debt details"
// @Success     200 {object} models.Debt "Debt updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [put]
func (h *DebtHandler) UpdateDebt(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	debt, err := h.debtService.UpdateDebt(id, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// DeleteDebt handles deleting a debt
// @Summary     Delete a debt
// @Description Delete a debt and its payment links. Ledger transactions created by payments are kept.
// @Tags        debts
// @Accept      json
// @Produce     json
// @Param       id path string true "Debt ID"
// @Success     200 {object} MessageResponse "Debt deleted"
// @Failure     400 {object} ErrorResponse "Invalid debt ID"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [delete]
func (h *DebtHandler) DeleteDebt(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.debtService.DeleteDebt(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Debt deleted successfully"})
}

// RecordPayment handles recording a payment against a debt
// @Summary     Record a debt payment
// @Description Book an outgoing ledger transaction against a debt and decrement its remaining amount, clamped at zero
// @Tags        debts
// @Accept      json
// @Produce     json
// @Param       id      path string               true "Debt ID"
// @Param       request body RecordPaymentRequest true "Payment details"
// @Success     201 {object} models.DebtPayment "Payment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id}/payments [post]
func (h *DebtHandler) RecordPayment(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	paymentDate := time.Now()
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		paymentDate = parsed
	}

	payment, err := h.debtService.RecordPayment(id, req.Amount, paymentDate, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}
