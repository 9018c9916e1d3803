package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "cashplan/internal/errors"
	"cashplan/internal/models"
	"cashplan/internal/pagination"
	"cashplan/internal/services"
)

// TransactionHandler handles cash-flow ledger requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// SplitRequest represents one child line item of a split transaction
type SplitRequest struct {
	Description string          `json:"description" binding:"required,max=200"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        *string         `json:"date"`
	CategoryID  *string         `json:"category_id" binding:"omitempty,uuid"`
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Direction      models.Direction      `json:"direction" binding:"required,direction"`
	Description    string                `json:"description" binding:"required,max=200"`
	Amount         decimal.Decimal       `json:"amount"`
	Date           string                `json:"date" binding:"required"`
	CategoryID     *string               `json:"category_id" binding:"omitempty,uuid"`
	IsFixed        bool                  `json:"is_fixed"`
	RepeatInterval models.RepeatInterval `json:"repeat_interval" binding:"omitempty,repeat_interval"`
	RepeatUntil    *string               `json:"repeat_until"`
	Splits         []SplitRequest        `json:"splits" binding:"omitempty,dive"`
}

// UpdateTransactionRequest represents the request payload for updating a transaction
type UpdateTransactionRequest struct {
	Direction      models.Direction      `json:"direction" binding:"required,direction"`
	Description    string                `json:"description" binding:"required,max=200"`
	Amount         decimal.Decimal       `json:"amount"`
	Date           string                `json:"date" binding:"required"`
	CategoryID     *string               `json:"category_id" binding:"omitempty,uuid"`
	IsFixed        bool                  `json:"is_fixed"`
	RepeatInterval models.RepeatInterval `json:"repeat_interval" binding:"omitempty,repeat_interval"`
	RepeatUntil    *string               `json:"repeat_until"`
}

func (r SplitRequest) toInput(fallbackDate time.Time) (services.SplitInput, error) {
	in := services.SplitInput{
		Description: r.Description,
		Amount:      r.Amount,
		Date:        fallbackDate,
		CategoryID:  r.CategoryID,
	}
	if r.Date != nil && *r.Date != "" {
		parsed, err := parseFlexibleTime(*r.Date)
		if err != nil {
			return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid split date format, use RFC3339 or YYYY-MM-DD")
		}
		in.Date = parsed
	}
	return in, nil
}

func buildTransactionInput(direction models.Direction, description string, amount decimal.Decimal,
	date string, categoryID *string, isFixed bool, interval models.RepeatInterval,
	repeatUntil *string, splits []SplitRequest) (services.TransactionInput, error) {

	in := services.TransactionInput{
		Direction:      direction,
		Description:    description,
		Amount:         amount,
		CategoryID:     categoryID,
		IsFixed:        isFixed,
		RepeatInterval: interval,
	}
	if in.RepeatInterval == "" {
		in.RepeatInterval = models.RepeatNone
	}

	parsed, err := parseFlexibleTime(date)
	if err != nil {
		return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format, use RFC3339 or YYYY-MM-DD")
	}
	in.Date = parsed

	if repeatUntil != nil && *repeatUntil != "" {
		until, untilErr := parseFlexibleTime(*repeatUntil)
		if untilErr != nil {
			return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid repeat_until format, use RFC3339 or YYYY-MM-DD")
		}
		in.RepeatUntil = &until
	}

	for _, s := range splits {
		splitIn, splitErr := s.toInput(in.Date)
		if splitErr != nil {
			return in, splitErr
		}
		in.Splits = append(in.Splits, splitIn)
	}

	return in, nil
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Create a ledger transaction. Providing splits creates a split parent whose amount is the sum of its children; providing a repeat_interval makes it recurring.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in, err := buildTransactionInput(req.Direction, req.Description, req.Amount, req.Date,
		req.CategoryID, req.IsFixed, req.RepeatInterval, req.RepeatUntil, req.Splits)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions handles the retrieval of root transactions
// @Summary     List transactions
// @Description Get a paginated list of root transactions (split children ride along under their parent) with optional filters
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Param       direction   query string false "Filter by direction (incoming, outgoing)"
// @Param       from_date   query string false "Filter by start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date     query string false "Filter by end date (RFC3339 or YYYY-MM-DD)"
// @Param       category_id query string false "Filter by category ID"
// @Param       recurring   query bool   false "Filter by recurrence (true or false)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("direction"); v != "" {
		direction := models.Direction(v)
		switch direction {
		case models.DirectionIncoming, models.DirectionOutgoing:
			filter.Direction = &direction
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid direction, must be incoming or outgoing")
		}
	}

	if v := c.Query("from_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.FromDate = &t
	}

	if v := c.Query("to_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.ToDate = &t
	}

	if v := c.Query("category_id"); v != "" {
		id := v
		filter.CategoryID = &id
	}

	if v := c.Query("recurring"); v != "" {
		switch v {
		case "true":
			recurring := true
			filter.Recurring = &recurring
		case "false":
			recurring := false
			filter.Recurring = &recurring
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid recurring, must be true or false")
		}
	}

	return filter, nil
}

// GetTransactionByID handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Description Get a specific transaction by ID, including split children and category
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles updating a transaction
// @Summary     Update a transaction
// @Description Update a transaction's fields. Split parent amounts are derived from children and cannot be set directly; direction changes propagate to children.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Updated transaction details"
// @Success     200 {object} models.Transaction "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in, err := buildTransactionInput(req.Direction, req.Description, req.Amount, req.Date,
		req.CategoryID, req.IsFixed, req.RepeatInterval, req.RepeatUntil, nil)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(id, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete a transaction
// @Description Delete a transaction. Deleting a split parent cascades to its children; deleting the last child reverts the parent to a plain transaction.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// AddSplit handles adding a split child to a transaction
// @Summary     Add a split
// @Description Add a child line item to a transaction, converting it into a split parent if it was not one already. The parent amount becomes the sum of its children.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string       true "Parent transaction ID"
// @Param       request body SplitRequest true "Split details"
// @Success     201 {object} models.Transaction "Updated parent with children"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Parent transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id}/splits [post]
func (h *TransactionHandler) AddSplit(c *gin.Context) {
	parentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in, err := req.toInput(time.Time{})
	if err != nil {
		respondWithError(c, err)
		return
	}

	parent, err := h.transactionService.AddSplit(parentID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": parent})
}

// UpdateSplit handles updating a split child
// @Summary     Update a split
// @Description Update a split child's fields. The parent amount is recomputed from its children.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string       true "Split child ID"
// @Param       request body SplitRequest true "Updated split details"
// @Success     200 {object} models.Transaction "Updated parent with children"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Split not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/splits/{id} [put]
func (h *TransactionHandler) UpdateSplit(c *gin.Context) {
	childID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in, err := req.toInput(time.Time{})
	if err != nil {
		respondWithError(c, err)
		return
	}

	parent, err := h.transactionService.UpdateSplit(childID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": parent})
}
