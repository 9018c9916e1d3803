package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "cashplan/internal/errors"
	"cashplan/internal/models"
	"cashplan/internal/pagination"
)

// transactionService handles cash-flow ledger business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction creates a root transaction, together with its split
// children when splits are supplied. A split parent's amount is always the
// sum of its children, whatever the caller sent.
func (s *transactionService) CreateTransaction(in TransactionInput) (*models.Transaction, error) {
	if in.Direction != models.DirectionIncoming && in.Direction != models.DirectionOutgoing {
		return nil, apperrors.ErrInvalidDirection
	}
	if len(in.Splits) == 0 && !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	for _, split := range in.Splits {
		if !split.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "split amounts must be greater than zero")
		}
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	interval := in.RepeatInterval
	if interval == "" {
		interval = models.RepeatNone
	}

	transaction := &models.Transaction{
		Direction:      in.Direction,
		Description:    in.Description,
		Amount:         in.Amount,
		Date:           in.Date,
		CategoryID:     in.CategoryID,
		IsFixed:        in.IsFixed,
		RepeatInterval: interval,
		RepeatUntil:    in.RepeatUntil,
	}
	if len(in.Splits) > 0 {
		transaction.IsSplit = true
		transaction.Amount = sumSplits(in.Splits)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, split := range in.Splits {
			child := childFromInput(transaction, split)
			if err := tx.Create(child).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			transaction.Children = append(transaction.Children, *child)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// GetTransactionByID retrieves a transaction with its split children.
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Children").Preload("Category").Where("id = ?", id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// ListTransactions retrieves a paginated, filtered list of root transactions
// with their split children preloaded.
func (s *transactionService) ListTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("parent_id IS NULL")
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Children").
		Preload("Category").
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Direction != nil {
		q = q.Where("direction = ?", *f.Direction)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Recurring != nil {
		if *f.Recurring {
			q = q.Where("is_fixed = ? AND repeat_interval <> ?", true, models.RepeatNone)
		} else {
			q = q.Where("is_fixed = ? OR repeat_interval = ?", false, models.RepeatNone)
		}
	}
	return q
}

// UpdateTransaction updates a transaction. Roots may change any field;
// children may only change their line-item fields, and the parent amount is
// recomputed afterwards. A split parent's amount never changes directly.
func (s *transactionService) UpdateTransaction(id string, in TransactionInput) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	if !transaction.IsRoot() {
		if in.IsFixed || (in.RepeatInterval != "" && in.RepeatInterval != models.RepeatNone) {
			return nil, apperrors.ErrChildCannotRecur
		}
		if len(in.Splits) > 0 {
			return nil, apperrors.ErrChildCannotSplit
		}
		return s.UpdateSplit(id, SplitInput{
			Description: in.Description,
			Amount:      in.Amount,
			Date:        in.Date,
			CategoryID:  in.CategoryID,
		})
	}

	if !transaction.IsSplit && !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if in.Direction != "" {
		if in.Direction != models.DirectionIncoming && in.Direction != models.DirectionOutgoing {
			return nil, apperrors.ErrInvalidDirection
		}
		transaction.Direction = in.Direction
	}

	transaction.Description = in.Description
	if !transaction.IsSplit {
		transaction.Amount = in.Amount
	}
	if !in.Date.IsZero() {
		transaction.Date = in.Date
	}
	transaction.CategoryID = in.CategoryID
	transaction.IsFixed = in.IsFixed
	if in.RepeatInterval != "" {
		transaction.RepeatInterval = in.RepeatInterval
	}
	transaction.RepeatUntil = in.RepeatUntil

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if transaction.IsSplit {
			// Direction changes propagate to children so a split group
			// always flows one way.
			if err := tx.Model(&models.Transaction{}).
				Where("parent_id = ?", transaction.ID).
				Update("direction", transaction.Direction).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetTransactionByID(id)
}

// DeleteTransaction deletes a transaction. Deleting a root cascades to its
// split children; deleting a child recomputes the parent's amount and clears
// its split flag when no children remain.
func (s *transactionService) DeleteTransaction(id string) error {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if transaction.IsRoot() {
			if err := tx.Where("parent_id = ?", transaction.ID).Delete(&models.Transaction{}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if err := tx.Delete(transaction).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			return nil
		}

		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.recomputeParent(tx, *transaction.ParentID)
	})
}

// AddSplit adds a child line item to a root transaction, turning it into a
// split parent if it was not one already.
func (s *transactionService) AddSplit(parentID string, in SplitInput) (*models.Transaction, error) {
	parent, err := s.GetTransactionByID(parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			return nil, apperrors.ErrSplitParentNotFound
		}
		return nil, err
	}
	if !parent.IsRoot() {
		return nil, apperrors.ErrChildCannotSplit
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "split amount must be greater than zero")
	}
	if in.Date.IsZero() {
		in.Date = parent.Date
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		child := childFromInput(parent, in)
		if err := tx.Create(child).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.recomputeParent(tx, parent.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.GetTransactionByID(parentID)
}

// UpdateSplit updates a child line item and recomputes the parent's amount.
// Returns the parent with its refreshed children.
func (s *transactionService) UpdateSplit(childID string, in SplitInput) (*models.Transaction, error) {
	child, err := s.GetTransactionByID(childID)
	if err != nil {
		return nil, err
	}
	if child.IsRoot() {
		return nil, apperrors.ErrNotASplitChild
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "split amount must be greater than zero")
	}

	child.Description = in.Description
	child.Amount = in.Amount
	if !in.Date.IsZero() {
		child.Date = in.Date
	}
	child.CategoryID = in.CategoryID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(child).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.recomputeParent(tx, *child.ParentID)
	})
	if err != nil {
		return nil, err
	}
	return s.GetTransactionByID(*child.ParentID)
}

// FetchAllCashFlowRules returns every transaction row, roots and children,
// in anchor-date order. This is the snapshot the projection core runs on.
func (s *transactionService) FetchAllCashFlowRules() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Order("date ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// recomputeParent re-derives a split parent's amount from its remaining
// children (recompute-on-write; the children stay authoritative on read).
func (s *transactionService) recomputeParent(tx *gorm.DB, parentID string) error {
	var children []models.Transaction
	if err := tx.Where("parent_id = ?", parentID).Find(&children).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{}
	if len(children) == 0 {
		// The last child is gone; the parent reverts to a plain transaction
		// and keeps the last computed amount.
		updates["is_split"] = false
	} else {
		sum := decimal.Zero
		for _, c := range children {
			sum = sum.Add(c.Amount)
		}
		updates["is_split"] = true
		updates["amount"] = sum
	}

	if err := tx.Model(&models.Transaction{}).Where("id = ?", parentID).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func childFromInput(parent *models.Transaction, in SplitInput) *models.Transaction {
	parentID := parent.ID
	date := in.Date
	if date.IsZero() {
		date = parent.Date
	}
	return &models.Transaction{
		Direction:      parent.Direction,
		Description:    in.Description,
		Amount:         in.Amount,
		Date:           date,
		CategoryID:     in.CategoryID,
		RepeatInterval: models.RepeatNone,
		ParentID:       &parentID,
	}
}

func sumSplits(splits []SplitInput) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.Amount)
	}
	return sum
}
