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

// debtService handles debts and their payments.
type debtService struct {
	db *gorm.DB
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB) DebtServicer {
	return &debtService{db: db}
}

// CreateDebt creates a debt with its remaining amount equal to the total.
func (s *debtService) CreateDebt(in DebtInput) (*models.Debt, error) {
	if !in.TotalAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must be greater than zero")
	}
	if in.InterestRate.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "interest rate cannot be negative")
	}
	if in.StartDate.IsZero() {
		in.StartDate = time.Now()
	}

	debt := &models.Debt{
		Description:     in.Description,
		TotalAmount:     in.TotalAmount,
		RemainingAmount: in.TotalAmount,
		InterestRate:    in.InterestRate,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		CategoryID:      in.CategoryID,
	}
	if err := s.db.Create(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debt, nil
}

// GetDebtByID retrieves a debt with its payments.
func (s *debtService) GetDebtByID(id string) (*models.Debt, error) {
	var debt models.Debt
	if err := s.db.Preload("Payments").Preload("Category").Where("id = ?", id).First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &debt, nil
}

// ListDebts retrieves a paginated list of debts.
func (s *debtService) ListDebts(page pagination.PageRequest) (*pagination.PageResponse[models.Debt], error) {
	page.Defaults()

	base := s.db.Model(&models.Debt{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var debts []models.Debt
	if err := base.Scopes(pagination.Paginate(page)).
		Order("start_date DESC").
		Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(debts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateDebt updates a debt's descriptive fields. The remaining amount is
// only ever mutated through RecordPayment; raising the total raises the
// remaining amount by the same difference, and the result stays clamped to
// [0, total].
func (s *debtService) UpdateDebt(id string, in DebtInput) (*models.Debt, error) {
	debt, err := s.GetDebtByID(id)
	if err != nil {
		return nil, err
	}
	if !in.TotalAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must be greater than zero")
	}

	diff := in.TotalAmount.Sub(debt.TotalAmount)
	debt.Description = in.Description
	debt.TotalAmount = in.TotalAmount
	debt.RemainingAmount = clampDebtRemaining(debt.RemainingAmount.Add(diff), in.TotalAmount)
	debt.InterestRate = in.InterestRate
	if !in.StartDate.IsZero() {
		debt.StartDate = in.StartDate
	}
	debt.EndDate = in.EndDate
	debt.CategoryID = in.CategoryID

	if err := s.db.Save(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debt, nil
}

// DeleteDebt deletes a debt and its payment links. The outgoing transactions
// created by past payments stay in the ledger; they really happened.
func (s *debtService) DeleteDebt(id string) error {
	debt, err := s.GetDebtByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("debt_id = ?", debt.ID).Delete(&models.DebtPayment{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(debt).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// RecordPayment books an outgoing ledger transaction against a debt and
// decrements the remaining amount, clamped at zero. Overpayment is not an
// error; the ledger records what was paid while the debt bottoms out.
func (s *debtService) RecordPayment(debtID string, amount decimal.Decimal, date time.Time, description string) (*models.DebtPayment, error) {
	debt, err := s.GetDebtByID(debtID)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment amount must be greater than zero")
	}
	if date.IsZero() {
		date = time.Now()
	}
	if description == "" {
		description = "Payment: " + debt.Description
	}

	var payment *models.DebtPayment
	err = s.db.Transaction(func(tx *gorm.DB) error {
		transaction := &models.Transaction{
			Direction:      models.DirectionOutgoing,
			Description:    description,
			Amount:         amount,
			Date:           date,
			CategoryID:     debt.CategoryID,
			RepeatInterval: models.RepeatNone,
		}
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		payment = &models.DebtPayment{
			DebtID:        debt.ID,
			TransactionID: transaction.ID,
			Amount:        amount,
			Date:          date,
		}
		if err := tx.Create(payment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		debt.RemainingAmount = clampDebtRemaining(debt.RemainingAmount.Sub(amount), debt.TotalAmount)
		if err := tx.Save(debt).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// TotalRemainingDebt sums the remaining amounts across all debts.
func (s *debtService) TotalRemainingDebt() (decimal.Decimal, error) {
	var total decimal.NullDecimal
	row := s.db.Model(&models.Debt{}).Select("SUM(remaining_amount)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func clampDebtRemaining(remaining, total decimal.Decimal) decimal.Decimal {
	if remaining.IsNegative() {
		return decimal.Zero
	}
	if remaining.GreaterThan(total) {
		return total
	}
	return remaining
}
