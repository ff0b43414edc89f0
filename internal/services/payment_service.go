package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

// paymentService handles payment-related business logic.
type paymentService struct {
	db *gorm.DB
}

// NewPaymentService creates a new PaymentServicer.
func NewPaymentService(db *gorm.DB) PaymentServicer {
	return &paymentService{db: db}
}

// AddPayment records a payment against an expense. The expense is marked
// paid in the same transaction once its payments cover the amount.
func (s *paymentService) AddPayment(expenseID string, amount decimal.Decimal, paymentDate time.Time, notes string) (*PaymentResult, error) {
	if err := engine.CheckAmount("amount", amount); err != nil {
		return nil, err
	}
	if paymentDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment date is required")
	}

	var result *PaymentResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var expense models.Expense
		if err := forUpdate(tx).Where("id = ?", expenseID).First(&expense).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrExpenseNotFound
			}
			return err
		}
		if expense.Status == models.ExpenseStatusCancelled {
			return apperrors.ErrPaymentOnCancelledExpense
		}

		paid, err := amountPaid(tx, expense.ID)
		if err != nil {
			return err
		}
		remaining := expense.Amount.Sub(paid)
		if !remaining.IsPositive() {
			return apperrors.ErrExpenseAlreadySettled
		}
		if amount.GreaterThan(remaining) {
			return apperrors.ErrPaymentExceedsRemaining
		}

		payment := &models.Payment{
			ExpenseID:   expense.ID,
			Amount:      amount,
			PaymentDate: engine.DateOnly(paymentDate),
			Notes:       notes,
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		remaining = remaining.Sub(amount)
		status := settledStatus(expense.Status, expense.Amount, paid.Add(amount))
		if status != expense.Status {
			if err := tx.Model(&expense).Update("status", status).Error; err != nil {
				return err
			}
		}

		result = &PaymentResult{Payment: payment, Status: status, Remaining: remaining}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return result, nil
}

// ListPayments returns the payments of an expense in chronological order.
func (s *paymentService) ListPayments(expenseID string) ([]models.Payment, error) {
	if _, err := findExpense(s.db, expenseID); err != nil {
		return nil, err
	}

	var payments []models.Payment
	err := s.db.Where("expense_id = ?", expenseID).
		Order("payment_date").Order("created_at").
		Find(&payments).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return payments, nil
}

// DeletePayment removes a payment. A paid expense goes back to pending when
// a balance reappears.
func (s *paymentService) DeletePayment(paymentID string) error {
	var payment models.Payment
	if err := s.db.Where("id = ?", paymentID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPaymentNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}

		expense, err := findExpense(tx, payment.ExpenseID)
		if err != nil {
			return err
		}
		if expense.Status != models.ExpenseStatusPaid {
			return nil
		}
		paid, err := amountPaid(tx, expense.ID)
		if err != nil {
			return err
		}
		if paid.LessThan(expense.Amount) {
			return tx.Model(expense).Update("status", models.ExpenseStatusPending).Error
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
