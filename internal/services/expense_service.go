package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/logger"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

// NoOccurrencesWarning is returned when a recurring submission yields no expense.
const NoOccurrencesWarning = "no recurring expenses were created"

// expenseBatchSize bounds the rows per INSERT of a recurring series.
const expenseBatchSize = 100

// expenseService handles expense-related business logic.
type expenseService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db, now: time.Now}
}

// CreateExpense records a single expense or expands a recurring one into its
// occurrences. All rows of a series are written in one transaction.
func (s *expenseService) CreateExpense(budgetID string, req engine.ExpenseRequest) (*ExpenseCreation, error) {
	budget, err := findBudget(s.db, budgetID)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := checkCategoryExists(s.db, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	if !req.Date.IsZero() && !engine.InBudget(*budget, req.Date) {
		return nil, errOutsideBudget(*budget)
	}

	expenses, err := engine.ExpandRequest(budget.ID, req, budget.EndDate)
	if err != nil {
		return nil, err
	}

	if len(expenses) == 0 {
		logger.Get().Warnw("recurring expense produced no occurrence",
			"budget_id", budget.ID,
			"start", req.Date.Format("2006-01-02"),
			"frequency", req.Frequency,
		)
		return &ExpenseCreation{Expenses: []models.Expense{}, Warning: NoOccurrencesWarning}, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&expenses, expenseBatchSize).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &ExpenseCreation{Expenses: expenses, Created: len(expenses)}, nil
}

// ListExpenses returns the expenses of a budget matching the filter. A month
// window without a month starts on the current month.
func (s *expenseService) ListExpenses(budgetID string, filter engine.ExpenseFilter) (*ExpenseList, error) {
	budget, err := findBudget(s.db, budgetID)
	if err != nil {
		return nil, err
	}

	if filter.Window.Kind == engine.WindowMonth {
		if filter.Window.Month.IsZero() {
			filter.Window = engine.CurrentMonthWindow(*budget, s.now())
		} else if filter.Window, err = engine.MonthWindow(*budget, filter.Window.Month.Year(), filter.Window.Month.Month()); err != nil {
			return nil, err
		}
	}

	var expenses []models.Expense
	err = s.db.Preload("Category").
		Where("budget_id = ?", budget.ID).
		Order("expense_date DESC").Order("created_at DESC").Order("id").
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	filtered := engine.FilterExpenses(*budget, expenses, filter)
	from, to := filter.Window.Bounds(*budget)

	return &ExpenseList{
		Expenses: filtered,
		Total:    engine.TotalSpent(filtered),
		From:     from,
		To:       to,
		HasPrev:  filter.Window.HasPrev(*budget),
		HasNext:  filter.Window.HasNext(*budget),
	}, nil
}

// GetExpenseByID returns an expense with its payments and balance.
func (s *expenseService) GetExpenseByID(expenseID string) (*ExpenseDetail, error) {
	var expense models.Expense
	err := s.db.Preload("Category").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date").Order("created_at")
		}).
		Where("id = ?", expenseID).First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	paid := sumPayments(expense.Payments)
	return &ExpenseDetail{
		Expense:    expense,
		AmountPaid: paid,
		Remaining:  decimal.Max(expense.Amount.Sub(paid), decimal.Zero),
	}, nil
}

// UpdateExpense updates the editable fields of an expense. The status is
// realigned with the payments when the amount changes.
func (s *expenseService) UpdateExpense(expenseID string, update ExpenseUpdate) (*models.Expense, error) {
	expense, err := findExpense(s.db, expenseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Description != nil {
		desc := strings.TrimSpace(*update.Description)
		if desc == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
		}
		if engine.IsReservedDescription(desc) && desc != expense.Description {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is reserved for savings transfers")
		}
		updates["description"] = desc
	}
	if update.ClearCategory {
		updates["category_id"] = nil
	} else if update.CategoryID != nil {
		if err := checkCategoryExists(s.db, *update.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *update.CategoryID
	}
	if update.ExpenseDate != nil {
		budget, err := findBudget(s.db, expense.BudgetID)
		if err != nil {
			return nil, err
		}
		if !engine.InBudget(*budget, *update.ExpenseDate) {
			return nil, errOutsideBudget(*budget)
		}
		updates["expense_date"] = engine.DateOnly(*update.ExpenseDate)
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}

	if update.Amount != nil {
		if err := engine.CheckAmount("amount", *update.Amount); err != nil {
			return nil, err
		}
		paid, err := amountPaid(s.db, expense.ID)
		if err != nil {
			return nil, err
		}
		if update.Amount.LessThan(paid) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be lower than the payments already recorded")
		}
		updates["amount"] = *update.Amount
		if status := settledStatus(expense.Status, *update.Amount, paid); status != expense.Status {
			updates["status"] = status
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return findExpense(s.db, expense.ID)
}

// UpdateExpenseStatus changes the status of an expense. Leaving the paid
// status requires override.
func (s *expenseService) UpdateExpenseStatus(expenseID string, status models.ExpenseStatus, override bool) (*models.Expense, error) {
	if !engine.ValidStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	expense, err := findExpense(s.db, expenseID)
	if err != nil {
		return nil, err
	}
	if err := engine.CheckStatusTransition(expense.Status, status, override); err != nil {
		return nil, err
	}
	if expense.Status == status {
		return expense, nil
	}

	if err := s.db.Model(expense).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense removes an expense and its payments.
func (s *expenseService) DeleteExpense(expenseID string) error {
	expense, err := findExpense(s.db, expenseID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", expense.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(expense).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// errOutsideBudget reports an expense date outside the budget period.
func errOutsideBudget(budget models.Budget) *apperrors.AppError {
	return apperrors.WithMessage(apperrors.ErrInvalidDateRange,
		fmt.Sprintf("expense date must be between %s and %s",
			budget.StartDate.Format(time.DateOnly), budget.EndDate.Format(time.DateOnly)))
}

// findExpense loads an expense or returns ErrExpenseNotFound.
func findExpense(db *gorm.DB, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := db.Where("id = ?", expenseID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

func checkCategoryExists(db *gorm.DB, categoryID string) error {
	var count int64
	if err := db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// amountPaid sums the payments recorded against an expense.
func amountPaid(db *gorm.DB, expenseID string) (decimal.Decimal, error) {
	var payments []models.Payment
	if err := db.Where("expense_id = ?", expenseID).Find(&payments).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sumPayments(payments), nil
}

func sumPayments(payments []models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// settledStatus returns the status an expense should have given what was
// paid. Cancelled expenses keep their status.
func settledStatus(current models.ExpenseStatus, amount, paid decimal.Decimal) models.ExpenseStatus {
	switch {
	case current == models.ExpenseStatusCancelled:
		return current
	case paid.IsPositive() && paid.GreaterThanOrEqual(amount):
		return models.ExpenseStatusPaid
	case current == models.ExpenseStatusPaid && paid.IsPositive() && paid.LessThan(amount):
		return models.ExpenseStatusPending
	}
	return current
}
