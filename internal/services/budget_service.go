package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a new budget. When IsDefault is set the flag is
// moved away from every other budget in the same transaction.
func (s *budgetService) CreateBudget(input BudgetInput) (*models.Budget, error) {
	if input.TotalAmount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Total amount must not be negative")
	}
	if !input.TotalAmount.IsZero() {
		if err := engine.CheckAmount("Total amount", input.TotalAmount); err != nil {
			return nil, err
		}
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	budget := &models.Budget{
		Name:        input.Name,
		Description: input.Description,
		TotalAmount: input.TotalAmount,
		StartDate:   engine.DateOnly(input.StartDate),
		EndDate:     engine.DateOnly(input.EndDate),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(budget).Error; err != nil {
			return err
		}
		if input.IsDefault {
			if err := markDefault(tx, budget.ID); err != nil {
				return err
			}
			budget.IsDefault = true
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// ListBudgets returns a paginated list of budgets, the default one first.
func (s *budgetService) ListBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Budget{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	err := s.db.Order("is_default DESC").Order("start_date DESC").Order("id").
		Scopes(pagination.Paginate(page)).
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget by ID.
func (s *budgetService) GetBudgetByID(budgetID string) (*models.Budget, error) {
	return findBudget(s.db, budgetID)
}

// UpdateBudget updates the descriptive fields and dates of a budget.
func (s *budgetService) UpdateBudget(budgetID string, update BudgetUpdate) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	start, end := budget.StartDate, budget.EndDate
	if update.StartDate != nil {
		start = engine.DateOnly(*update.StartDate)
	}
	if update.EndDate != nil {
		end = engine.DateOnly(*update.EndDate)
	}
	if end.Before(start) {
		return nil, apperrors.ErrInvalidDateRange
	}
	if update.StartDate != nil || update.EndDate != nil {
		if err := checkExpensesWithin(s.db, budget.ID, models.Budget{StartDate: start, EndDate: end}); err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.StartDate != nil {
		updates["start_date"] = start
	}
	if update.EndDate != nil {
		updates["end_date"] = end
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return budget, nil
}

// AddFunds increases the total amount of a budget.
func (s *budgetService) AddFunds(budgetID string, amount decimal.Decimal) (*models.Budget, error) {
	if err := engine.CheckAmount("Amount", amount); err != nil {
		return nil, err
	}
	if _, err := s.GetBudgetByID(budgetID); err != nil {
		return nil, err
	}

	err := s.db.Model(&models.Budget{}).Where("id = ?", budgetID).
		Update("total_amount", gorm.Expr("total_amount + ?", amount)).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetBudgetByID(budgetID)
}

// SetDefaultBudget makes the budget the only default one.
func (s *budgetService) SetDefaultBudget(budgetID string) (*models.Budget, error) {
	if _, err := s.GetBudgetByID(budgetID); err != nil {
		return nil, err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return markDefault(tx, budgetID)
	}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetBudgetByID(budgetID)
}

// DeleteBudget removes a budget along with its expenses, their payments and
// its goals.
func (s *budgetService) DeleteBudget(budgetID string) error {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		expenseIDs := tx.Model(&models.Expense{}).Select("id").Where("budget_id = ?", budget.ID)
		if err := tx.Where("expense_id IN (?)", expenseIDs).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.Goal{}).Error; err != nil {
			return err
		}
		return tx.Delete(budget).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetSummary computes the spending metrics, the category breakdown and
// the allocation plan status of a budget.
func (s *budgetService) GetBudgetSummary(budgetID string) (*BudgetSummary, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	expenses, err := budgetExpenses(s.db, budget.ID)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	plan, err := loadAllocationPlan(s.db, budget.ID)
	if err != nil {
		return nil, err
	}

	return &BudgetSummary{
		Budget:     budget,
		Metrics:    engine.Summarize(*budget, expenses),
		Categories: engine.CategoryBreakdown(expenses, categories),
		Allocation: engine.EvaluatePlan(plan, budget.TotalAmount, expenses, categories),
	}, nil
}

// markDefault clears is_default on every other budget before setting it on
// the given one, so the partial unique index never sees two defaults.
func markDefault(tx *gorm.DB, budgetID string) error {
	err := tx.Model(&models.Budget{}).
		Where("is_default = ? AND id <> ?", true, budgetID).
		Update("is_default", false).Error
	if err != nil {
		return err
	}
	return tx.Model(&models.Budget{}).Where("id = ?", budgetID).Update("is_default", true).Error
}

// findBudget loads a budget or returns ErrBudgetNotFound.
func findBudget(db *gorm.DB, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := db.Where("id = ?", budgetID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// budgetExpenses returns all expenses of a budget ordered by date.
func budgetExpenses(db *gorm.DB, budgetID string) ([]models.Expense, error) {
	var expenses []models.Expense
	err := db.Where("budget_id = ?", budgetID).
		Order("expense_date").Order("created_at").Order("id").
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// checkExpensesWithin refuses a period that would leave expenses of the
// budget outside it.
func checkExpensesWithin(db *gorm.DB, budgetID string, period models.Budget) error {
	expenses, err := budgetExpenses(db, budgetID)
	if err != nil {
		return err
	}
	outside := 0
	for _, e := range expenses {
		if !engine.InBudget(period, e.ExpenseDate) {
			outside++
		}
	}
	if outside > 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidDateRange,
			fmt.Sprintf("%d expense(s) would fall outside the new budget period", outside))
	}
	return nil
}
