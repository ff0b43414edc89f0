package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date parses a YYYY-MM-DD date as midnight UTC.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t.Fatalf("invalid date %q: %v", s, err)
	}
	return d
}

// Amount parses a decimal amount.
func Amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// CreateTestBudget creates a 2024 calendar-year budget with the given total.
func CreateTestBudget(t *testing.T, db *gorm.DB, total string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Name:        fmt.Sprintf("Test Budget %d", nextID()),
		TotalAmount: Amount(total),
		StartDate:   Date(t, "2024-01-01"),
		EndDate:     Date(t, "2024-12-31"),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	return CreateTestCategoryNamed(t, db, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryNamed creates a category with the given name.
func CreateTestCategoryNamed(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense creates a pending expense dated 2024-03-01.
func CreateTestExpense(t *testing.T, db *gorm.DB, budgetID string, categoryID *string, amount string) *models.Expense {
	t.Helper()
	return CreateTestExpenseWithStatus(t, db, budgetID, categoryID, amount, models.ExpenseStatusPending)
}

// CreateTestExpenseWithStatus creates an expense with the given status.
func CreateTestExpenseWithStatus(t *testing.T, db *gorm.DB, budgetID string, categoryID *string, amount string, status models.ExpenseStatus) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		BudgetID:    budgetID,
		CategoryID:  categoryID,
		Description: fmt.Sprintf("Test Expense %d", nextID()),
		Amount:      Amount(amount),
		ExpenseDate: Date(t, "2024-03-01"),
		Status:      status,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestPayment records a payment against an expense.
func CreateTestPayment(t *testing.T, db *gorm.DB, expenseID string, amount string) *models.Payment {
	t.Helper()

	payment := &models.Payment{
		ExpenseID:   expenseID,
		Amount:      Amount(amount),
		PaymentDate: Date(t, "2024-03-05"),
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("failed to create test payment: %v", err)
	}
	return payment
}

// CreateTestAllocationPlan stores a category allocation plan for a budget.
func CreateTestAllocationPlan(t *testing.T, db *gorm.DB, budgetID string, allocations map[string]int) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		BudgetID: budgetID,
		Type:     models.GoalTypeCategoryAllocationPlan,
		Details:  models.GoalDetails{Allocations: allocations},
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test allocation plan: %v", err)
	}
	return goal
}
