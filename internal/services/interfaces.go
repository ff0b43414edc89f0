package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/pagination"
)

// BudgetInput holds the fields used to create a budget.
type BudgetInput struct {
	Name        string
	Description string
	TotalAmount decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time
	IsDefault   bool
}

// BudgetUpdate holds the optional fields of a budget update. The total is
// deliberately absent: it only changes through AddFunds.
type BudgetUpdate struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// BudgetSummary contains the derived metrics of a budget.
type BudgetSummary struct {
	Budget     *models.Budget              `json:"budget"`
	Metrics    engine.Summary              `json:"metrics"`
	Categories []engine.CategoryShare      `json:"categories"`
	Allocation engine.AllocationEvaluation `json:"allocation"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(input BudgetInput) (*models.Budget, error)
	ListBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(budgetID string) (*models.Budget, error)
	UpdateBudget(budgetID string, update BudgetUpdate) (*models.Budget, error)
	AddFunds(budgetID string, amount decimal.Decimal) (*models.Budget, error)
	SetDefaultBudget(budgetID string) (*models.Budget, error)
	DeleteBudget(budgetID string) error
	GetBudgetSummary(budgetID string) (*BudgetSummary, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string) (*models.Category, error)
	ListCategories() ([]models.Category, error)
	GetCategoryByID(categoryID string) (*models.Category, error)
	UpdateCategory(categoryID, name string) (*models.Category, error)
	DeleteCategory(categoryID string) error
}

// ExpenseCreation is the outcome of an expense submission. Warning is set
// when a recurring submission produced no occurrence.
type ExpenseCreation struct {
	Expenses []models.Expense `json:"expenses"`
	Created  int              `json:"created"`
	Warning  string           `json:"warning,omitempty"`
}

// ExpenseDetail is an expense with its settlement balance.
type ExpenseDetail struct {
	models.Expense
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Remaining  decimal.Decimal `json:"remaining"`
}

// ExpenseUpdate holds the optional fields of an expense update.
type ExpenseUpdate struct {
	Description   *string
	Amount        *decimal.Decimal
	CategoryID    *string
	ClearCategory bool
	ExpenseDate   *time.Time
	Notes         *string
}

// ExpenseList is a filtered expense list with the navigation state of its
// time window.
type ExpenseList struct {
	Expenses []models.Expense `json:"expenses"`
	Total    decimal.Decimal  `json:"total"`
	From     time.Time        `json:"from"`
	To       time.Time        `json:"to"`
	HasPrev  bool             `json:"has_prev"`
	HasNext  bool             `json:"has_next"`
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(budgetID string, req engine.ExpenseRequest) (*ExpenseCreation, error)
	ListExpenses(budgetID string, filter engine.ExpenseFilter) (*ExpenseList, error)
	GetExpenseByID(expenseID string) (*ExpenseDetail, error)
	UpdateExpense(expenseID string, update ExpenseUpdate) (*models.Expense, error)
	UpdateExpenseStatus(expenseID string, status models.ExpenseStatus, override bool) (*models.Expense, error)
	DeleteExpense(expenseID string) error
}

// PaymentResult is a recorded payment together with the new state of its expense.
type PaymentResult struct {
	Payment   *models.Payment      `json:"payment"`
	Status    models.ExpenseStatus `json:"expense_status"`
	Remaining decimal.Decimal      `json:"remaining"`
}

// PaymentServicer defines the contract for payment-related business logic.
type PaymentServicer interface {
	AddPayment(expenseID string, amount decimal.Decimal, paymentDate time.Time, notes string) (*PaymentResult, error)
	ListPayments(expenseID string) ([]models.Payment, error)
	DeletePayment(paymentID string) error
}

// GoalServicer defines the contract for allocation plan business logic.
type GoalServicer interface {
	GetAllocationPlan(budgetID string) (engine.AllocationPlan, error)
	SaveAllocationPlan(budgetID string, plan engine.AllocationPlan) (*models.Goal, error)
}

// SavingsTransfer is the outcome of moving funds into global savings.
type SavingsTransfer struct {
	Expense *models.Expense `json:"expense"`
	Balance decimal.Decimal `json:"global_savings"`
}

// SavingsServicer defines the contract for global savings business logic.
type SavingsServicer interface {
	GetGlobalSavings() (decimal.Decimal, error)
	TransferToSavings(budgetID string, amount decimal.Decimal) (*SavingsTransfer, error)
}

// ReportServicer defines the contract for budget report rendering.
type ReportServicer interface {
	BuildReport(budgetID string) (string, error)
	ExportBudgetXLSX(budgetID string) ([]byte, error)
	RenderCategoryChart(budgetID string) ([]byte, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
