package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/pagination"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	createBudgetFn     func(input services.BudgetInput) (*models.Budget, error)
	listBudgetsFn      func(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	getBudgetByIDFn    func(budgetID string) (*models.Budget, error)
	updateBudgetFn     func(budgetID string, update services.BudgetUpdate) (*models.Budget, error)
	addFundsFn         func(budgetID string, amount decimal.Decimal) (*models.Budget, error)
	setDefaultBudgetFn func(budgetID string) (*models.Budget, error)
	deleteBudgetFn     func(budgetID string) error
	getBudgetSummaryFn func(budgetID string) (*services.BudgetSummary, error)
}

func (m *mockBudgetService) CreateBudget(input services.BudgetInput) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(input)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) ListBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	if m.listBudgetsFn != nil {
		return m.listBudgetsFn(page)
	}
	resp := pagination.NewPageResponse([]models.Budget{}, pagination.PageRequest{Page: 1, PageSize: 20}, 0)
	return &resp, nil
}

func (m *mockBudgetService) GetBudgetByID(budgetID string) (*models.Budget, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(budgetID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) UpdateBudget(budgetID string, update services.BudgetUpdate) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(budgetID, update)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) AddFunds(budgetID string, amount decimal.Decimal) (*models.Budget, error) {
	if m.addFundsFn != nil {
		return m.addFundsFn(budgetID, amount)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) SetDefaultBudget(budgetID string) (*models.Budget, error) {
	if m.setDefaultBudgetFn != nil {
		return m.setDefaultBudgetFn(budgetID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) DeleteBudget(budgetID string) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(budgetID)
	}
	return nil
}

func (m *mockBudgetService) GetBudgetSummary(budgetID string) (*services.BudgetSummary, error) {
	if m.getBudgetSummaryFn != nil {
		return m.getBudgetSummaryFn(budgetID)
	}
	return &services.BudgetSummary{}, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

// --- mock category service ---

type mockCategoryService struct {
	createCategoryFn  func(name string) (*models.Category, error)
	listCategoriesFn  func() ([]models.Category, error)
	getCategoryByIDFn func(categoryID string) (*models.Category, error)
	updateCategoryFn  func(categoryID, name string) (*models.Category, error)
	deleteCategoryFn  func(categoryID string) error
}

func (m *mockCategoryService) CreateCategory(name string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(name)
	}
	return &models.Category{Name: name}, nil
}

func (m *mockCategoryService) ListCategories() ([]models.Category, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn()
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(categoryID string) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(categoryID)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) UpdateCategory(categoryID, name string) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(categoryID, name)
	}
	return &models.Category{Name: name}, nil
}

func (m *mockCategoryService) DeleteCategory(categoryID string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(categoryID)
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

// --- mock expense service ---

type mockExpenseService struct {
	createExpenseFn       func(budgetID string, req engine.ExpenseRequest) (*services.ExpenseCreation, error)
	listExpensesFn        func(budgetID string, filter engine.ExpenseFilter) (*services.ExpenseList, error)
	getExpenseByIDFn      func(expenseID string) (*services.ExpenseDetail, error)
	updateExpenseFn       func(expenseID string, update services.ExpenseUpdate) (*models.Expense, error)
	updateExpenseStatusFn func(expenseID string, status models.ExpenseStatus, override bool) (*models.Expense, error)
	deleteExpenseFn       func(expenseID string) error
}

func (m *mockExpenseService) CreateExpense(budgetID string, req engine.ExpenseRequest) (*services.ExpenseCreation, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(budgetID, req)
	}
	return &services.ExpenseCreation{Expenses: []models.Expense{{}}, Created: 1}, nil
}

func (m *mockExpenseService) ListExpenses(budgetID string, filter engine.ExpenseFilter) (*services.ExpenseList, error) {
	if m.listExpensesFn != nil {
		return m.listExpensesFn(budgetID, filter)
	}
	return &services.ExpenseList{Expenses: []models.Expense{}}, nil
}

func (m *mockExpenseService) GetExpenseByID(expenseID string) (*services.ExpenseDetail, error) {
	if m.getExpenseByIDFn != nil {
		return m.getExpenseByIDFn(expenseID)
	}
	return &services.ExpenseDetail{}, nil
}

func (m *mockExpenseService) UpdateExpense(expenseID string, update services.ExpenseUpdate) (*models.Expense, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(expenseID, update)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) UpdateExpenseStatus(expenseID string, status models.ExpenseStatus, override bool) (*models.Expense, error) {
	if m.updateExpenseStatusFn != nil {
		return m.updateExpenseStatusFn(expenseID, status, override)
	}
	return &models.Expense{Status: status}, nil
}

func (m *mockExpenseService) DeleteExpense(expenseID string) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(expenseID)
	}
	return nil
}

var _ services.ExpenseServicer = (*mockExpenseService)(nil)

// --- mock payment service ---

type mockPaymentService struct {
	addPaymentFn    func(expenseID string, amount decimal.Decimal, paymentDate time.Time, notes string) (*services.PaymentResult, error)
	listPaymentsFn  func(expenseID string) ([]models.Payment, error)
	deletePaymentFn func(paymentID string) error
}

func (m *mockPaymentService) AddPayment(expenseID string, amount decimal.Decimal, paymentDate time.Time, notes string) (*services.PaymentResult, error) {
	if m.addPaymentFn != nil {
		return m.addPaymentFn(expenseID, amount, paymentDate, notes)
	}
	return &services.PaymentResult{Payment: &models.Payment{}}, nil
}

func (m *mockPaymentService) ListPayments(expenseID string) ([]models.Payment, error) {
	if m.listPaymentsFn != nil {
		return m.listPaymentsFn(expenseID)
	}
	return []models.Payment{}, nil
}

func (m *mockPaymentService) DeletePayment(paymentID string) error {
	if m.deletePaymentFn != nil {
		return m.deletePaymentFn(paymentID)
	}
	return nil
}

var _ services.PaymentServicer = (*mockPaymentService)(nil)

// --- mock goal service ---

type mockGoalService struct {
	getAllocationPlanFn  func(budgetID string) (engine.AllocationPlan, error)
	saveAllocationPlanFn func(budgetID string, plan engine.AllocationPlan) (*models.Goal, error)
}

func (m *mockGoalService) GetAllocationPlan(budgetID string) (engine.AllocationPlan, error) {
	if m.getAllocationPlanFn != nil {
		return m.getAllocationPlanFn(budgetID)
	}
	return engine.AllocationPlan{}, nil
}

func (m *mockGoalService) SaveAllocationPlan(budgetID string, plan engine.AllocationPlan) (*models.Goal, error) {
	if m.saveAllocationPlanFn != nil {
		return m.saveAllocationPlanFn(budgetID, plan)
	}
	return nil, nil
}

var _ services.GoalServicer = (*mockGoalService)(nil)

// --- mock savings service ---

type mockSavingsService struct {
	getGlobalSavingsFn  func() (decimal.Decimal, error)
	transferToSavingsFn func(budgetID string, amount decimal.Decimal) (*services.SavingsTransfer, error)
}

func (m *mockSavingsService) GetGlobalSavings() (decimal.Decimal, error) {
	if m.getGlobalSavingsFn != nil {
		return m.getGlobalSavingsFn()
	}
	return decimal.Zero, nil
}

func (m *mockSavingsService) TransferToSavings(budgetID string, amount decimal.Decimal) (*services.SavingsTransfer, error) {
	if m.transferToSavingsFn != nil {
		return m.transferToSavingsFn(budgetID, amount)
	}
	return &services.SavingsTransfer{Expense: &models.Expense{}, Balance: amount}, nil
}

var _ services.SavingsServicer = (*mockSavingsService)(nil)

// --- mock report service ---

type mockReportService struct {
	buildReportFn         func(budgetID string) (string, error)
	exportBudgetXLSXFn    func(budgetID string) ([]byte, error)
	renderCategoryChartFn func(budgetID string) ([]byte, error)
}

func (m *mockReportService) BuildReport(budgetID string) (string, error) {
	if m.buildReportFn != nil {
		return m.buildReportFn(budgetID)
	}
	return "", nil
}

func (m *mockReportService) ExportBudgetXLSX(budgetID string) ([]byte, error) {
	if m.exportBudgetXLSXFn != nil {
		return m.exportBudgetXLSXFn(budgetID)
	}
	return []byte{}, nil
}

func (m *mockReportService) RenderCategoryChart(budgetID string) ([]byte, error) {
	if m.renderCategoryChartFn != nil {
		return m.renderCategoryChartFn(budgetID)
	}
	return []byte{}, nil
}

var _ services.ReportServicer = (*mockReportService)(nil)
