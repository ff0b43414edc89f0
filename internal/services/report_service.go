package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/export"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

// reportService renders budgets as text, workbooks and charts.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// BuildReport returns the plain-text report of a budget.
func (s *reportService) BuildReport(budgetID string) (string, error) {
	in, err := s.reportInput(budgetID)
	if err != nil {
		return "", err
	}
	return engine.BuildReport(*in), nil
}

// ExportBudgetXLSX returns the expenses and category totals of a budget as an XLSX workbook.
func (s *reportService) ExportBudgetXLSX(budgetID string) ([]byte, error) {
	in, err := s.reportInput(budgetID)
	if err != nil {
		return nil, err
	}

	data, err := export.BudgetWorkbook(in.Budget, in.Expenses, in.Categories)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return data, nil
}

// RenderCategoryChart returns a PNG pie chart of the spending per category.
func (s *reportService) RenderCategoryChart(budgetID string) ([]byte, error) {
	in, err := s.reportInput(budgetID)
	if err != nil {
		return nil, err
	}

	shares := engine.CategoryBreakdown(in.Expenses, in.Categories)
	data, err := export.CategoryPie(in.Budget.Name, shares)
	if errors.Is(err, export.ErrNothingToChart) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget has no expenses to chart")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return data, nil
}

func (s *reportService) reportInput(budgetID string) (*engine.ReportInput, error) {
	budget, err := findBudget(s.db, budgetID)
	if err != nil {
		return nil, err
	}

	expenses, err := budgetExpenses(s.db, budget.ID)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.Order("name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	plan, err := loadAllocationPlan(s.db, budget.ID)
	if err != nil {
		return nil, err
	}

	savings, _, err := readSavings(s.db, false)
	if err != nil {
		return nil, err
	}

	return &engine.ReportInput{
		Budget:        *budget,
		Expenses:      expenses,
		Categories:    categories,
		Plan:          plan,
		GlobalSavings: savings,
	}, nil
}
