// Package export renders budgets into downloadable formats: an XLSX
// workbook and a PNG pie chart of spending by category.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

const (
	expensesSheet   = "Expenses"
	categoriesSheet = "Categories"

	// numFmtAmount is the built-in "#,##0.00" format.
	numFmtAmount = 4
)

// ContentTypeXLSX is the MIME type of the workbook returned by BudgetWorkbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BudgetWorkbook builds an XLSX workbook with one sheet listing the expenses
// of the budget and one with the spending per category.
func BudgetWorkbook(budget models.Budget, expenses []models.Expense, categories []models.Category) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", expensesSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(categoriesSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: numFmtAmount})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	rows := [][]interface{}{{"Date", "Description", "Category", "Status", "Recurring", "Amount", "Notes"}}
	for _, e := range expenses {
		rows = append(rows, []interface{}{
			e.ExpenseDate.Format(time.DateOnly),
			e.Description,
			categoryLabel(e.CategoryID, names),
			string(e.Status),
			e.IsRecurring,
			e.Amount.InexactFloat64(),
			e.Notes,
		})
	}
	if err := writeRows(f, expensesSheet, rows); err != nil {
		return nil, err
	}
	last := len(rows)
	if err := f.SetCellStyle(expensesSheet, "A1", "G1", header); err != nil {
		return nil, err
	}
	if last > 1 {
		if err := f.SetCellStyle(expensesSheet, "F2", fmt.Sprintf("F%d", last), money); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(expensesSheet, "A", "A", 12)
	f.SetColWidth(expensesSheet, "B", "B", 32)
	f.SetColWidth(expensesSheet, "C", "C", 20)
	f.SetColWidth(expensesSheet, "D", "E", 11)
	f.SetColWidth(expensesSheet, "F", "F", 14)
	f.SetColWidth(expensesSheet, "G", "G", 32)

	summary := engine.Summarize(budget, expenses)
	rows = [][]interface{}{{"Category", "Expenses", "Amount", "Share (%)"}}
	for _, s := range engine.CategoryBreakdown(expenses, categories) {
		rows = append(rows, []interface{}{s.Name, s.Count, s.Amount.InexactFloat64(), s.Percent})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Total budget", nil, summary.TotalAmount.InexactFloat64()},
		[]interface{}{"Spent", summary.ExpenseCount, summary.Spent.InexactFloat64(), summary.Progress},
		[]interface{}{"Remaining", nil, summary.Remaining.InexactFloat64()},
	)
	if err := writeRows(f, categoriesSheet, rows); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(categoriesSheet, "A1", "D1", header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(categoriesSheet, "C2", fmt.Sprintf("C%d", len(rows)), money); err != nil {
		return nil, err
	}
	f.SetColWidth(categoriesSheet, "A", "A", 24)
	f.SetColWidth(categoriesSheet, "B", "D", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func categoryLabel(categoryID *string, names map[string]string) string {
	if categoryID == nil {
		return engine.UncategorizedName
	}
	if name, ok := names[*categoryID]; ok {
		return name
	}
	return engine.UnknownCategoryName
}
