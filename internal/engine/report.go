package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

// ReportInput is everything the text report is built from.
type ReportInput struct {
	Budget        models.Budget
	Expenses      []models.Expense
	Categories    []models.Category
	Plan          AllocationPlan
	GlobalSavings decimal.Decimal
}

// BuildReport renders a plain-text summary of a budget. The output depends
// only on its input, so equal inputs give byte-identical reports.
func BuildReport(in ReportInput) string {
	summary := Summarize(in.Budget, in.Expenses)
	var b strings.Builder

	fmt.Fprintf(&b, "Budget report: %s\n", in.Budget.Name)
	fmt.Fprintf(&b, "Period: %s to %s\n",
		in.Budget.StartDate.Format(time.DateOnly), in.Budget.EndDate.Format(time.DateOnly))

	b.WriteString("\n== General status ==\n")
	fmt.Fprintf(&b, "Total budget: %s\n", FormatCurrency(summary.TotalAmount))
	fmt.Fprintf(&b, "Spent: %s (%s)\n", FormatCurrency(summary.Spent), FormatPercent(summary.Progress))
	fmt.Fprintf(&b, "Remaining: %s\n", FormatCurrency(summary.Remaining))
	fmt.Fprintf(&b, "Moved to savings: %s\n", FormatCurrency(summary.MovedToSaved))
	fmt.Fprintf(&b, "Cost control: %s\n", summary.Tier)

	b.WriteString("\n== Global savings ==\n")
	fmt.Fprintf(&b, "Balance: %s\n", FormatCurrency(in.GlobalSavings))

	b.WriteString("\n== Spending by category ==\n")
	shares := CategoryBreakdown(in.Expenses, in.Categories)
	if len(shares) == 0 {
		b.WriteString("No expenses recorded.\n")
	}
	for _, s := range shares {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", s.Name, FormatCurrency(s.Amount), FormatPercent(s.Percent))
	}

	b.WriteString("\n== Allocation plan ==\n")
	eval := EvaluatePlan(in.Plan, in.Budget.TotalAmount, in.Expenses, in.Categories)
	if !eval.HasPlan {
		b.WriteString("No allocation plan defined.\n")
		return b.String()
	}
	for _, s := range eval.Statuses {
		state := "OK"
		if s.Overspent {
			state = "Exceeded"
		}
		fmt.Fprintf(&b, "- %s: target %d%% (%s), spent %s -> %s\n",
			s.CategoryName, s.Percent, FormatCurrency(s.Target), FormatCurrency(s.Spent), state)
	}
	fmt.Fprintf(&b, "%s\n", eval.Advisory)
	return b.String()
}
