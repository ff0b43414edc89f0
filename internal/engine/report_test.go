package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

func reportInput(t *testing.T) ReportInput {
	t.Helper()
	on := date(t, "2024-05-01")
	return ReportInput{
		Budget: models.Budget{
			Name:        "Marketing 2024",
			TotalAmount: dec("1000"),
			StartDate:   date(t, "2024-01-01"),
			EndDate:     date(t, "2024-12-31"),
		},
		Categories: []models.Category{
			{Base: models.Base{ID: "c2"}, Name: "Events"},
			{Base: models.Base{ID: "c1"}, Name: "Ads"},
		},
		Expenses: []models.Expense{
			expense("300", strPtr("c1"), models.ExpenseStatusPaid, on, "Search ads"),
			expense("100", strPtr("c2"), models.ExpenseStatusCancelled, on, "Booth"),
			expense("250", strPtr("c1"), models.ExpenseStatusPending, on, "Social ads"),
			expense("50", nil, models.ExpenseStatusPaid, on, "Stamps"),
		},
		Plan:          AllocationPlan{"c1": 50, "c2": 20},
		GlobalSavings: dec("1234.5"),
	}
}

const wantReport = `Budget report: Marketing 2024
Period: 2024-01-01 to 2024-12-31

== General status ==
Total budget: 1 000,00 €
Spent: 700,00 € (70.0%)
Remaining: 300,00 €
Moved to savings: 0,00 €
Cost control: Good

== Global savings ==
Balance: 1 234,50 €

== Spending by category ==
- Ads: 550,00 € (78.6%)
- Events: 100,00 € (14.3%)
- Uncategorized: 50,00 € (7.1%)

== Allocation plan ==
- Ads: target 50% (500,00 €), spent 550,00 € -> Exceeded
- Events: target 20% (200,00 €), spent 100,00 € -> OK
Spending exceeds the allocation target for: Ads.
`

func TestBuildReport_Snapshot(t *testing.T) {
	assert.Equal(t, wantReport, BuildReport(reportInput(t)))
}

func TestBuildReport_Deterministic(t *testing.T) {
	in := reportInput(t)
	first := BuildReport(in)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, BuildReport(in))
	}
}

func TestBuildReport_NoExpensesNoPlan(t *testing.T) {
	in := reportInput(t)
	in.Expenses = nil
	in.Plan = nil
	in.GlobalSavings = dec("0")

	got := BuildReport(in)
	assert.Contains(t, got, "Spent: 0,00 € (0.0%)\n")
	assert.Contains(t, got, "Cost control: Under-utilized\n")
	assert.Contains(t, got, "== Spending by category ==\nNo expenses recorded.\n")
	assert.Contains(t, got, "== Allocation plan ==\nNo allocation plan defined.\n")
}
