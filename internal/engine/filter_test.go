package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

func windowBudget(t *testing.T) models.Budget {
	t.Helper()
	return models.Budget{
		TotalAmount: dec("1000"),
		StartDate:   date(t, "2024-01-15"),
		EndDate:     date(t, "2024-03-10"),
	}
}

func TestMonthWindow_Bounds(t *testing.T) {
	b := windowBudget(t)

	w, err := MonthWindow(b, 2024, time.January)
	require.NoError(t, err)
	from, to := w.Bounds(b)
	assert.Equal(t, "2024-01-15", from.Format(time.DateOnly))
	assert.Equal(t, "2024-01-31", to.Format(time.DateOnly))

	w, err = MonthWindow(b, 2024, time.February)
	require.NoError(t, err)
	from, to = w.Bounds(b)
	assert.Equal(t, "2024-02-01", from.Format(time.DateOnly))
	assert.Equal(t, "2024-02-29", to.Format(time.DateOnly))

	_, err = MonthWindow(b, 2023, time.December)
	require.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
	_, err = MonthWindow(b, 2024, time.April)
	require.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
}

func TestTimeWindow_NavigationIsBounded(t *testing.T) {
	b := windowBudget(t)
	w, err := MonthWindow(b, 2024, time.January)
	require.NoError(t, err)

	assert.False(t, w.HasPrev(b))
	assert.Equal(t, w, w.Prev(b))
	assert.True(t, w.HasNext(b))

	w = w.Next(b).Next(b)
	assert.Equal(t, time.March, w.Month.Month())
	assert.False(t, w.HasNext(b))
	assert.Equal(t, w, w.Next(b))
	assert.True(t, w.HasPrev(b))

	all := WholeBudget()
	assert.False(t, all.HasNext(b))
	assert.False(t, all.HasPrev(b))
}

func TestCurrentMonthWindow(t *testing.T) {
	b := windowBudget(t)
	assert.Equal(t, time.February, CurrentMonthWindow(b, date(t, "2024-02-20")).Month.Month())
	assert.Equal(t, time.January, CurrentMonthWindow(b, date(t, "2023-06-01")).Month.Month())
	assert.Equal(t, time.March, CurrentMonthWindow(b, date(t, "2025-06-01")).Month.Month())
}

func TestFilterExpenses(t *testing.T) {
	b := windowBudget(t)
	office := strPtr("office")
	expenses := []models.Expense{
		expense("10", office, models.ExpenseStatusPaid, date(t, "2024-01-20"), "Printer paper"),
		expense("20", office, models.ExpenseStatusPending, date(t, "2024-02-03"), "PAPER clips"),
		expense("30", nil, models.ExpenseStatusPending, date(t, "2024-02-10"), "Taxi"),
		expense("40", nil, models.ExpenseStatusCancelled, date(t, "2024-03-20"), "Late paper order"),
		expense("50", office, models.ExpenseStatusPaid, date(t, "2024-01-02"), "Early paper order"),
	}

	descriptions := func(list []models.Expense) []string {
		out := []string{}
		for _, e := range list {
			out = append(out, e.Description)
		}
		return out
	}

	t.Run("whole budget excludes dates outside the budget", func(t *testing.T) {
		got := FilterExpenses(b, expenses, ExpenseFilter{Window: WholeBudget()})
		assert.Equal(t, []string{"Printer paper", "PAPER clips", "Taxi"}, descriptions(got))
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		got := FilterExpenses(b, expenses, ExpenseFilter{Window: WholeBudget(), Search: "Paper"})
		assert.Equal(t, []string{"Printer paper", "PAPER clips"}, descriptions(got))
	})

	t.Run("month window and status combine", func(t *testing.T) {
		w, err := MonthWindow(b, 2024, time.February)
		require.NoError(t, err)
		pending := models.ExpenseStatusPending
		got := FilterExpenses(b, expenses, ExpenseFilter{Window: w, Status: &pending})
		assert.Equal(t, []string{"PAPER clips", "Taxi"}, descriptions(got))
	})

	t.Run("category filter", func(t *testing.T) {
		got := FilterExpenses(b, expenses, ExpenseFilter{Window: WholeBudget(), CategoryID: office})
		assert.Equal(t, []string{"Printer paper", "PAPER clips"}, descriptions(got))
	})

	t.Run("uncategorized filter", func(t *testing.T) {
		got := FilterExpenses(b, expenses, ExpenseFilter{Window: WholeBudget(), Uncategorized: true})
		assert.Equal(t, []string{"Taxi"}, descriptions(got))
	})

	t.Run("all filters are AND-combined", func(t *testing.T) {
		paid := models.ExpenseStatusPaid
		got := FilterExpenses(b, expenses, ExpenseFilter{Window: WholeBudget(), Search: "clips", Status: &paid})
		assert.Empty(t, got)
	})
}
