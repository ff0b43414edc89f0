package engine

import (
	"time"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InBudget reports whether the day of t falls in the budget's inclusive
// [start, end] range.
func InBudget(budget models.Budget, t time.Time) bool {
	d := DateOnly(t)
	return !d.Before(DateOnly(budget.StartDate)) && !d.After(DateOnly(budget.EndDate))
}

// ClampToBudget returns the day of t moved into the budget's [start, end]
// range.
func ClampToBudget(budget models.Budget, t time.Time) time.Time {
	d := DateOnly(t)
	if start := DateOnly(budget.StartDate); d.Before(start) {
		return start
	}
	if end := DateOnly(budget.EndDate); d.After(end) {
		return end
	}
	return d
}

// addMonthsClamped adds n months to t, clamping the day to the last day of
// the target month instead of overflowing into the next one.
func addMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), daysIn(t.Year(), t.Month()), 0, 0, 0, 0, time.UTC)
}
