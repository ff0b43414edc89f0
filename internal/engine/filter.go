package engine

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

// WindowKind selects how much of a budget's duration a TimeWindow covers.
type WindowKind string

const (
	WindowAll   WindowKind = "all"
	WindowMonth WindowKind = "month"
)

// TimeWindow is the date range of the expense list: the whole budget
// duration or a single calendar month inside it.
type TimeWindow struct {
	Kind  WindowKind
	Month time.Time // first day of the month, for WindowMonth
}

// WholeBudget returns the window spanning the budget duration.
func WholeBudget() TimeWindow {
	return TimeWindow{Kind: WindowAll}
}

// MonthWindow returns the window for the given month. The month must
// overlap the budget's [start, end] range.
func MonthWindow(budget models.Budget, year int, month time.Month) (TimeWindow, error) {
	w := TimeWindow{Kind: WindowMonth, Month: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
	if !w.overlaps(budget) {
		return TimeWindow{}, apperrors.WithMessage(apperrors.ErrInvalidDateRange,
			fmt.Sprintf("%s is outside the budget period", w.Month.Format("2006-01")))
	}
	return w, nil
}

// CurrentMonthWindow returns the month window containing now, clamped to the
// budget's first or last month when now falls outside it.
func CurrentMonthWindow(budget models.Budget, now time.Time) TimeWindow {
	return TimeWindow{Kind: WindowMonth, Month: monthStart(ClampToBudget(budget, now))}
}

// Bounds returns the inclusive date range covered by w within budget.
func (w TimeWindow) Bounds(budget models.Budget) (from, to time.Time) {
	from, to = DateOnly(budget.StartDate), DateOnly(budget.EndDate)
	if w.Kind != WindowMonth {
		return from, to
	}
	if ms := monthStart(w.Month); ms.After(from) {
		from = ms
	}
	if me := monthEnd(w.Month); me.Before(to) {
		to = me
	}
	return from, to
}

// Contains reports whether date falls inside w for budget.
func (w TimeWindow) Contains(budget models.Budget, date time.Time) bool {
	from, to := w.Bounds(budget)
	d := DateOnly(date)
	return !d.Before(from) && !d.After(to)
}

// HasPrev reports whether the previous month still overlaps the budget.
func (w TimeWindow) HasPrev(budget models.Budget) bool {
	if w.Kind != WindowMonth {
		return false
	}
	return w.shift(-1).overlaps(budget)
}

// HasNext reports whether the next month still overlaps the budget.
func (w TimeWindow) HasNext(budget models.Budget) bool {
	if w.Kind != WindowMonth {
		return false
	}
	return w.shift(1).overlaps(budget)
}

// Prev moves one month back, staying put at the budget's first month.
func (w TimeWindow) Prev(budget models.Budget) TimeWindow {
	if !w.HasPrev(budget) {
		return w
	}
	return w.shift(-1)
}

// Next moves one month forward, staying put at the budget's last month.
func (w TimeWindow) Next(budget models.Budget) TimeWindow {
	if !w.HasNext(budget) {
		return w
	}
	return w.shift(1)
}

func (w TimeWindow) shift(months int) TimeWindow {
	return TimeWindow{Kind: w.Kind, Month: monthStart(w.Month).AddDate(0, months, 0)}
}

func (w TimeWindow) overlaps(budget models.Budget) bool {
	return !monthEnd(w.Month).Before(DateOnly(budget.StartDate)) &&
		!monthStart(w.Month).After(DateOnly(budget.EndDate))
}

// ExpenseFilter narrows the expense list. Zero fields do not filter.
// Uncategorized selects expenses without a category and takes precedence
// over CategoryID.
type ExpenseFilter struct {
	Window        TimeWindow
	Search        string
	Status        *models.ExpenseStatus
	CategoryID    *string
	Uncategorized bool
}

// FilterExpenses applies, in order, the date window, the case-insensitive
// description search, the status filter and the category filter.
func FilterExpenses(budget models.Budget, expenses []models.Expense, filter ExpenseFilter) []models.Expense {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !filter.Window.Contains(budget, e.ExpenseDate) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Description), search) {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.Uncategorized {
			if e.CategoryID != nil {
				continue
			}
		} else if filter.CategoryID != nil && !sameCategory(e.CategoryID, filter.CategoryID) {
			continue
		}
		out = append(out, e)
	}
	return out
}
