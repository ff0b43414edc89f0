package engine

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

// MaxOccurrences caps how many expenses a single recurring request may create.
const MaxOccurrences = 365

// Frequency is the step between two occurrences of a recurring expense.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether f is a supported frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// ExpenseRequest describes an expense submission. When IsRecurring is set,
// Frequency is required and the request expands into a series.
type ExpenseRequest struct {
	Description      string
	Amount           decimal.Decimal
	CategoryID       *string
	Date             time.Time
	Status           models.ExpenseStatus
	Notes            string
	IsRecurring      bool
	Frequency        Frequency
	RecurringEndDate *time.Time
}

// EffectiveEndDate returns the recurring end date when it falls before the
// budget end, and the budget end otherwise.
func EffectiveEndDate(recurringEnd *time.Time, budgetEnd time.Time) time.Time {
	if recurringEnd != nil && recurringEnd.Before(budgetEnd) {
		return *recurringEnd
	}
	return budgetEnd
}

// Occurrence returns the date of the n-th occurrence (0-based) after start.
// Monthly and yearly steps are anchored on start so a series starting on the
// 31st returns to the 31st whenever the month allows it.
func Occurrence(start time.Time, freq Frequency, n int) (time.Time, error) {
	start = DateOnly(start)
	switch freq {
	case FrequencyDaily:
		return start.AddDate(0, 0, n), nil
	case FrequencyWeekly:
		return start.AddDate(0, 0, 7*n), nil
	case FrequencyMonthly:
		return addMonthsClamped(start, n), nil
	case FrequencyYearly:
		return addMonthsClamped(start, 12*n), nil
	}
	return time.Time{}, apperrors.ErrInvalidFrequency
}

// GenerateOccurrences expands a recurring request into pending expenses dated
// from req.Date up to the effective end date, inclusive. It returns
// ErrTooManyOccurrences, and no expenses, when the series exceeds
// MaxOccurrences. An empty result is not an error.
func GenerateOccurrences(budgetID string, req ExpenseRequest, budgetEnd time.Time) ([]models.Expense, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !req.Frequency.Valid() {
		return nil, apperrors.ErrInvalidFrequency
	}

	end := DateOnly(EffectiveEndDate(req.RecurringEndDate, budgetEnd))
	notes := "Occurrence of " + strings.TrimSpace(req.Description)

	var expenses []models.Expense
	for n := 0; ; n++ {
		date, err := Occurrence(req.Date, req.Frequency, n)
		if err != nil {
			return nil, err
		}
		if date.After(end) {
			break
		}
		if len(expenses) == MaxOccurrences {
			return nil, apperrors.ErrTooManyOccurrences
		}
		expenses = append(expenses, models.Expense{
			BudgetID:    budgetID,
			CategoryID:  req.CategoryID,
			Description: strings.TrimSpace(req.Description),
			Amount:      req.Amount,
			ExpenseDate: date,
			Status:      models.ExpenseStatusPending,
			IsRecurring: true,
			Notes:       notes,
		})
	}
	return expenses, nil
}

// SingleExpense builds the one non-recurring expense for req.
func SingleExpense(budgetID string, req ExpenseRequest) (models.Expense, error) {
	if err := validateRequest(req); err != nil {
		return models.Expense{}, err
	}
	status := req.Status
	if status == "" {
		status = models.ExpenseStatusPending
	}
	if !ValidStatus(status) {
		return models.Expense{}, apperrors.ErrInvalidStatus
	}
	return models.Expense{
		BudgetID:    budgetID,
		CategoryID:  req.CategoryID,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		ExpenseDate: DateOnly(req.Date),
		Status:      status,
		IsRecurring: false,
		Notes:       req.Notes,
	}, nil
}

// ExpandRequest turns a submission into the expenses to persist.
func ExpandRequest(budgetID string, req ExpenseRequest, budgetEnd time.Time) ([]models.Expense, error) {
	if req.IsRecurring {
		return GenerateOccurrences(budgetID, req, budgetEnd)
	}
	expense, err := SingleExpense(budgetID, req)
	if err != nil {
		return nil, err
	}
	return []models.Expense{expense}, nil
}

func validateRequest(req ExpenseRequest) error {
	if strings.TrimSpace(req.Description) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if IsReservedDescription(req.Description) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is reserved for savings transfers")
	}
	if err := CheckAmount("amount", req.Amount); err != nil {
		return err
	}
	if req.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	return nil
}
