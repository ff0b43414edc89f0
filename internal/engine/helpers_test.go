package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

func expense(amount string, categoryID *string, status models.ExpenseStatus, on time.Time, description string) models.Expense {
	return models.Expense{
		Description: description,
		Amount:      dec(amount),
		CategoryID:  categoryID,
		Status:      status,
		ExpenseDate: on,
	}
}

func apperrorsIs(err, target error) bool {
	return errors.Is(err, target)
}
