package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

func recurring(t *testing.T, start string, freq Frequency, recurringEnd *time.Time) ExpenseRequest {
	t.Helper()
	return ExpenseRequest{
		Description:      "Rent",
		Amount:           dec("800"),
		Date:             date(t, start),
		IsRecurring:      true,
		Frequency:        freq,
		RecurringEndDate: recurringEnd,
	}
}

func TestEffectiveEndDate(t *testing.T) {
	budgetEnd := date(t, "2024-12-31")

	earlier := date(t, "2024-06-30")
	assert.Equal(t, earlier, EffectiveEndDate(&earlier, budgetEnd))

	later := date(t, "2025-01-01")
	assert.Equal(t, budgetEnd, EffectiveEndDate(&later, budgetEnd))

	assert.Equal(t, budgetEnd, EffectiveEndDate(nil, budgetEnd))
}

func TestGenerateOccurrences_Monthly(t *testing.T) {
	end := date(t, "2024-04-01")
	got, err := GenerateOccurrences("b1", recurring(t, "2024-01-01", FrequencyMonthly, &end), date(t, "2024-12-31"))
	require.NoError(t, err)
	require.Len(t, got, 4)

	want := []string{"2024-01-01", "2024-02-01", "2024-03-01", "2024-04-01"}
	for i, e := range got {
		assert.Equal(t, want[i], e.ExpenseDate.Format(time.DateOnly))
		assert.Equal(t, "b1", e.BudgetID)
		assert.Equal(t, models.ExpenseStatusPending, e.Status)
		assert.True(t, e.IsRecurring)
		assert.Equal(t, "Occurrence of Rent", e.Notes)
		assert.True(t, e.Amount.Equal(dec("800")))
	}
}

func TestGenerateOccurrences_UsesBudgetEndWhenRecurringEndIsLater(t *testing.T) {
	end := date(t, "2025-06-01")
	got, err := GenerateOccurrences("b1", recurring(t, "2024-10-15", FrequencyMonthly, &end), date(t, "2024-12-31"))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2024-12-15", got[2].ExpenseDate.Format(time.DateOnly))
}

func TestGenerateOccurrences_MonthEndClamping(t *testing.T) {
	got, err := GenerateOccurrences("b1", recurring(t, "2024-01-31", FrequencyMonthly, nil), date(t, "2024-04-30"))
	require.NoError(t, err)

	var dates []string
	for _, e := range got {
		dates = append(dates, e.ExpenseDate.Format(time.DateOnly))
	}
	assert.Equal(t, []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"}, dates)
}

func TestGenerateOccurrences_LeapDayYearly(t *testing.T) {
	got, err := GenerateOccurrences("b1", recurring(t, "2024-02-29", FrequencyYearly, nil), date(t, "2028-12-31"))
	require.NoError(t, err)

	var dates []string
	for _, e := range got {
		dates = append(dates, e.ExpenseDate.Format(time.DateOnly))
	}
	assert.Equal(t, []string{"2024-02-29", "2025-02-28", "2026-02-28", "2027-02-28", "2028-02-29"}, dates)
}

func TestGenerateOccurrences_Weekly(t *testing.T) {
	got, err := GenerateOccurrences("b1", recurring(t, "2024-01-01", FrequencyWeekly, nil), date(t, "2024-01-29"))
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "2024-01-29", got[4].ExpenseDate.Format(time.DateOnly))
}

func TestGenerateOccurrences_Cap(t *testing.T) {
	t.Run("365 occurrences are allowed", func(t *testing.T) {
		got, err := GenerateOccurrences("b1", recurring(t, "2023-01-01", FrequencyDaily, nil), date(t, "2023-12-31"))
		require.NoError(t, err)
		assert.Len(t, got, MaxOccurrences)
	})

	t.Run("366 occurrences fail without partial output", func(t *testing.T) {
		got, err := GenerateOccurrences("b1", recurring(t, "2024-01-01", FrequencyDaily, nil), date(t, "2024-12-31"))
		require.ErrorIs(t, err, apperrors.ErrTooManyOccurrences)
		assert.Nil(t, got)
	})
}

func TestGenerateOccurrences_Empty(t *testing.T) {
	end := date(t, "2024-03-01")
	got, err := GenerateOccurrences("b1", recurring(t, "2024-04-01", FrequencyMonthly, &end), date(t, "2024-12-31"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGenerateOccurrences_Validation(t *testing.T) {
	budgetEnd := date(t, "2024-12-31")

	req := recurring(t, "2024-01-01", Frequency("hourly"), nil)
	_, err := GenerateOccurrences("b1", req, budgetEnd)
	require.ErrorIs(t, err, apperrors.ErrInvalidFrequency)

	req = recurring(t, "2024-01-01", FrequencyDaily, nil)
	req.Amount = dec("0")
	_, err = GenerateOccurrences("b1", req, budgetEnd)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	req = recurring(t, "2024-01-01", FrequencyDaily, nil)
	req.Description = "   "
	_, err = GenerateOccurrences("b1", req, budgetEnd)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	req = recurring(t, "2024-01-01", FrequencyDaily, nil)
	req.Amount = dec("0.001")
	_, err = GenerateOccurrences("b1", req, budgetEnd)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	req = recurring(t, "2024-01-01", FrequencyDaily, nil)
	req.Description = " mise de côté pour ÉPARGNE "
	_, err = GenerateOccurrences("b1", req, budgetEnd)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestExpandRequest_NonRecurring(t *testing.T) {
	req := ExpenseRequest{
		Description: "Laptop",
		Amount:      dec("1200"),
		Date:        date(t, "2024-05-10"),
		Notes:       "for the new hire",
	}
	got, err := ExpandRequest("b1", req, date(t, "2024-12-31"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].IsRecurring)
	assert.Equal(t, models.ExpenseStatusPending, got[0].Status)
	assert.Equal(t, "for the new hire", got[0].Notes)

	req.Status = models.ExpenseStatusPaid
	got, err = ExpandRequest("b1", req, date(t, "2024-12-31"))
	require.NoError(t, err)
	assert.Equal(t, models.ExpenseStatusPaid, got[0].Status)

	req.Status = "refunded"
	_, err = ExpandRequest("b1", req, date(t, "2024-12-31"))
	require.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestGenerateOccurrences_Properties(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	rapid.Check(t, func(t *rapid.T) {
		start := base.AddDate(0, 0, rapid.IntRange(0, 2000).Draw(t, "start"))
		end := start.AddDate(0, 0, rapid.IntRange(-30, 800).Draw(t, "span"))
		freq := rapid.SampledFrom([]Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly}).Draw(t, "freq")

		req := ExpenseRequest{Description: "x", Amount: dec("1"), Date: start, IsRecurring: true, Frequency: freq}
		got, err := GenerateOccurrences("b", req, end)

		if err != nil {
			if !apperrorsIs(err, apperrors.ErrTooManyOccurrences) {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != nil {
				t.Fatalf("expected no expenses on error, got %d", len(got))
			}
			next, _ := Occurrence(start, freq, MaxOccurrences)
			if next.After(end) {
				t.Fatalf("capped although occurrence %d (%s) is after end %s", MaxOccurrences+1, next, end)
			}
			return
		}

		if len(got) > MaxOccurrences {
			t.Fatalf("generated %d occurrences", len(got))
		}
		for i, e := range got {
			if e.ExpenseDate.After(end) {
				t.Fatalf("occurrence %s after end %s", e.ExpenseDate, end)
			}
			if i > 0 && !e.ExpenseDate.After(got[i-1].ExpenseDate) {
				t.Fatalf("occurrences not strictly increasing at %d", i)
			}
		}
		if len(got) > 0 && !got[0].ExpenseDate.Equal(start) {
			t.Fatalf("first occurrence %s, want %s", got[0].ExpenseDate, start)
		}
		next, _ := Occurrence(start, freq, len(got))
		if !next.After(end) {
			t.Fatalf("stopped early: occurrence %s is not after end %s", next, end)
		}
	})
}
