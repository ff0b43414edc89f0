package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

func TestValidatePlan(t *testing.T) {
	require.NoError(t, ValidatePlan(AllocationPlan{"a": 60, "b": 40}))
	require.NoError(t, ValidatePlan(AllocationPlan{"a": 0}))
	require.NoError(t, ValidatePlan(nil))

	err := ValidatePlan(AllocationPlan{"a": 70, "b": 40})
	require.ErrorIs(t, err, apperrors.ErrAllocationExceedsTotal)
	assert.Contains(t, err.Error(), "110%")

	require.ErrorIs(t, ValidatePlan(AllocationPlan{"a": -5}), apperrors.ErrInvalidAllocation)
	require.ErrorIs(t, ValidatePlan(AllocationPlan{"a": 101}), apperrors.ErrInvalidAllocation)
}

func TestPrunePlan(t *testing.T) {
	plan := AllocationPlan{"a": 0, "b": 25, "c": 0}
	pruned := PrunePlan(plan)
	assert.Equal(t, AllocationPlan{"b": 25}, pruned)
	assert.Len(t, plan, 3, "input must not be modified")
	assert.Empty(t, PrunePlan(AllocationPlan{"a": 0}))
}

func TestEvaluatePlan(t *testing.T) {
	on := date(t, "2024-04-01")
	categories := []models.Category{
		{Base: models.Base{ID: "c-food"}, Name: "Food"},
		{Base: models.Base{ID: "c-rent"}, Name: "Rent"},
		{Base: models.Base{ID: "c-fun"}, Name: "Fun"},
	}
	expenses := []models.Expense{
		expense("250", strPtr("c-food"), models.ExpenseStatusPaid, on, "groceries"),
		expense("500", strPtr("c-rent"), models.ExpenseStatusPaid, on, "rent"),
		expense("150", strPtr("c-fun"), models.ExpenseStatusPending, on, "cinema"),
	}

	t.Run("names every overspent category in one message", func(t *testing.T) {
		plan := AllocationPlan{"c-food": 20, "c-rent": 50, "c-fun": 10, "c-none": 0}
		eval := EvaluatePlan(plan, dec("1000"), expenses, categories)

		require.True(t, eval.HasPlan)
		require.Len(t, eval.Statuses, 3)
		assert.Equal(t, "Food", eval.Statuses[0].CategoryName)
		assert.True(t, eval.Statuses[0].Target.Equal(dec("200")))
		assert.True(t, eval.Statuses[0].Overspent)
		assert.Equal(t, "Fun", eval.Statuses[1].CategoryName)
		assert.True(t, eval.Statuses[1].Overspent)
		assert.Equal(t, "Rent", eval.Statuses[2].CategoryName)
		assert.False(t, eval.Statuses[2].Overspent, "spend equal to target is not overspent")
		assert.Equal(t, "Spending exceeds the allocation target for: Food, Fun.", eval.Advisory)
	})

	t.Run("positive message when within targets", func(t *testing.T) {
		plan := AllocationPlan{"c-food": 30, "c-rent": 60}
		eval := EvaluatePlan(plan, dec("1000"), expenses, categories)
		assert.Equal(t, "All categories are within their allocation targets.", eval.Advisory)
	})

	t.Run("no plan gives no advisory", func(t *testing.T) {
		eval := EvaluatePlan(AllocationPlan{"c-food": 0}, dec("1000"), expenses, categories)
		assert.False(t, eval.HasPlan)
		assert.Empty(t, eval.Statuses)
		assert.Empty(t, eval.Advisory)
	})
}
