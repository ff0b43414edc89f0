package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

// AllocationPlan maps a category ID to its target share of the budget
// total, in whole percent.
type AllocationPlan map[string]int

// Sum returns the total of all percentages in the plan.
func (p AllocationPlan) Sum() int {
	sum := 0
	for _, pct := range p {
		sum += pct
	}
	return sum
}

// AllocationStatus compares one category's target with its actual spend.
type AllocationStatus struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Percent      int             `json:"percent"`
	Target       decimal.Decimal `json:"target"`
	Spent        decimal.Decimal `json:"spent"`
	Overspent    bool            `json:"overspent"`
}

// AllocationEvaluation is the outcome of comparing a plan to actual spend.
// Advisory holds at most one message and is empty when there is no plan.
type AllocationEvaluation struct {
	HasPlan  bool               `json:"has_plan"`
	Statuses []AllocationStatus `json:"statuses"`
	Advisory string             `json:"advisory,omitempty"`
}

// ValidatePlan checks every percentage lies in [0, 100] and that the plan
// does not allocate more than 100% of the budget.
func ValidatePlan(plan AllocationPlan) error {
	for categoryID, pct := range plan {
		if pct < 0 || pct > 100 {
			return apperrors.WithMessage(apperrors.ErrInvalidAllocation,
				fmt.Sprintf("allocation for category %s must be between 0 and 100, got %d", categoryID, pct))
		}
	}
	if sum := plan.Sum(); sum > 100 {
		return apperrors.WithMessage(apperrors.ErrAllocationExceedsTotal,
			fmt.Sprintf("allocations add up to %d%%, which exceeds 100%%", sum))
	}
	return nil
}

// PrunePlan returns a copy of plan without its 0% entries.
func PrunePlan(plan AllocationPlan) AllocationPlan {
	pruned := make(AllocationPlan, len(plan))
	for categoryID, pct := range plan {
		if pct != 0 {
			pruned[categoryID] = pct
		}
	}
	return pruned
}

// TargetAmount is pct percent of total.
func TargetAmount(total decimal.Decimal, pct int) decimal.Decimal {
	return total.Mul(decimal.NewFromInt(int64(pct))).Div(hundred)
}

// EvaluatePlan compares each non-zero allocation with the category's spend.
// A category is overspent when its spend is strictly above its target.
func EvaluatePlan(plan AllocationPlan, total decimal.Decimal, expenses []models.Expense, categories []models.Category) AllocationEvaluation {
	pruned := PrunePlan(plan)
	if len(pruned) == 0 {
		return AllocationEvaluation{Statuses: []AllocationStatus{}}
	}

	names := categoryNames(categories)
	statuses := make([]AllocationStatus, 0, len(pruned))
	for categoryID, pct := range pruned {
		id := categoryID
		name, ok := names[id]
		if !ok {
			name = UnknownCategoryName
		}
		target := TargetAmount(total, pct)
		spent := CategorySpend(expenses, &id)
		statuses = append(statuses, AllocationStatus{
			CategoryID:   id,
			CategoryName: name,
			Percent:      pct,
			Target:       target,
			Spent:        spent,
			Overspent:    spent.GreaterThan(target),
		})
	}
	sort.Slice(statuses, func(i, j int) bool {
		if statuses[i].CategoryName != statuses[j].CategoryName {
			return statuses[i].CategoryName < statuses[j].CategoryName
		}
		return statuses[i].CategoryID < statuses[j].CategoryID
	})

	return AllocationEvaluation{
		HasPlan:  true,
		Statuses: statuses,
		Advisory: advisory(statuses),
	}
}

func advisory(statuses []AllocationStatus) string {
	var over []string
	for _, s := range statuses {
		if s.Overspent {
			over = append(over, s.CategoryName)
		}
	}
	if len(over) == 0 {
		return "All categories are within their allocation targets."
	}
	return "Spending exceeds the allocation target for: " + strings.Join(over, ", ") + "."
}
