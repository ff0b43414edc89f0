package engine

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

// SavingsDescription is the description of the expense recorded when funds
// are moved from a budget into global savings.
const SavingsDescription = "Mise de côté pour épargne"

// UncategorizedName labels expenses without a category.
const UncategorizedName = "Uncategorized"

// UnknownCategoryName labels a category ID with no matching category.
const UnknownCategoryName = "Unknown category"

var hundred = decimal.NewFromInt(100)

// CostControlTier is a qualitative label for spend against budget.
type CostControlTier string

const (
	TierOverrun       CostControlTier = "Overrun"
	TierExcellent     CostControlTier = "Excellent"
	TierGood          CostControlTier = "Good"
	TierUnderUtilized CostControlTier = "Under-utilized"
)

// Summary holds the derived metrics of a budget.
type Summary struct {
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Progress     float64         `json:"progress_percent"`
	Tier         CostControlTier `json:"cost_control_tier"`
	MovedToSaved decimal.Decimal `json:"moved_to_savings"`
	ExpenseCount int             `json:"expense_count"`
}

// CategoryShare is the spend of one category within a budget.
type CategoryShare struct {
	CategoryID *string         `json:"category_id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Percent    float64         `json:"percent"`
	Count      int             `json:"count"`
}

// TotalSpent sums every expense amount. Pending and cancelled expenses count
// toward spend just like paid ones.
func TotalSpent(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Remaining is the budget total minus everything spent.
func Remaining(totalAmount decimal.Decimal, expenses []models.Expense) decimal.Decimal {
	return totalAmount.Sub(TotalSpent(expenses))
}

// ProgressPercent returns spent as a percentage of total, or 0 when the
// total is not positive.
func ProgressPercent(totalAmount, spent decimal.Decimal) float64 {
	if totalAmount.Sign() <= 0 {
		return 0
	}
	return spent.Mul(hundred).Div(totalAmount).InexactFloat64()
}

// Tier classifies a progress percentage.
func Tier(progress float64) CostControlTier {
	switch {
	case progress > 100:
		return TierOverrun
	case progress >= 85:
		return TierExcellent
	case progress >= 50:
		return TierGood
	default:
		return TierUnderUtilized
	}
}

// CategorySpend sums the expenses tagged with categoryID. A nil categoryID
// selects uncategorized expenses.
func CategorySpend(expenses []models.Expense, categoryID *string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if sameCategory(e.CategoryID, categoryID) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// IsReservedDescription reports whether desc collides with SavingsDescription,
// ignoring case and surrounding spaces.
func IsReservedDescription(desc string) bool {
	return strings.EqualFold(strings.TrimSpace(desc), SavingsDescription)
}

// SavedAmount sums the expenses recorded by savings transfers: paid,
// uncategorized, non-recurring and carrying SavingsDescription.
func SavedAmount(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if isSavingsTransfer(e) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

func isSavingsTransfer(e models.Expense) bool {
	return e.Description == SavingsDescription &&
		e.Status == models.ExpenseStatusPaid &&
		e.CategoryID == nil &&
		!e.IsRecurring
}

// Summarize computes the metrics of budget from its expenses.
func Summarize(budget models.Budget, expenses []models.Expense) Summary {
	spent := TotalSpent(expenses)
	progress := ProgressPercent(budget.TotalAmount, spent)
	return Summary{
		TotalAmount:  budget.TotalAmount,
		Spent:        spent,
		Remaining:    budget.TotalAmount.Sub(spent),
		Progress:     progress,
		Tier:         Tier(progress),
		MovedToSaved: SavedAmount(expenses),
		ExpenseCount: len(expenses),
	}
}

// CategoryBreakdown groups spend by category. Only categories with at least
// one expense appear; they are sorted by name then ID, with the
// uncategorized bucket last.
func CategoryBreakdown(expenses []models.Expense, categories []models.Category) []CategoryShare {
	names := categoryNames(categories)
	byKey := make(map[string]*CategoryShare)
	var uncategorized *CategoryShare

	for _, e := range expenses {
		var share *CategoryShare
		if e.CategoryID == nil {
			if uncategorized == nil {
				uncategorized = &CategoryShare{Name: UncategorizedName, Amount: decimal.Zero}
			}
			share = uncategorized
		} else {
			share = byKey[*e.CategoryID]
			if share == nil {
				id := *e.CategoryID
				name, ok := names[id]
				if !ok {
					name = UnknownCategoryName
				}
				share = &CategoryShare{CategoryID: &id, Name: name, Amount: decimal.Zero}
				byKey[id] = share
			}
		}
		share.Amount = share.Amount.Add(e.Amount)
		share.Count++
	}

	shares := make([]CategoryShare, 0, len(byKey)+1)
	for _, s := range byKey {
		shares = append(shares, *s)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Name != shares[j].Name {
			return shares[i].Name < shares[j].Name
		}
		return *shares[i].CategoryID < *shares[j].CategoryID
	})
	if uncategorized != nil {
		shares = append(shares, *uncategorized)
	}

	spent := TotalSpent(expenses)
	for i := range shares {
		shares[i].Percent = ProgressPercent(spent, shares[i].Amount)
	}
	return shares
}

func categoryNames(categories []models.Category) map[string]string {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

func sameCategory(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
