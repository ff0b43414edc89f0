package models

// GoalType identifies the kind of goal attached to a budget
type GoalType string

const (
	GoalTypeCategoryAllocationPlan GoalType = "category_allocation_plan"
)

// GoalDetails holds the goal payload. Allocations maps a category ID to a
// target percentage of the budget total.
type GoalDetails struct {
	Allocations map[string]int `json:"allocations"`
}

// Goal is a per-budget target such as a category allocation plan.
type Goal struct {
	Base
	BudgetID string      `gorm:"type:uuid;not null;uniqueIndex:idx_goals_budget_type" json:"budget_id"`
	Type     GoalType    `gorm:"not null;uniqueIndex:idx_goals_budget_type" json:"type"`
	Details  GoalDetails `gorm:"type:text;serializer:json" json:"details"`
}
