package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus represents the settlement state of an expense
type ExpenseStatus string

const (
	ExpenseStatusPending   ExpenseStatus = "pending"
	ExpenseStatusPaid      ExpenseStatus = "paid"
	ExpenseStatusCancelled ExpenseStatus = "cancelled"
)

// Expense is an outflow recorded against a budget.
type Expense struct {
	Base
	BudgetID    string          `gorm:"type:uuid;not null;index" json:"budget_id"`
	CategoryID  *string         `gorm:"type:uuid;index" json:"category_id"`
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	ExpenseDate time.Time       `gorm:"type:date;not null;index" json:"expense_date"`
	Status      ExpenseStatus   `gorm:"not null;default:pending" json:"status"`
	IsRecurring bool            `gorm:"not null" json:"is_recurring"`
	Notes       string          `json:"notes"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Payments []Payment `gorm:"foreignKey:ExpenseID" json:"payments,omitempty"`
}
