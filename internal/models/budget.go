package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a bounded-period financial envelope. TotalAmount only grows
// through fund additions; spending is derived from its expenses.
type Budget struct {
	Base
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	StartDate   time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time       `gorm:"type:date;not null" json:"end_date"`
	IsDefault   bool            `gorm:"not null;default:false;index" json:"is_default"`

	// Relationships
	Expenses []Expense `gorm:"foreignKey:BudgetID" json:"expenses,omitempty"`
	Goals    []Goal    `gorm:"foreignKey:BudgetID" json:"goals,omitempty"`
}
