package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a partial or full settlement of an expense.
type Payment struct {
	Base
	ExpenseID   string          `gorm:"type:uuid;not null;index" json:"expense_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"type:date;not null" json:"payment_date"`
	Notes       string          `json:"notes"`
}
