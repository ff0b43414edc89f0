package models

// Category is a global tag shared by all budgets.
type Category struct {
	Base
	Name string `gorm:"not null" json:"name"`
}
