// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_status", validateExpenseStatus)
		_ = v.RegisterValidation("frequency", validateFrequency)
	}
}

func validateExpenseStatus(fl validator.FieldLevel) bool {
	return engine.ValidStatus(models.ExpenseStatus(fl.Field().String()))
}

func validateFrequency(fl validator.FieldLevel) bool {
	return engine.Frequency(fl.Field().String()).Valid()
}
