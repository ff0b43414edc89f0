// Package errors provides custom error types for the budget API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so that
// errors.Is matches sentinels even after WithMessage or Wrap.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrForbidden    = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput     = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound         = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer   = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrFeatureDisabled  = &AppError{Code: "FEATURE_DISABLED", Message: "This feature is disabled", StatusCode: http.StatusNotFound}
	ErrInvalidDateRange = &AppError{Code: "INVALID_DATE_RANGE", Message: "End date must not be before start date", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrBudgetNotFound            = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrInsufficientBudgetBalance = &AppError{Code: "INSUFFICIENT_BUDGET_BALANCE", Message: "Amount exceeds the budget's remaining balance", StatusCode: http.StatusUnprocessableEntity}
)

// Category errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
)

// Expense errors.
var (
	ErrExpenseNotFound           = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrTooManyOccurrences        = &AppError{Code: "TOO_MANY_OCCURRENCES", Message: "Recurring expense would create more than 365 occurrences", StatusCode: http.StatusUnprocessableEntity}
	ErrInvalidFrequency          = &AppError{Code: "INVALID_FREQUENCY", Message: "Unsupported recurrence frequency", StatusCode: http.StatusBadRequest}
	ErrInvalidStatus             = &AppError{Code: "INVALID_STATUS", Message: "Unsupported expense status", StatusCode: http.StatusBadRequest}
	ErrInvalidStatusTransition   = &AppError{Code: "INVALID_STATUS_TRANSITION", Message: "This status change requires an explicit override", StatusCode: http.StatusConflict}
	ErrPaymentNotFound           = &AppError{Code: "PAYMENT_NOT_FOUND", Message: "Payment not found", StatusCode: http.StatusNotFound}
	ErrPaymentExceedsRemaining   = &AppError{Code: "PAYMENT_EXCEEDS_REMAINING", Message: "Payment amount exceeds the expense's remaining balance", StatusCode: http.StatusUnprocessableEntity}
	ErrExpenseAlreadySettled     = &AppError{Code: "EXPENSE_ALREADY_SETTLED", Message: "Expense has no remaining balance", StatusCode: http.StatusUnprocessableEntity}
	ErrPaymentOnCancelledExpense = &AppError{Code: "EXPENSE_CANCELLED", Message: "Cannot record a payment on a cancelled expense", StatusCode: http.StatusUnprocessableEntity}
)

// Allocation plan errors.
var (
	ErrInvalidAllocation      = &AppError{Code: "INVALID_ALLOCATION", Message: "Allocation percentages must be between 0 and 100", StatusCode: http.StatusBadRequest}
	ErrAllocationExceedsTotal = &AppError{Code: "ALLOCATION_EXCEEDS_TOTAL", Message: "Allocation percentages must not add up to more than 100%", StatusCode: http.StatusUnprocessableEntity}
)
