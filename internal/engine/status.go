package engine

import (
	"fmt"

	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

// ValidStatus reports whether s is a known expense status.
func ValidStatus(s models.ExpenseStatus) bool {
	switch s {
	case models.ExpenseStatusPending, models.ExpenseStatusPaid, models.ExpenseStatusCancelled:
		return true
	}
	return false
}

// transitions lists the status changes allowed without an override.
var transitions = map[models.ExpenseStatus][]models.ExpenseStatus{
	models.ExpenseStatusPending:   {models.ExpenseStatusPaid, models.ExpenseStatusCancelled},
	models.ExpenseStatusCancelled: {models.ExpenseStatusPending},
}

// CheckStatusTransition validates a manual status change. Leaving the paid
// state is only possible with override set.
func CheckStatusTransition(from, to models.ExpenseStatus, override bool) error {
	if !ValidStatus(to) {
		return apperrors.ErrInvalidStatus
	}
	if from == to || override {
		return nil
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return apperrors.WithMessage(apperrors.ErrInvalidStatusTransition,
		fmt.Sprintf("changing status from %s to %s requires an explicit override", from, to))
}
