package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
)

// MoneyScale is the number of decimals amounts are stored with.
const MoneyScale = 2

// CheckAmount rejects amounts that are not strictly positive or that carry
// more than MoneyScale significant decimals. Trailing zeros are accepted.
func CheckAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, field+" must be greater than zero")
	}
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("%s must not have more than %d decimals", field, MoneyScale))
	}
	return nil
}
