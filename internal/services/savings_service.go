package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/logger"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

// savingsBalance is the JSON value of the global savings setting.
type savingsBalance struct {
	Balance decimal.Decimal `json:"balance"`
}

// savingsService handles global savings business logic.
type savingsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSavingsService creates a new SavingsServicer.
func NewSavingsService(db *gorm.DB) SavingsServicer {
	return &savingsService{db: db, now: time.Now}
}

// GetGlobalSavings returns the global savings balance, zero when none was
// ever recorded.
func (s *savingsService) GetGlobalSavings() (decimal.Decimal, error) {
	balance, _, err := readSavings(s.db, false)
	return balance, err
}

// TransferToSavings moves amount from the remaining balance of a budget into
// global savings. The paid savings expense and the balance increment are
// written in one transaction.
func (s *savingsService) TransferToSavings(budgetID string, amount decimal.Decimal) (*SavingsTransfer, error) {
	if err := engine.CheckAmount("amount", amount); err != nil {
		return nil, err
	}

	var result *SavingsTransfer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var budget models.Budget
		if err := forUpdate(tx).Where("id = ?", budgetID).First(&budget).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBudgetNotFound
			}
			return err
		}

		expenses, err := budgetExpenses(tx, budget.ID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(engine.Remaining(budget.TotalAmount, expenses)) {
			return apperrors.ErrInsufficientBudgetBalance
		}

		expense := &models.Expense{
			BudgetID:    budget.ID,
			Description: engine.SavingsDescription,
			Amount:      amount,
			ExpenseDate: engine.ClampToBudget(budget, s.now()),
			Status:      models.ExpenseStatusPaid,
			IsRecurring: false,
		}
		if err := tx.Create(expense).Error; err != nil {
			return err
		}

		balance, err := incrementSavings(tx, amount)
		if err != nil {
			return err
		}

		result = &SavingsTransfer{Expense: expense, Balance: balance}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("funds moved to global savings",
		"budget_id", budgetID,
		"amount", amount.StringFixed(2),
		"balance", result.Balance.StringFixed(2),
	)
	return result, nil
}

// readSavings loads the savings balance and reports whether the setting
// exists. lock holds the row until the surrounding transaction ends.
func readSavings(db *gorm.DB, lock bool) (decimal.Decimal, bool, error) {
	if lock {
		db = forUpdate(db)
	}
	var setting models.Setting
	err := db.Where(&models.Setting{Key: models.SettingKeyGlobalSavings}).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var value savingsBalance
	if err := json.Unmarshal([]byte(setting.Value), &value); err != nil {
		return decimal.Zero, true, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return value.Balance, true, nil
}

// incrementSavings adds amount to the savings balance and returns the new balance.
func incrementSavings(tx *gorm.DB, amount decimal.Decimal) (decimal.Decimal, error) {
	current, exists, err := readSavings(tx, true)
	if err != nil {
		return decimal.Zero, err
	}

	balance := current.Add(amount)
	data, err := json.Marshal(savingsBalance{Balance: balance})
	if err != nil {
		return decimal.Zero, err
	}

	setting := models.Setting{Key: models.SettingKeyGlobalSavings, Value: string(data)}
	if exists {
		err = tx.Model(&setting).Update("value", setting.Value).Error
	} else {
		err = tx.Create(&setting).Error
	}
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
