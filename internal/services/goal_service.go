package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

// goalService handles allocation plan business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// GetAllocationPlan returns the allocation plan of a budget, empty when none is stored.
func (s *goalService) GetAllocationPlan(budgetID string) (engine.AllocationPlan, error) {
	if _, err := findBudget(s.db, budgetID); err != nil {
		return nil, err
	}
	return loadAllocationPlan(s.db, budgetID)
}

// SaveAllocationPlan validates and stores an allocation plan. Zero entries
// are dropped and an empty plan deletes the stored goal, so saving an empty
// plan twice is a no-op. The returned goal is nil when nothing is stored.
func (s *goalService) SaveAllocationPlan(budgetID string, plan engine.AllocationPlan) (*models.Goal, error) {
	if _, err := findBudget(s.db, budgetID); err != nil {
		return nil, err
	}
	if err := engine.ValidatePlan(plan); err != nil {
		return nil, err
	}

	pruned := engine.PrunePlan(plan)
	for categoryID := range pruned {
		if err := checkCategoryExists(s.db, categoryID); err != nil {
			return nil, err
		}
	}

	var saved *models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var goal models.Goal
		err := tx.Where("budget_id = ? AND type = ?", budgetID, models.GoalTypeCategoryAllocationPlan).
			First(&goal).Error
		found := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if len(pruned) == 0 {
			if found {
				return tx.Delete(&goal).Error
			}
			return nil
		}

		goal.Details = models.GoalDetails{Allocations: pruned}
		if !found {
			goal.BudgetID = budgetID
			goal.Type = models.GoalTypeCategoryAllocationPlan
			if err := tx.Create(&goal).Error; err != nil {
				return err
			}
		} else if err := tx.Model(&goal).Select("details").Updates(&goal).Error; err != nil {
			return err
		}
		saved = &goal
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return saved, nil
}

// loadAllocationPlan reads the stored allocation plan of a budget.
func loadAllocationPlan(db *gorm.DB, budgetID string) (engine.AllocationPlan, error) {
	var goal models.Goal
	err := db.Where("budget_id = ? AND type = ?", budgetID, models.GoalTypeCategoryAllocationPlan).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return engine.AllocationPlan{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return engine.AllocationPlan(goal.Details.Allocations), nil
}
