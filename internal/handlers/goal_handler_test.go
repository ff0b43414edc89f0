package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
)

func setupGoalRouter(handler *GoalHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/budgets/:id/allocation-plan", handler.GetAllocationPlan)
	auth.PUT("/budgets/:id/allocation-plan", handler.SaveAllocationPlan)
	return r
}

func TestGoalHandler_GetAllocationPlan(t *testing.T) {
	t.Run("returns plan with total", func(t *testing.T) {
		svc := &mockGoalService{
			getAllocationPlanFn: func(string) (engine.AllocationPlan, error) {
				return engine.AllocationPlan{testCategoryID: 40}, nil
			},
		}
		r := setupGoalRouter(NewGoalHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/budgets/"+testBudgetID+"/allocation-plan", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["total"].(float64) != 40 {
			t.Errorf("expected total 40, got %v", result["total"])
		}
		if result["budget_id"] != testBudgetID {
			t.Errorf("expected budget_id %s, got %v", testBudgetID, result["budget_id"])
		}
	})

	t.Run("returns empty plan when none stored", func(t *testing.T) {
		svc := &mockGoalService{
			getAllocationPlanFn: func(string) (engine.AllocationPlan, error) { return nil, nil },
		}
		r := setupGoalRouter(NewGoalHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/budgets/"+testBudgetID+"/allocation-plan", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		allocations := parseJSON(t, rec)["allocations"].(map[string]interface{})
		if len(allocations) != 0 {
			t.Errorf("expected empty allocations, got %v", allocations)
		}
	})
}

func TestGoalHandler_SaveAllocationPlan(t *testing.T) {
	t.Run("returns stored plan", func(t *testing.T) {
		var captured engine.AllocationPlan
		svc := &mockGoalService{
			saveAllocationPlanFn: func(budgetID string, plan engine.AllocationPlan) (*models.Goal, error) {
				captured = plan
				return &models.Goal{
					BudgetID: budgetID,
					Type:     models.GoalTypeCategoryAllocationPlan,
					Details:  models.GoalDetails{Allocations: map[string]int{testCategoryID: 30}},
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupGoalRouter(NewGoalHandler(svc, audit))

		rec := doRequest(r, "PUT", "/budgets/"+testBudgetID+"/allocation-plan",
			`{"allocations":{"`+testCategoryID+`":30,"`+testExpenseID+`":0}}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(captured) != 2 || captured[testCategoryID] != 30 {
			t.Errorf("expected request plan to be passed through, got %v", captured)
		}
		result := parseJSON(t, rec)
		if result["total"].(float64) != 30 {
			t.Errorf("expected total 30, got %v", result["total"])
		}
		assertAudited(t, audit, "SAVE_ALLOCATION_PLAN")
	})

	t.Run("returns empty plan when cleared", func(t *testing.T) {
		svc := &mockGoalService{
			saveAllocationPlanFn: func(string, engine.AllocationPlan) (*models.Goal, error) { return nil, nil },
		}
		r := setupGoalRouter(NewGoalHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/budgets/"+testBudgetID+"/allocation-plan", `{"allocations":{}}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["total"].(float64) != 0 {
			t.Error("expected total 0")
		}
	})

	t.Run("returns 400 on malformed category key", func(t *testing.T) {
		r := setupGoalRouter(NewGoalHandler(&mockGoalService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/budgets/"+testBudgetID+"/allocation-plan", `{"allocations":{"travel":10}}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 422 when allocations exceed 100", func(t *testing.T) {
		svc := &mockGoalService{
			saveAllocationPlanFn: func(string, engine.AllocationPlan) (*models.Goal, error) {
				return nil, apperrors.ErrAllocationExceedsTotal
			},
		}
		r := setupGoalRouter(NewGoalHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/budgets/"+testBudgetID+"/allocation-plan",
			`{"allocations":{"`+testCategoryID+`":70,"`+testExpenseID+`":40}}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ALLOCATION_EXCEEDS_TOTAL")
	})
}
