package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/services"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/uuid"
)

// GoalHandler handles allocation plan requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// AllocationPlanRequest maps category IDs to target percentages of the budget total.
type AllocationPlanRequest struct {
	Allocations map[string]int `json:"allocations" binding:"required"`
}

// AllocationPlanResponse is the stored allocation plan of a budget.
type AllocationPlanResponse struct {
	BudgetID    string         `json:"budget_id"`
	Allocations map[string]int `json:"allocations"`
	Total       int            `json:"total"`
}

// GetAllocationPlan handles reading the allocation plan of a budget.
// @Summary     Get allocation plan
// @Description Get the category allocation plan of a budget; empty when none is defined
// @Tags        allocation-plans
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} AllocationPlanResponse "Allocation plan"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/allocation-plan [get]
func (h *GoalHandler) GetAllocationPlan(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.goalService.GetAllocationPlan(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, planResponse(budgetID, plan))
}

// SaveAllocationPlan handles replacing the allocation plan of a budget.
// @Summary     Save allocation plan
// @Description Replace the allocation plan. 0% entries are dropped and an empty plan removes it.
// @Tags        allocation-plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Budget ID"
// @Param       request body AllocationPlanRequest true "Allocations"
// @Success     200 {object} AllocationPlanResponse "Stored allocation plan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget or category not found"
// @Failure     422 {object} ErrorResponse "Allocations exceed 100%"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/allocation-plan [put]
func (h *GoalHandler) SaveAllocationPlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AllocationPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plan := make(engine.AllocationPlan, len(req.Allocations))
	for categoryID, pct := range req.Allocations {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category ID "+categoryID))
			return
		}
		plan[id] = pct
	}

	goal, err := h.goalService.SaveAllocationPlan(budgetID, plan)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stored := engine.AllocationPlan{}
	if goal != nil {
		stored = goal.Details.Allocations
	}

	h.auditService.Log(userID, "SAVE_ALLOCATION_PLAN", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"allocations": stored})

	c.JSON(http.StatusOK, planResponse(budgetID, stored))
}

func planResponse(budgetID string, plan engine.AllocationPlan) AllocationPlanResponse {
	if plan == nil {
		plan = engine.AllocationPlan{}
	}
	return AllocationPlanResponse{BudgetID: budgetID, Allocations: plan, Total: plan.Sum()}
}
