package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/services"
)

// SavingsHandler handles global savings requests.
type SavingsHandler struct {
	savingsService services.SavingsServicer
	auditService   services.AuditServicer
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(savingsService services.SavingsServicer, auditService services.AuditServicer) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService, auditService: auditService}
}

// GetGlobalSavings handles reading the global savings balance.
// @Summary     Get global savings
// @Description Get the global savings balance fed by transfers from budgets
// @Tags        savings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings [get]
func (h *SavingsHandler) GetGlobalSavings(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.savingsService.GetGlobalSavings()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// TransferToSavings handles moving part of a budget's remaining balance into global savings.
// @Summary     Transfer to savings
// @Description Record a paid savings expense on the budget and add the amount to global savings, atomically
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string        true "Budget ID"
// @Param       request body AmountRequest true "Amount to set aside"
// @Success     201 {object} services.SavingsTransfer "Transfer recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     422 {object} ErrorResponse "Amount exceeds the remaining balance"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/savings-transfers [post]
func (h *SavingsHandler) TransferToSavings(c *gin.Context) {
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

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.savingsService.TransferToSavings(budgetID, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "TRANSFER_TO_SAVINGS", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount.StringFixed(2), "expense_id": result.Expense.ID})

	c.JSON(http.StatusCreated, result)
}
