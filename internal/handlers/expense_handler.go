package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/services"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/uuid"
)

// uncategorizedFilter is the category_id query value selecting expenses without a category.
const uncategorizedFilter = "none"

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// CreateExpenseRequest represents the request payload for creating an expense.
// When is_recurring is set the expense repeats at frequency until
// recurring_end_date or the budget end, whichever comes first.
type CreateExpenseRequest struct {
	Description      string           `json:"description" binding:"required,min=1,max=255"`
	Amount           *decimal.Decimal `json:"amount" binding:"required"`
	CategoryID       *string          `json:"category_id" binding:"omitempty,uuid"`
	Date             string           `json:"date" binding:"required,datetime=2006-01-02"`
	Status           string           `json:"status" binding:"omitempty,expense_status"`
	Notes            string           `json:"notes" binding:"max=1000"`
	IsRecurring      bool             `json:"is_recurring"`
	Frequency        string           `json:"frequency" binding:"required_if=IsRecurring true,omitempty,frequency"`
	RecurringEndDate *string          `json:"recurring_end_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateExpenseRequest represents the request payload for updating an expense.
type UpdateExpenseRequest struct {
	Description   *string          `json:"description" binding:"omitempty,min=1,max=255"`
	Amount        *decimal.Decimal `json:"amount"`
	CategoryID    *string          `json:"category_id" binding:"omitempty,uuid"`
	ClearCategory bool             `json:"clear_category"`
	ExpenseDate   *string          `json:"expense_date" binding:"omitempty,datetime=2006-01-02"`
	Notes         *string          `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateExpenseStatusRequest represents the request payload for changing an expense status.
// Override is required to move an expense out of the paid status.
type UpdateExpenseStatusRequest struct {
	Status   string `json:"status" binding:"required,expense_status"`
	Override bool   `json:"override"`
}

// ExpenseListQuery holds the query parameters of the expense list.
type ExpenseListQuery struct {
	Window     string `form:"window" binding:"omitempty,oneof=all month"`
	Month      string `form:"month" binding:"omitempty,datetime=2006-01"`
	Search     string `form:"q" binding:"max=100"`
	Status     string `form:"status" binding:"omitempty,expense_status"`
	CategoryID string `form:"category_id"`
}

// CreateExpense handles recording an expense on a budget.
// @Summary     Create an expense
// @Description Record a single expense, or expand a recurring one into its occurrences (at most 365)
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Budget ID"
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} services.ExpenseCreation "Expenses created"
// @Success     200 {object} services.ExpenseCreation "No occurrence created, with a warning"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget or category not found"
// @Failure     422 {object} ErrorResponse "Too many occurrences"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
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

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}
	recurringEnd, err := parseOptionalDate("recurring_end_date", req.RecurringEndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.expenseService.CreateExpense(budgetID, engine.ExpenseRequest{
		Description:      req.Description,
		Amount:           *req.Amount,
		CategoryID:       req.CategoryID,
		Date:             date,
		Status:           models.ExpenseStatus(req.Status),
		Notes:            req.Notes,
		IsRecurring:      req.IsRecurring,
		Frequency:        engine.Frequency(req.Frequency),
		RecurringEndDate: recurringEnd,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	if result.Created == 0 {
		c.JSON(http.StatusOK, result)
		return
	}

	h.auditService.Log(userID, "CREATE_EXPENSE", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{
			"description": req.Description,
			"amount":      req.Amount.StringFixed(2),
			"recurring":   req.IsRecurring,
			"created":     result.Created,
		})

	c.JSON(http.StatusCreated, result)
}

// GetExpenses handles listing the expenses of a budget.
// @Summary     Get expenses
// @Description List the expenses of a budget, filtered by time window, description search, status and category
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id          path  string true  "Budget ID"
// @Param       window      query string false "all (default) or month"
// @Param       month       query string false "Month of the window as YYYY-MM (default current month)"
// @Param       q           query string false "Case-insensitive description search"
// @Param       status      query string false "pending, paid or cancelled"
// @Param       category_id query string false "Category ID, or none for uncategorized expenses"
// @Success     200 {object} services.ExpenseList "Filtered expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ExpenseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := query.filter()
	if err != nil {
		respondWithError(c, err)
		return
	}

	list, err := h.expenseService.ListExpenses(budgetID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// filter converts the query parameters into an expense filter.
func (q ExpenseListQuery) filter() (engine.ExpenseFilter, error) {
	filter := engine.ExpenseFilter{Window: engine.WholeBudget(), Search: q.Search}

	if q.Window == string(engine.WindowMonth) || q.Month != "" {
		filter.Window = engine.TimeWindow{Kind: engine.WindowMonth}
		if q.Month != "" {
			month, err := time.Parse("2006-01", q.Month)
			if err != nil {
				return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be a YYYY-MM value")
			}
			filter.Window.Month = month
		}
	}

	if q.Status != "" {
		status := models.ExpenseStatus(q.Status)
		filter.Status = &status
	}

	switch {
	case q.CategoryID == uncategorizedFilter:
		filter.Uncategorized = true
	case q.CategoryID != "":
		id, err := uuid.Parse(q.CategoryID)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "category_id must be a UUID or none")
		}
		filter.CategoryID = &id
	}

	return filter, nil
}

// GetExpense handles retrieving an expense with its payments.
// @Summary     Get expense by ID
// @Description Get an expense with its payments, amount paid and remaining balance
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} services.ExpenseDetail "Expense details"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense handles updating an expense.
// @Summary     Update expense
// @Description Update the description, amount, category, date or notes of an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Updated expense details"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input or expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseOptionalDate("expense_date", req.ExpenseDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(expenseID, services.ExpenseUpdate{
		Description:   req.Description,
		Amount:        req.Amount,
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
		ExpenseDate:   date,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_EXPENSE", "expense", expense.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpenseStatus handles changing the status of an expense.
// @Summary     Update expense status
// @Description Change the status of an expense. Leaving the paid status requires override.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                     true "Expense ID"
// @Param       request body UpdateExpenseStatusRequest true "New status"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input or expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     409 {object} ErrorResponse "Transition requires override"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id}/status [patch]
func (h *ExpenseHandler) UpdateExpenseStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpenseStatus(expenseID, models.ExpenseStatus(req.Status), req.Override)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_EXPENSE_STATUS", "expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"status": req.Status, "override": req.Override})

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting an expense.
// @Summary     Delete expense
// @Description Delete an expense and its payments
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_EXPENSE", "expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
