package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/services"
)

// PaymentHandler handles payment-related requests.
type PaymentHandler struct {
	paymentService services.PaymentServicer
	auditService   services.AuditServicer
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService services.PaymentServicer, auditService services.AuditServicer) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, auditService: auditService}
}

// CreatePaymentRequest represents the request payload for recording a payment.
type CreatePaymentRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate string           `json:"payment_date" binding:"required,datetime=2006-01-02"`
	Notes       string           `json:"notes" binding:"max=1000"`
}

// CreatePayment handles recording a payment against an expense.
// @Summary     Record a payment
// @Description Record a partial or full payment. The expense becomes paid once fully settled.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Expense ID"
// @Param       request body CreatePaymentRequest true "Payment details"
// @Success     201 {object} services.PaymentResult "Payment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     422 {object} ErrorResponse "Payment exceeds the remaining balance"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id}/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
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

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate("payment_date", req.PaymentDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.paymentService.AddPayment(expenseID, *req.Amount, date, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PAYMENT", "payment", result.Payment.ID, c.ClientIP(),
		map[string]interface{}{"expense_id": expenseID, "amount": req.Amount.StringFixed(2)})

	c.JSON(http.StatusCreated, result)
}

// GetPayments handles listing the payments of an expense.
// @Summary     Get payments
// @Description List the payments of an expense in chronological order
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {array}  models.Payment "Payments"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id}/payments [get]
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	payments, err := h.paymentService.ListPayments(expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// DeletePayment handles deleting a payment.
// @Summary     Delete payment
// @Description Delete a payment. A paid expense returns to pending when a balance reappears.
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payment ID"
// @Success     200 {object} MessageResponse "Payment deleted"
// @Failure     400 {object} ErrorResponse "Invalid payment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paymentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.paymentService.DeletePayment(paymentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PAYMENT", "payment", paymentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
