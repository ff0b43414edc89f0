package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/export"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/services"
)

// ReportHandler handles budget report downloads.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetReport handles rendering the plain-text report of a budget.
// @Summary     Get budget report
// @Description Plain-text report of a budget, suitable for copy-paste
// @Tags        reports
// @Produce     plain
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {string} string "Report"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/report [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.BuildReport(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.String(http.StatusOK, report)
}

// ExportXLSX handles downloading a budget as a workbook.
// @Summary     Export budget
// @Description Download the expenses and category totals of a budget as an XLSX workbook
// @Tags        reports
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {file} file "Workbook"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/report.xlsx [get]
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.reportService.ExportBudgetXLSX(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"budget_%s.xlsx\"", budgetID))
	c.Data(http.StatusOK, export.ContentTypeXLSX, data)
}

// GetChart handles rendering the category pie chart of a budget.
// @Summary     Get category chart
// @Description PNG pie chart of the spending per category
// @Tags        reports
// @Produce     png
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {file} file "Chart"
// @Failure     400 {object} ErrorResponse "Invalid budget ID or nothing to chart"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/chart.png [get]
func (h *ReportHandler) GetChart(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.reportService.RenderCategoryChart(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}
