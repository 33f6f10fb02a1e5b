package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the dashboard.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	invoiceService   portssvc.InvoiceReaderSvc
}

func newReportingHandler(rs portssvc.ReportingService, is portssvc.InvoiceReaderSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		invoiceService:   is,
	}
}

// registerReportingRoutes registers the dashboard routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, invoiceService portssvc.InvoiceReaderSvc) {
	h := newReportingHandler(reportingService, invoiceService)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("", h.getDashboard)
		dashboard.GET("/recent", h.getRecentInvoices)
	}
}

// getDashboard godoc
// @Summary Dashboard figures
// @Description Summary totals plus six months of revenue and pending/overdue amounts, labelled in the user's locale.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "A stored invoice cannot be aggregated"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	report, err := h.reportingService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to generate dashboard")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getRecentInvoices godoc
// @Summary Recent invoices
// @Tags dashboard
// @Produce json
// @Param limit query int false "Number of invoices" default(5)
// @Success 200 {array} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/recent [get]
func (h *reportingHandler) getRecentInvoices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
		return
	}

	invoices, err := h.invoiceService.ListRecentInvoices(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err, "Failed to list recent invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponses(invoices))
}
