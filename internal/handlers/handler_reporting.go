package handlers

import (
	"net/http"
	"time"

	"github.com/famled/family_finance_app/internal/core/domain"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/currency"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// ReportingHandler serves the family dashboard.
type ReportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// NewReportingHandler creates a new ReportingHandler.
func NewReportingHandler(rs portssvc.ReportingSvcFacade) *ReportingHandler {
	return &ReportingHandler{reportingService: rs}
}

// registerReportingRoutes sets up reporting routes under /families/:familyID.
func registerReportingRoutes(families *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := NewReportingHandler(reportingService)

	families.GET("/:familyID/dashboard", h.GetDashboard)
}

// GetDashboard godoc
// @Summary Family dashboard
// @Description Aggregated expense and income totals over the window, converted into the family's display currency. Defaults to the last 12 months.
// @Tags reporting
// @Produce json
// @Param familyID path string true "Family ID"
// @Param fromDate query string false "Window start (YYYY-MM-DD)"
// @Param toDate query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /families/{familyID}/dashboard [get]
func (h *ReportingHandler) GetDashboard(c *gin.Context) {
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date filter, expected YYYY-MM-DD"})
		return
	}

	var from, to time.Time
	if req.FromDate != nil {
		from = *req.FromDate
	}
	if req.ToDate != nil {
		to = *req.ToDate
	}

	summary, err := h.reportingService.GetDashboardSummary(c.Request.Context(), c.Param("familyID"), from, to, callerID, callerRole)
	if err != nil {
		respondError(c, err)
		return
	}

	formatTotal := func(ct domain.CategoryTotal) string {
		return currency.Format(ct.Total, summary.DisplayCurrencyCode)
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(summary, formatTotal, currency.Format(summary.Balance, summary.DisplayCurrencyCode)))
}
