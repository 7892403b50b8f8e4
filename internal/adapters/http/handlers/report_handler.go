package handlers

import (
	"errors"

	"boutiqueos/internal/adapters/http/middleware"
	"boutiqueos/internal/core/domain"
	"boutiqueos/internal/core/services"
	"boutiqueos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles dashboard and period report endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard returns the tenant dashboard
// @Summary Dashboard
// @Description Today's and this month's totals, counts and recent sales
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	data, err := h.reportService.GetDashboard(c.Context(), tenantID)
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}
	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Sales returns the period sales report
// @Summary Period sales report
// @Description Aggregated sales for day, month, six_months or year
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param period query string false "day | month | six_months | year" default(day)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Forbidden(c, "This resource requires a tenant account")
	}

	period := c.Query("period", "day")
	report, err := h.reportService.GetPeriodReport(c.Context(), tenantID, period)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Unknown period")
		}
		return response.InternalServerError(c, "Failed to build report")
	}
	return response.Success(c, "Report retrieved successfully", report)
}
