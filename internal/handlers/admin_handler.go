package handlers

import (
	"errors"

	"cineview-backend/internal/services"
	"cineview-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	service services.ModerationService
	logger  *logrus.Logger
}

func NewAdminHandler(service services.ModerationService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger,
	}
}

// GetDashboard godoc
// @Summary Admin dashboard counters
// @Description Totals for users, films, reviews, articles, and pending reports
// @Tags admin
// @Produce json
// @Success 200 {object} utils.StandardResponse "Dashboard stats"
// @Failure 403 {object} utils.StandardResponse "Admin access required"
// @Router /admin/dashboard [get]
func (h *AdminHandler) GetDashboard(c *fiber.Ctx) error {
	stats, err := h.service.DashboardStats(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load dashboard stats")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Dashboard retrieved successfully", stats)
}

// GetReports godoc
// @Summary List pending reports
// @Description Pending reports with review, film, and reporter context
// @Tags admin
// @Produce json
// @Success 200 {object} utils.StandardResponse "Pending reports"
// @Failure 403 {object} utils.StandardResponse "Admin access required"
// @Router /admin/reports [get]
func (h *AdminHandler) GetReports(c *fiber.Ctx) error {
	reports, err := h.service.PendingReports(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list pending reports")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list reports")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Reports retrieved successfully", reports)
}

// HandleReport godoc
// @Summary Resolve a report
// @Description Mark the reported review as a spoiler or delete it, then resolve the report
// @Tags admin
// @Accept json
// @Produce json
// @Param request body HandleReportRequest true "Resolution"
// @Success 200 {object} utils.StandardResponse "Report resolved"
// @Failure 403 {object} utils.StandardResponse "Admin access required"
// @Failure 404 {object} utils.StandardResponse "Report not found"
// @Router /admin/reports/handle [post]
func (h *AdminHandler) HandleReport(c *fiber.Ctx) error {
	var req HandleReportRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	if err := h.service.HandleReport(c.Context(), req.ReportID, req.Action); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Report not found")
		case errors.Is(err, services.ErrUnknownAction):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown report action")
		}
		h.logger.WithError(err).WithField("report_id", req.ReportID).Error("Failed to handle report")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to handle report")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Report has been resolved", nil)
}
