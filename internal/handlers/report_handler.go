package handlers

import (
	"errors"

	"github.com/courier-app/courier-backend/internal/dto"
	"github.com/courier-app/courier-backend/internal/middleware"
	"github.com/courier-app/courier-backend/internal/pagination"
	"github.com/courier-app/courier-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CreateReport files a report against a private message on behalf of
// the authenticated user.
func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	report, err := h.reportService.CreateReport(c.Context(), userID, &req)
	if err != nil {
		status := fiber.StatusBadRequest
		switch {
		case errors.Is(err, services.ErrMessageNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, services.ErrNotParticipant):
			status = fiber.StatusForbidden
		}
		return c.Status(status).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReport returns the full view for a single report.
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	report, err := h.reportService.GetReport(c.Context(), reportID)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch report",
		})
	}

	return c.JSON(report)
}

// ListReports serves the moderation queue. unresolved_only=true gives
// the pending backlog oldest-first; otherwise all reports newest-first.
func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	unresolvedOnly := c.QueryBool("unresolved_only", false)

	page, err := queryIntPtr(c, "page")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid page parameter",
		})
	}
	limit, err := queryIntPtr(c, "limit")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid limit parameter",
		})
	}

	reports, err := h.reportService.ListReports(c.Context(), unresolvedOnly, page, limit)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalid) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}

	return c.JSON(fiber.Map{
		"reports":         reports,
		"unresolved_only": unresolvedOnly,
	})
}

// CountUnresolved returns the size of the pending backlog.
func (h *ReportHandler) CountUnresolved(c *fiber.Ctx) error {
	count, err := h.reportService.CountUnresolved(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to count reports",
		})
	}

	return c.JSON(fiber.Map{"count": count})
}

// ResolveReport marks a report handled by the authenticated admin.
func (h *ReportHandler) ResolveReport(c *fiber.Ctx) error {
	resolverID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	if err := h.reportService.ResolveReport(c.Context(), reportID, resolverID); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to resolve report",
		})
	}

	return c.JSON(fiber.Map{"message": "Report resolved"})
}
