package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/adapter/http/fiber/middleware"
	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/ports"
)

// AdminHandler serves the authenticated back-office API.
type AdminHandler struct {
	admin     ports.AdminService
	analytics ports.AnalyticsService
	settings  ports.SettingsService
	log       *zap.Logger
}

func NewAdminHandler(admin ports.AdminService, analytics ports.AnalyticsService, settings ports.SettingsService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		admin:     admin,
		analytics: analytics,
		settings:  settings,
		log:       log,
	}
}

// RegisterRoutes expects router to already require authentication.
// Destructive and configuration routes are limited to owners and admins.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	managers := middleware.RequireRole(domain.AdminRoleOwner, domain.AdminRoleAdmin)

	router.Get("/stats", h.Stats)
	router.Get("/analytics", h.Analytics)
	router.Get("/customers", h.Customers)
	router.Get("/requests", h.ListRequests)
	router.Patch("/requests", h.UpdateRequest)
	router.Get("/files", h.ListFiles)
	router.Delete("/files", managers, h.DeleteFile)
	router.Get("/settings", h.GetSettings)
	router.Post("/settings", managers, h.SaveSettings)
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.GetDashboardStats(c.UserContext())
	if err != nil {
		h.log.Error("Dashboard stats failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch dashboard statistics"})
	}
	return c.JSON(stats)
}

func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	report, err := h.analytics.GetReport(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to fetch analytics data",
			"details": err.Error(),
		})
	}
	return c.JSON(report)
}

func (h *AdminHandler) Customers(c *fiber.Ctx) error {
	page, err := h.admin.ListCustomers(c.UserContext(), domain.CustomerFilter{
		Search: c.Query("search"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 25),
	})
	if err != nil {
		h.log.Error("Customer listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(page)
}

func (h *AdminHandler) ListRequests(c *fiber.Ctx) error {
	page, err := h.admin.ListRequests(c.UserContext(), domain.RequestFilter{
		Search: c.Query("search"),
		Status: c.Query("status", "all"),
		Type:   c.Query("type", "all"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 25),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
		}
		h.log.Error("Request listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(page)
}

type updateRequestBody struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	RequestType string `json:"requestType"`
}

func (h *AdminHandler) UpdateRequest(c *fiber.Ctx) error {
	var body updateRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if body.ID == "" || body.Status == "" || body.RequestType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	err := h.admin.UpdateRequestStatus(c.UserContext(), body.ID, domain.RequestKind(body.RequestType), domain.RequestStatus(body.Status))
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"success": true})
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidRequestID),
		errors.Is(err, domain.ErrInvalidRequestType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Request not found"})
	default:
		h.log.Error("Status update failed", zap.String("id", body.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update status"})
	}
}

func (h *AdminHandler) ListFiles(c *fiber.Ctx) error {
	listing, err := h.admin.ListFiles(c.UserContext(), domain.FileFilter{
		Search: c.Query("search"),
		Type:   c.Query("type", "all"),
		Status: c.Query("status", "all"),
	})
	if err != nil {
		h.log.Error("File listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Storage error"})
	}
	return c.JSON(listing)
}

func (h *AdminHandler) DeleteFile(c *fiber.Ctx) error {
	name := c.Query("file")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File name required"})
	}

	if err := h.admin.DeleteFile(c.UserContext(), name); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid file name"})
		}
		h.log.Error("File delete failed", zap.String("file", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete file"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.UserContext())
	if err != nil {
		h.log.Error("Settings load failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(settings)
}

// SaveSettings replaces the settings document. Keys missing from the body
// fall back to their defaults.
func (h *AdminHandler) SaveSettings(c *fiber.Ctx) error {
	settings := domain.DefaultBusinessSettings()
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.settings.Save(c.UserContext(), settings); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return invalidInput(c, err)
		}
		h.log.Error("Settings save failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save settings"})
	}
	return c.JSON(fiber.Map{"success": true, "data": settings})
}
