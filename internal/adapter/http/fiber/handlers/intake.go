package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/ports"
	"github.com/aniket045123/craftmyresume/internal/service/intake"
)

// IntakeHandler serves the public order and contact forms.
type IntakeHandler struct {
	service ports.IntakeService
	log     *zap.Logger
}

func NewIntakeHandler(service ports.IntakeService, log *zap.Logger) *IntakeHandler {
	return &IntakeHandler{
		service: service,
		log:     log,
	}
}

func (h *IntakeHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/contact", h.Contact)
	router.Post("/resume-update", h.ResumeUpdate)
	router.Post("/resume-build", h.ResumeBuild)
}

// invalidInput writes the 400 body shared by every form.
func invalidInput(c *fiber.Ctx, err error) error {
	issues := []domain.FieldIssue{}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		issues = verr.Issues
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Invalid input",
		"issues": issues,
	})
}

func (h *IntakeHandler) Contact(c *fiber.Ctx) error {
	var in ports.ContactInput
	// An unparseable body is validated as an empty form.
	_ = c.BodyParser(&in)

	in.UserAgent = c.Get(fiber.HeaderUserAgent)
	in.Referrer = c.Get(fiber.HeaderReferer)
	if in.Referrer == "" {
		in.Referrer = c.Get("Referrer")
	}
	in.IP = c.Get(fiber.HeaderXForwardedFor)

	result, err := h.service.SubmitContact(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return invalidInput(c, err)
		}
		h.log.Error("Contact submission failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save submission"})
	}
	return c.JSON(result)
}

func (h *IntakeHandler) ResumeUpdate(c *fiber.Ctx) error {
	in := ports.ResumeUpdateInput{
		CustomerName:      c.FormValue("customerName"),
		Email:             strings.TrimSpace(c.FormValue("email")),
		Phone:             c.FormValue("phone"),
		AdditionalDetails: c.FormValue("additionalDetails"),
	}

	fh, err := c.FormFile("resumeFile")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unreadable resume file"})
		}
		defer f.Close()
		in.File = &ports.UploadedFile{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Body:        f,
		}
	case errors.Is(err, fasthttp.ErrMissingFile), errors.Is(err, fasthttp.ErrNoMultipartForm):
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid multipart form"})
	}

	order, err := h.service.SubmitResumeUpdate(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return invalidInput(c, err)
		case errors.Is(err, intake.ErrUploadFailed):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "File upload failed"})
		}
		h.log.Error("Resume update submission failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Resume update request submitted successfully",
		"data":    order,
	})
}

func (h *IntakeHandler) ResumeBuild(c *fiber.Ctx) error {
	var in ports.ResumeBuildInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	order, err := h.service.SubmitResumeBuild(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return invalidInput(c, err)
		}
		h.log.Error("Resume build submission failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Resume build request submitted successfully",
		"data":    order,
	})
}
