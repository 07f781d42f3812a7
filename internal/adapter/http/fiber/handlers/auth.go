package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/ports"
	"github.com/aniket045123/craftmyresume/internal/service/auth"
)

type AuthHandler struct {
	service ports.AuthService
	limiter fiber.Handler
	log     *zap.Logger
}

func NewAuthHandler(service ports.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		limiter: func(c *fiber.Ctx) error { return c.Next() },
		log:     log,
	}
}

// WithLimiter guards the routes that take an email address from anonymous
// callers (login and the privilege check).
func (h *AuthHandler) WithLimiter(limiter fiber.Handler) *AuthHandler {
	if limiter != nil {
		h.limiter = limiter
	}
	return h
}

// RegisterRoutes mounts the public admin sign-in routes under router
// (normally /api/admin).
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/auth/login", h.limiter, h.Login)
	router.Post("/auth/refresh", h.RefreshToken)
	router.Post("/auth/logout", h.Logout)
	router.Post("/check-privileges", h.limiter, h.CheckPrivileges)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}

	tokens, profile, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if auth.IsAuthError(err) {
			h.log.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
		}
		h.log.Error("Login error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.JSON(fiber.Map{
		"tokens": tokens,
		"user":   profile,
	})
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Refresh token is required"})
	}

	tokens, err := h.service.RefreshToken(c.UserContext(), req.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired refresh token"})
	}
	return c.JSON(fiber.Map{"tokens": tokens})
}

// Logout revokes the bearer access token and, when given, the refresh token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req RefreshRequest
	_ = c.BodyParser(&req)

	tokens := []string{req.RefreshToken}
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		tokens = append(tokens, strings.TrimPrefix(header, "Bearer "))
	}

	for _, token := range tokens {
		if token == "" {
			continue
		}
		if err := h.service.Logout(c.UserContext(), token); err != nil {
			h.log.Error("Logout failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to revoke token"})
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) CheckPrivileges(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is required"})
	}

	profile, err := h.service.CheckPrivileges(c.UserContext(), strings.TrimSpace(req.Email))
	if err != nil {
		h.log.Error("Admin privilege check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check admin privileges"})
	}

	return c.JSON(fiber.Map{
		"isAdmin":   profile != nil,
		"adminUser": profile,
	})
}
