package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/mocks"
	"github.com/aniket045123/craftmyresume/pkg/config"
)

func decode(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

func TestAuthRequired(t *testing.T) {
	auth := &mocks.MockAuthService{
		ValidateTokenFunc: func(ctx context.Context, token string) (*domain.AdminUser, error) {
			if token != "good" {
				return nil, errors.New("bad token")
			}
			return &domain.AdminUser{ID: "u1", Role: domain.AdminRoleStaff, IsActive: true}, nil
		},
	}

	app := fiber.New()
	app.Get("/private", AuthRequired(auth), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"invalid token", "Bearer nope", fiber.StatusUnauthorized},
		{"valid token", "Bearer good", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRequireRole(t *testing.T) {
	app := fiber.New()
	setRole := func(role domain.AdminRole) fiber.Handler {
		return func(c *fiber.Ctx) error {
			c.Locals("user_role", role)
			return c.Next()
		}
	}
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }

	app.Post("/staff", setRole(domain.AdminRoleStaff), RequireRole(domain.AdminRoleOwner, domain.AdminRoleAdmin), ok)
	app.Post("/owner", setRole(domain.AdminRoleOwner), RequireRole(domain.AdminRoleOwner, domain.AdminRoleAdmin), ok)

	resp, err := app.Test(httptest.NewRequest("POST", "/staff", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/owner", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"), "burst exhausted")
	assert.True(t, rl.allow("10.0.0.2"), "buckets are per IP")

	now = base.Add(time.Second)
	assert.True(t, rl.allow("10.0.0.1"), "bucket refills over time")
}

func TestRateLimiter_SweepsIdleVisitorsOncePerTTL(t *testing.T) {
	rl := NewRateLimiter(10, 10)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	rl.now = func() time.Time { return now }

	rl.allow("10.0.0.1")
	now = base.Add(time.Minute)
	rl.allow("10.0.0.2")

	// 11 minutes after the first sweep: .1 is idle past the ttl, .2 is not.
	now = base.Add(11 * time.Minute)
	rl.allow("10.0.0.3")
	assert.Len(t, rl.visitors, 2)
	assert.NotContains(t, rl.visitors, "10.0.0.1")

	// .2 has gone idle too, but the next sweep is not due yet.
	now = base.Add(12 * time.Minute)
	rl.allow("10.0.0.4")
	assert.Len(t, rl.visitors, 3)
	assert.Contains(t, rl.visitors, "10.0.0.2")

	now = base.Add(21 * time.Minute)
	rl.allow("10.0.0.4")
	assert.Len(t, rl.visitors, 2)
	assert.NotContains(t, rl.visitors, "10.0.0.2")
}

func TestRateLimit_Handler(t *testing.T) {
	app := fiber.New()
	app.Post("/api/contact", RateLimit(config.RateLimitingConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 1}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/api/contact", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/api/contact", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimit_Disabled(t *testing.T) {
	app := fiber.New()
	app.Get("/", RateLimit(config.RateLimitingConfig{Enabled: false}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Get("/missing", func(c *fiber.Ctx) error { return domain.ErrNotFound })
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return &domain.ValidationError{Issues: []domain.FieldIssue{{Field: "email", Message: "is required"}}}
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("pq: connection refused") })
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusConflict, "conflict") })

	tests := []struct {
		path   string
		status int
		msg    string
	}{
		{"/missing", fiber.StatusNotFound, "not found"},
		{"/invalid", fiber.StatusBadRequest, "validation failed: email is required"},
		{"/boom", fiber.StatusInternalServerError, "Internal server error"},
		{"/fiber", fiber.StatusConflict, "conflict"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.msg, decode(t, resp.Body)["error"])
		})
	}
}

func TestCircuitBreaker_OpensAfterServerFailures(t *testing.T) {
	app := fiber.New()
	app.Use(CircuitBreaker(config.CircuitBreakerConfig{
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.6,
	}, zap.NewNop()))
	app.Get("/fail", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "db down"})
	})

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestCircuitBreaker_IgnoresClientErrors(t *testing.T) {
	app := fiber.New()
	app.Use(CircuitBreaker(config.CircuitBreakerConfig{MaxRequests: 1, Timeout: time.Minute}, zap.NewNop()))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "nope"})
	})

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	}
}

func corsApp(cfg config.CORSConfig) *fiber.App {
	app := fiber.New()
	app.Use(NewCORS(cfg))
	app.Get("/api/admin/stats", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func preflight(origin string) *http.Request {
	req := httptest.NewRequest("OPTIONS", "/api/admin/stats", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	return req
}

func TestCORS_PreflightFromSite(t *testing.T) {
	app := corsApp(config.CORSConfig{
		SiteURL:        "https://craftmyresume.com/",
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		MaxAge:         3600,
	})

	resp, err := app.Test(preflight("https://craftmyresume.com"))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://craftmyresume.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Equal(t, "3600", resp.Header.Get("Access-Control-Max-Age"))
}

func TestCORS_RejectsOtherOrigins(t *testing.T) {
	app := corsApp(config.CORSConfig{SiteURL: "https://craftmyresume.com"})

	resp, err := app.Test(preflight("https://evil.example.net"))

	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardIsIgnored(t *testing.T) {
	app := corsApp(config.CORSConfig{AllowedOrigins: []string{"*"}})

	req := httptest.NewRequest("GET", "/api/admin/stats", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAllowedOrigins(t *testing.T) {
	got := AllowedOrigins(config.CORSConfig{
		SiteURL:        "https://CraftMyResume.com/pricing",
		AllowedOrigins: []string{"http://localhost:3000", "*", "https://craftmyresume.com", "ftp://files.example.com", " "},
	})
	assert.Equal(t, []string{"https://craftmyresume.com", "http://localhost:3000"}, got)
}
