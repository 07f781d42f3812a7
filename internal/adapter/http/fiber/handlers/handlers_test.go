package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/adapter/http/fiber/middleware"
	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/mocks"
	"github.com/aniket045123/craftmyresume/internal/ports"
	"github.com/aniket045123/craftmyresume/internal/service/intake"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

func intakeApp(svc ports.IntakeService) *fiber.App {
	app := fiber.New()
	NewIntakeHandler(svc, newTestLogger()).RegisterRoutes(app.Group("/api"))
	return app
}

func TestContact_PassesRequestMetadata(t *testing.T) {
	// Arrange
	var got ports.ContactInput
	svc := &mocks.MockIntakeService{
		SubmitContactFunc: func(ctx context.Context, in ports.ContactInput) (*ports.ContactResult, error) {
			got = in
			return &ports.ContactResult{OK: true, Email: "not_sent", Reason: intake.ReasonMissingRecipient}, nil
		},
	}
	app := intakeApp(svc)
	req := jsonRequest("POST", "/api/contact", map[string]string{"name": "Ravi", "phone": "12345"})
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Referer", "https://craftmyresume.com/pricing")
	req.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.2")

	// Act
	resp, err := app.Test(req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "not_sent", body["email"])
	assert.Equal(t, intake.ReasonMissingRecipient, body["reason"])

	assert.Equal(t, "Ravi", got.Name)
	assert.Equal(t, "test-agent", got.UserAgent)
	assert.Equal(t, "https://craftmyresume.com/pricing", got.Referrer)
	assert.Equal(t, "198.51.100.4, 10.0.0.2", got.IP)
}

func TestContact_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", &domain.ValidationError{Issues: []domain.FieldIssue{{Field: "name", Message: "is required"}}}, fiber.StatusBadRequest, "Invalid input"},
		{"store", errors.New("db down"), fiber.StatusInternalServerError, "Failed to save submission"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mocks.MockIntakeService{
				SubmitContactFunc: func(ctx context.Context, in ports.ContactInput) (*ports.ContactResult, error) {
					return nil, tc.err
				},
			}
			resp, err := intakeApp(svc).Test(jsonRequest("POST", "/api/contact", map[string]string{}))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			body := decodeBody(t, resp.Body)
			assert.Equal(t, tc.msg, body["error"])
			if tc.status == fiber.StatusBadRequest {
				issues, ok := body["issues"].([]interface{})
				require.True(t, ok)
				assert.Len(t, issues, 1)
			}
		})
	}
}

func multipartRequest(t *testing.T, fields map[string]string, fileName, fileBody string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("resumeFile", fileName)
		require.NoError(t, err)
		_, err = io.WriteString(fw, fileBody)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest("POST", "/api/resume-update", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestResumeUpdate_WithFile(t *testing.T) {
	var got ports.ResumeUpdateInput
	var content string
	svc := &mocks.MockIntakeService{
		SubmitResumeUpdateFunc: func(ctx context.Context, in ports.ResumeUpdateInput) (*domain.ResumeUpdate, error) {
			got = in
			if in.File != nil {
				data, _ := io.ReadAll(in.File.Body)
				content = string(data)
			}
			return &domain.ResumeUpdate{ID: 3, OrderID: "UPD-1", CustomerName: in.CustomerName, Email: in.Email, Status: domain.RequestStatusPending}, nil
		},
	}

	req := multipartRequest(t, map[string]string{
		"customerName": "Meera",
		"email":        " meera@example.com ",
		"phone":        "999",
	}, "cv.pdf", "%PDF")
	resp, err := intakeApp(svc).Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Resume update request submitted successfully", body["message"])
	assert.Equal(t, "meera@example.com", got.Email)
	require.NotNil(t, got.File)
	assert.Equal(t, "cv.pdf", got.File.Name)
	assert.Equal(t, int64(4), got.File.Size)
	assert.Equal(t, "%PDF", content)
}

func TestResumeUpdate_WithoutFileAndUploadFailure(t *testing.T) {
	svc := &mocks.MockIntakeService{
		SubmitResumeUpdateFunc: func(ctx context.Context, in ports.ResumeUpdateInput) (*domain.ResumeUpdate, error) {
			if in.File == nil {
				return &domain.ResumeUpdate{ID: 1}, nil
			}
			return nil, fmt.Errorf("%w: bucket gone", intake.ErrUploadFailed)
		},
	}
	app := intakeApp(svc)

	resp, err := app.Test(multipartRequest(t, map[string]string{"customerName": "A", "email": "a@b.co"}, "", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(multipartRequest(t, map[string]string{"customerName": "A", "email": "a@b.co"}, "cv.pdf", "x"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "File upload failed", decodeBody(t, resp.Body)["error"])
}

func TestResumeBuild(t *testing.T) {
	svc := &mocks.MockIntakeService{
		SubmitResumeBuildFunc: func(ctx context.Context, in ports.ResumeBuildInput) (*domain.ResumeBuild, error) {
			assert.Equal(t, "Data Engineer", in.TargetRole)
			return &domain.ResumeBuild{ID: 9, OrderID: "BUILD-1", FullName: in.FullName}, nil
		},
	}

	resp, err := intakeApp(svc).Test(jsonRequest("POST", "/api/resume-build", map[string]string{
		"fullName":   "Arjun",
		"email":      "arjun@example.com",
		"targetRole": "Data Engineer",
	}))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "BUILD-1", data["order_id"])
}

func authApp(svc ports.AuthService) *fiber.App {
	app := fiber.New()
	NewAuthHandler(svc, newTestLogger()).RegisterRoutes(app.Group("/api/admin"))
	return app
}

func TestLogin(t *testing.T) {
	svc := &mocks.MockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (*domain.TokenPair, *domain.AdminProfile, error) {
			if password != "s3cret" {
				return nil, nil, domain.ErrInvalidCredentials
			}
			return &domain.TokenPair{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900},
				&domain.AdminProfile{ID: "u1", Email: email, Role: domain.AdminRoleOwner}, nil
		},
	}
	app := authApp(svc)

	resp, err := app.Test(jsonRequest("POST", "/api/admin/auth/login", LoginRequest{Email: "owner@example.com", Password: "nope"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/api/admin/auth/login", LoginRequest{Email: "owner@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/api/admin/auth/login", LoginRequest{Email: "owner@example.com", Password: "s3cret"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	tokens := body["tokens"].(map[string]interface{})
	assert.Equal(t, "a", tokens["access_token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "owner", user["role"])
}

func TestLogout_RevokesBothTokens(t *testing.T) {
	var revoked []string
	svc := &mocks.MockAuthService{
		LogoutFunc: func(ctx context.Context, token string) error {
			revoked = append(revoked, token)
			return nil
		},
	}
	req := jsonRequest("POST", "/api/admin/auth/logout", RefreshRequest{RefreshToken: "refresh-1"})
	req.Header.Set("Authorization", "Bearer access-1")

	resp, err := authApp(svc).Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.ElementsMatch(t, []string{"refresh-1", "access-1"}, revoked)
}

func TestCheckPrivileges(t *testing.T) {
	svc := &mocks.MockAuthService{
		CheckPrivilegesFunc: func(ctx context.Context, email string) (*domain.AdminProfile, error) {
			if email == "owner@example.com" {
				return &domain.AdminProfile{ID: "u1", Email: email}, nil
			}
			return nil, nil
		},
	}
	app := authApp(svc)

	resp, err := app.Test(jsonRequest("POST", "/api/admin/check-privileges", map[string]string{"email": "visitor@example.com"}))
	require.NoError(t, err)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, false, body["isAdmin"])
	assert.Nil(t, body["adminUser"])

	resp, err = app.Test(jsonRequest("POST", "/api/admin/check-privileges", map[string]string{"email": "owner@example.com"}))
	require.NoError(t, err)
	body = decodeBody(t, resp.Body)
	assert.Equal(t, true, body["isAdmin"])
	assert.NotNil(t, body["adminUser"])

	resp, err = app.Test(jsonRequest("POST", "/api/admin/check-privileges", map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthRoutes_RateLimited(t *testing.T) {
	lookups := 0
	svc := &mocks.MockAuthService{
		CheckPrivilegesFunc: func(ctx context.Context, email string) (*domain.AdminProfile, error) {
			lookups++
			return nil, nil
		},
	}
	app := fiber.New()
	NewAuthHandler(svc, newTestLogger()).
		WithLimiter(middleware.NewRateLimiter(0.001, 2).Handler()).
		RegisterRoutes(app.Group("/api/admin"))

	for i := 0; i < 2; i++ {
		resp, err := app.Test(jsonRequest("POST", "/api/admin/check-privileges", map[string]string{"email": "owner@example.com"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(jsonRequest("POST", "/api/admin/check-privileges", map[string]string{"email": "owner@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, 2, lookups)

	resp, err = app.Test(jsonRequest("POST", "/api/admin/auth/login", LoginRequest{Email: "owner@example.com", Password: "x"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode, "login shares the bucket")

	resp, err = app.Test(jsonRequest("POST", "/api/admin/auth/refresh", RefreshRequest{RefreshToken: "r"}))
	require.NoError(t, err)
	assert.NotEqual(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

type adminDeps struct {
	admin     *mocks.MockAdminService
	analytics *mocks.MockAnalyticsService
	settings  *mocks.MockSettingsService
}

func adminApp(role domain.AdminRole, deps adminDeps) *fiber.App {
	app := fiber.New()
	router := app.Group("/api/admin", func(c *fiber.Ctx) error {
		c.Locals("user_role", role)
		return c.Next()
	})
	NewAdminHandler(deps.admin, deps.analytics, deps.settings, newTestLogger()).RegisterRoutes(router)
	return app
}

func newAdminDeps() adminDeps {
	return adminDeps{
		admin:     &mocks.MockAdminService{},
		analytics: &mocks.MockAnalyticsService{},
		settings:  &mocks.MockSettingsService{},
	}
}

func TestAnalytics_FailureIncludesDetails(t *testing.T) {
	deps := newAdminDeps()
	deps.analytics.GetReportFunc = func(ctx context.Context) (*domain.Report, error) {
		return nil, errors.New("fetch leads: connection refused")
	}

	resp, err := adminApp(domain.AdminRoleStaff, deps).Test(httptest.NewRequest("GET", "/api/admin/analytics", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Failed to fetch analytics data", body["error"])
	assert.Equal(t, "fetch leads: connection refused", body["details"])
}

func TestAnalytics_Success(t *testing.T) {
	deps := newAdminDeps()
	deps.analytics.GetReportFunc = func(ctx context.Context) (*domain.Report, error) {
		return &domain.Report{KeyMetrics: domain.KeyMetrics{MonthlyRevenue: 998}}, nil
	}

	resp, err := adminApp(domain.AdminRoleStaff, deps).Test(httptest.NewRequest("GET", "/api/admin/analytics", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	metrics := body["keyMetrics"].(map[string]interface{})
	assert.Equal(t, float64(998), metrics["monthlyRevenue"])
}

func TestListRequests_PassesQuery(t *testing.T) {
	deps := newAdminDeps()
	var got domain.RequestFilter
	deps.admin.ListRequestsFunc = func(ctx context.Context, filter domain.RequestFilter) (*domain.RequestPage, error) {
		got = filter
		return &domain.RequestPage{Requests: []domain.RequestRow{}}, nil
	}

	resp, err := adminApp(domain.AdminRoleStaff, deps).Test(httptest.NewRequest("GET", "/api/admin/requests?search=asha&status=pending&page=2&limit=10", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.RequestFilter{Search: "asha", Status: "pending", Type: "all", Page: 2, Limit: 10}, got)
}

func TestUpdateRequest(t *testing.T) {
	deps := newAdminDeps()
	deps.admin.UpdateRequestStatusFunc = func(ctx context.Context, displayID string, kind domain.RequestKind, status domain.RequestStatus) error {
		switch displayID {
		case "UPD-404":
			return domain.ErrNotFound
		case "UPD-x":
			return domain.ErrInvalidRequestID
		}
		return nil
	}
	app := adminApp(domain.AdminRoleStaff, deps)

	cases := []struct {
		body   updateRequestBody
		status int
	}{
		{updateRequestBody{ID: "UPD-1", Status: "completed", RequestType: "update"}, fiber.StatusOK},
		{updateRequestBody{ID: "UPD-1", Status: "completed"}, fiber.StatusBadRequest},
		{updateRequestBody{ID: "UPD-x", Status: "completed", RequestType: "update"}, fiber.StatusBadRequest},
		{updateRequestBody{ID: "UPD-404", Status: "completed", RequestType: "update"}, fiber.StatusNotFound},
	}
	for _, tc := range cases {
		resp, err := app.Test(jsonRequest("PATCH", "/api/admin/requests", tc.body))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.body.ID)
	}
}

func TestDeleteFile_RequiresManagerRole(t *testing.T) {
	deleted := ""
	deps := newAdminDeps()
	deps.admin.DeleteFileFunc = func(ctx context.Context, name string) error {
		deleted = name
		return nil
	}

	resp, err := adminApp(domain.AdminRoleStaff, deps).Test(httptest.NewRequest("DELETE", "/api/admin/files?file=a.pdf", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Empty(t, deleted)

	app := adminApp(domain.AdminRoleAdmin, deps)
	resp, err = app.Test(httptest.NewRequest("DELETE", "/api/admin/files", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/api/admin/files?file=a.pdf", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "a.pdf", deleted)
}

func TestSaveSettings_FillsDefaultsAndValidates(t *testing.T) {
	deps := newAdminDeps()
	var saved domain.BusinessSettings
	deps.settings.SaveFunc = func(ctx context.Context, s domain.BusinessSettings) error {
		if s.NotificationEmail == "bad" {
			return &domain.ValidationError{Issues: []domain.FieldIssue{{Field: "notificationEmail", Message: "must be a valid email address"}}}
		}
		saved = s
		return nil
	}
	app := adminApp(domain.AdminRoleOwner, deps)

	resp, err := app.Test(jsonRequest("POST", "/api/admin/settings", map[string]interface{}{
		"businessName": "Craft Studio",
		"maxFileSize":  5,
		"unknownKey":   "dropped",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Craft Studio", saved.BusinessName)
	assert.Equal(t, 5, saved.MaxFileSize)
	assert.Equal(t, "pdf,doc,docx", saved.AllowedFileTypes)

	resp, err = app.Test(jsonRequest("POST", "/api/admin/settings", map[string]string{"notificationEmail": "bad"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.True(t, strings.Contains(fmt.Sprint(decodeBody(t, resp.Body)["issues"]), "notificationEmail"))
}

func TestGetSettings(t *testing.T) {
	resp, err := adminApp(domain.AdminRoleStaff, newAdminDeps()).Test(httptest.NewRequest("GET", "/api/admin/settings", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, "CraftMyResume", body["businessName"])
	assert.Equal(t, float64(24), body["defaultTurnaroundHours"])
}
