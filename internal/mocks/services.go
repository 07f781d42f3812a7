package mocks

import (
	"context"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/ports"
)

// MockAuthService is a mock implementation of AuthService interface
type MockAuthService struct {
	LoginFunc           func(ctx context.Context, email, password string) (*domain.TokenPair, *domain.AdminProfile, error)
	RefreshTokenFunc    func(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	ValidateTokenFunc   func(ctx context.Context, token string) (*domain.AdminUser, error)
	LogoutFunc          func(ctx context.Context, token string) error
	CheckPrivilegesFunc func(ctx context.Context, email string) (*domain.AdminProfile, error)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.TokenPair, *domain.AdminProfile, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, &domain.AdminProfile{Email: email}, nil
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*domain.AdminUser, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return &domain.AdminUser{ID: "admin-1", Email: "admin@example.com", Role: domain.AdminRoleAdmin, IsActive: true}, nil
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *MockAuthService) CheckPrivileges(ctx context.Context, email string) (*domain.AdminProfile, error) {
	if m.CheckPrivilegesFunc != nil {
		return m.CheckPrivilegesFunc(ctx, email)
	}
	return nil, nil
}

// MockAnalyticsService is a mock implementation of AnalyticsService interface
type MockAnalyticsService struct {
	GetReportFunc func(ctx context.Context) (*domain.Report, error)
}

func (m *MockAnalyticsService) GetReport(ctx context.Context) (*domain.Report, error) {
	if m.GetReportFunc != nil {
		return m.GetReportFunc(ctx)
	}
	return &domain.Report{}, nil
}

// MockAdminService is a mock implementation of AdminService interface
type MockAdminService struct {
	GetDashboardStatsFunc   func(ctx context.Context) (*domain.DashboardStats, error)
	ListRequestsFunc        func(ctx context.Context, filter domain.RequestFilter) (*domain.RequestPage, error)
	UpdateRequestStatusFunc func(ctx context.Context, displayID string, kind domain.RequestKind, status domain.RequestStatus) error
	ListCustomersFunc       func(ctx context.Context, filter domain.CustomerFilter) (*domain.CustomerPage, error)
	ListFilesFunc           func(ctx context.Context, filter domain.FileFilter) (*domain.FileListing, error)
	DeleteFileFunc          func(ctx context.Context, name string) error
}

func (m *MockAdminService) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	if m.GetDashboardStatsFunc != nil {
		return m.GetDashboardStatsFunc(ctx)
	}
	return &domain.DashboardStats{}, nil
}

func (m *MockAdminService) ListRequests(ctx context.Context, filter domain.RequestFilter) (*domain.RequestPage, error) {
	if m.ListRequestsFunc != nil {
		return m.ListRequestsFunc(ctx, filter)
	}
	return &domain.RequestPage{Requests: []domain.RequestRow{}}, nil
}

func (m *MockAdminService) UpdateRequestStatus(ctx context.Context, displayID string, kind domain.RequestKind, status domain.RequestStatus) error {
	if m.UpdateRequestStatusFunc != nil {
		return m.UpdateRequestStatusFunc(ctx, displayID, kind, status)
	}
	return nil
}

func (m *MockAdminService) ListCustomers(ctx context.Context, filter domain.CustomerFilter) (*domain.CustomerPage, error) {
	if m.ListCustomersFunc != nil {
		return m.ListCustomersFunc(ctx, filter)
	}
	return &domain.CustomerPage{Customers: []domain.Customer{}}, nil
}

func (m *MockAdminService) ListFiles(ctx context.Context, filter domain.FileFilter) (*domain.FileListing, error) {
	if m.ListFilesFunc != nil {
		return m.ListFilesFunc(ctx, filter)
	}
	return &domain.FileListing{Files: []domain.ResumeFile{}}, nil
}

func (m *MockAdminService) DeleteFile(ctx context.Context, name string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, name)
	}
	return nil
}

// MockSettingsService is a mock implementation of SettingsService interface
type MockSettingsService struct {
	GetFunc  func(ctx context.Context) (domain.BusinessSettings, error)
	SaveFunc func(ctx context.Context, settings domain.BusinessSettings) error
}

func (m *MockSettingsService) Get(ctx context.Context) (domain.BusinessSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return domain.DefaultBusinessSettings(), nil
}

func (m *MockSettingsService) Save(ctx context.Context, settings domain.BusinessSettings) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, settings)
	}
	return nil
}

// MockIntakeService is a mock implementation of IntakeService interface
type MockIntakeService struct {
	SubmitContactFunc      func(ctx context.Context, in ports.ContactInput) (*ports.ContactResult, error)
	SubmitResumeUpdateFunc func(ctx context.Context, in ports.ResumeUpdateInput) (*domain.ResumeUpdate, error)
	SubmitResumeBuildFunc  func(ctx context.Context, in ports.ResumeBuildInput) (*domain.ResumeBuild, error)
}

func (m *MockIntakeService) SubmitContact(ctx context.Context, in ports.ContactInput) (*ports.ContactResult, error) {
	if m.SubmitContactFunc != nil {
		return m.SubmitContactFunc(ctx, in)
	}
	return &ports.ContactResult{OK: true, Email: "sent"}, nil
}

func (m *MockIntakeService) SubmitResumeUpdate(ctx context.Context, in ports.ResumeUpdateInput) (*domain.ResumeUpdate, error) {
	if m.SubmitResumeUpdateFunc != nil {
		return m.SubmitResumeUpdateFunc(ctx, in)
	}
	return &domain.ResumeUpdate{ID: 1, OrderID: "UPD-1", CustomerName: in.CustomerName, Email: in.Email, Status: domain.RequestStatusPending}, nil
}

func (m *MockIntakeService) SubmitResumeBuild(ctx context.Context, in ports.ResumeBuildInput) (*domain.ResumeBuild, error) {
	if m.SubmitResumeBuildFunc != nil {
		return m.SubmitResumeBuildFunc(ctx, in)
	}
	return &domain.ResumeBuild{ID: 1, OrderID: "BUILD-1", FullName: in.FullName, Email: in.Email, Status: domain.RequestStatusPending}, nil
}

// MockNotificationService is a mock implementation of NotificationService interface
type MockNotificationService struct {
	SendLeadNotificationFunc       func(ctx context.Context, lead *domain.Lead) error
	SendNewRequestNotificationFunc func(ctx context.Context, to string, event *domain.IntakeEvent) error
	SendAutoResponseFunc           func(ctx context.Context, to, name, message string) error
}

func (m *MockNotificationService) SendLeadNotification(ctx context.Context, lead *domain.Lead) error {
	if m.SendLeadNotificationFunc != nil {
		return m.SendLeadNotificationFunc(ctx, lead)
	}
	return nil
}

func (m *MockNotificationService) SendNewRequestNotification(ctx context.Context, to string, event *domain.IntakeEvent) error {
	if m.SendNewRequestNotificationFunc != nil {
		return m.SendNewRequestNotificationFunc(ctx, to, event)
	}
	return nil
}

func (m *MockNotificationService) SendAutoResponse(ctx context.Context, to, name, message string) error {
	if m.SendAutoResponseFunc != nil {
		return m.SendAutoResponseFunc(ctx, to, name, message)
	}
	return nil
}
