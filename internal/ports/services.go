package ports

import (
	"context"
	"io"

	"github.com/aniket045123/craftmyresume/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.TokenPair, *domain.AdminProfile, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	ValidateToken(ctx context.Context, token string) (*domain.AdminUser, error)
	Logout(ctx context.Context, token string) error
	// CheckPrivileges returns nil when email does not belong to an active admin.
	CheckPrivileges(ctx context.Context, email string) (*domain.AdminProfile, error)
}

type AnalyticsService interface {
	GetReport(ctx context.Context) (*domain.Report, error)
}

// AdminService backs the back-office screens.
type AdminService interface {
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	ListRequests(ctx context.Context, filter domain.RequestFilter) (*domain.RequestPage, error)
	UpdateRequestStatus(ctx context.Context, displayID string, kind domain.RequestKind, status domain.RequestStatus) error
	ListCustomers(ctx context.Context, filter domain.CustomerFilter) (*domain.CustomerPage, error)
	ListFiles(ctx context.Context, filter domain.FileFilter) (*domain.FileListing, error)
	DeleteFile(ctx context.Context, name string) error
}

type SettingsService interface {
	Get(ctx context.Context) (domain.BusinessSettings, error)
	Save(ctx context.Context, settings domain.BusinessSettings) error
}

type IntakeService interface {
	SubmitContact(ctx context.Context, in ContactInput) (*ContactResult, error)
	SubmitResumeUpdate(ctx context.Context, in ResumeUpdateInput) (*domain.ResumeUpdate, error)
	SubmitResumeBuild(ctx context.Context, in ResumeBuildInput) (*domain.ResumeBuild, error)
}

type NotificationService interface {
	SendLeadNotification(ctx context.Context, lead *domain.Lead) error
	SendNewRequestNotification(ctx context.Context, to string, event *domain.IntakeEvent) error
	SendAutoResponse(ctx context.Context, to, name, message string) error
}

// ContactInput is the public contact form. Request metadata is filled by the handler.
type ContactInput struct {
	Name      string `json:"name" validate:"notblank,max=200"`
	Email     string `json:"email" validate:"omitempty,email,max=200"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	Message   string `json:"message" validate:"omitempty,max=4000"`
	Plan      string `json:"plan" validate:"omitempty,max=200"`
	UserAgent string `json:"-"`
	Referrer  string `json:"-"`
	IP        string `json:"-"`
}

type ContactResult struct {
	OK     bool   `json:"ok"`
	Email  string `json:"email"`
	Reason string `json:"reason,omitempty"`
}

// UploadedFile is a resume attached to an update order.
type UploadedFile struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

// ResumeUpdateInput mirrors the multipart form of an update order.
type ResumeUpdateInput struct {
	CustomerName      string        `json:"customerName" validate:"notblank,max=200"`
	Email             string        `json:"email" validate:"required,email,max=200"`
	Phone             string        `json:"phone" validate:"omitempty,max=50"`
	AdditionalDetails string        `json:"additionalDetails" validate:"omitempty,max=4000"`
	File              *UploadedFile `json:"-" validate:"-"`
}

type ResumeBuildInput struct {
	FullName            string `json:"fullName" validate:"notblank,max=200"`
	Email               string `json:"email" validate:"required,email,max=200"`
	Phone               string `json:"phone" validate:"omitempty,max=50"`
	Address             string `json:"address" validate:"omitempty,max=500"`
	LinkedinURL         string `json:"linkedinUrl" validate:"omitempty,max=500"`
	PortfolioURL        string `json:"portfolioUrl" validate:"omitempty,max=500"`
	ProfessionalSummary string `json:"professionalSummary"`
	TargetRole          string `json:"targetRole" validate:"omitempty,max=200"`
	TargetIndustry      string `json:"targetIndustry" validate:"omitempty,max=200"`
	WorkExperience      string `json:"workExperience"`
	Education           string `json:"education"`
	Skills              string `json:"skills"`
	Certifications      string `json:"certifications"`
	Projects            string `json:"projects"`
	Languages           string `json:"languages"`
	Achievements        string `json:"achievements"`
	AdditionalNotes     string `json:"additionalNotes"`
}
