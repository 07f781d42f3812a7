package ports

import (
	"context"
	"time"

	"github.com/aniket045123/craftmyresume/internal/domain"
)

// Find* methods return (nil, nil) when the record does not exist.

type LeadRepository interface {
	Save(ctx context.Context, lead *domain.Lead) error
	FindAll(ctx context.Context) ([]domain.Lead, error)
	Count(ctx context.Context) (int64, error)
}

// ResumeUpdateRepository persists revision orders. An empty status in
// FindAll matches every status.
type ResumeUpdateRepository interface {
	Save(ctx context.Context, order *domain.ResumeUpdate) error
	FindByID(ctx context.Context, id int64) (*domain.ResumeUpdate, error)
	FindAll(ctx context.Context, status domain.RequestStatus) ([]domain.ResumeUpdate, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error
}

type ResumeBuildRepository interface {
	Save(ctx context.Context, order *domain.ResumeBuild) error
	FindByID(ctx context.Context, id int64) (*domain.ResumeBuild, error)
	FindAll(ctx context.Context, status domain.RequestStatus) ([]domain.ResumeBuild, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error
}

type AdminUserRepository interface {
	Save(ctx context.Context, user *domain.AdminUser) error
	FindByID(ctx context.Context, id string) (*domain.AdminUser, error)
	FindActiveByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// SettingsRepository stores the single business settings row.
// Get returns (nil, nil) when nothing has been saved yet.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.BusinessSettings, error)
	Upsert(ctx context.Context, settings domain.BusinessSettings) error
}
