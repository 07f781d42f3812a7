package mocks

import (
	"context"
	"time"

	"github.com/aniket045123/craftmyresume/internal/domain"
)

// MockLeadRepository is a mock implementation of LeadRepository
type MockLeadRepository struct {
	SaveFunc    func(ctx context.Context, lead *domain.Lead) error
	FindAllFunc func(ctx context.Context) ([]domain.Lead, error)
	CountFunc   func(ctx context.Context) (int64, error)
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *domain.Lead) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, lead)
	}
	return nil
}

func (m *MockLeadRepository) FindAll(ctx context.Context) ([]domain.Lead, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []domain.Lead{}, nil
}

func (m *MockLeadRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockResumeUpdateRepository is a mock implementation of ResumeUpdateRepository
type MockResumeUpdateRepository struct {
	SaveFunc         func(ctx context.Context, order *domain.ResumeUpdate) error
	FindByIDFunc     func(ctx context.Context, id int64) (*domain.ResumeUpdate, error)
	FindAllFunc      func(ctx context.Context, status domain.RequestStatus) ([]domain.ResumeUpdate, error)
	UpdateStatusFunc func(ctx context.Context, id int64, status domain.RequestStatus) error
}

func (m *MockResumeUpdateRepository) Save(ctx context.Context, order *domain.ResumeUpdate) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, order)
	}
	return nil
}

func (m *MockResumeUpdateRepository) FindByID(ctx context.Context, id int64) (*domain.ResumeUpdate, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockResumeUpdateRepository) FindAll(ctx context.Context, status domain.RequestStatus) ([]domain.ResumeUpdate, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, status)
	}
	return []domain.ResumeUpdate{}, nil
}

func (m *MockResumeUpdateRepository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

// MockResumeBuildRepository is a mock implementation of ResumeBuildRepository
type MockResumeBuildRepository struct {
	SaveFunc         func(ctx context.Context, order *domain.ResumeBuild) error
	FindByIDFunc     func(ctx context.Context, id int64) (*domain.ResumeBuild, error)
	FindAllFunc      func(ctx context.Context, status domain.RequestStatus) ([]domain.ResumeBuild, error)
	UpdateStatusFunc func(ctx context.Context, id int64, status domain.RequestStatus) error
}

func (m *MockResumeBuildRepository) Save(ctx context.Context, order *domain.ResumeBuild) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, order)
	}
	return nil
}

func (m *MockResumeBuildRepository) FindByID(ctx context.Context, id int64) (*domain.ResumeBuild, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockResumeBuildRepository) FindAll(ctx context.Context, status domain.RequestStatus) ([]domain.ResumeBuild, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, status)
	}
	return []domain.ResumeBuild{}, nil
}

func (m *MockResumeBuildRepository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

// MockAdminUserRepository is a mock implementation of AdminUserRepository
type MockAdminUserRepository struct {
	SaveFunc              func(ctx context.Context, user *domain.AdminUser) error
	FindByIDFunc          func(ctx context.Context, id string) (*domain.AdminUser, error)
	FindActiveByEmailFunc func(ctx context.Context, email string) (*domain.AdminUser, error)
	UpdateLastLoginFunc   func(ctx context.Context, id string, at time.Time) error
}

func (m *MockAdminUserRepository) Save(ctx context.Context, user *domain.AdminUser) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

func (m *MockAdminUserRepository) FindByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAdminUserRepository) FindActiveByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	if m.FindActiveByEmailFunc != nil {
		return m.FindActiveByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockAdminUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if m.UpdateLastLoginFunc != nil {
		return m.UpdateLastLoginFunc(ctx, id, at)
	}
	return nil
}

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	GetFunc    func(ctx context.Context) (*domain.BusinessSettings, error)
	UpsertFunc func(ctx context.Context, settings domain.BusinessSettings) error
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return nil, nil
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, settings domain.BusinessSettings) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, settings)
	}
	return nil
}
