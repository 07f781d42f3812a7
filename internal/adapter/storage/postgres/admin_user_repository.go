package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/ports"
)

type AdminUserRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAdminUserRepository(db *gorm.DB, log *zap.Logger) ports.AdminUserRepository {
	return &AdminUserRepository{
		db:  db,
		log: log,
	}
}

func (r *AdminUserRepository) Save(ctx context.Context, user *domain.AdminUser) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *AdminUserRepository) FindByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	var user domain.AdminUser
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindActiveByEmail matches the address case-insensitively.
func (r *AdminUserRepository) FindActiveByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	var user domain.AdminUser
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? AND is_active = ?", domain.NormalizeEmail(email), true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *AdminUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.AdminUser{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}
