package postgres

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/ports"
)

type LeadRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewLeadRepository(db *gorm.DB, log *zap.Logger) ports.LeadRepository {
	return &LeadRepository{
		db:  db,
		log: log,
	}
}

func (r *LeadRepository) Save(ctx context.Context, lead *domain.Lead) error {
	defer observe(time.Now())
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *LeadRepository) FindAll(ctx context.Context) ([]domain.Lead, error) {
	defer observe(time.Now())
	var leads []domain.Lead
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&leads).Error
	return leads, err
}

func (r *LeadRepository) Count(ctx context.Context) (int64, error) {
	defer observe(time.Now())
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Lead{}).Count(&n).Error
	return n, err
}
