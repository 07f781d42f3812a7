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

type ResumeUpdateRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewResumeUpdateRepository(db *gorm.DB, log *zap.Logger) ports.ResumeUpdateRepository {
	return &ResumeUpdateRepository{
		db:  db,
		log: log,
	}
}

func (r *ResumeUpdateRepository) Save(ctx context.Context, order *domain.ResumeUpdate) error {
	defer observe(time.Now())
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *ResumeUpdateRepository) FindByID(ctx context.Context, id int64) (*domain.ResumeUpdate, error) {
	defer observe(time.Now())
	var order domain.ResumeUpdate
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *ResumeUpdateRepository) FindAll(ctx context.Context, status domain.RequestStatus) ([]domain.ResumeUpdate, error) {
	defer observe(time.Now())
	var orders []domain.ResumeUpdate
	q := r.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&orders).Error
	return orders, err
}

func (r *ResumeUpdateRepository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	defer observe(time.Now())
	return updateStatus(ctx, r.db, &domain.ResumeUpdate{}, id, status)
}

type ResumeBuildRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewResumeBuildRepository(db *gorm.DB, log *zap.Logger) ports.ResumeBuildRepository {
	return &ResumeBuildRepository{
		db:  db,
		log: log,
	}
}

func (r *ResumeBuildRepository) Save(ctx context.Context, order *domain.ResumeBuild) error {
	defer observe(time.Now())
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *ResumeBuildRepository) FindByID(ctx context.Context, id int64) (*domain.ResumeBuild, error) {
	defer observe(time.Now())
	var order domain.ResumeBuild
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *ResumeBuildRepository) FindAll(ctx context.Context, status domain.RequestStatus) ([]domain.ResumeBuild, error) {
	defer observe(time.Now())
	var orders []domain.ResumeBuild
	q := r.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&orders).Error
	return orders, err
}

func (r *ResumeBuildRepository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	defer observe(time.Now())
	return updateStatus(ctx, r.db, &domain.ResumeBuild{}, id, status)
}

// updateStatus returns domain.ErrNotFound when no row matches id.
func updateStatus(ctx context.Context, db *gorm.DB, model interface{}, id int64, status domain.RequestStatus) error {
	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
