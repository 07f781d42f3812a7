package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/ports"
)

type SettingsRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSettingsRepository(db *gorm.DB, log *zap.Logger) ports.SettingsRepository {
	return &SettingsRepository{
		db:  db,
		log: log,
	}
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	var rec domain.SettingsRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", domain.SettingsRecordID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec.Settings, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, settings domain.BusinessSettings) error {
	rec := domain.SettingsRecord{
		ID:        domain.SettingsRecordID,
		Settings:  settings,
		UpdatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"settings", "updated_at"}),
	}).Create(&rec).Error
}
