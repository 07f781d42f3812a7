package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/ports"
	"github.com/aniket045123/craftmyresume/internal/validation"
)

const (
	cacheKey = "settings:business"
	cacheTTL = 5 * time.Minute
)

// Service reads the settings row through a short-lived cache; intake
// consults it on every upload.
type Service struct {
	repo     ports.SettingsRepository
	cache    ports.Cache
	validate *validation.Validator
	log      *zap.Logger
}

func NewService(repo ports.SettingsRepository, cache ports.Cache, log *zap.Logger) ports.SettingsService {
	return &Service{
		repo:     repo,
		cache:    cache,
		validate: validation.New(),
		log:      log,
	}
}

// Get returns the stored settings, or the defaults when none were saved.
func (s *Service) Get(ctx context.Context) (domain.BusinessSettings, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	stored, err := s.repo.Get(ctx)
	if err != nil {
		return domain.BusinessSettings{}, fmt.Errorf("load settings: %w", err)
	}

	settings := domain.DefaultBusinessSettings()
	if stored != nil {
		settings = *stored
	}
	s.toCache(ctx, settings)
	return settings, nil
}

func (s *Service) Save(ctx context.Context, settings domain.BusinessSettings) error {
	if err := s.validate.Struct(settings); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cacheKey); err != nil {
			s.log.Warn("failed to invalidate settings cache", zap.Error(err))
		}
	}
	s.log.Info("Business settings updated")
	return nil
}

func (s *Service) fromCache(ctx context.Context) (domain.BusinessSettings, bool) {
	var settings domain.BusinessSettings
	if s.cache == nil {
		return settings, false
	}
	raw, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			s.log.Warn("settings cache read failed", zap.Error(err))
		}
		return settings, false
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return settings, false
	}
	return settings, true
}

func (s *Service) toCache(ctx context.Context, settings domain.BusinessSettings) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, string(raw), cacheTTL); err != nil {
		s.log.Warn("settings cache write failed", zap.Error(err))
	}
}
