package analytics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/observability/telemetry"
	"github.com/aniket045123/craftmyresume/internal/ports"
	"github.com/aniket045123/craftmyresume/pkg/config"
)

type Service struct {
	leads        ports.LeadRepository
	updates      ports.ResumeUpdateRepository
	builds       ports.ResumeBuildRepository
	opts         Options
	loc          *time.Location
	fetchTimeout time.Duration
	now          func() time.Time
	log          *zap.Logger
}

func NewService(
	leads ports.LeadRepository,
	updates ports.ResumeUpdateRepository,
	builds ports.ResumeBuildRepository,
	opts Options,
	loc *time.Location,
	log *zap.Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		leads:        leads,
		updates:      updates,
		builds:       builds,
		opts:         opts,
		loc:          loc,
		fetchTimeout: 10 * time.Second,
		now:          time.Now,
		log:          log,
	}
}

// WithClock overrides the time source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) WithFetchTimeout(d time.Duration) *Service {
	if d > 0 {
		s.fetchTimeout = d
	}
	return s
}

// GetReport loads the three record sets concurrently and aggregates them.
func (s *Service) GetReport(ctx context.Context) (*domain.Report, error) {
	ctx, span := telemetry.StartSpan(ctx, "analytics.GetReport")
	defer span.End()

	start := time.Now()
	defer func() {
		telemetry.AnalyticsReportLatency.Observe(time.Since(start).Seconds())
	}()

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	var (
		leads   []domain.Lead
		updates []domain.ResumeUpdate
		builds  []domain.ResumeBuild
	)
	g, gctx := errgroup.WithContext(fetchCtx)
	g.Go(func() error {
		var err error
		if leads, err = s.leads.FindAll(gctx); err != nil {
			return fmt.Errorf("fetch leads: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if updates, err = s.updates.FindAll(gctx, ""); err != nil {
			return fmt.Errorf("fetch resume updates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if builds, err = s.builds.FindAll(gctx, ""); err != nil {
			return fmt.Errorf("fetch resume builds: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		telemetry.AnalyticsReportsTotal.WithLabelValues("error").Inc()
		s.log.Error("Failed to load analytics inputs", zap.Error(err))
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("analytics.leads", len(leads)),
		attribute.Int("analytics.updates", len(updates)),
		attribute.Int("analytics.builds", len(builds)),
	)

	report := ComputeReport(leads, updates, builds, s.now().In(s.loc), s.opts)
	telemetry.AnalyticsReportsTotal.WithLabelValues("ok").Inc()

	s.log.Debug("Analytics report computed",
		zap.Int("leads", len(leads)),
		zap.Int("requests", report.RequestAnalytics.TotalRequests),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// OptionsFromConfig maps the analytics config section onto report options.
func OptionsFromConfig(cfg config.AnalyticsConfig) Options {
	opts := DefaultOptions()
	if cfg.RevenuePerRequest > 0 {
		opts.RevenuePerRequest = cfg.RevenuePerRequest
	}
	if cfg.DailyAdSpend > 0 {
		opts.DailyAdSpend = cfg.DailyAdSpend
	}
	if cfg.AvgCompletionTime > 0 {
		opts.AvgCompletionTime = cfg.AvgCompletionTime
	}
	if cfg.CustomerSatisfaction > 0 {
		opts.CustomerSatisfaction = cfg.CustomerSatisfaction
	}

	t := cfg.Traffic
	if t.TotalVisitors > 0 || t.PageViews > 0 {
		opts.Traffic = domain.WebsiteTraffic{
			TotalVisitors:      t.TotalVisitors,
			UniqueVisitors:     t.UniqueVisitors,
			PageViews:          t.PageViews,
			BounceRate:         t.BounceRate,
			AvgSessionDuration: t.AvgSessionDuration,
			TopPages:           make([]domain.TopPage, 0, len(t.TopPages)),
		}
		for _, p := range t.TopPages {
			opts.Traffic.TopPages = append(opts.Traffic.TopPages, domain.TopPage{
				Page:       p.Page,
				Views:      p.Views,
				Conversion: p.Conversion,
			})
		}
	}

	p := cfg.Performance
	if p != (config.PerformanceConfig{}) {
		opts.Performance = domain.PerformanceMetrics{
			ResponseTime:          p.ResponseTime,
			FirstDraftTime:        p.FirstDraftTime,
			RevisionTime:          p.RevisionTime,
			FinalDeliveryTime:     p.FinalDeliveryTime,
			RevisionRate:          p.RevisionRate,
			CustomerRetentionRate: p.CustomerRetentionRate,
			ReferralRate:          p.ReferralRate,
		}
	}
	return opts
}
