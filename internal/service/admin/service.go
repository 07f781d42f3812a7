package admin

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/ports"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// Service implements the back-office read models on top of the order
// repositories and the object store.
type Service struct {
	leads             ports.LeadRepository
	updates           ports.ResumeUpdateRepository
	builds            ports.ResumeBuildRepository
	store             ports.ObjectStore
	revenuePerRequest int
	loc               *time.Location
	now               func() time.Time
	log               *zap.Logger
}

// NewService creates a new admin service
func NewService(
	leads ports.LeadRepository,
	updates ports.ResumeUpdateRepository,
	builds ports.ResumeBuildRepository,
	store ports.ObjectStore,
	revenuePerRequest int,
	loc *time.Location,
	log *zap.Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		leads:             leads,
		updates:           updates,
		builds:            builds,
		store:             store,
		revenuePerRequest: revenuePerRequest,
		loc:               loc,
		now:               time.Now,
		log:               log,
	}
}

var _ ports.AdminService = (*Service)(nil)

// GetDashboardStats returns dashboard statistics
func (s *Service) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var (
		totalLeads int64
		updates    []domain.ResumeUpdate
		builds     []domain.ResumeBuild
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totalLeads, err = s.leads.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		updates, builds, err = s.loadOrders(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	now := s.now().In(s.loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)

	stats := &domain.DashboardStats{TotalLeads: totalLeads}
	tally := func(status domain.RequestStatus, createdAt time.Time) {
		stats.TotalRequests++
		switch status {
		case domain.RequestStatusPending:
			stats.PendingRequests++
		case domain.RequestStatusCompleted:
			stats.CompletedRequests++
		case domain.RequestStatusInProgress:
			stats.InProgressRequests++
		}
		if !createdAt.Before(monthStart) {
			stats.ThisMonthRequests++
		}
	}
	for _, u := range updates {
		tally(u.Status, u.CreatedAt)
	}
	for _, b := range builds {
		tally(b.Status, b.CreatedAt)
	}

	if stats.TotalRequests > 0 {
		stats.CompletionRate = int(math.Floor(float64(stats.CompletedRequests)/float64(stats.TotalRequests)*100 + 0.5))
	}
	stats.TotalRevenue = stats.CompletedRequests * int64(s.revenuePerRequest)
	stats.ThisMonthCustomers = stats.ThisMonthRequests
	return stats, nil
}

// loadOrders fetches both order tables concurrently. An empty status
// loads every order.
func (s *Service) loadOrders(ctx context.Context, status domain.RequestStatus) ([]domain.ResumeUpdate, []domain.ResumeBuild, error) {
	var (
		updates []domain.ResumeUpdate
		builds  []domain.ResumeBuild
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if updates, err = s.updates.FindAll(gctx, status); err != nil {
			return fmt.Errorf("fetch resume updates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if builds, err = s.builds.FindAll(gctx, status); err != nil {
			return fmt.Errorf("fetch resume builds: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return updates, builds, nil
}

// paginate clamps page and limit and returns the slice bounds for total items.
func paginate(page, limit, total int) (domain.Pagination, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	p := domain.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
	// Compare page numbers before multiplying so huge pages cannot overflow.
	if page-1 >= p.TotalPages {
		return p, total, total
	}
	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}
	return p, start, end
}
