package health

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/adapter/queue"
	"github.com/aniket045123/craftmyresume/internal/ports"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// CheckResult represents the result of a health check
type CheckResult struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration_ms"`
	Timestamp time.Time     `json:"timestamp"`
}

// HealthResponse represents the overall health response
type HealthResponse struct {
	Status    Status    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse represents the readiness response
type ReadyResponse struct {
	Ready     bool                   `json:"ready"`
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

// Checker defines a health check function
type Checker func(ctx context.Context) CheckResult

// Service handles health checks
type Service struct {
	startTime time.Time
	version   string
	timeout   time.Duration
	checkers  map[string]Checker
	log       *zap.Logger
	mu        sync.RWMutex
}

// Config holds the dependencies probed by /ready. Nil fields are skipped.
type Config struct {
	Version string
	DB      *sql.DB
	Cache   ports.Cache
	Queue   queue.MessageQueue
	Store   ports.ObjectStore
	// CacheOptional reports a failing cache as degraded instead of unhealthy.
	CacheOptional bool
}

// NewService creates a new health service
func NewService(config *Config, log *zap.Logger) *Service {
	s := &Service{
		startTime: time.Now(),
		version:   config.Version,
		timeout:   5 * time.Second,
		checkers:  make(map[string]Checker),
		log:       log,
	}

	if config.DB != nil {
		s.RegisterChecker("database", s.pingCheck("database", StatusUnhealthy, config.DB.PingContext))
	}
	if config.Cache != nil {
		failure := StatusUnhealthy
		if config.CacheOptional {
			failure = StatusDegraded
		}
		c := config.Cache
		s.RegisterChecker("cache", s.pingCheck("cache", failure, func(context.Context) error { return c.Ping() }))
	}
	if config.Queue != nil {
		q := config.Queue
		s.RegisterChecker("queue", s.pingCheck("queue", StatusUnhealthy, func(context.Context) error { return q.Ping() }))
	}
	if config.Store != nil {
		s.RegisterChecker("object_store", s.pingCheck("object_store", StatusUnhealthy, config.Store.Ping))
	}

	return s
}

// RegisterChecker registers a custom health checker
func (s *Service) RegisterChecker(name string, checker Checker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkers[name] = checker
	s.log.Info("Registered health checker", zap.String("name", name))
}

// Health performs a basic liveness check
func (s *Service) Health(ctx context.Context) *HealthResponse {
	return &HealthResponse{
		Status:    StatusHealthy,
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now(),
	}
}

// Ready runs every registered check concurrently. Degraded checks keep
// the service ready; unhealthy ones do not.
func (s *Service) Ready(ctx context.Context) *ReadyResponse {
	s.mu.RLock()
	checkers := make(map[string]Checker, len(s.checkers))
	for k, v := range s.checkers {
		checkers[k] = v
	}
	s.mu.RUnlock()

	results := make(map[string]CheckResult)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker Checker) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			result := checker(checkCtx)

			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, checker)
	}

	wg.Wait()

	overallStatus := StatusHealthy
	allReady := true

	for _, result := range results {
		if result.Status == StatusUnhealthy {
			overallStatus = StatusUnhealthy
			allReady = false
		} else if result.Status == StatusDegraded && overallStatus != StatusUnhealthy {
			overallStatus = StatusDegraded
		}
	}

	return &ReadyResponse{
		Ready:     allReady,
		Status:    overallStatus,
		Timestamp: time.Now(),
		Checks:    results,
	}
}

// pingCheck adapts a ping function into a Checker. failure is the status
// reported when ping returns an error.
func (s *Service) pingCheck(name string, failure Status, ping func(ctx context.Context) error) Checker {
	return func(ctx context.Context) CheckResult {
		start := time.Now()
		result := CheckResult{
			Name:      name,
			Timestamp: start,
		}

		err := ping(ctx)
		result.Duration = time.Since(start)

		if err != nil {
			result.Status = failure
			result.Message = fmt.Sprintf("ping failed: %v", err)
			s.log.Warn("Health check failed", zap.String("check", name), zap.Error(err))
		} else {
			result.Status = StatusHealthy
			result.Message = "connection ok"
		}
		return result
	}
}
