package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/pkg/config"
)

// CircuitBreaker sheds load once handlers keep failing. Only 5xx outcomes
// count as failures; client errors pass through untouched.
func CircuitBreaker(cfg config.CircuitBreakerConfig, log *zap.Logger) fiber.Handler {
	threshold := cfg.FailureThreshold
	if threshold <= 0 {
		threshold = 0.6
	}
	minRequests := cfg.MaxRequests
	if minRequests == 0 {
		minRequests = 3
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "craftmyresume-api",
		MaxRequests: minRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minRequests && failureRatio >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return func(c *fiber.Ctx) error {
		var handlerErr error
		_, err := cb.Execute(func() (interface{}, error) {
			handlerErr = c.Next()
			if isServerFailure(c, handlerErr) {
				return nil, errServerFailure
			}
			return nil, nil
		})

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Service temporarily unavailable",
			})
		}

		return handlerErr
	}
}

var errServerFailure = errors.New("server failure")

func isServerFailure(c *fiber.Ctx, err error) bool {
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe.Code >= fiber.StatusInternalServerError
		}
		return !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrValidation)
	}
	return c.Response().StatusCode() >= fiber.StatusInternalServerError
}
