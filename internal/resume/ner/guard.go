package ner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/talentlens/resume-parser/internal/resume/domain"
	"github.com/talentlens/resume-parser/pkg/logger"
)

// ErrCircuitOpen is returned while the breaker rejects calls to a failing
// recognizer.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// GuardConfig holds the breaker and rate limit settings of a Guard
type GuardConfig struct {
	// MaxFailures is the number of consecutive failures that trip the breaker.
	// Default: 3
	MaxFailures uint32

	// Timeout is how long the breaker stays open before probing again.
	// Default: 30 seconds
	Timeout time.Duration

	// HalfOpenSuccesses is the number of successful probes that close it.
	// Default: 2
	HalfOpenSuccesses uint32

	// RequestsPerSecond caps outgoing calls; zero means unlimited.
	RequestsPerSecond float64
	Burst             int
}

// Guard protects a remote recognizer with a circuit breaker and an optional
// client-side rate limit. Waiting for the limiter honours the context.
type Guard struct {
	name    string
	next    Recognizer
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

// NewGuard wraps next. Zero config values take the documented defaults.
func NewGuard(name string, next Recognizer, cfg GuardConfig, log *logger.Logger) *Guard {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.HalfOpenSuccesses == 0 {
		cfg.HalfOpenSuccesses = 2
	}

	g := &Guard{name: name, next: next}

	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	maxFailures := cfg.MaxFailures
	g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenSuccesses,
		Interval:    0,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// a caller giving up says nothing about the recognizer's health
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if log == nil {
				return
			}
			log.Warn().
				Str("recognizer", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("recognizer circuit breaker state changed")
		},
	})

	return g
}

// Name returns the recognizer name used in logs and health output
func (g *Guard) Name() string { return g.name }

// Recognize implements Recognizer
func (g *Guard) Recognize(ctx context.Context, text string) ([]domain.Entity, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: rate limit wait: %w", g.name, err)
		}
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return g.next.Recognize(ctx, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s: %w", g.name, ErrCircuitOpen)
		}
		return nil, err
	}

	entities, _ := result.([]domain.Entity)
	return entities, nil
}

// State returns "closed", "open" or "half-open"
func (g *Guard) State() string {
	switch g.breaker.State() {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateOpen:
		return "open"
	case gobreaker.StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}
