// Package retry runs an operation with exponential backoff until it succeeds,
// fails with a permanent error or runs out of attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrRetryable marks an error as transient. Wrap it to request another attempt.
var ErrRetryable = errors.New("retryable")

// Config describes a backoff schedule.
type Config struct {
	// MaxAttempts counts the initial attempt.
	MaxAttempts int
	// InitialDelay is the wait after the first failure.
	InitialDelay time.Duration
	// MaxDelay caps every wait.
	MaxDelay time.Duration
	// Multiplier grows the wait after each failure.
	Multiplier float64
	// Jitter is the fraction of each wait randomized in both directions (0.1 = ±10%).
	Jitter float64
	// Retryable reports whether err deserves another attempt. Nil retries every error.
	Retryable func(err error) bool
	// OnRetry is called after a failed attempt, before waiting delay.
	OnRetry func(attempt int, err error, delay time.Duration)
	// Clock drives the waits. Nil uses the wall clock.
	Clock clockwork.Clock
}

// DefaultConfig returns a slow schedule suited to dialing remote services at startup.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.1,
	}
}

// PostgresConfig retries only the connection failures PostgreSQL reports while starting
// up or unreachable; authentication and schema errors fail immediately.
func PostgresConfig() Config {
	cfg := DefaultConfig()
	cfg.Retryable = MatchAny(PostgresErrorPatterns()...)
	return cfg
}

// BrokerConfig retries every dial error a few more times than DefaultConfig,
// since the broker usually starts after the service in local setups.
func BrokerConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxAttempts = 6
	return cfg
}

// LockConfig spins quickly on a busy roster lock. Only errors wrapping ErrRetryable
// are retried; the caller bounds the total wait with a context deadline.
func LockConfig() Config {
	return Config{
		MaxAttempts:  100,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     200 * time.Millisecond,
		Multiplier:   1.5,
		Jitter:       0.2,
		Retryable:    IsMarked,
	}
}

// PostgresErrorPatterns lists message fragments of transient connection failures.
func PostgresErrorPatterns() []string {
	return []string{
		"connection refused",
		"connection reset",
		"connection timed out",
		"i/o timeout",
		"server closed the connection",
		"too many connections",
		"the database system is starting up",
		"no connection could be made",
		"network is unreachable",
		"dial tcp",
	}
}

// IsMarked reports whether err wraps ErrRetryable.
func IsMarked(err error) bool {
	return errors.Is(err, ErrRetryable)
}

// MatchAny returns a predicate accepting marked errors and errors whose message
// contains one of patterns, case-insensitively.
func MatchAny(patterns ...string) func(error) bool {
	lowered := make([]string, 0, len(patterns))
	for _, p := range patterns {
		lowered = append(lowered, strings.ToLower(p))
	}
	return func(err error) bool {
		if IsMarked(err) {
			return true
		}
		msg := strings.ToLower(err.Error())
		for _, p := range lowered {
			if strings.Contains(msg, p) {
				return true
			}
		}
		return false
	}
}

// Do runs fn until it succeeds or the schedule gives up.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	_, err := DoWithResult(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult runs fn until it succeeds or the schedule gives up, returning the
// last error when attempts run out.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	if cfg.MaxAttempts <= 0 {
		return zero, fmt.Errorf("MaxAttempts must be greater than 0")
	}

	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if cfg.Retryable != nil && !cfg.Retryable(err) {
			return zero, err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		delay := withJitter(cfg.Delay(attempt), cfg.Jitter)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, delay)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-clock.After(delay):
		}
	}

	return zero, lastErr
}

// Delay returns the wait after the given failed attempt (1-based), before jitter.
func (c Config) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt-1))
	if c.MaxDelay > 0 && delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}
	return time.Duration(delay)
}

func withJitter(delay time.Duration, fraction float64) time.Duration {
	if fraction <= 0 || delay <= 0 {
		return delay
	}
	//nolint:gosec // jitter does not need a cryptographic source
	offset := float64(delay) * fraction * (rand.Float64()*2 - 1)
	return delay + time.Duration(offset)
}
