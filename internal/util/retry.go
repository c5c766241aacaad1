package util

import (
	"context"
	"errors"
	"fmt"
	"portfoliobias/internal/domain"
	"portfoliobias/internal/logger"
	"strings"
	"time"
)

type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// RateLimitMultiplier stretches the wait after a 429.
	RateLimitMultiplier int

	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy is two attempts with exponential backoff.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:         2,
	BaseDelay:           2 * time.Second,
	RateLimitMultiplier: 3,
}

var nonRetryablePhrases = []string{"delisted", "not found", "nosuchkey", "invalid", "timezone"}

var rateLimitPhrases = []string{"429", "too many requests", "rate limit", "throttl"}

func IsRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, p := range rateLimitPhrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// IsRetryable treats rate limiting and transient failures as retryable and
// malformed, missing or timezone failures as permanent.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrResultNotFound) {
		return false
	}
	if IsRateLimited(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, p := range nonRetryablePhrases {
		if strings.Contains(msg, p) {
			return false
		}
	}
	return true
}

func (p RetryPolicy) delay(attempt int, err error) time.Duration {
	d := p.BaseDelay * time.Duration(1<<uint(attempt))
	if IsRateLimited(err) && p.RateLimitMultiplier > 1 {
		d *= time.Duration(p.RateLimitMultiplier)
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Retry runs op until it succeeds, fails permanently or the attempt budget
// is spent. Every failure comes back as a domain.DependencyUnavailableError
// naming the dependency.
func Retry(ctx context.Context, policy RetryPolicy, dependency string, op func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := policy.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			log.Errorf("non-retryable error from %s: %v", dependency, lastErr)
			return domain.DependencyUnavailableError{Dependency: dependency, Err: lastErr}
		}
		if attempt == attempts-1 {
			break
		}

		wait := policy.delay(attempt, lastErr)
		log.Warnf("%s attempt %d/%d failed, retrying in %s: %v", dependency, attempt+1, attempts, wait, lastErr)
		if err := sleep(ctx, wait); err != nil {
			return domain.DependencyUnavailableError{Dependency: dependency, Err: err}
		}
	}

	return domain.DependencyUnavailableError{
		Dependency: dependency,
		Err:        fmt.Errorf("failed after %d attempts: %w", attempts, lastErr),
	}
}
