package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/OctavioMinteguia/jobhub/internal/model"
)

// Ensure RetrySource implements model.Source.
var _ model.Source = (*RetrySource)(nil)

// RetrySource is a decorator that retries transient fetch failures with
// exponential backoff and jitter before delegating to the wrapped source.
// Retry lives here in the transport collaborator; the aggregation core never
// retries on its own.
type RetrySource struct {
	inner      model.Source
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// NewRetrySource wraps a source with retry logic.
// maxRetries is the number of additional attempts after the first failure,
// baseDelay the delay before the first retry, doubled on each subsequent one.
func NewRetrySource(inner model.Source, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *RetrySource {
	return &RetrySource{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// Name returns the wrapped source's name.
func (s *RetrySource) Name() string {
	return s.inner.Name()
}

// IsAvailable delegates to the wrapped source without retrying; the probe is
// advisory and a failed probe is itself the answer.
func (s *RetrySource) IsAvailable(ctx context.Context) bool {
	return s.inner.IsAvailable(ctx)
}

// FetchRaw attempts the fetch, retrying on transient errors.
func (s *RetrySource) FetchRaw(ctx context.Context) ([]map[string]any, error) {
	records, err := s.inner.FetchRaw(ctx)
	if err == nil {
		return records, nil
	}

	if !isRetryable(err) {
		return nil, err
	}

	lastErr := err
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		delay := s.backoffDelay(attempt)

		s.logger.Warn("retrying source fetch after transient error",
			"source", s.inner.Name(),
			"attempt", attempt,
			"max_retries", s.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		records, err = s.inner.FetchRaw(ctx)
		if err == nil {
			return records, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
func (s *RetrySource) backoffDelay(attempt int) time.Duration {
	// Exponential: baseDelay * 2^(attempt-1)
	delay := s.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

// isRetryable reports whether the error represents a transient failure worth
// retrying.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Never retry a cancelled context.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		// 429 and 5xx are transient; other statuses are not.
		return statusErr.StatusCode == 429 || statusErr.StatusCode >= 500
	}

	// Non-HTTP errors (network, DNS, etc.) are worth retrying.
	return true
}
