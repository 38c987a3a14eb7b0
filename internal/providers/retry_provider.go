package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/logging"
	"wasup-chucks/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

// retryingProvider wraps a MenuProvider with exponential backoff.
// Only network errors are retried; decoding and request errors fail immediately.
type retryingProvider struct {
	inner        MenuProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/baseDelay are <= 0, defaults are used.
func NewRetryingProvider(inner MenuProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, baseDelay time.Duration) MenuProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if baseDelay <= 0 {
		baseDelay = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = baseDelay
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retryingProvider) FetchMenu(ctx context.Context) (menus.Response, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	attempt := 0
	policy := &retryAfterBackOff{delegate: r.newBackOff()}
	operation := func() (menus.Response, error) {
		attempt++
		start := time.Now()
		resp, err := r.inner.FetchMenu(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return resp, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, backoff.Permanent(wrapCanceled(r.providerName, ctxErr))
		}

		netErr, ok := AsNetworkError(err)
		if !ok {
			return nil, backoff.Permanent(err)
		}
		if netErr.RateLimited() {
			r.metrics.RecordRateLimit(r.providerName, netErr.RetryAfter)
			policy.hint = netErr.RetryAfter
		}
		return nil, err
	}

	logger := scopedLogger(ctx, r.logger, r.providerName)
	bounded := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)
	notify := func(err error, delay time.Duration) {
		logging.Warn(logger, "provider fetch retry",
			"attempt", attempt, "max_attempts", r.maxAttempts, "delay", delay, "error", err)
	}

	resp, err := backoff.RetryNotifyWithData(operation, bounded, notify)
	if err != nil {
		err = wrapCanceled(r.providerName, err)
		logging.Warn(logger, "provider fetch failed", "attempts", attempt, "error", err)
		return nil, err
	}
	return resp, nil
}

// retryAfterBackOff waits at least as long as the last Retry-After hint.
type retryAfterBackOff struct {
	delegate backoff.BackOff
	hint     time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.delegate.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if b.hint > next {
		next = b.hint
	}
	b.hint = 0
	return next
}

func (b *retryAfterBackOff) Reset() {
	b.hint = 0
	b.delegate.Reset()
}
