package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/logging"
)

const (
	defaultMinInterval = 10 * time.Second
	limiterName        = "rate-limited"
)

// rateLimitedProvider wraps a MenuProvider and enforces a minimum interval between upstream calls.
type rateLimitedProvider struct {
	next     MenuProvider
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a MenuProvider that allows one call per interval.
// The first call goes straight through; later calls block until the interval has elapsed.
func NewRateLimitedProvider(next MenuProvider, interval time.Duration, logger *slog.Logger) MenuProvider {
	if interval <= 0 {
		interval = defaultMinInterval
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchMenu(ctx context.Context) (menus.Response, error) {
	if p == nil || p.next == nil {
		return nil, ErrProviderUnavailable
	}
	logger := scopedLogger(ctx, p.logger, limiterName)
	if err := p.limiter.Wait(ctx); err != nil {
		logging.Warn(logger, "fetch canceled while waiting for upstream slot", "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &NetworkError{Provider: limiterName, Err: err}
	}
	logging.Debug(logger, "upstream slot acquired", slog.Duration("interval", p.interval))
	return p.next.FetchMenu(ctx)
}
