package server

import (
	"fmt"
	"log/slog"
	"strings"

	"wasup-chucks/internal/config"
	"wasup-chucks/internal/logging"
	"wasup-chucks/internal/metrics"
	"wasup-chucks/internal/providers"
	"wasup-chucks/internal/providers/diningdata"
	"wasup-chucks/internal/providers/fixture"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.MenuProvider {
	base := f.selectProvider(cfg)
	limited := providers.NewRateLimitedProvider(base, cfg.UpstreamMinGap, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), 0, 0)
}

func (f providerFactory) selectProvider(cfg config.Config) providers.MenuProvider {
	switch cfg.Provider {
	case config.ProviderDiningData, "":
		return diningdata.NewClient(diningdata.Config{
			BaseURL: cfg.DiningData.BaseURL,
			Days:    cfg.DiningData.Days,
		})
	case config.ProviderFixture:
		return fixture.New(cfg.DiningData.Days)
	default:
		logging.Warn(f.logger, "unknown provider, falling back to dining data API", slog.String("provider", cfg.Provider))
		return diningdata.NewClient(diningdata.Config{
			BaseURL: cfg.DiningData.BaseURL,
			Days:    cfg.DiningData.Days,
		})
	}
}

// normalizeProviderName returns the lower-cased label used in provider logs and metrics.
// A configured name wins, then the provider's own Name, then its type.
func normalizeProviderName(raw string, provider providers.MenuProvider) string {
	switch named, ok := provider.(providers.Named); {
	case raw != "":
		return strings.ToLower(raw)
	case ok:
		return strings.ToLower(named.Name())
	case provider != nil:
		return strings.ToLower(fmt.Sprintf("%T", provider))
	default:
		return "provider"
	}
}
