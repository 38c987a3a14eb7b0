package providers

import (
	"context"
	"log/slog"

	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/logging"
)

// MenuProvider fetches the multi-day menu document from an upstream source.
type MenuProvider interface {
	FetchMenu(ctx context.Context) (menus.Response, error)
}

// Named is implemented by providers that report a stable name for logs and metrics.
type Named interface {
	Name() string
}

// scopedLogger prefers the request logger on ctx and tags it with the provider name.
// It returns nil when neither ctx nor fallback carries a logger.
func scopedLogger(ctx context.Context, fallback *slog.Logger, provider string) *slog.Logger {
	l := logging.FromContext(ctx, fallback)
	if l == nil {
		return nil
	}
	return l.With(slog.String(logging.FieldProvider, provider))
}
