package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/http/requestutil"
	"wasup-chucks/internal/logging"
)

// Refresher reloads the menu from upstream, bypassing cached copies.
type Refresher interface {
	Refresh(ctx context.Context) (menus.Response, error)
}

// AdminHandler exposes operator-only endpoints.
type AdminHandler struct {
	refresher Refresher
	favorites FavoritesEditor
	after     func(ctx context.Context) error
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. after, when set, runs once a refresh succeeds,
// for example to rebuild reminders.
func NewAdminHandler(refresher Refresher, after func(ctx context.Context) error, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		after:     after,
		token:     token,
		logger:    logger,
	}
}

// Refresh drops cached menus and fetches a new copy. Guarded by ADMIN_TOKEN; returns 401 when missing or wrong.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, h.logger, http.MethodPost) || !h.authorized(w, r) {
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}

	logger := requestLogger(r, h.logger)
	resp, err := h.refresher.Refresh(r.Context())
	if err != nil {
		logging.Warn(logger, "admin refresh failed", slog.Any("error", err))
		writeError(w, r, http.StatusBadGateway, "failed to refresh menu", logger)
		return
	}
	h.followUp(r.Context(), logger, "refresh")

	writeJSON(w, http.StatusOK, map[string]any{
		"days":   resp.Dates(),
		"status": "ok",
	}, logger)
	logging.Info(logger, "admin refresh complete", slog.Int(logging.FieldCount, len(resp)))
}

func (h *AdminHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if requestutil.BearerMatches(r, h.token) {
		return true
	}
	logging.Warn(h.logger, "admin unauthorized",
		slog.String("path", r.URL.Path),
		slog.String("client_ip", requestutil.ClientIP(r)),
	)
	writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
	return false
}

func (h *AdminHandler) followUp(ctx context.Context, logger *slog.Logger, action string) {
	if h.after == nil {
		return
	}
	if err := h.after(ctx); err != nil {
		logging.Warn(logger, "admin follow-up failed", slog.String("action", action), slog.Any("error", err))
	}
}
