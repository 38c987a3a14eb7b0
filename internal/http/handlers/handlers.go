package handlers

import (
	"log/slog"
	nethttp "net/http"
	"time"

	appmenus "wasup-chucks/internal/app/menus"
	"wasup-chucks/internal/domain/meals"
	"wasup-chucks/internal/metrics"
	"wasup-chucks/internal/poller"
	"wasup-chucks/internal/specials"
	"wasup-chucks/internal/status"
)

// MenuState exposes what the refresher last loaded.
type MenuState interface {
	State() appmenus.State
	Summary(now time.Time) specials.Summary
}

// Handler serves the refresher's health and status endpoints.
type Handler struct {
	menus    MenuState
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the refresher always reports ready.
func NewHandler(menus MenuState, recorder *metrics.Recorder, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		menus:    menus,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
		statusFn: statusFn,
	}
}

func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, h.logger, nethttp.MethodGet) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether recent refresh cycles have succeeded.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, h.logger, nethttp.MethodGet) {
		return
	}
	if h.statusFn == nil || h.statusFn().IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusServiceUnavailable, map[string]string{"status": "not ready"}, h.logger)
}

type hallStatus struct {
	Phase          string     `json:"phase"`
	Open           bool       `json:"open"`
	NextPhase      string     `json:"nextPhase,omitempty"`
	NextPhaseStart *time.Time `json:"nextPhaseStart,omitempty"`
	CurrentMealEnd *time.Time `json:"currentMealEnd,omitempty"`
	Countdown      string     `json:"countdown,omitempty"`
	CountdownLong  string     `json:"countdownLong,omitempty"`
}

type specialsView struct {
	Phase string   `json:"phase"`
	Venue string   `json:"venue"`
	Items []string `json:"items"`
}

type menuView struct {
	Days        []string   `json:"days"`
	FetchedAt   *time.Time `json:"fetchedAt,omitempty"`
	LastAttempt *time.Time `json:"lastAttempt,omitempty"`
	LastError   string     `json:"lastError,omitempty"`
}

type pollerView struct {
	Ready               bool       `json:"ready"`
	ConsecutiveFailures int        `json:"consecutiveFailures"`
	LastError           string     `json:"lastError,omitempty"`
	LastSuccess         *time.Time `json:"lastSuccess,omitempty"`
}

type statusResponse struct {
	Hall     hallStatus            `json:"hall"`
	Specials specialsView          `json:"specials"`
	Menu     menuView              `json:"menu"`
	Poller   *pollerView           `json:"poller,omitempty"`
	Cache    metrics.CacheSnapshot `json:"cache"`
}

// Status reports the hall's open state, the specials worth showing now, and refresh health.
func (h *Handler) Status(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, h.logger, nethttp.MethodGet) {
		return
	}
	now := h.now()
	sum := h.menus.Summary(now)
	state := h.menus.State()

	resp := statusResponse{
		Hall: hallView(sum.Status),
		Specials: specialsView{
			Phase: sum.Phase.DisplayName(),
			Venue: sum.Venue,
			Items: make([]string, 0, len(sum.Items)),
		},
		Menu: menuView{
			Days:        state.Menu.Dates(),
			FetchedAt:   optionalTime(state.FetchedAt),
			LastAttempt: optionalTime(state.LastAttempt),
		},
		Cache: h.metrics.Cache(),
	}
	for _, item := range sum.Items {
		resp.Specials.Items = append(resp.Specials.Items, item.Name)
	}
	if state.LastError != nil {
		resp.Menu.LastError = state.LastError.Error()
	}
	if h.statusFn != nil {
		ps := h.statusFn()
		resp.Poller = &pollerView{
			Ready:               ps.IsReady(),
			ConsecutiveFailures: ps.ConsecutiveFailures,
			LastError:           ps.LastError,
			LastSuccess:         optionalTime(ps.LastSuccess),
		}
	}

	writeJSON(w, nethttp.StatusOK, resp, requestLogger(r, h.logger))
}

func hallView(st status.Status) hallStatus {
	v := hallStatus{
		Phase:          st.CurrentPhase.DisplayName(),
		Open:           st.IsOpen,
		NextPhaseStart: st.NextPhaseStart,
		CurrentMealEnd: st.CurrentMealEnd,
	}
	if st.NextPhase != nil && *st.NextPhase != meals.Closed {
		v.NextPhase = st.NextPhase.DisplayName()
	}
	if st.TimeRemaining != nil {
		v.Countdown = status.CompactCountdown(*st.TimeRemaining)
		v.CountdownLong = status.ExpandedCountdown(*st.TimeRemaining)
	}
	return v
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
