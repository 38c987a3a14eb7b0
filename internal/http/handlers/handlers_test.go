package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appmenus "wasup-chucks/internal/app/menus"
	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/metrics"
	"wasup-chucks/internal/poller"
	"wasup-chucks/internal/specials"
	"wasup-chucks/internal/testutil"
)

type stubMenus struct {
	state appmenus.State
}

func (s stubMenus) State() appmenus.State { return s.state }

func (s stubMenus) Summary(now time.Time) specials.Summary {
	return specials.WidgetSummary(s.state.Menu, now)
}

func TestHealth(t *testing.T) {
	h := NewHandler(stubMenus{}, nil, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := NewHandler(stubMenus{}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestReadyFollowsPollerStatus(t *testing.T) {
	st := poller.Status{}
	h := NewHandler(stubMenus{}, nil, nil, func() poller.Status { return st })

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	st = poller.Status{LastSuccess: time.Now()}
	rr = testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	noPoller := NewHandler(stubMenus{}, nil, nil, nil)
	rr = testutil.Serve(http.HandlerFunc(noPoller.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestStatusDuringLunch(t *testing.T) {
	fetched := time.Date(2024, 9, 16, 14, 0, 0, 0, time.UTC)
	rec := metrics.NewRecorder()
	rec.RecordCacheHit(metrics.TierMemory)

	h := NewHandler(stubMenus{state: appmenus.State{
		Menu:        testutil.SampleMenu("2024-09-16"),
		FetchedAt:   fetched,
		LastAttempt: fetched,
		LastError:   errors.New("upstream 503"),
	}}, rec, nil, func() poller.Status { return poller.Status{LastSuccess: fetched} })
	h.now = testutil.NowAt(testutil.VenueTime(t, "2024-09-16", 12, 0))

	rr := testutil.Serve(http.HandlerFunc(h.Status), http.MethodGet, "/status", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp statusResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Hall.Phase != "Lunch" || !resp.Hall.Open || resp.Hall.NextPhase != "Dinner" {
		t.Fatalf("unexpected hall %+v", resp.Hall)
	}
	if resp.Hall.Countdown != "2h" || resp.Hall.CountdownLong != "2h 30m" {
		t.Fatalf("expected countdown to end of lunch, got %+v", resp.Hall)
	}
	if resp.Specials.Venue != specials.HomeCookingVenue || len(resp.Specials.Items) != 2 || resp.Specials.Items[0] != "Chicken Tenders" {
		t.Fatalf("unexpected specials %+v", resp.Specials)
	}
	if len(resp.Menu.Days) != 1 || resp.Menu.LastError != "upstream 503" || resp.Menu.FetchedAt == nil {
		t.Fatalf("unexpected menu view %+v", resp.Menu)
	}
	if resp.Poller == nil || !resp.Poller.Ready {
		t.Fatalf("expected ready poller view, got %+v", resp.Poller)
	}
	if resp.Cache.MemoryHits != 1 {
		t.Fatalf("expected cache stats, got %+v", resp.Cache)
	}
}

func TestStatusWhenClosed(t *testing.T) {
	h := NewHandler(stubMenus{state: appmenus.State{Menu: menus.Response{}}}, nil, nil, nil)
	h.now = testutil.NowAt(testutil.VenueTime(t, "2024-09-16", 22, 0))

	rr := testutil.Serve(http.HandlerFunc(h.Status), http.MethodGet, "/status", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp statusResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Hall.Open || resp.Hall.Phase != "Closed" || resp.Hall.NextPhase != "Breakfast" {
		t.Fatalf("unexpected hall %+v", resp.Hall)
	}
	if resp.Specials.Phase != "Breakfast" || len(resp.Specials.Items) != 0 {
		t.Fatalf("unexpected specials %+v", resp.Specials)
	}
	if resp.Poller != nil || resp.Menu.FetchedAt != nil {
		t.Fatalf("expected optional fields omitted, got %+v", resp)
	}
}
