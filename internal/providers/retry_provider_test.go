package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/metrics"
)

type flakeyProvider struct {
	failures int
	err      error
	calls    int
}

func (f *flakeyProvider) FetchMenu(ctx context.Context) (menus.Response, error) {
	_ = ctx
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return nil, f.err
		}
		return nil, &NetworkError{Provider: "flakey", Err: errors.New("boom")}
	}
	return menus.Response{"2024-09-09": {{Venue: "Home Cooking", Slot: "lunch"}}}, nil
}

func fastRetries(p MenuProvider) *retryingProvider {
	rp := p.(*retryingProvider)
	rp.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return rp
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rec := metrics.NewRecorder()
	rp := fastRetries(NewRetryingProvider(fp, nil, rec, "flakey", 3, time.Millisecond))

	resp, err := rp.FetchMenu(context.Background())
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if len(resp.Day("2024-09-09")) != 1 {
		t.Fatalf("unexpected menu %+v", resp)
	}
	if fp.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls)
	}
	if rec.ProviderCalls("flakey") != 3 || rec.ProviderErrors("flakey") != 2 {
		t.Fatalf("unexpected metrics %+v", rec.Snapshot("flakey"))
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := fastRetries(NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 2, time.Millisecond))

	_, err := rp.FetchMenu(context.Background())
	if !IsNetworkError(err) {
		t.Fatalf("expected network error after retries, got %v", err)
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderDoesNotRetryDecodingErrors(t *testing.T) {
	fp := &flakeyProvider{failures: 5, err: &DecodingError{Err: errors.New("bad json")}}
	rp := fastRetries(NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Millisecond))

	_, err := rp.FetchMenu(context.Background())
	if !IsDecodingError(err) {
		t.Fatalf("expected decoding error, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", fp.calls)
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.FetchMenu(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if !IsNetworkError(err) {
		t.Fatalf("expected canceled fetch reported as network error, got %T", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected no retries after cancel, got %d calls", fp.calls)
	}
}

func TestRetryingProviderRecordsRateLimits(t *testing.T) {
	fp := &flakeyProvider{failures: 1, err: &NetworkError{StatusCode: 429, RetryAfter: 2 * time.Millisecond}}
	rec := metrics.NewRecorder()
	rp := fastRetries(NewRetryingProvider(fp, nil, rec, "rl", 2, time.Millisecond))

	if _, err := rp.FetchMenu(context.Background()); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if got := rec.RateLimitHits("rl"); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.LastRetryAfter("rl"); got != 2*time.Millisecond {
		t.Fatalf("expected retry-after recorded, got %s", got)
	}
}

func TestRetryAfterBackOffHonorsHint(t *testing.T) {
	b := &retryAfterBackOff{delegate: backoff.NewConstantBackOff(time.Millisecond)}
	b.hint = time.Second
	if got := b.NextBackOff(); got != time.Second {
		t.Fatalf("expected hint to win, got %s", got)
	}
	if got := b.NextBackOff(); got != time.Millisecond {
		t.Fatalf("expected hint to be consumed, got %s", got)
	}

	stop := &retryAfterBackOff{delegate: &backoff.StopBackOff{}, hint: time.Second}
	if got := stop.NextBackOff(); got != backoff.Stop {
		t.Fatalf("expected stop to win over hint, got %s", got)
	}
}

func TestNewRetryingProviderDefaults(t *testing.T) {
	rp := NewRetryingProvider(nil, nil, nil, "", 0, 0).(*retryingProvider)
	if rp.providerName != "provider" || rp.maxAttempts != defaultRetryAttempts {
		t.Fatalf("unexpected defaults %+v", rp)
	}
	if _, err := rp.FetchMenu(context.Background()); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable for nil inner, got %v", err)
	}
}
