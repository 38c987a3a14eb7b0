package testutil

import (
	"testing"

	"wasup-chucks/internal/metrics"
)

// AssertCacheCounts compares the recorder's cache counters with want.
func AssertCacheCounts(t *testing.T, rec *metrics.Recorder, want metrics.CacheSnapshot) {
	t.Helper()
	if got := rec.Cache(); got != want {
		t.Fatalf("expected cache counters %+v, got %+v", want, got)
	}
}
