package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// NewBufferLogger returns a debug-level text logger and the buffer it writes to.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

// AssertLogged fails unless every want appears in buf.
func AssertLogged(t *testing.T, buf *bytes.Buffer, wants ...string) {
	t.Helper()
	out := buf.String()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in logs, got:\n%s", want, out)
		}
	}
}
