package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNetworkErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("refresh: %w", &NetworkError{Provider: "diningdata", Err: cause})

	if !IsNetworkError(err) || !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected network error to match sentinel")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be unwrapped")
	}
	if IsDecodingError(err) {
		t.Fatalf("network error must not match decoding sentinel")
	}
	if got := err.Error(); !strings.Contains(got, "diningdata: request failed: connection refused") {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestNetworkErrorStatus(t *testing.T) {
	err := &NetworkError{StatusCode: 429}
	if got := err.Error(); got != "unexpected status 429" {
		t.Fatalf("unexpected message %q", got)
	}
	if !err.RateLimited() {
		t.Fatalf("expected 429 to be rate limited")
	}

	netErr, ok := AsNetworkError(fmt.Errorf("wrap: %w", err))
	if !ok || netErr.StatusCode != 429 {
		t.Fatalf("expected to unwrap network error, got %+v", netErr)
	}
	if _, ok := AsNetworkError(errors.New("other")); ok {
		t.Fatalf("expected plain error not to unwrap")
	}
}

func TestDecodingErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("unexpected token")
	err := &DecodingError{Provider: "diningdata", Err: cause}

	if !IsDecodingError(err) || IsNetworkError(err) {
		t.Fatalf("expected decoding error only")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be unwrapped")
	}
	if got := err.Error(); got != "diningdata: decode menu: unexpected token" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestWrapCanceled(t *testing.T) {
	if err := wrapCanceled("diningdata", nil); err != nil {
		t.Fatalf("expected nil passthrough, got %v", err)
	}
	err := wrapCanceled("diningdata", fmt.Errorf("wait: %w", context.DeadlineExceeded))
	if !IsNetworkError(err) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline wrapped as network error, got %v", err)
	}
	decode := &DecodingError{Err: errors.New("bad json")}
	if got := wrapCanceled("diningdata", decode); got != decode {
		t.Fatalf("expected other errors untouched, got %v", got)
	}
	netErr := &NetworkError{Err: context.Canceled}
	if got := wrapCanceled("diningdata", netErr); got != netErr {
		t.Fatalf("expected existing network error untouched, got %v", got)
	}
}
