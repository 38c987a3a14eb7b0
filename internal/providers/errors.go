package providers

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidRequest reports a request that could not be built, such as a malformed base URL.
	ErrInvalidRequest = errors.New("invalid menu request")
	// ErrNetwork matches transport failures and non-200 responses.
	ErrNetwork = errors.New("menu network error")
	// ErrDecoding matches responses whose body is not a menu document.
	ErrDecoding = errors.New("menu decoding error")
	// ErrProviderUnavailable is returned when a wrapper has nothing to delegate to.
	ErrProviderUnavailable = errors.New("menu provider unavailable")
)

// NetworkError captures a failed exchange with the upstream API.
// StatusCode is zero when no response was received.
type NetworkError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Err        error
}

func (e *NetworkError) Error() string {
	msg := "request failed"
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Provider != "" {
		return e.Provider + ": " + msg
	}
	return msg
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// RateLimited reports whether the upstream answered 429.
func (e *NetworkError) RateLimited() bool { return e.StatusCode == 429 }

// DecodingError wraps the parse failure of a response body.
type DecodingError struct {
	Provider string
	Err      error
}

func (e *DecodingError) Error() string {
	msg := "decode menu"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Provider != "" {
		return e.Provider + ": " + msg
	}
	return msg
}

func (e *DecodingError) Unwrap() error { return e.Err }

func (e *DecodingError) Is(target error) bool { return target == ErrDecoding }

// IsNetworkError reports whether err is a network failure eligible for stale fallback.
func IsNetworkError(err error) bool { return errors.Is(err, ErrNetwork) }

// IsDecodingError reports whether err came from parsing a response body.
func IsDecodingError(err error) bool { return errors.Is(err, ErrDecoding) }

// wrapCanceled reports an aborted fetch as a NetworkError. Other errors pass through unchanged.
func wrapCanceled(provider string, err error) error {
	if err == nil || IsNetworkError(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &NetworkError{Provider: provider, Err: err}
	}
	return err
}

// AsNetworkError attempts to unwrap an error into a NetworkError.
func AsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr, true
	}
	return nil, false
}
