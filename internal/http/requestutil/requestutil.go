// Package requestutil holds request identity helpers shared by middleware and handlers.
package requestutil

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// HeaderRequestID carries the correlation ID in both directions.
const HeaderRequestID = "X-Request-ID"

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

type requestIDKey struct{}

// IncomingID returns the caller's X-Request-ID when well formed, otherwise a fresh UUID.
func IncomingID(r *http.Request) string {
	if r != nil {
		if id := r.Header.Get(HeaderRequestID); requestIDPattern.MatchString(id) {
			return id
		}
	}
	return uuid.NewString()
}

// WithID stores id on ctx.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// ID returns the request ID stored on ctx, or "".
func ID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the remote host.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// BearerMatches reports whether the Authorization header carries token. An empty token never matches.
func BearerMatches(r *http.Request, token string) bool {
	if r == nil || token == "" {
		return false
	}
	got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1
}
