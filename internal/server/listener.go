package server

import (
	"context"
	"net/http"
	"time"

	"wasup-chucks/internal/poller"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
)

// shutdownTimeout bounds how long Run waits for listeners, the refresh loop and the store to close.
var shutdownTimeout = 10 * time.Second

// listener is the slice of *http.Server the refresher drives; tests swap in fakes.
type listener interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

// refreshLoop is the part of the poller the server starts, stops and probes.
type refreshLoop interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
	Trigger(ctx context.Context) error
}

type stdListener struct {
	srv *http.Server
}

func newListener(port string, h http.Handler) stdListener {
	return stdListener{srv: &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}}
}

func (l stdListener) ListenAndServe() error              { return l.srv.ListenAndServe() }
func (l stdListener) Shutdown(ctx context.Context) error { return l.srv.Shutdown(ctx) }
func (l stdListener) Addr() string                       { return l.srv.Addr }
func (l stdListener) Handler() http.Handler              { return l.srv.Handler }
