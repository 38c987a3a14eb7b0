package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	appmenus "wasup-chucks/internal/app/menus"
	"wasup-chucks/internal/cache"
	"wasup-chucks/internal/config"
	"wasup-chucks/internal/favorites"
	httpserver "wasup-chucks/internal/http"
	"wasup-chucks/internal/http/handlers"
	"wasup-chucks/internal/http/middleware"
	"wasup-chucks/internal/logging"
	"wasup-chucks/internal/metrics"
	"wasup-chucks/internal/notifications"
	"wasup-chucks/internal/poller"
	"wasup-chucks/internal/providers"
)

var metricsSetup = metrics.Setup

// Server wires the menu pipeline, reminder scheduling and the operational listener together.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	menus         *appmenus.Service
	favorites     *favorites.FileStore
	ops           listener
	metricsServer listener
	loop          refreshLoop
	metricsStop   func(context.Context) error
	closeStore    func() error
}

// New builds every component from cfg. It fails only when the persistent cache or the refresh schedule cannot be set up.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServer(ctx, cfg, logger, nil, nil)
}

// newServer lets tests inject a provider and recorder; nil values are built from cfg.
func newServer(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.MenuProvider, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsHandler, metricsShutdown := buildMetrics(ctx, cfg, logger, recorder)

	if provider == nil {
		provider = newProviderFactory(logger, recorder).build(cfg)
	}

	persistent, closeStore, err := buildPersistent(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	menuCache := cache.New(cache.Config{
		Provider:   provider,
		Persistent: persistent,
		Expiration: cfg.Cache.Expiration,
		Logger:     logger,
		Metrics:    recorder,
	})
	svc := appmenus.NewService(menuCache, logger)
	favs := favorites.NewFileStore(cfg.FavoritesPath)
	scheduler := notifications.NewScheduler(buildNotifier(cfg.NotifySinkURL, logger), logger, recorder)

	plr, err := poller.New(svc, favs, scheduler, logger, recorder, cfg.RefreshSchedule)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	s := &Server{
		cfg:         cfg,
		logger:      logger,
		metrics:     recorder,
		menus:       svc,
		favorites:   favs,
		loop:        plr,
		metricsStop: metricsShutdown,
		closeStore:  closeStore,
	}

	var routedMetrics http.Handler
	if metricsHandler != nil {
		if cfg.Metrics.SharesPort(cfg.Port) {
			routedMetrics = metricsHandler
		} else {
			s.metricsServer = newListener(cfg.Metrics.Port, metricsHandler)
		}
	}
	s.ops = s.buildOpsListener(routedMetrics)
	return s, nil
}

func (s *Server) buildOpsListener(metricsHandler http.Handler) listener {
	handler := handlers.NewHandler(s.menus, s.metrics, s.logger, s.loop.Status)

	var admin *handlers.AdminHandler
	if s.cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(s.menus, s.loop.Trigger, s.cfg.AdminToken, s.logger)
		if s.favorites != nil {
			admin.WithFavorites(s.favorites)
		}
	}

	logger := s.logger
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	router := httpserver.NewRouter(handler, admin, metricsHandler)
	return newListener(s.cfg.Port, middleware.Chain(router, middleware.AccessLog(logger), middleware.Recover(logger)))
}

// Run starts the listeners, the refresh loop and the favorites watcher, then waits for ctx to end and shuts down.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.loop.Start(ctx)
	s.watchFavorites(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) watchFavorites(ctx context.Context) {
	if s.favorites == nil {
		return
	}
	err := s.favorites.Watch(ctx, s.logger, func(favorites.Set) {
		if err := s.loop.Trigger(ctx); err != nil {
			logging.Warn(s.logger, "reschedule after favorites change failed", "error", err)
		}
	})
	if err != nil {
		logging.Warn(s.logger, "favorites watcher unavailable", slog.String(logging.FieldPath, s.favorites.Path()), "error", err)
	}
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("ops", s.ops, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.loop.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.ops.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.closeStore != nil {
		if err := s.closeStore(); err != nil {
			logging.Warn(s.logger, "persistent cache close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, http.Handler, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(ctx, recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}
	if !recCfg.Enabled {
		handler = nil
	}
	return rec, handler, shutdown
}

func launchServer(name string, srv listener, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the operational HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.ops.Handler()
}

// Menus exposes the menu service.
func (s *Server) Menus() *appmenus.Service {
	return s.menus
}
