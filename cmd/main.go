package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/okian/salaryscope/internal/adapters/http/api"
	"github.com/okian/salaryscope/internal/adapters/http/site"
	"github.com/okian/salaryscope/internal/adapters/http/swagger"
	app "github.com/okian/salaryscope/internal/app"
	"github.com/okian/salaryscope/internal/config"
	"github.com/okian/salaryscope/pkg/logger"
	"github.com/okian/salaryscope/pkg/metrics"
)

// HTTP server timeout constants. WriteTimeout stays unset so /api/events
// streams are not cut off.
const (
	readTimeout               = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString("salaryscope: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	// Disable default Go metrics collection to avoid duplicate metrics
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.InitWith(os.Stdout, cfg.LogFormat); err != nil {
		return err
	}
	log := logger.Get().Named("main")
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(append(app.OptionsFromConfig(cfg), app.WithLogger(logger.Get().Named("service")))...)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	g, gctx := errgroup.WithContext(ctx)
	srv := newServer(gctx, cfg, svc)

	// The dataset load runs beside the server; until it finishes the
	// fallback catalog is served.
	g.Go(func() error {
		svc.Load(gctx)
		return nil
	})
	g.Go(func() error {
		startSystemMetricsUpdater(gctx)
		return nil
	})
	g.Go(func() error {
		startServiceMetricsUpdater(gctx, svc)
		return nil
	})
	g.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("dataset", cfg.Dataset))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info(ctx, "shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	log.Info(ctx, "server stopped")
	return err
}

// newServer builds the HTTP server. Request contexts derive from ctx, and
// Shutdown closes the event hub, so open /api/events streams end instead of
// holding Shutdown until its deadline.
func newServer(ctx context.Context, cfg *config.Config, svc *app.Service) *http.Server {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, cfg, svc),
		ReadTimeout:       readTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	srv.RegisterOnShutdown(svc.Hub().Close)
	return srv
}

// newMux registers the page, the API docs and the business API.
func newMux(ctx context.Context, cfg *config.Config, svc *app.Service) *http.ServeMux {
	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc,
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithServerLogger(logger.Get().Named("http")),
	).Register(ctx, mux)
	return mux
}

// startSystemMetricsUpdater updates runtime metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater mirrors service stats into gauges until ctx is done.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics updates service-level metrics.
func updateServiceMetrics(svc *app.Service) {
	stats := svc.GetStats()

	if queueLen, ok := stats["queue_size"].(int); ok {
		metrics.UpdateQueueSize(queueLen)
	}
	if sessions, ok := stats["sessions"].(int); ok {
		metrics.UpdateSessionsActive(sessions)
	}
}
