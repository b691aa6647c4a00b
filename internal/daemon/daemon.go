package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soccorso-app/soccorso/internal/api"
	"github.com/soccorso-app/soccorso/internal/app/progression"
	"github.com/soccorso-app/soccorso/internal/app/wallet"
	"github.com/soccorso-app/soccorso/internal/health"
	_ "github.com/soccorso-app/soccorso/internal/infra/metrics" // Register Prometheus metrics
	"github.com/soccorso-app/soccorso/internal/infra/store"
)

// Daemon is the soccorso runtime. It wires together all services.
type Daemon struct {
	Config   Config
	DB       *store.SQLite
	Progress *progression.Service
	Wallet   *wallet.Service
	Server   *api.Server
	Health   *health.Checker
	Log      *slog.Logger

	cancel context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := store.Open(soccorsoHome())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	logger := newLogger(cfg.Logging)

	w := wallet.NewService(db, nil)
	progress := progression.NewService(db,
		progression.WithWallet(w),
		progression.WithLogger(logger),
	)

	srv := api.NewServer(progress)
	srv.SetWallet(w)
	if cfg.API.Metrics {
		srv.EnableMetrics()
	}

	checker := health.NewChecker(db, soccorsoHome())
	srv.SetHealthChecker(checker)

	return &Daemon{
		Config:   cfg,
		DB:       db,
		Progress: progress,
		Wallet:   w,
		Server:   srv,
		Health:   checker,
		Log:      logger,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	d.Log.Info("soccorso serving", "addr", addr, "metrics", d.Config.API.Metrics)

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}

// newLogger builds the structured logger from config.
func newLogger(cfg LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
