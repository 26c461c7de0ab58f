package app

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/edulearn-backend/internal/http"
	httpH "github.com/yungbote/edulearn-backend/internal/http/handlers"
	"github.com/yungbote/edulearn-backend/internal/observability"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
	"github.com/yungbote/edulearn-backend/internal/realtime"
	"github.com/yungbote/edulearn-backend/internal/services"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services
	SSEHub   *realtime.SSEHub
	Server   *http.Server
	Metrics  *observability.Metrics

	shutdownOtel func(context.Context) error
	cancel       context.CancelFunc
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	metrics := observability.Init(log, cfg.Metrics)
	shutdownOtel := observability.InitOTel(ctx, log, cfg.Otel)

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		if shutdownOtel != nil {
			_ = shutdownOtel(context.Background())
		}
		log.Sync()
		return nil, err
	}
	theDB := clients.Postgres.DB()

	hub := realtime.NewSSEHub(log)
	reposet := wireRepos(theDB, log)
	emitter := &services.BusEmitter{Bus: clients.Bus, Log: log}
	serviceset := wireServices(theDB, log, cfg, reposet, clients.Media, emitter, metrics)

	checks := map[string]httpH.Pinger{"postgres": clients.Postgres.Ping}
	if clients.Redis != nil {
		rdb := clients.Redis
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	handlerset := wireHandlers(log, serviceset, hub, metrics, checks)
	middleware := wireMiddleware(log, serviceset)
	server := wireServer(log, cfg, metrics, handlerset, middleware)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		SSEHub:       hub,
		Server:       server,
		Metrics:      metrics,
		shutdownOtel: shutdownOtel,
	}, nil
}

// Start launches the background loops: bus fan-in to the local hub and the
// metric collectors.
func (a *App) Start(ctx context.Context) error {
	if a == nil || a.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	err := a.Clients.Bus.StartForwarder(ctx, func(m realtime.SSEMessage) {
		a.Metrics.IncSSEEvent(string(m.Event))
		a.SSEHub.Broadcast(m)
	})
	if err != nil {
		cancel()
		a.cancel = nil
		return fmt.Errorf("start SSE forwarder: %w", err)
	}

	theDB := a.Clients.Postgres.DB()
	a.Metrics.StartPostgresCollector(ctx, a.Log, theDB)
	a.Metrics.StartDoubtCollector(ctx, a.Log, theDB)
	if a.Clients.Redis != nil {
		a.Metrics.StartRedisCollector(ctx, a.Log, a.Clients.Redis)
	}
	if a.Cfg.MetricsAddr != "" {
		a.Metrics.StartServer(ctx, a.Log, a.Cfg.MetricsAddr)
	}
	return nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	if err := a.Start(ctx); err != nil {
		return err
	}
	a.Log.Info("Listening", "port", a.Cfg.Port)
	return a.Server.Run(ctx, ":"+a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.shutdownOtel != nil {
		if err := a.shutdownOtel(context.Background()); err != nil {
			a.Log.Warn("otel shutdown", "error", err)
		}
	}
	a.Clients.Close(a.Log)
	if a.Log != nil {
		a.Log.Sync()
	}
}
