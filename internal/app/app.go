package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/staffing-graph-backend/internal/clients/redis"
	"github.com/yungbote/staffing-graph-backend/internal/db"
	"github.com/yungbote/staffing-graph-backend/internal/graph"
	"github.com/yungbote/staffing-graph-backend/internal/graph/memory"
	"github.com/yungbote/staffing-graph-backend/internal/graph/neo4jstore"
	httpx "github.com/yungbote/staffing-graph-backend/internal/http"
	httpMW "github.com/yungbote/staffing-graph-backend/internal/http/middleware"
	"github.com/yungbote/staffing-graph-backend/internal/observability"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
	"github.com/yungbote/staffing-graph-backend/internal/platform/neo4jdb"
	"github.com/yungbote/staffing-graph-backend/internal/repos"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Store    graph.Store
	Router   *gin.Engine
	Services Services

	cache        *redis.MatchCache
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
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

	ctx := context.Background()
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	store, err := openStore(ctx, log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	// Relational audit log is optional; graph operations work without it.
	var runs repos.IngestionRunRepo
	dbService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Warn("database init failed, ingestion audit disabled", "error", err)
	} else {
		if err := dbService.AutoMigrateAll(); err != nil {
			log.Warn("database automigrate failed (continuing)", "error", err)
		}
		runs = repos.NewIngestionRunRepo(dbService.DB(), log)
	}

	cache, err := redis.NewMatchCacheFromEnv(log, cfg.MatchCacheTTL)
	if err != nil {
		log.Warn("redis init failed, match cache disabled", "error", err)
		cache = nil
	}

	svcs := wireServices(log, cfg, store, runs, cache)
	handlerset := wireHandlers(log, store, svcs)
	adminAuth := httpMW.NewAdminAuthMiddleware(log, cfg.AdminJWTSecret)

	router := httpx.NewRouter(httpx.RouterConfig{
		Log:             log,
		HealthHandler:   handlerset.Health,
		IngestHandler:   handlerset.Ingest,
		EntityHandler:   handlerset.Entity,
		MatchingHandler: handlerset.Matching,
		AdminHandler:    handlerset.Admin,
		AdminAuth:       adminAuth,
		ServiceName:     cfg.ServiceName,
	})

	return &App{
		Log:          log,
		Cfg:          cfg,
		Store:        store,
		Router:       router,
		Services:     svcs,
		cache:        cache,
		otelShutdown: otelShutdown,
	}, nil
}

// openStore prefers Neo4j and falls back to the in-memory store when no
// NEO4J_URI is configured.
func openStore(ctx context.Context, log *logger.Logger) (graph.Store, error) {
	client, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		return nil, fmt.Errorf("init neo4j: %w", err)
	}
	if client == nil {
		log.Info("NEO4J_URI not set, using in-memory graph store")
		return memory.NewStore(), nil
	}
	store, err := neo4jstore.New(ctx, client, log)
	if err != nil {
		return nil, fmt.Errorf("init neo4j store: %w", err)
	}
	return store, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting HTTP server...", "addr", a.Cfg.HTTPAddr)
	return a.Router.Run(a.Cfg.HTTPAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	ctx := context.Background()
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.Store != nil {
		_ = a.Store.Close(ctx)
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(ctx)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
