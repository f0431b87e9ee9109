package app

import (
	"context"
	"database/sql"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libdb "accessboard/backend/libs/db"
	libredis "accessboard/backend/libs/redis"
	"accessboard/backend/services/presence-service/internal/config"
	httpserver "accessboard/backend/services/presence-service/internal/http"
	"accessboard/backend/services/presence-service/internal/http/handlers"
	"accessboard/backend/services/presence-service/internal/metrics"
	redisstore "accessboard/backend/services/presence-service/internal/redis"
	"accessboard/backend/services/presence-service/internal/repository"
	"accessboard/backend/services/presence-service/internal/service"
	"accessboard/backend/services/presence-service/internal/ws"
)

// App wires presence-service dependencies.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph. Redis is optional: without an addr
// the service runs uncached.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := libdb.NewPostgresDB(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	var cache *redisstore.Store
	if cfg.Redis.Addr != "" {
		redisClient, err = libredis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		cache = redisstore.NewStore(redisClient, cfg.SummaryTTL())
	}

	m := metrics.New()
	repo := repository.NewAccessLogRepository(sqlDB)
	presenceService := service.NewPresenceService(repo, cache, m, cfg.DefaultRangeDays, logger)
	hub := ws.NewHub(logger)

	routes := httpserver.Routes{
		Presence:     handlers.NewPresenceHandler(presenceService, logger),
		Overview:     handlers.NewOverviewHandler(presenceService, logger),
		Distribution: handlers.NewDistributionHandler(presenceService, logger),
		Activity:     handlers.NewActivityHandler(hub, m, logger),
		EventsNotify: handlers.NewEventsNotifyHandler(hub, logger),
		Health:       handlers.NewHealthHandler(),
		Metrics:      promhttp.Handler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
