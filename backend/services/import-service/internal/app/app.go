package app

import (
	"context"
	"database/sql"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	libdb "accessboard/backend/libs/db"
	"accessboard/backend/services/import-service/internal/clients"
	"accessboard/backend/services/import-service/internal/config"
	httpserver "accessboard/backend/services/import-service/internal/http"
	"accessboard/backend/services/import-service/internal/http/handlers"
	"accessboard/backend/services/import-service/internal/metrics"
	"accessboard/backend/services/import-service/internal/repository"
	"accessboard/backend/services/import-service/internal/service"
)

// App wires import-service dependencies.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	logger *zap.Logger
}

// New constructs the application graph. The presence client is optional:
// without a base URL imports are stored without downstream notification.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := libdb.NewPostgresDB(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	repo := repository.NewImportRepository(sqlDB)

	notifier := clients.NewPresenceClient(cfg.Presence.BaseURL, logger)
	importService := service.NewImportService(repo, notifier, m, logger)

	routes := httpserver.Routes{
		Import:  handlers.NewImportHandler(importService, cfg.MaxUploadBytes(), logger),
		History: handlers.NewHistoryHandler(importService, cfg.HistoryLimit, logger),
		Health:  handlers.NewHealthHandler(),
		Metrics: promhttp.Handler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		db:     sqlDB,
		logger: logger,
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
}
