package handlers

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"accessboard/backend/services/import-service/internal/repository"
)

// HistorySource lists recent import batches.
type HistorySource interface {
	History(ctx context.Context, limit int) ([]repository.ImportBatch, error)
}

// NewHistoryHandler returns GET /imports/history. An optional limit query
// parameter caps the number of batches returned.
func NewHistoryHandler(source HistorySource, defaultLimit int, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = parsed
		}

		batches, err := source.History(r.Context(), limit)
		if err != nil {
			logger.Error("failed to list import batches", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list import batches")
			return
		}
		if batches == nil {
			batches = []repository.ImportBatch{}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"batches": batches})
	}
}
