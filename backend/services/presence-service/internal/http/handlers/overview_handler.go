package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"accessboard/backend/services/presence-service/internal/service"
)

// NewOverviewHandler returns GET /presence/overview: all four granularities
// plus the distribution for one range, computed in a single pass over the
// stored events.
func NewOverviewHandler(svc *service.PresenceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, ok := parseDateParam(r, "from")
		if !ok {
			writeError(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return
		}
		to, ok := parseDateParam(r, "to")
		if !ok {
			writeError(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return
		}

		overview, err := svc.FullOverview(r.Context(), from, to)
		if err != nil {
			logger.Error("failed to compute overview", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to compute presence overview")
			return
		}

		writeJSON(w, http.StatusOK, overview)
	}
}
