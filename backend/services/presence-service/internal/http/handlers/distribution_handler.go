package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"accessboard/backend/services/presence-service/internal/service"
)

// NewDistributionHandler returns GET /distribution: hourly traffic, label
// counters and anomaly flags over the range.
func NewDistributionHandler(svc *service.PresenceService, logger *zap.Logger) http.HandlerFunc {
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

		dist, err := svc.Distribution(r.Context(), from, to)
		if err != nil {
			logger.Error("failed to compute distribution", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to compute distribution")
			return
		}

		writeJSON(w, http.StatusOK, dist)
	}
}
