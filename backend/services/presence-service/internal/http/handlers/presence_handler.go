package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"accessboard/backend/libs/presence"
	"accessboard/backend/services/presence-service/internal/service"
)

// NewPresenceHandler returns the GET /presence handler. An empty result is a
// normal response, not an error: the dashboard renders it as "no data for
// this period".
func NewPresenceHandler(svc *service.PresenceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		granularity, err := presence.ParseGranularity(r.URL.Query().Get("granularity"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "granularity must be one of day, week, month, year")
			return
		}

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

		summaries, err := svc.Summaries(r.Context(), granularity, from, to)
		if err != nil {
			logger.Error("failed to compute summaries", zap.String("granularity", string(granularity)), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to compute presence summaries")
			return
		}
		if summaries == nil {
			summaries = []presence.PeriodSummary{}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"granularity": granularity,
			"summaries":   summaries,
		})
	}
}
