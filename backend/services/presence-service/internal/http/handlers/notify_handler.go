package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"accessboard/backend/libs/presence"
	"accessboard/backend/services/presence-service/internal/ws"
)

type notifyRequest struct {
	Events []presence.AccessEvent `json:"events"`
}

// NewEventsNotifyHandler returns POST /internal/events/notify, invoked by
// the import service after a batch lands so the live feed sees fresh scans.
func NewEventsNotifyHandler(hub *ws.Hub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req notifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if len(req.Events) == 0 {
			writeJSON(w, http.StatusAccepted, map[string]interface{}{"status": "ok", "delivered_to": 0})
			return
		}

		hub.Broadcast(req.Events)
		logger.Debug("broadcast imported events",
			zap.Int("events", len(req.Events)),
			zap.Int("clients", hub.ClientCount()))

		writeJSON(w, http.StatusAccepted, map[string]interface{}{
			"status":       "ok",
			"delivered_to": hub.ClientCount(),
		})
	}
}
