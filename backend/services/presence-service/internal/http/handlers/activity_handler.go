package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"accessboard/backend/services/presence-service/internal/metrics"
	"accessboard/backend/services/presence-service/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboard origin enforcement happens at the reverse proxy.
	CheckOrigin: func(*http.Request) bool { return true },
}

// NewActivityHandler returns GET /ws/activity: upgrades the connection and
// attaches the client to the live feed hub until it disconnects.
func NewActivityHandler(hub *ws.Hub, m *metrics.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := ws.NewClient(conn, logger, func(c *ws.Client) {
			hub.Remove(c)
			if m != nil {
				m.ActivityClients.Dec()
			}
		})
		hub.Add(client)
		if m != nil {
			m.ActivityClients.Inc()
		}

		client.Start(r.Context())
	}
}
