package ws

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Client wraps one dashboard WebSocket connection.
type Client struct {
	ws      *websocket.Conn
	send    chan []byte
	logger  *zap.Logger
	onClose func(*Client)
}

// NewClient builds connection wrapper.
func NewClient(ws *websocket.Conn, logger *zap.Logger, onClose func(*Client)) *Client {
	return &Client{
		ws:      ws,
		send:    make(chan []byte, 16),
		logger:  logger,
		onClose: onClose,
	}
}

// TrySend queues a payload without blocking; a full buffer means the client
// is too slow and the payload is dropped for it.
func (c *Client) TrySend(payload []byte) {
	select {
	case c.send <- payload:
	default:
		c.logger.Debug("dropping activity payload for slow client")
	}
}

// Start launches the write pump and blocks on the read pump until the
// client disconnects.
func (c *Client) Start(ctx context.Context) {
	go c.writePump(ctx)
	c.readPump(ctx)
}

// readPump only consumes control frames; dashboards never send data.
func (c *Client) readPump(ctx context.Context) {
	defer c.cleanup()
	c.ws.SetReadLimit(512)
	c.ws.SetReadDeadline(time.Now().Add(pongTimeout))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if _, _, err := c.ws.ReadMessage(); err != nil {
			c.logger.Debug("activity client closed", zap.Error(err))
			return
		}
	}
}

func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-c.send:
			if !ok {
				return
			}
			c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Debug("activity write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) cleanup() {
	if c.onClose != nil {
		c.onClose(c)
	}
	_ = c.ws.Close()
}
