package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/auth"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/realtime"
)

const (
	// writeWait bounds a single frame write
	writeWait = 10 * time.Second

	// pongWait is how long a connection may stay silent
	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait
	pingPeriod = (pongWait * 9) / 10

	// maxControlFrameSize bounds inbound subscribe/unsubscribe frames
	maxControlFrameSize = 512

	// sendBuffer is the per-connection event queue; events beyond it
	// are dropped rather than stalling the dispatcher
	sendBuffer = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// controlFrame is an inbound subscription request
type controlFrame struct {
	Type   string `json:"type"`
	GameID string `json:"gameId"`
}

// wsClient is one real-time connection. It implements realtime.Subscriber;
// delivery never blocks, a full send queue drops the event.
type wsClient struct {
	conn      *websocket.Conn
	principal *auth.Principal
	registry  *realtime.Registry
	logger    *zap.Logger

	send chan realtime.Event

	closeOnce sync.Once
	done      chan struct{}
}

// Deliver queues an event for the write pump.
func (c *wsClient) Deliver(event realtime.Event) bool {
	select {
	case <-c.done:
		return false
	case c.send <- event:
		return true
	default:
		return false
	}
}

// close tears the connection down exactly once
func (c *wsClient) close() {
	c.closeOnce.Do(func() {
		c.registry.DropAll(c)
		close(c.done)
		_ = c.conn.Close()
	})
}

// handleWS upgrades an authenticated connection and runs its pumps. The
// token travels as a query parameter because browsers cannot set headers
// on WebSocket dials.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, &errorResponse{Error: "missing token"})
		return
	}

	principal, err := s.cfg.Verifier.Verify(token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{
		conn:      conn,
		principal: principal,
		registry:  s.cfg.Registry,
		logger:    s.logger,
		send:      make(chan realtime.Event, sendBuffer),
		done:      make(chan struct{}),
	}

	go client.writePump()
	client.readPump()
}

// readPump consumes subscribe and unsubscribe frames until the connection
// drops. Closing the connection only removes registry entries; server-side
// mutations in flight are never aborted.
func (c *wsClient) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxControlFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame controlFrame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket closed unexpectedly",
					zap.String("player_id", c.principal.ID),
					zap.Error(err))
			}
			return
		}

		switch frame.Type {
		case "subscribe":
			if frame.GameID != "" {
				c.registry.Subscribe(frame.GameID, c)
			}
		case "unsubscribe":
			if frame.GameID != "" {
				c.registry.Unsubscribe(frame.GameID, c)
			}
		default:
			// Unknown control frames are ignored
		}
	}
}

// writePump owns all writes on the connection: queued events and keepalives.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return

		case event := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
