package playground

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"comboplanner/internal/logging"
	"comboplanner/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 64 * 1024
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// WSConnection is one live regenerate session. It remembers the last
// preferences so {"regenerate":true} can advance the variant.
type WSConnection struct {
	conn   *websocket.Conn
	send   chan []byte
	server *PlaygroundServer
	logger zerolog.Logger

	mu    sync.Mutex
	prefs *models.Preferences
}

// wsRequest is either a preferences object or a regenerate command.
type wsRequest struct {
	models.PreferencesRequest
	Regenerate bool `json:"regenerate"`
}

// WSResult is a recommendation frame sent to the client
type WSResult struct {
	Type     string           `json:"type"`
	Variant  int              `json:"variant"`
	Response *models.Response `json:"response,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// handleWebSocket handles WebSocket connections
func (s *PlaygroundServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn().Err(err).Msg("failed to upgrade connection")
		return
	}
	s.monitor.Increment("ws_connections_total", 1)

	wsConn := &WSConnection{
		conn:   conn,
		send:   make(chan []byte, 16),
		server: s,
		logger: logging.With("playground_ws"),
	}

	go wsConn.writePump()
	go wsConn.readPump()
}

// readPump pumps messages from the WebSocket connection to the handler
func (c *WSConnection) readPump() {
	defer func() {
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}
		c.handleMessage(message)
	}
}

// writePump pumps messages from the server to the WebSocket connection
func (c *WSConnection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage runs one recommendation for a preferences or regenerate frame.
func (c *WSConnection) handleMessage(message []byte) {
	var req wsRequest
	if err := json.Unmarshal(message, &req); err != nil {
		c.sendFrame(WSResult{Type: "error", Error: "invalid message"})
		return
	}

	prefs := c.nextPreferences(req)
	ctx, cancel := context.WithTimeout(context.Background(), pongWait)
	defer cancel()

	resp, err := c.server.service.Recommend(ctx, prefs)
	if err != nil {
		c.logger.Error().Err(err).Msg("websocket recommendation failed")
		c.sendFrame(WSResult{Type: "error", Variant: prefs.Variant, Error: "recommendation failed"})
		return
	}
	c.sendFrame(WSResult{Type: "recommendations", Variant: prefs.Variant, Response: resp})
}

// nextPreferences stores new preferences, or advances the variant of the
// stored ones on regenerate, wrapping past the maximum.
func (c *WSConnection) nextPreferences(req wsRequest) models.Preferences {
	c.mu.Lock()
	defer c.mu.Unlock()

	if req.Regenerate && c.prefs != nil {
		next := c.prefs.WithVariant((c.prefs.Variant + 1) % (models.MaxVariant + 1))
		c.prefs = &next
		return next
	}

	prefs := req.PreferencesRequest.Sanitize()
	c.prefs = &prefs
	return prefs
}

// sendFrame queues a frame, dropping it when the client is not reading.
func (c *WSConnection) sendFrame(frame WSResult) {
	data, err := json.Marshal(frame)
	if err != nil {
		c.logger.Error().Err(err).Msg("marshal frame")
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn().Msg("WebSocket buffer full, dropping message")
	}
}
