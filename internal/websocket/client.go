package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"mortgage-connect-be/internal/dto"
	"mortgage-connect-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 512
)

// Client is a middleman between one chat websocket and its form session.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// SessionID is the chat form session this socket drives.
	SessionID uuid.UUID

	// Buffered channel of outbound frames.
	Send chan []byte

	mu     sync.Mutex
	closed bool
	logger logger.ILogger
}

func NewClient(hub *Hub, conn *websocket.Conn, log logger.ILogger) *Client {
	return &Client{
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		logger: log,
	}
}

// Emit queues a frame for the socket. It never blocks: frames for a closed
// client are discarded and a full buffer drops the frame.
func (c *Client) Emit(frame dto.ChatFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		c.logger.Error("WSClient", "Failed to encode frame", map[string]interface{}{"type": string(frame.Type), "error": err.Error()})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
		c.logger.Warn("WSClient", "Send buffer full, dropping frame", map[string]interface{}{
			"session_id": c.SessionID.String(),
			"type":       string(frame.Type),
		})
	}
}

// Bind attaches the client to its form session once the session exists.
func (c *Client) Bind(sessionID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SessionID = sessionID
}

// close shuts the outbound channel once.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// readPump hands every inbound message to onMessage until the peer goes away.
func (c *Client) readPump(onMessage func([]byte)) {
	defer func() {
		c.Hub.remove(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("WSClient", "Unexpected close", map[string]interface{}{
					"session_id": c.SessionID.String(),
					"error":      err.Error(),
				})
			}
			break
		}
		onMessage(message)
	}
}

// writePump writes queued frames to the socket, one websocket message per
// frame, and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
