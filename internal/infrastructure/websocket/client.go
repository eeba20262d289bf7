package websocket

import (
	"encoding/json"
	"strings"

	"github.com/gorilla/websocket"

	"homerent/pkg/logger"
)

const (
	TypeSubscribe   = "subscribe"
	TypeUnsubscribe = "unsubscribe"
	TypePing        = "ping"
	TypePong        = "pong"
	TypeError       = "error"
)

// Client represents a WebSocket connection client
type Client struct {
	UserID   string
	Conn     *websocket.Conn
	Send     chan []byte
	channels map[string]bool
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID:   userID,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		channels: make(map[string]bool),
	}
}

type clientMessage struct {
	Type    string `json:"type"`
	Channel string `json:"channel,omitempty"`
}

// ReadPump reads control messages (subscribe/unsubscribe/ping) from the
// WebSocket connection until it closes.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendControl(TypeError, "invalid message format")
			continue
		}

		switch msg.Type {
		case TypePing:
			c.sendControl(TypePong, "")

		case TypeSubscribe:
			// A client may only listen on channels naming itself as one of
			// the two participants.
			if !strings.Contains(msg.Channel, c.UserID) {
				c.sendControl(TypeError, "not a participant of this channel")
				continue
			}
			m.Subscribe(c, msg.Channel)

		case TypeUnsubscribe:
			m.Unsubscribe(c, msg.Channel)

		default:
			c.sendControl(TypeError, "unknown message type")
		}
	}
}

// WritePump sends queued events to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}

func (c *Client) sendControl(msgType, detail string) {
	data, _ := json.Marshal(map[string]string{"type": msgType, "detail": detail})
	select {
	case c.Send <- data:
	default:
	}
}
