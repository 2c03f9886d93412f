package realtime

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	sendBufSize = 256
)

// announceMsg is the first application-level message a peer must send to
// bind its user identity to the connection.
type announceMsg struct {
	MsgType string `json:"msg_type"`
	UserID  uint   `json:"user_id"`
}

const announceType = "INIT"

// Client is one websocket connection. Its identity is unset until the
// peer announces itself; messages received before the announce are
// ignored for registry purposes.
type Client struct {
	ID        string
	registry  *Registry
	conn      *websocket.Conn
	send      chan []byte
	logger    zerolog.Logger
	userID    uint
	announced bool

	closeOnce sync.Once
	closed    chan struct{}
}

func NewClient(id string, registry *Registry, conn *websocket.Conn, logger zerolog.Logger) *Client {
	return &Client{
		ID:       id,
		registry: registry,
		conn:     conn,
		send:     make(chan []byte, sendBufSize),
		logger:   logger,
		closed:   make(chan struct{}),
	}
}

// UserID returns the announced identity, zero before the announce.
func (c *Client) UserID() uint {
	return c.userID
}

// TrySend queues payload for delivery without blocking. It fails when the
// connection is gone or its send buffer is full; the caller decides what
// to do about it, delivery is best effort.
func (c *Client) TrySend(payload []byte) error {
	select {
	case <-c.closed:
		return errors.New("connection closed")
	default:
	}

	select {
	case c.send <- payload:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

func (c *Client) markClosed() {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
}

// ReadPump reads messages from the websocket connection. The first INIT
// message registers the client under the announced identity.
func (c *Client) ReadPump() {
	defer func() {
		c.markClosed()
		if c.announced {
			c.registry.Unregister(c.userID, c)
		}
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
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error().Err(err).Str("clientId", c.ID).Msg("WebSocket read error")
			}
			break
		}

		var msg announceMsg
		if err := json.Unmarshal(message, &msg); err != nil {
			c.logger.Debug().Err(err).Str("clientId", c.ID).Msg("Ignoring unparseable message")
			continue
		}

		if c.announced {
			// Nothing else is expected from the peer after the announce.
			continue
		}

		if msg.MsgType != announceType || msg.UserID == 0 {
			c.logger.Debug().Str("clientId", c.ID).Str("msgType", msg.MsgType).Msg("Ignoring message before announce")
			continue
		}

		c.userID = msg.UserID
		c.announced = true
		c.registry.Register(c.userID, c)
	}
}

// WritePump writes queued messages to the websocket connection and keeps
// the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.markClosed()
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
