package realtime

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Client is one WebSocket connection attached to a hub.
type Client struct {
	UserID string

	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	rooms map[string]bool

	// onMessage handles inbound frames; nil for push-only channels.
	onMessage func(data []byte)
	// onClose runs once when the connection winds down.
	onClose func()
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		UserID: userID,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		rooms:  make(map[string]bool),
	}
}

// OnMessage registers the inbound frame handler. Must be called before Run.
func (c *Client) OnMessage(fn func(data []byte)) { c.onMessage = fn }

// OnClose registers a cleanup callback. Must be called before Run.
func (c *Client) OnClose(fn func()) { c.onClose = fn }

// Send queues a pre-encoded frame for delivery.
func (c *Client) Send(data []byte) {
	defer func() {
		// The hub may have closed the channel if we were too slow.
		recover()
	}()
	select {
	case c.send <- data:
	default:
	}
}

// Run starts the read and write pumps and blocks until the connection is
// gone. Cleanup (room removal, presence bookkeeping) happens exactly once.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Remove(c)
		if c.onClose != nil {
			c.onClose()
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
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug().Err(err).Msg("websocket closed unexpectedly")
			}
			return
		}
		if c.onMessage != nil {
			c.onMessage(data)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
