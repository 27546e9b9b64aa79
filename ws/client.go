package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/huyqng/battleship-server/game"
)

var (
	pongWait = 10 * time.Second

	pingInterval = (pongWait * 8) / 10
)

// Client owns one websocket connection. The read pump decodes protocol
// lines and hands them to the manager; the write pump is the only writer on
// the socket, so every outbound message goes out as one whole frame.
type Client struct {
	SocketID   string
	Username   string
	manager    *Manager
	connection *websocket.Conn
	egress     chan game.Message
	err        chan error
	done       chan struct{}
	closeOnce  sync.Once
}

func NewClient(username string, conn *websocket.Conn, m *Manager) *Client {
	return &Client{
		SocketID:   uuid.NewString(),
		Username:   username,
		manager:    m,
		connection: conn,
		egress:     make(chan game.Message, 32),
		err:        make(chan error, 2), // one slot per pump so failing never blocks
		done:       make(chan struct{}),
	}
}

// Send queues one outbound message. It gives up silently once the client is
// torn down; there is nobody left to deliver to.
func (c *Client) Send(m game.Message) {
	select {
	case c.egress <- m:
	case <-c.done:
	}
}

func (c *Client) fail(err error) {
	select {
	case c.err <- err:
	default:
	}
}

func (c *Client) readMessages() {
	if err := c.connection.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.fail(err)
		return
	}

	c.connection.SetPongHandler(c.pongHandler)

	for {
		_, payload, err := c.connection.ReadMessage()

		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				slog.Warn("unexpected socket closure", "socket", c.SocketID, "error", err)
			}
			c.fail(err)
			return
		}

		msg, err := game.Decode(string(payload))

		if err != nil {
			c.Send(game.NewMessage(game.CmdError, err.Error()))
			continue
		}

		// a handler error is the sender's problem only; the session lives on
		if err := c.manager.route(msg, c); err != nil {
			c.Send(game.NewMessage(game.CmdError, err.Error()))
		}
	}
}

func (c *Client) writeMessages() {
	ticker := time.NewTicker(pingInterval)

	defer func() {
		ticker.Stop()
	}()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.egress:
			if err := c.connection.WriteMessage(websocket.TextMessage, []byte(msg.Encode())); err != nil {
				slog.Warn("write failed", "socket", c.SocketID, "error", err)
				c.fail(err)
				return
			}
		case <-ticker.C:
			if err := c.connection.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				c.fail(err)
				return
			}
		}
	}
}

// listenForErrors waits for either pump to fail and tears the client down
// through the manager exactly once.
func (c *Client) listenForErrors() {
	err := <-c.err
	slog.Info("client disconnected", "socket", c.SocketID, "username", c.Username, "reason", err)
	c.manager.dropClient(c)
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.connection.Close()
	})
}

// Sets a new read deadline when a pong arrives for a ping message.
func (c *Client) pongHandler(pongMsg string) error {
	return c.connection.SetReadDeadline(time.Now().Add(pongWait))
}
