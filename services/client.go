package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dlikecoding/Bingo-Game/utils/logger"
)

// Sender is the unicast half of a connection, as seen by the
// coordinator.
type Sender interface {
	Send(event string, data any)
	UserID() uint
	Username() string
}

// Client is one websocket connection. It always sits in the lobby
// group and joins room groups on request.
//
// send is never closed; done marks the connection dead instead, so a
// broadcast racing a disconnect can never hit a closed channel.
type Client struct {
	id       string
	userID   uint
	username string
	conn     *websocket.Conn
	hub      *Hub
	coord    *Coordinator
	send     chan []byte
	done     chan struct{}
	groups   map[string]bool
	once     sync.Once
}

func (c *Client) UserID() uint     { return c.userID }
func (c *Client) Username() string { return c.username }

// Send queues one event for this connection only.
func (c *Client) Send(event string, data any) {
	raw, err := marshalEnvelope(event, data)
	if err != nil {
		logger.Errorf("[Client %s] marshal %q event: %v", c.id, event, err)
		return
	}
	c.queue(raw, event)
}

// queue enqueues one pre-marshaled frame. Frames for a closed
// connection, or beyond the buffer, are dropped rather than blocking
// or panicking the sender.
func (c *Client) queue(raw []byte, event string) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- raw:
	default:
		logger.Infof("[Client %s] buffer full, dropping %q", c.id, event)
	}
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}

// --------------------
// Client read/write pumps
// --------------------

func (c *Client) readPump() {
	defer func() {
		c.hub.RemoveClient(c)
		c.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[Client %s] disconnected normally", c.id)
			} else {
				logger.Infof("[Client %s] read error: %v", c.id, err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			logger.Infof("[Client %s] invalid frame: %v", c.id, err)
			continue
		}

		if env.Event == EventJoinRoom {
			var p SubscribePayload
			if err := json.Unmarshal(env.Data, &p); err != nil || p.Room == "" {
				logger.Infof("[Client %s] invalid join room payload", c.id)
				continue
			}
			c.hub.Subscribe(c, p.Room)
			continue
		}

		c.coord.Dispatch(c, env.Event, env.Data)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Infof("[Client %s] write error: %v", c.id, err)
				return
			}
		}
	}
}
