package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

// Client is one websocket connection and the session it drives.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	session  *Session
	timing   Timing
	ClientID string
}

func NewClient(hub *Hub, conn *websocket.Conn, session *Session, clientID string, timing Timing) *Client {
	timing = timing.withDefaults()
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, timing.SendBuffer),
		session:  session,
		timing:   timing,
		ClientID: clientID,
	}
}

// ReadPump feeds incoming messages to the session until the connection
// closes, then unregisters the client.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(c.timing.MaxMessageSize)
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if !isNormalClose(err) {
				slog.Debug("read error", "error", err, "session", c.session.ID())
			}
			return
		}
		c.handle(data)
	}
}

func isNormalClose(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return errors.Is(err, context.Canceled)
}

func (c *Client) handle(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		slog.Warn("invalid message", "error", err, "session", c.session.ID())
		c.Send(newMessage(TypeError, c.session.ID(), ErrorPayload{Message: "invalid message"}))
		return
	}
	for _, reply := range c.session.Handle(&msg) {
		c.Send(reply)
	}
}

// WritePump drains the send queue onto the connection and keeps it alive with
// pings. It returns when the queue is closed, ctx ends or a write fails.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(c.timing.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var err error
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}
			err = c.withTimeout(ctx, func(ctx context.Context) error {
				return c.conn.Write(ctx, websocket.MessageText, data)
			})
		case <-ticker.C:
			err = c.withTimeout(ctx, c.conn.Ping)
		case <-ctx.Done():
			return
		}
		if err != nil {
			slog.Debug("write error", "error", err, "session", c.session.ID())
			return
		}
	}
}

func (c *Client) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timing.WriteTimeout)
	defer cancel()
	return fn(ctx)
}

// Send queues msg for the write pump, dropping it if the queue is full.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		slog.Warn("send queue full, dropping message", "type", msg.Type, "session", c.session.ID())
	}
}
