package session

import (
	"context"
	"log/slog"
	"sync"
)

// Hub tracks the live sessions, one per connected client. Sessions are never
// shared and disappear with their connection.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client // sessionID -> client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves registrations until ctx is cancelled. Clients still connected at
// that point are forgotten; their pumps stop with their own contexts.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			h.mu.Lock()
			clear(h.clients)
			h.mu.Unlock()
			return
		}
	}
}

// Register hands client to the hub. It reports false if the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Get returns the live session with the given ID.
func (h *Hub) Get(id string) (*Session, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c.session, nil
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.session.ID()] = client
	h.mu.Unlock()

	client.Send(client.session.Welcome(client.ClientID))
	client.Send(client.session.Render())

	slog.Info("session started", "session", client.session.ID(), "client", client.ClientID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	c, ok := h.clients[client.session.ID()]
	if !ok || c != client {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.session.ID())
	close(client.send)
	h.mu.Unlock()

	slog.Info("session ended", "session", client.session.ID(), "client", client.ClientID)
}
