package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub()
	go h.Run(ctx)
	return h
}

func readQueued(t *testing.T, c *Client) *Message {
	t.Helper()
	select {
	case data := <-c.send:
		var m Message
		require.NoError(t, json.Unmarshal(data, &m))
		return &m
	default:
		t.Fatal("nothing queued")
		return nil
	}
}

func TestHubRegisterSendsWelcomeAndRender(t *testing.T) {
	h := startHub(t)
	c := NewClient(h, nil, newTestSession(), "client-1", Timing{})

	require.True(t, h.Register(c))
	require.Eventually(t, func() bool { return len(c.send) == 2 }, time.Second, time.Millisecond)

	assert.Equal(t, TypeWelcome, readQueued(t, c).Type)
	assert.Equal(t, TypeRender, readQueued(t, c).Type)

	got, err := h.Get("sess_test")
	require.NoError(t, err)
	assert.Same(t, c.session, got)
	assert.Equal(t, 1, h.Len())
}

func TestHubUnregisterDropsSession(t *testing.T) {
	h := startHub(t)
	c := NewClient(h, nil, newTestSession(), "client-1", Timing{})
	require.True(t, h.Register(c))

	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, time.Millisecond)

	h.Unregister(c)

	require.Eventually(t, func() bool { return h.Len() == 0 }, time.Second, time.Millisecond)
	_, err := h.Get("sess_test")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHubStopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub()
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	c := NewClient(h, nil, newTestSession(), "client-1", Timing{})
	assert.False(t, h.Register(c))
	assert.NotPanics(t, func() { h.Unregister(c) })
}

func TestClientHandleQueuesReplies(t *testing.T) {
	c := NewClient(NewHub(), nil, newTestSession(), "client-1", Timing{})

	c.handle([]byte(`{"type":"pointer.down","payload":{"x":3,"y":4,"buttons":1}}`))
	assert.Equal(t, TypeRender, readQueued(t, c).Type)

	c.handle([]byte(`not json`))
	assert.Equal(t, TypeError, readQueued(t, c).Type)

	c.handle([]byte(`{"type":"pointer.up"}`))
	assert.Equal(t, TypeRender, readQueued(t, c).Type)

	c.handle([]byte(`{"type":"pointer.up"}`))
	assert.Empty(t, c.send)
}

func TestClientSendDropsWhenFull(t *testing.T) {
	c := NewClient(NewHub(), nil, newTestSession(), "client-1", Timing{})
	for range cap(c.send) + 10 {
		c.Send(&Message{Type: TypeRender})
	}
	assert.Len(t, c.send, cap(c.send))
}

func TestTimingDefaults(t *testing.T) {
	got := Timing{PingInterval: time.Second}.withDefaults()

	assert.Equal(t, Timing{
		WriteTimeout:   DefaultWriteTimeout,
		PingInterval:   time.Second,
		MaxMessageSize: DefaultMaxMessageSize,
		SendBuffer:     DefaultSendBuffer,
	}, got)
}

func TestClientSendBufferFromTiming(t *testing.T) {
	c := NewClient(NewHub(), nil, newTestSession(), "client-1", Timing{SendBuffer: 2})

	for range 5 {
		c.Send(&Message{Type: TypeRender})
	}

	assert.Equal(t, 2, cap(c.send))
	assert.Len(t, c.send, 2)
}
