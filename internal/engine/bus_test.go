package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusSubscriptionOrder(t *testing.T) {
	b := NewBus()
	var order []int
	for i := 0; i < 3; i++ {
		b.Subscribe(EventDrawingChanged, func(EventKind) { order = append(order, i) })
	}
	b.Subscribe(EventToolChanged, func(EventKind) { order = append(order, 99) })

	b.Publish(EventDrawingChanged)

	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestBusPanicAbortsRemainingListeners(t *testing.T) {
	b := NewBus()
	called := false
	b.Subscribe(EventToolChanged, func(EventKind) { panic("boom") })
	b.Subscribe(EventToolChanged, func(EventKind) { called = true })

	assert.Panics(t, func() { b.Publish(EventToolChanged) })
	assert.False(t, called)
}

func TestParseEventKind(t *testing.T) {
	for _, k := range []EventKind{EventDrawingChanged, EventToolChanged} {
		got, err := ParseEventKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseEventKind("tool-moved")
	assert.Error(t, err)
}
