package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixComposition(t *testing.T) {
	m := Translate(10, 20).Multiply(Rotate(math.Pi / 2)).Multiply(Scale(2, 2))

	x, y := m.TransformPoint(1, 0)

	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 22, y, 1e-9)
	assert.InDelta(t, 2, m.ScaleFactor(), 1e-9)
}

func TestMatrixIdentity(t *testing.T) {
	assert.True(t, Identity().IsIdentity())
	assert.False(t, Translate(1, 0).IsIdentity())
	assert.Equal(t, Pt(3, 4), Identity().Apply(Pt(3, 4)))
}
