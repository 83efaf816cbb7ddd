package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		ok            bool
	}{
		{"default canvas", 256, 256, true},
		{"largest", MaxSize, MaxSize, true},
		{"zero width", 0, 256, false},
		{"negative height", 256, -1, false},
		{"too wide", MaxSize + 1, 256, false},
		{"int max", 2147483647, 2147483647, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEmptyDrawing("", tt.width, tt.height).Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidDrawing)
			}
		})
	}
}

func TestValidateCommands(t *testing.T) {
	d := NewEmptyDrawing("", 8, 8)
	d.Commands = []Command{
		{Type: CommandTypeLine, Points: []Point{{X: 1, Y: 1}}, Width: 2},
		{Type: CommandTypeSticker, Glyph: "🧀"},
	}

	err := d.Validate()

	assert.ErrorIs(t, err, ErrInvalidDrawing)
	assert.Contains(t, err.Error(), "command 1")
}
