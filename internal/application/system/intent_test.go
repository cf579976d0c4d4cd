package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveIntent(t *testing.T) {
	intent := MoveIntent{DX: 1, DY: -1}

	// Test that it implements Intent interface
	var i Intent = intent
	i.isIntent() // Should not panic

	assert.Equal(t, 1, intent.DX)
	assert.Equal(t, -1, intent.DY)
}

func TestToolCycleIntent(t *testing.T) {
	var i Intent = ToolCycleIntent{}
	i.isIntent()

	_, ok := i.(ToolCycleIntent)
	assert.True(t, ok)
}

func TestGrappleIntent(t *testing.T) {
	intent := GrappleIntent{X: 100, Y: 200}

	var i Intent = intent
	i.isIntent()

	assert.Equal(t, 100, intent.X)
	assert.Equal(t, 200, intent.Y)
	assert.False(t, intent.Release)
}
