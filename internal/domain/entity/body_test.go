package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dmath "github.com/yohamta/donburi/features/math"
)

func createTestMask(t *testing.T) *ActorMask {
	t.Helper()
	mask, err := NewActorMask(RingStencil(69, 1), RingStencil(71, 1))
	require.NoError(t, err)
	return mask
}

func TestNewBall(t *testing.T) {
	mask := createTestMask(t)
	ball := NewBall(1700, 900, mask, 1)

	assert.Equal(t, 1700.0, ball.X)
	assert.Equal(t, 900.0, ball.Y)
	assert.Equal(t, 34.5, ball.Radius)
	assert.Equal(t, 1.0, ball.Mass)
	assert.Equal(t, StatusNoCollision, ball.Status)
	assert.Equal(t, ToolNone, ball.Tool)

	cx, cy := ball.Center()
	assert.Equal(t, 1734.5, cx)
	assert.Equal(t, 934.5, cy)
}

func TestBall_AngleOfMotion(t *testing.T) {
	ball := NewBall(0, 0, createTestMask(t), 1)

	_, ok := ball.AngleOfMotion()
	assert.False(t, ok, "resting ball has no direction")

	tests := []struct {
		name   string
		vx, vy float64
		want   float64
	}{
		{"right", 10, 0, 0},
		{"up", 0, -10, 90},
		{"left", -10, 0, 180},
		{"down", 0, 10, 270},
		{"down right", 10, 10, 315},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ball.VX, ball.VY = tt.vx, tt.vy
			deg, ok := ball.AngleOfMotion()
			require.True(t, ok)
			assert.InDelta(t, tt.want, deg, 1e-9)
		})
	}
}

func TestBall_SetVelocityAngle(t *testing.T) {
	ball := NewBall(0, 0, createTestMask(t), 1)

	ball.SetVelocityAngle(100, 90)
	assert.InDelta(t, 0, ball.VX, 1e-9)
	assert.InDelta(t, -100, ball.VY, 1e-9)
	assert.InDelta(t, 100, ball.Speed(), 1e-9)

	ball.SetVelocityAngle(math.Sqrt2, 225)
	assert.InDelta(t, -1, ball.VX, 1e-9)
	assert.InDelta(t, 1, ball.VY, 1e-9)
}

func TestBall_ResetActive(t *testing.T) {
	ball := NewBall(0, 0, createTestMask(t), 1)
	ball.InnerActive.Set(3)
	ball.OuterActive.Set(ball.Mask.Outer.Len() - 1)

	ball.ResetActive()

	assert.Equal(t, 0, ball.InnerActive.Count())
	assert.Equal(t, 0, ball.OuterActive.Count())
}

func TestForces_TotalAndReset(t *testing.T) {
	f := Forces{
		Gravity:  dmath.Vec2{X: 0, Y: 400},
		Movement: dmath.Vec2{X: 100, Y: 0},
		Tool:     dmath.Vec2{X: -20, Y: 5},
		Normal:   dmath.Vec2{X: 0, Y: -400},
		Water:    dmath.Vec2{X: 1, Y: 2},
	}

	x, y := f.Total()
	assert.Equal(t, 81.0, x)
	assert.Equal(t, 7.0, y)

	f.Reset(dmath.Vec2{X: 0, Y: 400})
	x, y = f.Total()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 400.0, y)
	assert.Equal(t, dmath.Vec2{}, f.Movement)
}

func TestContactState_String(t *testing.T) {
	assert.Equal(t, "Ballistic", StateBallistic.String())
	assert.Equal(t, "OnSlope", StateOnSlope.String())
	assert.Equal(t, "BouncingLow", StateBouncingLow.String())
	assert.Equal(t, "HardContact", StateHardContact.String())
	assert.Equal(t, "Unknown", ContactState(9).String())
	assert.Equal(t, "Collision", StatusCollision.String())
	assert.Equal(t, "NoCollision", StatusNoCollision.String())
}

func TestTool_NextAndParse(t *testing.T) {
	assert.Equal(t, ToolBooster, ToolNone.Next())
	assert.Equal(t, ToolGrapple, ToolBooster.Next())
	assert.Equal(t, ToolNone, ToolGrapple.Next())

	assert.Equal(t, ToolGrapple, ParseTool("Grapple"))
	assert.Equal(t, ToolNone, ParseTool("hammer"))
}
