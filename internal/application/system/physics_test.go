package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/bounce/internal/domain/entity"
	"github.com/younwookim/bounce/internal/domain/field"
	"github.com/younwookim/bounce/internal/infrastructure/config"
)

const testDT = 1.0 / 60

// paintedField answers every collision read from a function of the pixel
type paintedField func(x, y int) entity.CollisionType

func (f paintedField) ReadCollisionByte(x, y int) entity.CollisionType {
	return f(x, y)
}

func emptyField() paintedField {
	return func(x, y int) entity.CollisionType { return entity.NoCollision }
}

// groundField is solid from row y downward
func groundField(y int) paintedField {
	return func(px, py int) entity.CollisionType {
		if py >= y {
			return entity.Collision
		}
		return entity.NoCollision
	}
}

func createTestPhysicsConfig() *config.PhysicsConfig {
	return config.DefaultPhysics()
}

// createTestBall builds a ball with a one-pixel inner ring of the given
// diameter and the matching outer ring
func createTestBall(t *testing.T, diameter int) *entity.Ball {
	t.Helper()
	mask, err := entity.NewActorMask(entity.RingStencil(diameter, 1), entity.RingStencil(diameter+2, 1))
	require.NoError(t, err)
	return entity.NewBall(0, 0, mask, 1)
}

// createTestField loads a w x h block of tiles painted by paint.
// Everything outside the block reads as solid.
func createTestField(w, h int, paint func(x, y int) entity.CollisionType) *field.Field {
	f := field.New()
	for ty := 0; ty < h; ty++ {
		for tx := 0; tx < w; tx++ {
			tile := entity.NewEmptyTile(entity.TileCoord{X: tx, Y: ty})
			for ly := 0; ly < entity.TileSize; ly++ {
				for lx := 0; lx < entity.TileSize; lx++ {
					c := paint(tx*entity.TileSize+lx, ty*entity.TileSize+ly)
					tile.Collision[ly*entity.TileSize+lx] = byte(c)
				}
			}
			f.Load(tile)
		}
	}
	return f
}

func innerPenetrates(s *PhysicsSystem, ball *entity.Ball) bool {
	cx, cy := ball.Center()
	return s.Resolver().Collides(cx, cy, &ball.Mask.Inner, nil)
}

func TestNewPhysicsSystem(t *testing.T) {
	cfg := createTestPhysicsConfig()
	ps := NewPhysicsSystem(cfg, emptyField())

	require.NotNil(t, ps)
	assert.NotNil(t, ps.Resolver())
}

func TestPhysicsSystem_Spawn(t *testing.T) {
	ps := NewPhysicsSystem(createTestPhysicsConfig(), emptyField())
	ball := createTestBall(t, 69)
	ball.VX, ball.VY = 10, 20
	ball.Status = entity.StatusCollision
	ball.Grappling = true

	ps.Spawn(ball, 1700, 900)

	assert.Equal(t, 1700.0, ball.X)
	assert.Equal(t, 900.0, ball.Y)
	assert.Zero(t, ball.VX)
	assert.Zero(t, ball.VY)
	assert.Equal(t, entity.StatusNoCollision, ball.Status)
	assert.False(t, ball.Grappling)
	assert.Equal(t, 400.0, ball.Forces.Gravity.Y)
}

func TestPhysicsSystem_ClampDT(t *testing.T) {
	ps := NewPhysicsSystem(createTestPhysicsConfig(), emptyField())

	tests := []struct {
		name string
		dt   float64
		want float64
	}{
		{"zero", 0, 1.0 / 1000},
		{"normal frame", testDT, testDT},
		{"long stall", 1, 1.0 / 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ps.ClampDT(tt.dt), 1e-12)
		})
	}
}

func TestPhysicsSystem_FirstFrameOfFreeFall(t *testing.T) {
	ps := NewPhysicsSystem(createTestPhysicsConfig(), emptyField())
	ball := createTestBall(t, 69)
	ps.Spawn(ball, 1700, 900)

	ps.Update(ball, nil, testDT)

	assert.Equal(t, entity.StatusNoCollision, ball.Status)
	assert.Equal(t, entity.StateBallistic, ball.State)
	assert.InDelta(t, 400.0/60, ball.VY, 1e-9)
	assert.Zero(t, ball.VX)
	// Trapezoid: half the new velocity over one frame
	assert.InDelta(t, 900+0.5*(400.0/60)/60, ball.Y, 1e-9)
	assert.Equal(t, 1700.0, ball.X)

	// Forces are back at their defaults for the next frame
	assert.Equal(t, 400.0, ball.Forces.Gravity.Y)
	assert.Zero(t, ball.Forces.Normal.Y)
}

func TestPhysicsSystem_HorizontalCoast(t *testing.T) {
	cfg := createTestPhysicsConfig()
	cfg.Physics.GravityY = 0
	ps := NewPhysicsSystem(cfg, emptyField())
	ball := createTestBall(t, 69)
	ps.Spawn(ball, 100, 100)
	ball.VX = 60

	for i := 0; i < 60; i++ {
		ps.Update(ball, nil, testDT)
	}

	assert.InDelta(t, 160, ball.X, 1e-9)
	assert.Equal(t, 100.0, ball.Y)
	assert.InDelta(t, 60, ball.VX, 1e-9)
}

func TestPhysicsSystem_VelocityClamp(t *testing.T) {
	cfg := createTestPhysicsConfig()
	cfg.Movement.MoveForce = 100000
	ps := NewPhysicsSystem(cfg, emptyField())
	ball := createTestBall(t, 69)
	ps.Spawn(ball, 0, 0)

	for i := 0; i < 600; i++ {
		ps.Update(ball, []Intent{MoveIntent{DX: 1}}, testDT)
		require.LessOrEqual(t, ball.VX, cfg.Physics.MaxVelocityX)
		require.LessOrEqual(t, ball.VY, cfg.Physics.MaxVelocityY)
	}

	assert.Equal(t, cfg.Physics.MaxVelocityX, ball.VX)
	assert.Equal(t, cfg.Physics.MaxVelocityY, ball.VY)
}

func TestPhysicsSystem_NoTunneling(t *testing.T) {
	cfg := createTestPhysicsConfig()
	cfg.Physics.GravityY = 0
	// A single solid column, thinner than one frame of travel
	wall := paintedField(func(x, y int) entity.CollisionType {
		if x == 300 {
			return entity.Collision
		}
		return entity.NoCollision
	})
	ps := NewPhysicsSystem(cfg, wall)
	ball := createTestBall(t, 9)
	ps.Spawn(ball, 200, 100)
	ball.VX = cfg.Physics.MaxVelocityX

	maxX := ball.X
	for i := 0; i < 30; i++ {
		ps.Update(ball, nil, testDT)
		require.False(t, innerPenetrates(ps, ball), "frame %d", i)
		if ball.X > maxX {
			maxX = ball.X
		}
	}

	// Center pixel is X+4 and the inner ring reaches 4 pixels right of it
	assert.InDelta(t, 292, maxX, 1e-6)
	assert.LessOrEqual(t, ball.X, 292+1e-6)
	assert.Equal(t, entity.StatusCollision, ball.Status)
}

func TestPhysicsSystem_RestingIsStable(t *testing.T) {
	ps := NewPhysicsSystem(createTestPhysicsConfig(), groundField(500))
	ball := createTestBall(t, 69)
	// Outer ring bottom row touches y=500, inner ring stays clear
	ps.Spawn(ball, 100, 431)

	for i := 0; i < 120; i++ {
		ps.Update(ball, nil, testDT)
		require.InDelta(t, 431, ball.Y, 1e-6, "frame %d", i)
		require.InDelta(t, 100, ball.X, 1e-6, "frame %d", i)
	}

	assert.Equal(t, entity.StatusCollision, ball.Status)
	assert.Equal(t, entity.StateBouncingLow, ball.State)
	assert.InDelta(t, 90, ball.NormalAngle, 0.01)
	assert.InDelta(t, 0, ball.VX, 1e-6)
	assert.InDelta(t, 0, ball.VY, 1e-6)
}

func TestPhysicsSystem_DropBouncesThenSettles(t *testing.T) {
	ps := NewPhysicsSystem(createTestPhysicsConfig(), groundField(500))
	ball := createTestBall(t, 69)
	ps.Spawn(ball, 100, 331)

	bounced := false
	for i := 0; i < 600; i++ {
		ps.Update(ball, nil, testDT)
		require.False(t, innerPenetrates(ps, ball), "frame %d", i)
		if ball.VY < -10 {
			bounced = true
		}
	}

	assert.True(t, bounced, "a 100px drop lands faster than the stop-bouncing speed")
	assert.InDelta(t, 431, ball.Y, 1e-6)
	assert.InDelta(t, 0, ball.VY, 1e-6)
	assert.Equal(t, entity.StateBouncingLow, ball.State)
}

func TestPhysicsSystem_RollsDownSlope(t *testing.T) {
	// Solid below the line y = x + 300: the ground falls away to the right
	slope := paintedField(func(x, y int) entity.CollisionType {
		if y >= x+300 {
			return entity.Collision
		}
		return entity.NoCollision
	})
	ps := NewPhysicsSystem(createTestPhysicsConfig(), slope)
	ball := createTestBall(t, 69)
	ps.Spawn(ball, 200, 443)

	startX, startY := ball.X, ball.Y
	onSlope := false
	for i := 0; i < 90; i++ {
		ps.Update(ball, nil, testDT)
		require.False(t, innerPenetrates(ps, ball), "frame %d", i)
		if ball.State == entity.StateOnSlope {
			onSlope = true
		}
	}

	assert.True(t, onSlope)
	assert.Greater(t, ball.X, startX+30)
	assert.Greater(t, ball.Y, startY+30)
	assert.Greater(t, ball.VX, 0.0)
}

func TestPhysicsSystem_UnloadedTilesAreWalls(t *testing.T) {
	cfg := createTestPhysicsConfig()
	cfg.Physics.GravityY = 0
	f := createTestField(1, 1, func(x, y int) entity.CollisionType { return entity.NoCollision })
	ps := NewPhysicsSystem(cfg, f)
	ball := createTestBall(t, 9)
	ps.Spawn(ball, 200, 100)
	ball.VX = 600

	for i := 0; i < 30; i++ {
		ps.Update(ball, nil, testDT)
		require.False(t, innerPenetrates(ps, ball), "frame %d", i)
	}

	// The ring's right edge stops one pixel short of the first unloaded column
	assert.InDelta(t, float64(entity.TileSize-9), ball.X, 1e-6)
	assert.Equal(t, entity.StatusCollision, ball.Status)
}

func TestPhysicsSystem_DeterministicReplay(t *testing.T) {
	run := func() (float64, float64) {
		ps := NewPhysicsSystem(createTestPhysicsConfig(), groundField(500))
		ball := createTestBall(t, 69)
		ps.Spawn(ball, 100, 300)
		for i := 0; i < 240; i++ {
			var intents []Intent
			if i%50 < 25 {
				intents = append(intents, MoveIntent{DX: 1})
			}
			ps.Update(ball, intents, testDT)
		}
		return ball.X, ball.Y
	}

	x1, y1 := run()
	x2, y2 := run()
	assert.Equal(t, x1, x2)
	assert.Equal(t, y1, y2)
}

func TestWalkLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{"same point", 3, 3, 3, 3, nil},
		{"horizontal", 0, 0, 3, 0, [][2]int{{1, 0}, {2, 0}, {3, 0}}},
		{"vertical up", 0, 0, 0, -2, [][2]int{{0, -1}, {0, -2}}},
		{"diagonal", 0, 0, 2, 2, [][2]int{{1, 1}, {2, 2}}},
		{"shallow", 0, 0, 4, 1, [][2]int{{1, 0}, {2, 1}, {3, 1}, {4, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][2]int
			walkLine(tt.x0, tt.y0, tt.x1, tt.y1, func(x, y int) bool {
				got = append(got, [2]int{x, y})
				return true
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWalkLine_StopsEarly(t *testing.T) {
	visits := 0
	walkLine(0, 0, 10, 0, func(x, y int) bool {
		visits++
		return x < 4
	})
	assert.Equal(t, 4, visits)
}

func TestHelperFunctions(t *testing.T) {
	assert.Equal(t, 2, round(1.5))
	assert.Equal(t, -2, round(-1.5))
	assert.Equal(t, 5.0, clampAbs(7, 5))
	assert.Equal(t, -5.0, clampAbs(-7, 5))
	assert.Equal(t, 7.0, clampAbs(7, 0))
	assert.Equal(t, -1, sign(-3))
	assert.Equal(t, 0, sign(0))
	assert.Equal(t, 3, abs(-3))
}
