package system

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"

	"github.com/younwookim/bounce/internal/domain/entity"
	"github.com/younwookim/bounce/internal/domain/field"
	"github.com/younwookim/bounce/internal/infrastructure/config"
)

// ForceSystem turns intents and the ball's surroundings into the
// movement, tool and water forces
type ForceSystem struct {
	config *config.PhysicsConfig
	field  field.CollisionReader
}

// NewForceSystem creates a new force system
func NewForceSystem(cfg *config.PhysicsConfig, f field.CollisionReader) *ForceSystem {
	return &ForceSystem{config: cfg, field: f}
}

// GravityForce returns the default gravity force for a ball of the given mass
func (s *ForceSystem) GravityForce(mass float64) dmath.Vec2 {
	return dmath.Vec2{
		X: s.config.Physics.GravityX * mass,
		Y: s.config.Physics.GravityY * mass,
	}
}

// Submerged reports whether the ball's center is in water
func (s *ForceSystem) Submerged(ball *entity.Ball) bool {
	px, py := centerPixel(ball.Center())
	return s.field.ReadCollisionByte(px, py) == entity.Water
}

// Apply handles this frame's intents and accumulates movement, tool and
// water forces on the ball
func (s *ForceSystem) Apply(ball *entity.Ball, intents []Intent) {
	var move MoveIntent
	for _, in := range intents {
		switch it := in.(type) {
		case MoveIntent:
			move.DX += it.DX
			move.DY += it.DY
		case ToolCycleIntent:
			ball.Tool = ball.Tool.Next()
			ball.Grappling = false
		case GrappleIntent:
			s.handleGrapple(ball, it)
		}
	}
	move.DX = sign(move.DX)
	move.DY = sign(move.DY)

	submerged := s.Submerged(ball)

	ball.Forces.Movement.X += float64(move.DX) * s.config.Movement.MoveForce
	if submerged {
		ball.Forces.Movement.Y += float64(move.DY) * s.config.Movement.SwimForce
		s.applyWater(ball)
	}

	tx, ty := s.toolForce(ball, move)
	ball.Forces.Tool.X += tx
	ball.Forces.Tool.Y += ty
}

// applyWater adds buoyancy against gravity and linear drag
func (s *ForceSystem) applyWater(ball *entity.Ball) {
	g := s.GravityForce(ball.Mass)
	ball.Forces.Water.X += -g.X*s.config.Water.Buoyancy - ball.VX*s.config.Water.Drag
	ball.Forces.Water.Y += -g.Y*s.config.Water.Buoyancy - ball.VY*s.config.Water.Drag
}

// toolForce returns the force of the equipped tool
func (s *ForceSystem) toolForce(ball *entity.Ball, move MoveIntent) (float64, float64) {
	switch ball.Tool {
	case entity.ToolNone:
		return 0, 0

	case entity.ToolBooster:
		if move.DX == 0 && move.DY == 0 {
			return 0, 0
		}
		l := math.Hypot(float64(move.DX), float64(move.DY))
		f := s.config.Tools.BoosterForce
		return float64(move.DX) / l * f, float64(move.DY) / l * f

	case entity.ToolGrapple:
		if !ball.Grappling {
			return 0, 0
		}
		ax, ay := ball.GrappleAnchor[0], ball.GrappleAnchor[1]
		if s.field.ReadCollisionByte(ax, ay) != entity.Grappleable {
			ball.Grappling = false
			return 0, 0
		}
		cx, cy := ball.Center()
		fx := (float64(ax) - cx) * s.config.Tools.GrappleStiffness
		fy := (float64(ay) - cy) * s.config.Tools.GrappleStiffness
		if mag := math.Hypot(fx, fy); mag > s.config.Tools.GrappleMaxForce {
			k := s.config.Tools.GrappleMaxForce / mag
			fx *= k
			fy *= k
		}
		return fx, fy

	default:
		return 0, 0
	}
}

// handleGrapple attaches to a grappleable pixel within range, or releases
func (s *ForceSystem) handleGrapple(ball *entity.Ball, it GrappleIntent) {
	if it.Release {
		ball.Grappling = false
		return
	}
	if ball.Tool != entity.ToolGrapple {
		return
	}
	if s.field.ReadCollisionByte(it.X, it.Y) != entity.Grappleable {
		return
	}
	cx, cy := ball.Center()
	if math.Hypot(float64(it.X)-cx, float64(it.Y)-cy) > s.config.Tools.GrappleRange {
		return
	}
	ball.GrappleAnchor = [2]int{it.X, it.Y}
	ball.Grappling = true
}
