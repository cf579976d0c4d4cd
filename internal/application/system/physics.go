package system

import (
	"math"

	"github.com/younwookim/bounce/internal/domain/entity"
	"github.com/younwookim/bounce/internal/domain/field"
	"github.com/younwookim/bounce/internal/infrastructure/config"
)

// PhysicsSystem advances the ball one frame at a time
type PhysicsSystem struct {
	config   *config.PhysicsConfig
	resolver *ContactResolver
	contact  *ContactSystem
	forces   *ForceSystem
}

// NewPhysicsSystem creates a new physics system over the collision field
func NewPhysicsSystem(cfg *config.PhysicsConfig, f field.CollisionReader) *PhysicsSystem {
	return &PhysicsSystem{
		config:   cfg,
		resolver: NewContactResolver(f),
		contact:  NewContactSystem(cfg),
		forces:   NewForceSystem(cfg, f),
	}
}

// Resolver returns the contact resolver used by the system
func (s *PhysicsSystem) Resolver() *ContactResolver {
	return s.resolver
}

// Spawn places the ball at rest with its forces at their defaults
func (s *PhysicsSystem) Spawn(ball *entity.Ball, x, y float64) {
	ball.X, ball.Y = x, y
	ball.VX, ball.VY = 0, 0
	ball.Status = entity.StatusNoCollision
	ball.State = entity.StateBallistic
	ball.HasNormal = false
	ball.OnSlope, ball.ExitSlope, ball.BouncingLow, ball.TrackingLost = false, false, false, false
	ball.Blocked = false
	ball.Grappling = false
	ball.ResetActive()
	ball.Forces.Reset(s.forces.GravityForce(ball.Mass))
}

// ClampDT keeps the frame time inside the configured bounds
func (s *PhysicsSystem) ClampDT(dt float64) float64 {
	if dt < s.config.Physics.MinDeltaTime {
		dt = s.config.Physics.MinDeltaTime
	}
	if s.config.Physics.MaxDeltaTime > 0 && dt > s.config.Physics.MaxDeltaTime {
		dt = s.config.Physics.MaxDeltaTime
	}
	return dt
}

// Update runs one frame: contact estimation, force composition,
// contact response, integration and force reset
func (s *PhysicsSystem) Update(ball *entity.Ball, intents []Intent, dt float64) {
	dt = s.ClampDT(dt)

	ball.ResetActive()
	cx, cy := ball.Center()
	est := s.resolver.EstimateNormal(cx, cy, &ball.Mask.Outer, ball.OuterActive)
	if est.Status == entity.StatusNoCollision && ball.Blocked {
		// The wall that stopped the walk is out of the outer ring's reach
		est = NormalEstimate{Angle: ball.NormalAngle, Status: entity.StatusCollision}
	}
	ball.Blocked = false
	ball.Status = est.Status
	ball.HasNormal = est.Status == entity.StatusCollision
	ball.NormalAngle = est.Angle

	s.forces.Apply(ball, intents)
	s.contact.Resolve(ball, dt)
	s.integrate(ball, dt)

	ball.Forces.Reset(s.forces.GravityForce(ball.Mass))
}

// integrate applies the accumulated forces and moves the ball against
// the field
func (s *PhysicsSystem) integrate(ball *entity.Ball, dt float64) {
	fx, fy := ball.Forces.Total()
	ax, ay := fx/ball.Mass, fy/ball.Mass

	vx0, vy0 := ball.VX, ball.VY
	ball.VX = clampAbs(vx0+ax*dt, s.config.Physics.MaxVelocityX)
	ball.VY = clampAbs(vy0+ay*dt, s.config.Physics.MaxVelocityY)

	var tx, ty float64
	if ball.Status == entity.StatusCollision {
		tx = ball.X + ball.VX*dt
		ty = ball.Y + ball.VY*dt
	} else {
		tx = ball.X + 0.5*(vx0+ball.VX)*dt
		ty = ball.Y + 0.5*(vy0+ball.VY)*dt
	}

	ball.ExitSlope = false
	ball.TrackingLost = false

	if ball.Status == entity.StatusCollision && ball.OnSlope {
		s.trackSlope(ball, tx, ty)
		return
	}
	s.walk(ball, tx, ty)
}

// walk moves the ball along the rasterized line to (tx, ty), stopping
// one step before the inner ring first hits a solid pixel
func (s *PhysicsSystem) walk(ball *entity.Ball, tx, ty float64) {
	r := ball.Radius
	inner := &ball.Mask.Inner
	x0, y0 := round(ball.X), round(ball.Y)
	x1, y1 := round(tx), round(ty)

	prevX, prevY := x0, y0
	blocked := false
	var hitX, hitY int
	walkLine(x0, y0, x1, y1, func(x, y int) bool {
		if s.resolver.Collides(float64(x)+r, float64(y)+r, inner, ball.InnerActive) {
			blocked = true
			hitX, hitY = x, y
			return false
		}
		prevX, prevY = x, y
		return true
	})

	if blocked {
		ball.X, ball.Y = float64(prevX), float64(prevY)
		ball.Status = entity.StatusCollision
		est := s.resolver.Normal(float64(hitX)+r, float64(hitY)+r, inner)
		ball.Blocked = true
		ball.HasNormal = true
		ball.NormalAngle = est.Angle
		return
	}

	if s.resolver.Collides(tx+r, ty+r, &ball.Mask.Outer, nil) {
		// Touching: accept up to one ring of overlap at the pixel position
		ball.X, ball.Y = float64(x1), float64(y1)
		ball.Status = entity.StatusCollision
		return
	}
	ball.X, ball.Y = tx, ty
}

// trackSlope follows the surface while the ball rolls along it. At each
// step of the line it searches along the normal for the nearest offset
// where the inner ring is clear, so the ball neither sinks into nor
// lifts off the slope.
func (s *PhysicsSystem) trackSlope(ball *entity.Ball, tx, ty float64) {
	r := ball.Radius
	inner := &ball.Mask.Inner
	x0, y0 := round(ball.X), round(ball.Y)
	x1, y1 := round(tx), round(ty)

	if x0 == x1 && y0 == y1 {
		ball.X, ball.Y = tx, ty
		return
	}

	motion, moving := ball.AngleOfMotion()
	nx, ny := entity.AngleVector(ball.NormalAngle)
	minOff, maxOff := s.config.Slope.MinOffset, s.config.Slope.MaxOffset

	curX, curY := x0, y0
	moved := false
	walkLine(x0, y0, x1, y1, func(wx, wy int) bool {
		found := false
		var px, py int
		for k := -minOff; k <= maxOff; k++ {
			px = round(float64(wx) + float64(k)*nx)
			py = round(float64(wy) + float64(k)*ny)
			if !s.resolver.Collides(float64(px)+r, float64(py)+r, inner, ball.InnerActive) {
				found = true
				break
			}
		}
		if !found {
			ball.TrackingLost = true
			return false
		}

		curX, curY = px, py
		moved = true

		est := s.resolver.Normal(float64(px)+r, float64(py)+r, &ball.Mask.Outer)
		if est.Status == entity.StatusNoCollision {
			// Surface fell away
			ball.ExitSlope = true
			return false
		}
		if moving && math.Abs(entity.AngleDiff(motion, est.Angle)-90) > s.config.Slope.Tolerance {
			// Surface turned too sharply to follow
			ball.ExitSlope = true
			return false
		}
		ball.NormalAngle = est.Angle
		nx, ny = entity.AngleVector(est.Angle)
		return true
	})

	if ball.TrackingLost {
		// Dead end: keep the position from the start of the frame
		return
	}
	if moved {
		ball.X, ball.Y = float64(curX), float64(curY)
	}
}

// walkLine visits every raster point from (x0, y0) to (x1, y1),
// excluding the start, until visit returns false
func walkLine(x0, y0, x1, y1 int, visit func(x, y int) bool) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy

	x, y := x0, y0
	for x != x1 || y != y1 {
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
		if !visit(x, y) {
			return
		}
	}
}

// Helper functions
func round(v float64) int {
	return int(math.Round(v))
}

func clampAbs(v, limit float64) float64 {
	if limit <= 0 {
		return v
	}
	return math.Max(-limit, math.Min(limit, v))
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
