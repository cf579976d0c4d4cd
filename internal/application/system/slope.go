package system

import (
	"math"

	"github.com/younwookim/bounce/internal/domain/entity"
	"github.com/younwookim/bounce/internal/infrastructure/config"
)

// restSpeed is the speed below which a contact response stops the ball
const restSpeed = 1e-6

// Reflect mirrors angle about the normal line
func Reflect(normal, angle float64) float64 {
	return entity.NormalizeAngle(2*normal - angle)
}

// Elasticity returns the fraction of speed kept when the direction of
// motion turns from a to b. Small turns (grazing hits) keep up to
// MaxElasticity, full reversals (head-on hits) keep MinElasticity.
func Elasticity(a, b float64, cfg config.ContactConfig) float64 {
	scale := math.Abs(entity.AngleDiff(a, b)/180 - 1)
	return scale*cfg.MaxElasticity + (1-scale)*cfg.MinElasticity
}

// Tangent returns the surface tangent (normal ± 90) within 90 degrees of motion
func Tangent(normal, motion float64) float64 {
	t := entity.NormalizeAngle(normal + 90)
	if entity.AngleDiff(t, motion) <= 90 {
		return t
	}
	return entity.NormalizeAngle(normal - 90)
}

// ContactResponse is the outcome of classifying one frame of contact
type ContactResponse struct {
	State          entity.ContactState
	ResultingAngle float64
	Elasticity     float64
	VX, VY         float64 // velocity after contact
}

// ContactSystem classifies the ball's contact every frame and turns it
// into a normal force
type ContactSystem struct {
	config *config.PhysicsConfig
}

// NewContactSystem creates a new contact system
func NewContactSystem(cfg *config.PhysicsConfig) *ContactSystem {
	return &ContactSystem{config: cfg}
}

// gravityAngle returns the direction gravity pulls, straight down if unset
func (s *ContactSystem) gravityAngle() float64 {
	deg, ok := entity.VectorAngle(s.config.Physics.GravityX, s.config.Physics.GravityY)
	if !ok {
		return 270
	}
	return deg
}

// speedAlongGravity returns |v . g| for the unit gravity direction
func (s *ContactSystem) speedAlongGravity(vx, vy float64) float64 {
	gx, gy := entity.AngleVector(s.gravityAngle())
	return math.Abs(vx*gx + vy*gy)
}

// Classify computes the contact state and post-contact velocity.
// It does not modify the ball.
func (s *ContactSystem) Classify(ball *entity.Ball) ContactResponse {
	resp := ContactResponse{State: entity.StateBallistic, VX: ball.VX, VY: ball.VY, Elasticity: 1}
	if ball.Status != entity.StatusCollision || !ball.HasNormal {
		return resp
	}

	cfg := s.config.Contact
	normal := ball.NormalAngle
	exiting := ball.ExitSlope
	slow := s.speedAlongGravity(ball.VX, ball.VY) < cfg.StopBouncingSpeed

	motion, moving := ball.AngleOfMotion()
	if !moving {
		// Resting: no velocity to redirect
		switch {
		case exiting:
			resp.State = entity.StateHardContact
		case entity.AngleDiff(normal, s.gravityAngle()+180) <= cfg.FlatGroundTolerance:
			resp.State = entity.StateBouncingLow
		default:
			resp.State = entity.StateOnSlope
		}
		resp.ResultingAngle = normal
		return resp
	}

	alongSurface := math.Abs(entity.AngleDiff(motion, normal)-90) <= s.config.Slope.Tolerance
	onSlope := !exiting && (alongSurface || slow)
	bouncingLow := !exiting && slow &&
		entity.AngleDiff(normal, s.gravityAngle()+180) <= cfg.FlatGroundTolerance

	speed := ball.Speed()
	switch {
	case onSlope || bouncingLow:
		resp.State = entity.StateOnSlope
		if bouncingLow {
			resp.State = entity.StateBouncingLow
		}
		resp.ResultingAngle = Tangent(normal, motion)
		resp.Elasticity = Elasticity(motion, resp.ResultingAngle, cfg)

		d := math.Min(entity.AngleDiff(motion, resp.ResultingAngle), 90)
		if d < cfg.MinSlopeDeflection {
			d = 0
		}
		speed *= math.Cos(d*math.Pi/180) * resp.Elasticity

	case entity.AngleDiff(motion, normal) <= 90:
		// Already moving away from the surface
		resp.State = entity.StateHardContact
		resp.ResultingAngle = motion
		return resp

	default:
		resp.State = entity.StateHardContact
		resp.ResultingAngle = Reflect(normal, motion+180)
		resp.Elasticity = Elasticity(motion, resp.ResultingAngle, cfg)
		speed *= resp.Elasticity
	}

	if speed < restSpeed {
		speed = 0
	}
	ux, uy := entity.AngleVector(resp.ResultingAngle)
	resp.VX = ux * speed
	resp.VY = uy * speed
	return resp
}

// Resolve classifies the contact, updates the ball's state flags and
// adds the normal force: a static part cancelling gravity and movement
// into the surface, plus the impulse that turns the current velocity
// into the post-contact velocity over dt.
func (s *ContactSystem) Resolve(ball *entity.Ball, dt float64) ContactResponse {
	resp := s.Classify(ball)

	ball.State = resp.State
	ball.OnSlope = resp.State == entity.StateOnSlope || resp.State == entity.StateBouncingLow
	ball.BouncingLow = resp.State == entity.StateBouncingLow

	if resp.State == entity.StateBallistic {
		return resp
	}

	nx, ny := s.staticNormal(ball, ball.Forces.Gravity.X, ball.Forces.Gravity.Y)
	mx, my := s.staticNormal(ball, ball.Forces.Movement.X, ball.Forces.Movement.Y)
	ball.Forces.Normal.X += nx + mx + ball.Mass*(resp.VX-ball.VX)/dt
	ball.Forces.Normal.Y += ny + my + ball.Mass*(resp.VY-ball.VY)/dt

	return resp
}

// staticNormal returns the reaction to the part of force (fx, fy) that
// pushes into the surface, or zero if the force points away from it.
func (s *ContactSystem) staticNormal(ball *entity.Ball, fx, fy float64) (float64, float64) {
	fa, ok := entity.VectorAngle(fx, fy)
	if !ok {
		return 0, 0
	}
	diff := entity.AngleDiff(fa, ball.NormalAngle+180)
	if diff >= 90 {
		return 0, 0
	}
	mag := math.Hypot(fx, fy) * math.Cos(diff*math.Pi/180)
	ux, uy := entity.AngleVector(ball.NormalAngle)
	return ux * mag, uy * mag
}
