package entity

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// CollisionStatus records whether the ball touched solid pixels
type CollisionStatus int

const (
	StatusNoCollision CollisionStatus = iota
	StatusCollision
)

// String returns the string representation of the collision status
func (s CollisionStatus) String() string {
	if s == StatusCollision {
		return "Collision"
	}
	return "NoCollision"
}

// ContactState is the per-frame classification of the ball's contact
type ContactState int

const (
	StateBallistic ContactState = iota
	StateOnSlope
	StateBouncingLow
	StateHardContact
)

// String returns the string representation of the contact state
func (s ContactState) String() string {
	switch s {
	case StateBallistic:
		return "Ballistic"
	case StateOnSlope:
		return "OnSlope"
	case StateBouncingLow:
		return "BouncingLow"
	case StateHardContact:
		return "HardContact"
	default:
		return "Unknown"
	}
}

// Forces accumulates every force acting on the ball during one frame
type Forces struct {
	Gravity  dmath.Vec2
	Movement dmath.Vec2
	Tool     dmath.Vec2
	Normal   dmath.Vec2
	Water    dmath.Vec2
}

// Total returns the sum of all accumulated forces
func (f *Forces) Total() (x, y float64) {
	x = f.Gravity.X + f.Movement.X + f.Tool.X + f.Normal.X + f.Water.X
	y = f.Gravity.Y + f.Movement.Y + f.Tool.Y + f.Normal.Y + f.Water.Y
	return x, y
}

// Reset restores the default gravity force and clears the rest
func (f *Forces) Reset(gravity dmath.Vec2) {
	*f = Forces{Gravity: gravity}
}

// Ball is the player-controlled circular actor.
// X, Y is the top-left of the bounding box; the center is offset by Radius.
type Ball struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Mass   float64

	Status      CollisionStatus
	State       ContactState
	NormalAngle float64 // outward surface normal, valid when HasNormal
	HasNormal   bool

	OnSlope      bool
	ExitSlope    bool
	BouncingLow  bool
	TrackingLost bool // slope scan found no free offset last frame
	Blocked      bool // line walk stopped at a wall; NormalAngle holds its normal

	Forces Forces

	Mask        *ActorMask
	InnerActive Bitset
	OuterActive Bitset

	Tool          Tool
	GrappleAnchor [2]int
	Grappling     bool
}

// NewBall creates a ball whose top-left corner is at (x, y).
// The radius is half the inner stencil size.
func NewBall(x, y float64, mask *ActorMask, mass float64) *Ball {
	return &Ball{
		X:           x,
		Y:           y,
		Radius:      float64(mask.Inner.Size) / 2,
		Mass:        mass,
		Mask:        mask,
		InnerActive: NewBitset(mask.Inner.Len()),
		OuterActive: NewBitset(mask.Outer.Len()),
	}
}

// Center returns the center of the ball
func (b *Ball) Center() (cx, cy float64) {
	return b.X + b.Radius, b.Y + b.Radius
}

// Speed returns the magnitude of the velocity
func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// AngleOfMotion returns the direction of the velocity.
// ok is false while the ball is at rest.
func (b *Ball) AngleOfMotion() (deg float64, ok bool) {
	return VectorAngle(b.VX, b.VY)
}

// ResetActive clears the per-frame active member sets
func (b *Ball) ResetActive() {
	b.InnerActive.Clear()
	b.OuterActive.Clear()
}

// SetVelocityAngle sets the velocity from a speed and a direction
func (b *Ball) SetVelocityAngle(speed, deg float64) {
	ux, uy := AngleVector(deg)
	b.VX = ux * speed
	b.VY = uy * speed
}
