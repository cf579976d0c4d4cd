package system

import (
	"math"

	"github.com/younwookim/bounce/internal/domain/entity"
	"github.com/younwookim/bounce/internal/domain/field"
)

// NormalEstimate is the result of probing a ring against the field
type NormalEstimate struct {
	Angle  float64 // outward normal in degrees, valid when Status is StatusCollision
	Status entity.CollisionStatus
	Hits   int
}

// ContactResolver queries the collision field through the ball's rings
type ContactResolver struct {
	field field.CollisionReader
}

// NewContactResolver creates a resolver over the given field
func NewContactResolver(f field.CollisionReader) *ContactResolver {
	return &ContactResolver{field: f}
}

// centerPixel returns the pixel containing the point (cx, cy)
func centerPixel(cx, cy float64) (int, int) {
	return int(math.Floor(cx)), int(math.Floor(cy))
}

// EstimateNormal averages the direction of every solid ring member and
// returns the opposite direction. Members already in active are counted
// without reading the field again; newly solid members are added to it.
// A nil active set disables the cache.
func (r *ContactResolver) EstimateNormal(cx, cy float64, ring *entity.Ring, active entity.Bitset) NormalEstimate {
	px, py := centerPixel(cx, cy)

	var sumCos, sumSin float64
	hits := 0
	for i := range ring.Members {
		m := &ring.Members[i]
		if active != nil && active.Has(i) {
			sumCos += m.Cos
			sumSin += m.Sin
			hits++
			continue
		}
		if !r.field.ReadCollisionByte(px+m.DX, py+m.DY).IsSolid() {
			continue
		}
		if active != nil {
			active.Set(i)
		}
		sumCos += m.Cos
		sumSin += m.Sin
		hits++
	}

	if hits == 0 {
		return NormalEstimate{Status: entity.StatusNoCollision}
	}

	n := float64(hits)
	deg := math.Atan2(sumSin/n, sumCos/n) * 180 / math.Pi
	return NormalEstimate{
		Angle:  entity.NormalizeAngle(entity.Round2(entity.NormalizeAngle(deg + 180))),
		Status: entity.StatusCollision,
		Hits:   hits,
	}
}

// Normal is EstimateNormal without the per-frame cache
func (r *ContactResolver) Normal(cx, cy float64, ring *entity.Ring) NormalEstimate {
	return r.EstimateNormal(cx, cy, ring, nil)
}

// Collides reports whether any ring member at (cx, cy) is solid.
// It stops at the first solid member, which is recorded in active if
// active is not nil.
func (r *ContactResolver) Collides(cx, cy float64, ring *entity.Ring, active entity.Bitset) bool {
	px, py := centerPixel(cx, cy)
	for i := range ring.Members {
		m := &ring.Members[i]
		if r.field.ReadCollisionByte(px+m.DX, py+m.DY).IsSolid() {
			if active != nil {
				active.Set(i)
			}
			return true
		}
	}
	return false
}
