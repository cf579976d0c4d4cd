package entity

import "math"

// Angles are in degrees, counter-clockwise with "up" positive, so a
// screen-space vector (x, y) has angle atan2(-y, x).

// NormalizeAngle wraps an angle into [0, 360)
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// AngleDiff returns the unsigned smallest difference between two angles, in [0, 180]
func AngleDiff(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// VectorAngle returns the angle of a screen-space vector.
// ok is false for the zero vector.
func VectorAngle(x, y float64) (deg float64, ok bool) {
	if x == 0 && y == 0 {
		return 0, false
	}
	return NormalizeAngle(math.Atan2(-y, x) * 180 / math.Pi), true
}

// AngleVector returns the screen-space unit vector for an angle
func AngleVector(deg float64) (x, y float64) {
	rad := deg * math.Pi / 180
	return math.Cos(rad), -math.Sin(rad)
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
