package entity

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// ErrStencilSize is returned when the outer stencil is not exactly one
// pixel larger than the inner stencil on every side.
var ErrStencilSize = errors.New("outer stencil must be inner size + 2")

// ErrEmptyStencil is returned when a stencil has no member pixels.
var ErrEmptyStencil = errors.New("stencil has no black pixels")

// MaskMember is one pixel of a collision ring.
// DX, DY are relative to the ball's center pixel.
type MaskMember struct {
	DX, DY int
	Angle  float64 // degrees, direction from the center to this pixel
	Cos    float64
	Sin    float64
}

// Ring is an ordered set of mask members. Member indices are stable and
// index the per-frame active Bitset.
type Ring struct {
	Members []MaskMember
	Size    int // stencil edge length in pixels
}

// Len returns the number of members
func (r *Ring) Len() int {
	return len(r.Members)
}

// ActorMask holds the two concentric collision rings of the ball.
// Inner is used for strict tunneling checks, Outer for contact and
// normal estimation.
type ActorMask struct {
	Inner Ring
	Outer Ring
}

// NewActorMask builds both rings from their stencils
func NewActorMask(inner, outer image.Image) (*ActorMask, error) {
	ib, ob := inner.Bounds(), outer.Bounds()
	if ob.Dx() != ib.Dx()+2 || ob.Dy() != ib.Dy()+2 {
		return nil, fmt.Errorf("%w: inner %dx%d, outer %dx%d",
			ErrStencilSize, ib.Dx(), ib.Dy(), ob.Dx(), ob.Dy())
	}

	innerRing, err := BuildRing(inner)
	if err != nil {
		return nil, fmt.Errorf("failed to build inner ring: %w", err)
	}
	outerRing, err := BuildRing(outer)
	if err != nil {
		return nil, fmt.Errorf("failed to build outer ring: %w", err)
	}

	return &ActorMask{Inner: innerRing, Outer: outerRing}, nil
}

// BuildRing collects every opaque pure-black pixel of the stencil
func BuildRing(stencil image.Image) (Ring, error) {
	b := stencil.Bounds()
	w, h := b.Dx(), b.Dy()
	ring := Ring{Size: w}

	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			if !isMaskPixel(stencil.At(b.Min.X+px, b.Min.Y+py)) {
				continue
			}
			// Offset from the geometric center to the pixel center
			fx := float64(px) + 0.5 - float64(w)/2
			fy := float64(py) + 0.5 - float64(h)/2
			rad := math.Atan2(-fy, fx)

			ring.Members = append(ring.Members, MaskMember{
				DX:    px - w/2,
				DY:    py - h/2,
				Angle: NormalizeAngle(rad * 180 / math.Pi),
				Cos:   math.Cos(rad),
				Sin:   math.Sin(rad),
			})
		}
	}

	if len(ring.Members) == 0 {
		return Ring{}, ErrEmptyStencil
	}
	return ring, nil
}

func isMaskPixel(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return r == 0 && g == 0 && b == 0 && a == 0xffff
}

// RingStencil draws a black ring of the given thickness on a white
// square of edge diameter. A pixel is black when its center lies within
// thickness pixels inside the circle's edge.
func RingStencil(diameter, thickness int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, diameter, diameter))
	r := float64(diameter) / 2
	for py := 0; py < diameter; py++ {
		for px := 0; px < diameter; px++ {
			d := math.Hypot(float64(px)+0.5-r, float64(py)+0.5-r)
			if d < r && d >= r-float64(thickness) {
				img.SetGray(px, py, color.Gray{Y: 0})
			} else {
				img.SetGray(px, py, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// Bitset is a fixed-size set of member indices
type Bitset []uint64

// NewBitset returns a bitset able to hold n indices
func NewBitset(n int) Bitset {
	return make(Bitset, (n+63)/64)
}

// Set marks index i
func (b Bitset) Set(i int) {
	b[i>>6] |= 1 << uint(i&63)
}

// Has reports whether index i is marked
func (b Bitset) Has(i int) bool {
	return b[i>>6]&(1<<uint(i&63)) != 0
}

// Count returns the number of marked indices
func (b Bitset) Count() int {
	n := 0
	for _, w := range b {
		for w != 0 {
			w &= w - 1
			n++
		}
	}
	return n
}

// Clear unmarks every index
func (b Bitset) Clear() {
	for i := range b {
		b[i] = 0
	}
}
