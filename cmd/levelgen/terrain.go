package main

import (
	"image/color"
	"math"

	"github.com/younwookim/bounce/internal/domain/entity"
)

// Terrain colors written into the pixel plane
var (
	colorGround    = color.RGBA{80, 80, 100, 255}
	colorGrass     = color.RGBA{90, 150, 80, 255}
	colorGrapple   = color.RGBA{200, 160, 60, 255}
	colorPlatform  = color.RGBA{150, 110, 70, 255}
	colorWater     = color.RGBA{25, 56, 125, 160} // premultiplied
	grassThickness = 6
)

// painter describes a level pixel by pixel
type painter interface {
	At(x, y int) (entity.CollisionType, color.RGBA)
}

// hills is the demo terrain: rolling ground, a water basin, a grapple
// bar over the western slope and a pass-through ledge near the spawn
type hills struct{}

// groundY returns the first solid row at column x
func (h hills) groundY(x int) int {
	fx := float64(x)
	y := 1200 + 120*math.Sin(fx/300) + 50*math.Sin(fx/97)
	if x >= 2300 && x < 2700 {
		// Basin floor
		y = max(y, 1400)
	}
	return int(math.Round(y))
}

// At returns the collision type and color of the pixel at (x, y)
func (h hills) At(x, y int) (entity.CollisionType, color.RGBA) {
	if g := h.groundY(x); y >= g {
		if y < g+grassThickness {
			return entity.Collision, colorGrass
		}
		return entity.Collision, colorGround
	}

	switch {
	case x >= 2300 && x < 2700 && y >= 1150:
		return entity.Water, colorWater
	case x >= 600 && x < 1200 && y >= 300 && y < 330:
		return entity.Grappleable, colorGrapple
	case x >= 1400 && x < 1700 && y >= 1000 && y < 1010:
		return entity.Platform, colorPlatform
	}
	return entity.NoCollision, color.RGBA{}
}

// paint fills the tile at coord. It reports false when the tile would
// be empty so the caller can skip writing it.
func paint(t painter, coord entity.TileCoord) (*entity.Tile, bool) {
	tile := entity.NewEmptyTile(coord)
	used := false
	for ly := 0; ly < entity.TileSize; ly++ {
		for lx := 0; lx < entity.TileSize; lx++ {
			ct, c := t.At(coord.X*entity.TileSize+lx, coord.Y*entity.TileSize+ly)
			if ct == entity.NoCollision && c.A == 0 {
				continue
			}
			used = true
			i := ly*entity.TileSize + lx
			tile.Collision[i] = byte(ct)
			copy(tile.Pixels[i*4:], []byte{c.R, c.G, c.B, c.A})
		}
	}
	return tile, used
}
