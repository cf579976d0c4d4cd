package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollisionType_String(t *testing.T) {
	tests := []struct {
		ct       CollisionType
		expected string
	}{
		{NoCollision, "NoCollision"},
		{Collision, "Collision"},
		{Grappleable, "Grappleable"},
		{Platform, "Platform"},
		{Water, "Water"},
		{CollisionType(42), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ct.String())
		})
	}
}

func TestCollisionType_IsSolid(t *testing.T) {
	assert.False(t, NoCollision.IsSolid())
	assert.True(t, Collision.IsSolid())
	assert.True(t, Grappleable.IsSolid())
	assert.False(t, Platform.IsSolid())
	assert.False(t, Water.IsSolid())
}

func TestCollisionTypeConstants(t *testing.T) {
	// Byte values are part of the tile file format
	assert.Equal(t, CollisionType(0), NoCollision)
	assert.Equal(t, CollisionType(1), Collision)
	assert.Equal(t, CollisionType(2), Grappleable)
	assert.Equal(t, CollisionType(3), Platform)
	assert.Equal(t, CollisionType(4), Water)
}

func TestSplitCoord(t *testing.T) {
	tests := []struct {
		name      string
		global    int
		wantTile  int
		wantLocal int
	}{
		{"origin", 0, 0, 0},
		{"inside first tile", 255, 0, 255},
		{"second tile", 256, 1, 0},
		{"far", 1700, 6, 164},
		{"negative one", -1, -1, 255},
		{"negative tile edge", -256, -1, 0},
		{"negative beyond", -257, -2, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile, local := SplitCoord(tt.global)
			assert.Equal(t, tt.wantTile, tile)
			assert.Equal(t, tt.wantLocal, local)
		})
	}
}

func TestTile_At(t *testing.T) {
	tile := NewEmptyTile(TileCoord{X: 2, Y: 3})
	tile.Collision[10*TileSize+5] = byte(Water)

	assert.Equal(t, TileCoord{X: 2, Y: 3}, tile.Coord)
	assert.Equal(t, Water, tile.At(5, 10))
	assert.Equal(t, NoCollision, tile.At(10, 5))
	assert.Len(t, tile.Pixels, TileSize*TileSize*4)
}
