package main

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/bounce/internal/domain/entity"
	"github.com/younwookim/bounce/internal/infrastructure/assets"
	"github.com/younwookim/bounce/internal/infrastructure/config"
	"github.com/younwookim/bounce/internal/infrastructure/tileio"
)

// stripes paints a solid row every 64 pixels and leaves the rest empty
type stripes struct{}

func (stripes) At(x, y int) (entity.CollisionType, color.RGBA) {
	if y >= 256 {
		return entity.NoCollision, color.RGBA{}
	}
	if y%64 == 0 {
		return entity.Collision, colorGround
	}
	return entity.NoCollision, color.RGBA{}
}

func TestHills_At(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want entity.CollisionType
		c    color.RGBA
	}{
		{"sky", 100, 100, entity.NoCollision, color.RGBA{}},
		{"grass on the ground line", 0, 1200, entity.Collision, colorGrass},
		{"earth below the grass", 0, 1206, entity.Collision, colorGround},
		{"grapple bar", 900, 310, entity.Grappleable, colorGrapple},
		{"ledge", 1500, 1005, entity.Platform, colorPlatform},
		{"basin water", 2500, 1200, entity.Water, colorWater},
		{"air over the basin", 2500, 1100, entity.NoCollision, color.RGBA{}},
		{"basin floor", 2500, 1400, entity.Collision, colorGrass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, c := hills{}.At(tt.x, tt.y)
			assert.Equal(t, tt.want, ct)
			assert.Equal(t, tt.c, c)
		})
	}
}

func TestPaint(t *testing.T) {
	_, used := paint(hills{}, entity.TileCoord{X: 0, Y: 0})
	assert.False(t, used, "the top-left tile is all sky")

	tile, used := paint(hills{}, entity.TileCoord{X: 0, Y: 5})
	require.True(t, used)
	for lx := 0; lx < entity.TileSize; lx++ {
		require.Equal(t, entity.Collision, tile.At(lx, entity.TileSize-1), "bottom row x=%d", lx)
	}
	// The ground at x=150 starts at y=1308, below the top of this tile
	assert.Equal(t, entity.NoCollision, tile.At(150, 0))
	assert.Equal(t, []byte{colorGround.R, colorGround.G, colorGround.B, 255}, tile.Pixels[:4])
}

func TestWriteTiles(t *testing.T) {
	out := t.TempDir()
	level := &entity.Level{ID: "stripes", WidthTiles: 2, HeightTiles: 2, TileDir: "tiles/stripes"}

	n, err := writeTiles(context.Background(), stripes{}, level, out)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "only the top row has anything in it")

	entries, err := os.ReadDir(filepath.Join(out, "tiles/stripes"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	src := tileio.NewDirSource(os.DirFS(out), level)
	tile, err := src.LoadTile(entity.TileCoord{X: 1, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, entity.Collision, tile.At(10, 64))
	assert.Equal(t, entity.NoCollision, tile.At(10, 65))

	// Skipped tiles load as empty
	tile, err = src.LoadTile(entity.TileCoord{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, entity.NoCollision, tile.At(0, 0))
}

func TestWriteTiles_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	level := &entity.Level{WidthTiles: 2, HeightTiles: 2, TileDir: "tiles"}

	_, err := writeTiles(ctx, stripes{}, level, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteStencils(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeStencils(dir, 21))

	mask, err := assets.LoadMask(os.DirFS(dir), &config.BallConfig{
		InnerStencil: "ball_inner.png",
		OuterStencil: "ball_outer.png",
	})
	require.NoError(t, err)
	assert.Equal(t, 21, mask.Inner.Size)
	assert.Equal(t, 23, mask.Outer.Size)
}
