// Package field provides the tile-backed pixel collision field.
package field

import (
	"sync"

	"github.com/younwookim/bounce/internal/domain/entity"
)

// CollisionReader reads the collision classification of a global pixel
type CollisionReader interface {
	ReadCollisionByte(x, y int) entity.CollisionType
}

// Field owns every loaded tile. Tiles are loaded and unloaded between
// frames by the streamer; reads and mutations are serialized by mu.
type Field struct {
	mu    sync.RWMutex
	tiles map[entity.TileCoord]*entity.Tile

	// OutOfRange is returned for pixels whose tile is not loaded.
	OutOfRange entity.CollisionType
}

// New creates an empty field where unloaded pixels read as solid
func New() *Field {
	return &Field{
		tiles:      make(map[entity.TileCoord]*entity.Tile),
		OutOfRange: entity.Collision,
	}
}

// ReadCollisionByte returns the collision type of the global pixel (x, y)
func (f *Field) ReadCollisionByte(x, y int) entity.CollisionType {
	tx, lx := entity.SplitCoord(x)
	ty, ly := entity.SplitCoord(y)

	f.mu.RLock()
	tile, ok := f.tiles[entity.TileCoord{X: tx, Y: ty}]
	f.mu.RUnlock()

	if !ok {
		return f.OutOfRange
	}
	return tile.At(lx, ly)
}

// IsSolidAt reports whether the global pixel blocks the ball
func (f *Field) IsSolidAt(x, y int) bool {
	return f.ReadCollisionByte(x, y).IsSolid()
}

// Load adds a tile. It returns false if a tile with the same coordinate
// is already loaded, in which case the field is unchanged.
func (f *Field) Load(tile *entity.Tile) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tiles[tile.Coord]; ok {
		return false
	}
	f.tiles[tile.Coord] = tile
	return true
}

// Unload removes a tile. It returns false if the tile was not loaded.
func (f *Field) Unload(coord entity.TileCoord) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tiles[coord]; !ok {
		return false
	}
	delete(f.tiles, coord)
	return true
}

// Tile returns the loaded tile at coord
func (f *Field) Tile(coord entity.TileCoord) (*entity.Tile, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	tile, ok := f.tiles[coord]
	return tile, ok
}

// IsLoaded reports whether the tile at coord is loaded
func (f *Field) IsLoaded(coord entity.TileCoord) bool {
	_, ok := f.Tile(coord)
	return ok
}

// Loaded returns the coordinates of every loaded tile in no particular order
func (f *Field) Loaded() []entity.TileCoord {
	f.mu.RLock()
	defer f.mu.RUnlock()

	coords := make([]entity.TileCoord, 0, len(f.tiles))
	for c := range f.tiles {
		coords = append(coords, c)
	}
	return coords
}

// Len returns the number of loaded tiles
func (f *Field) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.tiles)
}
