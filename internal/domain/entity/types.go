package entity

// TileSize is the edge length of a collision tile in pixels
const TileSize = 256

// CollisionType classifies a single pixel of the collision field
type CollisionType byte

const (
	NoCollision CollisionType = iota
	Collision
	Grappleable
	Platform
	Water
)

// String returns the string representation of the collision type
func (c CollisionType) String() string {
	switch c {
	case NoCollision:
		return "NoCollision"
	case Collision:
		return "Collision"
	case Grappleable:
		return "Grappleable"
	case Platform:
		return "Platform"
	case Water:
		return "Water"
	default:
		return "Unknown"
	}
}

// IsSolid reports whether the pixel blocks the ball.
// Grappleable pixels are solid; platforms and water are not.
func (c CollisionType) IsSolid() bool {
	return c == Collision || c == Grappleable
}

// TileCoord addresses a tile by its index in tile units
type TileCoord struct {
	X, Y int
}

// Tile is one TileSize x TileSize block of the level.
// Collision holds one CollisionType byte per pixel; Pixels holds the
// matching RGBA plane for the renderer. Both are read-only after load.
type Tile struct {
	Coord     TileCoord
	Collision []byte
	Pixels    []byte
}

// NewEmptyTile returns a tile with no collision and transparent pixels
func NewEmptyTile(coord TileCoord) *Tile {
	return &Tile{
		Coord:     coord,
		Collision: make([]byte, TileSize*TileSize),
		Pixels:    make([]byte, TileSize*TileSize*4),
	}
}

// At returns the collision type at local pixel coordinates
func (t *Tile) At(lx, ly int) CollisionType {
	return CollisionType(t.Collision[ly*TileSize+lx])
}

// SplitCoord maps a global pixel coordinate to its tile index and the
// offset inside that tile, using floor semantics for negative values.
func SplitCoord(global int) (tile, local int) {
	tile = global / TileSize
	local = global % TileSize
	if local < 0 {
		tile--
		local += TileSize
	}
	return tile, local
}
