package entity

// Level describes the world the ball moves through
type Level struct {
	ID          string
	Name        string
	WidthTiles  int
	HeightTiles int
	TileDir     string
	SpawnX      float64
	SpawnY      float64
	StartTool   Tool
}

// PixelWidth returns the level width in pixels
func (l *Level) PixelWidth() int {
	return l.WidthTiles * TileSize
}

// PixelHeight returns the level height in pixels
func (l *Level) PixelHeight() int {
	return l.HeightTiles * TileSize
}

// ContainsTile reports whether the tile is inside the level
func (l *Level) ContainsTile(c TileCoord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < l.WidthTiles && c.Y < l.HeightTiles
}
