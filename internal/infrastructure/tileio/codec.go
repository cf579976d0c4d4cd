package tileio

import (
	"errors"
	"fmt"
	"io"

	"github.com/younwookim/bounce/internal/domain/entity"
)

const (
	pixelBytes     = entity.TileSize * entity.TileSize * 4
	collisionBytes = entity.TileSize * entity.TileSize
	fileSize       = pixelBytes + 1 + collisionBytes
	separator      = '\n'
)

var (
	ErrBadTileSize      = errors.New("tile file has wrong size")
	ErrMissingSeparator = errors.New("tile file has no separator after the pixel plane")
	ErrUnknownCollision = errors.New("tile file has an unknown collision byte")
)

// FileName returns the file name of the tile at coord
func FileName(coord entity.TileCoord) string {
	return fmt.Sprintf("%d_%d.tile", coord.X, coord.Y)
}

// Decode reads one tile: the RGBA pixel plane, a newline, then one
// collision byte per pixel
func Decode(coord entity.TileCoord, r io.Reader) (*entity.Tile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tile %v: %w", coord, err)
	}
	if len(data) != fileSize {
		return nil, fmt.Errorf("%w: tile %v is %d bytes, want %d", ErrBadTileSize, coord, len(data), fileSize)
	}
	if data[pixelBytes] != separator {
		return nil, fmt.Errorf("%w: tile %v", ErrMissingSeparator, coord)
	}

	collision := data[pixelBytes+1:]
	for i, b := range collision {
		if b > byte(entity.Water) {
			return nil, fmt.Errorf("%w: tile %v pixel %d is %d", ErrUnknownCollision, coord, i, b)
		}
	}

	return &entity.Tile{
		Coord:     coord,
		Pixels:    data[:pixelBytes:pixelBytes],
		Collision: collision,
	}, nil
}

// Encode writes a tile in the format Decode reads
func Encode(w io.Writer, tile *entity.Tile) error {
	if len(tile.Pixels) != pixelBytes || len(tile.Collision) != collisionBytes {
		return fmt.Errorf("%w: tile %v has %d pixel and %d collision bytes",
			ErrBadTileSize, tile.Coord, len(tile.Pixels), len(tile.Collision))
	}
	if _, err := w.Write(tile.Pixels); err != nil {
		return fmt.Errorf("failed to write tile %v: %w", tile.Coord, err)
	}
	if _, err := w.Write([]byte{separator}); err != nil {
		return fmt.Errorf("failed to write tile %v: %w", tile.Coord, err)
	}
	if _, err := w.Write(tile.Collision); err != nil {
		return fmt.Errorf("failed to write tile %v: %w", tile.Coord, err)
	}
	return nil
}
