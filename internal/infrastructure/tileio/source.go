package tileio

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/younwookim/bounce/internal/domain/entity"
)

var ErrOutOfBounds = errors.New("tile is outside the level")

// Source produces tiles by coordinate
type Source interface {
	LoadTile(coord entity.TileCoord) (*entity.Tile, error)
}

// DirSource reads <dir>/<tx>_<ty>.tile files from a filesystem.
// Tiles inside the level with no file are empty.
type DirSource struct {
	fsys  fs.FS
	dir   string
	level *entity.Level
}

// NewDirSource creates a source over the level's tile directory
func NewDirSource(fsys fs.FS, level *entity.Level) *DirSource {
	return &DirSource{fsys: fsys, dir: level.TileDir, level: level}
}

// LoadTile reads and decodes the tile at coord
func (s *DirSource) LoadTile(coord entity.TileCoord) (*entity.Tile, error) {
	if !s.level.ContainsTile(coord) {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, coord)
	}

	f, err := s.fsys.Open(path.Join(s.dir, FileName(coord)))
	if errors.Is(err, fs.ErrNotExist) {
		return entity.NewEmptyTile(coord), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open tile %v: %w", coord, err)
	}
	defer f.Close()

	return Decode(coord, f)
}
