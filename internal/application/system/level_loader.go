package system

import (
	"github.com/younwookim/bounce/internal/domain/entity"
	"github.com/younwookim/bounce/internal/infrastructure/config"
)

// LoadLevel converts a LevelConfig into a Level entity
func LoadLevel(cfg *config.LevelConfig) *entity.Level {
	return &entity.Level{
		ID:          cfg.ID,
		Name:        cfg.Name,
		WidthTiles:  cfg.Size.Width,
		HeightTiles: cfg.Size.Height,
		TileDir:     cfg.TileDir,
		SpawnX:      cfg.Spawn.X,
		SpawnY:      cfg.Spawn.Y,
		StartTool:   entity.ParseTool(cfg.StartTool),
	}
}
