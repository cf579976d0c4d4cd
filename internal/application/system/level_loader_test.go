package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/bounce/internal/domain/entity"
	"github.com/younwookim/bounce/internal/infrastructure/config"
)

func TestLoadLevel(t *testing.T) {
	t.Run("loads basic level", func(t *testing.T) {
		cfg := &config.LevelConfig{
			ID:        "demo",
			Name:      "Demo Hills",
			Size:      config.LevelSizeConfig{Width: 12, Height: 6},
			TileDir:   "tiles/demo",
			Spawn:     config.PositionConfig{X: 1700, Y: 900},
			StartTool: "Grapple",
		}

		level := LoadLevel(cfg)

		require.NotNil(t, level)
		assert.Equal(t, "demo", level.ID)
		assert.Equal(t, "Demo Hills", level.Name)
		assert.Equal(t, 12, level.WidthTiles)
		assert.Equal(t, 6, level.HeightTiles)
		assert.Equal(t, "tiles/demo", level.TileDir)
		assert.Equal(t, 1700.0, level.SpawnX)
		assert.Equal(t, 900.0, level.SpawnY)
		assert.Equal(t, entity.ToolGrapple, level.StartTool)
	})

	t.Run("unknown tool starts empty-handed", func(t *testing.T) {
		cfg := &config.LevelConfig{
			Size:      config.LevelSizeConfig{Width: 1, Height: 1},
			StartTool: "Hammer",
		}

		level := LoadLevel(cfg)

		assert.Equal(t, entity.ToolNone, level.StartTool)
	})
}
