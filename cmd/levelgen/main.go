// Command levelgen writes the demo level's tile files and the ball's
// collision stencils.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/younwookim/bounce/internal/application/system"
	"github.com/younwookim/bounce/internal/domain/entity"
	"github.com/younwookim/bounce/internal/infrastructure/assets"
	"github.com/younwookim/bounce/internal/infrastructure/config"
	"github.com/younwookim/bounce/internal/infrastructure/tileio"
)

func main() {
	configsFlag := flag.String("configs", "cmd/game/configs", "Game config directory")
	levelFlag := flag.String("level", "demo", "Level to generate")
	outFlag := flag.String("out", "data", "Directory to write tile directories into")
	stencilsFlag := flag.String("stencils", "", "Also write ball stencils into this directory")
	diameterFlag := flag.Int("diameter", 69, "Inner stencil diameter in pixels")
	flag.Parse()

	loader := config.NewLoader(*configsFlag)
	levelCfg, err := loader.LoadLevel(*levelFlag)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}
	level := system.LoadLevel(levelCfg)

	n, err := writeTiles(context.Background(), hills{}, level, *outFlag)
	if err != nil {
		log.Fatalf("Failed to write tiles: %v", err)
	}
	log.Printf("Wrote %d of %d tiles to %s", n, level.WidthTiles*level.HeightTiles,
		filepath.Join(*outFlag, level.TileDir))

	if *stencilsFlag != "" {
		if err := writeStencils(*stencilsFlag, *diameterFlag); err != nil {
			log.Fatalf("Failed to write stencils: %v", err)
		}
		log.Printf("Wrote %dpx ball stencils to %s", *diameterFlag, *stencilsFlag)
	}
}

// writeTiles paints every tile of level and writes the non-empty ones
// under outDir/<TileDir>
func writeTiles(ctx context.Context, p painter, level *entity.Level, outDir string) (int, error) {
	dir := filepath.Join(outDir, level.TileDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	var written atomic.Int64
	for ty := 0; ty < level.HeightTiles; ty++ {
		for tx := 0; tx < level.WidthTiles; tx++ {
			coord := entity.TileCoord{X: tx, Y: ty}
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				tile, used := paint(p, coord)
				if !used {
					return nil
				}
				if err := writeTile(filepath.Join(dir, tileio.FileName(coord)), tile); err != nil {
					return err
				}
				written.Add(1)
				return nil
			})
		}
	}

	err := g.Wait()
	return int(written.Load()), err
}

func writeTile(path string, tile *entity.Tile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create tile file: %w", err)
	}
	if err := tileio.Encode(f, tile); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close tile file: %w", err)
	}
	return nil
}

// writeStencils writes the inner ring stencil and the outer ring one
// pixel larger on each side
func writeStencils(dir string, diameter int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	stencils := []struct {
		name     string
		diameter int
	}{
		{"ball_inner.png", diameter},
		{"ball_outer.png", diameter + 2},
	}
	for _, s := range stencils {
		f, err := os.Create(filepath.Join(dir, s.name))
		if err != nil {
			return fmt.Errorf("failed to create stencil file: %w", err)
		}
		if err := assets.WriteStencil(f, entity.RingStencil(s.diameter, 1)); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close stencil file: %w", err)
		}
	}
	return nil
}
