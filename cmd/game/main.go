package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/bounce/internal/application/game"
	"github.com/younwookim/bounce/internal/application/replay"
	"github.com/younwookim/bounce/internal/application/scene/playing"
	"github.com/younwookim/bounce/internal/application/system"
	"github.com/younwookim/bounce/internal/application/world"
	"github.com/younwookim/bounce/internal/infrastructure/assets"
	"github.com/younwookim/bounce/internal/infrastructure/config"
	"github.com/younwookim/bounce/internal/infrastructure/tileio"
)

//go:embed configs assets
var gameFS embed.FS

func main() {
	// Parse command line flags
	levelFlag := flag.String("level", "demo", "Level to play (configs/levels/<name>.json)")
	dataFlag := flag.String("data", "data", "Directory holding the level tile directories")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded replay file")
	watchFlag := flag.Bool("watch", false, "Show the replay in a window instead of running it headless")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Load configurations using embedded filesystem
	fsys, err := fs.Sub(gameFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	loader := config.NewFSLoader(fsys, "configs")
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var replayer *replay.Replayer
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		replayer = replay.NewReplayer(*data)
		if replayer.Level() != "" {
			*levelFlag = replayer.Level()
		}
		// Streaming must not depend on wall-clock time during playback
		cfg.Physics.Streaming.MaxLoadTimeMs = 0
	}

	// Load level
	levelCfg, err := loader.LoadLevel(*levelFlag)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}
	level := system.LoadLevel(levelCfg)

	assetFS, err := fs.Sub(gameFS, "assets")
	if err != nil {
		log.Fatalf("Failed to get asset subfs: %v", err)
	}
	mask, err := assets.LoadMask(assetFS, cfg.Ball)
	if err != nil {
		log.Fatalf("Failed to load ball stencils: %v", err)
	}

	src := tileio.NewDirSource(os.DirFS(*dataFlag), level)
	w := world.New(cfg.Physics, level, mask, src)
	if err := w.Reset(ctx); err != nil {
		log.Fatalf("Failed to start level: %v", err)
	}

	if replayer != nil && !*watchFlag {
		runHeadless(ctx, w, replayer)
		return
	}

	scene, err := playing.New(ctx, cfg, w, *recordFlag)
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}
	if replayer != nil {
		if err := scene.Watch(replayer); err != nil {
			log.Fatalf("Failed to start replay: %v", err)
		}
	}
	g := game.New(scene, cfg.Physics.Display)
	defer g.Close()

	// Set up ebiten
	ebiten.SetWindowSize(cfg.Physics.Display.ScreenWidth*cfg.Physics.Display.Scale,
		cfg.Physics.Display.ScreenHeight*cfg.Physics.Display.Scale)
	ebiten.SetWindowTitle("Bounce - " + level.Name)
	ebiten.SetTPS(cfg.Physics.Display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Printf("Game stopped: %v", err)
	}
}

// runHeadless steps the replay without a window and logs the result
func runHeadless(ctx context.Context, w *world.World, r *replay.Replayer) {
	snaps, err := world.Replay(ctx, w, r)
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}
	if len(snaps) == 0 {
		log.Printf("Replay %s has no frames", r.Level())
		return
	}

	last := snaps[len(snaps)-1]
	log.Printf("Replayed %d frames on %s", len(snaps), r.Level())
	log.Printf("Final ball: pos=(%.3f, %.3f) vel=(%.3f, %.3f) state=%s status=%s tool=%s",
		last.X, last.Y, last.VX, last.VY, last.State, last.Status, last.Tool)
}
