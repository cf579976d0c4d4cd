// Package world runs one level: the collision field, tile streaming,
// the ball and its camera, advanced together one frame at a time.
package world

import (
	"context"
	"fmt"

	"github.com/younwookim/bounce/internal/application/system"
	"github.com/younwookim/bounce/internal/domain/entity"
	"github.com/younwookim/bounce/internal/domain/field"
	"github.com/younwookim/bounce/internal/infrastructure/config"
	"github.com/younwookim/bounce/internal/infrastructure/tileio"
)

// Snapshot is the observable ball state after a frame
type Snapshot struct {
	Frame  int
	X, Y   float64
	VX, VY float64
	State  entity.ContactState
	Status entity.CollisionStatus
	Tool   entity.Tool
}

// World owns everything a level needs to step
type World struct {
	Config  *config.PhysicsConfig
	Level   *entity.Level
	Field   *field.Field
	Ball    *entity.Ball
	Physics *system.PhysicsSystem
	Input   *system.InputSystem
	Camera  *system.Camera

	streamer *tileio.Streamer
	stats    tileio.Stats
	frame    int
}

// New creates a world for level. Call Reset before the first Step.
func New(cfg *config.PhysicsConfig, level *entity.Level, mask *entity.ActorMask, src tileio.Source) *World {
	f := field.New()
	return &World{
		Config:   cfg,
		Level:    level,
		Field:    f,
		Ball:     entity.NewBall(level.SpawnX, level.SpawnY, mask, cfg.Physics.Mass),
		Physics:  system.NewPhysicsSystem(cfg, f),
		Input:    system.NewInputSystem(),
		Camera:   system.NewCamera(cfg, level.PixelWidth(), level.PixelHeight()),
		streamer: tileio.NewStreamer(f, src, level, cfg.Streaming),
	}
}

// Reset puts the ball back at the spawn point and streams the tiles
// around it
func (w *World) Reset(ctx context.Context) error {
	w.Physics.Spawn(w.Ball, w.Level.SpawnX, w.Level.SpawnY)
	w.Ball.Tool = w.Level.StartTool
	w.Camera.CenterOn(w.Ball)
	w.frame = 0

	stats, err := w.streamer.Update(ctx, w.Camera.View())
	w.stats = stats
	if err != nil {
		return fmt.Errorf("failed to stream spawn area: %w", err)
	}
	return nil
}

// Step advances the world by one frame of input
func (w *World) Step(ctx context.Context, input system.InputState, dt float64) error {
	if input.Restart {
		return w.Reset(ctx)
	}

	stats, err := w.streamer.Update(ctx, w.Camera.View())
	w.stats = stats
	if err != nil {
		return fmt.Errorf("failed to stream frame %d: %w", w.frame, err)
	}

	intents := w.Input.Intents(input, w.Camera)
	w.Physics.Update(w.Ball, intents, dt)
	w.Camera.Follow(w.Ball)
	w.frame++
	return nil
}

// Frame returns the number of frames stepped since the last reset
func (w *World) Frame() int {
	return w.frame
}

// StreamStats returns what tile streaming did during the last step
func (w *World) StreamStats() tileio.Stats {
	return w.stats
}

// Snapshot returns the current ball state
func (w *World) Snapshot() Snapshot {
	b := w.Ball
	return Snapshot{
		Frame:  w.frame,
		X:      b.X,
		Y:      b.Y,
		VX:     b.VX,
		VY:     b.VY,
		State:  b.State,
		Status: b.Status,
		Tool:   b.Tool,
	}
}
