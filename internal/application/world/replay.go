package world

import (
	"context"
	"fmt"

	"github.com/younwookim/bounce/internal/application/replay"
)

// Replay resets w and steps it through every recorded frame, returning
// the ball state after each one
func Replay(ctx context.Context, w *World, r *replay.Replayer) ([]Snapshot, error) {
	if err := w.Reset(ctx); err != nil {
		return nil, err
	}

	snaps := make([]Snapshot, 0, r.TotalFrames())
	for {
		input, dt, ok := r.GetInput()
		if !ok {
			break
		}
		if err := w.Step(ctx, input, dt); err != nil {
			return snaps, fmt.Errorf("failed to replay frame %d: %w", r.CurrentFrame()-1, err)
		}
		snaps = append(snaps, w.Snapshot())
	}
	return snaps, nil
}
