package tileio

import (
	"cmp"
	"context"
	"fmt"
	"image"
	"log"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/younwookim/bounce/internal/domain/entity"
	"github.com/younwookim/bounce/internal/domain/field"
	"github.com/younwookim/bounce/internal/infrastructure/config"
)

// Stats reports what one streaming update did
type Stats struct {
	Loaded   int
	Unloaded int
	Deferred int // tiles left for a later frame once the budget ran out
}

// Streamer keeps the tiles around the camera view loaded in the field
type Streamer struct {
	field   *field.Field
	source  Source
	level   *entity.Level
	cfg     config.StreamingConfig
	workers int
	now     func() time.Time
}

// NewStreamer creates a streamer that fills f from src
func NewStreamer(f *field.Field, src Source, level *entity.Level, cfg config.StreamingConfig) *Streamer {
	return &Streamer{
		field:   f,
		source:  src,
		level:   level,
		cfg:     cfg,
		workers: runtime.GOMAXPROCS(0),
		now:     time.Now,
	}
}

// Update loads every tile under the view, then the tiles within
// LoadRadius of it until the frame's load budget is spent, and finally
// unloads tiles further than UnloadRadius.
func (s *Streamer) Update(ctx context.Context, view image.Rectangle) (Stats, error) {
	var stats Stats
	start := s.now()

	visible := s.tileRect(view, 0)
	loaded, _, err := s.load(ctx, s.missing(visible, visible), time.Time{})
	stats.Loaded += loaded
	if err != nil {
		return stats, err
	}

	var deadline time.Time
	if s.cfg.MaxLoadTimeMs > 0 {
		deadline = start.Add(time.Duration(s.cfg.MaxLoadTimeMs * float64(time.Millisecond)))
	}
	pending := s.missing(s.tileRect(view, s.cfg.LoadRadius), visible)
	loaded, launched, err := s.load(ctx, pending, deadline)
	stats.Loaded += loaded
	if err != nil {
		return stats, err
	}
	stats.Deferred = len(pending) - launched
	if stats.Deferred > 0 {
		log.Printf("tile streaming: %.1fms budget spent, %d tiles deferred", s.cfg.MaxLoadTimeMs, stats.Deferred)
	}

	keep := s.tileRect(view, s.cfg.UnloadRadius)
	for _, c := range s.field.Loaded() {
		if image.Pt(c.X, c.Y).In(keep) {
			continue
		}
		if s.field.Unload(c) {
			stats.Unloaded++
		}
	}

	return stats, nil
}

// LoadAll loads every tile of the level
func (s *Streamer) LoadAll(ctx context.Context) (int, error) {
	all := image.Rect(0, 0, s.level.WidthTiles, s.level.HeightTiles)
	loaded, _, err := s.load(ctx, s.missing(all, all), time.Time{})
	return loaded, err
}

// tileRect returns the tiles overlapping view, grown by radius tiles and
// cut to the level
func (s *Streamer) tileRect(view image.Rectangle, radius int) image.Rectangle {
	x0, _ := entity.SplitCoord(view.Min.X)
	y0, _ := entity.SplitCoord(view.Min.Y)
	x1, _ := entity.SplitCoord(view.Max.X - 1)
	y1, _ := entity.SplitCoord(view.Max.Y - 1)

	r := image.Rect(x0-radius, y0-radius, x1+radius+1, y1+radius+1)
	return r.Intersect(image.Rect(0, 0, s.level.WidthTiles, s.level.HeightTiles))
}

// missing lists the unloaded tiles of r, nearest to center first
func (s *Streamer) missing(r, center image.Rectangle) []entity.TileCoord {
	var coords []entity.TileCoord
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := entity.TileCoord{X: x, Y: y}
			if !s.field.IsLoaded(c) {
				coords = append(coords, c)
			}
		}
	}

	slices.SortStableFunc(coords, func(a, b entity.TileCoord) int {
		return cmp.Compare(distance(a, center), distance(b, center))
	})
	return coords
}

// load fetches coords in parallel. No new load starts once deadline has
// passed; a zero deadline means no limit.
func (s *Streamer) load(ctx context.Context, coords []entity.TileCoord, deadline time.Time) (loaded, launched int, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	var n atomic.Int64
	for _, c := range coords {
		if !deadline.IsZero() && !s.now().Before(deadline) {
			break
		}
		if gctx.Err() != nil {
			break
		}
		launched++
		g.Go(func() error {
			tile, err := s.source.LoadTile(c)
			if err != nil {
				return fmt.Errorf("failed to stream tile %v: %w", c, err)
			}
			if s.field.Load(tile) {
				n.Add(1)
			}
			return nil
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return int(n.Load()), launched, err
}

// distance is the Chebyshev distance in tiles from c to the rectangle r
func distance(c entity.TileCoord, r image.Rectangle) int {
	dx := max(r.Min.X-c.X, 0, c.X-(r.Max.X-1))
	dy := max(r.Min.Y-c.Y, 0, c.Y-(r.Max.Y-1))
	return max(dx, dy)
}
