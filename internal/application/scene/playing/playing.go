// Package playing provides the main gameplay scene.
package playing

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/younwookim/bounce/internal/application/replay"
	"github.com/younwookim/bounce/internal/application/scene"
	"github.com/younwookim/bounce/internal/application/state"
	"github.com/younwookim/bounce/internal/application/system"
	"github.com/younwookim/bounce/internal/application/world"
	"github.com/younwookim/bounce/internal/domain/entity"
	"github.com/younwookim/bounce/internal/infrastructure/assets"
	"github.com/younwookim/bounce/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG      = color.RGBA{26, 26, 46, 255}
	colorNormal  = color.RGBA{255, 215, 0, 255}
	colorGrapple = color.RGBA{200, 200, 200, 255}
	colorOverlay = color.RGBA{0, 0, 0, 128}
	colorHUD     = color.RGBA{230, 230, 230, 255}
)

// Playing is the main gameplay scene
type Playing struct {
	ctx     context.Context
	config  *config.GameConfig
	world   *world.World
	state   state.GameState
	paused  state.GameState // state to resume after a pause
	screenW int
	screenH int

	ballColor color.RGBA
	tiles     map[entity.TileCoord]*ebiten.Image
	hudFace   *text.GoTextFace

	// Recording
	recorder       *replay.Recorder
	recordFilename string

	// Playback; replaces keyboard input when set
	replayer *replay.Replayer
}

// New creates the gameplay scene over a world that has already been reset
func New(ctx context.Context, cfg *config.GameConfig, w *world.World, recordPath string) (*Playing, error) {
	ballColor := color.RGBA{100, 200, 100, 255}
	if cfg.Ball != nil && cfg.Ball.Color != "" {
		c, err := assets.ParseHexColor(cfg.Ball.Color)
		if err != nil {
			return nil, err
		}
		ballColor = c
	}

	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load hud font: %w", err)
	}

	p := &Playing{
		ctx:            ctx,
		config:         cfg,
		world:          w,
		state:          state.StatePlaying,
		screenW:        cfg.Physics.Display.ScreenWidth,
		screenH:        cfg.Physics.Display.ScreenHeight,
		ballColor:      ballColor,
		tiles:          make(map[entity.TileCoord]*ebiten.Image),
		hudFace:        &text.GoTextFace{Source: fontSource, Size: 14},
		recordFilename: recordPath,
	}

	if recordPath != "" {
		p.recorder = replay.NewRecorder(w.Level.ID)
		log.Printf("Recording enabled: %s", recordPath)
	}

	return p, nil
}

// Watch switches the scene to playing back r from the spawn point
func (p *Playing) Watch(r *replay.Replayer) error {
	if err := p.world.Reset(p.ctx); err != nil {
		return fmt.Errorf("failed to reset for replay: %w", err)
	}
	r.Reset()
	p.replayer = r
	p.recorder = nil
	p.state = state.StateReplaying
	return nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	switch {
	case p.state.Steps():
		if err := p.updatePlaying(dt); err != nil {
			return nil, err
		}
	case p.state == state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = p.paused
		}
	case p.state == state.StateReplayDone:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			if err := p.Watch(p.replayer); err != nil {
				return nil, err
			}
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying(dt float64) error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.paused = p.state
		p.state = state.StatePaused
		return nil
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}

	input, dt, ok := p.nextInput(dt)
	if !ok {
		p.state = state.StateReplayDone
		log.Printf("Replay finished after %d frames", p.replayer.TotalFrames())
		return nil
	}
	if p.recorder != nil {
		p.recorder.RecordFrame(input, dt)
	}

	if err := p.world.Step(p.ctx, input, dt); err != nil {
		return fmt.Errorf("failed to step world: %w", err)
	}
	return nil
}

// nextInput reads this frame's input from the replay, or the keyboard
func (p *Playing) nextInput(dt float64) (system.InputState, float64, bool) {
	if p.replayer != nil {
		return p.replayer.GetInput()
	}
	return p.world.Input.GetInput(), dt, true
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	p.drawTiles(screen)
	p.drawGrapple(screen)
	p.drawBall(screen)
	p.drawHUD(screen)

	switch p.state {
	case state.StatePaused:
		p.drawPauseOverlay(screen)
	case state.StateReplayDone:
		p.drawReplayDoneOverlay(screen)
	}
}

// drawTiles draws the pixel plane of every loaded tile under the camera.
// Tile images are uploaded once and released when the tile unloads.
func (p *Playing) drawTiles(screen *ebiten.Image) {
	f := p.world.Field
	for c, img := range p.tiles {
		if !f.IsLoaded(c) {
			img.Deallocate()
			delete(p.tiles, c)
		}
	}

	view := p.world.Camera.View()
	cam := p.world.Camera.Position
	for _, c := range f.Loaded() {
		x, y := c.X*entity.TileSize, c.Y*entity.TileSize
		if x >= view.Max.X || y >= view.Max.Y || x+entity.TileSize <= view.Min.X || y+entity.TileSize <= view.Min.Y {
			continue
		}

		img, ok := p.tiles[c]
		if !ok {
			tile, loaded := f.Tile(c)
			if !loaded {
				continue
			}
			img = ebiten.NewImage(entity.TileSize, entity.TileSize)
			img.WritePixels(tile.Pixels)
			p.tiles[c] = img
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(x)-cam.X, float64(y)-cam.Y)
		screen.DrawImage(img, op)
	}
}

func (p *Playing) drawBall(screen *ebiten.Image) {
	ball := p.world.Ball
	sx, sy := p.world.Camera.ScreenPosition(ball.Center())
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(ball.Radius), p.ballColor, true)

	if ball.HasNormal {
		// Point from the center toward the surface
		nx, ny := entity.AngleVector(ball.NormalAngle)
		ex := sx - nx*ball.Radius
		ey := sy - ny*ball.Radius
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(ex), float32(ey), 2, colorNormal, true)
	}
}

func (p *Playing) drawGrapple(screen *ebiten.Image) {
	ball := p.world.Ball
	if !ball.Grappling {
		return
	}
	sx, sy := p.world.Camera.ScreenPosition(ball.Center())
	ax, ay := p.world.Camera.ScreenPosition(float64(ball.GrappleAnchor[0]), float64(ball.GrappleAnchor[1]))
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(ax), float32(ay), 1, colorGrapple, true)
	vector.StrokeCircle(screen, float32(ax), float32(ay), 4, 1, colorGrapple, true)
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	ball := p.world.Ball
	stats := p.world.StreamStats()

	status := fmt.Sprintf("Tool: %s   State: %s   Speed: %.0f   Tiles: %d",
		ball.Tool, ball.State, ball.Speed(), p.world.Field.Len())
	if stats.Deferred > 0 {
		status += fmt.Sprintf("   (%d deferred)", stats.Deferred)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 10)
	op.ColorScale.ScaleWithColor(colorHUD)
	text.Draw(screen, status, p.hudFace, op)

	controls := "A/D: Roll | W/S: Boost/Swim | Q: Tool | LClick: Grapple | R: Restart | ESC: Pause"
	switch {
	case p.replayer != nil:
		controls = fmt.Sprintf("Replay frame %d/%d | ESC: Pause", p.replayer.CurrentFrame(), p.replayer.TotalFrames())
	case p.recorder != nil:
		controls += " | F5: Save replay"
	}
	ebitenutil.DebugPrintAt(screen, controls, 10, p.screenH-20)
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), colorOverlay, false)

	msg := "PAUSED\n\nPress ESC to resume"
	ebitenutil.DebugPrintAt(screen, msg, p.screenW/2-50, p.screenH/2-20)
}

func (p *Playing) drawReplayDoneOverlay(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), colorOverlay, false)

	msg := fmt.Sprintf("REPLAY FINISHED\n\n%d frames\n\nPress R to watch again", p.replayer.TotalFrames())
	ebitenutil.DebugPrintAt(screen, msg, p.screenW/2-70, p.screenH/2-30)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
	for c, img := range p.tiles {
		img.Deallocate()
		delete(p.tiles, c)
	}
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
