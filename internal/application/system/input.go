package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSystem turns raw input into intents
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputState holds the current input state
type InputState struct {
	Left     bool
	Right    bool
	Up       bool
	Down     bool
	ToolNext bool
	MouseX   int
	MouseY   int
	// Left click attaches the grapple, release lets go
	GrapplePressed  bool
	GrappleReleased bool
	Restart         bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	mx, my := ebiten.CursorPosition()
	return InputState{
		Left:            ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:           ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:              ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:            ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		ToolNext:        inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyTab),
		MouseX:          mx,
		MouseY:          my,
		GrapplePressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		GrappleReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		Restart:         inpututil.IsKeyJustPressed(ebiten.KeyR),
	}
}

// Intents converts an input state into this frame's intents.
// The cursor is mapped to world pixels through the camera.
func (s *InputSystem) Intents(input InputState, cam *Camera) []Intent {
	var intents []Intent

	var move MoveIntent
	if input.Left {
		move.DX--
	}
	if input.Right {
		move.DX++
	}
	if input.Up {
		move.DY--
	}
	if input.Down {
		move.DY++
	}
	if move.DX != 0 || move.DY != 0 {
		intents = append(intents, move)
	}

	if input.ToolNext {
		intents = append(intents, ToolCycleIntent{})
	}

	if input.GrapplePressed {
		wx, wy := cam.WorldPosition(input.MouseX, input.MouseY)
		intents = append(intents, GrappleIntent{X: wx, Y: wy})
	}
	if input.GrappleReleased {
		intents = append(intents, GrappleIntent{Release: true})
	}

	return intents
}
