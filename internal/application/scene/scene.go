// Package scene defines the Scene interface for game screens.
//
// The gameplay screen implements it both for live play and for watching
// a recorded replay; game.Game drives whichever scene is current.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game.
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update advances the scene by dt seconds.
	// Returns the next scene, or nil to stay; an error stops the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when the scene becomes current.
	OnEnter()

	// OnExit is called when the scene is left or the game closes.
	// Recordings are flushed and GPU images released here.
	OnExit()
}
