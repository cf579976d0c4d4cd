package system

// Intent represents an action the player wants the ball to perform
type Intent interface {
	isIntent()
}

// MoveIntent is the held direction this frame.
// DX: -1 left, 1 right. DY: -1 float up, 1 sink down.
type MoveIntent struct {
	DX, DY int
}

func (MoveIntent) isIntent() {}

// ToolCycleIntent switches to the next tool
type ToolCycleIntent struct{}

func (ToolCycleIntent) isIntent() {}

// GrappleIntent attaches the grapple at a world pixel, or releases it
type GrappleIntent struct {
	X, Y    int
	Release bool
}

func (GrappleIntent) isIntent() {}
