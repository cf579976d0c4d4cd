package system

import (
	"image"
	"math"

	dmath "github.com/yohamta/donburi/features/math"

	"github.com/younwookim/bounce/internal/domain/entity"
	"github.com/younwookim/bounce/internal/infrastructure/config"
)

// Camera pans the map so the ball stays inside a box on screen.
// Position is the world pixel shown at the screen's top-left corner.
type Camera struct {
	Position dmath.Vec2

	screenW, screenH float64
	marginX, marginY float64
	worldW, worldH   float64
}

// NewCamera creates a camera for a screen of the given size over a world
// of worldW x worldH pixels
func NewCamera(cfg *config.PhysicsConfig, worldW, worldH int) *Camera {
	return &Camera{
		screenW: float64(cfg.Display.ScreenWidth),
		screenH: float64(cfg.Display.ScreenHeight),
		marginX: float64(cfg.Camera.MarginX),
		marginY: float64(cfg.Camera.MarginY),
		worldW:  float64(worldW),
		worldH:  float64(worldH),
	}
}

// CenterOn jumps the camera so the ball is in the middle of the screen
func (c *Camera) CenterOn(ball *entity.Ball) {
	cx, cy := ball.Center()
	c.Position.X = cx - c.screenW/2
	c.Position.Y = cy - c.screenH/2
	c.clamp()
}

// Follow pans just enough to bring the ball's bounding box back inside
// the margins
func (c *Camera) Follow(ball *entity.Ball) {
	size := ball.Radius * 2

	if left := ball.X - c.Position.X; left < c.marginX {
		c.Position.X = ball.X - c.marginX
	} else if right := ball.X + size - c.Position.X; right > c.screenW-c.marginX {
		c.Position.X = ball.X + size - (c.screenW - c.marginX)
	}

	if top := ball.Y - c.Position.Y; top < c.marginY {
		c.Position.Y = ball.Y - c.marginY
	} else if bottom := ball.Y + size - c.Position.Y; bottom > c.screenH-c.marginY {
		c.Position.Y = ball.Y + size - (c.screenH - c.marginY)
	}

	c.clamp()
}

// clamp keeps the view inside the world; a world smaller than the screen
// is pinned to its top-left corner
func (c *Camera) clamp() {
	c.Position.X = math.Max(0, math.Min(c.worldW-c.screenW, c.Position.X))
	c.Position.Y = math.Max(0, math.Min(c.worldH-c.screenH, c.Position.Y))
}

// ScreenPosition converts a world position to screen coordinates
func (c *Camera) ScreenPosition(x, y float64) (float64, float64) {
	return x - c.Position.X, y - c.Position.Y
}

// WorldPosition converts a screen position to world pixel coordinates
func (c *Camera) WorldPosition(sx, sy int) (int, int) {
	return sx + int(math.Floor(c.Position.X)), sy + int(math.Floor(c.Position.Y))
}

// View returns the world pixels currently on screen
func (c *Camera) View() image.Rectangle {
	x, y := int(math.Floor(c.Position.X)), int(math.Floor(c.Position.Y))
	return image.Rect(x, y, x+int(c.screenW), y+int(c.screenH))
}
