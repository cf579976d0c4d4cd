package config

// PhysicsConfig is the root config for physics.json
type PhysicsConfig struct {
	Display   DisplayConfig   `json:"display"`
	Physics   PhysicsSettings `json:"physics"`
	Movement  MovementConfig  `json:"movement"`
	Water     WaterConfig     `json:"water"`
	Contact   ContactConfig   `json:"contact"`
	Slope     SlopeConfig     `json:"slope"`
	Tools     ToolsConfig     `json:"tools"`
	Camera    CameraConfig    `json:"camera"`
	Streaming StreamingConfig `json:"streaming"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

type PhysicsSettings struct {
	Mass         float64 `json:"mass"`
	GravityX     float64 `json:"gravityX"`
	GravityY     float64 `json:"gravityY"`
	MaxVelocityX float64 `json:"maxVelocityX"`
	MaxVelocityY float64 `json:"maxVelocityY"`
	MinDeltaTime float64 `json:"minDeltaTime"` // Lower clamp on dt
	MaxDeltaTime float64 `json:"maxDeltaTime"`
}

type MovementConfig struct {
	MoveForce float64 `json:"moveForce"`
	SwimForce float64 `json:"swimForce"` // Float-up / sink-down, only while submerged
}

type WaterConfig struct {
	Buoyancy float64 `json:"buoyancy"` // Fraction of gravity pushed back up
	Drag     float64 `json:"drag"`
}

// ContactConfig configures the bounce response
type ContactConfig struct {
	MaxElasticity       float64 `json:"maxElasticity"`
	MinElasticity       float64 `json:"minElasticity"`
	StopBouncingSpeed   float64 `json:"stopBouncingSpeed"`   // Speed along gravity below which the ball settles
	FlatGroundTolerance float64 `json:"flatGroundTolerance"` // Degrees
	MinSlopeDeflection  float64 `json:"minSlopeDeflection"`  // Degrees, smaller deflections lose no speed
}

// SlopeConfig configures slope detection and tracking
type SlopeConfig struct {
	Tolerance float64 `json:"tolerance"` // Degrees from perpendicular
	MinOffset int     `json:"minOffset"` // Pixels the ball may drop onto the slope per step
	MaxOffset int     `json:"maxOffset"` // Pixels the ball may climb per step
}

type ToolsConfig struct {
	BoosterForce     float64 `json:"boosterForce"`
	GrappleStiffness float64 `json:"grappleStiffness"`
	GrappleMaxForce  float64 `json:"grappleMaxForce"`
	GrappleRange     float64 `json:"grappleRange"`
}

// CameraConfig sets the on-screen box the ball is kept inside
type CameraConfig struct {
	MarginX int `json:"marginX"`
	MarginY int `json:"marginY"`
}

type StreamingConfig struct {
	LoadRadius    int     `json:"loadRadius"`   // Tiles around the view to keep loaded
	UnloadRadius  int     `json:"unloadRadius"` // Tiles beyond which loaded tiles are dropped
	MaxLoadTimeMs float64 `json:"maxLoadTimeMs"`
}

// DefaultPhysics returns the built-in tuning. physics.json is decoded on
// top of it, so any field missing from the file keeps its default.
func DefaultPhysics() *PhysicsConfig {
	return &PhysicsConfig{
		Display: DisplayConfig{
			ScreenWidth:  1280,
			ScreenHeight: 720,
			Scale:        1,
			Framerate:    60,
		},
		Physics: PhysicsSettings{
			Mass:         1,
			GravityX:     0,
			GravityY:     400,
			MaxVelocityX: 1500,
			MaxVelocityY: 1500,
			MinDeltaTime: 1.0 / 1000,
			MaxDeltaTime: 1.0 / 20,
		},
		Movement: MovementConfig{
			MoveForce: 300,
			SwimForce: 500,
		},
		Water: WaterConfig{
			Buoyancy: 1.2,
			Drag:     2,
		},
		Contact: ContactConfig{
			MaxElasticity:       1.0,
			MinElasticity:       0.35,
			StopBouncingSpeed:   150,
			FlatGroundTolerance: 10,
			MinSlopeDeflection:  3,
		},
		Slope: SlopeConfig{
			Tolerance: 20,
			MinOffset: 2,
			MaxOffset: 10,
		},
		Tools: ToolsConfig{
			BoosterForce:     600,
			GrappleStiffness: 8,
			GrappleMaxForce:  1200,
			GrappleRange:     400,
		},
		Camera: CameraConfig{
			MarginX: 400,
			MarginY: 250,
		},
		Streaming: StreamingConfig{
			LoadRadius:    2,
			UnloadRadius:  4,
			MaxLoadTimeMs: 4,
		},
	}
}
