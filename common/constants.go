package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TileSize is the on-screen size of one world unit in pixels.
	TileSize = 32

	// Gravity in world units per second squared. Positive Y points down.
	Gravity = 30.0

	TPS          = 60
	FixedDelta   = 1.0 / TPS
	PhysicsSteps = 2
)
