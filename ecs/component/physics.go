package component

import "github.com/jakecoffman/cp"

// Collider describes the box body the physics world builds for an entity.
type Collider struct {
	Width    float64
	Height   float64
	Mass     float64
	Category uint
	Mask     uint
	Static   bool
}

var ColliderComponent = NewComponent[Collider]()

// PhysicsBody stores the Chipmunk2D runtime data created from a Collider.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
