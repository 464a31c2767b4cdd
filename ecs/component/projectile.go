package component

// Projectile moves in a straight line and is swept against the physics world
// every tick. Owner is never hit.
type Projectile struct {
	Owner  uint64
	VelX   float64
	VelY   float64
	Damage int
	Mask   uint
}

var ProjectileComponent = NewComponent[Projectile]()
