package component

// Gun fires Projectile along the aim rig on the fire input.
type Gun struct {
	Projectile     string
	BulletVelocity float64
	// BulletRange is the bullet lifetime in seconds.
	BulletRange float64
}

var GunComponent = NewComponent[Gun]()
