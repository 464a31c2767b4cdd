package ai

import (
	"math"

	"github.com/jakecoffman/cp"
)

func (c *Controller) attack(p Perception, dt float64) {
	c.setVelocityX(0)
	c.face(p.Target.X - p.Self.X)
	c.aim.RotateToward(p.Target, dt)

	if c.cfg.IsRanged() {
		c.tryFire(p)
		return
	}
	c.tryMelee()
}

// tryFire spawns a projectile toward the target when the fire cooldown has
// elapsed. It reports whether a projectile was requested.
func (c *Controller) tryFire(p Perception) bool {
	if !c.fireCooldown.Ready() {
		return false
	}

	origin := p.Self
	if c.deps.Muzzle != nil {
		origin = c.deps.Muzzle.Position()
	}
	delta := p.Target.Sub(origin)
	var dir cp.Vector
	if l := delta.Length(); l > 1e-9 {
		dir = delta.Mult(1 / l)
	} else if c.facingRight {
		dir = cp.Vector{X: 1}
	} else {
		dir = cp.Vector{X: -1}
	}

	c.deps.Spawner.Spawn(ProjectileRequest{
		Owner:    c.deps.Self,
		Prefab:   c.cfg.Ranged.Projectile,
		Position: origin,
		Rotation: math.Atan2(dir.Y, dir.X),
		Velocity: dir.Mult(c.cfg.Ranged.BulletSpeed),
		Lifetime: c.cfg.Ranged.Lifetime,
	})
	c.fireCooldown.Reset(1 / math.Max(Epsilon, c.cfg.Ranged.FireRate))
	return true
}

// tryMelee hits the target if the melee cooldown has elapsed and the target
// is still inside the attack range. The cooldown restarts either way.
// It reports whether damage was requested.
func (c *Controller) tryMelee() bool {
	if !c.meleeCooldown.Ready() {
		return false
	}
	c.meleeCooldown.Reset(c.cfg.Melee.Rate)

	dist, ok := c.DistanceTo(c.target)
	if !ok || dist > c.cfg.AttackRange {
		return false
	}
	c.deps.Damage.TakeDamage(c.target.ID(), c.cfg.Melee.Damage)
	return true
}
