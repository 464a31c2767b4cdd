package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/ai"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
)

// GunSystem points the player's aim rig at the cursor and fires on input.
type GunSystem struct{}

func NewGunSystem() *GunSystem { return &GunSystem{} }

func (s *GunSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach4(w,
		component.InputComponent.Kind(),
		component.GunComponent.Kind(),
		component.AimRigComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, input *component.Input, gun *component.Gun, rig *component.AimRig, t *component.Transform) {
			aim := cp.Vector{X: input.AimX, Y: input.AimY}
			if input.AimX != t.X {
				setFacing(t, input.AimX > t.X)
			}
			rig.Rotation = localAimAngle(t, rig, aim)

			if !input.Fire || gun.Projectile == "" {
				return
			}
			angle := rigWorldAngle(t, rig)
			dir := cp.Vector{X: math.Cos(angle), Y: math.Sin(angle)}
			w.Events().Push(ecs.Event{Type: ecs.EventProjectileRequest, Data: ai.ProjectileRequest{
				Owner:    ai.EntityID(e),
				Prefab:   gun.Projectile,
				Position: rigMuzzle(t, rig),
				Rotation: angle,
				Velocity: dir.Mult(gun.BulletVelocity),
				Lifetime: gun.BulletRange,
			}})
		})
}
