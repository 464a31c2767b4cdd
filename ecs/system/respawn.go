package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/common"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
)

// TriggerRespawn knocks e away from the bullet at bulletPos and starts its
// respawn timer. It reports false when e has no EnemyRespawn or is already
// waiting to respawn.
func TriggerRespawn(w *ecs.World, e ecs.Entity, bulletPos cp.Vector) bool {
	r, ok := ecs.Get(w, e, component.EnemyRespawnComponent.Kind())
	if !ok || r.Hit {
		return false
	}
	r.Hit = true
	r.Timer = r.WaitTime

	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil {
		return true
	}
	pos := body.Body.Position()
	dir := pos.Sub(bulletPos)
	if dir.LengthSq() == 0 {
		dir = cp.Vector{Y: -1}
	}
	body.Body.ApplyImpulseAtWorldPoint(dir.Normalize().Mult(r.BulletForce), pos)
	return true
}

// RespawnSystem teleports knocked-back enemies home once their timer runs
// out.
type RespawnSystem struct {
	DT float64
}

func NewRespawnSystem() *RespawnSystem { return &RespawnSystem{DT: common.FixedDelta} }

func (s *RespawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := s.DT
	if dt <= 0 {
		dt = common.FixedDelta
	}

	ecs.ForEach2(w, component.EnemyRespawnComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, r *component.EnemyRespawn, t *component.Transform) {
		if !r.Hit {
			return
		}
		r.Timer -= dt
		if r.Timer > 0 {
			return
		}

		spawn := cp.Vector{X: r.SpawnX, Y: r.SpawnY}
		w.PhysicsWorld().Teleport(e, spawn)
		t.X, t.Y = spawn.X, spawn.Y
		r.Hit = false
		r.Timer = 0
	})
}
