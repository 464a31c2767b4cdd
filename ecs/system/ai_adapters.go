package system

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/ai"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
)

var ErrNoTransform = errors.New("ai: entity has no transform")

// physicsQuery answers controller ray queries from the physics world,
// skipping the agent's own shape.
type physicsQuery struct {
	pw   *ecs.PhysicsWorld
	self ecs.Entity
}

func (q physicsQuery) Raycast(origin, dir cp.Vector, maxDist float64, filter ai.Categories) (ai.Hit, bool) {
	hit, ok := q.pw.Raycast(origin, dir, maxDist, uint(filter), q.self)
	if !ok {
		return ai.Hit{}, false
	}
	return ai.Hit{Point: hit.Point, Entity: ai.EntityID(hit.Entity)}, true
}

// bodyAdapter moves an entity through its physics body. Facing is the sign
// of Transform.ScaleX.
type bodyAdapter struct {
	w *ecs.World
	e ecs.Entity
}

func (b bodyAdapter) Position() cp.Vector {
	if body, ok := ecs.Get(b.w, b.e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		return body.Body.Position()
	}
	if t, ok := ecs.Get(b.w, b.e, component.TransformComponent.Kind()); ok {
		return cp.Vector{X: t.X, Y: t.Y}
	}
	return cp.Vector{}
}

func (b bodyAdapter) Velocity() cp.Vector {
	if body, ok := ecs.Get(b.w, b.e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		return body.Body.Velocity()
	}
	return cp.Vector{}
}

func (b bodyAdapter) SetVelocity(v cp.Vector) {
	if body, ok := ecs.Get(b.w, b.e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetVelocityVector(v)
	}
}

func (b bodyAdapter) SetFacing(right bool) {
	t, ok := ecs.Get(b.w, b.e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	setFacing(t, right)
}

func setFacing(t *component.Transform, right bool) {
	scale := t.ScaleX
	if scale < 0 {
		scale = -scale
	}
	if scale == 0 {
		scale = 1
	}
	if right {
		t.ScaleX = scale
	} else {
		t.ScaleX = -scale
	}
}

// jointAdapter exposes an AimRig as the controller's aim joint.
type jointAdapter struct {
	w *ecs.World
	e ecs.Entity
}

func (j jointAdapter) parts() (*component.Transform, *component.AimRig, bool) {
	t, okT := ecs.Get(j.w, j.e, component.TransformComponent.Kind())
	rig, okR := ecs.Get(j.w, j.e, component.AimRigComponent.Kind())
	return t, rig, okT && okR
}

func (j jointAdapter) Position() cp.Vector {
	t, rig, ok := j.parts()
	if !ok {
		return cp.Vector{}
	}
	return rigPivot(t, rig)
}

func (j jointAdapter) LocalRotation() float64 {
	_, rig, ok := j.parts()
	if !ok {
		return 0
	}
	return rig.Rotation
}

func (j jointAdapter) SetLocalRotation(rad float64) {
	if _, rig, ok := j.parts(); ok {
		rig.Rotation = rad
	}
}

func (j jointAdapter) Mirrored() bool {
	t, _, ok := j.parts()
	return ok && !t.FacingRight()
}

type muzzleLocator struct {
	jointAdapter
}

func (m muzzleLocator) Position() cp.Vector {
	t, rig, ok := m.parts()
	if !ok {
		return cp.Vector{}
	}
	return rigMuzzle(t, rig)
}

// damageSink queues damage for the damage system.
type damageSink struct {
	w      *ecs.World
	source ecs.Entity
}

func (d damageSink) TakeDamage(target ai.EntityID, amount int) {
	d.w.Events().Push(ecs.Event{Type: ecs.EventDamageRequest, Data: component.DamageRequest{
		Target: uint64(target),
		Source: uint64(d.source),
		Amount: amount,
	}})
}

// eventSpawner queues projectile requests for the projectile system.
type eventSpawner struct {
	w *ecs.World
}

func (s eventSpawner) Spawn(req ai.ProjectileRequest) {
	s.w.Events().Push(ecs.Event{Type: ecs.EventProjectileRequest, Data: req})
}

// entityTarget tracks another entity. It reports no position once the
// entity is destroyed.
type entityTarget struct {
	w *ecs.World
	e ecs.Entity
}

func (t entityTarget) ID() ai.EntityID {
	return ai.EntityID(t.e)
}

func (t entityTarget) Position() (cp.Vector, bool) {
	if !t.w.IsAlive(t.e) {
		return cp.Vector{}, false
	}
	return bodyAdapter{w: t.w, e: t.e}.Position(), true
}

// PlayerDiscovery resolves the first entity tagged as the player.
func PlayerDiscovery(w *ecs.World) ai.Discovery {
	return ai.DiscoveryFunc(func() ai.Target {
		e, ok := w.First(component.PlayerTagComponent.Kind())
		if !ok {
			return nil
		}
		return entityTarget{w: w, e: e}
	})
}

// NewController wires a controller for e to the world: physics queries,
// body, aim rig, muzzle, damage and projectile queues, and the player as
// target.
func NewController(w *ecs.World, e ecs.Entity, cfg ai.Config) (*ai.Controller, error) {
	if w == nil || !w.IsAlive(e) {
		return nil, fmt.Errorf("ai: new controller: %w", component.ErrEntityNotAlive)
	}
	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		return nil, fmt.Errorf("ai: entity %v: %w", e, ErrNoTransform)
	}

	deps := ai.Deps{
		Self:    ai.EntityID(e),
		Body:    bodyAdapter{w: w, e: e},
		Target:  PlayerDiscovery(w),
		Damage:  damageSink{w: w, source: e},
		Spawner: eventSpawner{w: w},
	}
	if pw := w.PhysicsWorld(); pw != nil {
		deps.World = physicsQuery{pw: pw, self: e}
	}
	if rig, ok := ecs.Get(w, e, component.AimRigComponent.Kind()); ok {
		joint := jointAdapter{w: w, e: e}
		deps.Joint = joint
		if rig.MuzzleDistance > 0 {
			deps.Muzzle = muzzleLocator{joint}
		}
	}

	c, err := ai.New(cfg, deps)
	if err != nil {
		return nil, fmt.Errorf("ai: entity %v: %w", e, err)
	}
	return c, nil
}
