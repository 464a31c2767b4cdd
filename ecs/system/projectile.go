package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/ai"
	"github.com/milk9111/gungame/common"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/logger"
	"github.com/milk9111/gungame/prefabs"
	"golang.org/x/image/colornames"
)

// ProjectileSystem turns projectile requests into bullet entities and sweeps
// live bullets against the physics world.
type ProjectileSystem struct {
	DT float64

	specs map[string]*prefabs.ProjectileSpec
}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{DT: common.FixedDelta, specs: map[string]*prefabs.ProjectileSpec{}}
}

// Invalidate forgets a cached projectile prefab so the next request reloads
// it.
func (s *ProjectileSystem) Invalidate(name string) {
	if s == nil {
		return
	}
	delete(s.specs, name)
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := s.DT
	if dt <= 0 {
		dt = common.FixedDelta
	}

	for _, evt := range w.Events().DrainType(ecs.EventProjectileRequest) {
		req, ok := evt.Data.(ai.ProjectileRequest)
		if !ok {
			continue
		}
		if _, err := s.Spawn(w, req); err != nil {
			logger.Log.WithError(err).WithField("prefab", req.Prefab).Warn("projectile: spawn")
		}
	}

	pw := w.PhysicsWorld()
	var spent []ecs.Entity
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ProjectileComponent.Kind(), func(e ecs.Entity, t *component.Transform, p *component.Projectile) {
		from := cp.Vector{X: t.X, Y: t.Y}
		to := from.Add(cp.Vector{X: p.VelX, Y: p.VelY}.Mult(dt))
		hit, ok := pw.Segment(from, to, p.Mask, ecs.Entity(p.Owner))
		if !ok {
			t.X, t.Y = to.X, to.Y
			return
		}
		t.X, t.Y = hit.Point.X, hit.Point.Y
		s.impact(w, p, hit, from)
		spent = append(spent, e)
	})
	for _, e := range spent {
		ecs.DestroyEntity(w, e)
	}
}

// Spawn creates one bullet entity for req.
func (s *ProjectileSystem) Spawn(w *ecs.World, req ai.ProjectileRequest) (ecs.Entity, error) {
	spec, err := s.spec(req.Prefab)
	if err != nil {
		return 0, err
	}
	mask, err := spec.HitMask()
	if err != nil {
		return 0, err
	}

	e := ecs.CreateEntity(w)
	frames := int(math.Ceil(req.Lifetime * common.TPS))
	if frames < 1 {
		frames = 1
	}
	size := spec.Size
	if size <= 0 {
		size = 0.2
	}

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        req.Position.X,
		Y:        req.Position.Y,
		ScaleX:   size,
		ScaleY:   size,
		Rotation: req.Rotation,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Owner:  uint64(req.Owner),
		VelX:   req.Velocity.X,
		VelY:   req.Velocity.Y,
		Damage: spec.Damage,
		Mask:   mask,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: frames}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: spec.Color.NRGBA(nrgba(colornames.Gold)),
	}); err != nil {
		return 0, err
	}
	return e, nil
}

func (s *ProjectileSystem) spec(name string) (*prefabs.ProjectileSpec, error) {
	if s.specs == nil {
		s.specs = map[string]*prefabs.ProjectileSpec{}
	}
	if spec, ok := s.specs[name]; ok {
		return spec, nil
	}
	spec, err := prefabs.LoadProjectileSpec(name)
	if err != nil {
		return nil, err
	}
	s.specs[name] = spec
	return spec, nil
}

func (s *ProjectileSystem) impact(w *ecs.World, p *component.Projectile, hit ecs.RayHit, from cp.Vector) {
	target := hit.Entity
	if !target.Valid() || !w.IsAlive(target) {
		return
	}
	if ecs.Has(w, target, component.HealthComponent.Kind()) {
		w.Events().Push(ecs.Event{Type: ecs.EventDamageRequest, Data: component.DamageRequest{
			Target: uint64(target),
			Source: p.Owner,
			Amount: p.Damage,
		}})
	}
	TriggerRespawn(w, target, from)
}
