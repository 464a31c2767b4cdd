package system

import (
	"github.com/milk9111/gungame/common"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
)

// PhysicsSystem creates bodies for new colliders, steps the space and copies
// body positions back into transforms.
type PhysicsSystem struct {
	DT    float64
	Steps int
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{DT: common.FixedDelta, Steps: common.PhysicsSteps}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ps.syncEntities(w, pw)

	steps := ps.Steps
	if steps < 1 {
		steps = 1
	}
	dt := ps.DT
	if dt <= 0 {
		dt = common.FixedDelta
	}
	for i := 0; i < steps; i++ {
		pw.Step(dt / float64(steps))
	}

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World, pw *ecs.PhysicsWorld) {
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, t *component.Transform, c *component.Collider) {
		if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			return
		}
		if body := pw.EnsureBody(e, t, c); body != nil {
			_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
		}
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, b *component.PhysicsBody) {
		if b.Body == nil {
			return
		}
		p := b.Body.Position()
		t.X, t.Y = p.X, p.Y
	})
}
