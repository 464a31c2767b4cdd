package entity

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/prefabs"
)

// addBody adds a transform and collider and, when the world has physics,
// creates the body right away so controllers see it on their first tick.
func addBody(w *ecs.World, e ecs.Entity, pos cp.Vector, spec prefabs.ColliderSpec, category uint) error {
	t := &component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return fmt.Errorf("add transform: %w", err)
	}
	c := &component.Collider{
		Width:    spec.Width,
		Height:   spec.Height,
		Mass:     spec.Mass,
		Category: category,
	}
	if c.Width <= 0 {
		c.Width = 1
	}
	if c.Height <= 0 {
		c.Height = 1
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), c); err != nil {
		return fmt.Errorf("add collider: %w", err)
	}
	if body := w.PhysicsWorld().EnsureBody(e, t, c); body != nil {
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
			return fmt.Errorf("add physics body: %w", err)
		}
	}
	return nil
}

func addLook(w *ecs.World, e ecs.Entity, clr *prefabs.YAMLColor, fallback color.Color, health int) error {
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: clr.NRGBA(color.NRGBAModel.Convert(fallback).(color.NRGBA)),
	}); err != nil {
		return fmt.Errorf("add appearance: %w", err)
	}
	if health > 0 {
		if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Max: health, Current: health}); err != nil {
			return fmt.Errorf("add health: %w", err)
		}
	}
	return nil
}
