package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/prefabs"
	"golang.org/x/image/colornames"
)

// NewPlayer loads a player prefab and builds it at pos.
func NewPlayer(w *ecs.World, prefab string, pos cp.Vector) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return BuildPlayer(w, spec, pos)
}

func BuildPlayer(w *ecs.World, spec *prefabs.PlayerSpec, pos cp.Vector) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:           spec.MoveSpeed,
		JumpSpeed:           spec.JumpSpeed,
		GroundCheckDistance: spec.GroundCheckDistance,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{AimX: pos.X + 1, AimY: pos.Y}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := addBody(w, e, pos, spec.Collider, component.CategoryPlayer); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	rig := spec.AimRig.Component()
	if err := ecs.Add(w, e, component.AimRigComponent.Kind(), &rig); err != nil {
		return 0, fmt.Errorf("player: add aim rig: %w", err)
	}
	if err := ecs.Add(w, e, component.GunComponent.Kind(), &component.Gun{
		Projectile:     spec.Gun.Projectile,
		BulletVelocity: spec.Gun.BulletVelocity,
		BulletRange:    spec.Gun.BulletRange,
	}); err != nil {
		return 0, fmt.Errorf("player: add gun: %w", err)
	}
	if err := addLook(w, e, spec.Color, colornames.Steelblue, spec.Health); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return e, nil
}
