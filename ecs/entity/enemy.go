package entity

import (
	"fmt"

	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/ecs/system"
	"github.com/milk9111/gungame/levels"
	"github.com/milk9111/gungame/logger"
	"github.com/milk9111/gungame/prefabs"
	"golang.org/x/image/colornames"
)

// NewEnemy loads the prefab named by the level spawn and builds it.
func NewEnemy(w *ecs.World, spawn levels.Entity) (ecs.Entity, error) {
	spec, err := prefabs.LoadEnemySpec(spawn.Prefab)
	if err != nil {
		return 0, fmt.Errorf("enemy: load spec: %w", err)
	}
	return BuildEnemy(w, spec, spawn.Prefab, spawn)
}

// BuildEnemy creates an enemy at the spawn point. Waypoints and the respawn
// point come from the spawn's props; everything else from spec.
func BuildEnemy(w *ecs.World, spec *prefabs.EnemySpec, prefab string, spawn levels.Entity) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("enemy: nil spec")
	}
	cfg, err := spec.AIConfig()
	if err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}
	cfg.Patrol.Waypoints = spawn.Waypoints()

	log := logger.Log.WithField("prefab", prefab)
	for _, warning := range append(spec.Warnings(), cfg.Warnings()...) {
		log.Warn("enemy: " + warning)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy tag: %w", err)
	}
	if err := addBody(w, e, spawn.Position(), spec.Collider, component.CategoryEnemy); err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}
	if spec.AimRig != (prefabs.AimRigSpec{}) {
		rig := spec.AimRig.Component()
		if err := ecs.Add(w, e, component.AimRigComponent.Kind(), &rig); err != nil {
			return 0, fmt.Errorf("enemy: add aim rig: %w", err)
		}
	}
	if err := addLook(w, e, spec.Color, colornames.Firebrick, spec.Health); err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}

	if spec.Respawn != nil {
		home := spawn.RespawnPoint()
		if err := ecs.Add(w, e, component.EnemyRespawnComponent.Kind(), &component.EnemyRespawn{
			SpawnX:      home.X,
			SpawnY:      home.Y,
			WaitTime:    spec.Respawn.WaitTime,
			BulletForce: spec.Respawn.BulletForce,
		}); err != nil {
			return 0, fmt.Errorf("enemy: add respawn: %w", err)
		}
	}

	if len(spec.Hooks.OnEnter) > 0 || len(spec.Hooks.OnExit) > 0 || spec.Script != "" {
		if err := ecs.Add(w, e, component.AIHooksComponent.Kind(), &component.AIHooks{
			OnEnter: spec.Hooks.OnEnter,
			OnExit:  spec.Hooks.OnExit,
			Script:  spec.Script,
		}); err != nil {
			return 0, fmt.Errorf("enemy: add hooks: %w", err)
		}
	}

	controller, err := system.NewController(w, e, cfg)
	if err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}
	if err := ecs.Add(w, e, component.AIComponent.Kind(), &component.AI{Prefab: prefab, Controller: controller}); err != nil {
		return 0, fmt.Errorf("enemy: add ai: %w", err)
	}
	return e, nil
}
