package system

import (
	"strings"

	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/logger"
	"github.com/milk9111/gungame/prefabs"
)

// PrefabReloadSystem applies prefab and script edits reported on Changes to
// the live world. Enemies keep their level waypoints across a reload.
type PrefabReloadSystem struct {
	Changes     <-chan string
	AI          *AISystem
	Projectiles *ProjectileSystem
}

func NewPrefabReloadSystem(changes <-chan string, aiSys *AISystem, projectiles *ProjectileSystem) *PrefabReloadSystem {
	return &PrefabReloadSystem{Changes: changes, AI: aiSys, Projectiles: projectiles}
}

func (s *PrefabReloadSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.Changes == nil {
		return
	}
	for {
		select {
		case path, ok := <-s.Changes:
			if !ok {
				s.Changes = nil
				return
			}
			s.Reload(w, path)
		default:
			return
		}
	}
}

// Reload applies one changed file.
func (s *PrefabReloadSystem) Reload(w *ecs.World, path string) {
	name := prefabs.NameFromPath(path)
	log := logger.Log.WithField("prefab", name)

	if strings.HasPrefix(name, "scripts/") {
		s.AI.InvalidateScript(name)
		log.Info("prefab reload: script invalidated")
		w.Events().Push(ecs.Event{Type: ecs.EventPrefabChanged, Data: name})
		return
	}

	s.Projectiles.Invalidate(name)

	var targets []ecs.Entity
	ecs.ForEach(w, component.AIComponent.Kind(), func(e ecs.Entity, aiComp *component.AI) {
		if aiComp.Prefab == name && aiComp.Controller != nil {
			targets = append(targets, e)
		}
	})
	if len(targets) > 0 {
		if err := s.reloadEnemies(w, name, targets); err != nil {
			log.WithError(err).Warn("prefab reload: enemy spec rejected")
			return
		}
		log.WithField("entities", len(targets)).Info("prefab reload: enemies reconfigured")
	}

	w.Events().Push(ecs.Event{Type: ecs.EventPrefabChanged, Data: name})
}

func (s *PrefabReloadSystem) reloadEnemies(w *ecs.World, name string, targets []ecs.Entity) error {
	spec, err := prefabs.LoadEnemySpec(name)
	if err != nil {
		return err
	}
	cfg, err := spec.AIConfig()
	if err != nil {
		return err
	}
	log := logger.Log.WithField("prefab", name)
	for _, warning := range spec.Warnings() {
		log.Warn("prefab reload: " + warning)
	}

	for _, e := range targets {
		aiComp, ok := ecs.Get(w, e, component.AIComponent.Kind())
		if !ok {
			continue
		}
		next := cfg
		next.Patrol.Waypoints = aiComp.Controller.Config().Patrol.Waypoints
		for _, warning := range next.Warnings() {
			log.WithField("entity", e.String()).Warn("prefab reload: " + warning)
		}
		if err := aiComp.Controller.Reconfigure(next); err != nil {
			return err
		}

		if hooks, ok := ecs.Get(w, e, component.AIHooksComponent.Kind()); ok {
			hooks.OnEnter = spec.Hooks.OnEnter
			hooks.OnExit = spec.Hooks.OnExit
			hooks.Script = spec.Script
		}
		if a, ok := ecs.Get(w, e, component.AppearanceComponent.Kind()); ok {
			a.Color = spec.Color.NRGBA(a.Color)
		}
		s.AI.Invalidate(e)
	}
	return nil
}
