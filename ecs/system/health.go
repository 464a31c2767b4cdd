package system

import (
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/logger"
)

// HealthSystem stops and removes entities whose health reached zero.
type HealthSystem struct{}

func NewHealthSystem() *HealthSystem { return &HealthSystem{} }

func (s *HealthSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var dead []ecs.Entity
	ecs.ForEach(w, component.HealthComponent.Kind(), func(e ecs.Entity, h *component.Health) {
		if h.IsDead() {
			dead = append(dead, e)
		}
	})

	for _, e := range dead {
		if aiComp, ok := ecs.Get(w, e, component.AIComponent.Kind()); ok {
			aiComp.Controller.Stop()
		}
		logger.Log.WithField("entity", e.String()).Info("health: entity died")
		ecs.DestroyEntity(w, e)
	}
}
