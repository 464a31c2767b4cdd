package system

import (
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/logger"
)

// DamageSystem applies queued damage requests to Health.
type DamageSystem struct{}

func NewDamageSystem() *DamageSystem { return &DamageSystem{} }

func (s *DamageSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range w.Events().DrainType(ecs.EventDamageRequest) {
		req, ok := evt.Data.(component.DamageRequest)
		if !ok || req.Amount <= 0 {
			continue
		}
		target := ecs.Entity(req.Target)
		h, ok := ecs.Get(w, target, component.HealthComponent.Kind())
		if !ok {
			continue
		}
		h.ApplyDamage(req.Amount)
		flash(w, target, defaultFlashFrames)

		logger.Log.WithFields(map[string]any{
			"target": target.String(),
			"source": ecs.Entity(req.Source).String(),
			"amount": req.Amount,
			"health": h.Current,
		}).Debug("damage: applied")
	}
}
