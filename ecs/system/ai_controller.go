package system

import (
	"github.com/milk9111/gungame/ai"
	"github.com/milk9111/gungame/common"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/logger"
	"github.com/milk9111/gungame/prefabs"
)

// AISystem ticks every agent's controller once per update and runs the
// agent's hooks when its state changes.
type AISystem struct {
	DT float64

	attached    map[*ai.Controller]bool
	scriptCache map[ecs.Entity]*aiScriptRuntime
	registered  bool
}

func NewAISystem() *AISystem {
	return &AISystem{
		DT:          common.FixedDelta,
		attached:    map[*ai.Controller]bool{},
		scriptCache: map[ecs.Entity]*aiScriptRuntime{},
	}
}

func (s *AISystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if !s.registered {
		w.OnDestroy(s.forget(w))
		s.registered = true
	}

	dt := s.DT
	if dt <= 0 {
		dt = common.FixedDelta
	}

	ecs.ForEach(w, component.AIComponent.Kind(), func(e ecs.Entity, aiComp *component.AI) {
		c := aiComp.Controller
		if c == nil || c.Stopped() {
			return
		}
		s.attach(w, e, c)
		c.Tick(dt)
	})
}

// attach hooks the controller's state changes into the world once.
func (s *AISystem) attach(w *ecs.World, e ecs.Entity, c *ai.Controller) {
	if s.attached[c] {
		return
	}
	s.attached[c] = true
	c.OnStateChange(func(from, to ai.State) {
		s.onStateChange(w, e, from, to)
	})
}

func (s *AISystem) onStateChange(w *ecs.World, e ecs.Entity, from, to ai.State) {
	logger.Log.WithFields(map[string]any{
		"entity": e.String(),
		"from":   from.String(),
		"to":     to.String(),
	}).Debug("ai: state change")

	w.Events().Push(ecs.Event{Type: ecs.EventStateChanged, Data: ecs.StateChanged{
		Entity: e,
		From:   from.String(),
		To:     to.String(),
	}})

	hooks, ok := ecs.Get(w, e, component.AIHooksComponent.Kind())
	if !ok {
		return
	}
	ctx := &AIActionContext{World: w, Entity: e, From: from, To: to}
	if aiComp, ok := ecs.Get(w, e, component.AIComponent.Kind()); ok {
		ctx.Controller = aiComp.Controller
	}

	runActions(ctx, hooks.OnExit[from.String()])
	runActions(ctx, hooks.OnEnter[to.String()])

	if hooks.Script != "" {
		s.runScript(ctx, hooks.Script)
	}
}

// Invalidate drops cached scripts for e so the next state change reloads
// them.
func (s *AISystem) Invalidate(e ecs.Entity) {
	if s == nil {
		return
	}
	delete(s.scriptCache, e)
}

// InvalidateScript drops every cached runtime compiled from path.
func (s *AISystem) InvalidateScript(path string) {
	if s == nil {
		return
	}
	name := prefabs.NameFromPath(path)
	for e, rt := range s.scriptCache {
		if rt != nil && prefabs.NameFromPath(rt.scriptPath) == name {
			delete(s.scriptCache, e)
		}
	}
}

func (s *AISystem) forget(w *ecs.World) func(ecs.Entity) {
	return func(e ecs.Entity) {
		delete(s.scriptCache, e)
		if aiComp, ok := ecs.Get(w, e, component.AIComponent.Kind()); ok && aiComp.Controller != nil {
			delete(s.attached, aiComp.Controller)
		}
	}
}
