package system

import (
	"fmt"
	"sort"

	"github.com/milk9111/gungame/ai"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/logger"
	"github.com/milk9111/gungame/prefabs"
	"github.com/sirupsen/logrus"
)

type Action func(ctx *AIActionContext)

// AIActionContext is what a hook action sees: the agent and the transition
// that triggered it.
type AIActionContext struct {
	World      *ecs.World
	Entity     ecs.Entity
	Controller *ai.Controller
	From       ai.State
	To         ai.State
}

func (ctx *AIActionContext) log() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"entity": ctx.Entity.String(),
		"from":   ctx.From.String(),
		"to":     ctx.To.String(),
	})
}

const defaultFlashFrames = 6

var actionRegistry = map[string]func(any) Action{
	"log": func(arg any) Action {
		msg := fmt.Sprint(arg)
		return func(ctx *AIActionContext) {
			if ctx == nil {
				return
			}
			ctx.log().Info("ai: " + msg)
		}
	},
	"flash": func(arg any) Action {
		frames, err := prefabs.DecodeComponentSpec[int](arg)
		if err != nil || frames <= 0 {
			frames = defaultFlashFrames
		}
		return func(ctx *AIActionContext) {
			if ctx == nil {
				return
			}
			flash(ctx.World, ctx.Entity, frames)
		}
	},
	"stop_x": func(_ any) Action {
		return func(ctx *AIActionContext) {
			if ctx == nil {
				return
			}
			body := bodyAdapter{w: ctx.World, e: ctx.Entity}
			v := body.Velocity()
			v.X = 0
			body.SetVelocity(v)
		}
	},
}

// ActionNames lists the registered hook actions.
func ActionNames() []string {
	out := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// runActions runs a hook list. Each item maps one action name to its
// argument; unknown names are logged and skipped.
func runActions(ctx *AIActionContext, items []map[string]any) {
	for _, item := range items {
		names := make([]string, 0, len(item))
		for name := range item {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			maker, ok := actionRegistry[name]
			if !ok {
				ctx.log().WithField("action", name).Warn("ai: unknown hook action")
				continue
			}
			maker(item[name])(ctx)
		}
	}
}

func flash(w *ecs.World, e ecs.Entity, frames int) {
	_ = ecs.Add(w, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{
		Frames:   frames,
		Interval: 2,
	})
}
