package system

import (
	"sort"

	"github.com/milk9111/gungame/ai"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
)

// AgentSnapshot is one agent's controller state tagged with its prefab.
type AgentSnapshot struct {
	Prefab      string `yaml:"prefab"`
	ai.Snapshot `yaml:",inline"`
}

// Snapshots returns every live agent ordered by entity.
func Snapshots(w *ecs.World) []AgentSnapshot {
	var out []AgentSnapshot
	ecs.ForEach(w, component.AIComponent.Kind(), func(e ecs.Entity, aiComp *component.AI) {
		if aiComp.Controller == nil {
			return
		}
		out = append(out, AgentSnapshot{Prefab: aiComp.Prefab, Snapshot: aiComp.Controller.Snapshot()})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Entity < out[j].Entity })
	return out
}
