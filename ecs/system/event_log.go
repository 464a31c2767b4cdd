package system

import (
	"github.com/milk9111/gungame/common"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/logger"
)

// reloadNoticeTicks is how long a prefab reload stays on screen.
const reloadNoticeTicks = 2 * common.TPS

// Transition is one recorded agent state change.
type Transition struct {
	Tick   int    `yaml:"tick"`
	Entity string `yaml:"entity"`
	Prefab string `yaml:"prefab"`
	From   string `yaml:"from"`
	To     string `yaml:"to"`
}

// EventLogSystem consumes state and prefab change events. It remembers each
// agent's last transition and the last reloaded prefab. With Record set it
// also keeps every transition in History.
type EventLogSystem struct {
	Record  bool
	History []Transition

	tick       int
	last       map[ecs.Entity]Transition
	reloaded   string
	reloadTick int
}

func NewEventLogSystem() *EventLogSystem {
	return &EventLogSystem{last: map[ecs.Entity]Transition{}}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if s.last == nil {
		s.last = map[ecs.Entity]Transition{}
	}
	s.tick++

	for e := range s.last {
		if !w.IsAlive(e) {
			delete(s.last, e)
		}
	}

	for _, evt := range w.Events().DrainType(ecs.EventStateChanged) {
		sc, ok := evt.Data.(ecs.StateChanged)
		if !ok {
			continue
		}
		tr := Transition{Tick: s.tick, Entity: sc.Entity.String(), From: sc.From, To: sc.To}
		if aiComp, ok := ecs.Get(w, sc.Entity, component.AIComponent.Kind()); ok {
			tr.Prefab = aiComp.Prefab
		}
		s.last[sc.Entity] = tr
		if s.Record {
			s.History = append(s.History, tr)
		}
	}

	for _, evt := range w.Events().DrainType(ecs.EventPrefabChanged) {
		name, ok := evt.Data.(string)
		if !ok {
			continue
		}
		s.reloaded = name
		s.reloadTick = s.tick
		logger.Log.WithField("prefab", name).Debug("event log: prefab changed")
	}
}

// Tick is the number of updates seen so far.
func (s *EventLogSystem) Tick() int {
	if s == nil {
		return 0
	}
	return s.tick
}

// Last returns the most recent transition of e.
func (s *EventLogSystem) Last(e ecs.Entity) (Transition, bool) {
	if s == nil {
		return Transition{}, false
	}
	tr, ok := s.last[e]
	return tr, ok
}

// ReloadNotice returns the last reloaded prefab while it is still recent.
func (s *EventLogSystem) ReloadNotice() (string, bool) {
	if s == nil || s.reloaded == "" || s.tick-s.reloadTick >= reloadNoticeTicks {
		return "", false
	}
	return s.reloaded, true
}
