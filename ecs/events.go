package ecs

// EventType names an event payload.
type EventType string

const (
	// EventProjectileRequest carries an ai.ProjectileRequest.
	EventProjectileRequest EventType = "projectile_request"
	// EventDamageRequest carries a component.DamageRequest.
	EventDamageRequest EventType = "damage_request"
	// EventStateChanged carries a StateChanged.
	EventStateChanged EventType = "state_changed"
	// EventPrefabChanged carries the changed prefab file name.
	EventPrefabChanged EventType = "prefab_changed"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// StateChanged is pushed when an agent's behavior state changes.
type StateChanged struct {
	Entity Entity
	From   string
	To     string
}

// EventQueue is a FIFO queue cleared at the end of every world update.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// DrainType removes and returns the events of one type, keeping the rest in
// order.
func (q *EventQueue) DrainType(t EventType) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = Event{}
	}
	q.items = kept
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
