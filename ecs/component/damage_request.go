package component

// DamageRequest is queued as an event and applied by the damage system.
// Entities are raw ecs.Entity values.
type DamageRequest struct {
	Target uint64
	Source uint64
	Amount int
}
