package component

type Health struct {
	Max     int
	Current int
}

// ApplyDamage subtracts amount, never going below zero. Non-positive
// amounts are ignored.
func (h *Health) ApplyDamage(amount int) {
	if h == nil || amount <= 0 {
		return
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
}

// Heal adds amount up to Max.
func (h *Health) Heal(amount int) {
	if h == nil || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

func (h *Health) IsDead() bool {
	return h != nil && h.Current <= 0
}

var HealthComponent = NewComponent[Health]()
