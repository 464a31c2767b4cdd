package ai

// Cooldown counts down in seconds. It may go negative; only the sign matters.
type Cooldown float64

func (c *Cooldown) Tick(dt float64) {
	*c -= Cooldown(dt)
}

func (c Cooldown) Ready() bool {
	return c <= 0
}

func (c *Cooldown) Reset(seconds float64) {
	*c = Cooldown(seconds)
}
