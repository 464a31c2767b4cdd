package ai

import "github.com/jakecoffman/cp"

// Perception is what the controller knows about its target this tick.
type Perception struct {
	Self     cp.Vector
	Target   cp.Vector
	Distance float64
	Visible  bool
}

// DistanceTo returns the straight-line distance to the target. ok is false
// when the target is absent.
func (c *Controller) DistanceTo(t Target) (float64, bool) {
	if c == nil || t == nil {
		return 0, false
	}
	pos, ok := t.Position()
	if !ok {
		return 0, false
	}
	return c.deps.Body.Position().Distance(pos), true
}

// IsVisible casts a ray from the agent to the target over exactly the
// separating distance. The target is visible when nothing is hit or the
// nearest hit is the target itself.
func (c *Controller) IsVisible(t Target) bool {
	if c == nil || t == nil {
		return false
	}
	pos, ok := t.Position()
	if !ok {
		return false
	}
	return c.lineOfSight(c.deps.Body.Position(), t.ID(), pos)
}

func (c *Controller) lineOfSight(from cp.Vector, id EntityID, to cp.Vector) bool {
	delta := to.Sub(from)
	dist := delta.Length()
	if dist <= 1e-9 {
		return true
	}
	hit, ok := c.deps.World.Raycast(from, delta.Mult(1/dist), dist, c.cfg.ObstacleFilter)
	if !ok {
		return true
	}
	return id != 0 && hit.Entity == id
}

func (c *Controller) perceive() (Perception, bool) {
	if c.target == nil {
		return Perception{}, false
	}
	targetPos, ok := c.target.Position()
	if !ok {
		return Perception{}, false
	}
	self := c.deps.Body.Position()
	return Perception{
		Self:     self,
		Target:   targetPos,
		Distance: self.Distance(targetPos),
		Visible:  c.lineOfSight(self, c.target.ID(), targetPos),
	}, true
}
