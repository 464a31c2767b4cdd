package ai

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/common"
)

// down is +Y: the world uses screen orientation.
var down = cp.Vector{X: 0, Y: 1}

func (c *Controller) patrol(dt float64) {
	if c.cfg.Patrol.UsesWaypoints() {
		c.waypointPatrol(dt)
		return
	}
	c.edgePatrol(dt)
}

func (c *Controller) waypointPatrol(dt float64) {
	route := c.cfg.Patrol.Waypoints
	if c.cursor < 0 || c.cursor >= len(route) {
		c.cursor = 0
	}

	pos := c.deps.Body.Position()
	gap := route[c.cursor].X - pos.X
	if math.Abs(gap) < ArriveThreshold {
		c.cursor = (c.cursor + 1) % len(route)
		c.setVelocityX(0)
		return
	}

	dir := common.Sign(gap)
	c.setVelocityX(dir * c.cfg.MoveSpeed)
	c.face(dir)
	c.aim.ResetToNeutral(dt)
}

func (c *Controller) edgePatrol(dt float64) {
	probe := c.cfg.Patrol.Edge
	pos := c.deps.Body.Position()
	forward := cp.Vector{X: c.dir, Y: 0}

	feet := pos.Add(down.Mult(probe.FeetOffset))
	aheadFeet := feet.Add(forward.Mult(probe.EdgeCheckDistance))
	_, groundAhead := c.deps.World.Raycast(aheadFeet, down, probe.GroundProbeLength, probe.GroundFilter)

	wallCheck := pos.Add(forward.Mult(probe.WallCheckDistance))
	_, wallAhead := c.deps.World.Raycast(wallCheck, forward, probe.WallProbeLength, probe.GroundFilter)

	if !groundAhead || wallAhead {
		c.dir = -c.dir
	}

	c.setVelocityX(c.dir * c.cfg.MoveSpeed)
	c.face(c.dir)
	c.aim.ResetToNeutral(dt)
}

func (c *Controller) chase(p Perception, dt float64) {
	dir := common.Sign(p.Target.X - p.Self.X)
	c.setVelocityX(dir * c.cfg.MoveSpeed)
	c.face(dir)
	c.aim.RotateToward(p.Target, dt)
}

// face turns the body toward dir. A zero dir keeps the current facing.
func (c *Controller) face(dir float64) {
	if dir == 0 {
		return
	}
	right := dir > 0
	if right == c.facingRight {
		return
	}
	c.facingRight = right
	c.deps.Body.SetFacing(right)
}

func (c *Controller) setVelocityX(vx float64) {
	v := c.deps.Body.Velocity()
	c.deps.Body.SetVelocity(cp.Vector{X: vx, Y: v.Y})
}
