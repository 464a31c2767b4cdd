package ai

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaypointArrivalAdvancesWithoutMoving(t *testing.T) {
	r := newRig()
	r.body.vel = cp.Vector{X: 3, Y: 1}
	cfg := meleeConfig()
	cfg.Patrol.Waypoints = []cp.Vector{{X: 0}, {X: 0.1}}
	c := newController(t, cfg, r.deps())

	c.Tick(dt)
	assert.Equal(t, 1, c.Snapshot().Cursor)
	assert.Equal(t, cp.Vector{X: 0, Y: 1}, r.body.vel)

	c.Tick(dt)
	assert.Equal(t, 0, c.Snapshot().Cursor)
	assert.Zero(t, r.body.vel.X)
	assert.Zero(t, r.body.flips)
}

func TestWaypointPatrolWalksRoute(t *testing.T) {
	r := newRig()
	cfg := meleeConfig()
	cfg.Patrol.Waypoints = []cp.Vector{{X: 5}, {X: -5}}
	c := newController(t, cfg, r.deps())

	c.Tick(dt)
	assert.Equal(t, 3.0, r.body.vel.X)
	assert.True(t, c.FacingRight())

	r.body.pos.X = 5
	c.Tick(dt)
	assert.Equal(t, 1, c.Snapshot().Cursor)

	c.Tick(dt)
	assert.Equal(t, -3.0, r.body.vel.X)
	assert.False(t, c.FacingRight())
	assert.Equal(t, 1, r.body.flips)

	r.body.pos.X = -5
	c.Tick(dt)
	assert.Equal(t, 0, c.Snapshot().Cursor)
}

func TestWaypointPatrolDoesNotProbeEdges(t *testing.T) {
	r := newRig()
	cfg := meleeConfig()
	cfg.Patrol.Waypoints = []cp.Vector{{X: 5}, {X: -5}}
	c := newController(t, cfg, r.deps())

	c.Tick(dt)

	// Only the sight ray.
	assert.Len(t, r.world.calls, 1)
}

func TestEdgePatrolProbeGeometry(t *testing.T) {
	r := newRig()
	cfg := meleeConfig()
	cfg.Patrol.Edge.GroundFilter = Categories(0b1)
	c := newController(t, cfg, r.deps())

	c.Tick(dt)

	require.Len(t, r.world.calls, 3)
	ground, wall := r.world.calls[1], r.world.calls[2]

	assert.Equal(t, cp.Vector{X: 0.5, Y: 0.6}, ground.origin)
	assert.Equal(t, cp.Vector{X: 0, Y: 1}, ground.dir)
	assert.Equal(t, 0.5, ground.maxDist)
	assert.Equal(t, Categories(0b1), ground.filter)

	assert.Equal(t, cp.Vector{X: 0.3}, wall.origin)
	assert.Equal(t, cp.Vector{X: 1}, wall.dir)
	assert.Equal(t, 0.1, wall.maxDist)
	assert.Equal(t, Categories(0b1), wall.filter)

	assert.Equal(t, 3.0, r.body.vel.X)
	assert.Zero(t, r.body.flips)
}

func TestEdgePatrolReversesAtLedge(t *testing.T) {
	r := newRig()
	r.world.raycast = nil
	c := newController(t, meleeConfig(), r.deps())

	c.Tick(dt)
	assert.Equal(t, -3.0, r.body.vel.X)
	assert.False(t, c.FacingRight())
	assert.Equal(t, -1.0, c.Snapshot().Direction)

	c.Tick(dt)
	assert.Equal(t, 3.0, r.body.vel.X)
	assert.Equal(t, 2, r.body.flips)
}

func TestEdgePatrolReversesAtWall(t *testing.T) {
	r := newRig()
	r.target.pos = cp.Vector{X: 0, Y: -20}
	r.world.raycast = func(origin, dir cp.Vector, maxDist float64, filter Categories) (Hit, bool) {
		if dir.Y > 0 {
			return Hit{Point: origin, Entity: 99}, true
		}
		if dir.X != 0 {
			return Hit{Point: origin, Entity: 98}, true
		}
		return Hit{}, false
	}
	c := newController(t, meleeConfig(), r.deps())

	c.Tick(dt)

	assert.Equal(t, -3.0, r.body.vel.X)
	assert.Equal(t, 1, r.body.flips)
}

func TestEdgePatrolKeepsHeadingOnOpenGround(t *testing.T) {
	r := newRig()
	c := newController(t, meleeConfig(), r.deps())

	for i := 0; i < 30; i++ {
		c.Tick(dt)
	}

	assert.Equal(t, 3.0, r.body.vel.X)
	assert.Zero(t, r.body.flips)
}

func TestSingleWaypointFallsBackToEdgePatrol(t *testing.T) {
	r := newRig()
	cfg := meleeConfig()
	cfg.Patrol.Waypoints = []cp.Vector{{X: -5}}
	c := newController(t, cfg, r.deps())

	c.Tick(dt)

	assert.Len(t, r.world.calls, 3)
	assert.Equal(t, 3.0, r.body.vel.X)
}

func TestPatrolReturnsAimToNeutral(t *testing.T) {
	r := newRig()
	r.joint.rot = 0.5
	c := newController(t, meleeConfig(), r.deps())

	for i := 0; i < 60; i++ {
		c.Tick(dt)
	}

	assert.InDelta(t, 0, r.joint.rot, 1e-9)
}
