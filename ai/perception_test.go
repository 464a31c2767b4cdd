package ai

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestDistanceTo(t *testing.T) {
	r := newRig()
	r.body.pos = cp.Vector{X: 1, Y: 1}
	r.target.pos = cp.Vector{X: 4, Y: 5}
	c := newController(t, meleeConfig(), r.deps())

	d, ok := c.DistanceTo(r.target)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, d, 1e-9)

	_, ok = c.DistanceTo(nil)
	assert.False(t, ok)

	r.target.present = false
	_, ok = c.DistanceTo(r.target)
	assert.False(t, ok)
}

func TestIsVisibleRaysSpanExactDistance(t *testing.T) {
	r := newRig()
	r.target.pos = cp.Vector{X: 6, Y: 0}
	r.world.raycast = nil
	cfg := meleeConfig()
	cfg.ObstacleFilter = Categories(0b101)
	c := newController(t, cfg, r.deps())

	assert.True(t, c.IsVisible(r.target))
	if assert.Len(t, r.world.calls, 1) {
		call := r.world.calls[0]
		assert.Equal(t, cp.Vector{}, call.origin)
		assert.Equal(t, cp.Vector{X: 1}, call.dir)
		assert.InDelta(t, 6.0, call.maxDist, 1e-9)
		assert.Equal(t, Categories(0b101), call.filter)
	}
}

func TestIsVisible(t *testing.T) {
	cases := []struct {
		name string
		hit  *Hit
		id   EntityID
		want bool
	}{
		{"nothing_hit", nil, 7, true},
		{"obstacle_first", &Hit{Entity: 50}, 7, false},
		{"target_first", &Hit{Entity: 7}, 7, true},
		{"anonymous_target_never_matches", &Hit{Entity: 0}, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig()
			r.target.id = tc.id
			r.target.pos = cp.Vector{X: 6}
			hit := tc.hit
			r.world.raycast = func(origin, dir cp.Vector, maxDist float64, filter Categories) (Hit, bool) {
				if hit == nil {
					return Hit{}, false
				}
				return *hit, true
			}
			c := newController(t, meleeConfig(), r.deps())
			assert.Equal(t, tc.want, c.IsVisible(r.target))
		})
	}
}

func TestIsVisibleCoincidentTarget(t *testing.T) {
	r := newRig()
	r.target.pos = r.body.pos
	c := newController(t, meleeConfig(), r.deps())

	assert.True(t, c.IsVisible(r.target))
	assert.Empty(t, r.world.calls)
	assert.False(t, c.IsVisible(nil))
}
