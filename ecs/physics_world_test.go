package ecs

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/levels"
)

// testLevel is 10x5 tiles: a floor on row 4 and a one-tile wall at (6, 3).
func testLevel() *levels.Level {
	const w, h = 10, 5
	tiles := make([]int, w*h)
	for x := 0; x < w; x++ {
		tiles[4*w+x] = 1
	}
	tiles[3*w+6] = 1
	return &levels.Level{Name: "test", Width: w, Height: h, Layers: [][]int{tiles}}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPhysicsWorldRaycastStatic(t *testing.T) {
	pw := NewPhysicsWorld(testLevel())

	tests := []struct {
		name   string
		origin cp.Vector
		dir    cp.Vector
		dist   float64
		hit    bool
		point  cp.Vector
	}{
		{"floor_below", cp.Vector{X: 1, Y: 1}, cp.Vector{X: 0, Y: 1}, 5, true, cp.Vector{X: 1, Y: 4}},
		{"floor_out_of_reach", cp.Vector{X: 1, Y: 1}, cp.Vector{X: 0, Y: 1}, 2, false, cp.Vector{}},
		{"wall_ahead", cp.Vector{X: 1, Y: 3.5}, cp.Vector{X: 1, Y: 0}, 10, true, cp.Vector{X: 6, Y: 3.5}},
		{"open_air", cp.Vector{X: 1, Y: 1}, cp.Vector{X: 1, Y: 0}, 5, false, cp.Vector{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := pw.Raycast(tc.origin, tc.dir, tc.dist, component.CategorySolid, 0)
			if ok != tc.hit {
				t.Fatalf("expected hit=%v, got %v (%+v)", tc.hit, ok, hit)
			}
			if !ok {
				return
			}
			if !near(hit.Point.X, tc.point.X) || !near(hit.Point.Y, tc.point.Y) {
				t.Fatalf("expected point %v, got %v", tc.point, hit.Point)
			}
			if hit.Entity != 0 {
				t.Fatalf("expected level geometry, got entity %v", hit.Entity)
			}
		})
	}
}

func TestPhysicsWorldRaycastBodies(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld(testLevel())
	w.SetPhysicsWorld(pw)

	e := CreateEntity(w)
	body := pw.EnsureBody(e, &component.Transform{X: 3, Y: 3.5}, &component.Collider{Width: 1, Height: 1, Category: component.CategoryEnemy})
	if body == nil || body.Body == nil || body.Shape == nil {
		t.Fatalf("expected a body")
	}
	if again := pw.EnsureBody(e, &component.Transform{}, &component.Collider{Width: 1, Height: 1}); again.Body != body.Body {
		t.Fatalf("EnsureBody should return the existing body")
	}

	origin := cp.Vector{X: 1, Y: 3.5}
	right := cp.Vector{X: 1}

	hit, ok := pw.Raycast(origin, right, 10, cp.ALL_CATEGORIES, 0)
	if !ok || hit.Entity != e || !near(hit.Point.X, 2.5) {
		t.Fatalf("expected body hit at 2.5, got %+v ok=%v", hit, ok)
	}

	hit, ok = pw.Raycast(origin, right, 10, cp.ALL_CATEGORIES, e)
	if !ok || hit.Entity != 0 || !near(hit.Point.X, 6) {
		t.Fatalf("expected own body skipped and wall hit, got %+v ok=%v", hit, ok)
	}

	hit, ok = pw.Raycast(origin, right, 10, component.CategorySolid, 0)
	if !ok || hit.Entity != 0 {
		t.Fatalf("expected mask to skip enemy body, got %+v ok=%v", hit, ok)
	}

	pw.Teleport(e, cp.Vector{X: 8, Y: 1})
	if _, ok := pw.Raycast(origin, right, 10, component.CategoryEnemy, 0); ok {
		t.Fatalf("expected teleported body out of the ray")
	}
	if hit, ok := pw.Raycast(cp.Vector{X: 8, Y: 0.2}, cp.Vector{Y: 1}, 3, component.CategoryEnemy, 0); !ok || hit.Entity != e {
		t.Fatalf("expected body at new position, got %+v ok=%v", hit, ok)
	}

	DestroyEntity(w, e)
	if _, ok := pw.Raycast(cp.Vector{X: 8, Y: 0.2}, cp.Vector{Y: 1}, 3, component.CategoryEnemy, 0); ok {
		t.Fatalf("expected destroyed body removed from the space")
	}
}

func TestPhysicsWorldNilSafe(t *testing.T) {
	var pw *PhysicsWorld
	if _, ok := pw.Raycast(cp.Vector{}, cp.Vector{X: 1}, 1, cp.ALL_CATEGORIES, 0); ok {
		t.Fatalf("nil world should not hit")
	}
	pw.Step(1)
	pw.RemoveEntity(1)
	if pw.EnsureBody(1, &component.Transform{}, &component.Collider{}) != nil {
		t.Fatalf("nil world should not create bodies")
	}
}
