package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/levels"
	"github.com/milk9111/gungame/logger"
)

func init() {
	logger.Discard()
}

// testLevel is 20x6 tiles with a floor on row 5, so a unit box rests at
// y = 4.5.
func testLevel() *levels.Level {
	const w, h = 20, 6
	tiles := make([]int, w*h)
	for x := 0; x < w; x++ {
		tiles[5*w+x] = 1
	}
	return &levels.Level{Name: "test", Width: w, Height: h, Layers: [][]int{tiles}}
}

func newTestWorld() *ecs.World {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(testLevel()))
	return w
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// spawnBox creates a unit box body at (x, y).
func spawnBox(t *testing.T, w *ecs.World, x, y float64, category uint) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	tr := &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}
	c := &component.Collider{Width: 1, Height: 1, Mass: 1, Category: category}
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), tr))
	must(t, ecs.Add(w, e, component.ColliderComponent.Kind(), c))
	body := w.PhysicsWorld().EnsureBody(e, tr, c)
	if body == nil {
		t.Fatalf("no body created")
	}
	must(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body))
	return e
}

func spawnPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := spawnBox(t, w, x, y, component.CategoryPlayer)
	must(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	must(t, ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Max: 5, Current: 5}))
	return e
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func cpVec(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}
