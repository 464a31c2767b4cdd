package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/ai"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
)

func bulletRequest(owner ecs.Entity, x, y, vx float64) ai.ProjectileRequest {
	return ai.ProjectileRequest{
		Owner:    ai.EntityID(owner),
		Prefab:   "bullet.yaml",
		Position: cp.Vector{X: x, Y: y},
		Velocity: cp.Vector{X: vx},
		Lifetime: 1,
	}
}

func TestProjectileSystemSpawnsFromRequest(t *testing.T) {
	w := newTestWorld()
	w.Events().Push(ecs.Event{Type: ecs.EventProjectileRequest, Data: bulletRequest(0, 2, 2, 6)})

	sys := NewProjectileSystem()
	sys.Update(w)

	bullets := w.Query(component.ProjectileComponent.Kind())
	if len(bullets) != 1 {
		t.Fatalf("expected one bullet, got %d", len(bullets))
	}
	b := bullets[0]
	p, _ := ecs.Get(w, b, component.ProjectileComponent.Kind())
	if p.Damage != 1 || p.VelX != 6 {
		t.Fatalf("unexpected projectile %+v", p)
	}
	if p.Mask != component.CategorySolid|component.CategoryPlayer|component.CategoryEnemy {
		t.Fatalf("unexpected hit mask %b", p.Mask)
	}
	ttl, ok := ecs.Get(w, b, component.TTLComponent.Kind())
	if !ok || ttl.Frames != 60 {
		t.Fatalf("expected 60 frame ttl, got %+v", ttl)
	}
	tr, _ := ecs.Get(w, b, component.TransformComponent.Kind())
	if !near(tr.X, 2.1) || !near(tr.Y, 2) {
		t.Fatalf("expected bullet to advance one tick, got (%v, %v)", tr.X, tr.Y)
	}
}

func TestProjectileSystemUnknownPrefab(t *testing.T) {
	w := newTestWorld()
	req := bulletRequest(0, 2, 2, 6)
	req.Prefab = "nope.yaml"
	w.Events().Push(ecs.Event{Type: ecs.EventProjectileRequest, Data: req})

	NewProjectileSystem().Update(w)
	if n := len(w.Query(component.ProjectileComponent.Kind())); n != 0 {
		t.Fatalf("expected no bullets, got %d", n)
	}
}

func TestProjectileHitQueuesDamageAndDies(t *testing.T) {
	w := newTestWorld()
	target := spawnPlayer(t, w, 8, 4.5)
	sys := NewProjectileSystem()
	bullet, err := sys.Spawn(w, bulletRequest(0, 5, 4.5, 60))
	must(t, err)

	for i := 0; i < 4 && w.IsAlive(bullet); i++ {
		sys.Update(w)
	}
	if w.IsAlive(bullet) {
		t.Fatalf("expected bullet to be destroyed on impact")
	}
	reqs := w.Events().DrainType(ecs.EventDamageRequest)
	if len(reqs) != 1 {
		t.Fatalf("expected one damage request, got %d", len(reqs))
	}
	req := reqs[0].Data.(component.DamageRequest)
	if ecs.Entity(req.Target) != target || req.Amount != 1 {
		t.Fatalf("unexpected damage request %+v", req)
	}
}

func TestProjectileIgnoresOwner(t *testing.T) {
	w := newTestWorld()
	owner := spawnPlayer(t, w, 5, 4.5)
	sys := NewProjectileSystem()
	bullet, err := sys.Spawn(w, bulletRequest(owner, 5, 4.5, 30))
	must(t, err)

	sys.Update(w)
	if !w.IsAlive(bullet) {
		t.Fatalf("bullet hit its owner")
	}
	if n := w.Events().Len(); n != 0 {
		t.Fatalf("expected no events, got %d", n)
	}
}

func TestProjectileStopsAtWalls(t *testing.T) {
	w := newTestWorld()
	sys := NewProjectileSystem()
	bullet, err := sys.Spawn(w, ai.ProjectileRequest{
		Prefab:   "bullet.yaml",
		Position: cp.Vector{X: 3, Y: 4.5},
		Velocity: cp.Vector{Y: 60},
		Lifetime: 1,
	})
	must(t, err)

	sys.Update(w)
	if w.IsAlive(bullet) {
		t.Fatalf("expected bullet to stop at the floor")
	}
	if n := w.Events().Len(); n != 0 {
		t.Fatalf("level geometry should not queue damage, got %d events", n)
	}
}

func TestProjectileHitTriggersRespawn(t *testing.T) {
	w := newTestWorld()
	enemy := spawnBox(t, w, 8, 4.5, component.CategoryEnemy)
	must(t, ecs.Add(w, enemy, component.EnemyRespawnComponent.Kind(), &component.EnemyRespawn{
		SpawnX: 8, SpawnY: 4.5, WaitTime: 1, BulletForce: 5,
	}))
	sys := NewProjectileSystem()
	_, err := sys.Spawn(w, bulletRequest(0, 5, 4.5, 60))
	must(t, err)

	for i := 0; i < 4; i++ {
		sys.Update(w)
	}
	r, _ := ecs.Get(w, enemy, component.EnemyRespawnComponent.Kind())
	if !r.Hit {
		t.Fatalf("expected respawn to be triggered")
	}
	body, _ := ecs.Get(w, enemy, component.PhysicsBodyComponent.Kind())
	if body.Body.Velocity().X <= 0 {
		t.Fatalf("expected knockback away from the bullet, got %v", body.Body.Velocity())
	}
}
