package entity

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/ai"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/ecs/system"
	"github.com/milk9111/gungame/levels"
	"github.com/milk9111/gungame/logger"
)

func init() {
	logger.Discard()
}

func TestLoadLevelSpawnsArena(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("arena.json")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	w := ecs.NewWorld()
	if err := LoadLevel(w, lvl); err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		t.Fatalf("expected a player")
	}
	if !ecs.Has(w, player, component.PhysicsBodyComponent.Kind()) || !ecs.Has(w, player, component.GunComponent.Kind()) {
		t.Fatalf("player is missing its body or gun")
	}

	enemies := w.Query(component.EnemyTagComponent.Kind(), component.AIComponent.Kind())
	if len(enemies) != 2 {
		t.Fatalf("expected 2 enemies, got %d", len(enemies))
	}

	var ranged, melee int
	for _, e := range enemies {
		aiComp, _ := ecs.Get(w, e, component.AIComponent.Kind())
		c := aiComp.Controller
		if c == nil || c.State() != ai.Patrol {
			t.Fatalf("enemy %v has no patrolling controller", e)
		}
		if c.Target() == nil || c.Target().ID() != ai.EntityID(player) {
			t.Fatalf("enemy %v did not discover the player", e)
		}
		switch aiComp.Prefab {
		case "enemy_ranged.yaml":
			ranged++
			if !c.Config().IsRanged() || c.Config().Patrol.UsesWaypoints() {
				t.Fatalf("ranged enemy misconfigured: %+v", c.Config())
			}
			if !ecs.Has(w, e, component.AimRigComponent.Kind()) || !ecs.Has(w, e, component.AIHooksComponent.Kind()) {
				t.Fatalf("ranged enemy is missing its rig or hooks")
			}
		case "enemy_melee.yaml":
			melee++
			wps := c.Config().Patrol.Waypoints
			if len(wps) != 2 || wps[0] != (cp.Vector{X: 13, Y: 12.4}) {
				t.Fatalf("melee enemy waypoints %v", wps)
			}
			r, ok := ecs.Get(w, e, component.EnemyRespawnComponent.Kind())
			if !ok || r.SpawnX != 16 || r.WaitTime != 1.5 {
				t.Fatalf("melee enemy respawn %+v", r)
			}
		}
	}
	if ranged != 1 || melee != 1 {
		t.Fatalf("expected one of each enemy, got ranged=%d melee=%d", ranged, melee)
	}
}

func TestLoadLevelRejectsUnknownType(t *testing.T) {
	lvl := &levels.Level{
		Name:     "bad",
		Width:    2,
		Height:   2,
		Layers:   [][]int{{0, 0, 0, 0}},
		Entities: []levels.Entity{{Type: "dragon"}},
	}
	if err := LoadLevel(ecs.NewWorld(), lvl); err == nil {
		t.Fatalf("expected error for unknown entity type")
	}
}

func TestBuildEnemyRequiresPhysics(t *testing.T) {
	w := ecs.NewWorld()
	spawn := levels.Entity{Type: TypeEnemy, Prefab: "enemy_melee.yaml", X: 1, Y: 1}
	if _, err := NewEnemy(w, spawn); err == nil {
		t.Fatalf("expected error without a physics world")
	}
}

func TestArenaRunsHeadless(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("arena.json")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	w := ecs.NewWorld()
	if err := LoadLevel(w, lvl); err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	system.Install(w, true, nil)

	var melee ecs.Entity
	for _, e := range w.Query(component.AIComponent.Kind()) {
		aiComp, _ := ecs.Get(w, e, component.AIComponent.Kind())
		if aiComp.Prefab == "enemy_melee.yaml" {
			melee = e
		}
	}
	start, _ := ecs.Get(w, melee, component.TransformComponent.Kind())
	startX := start.X

	for i := 0; i < 30; i++ {
		w.Update()
	}

	if n := len(w.Query(component.EnemyTagComponent.Kind())); n != 2 {
		t.Fatalf("expected both enemies alive, got %d", n)
	}
	tr, _ := ecs.Get(w, melee, component.TransformComponent.Kind())
	if tr.X >= startX {
		t.Fatalf("expected melee enemy to walk toward its first waypoint, x %v -> %v", startX, tr.X)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("expected events to be flushed after update")
	}
}
