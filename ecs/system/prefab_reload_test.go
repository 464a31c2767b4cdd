package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/logger"
	"github.com/milk9111/gungame/prefabs"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func spawnMeleePrefab(t *testing.T, w *ecs.World) (ecs.Entity, []cp.Vector) {
	t.Helper()
	cfg := meleeConfig()
	cfg.Patrol.Waypoints = []cp.Vector{{X: 3, Y: 4.5}, {X: 8, Y: 4.5}}
	e, c := spawnAgent(t, w, 5, cfg, &component.AIHooks{})
	aiComp, _ := ecs.Get(w, e, component.AIComponent.Kind())
	aiComp.Prefab = "enemy_melee.yaml"
	return e, c.Config().Patrol.Waypoints
}

func TestPrefabReloadReconfiguresEnemies(t *testing.T) {
	w := newTestWorld()
	spawnPlayer(t, w, 15, 4.5)
	e, waypoints := spawnMeleePrefab(t, w)

	changes := make(chan string, 1)
	changes <- filepath.Join("prefabs", "enemy_melee.yaml")
	close(changes)
	sys := NewPrefabReloadSystem(changes, NewAISystem(), NewProjectileSystem())
	sys.Update(w)

	aiComp, _ := ecs.Get(w, e, component.AIComponent.Kind())
	cfg := aiComp.Controller.Config()
	if !near(cfg.AttackRange, 1.2) || !near(cfg.MoveSpeed, 3.5) {
		t.Fatalf("expected melee prefab values, got attack=%v speed=%v", cfg.AttackRange, cfg.MoveSpeed)
	}
	if len(cfg.Patrol.Waypoints) != len(waypoints) || cfg.Patrol.Waypoints[1] != waypoints[1] {
		t.Fatalf("expected level waypoints to survive reload, got %v", cfg.Patrol.Waypoints)
	}
	hooks, _ := ecs.Get(w, e, component.AIHooksComponent.Kind())
	if len(hooks.OnEnter["attack"]) != 2 {
		t.Fatalf("expected hooks from prefab, got %v", hooks.OnEnter)
	}
	events := w.Events().DrainType(ecs.EventPrefabChanged)
	if len(events) != 1 || events[0].Data != "enemy_melee.yaml" {
		t.Fatalf("unexpected prefab events %v", events)
	}
	if sys.Changes != nil {
		t.Fatalf("expected closed channel to be dropped")
	}
}

func TestPrefabReloadKeepsConfigOnBadSpec(t *testing.T) {
	dir := t.TempDir()
	old := prefabs.DiskDir
	prefabs.DiskDir = dir
	t.Cleanup(func() { prefabs.DiskDir = old })
	must(t, os.WriteFile(filepath.Join(dir, "enemy_melee.yaml"), []byte("obstacles: [lava]\n"), 0o644))

	w := newTestWorld()
	spawnPlayer(t, w, 15, 4.5)
	e, _ := spawnMeleePrefab(t, w)

	sys := NewPrefabReloadSystem(nil, NewAISystem(), NewProjectileSystem())
	sys.Reload(w, filepath.Join(dir, "enemy_melee.yaml"))

	aiComp, _ := ecs.Get(w, e, component.AIComponent.Kind())
	if !near(aiComp.Controller.Config().AttackRange, 2) {
		t.Fatalf("expected config to be untouched")
	}
	if w.Events().Len() != 0 {
		t.Fatalf("expected no prefab event for a rejected spec")
	}
}

func TestPrefabReloadScript(t *testing.T) {
	w := newTestWorld()
	spawnPlayer(t, w, 6.5, 4.5)
	e, _ := spawnAgent(t, w, 5, meleeConfig(), &component.AIHooks{Script: "enemy_alert.tengo"})

	aiSys := NewAISystem()
	aiSys.Update(w)
	if _, ok := aiSys.scriptCache[e]; !ok {
		t.Fatalf("expected cached script")
	}
	w.Events().Drain()

	sys := NewPrefabReloadSystem(nil, aiSys, nil)
	sys.Reload(w, filepath.Join("prefabs", "scripts", "enemy_alert.tengo"))

	if _, ok := aiSys.scriptCache[e]; ok {
		t.Fatalf("expected script cache to be dropped")
	}
	events := w.Events().DrainType(ecs.EventPrefabChanged)
	if len(events) != 1 || events[0].Data != "scripts/enemy_alert.tengo" {
		t.Fatalf("unexpected prefab events %v", events)
	}
}

func TestPrefabReloadLogsWarnings(t *testing.T) {
	dir := t.TempDir()
	old := prefabs.DiskDir
	prefabs.DiskDir = dir
	t.Cleanup(func() { prefabs.DiskDir = old })
	spec := "detection_range: 7\nlose_range: 3\nmelee:\n  rate: -1\nhooks:\n  on_enter:\n    atack:\n      - flash: 2\n"
	must(t, os.WriteFile(filepath.Join(dir, "enemy_melee.yaml"), []byte(spec), 0o644))

	hooks := logger.Log.ReplaceHooks(make(logrus.LevelHooks))
	t.Cleanup(func() { logger.Log.ReplaceHooks(hooks) })
	logs := test.NewLocal(logger.Log)

	w := newTestWorld()
	spawnPlayer(t, w, 15, 4.5)
	e, _ := spawnMeleePrefab(t, w)

	sys := NewPrefabReloadSystem(nil, NewAISystem(), NewProjectileSystem())
	sys.Reload(w, filepath.Join(dir, "enemy_melee.yaml"))

	aiComp, _ := ecs.Get(w, e, component.AIComponent.Kind())
	if !near(aiComp.Controller.Config().LoseRange, 3) {
		t.Fatalf("expected reloaded lose range, got %v", aiComp.Controller.Config().LoseRange)
	}

	var warnings []string
	for _, entry := range logs.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings = append(warnings, entry.Message)
		}
	}
	joined := strings.Join(warnings, "\n")
	for _, want := range []string{
		`hooks.on_enter: unknown state "atack"`,
		"lose range 3.00 is below detection range 7.00",
		"melee rate -1.0000 is raised",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected warning %q, got %v", want, warnings)
		}
	}
}
