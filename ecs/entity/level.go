package entity

import (
	"fmt"

	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/levels"
)

const (
	TypePlayer = "player"
	TypeEnemy  = "enemy"

	defaultPlayerPrefab = "player.yaml"
)

// LoadLevel installs a physics world for lvl and spawns its entities. The
// player is spawned first so enemies can find it.
func LoadLevel(w *ecs.World, lvl *levels.Level) error {
	if w == nil || lvl == nil {
		return fmt.Errorf("level: nil world or level")
	}
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(lvl))

	for _, spawn := range lvl.Entities {
		if spawn.Type != TypePlayer {
			continue
		}
		prefab := spawn.Prefab
		if prefab == "" {
			prefab = defaultPlayerPrefab
		}
		if _, err := NewPlayer(w, prefab, spawn.Position()); err != nil {
			return fmt.Errorf("level %s: %w", lvl.Name, err)
		}
	}

	for i, spawn := range lvl.Entities {
		switch spawn.Type {
		case TypePlayer:
		case TypeEnemy:
			if _, err := NewEnemy(w, spawn); err != nil {
				return fmt.Errorf("level %s: entity %d: %w", lvl.Name, i, err)
			}
		default:
			return fmt.Errorf("level %s: entity %d: unknown type %q", lvl.Name, i, spawn.Type)
		}
	}
	return nil
}
