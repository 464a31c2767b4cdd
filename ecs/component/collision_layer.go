package component

import (
	"fmt"
	"strings"
)

// Collision categories shared by the physics world, projectiles and agent
// line-of-sight queries.
const (
	CategorySolid uint = 1 << iota
	CategoryPlayer
	CategoryEnemy
	CategoryProjectile
)

var categoryNames = map[string]uint{
	"solid":      CategorySolid,
	"player":     CategoryPlayer,
	"enemy":      CategoryEnemy,
	"projectile": CategoryProjectile,
}

// ParseCategories ORs named categories together. An empty list yields zero,
// which callers treat as "everything".
func ParseCategories(names []string) (uint, error) {
	var out uint
	for _, name := range names {
		bit, ok := categoryNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown collision category %q", name)
		}
		out |= bit
	}
	return out, nil
}
