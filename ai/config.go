package ai

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

const (
	// Epsilon is the floor applied to configured rates.
	Epsilon = 0.001

	// HysteresisFactor widens the attack range when deciding to leave Attack.
	HysteresisFactor = 1.2

	// ArriveThreshold is the horizontal gap at which a waypoint counts as reached.
	ArriveThreshold = 0.15

	// NeutralAimSpeed is used to return the aim joint to rest when no
	// MaxAimSpeed is configured (720 degrees per second).
	NeutralAimSpeed = 4 * math.Pi

	DefaultProjectileLifetime = 5.0
)

// EdgeProbe configures the edge/wall walker used when no waypoint route is set.
type EdgeProbe struct {
	EdgeCheckDistance float64
	WallCheckDistance float64
	FeetOffset        float64
	GroundProbeLength float64
	WallProbeLength   float64
	GroundFilter      Categories
}

func DefaultEdgeProbe() EdgeProbe {
	return EdgeProbe{
		EdgeCheckDistance: 0.5,
		WallCheckDistance: 0.3,
		FeetOffset:        0.6,
		GroundProbeLength: 0.5,
		WallProbeLength:   0.1,
		GroundFilter:      AllCategories,
	}
}

// PatrolRoute holds both patrol policies. Waypoints win when there are at
// least two of them; otherwise Edge is used.
type PatrolRoute struct {
	Waypoints []cp.Vector
	Edge      EdgeProbe
}

func (r PatrolRoute) UsesWaypoints() bool {
	return len(r.Waypoints) >= 2
}

// Ranged is the ranged payload. An empty Projectile means none.
type Ranged struct {
	Projectile  string
	FireRate    float64
	BulletSpeed float64
	Lifetime    float64
}

type Melee struct {
	Damage int
	Rate   float64
}

// Config is the full, immutable set of options for one agent. Build one with
// DefaultConfig and override fields, then hand it to New, which normalizes it.
type Config struct {
	DetectionRange float64
	LoseRange      float64
	ObstacleFilter Categories

	MoveSpeed float64
	Patrol    PatrolRoute

	AttackRange float64
	Ranged      Ranged
	Melee       Melee

	// MaxAimSpeed is in radians per second. Zero snaps instantly.
	MaxAimSpeed float64
}

func DefaultConfig() Config {
	return Config{
		DetectionRange: 8,
		LoseRange:      12,
		ObstacleFilter: AllCategories,
		MoveSpeed:      3,
		Patrol:         PatrolRoute{Edge: DefaultEdgeProbe()},
		AttackRange:    4,
		Ranged: Ranged{
			FireRate:    1.5,
			BulletSpeed: 12,
			Lifetime:    DefaultProjectileLifetime,
		},
		Melee:       Melee{Damage: 1, Rate: 1},
		MaxAimSpeed: 2 * math.Pi,
	}
}

// IsRanged reports whether the ranged path is active for this profile.
func (c Config) IsRanged() bool {
	return c.Ranged.Projectile != ""
}

func (c Config) Ranges() Ranges {
	return Ranges{Detection: c.DetectionRange, Lose: c.LoseRange, Attack: c.AttackRange}
}

// Normalize returns a copy with every option clamped to a usable value.
// Rates are floored to Epsilon, negative distances become zero, unset probe
// parameters take their defaults and the waypoint slice is copied.
func (c Config) Normalize() Config {
	c.DetectionRange = math.Max(0, c.DetectionRange)
	c.LoseRange = math.Max(0, c.LoseRange)
	c.AttackRange = math.Max(0, c.AttackRange)
	c.MoveSpeed = math.Max(0, c.MoveSpeed)
	c.MaxAimSpeed = math.Max(0, c.MaxAimSpeed)
	if c.ObstacleFilter == NoCategories {
		c.ObstacleFilter = AllCategories
	}

	c.Ranged.FireRate = math.Max(Epsilon, c.Ranged.FireRate)
	c.Ranged.BulletSpeed = math.Max(0, c.Ranged.BulletSpeed)
	if c.Ranged.Lifetime <= 0 {
		c.Ranged.Lifetime = DefaultProjectileLifetime
	}
	c.Melee.Rate = math.Max(Epsilon, c.Melee.Rate)
	if c.Melee.Damage < 0 {
		c.Melee.Damage = 0
	}

	def := DefaultEdgeProbe()
	e := &c.Patrol.Edge
	if e.EdgeCheckDistance <= 0 {
		e.EdgeCheckDistance = def.EdgeCheckDistance
	}
	if e.WallCheckDistance <= 0 {
		e.WallCheckDistance = def.WallCheckDistance
	}
	if e.FeetOffset <= 0 {
		e.FeetOffset = def.FeetOffset
	}
	if e.GroundProbeLength <= 0 {
		e.GroundProbeLength = def.GroundProbeLength
	}
	if e.WallProbeLength <= 0 {
		e.WallProbeLength = def.WallProbeLength
	}
	if e.GroundFilter == NoCategories {
		e.GroundFilter = def.GroundFilter
	}

	if len(c.Patrol.Waypoints) > 0 {
		c.Patrol.Waypoints = append([]cp.Vector(nil), c.Patrol.Waypoints...)
	}
	return c
}

// Warnings lists settings that are legal but probably not intended, along
// with every value Normalize will change. Zero probe lengths and a zero
// projectile lifetime mean "use the default" and are not reported.
// LoseRange below DetectionRange is reported but kept as configured.
func (c Config) Warnings() []string {
	var out []string
	negative := func(name string, v float64) {
		if v < 0 {
			out = append(out, fmt.Sprintf("%s %.2f is negative, using 0", name, v))
		}
	}
	negative("detection range", c.DetectionRange)
	negative("lose range", c.LoseRange)
	negative("attack range", c.AttackRange)
	negative("move speed", c.MoveSpeed)
	negative("max aim speed", c.MaxAimSpeed)
	negative("bullet speed", c.Ranged.BulletSpeed)

	if c.Ranged.FireRate < Epsilon {
		out = append(out, fmt.Sprintf("fire rate %.4f is raised to %.3f", c.Ranged.FireRate, Epsilon))
	}
	if c.Melee.Rate < Epsilon {
		out = append(out, fmt.Sprintf("melee rate %.4f is raised to %.3f", c.Melee.Rate, Epsilon))
	}
	if c.Melee.Damage < 0 {
		out = append(out, fmt.Sprintf("melee damage %d is negative, using 0", c.Melee.Damage))
	}
	if c.Ranged.Lifetime < 0 {
		out = append(out, fmt.Sprintf("projectile lifetime %.2f is negative, using %.1f", c.Ranged.Lifetime, DefaultProjectileLifetime))
	}

	e := c.Patrol.Edge
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"edge check distance", e.EdgeCheckDistance},
		{"wall check distance", e.WallCheckDistance},
		{"feet offset", e.FeetOffset},
		{"ground probe length", e.GroundProbeLength},
		{"wall probe length", e.WallProbeLength},
	} {
		if p.v < 0 {
			out = append(out, fmt.Sprintf("%s %.2f is negative, using the default", p.name, p.v))
		}
	}
	if c.ObstacleFilter == NoCategories {
		out = append(out, "obstacle filter is empty, every category blocks sight")
	}
	if e.GroundFilter == NoCategories {
		out = append(out, "ground filter is empty, every category counts as ground")
	}

	if c.LoseRange < c.DetectionRange {
		out = append(out, fmt.Sprintf("lose range %.2f is below detection range %.2f", c.LoseRange, c.DetectionRange))
	}
	if c.AttackRange > c.DetectionRange {
		out = append(out, fmt.Sprintf("attack range %.2f exceeds detection range %.2f, attack is only entered from patrol inside detection range", c.AttackRange, c.DetectionRange))
	}
	if len(c.Patrol.Waypoints) == 1 {
		out = append(out, "a single waypoint is ignored, edge patrol is used instead")
	}
	return out
}
