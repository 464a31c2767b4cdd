package prefabs

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/gungame/ai"
	"github.com/milk9111/gungame/common"
	"github.com/milk9111/gungame/ecs/component"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := loadInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

func loadInto(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Mass   float64 `yaml:"mass"`
}

type AimRigSpec struct {
	OffsetX        float64 `yaml:"offset_x"`
	OffsetY        float64 `yaml:"offset_y"`
	MuzzleDistance float64 `yaml:"muzzle_distance"`
}

func (s AimRigSpec) Component() component.AimRig {
	return component.AimRig{OffsetX: s.OffsetX, OffsetY: s.OffsetY, MuzzleDistance: s.MuzzleDistance}
}

type PatrolSpec struct {
	EdgeCheckDistance float64  `yaml:"edge_check_distance"`
	WallCheckDistance float64  `yaml:"wall_check_distance"`
	FeetOffset        float64  `yaml:"feet_offset"`
	GroundProbeLength float64  `yaml:"ground_probe_length"`
	WallProbeLength   float64  `yaml:"wall_probe_length"`
	Ground            []string `yaml:"ground"`
}

type RangedSpec struct {
	Projectile  string  `yaml:"projectile"`
	FireRate    float64 `yaml:"fire_rate"`
	BulletSpeed float64 `yaml:"bullet_speed"`
	Lifetime    float64 `yaml:"lifetime"`
}

type MeleeSpec struct {
	Damage int     `yaml:"damage"`
	Rate   float64 `yaml:"rate"`
}

type RespawnSpec struct {
	WaitTime    float64 `yaml:"wait_time"`
	BulletForce float64 `yaml:"bullet_force"`
}

type HooksSpec struct {
	OnEnter map[string][]map[string]any `yaml:"on_enter"`
	OnExit  map[string][]map[string]any `yaml:"on_exit"`
}

// EnemySpec is an enemy prefab. Angles are in degrees and ranges in tiles.
type EnemySpec struct {
	Name           string       `yaml:"name"`
	MoveSpeed      float64      `yaml:"move_speed"`
	DetectionRange float64      `yaml:"detection_range"`
	LoseRange      float64      `yaml:"lose_range"`
	AttackRange    float64      `yaml:"attack_range"`
	Obstacles      []string     `yaml:"obstacles"`
	MaxAimSpeed    float64      `yaml:"max_aim_speed"`
	Patrol         PatrolSpec   `yaml:"patrol"`
	Ranged         RangedSpec   `yaml:"ranged"`
	Melee          MeleeSpec    `yaml:"melee"`
	Collider       ColliderSpec `yaml:"collider"`
	AimRig         AimRigSpec   `yaml:"aim_rig"`
	Color          *YAMLColor   `yaml:"color"`
	Health         int          `yaml:"health"`
	Respawn        *RespawnSpec `yaml:"respawn"`
	Hooks          HooksSpec    `yaml:"hooks"`
	Script         string       `yaml:"script"`
}

// DefaultEnemySpec mirrors ai.DefaultConfig so a prefab only lists what it
// changes.
func DefaultEnemySpec() EnemySpec {
	cfg := ai.DefaultConfig()
	return EnemySpec{
		MoveSpeed:      cfg.MoveSpeed,
		DetectionRange: cfg.DetectionRange,
		LoseRange:      cfg.LoseRange,
		AttackRange:    cfg.AttackRange,
		MaxAimSpeed:    common.Rad2Deg(cfg.MaxAimSpeed),
		Patrol: PatrolSpec{
			EdgeCheckDistance: cfg.Patrol.Edge.EdgeCheckDistance,
			WallCheckDistance: cfg.Patrol.Edge.WallCheckDistance,
			FeetOffset:        cfg.Patrol.Edge.FeetOffset,
			GroundProbeLength: cfg.Patrol.Edge.GroundProbeLength,
			WallProbeLength:   cfg.Patrol.Edge.WallProbeLength,
			Ground:            []string{"solid"},
		},
		Ranged: RangedSpec{
			FireRate:    cfg.Ranged.FireRate,
			BulletSpeed: cfg.Ranged.BulletSpeed,
			Lifetime:    cfg.Ranged.Lifetime,
		},
		Melee:    MeleeSpec{Damage: cfg.Melee.Damage, Rate: cfg.Melee.Rate},
		Collider: ColliderSpec{Width: 0.8, Height: 1, Mass: 1},
		Health:   3,
	}
}

func LoadEnemySpec(filename string) (*EnemySpec, error) {
	spec := DefaultEnemySpec()
	if err := loadInto(filename, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// AIConfig converts the prefab into a controller configuration. Waypoints
// come from the level, not the prefab.
func (s EnemySpec) AIConfig() (ai.Config, error) {
	obstacles, err := component.ParseCategories(s.Obstacles)
	if err != nil {
		return ai.Config{}, fmt.Errorf("prefabs: enemy %q obstacles: %w", s.Name, err)
	}
	ground, err := component.ParseCategories(s.Patrol.Ground)
	if err != nil {
		return ai.Config{}, fmt.Errorf("prefabs: enemy %q patrol ground: %w", s.Name, err)
	}

	return ai.Config{
		DetectionRange: s.DetectionRange,
		LoseRange:      s.LoseRange,
		ObstacleFilter: categories(s.Obstacles, obstacles),
		MoveSpeed:      s.MoveSpeed,
		Patrol: ai.PatrolRoute{Edge: ai.EdgeProbe{
			EdgeCheckDistance: s.Patrol.EdgeCheckDistance,
			WallCheckDistance: s.Patrol.WallCheckDistance,
			FeetOffset:        s.Patrol.FeetOffset,
			GroundProbeLength: s.Patrol.GroundProbeLength,
			WallProbeLength:   s.Patrol.WallProbeLength,
			GroundFilter:      categories(s.Patrol.Ground, ground),
		}},
		AttackRange: s.AttackRange,
		Ranged: ai.Ranged{
			Projectile:  s.Ranged.Projectile,
			FireRate:    s.Ranged.FireRate,
			BulletSpeed: s.Ranged.BulletSpeed,
			Lifetime:    s.Ranged.Lifetime,
		},
		Melee:       ai.Melee{Damage: s.Melee.Damage, Rate: s.Melee.Rate},
		MaxAimSpeed: common.Deg2Rad(s.MaxAimSpeed),
	}, nil
}

// categories maps an absent list to every category. An explicit empty list
// stays empty so Config.Warnings can report it.
func categories(names []string, mask uint) ai.Categories {
	if names == nil {
		return ai.AllCategories
	}
	return ai.Categories(mask)
}

// Warnings reports hook keys that are not state names. Such hooks never run.
func (s EnemySpec) Warnings() []string {
	var out []string
	check := func(field string, hooks map[string][]map[string]any) {
		keys := make([]string, 0, len(hooks))
		for k := range hooks {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := ai.ParseState(k); !ok {
				out = append(out, fmt.Sprintf("hooks.%s: unknown state %q", field, k))
			}
		}
	}
	check("on_enter", s.Hooks.OnEnter)
	check("on_exit", s.Hooks.OnExit)
	return out
}

type GunSpec struct {
	Projectile     string  `yaml:"projectile"`
	BulletVelocity float64 `yaml:"bullet_velocity"`
	BulletRange    float64 `yaml:"bullet_range"`
}

type PlayerSpec struct {
	Name                string       `yaml:"name"`
	MoveSpeed           float64      `yaml:"move_speed"`
	JumpSpeed           float64      `yaml:"jump_speed"`
	GroundCheckDistance float64      `yaml:"ground_check_distance"`
	Collider            ColliderSpec `yaml:"collider"`
	AimRig              AimRigSpec   `yaml:"aim_rig"`
	Gun                 GunSpec      `yaml:"gun"`
	Color               *YAMLColor   `yaml:"color"`
	Health              int          `yaml:"health"`
}

func LoadPlayerSpec(filename string) (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ProjectileSpec is a bullet prefab. Hits lists the categories it collides
// with.
type ProjectileSpec struct {
	Name   string     `yaml:"name"`
	Damage int        `yaml:"damage"`
	Size   float64    `yaml:"size"`
	Hits   []string   `yaml:"hits"`
	Color  *YAMLColor `yaml:"color"`
}

func LoadProjectileSpec(filename string) (*ProjectileSpec, error) {
	spec, err := LoadSpec[ProjectileSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// HitMask returns the category mask for Hits; zero means all.
func (s ProjectileSpec) HitMask() (uint, error) {
	return component.ParseCategories(s.Hits)
}

type YAMLColor struct {
	color.Color
}

// NRGBA returns the color or fallback when unset.
func (c *YAMLColor) NRGBA(fallback color.NRGBA) color.NRGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
