package ai

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var (
	ErrNilBody    = errors.New("ai: body is nil")
	ErrNilWorld   = errors.New("ai: world query is nil")
	ErrNilSpawner = errors.New("ai: ranged profile without projectile spawner")
)

// StateListener is called after the state changes, inside Tick.
type StateListener func(from, to State)

// Controller drives one agent. All of its mutable state is private and only
// Tick changes it, so separate controllers can be ticked independently.
type Controller struct {
	cfg    Config
	deps   Deps
	target Target
	aim    Aim

	state       State
	facingRight bool
	cursor      int
	dir         float64

	fireCooldown  Cooldown
	meleeCooldown Cooldown

	stopped   bool
	listeners []StateListener
}

// New validates deps, normalizes cfg and resolves the target once.
func New(cfg Config, deps Deps) (*Controller, error) {
	if deps.Body == nil {
		return nil, ErrNilBody
	}
	if deps.World == nil {
		return nil, ErrNilWorld
	}
	cfg = cfg.Normalize()
	if cfg.IsRanged() && deps.Spawner == nil {
		return nil, fmt.Errorf("projectile %q: %w", cfg.Ranged.Projectile, ErrNilSpawner)
	}
	if deps.Damage == nil {
		deps.Damage = NopDamageSink{}
	}

	c := &Controller{
		cfg:         cfg,
		deps:        deps,
		aim:         Aim{Joint: deps.Joint, MaxSpeed: cfg.MaxAimSpeed},
		state:       Patrol,
		facingRight: true,
		dir:         1,
	}
	if deps.Target != nil {
		c.target = deps.Target.Discover()
	}
	return c, nil
}

// Tick advances the agent by dt seconds: cooldowns, perception, transition,
// behavior, aim. Without a target only the cooldowns move.
func (c *Controller) Tick(dt float64) {
	if c == nil || c.stopped {
		return
	}

	c.fireCooldown.Tick(dt)
	c.meleeCooldown.Tick(dt)

	p, ok := c.perceive()
	if !ok {
		return
	}

	c.setState(Transition(c.state, p.Distance, p.Visible, c.cfg.Ranges()))

	switch c.state {
	case Patrol:
		c.patrol(dt)
	case Chase:
		c.chase(p, dt)
	case Attack:
		c.attack(p, dt)
	}
}

func (c *Controller) setState(next State) {
	if next == c.state {
		return
	}
	prev := c.state
	c.state = next
	for _, l := range c.listeners {
		if l != nil {
			l(prev, next)
		}
	}
}

// OnStateChange registers a listener for state changes.
func (c *Controller) OnStateChange(l StateListener) {
	if c == nil || l == nil {
		return
	}
	c.listeners = append(c.listeners, l)
}

// Reconfigure swaps in a new configuration while keeping runtime state.
// The patrol cursor is wrapped into the new route.
func (c *Controller) Reconfigure(cfg Config) error {
	if c == nil {
		return nil
	}
	cfg = cfg.Normalize()
	if cfg.IsRanged() && c.deps.Spawner == nil {
		return fmt.Errorf("projectile %q: %w", cfg.Ranged.Projectile, ErrNilSpawner)
	}
	c.cfg = cfg
	c.aim.MaxSpeed = cfg.MaxAimSpeed
	if n := len(cfg.Patrol.Waypoints); n > 0 {
		c.cursor %= n
	} else {
		c.cursor = 0
	}
	return nil
}

// Stop is the external death signal. A stopped controller ignores Tick.
func (c *Controller) Stop() {
	if c != nil {
		c.stopped = true
	}
}

func (c *Controller) Stopped() bool {
	return c == nil || c.stopped
}

func (c *Controller) State() State {
	if c == nil {
		return Patrol
	}
	return c.state
}

func (c *Controller) FacingRight() bool {
	return c != nil && c.facingRight
}

func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

func (c *Controller) Target() Target {
	if c == nil {
		return nil
	}
	return c.target
}

// Snapshot is a read-only view of a controller for debugging and tooling.
type Snapshot struct {
	Entity        EntityID  `yaml:"entity"`
	State         string    `yaml:"state"`
	Mode          string    `yaml:"mode"`
	FacingRight   bool      `yaml:"facing_right"`
	Cursor        int       `yaml:"cursor"`
	Direction     float64   `yaml:"direction"`
	FireCooldown  float64   `yaml:"fire_cooldown"`
	MeleeCooldown float64   `yaml:"melee_cooldown"`
	Position      cp.Vector `yaml:"position,flow"`
	HasTarget     bool      `yaml:"has_target"`
}

func (c *Controller) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	mode := "melee"
	if c.cfg.IsRanged() {
		mode = "ranged"
	}
	hasTarget := false
	if c.target != nil {
		_, hasTarget = c.target.Position()
	}
	return Snapshot{
		Entity:        c.deps.Self,
		State:         c.state.String(),
		Mode:          mode,
		FacingRight:   c.facingRight,
		Cursor:        c.cursor,
		Direction:     c.dir,
		FireCooldown:  float64(c.fireCooldown),
		MeleeCooldown: float64(c.meleeCooldown),
		Position:      c.deps.Body.Position(),
		HasTarget:     hasTarget,
	}
}
