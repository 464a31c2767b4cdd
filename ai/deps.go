package ai

import "github.com/jakecoffman/cp"

// EntityID identifies an entity in the host world. Zero means none.
type EntityID uint64

// Categories is an opaque set of world categories used to filter ray
// queries. Which categories block sight or count as ground is decided by
// configuration; the controller only passes the set through.
type Categories uint32

const (
	NoCategories  Categories = 0
	AllCategories Categories = ^Categories(0)
)

func (c Categories) Has(o Categories) bool {
	return c&o != 0
}

// Hit is the nearest intersection reported by a ray query.
type Hit struct {
	Point  cp.Vector
	Entity EntityID
}

// WorldQuery is the read-only physics surface the controller probes.
// A query that finds nothing returns ok == false.
type WorldQuery interface {
	Raycast(origin, dir cp.Vector, maxDist float64, filter Categories) (hit Hit, ok bool)
}

// Target is a handle to the tracked entity. Position reports ok == false
// once the entity is gone.
type Target interface {
	ID() EntityID
	Position() (cp.Vector, bool)
}

// Discovery resolves the target once when a controller is built.
type Discovery interface {
	Discover() Target
}

type DiscoveryFunc func() Target

func (f DiscoveryFunc) Discover() Target {
	if f == nil {
		return nil
	}
	return f()
}

// FixedTarget is a Discovery for an explicitly provided handle.
func FixedTarget(t Target) Discovery {
	return DiscoveryFunc(func() Target { return t })
}

// Body is the agent's rigid body.
type Body interface {
	Position() cp.Vector
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	SetFacing(right bool)
}

// Joint is a rotatable child of the body. Rotation is local, in radians.
// Mirrored reports whether the parent is horizontally flipped.
type Joint interface {
	Position() cp.Vector
	LocalRotation() float64
	SetLocalRotation(rad float64)
	Mirrored() bool
}

// Locator is anything with a world position, e.g. a muzzle point.
type Locator interface {
	Position() cp.Vector
}

// DamageSink applies damage to an entity. Calls are fire-and-forget and must
// be harmless for entities that cannot take damage.
type DamageSink interface {
	TakeDamage(target EntityID, amount int)
}

// NopDamageSink ignores every request.
type NopDamageSink struct{}

func (NopDamageSink) TakeDamage(EntityID, int) {}

// ProjectileRequest asks the host to create a projectile. Rotation is in
// radians, Lifetime in seconds.
type ProjectileRequest struct {
	Owner    EntityID
	Prefab   string
	Position cp.Vector
	Rotation float64
	Velocity cp.Vector
	Lifetime float64
}

type ProjectileSpawner interface {
	Spawn(req ProjectileRequest)
}

type SpawnerFunc func(req ProjectileRequest)

func (f SpawnerFunc) Spawn(req ProjectileRequest) {
	if f != nil {
		f(req)
	}
}

// Deps are the collaborators handed to a controller at construction.
// Body and World are required; Spawner is required for ranged profiles.
// Joint, Muzzle and Target may be nil.
type Deps struct {
	Self    EntityID
	Body    Body
	World   WorldQuery
	Target  Discovery
	Joint   Joint
	Muzzle  Locator
	Damage  DamageSink
	Spawner ProjectileSpawner
}
