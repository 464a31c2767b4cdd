package ai

import "github.com/jakecoffman/cp"

type fakeBody struct {
	pos         cp.Vector
	vel         cp.Vector
	facingRight bool
	flips       int
}

func newFakeBody(x, y float64) *fakeBody {
	return &fakeBody{pos: cp.Vector{X: x, Y: y}, facingRight: true}
}

func (b *fakeBody) Position() cp.Vector     { return b.pos }
func (b *fakeBody) Velocity() cp.Vector     { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector) { b.vel = v }
func (b *fakeBody) SetFacing(right bool) {
	b.facingRight = right
	b.flips++
}

type rayCall struct {
	origin  cp.Vector
	dir     cp.Vector
	maxDist float64
	filter  Categories
}

// fakeWorld answers ray queries through a function; nil means nothing is hit.
type fakeWorld struct {
	raycast func(origin, dir cp.Vector, maxDist float64, filter Categories) (Hit, bool)
	calls   []rayCall
}

func (w *fakeWorld) Raycast(origin, dir cp.Vector, maxDist float64, filter Categories) (Hit, bool) {
	w.calls = append(w.calls, rayCall{origin: origin, dir: dir, maxDist: maxDist, filter: filter})
	if w.raycast == nil {
		return Hit{}, false
	}
	return w.raycast(origin, dir, maxDist, filter)
}

// groundedWorld reports ground under every downward probe and no walls.
func groundedWorld() *fakeWorld {
	return &fakeWorld{raycast: func(origin, dir cp.Vector, maxDist float64, filter Categories) (Hit, bool) {
		if dir.Y > 0 && dir.X == 0 {
			return Hit{Point: origin.Add(dir.Mult(maxDist / 2)), Entity: 99}, true
		}
		return Hit{}, false
	}}
}

type fakeTarget struct {
	id      EntityID
	pos     cp.Vector
	present bool
}

func newFakeTarget(x, y float64) *fakeTarget {
	return &fakeTarget{id: 7, pos: cp.Vector{X: x, Y: y}, present: true}
}

func (t *fakeTarget) ID() EntityID { return t.id }
func (t *fakeTarget) Position() (cp.Vector, bool) {
	return t.pos, t.present
}

type fakeJoint struct {
	pos      cp.Vector
	rot      float64
	mirrored bool
	sets     int
}

func (j *fakeJoint) Position() cp.Vector          { return j.pos }
func (j *fakeJoint) LocalRotation() float64       { return j.rot }
func (j *fakeJoint) SetLocalRotation(rad float64) { j.rot = rad; j.sets++ }
func (j *fakeJoint) Mirrored() bool               { return j.mirrored }

type damageCall struct {
	target EntityID
	amount int
}

type fakeDamage struct {
	calls []damageCall
}

func (d *fakeDamage) TakeDamage(target EntityID, amount int) {
	d.calls = append(d.calls, damageCall{target: target, amount: amount})
}

type fakeSpawner struct {
	reqs []ProjectileRequest
}

func (s *fakeSpawner) Spawn(req ProjectileRequest) {
	s.reqs = append(s.reqs, req)
}

type rig struct {
	body    *fakeBody
	world   *fakeWorld
	target  *fakeTarget
	joint   *fakeJoint
	damage  *fakeDamage
	spawner *fakeSpawner
}

func newRig() *rig {
	return &rig{
		body:    newFakeBody(0, 0),
		world:   groundedWorld(),
		target:  newFakeTarget(20, 0),
		joint:   &fakeJoint{},
		damage:  &fakeDamage{},
		spawner: &fakeSpawner{},
	}
}

func (r *rig) deps() Deps {
	return Deps{
		Self:    1,
		Body:    r.body,
		World:   r.world,
		Target:  FixedTarget(r.target),
		Joint:   r.joint,
		Damage:  r.damage,
		Spawner: r.spawner,
	}
}

func meleeConfig() Config {
	cfg := DefaultConfig()
	cfg.Ranged.Projectile = ""
	return cfg
}

func rangedConfig() Config {
	cfg := DefaultConfig()
	cfg.Ranged.Projectile = "bullet"
	return cfg
}
