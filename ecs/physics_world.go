package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/common"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/levels"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBody
)

// RayHit is the nearest shape found by a ray or segment query.
type RayHit struct {
	Point  cp.Vector
	Normal cp.Vector
	Alpha  float64
	// Entity is zero for level geometry.
	Entity Entity
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
	group uint
}

// PhysicsWorld owns the Chipmunk space, the merged static tile shapes and one
// dynamic body per physical entity. Units are tiles.
type PhysicsWorld struct {
	level *levels.Level
	space *cp.Space

	shapeToEntity map[*cp.Shape]Entity
	bodies        map[Entity]*bodyInfo
	nextGroup     uint
}

// NewPhysicsWorld creates a physics world for a level. A nil level gives an
// empty space.
func NewPhysicsWorld(level *levels.Level) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	pw := &PhysicsWorld{
		level:         level,
		space:         space,
		shapeToEntity: make(map[*cp.Shape]Entity),
		bodies:        make(map[Entity]*bodyInfo),
	}
	pw.buildStaticShapes()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// Level returns the level the static shapes were built from.
func (pw *PhysicsWorld) Level() *levels.Level {
	if pw == nil {
		return nil
	}
	return pw.level
}

// AddBox adds a solid axis-aligned box to the static body.
func (pw *PhysicsWorld) AddBox(bb cp.BB) {
	if pw == nil || pw.space == nil {
		return
	}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: component.CategorySolid, Mask: cp.ALL_CATEGORIES})
	pw.space.AddShape(shape)
}

// EnsureBody creates a box body for e centered on t. Each body gets its own
// filter group so queries issued on behalf of e can skip it.
func (pw *PhysicsWorld) EnsureBody(e Entity, t *component.Transform, c *component.Collider) *component.PhysicsBody {
	if pw == nil || pw.space == nil || !e.Valid() || t == nil || c == nil {
		return nil
	}
	if info, ok := pw.bodies[e]; ok {
		return &component.PhysicsBody{Body: info.body, Shape: info.shape}
	}

	var body *cp.Body
	if c.Static {
		body = cp.NewKinematicBody()
	} else {
		mass := c.Mass
		if mass <= 0 {
			mass = 1
		}
		body = cp.NewBody(mass, math.Inf(1))
	}
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})

	shape := cp.NewBox(body, c.Width, c.Height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeBody)

	pw.nextGroup++
	category := c.Category
	if category == 0 {
		category = component.CategorySolid
	}
	mask := c.Mask
	if mask == 0 {
		mask = cp.ALL_CATEGORIES
	}
	shape.SetFilter(cp.ShapeFilter{Group: pw.nextGroup, Categories: category, Mask: mask})

	pw.space.AddBody(body)
	pw.space.AddShape(shape)

	pw.shapeToEntity[shape] = e
	pw.bodies[e] = &bodyInfo{body: body, shape: shape, group: pw.nextGroup}
	return &component.PhysicsBody{Body: body, Shape: shape}
}

// RemoveEntity drops e's body and shape from the space.
func (pw *PhysicsWorld) RemoveEntity(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	info, ok := pw.bodies[e]
	if !ok {
		return
	}
	delete(pw.bodies, e)
	delete(pw.shapeToEntity, info.shape)
	pw.space.RemoveShape(info.shape)
	pw.space.RemoveBody(info.body)
}

// Teleport moves e's body and clears its velocity.
func (pw *PhysicsWorld) Teleport(e Entity, pos cp.Vector) {
	if pw == nil {
		return
	}
	info, ok := pw.bodies[e]
	if !ok {
		return
	}
	info.body.SetPosition(pos)
	info.body.SetVelocityVector(cp.Vector{})
	pw.space.ReindexShapesForBody(info.body)
}

// Raycast casts from origin along dir for maxDist and returns the nearest
// shape whose category is in mask. Shapes owned by ignore are skipped.
func (pw *PhysicsWorld) Raycast(origin, dir cp.Vector, maxDist float64, mask uint, ignore Entity) (RayHit, bool) {
	if maxDist <= 0 {
		return RayHit{}, false
	}
	return pw.Segment(origin, origin.Add(dir.Mult(maxDist)), mask, ignore)
}

// Segment is Raycast with explicit end points.
func (pw *PhysicsWorld) Segment(start, end cp.Vector, mask uint, ignore Entity) (RayHit, bool) {
	if pw == nil || pw.space == nil {
		return RayHit{}, false
	}
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: mask}
	if info, ok := pw.bodies[ignore]; ok {
		filter.Group = info.group
	}
	info := pw.space.SegmentQueryFirst(start, end, 0, filter)
	if info.Shape == nil {
		return RayHit{}, false
	}
	return RayHit{
		Point:  info.Point,
		Normal: info.Normal,
		Alpha:  info.Alpha,
		Entity: pw.shapeToEntity[info.Shape],
	}, true
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}

func (pw *PhysicsWorld) buildStaticShapes() {
	if pw == nil || pw.space == nil || pw.level == nil {
		return
	}
	for i, layer := range pw.level.Layers {
		if len(layer) != pw.level.Width*pw.level.Height || !pw.level.LayerHasPhysics(i) {
			continue
		}
		pw.processLayerTiles(layer)
	}

	worldW := float64(pw.level.Width)
	worldH := float64(pw.level.Height)
	if worldW <= 0 || worldH <= 0 {
		return
	}
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(pw.space.StaticBody, seg.a, seg.b, 0.05)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: component.CategorySolid, Mask: cp.ALL_CATEGORIES})
		pw.space.AddShape(shape)
	}
}

// processLayerTiles merges runs of solid tiles into as few boxes as it can:
// grow right first, then grow the whole run down.
func (pw *PhysicsWorld) processLayerTiles(layer []int) {
	width, height := pw.level.Width, pw.level.Height
	processed := make([]bool, width*height)
	solid := func(idx int) bool {
		return !processed[idx] && layer[idx] != 0
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if !solid(idx) {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < width && solid(y*width+x+w) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					if !solid((y+h)*width + xi) {
						break heightLoop
					}
				}
				h++
			}

			x0, y0 := float64(x), float64(y)
			pw.AddBox(cp.BB{L: x0, B: y0, R: x0 + float64(w), T: y0 + float64(h)})

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*width+xx] = true
				}
			}
		}
	}
}
