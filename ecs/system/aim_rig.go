package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/ecs/component"
)

// rigPivot returns the joint pivot in world space. The offset mirrors with
// the body.
func rigPivot(t *component.Transform, rig *component.AimRig) cp.Vector {
	ox := rig.OffsetX
	if !t.FacingRight() {
		ox = -ox
	}
	return cp.Vector{X: t.X + ox, Y: t.Y + rig.OffsetY}
}

// rigWorldAngle converts the rig's local rotation to a world angle.
func rigWorldAngle(t *component.Transform, rig *component.AimRig) float64 {
	if t.FacingRight() {
		return rig.Rotation
	}
	return math.Pi - rig.Rotation
}

// rigMuzzle is the point MuzzleDistance along the rig's world direction.
func rigMuzzle(t *component.Transform, rig *component.AimRig) cp.Vector {
	a := rigWorldAngle(t, rig)
	return rigPivot(t, rig).Add(cp.Vector{X: math.Cos(a), Y: math.Sin(a)}.Mult(rig.MuzzleDistance))
}

// localAimAngle is the local rotation that points the rig at target.
func localAimAngle(t *component.Transform, rig *component.AimRig, target cp.Vector) float64 {
	d := target.Sub(rigPivot(t, rig))
	if !t.FacingRight() {
		d.X = -d.X
	}
	return math.Atan2(d.Y, d.X)
}
