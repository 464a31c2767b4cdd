package ai

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/common"
)

const minAimDirLengthSq = 0.0001

// Aim rotates a joint independently of the body. A nil Joint makes every
// call a no-op.
type Aim struct {
	Joint    Joint
	MaxSpeed float64
}

// RotateToward turns the joint toward p, moving at most MaxSpeed*dt radians
// unless MaxSpeed is zero, in which case it snaps.
func (a Aim) RotateToward(p cp.Vector, dt float64) {
	if a.Joint == nil {
		return
	}
	dir := p.Sub(a.Joint.Position())
	if a.Joint.Mirrored() {
		dir.X = -dir.X
	}
	if dir.LengthSq() <= minAimDirLengthSq {
		return
	}
	target := math.Atan2(dir.Y, dir.X)
	if a.MaxSpeed <= 0 {
		a.Joint.SetLocalRotation(target)
		return
	}
	a.Joint.SetLocalRotation(common.MoveTowardsAngle(a.Joint.LocalRotation(), target, a.MaxSpeed*dt))
}

// ResetToNeutral returns the joint toward zero rotation.
func (a Aim) ResetToNeutral(dt float64) {
	if a.Joint == nil {
		return
	}
	speed := a.MaxSpeed
	if speed <= 0 {
		speed = NeutralAimSpeed
	}
	a.Joint.SetLocalRotation(common.MoveTowardsAngle(a.Joint.LocalRotation(), 0, speed*dt))
}
