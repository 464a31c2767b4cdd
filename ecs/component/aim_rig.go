package component

// AimRig is an arm or gun joint attached to a body. Offset is the pivot
// relative to the body center in unmirrored space; Rotation is local to the
// body and mirrored with it.
type AimRig struct {
	OffsetX        float64
	OffsetY        float64
	Rotation       float64
	MuzzleDistance float64
}

var AimRigComponent = NewComponent[AimRig]()
