package component

// Transform is the entity's center in tiles. A negative ScaleX mirrors the
// entity to face left.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

func (t Transform) FacingRight() bool {
	return t.ScaleX >= 0
}

var TransformComponent = NewComponent[Transform]()
