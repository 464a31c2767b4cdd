package component

// Input stores per-frame input state for an entity. AimX/AimY is the cursor
// in world units.
type Input struct {
	MoveX       float64
	Jump        bool
	JumpPressed bool
	Fire        bool
	AimX        float64
	AimY        float64
}

var InputComponent = NewComponent[Input]()
