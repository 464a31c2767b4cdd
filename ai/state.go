package ai

// State is the controller's behavior state.
type State uint8

const (
	Patrol State = iota
	Chase
	Attack
)

func (s State) String() string {
	switch s {
	case Patrol:
		return "patrol"
	case Chase:
		return "chase"
	case Attack:
		return "attack"
	}
	return "unknown"
}

func (s State) Valid() bool {
	return s <= Attack
}

// ParseState maps a state name back to its value.
func ParseState(name string) (State, bool) {
	switch name {
	case "patrol":
		return Patrol, true
	case "chase":
		return Chase, true
	case "attack":
		return Attack, true
	}
	return Patrol, false
}

// Ranges are the distances the transition function compares against.
type Ranges struct {
	Detection float64
	Lose      float64
	Attack    float64
}

// Transition returns the next state. It is a pure function of its inputs.
//
// Leaving Attack requires the distance to exceed Attack*HysteresisFactor.
// Chase -> Attack does not look at visibility; Patrol -> * and Chase -> Patrol do.
// Patrol only reaches Attack inside the detection check, so with an attack
// range wider than the detection range a visible target between the two
// leaves the agent in Patrol. Config.Warnings reports that setup.
func Transition(s State, distance float64, visible bool, r Ranges) State {
	switch s {
	case Patrol:
		if distance <= r.Detection && visible {
			if distance <= r.Attack {
				return Attack
			}
			return Chase
		}
		return Patrol
	case Chase:
		if distance > r.Lose || !visible {
			return Patrol
		}
		if distance <= r.Attack {
			return Attack
		}
		return Chase
	case Attack:
		if distance > r.Attack*HysteresisFactor {
			if distance > r.Lose {
				return Patrol
			}
			return Chase
		}
		return Attack
	}
	return Patrol
}
