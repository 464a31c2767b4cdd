package common

import "math"

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Sign returns -1, 0 or 1. Zero maps to zero, unlike a float copysign.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// WrapAngle maps an angle in radians into (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// DeltaAngle returns the shortest signed difference from current to target.
func DeltaAngle(current, target float64) float64 {
	return WrapAngle(target - current)
}

// MoveTowardsAngle rotates current toward target by at most maxDelta radians
// along the shortest arc. The result is wrapped into (-pi, pi].
func MoveTowardsAngle(current, target, maxDelta float64) float64 {
	delta := DeltaAngle(current, target)
	if math.Abs(delta) <= maxDelta {
		return WrapAngle(target)
	}
	return WrapAngle(current + Sign(delta)*maxDelta)
}

func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

func Rad2Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}
