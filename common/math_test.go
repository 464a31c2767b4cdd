package common

import (
	"math"
	"testing"
)

func TestMoveTowardsAngle(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		target   float64
		maxDelta float64
		want     float64
	}{
		{"within_step_snaps", 0, 0.1, 0.5, 0.1},
		{"clamped_positive", 0, 1, 0.25, 0.25},
		{"clamped_negative", 0, -1, 0.25, -0.25},
		{"shortest_path_across_pi", Deg2Rad(170), Deg2Rad(-170), Deg2Rad(5), Deg2Rad(175)},
		{"shortest_path_back_across_pi", Deg2Rad(-170), Deg2Rad(170), Deg2Rad(5), Deg2Rad(-175)},
		{"zero_step_holds", 0.3, 1, 0, 0.3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := MoveTowardsAngle(c.current, c.target, c.maxDelta)
			if math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestWrapAngle(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}
	for _, c := range cases {
		if got := WrapAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("WrapAngle(%v): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestSign(t *testing.T) {
	if Sign(2) != 1 || Sign(-0.5) != -1 || Sign(0) != 0 {
		t.Fatalf("unexpected sign results")
	}
}
