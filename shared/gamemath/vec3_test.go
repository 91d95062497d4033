package gamemath

import (
	"math"
	"testing"
)

func TestNormalizedZeroVector(t *testing.T) {
	got := Vec3{}.Normalized()
	if !got.IsZero() {
		t.Errorf("Normalized() of zero vector = %v, want zero", got)
	}
	if d := got.Dot(V2(1, 0)); d != 0 {
		t.Errorf("Dot with normalized zero vector = %v, want 0", d)
	}
}

func TestNormalizedUnitLength(t *testing.T) {
	tests := []Vec3{
		{X: 3, Y: 4},
		{X: -1, Y: 0, Z: 0},
		{X: 0.001, Y: 0.002, Z: -0.003},
	}
	for _, v := range tests {
		got := v.Normalized().Magnitude()
		if math.Abs(got-1) > 1e-12 {
			t.Errorf("|%v.Normalized()| = %v, want 1", v, got)
		}
	}
}

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		name                     string
		current, target, maxStep float64
		want                     float64
	}{
		{"step up", 0, 1, 0.06, 0.06},
		{"step down", 1, 0, 0.06, 0.94},
		{"snap when close", 0.5, 0.52, 0.06, 0.52},
		{"already there", 0.3, 0.3, 0.06, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveTowards(tt.current, tt.target, tt.maxStep)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MoveTowards(%v, %v, %v) = %v, want %v", tt.current, tt.target, tt.maxStep, got, tt.want)
			}
		})
	}
}

func TestApplyFriction(t *testing.T) {
	if got := ApplyFriction(2, 0.5); got != 1.5 {
		t.Errorf("ApplyFriction(2, 0.5) = %v, want 1.5", got)
	}
	if got := ApplyFriction(-0.2, 0.5); got != 0 {
		t.Errorf("ApplyFriction(-0.2, 0.5) = %v, want 0", got)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		v, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{3, 1},
		{math.Inf(1), 1},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.v); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
