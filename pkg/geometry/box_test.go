package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-photon-tracer/pkg/core"
)

func TestBox_Contains(t *testing.T) {
	box := NewBox(1, 2, 3)

	tests := []struct {
		name  string
		point core.Vec3
		want  bool
	}{
		{"centre", core.NewVec3(0, 0, 0), true},
		{"inside corner", core.NewVec3(0.5, -1.5, 2.9), true},
		{"on face", core.NewVec3(1, 0, 0), true},
		{"outside x", core.NewVec3(1.1, 0, 0), false},
		{"outside z", core.NewVec3(0, 0, -3.5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Contains(tt.point); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestBox_Intersect(t *testing.T) {
	box := NewBox(1, 2, 3)

	tests := []struct {
		name     string
		ray      core.Ray
		wantHit  bool
		wantNear float64
		wantFar  float64
	}{
		{"from outside", core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0)), true, 4, 6},
		{"from inside", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), true, -3, 3},
		{"parallel miss", core.NewRay(core.NewVec3(-5, 5, 0), core.NewVec3(1, 0, 0)), false, 0, 0},
		{"pointing away", core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, 1)), true, -13, -7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			near, far, ok := box.Intersect(tt.ray)
			if ok != tt.wantHit {
				t.Fatalf("Intersect hit = %v, want %v", ok, tt.wantHit)
			}
			if !ok {
				return
			}
			if math.Abs(near-tt.wantNear) > 1e-9 || math.Abs(far-tt.wantFar) > 1e-9 {
				t.Errorf("Intersect = (%g, %g), want (%g, %g)", near, far, tt.wantNear, tt.wantFar)
			}
		})
	}
}

func TestBox_Normal(t *testing.T) {
	box := NewBox(1, 2, 3)

	tests := []struct {
		point core.Vec3
		want  core.Vec3
	}{
		{core.NewVec3(1, 0.2, 0.3), core.NewVec3(1, 0, 0)},
		{core.NewVec3(0, -2, 0), core.NewVec3(0, -1, 0)},
		{core.NewVec3(0.1, 0.1, 3), core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		if got := box.Normal(tt.point); got != tt.want {
			t.Errorf("Normal(%v) = %v, want %v", tt.point, got, tt.want)
		}
	}
}

func TestBox_Validate(t *testing.T) {
	if err := NewBox(1, 1, 1).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := NewBox(1, 0, 1).Validate(); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("expected ErrInvalidShape, got %v", err)
	}
}
