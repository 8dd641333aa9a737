package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-photon-tracer/pkg/core"
)

// Box is an axis-aligned box given by its half-extents
type Box struct {
	Half core.Vec3 // half size along each axis (so (1,1,1) is a 2x2x2 box)
}

// NewBox creates a box with the given half-extents
func NewBox(halfX, halfY, halfZ float64) *Box {
	return &Box{Half: core.NewVec3(halfX, halfY, halfZ)}
}

// Validate implements Solid
func (b *Box) Validate() error {
	if b.Half.X <= 0 || b.Half.Y <= 0 || b.Half.Z <= 0 {
		return fmt.Errorf("%w: box half-extents %v", ErrInvalidShape, b.Half)
	}
	return nil
}

// Contains implements Solid
func (b *Box) Contains(p core.Vec3) bool {
	return math.Abs(p.X) <= b.Half.X && math.Abs(p.Y) <= b.Half.Y && math.Abs(p.Z) <= b.Half.Z
}

// Intersect clips the ray against the three slabs of the box
func (b *Box) Intersect(ray core.Ray) (float64, float64, bool) {
	tNear, tFar := math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		half := b.Half.Axis(axis)
		var ok bool
		tNear, tFar, ok = slab(ray.Origin.Axis(axis), ray.Direction.Axis(axis), -half, half, tNear, tFar)
		if !ok {
			return 0, 0, false
		}
	}
	return tNear, tFar, true
}

// Normal returns the normal of the face nearest to p
func (b *Box) Normal(p core.Vec3) core.Vec3 {
	best := 0
	bestGap := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		gap := math.Abs(b.Half.Axis(axis) - math.Abs(p.Axis(axis)))
		if gap < bestGap {
			best, bestGap = axis, gap
		}
	}

	sign := 1.0
	if p.Axis(best) < 0 {
		sign = -1.0
	}
	switch best {
	case 0:
		return core.NewVec3(sign, 0, 0)
	case 1:
		return core.NewVec3(0, sign, 0)
	default:
		return core.NewVec3(0, 0, sign)
	}
}
