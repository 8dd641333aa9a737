package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-photon-tracer/pkg/core"
)

// Cylinder is a capped cylinder centred on the volume origin
type Cylinder struct {
	Axis       core.Vec3 // unit vector along the cylinder
	Radius     float64
	HalfLength float64
}

// NewCylinder creates a cylinder along axis; axis is normalized
func NewCylinder(axis core.Vec3, radius, halfLength float64) *Cylinder {
	return &Cylinder{Axis: axis.Normalize(), Radius: radius, HalfLength: halfLength}
}

// Validate implements Solid
func (c *Cylinder) Validate() error {
	if c.Radius <= 0 || c.HalfLength <= 0 {
		return fmt.Errorf("%w: cylinder radius %g half-length %g", ErrInvalidShape, c.Radius, c.HalfLength)
	}
	if !c.Axis.IsUnit(1e-9) {
		return fmt.Errorf("%w: cylinder axis %v", ErrInvalidShape, c.Axis)
	}
	return nil
}

// Contains implements Solid
func (c *Cylinder) Contains(p core.Vec3) bool {
	h := p.Dot(c.Axis)
	if math.Abs(h) > c.HalfLength {
		return false
	}
	radial := p.Subtract(c.Axis.Multiply(h))
	return radial.LengthSquared() <= c.Radius*c.Radius
}

// Intersect clips the infinite-cylinder chord against the two caps
func (c *Cylinder) Intersect(ray core.Ray) (float64, float64, bool) {
	delta := ray.Origin

	DV := ray.Direction.Dot(c.Axis) // D · V̂
	deltaV := delta.Dot(c.Axis)     // Δ · V̂

	// a = |D|² - (D·V̂)², b = 2[Δ·D - (Δ·V̂)(D·V̂)], cc = |Δ|² - (Δ·V̂)² - r²
	a := ray.Direction.LengthSquared() - DV*DV
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*DV)
	cc := delta.LengthSquared() - deltaV*deltaV - c.Radius*c.Radius

	tNear, tFar := math.Inf(-1), math.Inf(1)
	if math.Abs(a) < 1e-12 {
		// parallel to the axis
		if cc > 0 {
			return 0, 0, false
		}
	} else {
		discriminant := b*b - 4*a*cc
		if discriminant < 0 {
			return 0, 0, false
		}
		sqrtD := math.Sqrt(discriminant)
		tNear = (-b - sqrtD) / (2 * a)
		tFar = (-b + sqrtD) / (2 * a)
	}

	return slab(deltaV, DV, -c.HalfLength, c.HalfLength, tNear, tFar)
}

// Normal returns the cap normal near the caps, the radial direction otherwise
func (c *Cylinder) Normal(p core.Vec3) core.Vec3 {
	h := p.Dot(c.Axis)
	radial := p.Subtract(c.Axis.Multiply(h))
	r := radial.Length()

	if c.HalfLength-math.Abs(h) < math.Abs(c.Radius-r) || r == 0 {
		if h < 0 {
			return c.Axis.Negate()
		}
		return c.Axis
	}
	return radial.Multiply(1 / r)
}
