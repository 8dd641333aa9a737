package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-photon-tracer/pkg/core"
)

// Sphere is a ball centred on the volume origin
type Sphere struct {
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(radius float64) *Sphere {
	return &Sphere{Radius: radius}
}

// Validate implements Solid
func (s *Sphere) Validate() error {
	if s.Radius <= 0 {
		return fmt.Errorf("%w: sphere radius %g", ErrInvalidShape, s.Radius)
	}
	return nil
}

// Contains implements Solid
func (s *Sphere) Contains(p core.Vec3) bool {
	return p.LengthSquared() <= s.Radius*s.Radius
}

// Intersect solves |o + t*d|² = r² for both roots
func (s *Sphere) Intersect(ray core.Ray) (float64, float64, bool) {
	oc := ray.Origin

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	return (-halfB - sqrtD) / a, (-halfB + sqrtD) / a, true
}

// Normal points from the centre to p
func (s *Sphere) Normal(p core.Vec3) core.Vec3 {
	if p.LengthSquared() == 0 {
		return core.NewVec3(0, 0, 1)
	}
	return p.Normalize()
}
