package geometry

import (
	"errors"

	"github.com/df07/go-photon-tracer/pkg/core"
)

// ErrInvalidShape is returned for solids with non-positive dimensions
var ErrInvalidShape = errors.New("geometry: invalid shape")

// Solid is a convex shape centred on the origin of its volume's frame.
// All coordinates are local to the volume.
type Solid interface {
	// Contains reports whether p is inside or on the surface
	Contains(p core.Vec3) bool
	// Intersect returns the chord of the ray through the solid. tNear may be
	// negative when the ray starts inside.
	Intersect(ray core.Ray) (tNear, tFar float64, ok bool)
	// Normal returns the outward unit normal of the surface closest to p
	Normal(p core.Vec3) core.Vec3
	// Validate checks the dimensions
	Validate() error
}

// parallelEpsilon below which a direction component is treated as zero
const parallelEpsilon = 1e-12

// slab clips the interval [tNear, tFar] to the slab lo <= origin + t*dir <= hi
func slab(origin, dir, lo, hi, tNear, tFar float64) (float64, float64, bool) {
	if dir > -parallelEpsilon && dir < parallelEpsilon {
		// parallel: either always inside the slab or never
		if origin < lo || origin > hi {
			return tNear, tFar, false
		}
		return tNear, tFar, true
	}
	inv := 1.0 / dir
	t1 := (lo - origin) * inv
	t2 := (hi - origin) * inv
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > tNear {
		tNear = t1
	}
	if t2 < tFar {
		tFar = t2
	}
	return tNear, tFar, tNear <= tFar
}
