// Package optics implements the dielectric interface optics used at every
// boundary crossing: Fresnel reflectance, Snell refraction and mirror
// reflection.
//
// Normals passed to this package may point either way across the interface.
// Reflectance only depends on |N·K|, reflection is symmetric in the sign of N,
// and Refract orients N along the direction of travel before applying Snell.
package optics

import (
	"errors"
	"math"

	"github.com/df07/go-photon-tracer/pkg/core"
)

// ErrNotTransmissible is returned when a refraction is requested for an
// incidence that can only be totally internally reflected.
var ErrNotTransmissible = errors.New("optics: refraction discriminant is negative")

// Reflectance calculates the unpolarised Fresnel reflection probability for a
// photon travelling along dir hitting an interface with the given normal,
// going from refractive index nFrom into nTo.
func Reflectance(normal, dir core.Vec3, nFrom, nTo float64) float64 {
	nk := normal.Dot(dir)
	cos1 := math.Abs(nk)

	sin1 := math.Sqrt(math.Max(0, 1.0-nk*nk))
	sin2 := nFrom / nTo * sin1

	if math.Abs(sin2) > 1.0 {
		// Total internal reflection
		return 1.0
	}

	cos2 := math.Sqrt(1.0 - sin2*sin2)

	rs := (nFrom*cos1 - nTo*cos2) / (nFrom*cos1 + nTo*cos2)
	rs *= rs
	rp := (nFrom*cos2 - nTo*cos1) / (nFrom*cos2 + nTo*cos1)
	rp *= rp

	return 0.5 * (rs + rp)
}

// TotalInternalReflection reports whether transmission is impossible
func TotalInternalReflection(normal, dir core.Vec3, nFrom, nTo float64) bool {
	nk := normal.Dot(dir)
	sin1 := math.Sqrt(math.Max(0, 1.0-nk*nk))
	return math.Abs(nFrom/nTo*sin1) > 1.0
}

// Reflect mirrors dir about the surface: K' = K - 2(N·K)N
func Reflect(dir, normal core.Vec3) core.Vec3 {
	return dir.Subtract(normal.Multiply(2 * dir.Dot(normal)))
}

// Refract returns the transmitted direction using Snell's law, with
// eta = nFrom/nTo:
//
//	T = -(eta(N·K) - sqrt(1 - eta²(1 - (N·K)²)))N + eta K
func Refract(dir, normal core.Vec3, eta float64) (core.Vec3, error) {
	nk := normal.Dot(dir)
	if nk < 0 {
		normal = normal.Negate()
		nk = -nk
	}

	underRoot := 1.0 - eta*eta*(1.0-nk*nk)
	if underRoot < 0 {
		return dir, ErrNotTransmissible
	}

	tmp := eta*nk - math.Sqrt(underRoot)
	return normal.Multiply(-tmp).Add(dir.Multiply(eta)), nil
}
