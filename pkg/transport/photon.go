// Package transport traces single optical photons through a geometry until
// they are absorbed, escape, reach a detector or run out of transitions.
package transport

import (
	"fmt"

	"github.com/df07/go-photon-tracer/pkg/core"
)

// SpeedOfLight in vacuum, mm/ns
const SpeedOfLight = 299.7925

// ScintOrigin tags how a photon was produced; it only affects track colour
type ScintOrigin int

const (
	OriginUnknown ScintOrigin = iota
	OriginPrimary
	OriginSecondary
)

func (o ScintOrigin) String() string {
	switch o {
	case OriginUnknown:
		return "unknown"
	case OriginPrimary:
		return "primary"
	case OriginSecondary:
		return "secondary"
	default:
		return fmt.Sprintf("ScintOrigin(%d)", int(o))
	}
}

// Photon is the state of one optical photon. Direction is a unit vector and
// WaveIndex is material.WaveUnresolved when the wavelength is not tracked.
type Photon struct {
	Position  core.Vec3
	Direction core.Vec3
	Time      float64 // ns
	WaveIndex int
	Origin    ScintOrigin
}
