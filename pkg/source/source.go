// Package source generates the initial state of optical photons: where they
// start, which way they go and at what wavelength.
package source

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/material"
	"github.com/df07/go-photon-tracer/pkg/transport"
)

// ErrInvalidSource is returned for source settings that cannot generate photons
var ErrInvalidSource = errors.New("source: invalid settings")

// Generator produces photons ready for tracing
type Generator interface {
	Generate(sampler core.Sampler) transport.Photon
}

// DirectionMode selects how photon directions are drawn
type DirectionMode int

const (
	Isotropic DirectionMode = iota
	Vector                  // always along Direction
	Cone                    // uniform within ConeAngle of Direction
)

func (m DirectionMode) String() string {
	switch m {
	case Isotropic:
		return "isotropic"
	case Vector:
		return "vector"
	case Cone:
		return "cone"
	default:
		return fmt.Sprintf("DirectionMode(%d)", int(m))
	}
}

// PhotonSettings are the per-photon properties shared by every node of a source
type PhotonSettings struct {
	Mode      DirectionMode
	Direction core.Vec3
	ConeAngle float64 // half angle in degrees

	WaveIndex int // material.WaveUnresolved to leave the wavelength untracked
	Origin    transport.ScintOrigin
}

// DefaultPhotonSettings returns isotropic primary photons without a wavelength
func DefaultPhotonSettings() PhotonSettings {
	return PhotonSettings{
		Mode:      Isotropic,
		Direction: core.NewVec3(0, 0, 1),
		ConeAngle: 10,
		WaveIndex: material.WaveUnresolved,
		Origin:    transport.OriginPrimary,
	}
}

// Validate checks the direction settings
func (s PhotonSettings) Validate() error {
	switch s.Mode {
	case Isotropic:
	case Vector, Cone:
		if s.Direction.LengthSquared() == 0 {
			return fmt.Errorf("%w: zero direction for %s mode", ErrInvalidSource, s.Mode)
		}
		if s.Mode == Cone && (s.ConeAngle < 0 || s.ConeAngle > 180) {
			return fmt.Errorf("%w: cone angle %g", ErrInvalidSource, s.ConeAngle)
		}
	default:
		return fmt.Errorf("%w: direction mode %d", ErrInvalidSource, s.Mode)
	}
	if s.WaveIndex < material.WaveUnresolved {
		return fmt.Errorf("%w: wave index %d", ErrInvalidSource, s.WaveIndex)
	}
	return nil
}

func (s PhotonSettings) photon(position core.Vec3, sampler core.Sampler) transport.Photon {
	var dir core.Vec3
	switch s.Mode {
	case Vector:
		dir = s.Direction.Normalize()
	case Cone:
		cosWidth := math.Cos(s.ConeAngle * math.Pi / 180)
		dir = core.SampleCone(s.Direction, cosWidth, sampler.Get2D())
	default:
		dir = core.SampleOnUnitSphere(sampler.Get2D())
	}

	return transport.Photon{
		Position:  position,
		Direction: dir,
		WaveIndex: s.WaveIndex,
		Origin:    s.Origin,
	}
}

// PointSource emits every photon from one node
type PointSource struct {
	Position core.Vec3
	Photon   PhotonSettings
}

// NewPointSource creates a validated point source
func NewPointSource(position core.Vec3, settings PhotonSettings) (*PointSource, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &PointSource{Position: position, Photon: settings}, nil
}

// Generate implements Generator
func (s *PointSource) Generate(sampler core.Sampler) transport.Photon {
	return s.Photon.photon(s.Position, sampler)
}
