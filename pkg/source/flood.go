package source

import (
	"fmt"
	"math"

	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/transport"
)

// FloodShape is the transverse area a flood source covers
type FloodShape int

const (
	Rectangular FloodShape = iota
	Ring
)

// FloodSource spreads photon nodes uniformly over an area in XY and either a
// fixed Z or a Z range
type FloodSource struct {
	Shape FloodShape

	// Rectangular
	XFrom, XTo float64
	YFrom, YTo float64

	// Ring, centred on (X0, Y0)
	X0, Y0        float64
	OuterDiameter float64
	InnerDiameter float64

	ZFrom, ZTo float64 // equal for a fixed Z

	Photon PhotonSettings
}

// NewRectangularFlood covers [xFrom, xTo] x [yFrom, yTo] at height z
func NewRectangularFlood(xFrom, xTo, yFrom, yTo, z float64, settings PhotonSettings) (*FloodSource, error) {
	s := &FloodSource{
		Shape:  Rectangular,
		XFrom:  xFrom,
		XTo:    xTo,
		YFrom:  yFrom,
		YTo:    yTo,
		ZFrom:  z,
		ZTo:    z,
		Photon: settings,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewRingFlood covers an annulus around (x0, y0) at height z
func NewRingFlood(x0, y0, outerDiameter, innerDiameter, z float64, settings PhotonSettings) (*FloodSource, error) {
	s := &FloodSource{
		Shape:         Ring,
		X0:            x0,
		Y0:            y0,
		OuterDiameter: outerDiameter,
		InnerDiameter: innerDiameter,
		ZFrom:         z,
		ZTo:           z,
		Photon:        settings,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// WithZRange returns a copy of the source spread over [zFrom, zTo]
func (s FloodSource) WithZRange(zFrom, zTo float64) (*FloodSource, error) {
	s.ZFrom, s.ZTo = zFrom, zTo
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the area and Z settings
func (s *FloodSource) Validate() error {
	switch s.Shape {
	case Rectangular:
		if s.XTo < s.XFrom || s.YTo < s.YFrom {
			return fmt.Errorf("%w: empty rectangle [%g, %g] x [%g, %g]", ErrInvalidSource, s.XFrom, s.XTo, s.YFrom, s.YTo)
		}
	case Ring:
		if s.InnerDiameter < 0 || s.OuterDiameter < s.InnerDiameter {
			return fmt.Errorf("%w: ring diameters %g / %g", ErrInvalidSource, s.OuterDiameter, s.InnerDiameter)
		}
	default:
		return fmt.Errorf("%w: flood shape %d", ErrInvalidSource, s.Shape)
	}
	if s.ZTo < s.ZFrom {
		return fmt.Errorf("%w: z range [%g, %g]", ErrInvalidSource, s.ZFrom, s.ZTo)
	}
	return s.Photon.Validate()
}

// Generate implements Generator
func (s *FloodSource) Generate(sampler core.Sampler) transport.Photon {
	var x, y float64
	if s.Shape == Ring {
		// uniform in area: r² is uniform between the inner and outer radius
		rIn, rOut := 0.5*s.InnerDiameter, 0.5*s.OuterDiameter
		uv := sampler.Get2D()
		r := math.Sqrt(rIn*rIn + uv.X*(rOut*rOut-rIn*rIn))
		phi := 2 * math.Pi * uv.Y
		x, y = s.X0+r*math.Cos(phi), s.Y0+r*math.Sin(phi)
	} else {
		uv := sampler.Get2D()
		x = s.XFrom + uv.X*(s.XTo-s.XFrom)
		y = s.YFrom + uv.Y*(s.YTo-s.YFrom)
	}

	z := s.ZFrom
	if s.ZTo > s.ZFrom {
		z += sampler.Get1D() * (s.ZTo - s.ZFrom)
	}

	return s.Photon.photon(core.NewVec3(x, y, z), sampler)
}
