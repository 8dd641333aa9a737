package material

import (
	"fmt"

	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/optics"
)

// OverrideResult is the closed set of outcomes of an optical override
type OverrideResult int

const (
	OverrideNotTriggered OverrideResult = iota // Fresnel optics apply as usual
	OverrideAbsorbed                           // photon is killed at the surface
	OverrideBack                               // photon stays in the original volume
	OverrideForward                            // photon enters the next volume without refraction
)

func (r OverrideResult) String() string {
	switch r {
	case OverrideNotTriggered:
		return "not-triggered"
	case OverrideAbsorbed:
		return "absorbed"
	case OverrideBack:
		return "back"
	case OverrideForward:
		return "forward"
	default:
		return fmt.Sprintf("OverrideResult(%d)", int(r))
	}
}

// Override replaces Fresnel optics on one material interface.
// Calculate returns the outcome and the photon direction after the
// interaction. The normal may point either way across the surface.
type Override interface {
	Calculate(sampler core.Sampler, dir, normal core.Vec3) (OverrideResult, core.Vec3)
}

// ScatterModel selects the angular distribution of diffuse override scattering
type ScatterModel int

const (
	ScatterIsotropic      ScatterModel = iota // 4π, back or forward by hemisphere
	ScatterLambertBack                        // cosine law into the original volume
	ScatterLambertForward                     // cosine law into the next volume
)

// SimplisticOverride partitions each interaction into absorption, specular
// back-reflection, diffuse scattering, or falls through to Fresnel.
type SimplisticOverride struct {
	Absorption float64
	Specular   float64
	Scatter    float64
	Model      ScatterModel
}

// NewSimplisticOverride validates the probabilities
func NewSimplisticOverride(absorption, specular, scatter float64, model ScatterModel) (*SimplisticOverride, error) {
	for _, p := range []float64{absorption, specular, scatter} {
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("%w: override probability %g", ErrInvalidMaterial, p)
		}
	}
	if sum := absorption + specular + scatter; sum > 1+1e-12 {
		return nil, fmt.Errorf("%w: override probabilities sum to %g", ErrInvalidMaterial, sum)
	}
	if model < ScatterIsotropic || model > ScatterLambertForward {
		return nil, fmt.Errorf("%w: scatter model %d", ErrInvalidMaterial, model)
	}
	return &SimplisticOverride{Absorption: absorption, Specular: specular, Scatter: scatter, Model: model}, nil
}

// Calculate implements Override
func (o *SimplisticOverride) Calculate(sampler core.Sampler, dir, normal core.Vec3) (OverrideResult, core.Vec3) {
	// forward is the side the photon is heading to
	forward := normal
	if forward.Dot(dir) < 0 {
		forward = forward.Negate()
	}

	u := sampler.Get1D()
	if u < o.Absorption {
		return OverrideAbsorbed, dir
	}
	u -= o.Absorption
	if u < o.Specular {
		return OverrideBack, optics.Reflect(dir, forward)
	}
	u -= o.Specular
	if u < o.Scatter {
		switch o.Model {
		case ScatterLambertBack:
			return OverrideBack, core.SampleCosineHemisphere(forward.Negate(), sampler.Get2D())
		case ScatterLambertForward:
			return OverrideForward, core.SampleCosineHemisphere(forward, sampler.Get2D())
		default:
			newDir := core.SampleOnUnitSphere(sampler.Get2D())
			if newDir.Dot(forward) < 0 {
				return OverrideBack, newDir
			}
			return OverrideForward, newDir
		}
	}
	return OverrideNotTriggered, dir
}
