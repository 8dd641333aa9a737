package transport

import (
	"math"

	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/material"
)

// InteractionKind is the result of the bulk process competition
type InteractionKind int

const (
	NoInteraction InteractionKind = iota
	Absorbed
	Reemitted
	Scattered
)

func (k InteractionKind) String() string {
	switch k {
	case NoInteraction:
		return "none"
	case Absorbed:
		return "absorbed"
	case Reemitted:
		return "reemitted"
	case Scattered:
		return "scattered"
	default:
		return "unknown"
	}
}

// Interaction describes what happened before the next boundary
type Interaction struct {
	Kind      InteractionKind
	Distance  float64 // from the starting point, zero for NoInteraction
	Direction core.Vec3
	WaveIndex int
}

// SelectProcess decides whether bulk absorption or Rayleigh scattering
// happens within step along the photon's direction.
//
// A zero absorption coefficient or Rayleigh mean free path skips that process
// without drawing a random number. When both trigger the shorter path wins
// and absorption wins ties. On any interaction the photon is moved to the
// interaction point and its time, direction and wave index are updated.
func SelectProcess(mat *material.Material, ph *Photon, step float64, sampler core.Sampler, maxAttempts int) Interaction {
	wave := ph.WaveIndex

	absPath := math.Inf(1)
	if mu := mat.AbsorptionAt(wave); mu > 0 {
		absPath = -math.Log(sampler.Get1D()) / mu
	}
	rayPath := math.Inf(1)
	if mfp := mat.RayleighAt(wave); mfp > 0 {
		rayPath = -mfp * math.Log(sampler.Get1D())
	}

	doAbs := absPath < step
	doRay := rayPath < step
	switch {
	case doAbs && (!doRay || absPath <= rayPath):
		return absorb(mat, ph, absPath, sampler, maxAttempts)
	case doRay:
		return scatter(mat, ph, rayPath, sampler)
	default:
		return Interaction{Kind: NoInteraction, Direction: ph.Direction, WaveIndex: wave}
	}
}

func advance(mat *material.Material, ph *Photon, distance float64) {
	ph.Position = ph.Position.Add(ph.Direction.Multiply(distance))
	ph.Time += distance * mat.RefractiveIndexAt(ph.WaveIndex) / SpeedOfLight
}

// absorb handles a bulk absorption, re-emitting the photon when the material
// is a wavelength shifter
func absorb(mat *material.Material, ph *Photon, distance float64, sampler core.Sampler, maxAttempts int) Interaction {
	advance(mat, ph, distance)
	absorbed := Interaction{Kind: Absorbed, Distance: distance, Direction: ph.Direction, WaveIndex: ph.WaveIndex}

	if mat.ReemissionProb <= 0 || sampler.Get1D() >= mat.ReemissionProb {
		return absorbed
	}
	if mat.EmissionSpectrum == nil {
		return absorbed
	}

	if ph.WaveIndex != material.WaveUnresolved {
		wave, ok := sampleEmission(mat.EmissionSpectrum, ph.WaveIndex, sampler, maxAttempts)
		if !ok {
			return absorbed
		}
		ph.WaveIndex = wave
	}
	ph.Direction = core.SampleOnUnitSphere(sampler.Get2D())

	return Interaction{Kind: Reemitted, Distance: distance, Direction: ph.Direction, WaveIndex: ph.WaveIndex}
}

// sampleEmission draws a wave index not shorter than the absorbed one.
// Larger wave index is longer wavelength, so the photon never gains energy.
func sampleEmission(spectrum material.Spectrum, original int, sampler core.Sampler, maxAttempts int) (int, bool) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if wave := spectrum.SampleWaveIndex(sampler); wave >= original {
			return wave, true
		}
	}
	return original, false
}

// scatter performs a Rayleigh scattering, sampling the new direction from the
// dipole distribution 1 + cos²θ by rejection
func scatter(mat *material.Material, ph *Photon, distance float64, sampler core.Sampler) Interaction {
	advance(mat, ph, distance)

	old := ph.Direction
	for {
		candidate := core.SampleOnUnitSphere(sampler.Get2D())
		cos := candidate.Dot(old)
		if cos*cos+1.0 >= 2.0*sampler.Get1D() {
			ph.Direction = candidate
			break
		}
	}

	return Interaction{Kind: Scattered, Distance: distance, Direction: ph.Direction, WaveIndex: ph.WaveIndex}
}
