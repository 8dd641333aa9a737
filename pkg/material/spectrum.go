package material

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/df07/go-photon-tracer/pkg/core"
)

// Spectrum samples wave indices from an emission spectrum
type Spectrum interface {
	SampleWaveIndex(sampler core.Sampler) int
}

// ErrEmptySpectrum is returned for spectra without positive weight
var ErrEmptySpectrum = errors.New("material: spectrum has no positive weight")

// BinnedSpectrum is an emission spectrum tabulated on the wave grid.
// Sampling inverts the cumulative distribution of the bin weights.
type BinnedSpectrum struct {
	cdf []float64
}

// NewBinnedSpectrum creates a spectrum from per-wave-index weights
func NewBinnedSpectrum(weights []float64) (*BinnedSpectrum, error) {
	if len(weights) == 0 {
		return nil, ErrEmptySpectrum
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("material: spectrum weight %g at bin %d", w, i)
		}
	}
	total := floats.Sum(weights)
	if total <= 0 {
		return nil, ErrEmptySpectrum
	}

	cdf := make([]float64, len(weights))
	floats.CumSum(cdf, weights)
	floats.Scale(1/total, cdf)
	cdf[len(cdf)-1] = 1

	return &BinnedSpectrum{cdf: cdf}, nil
}

// Bins returns the number of wave bins
func (s *BinnedSpectrum) Bins() int {
	return len(s.cdf)
}

// SampleWaveIndex draws a wave index distributed as the bin weights
func (s *BinnedSpectrum) SampleWaveIndex(sampler core.Sampler) int {
	u := sampler.Get1D()
	i := sort.Search(len(s.cdf), func(i int) bool { return s.cdf[i] > u })
	if i >= len(s.cdf) {
		i = len(s.cdf) - 1
	}
	return i
}

// WaveGrid maps wavelengths (nm) to wave indices
type WaveGrid struct {
	From  float64
	Step  float64
	Nodes int
}

// Index returns the wave index of a wavelength, WaveUnresolved outside the grid
func (g WaveGrid) Index(wavelength float64) int {
	if g.Step <= 0 || g.Nodes <= 0 {
		return WaveUnresolved
	}
	i := int((wavelength - g.From) / g.Step)
	if wavelength < g.From || i >= g.Nodes {
		return WaveUnresolved
	}
	return i
}

// Wavelength returns the wavelength at a wave index
func (g WaveGrid) Wavelength(index int) float64 {
	return g.From + float64(index)*g.Step
}

// Tabulate samples fn at every grid node, e.g. to build binned properties
func (g WaveGrid) Tabulate(fn func(wavelength float64) float64) []float64 {
	out := make([]float64, g.Nodes)
	for i := range out {
		out[i] = fn(g.Wavelength(i))
	}
	return out
}
