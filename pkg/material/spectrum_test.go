package material

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-photon-tracer/pkg/core"
)

// fixedSampler replays a list of uniform draws, then repeats the last one
type fixedSampler struct {
	values []float64
	next   int
}

func (s *fixedSampler) Get1D() float64 {
	v := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return v
}

func (s *fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.Get1D(), s.Get1D())
}

func TestBinnedSpectrumInverseCDF(t *testing.T) {
	spectrum, err := NewBinnedSpectrum([]float64{1, 0, 3})
	require.NoError(t, err)
	require.Equal(t, 3, spectrum.Bins())

	tests := []struct {
		u    float64
		want int
	}{
		{0.0, 0},
		{0.2, 0},
		{0.25, 2}, // empty bin 1 is never selected
		{0.9, 2},
		{0.999999, 2},
	}
	for _, tt := range tests {
		got := spectrum.SampleWaveIndex(&fixedSampler{values: []float64{tt.u}})
		assert.Equal(t, tt.want, got, "u=%g", tt.u)
	}
}

func TestBinnedSpectrumFrequencies(t *testing.T) {
	spectrum, err := NewBinnedSpectrum([]float64{1, 2, 1})
	require.NoError(t, err)

	sampler := core.NewSeededSampler(1)
	counts := make([]int, 3)
	const n = 40000
	for i := 0; i < n; i++ {
		counts[spectrum.SampleWaveIndex(sampler)]++
	}
	assert.InDelta(t, 0.25, float64(counts[0])/n, 0.01)
	assert.InDelta(t, 0.50, float64(counts[1])/n, 0.01)
	assert.InDelta(t, 0.25, float64(counts[2])/n, 0.01)
}

func TestBinnedSpectrumRejectsBadInput(t *testing.T) {
	_, err := NewBinnedSpectrum(nil)
	assert.True(t, errors.Is(err, ErrEmptySpectrum))
	_, err = NewBinnedSpectrum([]float64{0, 0})
	assert.True(t, errors.Is(err, ErrEmptySpectrum))
	_, err = NewBinnedSpectrum([]float64{1, -1})
	assert.Error(t, err)
}

func TestWaveGrid(t *testing.T) {
	g := WaveGrid{From: 200, Step: 5, Nodes: 100}

	assert.Equal(t, 0, g.Index(200))
	assert.Equal(t, 0, g.Index(204.9))
	assert.Equal(t, 20, g.Index(300))
	assert.Equal(t, WaveUnresolved, g.Index(199))
	assert.Equal(t, WaveUnresolved, g.Index(700))
	assert.Equal(t, 300.0, g.Wavelength(20))

	table := g.Tabulate(func(wl float64) float64 { return wl / 100 })
	require.Len(t, table, 100)
	assert.Equal(t, 2.0, table[0])

	assert.Equal(t, WaveUnresolved, WaveGrid{}.Index(400))
}
