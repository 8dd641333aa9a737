package scene

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/runner"
	"github.com/df07/go-photon-tracer/pkg/stats"
	"github.com/df07/go-photon-tracer/pkg/transport"
)

func runScene(t *testing.T, name string, photons int) (*Scene, *runner.Result) {
	t.Helper()
	s, err := New(name)
	require.NoError(t, err)

	opts := runner.DefaultOptions()
	opts.Photons = photons
	opts.Workers = 2
	opts.Seed = 7
	opts.Tracer = s.Config
	opts.Logger = core.NopLogger{}

	result, err := runner.Run(context.Background(), s.Setup, opts)
	require.NoError(t, err)
	require.Equal(t, photons, result.Photons)
	return s, result
}

func TestList(t *testing.T) {
	var names []string
	for _, info := range List() {
		names = append(names, info.Name)
		assert.NotEmpty(t, info.Description)
	}
	assert.Equal(t, []string{"mesh", "slab", "sphere"}, names)
}

func TestNewUnknownScene(t *testing.T) {
	_, err := New("cornell")
	assert.True(t, errors.Is(err, ErrUnknownScene))
}

func TestSlabScene(t *testing.T) {
	s, result := runScene(t, "slab", 2000)
	assert.Equal(t, "slab", s.Name)
	assert.Zero(t, result.Errors)

	perDetector := make([]int, 2)
	for _, hit := range result.Detectors.Hits {
		perDetector[hit.Detector]++
		assert.True(t, hit.Cosine > 0 && hit.Cosine <= 1+1e-12, "cosine %g", hit.Cosine)
		if hit.Detector == 1 {
			// SiPM hits always carry local coordinates
			assert.LessOrEqual(t, math.Abs(hit.LocalX), 3+1e-6)
			assert.LessOrEqual(t, math.Abs(hit.LocalY), 3+1e-6)
		}
	}
	assert.Positive(t, perDetector[0])
	assert.Positive(t, perDetector[1])
	assert.Greater(t, perDetector[0], perDetector[1])
	assert.Positive(t, result.Stats.Count(stats.FresnelReflected))
}

func TestWireMeshScene(t *testing.T) {
	_, result := runScene(t, "mesh", 2000)

	// 10% of the area is shadowed by wire, most of which absorbs
	frac := float64(result.Outcomes[transport.OutcomeHitDetector]) / 2000
	assert.Greater(t, frac, 0.80)
	assert.Less(t, frac, 0.93)
	assert.Positive(t, result.Stats.Count(stats.OverrideLoss))
	assert.Positive(t, result.Outcomes[transport.OutcomeOverrideAbsorbed])

	// hit positions are true coordinates spread over the flood area
	var maxX float64
	for _, hit := range result.Detectors.Hits {
		maxX = math.Max(maxX, math.Abs(hit.LocalX))
	}
	assert.Greater(t, maxX, 15.0)
}

func TestRayleighSphereScene(t *testing.T) {
	_, result := runScene(t, "sphere", 500)
	assert.Zero(t, result.Errors)

	start := SphereWaveGrid.Index(340)
	assert.Positive(t, result.Stats.Count(stats.Reemission))
	assert.Positive(t, result.Stats.Count(stats.Rayleigh))
	assert.GreaterOrEqual(t, result.Stats.Count(stats.BulkAbsorption), result.Stats.Count(stats.Reemission))
	require.NotEmpty(t, result.Detectors.Hits)
	for _, hit := range result.Detectors.Hits {
		assert.GreaterOrEqual(t, hit.WaveIndex, start, "re-emission never shortens the wavelength")
	}
}
