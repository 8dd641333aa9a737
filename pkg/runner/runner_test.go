package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/detector"
	"github.com/df07/go-photon-tracer/pkg/geometry"
	"github.com/df07/go-photon-tracer/pkg/material"
	"github.com/df07/go-photon-tracer/pkg/source"
	"github.com/df07/go-photon-tracer/pkg/stats"
	"github.com/df07/go-photon-tracer/pkg/transport"
)

// testSetup is a vacuum box with a glass detector whose entry face is the
// plane z=9, lit from the origin
func testSetup(t *testing.T, settings source.PhotonSettings) Setup {
	t.Helper()
	b := geometry.NewBuilder(geometry.Volume{Name: "world", Solid: geometry.NewBox(50, 50, 50)})
	b.Place(0, geometry.Volume{
		Name:     "pmt",
		Solid:    geometry.NewBox(20, 20, 1),
		Material: 1,
		Position: core.NewVec3(0, 0, 10),
		Class:    geometry.NodeClass{Kind: geometry.NodeDetector, ID: 0},
	})
	world, err := b.Build()
	require.NoError(t, err)

	array, err := detector.NewArray(detector.Detector{Name: "pmt", QE: 0.3})
	require.NoError(t, err)

	src, err := source.NewPointSource(core.Vec3{}, settings)
	require.NoError(t, err)

	return Setup{
		Name:  "test",
		World: world,
		Materials: material.NewCollection(
			&material.Material{Name: "vacuum", RefractiveIndex: 1},
			&material.Material{Name: "glass", RefractiveIndex: 1.5},
		),
		Detectors: array,
		Source:    src,
	}
}

func beam() source.PhotonSettings {
	s := source.DefaultPhotonSettings()
	s.Mode = source.Vector
	s.Direction = core.NewVec3(0, 0, 1)
	return s
}

func testOptions(photons, workers int) Options {
	opts := DefaultOptions()
	opts.Photons = photons
	opts.Workers = workers
	opts.Seed = 42
	opts.Logger = core.NopLogger{}
	return opts
}

func TestRunAccountsForEveryPhoton(t *testing.T) {
	result, err := Run(context.Background(), testSetup(t, source.DefaultPhotonSettings()), testOptions(2000, 4))
	require.NoError(t, err)

	assert.Equal(t, 2000, result.Photons)
	total := 0
	for _, n := range result.Outcomes {
		total += n
	}
	assert.Equal(t, 2000, total)
	assert.Equal(t, int64(result.Outcomes[transport.OutcomeHitDetector]), result.Stats.Count(stats.HitDetector))
	assert.Equal(t, int64(result.Outcomes[transport.OutcomeEscaped]), result.Stats.Count(stats.Escaped))
	assert.Len(t, result.Detectors.Hits, result.Outcomes[transport.OutcomeHitDetector])
	assert.Zero(t, result.Errors)
	assert.False(t, result.Aborted)
	assert.NotEmpty(t, result.RunID)

	// the detector face subtends well over a tenth of the sphere
	assert.Greater(t, result.Outcomes[transport.OutcomeHitDetector], 200)
	assert.Less(t, result.Detectors.Detected(), result.Outcomes[transport.OutcomeHitDetector])
}

func TestRunIsReproducible(t *testing.T) {
	setup := testSetup(t, source.DefaultPhotonSettings())
	opts := testOptions(1000, 3)
	opts.Tracer.LogHistory = true

	a, err := Run(context.Background(), setup, opts)
	require.NoError(t, err)
	b, err := Run(context.Background(), setup, opts)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	if diff := cmp.Diff(a.Outcomes, b.Outcomes); diff != "" {
		t.Errorf("outcomes differ (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(a.Stats.Snapshot(), b.Stats.Snapshot()); diff != "" {
		t.Errorf("counters differ (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(a.Detectors.Hits, b.Detectors.Hits); diff != "" {
		t.Errorf("hits differ (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(a.Stats.History, b.Stats.History); diff != "" {
		t.Errorf("histories differ (-a +b):\n%s", diff)
	}

	opts.Seed++
	c, err := Run(context.Background(), setup, opts)
	require.NoError(t, err)
	assert.NotEqual(t, a.Detectors.Hits, c.Detectors.Hits, "a different seed gives a different run")
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, testSetup(t, beam()), testOptions(100, 2))
	assert.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, result)
	assert.True(t, result.Aborted)
	assert.Zero(t, result.Photons)
}

// abortingSource asks the runner to stop after a number of photons
type abortingSource struct {
	source.Generator
	runner *Runner
	after  int
	count  int
}

func (s *abortingSource) Generate(sampler core.Sampler) transport.Photon {
	s.count++
	if s.count == s.after {
		s.runner.Abort()
	}
	return s.Generator.Generate(sampler)
}

func TestRunnerAbortStopsBetweenPhotons(t *testing.T) {
	setup := testSetup(t, beam())
	src := &abortingSource{Generator: setup.Source, after: 5}
	setup.Source = src

	r, err := New(setup, testOptions(100, 1))
	require.NoError(t, err)
	src.runner = r

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Aborted)
	assert.Equal(t, 5, result.Photons, "the photon in flight is finished")
}

func TestRunnerAbortBeforeRun(t *testing.T) {
	r, err := New(testSetup(t, beam()), testOptions(50, 2))
	require.NoError(t, err)

	r.Abort()
	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Aborted)
	assert.Equal(t, 0, result.Photons)

	// the abort is spent by the run it stopped
	result, err = r.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Aborted)
	assert.Equal(t, 50, result.Photons)
}

func TestRunTrackCapAcrossWorkers(t *testing.T) {
	opts := testOptions(200, 4)
	opts.Tracer.Tracks.Build = true
	opts.Tracer.Tracks.HitsOnly = false
	opts.Tracer.Tracks.MaxTracks = 3

	result, err := Run(context.Background(), testSetup(t, source.DefaultPhotonSettings()), opts)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Tracks.Len())
	for _, tr := range result.Tracks.Tracks {
		assert.True(t, strings.HasPrefix(tr.ID, "trk_"))
		assert.GreaterOrEqual(t, len(tr.Nodes), 2)
	}
}

func TestHitTimeSummary(t *testing.T) {
	result, err := Run(context.Background(), testSetup(t, beam()), testOptions(500, 2))
	require.NoError(t, err)

	summary := result.HitTimeSummary()
	require.Positive(t, summary.Count)
	// every transmitted photon crossed 9 mm of vacuum
	want := 9 / transport.SpeedOfLight
	assert.InDelta(t, want, summary.Mean, 1e-12)
	assert.InDelta(t, 0, summary.StdDev, 1e-12)
	assert.InDelta(t, want, summary.Min, 1e-12)
	assert.InDelta(t, want, summary.Max, 1e-12)

	// normal incidence on n=1.5 reflects 4%
	frac := float64(summary.Count) / 500
	assert.InDelta(t, 0.96, frac, 0.03)

	empty := &Result{Detectors: detector.NewCollector(&detector.Array{})}
	assert.Equal(t, TimeSummary{}, empty.HitTimeSummary())
}

func TestSaveHitTimeHistogram(t *testing.T) {
	result, err := Run(context.Background(), testSetup(t, source.DefaultPhotonSettings()), testOptions(500, 2))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "hits.png")
	require.NoError(t, result.SaveHitTimeHistogram(path, 20))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	empty := &Result{Detectors: detector.NewCollector(&detector.Array{})}
	assert.True(t, errors.Is(empty.SaveHitTimeHistogram(path, 20), ErrNoHits))
}

func TestReport(t *testing.T) {
	result, err := Run(context.Background(), testSetup(t, beam()), testOptions(100, 1))
	require.NoError(t, err)

	report := result.Report()
	assert.Contains(t, report, result.RunID)
	assert.Contains(t, report, "hit-detector")
	assert.Contains(t, report, "fresnel-transmitted")
	assert.Contains(t, report, "Hit times: n=")
	assert.NotContains(t, report, "aborted")
}

func TestNewValidates(t *testing.T) {
	setup := testSetup(t, beam())

	tests := []struct {
		name   string
		mutate func(*Setup, *Options)
	}{
		{"no world", func(s *Setup, _ *Options) { s.World = nil }},
		{"no materials", func(s *Setup, _ *Options) { s.Materials = nil }},
		{"no detectors", func(s *Setup, _ *Options) { s.Detectors = nil }},
		{"no source", func(s *Setup, _ *Options) { s.Source = nil }},
		{"negative photons", func(_ *Setup, o *Options) { o.Photons = -1 }},
		{"bad tracer config", func(_ *Setup, o *Options) { o.Tracer.MaxTransitions = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, o := setup, testOptions(10, 1)
			tt.mutate(&s, &o)
			_, err := New(s, o)
			assert.Error(t, err)
		})
	}

	r, err := New(setup, Options{Photons: 1, Tracer: transport.DefaultConfig()})
	require.NoError(t, err)
	assert.Positive(t, r.Workers())
}
