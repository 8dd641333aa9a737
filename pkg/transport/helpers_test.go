package transport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/detector"
	"github.com/df07/go-photon-tracer/pkg/geometry"
	"github.com/df07/go-photon-tracer/pkg/material"
	"github.com/df07/go-photon-tracer/pkg/stats"
)

// fixedSampler replays a list of uniform draws, then repeats the last one
type fixedSampler struct {
	values []float64
	next   int
	draws  int
}

func newFixedSampler(values ...float64) *fixedSampler {
	return &fixedSampler{values: values}
}

func (s *fixedSampler) Get1D() float64 {
	s.draws++
	v := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return v
}

func (s *fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.Get1D(), s.Get1D())
}

// noDrawSampler fails the test on any draw
type noDrawSampler struct {
	t *testing.T
}

func (s noDrawSampler) Get1D() float64 {
	s.t.Fatalf("unexpected random draw")
	return 0
}

func (s noDrawSampler) Get2D() core.Vec2 {
	s.t.Fatalf("unexpected random draw")
	return core.Vec2{}
}

// countingNavigator records how often the tracer queried the geometry
type countingNavigator struct {
	geometry.Navigator
	locates   int
	finds     int
	crossings int
}

func (n *countingNavigator) Locate(pos, dir core.Vec3) bool {
	n.locates++
	return n.Navigator.Locate(pos, dir)
}

func (n *countingNavigator) FindNextBoundary() float64 {
	n.finds++
	return n.Navigator.FindNextBoundary()
}

func (n *countingNavigator) CrossBoundary() (geometry.NodeID, bool) {
	n.crossings++
	return n.Navigator.CrossBoundary()
}

// harness is one tracer with its collaborators
type harness struct {
	tracer    *Tracer
	nav       *countingNavigator
	stats     *stats.Statistics
	collector *detector.Collector
	tracks    *stats.TrackList
}

func newHarness(t *testing.T, cfg Config, world *geometry.World, mats *material.Collection, array *detector.Array, sampler core.Sampler) *harness {
	t.Helper()
	if array == nil {
		var err error
		array, err = detector.NewArray(detector.Detector{Name: "pmt", Type: detector.PMT, QE: 1})
		require.NoError(t, err)
	}

	h := &harness{
		nav:       &countingNavigator{Navigator: world.NewNavigator()},
		stats:     stats.NewStatistics(),
		collector: detector.NewCollector(array),
		tracks:    stats.NewTrackList(cfg.Tracks.MaxTracks),
	}
	tracer, err := NewTracer(cfg, Env{
		Navigator: h.nav,
		Materials: mats,
		Detectors: h.collector,
		Sampler:   sampler,
		Stats:     h.stats,
		Tracks:    h.tracks,
	})
	require.NoError(t, err)
	h.tracer = tracer
	return h
}

func vacuum() *material.Material {
	return &material.Material{Name: "vacuum", RefractiveIndex: 1}
}

func glass() *material.Material {
	return &material.Material{Name: "glass", RefractiveIndex: 1.5}
}

// boxWorld builds a vacuum cube of half size 20 and places the given
// volumes in it
func boxWorld(t *testing.T, volumes ...geometry.Volume) *geometry.World {
	t.Helper()
	b := geometry.NewBuilder(geometry.Volume{Name: "world", Solid: geometry.NewBox(20, 20, 20)})
	for _, v := range volumes {
		b.Place(0, v)
	}
	world, err := b.Build()
	require.NoError(t, err)
	return world
}

func photon(pos, dir core.Vec3) Photon {
	return Photon{Position: pos, Direction: dir.Normalize(), WaveIndex: material.WaveUnresolved}
}
