// Package runner traces a batch of photons on a pool of workers. Each worker
// owns its tracer, sampler and accumulators; the geometry and materials are
// shared read-only. Results are merged in worker order so a fixed seed and
// worker count reproduce a run exactly.
package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/detector"
	"github.com/df07/go-photon-tracer/pkg/geometry"
	"github.com/df07/go-photon-tracer/pkg/material"
	"github.com/df07/go-photon-tracer/pkg/source"
	"github.com/df07/go-photon-tracer/pkg/stats"
	"github.com/df07/go-photon-tracer/pkg/transport"
)

// maxLoggedErrors limits internal error log lines per worker
const maxLoggedErrors = 10

// Setup is the immutable description of what is simulated
type Setup struct {
	Name      string
	World     *geometry.World
	Materials *material.Collection
	Detectors *detector.Array
	Source    source.Generator
}

// Validate checks that every part of the setup is present
func (s Setup) Validate() error {
	switch {
	case s.World == nil:
		return errors.New("runner: setup has no world")
	case s.Materials == nil:
		return errors.New("runner: setup has no materials")
	case s.Detectors == nil:
		return errors.New("runner: setup has no detectors")
	case s.Source == nil:
		return errors.New("runner: setup has no photon source")
	}
	return s.Materials.Validate()
}

// Options control one batch
type Options struct {
	Photons int
	Workers int // 0 uses one worker per CPU
	Seed    int64
	Tracer  transport.Config
	Logger  core.Logger
}

// DefaultOptions returns a small batch on all CPUs
func DefaultOptions() Options {
	return Options{
		Photons: 10000,
		Workers: 0,
		Seed:    1,
		Tracer:  transport.DefaultConfig(),
		Logger:  core.NewDefaultLogger(),
	}
}

// Result is the merged outcome of a batch
type Result struct {
	RunID    string
	Photons  int // photons handed to the tracer
	Outcomes map[transport.Outcome]int
	Errors   int // internal consistency failures
	Aborted  bool
	Duration time.Duration

	Stats     *stats.Statistics
	Tracks    *stats.TrackList
	Detectors *detector.Collector
}

// Runner executes batches for one setup. Abort may be called from any
// goroutine; it takes effect between photons.
type Runner struct {
	setup   Setup
	opts    Options
	aborted atomic.Bool
}

// New validates the setup and options
func New(setup Setup, opts Options) (*Runner, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Tracer.Validate(); err != nil {
		return nil, err
	}
	if opts.Photons < 0 {
		return nil, fmt.Errorf("runner: negative photon count %d", opts.Photons)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}
	return &Runner{setup: setup, opts: opts}, nil
}

// Run is a shorthand for New followed by Runner.Run
func Run(ctx context.Context, setup Setup, opts Options) (*Result, error) {
	r, err := New(setup, opts)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

// Abort asks the workers to stop after their current photon. An abort
// requested before Run starts stops that run before its first photon.
func (r *Runner) Abort() {
	r.aborted.Store(true)
}

// Workers returns the number of workers a batch uses
func (r *Runner) Workers() int {
	return r.opts.Workers
}

// worker is the per-goroutine state of a batch
type worker struct {
	id        int
	tracer    *transport.Tracer
	sampler   core.Sampler
	stats     *stats.Statistics
	tracks    *stats.TrackList
	collector *detector.Collector

	photons  int
	outcomes map[transport.Outcome]int
	errors   int
	stopped  bool
}

func (r *Runner) newWorker(id int) (*worker, error) {
	w := &worker{
		id:        id,
		sampler:   core.NewSeededSampler(r.opts.Seed + int64(id)),
		stats:     stats.NewStatistics(),
		tracks:    stats.NewTrackList(r.opts.Tracer.Tracks.MaxTracks),
		collector: detector.NewCollector(r.setup.Detectors),
		outcomes:  make(map[transport.Outcome]int),
	}
	tracer, err := transport.NewTracer(r.opts.Tracer, transport.Env{
		Navigator: r.setup.World.NewNavigator(),
		Materials: r.setup.Materials,
		Detectors: w.collector,
		Sampler:   w.sampler,
		Stats:     w.stats,
		Tracks:    w.tracks,
	})
	if err != nil {
		return nil, fmt.Errorf("worker %d: %w", id, err)
	}
	w.tracer = tracer
	return w, nil
}

// Run traces the batch. Photon i goes to worker i mod Workers. Cancelling
// ctx stops the batch between photons and returns the partial result with
// the context's error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	defer r.aborted.Store(false)

	workers := make([]*worker, r.opts.Workers)
	for i := range workers {
		w, err := r.newWorker(i)
		if err != nil {
			return nil, err
		}
		workers[i] = w
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		w := w
		g.Go(func() error {
			r.work(gctx, w)
			return nil
		})
	}
	_ = g.Wait()

	result := r.merge(workers)
	result.Duration = time.Since(start)
	r.opts.Logger.Printf("run %s: %d photons, %d detected, %d errors in %v\n",
		result.RunID, result.Photons, result.Detectors.Detected(), result.Errors, result.Duration)

	if err := ctx.Err(); err != nil {
		result.Aborted = true
		return result, err
	}
	return result, nil
}

func (r *Runner) work(ctx context.Context, w *worker) {
	for i := w.id; i < r.opts.Photons; i += r.opts.Workers {
		if ctx.Err() != nil || r.aborted.Load() {
			w.stopped = true
			return
		}

		photon := r.setup.Source.Generate(w.sampler)
		outcome, err := w.tracer.Trace(photon)
		w.photons++
		w.outcomes[outcome]++
		if err != nil {
			w.errors++
			if w.errors <= maxLoggedErrors {
				r.opts.Logger.Printf("worker %d photon %d: %s: %v\n", w.id, i, outcome, err)
			}
		}
	}
}

func (r *Runner) merge(workers []*worker) *Result {
	result := &Result{
		RunID:     uuid.New().String(),
		Outcomes:  make(map[transport.Outcome]int),
		Stats:     stats.NewStatistics(),
		Tracks:    stats.NewTrackList(r.opts.Tracer.Tracks.MaxTracks),
		Detectors: detector.NewCollector(r.setup.Detectors),
	}
	for _, w := range workers {
		result.Photons += w.photons
		result.Errors += w.errors
		result.Aborted = result.Aborted || w.stopped
		for o, n := range w.outcomes {
			result.Outcomes[o] += n
		}
		result.Stats.Merge(w.stats)
		result.Tracks.Merge(w.tracks)
		result.Detectors.Merge(w.collector)
	}
	if result.Errors > 0 {
		r.opts.Logger.Printf("run %s: %d photons ended on internal errors\n", result.RunID, result.Errors)
	}
	return result
}
