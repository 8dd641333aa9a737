package transport

import (
	"errors"
	"fmt"

	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/detector"
	"github.com/df07/go-photon-tracer/pkg/geometry"
	"github.com/df07/go-photon-tracer/pkg/material"
	"github.com/df07/go-photon-tracer/pkg/optics"
	"github.com/df07/go-photon-tracer/pkg/stats"
)

// Env bundles the collaborators a tracer works against. Materials and the
// world behind Navigator are shared read-only; everything else belongs to
// one worker.
type Env struct {
	Navigator geometry.Navigator
	Materials *material.Collection
	Detectors detector.Registry
	Sampler   core.Sampler
	Stats     stats.Sink
	Tracks    *stats.TrackList // nil disables track building
}

// Tracer transports photons one at a time. Not safe for concurrent use.
type Tracer struct {
	cfg       Config
	nav       geometry.Navigator
	materials *material.Collection
	detectors detector.Registry
	sampler   core.Sampler
	stats     stats.Sink

	// per-photon state
	ph          Photon
	shift       gridShift
	rec         recorder
	transitions int
	qeRandom    float64
	haveRandom  bool
}

// NewTracer creates a tracer; every collaborator except Tracks is required
func NewTracer(cfg Config, env Env) (*Tracer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case env.Navigator == nil:
		return nil, errors.New("transport: nil navigator")
	case env.Materials == nil:
		return nil, errors.New("transport: nil material collection")
	case env.Detectors == nil:
		return nil, errors.New("transport: nil detector registry")
	case env.Sampler == nil:
		return nil, errors.New("transport: nil sampler")
	case env.Stats == nil:
		return nil, errors.New("transport: nil statistics sink")
	}
	if err := env.Materials.Validate(); err != nil {
		return nil, err
	}

	return &Tracer{
		cfg:       cfg,
		nav:       env.Navigator,
		materials: env.Materials,
		detectors: env.Detectors,
		sampler:   env.Sampler,
		stats:     env.Stats,
		rec: recorder{
			opts:    cfg.Tracks,
			tracks:  env.Tracks,
			logging: cfg.LogHistory,
		},
	}, nil
}

// Photon returns the photon state at the end of the last Trace call, in true
// global coordinates
func (t *Tracer) Photon() Photon {
	return t.ph
}

// Transitions returns the loop iterations used by the last Trace call
func (t *Tracer) Transitions() int {
	return t.transitions
}

// Trace transports one photon to its end. The error is non-nil only for
// internal consistency failures; the photon is still terminated and counted.
func (t *Tracer) Trace(p Photon) (Outcome, error) {
	t.ph = p
	if !t.cfg.WaveResolved {
		t.ph.WaveIndex = material.WaveUnresolved
	}
	t.shift = gridShift{}
	t.transitions = 0
	t.haveRandom = false

	if t.cfg.QEAccelerator {
		u := t.sampler.Get1D()
		if u > t.detectors.MaxQE(t.ph.WaveIndex) {
			t.stats.Inc(stats.TracingSkipped)
			return OutcomeSkipped, nil
		}
		t.qeRandom, t.haveRandom = u, true
	}

	if !t.nav.Locate(t.ph.Position, t.ph.Direction) {
		t.stats.Inc(stats.GeneratedOutside)
		return OutcomeGeneratedOutside, nil
	}

	t.rec.start(t.ph.Position, t.ph.Time)
	outcome, err := t.propagate()
	t.ph.Position = t.truePoint(t.nav.CurrentPoint())
	t.rec.finish(t.ph.Origin, t.stats)

	return outcome, err
}

// propagate runs the transport loop from the located start point
func (t *Tracer) propagate() (Outcome, error) {
	fromIndex := t.nav.CurrentMaterial()

	for t.transitions < t.cfg.MaxTransitions {
		t.transitions++
		from := t.materials.Material(fromIndex)
		if from == nil {
			return OutcomeAbsorbed, fmt.Errorf("%w: %d", material.ErrUnknownMaterial, fromIndex)
		}

		step := t.nav.FindNextBoundary()

		// bulk processes
		t.ph.Position = t.nav.CurrentPoint()
		inter := SelectProcess(from, &t.ph, step, t.sampler, t.cfg.MaxReemissionAttempts)
		switch inter.Kind {
		case Absorbed:
			t.stats.Inc(stats.BulkAbsorption)
			t.stats.Inc(stats.Absorbed)
			t.rec.node(t.truePoint(t.ph.Position), t.ph.Time)
			t.nav.MoveTo(t.ph.Position)
			return OutcomeAbsorbed, nil
		case Reemitted, Scattered:
			if inter.Kind == Reemitted {
				t.stats.Inc(stats.BulkAbsorption)
				t.stats.Inc(stats.Reemission)
			} else {
				t.stats.Inc(stats.Rayleigh)
			}
			t.rec.node(t.truePoint(t.ph.Position), t.ph.Time)
			t.nav.MoveTo(t.ph.Position)
			t.nav.SetDirection(t.ph.Direction)
			continue
		}

		// move to the interface
		t.nav.StepToBoundary()
		if t.shift.active && step > t.cfg.MinStep && !t.withinLattice() {
			t.stats.Inc(stats.LossOnLattice)
			return OutcomeLatticeInconsistency, fmt.Errorf("%w: element %d at %v",
				ErrLatticeContainment, t.shift.element, t.truePoint(t.nav.CurrentPoint()))
		}

		t.nav.PushState()
		nFrom := from.RefractiveIndexAt(t.ph.WaveIndex)
		t.ph.Time += step * nFrom / SpeedOfLight
		if step > t.cfg.MinStep {
			t.rec.node(t.truePoint(t.nav.CurrentPoint()), t.ph.Time)
		}

		next, inside := t.nav.CrossBoundary()
		if !inside {
			t.nav.DiscardState()
			t.stats.Inc(stats.Escaped)
			return OutcomeEscaped, nil
		}

		toIndex := t.nav.NodeMaterial(next)
		to := t.materials.Material(toIndex)
		if to == nil {
			t.nav.DiscardState()
			return OutcomeAbsorbed, fmt.Errorf("%w: %d in node %d", material.ErrUnknownMaterial, toIndex, next)
		}
		nTo := to.RefractiveIndexAt(t.ph.WaveIndex)
		normal := t.nav.Normal()

		doFresnel := true
		if ov := from.OverrideTo(toIndex); ov != nil {
			result, dir := ov.Calculate(t.sampler, t.ph.Direction, normal)
			switch result {
			case material.OverrideAbsorbed:
				t.nav.DiscardState()
				t.stats.Inc(stats.OverrideLoss)
				return OutcomeOverrideAbsorbed, nil
			case material.OverrideBack:
				t.nav.PopState()
				t.setDirection(dir)
				t.stats.Inc(stats.OverrideBack)
				continue
			case material.OverrideForward:
				t.setDirection(dir)
				doFresnel = false
				t.stats.Inc(stats.OverrideForward)
			}
		}

		if doFresnel {
			r := optics.Reflectance(normal, t.ph.Direction, nFrom, nTo)
			if t.sampler.Get1D() < r {
				t.stats.Inc(stats.FresnelReflected)
				t.rec.event(stats.FresnelReflectedEvent, t.truePoint(t.nav.CurrentPoint()))
				t.nav.PopState()
				t.setDirection(optics.Reflect(t.ph.Direction, normal))
				continue
			}
			t.stats.Inc(stats.FresnelTransmitted)
		}

		// the photon is in the next volume
		t.nav.DiscardState()
		if t.shift.active && step > t.cfg.MinStep && t.leavingLattice() && !t.exitLattice() {
			t.stats.Inc(stats.Escaped)
			return OutcomeEscaped, nil
		}

		class := t.nav.Classify(next)
		switch class.Kind {
		case geometry.NodeDetector:
			if err := t.recordHit(class.ID, doFresnel, normal, nFrom/nTo); err != nil {
				t.stats.Inc(stats.RefractionFailure)
				return OutcomeRefractionFailure, err
			}
			t.rec.hit = true
			t.stats.Inc(stats.HitDetector)
			t.rec.event(stats.HitDetectorEvent, t.truePoint(t.nav.CurrentPoint()))
			return OutcomeHitDetector, nil
		case geometry.NodeDummyDetector:
			t.stats.Inc(stats.HitDummyDetector)
			t.rec.event(stats.HitDummyDetectorEvent, t.truePoint(t.nav.CurrentPoint()))
			return OutcomeHitDummyDetector, nil
		case geometry.NodeLattice:
			if t.shift.active && t.shift.element == next {
				break
			}
			if err := t.enterLattice(next, class); err != nil {
				t.stats.Inc(stats.LossOnLattice)
				return OutcomeLatticeInconsistency, err
			}
		}

		if doFresnel {
			if err := t.refract(normal, nFrom/nTo); err != nil {
				t.stats.Inc(stats.RefractionFailure)
				return OutcomeRefractionFailure, err
			}
			t.rec.event(stats.FresnelTransmittedEvent, t.truePoint(t.nav.CurrentPoint()))
		}

		fromIndex = toIndex
	}

	t.stats.Inc(stats.MaxTransitionsReached)
	return OutcomeMaxTransitions, nil
}

func (t *Tracer) setDirection(dir core.Vec3) {
	t.ph.Direction = dir.Normalize()
	t.nav.SetDirection(t.ph.Direction)
}

func (t *Tracer) refract(normal core.Vec3, eta float64) error {
	dir, err := optics.Refract(t.ph.Direction, normal, eta)
	if err != nil {
		return fmt.Errorf("refraction at %v with eta %g: %w", t.truePoint(t.nav.CurrentPoint()), eta, err)
	}
	t.setDirection(dir)
	return nil
}

// recordHit reports a detector hit. With angle resolution the photon is
// refracted first so the cosine is taken against the transmitted direction.
func (t *Tracer) recordHit(id int, refract bool, normal core.Vec3, eta float64) error {
	hit := detector.Hit{
		Detector:    id,
		Time:        t.ph.Time,
		WaveIndex:   t.ph.WaveIndex,
		Transitions: t.transitions,
	}

	if t.cfg.AreaResolved || t.detectors.IsSiPM(id) {
		local := t.nav.GlobalToLocal(t.nav.CurrentPoint())
		hit.LocalX, hit.LocalY = local.X, local.Y
	}

	if t.cfg.AngleResolved {
		if refract {
			if err := t.refract(normal, eta); err != nil {
				return err
			}
		}
		hit.Cosine = normal.Dot(t.ph.Direction)
	}

	if t.haveRandom {
		hit.Random = t.qeRandom
	} else {
		hit.Random = t.sampler.Get1D()
	}
	t.detectors.RecordHit(hit)
	return nil
}
