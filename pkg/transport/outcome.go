package transport

import (
	"errors"
	"fmt"
)

// Outcome is how the transport of one photon ended
type Outcome int

const (
	OutcomeSkipped Outcome = iota // rejected by the QE accelerator
	OutcomeGeneratedOutside
	OutcomeAbsorbed
	OutcomeEscaped
	OutcomeHitDetector
	OutcomeHitDummyDetector
	OutcomeOverrideAbsorbed
	OutcomeLatticeInconsistency
	OutcomeRefractionFailure
	OutcomeMaxTransitions
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeGeneratedOutside:
		return "generated-outside"
	case OutcomeAbsorbed:
		return "absorbed"
	case OutcomeEscaped:
		return "escaped"
	case OutcomeHitDetector:
		return "hit-detector"
	case OutcomeHitDummyDetector:
		return "hit-dummy-detector"
	case OutcomeOverrideAbsorbed:
		return "override-absorbed"
	case OutcomeLatticeInconsistency:
		return "lattice-inconsistency"
	case OutcomeRefractionFailure:
		return "refraction-failure"
	case OutcomeMaxTransitions:
		return "max-transitions"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ErrLatticeContainment is returned when a photon inside a folded lattice
// cell would step outside the bulk of its lattice element
var ErrLatticeContainment = errors.New("transport: photon left the lattice element bulk")
