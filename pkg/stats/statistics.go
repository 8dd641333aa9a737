// Package stats accumulates per-run photon tracing statistics: outcome
// counters, per-photon history logs and display tracks.
package stats

import (
	"fmt"
)

// Counter names one outcome or transient event of photon tracing
type Counter int

const (
	GeneratedOutside Counter = iota
	TracingSkipped
	BulkAbsorption
	Reemission
	Rayleigh
	Escaped
	HitDetector
	HitDummyDetector
	OverrideLoss
	OverrideBack
	OverrideForward
	FresnelReflected
	FresnelTransmitted
	LossOnLattice
	MaxTransitionsReached
	RefractionFailure
	Absorbed

	numCounters
)

var counterNames = [numCounters]string{
	GeneratedOutside:      "generated-outside",
	TracingSkipped:        "tracing-skipped",
	BulkAbsorption:        "bulk-absorption",
	Reemission:            "reemission",
	Rayleigh:              "rayleigh",
	Escaped:               "escaped",
	HitDetector:           "hit-detector",
	HitDummyDetector:      "hit-dummy-detector",
	OverrideLoss:          "override-loss",
	OverrideBack:          "override-back",
	OverrideForward:       "override-forward",
	FresnelReflected:      "fresnel-reflected",
	FresnelTransmitted:    "fresnel-transmitted",
	LossOnLattice:         "loss-on-lattice",
	MaxTransitionsReached: "max-transitions",
	RefractionFailure:     "refraction-failure",
	Absorbed:              "absorbed",
}

func (c Counter) String() string {
	if c >= 0 && c < numCounters {
		return counterNames[c]
	}
	return fmt.Sprintf("Counter(%d)", int(c))
}

// Counters lists every counter in declaration order
func Counters() []Counter {
	out := make([]Counter, numCounters)
	for i := range out {
		out[i] = Counter(i)
	}
	return out
}

// Sink is what the tracer reports to
type Sink interface {
	Inc(c Counter)
	AppendHistory(log []HistoryRecord)
}

// Statistics is a per-worker accumulator. Not safe for concurrent use;
// merge worker instances at the end of a run.
type Statistics struct {
	counts  [numCounters]int64
	History [][]HistoryRecord
}

var _ Sink = (*Statistics)(nil)

// NewStatistics creates an empty accumulator
func NewStatistics() *Statistics {
	return &Statistics{}
}

// Inc increments a counter
func (s *Statistics) Inc(c Counter) {
	if c >= 0 && c < numCounters {
		s.counts[c]++
	}
}

// Count returns a counter's value
func (s *Statistics) Count(c Counter) int64 {
	if c >= 0 && c < numCounters {
		return s.counts[c]
	}
	return 0
}

// AppendHistory stores one photon's event log
func (s *Statistics) AppendHistory(log []HistoryRecord) {
	s.History = append(s.History, log)
}

// Merge adds another accumulator's counters and history
func (s *Statistics) Merge(other *Statistics) {
	for i := range s.counts {
		s.counts[i] += other.counts[i]
	}
	s.History = append(s.History, other.History...)
}

// Snapshot returns the non-zero counters by name
func (s *Statistics) Snapshot() map[string]int64 {
	out := make(map[string]int64)
	for i, n := range s.counts {
		if n != 0 {
			out[Counter(i).String()] = n
		}
	}
	return out
}
