package runner

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-photon-tracer/pkg/stats"
	"github.com/df07/go-photon-tracer/pkg/transport"
)

// TimeSummary describes the arrival time distribution of detector hits (ns)
type TimeSummary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// HitTimes returns the arrival time of every recorded hit
func (r *Result) HitTimes() []float64 {
	times := make([]float64, len(r.Detectors.Hits))
	for i, h := range r.Detectors.Hits {
		times[i] = h.Time
	}
	return times
}

// HitTimeSummary summarizes HitTimes; the zero value when nothing was hit
func (r *Result) HitTimeSummary() TimeSummary {
	times := r.HitTimes()
	if len(times) == 0 {
		return TimeSummary{}
	}
	mean, std := stat.MeanStdDev(times, nil)
	if len(times) == 1 {
		std = 0
	}
	return TimeSummary{
		Count:  len(times),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(times),
		Max:    floats.Max(times),
	}
}

// Report formats the outcome and counter tables of a result
func (r *Result) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s: %d photons in %v", r.RunID, r.Photons, r.Duration)
	if r.Aborted {
		b.WriteString(" (aborted)")
	}
	b.WriteString("\n\nOutcomes:\n")

	outcomes := make([]transport.Outcome, 0, len(r.Outcomes))
	for o := range r.Outcomes {
		outcomes = append(outcomes, o)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i] < outcomes[j] })
	for _, o := range outcomes {
		fmt.Fprintf(&b, "  %-22s %d\n", o, r.Outcomes[o])
	}

	b.WriteString("\nCounters:\n")
	for _, c := range stats.Counters() {
		if n := r.Stats.Count(c); n > 0 {
			fmt.Fprintf(&b, "  %-22s %d\n", c, n)
		}
	}

	fmt.Fprintf(&b, "\nSignal per detector: %v\n", r.Detectors.Signal)
	if s := r.HitTimeSummary(); s.Count > 0 {
		fmt.Fprintf(&b, "Hit times: n=%d mean=%.4f ns std=%.4f ns range=[%.4f, %.4f] ns\n",
			s.Count, s.Mean, s.StdDev, s.Min, s.Max)
	}
	return b.String()
}
