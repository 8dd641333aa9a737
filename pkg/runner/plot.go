package runner

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoHits is returned when there is nothing to plot
var ErrNoHits = errors.New("runner: no detector hits")

// SaveHitTimeHistogram writes a histogram of hit arrival times. The image
// format follows the file extension (png, svg, pdf).
func (r *Result) SaveHitTimeHistogram(path string, bins int) error {
	times := r.HitTimes()
	if len(times) == 0 {
		return ErrNoHits
	}
	if bins <= 0 {
		bins = 50
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Hit times - %d hits", len(times))
	p.X.Label.Text = "Time (ns)"
	p.Y.Label.Text = "Hits"

	hist, err := plotter.NewHist(plotter.Values(times), bins)
	if err != nil {
		return fmt.Errorf("hit time histogram: %w", err)
	}
	hist.LineStyle.Width = vg.Points(1)
	p.Add(hist)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save hit time histogram: %w", err)
	}
	return nil
}
