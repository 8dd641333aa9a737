package transport

import (
	"errors"
	"fmt"

	"github.com/df07/go-photon-tracer/pkg/stats"
)

// ErrInvalidConfig is returned by Config.Validate
var ErrInvalidConfig = errors.New("transport: invalid config")

// Config holds the run-level settings of a tracer
type Config struct {
	MaxTransitions int // iterations of the transport loop per photon

	WaveResolved  bool // use binned material and QE tables
	AngleResolved bool // record the incidence cosine of detector hits
	AreaResolved  bool // record local hit coordinates for every detector
	QEAccelerator bool // skip photons that cannot pass the best detector QE

	LogHistory bool
	Tracks     stats.TrackOptions

	MaxReemissionAttempts int     // spectrum draws allowed per re-emission
	MinStep               float64 // mm; shorter steps add no track node and skip lattice checks
}

// DefaultConfig returns the default tracer configuration
func DefaultConfig() Config {
	return Config{
		MaxTransitions:        500,
		WaveResolved:          false,
		AngleResolved:         false,
		AreaResolved:          false,
		QEAccelerator:         false,
		LogHistory:            false,
		Tracks:                stats.DefaultTrackOptions(),
		MaxReemissionAttempts: 10,
		MinStep:               0.001,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.MaxTransitions < 0 {
		return fmt.Errorf("%w: max transitions %d", ErrInvalidConfig, c.MaxTransitions)
	}
	if c.MaxReemissionAttempts < 1 {
		return fmt.Errorf("%w: max reemission attempts %d", ErrInvalidConfig, c.MaxReemissionAttempts)
	}
	if c.MinStep < 0 {
		return fmt.Errorf("%w: min step %g", ErrInvalidConfig, c.MinStep)
	}
	if c.Tracks.MaxTracks < 0 {
		return fmt.Errorf("%w: max tracks %d", ErrInvalidConfig, c.Tracks.MaxTracks)
	}
	return nil
}
