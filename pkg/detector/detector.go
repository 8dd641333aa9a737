// Package detector holds the photodetector array of a run and collects the
// hits the tracer reports.
package detector

import (
	"errors"
	"fmt"
)

// Type is the photodetector technology
type Type int

const (
	PMT Type = iota
	SiPM
)

func (t Type) String() string {
	switch t {
	case PMT:
		return "pmt"
	case SiPM:
		return "sipm"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ErrInvalidQE is returned for quantum efficiencies outside [0, 1]
var ErrInvalidQE = errors.New("detector: quantum efficiency out of range")

// Detector describes one photodetector
type Detector struct {
	Name     string
	Type     Type
	QE       float64   // used for wavelength-unresolved photons
	QEBinned []float64 // per wave index, optional
}

// QEAt returns the quantum efficiency for a wave index
func (d *Detector) QEAt(wave int) float64 {
	if wave >= 0 && wave < len(d.QEBinned) {
		return d.QEBinned[wave]
	}
	return d.QE
}

// Array is the immutable set of detectors of a run. The index of a detector
// in the array is its detector id.
type Array struct {
	detectors   []Detector
	maxQE       float64
	maxQEBinned []float64
}

// NewArray validates the detectors and precomputes the maximum efficiencies
func NewArray(detectors ...Detector) (*Array, error) {
	a := &Array{detectors: detectors}
	for i := range detectors {
		d := &detectors[i]
		if d.QE < 0 || d.QE > 1 {
			return nil, fmt.Errorf("%w: %q QE %g", ErrInvalidQE, d.Name, d.QE)
		}
		if d.QE > a.maxQE {
			a.maxQE = d.QE
		}
		for wave, qe := range d.QEBinned {
			if qe < 0 || qe > 1 {
				return nil, fmt.Errorf("%w: %q QE %g at wave index %d", ErrInvalidQE, d.Name, qe, wave)
			}
			for len(a.maxQEBinned) <= wave {
				a.maxQEBinned = append(a.maxQEBinned, 0)
			}
			if qe > a.maxQEBinned[wave] {
				a.maxQEBinned[wave] = qe
			}
		}
	}
	// detectors without a binned table contribute their scalar QE everywhere
	for i := range detectors {
		d := &detectors[i]
		for wave := len(d.QEBinned); wave < len(a.maxQEBinned); wave++ {
			if d.QE > a.maxQEBinned[wave] {
				a.maxQEBinned[wave] = d.QE
			}
		}
	}
	return a, nil
}

// Len returns the number of detectors
func (a *Array) Len() int {
	return len(a.detectors)
}

// Detector returns the detector with the given id, or nil
func (a *Array) Detector(id int) *Detector {
	if id < 0 || id >= len(a.detectors) {
		return nil
	}
	return &a.detectors[id]
}

// IsSiPM reports whether detector id is a SiPM
func (a *Array) IsSiPM(id int) bool {
	d := a.Detector(id)
	return d != nil && d.Type == SiPM
}

// QE returns the efficiency of detector id at a wave index, 0 if unknown
func (a *Array) QE(id, wave int) float64 {
	d := a.Detector(id)
	if d == nil {
		return 0
	}
	return d.QEAt(wave)
}

// MaxQE returns the highest efficiency of any detector at a wave index
func (a *Array) MaxQE(wave int) float64 {
	if wave >= 0 && wave < len(a.maxQEBinned) {
		return a.maxQEBinned[wave]
	}
	return a.maxQE
}
