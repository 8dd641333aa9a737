// Package material holds the optical properties of the media photons travel
// through. Materials are immutable once a run starts and are shared read-only
// between workers.
package material

import (
	"errors"
	"fmt"
)

// WaveUnresolved is the wave index of a photon whose wavelength is not tracked
const WaveUnresolved = -1

var (
	ErrUnknownMaterial = errors.New("material: unknown material index")
	ErrInvalidMaterial = errors.New("material: invalid property")
)

// Material describes one optical medium.
//
// Scalar properties are used for WaveUnresolved photons and as the fallback
// when a binned table is absent. Binned tables are indexed by wave index.
type Material struct {
	Name string

	RefractiveIndex       float64
	RefractiveIndexBinned []float64

	AbsorptionCoefficient float64 // 1/mm
	AbsorptionBinned      []float64

	// RayleighMFP of zero disables Rayleigh scattering altogether
	RayleighMFP    float64 // mm
	RayleighBinned []float64

	ReemissionProb   float64
	EmissionSpectrum Spectrum // nil: absorbed photons are never re-emitted

	// Overrides is indexed by destination material; nil entries mean none
	Overrides []Override
}

// RefractiveIndexAt returns the refractive index for a wave index
func (m *Material) RefractiveIndexAt(wave int) float64 {
	return binnedOr(m.RefractiveIndexBinned, wave, m.RefractiveIndex)
}

// AbsorptionAt returns the bulk absorption coefficient for a wave index
func (m *Material) AbsorptionAt(wave int) float64 {
	return binnedOr(m.AbsorptionBinned, wave, m.AbsorptionCoefficient)
}

// RayleighAt returns the Rayleigh mean free path, zero meaning disabled
func (m *Material) RayleighAt(wave int) float64 {
	if m.RayleighMFP == 0 {
		return 0
	}
	return binnedOr(m.RayleighBinned, wave, m.RayleighMFP)
}

// OverrideTo returns the optical override registered for photons leaving
// this material into material dest, or nil
func (m *Material) OverrideTo(dest int) Override {
	if dest < 0 || dest >= len(m.Overrides) {
		return nil
	}
	return m.Overrides[dest]
}

func binnedOr(table []float64, wave int, scalar float64) float64 {
	if wave >= 0 && wave < len(table) {
		return table[wave]
	}
	return scalar
}

// Validate checks the material's properties are physically usable
func (m *Material) Validate() error {
	if m.RefractiveIndex <= 0 {
		return fmt.Errorf("%w: %q refractive index %g", ErrInvalidMaterial, m.Name, m.RefractiveIndex)
	}
	for i, n := range m.RefractiveIndexBinned {
		if n <= 0 {
			return fmt.Errorf("%w: %q refractive index %g at wave index %d", ErrInvalidMaterial, m.Name, n, i)
		}
	}
	if m.AbsorptionCoefficient < 0 {
		return fmt.Errorf("%w: %q absorption %g", ErrInvalidMaterial, m.Name, m.AbsorptionCoefficient)
	}
	if m.RayleighMFP < 0 {
		return fmt.Errorf("%w: %q rayleigh mfp %g", ErrInvalidMaterial, m.Name, m.RayleighMFP)
	}
	if m.ReemissionProb < 0 || m.ReemissionProb > 1 {
		return fmt.Errorf("%w: %q reemission probability %g", ErrInvalidMaterial, m.Name, m.ReemissionProb)
	}
	return nil
}

// Collection is the material database of a run, indexed by material index
type Collection struct {
	materials []*Material
}

// NewCollection creates a collection; material indices follow argument order
func NewCollection(materials ...*Material) *Collection {
	return &Collection{materials: materials}
}

// Add appends a material and returns its index
func (c *Collection) Add(m *Material) int {
	c.materials = append(c.materials, m)
	return len(c.materials) - 1
}

// Material returns the material at index, or nil when out of range
func (c *Collection) Material(index int) *Material {
	if index < 0 || index >= len(c.materials) {
		return nil
	}
	return c.materials[index]
}

// Len returns the number of materials
func (c *Collection) Len() int {
	return len(c.materials)
}

// Index finds a material by name
func (c *Collection) Index(name string) (int, bool) {
	for i, m := range c.materials {
		if m.Name == name {
			return i, true
		}
	}
	return -1, false
}

// SetOverride registers an optical override for the interface from -> to.
// Must be called before the collection is shared with tracers.
func (c *Collection) SetOverride(from, to int, ov Override) error {
	if from < 0 || from >= len(c.materials) {
		return fmt.Errorf("%w: from %d", ErrUnknownMaterial, from)
	}
	if to < 0 || to >= len(c.materials) {
		return fmt.Errorf("%w: to %d", ErrUnknownMaterial, to)
	}
	m := c.materials[from]
	if len(m.Overrides) < len(c.materials) {
		grown := make([]Override, len(c.materials))
		copy(grown, m.Overrides)
		m.Overrides = grown
	}
	m.Overrides[to] = ov
	return nil
}

// Validate checks every material in the collection
func (c *Collection) Validate() error {
	if len(c.materials) == 0 {
		return errors.New("material: empty collection")
	}
	for i, m := range c.materials {
		if m == nil {
			return fmt.Errorf("%w: nil material at %d", ErrInvalidMaterial, i)
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("material %d: %w", i, err)
		}
		if len(m.Overrides) > len(c.materials) {
			return fmt.Errorf("%w: %q has %d overrides for %d materials",
				ErrInvalidMaterial, m.Name, len(m.Overrides), len(c.materials))
		}
	}
	return nil
}
