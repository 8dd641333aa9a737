// Package scene provides ready-made simulation setups: the geometry,
// materials, detectors and photon source of a run together with a suitable
// tracer configuration.
package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-photon-tracer/pkg/runner"
	"github.com/df07/go-photon-tracer/pkg/transport"
)

// ErrUnknownScene is returned by New for unregistered names
var ErrUnknownScene = errors.New("scene: unknown scene")

// Scene is a complete simulation setup
type Scene struct {
	Name        string
	Description string
	Setup       runner.Setup
	Config      transport.Config
}

// Info names a registered scene
type Info struct {
	Name        string
	Description string
}

const (
	slabDescription   = "Scintillator slab read out by a PMT on top and a SiPM below"
	meshDescription   = "Flood illumination of a PMT through a folded wire mesh"
	sphereDescription = "Wavelength-resolved scintillator sphere with Rayleigh scattering and re-emission"
)

type constructor struct {
	description string
	build       func() (*Scene, error)
}

var registry = map[string]constructor{
	"slab": {
		description: slabDescription,
		build:       NewSlabScene,
	},
	"mesh": {
		description: meshDescription,
		build:       NewWireMeshScene,
	},
	"sphere": {
		description: sphereDescription,
		build:       NewRayleighSphereScene,
	},
}

// List returns the registered scenes sorted by name
func List() []Info {
	out := make([]Info, 0, len(registry))
	for name, c := range registry {
		out = append(out, Info{Name: name, Description: c.description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// New builds the named scene
func New(name string) (*Scene, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	s, err := c.build()
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}
	return s, nil
}
