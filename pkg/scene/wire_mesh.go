package scene

import (
	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/detector"
	"github.com/df07/go-photon-tracer/pkg/geometry"
	"github.com/df07/go-photon-tracer/pkg/lattice"
	"github.com/df07/go-photon-tracer/pkg/material"
	"github.com/df07/go-photon-tracer/pkg/runner"
	"github.com/df07/go-photon-tracer/pkg/source"
	"github.com/df07/go-photon-tracer/pkg/transport"
)

const (
	meshHalfPitch   = 0.5  // mm
	meshWireRadius  = 0.05 // mm
	meshHalfExtent  = 40.0 // mm
	meshHalfDepth   = 0.25 // mm
	floodHalfExtent = 20.0 // mm
)

// NewWireMeshScene creates a plane of parallel steel wires at 1 mm pitch
// between a downward flood source and a PMT. The mesh is one lattice element
// holding a single wire in its canonical cell. Wires absorb most photons
// hitting them and reflect or scatter the rest.
func NewWireMeshScene() (*Scene, error) {
	mats := material.NewCollection(
		&material.Material{Name: "vacuum", RefractiveIndex: 1},
		&material.Material{Name: "steel", RefractiveIndex: 1},
		&material.Material{Name: "borosilicate", RefractiveIndex: 1.5},
	)
	wire, err := material.NewSimplisticOverride(0.6, 0.2, 0.2, material.ScatterIsotropic)
	if err != nil {
		return nil, err
	}
	if err := mats.SetOverride(0, 1, wire); err != nil {
		return nil, err
	}

	b := geometry.NewBuilder(geometry.Volume{Name: "world", Solid: geometry.NewBox(100, 100, 100)})
	mesh := b.Place(0, geometry.Volume{
		Name:  "mesh",
		Solid: geometry.NewBox(meshHalfExtent, meshHalfExtent, meshHalfDepth),
		Class: geometry.NodeClass{
			Kind:    geometry.NodeLattice,
			Lattice: lattice.NewRectangular(meshHalfPitch, meshHalfPitch),
		},
	})
	b.Place(mesh, geometry.Volume{
		Name:     "wire",
		Solid:    geometry.NewCylinder(core.NewVec3(1, 0, 0), meshWireRadius, meshHalfPitch),
		Material: 1,
	})
	b.Place(0, geometry.Volume{
		Name:     "pmt",
		Solid:    geometry.NewBox(meshHalfExtent, meshHalfExtent, 1),
		Material: 2,
		Position: core.NewVec3(0, 0, -10),
		Class:    geometry.NodeClass{Kind: geometry.NodeDetector, ID: 0},
	})
	world, err := b.Build()
	if err != nil {
		return nil, err
	}

	array, err := detector.NewArray(detector.Detector{Name: "pmt", Type: detector.PMT, QE: 1})
	if err != nil {
		return nil, err
	}

	settings := source.DefaultPhotonSettings()
	settings.Mode = source.Vector
	settings.Direction = core.NewVec3(0, 0, -1)
	src, err := source.NewRectangularFlood(-floodHalfExtent, floodHalfExtent, -floodHalfExtent, floodHalfExtent, 20, settings)
	if err != nil {
		return nil, err
	}

	cfg := transport.DefaultConfig()
	cfg.AreaResolved = true
	cfg.Tracks.HitsOnly = false
	return &Scene{
		Name:        "mesh",
		Description: meshDescription,
		Setup: runner.Setup{
			Name:      "mesh",
			World:     world,
			Materials: mats,
			Detectors: array,
			Source:    src,
		},
		Config: cfg,
	}, nil
}
