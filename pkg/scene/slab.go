package scene

import (
	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/detector"
	"github.com/df07/go-photon-tracer/pkg/geometry"
	"github.com/df07/go-photon-tracer/pkg/material"
	"github.com/df07/go-photon-tracer/pkg/runner"
	"github.com/df07/go-photon-tracer/pkg/source"
	"github.com/df07/go-photon-tracer/pkg/transport"
)

// NewSlabScene creates a 100x100x20 mm plastic scintillator with a PMT window
// on its top face and a small SiPM under its bottom face. Photons start
// isotropically from the slab centre.
func NewSlabScene() (*Scene, error) {
	mats := material.NewCollection(
		&material.Material{Name: "air", RefractiveIndex: 1.0003},
		&material.Material{Name: "plastic", RefractiveIndex: 1.58, AbsorptionCoefficient: 0.002},
		&material.Material{Name: "borosilicate", RefractiveIndex: 1.5},
	)

	b := geometry.NewBuilder(geometry.Volume{Name: "world", Solid: geometry.NewBox(100, 100, 100)})
	b.Place(0, geometry.Volume{Name: "slab", Solid: geometry.NewBox(50, 50, 10), Material: 1})
	b.Place(0, geometry.Volume{
		Name:     "pmt",
		Solid:    geometry.NewBox(25, 25, 2),
		Material: 2,
		Position: core.NewVec3(0, 0, 12),
		Class:    geometry.NodeClass{Kind: geometry.NodeDetector, ID: 0},
	})
	b.Place(0, geometry.Volume{
		Name:     "sipm",
		Solid:    geometry.NewBox(3, 3, 0.5),
		Material: 2,
		Position: core.NewVec3(0, 0, -10.5),
		Class:    geometry.NodeClass{Kind: geometry.NodeDetector, ID: 1},
	})
	world, err := b.Build()
	if err != nil {
		return nil, err
	}

	array, err := detector.NewArray(
		detector.Detector{Name: "pmt", Type: detector.PMT, QE: 0.25},
		detector.Detector{Name: "sipm", Type: detector.SiPM, QE: 0.4},
	)
	if err != nil {
		return nil, err
	}

	src, err := source.NewPointSource(core.Vec3{}, source.DefaultPhotonSettings())
	if err != nil {
		return nil, err
	}

	cfg := transport.DefaultConfig()
	cfg.AngleResolved = true
	return &Scene{
		Name:        "slab",
		Description: slabDescription,
		Setup: runner.Setup{
			Name:      "slab",
			World:     world,
			Materials: mats,
			Detectors: array,
			Source:    src,
		},
		Config: cfg,
	}, nil
}
