package scene

import (
	"math"

	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/detector"
	"github.com/df07/go-photon-tracer/pkg/geometry"
	"github.com/df07/go-photon-tracer/pkg/material"
	"github.com/df07/go-photon-tracer/pkg/runner"
	"github.com/df07/go-photon-tracer/pkg/source"
	"github.com/df07/go-photon-tracer/pkg/transport"
)

// SphereWaveGrid is the wavelength binning of the sphere scene
var SphereWaveGrid = material.WaveGrid{From: 300, Step: 5, Nodes: 61}

// NewRayleighSphereScene creates a 30 mm radius liquid scintillator sphere
// with two PMTs above and below it. Photons start at the centre in the UV and
// are shifted to longer wavelengths on absorption.
func NewRayleighSphereScene() (*Scene, error) {
	grid := SphereWaveGrid

	emission, err := material.NewBinnedSpectrum(grid.Tabulate(func(nm float64) float64 {
		return math.Exp(-0.5 * math.Pow((nm-420)/15, 2))
	}))
	if err != nil {
		return nil, err
	}

	scintillator := &material.Material{
		Name:            "liquid scintillator",
		RefractiveIndex: 1.5,
		RefractiveIndexBinned: grid.Tabulate(func(nm float64) float64 {
			return 1.47 + 4000/(nm*nm) // Cauchy dispersion
		}),
		AbsorptionCoefficient: 0.001,
		AbsorptionBinned: grid.Tabulate(func(nm float64) float64 {
			if nm < 360 {
				return 0.5 // primary fluor band
			}
			return 0.001
		}),
		RayleighMFP: 200,
		RayleighBinned: grid.Tabulate(func(nm float64) float64 {
			return 200 * math.Pow(nm/420, 4)
		}),
		ReemissionProb:   0.8,
		EmissionSpectrum: emission,
	}

	mats := material.NewCollection(
		&material.Material{Name: "air", RefractiveIndex: 1.0003},
		scintillator,
		&material.Material{Name: "borosilicate", RefractiveIndex: 1.5},
	)

	b := geometry.NewBuilder(geometry.Volume{Name: "world", Solid: geometry.NewBox(100, 100, 100)})
	b.Place(0, geometry.Volume{Name: "sphere", Solid: geometry.NewSphere(30), Material: 1})
	for i, z := range []float64{35, -35} {
		b.Place(0, geometry.Volume{
			Name:     "pmt",
			Solid:    geometry.NewCylinder(core.NewVec3(0, 0, 1), 20, 2),
			Material: 2,
			Position: core.NewVec3(0, 0, z),
			Class:    geometry.NodeClass{Kind: geometry.NodeDetector, ID: i},
		})
	}
	world, err := b.Build()
	if err != nil {
		return nil, err
	}

	// bialkali-like response peaking near 400 nm
	qe := grid.Tabulate(func(nm float64) float64 {
		return 0.3 * math.Exp(-0.5*math.Pow((nm-400)/60, 2))
	})
	array, err := detector.NewArray(
		detector.Detector{Name: "pmt-top", Type: detector.PMT, QE: 0.25, QEBinned: qe},
		detector.Detector{Name: "pmt-bottom", Type: detector.PMT, QE: 0.25, QEBinned: qe},
	)
	if err != nil {
		return nil, err
	}

	settings := source.DefaultPhotonSettings()
	settings.WaveIndex = grid.Index(340)
	src, err := source.NewPointSource(core.Vec3{}, settings)
	if err != nil {
		return nil, err
	}

	cfg := transport.DefaultConfig()
	cfg.WaveResolved = true
	cfg.AngleResolved = true
	return &Scene{
		Name:        "sphere",
		Description: sphereDescription,
		Setup: runner.Setup{
			Name:      "sphere",
			World:     world,
			Materials: mats,
			Detectors: array,
			Source:    src,
		},
		Config: cfg,
	}, nil
}
