// Package lattice folds positions inside periodic wire-mesh elements into a
// single canonical unit cell, so that a mesh with thousands of wires can be
// modelled with the geometry of one cell.
package lattice

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-photon-tracer/pkg/core"
)

// Shape selects the cell tiling of a lattice
type Shape int

const (
	Rectangular Shape = iota
	Hexagonal
)

func (s Shape) String() string {
	switch s {
	case Rectangular:
		return "rectangular"
	case Hexagonal:
		return "hexagonal"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ErrInvalidPitch is returned for lattices with a non-positive pitch
var ErrInvalidPitch = errors.New("lattice: pitch must be positive")

const sqrt3 = 1.7320508075688772

// cellSlack widens the canonical cell so that points on its boundary, up to
// rounding, are left where they are
const cellSlack = 1e-9

// Descriptor describes a periodic lattice in the local frame of its element.
// The lattice plane is XY; Z is never folded.
//
// For rectangular lattices HalfPitchX and HalfPitchY are the cell half sizes.
// For hexagonal lattices HalfPitchX is the radius of the circle inscribed in
// the cell and HalfPitchY is ignored.
type Descriptor struct {
	Shape      Shape
	HalfPitchX float64
	HalfPitchY float64
}

// NewRectangular creates a rectangular lattice descriptor
func NewRectangular(halfPitchX, halfPitchY float64) Descriptor {
	return Descriptor{Shape: Rectangular, HalfPitchX: halfPitchX, HalfPitchY: halfPitchY}
}

// NewHexagonal creates a hexagonal lattice descriptor from the inscribed radius
func NewHexagonal(inscribedRadius float64) Descriptor {
	return Descriptor{Shape: Hexagonal, HalfPitchX: inscribedRadius}
}

// Validate checks the descriptor can be used for folding
func (d Descriptor) Validate() error {
	switch d.Shape {
	case Rectangular:
		if d.HalfPitchX <= 0 || d.HalfPitchY <= 0 {
			return fmt.Errorf("%w: got %g x %g", ErrInvalidPitch, d.HalfPitchX, d.HalfPitchY)
		}
	case Hexagonal:
		if d.HalfPitchX <= 0 {
			return fmt.Errorf("%w: got radius %g", ErrInvalidPitch, d.HalfPitchX)
		}
	default:
		return fmt.Errorf("lattice: unknown shape %v", d.Shape)
	}
	return nil
}

// Fold maps a local position to the equivalent position in the canonical cell
// centred on the local origin. Folding is idempotent.
func (d Descriptor) Fold(local core.Vec3) core.Vec3 {
	return local.Subtract(d.CellCenter(local))
}

// CellCenter returns the centre of the lattice cell containing local
func (d Descriptor) CellCenter(local core.Vec3) core.Vec3 {
	if d.Shape == Hexagonal {
		x, y := hexagonalCenter(local.X, local.Y, d.HalfPitchX)
		return core.NewVec3(x, y, 0)
	}
	return core.NewVec3(
		rectangularCenter(local.X, d.HalfPitchX),
		rectangularCenter(local.Y, d.HalfPitchY),
		0,
	)
}

// rectangularCenter folds one axis: period = floor(0.5|x|/half + 0.5)
func rectangularCenter(x, half float64) float64 {
	if math.Abs(x) <= half*(1+cellSlack) {
		return 0
	}
	period := math.Floor(0.5*math.Abs(x)/half + 0.5)
	center := period * 2.0 * half
	if x > 0 {
		return center
	}
	return -center
}

// hexagonalCenter finds the nearest centre of a flat-topped hexagonal tiling
// with inscribed radius r. Centres sit at (1.5·dx·i, dy·j) with i+j even,
// where dx is the circumradius and dy the inscribed radius.
func hexagonalCenter(localX, localY, r float64) (float64, float64) {
	dx := r * 2.0 / sqrt3
	dy := dx * sqrt3 / 2.0

	ax := math.Abs(localX)
	ay := math.Abs(localY)
	if ay <= dy*(1+cellSlack) && sqrt3*ax+ay <= sqrt3*dx*(1+cellSlack) {
		return 0, 0
	}
	ix := int(ax / dx / 1.5)
	iy := int(ay / dy)
	xEven := ix%2 == 0
	yEven := iy%2 == 0

	x := ax - float64(ix)*1.5*dx
	y := ay - float64(iy)*dy

	var cx, cy float64
	if xEven == yEven {
		cx = float64(ix) * 1.5 * dx
		cy = float64(iy) * dy
		if y > sqrt3*(dx-x) {
			cx += 1.5 * dx
			cy += dy
		}
	} else {
		cx = float64(ix) * 1.5 * dx
		cy = float64(iy+1) * dy
		if y < sqrt3*(x-0.5*dx) {
			cx += 1.5 * dx
			cy -= dy
		}
	}

	// mirror into the original quadrant
	if localX < 0 {
		cx = -cx
	}
	if localY < 0 {
		cy = -cy
	}
	return cx, cy
}
