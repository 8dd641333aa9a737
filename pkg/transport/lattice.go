package transport

import (
	"fmt"

	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/geometry"
)

// latticeSlack pulls the containment probe back from the surface the step
// ended on
const latticeSlack = 1e-6

// gridShift is the offset between the folded position the navigator works
// with and the true position while a photon is inside a lattice element.
// true = folded + correction.
type gridShift struct {
	active     bool
	element    geometry.NodeID
	correction core.Vec3
}

// truePoint maps a navigator position to true global coordinates
func (t *Tracer) truePoint(p core.Vec3) core.Vec3 {
	if t.shift.active {
		return p.Add(t.shift.correction)
	}
	return p
}

// enterLattice folds the current position into the canonical cell of the
// element just entered and moves the navigator there
func (t *Tracer) enterLattice(element geometry.NodeID, class geometry.NodeClass) error {
	global := t.nav.CurrentPoint()
	truth := t.truePoint(global)

	local := t.nav.GlobalToLocal(global)
	folded := t.nav.LocalToGlobal(class.Lattice.Fold(local))
	if !t.nav.Relocate(folded) {
		return fmt.Errorf("%w: folded point %v of element %d is outside the world",
			ErrLatticeContainment, folded, element)
	}

	t.shift = gridShift{active: true, element: element, correction: truth.Subtract(folded)}
	return nil
}

// withinLattice reports whether the true position still lies in the bulk of
// the lattice element
func (t *Tracer) withinLattice() bool {
	probe := t.truePoint(t.nav.CurrentPoint()).Subtract(t.ph.Direction.Multiply(latticeSlack))
	return t.nav.Contains(t.shift.element, probe)
}

// leavingLattice reports whether the crossing just made carries the true
// position out of the lattice element. Entering a daughter of the element
// does not leave it.
func (t *Tracer) leavingLattice() bool {
	probe := t.truePoint(t.nav.CurrentPoint()).Add(t.ph.Direction.Multiply(latticeSlack))
	return !t.nav.Contains(t.shift.element, probe)
}

// exitLattice undoes the shift and re-locates the navigator at the true
// position. Returns false when that position is outside the world.
func (t *Tracer) exitLattice() bool {
	truth := t.truePoint(t.nav.CurrentPoint())
	t.shift = gridShift{}
	return t.nav.Relocate(truth)
}
