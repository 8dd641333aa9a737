// Package geometry defines the navigation contract the photon tracer drives
// and a reference kernel implementing it: an immutable tree of convex
// volumes placed by translation, with one navigator per worker.
package geometry

import (
	"fmt"

	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/lattice"
)

// NodeID identifies a placed volume in the geometry tree
type NodeID int

// Outside is the node of points outside the world volume
const Outside NodeID = -1

// NodeKind is the closed set of node roles the tracer dispatches on
type NodeKind int

const (
	NodePlain NodeKind = iota
	NodeDetector
	NodeDummyDetector
	NodeLattice
)

func (k NodeKind) String() string {
	switch k {
	case NodePlain:
		return "plain"
	case NodeDetector:
		return "detector"
	case NodeDummyDetector:
		return "dummy-detector"
	case NodeLattice:
		return "lattice"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// NodeClass tells the tracer what a node is. ID is the detector index for
// detectors and the element index for lattice nodes.
type NodeClass struct {
	Kind    NodeKind
	ID      int
	Lattice lattice.Descriptor
}

// Navigator walks a single photon through the geometry. Implementations are
// not safe for concurrent use; create one per worker.
type Navigator interface {
	// Locate places the navigator at pos heading along dir and finds the
	// containing node. Returns false when pos is outside the world.
	Locate(pos, dir core.Vec3) bool
	CurrentPoint() core.Vec3
	CurrentDirection() core.Vec3
	SetDirection(dir core.Vec3)
	// MoveTo changes the current point without changing the current node
	MoveTo(pos core.Vec3)
	// Relocate changes the current point and finds the node again
	Relocate(pos core.Vec3) bool
	CurrentNode() NodeID
	CurrentMaterial() int

	// FindNextBoundary returns the distance to the next boundary along the
	// current direction without moving
	FindNextBoundary() float64
	// StepToBoundary moves to the boundary found by FindNextBoundary,
	// stopping just before the crossing
	StepToBoundary()
	// CrossBoundary steps across the boundary and returns the node entered,
	// false when the photon left the world
	CrossBoundary() (NodeID, bool)
	IsOutside() bool
	// Normal is the unit normal of the last crossed surface, oriented so
	// that its dot product with the current direction is non-negative
	Normal() core.Vec3

	// Single-slot state save used to undo a crossing
	PushState()
	PopState()
	DiscardState()

	GlobalToLocal(p core.Vec3) core.Vec3
	LocalToGlobal(p core.Vec3) core.Vec3

	Classify(id NodeID) NodeClass
	NodeMaterial(id NodeID) int
	// Contains reports whether a global point lies inside node id
	Contains(id NodeID, global core.Vec3) bool
}
