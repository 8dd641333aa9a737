package geometry

import (
	"math"

	"github.com/df07/go-photon-tracer/pkg/core"
)

const (
	// crossingPush is how far past a surface CrossBoundary moves (mm)
	crossingPush = 1e-7
	// surfaceTolerance ignores boundaries the photon is already sitting on
	surfaceTolerance = 1e-9
)

type navState struct {
	point core.Vec3
	node  NodeID
}

// WorldNavigator implements Navigator over a World
type WorldNavigator struct {
	world *World

	point core.Vec3
	dir   core.Vec3
	node  NodeID

	step     float64
	stepNode NodeID // node whose surface ends the current step

	// last crossed surface, for Normal
	surface NodeID
	surfPt  core.Vec3

	saved    navState
	hasSaved bool
}

var _ Navigator = (*WorldNavigator)(nil)

// Locate implements Navigator
func (n *WorldNavigator) Locate(pos, dir core.Vec3) bool {
	n.point = pos
	n.dir = dir
	n.node = n.world.Locate(pos)
	n.surface = Outside
	n.hasSaved = false
	return n.node != Outside
}

func (n *WorldNavigator) CurrentPoint() core.Vec3     { return n.point }
func (n *WorldNavigator) CurrentDirection() core.Vec3 { return n.dir }
func (n *WorldNavigator) SetDirection(dir core.Vec3)  { n.dir = dir }
func (n *WorldNavigator) MoveTo(pos core.Vec3)        { n.point = pos }
func (n *WorldNavigator) CurrentNode() NodeID         { return n.node }
func (n *WorldNavigator) IsOutside() bool             { return n.node == Outside }

// Relocate implements Navigator
func (n *WorldNavigator) Relocate(pos core.Vec3) bool {
	n.point = pos
	n.node = n.world.Locate(pos)
	return n.node != Outside
}

// CurrentMaterial returns the material of the current node, -1 outside
func (n *WorldNavigator) CurrentMaterial() int {
	return n.world.NodeMaterial(n.node)
}

// FindNextBoundary returns the distance to the nearer of the exit from the
// current volume and the entry into one of its daughters
func (n *WorldNavigator) FindNextBoundary() float64 {
	if n.node == Outside {
		n.step, n.stepNode = math.Inf(1), Outside
		return n.step
	}

	current := &n.world.nodes[n.node]
	best := math.Inf(1)
	bestNode := n.node
	if _, tFar, ok := current.Solid.Intersect(core.NewRay(n.point.Subtract(current.origin), n.dir)); ok {
		best = math.Max(tFar, 0)
	}

	for _, id := range current.children {
		child := &n.world.nodes[id]
		tNear, tFar, ok := child.Solid.Intersect(core.NewRay(n.point.Subtract(child.origin), n.dir))
		if !ok || tFar <= surfaceTolerance {
			continue
		}
		if t := math.Max(tNear, 0); t < best {
			best, bestNode = t, id
		}
	}

	if math.IsInf(best, 1) {
		// numerically outside the current solid; leave through it at once
		best = 0
	}
	n.step, n.stepNode = best, bestNode
	return best
}

// StepToBoundary implements Navigator
func (n *WorldNavigator) StepToBoundary() {
	n.point = n.point.Add(n.dir.Multiply(n.step))
}

// CrossBoundary pushes the point just past the surface and finds the node there
func (n *WorldNavigator) CrossBoundary() (NodeID, bool) {
	n.surface, n.surfPt = n.stepNode, n.point
	n.point = n.point.Add(n.dir.Multiply(crossingPush))
	n.node = n.world.Locate(n.point)
	return n.node, n.node != Outside
}

// Normal implements Navigator
func (n *WorldNavigator) Normal() core.Vec3 {
	if n.surface == Outside {
		return n.dir
	}
	s := &n.world.nodes[n.surface]
	normal := s.Solid.Normal(n.surfPt.Subtract(s.origin))
	if normal.Dot(n.dir) < 0 {
		normal = normal.Negate()
	}
	return normal
}

// PushState saves the point and node; a second push overwrites the first
func (n *WorldNavigator) PushState() {
	n.saved = navState{point: n.point, node: n.node}
	n.hasSaved = true
}

// PopState restores the saved state, keeping the last crossed surface so
// that Normal stays valid after a reflection
func (n *WorldNavigator) PopState() {
	if !n.hasSaved {
		return
	}
	n.point, n.node = n.saved.point, n.saved.node
	n.hasSaved = false
}

// DiscardState drops the saved state
func (n *WorldNavigator) DiscardState() {
	n.hasSaved = false
}

// HasSavedState reports whether a state is waiting to be popped or discarded
func (n *WorldNavigator) HasSavedState() bool {
	return n.hasSaved
}

// GlobalToLocal converts to the current node's frame
func (n *WorldNavigator) GlobalToLocal(p core.Vec3) core.Vec3 {
	if n.node == Outside {
		return p
	}
	return p.Subtract(n.world.nodes[n.node].origin)
}

// LocalToGlobal converts from the current node's frame
func (n *WorldNavigator) LocalToGlobal(p core.Vec3) core.Vec3 {
	if n.node == Outside {
		return p
	}
	return p.Add(n.world.nodes[n.node].origin)
}

func (n *WorldNavigator) Classify(id NodeID) NodeClass { return n.world.Classify(id) }
func (n *WorldNavigator) NodeMaterial(id NodeID) int   { return n.world.NodeMaterial(id) }

// Contains implements Navigator
func (n *WorldNavigator) Contains(id NodeID, global core.Vec3) bool {
	return n.world.Contains(id, global)
}
