package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-photon-tracer/pkg/core"
)

var (
	ErrUnknownNode = errors.New("geometry: unknown node")
	ErrEmptyWorld  = errors.New("geometry: world has no volume")
)

// Volume describes one placed solid. Position is the origin of the volume's
// frame in its parent's frame.
type Volume struct {
	Name     string
	Solid    Solid
	Material int
	Position core.Vec3
	Class    NodeClass
}

type node struct {
	Volume
	parent   NodeID
	origin   core.Vec3 // frame origin in global coordinates
	children []NodeID
}

// World is the immutable volume tree. It is safe to share between workers;
// each worker gets its own navigator from NewNavigator.
type World struct {
	nodes []node
}

// Builder assembles a World. Errors are collected and reported by Build.
type Builder struct {
	nodes []node
	err   error
}

// NewBuilder starts a tree with the given world volume as node 0
func NewBuilder(world Volume) *Builder {
	b := &Builder{}
	b.nodes = append(b.nodes, node{Volume: world, parent: Outside, origin: world.Position})
	return b
}

// Place adds a daughter volume inside parent and returns its node id.
// Daughters must not overlap each other.
func (b *Builder) Place(parent NodeID, v Volume) NodeID {
	if parent < 0 || int(parent) >= len(b.nodes) {
		if b.err == nil {
			b.err = fmt.Errorf("%w: parent %d of %q", ErrUnknownNode, parent, v.Name)
		}
		return Outside
	}
	id := NodeID(len(b.nodes))
	p := &b.nodes[parent]
	p.children = append(p.children, id)
	b.nodes = append(b.nodes, node{Volume: v, parent: parent, origin: p.origin.Add(v.Position)})
	return id
}

// Build validates the tree and freezes it
func (b *Builder) Build() (*World, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.nodes) == 0 {
		return nil, ErrEmptyWorld
	}
	for i := range b.nodes {
		n := &b.nodes[i]
		if n.Solid == nil {
			return nil, fmt.Errorf("%w: volume %q has no solid", ErrInvalidShape, n.Name)
		}
		if err := n.Solid.Validate(); err != nil {
			return nil, fmt.Errorf("volume %q: %w", n.Name, err)
		}
		if n.Material < 0 {
			return nil, fmt.Errorf("volume %q: negative material index %d", n.Name, n.Material)
		}
		if n.Class.Kind == NodeLattice {
			if err := n.Class.Lattice.Validate(); err != nil {
				return nil, fmt.Errorf("volume %q: %w", n.Name, err)
			}
		}
		if n.parent != Outside {
			parent := &b.nodes[n.parent]
			if !parent.Solid.Contains(n.Position) {
				return nil, fmt.Errorf("%w: volume %q is placed outside its parent %q",
					ErrInvalidShape, n.Name, parent.Name)
			}
		}
	}

	nodes := make([]node, len(b.nodes))
	copy(nodes, b.nodes)
	return &World{nodes: nodes}, nil
}

// NumNodes returns the number of placed volumes
func (w *World) NumNodes() int {
	return len(w.nodes)
}

// Volume returns the description of a node
func (w *World) Volume(id NodeID) (Volume, error) {
	if id < 0 || int(id) >= len(w.nodes) {
		return Volume{}, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return w.nodes[id].Volume, nil
}

// Find returns the node id of the first volume with the given name
func (w *World) Find(name string) (NodeID, bool) {
	for i := range w.nodes {
		if w.nodes[i].Name == name {
			return NodeID(i), true
		}
	}
	return Outside, false
}

// Locate finds the deepest node containing the global point p
func (w *World) Locate(p core.Vec3) NodeID {
	if len(w.nodes) == 0 || !w.contains(0, p) {
		return Outside
	}
	current := NodeID(0)
	for {
		next := Outside
		for _, child := range w.nodes[current].children {
			if w.contains(child, p) {
				next = child
				break
			}
		}
		if next == Outside {
			return current
		}
		current = next
	}
}

// Classify returns the role of a node; unknown nodes are plain
func (w *World) Classify(id NodeID) NodeClass {
	if id < 0 || int(id) >= len(w.nodes) {
		return NodeClass{}
	}
	return w.nodes[id].Class
}

// NodeMaterial returns the material index of a node, -1 if unknown
func (w *World) NodeMaterial(id NodeID) int {
	if id < 0 || int(id) >= len(w.nodes) {
		return -1
	}
	return w.nodes[id].Material
}

// Contains reports whether the global point lies inside node id
func (w *World) Contains(id NodeID, global core.Vec3) bool {
	if id < 0 || int(id) >= len(w.nodes) {
		return false
	}
	return w.contains(id, global)
}

func (w *World) contains(id NodeID, global core.Vec3) bool {
	n := &w.nodes[id]
	return n.Solid.Contains(global.Subtract(n.origin))
}

// NewNavigator returns a navigator bound to this world
func (w *World) NewNavigator() *WorldNavigator {
	return &WorldNavigator{world: w, node: Outside, surface: Outside}
}
