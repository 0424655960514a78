package scene

import (
	"sync/atomic"

	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
)

// Role tags what a node is for. It is assigned when the node is built so that behavior
// never has to be inferred from the node's name.
type Role int

const (
	// RoleGroup is a transform-only node.
	RoleGroup Role = iota
	// RoleMesh is a renderable node.
	RoleMesh
	// RoleLeg is a renderable node driven by the locomotion animator's leg lift.
	RoleLeg
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleGroup:
		return "group"
	case RoleMesh:
		return "mesh"
	case RoleLeg:
		return "leg"
	default:
		return "unknown"
	}
}

// Spin tags a node as eligible for continuous rotation. Nothing in the engine consumes it;
// it is carried as data for game code.
type Spin struct {
	Enabled bool
	Speed   float32
}

// Mesh pairs geometry with the material it is drawn with.
type Mesh struct {
	Geometry *geometry.Geometry
	Material material.Material
}

var nextNodeID atomic.Uint64

// Node is an element of the scene graph. Each node has a local transform relative to
// its parent, an optional mesh, and any number of children.
//
// Nodes are not safe for concurrent mutation; the engine mutates the graph from the main
// thread only. Freshly built detached subtrees may be handed between goroutines.
type Node struct {
	id   uint64
	Name string
	Role Role

	// Position, Rotation (XYZ Euler radians) and Scale form the local transform.
	Position ms3.Vec
	Rotation ms3.Vec
	Scale    ms3.Vec

	Visible       bool
	CastShadow    bool
	ReceiveShadow bool
	Spin          Spin

	Mesh *Mesh

	parent   *Node
	children []*Node
}

// NewNode creates a visible node with an identity transform.
//
// Parameters:
//   - name: the node name
//   - options: functional options applied after defaults
//
// Returns:
//   - *Node: the new node
func NewNode(name string, options ...NodeBuilderOption) *Node {
	n := &Node{
		id:      nextNodeID.Add(1),
		Name:    name,
		Role:    RoleGroup,
		Scale:   ms3.Vec{X: 1, Y: 1, Z: 1},
		Visible: true,
	}
	for _, opt := range options {
		opt(n)
	}
	return n
}

// NewGroup creates an empty transform node.
func NewGroup(name string) *Node {
	return NewNode(name)
}

// NewMeshNode creates a renderable node with RoleMesh.
//
// Parameters:
//   - name: the node name
//   - geo: the geometry to draw
//   - mat: the material to draw it with
//   - options: functional options applied after defaults
//
// Returns:
//   - *Node: the new node
func NewMeshNode(name string, geo *geometry.Geometry, mat material.Material, options ...NodeBuilderOption) *Node {
	opts := append([]NodeBuilderOption{WithMesh(geo, mat), WithRole(RoleMesh)}, options...)
	return NewNode(name, opts...)
}

// ID returns a process-unique identifier used to cache per-object GPU resources.
func (n *Node) ID() uint64 { return n.id }

// Parent returns the parent node, or nil for a root or detached node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list. Callers must not modify the returned slice.
func (n *Node) Children() []*Node { return n.children }

// Add attaches child under n, detaching it from any previous parent first.
// Adding a node to itself or to one of its own descendants is ignored.
//
// Parameters:
//   - child: the node to attach
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	for p := n.parent; p != nil; p = p.parent {
		if p == child {
			return
		}
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It is a no-op if child is not a direct child.
//
// Parameters:
//   - child: the node to detach
//
// Returns:
//   - bool: true if the child was removed
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Traverse calls fn for n and every descendant in depth-first pre-order.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// TraverseVisible is Traverse restricted to nodes whose whole ancestor chain is visible.
func (n *Node) TraverseVisible(fn func(*Node)) {
	if !n.Visible {
		return
	}
	fn(n)
	for _, c := range n.children {
		c.TraverseVisible(fn)
	}
}

// FindByRole returns every node in the subtree rooted at n with the given role.
func (n *Node) FindByRole(role Role) []*Node {
	var out []*Node
	n.Traverse(func(c *Node) {
		if c.Role == role {
			out = append(out, c)
		}
	})
	return out
}

// LocalMatrix returns the node's transform relative to its parent.
func (n *Node) LocalMatrix() common.Mat4 {
	return common.Compose(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix returns the node's transform relative to the root of its graph.
func (n *Node) WorldMatrix() common.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}
