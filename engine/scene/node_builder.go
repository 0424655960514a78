package scene

import (
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
)

// NodeBuilderOption is a functional option for configuring a Node.
type NodeBuilderOption func(n *Node)

// WithRole sets the node role.
//
// Parameters:
//   - role: the role tag
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithRole(role Role) NodeBuilderOption {
	return func(n *Node) {
		n.Role = role
	}
}

// WithMesh attaches geometry and material to the node.
//
// Parameters:
//   - geo: the geometry to draw
//   - mat: the material to draw it with
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithMesh(geo *geometry.Geometry, mat material.Material) NodeBuilderOption {
	return func(n *Node) {
		n.Mesh = &Mesh{Geometry: geo, Material: mat}
	}
}

// WithPosition sets the local position.
func WithPosition(p ms3.Vec) NodeBuilderOption {
	return func(n *Node) {
		n.Position = p
	}
}

// WithRotation sets the local XYZ Euler rotation in radians.
func WithRotation(r ms3.Vec) NodeBuilderOption {
	return func(n *Node) {
		n.Rotation = r
	}
}

// WithScale sets the local scale.
func WithScale(s ms3.Vec) NodeBuilderOption {
	return func(n *Node) {
		n.Scale = s
	}
}

// WithShadows sets whether the node casts and receives shadows.
//
// Parameters:
//   - cast: whether the node renders into shadow maps
//   - receive: whether the node is darkened by shadow maps
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithShadows(cast, receive bool) NodeBuilderOption {
	return func(n *Node) {
		n.CastShadow = cast
		n.ReceiveShadow = receive
	}
}

// WithChildren attaches children to the node.
func WithChildren(children ...*Node) NodeBuilderOption {
	return func(n *Node) {
		for _, c := range children {
			n.Add(c)
		}
	}
}
