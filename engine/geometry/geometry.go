// Package geometry holds indexed triangle meshes and the primitive shapes used by scenes.
package geometry

import (
	"sync/atomic"

	"github.com/soypat/geometry/ms3"
)

// VertexStride is the size in bytes of one Vertex in a GPU vertex buffer.
const VertexStride = 32

// Vertex is the interleaved vertex layout shared by every mesh:
// position (location 0), normal (location 1), uv (location 2).
// UVs use a bottom-left origin, matching OBJ files.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Pos returns the vertex position as a vector.
func (v Vertex) Pos() ms3.Vec {
	return ms3.Vec{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
}

var nextID atomic.Uint64

// Geometry is an immutable indexed triangle list.
type Geometry struct {
	id       uint64
	label    string
	vertices []Vertex
	indices  []uint32
	bounds   ms3.Box
}

// New creates a Geometry and computes its bounding box.
// The slices are owned by the geometry afterwards.
//
// Parameters:
//   - label: debug label used for GPU resources
//   - vertices: vertex data
//   - indices: triangle list indices into vertices
//
// Returns:
//   - *Geometry: the new geometry
func New(label string, vertices []Vertex, indices []uint32) *Geometry {
	g := &Geometry{
		id:       nextID.Add(1),
		label:    label,
		vertices: vertices,
		indices:  indices,
	}
	if len(vertices) > 0 {
		g.bounds = ms3.Box{Min: vertices[0].Pos(), Max: vertices[0].Pos()}
		for _, v := range vertices[1:] {
			p := v.Pos()
			g.bounds.Min = ms3.MinElem(g.bounds.Min, p)
			g.bounds.Max = ms3.MaxElem(g.bounds.Max, p)
		}
	}
	return g
}

// ID returns a process-unique identifier used to cache GPU buffers.
func (g *Geometry) ID() uint64 { return g.id }

// Label returns the debug label.
func (g *Geometry) Label() string { return g.label }

// Vertices returns the vertex slice. Callers must not modify it.
func (g *Geometry) Vertices() []Vertex { return g.vertices }

// Indices returns the index slice. Callers must not modify it.
func (g *Geometry) Indices() []uint32 { return g.indices }

// Bounds returns the local-space axis-aligned bounding box.
func (g *Geometry) Bounds() ms3.Box { return g.bounds }

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int { return len(g.indices) / 3 }

// Triangle returns the corner positions of triangle i in winding order.
func (g *Geometry) Triangle(i int) (a, b, c ms3.Vec) {
	return g.vertices[g.indices[3*i]].Pos(),
		g.vertices[g.indices[3*i+1]].Pos(),
		g.vertices[g.indices[3*i+2]].Pos()
}

// FaceNormal returns the unit normal of the counter-clockwise triangle (a, b, c),
// or +Y for a degenerate triangle.
func FaceNormal(a, b, c ms3.Vec) ms3.Vec {
	n := ms3.Cross(ms3.Sub(b, a), ms3.Sub(c, a))
	if l := ms3.Norm(n); l > 0 {
		return ms3.Scale(1/l, n)
	}
	return ms3.Vec{Y: 1}
}
