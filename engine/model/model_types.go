package model

import (
	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/geometry"
)

// ImportedModel is a model read from an external format before any engine objects exist.
// Parsers produce it; NewModel turns it into shared geometry and material templates.
type ImportedModel struct {
	// Name is the model identifier, usually the source file name.
	Name string

	// Meshes holds one entry per contiguous (object, material) run in the source.
	Meshes []ImportedMesh

	// Materials are the materials referenced by Meshes[i].MaterialIndex.
	Materials []common.ImportedMaterial

	// MaterialLibs lists the material libraries the source file referenced (mtllib).
	MaterialLibs []string
}

// ImportedMesh is a single drawable part of an ImportedModel.
type ImportedMesh struct {
	// Name is the object (o) name, falling back to the group (g) name.
	Name string

	// Group is the last group (g) name seen before the mesh's faces.
	Group string

	// MaterialName is the usemtl name, empty when none was active.
	MaterialName string

	// MaterialIndex references ImportedModel.Materials, or -1 when the material is unknown.
	MaterialIndex int

	// Vertices are de-indexed per face corner; positions, normals and UVs are already resolved.
	Vertices []geometry.Vertex

	// Indices are the triangle list indices.
	Indices []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *ImportedMesh) TriangleCount() int {
	return len(m.Indices) / 3
}
