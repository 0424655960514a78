// Package model turns imported model data into reusable geometry and material templates
// and stamps out scene graph instances of them.
package model

import (
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-waddle/engine/scene"
)

// RoleClassifier maps an imported mesh name to the scene role its node is built with.
type RoleClassifier func(name string) scene.Role

// model is the implementation of the Model interface.
type model struct {
	name              string
	meshes            []ImportedMesh
	importedMaterials []common.ImportedMaterial
	renderMaterials   []material.Material
	geometries        []*geometry.Geometry
	bounds            ms3.Box
}

// Model defines the interface for a loaded 3D model.
// A Model owns immutable geometry shared by every instance plus one template material per
// imported material. It is produced by the Loader and cached by path.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// ImportedMaterials retrieves the raw material properties read from the material library.
	//
	// Returns:
	//   - []common.ImportedMaterial: the imported materials
	ImportedMaterials() []common.ImportedMaterial

	// RenderMaterials retrieves the template materials, indexed like ImportedMaterials.
	// Instances never draw with these directly; each mesh node receives a clone.
	//
	// Returns:
	//   - []material.Material: the template materials
	RenderMaterials() []material.Material

	// SetRenderMaterials replaces the template material list.
	//
	// Parameters:
	//   - mats: the template materials to set
	SetRenderMaterials(mats []material.Material)

	// Geometries returns the per-mesh geometry, indexed like the imported meshes.
	//
	// Returns:
	//   - []*geometry.Geometry: the geometry list
	Geometries() []*geometry.Geometry

	// MeshCount returns the number of drawable meshes.
	//
	// Returns:
	//   - int: the mesh count
	MeshCount() int

	// Bounds returns the model-space bounding box over all meshes.
	//
	// Returns:
	//   - ms3.Box: the bounding box
	Bounds() ms3.Box

	// Instantiate builds a fresh scene subtree for the model: a group node holding one mesh
	// node per imported mesh. Every mesh node gets its own material clone so that mutating
	// one instance's material never affects another mesh or instance.
	//
	// Parameters:
	//   - classify: maps mesh names to roles; nil tags every mesh node RoleMesh
	//
	// Returns:
	//   - *scene.Node: the detached group node
	Instantiate(classify RoleClassifier) *scene.Node
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// Geometry is built once here from the imported meshes.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}

	m.geometries = make([]*geometry.Geometry, len(m.meshes))
	for i, mesh := range m.meshes {
		g := geometry.New(m.name+"/"+mesh.Name, mesh.Vertices, mesh.Indices)
		m.geometries[i] = g
		if i == 0 {
			m.bounds = g.Bounds()
			continue
		}
		b := g.Bounds()
		m.bounds = ms3.Box{Min: ms3.MinElem(m.bounds.Min, b.Min), Max: ms3.MaxElem(m.bounds.Max, b.Max)}
	}

	if m.renderMaterials == nil {
		m.renderMaterials = make([]material.Material, len(m.importedMaterials))
		for i := range m.importedMaterials {
			m.renderMaterials[i] = material.NewMaterial(material.FromImported(&m.importedMaterials[i]))
		}
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) ImportedMaterials() []common.ImportedMaterial {
	return m.importedMaterials
}

func (m *model) RenderMaterials() []material.Material {
	return m.renderMaterials
}

func (m *model) SetRenderMaterials(mats []material.Material) {
	m.renderMaterials = mats
}

func (m *model) Geometries() []*geometry.Geometry {
	return m.geometries
}

func (m *model) MeshCount() int {
	return len(m.meshes)
}

func (m *model) Bounds() ms3.Box {
	return m.bounds
}

func (m *model) Instantiate(classify RoleClassifier) *scene.Node {
	root := scene.NewGroup(m.name)
	for i, mesh := range m.meshes {
		role := scene.RoleMesh
		if classify != nil {
			role = classify(mesh.Name)
		}
		root.Add(scene.NewMeshNode(mesh.Name, m.geometries[i], m.templateFor(mesh.MaterialIndex).Clone(), scene.WithRole(role)))
	}
	return root
}

// templateFor returns the template material for an imported material index, or a plain
// default material when the index does not resolve.
func (m *model) templateFor(index int) material.Material {
	if index >= 0 && index < len(m.renderMaterials) && m.renderMaterials[index] != nil {
		return m.renderMaterials[index]
	}
	return material.NewMaterial(material.WithName("default"))
}
