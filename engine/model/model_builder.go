package model

import (
	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithImportedModel is an option builder that sets the meshes, materials and name from
// parsed model data. A later WithName overrides the imported name.
//
// Parameters:
//   - imported: the parsed model
//
// Returns:
//   - ModelBuilderOption: a function that applies the imported data to a model
func WithImportedModel(imported *ImportedModel) ModelBuilderOption {
	return func(m *model) {
		if imported == nil {
			return
		}
		if m.name == "" {
			m.name = imported.Name
		}
		m.meshes = imported.Meshes
		m.importedMaterials = imported.Materials
	}
}

// WithImportedMaterials is an option builder that sets the raw imported materials.
//
// Parameters:
//   - materials: the imported materials
//
// Returns:
//   - ModelBuilderOption: a function that applies the materials option to a model
func WithImportedMaterials(materials []common.ImportedMaterial) ModelBuilderOption {
	return func(m *model) {
		m.importedMaterials = materials
	}
}

// WithRenderMaterials is an option builder that sets the template materials directly,
// skipping the default conversion from imported materials.
//
// Parameters:
//   - mats: the template materials, indexed like the imported materials
//
// Returns:
//   - ModelBuilderOption: a function that applies the render materials to a model
func WithRenderMaterials(mats []material.Material) ModelBuilderOption {
	return func(m *model) {
		m.renderMaterials = mats
	}
}
