package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/model"
)

// loaderBackend defines the generic interface for reading one model format.
// Concrete implementations (e.g., objLoaderBackendImpl) handle format-specific details and
// never touch the scene graph or GPU.
type loaderBackend interface {
	// LoadMaterials reads a material library.
	//
	// Parameters:
	//   - path: the library file path; relative texture paths resolve against its directory
	//
	// Returns:
	//   - []common.ImportedMaterial: the materials in declaration order
	//   - error: error if loading fails
	LoadMaterials(path string) ([]common.ImportedMaterial, error)

	// Load reads a model file and binds its meshes to materials by name.
	// When materials is nil the libraries the file itself references are loaded.
	//
	// Parameters:
	//   - path: the model file path
	//   - materials: the materials to bind against, or nil
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	Load(path string, materials []common.ImportedMaterial) (*model.ImportedModel, error)

	// LoadReader reads a model from a stream and binds it to the given materials.
	//
	// Parameters:
	//   - name: the model name
	//   - r: the reader providing model data
	//   - materials: the materials to bind against
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, materials []common.ImportedMaterial) (*model.ImportedModel, error)
}
