package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/model"
)

// objLoaderBackendImpl is the implementation of objLoaderBackend.
type objLoaderBackendImpl struct {
	mtl mtlOptions
}

// objLoaderBackend is a loaderBackend implementation for Wavefront OBJ files with MTL
// material libraries.
type objLoaderBackend interface {
	loaderBackend
}

var _ objLoaderBackend = &objLoaderBackendImpl{}

// newOBJLoaderBackend creates a new OBJ loader backend.
//
// Parameters:
//   - mtl: material library options
//
// Returns:
//   - objLoaderBackend: the loader backend for OBJ/MTL files
func newOBJLoaderBackend(mtl mtlOptions) objLoaderBackend {
	return &objLoaderBackendImpl{mtl: mtl}
}

func (b *objLoaderBackendImpl) LoadMaterials(path string) ([]common.ImportedMaterial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mats, err := parseMTL(f, filepath.Dir(path), b.mtl)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mats, nil
}

func (b *objLoaderBackendImpl) Load(path string, materials []common.ImportedMaterial) (*model.ImportedModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	imported, err := parseOBJ(f, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if materials == nil {
		for _, lib := range imported.MaterialLibs {
			mats, err := b.LoadMaterials(resolvePath(filepath.Dir(path), lib))
			if err != nil {
				return nil, fmt.Errorf("%s: mtllib: %w", path, err)
			}
			materials = append(materials, mats...)
		}
	}
	bindMaterials(imported, materials)
	return imported, nil
}

func (b *objLoaderBackendImpl) LoadReader(name string, r io.Reader, materials []common.ImportedMaterial) (*model.ImportedModel, error) {
	imported, err := parseOBJ(r, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	bindMaterials(imported, materials)
	return imported, nil
}

// bindMaterials attaches the material list and resolves each mesh's usemtl name against
// it. Names that do not resolve leave MaterialIndex at -1.
func bindMaterials(imported *model.ImportedModel, materials []common.ImportedMaterial) {
	imported.Materials = materials
	byName := make(map[string]int, len(materials))
	for i, m := range materials {
		if _, dup := byName[m.Name]; !dup {
			byName[m.Name] = i
		}
	}
	for i := range imported.Meshes {
		mesh := &imported.Meshes[i]
		mesh.MaterialIndex = -1
		if idx, ok := byName[mesh.MaterialName]; ok && mesh.MaterialName != "" {
			mesh.MaterialIndex = idx
		}
	}
}
