// Package loader imports Wavefront OBJ models with their MTL material libraries, caches the
// parsed results by path, and runs imports on a background worker pool.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/async"
	"github.com/Carmen-Shannon/oxy-waddle/engine/model"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-waddle/engine/scene"
)

// ErrUnsupportedFormat is returned when a path's extension has no backend.
var ErrUnsupportedFormat = errors.New("loader: unsupported format")

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeOBJ selects the Wavefront OBJ/MTL loader backend.
	BackendTypeOBJ LoaderBackendType = iota
)

const (
	defaultWorkers     = 2
	defaultQueueSize   = 64
	defaultIdleTimeout = 5 * time.Second
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	baseDir  string
	classify model.RoleClassifier
	post     func(func())
	mtl      mtlOptions

	materialCache map[string][]common.ImportedMaterial
	modelCache    map[string]model.Model
	inflight      map[string]*async.Future[model.Model]

	workers     int
	queueSize   int
	idleTimeout time.Duration
	pool        worker.DynamicWorkerPool
	taskID      atomic.Int64
	closeOnce   sync.Once

	backend loaderBackend
}

// Loader defines the public-facing interface for loading and caching 3D models.
// It abstracts the file format behind a backend, caches parsed models by path, and hands
// every load a fresh scene subtree so instances never share mutable state.
type Loader interface {
	// LoadMaterials reads and caches a material library.
	//
	// Parameters:
	//   - path: the library path, relative to the base directory unless absolute
	//
	// Returns:
	//   - []common.ImportedMaterial: the materials (shared, do not modify)
	//   - error: error if loading fails
	LoadMaterials(path string) ([]common.ImportedMaterial, error)

	// LoadModel loads the material library and then the model that references it, decodes
	// diffuse textures, and caches the result. Concurrent calls for the same pair share one
	// import.
	//
	// Parameters:
	//   - objPath: the model path
	//   - mtlPath: the material library path; empty uses the model's own mtllib statements
	//
	// Returns:
	//   - model.Model: the cached model
	//   - error: error if loading fails
	LoadModel(objPath, mtlPath string) (model.Model, error)

	// Load is LoadModel followed by Instantiate with the loader's role classifier.
	//
	// Parameters:
	//   - objPath: the model path
	//   - mtlPath: the material library path
	//
	// Returns:
	//   - *scene.Node: a new detached group holding one node per mesh
	//   - error: error if loading fails
	Load(objPath, mtlPath string) (*scene.Node, error)

	// LoadAsync runs Load on the worker pool. The future is resolved through the loader's
	// poster, so continuations registered with OnResolve run wherever the poster runs them.
	//
	// Parameters:
	//   - objPath: the model path
	//   - mtlPath: the material library path
	//
	// Returns:
	//   - *async.Future[*scene.Node]: resolves with the new group or the load error
	LoadAsync(objPath, mtlPath string) *async.Future[*scene.Node]

	// LoadTextureAsync decodes an image file into a texture on the worker pool.
	//
	// Parameters:
	//   - path: the image path
	//
	// Returns:
	//   - *async.Future[*material.Texture]: resolves with the texture or the decode error
	LoadTextureAsync(path string) *async.Future[*material.Texture]

	// LoadCubeTextureAsync decodes six face images into a cube texture on the worker pool.
	//
	// Parameters:
	//   - paths: face image paths in +X, -X, +Y, -Y, +Z, -Z order
	//
	// Returns:
	//   - *async.Future[*material.CubeTexture]: resolves with the cube texture or the error
	LoadCubeTextureAsync(paths [6]string) *async.Future[*material.CubeTexture]

	// Get retrieves a cached model by its cache key. Returns nil if not found.
	//
	// Parameters:
	//   - objPath: the model path
	//   - mtlPath: the material library path
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(objPath, mtlPath string) model.Model

	// Models returns a copy of the model cache keyed by cache key.
	//
	// Returns:
	//   - map[string]model.Model: all cached models
	Models() map[string]model.Model

	// Close stops the worker pool. Pending tasks may not run.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeOBJ)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:            sync.RWMutex{},
		post:          func(fn func()) { fn() },
		materialCache: make(map[string][]common.ImportedMaterial),
		modelCache:    make(map[string]model.Model),
		inflight:      make(map[string]*async.Future[model.Model]),
		workers:       defaultWorkers,
		queueSize:     defaultQueueSize,
		idleTimeout:   defaultIdleTimeout,
	}

	for _, option := range options {
		option(l)
	}

	switch backendType {
	case BackendTypeOBJ:
		l.backend = newOBJLoaderBackend(l.mtl)
	default:
		panic(fmt.Sprintf("loader: unknown backend type %d", backendType))
	}

	l.pool = worker.NewDynamicWorkerPool(l.workers, l.queueSize, l.idleTimeout)
	return l
}

func (l *loader) LoadMaterials(path string) ([]common.ImportedMaterial, error) {
	if path == "" {
		return nil, nil
	}
	path = l.resolve(path)
	if !strings.EqualFold(filepath.Ext(path), ".mtl") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	l.mu.RLock()
	if cached, ok := l.materialCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	mats, err := l.backend.LoadMaterials(path)
	if err != nil {
		return nil, fmt.Errorf("loader: materials: %w", err)
	}

	l.mu.Lock()
	l.materialCache[path] = mats
	l.mu.Unlock()
	return mats, nil
}

func (l *loader) LoadModel(objPath, mtlPath string) (model.Model, error) {
	if !strings.EqualFold(filepath.Ext(objPath), ".obj") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, objPath)
	}
	key := l.cacheKey(objPath, mtlPath)

	l.mu.Lock()
	if cached, ok := l.modelCache[key]; ok {
		l.mu.Unlock()
		return cached, nil
	}
	if pending, ok := l.inflight[key]; ok {
		l.mu.Unlock()
		return pending.Wait(context.Background())
	}
	pending := async.NewFuture[model.Model]()
	l.inflight[key] = pending
	l.mu.Unlock()

	m, err := l.importModel(objPath, mtlPath)

	l.mu.Lock()
	if err == nil {
		l.modelCache[key] = m
	}
	delete(l.inflight, key)
	l.mu.Unlock()

	pending.Resolve(m, err)
	return m, err
}

func (l *loader) Load(objPath, mtlPath string) (*scene.Node, error) {
	m, err := l.LoadModel(objPath, mtlPath)
	if err != nil {
		return nil, err
	}
	return m.Instantiate(l.classify), nil
}

func (l *loader) LoadAsync(objPath, mtlPath string) *async.Future[*scene.Node] {
	return submit(l, objPath, func() (*scene.Node, error) {
		return l.Load(objPath, mtlPath)
	})
}

func (l *loader) LoadTextureAsync(path string) *async.Future[*material.Texture] {
	path = l.resolve(path)
	return submit(l, path, func() (*material.Texture, error) {
		return material.LoadTexture(path)
	})
}

func (l *loader) LoadCubeTextureAsync(paths [6]string) *async.Future[*material.CubeTexture] {
	for i := range paths {
		paths[i] = l.resolve(paths[i])
	}
	return submit(l, paths[0], func() (*material.CubeTexture, error) {
		return material.LoadCubeTexture(paths)
	})
}

func (l *loader) Get(objPath, mtlPath string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[l.cacheKey(objPath, mtlPath)]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

func (l *loader) Close() {
	l.closeOnce.Do(l.pool.Stop)
}

// importModel reads the material library and model and builds template materials,
// decoding diffuse textures. A texture that fails to decode is logged and skipped.
func (l *loader) importModel(objPath, mtlPath string) (model.Model, error) {
	mats, err := l.LoadMaterials(mtlPath)
	if err != nil {
		return nil, err
	}

	imported, err := l.backend.Load(l.resolve(objPath), mats)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	templates := make([]material.Material, len(imported.Materials))
	for i := range imported.Materials {
		im := &imported.Materials[i]
		opts := []material.MaterialBuilderOption{material.FromImported(im)}
		if im.DiffuseTexture != nil {
			tex, err := material.LoadTexture(im.DiffuseTexture.Path)
			if err != nil {
				log.Printf("[Loader] %s: material %q: %v", imported.Name, im.Name, err)
			} else {
				tex.WrapS, tex.WrapT = material.WrapRepeat, material.WrapRepeat
				tex.SRGB = true
				opts = append(opts, material.WithTexture(tex))
			}
		}
		templates[i] = material.NewMaterial(opts...)
	}

	return model.NewModel(
		model.WithImportedModel(imported),
		model.WithRenderMaterials(templates),
	), nil
}

// resolve joins a relative path onto the base directory.
func (l *loader) resolve(path string) string {
	return resolvePath(l.baseDir, path)
}

func (l *loader) cacheKey(objPath, mtlPath string) string {
	key := l.resolve(objPath)
	if mtlPath != "" {
		key += "|" + l.resolve(mtlPath)
	}
	return key
}

// submit runs fn on the worker pool and resolves the returned future through the poster.
// A panic inside fn resolves the future with an error instead of killing the worker.
func submit[T any](l *loader, label string, fn func() (T, error)) *async.Future[T] {
	fut := async.NewFuture[T]()
	l.pool.SubmitTask(worker.Task{
		ID:      int(l.taskID.Add(1)),
		Payload: label,
		Do: func() (result any, err error) {
			var v T
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("loader: %s: panic: %v", label, r)
				}
				l.post(func() { fut.Resolve(v, err) })
			}()
			v, err = fn()
			return v, err
		},
	})
	return fut
}
