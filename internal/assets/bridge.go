// Package assets loads the penguin and its hat in the background and places them in the
// scene once they arrive.
package assets

import (
	"errors"
	"log"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/engine/async"
	"github.com/Carmen-Shannon/oxy-waddle/engine/scene"
)

// ErrHatDropped resolves Bridge.Hat when the hat arrives before the penguin under
// AttachIfReady.
var ErrHatDropped = errors.New("assets: hat dropped, penguin not ready")

// Transform is a node's local placement.
type Transform struct {
	Position ms3.Vec `json:"position"`
	Rotation ms3.Vec `json:"rotation"`
	Scale    ms3.Vec `json:"scale"`
}

// Apply writes t onto n.
func (t Transform) Apply(n *scene.Node) {
	n.Position = t.Position
	n.Rotation = t.Rotation
	n.Scale = t.Scale
}

// Config lists the two model bundles and where they go.
type Config struct {
	PenguinOBJ string `json:"penguin_obj"`
	PenguinMTL string `json:"penguin_mtl"`
	HatOBJ     string `json:"hat_obj"`
	HatMTL     string `json:"hat_mtl"`

	// PenguinGroup places the penguin's root group.
	PenguinGroup Transform `json:"penguin_group"`
	// PenguinMesh is applied to every mesh node inside the penguin.
	PenguinMesh Transform `json:"penguin_mesh"`
	// SpinSpeed is recorded on each penguin mesh's Spin tag.
	SpinSpeed float32 `json:"spin_speed"`
	// Hat places the hat group relative to the penguin group.
	Hat Transform `json:"hat"`

	// LegMarker is the object-name substring that tags a mesh as a leg.
	LegMarker string       `json:"leg_marker"`
	Attach    AttachPolicy `json:"attach"`
}

// DefaultConfig returns the stock penguin and hat placement.
func DefaultConfig() Config {
	one := ms3.Vec{X: 1, Y: 1, Z: 1}
	return Config{
		PenguinOBJ: "penguin/penguin.obj",
		PenguinMTL: "penguin/penguin.mtl",
		HatOBJ:     "hat/hat.obj",
		HatMTL:     "hat/hat.mtl",
		PenguinGroup: Transform{
			Position: ms3.Vec{Y: 0.4, Z: -20},
			Rotation: ms3.Vec{Y: math32.Pi / 2},
			Scale:    one,
		},
		PenguinMesh: Transform{
			Position: ms3.Vec{Y: 0.4, Z: 4},
			Scale:    ms3.Scale(4, one),
		},
		SpinSpeed: 0.02,
		Hat: Transform{
			Position: ms3.Vec{X: -2, Y: 13.5, Z: 4},
			Scale:    ms3.Scale(1.5, one),
		},
		LegMarker: "leg",
		Attach:    AttachAwaitPrimary,
	}
}

// ModelLoader is the part of the engine loader the bridge needs.
type ModelLoader interface {
	// LoadAsync loads an OBJ file with its MTL library and resolves with a fresh node
	// group. The future must resolve on the frame loop thread.
	LoadAsync(objPath, mtlPath string) *async.Future[*scene.Node]
}

// Bridge wires the two background loads into a scene. All of its continuations run on the
// frame loop thread, since the loader resolves futures there.
type Bridge struct {
	cfg    Config
	loader ModelLoader
	scene  scene.Scene

	ready     *async.Future[*scene.Node]
	hat       *async.Future[*scene.Node]
	onPrimary func(*scene.Node)
	logf      func(format string, args ...any)
	started   bool
}

// NewBridge creates a bridge. Nothing loads until Start.
//
// Parameters:
//   - cfg: model paths, placement and attach policy
//   - l: the model loader
//   - s: the scene the penguin is added to
//   - options: bridge options
//
// Returns:
//   - *Bridge: the bridge
func NewBridge(cfg Config, l ModelLoader, s scene.Scene, options ...BridgeBuilderOption) *Bridge {
	if l == nil {
		panic("assets: loader is required")
	}
	if s == nil {
		panic("assets: scene is required")
	}
	b := &Bridge{
		cfg:    cfg,
		loader: l,
		scene:  s,
		ready:  async.NewFuture[*scene.Node](),
		hat:    async.NewFuture[*scene.Node](),
		logf:   log.Printf,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// Ready resolves with the penguin group once it is placed in the scene. It never resolves
// if the penguin fails to load.
func (b *Bridge) Ready() *async.Future[*scene.Node] { return b.ready }

// Hat resolves with the hat group once it is attached, or with an error if it failed to
// load or was dropped.
func (b *Bridge) Hat() *async.Future[*scene.Node] { return b.hat }

// Start issues both loads. Calling it again does nothing.
func (b *Bridge) Start() {
	if b.started {
		return
	}
	b.started = true
	b.loader.LoadAsync(b.cfg.PenguinOBJ, b.cfg.PenguinMTL).OnResolve(b.placePenguin)
	b.loader.LoadAsync(b.cfg.HatOBJ, b.cfg.HatMTL).OnResolve(b.placeHat)
}

func (b *Bridge) placePenguin(group *scene.Node, err error) {
	if err != nil {
		b.logf("[Assets] penguin %s: %v", b.cfg.PenguinOBJ, err)
		return
	}
	group.Rotation = b.cfg.PenguinGroup.Rotation
	group.Traverse(func(n *scene.Node) {
		if n.Mesh == nil {
			return
		}
		n.Scale = b.cfg.PenguinMesh.Scale
		n.Position = b.cfg.PenguinMesh.Position
		n.CastShadow = true
		n.Spin = scene.Spin{Enabled: true, Speed: b.cfg.SpinSpeed}
	})
	group.Position = b.cfg.PenguinGroup.Position
	group.Scale = b.cfg.PenguinGroup.Scale
	b.scene.Add(group)
	if b.onPrimary != nil {
		b.onPrimary(group)
	}
	b.ready.Resolve(group, nil)
}

func (b *Bridge) placeHat(hat *scene.Node, err error) {
	if err != nil {
		b.logf("[Assets] hat %s: %v", b.cfg.HatOBJ, err)
		b.hat.Resolve(nil, err)
		return
	}
	b.cfg.Hat.Apply(hat)

	switch b.cfg.Attach {
	case AttachIfReady:
		penguin, _, ok := b.ready.TryResult()
		if !ok {
			b.logf("[Assets] hat arrived before the penguin, dropping it")
			b.hat.Resolve(nil, ErrHatDropped)
			return
		}
		b.attach(penguin, hat)
	default:
		b.ready.OnResolve(func(penguin *scene.Node, _ error) {
			b.attach(penguin, hat)
		})
	}
}

func (b *Bridge) attach(penguin, hat *scene.Node) {
	penguin.Add(hat)
	b.hat.Resolve(hat, nil)
}
