package scene

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/camera"
	"github.com/Carmen-Shannon/oxy-waddle/engine/light"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
)

// ErrNoRenderer is returned by Render when the scene has no renderer attached.
var ErrNoRenderer = errors.New("scene: no renderer attached")

// Scene owns a node graph, its lights and its environment (background, fog, skybox) and
// turns them into renderer.FrameData once per frame.
//
// Scene-level settings are guarded by a mutex. The node graph is not: it is mutated from
// the main thread only, the same thread that calls Render.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Renderer returns the scene's renderer, or nil if none is attached.
	Renderer() renderer.Renderer

	// SetRenderer replaces the scene's renderer.
	//
	// Parameters:
	//   - r: the new renderer
	SetRenderer(r renderer.Renderer)

	// Root returns the root node of the scene graph.
	Root() *Node

	// Add attaches nodes directly under the root.
	//
	// Parameters:
	//   - nodes: the nodes to attach
	Add(nodes ...*Node)

	// Remove detaches n from the root.
	//
	// Parameters:
	//   - n: the node to detach
	//
	// Returns:
	//   - bool: true if n was a direct child of the root
	Remove(n *Node) bool

	// AddLight adds a light source to the scene.
	//
	// Parameters:
	//   - l: the Light to add
	AddLight(l light.Light)

	// RemoveLight removes a light source from the scene by reference.
	//
	// Parameters:
	//   - l: the Light to remove
	RemoveLight(l light.Light)

	// Lights returns a copy of the scene's light list.
	//
	// Returns:
	//   - []light.Light: the scene's lights in insertion order
	Lights() []light.Light

	// Background returns the clear color used when no skybox is set.
	Background() common.Color

	// SetBackground sets the clear color used when no skybox is set.
	SetBackground(c common.Color)

	// Fog returns the scene fog, or nil when fog is disabled.
	Fog() *renderer.Fog

	// SetFog sets the scene fog. Nil disables it.
	SetFog(f *renderer.Fog)

	// Skybox returns the environment cube texture, or nil.
	Skybox() *material.CubeTexture

	// SetSkybox sets the environment cube texture. Nil falls back to the background color.
	SetSkybox(c *material.CubeTexture)

	// Frame snapshots the scene into the data the renderer draws.
	//
	// Returns:
	//   - *renderer.FrameData: the frame
	Frame() *renderer.FrameData

	// Render draws one frame through the attached renderer. Inactive scenes draw nothing.
	//
	// Returns:
	//   - error: ErrNoRenderer, or the renderer's error
	Render() error
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam camera.Camera
	r   renderer.Renderer

	root   *Node
	lights []light.Light

	background common.Color
	fog        *renderer.Fog
	skybox     *material.CubeTexture
}

var _ Scene = &scene{}

// NewScene creates a new active scene with an empty root.
//
// Panics if cam is nil.
//
// Parameters:
//   - name: the scene identifier
//   - cam: the camera the scene is viewed through
//   - options: functional options applied after defaults
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:     &sync.RWMutex{},
		name:   name,
		active: true,
		cam:    cam,
		root:   NewGroup(name),
	}

	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) Root() *Node {
	return s.root
}

func (s *scene) Add(nodes ...*Node) {
	for _, n := range nodes {
		s.root.Add(n)
	}
}

func (s *scene) Remove(n *Node) bool {
	return s.root.Remove(n)
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) Background() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *scene) Fog() *renderer.Fog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fog
}

func (s *scene) SetFog(f *renderer.Fog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fog = f
}

func (s *scene) Skybox() *material.CubeTexture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skybox
}

func (s *scene) SetSkybox(c *material.CubeTexture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skybox = c
}

// collectDraws walks the visible subtree under root and returns one draw item per mesh
// node, with world matrices accumulated down the hierarchy.
//
// Parameters:
//   - root: the subtree to walk
//
// Returns:
//   - []renderer.DrawItem: the draw list in depth-first order
func collectDraws(root *Node) []renderer.DrawItem {
	var draws []renderer.DrawItem
	var walk func(n *Node, parent common.Mat4)
	walk = func(n *Node, parent common.Mat4) {
		if !n.Visible {
			return
		}
		world := parent.Mul(n.LocalMatrix())
		if n.Mesh != nil && n.Mesh.Geometry != nil && n.Mesh.Material != nil {
			draws = append(draws, renderer.DrawItem{
				Key:           n.ID(),
				Geometry:      n.Mesh.Geometry,
				Material:      n.Mesh.Material,
				World:         world,
				CastShadow:    n.CastShadow,
				ReceiveShadow: n.ReceiveShadow,
			})
		}
		for _, c := range n.children {
			walk(c, world)
		}
	}
	walk(root, common.Identity4())
	return draws
}

func (s *scene) Frame() *renderer.FrameData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lights := make([]light.Light, len(s.lights))
	copy(lights, s.lights)
	return &renderer.FrameData{
		Camera:     s.cam,
		Lights:     lights,
		Fog:        s.fog,
		Background: s.background,
		Skybox:     s.skybox,
		Draws:      collectDraws(s.root),
	}
}

func (s *scene) Render() error {
	if !s.Active() {
		return nil
	}
	r := s.Renderer()
	if r == nil {
		return ErrNoRenderer
	}
	return r.Render(s.Frame())
}
