// Package pick recolors whatever the user clicks on.
package pick

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/raycast"
	"github.com/Carmen-Shannon/oxy-waddle/engine/scene"
)

// ToNDC converts viewport pixel coordinates to normalized device coordinates, with +Y up.
//
// Parameters:
//   - x, y: pointer position in pixels from the top-left corner
//   - w, h: viewport size in pixels
//
// Returns:
//   - float32, float32: the NDC coordinates in [-1, 1], or the centre (0, 0) for an empty viewport
func ToNDC(x, y, w, h int32) (float32, float32) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return float32(x)/float32(w)*2 - 1, -float32(y)/float32(h)*2 + 1
}

// Handler casts a camera ray on click and gives the nearest hit mesh a random color.
// It runs on the frame loop thread.
type Handler struct {
	scene scene.Scene
	rng   *rand.Rand
	rc    raycast.Raycaster
}

// NewHandler creates a pick handler for s.
//
// Parameters:
//   - s: the scene to pick against; its camera is read on every click
//   - rng: the color source; nil uses an unseeded source
//
// Returns:
//   - *Handler: the handler
func NewHandler(s scene.Scene, rng *rand.Rand) *Handler {
	if s == nil {
		panic("pick: scene is required")
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Handler{scene: s, rng: rng}
}

// Click picks at a viewport position. Nothing changes when the ray misses or the
// viewport is empty.
//
// Parameters:
//   - x, y: pointer position in pixels
//   - w, h: viewport size in pixels
//
// Returns:
//   - *scene.Node: the recolored node, or nil
//   - bool: whether anything was hit
func (p *Handler) Click(x, y, w, h int32) (*scene.Node, bool) {
	hit, ok := p.Pick(x, y, w, h)
	if !ok {
		return nil, false
	}
	hit.Node.Mesh.Material.SetColor(p.randomColor())
	return hit.Node, true
}

// Pick returns the nearest hit without changing anything.
func (p *Handler) Pick(x, y, w, h int32) (raycast.Intersection, bool) {
	cam := p.scene.Camera()
	if w <= 0 || h <= 0 || cam == nil {
		return raycast.Intersection{}, false
	}
	nx, ny := ToNDC(x, y, w, h)
	p.rc.SetFromCamera(nx, ny, cam)
	for _, hit := range p.rc.IntersectObject(p.scene.Root(), true) {
		if hit.Node.Mesh != nil && hit.Node.Mesh.Material != nil {
			return hit, true
		}
	}
	return raycast.Intersection{}, false
}

func (p *Handler) randomColor() common.Color {
	return common.Color{R: p.rng.Float32(), G: p.rng.Float32(), B: p.rng.Float32()}
}
