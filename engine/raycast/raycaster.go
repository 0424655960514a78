package raycast

import (
	"sort"

	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/engine/camera"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-waddle/engine/scene"
)

// Intersection describes a ray hit on a mesh node.
type Intersection struct {
	// Node is the mesh node that was hit.
	Node *scene.Node
	// Distance is the world-space distance from the ray origin.
	Distance float32
	// Point is the world-space hit position.
	Point ms3.Vec
	// Face is the index of the hit triangle in the node's geometry.
	Face int
}

// Raycaster casts a world-space ray against scene nodes.
type Raycaster struct {
	ray Ray
}

// NewRaycaster creates a raycaster for the given world-space ray. The direction is
// normalized so reported distances are world units.
func NewRaycaster(origin, direction ms3.Vec) *Raycaster {
	rc := &Raycaster{}
	rc.Set(origin, direction)
	return rc
}

// Ray returns the current world-space ray.
func (rc *Raycaster) Ray() Ray {
	return rc.ray
}

// Set replaces the ray.
func (rc *Raycaster) Set(origin, direction ms3.Vec) {
	if ms3.Norm(direction) > 0 {
		direction = ms3.Unit(direction)
	}
	rc.ray = Ray{Origin: origin, Direction: direction}
}

// SetFromCamera points the ray from the camera through a point in normalized device
// coordinates.
//
// Parameters:
//   - ndcX: horizontal coordinate in [-1, 1]
//   - ndcY: vertical coordinate in [-1, 1], +1 at the top
//   - cam: the camera to cast from
func (rc *Raycaster) SetFromCamera(ndcX, ndcY float32, cam camera.Camera) {
	origin, dir := cam.Ray(ndcX, ndcY)
	rc.Set(origin, dir)
}

// IntersectObject tests a single node and, when recursive, its visible descendants.
// Results are sorted nearest first.
//
// Parameters:
//   - node: the node to test
//   - recursive: whether to descend into children
//
// Returns:
//   - []Intersection: hits sorted by ascending distance
func (rc *Raycaster) IntersectObject(node *scene.Node, recursive bool) []Intersection {
	var hits []Intersection
	rc.collect(node, recursive, &hits)
	sortHits(hits)
	return hits
}

// IntersectObjects tests each node in nodes. Results are sorted nearest first.
//
// Parameters:
//   - nodes: the nodes to test
//   - recursive: whether to descend into children
//
// Returns:
//   - []Intersection: hits sorted by ascending distance
func (rc *Raycaster) IntersectObjects(nodes []*scene.Node, recursive bool) []Intersection {
	var hits []Intersection
	for _, n := range nodes {
		rc.collect(n, recursive, &hits)
	}
	sortHits(hits)
	return hits
}

func (rc *Raycaster) collect(node *scene.Node, recursive bool, hits *[]Intersection) {
	if node == nil || !node.Visible {
		return
	}
	if hit, ok := rc.intersectMesh(node); ok {
		*hits = append(*hits, hit)
	}
	if !recursive {
		return
	}
	for _, c := range node.Children() {
		rc.collect(c, true, hits)
	}
}

// intersectMesh returns the nearest hit on node's own mesh, if any. The test runs in the
// node's local space: the inverse world matrix carries the ray there without
// renormalizing, so the local parameter equals the world distance.
func (rc *Raycaster) intersectMesh(node *scene.Node) (Intersection, bool) {
	if node.Mesh == nil || node.Mesh.Geometry == nil {
		return Intersection{}, false
	}
	world := node.WorldMatrix()
	inv, ok := world.Invert()
	if !ok {
		return Intersection{}, false
	}
	local := rc.ray.Transform(inv)

	geo := node.Mesh.Geometry
	if _, ok := local.IntersectBox(geo.Bounds()); !ok {
		return Intersection{}, false
	}

	cullBack := true
	if m := node.Mesh.Material; m != nil && m.Side() == material.SideDouble {
		cullBack = false
	}

	best := Intersection{Face: -1}
	for i := range geo.TriangleCount() {
		a, b, c := geo.Triangle(i)
		t, ok := local.IntersectTriangle(a, b, c, cullBack)
		if !ok {
			continue
		}
		if best.Face < 0 || t < best.Distance {
			best.Distance = t
			best.Face = i
		}
	}
	if best.Face < 0 {
		return Intersection{}, false
	}
	best.Node = node
	best.Point = rc.ray.At(best.Distance)
	return best, true
}

func sortHits(hits []Intersection) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
}
