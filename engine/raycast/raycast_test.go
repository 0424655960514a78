package raycast

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/engine/camera"
	"github.com/Carmen-Shannon/oxy-waddle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-waddle/engine/scene"
)

func TestIntersectBox(t *testing.T) {
	box := ms3.Box{Min: ms3.Vec{X: -1, Y: -1, Z: -1}, Max: ms3.Vec{X: 1, Y: 1, Z: 1}}
	tests := []struct {
		name   string
		ray    Ray
		wantOK bool
		wantT  float32
	}{
		{"hit", Ray{ms3.Vec{Z: 5}, ms3.Vec{Z: -1}}, true, 4},
		{"miss", Ray{ms3.Vec{X: 3, Z: 5}, ms3.Vec{Z: -1}}, false, 0},
		{"behind", Ray{ms3.Vec{Z: 5}, ms3.Vec{Z: 1}}, false, 0},
		{"inside", Ray{ms3.Vec{}, ms3.Vec{X: 1}}, true, 0},
		{"parallel outside", Ray{ms3.Vec{Y: 2, Z: 5}, ms3.Vec{Z: -1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectBox(box)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math32.Abs(got-tt.wantT) > 1e-5 {
				t.Fatalf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestIntersectTriangleCulling(t *testing.T) {
	// Counter-clockwise seen from +Z.
	a, b, c := ms3.Vec{X: -1, Y: -1}, ms3.Vec{X: 1, Y: -1}, ms3.Vec{Y: 1}
	front := Ray{Origin: ms3.Vec{Z: 3}, Direction: ms3.Vec{Z: -1}}
	back := Ray{Origin: ms3.Vec{Z: -3}, Direction: ms3.Vec{Z: 1}}

	if got, ok := front.IntersectTriangle(a, b, c, true); !ok || math32.Abs(got-3) > 1e-5 {
		t.Fatalf("front hit = (%v, %v), want (3, true)", got, ok)
	}
	if _, ok := back.IntersectTriangle(a, b, c, true); ok {
		t.Fatal("back face should be culled")
	}
	if _, ok := back.IntersectTriangle(a, b, c, false); !ok {
		t.Fatal("back face should hit without culling")
	}
	miss := Ray{Origin: ms3.Vec{X: 2, Z: 3}, Direction: ms3.Vec{Z: -1}}
	if _, ok := miss.IntersectTriangle(a, b, c, false); ok {
		t.Fatal("ray outside triangle should miss")
	}
}

func boxNode(name string, pos ms3.Vec) *scene.Node {
	return scene.NewMeshNode(name, geometry.NewBox(2, 2, 2), material.NewMaterial(),
		scene.WithPosition(pos))
}

func TestIntersectObjectsNearestFirst(t *testing.T) {
	root := scene.NewGroup("root")
	far := boxNode("far", ms3.Vec{Z: -10})
	nearBox := boxNode("near", ms3.Vec{})
	root.Add(far)
	root.Add(nearBox)

	rc := NewRaycaster(ms3.Vec{Z: 10}, ms3.Vec{Z: -1})
	hits := rc.IntersectObject(root, true)
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Node != nearBox || hits[1].Node != far {
		t.Fatalf("hit order = %s, %s; want near, far", hits[0].Node.Name, hits[1].Node.Name)
	}
	if math32.Abs(hits[0].Distance-9) > 1e-4 {
		t.Fatalf("near distance = %v, want 9", hits[0].Distance)
	}
	if math32.Abs(hits[0].Point.Z-1) > 1e-4 {
		t.Fatalf("near point = %+v, want z=1", hits[0].Point)
	}
}

func TestIntersectRespectsTransformAndVisibility(t *testing.T) {
	group := scene.NewGroup("group")
	group.Position = ms3.Vec{X: 5}
	child := boxNode("child", ms3.Vec{})
	child.Scale = ms3.Vec{X: 2, Y: 2, Z: 2}
	group.Add(child)

	rc := NewRaycaster(ms3.Vec{X: 5, Z: 10}, ms3.Vec{Z: -1})
	hits := rc.IntersectObjects([]*scene.Node{group}, true)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	// Scaled box spans z in [-2, 2].
	if math32.Abs(hits[0].Distance-8) > 1e-4 {
		t.Fatalf("distance = %v, want 8 in world units", hits[0].Distance)
	}

	if hits := rc.IntersectObjects([]*scene.Node{group}, false); len(hits) != 0 {
		t.Fatalf("non-recursive test on group got %d hits, want 0", len(hits))
	}

	group.Visible = false
	if hits := rc.IntersectObjects([]*scene.Node{group}, true); len(hits) != 0 {
		t.Fatalf("hidden subtree got %d hits, want 0", len(hits))
	}
}

func TestDoubleSidedPlaneHitFromBehind(t *testing.T) {
	plane := geometry.NewPlane(10, 10, 1, 1)
	single := scene.NewMeshNode("single", plane, material.NewMaterial())
	double := scene.NewMeshNode("double", plane, material.NewMaterial(material.WithSide(material.SideDouble)))

	rc := NewRaycaster(ms3.Vec{Z: -5}, ms3.Vec{Z: 1})
	if hits := rc.IntersectObject(single, false); len(hits) != 0 {
		t.Fatal("front-side plane should not be hit from behind")
	}
	if hits := rc.IntersectObject(double, false); len(hits) != 1 {
		t.Fatal("double-sided plane should be hit from behind")
	}
}

func TestSetFromCamera(t *testing.T) {
	ctrl := camera.NewCameraController(camera.WithStartPosition(ms3.Vec{Z: 10}))
	cam := camera.NewCamera(camera.WithController(ctrl))
	rc := &Raycaster{}
	rc.SetFromCamera(0, 0, cam)

	hits := rc.IntersectObject(boxNode("box", ms3.Vec{}), false)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if math32.Abs(hits[0].Distance-9) > 1e-3 {
		t.Fatalf("distance = %v, want 9", hits[0].Distance)
	}
}
