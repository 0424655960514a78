package geometry

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

func TestPrimitiveCounts(t *testing.T) {
	tests := []struct {
		name      string
		geo       *Geometry
		vertices  int
		triangles int
	}{
		{"box", NewBox(3, 3, 3), 24, 12},
		{"sphere 32x32", NewSphere(2, 32, 32), 33 * 33, 2*32*32 - 2*32},
		{"cylinder 32", NewCylinder(2, 2, 5, 32), 2*33 + 2*(32+33), 32*2 + 2*32},
		{"plane", NewPlane(200, 200, 1, 1), 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.geo.Vertices()); got != tt.vertices {
				t.Errorf("vertices = %d, want %d", got, tt.vertices)
			}
			if got := tt.geo.TriangleCount(); got != tt.triangles {
				t.Errorf("triangles = %d, want %d", got, tt.triangles)
			}
			for i, idx := range tt.geo.Indices() {
				if int(idx) >= len(tt.geo.Vertices()) {
					t.Fatalf("index %d out of range: %d", i, idx)
				}
			}
		})
	}
}

func TestPrimitiveBounds(t *testing.T) {
	tests := []struct {
		name string
		geo  *Geometry
		want ms3.Box
	}{
		{"box", NewBox(3, 3, 3), ms3.Box{Min: ms3.Vec{X: -1.5, Y: -1.5, Z: -1.5}, Max: ms3.Vec{X: 1.5, Y: 1.5, Z: 1.5}}},
		{"sphere", NewSphere(2, 32, 32), ms3.Box{Min: ms3.Vec{X: -2, Y: -2, Z: -2}, Max: ms3.Vec{X: 2, Y: 2, Z: 2}}},
		{"cylinder", NewCylinder(2, 2, 5, 32), ms3.Box{Min: ms3.Vec{X: -2, Y: -2.5, Z: -2}, Max: ms3.Vec{X: 2, Y: 2.5, Z: 2}}},
		{"plane", NewPlane(200, 200, 1, 1), ms3.Box{Min: ms3.Vec{X: -100, Y: -100}, Max: ms3.Vec{X: 100, Y: 100}}},
	}
	const tol = 1e-3
	near := func(a, b ms3.Vec) bool {
		return math32.Abs(a.X-b.X) < tol && math32.Abs(a.Y-b.Y) < tol && math32.Abs(a.Z-b.Z) < tol
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.geo.Bounds()
			if !near(got.Min, tt.want.Min) || !near(got.Max, tt.want.Max) {
				t.Fatalf("bounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Every triangle of a closed convex primitive centered on the origin must face away from it.
func TestPrimitiveWindingOutward(t *testing.T) {
	for name, geo := range map[string]*Geometry{
		"box":      NewBox(3, 3, 3),
		"sphere":   NewSphere(2, 16, 12),
		"cylinder": NewCylinder(2, 2, 5, 16),
	} {
		for i := 0; i < geo.TriangleCount(); i++ {
			a, b, c := geo.Triangle(i)
			centroid := ms3.Scale(1.0/3, ms3.Add(a, ms3.Add(b, c)))
			if ms3.Dot(FaceNormal(a, b, c), centroid) <= 0 {
				t.Fatalf("%s triangle %d winds inward", name, i)
			}
		}
	}
}

func TestPlaneFacesPositiveZ(t *testing.T) {
	geo := NewPlane(2, 2, 3, 3)
	for i := 0; i < geo.TriangleCount(); i++ {
		if n := FaceNormal(geo.Triangle(i)); n.Z < 0.99 {
			t.Fatalf("triangle %d normal = %v, want +Z", i, n)
		}
	}
}

func TestGeometryIDsUnique(t *testing.T) {
	a, b := NewBox(1, 1, 1), NewBox(1, 1, 1)
	if a.ID() == b.ID() {
		t.Fatalf("distinct geometries share id %d", a.ID())
	}
}
