package raycast

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/common"
)

// triangleEpsilon is the determinant threshold below which a ray is treated as parallel
// to a triangle's plane.
const triangleEpsilon = 1e-7

// Ray is a half-line from Origin along Direction. Direction is not required to be unit
// length; parametric distances are in units of |Direction|.
type Ray struct {
	Origin    ms3.Vec
	Direction ms3.Vec
}

// At returns the point Origin + t*Direction.
func (r Ray) At(t float32) ms3.Vec {
	return ms3.Add(r.Origin, ms3.Scale(t, r.Direction))
}

// Transform returns the ray mapped through m. The direction is transformed without
// renormalization so parameters along the result match parameters along r.
//
// Parameters:
//   - m: the transform to apply
//
// Returns:
//   - Ray: the transformed ray
func (r Ray) Transform(m common.Mat4) Ray {
	return Ray{
		Origin:    m.TransformPoint(r.Origin),
		Direction: m.TransformDir(r.Direction),
	}
}

// IntersectBox tests r against an axis-aligned box using the slab method.
//
// Parameters:
//   - box: the box to test
//
// Returns:
//   - float32: the entry parameter (0 if the origin is inside the box)
//   - bool: true if the ray hits the box at t >= 0
func (r Ray) IntersectBox(box ms3.Box) (float32, bool) {
	tmin := float32(0)
	tmax := math32.Inf(1)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for i := range 3 {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t0 := (lo[i] - origin[i]) * inv
		t1 := (hi[i] - origin[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = max(tmin, t0)
		tmax = min(tmax, t1)
		if tmax < tmin {
			return 0, false
		}
	}
	return tmin, true
}

// IntersectTriangle tests r against triangle (a, b, c) with the Möller-Trumbore algorithm.
// Counter-clockwise winding is the front face.
//
// Parameters:
//   - a, b, c: triangle vertices
//   - cullBack: when true, hits on the back face are rejected
//
// Returns:
//   - float32: the ray parameter of the hit
//   - bool: true if the ray hits the triangle at t > 0
func (r Ray) IntersectTriangle(a, b, c ms3.Vec, cullBack bool) (float32, bool) {
	e1 := ms3.Sub(b, a)
	e2 := ms3.Sub(c, a)
	p := ms3.Cross(r.Direction, e2)
	det := ms3.Dot(e1, p)

	if cullBack {
		if det < triangleEpsilon {
			return 0, false
		}
	} else if math32.Abs(det) < triangleEpsilon {
		return 0, false
	}

	inv := 1 / det
	s := ms3.Sub(r.Origin, a)
	u := ms3.Dot(s, p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := ms3.Cross(s, e1)
	v := ms3.Dot(r.Direction, q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := ms3.Dot(e2, q) * inv
	if t <= 0 {
		return 0, false
	}
	return t, true
}
