package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// Mat4 is a 4x4 matrix stored in column-major order (WebGPU convention).
// Element (row r, column c) lives at index c*4+r.
type Mat4 [16]float32

// Identity4 returns the 4x4 identity matrix.
//
// Returns:
//   - Mat4: the identity matrix
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice.
// The returned slice aliases the struct's memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(unsafe.Sizeof(*v)))
}

// Mul returns a * b.
//
// Parameters:
//   - b: right-hand matrix
//
// Returns:
//   - Mat4: the product a * b
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+r] * b[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[r*4+c] = m[c*4+r]
		}
	}
	return out
}

// TransformPoint multiplies the point (v, 1) by m and applies the perspective divide
// when the resulting w is neither 0 nor 1.
//
// Parameters:
//   - v: the point to transform
//
// Returns:
//   - ms3.Vec: the transformed point
func (m Mat4) TransformPoint(v ms3.Vec) ms3.Vec {
	x := m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y := m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	z := m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w != 0 && w != 1 {
		inv := 1 / w
		return ms3.Vec{X: x * inv, Y: y * inv, Z: z * inv}
	}
	return ms3.Vec{X: x, Y: y, Z: z}
}

// TransformDir multiplies the direction (v, 0) by m. Translation is ignored and the
// result is not normalized.
//
// Parameters:
//   - v: the direction to transform
//
// Returns:
//   - ms3.Vec: the transformed direction
func (m Mat4) TransformDir(v ms3.Vec) ms3.Vec {
	return ms3.Vec{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// Translation returns the translation column of m.
func (m Mat4) Translation() ms3.Vec {
	return ms3.Vec{X: m[12], Y: m[13], Z: m[14]}
}

// Perspective creates a perspective projection matrix mapping view-space depth
// into the WebGPU clip range [0, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	var out Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1
	out[14] = (near * far) / (near - far)
	return out
}

// Orthographic creates an orthographic projection matrix mapping view-space depth
// into the WebGPU clip range [0, 1]. Used for directional light shadow maps.
//
// Parameters:
//   - left, right, bottom, top: view volume extents
//   - near, far: clipping plane distances
//
// Returns:
//   - Mat4: the projection matrix
func Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	var out Mat4
	out[0] = 2 / (right - left)
	out[5] = 2 / (top - bottom)
	out[10] = 1 / (near - far)
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
	out[14] = near / (near - far)
	out[15] = 1
	return out
}

// Compose builds a model matrix T * R * S from a translation, XYZ Euler rotation
// (radians) and scale. R = Rx * Ry * Rz, so Z is applied first.
//
// Parameters:
//   - pos: translation
//   - rot: Euler angles in radians around X, Y and Z
//   - scale: per-axis scale factors
//
// Returns:
//   - Mat4: the model matrix
func Compose(pos, rot, scale ms3.Vec) Mat4 {
	a, b := math32.Cos(rot.X), math32.Sin(rot.X)
	c, d := math32.Cos(rot.Y), math32.Sin(rot.Y)
	e, f := math32.Cos(rot.Z), math32.Sin(rot.Z)
	ae, af, be, bf := a*e, a*f, b*e, b*f

	var out Mat4
	out[0] = c * e * scale.X
	out[1] = (af + be*d) * scale.X
	out[2] = (bf - ae*d) * scale.X

	out[4] = -c * f * scale.Y
	out[5] = (ae - bf*d) * scale.Y
	out[6] = (be + af*d) * scale.Y

	out[8] = d * scale.Z
	out[9] = -b * c * scale.Z
	out[10] = a * c * scale.Z

	out[12] = pos.X
	out[13] = pos.Y
	out[14] = pos.Z
	out[15] = 1
	return out
}

// Invert computes the inverse of m using the Laplace expansion (cofactor) method.
// If m is singular the identity is returned together with false.
//
// Returns:
//   - Mat4: the inverse matrix
//   - bool: true if the matrix was invertible
func (m Mat4) Invert() (Mat4, bool) {
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Identity4(), false
	}
	inv := 1 / det

	return Mat4{
		(m[5]*c5 - m[6]*c4 + m[7]*c3) * inv,
		(-m[1]*c5 + m[2]*c4 - m[3]*c3) * inv,
		(m[13]*s5 - m[14]*s4 + m[15]*s3) * inv,
		(-m[9]*s5 + m[10]*s4 - m[11]*s3) * inv,

		(-m[4]*c5 + m[6]*c2 - m[7]*c1) * inv,
		(m[0]*c5 - m[2]*c2 + m[3]*c1) * inv,
		(-m[12]*s5 + m[14]*s2 - m[15]*s1) * inv,
		(m[8]*s5 - m[10]*s2 + m[11]*s1) * inv,

		(m[4]*c4 - m[5]*c2 + m[7]*c0) * inv,
		(-m[0]*c4 + m[1]*c2 - m[3]*c0) * inv,
		(m[12]*s4 - m[13]*s2 + m[15]*s0) * inv,
		(-m[8]*s4 + m[9]*s2 - m[11]*s0) * inv,

		(-m[4]*c3 + m[5]*c1 - m[6]*c0) * inv,
		(m[0]*c3 - m[1]*c1 + m[2]*c0) * inv,
		(-m[12]*s3 + m[13]*s1 - m[14]*s0) * inv,
		(m[8]*s3 - m[9]*s1 + m[10]*s0) * inv,
	}, true
}

// NormalMatrix returns the inverse-transpose of m with the translation cleared,
// suitable for transforming surface normals in a shader.
func (m Mat4) NormalMatrix() Mat4 {
	inv, ok := m.Invert()
	if !ok {
		return Identity4()
	}
	n := inv.Transpose()
	n[3], n[7], n[11] = 0, 0, 0
	n[12], n[13], n[14], n[15] = 0, 0, 0, 1
	return n
}

// LookAt creates a view matrix that transforms world coordinates into the space of a
// camera at eye looking toward center.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - Mat4: the view matrix
func LookAt(eye, center, up ms3.Vec) Mat4 {
	z := ms3.Sub(eye, center)
	if ms3.Norm(z) == 0 {
		z = ms3.Vec{Z: 1}
	}
	z = ms3.Unit(z)

	x := ms3.Cross(up, z)
	if ms3.Norm(x) == 0 {
		// up is parallel to the view direction; nudge it.
		x = ms3.Cross(ms3.Vec{X: 1, Y: 0, Z: 0.0001}, z)
	}
	x = ms3.Unit(x)
	y := ms3.Cross(z, x)

	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		-ms3.Dot(x, eye), -ms3.Dot(y, eye), -ms3.Dot(z, eye), 1,
	}
}
