package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

const eps = 1e-4

func vecNear(a, b ms3.Vec) bool {
	return math32.Abs(a.X-b.X) < eps && math32.Abs(a.Y-b.Y) < eps && math32.Abs(a.Z-b.Z) < eps
}

func TestComposeIdentity(t *testing.T) {
	m := Compose(ms3.Vec{}, ms3.Vec{}, ms3.Vec{X: 1, Y: 1, Z: 1})
	if m != Identity4() {
		t.Fatalf("Compose(0, 0, 1) = %v, want identity", m)
	}
}

func TestComposeTransformsPoint(t *testing.T) {
	tests := []struct {
		name          string
		pos, rot, scl ms3.Vec
		in, want      ms3.Vec
	}{
		{
			name: "translate",
			pos:  ms3.Vec{X: 1, Y: 2, Z: 3}, scl: ms3.Vec{X: 1, Y: 1, Z: 1},
			in: ms3.Vec{}, want: ms3.Vec{X: 1, Y: 2, Z: 3},
		},
		{
			name: "rotate x -90 lays +z onto +y",
			rot:  ms3.Vec{X: -math32.Pi / 2}, scl: ms3.Vec{X: 1, Y: 1, Z: 1},
			in: ms3.Vec{Z: 1}, want: ms3.Vec{Y: 1},
		},
		{
			name: "rotate y 90 maps +x to -z",
			rot:  ms3.Vec{Y: math32.Pi / 2}, scl: ms3.Vec{X: 1, Y: 1, Z: 1},
			in: ms3.Vec{X: 1}, want: ms3.Vec{Z: -1},
		},
		{
			name: "scale then translate",
			pos:  ms3.Vec{X: 0, Y: 0.4, Z: 4}, scl: ms3.Vec{X: 4, Y: 4, Z: 4},
			in: ms3.Vec{X: 1, Y: 1, Z: 1}, want: ms3.Vec{X: 4, Y: 4.4, Z: 8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(tt.pos, tt.rot, tt.scl).TransformPoint(tt.in)
			if !vecNear(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := Compose(ms3.Vec{X: 3, Y: -2, Z: 7}, ms3.Vec{X: 0.3, Y: 1.2, Z: -0.7}, ms3.Vec{X: 2, Y: 0.5, Z: 1.5})
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert reported a singular matrix")
	}
	p := ms3.Vec{X: 1.5, Y: -4, Z: 0.25}
	if got := inv.TransformPoint(m.TransformPoint(p)); !vecNear(got, p) {
		t.Fatalf("inv(m(p)) = %v, want %v", got, p)
	}
}

func TestInvertSingular(t *testing.T) {
	var zero Mat4
	if _, ok := zero.Invert(); ok {
		t.Fatal("Invert of the zero matrix should fail")
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := ms3.Vec{X: 0, Y: 20, Z: 40}
	view := LookAt(eye, ms3.Vec{}, ms3.Vec{Y: 1})
	if got := view.TransformPoint(eye); !vecNear(got, ms3.Vec{}) {
		t.Fatalf("eye in view space = %v, want origin", got)
	}
	// The target sits straight ahead on -Z.
	got := view.TransformPoint(ms3.Vec{})
	if math32.Abs(got.X) > eps || math32.Abs(got.Y) > eps || got.Z >= 0 {
		t.Fatalf("target in view space = %v, want on -Z axis", got)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := Perspective(math32.Pi/2, 1, 0.1, 100)
	if got := p.TransformPoint(ms3.Vec{Z: -0.1}).Z; math32.Abs(got) > eps {
		t.Errorf("near plane depth = %v, want 0", got)
	}
	if got := p.TransformPoint(ms3.Vec{Z: -100}).Z; math32.Abs(got-1) > eps {
		t.Errorf("far plane depth = %v, want 1", got)
	}
}

func TestOrthographicDepthRange(t *testing.T) {
	o := Orthographic(-10, 10, -10, 10, 0.1, 50)
	if got := o.TransformPoint(ms3.Vec{X: 10, Y: -10, Z: -0.1}); !vecNear(got, ms3.Vec{X: 1, Y: -1, Z: 0}) {
		t.Errorf("near corner = %v", got)
	}
	if got := o.TransformPoint(ms3.Vec{Z: -50}).Z; math32.Abs(got-1) > eps {
		t.Errorf("far depth = %v, want 1", got)
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	m := Compose(ms3.Vec{X: 5}, ms3.Vec{}, ms3.Vec{X: 2, Y: 1, Z: 1})
	n := m.NormalMatrix().TransformDir(ms3.Vec{X: 1, Y: 1})
	// Normal of the plane x + y = c stretched along X tilts toward Y.
	if !(n.Y > n.X) {
		t.Fatalf("normal = %v, want Y component dominating", n)
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	for _, hex := range []uint32{0xD0C9B9, 0xDAFCD7, 0xFFFFFF, 0x000000} {
		if got := ColorFromHex(hex).Hex(); got != hex {
			t.Errorf("ColorFromHex(%#06x).Hex() = %#06x", hex, got)
		}
	}
}

func TestClampAndCoalesce(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5, 0, 3) = %d", got)
	}
	if got := Clamp(float32(-1), 0, 1); got != 0 {
		t.Errorf("Clamp(-1, 0, 1) = %v", got)
	}
	if got := Coalesce("", "", "b", "c"); got != "b" {
		t.Errorf("Coalesce = %q, want b", got)
	}
}
