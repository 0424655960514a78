package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/common"
)

func TestDirection(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithPosition(ms3.Vec{X: 30, Y: 30, Z: 30}))
	d := l.Direction()
	want := -1 / math32.Sqrt(3)
	if math32.Abs(d.X-want) > 1e-5 || math32.Abs(d.Y-want) > 1e-5 || math32.Abs(d.Z-want) > 1e-5 {
		t.Fatalf("Direction = %v, want all components %v", d, want)
	}

	same := NewLight(LightTypeDirectional, WithPosition(ms3.Vec{}))
	if got := same.Direction(); got != (ms3.Vec{Y: -1}) {
		t.Fatalf("degenerate Direction = %v, want -Y", got)
	}
}

func TestWithShadowKeepsDefaults(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithShadow(ShadowConfig{MapSize: 2048, Bias: -0.001, Far: 50}))
	s := l.Shadow()
	if s.MapSize != 2048 || s.Bias != -0.001 || s.Far != 50 {
		t.Fatalf("explicit fields lost: %+v", s)
	}
	if s.Near != DefaultShadowNear || s.HalfExtent != DefaultShadowHalfExtent {
		t.Fatalf("defaults not kept: %+v", s)
	}
}

func TestDirectionalViewProjMapsTargetToCenter(t *testing.T) {
	l := NewLight(LightTypeDirectional,
		WithPosition(ms3.Vec{X: 30, Y: 30, Z: 30}),
		WithShadow(ShadowConfig{Near: 0.1, Far: 100, HalfExtent: 20}),
	)
	p := DirectionalViewProj(l).TransformPoint(ms3.Vec{})
	if math32.Abs(p.X) > 1e-4 || math32.Abs(p.Y) > 1e-4 {
		t.Fatalf("target projects to %v, want screen center", p)
	}
	if p.Z <= 0 || p.Z >= 1 {
		t.Fatalf("target depth = %v, want inside (0, 1)", p.Z)
	}
}

func TestShadowCaster(t *testing.T) {
	amb := NewLight(LightTypeAmbient, WithCastsShadows(true))
	point := NewLight(LightTypePoint, WithCastsShadows(true))
	dir := NewLight(LightTypeDirectional, WithCastsShadows(true))
	if got := ShadowCaster([]Light{amb, point, dir}); got != dir {
		t.Fatalf("ShadowCaster picked %v", got)
	}
	if got := ShadowCaster([]Light{amb, point}); got != nil {
		t.Fatalf("ShadowCaster = %v, want nil", got)
	}
}

func TestMarshalLightBuffer(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeAmbient, WithHexColor(0xFFFFFF), WithIntensity(0.5)),
		NewLight(LightTypeAmbient, WithColor(common.Color{R: 1}), WithIntensity(0.25)),
		NewLight(LightTypeDirectional, WithCastsShadows(true)),
		NewLight(LightTypePoint, WithDistance(100)),
		NewLight(LightTypePoint, WithEnabled(false)),
	}
	buf := MarshalLightBuffer(lights)
	if len(buf) != LightBufferSize {
		t.Fatalf("len = %d, want %d", len(buf), LightBufferSize)
	}
	f32 := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }

	if r, g := f32(0), f32(4); r != 0.75 || g != 0.5 {
		t.Fatalf("ambient = (%v, %v), want (0.75, 0.5)", r, g)
	}
	if n := binary.LittleEndian.Uint32(buf[12:]); n != 2 {
		t.Fatalf("light count = %d, want 2", n)
	}
	if typ := binary.LittleEndian.Uint32(buf[16+12:]); typ != uint32(LightTypeDirectional) {
		t.Fatalf("slot 0 type = %d", typ)
	}
	if shadow := binary.LittleEndian.Uint32(buf[16+52:]); shadow != 1 {
		t.Fatalf("slot 0 casts shadows = %d", shadow)
	}
	if dist := f32(16 + 64 + 44); dist != 100 {
		t.Fatalf("slot 1 distance = %v, want 100", dist)
	}
}

func TestMarshalLightBufferCapacity(t *testing.T) {
	var lights []Light
	for i := 0; i < MaxGPULights+3; i++ {
		lights = append(lights, NewLight(LightTypePoint))
	}
	buf := MarshalLightBuffer(lights)
	if n := binary.LittleEndian.Uint32(buf[12:]); n != MaxGPULights {
		t.Fatalf("light count = %d, want %d", n, MaxGPULights)
	}
}
