package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/camera"
	"github.com/Carmen-Shannon/oxy-waddle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-waddle/engine/light"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/shader"
)

func floatAt(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestGPUTypeSizes(t *testing.T) {
	var scene GPUSceneParams
	var obj GPUObjectUniform
	if scene.Size() != 112 {
		t.Errorf("GPUSceneParams size = %d, want 112", scene.Size())
	}
	if obj.Size() != 208 {
		t.Errorf("GPUObjectUniform size = %d, want 208", obj.Size())
	}

	lit := newLitShader()
	for name, want := range map[string]uint64{"SceneParams": 112, "ObjectUniform": 208} {
		got, ok := lit.StructSize(name)
		if !ok || got != want {
			t.Errorf("WGSL %s size = %d (found %v), want %d", name, got, ok, want)
		}
	}
}

func TestShaderGroups(t *testing.T) {
	lit := newLitShader()
	if n := len(lit.BindGroupLayoutDescriptor(groupFrame).Entries); n != 5 {
		t.Errorf("lit frame group has %d entries, want 5", n)
	}
	if n := len(lit.BindGroupLayoutDescriptor(groupMaterial).Entries); n != 2 {
		t.Errorf("lit material group has %d entries, want 2", n)
	}

	shadow := newShadowShader()
	if shadow.EntryPoint(shader.ShaderTypeFragment) != "" {
		t.Errorf("shadow module has a fragment entry")
	}
	// The object group is shared between the lit and shadow pipelines, so the layouts must match.
	if layoutKey(lit.BindGroupLayoutDescriptor(groupObject)) != layoutKey(shadow.BindGroupLayoutDescriptor(groupObject)) {
		t.Errorf("object group layouts differ between lit and shadow modules")
	}

	sky := newSkyboxShader()
	entries := sky.BindGroupLayoutDescriptor(groupSky).Entries
	if len(entries) != 2 || entries[0].Texture.ViewDimension != wgpu.TextureViewDimensionCube {
		t.Errorf("sky group = %+v, want cube texture and sampler", entries)
	}
}

func testCamera() camera.Camera {
	return camera.NewCamera(camera.WithPosition(ms3.Vec{Z: 10}), camera.WithAspect(1))
}

func TestPackFrame(t *testing.T) {
	sun := light.NewLight(light.LightTypeDirectional,
		light.WithPosition(ms3.Vec{X: 10, Y: 20, Z: 10}),
		light.WithCastsShadows(true),
		light.WithShadow(light.ShadowConfig{MapSize: 1024, Bias: -0.002}),
	)

	tests := []struct {
		name        string
		frame       FrameData
		wantFog     float32
		wantShadow  bool
		wantSize    uint32
		wantTexel   float32
		wantClearR  float32
		wantFogNear float32
	}{
		{
			name:       "bare",
			frame:      FrameData{Background: common.Color{R: 0.5}},
			wantSize:   light.ShadowMapResolution,
			wantClearR: 0.5,
		},
		{
			name:        "fog",
			frame:       FrameData{Fog: &Fog{Color: common.Color{R: 1}, Near: 10, Far: 50}},
			wantFog:     1,
			wantSize:    light.ShadowMapResolution,
			wantFogNear: 10,
		},
		{
			name:     "inverted fog range is ignored",
			frame:    FrameData{Fog: &Fog{Near: 50, Far: 10}},
			wantSize: light.ShadowMapResolution,
		},
		{
			name:       "shadow caster",
			frame:      FrameData{Lights: []light.Light{sun}},
			wantShadow: true,
			wantSize:   1024,
			wantTexel:  1.0 / 1024,
		},
		{
			name:     "disabled caster",
			frame:    FrameData{Lights: []light.Light{light.NewLight(light.LightTypeDirectional, light.WithCastsShadows(true), light.WithEnabled(false))}},
			wantSize: light.ShadowMapResolution,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.frame
			f.Camera = testCamera()
			p := packFrame(&f)
			if p.scene.FogEnabled != tt.wantFog {
				t.Errorf("FogEnabled = %v, want %v", p.scene.FogEnabled, tt.wantFog)
			}
			if p.scene.FogNear != tt.wantFogNear {
				t.Errorf("FogNear = %v, want %v", p.scene.FogNear, tt.wantFogNear)
			}
			if p.shadowEnabled != tt.wantShadow {
				t.Errorf("shadowEnabled = %v, want %v", p.shadowEnabled, tt.wantShadow)
			}
			if p.shadowSize != tt.wantSize {
				t.Errorf("shadowSize = %d, want %d", p.shadowSize, tt.wantSize)
			}
			if p.scene.ShadowTexel != tt.wantTexel {
				t.Errorf("ShadowTexel = %v, want %v", p.scene.ShadowTexel, tt.wantTexel)
			}
			if p.clear.R != tt.wantClearR {
				t.Errorf("clear.R = %v, want %v", p.clear.R, tt.wantClearR)
			}
			if len(p.lights) != light.LightBufferSize {
				t.Errorf("light bytes = %d, want %d", len(p.lights), light.LightBufferSize)
			}
		})
	}
}

func TestPackFrameShadowBias(t *testing.T) {
	sun := light.NewLight(light.LightTypeDirectional,
		light.WithPosition(ms3.Vec{Y: 20}),
		light.WithCastsShadows(true),
		light.WithShadow(light.ShadowConfig{Bias: -0.002}),
	)
	f := FrameData{Camera: testCamera(), Lights: []light.Light{sun}}
	p := packFrame(&f)
	buf := p.scene.Marshal()
	if got := floatAt(buf, 88); got != -0.002 {
		t.Errorf("marshalled bias = %v, want -0.002", got)
	}
	if got := floatAt(buf, 92); got != 1 {
		t.Errorf("marshalled shadow flag = %v, want 1", got)
	}
	if p.scene.LightViewProj == [16]float32{} {
		t.Errorf("light view-projection not set")
	}
}

func TestPackObject(t *testing.T) {
	mat := material.NewMaterial(material.WithColor(common.Color{R: 1, G: 0.5}), material.WithOpacity(0.25))
	world := common.Compose(ms3.Vec{X: 3}, ms3.Vec{}, ms3.Vec{X: 2, Y: 2, Z: 2})
	d := DrawItem{Key: 7, Material: mat, World: world, ReceiveShadow: true}

	u := packObject(d, true)
	if u.ReceiveShadow != 1 {
		t.Errorf("ReceiveShadow = %v, want 1", u.ReceiveShadow)
	}
	if unlit := packObject(d, false); unlit.ReceiveShadow != 0 {
		t.Errorf("ReceiveShadow set without a shadow pass")
	}

	buf := u.Marshal()
	if got := floatAt(buf, 12*4); got != 3 {
		t.Errorf("model translation x = %v, want 3", got)
	}
	if got := floatAt(buf, 128); got != 1 {
		t.Errorf("material red = %v, want 1", got)
	}
	if got := floatAt(buf, 128+12); got != 0.25 {
		t.Errorf("material opacity = %v, want 0.25", got)
	}
	if got := floatAt(buf, 192); got != 1 {
		t.Errorf("receive shadow = %v, want 1", got)
	}
}

func TestOrderDraws(t *testing.T) {
	box := geometry.NewBox(1, 1, 1)
	empty := geometry.New("empty", nil, nil)
	opaque := material.NewMaterial()
	glass := material.NewMaterial(material.WithOpacity(0.5))
	at := func(z float32) common.Mat4 {
		return common.Compose(ms3.Vec{Z: z}, ms3.Vec{}, ms3.Vec{X: 1, Y: 1, Z: 1})
	}

	draws := []DrawItem{
		{Key: 1, Geometry: box, Material: glass, World: at(5)},
		{Key: 2, Geometry: box, Material: opaque, World: at(0)},
		{Key: 3, Geometry: box, Material: glass, World: at(-20)},
		{Key: 4, Geometry: empty, Material: opaque},
		{Key: 5, Geometry: nil, Material: opaque},
		{Key: 6, Geometry: box, Material: nil},
		{Key: 7, Geometry: box, Material: opaque, World: at(-50)},
	}
	got := orderDraws(draws, ms3.Vec{Z: 10})
	want := []uint64{2, 7, 3, 1}
	if len(got) != len(want) {
		t.Fatalf("got %d draws, want %d", len(got), len(want))
	}
	for i, d := range got {
		if d.Key != want[i] {
			t.Errorf("draw %d key = %d, want %d", i, d.Key, want[i])
		}
	}
}

func TestStaging(t *testing.T) {
	tex := &material.Texture{Width: 2, Height: 1, Pixels: make([]byte, 8), WrapS: material.WrapRepeat, MagFilter: material.FilterNearest, SRGB: true}
	s := textureStaging(tex)
	if s.Format != wgpu.TextureFormatRGBA8UnormSrgb || s.Layers != 1 || s.Width != 2 {
		t.Errorf("texture staging = %+v", s)
	}
	samp := samplerStaging(tex)
	if samp.AddressModeU != wgpu.AddressModeRepeat || samp.AddressModeV != wgpu.AddressModeClampToEdge {
		t.Errorf("address modes = %v/%v, want repeat/clamp", samp.AddressModeU, samp.AddressModeV)
	}
	if samp.MagFilter != wgpu.FilterModeNearest || samp.MinFilter != wgpu.FilterModeLinear {
		t.Errorf("filters = %v/%v, want nearest/linear", samp.MagFilter, samp.MinFilter)
	}

	cube := &material.CubeTexture{Size: 2}
	for i := range cube.Faces {
		cube.Faces[i] = make([]byte, 16)
		cube.Faces[i][0] = byte(i)
	}
	cs := cubeStaging(cube)
	if cs.Layers != 6 || len(cs.Pixels) != 96 {
		t.Fatalf("cube staging layers=%d bytes=%d, want 6 and 96", cs.Layers, len(cs.Pixels))
	}
	if cs.Pixels[16*5] != 5 {
		t.Errorf("face 5 not at its layer offset")
	}
	if cs.Format != wgpu.TextureFormatRGBA8Unorm {
		t.Errorf("linear cube uploaded as %v", cs.Format)
	}

	w := whiteStaging()
	if len(w.Pixels) != 4 || w.Pixels[3] != 255 {
		t.Errorf("white staging = %+v", w)
	}
}

func TestParseMSAA(t *testing.T) {
	tests := []struct {
		in   int
		want MSAASampleCount
		ok   bool
	}{
		{0, MSAAOff, true},
		{1, MSAAOff, true},
		{4, MSAA4x, true},
		{16, MSAA16x, true},
		{2, MSAAOff, false},
	}
	for _, tt := range tests {
		got, ok := ParseMSAA(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMSAA(%d) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRenderWithoutCamera(t *testing.T) {
	r := newRenderer(BackendTypeWGPU)
	if err := r.Render(&FrameData{}); err != ErrNoCamera {
		t.Errorf("err = %v, want ErrNoCamera", err)
	}
	if err := r.Render(nil); err != ErrNoCamera {
		t.Errorf("nil frame err = %v, want ErrNoCamera", err)
	}
}
