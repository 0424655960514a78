package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-waddle/engine/camera"
	"github.com/Carmen-Shannon/oxy-waddle/engine/light"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
)

const testModule = `
//@oxy:include camera
//@oxy:include light
//@oxy:include material
//@oxy:include vertex

/* block comment with @group(7) @binding(0) var<uniform> ignored: f32; */
@group(0) @binding(0) var<uniform> camera: CameraUniform;
@group(0) @binding(1) var<uniform> lights: LightBlock;
@group(0) @binding(3) var shadow_map: texture_depth_2d;
@group(0) @binding(4) var shadow_sampler: sampler_comparison;
@group(1) @binding(0) var<uniform> params: MaterialParams;
@group(2) @binding(0) var sky: texture_cube<f32>;
@group(2) @binding(1) var sky_sampler: sampler;

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = camera.view_proj * vec4<f32>(in.position, 1.0);
    out.uv = in.uv;
    return out;
}

// @fragment fn commented_out() {}
@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return params.color;
}
`

func mustTestShader(t *testing.T) Shader {
	t.Helper()
	s, err := NewShader("test", testModule)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	return s
}

func TestEntryPoints(t *testing.T) {
	s := mustTestShader(t)
	if got := s.EntryPoint(ShaderTypeVertex); got != "vs_main" {
		t.Errorf("vertex entry = %q, want vs_main", got)
	}
	if got := s.EntryPoint(ShaderTypeFragment); got != "fs_main" {
		t.Errorf("fragment entry = %q, want fs_main", got)
	}
}

func TestReflectedSizesMatchGoTypes(t *testing.T) {
	s := mustTestShader(t)
	var cam camera.GPUCameraUniform
	var params material.GPUMaterialParams

	tests := []struct {
		name string
		want uint64
	}{
		{"CameraUniform", uint64(cam.Size())},
		{"LightBlock", light.LightBufferSize},
		{"MaterialParams", uint64(params.Size())},
		{"Light", 64},
	}
	for _, tt := range tests {
		got, ok := s.StructSize(tt.name)
		if !ok {
			t.Errorf("%s: not sized", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: size = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestBindGroupLayouts(t *testing.T) {
	s := mustTestShader(t)
	descs := s.BindGroupLayoutDescriptors()
	if len(descs) != 3 {
		t.Fatalf("got %d groups, want 3", len(descs))
	}

	g0 := s.BindGroupLayoutDescriptor(0).Entries
	if len(g0) != 4 {
		t.Fatalf("group 0 has %d entries, want 4", len(g0))
	}
	if g0[0].Binding != 0 || g0[0].Buffer.Type != wgpu.BufferBindingTypeUniform {
		t.Errorf("group 0 binding 0 = %+v, want uniform buffer", g0[0])
	}
	if g0[0].Buffer.MinBindingSize != 144 {
		t.Errorf("camera MinBindingSize = %d, want 144", g0[0].Buffer.MinBindingSize)
	}
	if g0[1].Buffer.MinBindingSize != light.LightBufferSize {
		t.Errorf("lights MinBindingSize = %d, want %d", g0[1].Buffer.MinBindingSize, light.LightBufferSize)
	}
	if g0[2].Binding != 3 || g0[2].Texture.SampleType != wgpu.TextureSampleTypeDepth {
		t.Errorf("shadow map entry = %+v, want depth texture at binding 3", g0[2])
	}
	if g0[3].Sampler.Type != wgpu.SamplerBindingTypeComparison {
		t.Errorf("shadow sampler type = %v, want comparison", g0[3].Sampler.Type)
	}

	g2 := s.BindGroupLayoutDescriptor(2).Entries
	if g2[0].Texture.ViewDimension != wgpu.TextureViewDimensionCube {
		t.Errorf("sky view dimension = %v, want cube", g2[0].Texture.ViewDimension)
	}
	if g2[1].Sampler.Type != wgpu.SamplerBindingTypeFiltering {
		t.Errorf("sky sampler type = %v, want filtering", g2[1].Sampler.Type)
	}

	want := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	for g, desc := range descs {
		for _, e := range desc.Entries {
			if e.Visibility != want {
				t.Errorf("group %d binding %d visibility = %v, want vertex|fragment", g, e.Binding, e.Visibility)
			}
		}
	}

	if got := s.BindGroupVarName(1, 0); got != "params" {
		t.Errorf("BindGroupVarName(1, 0) = %q, want params", got)
	}
	if got := s.BindGroupVarName(7, 0); got != "" {
		t.Errorf("commented binding was reflected as %q", got)
	}
}

func TestVertexLayouts(t *testing.T) {
	s := mustTestShader(t)
	layouts := s.VertexLayouts()
	if len(layouts) != 1 {
		t.Fatalf("got %d vertex layouts, want 1", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != 32 {
		t.Errorf("stride = %d, want 32", l.ArrayStride)
	}
	wantFormats := []wgpu.VertexFormat{wgpu.VertexFormatFloat32x3, wgpu.VertexFormatFloat32x3, wgpu.VertexFormatFloat32x2}
	wantOffsets := []uint64{0, 12, 24}
	if len(l.Attributes) != len(wantFormats) {
		t.Fatalf("got %d attributes, want %d", len(l.Attributes), len(wantFormats))
	}
	for i, a := range l.Attributes {
		if a.Format != wantFormats[i] || a.Offset != wantOffsets[i] || a.ShaderLocation != uint32(i) {
			t.Errorf("attribute %d = %+v, want format %v offset %d", i, a, wantFormats[i], wantOffsets[i])
		}
	}
}

func TestPreProcessor(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
		count   int
	}{
		{name: "duplicate include", source: "//@oxy:include camera\n//@oxy:include camera\n", count: 1},
		{name: "unknown include", source: "fn a() {}\n//@oxy:include nope\n", wantErr: "line 2"},
		{name: "missing name", source: "//@oxy:include\n", wantErr: "exactly one name"},
		{name: "custom include", source: "//@oxy:include extra\n", count: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pp := NewPreProcessor()
			pp.Register("extra", "struct Extra { a: f32, }")
			out, err := pp.Process(tt.source)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if got := strings.Count(out, "struct CameraUniform"); got != tt.count {
				t.Errorf("CameraUniform declared %d times, want %d", got, tt.count)
			}
		})
	}
}

func TestWithInclude(t *testing.T) {
	src := "//@oxy:include params\n@group(0) @binding(0) var<uniform> p: Params;\n@vertex fn vs() -> @builtin(position) vec4<f32> { return vec4<f32>(p.a); }\n"
	s, err := NewShader("custom", src, WithInclude("params", "struct Params { a: f32, b: vec3<f32>, }"))
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	if got, _ := s.StructSize("Params"); got != 32 {
		t.Errorf("Params size = %d, want 32", got)
	}
	if s.EntryPoint(ShaderTypeFragment) != "" {
		t.Errorf("vertex-only module reported a fragment entry")
	}
}

func TestNoVertexEntry(t *testing.T) {
	_, err := NewShader("frag-only", "@fragment fn fs() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }")
	if !errors.Is(err, ErrNoVertexEntry) {
		t.Fatalf("err = %v, want ErrNoVertexEntry", err)
	}
}

func TestStripComments(t *testing.T) {
	in := "a /* b /* nested */ c */ d // tail\ne"
	got := strings.Join(strings.Fields(stripComments(in)), " ")
	if got != "a d e" {
		t.Errorf("stripComments = %q, want %q", got, "a d e")
	}
}
