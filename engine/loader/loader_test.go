package loader

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-waddle/engine/scene"
)

const testMTL = `# two materials
newmtl Body
Ka 0 0 0
Kd 0.1 0.2 0.3
Ks 0 0 0
Ns 50
d 0.5
illum 2
map_Kd -s 1 1 1 tex\body.png

newmtl Beak
Kd 1 0.5 0
Tr 0.25
`

const testOBJ = `mtllib penguin.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
o body
usemtl Body
f 1/1/1 2/2/1 3/3/1 4/4/1
o left_leg
usemtl Beak
f -4 -3 -2
o hat
usemtl Missing
f 1//1 2//1 3//1
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestParseMTL(t *testing.T) {
	tests := []struct {
		name       string
		ignoreZero bool
		wantAmb    common.Color
		wantSpec   common.Color
	}{
		{name: "zeros kept", wantAmb: common.Color{}, wantSpec: common.Color{}},
		{name: "zeros ignored", ignoreZero: true, wantAmb: common.Color{}, wantSpec: common.ColorFromHex(0x111111)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mats, err := parseMTL(strings.NewReader(testMTL), "assets", mtlOptions{ignoreZeroRGBs: tt.ignoreZero})
			if err != nil {
				t.Fatalf("parseMTL: %v", err)
			}
			if len(mats) != 2 {
				t.Fatalf("got %d materials, want 2", len(mats))
			}
			body, beak := mats[0], mats[1]
			if body.Diffuse != (common.Color{R: 0.1, G: 0.2, B: 0.3}) {
				t.Errorf("body diffuse = %+v", body.Diffuse)
			}
			if body.Ambient != tt.wantAmb || body.Specular != tt.wantSpec {
				t.Errorf("body ambient/specular = %+v/%+v, want %+v/%+v", body.Ambient, body.Specular, tt.wantAmb, tt.wantSpec)
			}
			if body.Shininess != 50 || body.Opacity != 0.5 || body.Illum != 2 {
				t.Errorf("body Ns/d/illum = %v/%v/%v", body.Shininess, body.Opacity, body.Illum)
			}
			want := filepath.Join("assets", "tex", "body.png")
			if body.DiffuseTexture == nil || body.DiffuseTexture.Path != want {
				t.Errorf("body texture = %+v, want path %q", body.DiffuseTexture, want)
			}
			if beak.Opacity != 0.75 {
				t.Errorf("beak opacity from Tr = %v, want 0.75", beak.Opacity)
			}
			if beak.Shininess != 30 {
				t.Errorf("beak default shininess = %v, want 30", beak.Shininess)
			}
		})
	}
}

func TestParseMTLErrors(t *testing.T) {
	for _, src := range []string{
		"newmtl a\nKd red 0 0\n",
		"newmtl a\nNs\n",
		"newmtl a\nillum x\n",
	} {
		if _, err := parseMTL(strings.NewReader(src), "", mtlOptions{}); err == nil {
			t.Errorf("parseMTL(%q) succeeded, want error", src)
		}
	}
}

func TestParseOBJ(t *testing.T) {
	m, err := parseOBJ(strings.NewReader(testOBJ), "penguin")
	if err != nil {
		t.Fatalf("parseOBJ: %v", err)
	}
	if len(m.MaterialLibs) != 1 || m.MaterialLibs[0] != "penguin.mtl" {
		t.Errorf("mtllib = %v", m.MaterialLibs)
	}
	if len(m.Meshes) != 3 {
		t.Fatalf("got %d meshes, want 3", len(m.Meshes))
	}

	body := m.Meshes[0]
	if body.Name != "body" || body.MaterialName != "Body" {
		t.Errorf("mesh 0 = %q/%q", body.Name, body.MaterialName)
	}
	// A quad fans into two triangles.
	if body.TriangleCount() != 2 || len(body.Vertices) != 6 {
		t.Errorf("quad gave %d triangles, %d vertices", body.TriangleCount(), len(body.Vertices))
	}
	if uv := body.Vertices[1].UV; uv != [2]float32{1, 0} {
		t.Errorf("corner uv = %v", uv)
	}

	// Negative indices count back from the last position; no normals gives the flat normal.
	leg := m.Meshes[1]
	if leg.Vertices[0].Position != [3]float32{0, 0, 0} || leg.Vertices[2].Position != [3]float32{1, 1, 0} {
		t.Errorf("negative indices resolved to %v, %v", leg.Vertices[0].Position, leg.Vertices[2].Position)
	}
	for _, v := range leg.Vertices {
		if v.Normal != [3]float32{0, 0, 1} {
			t.Errorf("flat normal = %v, want +Z", v.Normal)
		}
	}
	if m.Meshes[2].Vertices[0].Normal != [3]float32{0, 0, 1} {
		t.Errorf("v//vn normal not used")
	}
	if m.Meshes[0].MaterialIndex != -1 {
		t.Errorf("material index resolved before binding")
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", errZeroIndex},
		{"out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", errIndexRange},
		{"negative out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -1 -2 -4\n", errIndexRange},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", errShortFace},
		{"bad corner", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1/1 2 3\n", errBadFaceCorner},
		{"uv out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1 2/1 3/1\n", errIndexRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOBJ(strings.NewReader(tt.src), "bad")
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := parseOBJ(strings.NewReader("v 1 x 0\n"), "bad"); err == nil {
		t.Errorf("bad float accepted")
	}
}

func TestBindMaterials(t *testing.T) {
	m, err := parseOBJ(strings.NewReader(testOBJ), "penguin")
	if err != nil {
		t.Fatal(err)
	}
	mats, err := parseMTL(strings.NewReader(testMTL), "", mtlOptions{})
	if err != nil {
		t.Fatal(err)
	}
	bindMaterials(m, mats)
	got := []int{m.Meshes[0].MaterialIndex, m.Meshes[1].MaterialIndex, m.Meshes[2].MaterialIndex}
	if got[0] != 0 || got[1] != 1 || got[2] != -1 {
		t.Errorf("material indices = %v, want [0 1 -1]", got)
	}
}

func newTestAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "penguin/penguin.mtl", testMTL)
	writeFile(t, dir, "penguin/penguin.obj", testOBJ)
	if err := os.MkdirAll(filepath.Join(dir, "penguin", "tex"), 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "penguin", "tex", "body.png"))
	return dir
}

func TestLoaderLoad(t *testing.T) {
	dir := newTestAssets(t)
	l := NewLoader(BackendTypeOBJ,
		WithBaseDir(dir),
		WithIgnoreZeroRGBs(true),
		WithRoleClassifier(NameContains("leg", scene.RoleLeg)),
	)
	defer l.Close()

	a, err := l.Load("penguin/penguin.obj", "penguin/penguin.mtl")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := l.Load("penguin/penguin.obj", "penguin/penguin.mtl")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if len(l.Models()) != 1 || l.Get("penguin/penguin.obj", "penguin/penguin.mtl") == nil {
		t.Fatalf("model not cached once: %d entries", len(l.Models()))
	}

	if a == b || len(a.Children()) != 3 {
		t.Fatalf("instances not distinct or wrong size: %d children", len(a.Children()))
	}
	ma, mb := a.Children()[0].Mesh, b.Children()[0].Mesh
	if ma.Geometry != mb.Geometry {
		t.Errorf("geometry not shared between instances")
	}
	if ma.Material == mb.Material || ma.Material == a.Children()[1].Mesh.Material {
		t.Errorf("materials shared between mesh nodes")
	}
	ma.Material.SetColor(common.Color{R: 1})
	if mb.Material.Color() == ma.Material.Color() {
		t.Errorf("recoloring one instance changed another")
	}

	tex := ma.Material.Texture()
	if tex == nil || tex.Width != 2 || tex.WrapS != material.WrapRepeat || !tex.SRGB {
		t.Errorf("body texture = %+v", tex)
	}
	if legs := a.FindByRole(scene.RoleLeg); len(legs) != 1 || legs[0].Name != "left_leg" {
		t.Errorf("leg nodes = %v", legs)
	}
	if a.Children()[2].Mesh.Material.Name() != "default" {
		t.Errorf("unresolved material = %q, want default", a.Children()[2].Mesh.Material.Name())
	}
}

func TestLoaderMaterialLibFallback(t *testing.T) {
	dir := newTestAssets(t)
	l := NewLoader(BackendTypeOBJ, WithBaseDir(dir))
	defer l.Close()

	m, err := l.LoadModel("penguin/penguin.obj", "")
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if len(m.ImportedMaterials()) != 2 {
		t.Errorf("mtllib fallback loaded %d materials, want 2", len(m.ImportedMaterials()))
	}
}

func TestLoaderErrors(t *testing.T) {
	dir := newTestAssets(t)
	l := NewLoader(BackendTypeOBJ, WithBaseDir(dir))
	defer l.Close()

	if _, err := l.Load("penguin/penguin.fbx", ""); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("fbx err = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := l.Load("penguin/penguin.obj", "penguin/penguin.txt"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("txt err = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := l.Load("missing.obj", ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing err = %v, want not exist", err)
	}
	if len(l.Models()) != 0 {
		t.Errorf("failed loads were cached")
	}
}

func TestLoadAsyncPostsResult(t *testing.T) {
	dir := newTestAssets(t)
	posted := make(chan func(), 4)
	l := NewLoader(BackendTypeOBJ,
		WithBaseDir(dir),
		WithPoster(func(fn func()) { posted <- fn }),
	)
	defer l.Close()

	fut := l.LoadAsync("penguin/penguin.obj", "penguin/penguin.mtl")
	var fn func()
	select {
	case fn = <-posted:
	case <-time.After(5 * time.Second):
		t.Fatal("load never posted")
	}
	if fut.IsResolved() {
		t.Fatalf("future resolved before the posted continuation ran")
	}
	fn()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	node, err := fut.Wait(ctx)
	if err != nil || node == nil || len(node.Children()) != 3 {
		t.Fatalf("LoadAsync = %v, %v", node, err)
	}
}

func TestLoadTextureAsync(t *testing.T) {
	dir := newTestAssets(t)
	l := NewLoader(BackendTypeOBJ, WithBaseDir(dir))
	defer l.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tex, err := l.LoadTextureAsync("penguin/tex/body.png").Wait(ctx)
	if err != nil || tex.Width != 2 || tex.Pixels[0] != 255 {
		t.Fatalf("LoadTextureAsync = %+v, %v", tex, err)
	}
	if _, err := l.LoadTextureAsync("nope.png").Wait(ctx); err == nil {
		t.Errorf("missing texture resolved without error")
	}
}

func TestNameContains(t *testing.T) {
	tests := []struct {
		marker string
		name   string
		want   scene.Role
	}{
		{"leg", "left_leg", scene.RoleLeg},
		{"leg", "legR", scene.RoleLeg},
		{"leg", "LeftLeg", scene.RoleMesh},
		{"leg", "Left_Leg", scene.RoleMesh},
		{"leg", "body", scene.RoleMesh},
		{"leg", "", scene.RoleMesh},
		{"Leg", "LeftLeg", scene.RoleLeg},
		{"Leg", "left_leg", scene.RoleMesh},
		{"", "body", scene.RoleMesh},
	}
	for _, tt := range tests {
		if got := NameContains(tt.marker, scene.RoleLeg)(tt.name); got != tt.want {
			t.Errorf("NameContains(%q)(%q) = %v, want %v", tt.marker, tt.name, got, tt.want)
		}
	}
}
