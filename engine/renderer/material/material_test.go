package material

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-waddle/common"
)

func TestCloneIsIndependent(t *testing.T) {
	tex := NewTexture("t", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	a := NewMaterial(WithName("body"), WithColor(common.ColorFromHex(0x336699)), WithTexture(tex))
	b := a.Clone()
	b.SetColor(common.Color{R: 1})

	if a.Color() == b.Color() {
		t.Fatal("recoloring a clone changed the original")
	}
	if b.Texture() != tex || b.Name() != "body" {
		t.Fatalf("clone lost state: name=%q texture=%p", b.Name(), b.Texture())
	}
}

func TestFromImported(t *testing.T) {
	im := &common.ImportedMaterial{
		Name:      "beak",
		Diffuse:   common.Color{R: 1, G: 0.5},
		Specular:  common.Color{R: 0.2, G: 0.2, B: 0.2},
		Shininess: 96,
		Opacity:   1.5,
	}
	m := NewMaterial(FromImported(im))
	if m.Name() != "beak" || m.Color() != im.Diffuse || m.Shininess() != 96 {
		t.Fatalf("got name=%q color=%v shininess=%v", m.Name(), m.Color(), m.Shininess())
	}
	if m.Opacity() != 1 {
		t.Fatalf("opacity = %v, want clamped to 1", m.Opacity())
	}
}

func TestParamsMarshal(t *testing.T) {
	tex := NewTexture("ground", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	tex.Repeat = [2]float32{5, 5}
	m := NewMaterial(WithColor(common.Color{R: 0.25, G: 0.5, B: 0.75}), WithSide(SideDouble), WithTexture(tex))
	p := Params(m)
	if p.TextureTransform != [4]float32{5, 5, 1, 1} {
		t.Fatalf("TextureTransform = %v", p.TextureTransform)
	}
	buf := p.Marshal()
	if len(buf) != p.Size() {
		t.Fatalf("Marshal length %d, Size %d", len(buf), p.Size())
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])); got != 0.5 {
		t.Fatalf("green channel = %v, want 0.5", got)
	}
}

func TestNewCubeTextureResizesFaces(t *testing.T) {
	var faces [6]image.Image
	for i := range faces {
		size := 4
		if i == 3 {
			size = 8
		}
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				img.Set(x, y, color.RGBA{R: uint8(40 * i), A: 255})
			}
		}
		faces[i] = img
	}
	ct, err := NewCubeTexture("sky", faces)
	if err != nil {
		t.Fatalf("NewCubeTexture: %v", err)
	}
	if ct.Size != 4 {
		t.Fatalf("Size = %d, want 4", ct.Size)
	}
	for i, f := range ct.Faces {
		if len(f) != 4*4*4 {
			t.Fatalf("face %d has %d bytes, want 64", i, len(f))
		}
	}
	if r := int(ct.Faces[3][0]); r < 119 || r > 121 {
		t.Fatalf("resized face red = %d, want ~120", r)
	}
}

func TestNewCubeTextureMissingFace(t *testing.T) {
	var faces [6]image.Image
	faces[0] = image.NewRGBA(image.Rect(0, 0, 2, 2))
	if _, err := NewCubeTexture("sky", faces); err == nil {
		t.Fatal("expected an error for missing faces")
	}
}
