package material

import (
	"fmt"
	"image"
	"sync/atomic"

	"golang.org/x/image/draw"

	"github.com/Carmen-Shannon/oxy-waddle/common"
)

// Wrap is a texture coordinate addressing mode.
type Wrap int

const (
	WrapClamp Wrap = iota
	WrapRepeat
	WrapMirror
)

// Filter is a texture sampling filter.
type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
)

var nextTextureID atomic.Uint64

// Texture is decoded RGBA8 image data plus the sampling state used to draw it.
// Pixel data is immutable once created; sampling fields may be adjusted before the
// texture is first rendered.
type Texture struct {
	id     uint64
	Label  string
	Width  int
	Height int
	// Pixels is tightly packed RGBA8 with the first row at the top of the image.
	Pixels []byte

	WrapS, WrapT Wrap
	MagFilter    Filter
	MinFilter    Filter
	// Repeat scales UVs before sampling.
	Repeat [2]float32
	// SRGB marks the pixels as sRGB-encoded color data.
	SRGB bool
}

// NewTexture converts img into a Texture with clamp addressing and linear filtering.
//
// Parameters:
//   - label: debug label used for GPU resources
//   - img: the source image
//
// Returns:
//   - *Texture: the texture
func NewTexture(label string, img image.Image) *Texture {
	rgba := common.ToRGBA(img)
	return &Texture{
		id:     nextTextureID.Add(1),
		Label:  label,
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		Pixels: rgba.Pix,
		Repeat: [2]float32{1, 1},
	}
}

// LoadTexture decodes the image file at path into a Texture.
//
// Parameters:
//   - path: file system path of a PNG, JPEG, TGA, BMP or WebP image
//
// Returns:
//   - *Texture: the texture
//   - error: error if decoding fails
func LoadTexture(path string) (*Texture, error) {
	img, err := common.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return NewTexture(path, img), nil
}

// ID returns a process-unique identifier used to cache GPU resources.
func (t *Texture) ID() uint64 { return t.id }

// CubeTexture holds six square faces of equal size in +X, -X, +Y, -Y, +Z, -Z order.
type CubeTexture struct {
	id    uint64
	Label string
	Size  int
	Faces [6][]byte
	SRGB  bool
}

// NewCubeTexture builds a cube texture from six images. Faces whose dimensions differ from
// the first face's width are resampled with Catmull-Rom filtering so every face is Size x Size.
//
// Parameters:
//   - label: debug label used for GPU resources
//   - faces: the six face images in +X, -X, +Y, -Y, +Z, -Z order
//
// Returns:
//   - *CubeTexture: the cube texture
//   - error: error if a face is missing or empty
func NewCubeTexture(label string, faces [6]image.Image) (*CubeTexture, error) {
	if faces[0] == nil || faces[0].Bounds().Dx() == 0 {
		return nil, fmt.Errorf("cube texture %s: first face is empty", label)
	}
	size := faces[0].Bounds().Dx()
	ct := &CubeTexture{id: nextTextureID.Add(1), Label: label, Size: size, SRGB: true}
	for i, face := range faces {
		if face == nil {
			return nil, fmt.Errorf("cube texture %s: face %d is missing", label, i)
		}
		b := face.Bounds()
		if b.Dx() == size && b.Dy() == size {
			ct.Faces[i] = common.ToRGBA(face).Pix
			continue
		}
		dst := image.NewRGBA(image.Rect(0, 0, size, size))
		draw.CatmullRom.Scale(dst, dst.Rect, face, b, draw.Src, nil)
		ct.Faces[i] = dst.Pix
	}
	return ct, nil
}

// LoadCubeTexture decodes six face image files into a CubeTexture.
//
// Parameters:
//   - paths: face file paths in +X, -X, +Y, -Y, +Z, -Z order
//
// Returns:
//   - *CubeTexture: the cube texture
//   - error: the first decoding error encountered
func LoadCubeTexture(paths [6]string) (*CubeTexture, error) {
	var faces [6]image.Image
	for i, p := range paths {
		img, err := common.LoadImage(p)
		if err != nil {
			return nil, fmt.Errorf("cube texture face %d: %w", i, err)
		}
		faces[i] = img
	}
	return NewCubeTexture(paths[0], faces)
}

// ID returns a process-unique identifier used to cache GPU resources.
func (c *CubeTexture) ID() uint64 { return c.id }
