package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
)

func textureFormat(srgb bool) wgpu.TextureFormat {
	if srgb {
		return wgpu.TextureFormatRGBA8UnormSrgb
	}
	return wgpu.TextureFormatRGBA8Unorm
}

// textureStaging wraps a decoded texture for upload.
func textureStaging(t *material.Texture) common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: t.Pixels,
		Width:  uint32(t.Width),
		Height: uint32(t.Height),
		Layers: 1,
		Format: textureFormat(t.SRGB),
	}
}

// whiteStaging is the 1x1 texture sampled by untextured materials.
func whiteStaging() common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: []byte{255, 255, 255, 255},
		Width:  1,
		Height: 1,
		Layers: 1,
		Format: wgpu.TextureFormatRGBA8Unorm,
	}
}

// cubeStaging concatenates the six faces into one layered upload.
func cubeStaging(c *material.CubeTexture) common.TextureStagingData {
	faceSize := c.Size * c.Size * 4
	pixels := make([]byte, 0, faceSize*6)
	for _, f := range c.Faces {
		pixels = append(pixels, f...)
	}
	return common.TextureStagingData{
		Pixels: pixels,
		Width:  uint32(c.Size),
		Height: uint32(c.Size),
		Layers: 6,
		Format: textureFormat(c.SRGB),
	}
}

func addressMode(w material.Wrap) wgpu.AddressMode {
	switch w {
	case material.WrapRepeat:
		return wgpu.AddressModeRepeat
	case material.WrapMirror:
		return wgpu.AddressModeMirrorRepeat
	default:
		return wgpu.AddressModeClampToEdge
	}
}

func filterMode(f material.Filter) wgpu.FilterMode {
	if f == material.FilterNearest {
		return wgpu.FilterModeNearest
	}
	return wgpu.FilterModeLinear
}

// samplerStaging maps a texture's sampling state onto sampler creation parameters.
func samplerStaging(t *material.Texture) common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU: addressMode(t.WrapS),
		AddressModeV: addressMode(t.WrapT),
		AddressModeW: wgpu.AddressModeClampToEdge,
		MagFilter:    filterMode(t.MagFilter),
		MinFilter:    filterMode(t.MinFilter),
		MipmapFilter: wgpu.MipmapFilterModeNearest,
	}
}
