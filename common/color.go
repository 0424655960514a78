package common

// Color is a linear RGB color with components nominally in [0, 1].
type Color struct {
	R, G, B float32
}

// ColorFromHex converts a 0xRRGGBB value into a Color.
//
// Parameters:
//   - hex: packed 24-bit color
//
// Returns:
//   - Color: the unpacked color
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float32((hex>>16)&0xFF) / 255,
		G: float32((hex>>8)&0xFF) / 255,
		B: float32(hex&0xFF) / 255,
	}
}

// Hex packs the color back into 0xRRGGBB, clamping each component to [0, 1].
func (c Color) Hex() uint32 {
	to8 := func(v float32) uint32 {
		return uint32(Clamp(v, 0, 1)*255 + 0.5)
	}
	return to8(c.R)<<16 | to8(c.G)<<8 | to8(c.B)
}

// Scale returns the color multiplied by s.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// Vec4 returns the color as an RGBA array with the given alpha.
func (c Color) Vec4(alpha float32) [4]float32 {
	return [4]float32{c.R, c.G, c.B, alpha}
}
