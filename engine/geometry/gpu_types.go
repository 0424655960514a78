package geometry

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct.
// Matches the Vertex layout exactly (VertexStride bytes, tightly packed).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// VertexBytes serializes the geometry's vertices for a GPU vertex buffer.
//
// Returns:
//   - []byte: len(Vertices()) * VertexStride bytes
func (g *Geometry) VertexBytes() []byte {
	buf := make([]byte, len(g.vertices)*VertexStride)
	for i, v := range g.vertices {
		off := i * VertexStride
		for j, f := range [8]float32{
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
		} {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(f))
		}
	}
	return buf
}

// IndexBytes serializes the geometry's indices for a GPU index buffer (uint32).
//
// Returns:
//   - []byte: len(Indices()) * 4 bytes
func (g *Geometry) IndexBytes() []byte {
	buf := make([]byte, len(g.indices)*4)
	for i, idx := range g.indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
