package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// NewBox creates an axis-aligned box centered on the origin with 4 vertices per face.
//
// Parameters:
//   - width, height, depth: extents along X, Y and Z
//
// Returns:
//   - *Geometry: 24 vertices, 12 triangles
func NewBox(width, height, depth float32) *Geometry {
	half := ms3.Vec{X: width / 2, Y: height / 2, Z: depth / 2}
	// normal, u axis, v axis with u x v = normal so each quad winds counter-clockwise.
	faces := [6][3]ms3.Vec{
		{{X: 1}, {Z: -1}, {Y: 1}},
		{{X: -1}, {Z: 1}, {Y: 1}},
		{{Y: 1}, {X: 1}, {Z: -1}},
		{{Y: -1}, {X: 1}, {Z: 1}},
		{{Z: 1}, {X: 1}, {Y: 1}},
		{{Z: -1}, {X: -1}, {Y: 1}},
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		n, u, v := f[0], ms3.MulElem(f[1], half), ms3.MulElem(f[2], half)
		center := ms3.MulElem(n, half)
		base := uint32(len(vertices))
		for _, c := range corners {
			p := ms3.Add(center, ms3.Add(ms3.Scale(c[0], u), ms3.Scale(c[1], v)))
			vertices = append(vertices, Vertex{
				Position: [3]float32{p.X, p.Y, p.Z},
				Normal:   [3]float32{n.X, n.Y, n.Z},
				UV:       [2]float32{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return New(fmt.Sprintf("box %gx%gx%g", width, height, depth), vertices, indices)
}

// NewSphere creates a UV sphere centered on the origin.
// Degenerate triangles at the poles are omitted.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: number of longitudinal segments (minimum 3)
//   - heightSegments: number of latitudinal segments (minimum 2)
//
// Returns:
//   - *Geometry: (w+1)*(h+1) vertices, 2*w*(h-1) triangles
func NewSphere(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(3, widthSegments)
	heightSegments = max(2, heightSegments)

	vertices := make([]Vertex, 0, (widthSegments+1)*(heightSegments+1))
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		theta := v * math32.Pi
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := u * 2 * math32.Pi
			n := ms3.Vec{
				X: -math32.Cos(phi) * math32.Sin(theta),
				Y: math32.Cos(theta),
				Z: math32.Sin(phi) * math32.Sin(theta),
			}
			row[ix] = uint32(len(vertices))
			vertices = append(vertices, Vertex{
				Position: [3]float32{n.X * radius, n.Y * radius, n.Z * radius},
				Normal:   [3]float32{n.X, n.Y, n.Z},
				UV:       [2]float32{u, 1 - v},
			})
		}
		grid[iy] = row
	}

	var indices []uint32
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}
	return New(fmt.Sprintf("sphere r%g", radius), vertices, indices)
}

// NewCylinder creates a capped cylinder (or truncated cone) centered on the origin
// with its axis along Y.
//
// Parameters:
//   - radiusTop: radius of the +Y cap
//   - radiusBottom: radius of the -Y cap
//   - height: extent along Y
//   - radialSegments: number of segments around the circumference (minimum 3)
//
// Returns:
//   - *Geometry: the cylinder geometry
func NewCylinder(radiusTop, radiusBottom, height float32, radialSegments int) *Geometry {
	radialSegments = max(3, radialSegments)
	halfHeight := height / 2
	slope := (radiusBottom - radiusTop) / height

	var vertices []Vertex
	var indices []uint32

	// torso: two rings, top then bottom
	rings := [2][]uint32{}
	for y := 0; y <= 1; y++ {
		v := float32(y)
		radius := v*(radiusBottom-radiusTop) + radiusTop
		for x := 0; x <= radialSegments; x++ {
			u := float32(x) / float32(radialSegments)
			theta := u * 2 * math32.Pi
			sin, cos := math32.Sin(theta), math32.Cos(theta)
			n := ms3.Unit(ms3.Vec{X: sin, Y: slope, Z: cos})
			rings[y] = append(rings[y], uint32(len(vertices)))
			vertices = append(vertices, Vertex{
				Position: [3]float32{radius * sin, -v*height + halfHeight, radius * cos},
				Normal:   [3]float32{n.X, n.Y, n.Z},
				UV:       [2]float32{u, 1 - v},
			})
		}
	}
	for x := 0; x < radialSegments; x++ {
		a, b := rings[0][x], rings[1][x]
		c, d := rings[1][x+1], rings[0][x+1]
		indices = append(indices, a, b, d, b, c, d)
	}

	for _, top := range []bool{true, false} {
		sign, radius := float32(1), radiusTop
		if !top {
			sign, radius = -1, radiusBottom
		}
		centerStart := uint32(len(vertices))
		for x := 0; x < radialSegments; x++ {
			vertices = append(vertices, Vertex{
				Position: [3]float32{0, halfHeight * sign, 0},
				Normal:   [3]float32{0, sign, 0},
				UV:       [2]float32{0.5, 0.5},
			})
		}
		ringStart := uint32(len(vertices))
		for x := 0; x <= radialSegments; x++ {
			theta := float32(x) / float32(radialSegments) * 2 * math32.Pi
			sin, cos := math32.Sin(theta), math32.Cos(theta)
			vertices = append(vertices, Vertex{
				Position: [3]float32{radius * sin, halfHeight * sign, radius * cos},
				Normal:   [3]float32{0, sign, 0},
				UV:       [2]float32{cos*0.5 + 0.5, sin*0.5*sign + 0.5},
			})
		}
		for x := uint32(0); x < uint32(radialSegments); x++ {
			c, i := centerStart+x, ringStart+x
			if top {
				indices = append(indices, i, i+1, c)
			} else {
				indices = append(indices, i+1, i, c)
			}
		}
	}
	return New(fmt.Sprintf("cylinder r%g/%g h%g", radiusTop, radiusBottom, height), vertices, indices)
}

// NewPlane creates a plane in the XY plane facing +Z, centered on the origin.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - widthSegments, heightSegments: grid subdivisions (minimum 1)
//
// Returns:
//   - *Geometry: the plane geometry
func NewPlane(width, height float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(1, widthSegments)
	heightSegments = max(1, heightSegments)
	gx1, gy1 := widthSegments+1, heightSegments+1
	segW, segH := width/float32(widthSegments), height/float32(heightSegments)

	vertices := make([]Vertex, 0, gx1*gy1)
	for iy := 0; iy < gy1; iy++ {
		y := float32(iy)*segH - height/2
		for ix := 0; ix < gx1; ix++ {
			x := float32(ix)*segW - width/2
			vertices = append(vertices, Vertex{
				Position: [3]float32{x, -y, 0},
				Normal:   [3]float32{0, 0, 1},
				UV:       [2]float32{float32(ix) / float32(widthSegments), 1 - float32(iy)/float32(heightSegments)},
			})
		}
	}

	indices := make([]uint32, 0, widthSegments*heightSegments*6)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(ix + gx1*iy)
			b := uint32(ix + gx1*(iy+1))
			c := uint32(ix + 1 + gx1*(iy+1))
			d := uint32(ix + 1 + gx1*iy)
			indices = append(indices, a, b, d, b, c, d)
		}
	}
	return New(fmt.Sprintf("plane %gx%g", width, height), vertices, indices)
}
