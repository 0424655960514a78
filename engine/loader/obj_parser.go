package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-waddle/engine/model"
)

var (
	errZeroIndex     = errors.New("index 0 is not valid")
	errIndexRange    = errors.New("index out of range")
	errShortFace     = errors.New("face needs at least 3 vertices")
	errBadFaceCorner = errors.New("malformed face vertex")
)

// objCorner is one resolved face corner. Missing attributes are -1.
type objCorner struct {
	v, vt, vn int
}

// objParser accumulates Wavefront OBJ statements into meshes.
type objParser struct {
	positions [][3]float32
	uvs       [][2]float32
	normals   [][3]float32

	name     string
	group    string
	material string

	out *model.ImportedModel
	cur *model.ImportedMesh
}

// parseOBJ reads a Wavefront OBJ file. Polygons are triangulated as fans, and every run of
// faces that shares an object name and material becomes one mesh. Corners without a
// normal get the flat face normal.
//
// Parameters:
//   - r: the file contents
//   - name: the model name, also the mesh name until an o or g statement appears
//
// Returns:
//   - *model.ImportedModel: the meshes, with material indices unresolved (-1)
//   - error: error if a statement is malformed
func parseOBJ(r io.Reader, name string) (*model.ImportedModel, error) {
	p := &objParser{
		name: name,
		out:  &model.ImportedModel{Name: name},
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		key, rest, ok := splitStatement(sc.Text())
		if !ok {
			continue
		}
		if err := p.statement(key, rest); err != nil {
			return nil, fmt.Errorf("obj line %d: %s: %w", line, key, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}
	return p.out, nil
}

func (p *objParser) statement(key, rest string) error {
	switch key {
	case "v":
		v, err := parseFloats(rest, 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, [3]float32{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(rest, 1)
		if err != nil {
			return err
		}
		uv := [2]float32{v[0]}
		if len(v) > 1 {
			uv[1] = v[1]
		}
		p.uvs = append(p.uvs, uv)
	case "vn":
		v, err := parseFloats(rest, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, [3]float32{v[0], v[1], v[2]})
	case "f":
		return p.face(strings.Fields(rest))
	case "o":
		p.name = rest
		p.cur = nil
	case "g":
		p.group = rest
		if rest != "" {
			p.name = rest
		}
		p.cur = nil
	case "usemtl":
		p.material = rest
		p.cur = nil
	case "mtllib":
		p.out.MaterialLibs = append(p.out.MaterialLibs, strings.Fields(rest)...)
	}
	// s, l, p and unknown statements carry nothing the meshes use.
	return nil
}

func (p *objParser) face(fields []string) error {
	if len(fields) < 3 {
		return errShortFace
	}
	corners := make([]objCorner, len(fields))
	for i, f := range fields {
		c, err := p.corner(f)
		if err != nil {
			return fmt.Errorf("%q: %w", f, err)
		}
		corners[i] = c
	}

	mesh := p.mesh()
	for k := 1; k+1 < len(corners); k++ {
		tri := [3]objCorner{corners[0], corners[k], corners[k+1]}
		flat := geometry.FaceNormal(p.pos(tri[0].v), p.pos(tri[1].v), p.pos(tri[2].v))
		for _, c := range tri {
			vert := geometry.Vertex{Position: p.positions[c.v]}
			if c.vt >= 0 {
				vert.UV = p.uvs[c.vt]
			}
			if c.vn >= 0 {
				vert.Normal = p.normals[c.vn]
			} else {
				vert.Normal = [3]float32{flat.X, flat.Y, flat.Z}
			}
			mesh.Indices = append(mesh.Indices, uint32(len(mesh.Vertices)))
			mesh.Vertices = append(mesh.Vertices, vert)
		}
	}
	return nil
}

// mesh returns the mesh for the current object and material, starting one if needed.
func (p *objParser) mesh() *model.ImportedMesh {
	if p.cur != nil {
		return p.cur
	}
	p.out.Meshes = append(p.out.Meshes, model.ImportedMesh{
		Name:          p.name,
		Group:         p.group,
		MaterialName:  p.material,
		MaterialIndex: -1,
	})
	p.cur = &p.out.Meshes[len(p.out.Meshes)-1]
	return p.cur
}

// corner parses "v", "v/vt", "v//vn" or "v/vt/vn".
func (p *objParser) corner(s string) (objCorner, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 || parts[0] == "" {
		return objCorner{}, errBadFaceCorner
	}
	c := objCorner{v: -1, vt: -1, vn: -1}
	var err error
	if c.v, err = resolveIndex(parts[0], len(p.positions)); err != nil {
		return c, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], len(p.uvs)); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolveIndex(parts[2], len(p.normals)); err != nil {
			return c, err
		}
	}
	return c, nil
}

func (p *objParser) pos(i int) ms3.Vec {
	v := p.positions[i]
	return ms3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// resolveIndex converts a 1-based or negative (relative to the end) OBJ index into a
// 0-based slice index.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i == 0:
		return 0, errZeroIndex
	case i < 0:
		i += n
	default:
		i--
	}
	if i < 0 || i >= n {
		return 0, errIndexRange
	}
	return i, nil
}

// parseFloats parses whitespace separated numbers, requiring at least want of them.
func parseFloats(s string, want int) ([]float32, error) {
	f := strings.Fields(s)
	if len(f) < want {
		return nil, fmt.Errorf("want %d values, got %d", want, len(f))
	}
	out := make([]float32, len(f))
	for i, x := range f {
		v, err := strconv.ParseFloat(x, 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}
