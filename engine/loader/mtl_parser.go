package loader

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-waddle/common"
)

// mtlOptions controls how material libraries are interpreted.
type mtlOptions struct {
	// ignoreZeroRGBs drops Ka, Kd and Ks statements whose color is exactly black so the
	// material keeps its default instead.
	ignoreZeroRGBs bool
}

// mapOptionArgs is the number of arguments taken by each texture map option.
var mapOptionArgs = map[string]int{
	"-bm":      1,
	"-blendu":  1,
	"-blendv":  1,
	"-boost":   1,
	"-cc":      1,
	"-clamp":   1,
	"-imfchan": 1,
	"-mm":      2,
	"-o":       3,
	"-s":       3,
	"-t":       3,
	"-texres":  1,
}

// newImportedMaterial returns a material with the defaults used when a library omits a value.
func newImportedMaterial(name string) common.ImportedMaterial {
	return common.ImportedMaterial{
		Name:      name,
		Diffuse:   common.Color{R: 1, G: 1, B: 1},
		Specular:  common.ColorFromHex(0x111111),
		Shininess: 30,
		Opacity:   1,
	}
}

// parseMTL reads a Wavefront material library.
//
// Parameters:
//   - r: the library contents
//   - baseDir: directory that relative texture paths resolve against
//   - opts: interpretation options
//
// Returns:
//   - []common.ImportedMaterial: the materials in declaration order
//   - error: error if a statement is malformed
func parseMTL(r io.Reader, baseDir string, opts mtlOptions) ([]common.ImportedMaterial, error) {
	var mats []common.ImportedMaterial
	var cur *common.ImportedMaterial

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		key, rest, ok := splitStatement(sc.Text())
		if !ok {
			continue
		}
		if key == "newmtl" {
			mats = append(mats, newImportedMaterial(rest))
			cur = &mats[len(mats)-1]
			continue
		}
		if cur == nil {
			continue
		}

		var err error
		switch key {
		case "Ka":
			err = setColor(&cur.Ambient, rest, opts)
		case "Kd":
			err = setColor(&cur.Diffuse, rest, opts)
		case "Ks":
			err = setColor(&cur.Specular, rest, opts)
		case "Ke":
			err = setColor(&cur.Emissive, rest, mtlOptions{})
		case "Ns":
			cur.Shininess, err = parseFloat(rest)
		case "d":
			cur.Opacity, err = parseFloat(rest)
		case "Tr":
			var tr float32
			tr, err = parseFloat(rest)
			cur.Opacity = 1 - tr
		case "illum":
			cur.Illum, err = strconv.Atoi(rest)
		case "map_Kd":
			if p := mapPath(rest); p != "" {
				cur.DiffuseTexture = &common.ImportedTexture{Name: "diffuse", Path: resolvePath(baseDir, p)}
			}
		}
		if err != nil {
			return nil, fmt.Errorf("mtl line %d: %s: %w", line, key, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mtl: %w", err)
	}
	return mats, nil
}

// setColor parses an "r g b" triple (a single value is replicated) into dst.
func setColor(dst *common.Color, s string, opts mtlOptions) error {
	f := strings.Fields(s)
	if len(f) == 0 {
		return fmt.Errorf("missing color")
	}
	var v [3]float32
	for i := range v {
		src := f[0]
		if i < len(f) {
			src = f[i]
		}
		x, err := strconv.ParseFloat(src, 32)
		if err != nil {
			return err
		}
		v[i] = float32(x)
	}
	if opts.ignoreZeroRGBs && v == [3]float32{} {
		return nil
	}
	*dst = common.Color{R: v[0], G: v[1], B: v[2]}
	return nil
}

// mapPath strips texture map options and returns the file name.
func mapPath(s string) string {
	f := strings.Fields(s)
	i := 0
	for i < len(f) {
		n, ok := mapOptionArgs[f[i]]
		if !ok {
			break
		}
		i += 1 + n
	}
	if i >= len(f) {
		return ""
	}
	return strings.ReplaceAll(strings.Join(f[i:], " "), `\`, "/")
}

// resolvePath joins p onto baseDir unless p is already absolute.
func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return filepath.FromSlash(p)
	}
	return filepath.Join(baseDir, filepath.FromSlash(p))
}

// splitStatement trims comments and whitespace and splits a line into its keyword and
// the remainder.
func splitStatement(raw string) (key, rest string, ok bool) {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", false
	}
	key, rest, _ = strings.Cut(raw, " ")
	if j := strings.IndexByte(key, '\t'); j >= 0 {
		key, rest = key[:j], raw[j+1:]
	}
	return key, strings.TrimSpace(rest), true
}

func parseFloat(s string) (float32, error) {
	f := strings.Fields(s)
	if len(f) == 0 {
		return 0, fmt.Errorf("missing value")
	}
	v, err := strconv.ParseFloat(f[0], 32)
	return float32(v), err
}
