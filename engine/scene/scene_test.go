package scene

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/common"
	"github.com/Carmen-Shannon/oxy-waddle/engine/camera"
	"github.com/Carmen-Shannon/oxy-waddle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-waddle/engine/light"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-waddle/engine/renderer/pipeline"
)

type recordingRenderer struct {
	frames []*renderer.FrameData
	err    error
}

func (r *recordingRenderer) Pipeline(string) pipeline.Pipeline { return nil }
func (r *recordingRenderer) Render(f *renderer.FrameData) error {
	r.frames = append(r.frames, f)
	return r.err
}
func (r *recordingRenderer) Resize(int, int)                     {}
func (r *recordingRenderer) SetPresentMode(renderer.PresentMode) {}
func (r *recordingRenderer) Release()                            {}

func near(a, b float32) bool { return math32.Abs(a-b) < 1e-4 }

func newBox(name string, opts ...NodeBuilderOption) *Node {
	return NewMeshNode(name, geometry.NewBox(1, 1, 1), material.NewMaterial(), opts...)
}

func TestNodeAddRemove(t *testing.T) {
	a, b, c := NewGroup("a"), NewGroup("b"), NewGroup("c")
	a.Add(b)
	b.Add(c)

	c.Add(a) // cycle
	if a.Parent() != nil {
		t.Fatalf("adding an ancestor as a child created a cycle")
	}

	a.Add(c) // reparent
	if c.Parent() != a || len(b.Children()) != 0 {
		t.Errorf("reparent: parent = %v, b children = %d", c.Parent(), len(b.Children()))
	}

	if !a.Remove(b) || b.Parent() != nil {
		t.Errorf("Remove(b) failed")
	}
	if a.Remove(b) {
		t.Errorf("second Remove(b) reported success")
	}
}

func TestFindByRole(t *testing.T) {
	root := NewGroup("penguin")
	body := newBox("body")
	legL := newBox("left", WithRole(RoleLeg))
	legR := newBox("right", WithRole(RoleLeg))
	root.Add(body)
	body.Add(legL)
	root.Add(legR)

	legs := root.FindByRole(RoleLeg)
	if len(legs) != 2 || legs[0] != legL || legs[1] != legR {
		t.Errorf("FindByRole(RoleLeg) = %v", legs)
	}
	if got := len(root.FindByRole(RoleMesh)); got != 1 {
		t.Errorf("mesh count = %d, want 1", got)
	}
	if RoleLeg.String() != "leg" {
		t.Errorf("RoleLeg.String() = %q", RoleLeg.String())
	}
}

func TestWorldMatrix(t *testing.T) {
	parent := NewNode("parent", WithPosition(ms3.Vec{X: 10}), WithRotation(ms3.Vec{Y: math32.Pi / 2}))
	child := NewNode("child", WithPosition(ms3.Vec{X: 1}))
	parent.Add(child)

	got := child.WorldMatrix().Translation()
	// Rotating +X by 90 degrees about Y gives -Z.
	if !near(got.X, 10) || !near(got.Y, 0) || !near(got.Z, -1) {
		t.Errorf("child world position = %+v, want (10, 0, -1)", got)
	}
}

func TestCollectDraws(t *testing.T) {
	root := NewGroup("root")
	group := NewNode("group", WithPosition(ms3.Vec{Y: 2}))
	visible := newBox("visible", WithPosition(ms3.Vec{X: 1}), WithShadows(true, false))
	hidden := newBox("hidden")
	hidden.Visible = false
	underHidden := newBox("under hidden")
	hidden.Add(underHidden)
	noMaterial := NewNode("no material", WithMesh(geometry.NewBox(1, 1, 1), nil))

	root.Add(group)
	group.Add(visible)
	group.Add(hidden)
	root.Add(noMaterial)

	draws := collectDraws(root)
	if len(draws) != 1 {
		t.Fatalf("got %d draws, want 1", len(draws))
	}
	d := draws[0]
	if d.Key != visible.ID() {
		t.Errorf("draw key = %d, want %d", d.Key, visible.ID())
	}
	if p := d.World.Translation(); !near(p.X, 1) || !near(p.Y, 2) {
		t.Errorf("draw world position = %+v, want (1, 2, 0)", p)
	}
	if !d.CastShadow || d.ReceiveShadow {
		t.Errorf("shadow flags = %v/%v, want true/false", d.CastShadow, d.ReceiveShadow)
	}
}

func TestSceneFrame(t *testing.T) {
	cam := camera.NewCamera()
	sun := light.NewLight(light.LightTypeDirectional)
	s := NewScene("test", cam,
		WithBackground(common.Color{B: 1}),
		WithFog(common.ColorFromHex(0xD0C9B9), 30, 100),
		WithLights(sun, nil),
		WithNodes(newBox("a"), newBox("b")),
	)

	f := s.Frame()
	if f.Camera != cam {
		t.Errorf("frame camera not the scene camera")
	}
	if len(f.Lights) != 1 || len(f.Draws) != 2 {
		t.Errorf("frame lights/draws = %d/%d, want 1/2", len(f.Lights), len(f.Draws))
	}
	if f.Fog == nil || f.Fog.Near != 30 || f.Fog.Far != 100 {
		t.Errorf("frame fog = %+v", f.Fog)
	}
	if f.Background.B != 1 {
		t.Errorf("frame background = %+v", f.Background)
	}

	// The light list is a snapshot.
	s.RemoveLight(sun)
	if len(f.Lights) != 1 || len(s.Lights()) != 0 {
		t.Errorf("RemoveLight changed the snapshot or failed")
	}
}

func TestSceneRender(t *testing.T) {
	s := NewScene("test", camera.NewCamera())
	if err := s.Render(); !errors.Is(err, ErrNoRenderer) {
		t.Fatalf("err = %v, want ErrNoRenderer", err)
	}

	r := &recordingRenderer{}
	s.SetRenderer(r)
	s.Add(newBox("a"))
	if err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(r.frames) != 1 || len(r.frames[0].Draws) != 1 {
		t.Fatalf("renderer saw %d frames", len(r.frames))
	}

	s.SetActive(false)
	if err := s.Render(); err != nil || len(r.frames) != 1 {
		t.Errorf("inactive scene rendered")
	}
}

func TestNewSceneRequiresCamera(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("NewScene(nil camera) did not panic")
		}
	}()
	NewScene("test", nil)
}
