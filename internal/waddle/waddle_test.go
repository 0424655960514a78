package waddle

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/engine/scene"
)

const eps = 1e-4

func near(a, b float32) bool { return math32.Abs(a-b) < eps }

func TestStepHundredTicks(t *testing.T) {
	cfg := DefaultConfig()
	st := NewState()
	for i := 0; i < 100; i++ {
		st = Step(cfg, st)
	}
	if !near(st.Phase, 1.5) || st.Direction != 1 {
		t.Fatalf("after 100 ticks state = %+v, want phase 1.5 moving +1", st)
	}
	if pose := Evaluate(cfg, st, 0); !near(pose.BodyTilt, -0.2) {
		t.Errorf("tilt = %v, want -0.2", pose.BodyTilt)
	}
}

func TestStepBoundedOvershoot(t *testing.T) {
	tests := []Config{
		DefaultConfig(),
		{Speed: 0.3, Range: 1},
		{Speed: 0.7, Range: 2},
	}
	for _, cfg := range tests {
		st := NewState()
		lo, hi := -cfg.Range-cfg.Speed-eps, cfg.Range+cfg.Speed+eps
		for i := 0; i < 20000; i++ {
			st = Step(cfg, st)
			if st.Phase < lo || st.Phase > hi {
				t.Fatalf("cfg %+v tick %d: phase %v outside [%v, %v]", cfg, i, st.Phase, lo, hi)
			}
		}
	}
}

func TestStepFlipsOncePerCrossing(t *testing.T) {
	cfg := DefaultConfig()
	st := NewState()
	flips := 0
	outside := false
	for i := 0; i < 2000; i++ {
		prev := st.Direction
		st = Step(cfg, st)
		if st.Direction != prev {
			flips++
			if outside {
				t.Fatalf("tick %d: flipped again while still past the boundary", i)
			}
		}
		outside = st.Phase >= cfg.Range || st.Phase <= -cfg.Range
	}
	// 2000 ticks of 0.015 travel 30 units; the first crossing is 2 units out, then every 4.
	if flips != 7 {
		t.Errorf("flips = %d, want 7", flips)
	}
}

func TestStepNormalizesDirection(t *testing.T) {
	cfg := DefaultConfig()
	if st := Step(cfg, State{}); st.Direction != 1 || !near(st.Phase, cfg.Speed) {
		t.Errorf("zero direction stepped to %+v", st)
	}
	if st := Step(cfg, State{Direction: -5}); st.Direction != -1 || !near(st.Phase, -cfg.Speed) {
		t.Errorf("negative direction stepped to %+v", st)
	}
}

func TestLegLiftIgnoresPhase(t *testing.T) {
	cfg := DefaultConfig()
	for _, elapsed := range []float32{0, 0.5, 1, 3.7, 10} {
		want := math32.Sin(1.5*elapsed) * 0.5
		for _, phase := range []float32{-2, 0, 1.3} {
			got := Evaluate(cfg, State{Phase: phase, Direction: 1}, elapsed).LegLift
			if !near(got, want) {
				t.Errorf("LegLift(t=%v, phase=%v) = %v, want %v", elapsed, phase, got, want)
			}
		}
	}
}

func TestAnimatorTick(t *testing.T) {
	a := NewAnimator(DefaultConfig())
	if _, ok := a.Tick(1); ok {
		t.Fatalf("tick without a target reported work")
	}
	if a.State().Phase != 0 {
		t.Fatalf("state advanced without a target")
	}

	group := scene.NewGroup("penguin")
	body := scene.NewNode("body", scene.WithRole(scene.RoleMesh), scene.WithPosition(ms3.Vec{Y: 0.4}))
	leg := scene.NewNode("foot", scene.WithRole(scene.RoleLeg), scene.WithPosition(ms3.Vec{Y: 0.4}))
	body.Add(leg)
	group.Add(body)
	a.SetTarget(group)

	pose, ok := a.Tick(1)
	if !ok {
		t.Fatalf("tick with a target reported no work")
	}
	if group.Position.X != pose.LateralOffset || group.Rotation.Z != pose.BodyTilt {
		t.Errorf("group transform = %+v/%+v, pose = %+v", group.Position, group.Rotation, pose)
	}
	if !near(leg.Position.Y, math32.Sin(1.5)*0.5) {
		t.Errorf("leg y = %v", leg.Position.Y)
	}
	if body.Position.Y != 0.4 {
		t.Errorf("non-leg mesh moved to y = %v", body.Position.Y)
	}
}

func TestAnimatorTickNestedLegsWithoutAllocating(t *testing.T) {
	group := scene.NewGroup("penguin")
	body := scene.NewNode("body", scene.WithRole(scene.RoleMesh))
	hip := scene.NewGroup("hip")
	left := scene.NewNode("left_leg", scene.WithRole(scene.RoleLeg))
	right := scene.NewNode("right_leg", scene.WithRole(scene.RoleLeg))
	hip.Add(left)
	hip.Add(right)
	body.Add(hip)
	group.Add(body)

	a := NewAnimator(DefaultConfig())
	a.SetTarget(group)

	elapsed := float32(0)
	allocs := testing.AllocsPerRun(100, func() {
		elapsed += 0.1
		a.Tick(elapsed)
	})
	if allocs != 0 {
		t.Errorf("Tick allocated %v times per frame", allocs)
	}
	want := Evaluate(a.Config(), a.State(), elapsed).LegLift
	for _, leg := range []*scene.Node{left, right} {
		if leg.Position.Y != want {
			t.Errorf("%s y = %v, want %v", leg.Name, leg.Position.Y, want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		cfg Config
		ok  bool
	}{
		{DefaultConfig(), true},
		{Config{Speed: 0, Range: 2}, false},
		{Config{Speed: 0.1, Range: -1}, false},
		{Config{Speed: 3, Range: 2}, false},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); (err == nil) != tt.ok {
			t.Errorf("Validate(%+v) = %v, want ok=%v", tt.cfg, err, tt.ok)
		}
	}
}
