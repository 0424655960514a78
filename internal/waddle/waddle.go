// Package waddle animates the penguin's walk: a triangle-wave sway with body tilt, plus a
// separate time-based leg lift.
package waddle

import (
	"errors"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-waddle/engine/scene"
)

// Config holds the animation constants. It is passed by value and never changed after
// the animator is built.
type Config struct {
	// Speed is how far the phase moves per tick.
	Speed float32 `json:"speed"`
	// Range is the reflecting boundary: the phase turns around at ±Range.
	Range float32 `json:"range"`
	// TiltAmount scales the body tilt in radians.
	TiltAmount float32 `json:"tilt_amount"`
	// LiftAmount scales the leg lift in world units.
	LiftAmount float32 `json:"lift_amount"`
	// LegFrequency is the leg oscillator's angular frequency in radians per second.
	LegFrequency float32 `json:"leg_frequency"`
}

// DefaultConfig returns the stock waddle.
func DefaultConfig() Config {
	return Config{
		Speed:        0.015,
		Range:        2,
		TiltAmount:   0.2,
		LiftAmount:   0.5,
		LegFrequency: 1.5,
	}
}

// Validate reports whether the constants describe a usable oscillator.
func (c Config) Validate() error {
	switch {
	case c.Speed <= 0:
		return errors.New("waddle: speed must be positive")
	case c.Range <= 0:
		return errors.New("waddle: range must be positive")
	case c.Speed >= c.Range:
		return errors.New("waddle: speed must be smaller than range")
	}
	return nil
}

// State is the mutable part of the sway oscillator.
type State struct {
	Phase float32
	// Direction is +1 or -1.
	Direction int
}

// NewState returns the resting state: phase 0 moving in the positive direction.
func NewState() State {
	return State{Direction: 1}
}

// Pose is what one tick produces for the renderer.
type Pose struct {
	LateralOffset float32
	BodyTilt      float32
	LegLift       float32
}

// Step advances the oscillator by one tick. The boundary is checked after the increment,
// so the phase can overshoot ±Range by at most one step before it turns around.
//
// Parameters:
//   - cfg: animation constants
//   - st: the current state
//
// Returns:
//   - State: the next state
func Step(cfg Config, st State) State {
	if st.Direction >= 0 {
		st.Direction = 1
	} else {
		st.Direction = -1
	}
	st.Phase += cfg.Speed * float32(st.Direction)
	if st.Phase >= cfg.Range || st.Phase <= -cfg.Range {
		st.Direction = -st.Direction
	}
	return st
}

// Evaluate computes the pose for a state. The leg lift depends only on elapsed time, so
// legs and sway are not phase-locked.
//
// Parameters:
//   - cfg: animation constants
//   - st: the oscillator state
//   - elapsed: seconds since the animation started
//
// Returns:
//   - Pose: the pose outputs
func Evaluate(cfg Config, st State, elapsed float32) Pose {
	return Pose{
		LateralOffset: st.Phase,
		BodyTilt:      math32.Sin(st.Phase*math32.Pi) * cfg.TiltAmount,
		LegLift:       math32.Sin(elapsed*cfg.LegFrequency) * cfg.LiftAmount,
	}
}

// Animator applies the waddle to a target group once per frame.
// It is driven from the frame loop and is not safe for concurrent use.
type Animator struct {
	cfg    Config
	state  State
	target *scene.Node
}

// NewAnimator creates an animator with no target.
//
// Parameters:
//   - cfg: animation constants
//
// Returns:
//   - *Animator: the animator
func NewAnimator(cfg Config) *Animator {
	return &Animator{cfg: cfg, state: NewState()}
}

// Config returns the animation constants.
func (a *Animator) Config() Config { return a.cfg }

// State returns the current oscillator state.
func (a *Animator) State() State { return a.state }

// Target returns the animated group, or nil before one is set.
func (a *Animator) Target() *scene.Node { return a.target }

// SetTarget sets the group to animate. Ticks before this are no-ops.
func (a *Animator) SetTarget(n *scene.Node) { a.target = n }

// Tick advances the oscillator and writes the pose onto the target: the group's X
// position and Z rotation, and the Y position of every RoleLeg descendant.
//
// Parameters:
//   - elapsed: seconds since the frame loop started
//
// Returns:
//   - Pose: the applied pose
//   - bool: false if there is no target yet and nothing changed
func (a *Animator) Tick(elapsed float32) (Pose, bool) {
	if a.target == nil {
		return Pose{}, false
	}
	a.state = Step(a.cfg, a.state)
	pose := Evaluate(a.cfg, a.state, elapsed)

	a.target.Position.X = pose.LateralOffset
	a.target.Rotation.Z = pose.BodyTilt
	a.target.Traverse(func(n *scene.Node) {
		if n.Role == scene.RoleLeg {
			n.Position.Y = pose.LegLift
		}
	})
	return pose, true
}
