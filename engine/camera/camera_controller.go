package camera

import "github.com/soypat/geometry/ms3"

// CameraController owns the camera's positional state. The camera reads position and
// target from the controller and computes view/projection matrices.
//
// Input methods (Rotate, Drag, Zoom) accumulate pending motion; Update applies it.
// With damping enabled only a fraction of the pending rotation is applied per Update and
// the remainder decays, so the camera glides to a stop after input ends.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - ms3.Vec: world-space camera position
	Position() ms3.Vec

	// Target returns the orbit pivot / look-at point.
	//
	// Returns:
	//   - ms3.Vec: world-space target position
	Target() ms3.Vec

	// SetTarget moves the pivot point, keeping the current offset to the camera.
	//
	// Parameters:
	//   - t: world-space target
	SetTarget(t ms3.Vec)

	// SetPosition places the camera and re-derives the orbit angles and radius from the
	// offset to the target.
	//
	// Parameters:
	//   - p: world-space camera position
	SetPosition(p ms3.Vec)

	// Rotate queues an orbit by the given angles.
	//
	// Parameters:
	//   - left: radians to orbit left around the vertical axis
	//   - up: radians to orbit upward toward the pole
	Rotate(left, up float32)

	// Drag queues an orbit from a pointer drag. A drag across the full viewport height
	// orbits one full turn, scaled by RotateSpeed.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	//   - viewportHeight: viewport height in pixels
	Drag(dx, dy, viewportHeight float32)

	// Zoom queues a dolly. Positive delta moves toward the target.
	//
	// Parameters:
	//   - delta: scroll amount (one notch is typically 1)
	Zoom(delta float32)

	// Update applies pending motion.
	//
	// Returns:
	//   - bool: true if the camera position changed
	Update() bool

	// Radius returns the current distance from the target.
	//
	// Returns:
	//   - float32: orbit radius
	Radius() float32

	// Azimuth returns the angle around the vertical axis, measured from +Z toward +X.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Polar returns the angle from the +Y axis.
	//
	// Returns:
	//   - float32: polar angle in radians
	Polar() float32

	// DampingFactor returns the fraction of pending rotation applied per Update, or 0
	// when damping is disabled.
	//
	// Returns:
	//   - float32: damping factor
	DampingFactor() float32
}
