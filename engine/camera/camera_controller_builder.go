package camera

import (
	"github.com/soypat/geometry/ms3"
)

// CameraControllerOption is a functional option for configuring a camera controller.
type CameraControllerOption func(*cameraControllerImpl)

// WithTarget sets the orbit pivot point.
//
// Parameters:
//   - t: world-space target
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithTarget(t ms3.Vec) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = t
	}
}

// WithStartPosition places the camera; radius and angles are derived from the offset to
// the target. Apply after WithTarget.
//
// Parameters:
//   - p: world-space camera position
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithStartPosition(p ms3.Vec) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.setFromOffset(ms3.Sub(p, cc.target))
	}
}

// WithRadius sets the initial orbit radius.
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius = radius
	}
}

// WithAzimuth sets the initial angle around the vertical axis in radians.
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithPolar sets the initial angle from +Y in radians.
func WithPolar(polar float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.polar = polar
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithPolarBounds sets the allowed polar angle range in radians.
func WithPolarBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minPolar = min
		cc.maxPolar = max
	}
}

// WithDamping enables inertial damping. Each Update applies factor of the pending
// rotation and keeps (1 - factor) of it for the next frame. Values outside (0, 1] disable damping.
//
// Parameters:
//   - factor: damping factor, e.g. 0.1
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithDamping(factor float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if factor <= 0 || factor > 1 {
			factor = 0
		}
		cc.dampingFactor = factor
	}
}

// WithRotateSpeed sets the drag rotation multiplier.
func WithRotateSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the scroll zoom multiplier.
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}
