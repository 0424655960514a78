package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/common"
)

// polarEpsilon keeps the polar angle off the poles where the look-at basis degenerates.
const polarEpsilon = 1e-6

// cameraControllerImpl is the orbit implementation of CameraController.
// Position is always target + spherical(radius, azimuth, polar).
type cameraControllerImpl struct {
	mu *sync.Mutex

	target   ms3.Vec
	position ms3.Vec

	// Spherical coordinates of position relative to target
	radius  float32
	azimuth float32 // around Y, from +Z toward +X
	polar   float32 // from +Y

	// Pending motion
	deltaAzimuth float32
	deltaPolar   float32
	scale        float32

	// Constraints
	minRadius float32
	maxRadius float32
	minPolar  float32
	maxPolar  float32

	dampingFactor float32 // 0 disables damping
	rotateSpeed   float32
	zoomSpeed     float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new orbit controller with sensible defaults:
// camera on +Z at distance 10 from the origin, damping disabled.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:          &sync.Mutex{},
		radius:      10,
		polar:       math32.Pi / 2,
		scale:       1,
		minRadius:   0,
		maxRadius:   math32.Inf(1),
		minPolar:    0,
		maxPolar:    math32.Pi,
		rotateSpeed: 1,
		zoomSpeed:   1,
	}

	for _, option := range options {
		option(cc)
	}

	cc.clamp()
	cc.updatePosition()
	return cc
}

// NewOrbitController is an alias of NewCameraController.
func NewOrbitController(options ...CameraControllerOption) CameraController {
	return NewCameraController(options...)
}

// --- internal helpers ---

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	sinPolar := math32.Sin(cc.polar)
	cc.position = ms3.Add(cc.target, ms3.Vec{
		X: cc.radius * sinPolar * math32.Sin(cc.azimuth),
		Y: cc.radius * math32.Cos(cc.polar),
		Z: cc.radius * sinPolar * math32.Cos(cc.azimuth),
	})
}

// setFromOffset derives spherical coordinates from a target-relative offset.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) setFromOffset(offset ms3.Vec) {
	cc.radius = ms3.Norm(offset)
	if cc.radius == 0 {
		cc.azimuth, cc.polar = 0, math32.Pi/2
		return
	}
	cc.azimuth = math32.Atan2(offset.X, offset.Z)
	cc.polar = math32.Acos(common.Clamp(offset.Y/cc.radius, -1, 1))
}

// clamp enforces the radius and polar constraints. Caller must hold the mutex.
func (cc *cameraControllerImpl) clamp() {
	lo := max(cc.minPolar, polarEpsilon)
	hi := min(cc.maxPolar, math32.Pi-polarEpsilon)
	cc.polar = common.Clamp(cc.polar, lo, hi)
	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
}

// --- CameraController methods ---

func (cc *cameraControllerImpl) Position() ms3.Vec {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() ms3.Vec {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(t ms3.Vec) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = t
	cc.updatePosition()
}

func (cc *cameraControllerImpl) SetPosition(p ms3.Vec) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setFromOffset(ms3.Sub(p, cc.target))
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Rotate(left, up float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.deltaAzimuth -= left
	cc.deltaPolar -= up
}

func (cc *cameraControllerImpl) Drag(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	cc.mu.Lock()
	speed := cc.rotateSpeed
	cc.mu.Unlock()
	cc.Rotate(2*math32.Pi*dx/viewportHeight*speed, 2*math32.Pi*dy/viewportHeight*speed)
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	if delta == 0 {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	step := math32.Pow(0.95, cc.zoomSpeed*math32.Abs(delta))
	if delta > 0 {
		cc.scale *= step
	} else {
		cc.scale /= step
	}
}

func (cc *cameraControllerImpl) Update() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	before := cc.position
	if cc.dampingFactor > 0 {
		cc.azimuth += cc.deltaAzimuth * cc.dampingFactor
		cc.polar += cc.deltaPolar * cc.dampingFactor
		cc.deltaAzimuth *= 1 - cc.dampingFactor
		cc.deltaPolar *= 1 - cc.dampingFactor
	} else {
		cc.azimuth += cc.deltaAzimuth
		cc.polar += cc.deltaPolar
		cc.deltaAzimuth, cc.deltaPolar = 0, 0
	}
	cc.radius *= cc.scale
	cc.scale = 1

	cc.clamp()
	cc.updatePosition()
	return ms3.Norm(ms3.Sub(cc.position, before)) > 1e-6
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Polar() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.polar
}

func (cc *cameraControllerImpl) DampingFactor() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dampingFactor
}
