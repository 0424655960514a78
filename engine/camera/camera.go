package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"

	"github.com/Carmen-Shannon/oxy-waddle/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	up ms3.Vec

	fov    float32
	aspect float32
	near   float32
	far    float32

	position ms3.Vec

	viewMatrix                  common.Mat4
	projectionMatrix            common.Mat4
	viewProjectionMatrix        common.Mat4
	inverseViewProjectionMatrix common.Mat4

	controller CameraController
}

// Camera defines the interface for a perspective camera.
// The camera holds perspective settings and computes view/projection matrices
// from an attached CameraController each frame via Update().
type Camera interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Position returns the world-space camera position used by the current matrices.
	//
	// Returns:
	//   - ms3.Vec: the camera position
	Position() ms3.Vec

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - common.Mat4: the view matrix
	ViewMatrix() common.Mat4

	// ProjectionMatrix returns the current projection matrix.
	//
	// Returns:
	//   - common.Mat4: the projection matrix
	ProjectionMatrix() common.Mat4

	// ViewProjectionMatrix returns the current combined view-projection matrix.
	//
	// Returns:
	//   - common.Mat4: projection * view
	ViewProjectionMatrix() common.Mat4

	// InverseViewProjectionMatrix returns the inverse of the view-projection matrix.
	// Used to unproject screen points into world rays and by the skybox shader.
	//
	// Returns:
	//   - common.Mat4: the inverse view-projection matrix
	InverseViewProjectionMatrix() common.Mat4

	// Ray returns the world-space ray through a point in normalized device coordinates.
	//
	// Parameters:
	//   - ndcX: horizontal coordinate in [-1, 1], left to right
	//   - ndcY: vertical coordinate in [-1, 1], bottom to top
	//
	// Returns:
	//   - origin: the ray origin (the camera position)
	//   - dir: the unit ray direction
	Ray(ndcX, ndcY float32) (origin, dir ms3.Vec)

	// Controller returns the attached CameraController, or nil.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// Update advances the attached controller one step, then recomputes matrices from
	// its position and target. Should be called once per frame.
	// If no controller is attached, only the matrices are recomputed.
	Update()

	// SetFov sets the field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	// Non-positive values are ignored.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		up:       ms3.Vec{Y: 1},
		fov:      75 * (math32.Pi / 180),
		aspect:   1,
		near:     0.1,
		far:      100,
		position: ms3.Vec{Z: 1},
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Position() ms3.Vec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) ViewMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseViewProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseViewProjectionMatrix
}

func (c *cameraImpl) Ray(ndcX, ndcY float32) (origin, dir ms3.Vec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.inverseViewProjectionMatrix.TransformPoint(ms3.Vec{X: ndcX, Y: ndcY, Z: 0.5})
	d := ms3.Sub(p, c.position)
	if ms3.Norm(d) == 0 {
		return c.position, ms3.Vec{Z: -1}
	}
	return c.position, ms3.Unit(d)
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 || math32.IsInf(aspect, 0) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	ctrl := c.controller
	c.mu.Unlock()
	if ctrl != nil {
		ctrl.Update()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection, view-projection and inverse
// view-projection matrices. Position and target come from the controller when one is
// attached; otherwise the camera looks from its last position toward the origin.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	target := ms3.Vec{}
	if c.controller != nil {
		c.position = c.controller.Position()
		target = c.controller.Target()
	}

	c.viewMatrix = common.LookAt(c.position, target, c.up)
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul(c.viewMatrix)
	c.inverseViewProjectionMatrix, _ = c.viewProjectionMatrix.Invert()
}
