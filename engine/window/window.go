package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Window is a GLFW window with no client API, presented through a WebGPU surface.
// Escape closes it. Mouse input is reported in framebuffer pixels with the origin at the
// top left, the same units as Width and Height, which is what the pick handler expects.
type Window interface {
	// SetUpdateCallback sets the function run once per message loop iteration, after
	// events are polled. Nil disables it.
	SetUpdateCallback(callback func())

	// SetResizeCallback receives the new framebuffer size in pixels.
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback receives the vertical wheel delta; positive is away from the user.
	SetScrollCallback(callback func(delta float32))

	// SetMouseDownCallback and SetMouseUpCallback receive the button and cursor position.
	SetMouseDownCallback(callback func(button MouseButton, x, y int32))
	SetMouseUpCallback(callback func(button MouseButton, x, y int32))

	// SetMouseMoveCallback receives the cursor position.
	SetMouseMoveCallback(callback func(x, y int32))

	// SurfaceDescriptor describes the native window for wgpu surface creation.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil once closed
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is open and no close was requested.
	IsRunning() bool

	// RequestClose stops the message loop after the current iteration. The window stays
	// allocated until Close.
	RequestClose()

	// Close destroys the window and shuts GLFW down.
	//
	// Returns:
	//   - error: error if the window was never spawned or is already closed
	Close() error

	// ProcessMessages polls events and runs the update callback until the window closes.
	ProcessMessages()

	// Width and Height return the framebuffer size in pixels.
	Width() int
	Height() int
}

type engineWindow struct {
	title string

	// size limits apply only when resizable
	minWidth, minHeight int
	maxWidth, maxHeight int
	resizable           bool

	// width and height track the framebuffer, not the window, so they are in pixels
	width, height int

	// internalWindow is the *glfwWindow once spawned
	internalWindow any

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(delta float32)
	onMouseDown func(button MouseButton, x, y int32)
	onMouseUp   func(button MouseButton, x, y int32)
	onMouseMove func(x, y int32)
}

var _ Window = &engineWindow{}

// NewWindow applies options over the defaults and spawns the window. It panics if GLFW
// cannot create one.
//
// Parameters:
//   - options: window builder options
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "oxy-waddle",
		maxWidth:  1600,
		maxHeight: 1200,
		minWidth:  600,
		minHeight: 200,
		width:     1280,
		height:    720,
		resizable: true,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(button MouseButton, x, y int32)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button MouseButton, x, y int32)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for platformProcessMessages(w) {
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
