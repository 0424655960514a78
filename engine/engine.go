// Package engine drives the single-threaded frame loop: it polls the window, runs work
// posted from other goroutines, calls the per-frame callback and renders the scene.
package engine

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-waddle/engine/profiler"
	"github.com/Carmen-Shannon/oxy-waddle/engine/scene"
	"github.com/Carmen-Shannon/oxy-waddle/engine/window"
)

// engine implements the Engine interface.
type engine struct {
	mu    sync.Mutex
	queue []func()

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window  window.Window
	scene   scene.Scene
	pointer *window.PointerTracker

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback func(elapsed, delta float32)
	clickCallback func(x, y int32)

	start     time.Time
	lastFrame time.Time
	lastErr   string

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It owns the frame loop and is the only place the scene graph is mutated from.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil for a headless engine
	Window() window.Window

	// Scene returns the scene rendered each frame.
	//
	// Returns:
	//   - scene.Scene: the scene, or nil
	Scene() scene.Scene

	// SetScene replaces the scene rendered each frame.
	//
	// Parameters:
	//   - s: the scene
	SetScene(s scene.Scene)

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameCallback registers the function called once per frame, after posted work has
	// run and before the scene renders.
	//
	// Parameters:
	//   - callback: receives seconds since Run started and seconds since the previous frame
	SetFrameCallback(callback func(elapsed, delta float32))

	// SetClickCallback registers the function called when the left button is pressed and
	// released without dragging.
	//
	// Parameters:
	//   - callback: receives the cursor position in framebuffer pixels
	SetClickCallback(callback func(x, y int32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Post schedules fn to run on the frame loop at the start of the next frame. It is safe
	// to call from any goroutine; functions run in the order they were posted.
	//
	// Parameters:
	//   - fn: the work to run
	Post(fn func())

	// Run starts the frame loop on the calling goroutine and blocks until the window
	// closes or Quit is called. It must be called from the goroutine that created the window.
	Run()

	// Quit stops the frame loop after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// When a window is configured, its resize, mouse and scroll events are wired to the scene's
// renderer and camera.
//
// Parameters:
//   - options: functional options for engine configuration (window, scene, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		profiler:    profiler.NewProfiler(),
		pointer:     window.NewPointerTracker(window.DefaultClickSlop),
	}

	for _, opt := range options {
		opt(e)
	}

	e.pointer.OnClick = e.click
	e.pointer.OnDrag = e.drag
	if e.window != nil {
		e.bindWindow()
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) SetScene(s scene.Scene) {
	e.scene = s
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(elapsed, delta float32)) {
	e.frameCallback = callback
}

func (e *engine) SetClickCallback(callback func(x, y int32)) {
	e.clickCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Post(fn func()) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.queue = append(e.queue, fn)
	e.mu.Unlock()
}

func (e *engine) Run() {
	if e.window == nil {
		panic("engine: Run requires a window")
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame loop recovered from panic: %v", r)
		}
		e.Quit()
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] close window: %v", err)
		}
	}()

	e.start = time.Now()
	e.lastFrame = e.start
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			e.window.RequestClose()
			return
		default:
		}
		e.frame(time.Now())
	})
	e.window.ProcessMessages()
}

// Quit signals the frame loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// frame runs one iteration of the loop after window events have been polled:
// drain posted work, advance time, call the frame callback, render, then profile.
func (e *engine) frame(now time.Time) {
	e.drain()

	if e.start.IsZero() {
		e.start, e.lastFrame = now, now
	}
	elapsed := float32(now.Sub(e.start).Seconds())
	delta := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	if e.frameCallback != nil {
		e.frameCallback(elapsed, delta)
	}

	if s := e.scene; s != nil && s.Active() {
		if cam := s.Camera(); cam != nil {
			cam.Update()
		}
		e.report(s.Render())
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// drain runs everything posted before the call. Work posted while draining waits for the
// next frame.
func (e *engine) drain() {
	e.mu.Lock()
	pending := e.queue
	e.queue = nil
	e.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// report logs a render error once until a different error (or success) occurs.
func (e *engine) report(err error) {
	if err == nil || errors.Is(err, scene.ErrNoRenderer) {
		e.lastErr = ""
		return
	}
	if msg := err.Error(); msg != e.lastErr {
		log.Printf("[Engine] render: %v", err)
		e.lastErr = msg
	}
}

// bindWindow wires window events into the engine. The callbacks run inside PollEvents,
// which is on the frame loop goroutine.
func (e *engine) bindWindow() {
	e.window.SetResizeCallback(e.resize)
	e.window.SetMouseDownCallback(func(b window.MouseButton, x, y int32) {
		if b == window.MouseButtonLeft {
			e.pointer.Down(x, y)
		}
	})
	e.window.SetMouseUpCallback(func(b window.MouseButton, x, y int32) {
		if b == window.MouseButtonLeft {
			e.pointer.Up(x, y)
		}
	})
	e.window.SetMouseMoveCallback(e.pointer.Move)
	e.window.SetScrollCallback(e.scroll)
}

func (e *engine) resize(width, height int) {
	if e.scene == nil || width <= 0 || height <= 0 {
		return
	}
	if r := e.scene.Renderer(); r != nil {
		r.Resize(width, height)
	}
	if c := e.scene.Camera(); c != nil {
		c.SetAspect(float32(width) / float32(height))
	}
}

func (e *engine) click(x, y int32) {
	if e.clickCallback != nil {
		e.clickCallback(x, y)
	}
}

func (e *engine) drag(dx, dy int32) {
	if e.scene == nil || e.scene.Camera() == nil || e.window == nil {
		return
	}
	if ctrl := e.scene.Camera().Controller(); ctrl != nil {
		ctrl.Drag(float32(dx), float32(dy), float32(e.window.Height()))
	}
}

func (e *engine) scroll(delta float32) {
	if e.scene == nil || e.scene.Camera() == nil {
		return
	}
	if ctrl := e.scene.Camera().Controller(); ctrl != nil {
		ctrl.Zoom(delta)
	}
}
