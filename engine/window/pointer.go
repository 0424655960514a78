package window

// DefaultClickSlop is how far, in pixels along either axis, the cursor may travel between
// press and release for the gesture to still count as a click.
const DefaultClickSlop = 4

// PointerTracker turns raw press, move and release events for one button into click and
// drag gestures. A press that travels more than the slop becomes a drag and never clicks.
// Drag deltas are reported for every move while the button is held.
type PointerTracker struct {
	// OnClick is called on release when the gesture stayed within the slop.
	OnClick func(x, y int32)
	// OnDrag is called with the cursor delta for each move while pressed.
	OnDrag func(dx, dy int32)

	slop     int32
	pressed  bool
	dragging bool
	startX   int32
	startY   int32
	lastX    int32
	lastY    int32
}

// NewPointerTracker creates a tracker with the given click slop. A negative slop uses
// DefaultClickSlop.
//
// Parameters:
//   - slop: maximum travel in pixels for a click
//
// Returns:
//   - *PointerTracker: the tracker
func NewPointerTracker(slop int32) *PointerTracker {
	if slop < 0 {
		slop = DefaultClickSlop
	}
	return &PointerTracker{slop: slop}
}

// Pressed reports whether the button is currently held.
func (p *PointerTracker) Pressed() bool { return p.pressed }

// Down records a button press at (x, y).
func (p *PointerTracker) Down(x, y int32) {
	p.pressed = true
	p.dragging = false
	p.startX, p.startY = x, y
	p.lastX, p.lastY = x, y
}

// Move records cursor movement. It is ignored while the button is up.
func (p *PointerTracker) Move(x, y int32) {
	if !p.pressed {
		return
	}
	if abs32(x-p.startX) > p.slop || abs32(y-p.startY) > p.slop {
		p.dragging = true
	}
	dx, dy := x-p.lastX, y-p.lastY
	p.lastX, p.lastY = x, y
	if (dx != 0 || dy != 0) && p.OnDrag != nil {
		p.OnDrag(dx, dy)
	}
}

// Up records a button release at (x, y) and fires OnClick if the gesture was a click.
func (p *PointerTracker) Up(x, y int32) {
	if !p.pressed {
		return
	}
	p.Move(x, y)
	p.pressed = false
	if !p.dragging && p.OnClick != nil {
		p.OnClick(x, y)
	}
}

// scaleToFramebuffer maps a cursor position in window coordinates onto a framebuffer of a
// possibly different size. A zero-sized window, as when minimized, leaves it unscaled.
func scaleToFramebuffer(x, y float64, winW, winH, fbW, fbH int) (int32, int32) {
	if winW <= 0 || winH <= 0 {
		return int32(x), int32(y)
	}
	return int32(x * float64(fbW) / float64(winW)), int32(y * float64(fbH) / float64(winH))
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
