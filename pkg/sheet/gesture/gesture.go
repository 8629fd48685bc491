// Package gesture interprets pointer press/move/release sequences on a
// bottom sheet and reduces them to drag distances, release velocities and
// open/close outcomes.
//
// The package is headless: positions are float64 units along the vertical
// axis and time is passed in explicitly, so the machine can be driven by
// terminal mouse events, synthetic tests, or any other pointer source.
package gesture

import (
	"math"
	"time"
)

// Tuned gesture constants. The velocity threshold and suppression windows
// are empirical; changing them changes gesture feel without a correctness
// signal to validate against.
const (
	// VelocityThreshold is the release velocity (units/ms) above which a
	// downward flick closes the sheet regardless of distance.
	VelocityThreshold = 0.4

	// DefaultCloseThreshold is the fraction of the sheet height a drag
	// must cover for a slow release to close.
	DefaultCloseThreshold = 0.25

	// DefaultScrollLockTimeout is how long dragging stays blocked after
	// the sheet content was scrolled.
	DefaultScrollLockTimeout = 100 * time.Millisecond

	// DragSuppressionWindow disables dragging right after the sheet
	// opened or snapped, so finish-of-animation jitter and inertial
	// scrolling don't start a gesture.
	DragSuppressionWindow = 500 * time.Millisecond

	// JustReleasedWindow suppresses focus side effects right after a
	// fast release.
	JustReleasedWindow = 200 * time.Millisecond
)

// Node is one element in the ancestor chain between a drag target and the
// sheet panel. It abstracts the host's widget tree so the drag permission
// walk can run against synthetic trees in tests.
type Node interface {
	// Scrollable reports whether the node has more content than fits its
	// visible area.
	Scrollable() bool
	// ScrollTop returns how far the node is scrolled from its top.
	ScrollTop() float64
	// Dialog reports whether the node is the sheet's own content root.
	Dialog() bool
	// Parent returns the enclosing node, or nil at the root.
	Parent() Node
}

// State is the gesture machine state.
type State uint8

const (
	// StateIdle means no pointer is down.
	StateIdle State = iota
	// StatePressed means a pointer is down but movement has not been
	// permitted yet.
	StatePressed
	// StateDragging means the sheet is tracking the pointer.
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "StateIdle"
	case StatePressed:
		return "StatePressed"
	case StateDragging:
		return "StateDragging"
	default:
		return "State(invalid)"
	}
}

// Outcome is the decision for a released drag on a sheet without snap
// points.
type Outcome uint8

const (
	// OutcomeNone means the measurements were degenerate and nothing
	// should change.
	OutcomeNone Outcome = iota
	// OutcomeReset animates the sheet back to fully open.
	OutcomeReset
	// OutcomeClose dismisses the sheet.
	OutcomeClose
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "OutcomeNone"
	case OutcomeReset:
		return "OutcomeReset"
	case OutcomeClose:
		return "OutcomeClose"
	default:
		return "Outcome(invalid)"
	}
}

// Result captures the measurements of a completed gesture.
type Result struct {
	// Distance is startY-endY: positive for upward (opening) drags,
	// negative for downward (closing) drags.
	Distance float64
	// Velocity is |Distance| divided by the gesture duration in
	// milliseconds.
	Velocity float64
	// Duration is the wall time between press and release.
	Duration time.Duration
}

// Drag is the pointer state machine for one sheet. The zero value is
// usable; ScrollLockTimeout defaults when zero.
type Drag struct {
	state    State
	startY   float64
	currentY float64
	start    time.Time

	// allowed is the sticky per-gesture permission: once any move in a
	// gesture passes the permission test, the rest of the gesture drags.
	allowed bool

	openedAt          time.Time
	lastDragPrevented time.Time
	justReleasedAt    time.Time

	// swipe mirrors the sheet's current translate so the scroll-lock
	// cooldown only applies while the sheet hasn't visibly moved.
	swipe float64

	// ScrollLockTimeout overrides the post-scroll drag cooldown. Zero
	// means DefaultScrollLockTimeout.
	ScrollLockTimeout time.Duration
}

// State reports the current machine state.
func (d *Drag) State() State {
	return d.state
}

// Dragging reports whether a gesture is actively tracking the pointer.
func (d *Drag) Dragging() bool {
	return d.state == StateDragging
}

// MarkOpened restarts the recent-open suppression window. Call it when
// the sheet finishes opening and when it snaps to the most-open point.
func (d *Drag) MarkOpened(now time.Time) {
	d.openedAt = now
}

// MarkScrolled records that the sheet content scrolled, blocking drags
// for the scroll-lock cooldown.
func (d *Drag) MarkScrolled(now time.Time) {
	d.lastDragPrevented = now
}

// SetSwipe mirrors the sheet's current translate into the machine. The
// scroll-lock cooldown only blocks while the sheet hasn't moved yet.
func (d *Drag) SetSwipe(amount float64) {
	d.swipe = amount
}

// Press starts a gesture at y. It returns false while another gesture is
// still in progress.
func (d *Drag) Press(y float64, now time.Time) bool {
	if d.state != StateIdle {
		return false
	}
	d.state = StatePressed
	d.startY = y
	d.currentY = y
	d.start = now
	d.allowed = false
	return true
}

// Move advances the gesture to y. It returns the signed drag distance
// (positive = upward) and whether the sheet is permitted to follow the
// pointer. target is the node under the pointer, hasSelection reports a
// non-empty text selection in the host.
func (d *Drag) Move(y float64, now time.Time, target Node, hasSelection bool) (dist float64, ok bool) {
	if d.state == StateIdle {
		return 0, false
	}
	d.currentY = y
	dist = d.startY - y
	if !d.allowed {
		if !d.shouldDrag(target, dist < 0, hasSelection, now) {
			return 0, false
		}
		d.allowed = true
	}
	d.state = StateDragging
	return dist, true
}

// Release ends the gesture at y and returns its measurements. Calling it
// without a gesture in progress returns ok=false.
func (d *Drag) Release(y float64, now time.Time) (Result, bool) {
	if d.state == StateIdle {
		return Result{}, false
	}
	wasDragging := d.state == StateDragging
	d.state = StateIdle
	d.allowed = false
	d.justReleasedAt = now

	if !wasDragging {
		return Result{}, false
	}
	dist := d.startY - y
	elapsed := now.Sub(d.start)
	velocity := math.NaN()
	if elapsed > 0 {
		velocity = math.Abs(dist) / (float64(elapsed) / float64(time.Millisecond))
	}
	return Result{Distance: dist, Velocity: velocity, Duration: elapsed}, true
}

// Cancel aborts the gesture without producing a result.
func (d *Drag) Cancel() {
	d.state = StateIdle
	d.allowed = false
}

// JustReleased reports whether a release happened within the last
// JustReleasedWindow, used to suppress unintended focus right after a
// fast gesture.
func (d *Drag) JustReleased(now time.Time) bool {
	return !d.justReleasedAt.IsZero() && now.Sub(d.justReleasedAt) < JustReleasedWindow
}

// shouldDrag is the drag permission test. Once it passes for any move in
// a gesture, permission is sticky until release.
func (d *Drag) shouldDrag(target Node, draggingDown, hasSelection bool, now time.Time) bool {
	// Right after opening or snapping the pointer is likely finishing an
	// inertial scroll, not starting a drag.
	if !d.openedAt.IsZero() && now.Sub(d.openedAt) < DragSuppressionWindow {
		return false
	}
	// Let the user select text without moving the sheet.
	if hasSelection {
		return false
	}
	// Content was scrolled a moment ago and the sheet hasn't moved:
	// keep the gesture with the scroll.
	timeout := d.ScrollLockTimeout
	if timeout == 0 {
		timeout = DefaultScrollLockTimeout
	}
	if !d.lastDragPrevented.IsZero() && now.Sub(d.lastDragPrevented) < timeout && d.swipe == 0 {
		d.lastDragPrevented = now
		return false
	}
	// Walk up from the target: an inner scrollable region that isn't at
	// its top owns the gesture; the sheet's own content root claims it.
	for n := target; n != nil; n = n.Parent() {
		if n.Scrollable() && n.ScrollTop() > 0 {
			d.lastDragPrevented = now
			return false
		}
		if n.Dialog() {
			return true
		}
	}
	return true
}

// Decide resolves a released drag for a sheet without snap points.
// drawerHeight is the visible sheet height and closeThreshold the
// configured close fraction (zero means the default).
func Decide(r Result, drawerHeight, closeThreshold float64) Outcome {
	if closeThreshold == 0 {
		closeThreshold = DefaultCloseThreshold
	}
	// Degenerate measurements (collapsed touch points, zero-length
	// gestures) are not a meaningful gesture.
	if math.IsNaN(r.Distance) || math.IsNaN(r.Velocity) || r.Distance == 0 {
		return OutcomeNone
	}
	// A drag toward open never closes.
	if r.Distance > 0 {
		return OutcomeReset
	}
	// A flick closes regardless of distance.
	if r.Velocity > VelocityThreshold {
		return OutcomeClose
	}
	if drawerHeight > 0 && math.Abs(r.Distance) >= closeThreshold*drawerHeight {
		return OutcomeClose
	}
	return OutcomeReset
}
