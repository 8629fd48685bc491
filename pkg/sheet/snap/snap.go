// Package snap computes resting positions for a bottom sheet with discrete
// snap points and decides where a released drag should settle.
//
// All positions are in abstract units measured from the top of the
// viewport: an offset of 0 means the sheet is fully open, an offset equal
// to the viewport height means it is fully off screen.
package snap

import (
	"fmt"
	"math"
)

// defaultHighVelocity is the release velocity (units/ms) above which a
// fling skips the closest-offset heuristic and moves one snap step in the
// drag direction. Empirically tuned; keep in sync with the gesture
// package's velocity threshold.
const defaultHighVelocity = 0.4

// Point is one resting height for the sheet, either a fraction of the
// viewport height or an absolute height in units.
type Point struct {
	value    float64
	absolute bool
}

// Fraction returns a snap point at f of the viewport height. f is clamped
// to [0, 1].
func Fraction(f float64) Point {
	return Point{value: clamp(f, 0, 1)}
}

// Absolute returns a snap point with a fixed height in units.
func Absolute(units float64) Point {
	return Point{value: math.Max(0, units), absolute: true}
}

// Resolve returns the point's height in units for the given viewport
// height.
func (p Point) Resolve(viewportHeight float64) float64 {
	if p.absolute {
		return p.value
	}
	return p.value * viewportHeight
}

func (p Point) String() string {
	if p.absolute {
		return fmt.Sprintf("%.0fu", p.value)
	}
	return fmt.Sprintf("%.0f%%", p.value*100)
}

// Engine tracks the configured snap points, their pixel offsets for the
// current viewport, and the active point.
type Engine struct {
	points   []Point
	fadeFrom int // index where backdrop fade begins, -1 when unset
	active   int
	offsets  []float64

	drawerHeight   float64
	viewportHeight float64

	// HighVelocity overrides the fling threshold. Zero means the default.
	HighVelocity float64
}

// New creates an engine for the given ordered points. Points are expected
// least-open first, most-open last. fadeFrom is the index at which the
// backdrop starts fading, or -1 when the backdrop should always track the
// drag. The initial active index is clamped into range.
func New(points []Point, fadeFrom, active int) *Engine {
	e := &Engine{points: points, fadeFrom: fadeFrom}
	if fadeFrom >= len(points) {
		e.fadeFrom = -1
	}
	e.active = clampIndex(active, len(points))
	return e
}

// Len returns the number of configured points.
func (e *Engine) Len() int {
	if e == nil {
		return 0
	}
	return len(e.points)
}

// SetDimensions recomputes per-point offsets against the current drawer
// and viewport heights. The last point always yields the smallest offset.
func (e *Engine) SetDimensions(drawerHeight, viewportHeight float64) {
	e.drawerHeight = drawerHeight
	e.viewportHeight = viewportHeight
	e.offsets = e.offsets[:0]
	for _, p := range e.points {
		height := math.Min(p.Resolve(viewportHeight), viewportHeight)
		e.offsets = append(e.offsets, viewportHeight-height)
	}
}

// Offsets returns the offsets computed by the last SetDimensions call, in
// point order.
func (e *Engine) Offsets() []float64 {
	out := make([]float64, len(e.offsets))
	copy(out, e.offsets)
	return out
}

// ActiveIndex returns the index of the active snap point.
func (e *Engine) ActiveIndex() int {
	return e.active
}

// ActiveOffset returns the offset of the active snap point.
func (e *Engine) ActiveOffset() float64 {
	if e.active < 0 || e.active >= len(e.offsets) {
		return 0
	}
	return e.offsets[e.active]
}

// SetActiveIndex moves the active point, clamping into range. It reports
// whether the sheet snapped to the last (most open) point, which callers
// use to restart the recent-open drag suppression window.
func (e *Engine) SetActiveIndex(i int) (snappedToLast bool) {
	e.active = clampIndex(i, len(e.points))
	return len(e.points) > 0 && e.active == len(e.points)-1
}

// ShouldFade reports whether backdrop opacity should track the drag at the
// current active point: always when no fade-from index is configured,
// otherwise only on the step immediately before it.
func (e *Engine) ShouldFade() bool {
	if e == nil || e.fadeFrom < 0 {
		return true
	}
	return e.active == e.fadeFrom-1
}

// PercentageDragged converts an absolute dragged distance into a 0..1
// progress value between the active offset and its neighbor in the drag
// direction. ok is false when no snap points are configured, in which case
// the caller falls back to whole-height progress.
func (e *Engine) PercentageDragged(absDist float64, draggingDown bool) (pct float64, ok bool) {
	if e.Len() == 0 || len(e.offsets) == 0 {
		return 0, false
	}
	// On the step before the fade index the backdrop only fades while
	// moving away from it.
	if e.fadeFrom >= 0 && e.active == e.fadeFrom-1 && !draggingDown {
		return 0, true
	}

	cur := e.ActiveOffset()
	var target float64
	if draggingDown {
		if e.active == 0 {
			// Below the lowest point the next rest is fully closed.
			target = e.viewportHeight
		} else {
			target = e.offsets[e.active-1]
		}
	} else {
		if e.active == len(e.offsets)-1 {
			// Overdrag past fully open; resistance is handled elsewhere.
			return 0, true
		}
		target = e.offsets[e.active+1]
	}

	span := math.Abs(target - cur)
	if span == 0 {
		return 0, true
	}
	return clamp(absDist/span, 0, 1), true
}

// Destination decides where a released drag settles. distMoved is positive
// for upward (opening) drags, velocity is |distance|/elapsed in units/ms.
// It returns the destination index, or dismiss=true when the gesture
// closes the sheet. Non-dismissible sheets treat the lowest point as a
// floor and never close.
func (e *Engine) Destination(distMoved, velocity float64, dismissible bool) (idx int, dismiss bool) {
	last := e.Len() - 1
	if last < 0 {
		return 0, false
	}
	if math.IsNaN(distMoved) || math.IsNaN(velocity) {
		return e.active, false
	}

	threshold := e.HighVelocity
	if threshold == 0 {
		threshold = defaultHighVelocity
	}

	draggedUp := distMoved > 0
	if velocity > threshold {
		if draggedUp {
			return clampIndex(e.active+1, e.Len()), false
		}
		if e.active == 0 {
			if dismissible {
				return 0, true
			}
			return 0, false
		}
		return e.active - 1, false
	}

	// Slow release: settle on whichever offset is closest to where the
	// sheet currently sits.
	current := e.ActiveOffset() - distMoved
	idx = e.active
	best := math.Inf(1)
	for i, off := range e.offsets {
		if d := math.Abs(off - current); d < best {
			best = d
			idx = i
		}
	}
	return idx, false
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func clampIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
