// Package keyboard detects an on-screen keyboard (or any host chrome that
// eats viewport height) from visible-viewport readings and computes how
// the sheet should resize to keep focused inputs visible.
package keyboard

import "math"

// Hysteresis is the minimum change in the window/visible height delta,
// in units, before the keyboard-open flag toggles. Filters sub-pixel and
// browser-chrome jitter; empirically tuned.
const Hysteresis = 60.0

// Reading is one visible-viewport observation.
type Reading struct {
	// WindowHeight is the full window height in units.
	WindowHeight float64
	// VisibleHeight is the height not obscured by the keyboard.
	VisibleHeight float64
	// DrawerHeight is the sheet's current height.
	DrawerHeight float64
	// DrawerTop is the sheet's distance from the top of the window.
	DrawerTop float64
	// ActiveSnapOffset is the active snap point's offset, zero without
	// snap points.
	ActiveSnapOffset float64
	// InputFocused reports whether a text input inside the sheet has
	// focus.
	InputFocused bool
	// SnapConfigured reports whether snap points are in use.
	SnapConfigured bool
	// Fixed selects shrink-in-place mode over repositioning.
	Fixed bool
}

// Adjustment is the geometry the sheet should apply after a reading.
type Adjustment struct {
	// KeyboardOpen is the current keyboard flag.
	KeyboardOpen bool
	// Height is the sheet height to apply.
	Height float64
	// Bottom is the sheet's bottom offset tracking the keyboard; never
	// negative.
	Bottom float64
	// Relevant is false when the reading was ignored (no focused input
	// and keyboard already closed), in which case the other fields are
	// unspecified.
	Relevant bool
}

// Monitor folds viewport readings into keyboard state. The zero value is
// ready to use.
type Monitor struct {
	open          bool
	initialHeight float64
	previousDiff  float64
}

// Open reports the current keyboard-open flag.
func (m *Monitor) Open() bool {
	return m.open
}

// Reset clears all state, for when the sheet unmounts.
func (m *Monitor) Reset() {
	*m = Monitor{}
}

// Observe processes one viewport reading. Readings while no input is
// focused and the keyboard flag is down are ignored.
func (m *Monitor) Observe(r Reading) Adjustment {
	if !r.InputFocused && !m.open {
		return Adjustment{}
	}
	if math.IsNaN(r.WindowHeight) || math.IsNaN(r.VisibleHeight) {
		return Adjustment{}
	}

	diff := r.WindowHeight - r.VisibleHeight
	if m.initialHeight == 0 {
		m.initialHeight = r.DrawerHeight
	}
	if math.Abs(m.previousDiff-diff) > Hysteresis {
		m.open = !m.open
	}
	stored := diff
	if r.SnapConfigured {
		// Account for how far open the sheet already sits.
		stored += r.ActiveSnapOffset
	}
	m.previousDiff = stored

	adj := Adjustment{KeyboardOpen: m.open, Relevant: true}
	if r.DrawerHeight > r.VisibleHeight || m.open {
		if r.Fixed {
			// Fixed mode shrinks in place instead of repositioning.
			adj.Height = math.Max(0, r.DrawerHeight-math.Max(stored, 0))
		} else {
			height := r.DrawerHeight
			if height > r.VisibleHeight {
				height = r.VisibleHeight
			}
			adj.Height = math.Max(height, r.VisibleHeight-r.DrawerTop)
		}
	} else {
		adj.Height = m.initialHeight
	}

	if r.SnapConfigured && !m.open {
		adj.Bottom = 0
	} else {
		adj.Bottom = math.Max(diff, 0)
	}
	return adj
}
