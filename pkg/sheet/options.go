package sheet

import (
	"time"

	"github.com/marcus/sheet/pkg/sheet/gesture"
	"github.com/marcus/sheet/pkg/sheet/scrolllock"
	"github.com/marcus/sheet/pkg/sheet/snap"
)

// Option configures a sheet at construction.
type Option func(*config)

type config struct {
	closeThreshold    float64
	scrollLockTimeout time.Duration
	snapPoints        []snap.Point
	fadeFromIndex     int
	defaultSnapPoint  int
	modal             bool
	dismissible       bool
	scaleBackground   bool
	fixed             bool
	nested            bool
	defaultOpen       bool
	height            snap.Point
	metrics           CellMetrics
	styles            Styles
	background        scrolllock.Scroller
	lock              *scrolllock.Manager
	clock             func() time.Time

	onDrag       func(percentage float64)
	onRelease    func(open bool)
	onClose      func()
	onOpenChange func(open bool)
	onSnapChange func(index int)
}

func defaultConfig() config {
	return config{
		closeThreshold:    gesture.DefaultCloseThreshold,
		scrollLockTimeout: gesture.DefaultScrollLockTimeout,
		fadeFromIndex:     -1,
		modal:             true,
		dismissible:       true,
		scaleBackground:   true,
		height:            snap.Fraction(0.5),
		metrics:           DefaultCellMetrics,
		styles:            DefaultStyles(),
		lock:              scrolllock.Default,
		clock:             time.Now,
	}
}

// WithCloseThreshold sets the fraction of the sheet height a slow drag
// must cover to close (default 0.25).
func WithCloseThreshold(fraction float64) Option {
	return func(c *config) {
		if fraction > 0 && fraction <= 1 {
			c.closeThreshold = fraction
		}
	}
}

// WithScrollLockTimeout sets how long drags stay blocked after the sheet
// content scrolled (default 100ms).
func WithScrollLockTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.scrollLockTimeout = d
		}
	}
}

// WithSnapPoints configures discrete resting heights, least open first.
func WithSnapPoints(points ...snap.Point) Option {
	return func(c *config) { c.snapPoints = points }
}

// WithFadeFromIndex sets the snap point index at which the backdrop
// starts fading. Without it the backdrop always tracks the drag.
func WithFadeFromIndex(i int) Option {
	return func(c *config) { c.fadeFromIndex = i }
}

// WithDefaultSnapPoint sets the initially active snap point index.
func WithDefaultSnapPoint(i int) Option {
	return func(c *config) { c.defaultSnapPoint = i }
}

// WithModal controls whether the sheet blocks the background: outside
// presses close it and the background lock persists until close
// (default true).
func WithModal(modal bool) Option {
	return func(c *config) { c.modal = modal }
}

// WithDismissible controls whether the sheet can be closed at all, by
// gesture or programmatically (default true).
func WithDismissible(dismissible bool) Option {
	return func(c *config) { c.dismissible = dismissible }
}

// WithScaleBackground controls the background scale-away visual
// (default true).
func WithScaleBackground(scale bool) Option {
	return func(c *config) { c.scaleBackground = scale }
}

// WithFixed makes keyboard avoidance shrink the sheet in place instead of
// repositioning it.
func WithFixed(fixed bool) Option {
	return func(c *config) { c.fixed = fixed }
}

// WithNested marks the sheet as nested inside another sheet: it skips the
// background lock and emits Nested* messages for its parent.
func WithNested(nested bool) Option {
	return func(c *config) { c.nested = nested }
}

// WithDefaultOpen opens the sheet on Init.
func WithDefaultOpen(open bool) Option {
	return func(c *config) { c.defaultOpen = open }
}

// WithHeight sets the sheet height when no snap points are configured
// (default half the viewport).
func WithHeight(h snap.Point) Option {
	return func(c *config) { c.height = h }
}

// WithCellMetrics overrides the cell-to-unit conversion.
func WithCellMetrics(m CellMetrics) Option {
	return func(c *config) {
		if m.UnitsPerRow > 0 && m.UnitsPerCol > 0 {
			c.metrics = m
		}
	}
}

// WithStyles overrides the sheet's appearance.
func WithStyles(s Styles) Option {
	return func(c *config) { c.styles = s }
}

// WithBackground attaches the background pane locked while the sheet is
// open.
func WithBackground(s scrolllock.Scroller) Option {
	return func(c *config) { c.background = s }
}

// WithLockManager overrides the process-wide background lock manager,
// mainly for tests.
func WithLockManager(m *scrolllock.Manager) Option {
	return func(c *config) {
		if m != nil {
			c.lock = m
		}
	}
}

// WithClock overrides the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithOnDrag registers a callback fired with the drag percentage on every
// tracked pointer move.
func WithOnDrag(fn func(percentage float64)) Option {
	return func(c *config) { c.onDrag = fn }
}

// WithOnRelease registers a callback fired when a gesture ends; open
// reports whether the sheet stays open.
func WithOnRelease(fn func(open bool)) Option {
	return func(c *config) { c.onRelease = fn }
}

// WithOnClose registers a callback fired when the close animation
// completes.
func WithOnClose(fn func()) Option {
	return func(c *config) { c.onClose = fn }
}

// WithOnOpenChange registers a callback fired when the open state
// changes.
func WithOnOpenChange(fn func(open bool)) Option {
	return func(c *config) { c.onOpenChange = fn }
}

// WithOnSnapChange registers a callback fired when the active snap point
// changes.
func WithOnSnapChange(fn func(index int)) Option {
	return func(c *config) { c.onSnapChange = fn }
}
