package sheet

import (
	"math"
	"time"
)

// CellMetrics converts between terminal cells and the abstract units the
// gesture core works in. The defaults approximate a typical terminal cell
// so the tuned gesture constants keep their feel.
type CellMetrics struct {
	UnitsPerRow float64
	UnitsPerCol float64
}

// DefaultCellMetrics matches a common 8x16 terminal cell.
var DefaultCellMetrics = CellMetrics{UnitsPerRow: 16, UnitsPerCol: 8}

// RowsToUnits converts a row count to units.
func (c CellMetrics) RowsToUnits(rows int) float64 {
	return float64(rows) * c.UnitsPerRow
}

// UnitsToRows converts units to whole rows, rounding to nearest.
func (c CellMetrics) UnitsToRows(units float64) int {
	if c.UnitsPerRow == 0 {
		return 0
	}
	return int(math.Round(units / c.UnitsPerRow))
}

// Dampen applies the overdrag resistance curve 8*(ln(v+1)-2). It grows
// strictly slower than v, so the further the sheet is pulled past its
// natural bound the less it visibly moves. Values below ~6.4 units come
// out negative; callers clamp at the point of use.
func Dampen(v float64) float64 {
	return 8 * (math.Log(v+1) - 2)
}

// lerp interpolates between a and b by t in [0,1].
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// transitionCurve is the cubic bezier easing (.32,.72,0,1) used by every
// sheet transition: a quick start with a long settle.
var transitionCurve = bezier{x1: 0.32, y1: 0.72, x2: 0, y2: 1}

type bezier struct {
	x1, y1, x2, y2 float64
}

// at evaluates the curve at time fraction t in [0,1] by solving the
// parametric x for t with a few bisection steps; the curve is monotonic
// in x so bisection converges quickly.
func (b bezier) at(t float64) float64 {
	t = clamp01(t)
	lo, hi := 0.0, 1.0
	var u float64
	for i := 0; i < 24; i++ {
		u = (lo + hi) / 2
		if b.sampleX(u) < t {
			lo = u
		} else {
			hi = u
		}
	}
	return b.sampleY(u)
}

func (b bezier) sampleX(u float64) float64 {
	v := 1 - u
	return 3*v*v*u*b.x1 + 3*v*u*u*b.x2 + u*u*u
}

func (b bezier) sampleY(u float64) float64 {
	v := 1 - u
	return 3*v*v*u*b.y1 + 3*v*u*u*b.y2 + u*u*u
}

// animKind tags an in-flight transition so its completion effects can be
// applied without closures (the model is copied on every update).
type animKind uint8

const (
	animOpen animKind = iota
	animClose
	animReset
	animSnap
)

// animation is one in-flight transition of the sheet's translate offset,
// overlay opacity and background scale progress.
type animation struct {
	kind                   animKind
	fromY, toY             float64
	fromOpacity, toOpacity float64
	fromScale, toScale     float64
	start                  time.Time
	duration               time.Duration
}

// value returns the animated values at now and whether the animation has
// completed.
func (a *animation) value(now time.Time) (y, opacity, scale float64, done bool) {
	if a.duration <= 0 {
		return a.toY, a.toOpacity, a.toScale, true
	}
	t := float64(now.Sub(a.start)) / float64(a.duration)
	if t >= 1 {
		return a.toY, a.toOpacity, a.toScale, true
	}
	if t < 0 {
		t = 0
	}
	e := transitionCurve.at(t)
	return lerp(a.fromY, a.toY, e), lerp(a.fromOpacity, a.toOpacity, e), lerp(a.fromScale, a.toScale, e), false
}
