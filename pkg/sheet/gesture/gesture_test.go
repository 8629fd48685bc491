package gesture

import (
	"math"
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeNode is a synthetic widget-tree node for permission-walk tests.
type fakeNode struct {
	scrollable bool
	scrollTop  float64
	dialog     bool
	parent     *fakeNode
}

func (n *fakeNode) Scrollable() bool   { return n.scrollable }
func (n *fakeNode) ScrollTop() float64 { return n.scrollTop }
func (n *fakeNode) Dialog() bool       { return n.dialog }
func (n *fakeNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func TestPressMoveRelease(t *testing.T) {
	var d Drag

	if d.State() != StateIdle {
		t.Fatalf("initial state = %v, want StateIdle", d.State())
	}
	if !d.Press(100, t0) {
		t.Fatal("Press returned false on idle machine")
	}
	if d.State() != StatePressed {
		t.Fatalf("state after press = %v, want StatePressed", d.State())
	}
	// A second pointer down during a gesture is ignored.
	if d.Press(50, t0) {
		t.Error("Press succeeded while a gesture was in progress")
	}

	dist, ok := d.Move(130, t0.Add(50*time.Millisecond), nil, false)
	if !ok {
		t.Fatal("Move not permitted on plain tree")
	}
	if dist != -30 {
		t.Errorf("Move distance = %v, want -30 (downward)", dist)
	}
	if d.State() != StateDragging {
		t.Fatalf("state after move = %v, want StateDragging", d.State())
	}

	r, ok := d.Release(200, t0.Add(100*time.Millisecond))
	if !ok {
		t.Fatal("Release returned ok=false after dragging")
	}
	if r.Distance != -100 {
		t.Errorf("Result.Distance = %v, want -100", r.Distance)
	}
	if r.Velocity != 1 {
		t.Errorf("Result.Velocity = %v, want 1 (100 units / 100 ms)", r.Velocity)
	}
	if d.State() != StateIdle {
		t.Fatalf("state after release = %v, want StateIdle", d.State())
	}
}

func TestReleaseWithoutDragIsNoGesture(t *testing.T) {
	var d Drag

	if _, ok := d.Release(0, t0); ok {
		t.Error("Release on idle machine returned ok=true")
	}

	// Press then release without any permitted movement.
	d.Press(100, t0)
	if _, ok := d.Release(100, t0.Add(10*time.Millisecond)); ok {
		t.Error("Release without dragging returned ok=true")
	}
}

func TestZeroDurationVelocityIsNaN(t *testing.T) {
	var d Drag
	d.Press(100, t0)
	d.Move(120, t0, nil, false)

	r, ok := d.Release(150, t0)
	if !ok {
		t.Fatal("Release returned ok=false")
	}
	if !math.IsNaN(r.Velocity) {
		t.Errorf("zero-duration velocity = %v, want NaN", r.Velocity)
	}
	if got := Decide(r, 400, 0.25); got != OutcomeNone {
		t.Errorf("Decide on NaN velocity = %v, want OutcomeNone", got)
	}
}

func TestPermissionSticky(t *testing.T) {
	// Once a move is permitted, later moves in the same gesture stay
	// permitted even when the permission test would now fail.
	scrolled := &fakeNode{scrollable: true}
	var d Drag

	d.Press(100, t0)
	if _, ok := d.Move(110, t0.Add(10*time.Millisecond), scrolled, false); !ok {
		t.Fatal("first move not permitted")
	}

	// The inner region scrolls away from its top mid-gesture.
	scrolled.scrollTop = 40
	if _, ok := d.Move(120, t0.Add(20*time.Millisecond), scrolled, false); !ok {
		t.Error("permission was not sticky for the remainder of the gesture")
	}

	// After release a fresh gesture re-evaluates and is blocked.
	d.Release(120, t0.Add(30*time.Millisecond))
	d.Press(100, t0.Add(500*time.Millisecond))
	if _, ok := d.Move(110, t0.Add(510*time.Millisecond), scrolled, false); ok {
		t.Error("new gesture inherited stale permission")
	}
}

func TestShouldDragScrollableAncestors(t *testing.T) {
	tests := []struct {
		name string
		tree func() *fakeNode
		want bool
	}{
		{
			"plain target",
			func() *fakeNode { return &fakeNode{} },
			true,
		},
		{
			"scrollable at top",
			func() *fakeNode { return &fakeNode{scrollable: true} },
			true,
		},
		{
			"scrollable not at top",
			func() *fakeNode { return &fakeNode{scrollable: true, scrollTop: 12} },
			false,
		},
		{
			"scrolled ancestor above target",
			func() *fakeNode {
				return &fakeNode{parent: &fakeNode{scrollable: true, scrollTop: 3}}
			},
			false,
		},
		{
			"dialog root claims the gesture",
			func() *fakeNode {
				return &fakeNode{parent: &fakeNode{dialog: true}}
			},
			true,
		},
		{
			"dialog below a scrolled region does not override",
			func() *fakeNode {
				return &fakeNode{
					scrollable: true, scrollTop: 5,
					parent: &fakeNode{dialog: true},
				}
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Drag
			d.Press(100, t0)
			_, ok := d.Move(110, t0.Add(10*time.Millisecond), tt.tree(), false)
			if ok != tt.want {
				t.Errorf("permitted = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestShouldDragSelectionBlocks(t *testing.T) {
	var d Drag
	d.Press(100, t0)
	if _, ok := d.Move(110, t0.Add(10*time.Millisecond), nil, true); ok {
		t.Error("drag permitted while text is selected")
	}
}

func TestShouldDragRecentOpenSuppression(t *testing.T) {
	var d Drag
	d.MarkOpened(t0)

	d.Press(100, t0.Add(100*time.Millisecond))
	if _, ok := d.Move(110, t0.Add(150*time.Millisecond), nil, false); ok {
		t.Error("drag permitted inside the 500ms suppression window")
	}

	// Past the window the same gesture becomes permitted.
	if _, ok := d.Move(120, t0.Add(600*time.Millisecond), nil, false); !ok {
		t.Error("drag still blocked after the suppression window elapsed")
	}
}

func TestShouldDragScrollCooldown(t *testing.T) {
	var d Drag
	d.MarkScrolled(t0)

	d.Press(100, t0.Add(20*time.Millisecond))
	if _, ok := d.Move(110, t0.Add(50*time.Millisecond), nil, false); ok {
		t.Error("drag permitted inside the scroll-lock cooldown")
	}

	// Each blocked attempt refreshes the cooldown.
	if _, ok := d.Move(115, t0.Add(120*time.Millisecond), nil, false); ok {
		t.Error("cooldown was not refreshed by the blocked attempt")
	}

	// Once the sheet has visibly moved, the cooldown no longer applies.
	d.SetSwipe(24)
	if _, ok := d.Move(120, t0.Add(140*time.Millisecond), nil, false); !ok {
		t.Error("cooldown blocked a sheet that already moved")
	}
}

func TestJustReleased(t *testing.T) {
	var d Drag
	d.Press(100, t0)
	d.Move(150, t0.Add(20*time.Millisecond), nil, false)
	d.Release(150, t0.Add(40*time.Millisecond))

	if !d.JustReleased(t0.Add(100 * time.Millisecond)) {
		t.Error("JustReleased = false 60ms after release")
	}
	if d.JustReleased(t0.Add(300 * time.Millisecond)) {
		t.Error("JustReleased = true 260ms after release")
	}
}

func TestCancel(t *testing.T) {
	var d Drag
	d.Press(100, t0)
	d.Move(150, t0.Add(10*time.Millisecond), nil, false)
	d.Cancel()

	if d.State() != StateIdle {
		t.Errorf("state after cancel = %v, want StateIdle", d.State())
	}
	if _, ok := d.Release(200, t0.Add(20*time.Millisecond)); ok {
		t.Error("Release produced a result after Cancel")
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		height float64
		want   Outcome
	}{
		// closeThreshold 0.25 on a 400-unit sheet: 100 units closes.
		{"at threshold closes", Result{Distance: -100, Velocity: 0.1}, 400, OutcomeClose},
		{"below threshold resets", Result{Distance: -99, Velocity: 0.1}, 400, OutcomeReset},
		{"flick closes any distance", Result{Distance: -1, Velocity: 0.5}, 400, OutcomeClose},
		{"opening drag always resets", Result{Distance: 300, Velocity: 2}, 400, OutcomeReset},
		{"zero distance is no gesture", Result{Distance: 0, Velocity: 1}, 400, OutcomeNone},
		{"NaN distance is no gesture", Result{Distance: math.NaN(), Velocity: 1}, 400, OutcomeNone},
		{"NaN velocity is no gesture", Result{Distance: -200, Velocity: math.NaN()}, 400, OutcomeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.result, tt.height, 0.25); got != tt.want {
				t.Errorf("Decide(%+v) = %v, want %v", tt.result, got, tt.want)
			}
		})
	}
}

func TestDecideEndToEndScenario(t *testing.T) {
	// 500-unit sheet, closeThreshold 0.25 => 125-unit threshold. A slow
	// 150-unit downward drag closes.
	var d Drag
	d.Press(300, t0)
	d.Move(380, t0.Add(200*time.Millisecond), nil, false)
	d.Move(450, t0.Add(450*time.Millisecond), nil, false)
	r, ok := d.Release(450, t0.Add(500*time.Millisecond))
	if !ok {
		t.Fatal("Release returned ok=false")
	}
	if r.Distance != -150 {
		t.Fatalf("Distance = %v, want -150", r.Distance)
	}
	if r.Velocity > VelocityThreshold {
		t.Fatalf("Velocity = %v exceeds the flick threshold; scenario wants a slow drag", r.Velocity)
	}
	if got := Decide(r, 500, 0.25); got != OutcomeClose {
		t.Errorf("Decide = %v, want OutcomeClose", got)
	}
}
