// SPDX-License-Identifier: Unlicense OR MIT

package router

import (
	"testing"

	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/drawing"
	"github.com/ThatOtherAndrew/Infinidesk/internal/geom"
	"github.com/ThatOtherAndrew/Infinidesk/internal/modkey"
	"github.com/ThatOtherAndrew/Infinidesk/internal/switcher"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

func newTestRouter() (*Router, *view.List, *canvas.Canvas) {
	vl := view.NewList()
	c := canvas.New()
	d := drawing.NewLayer()
	sw := switcher.New()
	r := New(vl, c, d, sw)
	r.OutputW, r.OutputH = 1000, 1000
	return r, vl, c
}

func TestUnhandledKeyForwardsToClient(t *testing.T) {
	r, _, _ := newTestRouter()
	forward := r.HandleKey(modkey.Name("z"), 0, true, 0)
	if !forward {
		t.Fatal("an unbound key press should be forwarded")
	}
}

func TestKeybindDispatchesAction(t *testing.T) {
	r, _, _ := newTestRouter()
	var exited bool
	r.OnExit = func() { exited = true }
	r.Keybinds = []Keybind{
		{Modifiers: modkey.ModSuper, Key: modkey.NameEscape, Kind: BindAction, Action: ActionExit},
	}
	forward := r.HandleKey(modkey.NameEscape, modkey.ModSuper, true, 0)
	if forward {
		t.Fatal("a matched keybind should not be forwarded")
	}
	if !exited {
		t.Fatal("expected the exit action to fire")
	}
}

func TestCloseWindowActionClosesTopmostMapped(t *testing.T) {
	r, vl, _ := newTestRouter()
	v := vl.Create("app", "Title")
	v.Mapped = true
	var closed bool
	v.OnCloseRequested = func() { closed = true }
	r.Keybinds = []Keybind{
		{Modifiers: modkey.ModSuper, Key: modkey.Name("Q"), Kind: BindAction, Action: ActionCloseWindow},
	}
	r.HandleKey(modkey.Name("Q"), modkey.ModSuper, true, 0)
	if !closed {
		t.Fatal("expected close_window to invoke the topmost mapped view's Close")
	}
}

func TestKeybindExecFires(t *testing.T) {
	r, _, _ := newTestRouter()
	var cmd string
	r.OnExec = func(c string) { cmd = c }
	r.Keybinds = []Keybind{
		{Modifiers: modkey.ModSuper, Key: modkey.Name("Return"), Kind: BindExec, Exec: "kitty"},
	}
	r.HandleKey(modkey.ParseName("Return"), modkey.ModSuper, true, 0)
	if cmd != "kitty" {
		t.Fatalf("exec command = %q, want %q", cmd, "kitty")
	}
}

func TestSwitcherInterceptsTabAndShiftTab(t *testing.T) {
	r, vl, _ := newTestRouter()
	vl.Create("a", "A")
	vl.Create("b", "B")
	vl.Create("c", "C")
	r.Switcher.Start(vl.Front())
	before := r.Switcher.Selected()

	r.HandleKey(modkey.NameTab, 0, true, 0)
	if r.Switcher.Selected() == before {
		t.Fatal("tab should advance the switcher selection")
	}
	afterNext := r.Switcher.Selected()

	r.HandleKey(modkey.NameTab, modkey.ModShift, true, 0)
	if r.Switcher.Selected() != before {
		t.Fatal("shift+tab should move selection back")
	}
	_ = afterNext
}

func TestSwitcherEscapeCancels(t *testing.T) {
	r, vl, _ := newTestRouter()
	vl.Create("a", "A")
	vl.Create("b", "B")
	r.Switcher.Start(vl.Front())
	r.HandleKey(modkey.NameEscape, 0, true, 0)
	if r.Switcher.Active() {
		t.Fatal("escape should cancel the switcher")
	}
}

func TestSwitcherConfirmsOnModifierRelease(t *testing.T) {
	r, vl, c := newTestRouter()
	vl.Create("a", "A")
	vl.Create("b", "B")
	// The documented default bind: "alt + Tab" -> window_switcher.
	r.Keybinds = []Keybind{
		{Modifiers: modkey.ModAlt, Key: modkey.NameTab, Kind: BindAction, Action: ActionSwitcher},
	}

	// Alt+Tab fires the bind, starting the switcher with Alt as the
	// triggering modifier; CanvasModifier (Super, for move/pan/zoom)
	// is never involved.
	r.HandleKey(modkey.NameTab, modkey.ModAlt, true, 0)
	if !r.Switcher.Active() {
		t.Fatal("alt+Tab should start the switcher")
	}

	// Releasing Alt (no modifiers held) should confirm and deactivate,
	// even though CanvasModifier was never pressed.
	r.HandleKey(modkey.Name("Alt_L"), 0, false, 50)
	if r.Switcher.Active() {
		t.Fatal("releasing the modifier that started the switch should confirm and deactivate it")
	}
	if !c.SnapActive() {
		t.Fatal("confirm should start a canvas snap")
	}
}

func TestSwitcherConfirmsOnSuperTriggerRelease(t *testing.T) {
	r, vl, c := newTestRouter()
	vl.Create("a", "A")
	vl.Create("b", "B")
	r.Keybinds = []Keybind{
		{Modifiers: modkey.ModSuper, Key: modkey.NameTab, Kind: BindAction, Action: ActionSwitcher},
	}

	r.HandleKey(modkey.NameTab, modkey.ModSuper, true, 0)
	if !r.Switcher.Active() {
		t.Fatal("super+Tab should start the switcher")
	}

	r.HandleKey(modkey.Name("Super_L"), 0, false, 50)
	if r.Switcher.Active() {
		t.Fatal("releasing super should confirm a super-triggered switch")
	}
	if !c.SnapActive() {
		t.Fatal("confirm should start a canvas snap")
	}
}

func TestButtonPressPlainClickFocusesAndRaises(t *testing.T) {
	r, vl, _ := newTestRouter()
	a := vl.Create("a", "A")
	a.Mapped = true
	a.SetPosition(0, 0)
	a.Width, a.Height = 100, 100

	r.HandleButtonPress(ButtonLeft, geom.Pt(10, 10), 0)
	if !a.Focused {
		t.Fatal("a plain click on a view should focus it")
	}
	if r.Mode != Passthrough {
		t.Fatalf("plain click should not change cursor_mode, got %v", r.Mode)
	}
}

func TestButtonPressSuperLeftEntersMove(t *testing.T) {
	r, vl, _ := newTestRouter()
	a := vl.Create("a", "A")
	a.Mapped = true
	a.SetPosition(0, 0)
	a.Width, a.Height = 100, 100

	r.HandleKey(modkey.Name("Super_L"), modkey.ModSuper, true, 0) // sets superPressed
	r.HandleButtonPress(ButtonLeft, geom.Pt(10, 10), 0)
	if r.Mode != Move {
		t.Fatalf("super+left on a view should enter MOVE, got mode %v", r.Mode)
	}
	if r.GrabbedView() != a {
		t.Fatal("expected a as the grabbed view")
	}
}

func TestButtonReleaseReturnsToPassthrough(t *testing.T) {
	r, vl, _ := newTestRouter()
	a := vl.Create("a", "A")
	a.Mapped = true
	a.SetPosition(0, 0)
	a.Width, a.Height = 100, 100
	r.HandleKey(modkey.Name("Super_L"), modkey.ModSuper, true, 0)
	r.HandleButtonPress(ButtonLeft, geom.Pt(10, 10), 0)

	r.HandleButtonRelease(ButtonLeft)
	if r.Mode != Passthrough {
		t.Fatal("button release should return to PASSTHROUGH")
	}
	if a.IsMoving {
		t.Fatal("button release should end the move")
	}
	if r.GrabbedView() != nil {
		t.Fatal("button release should clear the grabbed view")
	}
}

func TestViewDestroyedClearsGrab(t *testing.T) {
	r, vl, _ := newTestRouter()
	a := vl.Create("a", "A")
	a.Mapped = true
	a.Width, a.Height = 100, 100
	r.HandleKey(modkey.Name("Super_L"), modkey.ModSuper, true, 0)
	r.HandleButtonPress(ButtonLeft, geom.Pt(10, 10), 0)

	r.ViewDestroyed(a)
	if r.Mode != Passthrough || r.GrabbedView() != nil {
		t.Fatal("destroying the grabbed view should return to PASSTHROUGH and clear the grab")
	}
}

func TestScrollSuperZoomsIn(t *testing.T) {
	r, _, c := newTestRouter()
	r.HandleKey(modkey.Name("Super_L"), modkey.ModSuper, true, 0)
	r.HandleScroll(geom.Pt(0, 0), 0, 1, 0)
	if c.Scale <= 1.0 {
		t.Fatalf("scrolling up with the canvas modifier held should zoom in, scale = %v", c.Scale)
	}
}

func TestScrollEmptyCanvasPansAndArmsIdle(t *testing.T) {
	r, _, c := newTestRouter()
	r.HandleScroll(geom.Pt(500, 500), 0, 10, 0)
	if !r.ScrollPanning() {
		t.Fatal("scrolling over empty canvas should set scroll_panning")
	}
	if c.ViewportY == 0 {
		t.Fatal("expected the viewport to have panned")
	}
	r.Tick(50)
	if !r.ScrollPanning() {
		t.Fatal("scroll_panning should still be set before the idle timeout elapses")
	}
	r.Tick(200)
	if r.ScrollPanning() {
		t.Fatal("scroll_panning should clear once the idle timeout elapses")
	}
}

func TestScrollOverViewForwardsInsteadOfPanning(t *testing.T) {
	r, vl, _ := newTestRouter()
	a := vl.Create("a", "A")
	a.Mapped = true
	a.SetPosition(0, 0)
	a.Width, a.Height = 100, 100

	var forwarded *view.View
	r.OnForwardScroll = func(v *view.View, dx, dy float32) { forwarded = v }
	r.HandleScroll(geom.Pt(10, 10), 0, 5, 0)
	if forwarded != a {
		t.Fatal("scrolling over a view should forward to the client, not pan")
	}
	if r.ScrollPanning() {
		t.Fatal("forwarding a scroll to a client should not arm scroll_panning")
	}
}

func TestDrawModeLeftPressStartsStroke(t *testing.T) {
	r, _, _ := newTestRouter()
	r.Drawing.ToggleMode()
	r.HandleButtonPress(ButtonLeft, geom.Pt(100, 100), 0)
	if r.Mode != Draw {
		t.Fatalf("left press in drawing mode should enter DRAW, got %v", r.Mode)
	}
	if !r.Drawing.Drawing() {
		t.Fatal("expected stroke_begin to have fired")
	}
}

func TestPanelClickDispatchesOverMove(t *testing.T) {
	r, vl, _ := newTestRouter()
	a := vl.Create("a", "A")
	a.Mapped = true
	a.SetPosition(0, 0)
	a.Width, a.Height = 100, 300 // covers the panel's Undo button

	r.HandleKey(modkey.Name("Super_L"), modkey.ModSuper, true, 0) // sets superPressed
	r.Drawing.ToggleMode()
	r.Panel = drawing.PanelGeometry{X: 0, Y: 0}
	r.Drawing.Strokes = append(r.Drawing.Strokes, &drawing.Stroke{Points: []geom.Point{{}, {}}})

	// Undo sits at button index 3, past the separator; see buttonTop in
	// internal/drawing for the geometry this falls inside.
	r.HandleButtonPress(ButtonLeft, geom.Pt(30, 210), 0) // inside the Undo button
	if len(r.Drawing.Strokes) != 0 {
		t.Fatal("clicking the undo button should undo the stroke, not enter MOVE or DRAW")
	}
	if r.Mode != Passthrough {
		t.Fatalf("a panel click should not change cursor_mode, got %v", r.Mode)
	}
}

func TestPanelSwatchClickSelectsColorDirectly(t *testing.T) {
	r, _, _ := newTestRouter()
	r.Drawing.ToggleMode()
	r.Panel = drawing.PanelGeometry{X: 0, Y: 0}

	// The third swatch (index 2, BLUE) sits directly below the other
	// two; clicking it should select BLUE outright, not cycle toward it.
	x, y, w, h := drawing.ButtonRect(r.Panel, drawing.ButtonSwatchBlue)
	r.HandleButtonPress(ButtonLeft, geom.Pt(x+w/2, y+h/2), 0)
	if !r.Drawing.SelectedColor.Equal(drawing.Palette[drawing.ButtonSwatchBlue]) {
		t.Fatalf("expected clicking the blue swatch to select it directly, got %v", r.Drawing.SelectedColor)
	}
}
