// SPDX-License-Identifier: Unlicense OR MIT

// Package router implements the input router (spec.md component G):
// the keyboard keybind dispatch table, the cursor mode state machine
// (passthrough/move/pan/draw), focus-follows-mouse, resize-cursor
// detection, and scroll-driven zoom/pan with its idle-timeout pan flag.
//
// Grounded on gio's gesture.Click/Drag/Scroll state-field shapes
// (pressed/dragging/pid-equivalent fields collapsed into this single
// mode machine, since spec.md §5 runs one event loop with no
// concurrent gesture recognizers to keep separate) — see DESIGN.md.
package router

import (
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/drawing"
	"github.com/ThatOtherAndrew/Infinidesk/internal/edge"
	"github.com/ThatOtherAndrew/Infinidesk/internal/gather"
	"github.com/ThatOtherAndrew/Infinidesk/internal/geom"
	"github.com/ThatOtherAndrew/Infinidesk/internal/hittest"
	"github.com/ThatOtherAndrew/Infinidesk/internal/modkey"
	"github.com/ThatOtherAndrew/Infinidesk/internal/switcher"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

// CursorMode is the tagged state of the global input mode machine
// (spec.md §9 "mode variant"). The match in every switch over Mode is
// meant to be exhaustive; Resize is carried for completeness but the
// router never transitions into it, since drag-resize is stubbed
// (spec.md §1 Non-goals) — only edge detection (see internal/hittest)
// is driven.
type CursorMode int

const (
	Passthrough CursorMode = iota
	Move
	Pan
	Draw
	Resize
)

// Button identifies which pointer button an event is for.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// ActionName is one of the recognized keybind action names (spec.md §6).
type ActionName string

const (
	ActionCloseWindow   ActionName = "close_window"
	ActionExit          ActionName = "exit"
	ActionToggleDrawing ActionName = "toggle_drawing"
	ActionClearDrawings ActionName = "clear_drawings"
	ActionUndoStroke    ActionName = "undo_stroke"
	ActionRedoStroke    ActionName = "redo_stroke"
	ActionGatherWindows ActionName = "gather_windows"
	ActionSwitcher      ActionName = "window_switcher"
)

// BindKind distinguishes a keybind that dispatches a named action from
// one that forks a shell command.
type BindKind int

const (
	BindAction BindKind = iota
	BindExec
)

// Keybind pairs a chord (modifiers + keysym) to an action or a shell
// command (spec.md §6).
type Keybind struct {
	Modifiers modkey.Modifiers
	Key       modkey.Name
	Kind      BindKind
	Action    ActionName
	Exec      string
}

// GatherMinimumGap is the minimum_gap passed to the gather operation
// when invoked from the gather_windows keybind (spec.md §4.G).
const GatherMinimumGap = 20

// BorderBand is the edge-detection band width in logical pixels
// (spec.md §4.G "edges within <= 5 logical px of the view's rendered
// border").
const BorderBand = 5

// ScrollZoomFactor is the per-scroll-tick zoom multiplier (spec.md
// §4.G); scrolling the other direction applies its reciprocal.
const ScrollZoomFactor = 1.03

// ScrollPanIdleMs is the idle timeout that clears scroll_panning
// (spec.md §4.G).
const ScrollPanIdleMs = 100

// Router owns the cursor-mode state machine and dispatches keyboard
// and pointer events to the other components.
type Router struct {
	Views    *view.List
	Canvas   *canvas.Canvas
	Drawing  *drawing.Layer
	Switcher *switcher.Switcher

	Keybinds []Keybind

	// CanvasModifier is the designated canvas-modifier bit (super_pressed
	// tracks whether it's currently held); the config layer may bind it
	// to Super or Alt (spec.md §3 glossary).
	CanvasModifier modkey.Modifiers

	// OutputW, OutputH are the primary output's effective resolution,
	// used by gather and switcher confirm.
	OutputW, OutputH float32

	Panel         drawing.PanelGeometry
	HoveredButton int

	// Callbacks into the out-of-scope client/process collaborators
	// (spec.md §1): closing a toplevel and forking EXEC binds are wire-
	// protocol / OS operations this package only requests.
	OnExit          func()
	OnExec          func(cmd string)
	OnForwardScroll func(v *view.View, dx, dy float32)
	OnCursorShape   func(name edge.CursorName)

	Mode CursorMode

	grabbedView *view.View

	// switcherTriggerMods is the modifier set the window_switcher bind
	// actually fired with (spec.md §4.G: "release of the modifier key
	// that started the switch"), captured at Start time rather than
	// read from the fixed CanvasModifier. The default config binds
	// window_switcher to Alt+Tab while CanvasModifier (move/pan/zoom's
	// canvas modifier) defaults to Super; the two are independent, and
	// only the former gates switcher confirm.
	switcherTriggerMods modkey.Modifiers
	switcherTriggerHeld bool

	superPressed       bool
	scrollPanning      bool
	scrollIdleDeadline int64
}

// New returns a router wired to the given view list, canvas, drawing
// layer, and switcher, with CanvasModifier defaulting to Super and the
// hovered panel button unset.
func New(views *view.List, c *canvas.Canvas, d *drawing.Layer, sw *switcher.Switcher) *Router {
	return &Router{
		Views:               views,
		Canvas:              c,
		Drawing:             d,
		Switcher:            sw,
		CanvasModifier:      modkey.ModSuper,
		switcherTriggerMods: modkey.ModSuper,
		HoveredButton:       -1,
	}
}

// GrabbedView returns the view currently grabbed by an in-progress
// move, or nil.
func (r *Router) GrabbedView() *view.View { return r.grabbedView }

// ViewDestroyed clears the router's weak reference to v if it was the
// grabbed view, returning the mode to Passthrough (spec.md §4.G "any —
// grabbed view destroyed -> PASSTHROUGH").
func (r *Router) ViewDestroyed(v *view.View) {
	if r.grabbedView == v {
		r.grabbedView = nil
		r.Mode = Passthrough
	}
}

// HandleKey processes one keyboard event and reports whether it was
// left unhandled and should be forwarded to the focused client
// (spec.md §4.G).
func (r *Router) HandleKey(name modkey.Name, mods modkey.Modifiers, pressed bool, nowMs int64) (forward bool) {
	r.superPressed = mods.Contain(r.CanvasModifier)

	wasTriggerHeld := r.switcherTriggerHeld
	r.switcherTriggerHeld = mods.Contain(r.switcherTriggerMods)

	if r.Switcher.Active() {
		if wasTriggerHeld && !r.switcherTriggerHeld {
			r.Switcher.Confirm(r.Views, r.Canvas, r.OutputW, r.OutputH, nowMs)
			return false
		}
		if !pressed {
			return false
		}
		switch name {
		case modkey.NameTab:
			if mods.Contain(modkey.ModShift) {
				r.Switcher.Prev()
			} else {
				r.Switcher.Next()
			}
		case modkey.NameEscape:
			r.Switcher.Cancel()
		}
		return false
	}

	if !pressed {
		return false
	}

	for _, kb := range r.Keybinds {
		if kb.Modifiers == mods && kb.Key == name {
			r.dispatch(kb, nowMs)
			return false
		}
	}
	return true
}

func (r *Router) dispatch(kb Keybind, nowMs int64) {
	if kb.Kind == BindExec {
		if r.OnExec != nil {
			r.OnExec(kb.Exec)
		}
		return
	}
	switch kb.Action {
	case ActionCloseWindow:
		if v := r.Views.TopmostMapped(); v != nil {
			v.Close()
		}
	case ActionExit:
		if r.OnExit != nil {
			r.OnExit()
		}
	case ActionToggleDrawing:
		r.Drawing.ToggleMode()
	case ActionClearDrawings:
		r.Drawing.ClearAll()
	case ActionUndoStroke:
		r.Drawing.UndoLast()
	case ActionRedoStroke:
		r.Drawing.RedoLast()
	case ActionGatherWindows:
		gather.Gather(r.Views.Front(), r.Canvas, r.OutputW, r.OutputH, GatherMinimumGap, nowMs)
	case ActionSwitcher:
		r.switcherTriggerMods = kb.Modifiers
		r.switcherTriggerHeld = true
		r.Switcher.Start(r.Views.Front())
	}
}

// HandleButtonPress resolves the view under the cursor and dispatches
// in spec.md §4.G's priority order.
func (r *Router) HandleButtonPress(button Button, screen geom.Point, nowMs int64) {
	v, _, _, hit := hittest.ViewAt(r.Views.Front(), r.Canvas, screen.X, screen.Y)

	switch {
	case r.Drawing.Mode && button == ButtonLeft && r.overPanel(screen):
		if btn := drawing.ButtonAt(r.Panel, screen.X, screen.Y); btn >= 0 {
			r.handlePanelClick(btn)
		}
	case r.Drawing.Mode && button == ButtonLeft:
		r.Mode = Draw
		r.Drawing.StrokeBegin(r.Canvas.ScreenToCanvas(screen))
	case r.superPressed && button == ButtonLeft && hit:
		r.Mode = Move
		r.grabbedView = v
		v.MoveBegin(r.Canvas.ScreenToCanvas(screen))
		r.Views.Focus(v, nowMs)
		r.Views.Raise(v)
	case r.superPressed && button == ButtonRight:
		r.Mode = Pan
		r.Canvas.PanBegin(screen)
	case hit:
		r.Views.Focus(v, nowMs)
		r.Views.Raise(v)
	}
}

func (r *Router) overPanel(p geom.Point) bool {
	return p.X >= r.Panel.X && p.X < r.Panel.X+r.Panel.Width() && p.Y >= r.Panel.Y && p.Y < r.Panel.Y+r.Panel.Height()
}

func (r *Router) handlePanelClick(btn int) {
	switch btn {
	case drawing.ButtonSwatchRed, drawing.ButtonSwatchGreen, drawing.ButtonSwatchBlue:
		r.Drawing.SelectColor(drawing.Palette[btn])
	case drawing.ButtonUndo:
		r.Drawing.UndoLast()
	case drawing.ButtonRedo:
		r.Drawing.RedoLast()
	case drawing.ButtonClear:
		r.Drawing.ClearAll()
	}
}

// HandleButtonRelease ends whatever operation the current mode was
// driving and returns the mode to Passthrough (spec.md §4.G).
func (r *Router) HandleButtonRelease(button Button) {
	switch r.Mode {
	case Move:
		if r.grabbedView != nil {
			r.grabbedView.MoveEnd()
		}
	case Pan:
		r.Canvas.PanEnd()
	case Draw:
		r.Drawing.StrokeEnd()
	}
	r.Mode = Passthrough
	r.grabbedView = nil
}

// HandleMotion updates whatever the current mode is driving, or in
// Passthrough performs hover/cursor-shape updates and focus-follows-
// mouse (spec.md §4.G).
func (r *Router) HandleMotion(screen geom.Point, nowMs int64) {
	switch r.Mode {
	case Move:
		if r.grabbedView != nil {
			r.grabbedView.MoveUpdate(r.Canvas.ScreenToCanvas(screen), r.Canvas)
		}
	case Pan:
		r.Canvas.PanUpdate(screen)
	case Draw:
		r.Drawing.StrokeAddPoint(r.Canvas.ScreenToCanvas(screen))
	default:
		r.handlePassthroughMotion(screen, nowMs)
	}
}

func (r *Router) handlePassthroughMotion(screen geom.Point, nowMs int64) {
	if r.Drawing.Mode {
		r.HoveredButton = drawing.ButtonAt(r.Panel, screen.X, screen.Y)
	}

	if v, edges := hittest.EdgeAt(r.Views.Front(), r.Canvas, screen.X, screen.Y, BorderBand); v != nil && edges != 0 {
		if r.OnCursorShape != nil {
			r.OnCursorShape(edges.Cursor())
		}
		return
	}
	if r.OnCursorShape != nil {
		r.OnCursorShape(edge.CursorDefault)
	}

	if r.scrollPanning {
		return
	}
	if v, _, _, hit := hittest.ViewAt(r.Views.Front(), r.Canvas, screen.X, screen.Y); hit {
		r.Views.Focus(v, nowMs)
	}
}

// HandleScroll processes one scroll axis event (spec.md §4.G).
func (r *Router) HandleScroll(screen geom.Point, dx, dy float32, nowMs int64) {
	if r.superPressed {
		factor := float32(ScrollZoomFactor)
		if dy < 0 {
			factor = 1 / ScrollZoomFactor
		}
		r.Canvas.Zoom(factor, screen)
		return
	}

	if r.scrollPanning {
		r.Canvas.PanDelta(dx, dy)
		r.armScrollIdle(nowMs)
		return
	}

	if v, _, _, hit := hittest.ViewAt(r.Views.Front(), r.Canvas, screen.X, screen.Y); hit {
		if r.OnForwardScroll != nil {
			r.OnForwardScroll(v, dx, dy)
		}
		return
	}

	r.scrollPanning = true
	r.armScrollIdle(nowMs)
	r.Canvas.PanDelta(dx, dy)
}

func (r *Router) armScrollIdle(nowMs int64) {
	r.scrollIdleDeadline = nowMs + ScrollPanIdleMs
}

// ScrollPanning reports whether the scroll-pan idle flag is currently set.
func (r *Router) ScrollPanning() bool { return r.scrollPanning }

// Tick clears the scroll-pan idle flag once its timeout has elapsed.
// Called once per frame (spec.md §5: "implemented by short per-frame
// ticks... not by awaiting").
func (r *Router) Tick(nowMs int64) {
	if r.scrollPanning && nowMs >= r.scrollIdleDeadline {
		r.scrollPanning = false
	}
}
