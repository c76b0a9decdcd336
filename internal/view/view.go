// SPDX-License-Identifier: Unlicense OR MIT

// Package view implements the per-window view model and the
// front-to-back view list (spec.md component B).
//
// The list is kept as the stable-index slot-map plus front-to-back
// ordering vector spec.md §9's design notes recommend: a map keyed by
// the view's dense id, and an ordering slice of those ids where index 0
// is the topmost view. Raise moves an id to the front; Destroy releases
// the slot and scrubs it from the ordering and from any weak reference
// (currently-focused view) the list itself owns. Weak references held
// outside the list (the input router's grabbed view, the switcher's
// selection) are the owning component's responsibility to scrub on
// destroy; see internal/server for the wiring.
package view

import (
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/edge"
	"github.com/ThatOtherAndrew/Infinidesk/internal/geom"
)

// Animation durations, in milliseconds (spec.md §4.B).
const (
	FocusAnimDuration = 200
	MapAnimDuration   = 200
)

// View represents one mapped or about-to-be-mapped toplevel window.
type View struct {
	ID uint32

	AppID, Title string

	// Canvas position of the window's logical content, top-left.
	X, Y float32
	// Current content size, as last committed by the client.
	Width, Height float32
	// Cached client-reported content origin within its buffer.
	GeoX, GeoY float32

	Mapped bool

	// Scene position cache: CanvasToScreen(X, Y) as of the last
	// UpdateScenePosition call. Spec.md's "scene tree" is, per §9's
	// glossary, used only as a cache of positions in this design.
	SceneX, SceneY float32

	IsMoving   bool
	grabCursor geom.Point
	grabOrigin geom.Point

	ResizeEdges     edge.Edges
	resizeStartGeom geom.Rectangle

	Focused         bool
	FocusAnimation  float32
	FocusAnimActive bool
	focusAnimStart  int64

	MapAnimation   float32
	mapAnimStart   int64
	IsAnimatingOut bool

	// OnCloseRequested is the xdg_toplevel.close hook Close invokes.
	OnCloseRequested func()
}

// Geometry returns the view's content rectangle in canvas space.
func (v *View) Geometry() geom.Rectangle {
	return geom.Rectangle{
		Min: geom.Pt(v.X, v.Y),
		Max: geom.Pt(v.X+v.Width, v.Y+v.Height),
	}
}

// Center returns the canvas-space center of the view's content rectangle.
func (v *View) Center() geom.Point {
	return geom.Pt(v.X+v.Width/2, v.Y+v.Height/2)
}

// SetPosition sets the view's canvas-space top-left position.
func (v *View) SetPosition(x, y float32) {
	v.X, v.Y = x, y
}

// UpdateScenePosition refreshes the cached screen-space scene position
// from the canvas's current viewport/scale.
func (v *View) UpdateScenePosition(c *canvas.Canvas) {
	p := c.CanvasToScreen(geom.Pt(v.X, v.Y))
	v.SceneX, v.SceneY = p.X, p.Y
}

// MoveBegin records the grab state for an interactive move gesture.
func (v *View) MoveBegin(cursorCanvas geom.Point) {
	v.IsMoving = true
	v.grabCursor = cursorCanvas
	v.grabOrigin = geom.Pt(v.X, v.Y)
}

// MoveUpdate repositions the view so it tracks the cursor delta since
// MoveBegin, then refreshes the scene position cache.
func (v *View) MoveUpdate(cursorCanvas geom.Point, c *canvas.Canvas) {
	if !v.IsMoving {
		return
	}
	delta := cursorCanvas.Sub(v.grabCursor)
	pos := v.grabOrigin.Add(delta)
	v.SetPosition(pos.X, pos.Y)
	v.UpdateScenePosition(c)
}

// MoveEnd clears the move-grab state.
func (v *View) MoveEnd() {
	v.IsMoving = false
}

// ResizeBegin records the resize-grab state. Resize is reserved per
// spec.md §1: edges are detected (see internal/edge) but drag-resize is
// never driven past this point.
func (v *View) ResizeBegin(edges edge.Edges) {
	v.ResizeEdges = edges
	v.resizeStartGeom = v.Geometry()
}

// ResizeEnd clears the resize-grab state.
func (v *View) ResizeEnd() {
	v.ResizeEdges = 0
}

// Close requests an orderly client-initiated close by invoking
// OnCloseRequested, the hook a real xdg_toplevel.close listener
// occupies. Close is distinct from List.Destroy: Close only asks — the
// protocol round trip is out of scope per spec.md §1 — while Destroy
// is the unconditional teardown spec.md §3 describes for "toplevel
// destroyed", which the client sends back only once it has actually
// quit.
func (v *View) Close() {
	if v.OnCloseRequested != nil {
		v.OnCloseRequested()
	}
}

// List is the server's exclusive-ownership store of views, in
// front-to-back order.
type List struct {
	views   map[uint32]*View
	order   []uint32
	nextID  uint32
	focused *View

	// OnActivate notifies the (out-of-scope) client protocol layer that
	// a view gained or lost keyboard focus — the compositor-framework
	// collaborator spec.md §1 assumes is provided.
	OnActivate func(v *View, focused bool)
}

// NewList returns an empty view list.
func NewList() *List {
	return &List{views: make(map[uint32]*View)}
}

// Create registers a new, as yet unmapped view and appends it to the
// back of the ordering.
func (l *List) Create(appID, title string) *View {
	l.nextID++
	v := &View{ID: l.nextID, AppID: appID, Title: title}
	l.views[v.ID] = v
	l.order = append(l.order, v.ID)
	return v
}

// Destroy removes v from the list, clearing the list's own weak
// reference to it (the focused view) if it pointed at v. The caller is
// responsible for scrubbing any weak references it owns externally
// (grabbed view, switcher selection).
func (l *List) Destroy(v *View) {
	delete(l.views, v.ID)
	for i, id := range l.order {
		if id == v.ID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	if l.focused == v {
		l.focused = nil
	}
}

// Len returns the number of views in the list.
func (l *List) Len() int {
	return len(l.order)
}

// Front returns the views in front-to-back order (index 0 topmost). The
// returned slice is a fresh copy safe to range over while mutating the list.
func (l *List) Front() []*View {
	out := make([]*View, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.views[id])
	}
	return out
}

// Back returns the views in back-to-front order, the order the renderer
// draws them in (spec.md §4.H.4).
func (l *List) Back() []*View {
	front := l.Front()
	for i, j := 0, len(front)-1; i < j; i, j = i+1, j-1 {
		front[i], front[j] = front[j], front[i]
	}
	return front
}

// TopmostMapped returns the frontmost mapped view, or nil.
func (l *List) TopmostMapped() *View {
	for _, id := range l.order {
		if v := l.views[id]; v.Mapped {
			return v
		}
	}
	return nil
}

// Focused returns the view that currently owns keyboard focus, or nil.
func (l *List) Focused() *View {
	return l.focused
}

// Raise moves v to the head of the front-to-back ordering.
func (l *List) Raise(v *View) {
	for i, id := range l.order {
		if id == v.ID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.order = append([]uint32{v.ID}, l.order...)
}

// Focus transfers keyboard focus to v, restarting both the outgoing and
// incoming focus animations at nowMs. It is a no-op if v already owns
// focus. Focus never raises; callers raise explicitly (spec.md §4.B).
func (l *List) Focus(v *View, nowMs int64) {
	if l.focused == v {
		return
	}
	if prev := l.focused; prev != nil {
		prev.Focused = false
		prev.FocusAnimActive = true
		prev.focusAnimStart = nowMs
		if l.OnActivate != nil {
			l.OnActivate(prev, false)
		}
	}
	v.Focused = true
	v.FocusAnimActive = true
	v.focusAnimStart = nowMs
	l.focused = v
	if l.OnActivate != nil {
		l.OnActivate(v, true)
	}
}

// Map positions v so its content center sits at canvasCenter (the
// owning output's usable-area center, already converted to canvas
// space by the caller), sets its content size, starts the map-entrance
// animation, and focuses and raises it (spec.md §4.B "Map").
func (l *List) Map(v *View, canvasCenter geom.Point, w, h float32, nowMs int64) {
	v.Width, v.Height = w, h
	v.SetPosition(canvasCenter.X-w/2, canvasCenter.Y-h/2)
	v.Mapped = true
	v.MapAnimation = 0
	v.mapAnimStart = nowMs
	v.IsAnimatingOut = false
	l.Focus(v, nowMs)
	l.Raise(v)
}

// Unmap clears move-grab state and resets the map animation. Per
// spec.md §4.B there is no explicit exit animation.
func (l *List) Unmap(v *View) {
	if v.IsMoving {
		v.MoveEnd()
	}
	v.Mapped = false
	v.MapAnimation = 0
}

// Snap starts an 800ms canvas snap that centers v on the output of size
// (outputW, outputH), then focuses and raises v (spec.md §4.B "Snap to
// view", used by the switcher's confirm).
func (l *List) Snap(v *View, c *canvas.Canvas, outputW, outputH float32, nowMs int64) {
	center := v.Center()
	target := center.Sub(geom.Pt(outputW/2, outputH/2).Div(c.Scale))
	c.SnapBegin(target, nowMs)
	l.Focus(v, nowMs)
	l.Raise(v)
}

// TickAnimations advances every view's focus and map animation clocks
// to nowMs (spec.md §4.B, called once per frame for all views).
func (l *List) TickAnimations(nowMs int64) {
	for _, id := range l.order {
		v := l.views[id]
		if v.FocusAnimActive {
			t := float32(nowMs-v.focusAnimStart) / FocusAnimDuration
			if t >= 1 {
				if v.Focused {
					v.FocusAnimation = 1
				} else {
					v.FocusAnimation = 0
				}
				v.FocusAnimActive = false
			} else if v.Focused {
				v.FocusAnimation = t
			} else {
				v.FocusAnimation = 1 - t
			}
		}
		if v.MapAnimation < 1 && !v.IsAnimatingOut {
			t := geom.Clamp(float32(nowMs-v.mapAnimStart)/MapAnimDuration, 0, 1)
			v.MapAnimation = geom.EaseOutCubic(t)
			if v.MapAnimation > 1 {
				v.MapAnimation = 1
			}
		}
	}
}

// UpdateAllScenePositions refreshes every view's cached scene position
// from the canvas. Wired to canvas.Canvas.Invalidate by the server.
func (l *List) UpdateAllScenePositions(c *canvas.Canvas) {
	for _, id := range l.order {
		l.views[id].UpdateScenePosition(c)
	}
}
