// SPDX-License-Identifier: Unlicense OR MIT

// Package canvas implements the infinite-canvas coordinate engine and
// viewport pan/zoom/snap animation (spec.md component A).
package canvas

import "github.com/ThatOtherAndrew/Infinidesk/internal/geom"

const (
	// ZoomMin and ZoomMax bound Canvas.Scale; every operation clamps to
	// this range (spec.md §3 invariant).
	ZoomMin = 0.1
	ZoomMax = 4.0

	// SnapDuration is the fixed viewport-snap animation length (§4.A).
	SnapDuration = 800
)

// Canvas holds the canvas-to-screen coordinate mapping and its pan,
// zoom, and snap-animation state. A Canvas has no notion of views; the
// side effect spec.md describes as "every view's scene position is
// recomputed" is driven by the owner calling Invalidate after any
// method that moves the viewport, which the server glue wires to the
// view list's scene-position refresh (component B).
type Canvas struct {
	ViewportX, ViewportY float32
	Scale                float32

	// Invalidate, if set, is called after any operation that changes
	// Viewport{X,Y} or Scale.
	Invalidate func()

	panning          bool
	panStartCursor   geom.Point
	panStartViewport geom.Point

	snapActive  bool
	snapStartMs int64
	snapStart   geom.Point
	snapTarget  geom.Point
}

// New returns a Canvas whose viewport top-left is the canvas origin,
// at unit scale.
func New() *Canvas {
	return &Canvas{Scale: 1.0}
}

func (c *Canvas) viewport() geom.Point {
	return geom.Pt(c.ViewportX, c.ViewportY)
}

func (c *Canvas) setViewport(p geom.Point) {
	c.ViewportX, c.ViewportY = p.X, p.Y
}

func (c *Canvas) invalidate() {
	if c.Invalidate != nil {
		c.Invalidate()
	}
}

// ScreenToCanvas converts a screen-space point to canvas space:
// canvas = screen/scale + viewport.
func (c *Canvas) ScreenToCanvas(p geom.Point) geom.Point {
	return p.Div(c.Scale).Add(c.viewport())
}

// CanvasToScreen converts a canvas-space point to screen space:
// screen = (canvas - viewport) * scale.
func (c *Canvas) CanvasToScreen(p geom.Point) geom.Point {
	return p.Sub(c.viewport()).Mul(c.Scale)
}

// PanBegin starts a continuous drag-pan gesture at the given screen
// cursor position.
func (c *Canvas) PanBegin(cursorScreen geom.Point) {
	c.panning = true
	c.panStartCursor = cursorScreen
	c.panStartViewport = c.viewport()
}

// PanUpdate moves the viewport so the canvas point under the cursor at
// pan-begin tracks the cursor: viewport = start - (cursor-start)/scale.
func (c *Canvas) PanUpdate(cursorScreen geom.Point) {
	if !c.panning {
		return
	}
	delta := cursorScreen.Sub(c.panStartCursor).Div(c.Scale)
	c.setViewport(c.panStartViewport.Sub(delta))
	c.invalidate()
}

// PanEnd ends the drag-pan gesture.
func (c *Canvas) PanEnd() {
	c.panning = false
}

// PanDelta applies a discrete screen-space pan delta, used by the
// scroll-wheel gesture: viewport -= delta/scale.
func (c *Canvas) PanDelta(dxScreen, dyScreen float32) {
	d := geom.Pt(dxScreen, dyScreen).Div(c.Scale)
	c.setViewport(c.viewport().Sub(d))
	c.invalidate()
}

// Zoom scales by factor around focusScreen, holding the canvas point
// currently under focusScreen fixed on screen.
func (c *Canvas) Zoom(factor float32, focusScreen geom.Point) {
	newScale := geom.Clamp(c.Scale*factor, ZoomMin, ZoomMax)
	if newScale == c.Scale {
		return
	}
	canvasFocus := c.ScreenToCanvas(focusScreen)
	c.Scale = newScale
	c.setViewport(canvasFocus.Sub(focusScreen.Div(newScale)))
	c.invalidate()
}

// SetScale sets the absolute scale, holding focusScreen fixed.
func (c *Canvas) SetScale(s float32, focusScreen geom.Point) {
	if c.Scale == 0 {
		return
	}
	c.Zoom(s/c.Scale, focusScreen)
}

// ViewportCentre returns the canvas-space point at the center of an
// output_w x output_h screen, used to position newly mapped windows.
func (c *Canvas) ViewportCentre(outputW, outputH float32) geom.Point {
	return c.ScreenToCanvas(geom.Pt(outputW/2, outputH/2))
}

// SnapBegin starts (or replaces the target of) an 800ms ease-out-cubic
// viewport snap animation toward target, sampling the start time nowMs.
func (c *Canvas) SnapBegin(target geom.Point, nowMs int64) {
	c.snapActive = true
	c.snapStartMs = nowMs
	c.snapStart = c.viewport()
	c.snapTarget = target
}

// SnapActive reports whether a snap animation is in progress.
func (c *Canvas) SnapActive() bool {
	return c.snapActive
}

// SnapTick advances the snap animation to nowMs, returning whether the
// viewport changed.
func (c *Canvas) SnapTick(nowMs int64) bool {
	if !c.snapActive {
		return false
	}
	elapsed := float32(nowMs - c.snapStartMs)
	t := geom.Clamp(elapsed/SnapDuration, 0, 1)
	eased := geom.EaseOutCubic(t)
	c.setViewport(c.snapStart.Lerp(c.snapTarget, eased))
	if t >= 1 {
		c.snapActive = false
	}
	c.invalidate()
	return true
}
