// SPDX-License-Identifier: Unlicense OR MIT

// Package hittest implements view_at and edge_at (spec.md component
// I): resolving a screen-space point to the view beneath it, and to
// the resize-edge band of a mapped view's rendered border.
//
// The XDG sub-surface tree spec.md §4.I falls back through when the
// point lands in a view's transparent border region is the
// out-of-scope wire-protocol collaborator named in spec.md §1; this
// package implements the no-sub-surface branch only (the main surface,
// content-local coordinates) and leaves sub-surface resolution to that
// external tree walk.
package hittest

import (
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/edge"
	"github.com/ThatOtherAndrew/Infinidesk/internal/geom"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

// ViewAt searches views (front-to-back, index 0 topmost) for the one
// whose rendered content rectangle contains the screen-space point
// (lx, ly), returning it with content-local coordinates. Returns nil
// if no mapped view matches (spec.md §4.I).
func ViewAt(views []*view.View, c *canvas.Canvas, lx, ly float32) (v *view.View, sx, sy float32, ok bool) {
	for _, cand := range views {
		if !cand.Mapped {
			continue
		}
		origin, size := renderRect(cand, c)
		if lx < origin.X || lx >= origin.X+size.X || ly < origin.Y || ly >= origin.Y+size.Y {
			continue
		}
		contentX := (lx - origin.X) / c.Scale
		contentY := (ly - origin.Y) / c.Scale
		return cand, contentX, contentY, true
	}
	return nil, 0, 0, false
}

// EdgeAt searches views (front-to-back) for the first mapped view
// whose rendered border, thickened to bandWidth screen pixels, contains
// (lx, ly), returning a non-empty edge bitmask (spec.md §4.I, used by
// the input router to pick the resize cursor image).
func EdgeAt(views []*view.View, c *canvas.Canvas, lx, ly, bandWidth float32) (v *view.View, edges edge.Edges) {
	for _, cand := range views {
		if !cand.Mapped {
			continue
		}
		origin, size := renderRect(cand, c)
		localX := lx - origin.X
		localY := ly - origin.Y
		e := edge.At(localX, localY, size.X, size.Y, bandWidth)
		if e != 0 {
			return cand, e
		}
	}
	return nil, 0
}

// renderRect returns a view's rendered content origin and size in
// screen-space pixels at the canvas's current scale: `render_origin =
// screen(view.xy) - geo*scale` (spec.md §4.I), matching where
// internal/render places the view's texture so hit testing and
// rendering agree on every view with a nonzero client-reported
// geometry offset (spec.md §9.2).
func renderRect(v *view.View, c *canvas.Canvas) (origin, size geom.Point) {
	screenOrigin := c.CanvasToScreen(geom.Pt(v.X, v.Y))
	origin = geom.Pt(screenOrigin.X-v.GeoX*c.Scale, screenOrigin.Y-v.GeoY*c.Scale)
	size = geom.Pt(v.Width*c.Scale, v.Height*c.Scale)
	return origin, size
}
