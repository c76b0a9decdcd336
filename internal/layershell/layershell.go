// SPDX-License-Identifier: Unlicense OR MIT

// Package layershell implements the layer-shell arranger (spec.md
// component C): anchor/margin/exclusive-zone layout that computes the
// usable screen area left over after panels and wallpapers claim their
// reserved edges.
//
// Grounded on spec.md §4.C's algorithm directly; the four-layer
// ordering (Background, Bottom, Top, Overlay) and the "single-anchored
// side" exclusive-zone rule come from the wlr-layer-shell protocol this
// subsystem is the arranger for (the protocol object lifecycle itself —
// zwlr_layer_shell_v1 — is the out-of-scope wire-protocol collaborator
// named in spec.md §1 and §6; this package is the layout math a real
// listener callback would invoke on every create/map/unmap/commit).
package layershell

import "github.com/ThatOtherAndrew/Infinidesk/internal/geom"

// Anchor is a bitmask of the screen edges a layer surface is pinned to.
type Anchor uint8

const (
	AnchorTop Anchor = 1 << iota
	AnchorRight
	AnchorBottom
	AnchorLeft
)

// Layer is the stacking band a layer surface belongs to.
type Layer int

const (
	Background Layer = iota
	Bottom
	Top
	Overlay
	numLayers
)

// Margin is the anchor-relative offset, one value per anchored edge.
type Margin struct {
	Top, Right, Bottom, Left float32
}

// Surface is one layer-shell surface: a panel, wallpaper, or similar
// screen-anchored client surface, distinct from a View.
type Surface struct {
	Anchor    Anchor
	Margin    Margin
	DesiredW  float32
	DesiredH  float32
	Exclusive float32
	Layer     Layer
	Mapped    bool

	// X, Y, W, H are the computed placement, refreshed by Arrange.
	X, Y, W, H float32
}

// Bounds returns the surface's current placement as a rectangle.
func (s *Surface) Bounds() geom.Rectangle {
	return geom.Rectangle{Min: geom.Pt(s.X, s.Y), Max: geom.Pt(s.X+s.W, s.Y+s.H)}
}

// Output is one physical display: its size, HiDPI scale, the four
// per-layer surface lists, and the usable_area left over after Arrange.
type Output struct {
	Width, Height float32
	Scale         float32

	layers [numLayers][]*Surface

	Usable geom.Rectangle
}

// NewOutput returns an Output of the given logical size at scale 1.0,
// already arranged (an empty output's usable area is its full box).
func NewOutput(w, h float32) *Output {
	o := &Output{Width: w, Height: h, Scale: 1}
	o.Arrange()
	return o
}

// Surfaces returns the surfaces assigned to layer l, in the order they
// were added.
func (o *Output) Surfaces(l Layer) []*Surface {
	return o.layers[l]
}

// AddSurface appends s to its assigned layer's list.
func (o *Output) AddSurface(s *Surface) {
	o.layers[s.Layer] = append(o.layers[s.Layer], s)
}

// RemoveSurface drops s from its layer's list (on unmap or destroy).
func (o *Output) RemoveSurface(s *Surface) {
	l := o.layers[s.Layer]
	for i, cand := range l {
		if cand == s {
			o.layers[s.Layer] = append(l[:i], l[i+1:]...)
			return
		}
	}
}

// Resize updates the output's logical size and re-arranges.
func (o *Output) Resize(w, h float32) {
	o.Width, o.Height = w, h
	o.Arrange()
}

// Rescale updates the output's HiDPI scale factor. Arrange's layout is
// entirely in logical pixels, so a rescale alone doesn't move anything,
// but callers (component J) re-arrange anyway after any output change
// per spec.md §4.C, so this is provided for symmetry and to keep the
// output's arrangement-triggering events in one place.
func (o *Output) Rescale(scale float32) {
	o.Scale = scale
	o.Arrange()
}

// GetUsableArea returns the output's current usable_area (spec.md
// §4.C's get_usable_area query).
func (o *Output) GetUsableArea() geom.Rectangle {
	return o.Usable
}

// Arrange recomputes every mapped layer surface's placement and the
// resulting usable_area, walking layers Background -> Bottom -> Top ->
// Overlay. Call whenever a layer surface is created, mapped, unmapped,
// committed, or the output's size changes.
func (o *Output) Arrange() {
	full := geom.Rectangle{Min: geom.Pt(0, 0), Max: geom.Pt(o.Width, o.Height)}
	usable := full
	for l := Background; l < numLayers; l++ {
		for _, s := range o.layers[l] {
			if !s.Mapped {
				continue
			}
			place(s, full)
			usable = shrinkByExclusive(usable, s, full)
		}
	}
	o.Usable = usable
}

func place(s *Surface, full geom.Rectangle) {
	anchoredLeft := s.Anchor&AnchorLeft != 0
	anchoredRight := s.Anchor&AnchorRight != 0
	anchoredTop := s.Anchor&AnchorTop != 0
	anchoredBottom := s.Anchor&AnchorBottom != 0

	w := s.DesiredW
	if anchoredLeft && anchoredRight {
		w = full.Dx() - s.Margin.Left - s.Margin.Right
	}
	h := s.DesiredH
	if anchoredTop && anchoredBottom {
		h = full.Dy() - s.Margin.Top - s.Margin.Bottom
	}

	var x float32
	switch {
	case anchoredLeft && !anchoredRight:
		x = full.Min.X + s.Margin.Left
	case anchoredRight && !anchoredLeft:
		x = full.Max.X - s.Margin.Right - w
	case anchoredLeft && anchoredRight:
		x = full.Min.X + s.Margin.Left
	default:
		x = full.Min.X + (full.Dx()-w)/2
	}

	var y float32
	switch {
	case anchoredTop && !anchoredBottom:
		y = full.Min.Y + s.Margin.Top
	case anchoredBottom && !anchoredTop:
		y = full.Max.Y - s.Margin.Bottom - h
	case anchoredTop && anchoredBottom:
		y = full.Min.Y + s.Margin.Top
	default:
		y = full.Min.Y + (full.Dy()-h)/2
	}

	s.X, s.Y, s.W, s.H = x, y, w, h
}

// shrinkByExclusive subtracts s's exclusive zone from usable, on
// whichever single edge s is anchored to. A non-positive exclusive
// value reserves nothing (spec.md §4.C: "zero means no reservation;
// negative means the surface is informed of the current usable area
// but does not modify it" — the negative case is purely informational
// to the surface, which this layout-only package has no channel to
// report through; the caller reads Usable before placing such a
// surface if it needs to react).
func shrinkByExclusive(usable geom.Rectangle, s *Surface, full geom.Rectangle) geom.Rectangle {
	if s.Exclusive <= 0 {
		return usable
	}
	top := s.Anchor&AnchorTop != 0
	bottom := s.Anchor&AnchorBottom != 0
	left := s.Anchor&AnchorLeft != 0
	right := s.Anchor&AnchorRight != 0

	switch {
	case top && !bottom:
		usable.Min.Y = maxf(usable.Min.Y, full.Min.Y+s.Margin.Top+s.Exclusive)
	case bottom && !top:
		usable.Max.Y = minf(usable.Max.Y, full.Max.Y-s.Margin.Bottom-s.Exclusive)
	case left && !right:
		usable.Min.X = maxf(usable.Min.X, full.Min.X+s.Margin.Left+s.Exclusive)
	case right && !left:
		usable.Max.X = minf(usable.Max.X, full.Max.X-s.Margin.Right-s.Exclusive)
	}
	return usable
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// SurfaceAt searches layers Overlay -> Background for the first mapped
// surface containing point (ox, oy), returning it with surface-local
// coordinates. Used for routing pointer events to layer-shell panels
// (spec.md §4.C layer_surface_at).
func (o *Output) SurfaceAt(ox, oy float32) (surf *Surface, sx, sy float32, ok bool) {
	for l := Overlay; l >= Background; l-- {
		surfs := o.layers[l]
		for i := len(surfs) - 1; i >= 0; i-- {
			s := surfs[i]
			if !s.Mapped {
				continue
			}
			if s.Bounds().Contains(geom.Pt(ox, oy)) {
				return s, ox - s.X, oy - s.Y, true
			}
		}
	}
	return nil, 0, 0, false
}
