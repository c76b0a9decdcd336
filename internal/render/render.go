// SPDX-License-Identifier: Unlicense OR MIT

// Package render assembles the per-frame draw order (spec.md component
// H) into a minimal command list — filled rectangles and textured
// rectangles only, per spec.md §9's "rendering primitive minimalism"
// note — and submits it to a Backend standing in for the external GPU
// collaborator (out of scope per spec.md §1).
package render

import (
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/drawing"
	"github.com/ThatOtherAndrew/Infinidesk/internal/geom"
	"github.com/ThatOtherAndrew/Infinidesk/internal/layershell"
	"github.com/ThatOtherAndrew/Infinidesk/internal/switcher"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

// Color is a straight (non-premultiplied) RGBA color used by the
// command list; Backend implementations premultiply on upload per
// spec.md §4.H.
type Color struct{ R, G, B, A float32 }

// Lerp linearly interpolates every channel of two colors.
func Lerp(a, b Color, t float32) Color {
	return Color{
		R: geom.Lerp(a.R, b.R, t),
		G: geom.Lerp(a.G, b.G, t),
		B: geom.Lerp(a.B, b.B, t),
		A: geom.Lerp(a.A, b.A, t),
	}
}

// Filter selects the texture sampling mode (spec.md §4.H: "nearest
// when combined == 1 and buffer_scale == 1, else bilinear").
type Filter int

const (
	FilterNearest Filter = iota
	FilterBilinear
)

// FilterFor picks the sampling filter for a given combined scale and
// client buffer scale.
func FilterFor(combinedScale, bufferScale float32) Filter {
	if combinedScale == 1 && bufferScale == 1 {
		return FilterNearest
	}
	return FilterBilinear
}

// Rect is a filled rectangle primitive, optionally with rounded
// corners (CornerRadius == 0 for a plain rectangle).
type Rect struct {
	X, Y, W, H   float32
	Color        Color
	CornerRadius float32
}

// Texture is a textured-rectangle primitive: SrcX/Y/W/H selects the
// (possibly client-cropped) source region, sampled into the
// destination rectangle with straight-alpha Opacity.
type Texture struct {
	X, Y, W, H             float32
	SrcX, SrcY, SrcW, SrcH float32
	TextureID              uint64
	Opacity                float32
	Filter                 Filter
}

// Backend is the external GPU/compositor-framework collaborator named
// in spec.md §1 that actually rasterizes the command list this
// package emits. BeginFrame/EndFrame bracket one output's frame.
type Backend interface {
	BeginFrame(physicalW, physicalH int)
	AddRect(Rect)
	AddTexture(Texture)
	EndFrame()
}

// BackgroundColor is the solid background fill (spec.md §4.H step 1).
var BackgroundColor = Color{R: 0.08, G: 0.08, B: 0.1, A: 1}

// Border and corner geometry constants (spec.md §4.H step 4).
const (
	ContentCornerRadius = 10.0
	BorderThickness     = 3.0
	MapAnimScaleMin     = 0.9
	MapAnimScaleMax     = 1.0
)

// Border colors, lerped by a view's focus animation (spec.md §4.H).
var (
	UnfocusedBorderColor = Color{R: 0.3, G: 0.3, B: 0.35, A: 1}
	FocusedBorderColor   = Color{R: 0.4, G: 0.6, B: 0.9, A: 1}
)

// Frame draws one complete output frame in spec.md §4.H's back-to-
// front order: background, background/bottom layer surfaces, views,
// top/overlay layer surfaces, the drawing layer, its UI panel (if
// active), and the switcher overlay (if active).
//
// Popups and the XDG sub-surface tree (step 5, and the per-sub-surface
// walk within step 4) are the out-of-scope wire-protocol collaborator
// named in spec.md §1; this function draws each view's main surface
// only.
func Frame(b Backend, out *layershell.Output, views *view.List, c *canvas.Canvas, dl *drawing.Layer, sw *switcher.Switcher, panel drawing.PanelGeometry) {
	physW := int(out.Width * out.Scale)
	physH := int(out.Height * out.Scale)
	b.BeginFrame(physW, physH)

	b.AddRect(Rect{X: 0, Y: 0, W: float32(physW), H: float32(physH), Color: BackgroundColor})

	drawLayerSurfaces(b, out, layershell.Background)
	drawLayerSurfaces(b, out, layershell.Bottom)

	drawViews(b, views.Back(), c, out.Scale)

	drawLayerSurfaces(b, out, layershell.Top)
	drawLayerSurfaces(b, out, layershell.Overlay)

	drawDrawingLayer(b, dl, c)
	if dl.Mode {
		drawPanel(b, panel, dl)
	}
	if sw.Active() {
		drawSwitcher(b, sw, out)
	}

	b.EndFrame()
}

func drawLayerSurfaces(b Backend, out *layershell.Output, layer layershell.Layer) {
	for _, s := range out.Surfaces(layer) {
		if !s.Mapped {
			continue
		}
		b.AddTexture(Texture{
			X: s.X * out.Scale, Y: s.Y * out.Scale, W: s.W * out.Scale, H: s.H * out.Scale,
			SrcW: s.W, SrcH: s.H,
			Opacity: 1,
			Filter:  FilterBilinear,
		})
	}
}

func drawViews(b Backend, views []*view.View, c *canvas.Canvas, outputScale float32) {
	for _, v := range views {
		if !v.Mapped {
			continue
		}
		baseScale := c.Scale * outputScale
		animScale := geom.Lerp(MapAnimScaleMin, MapAnimScaleMax, v.MapAnimation)
		combined := baseScale * animScale
		opacity := v.MapAnimation

		screenOrigin := c.CanvasToScreen(geom.Pt(v.X, v.Y))
		physOrigin := geom.Pt(screenOrigin.X*outputScale, screenOrigin.Y*outputScale)

		baseW, baseH := v.Width*baseScale, v.Height*baseScale
		animW, animH := v.Width*combined, v.Height*combined
		contentX := physOrigin.X + (baseW-animW)/2
		contentY := physOrigin.Y + (baseH-animH)/2

		b.AddTexture(Texture{
			X: contentX - v.GeoX*combined, Y: contentY - v.GeoY*combined,
			W: animW, H: animH,
			SrcW: v.Width, SrcH: v.Height,
			Opacity: opacity,
			Filter:  FilterFor(combined, 1),
		})

		radius := ContentCornerRadius * combined
		drawCornerMasks(b, contentX, contentY, animW, animH, radius)

		borderColor := Lerp(UnfocusedBorderColor, FocusedBorderColor, v.FocusAnimation)
		borderColor.A *= opacity
		drawBorder(b, contentX, contentY, animW, animH, BorderThickness*combined, radius, borderColor)
	}
}

// drawCornerMasks paints background-colored slivers at the four
// content corners to approximate a rounded content rectangle (spec.md
// §4.H).
func drawCornerMasks(b Backend, x, y, w, h, radius float32) {
	if radius <= 0 {
		return
	}
	b.AddRect(Rect{X: x, Y: y, W: radius, H: radius, Color: BackgroundColor})
	b.AddRect(Rect{X: x + w - radius, Y: y, W: radius, H: radius, Color: BackgroundColor})
	b.AddRect(Rect{X: x, Y: y + h - radius, W: radius, H: radius, Color: BackgroundColor})
	b.AddRect(Rect{X: x + w - radius, Y: y + h - radius, W: radius, H: radius, Color: BackgroundColor})
}

// drawBorder emits the four border strips framing a view's content
// rectangle. Each strip carries the outer corner radius as a hint; a
// real Backend fills the ring between inner and outer radius with
// per-row spans the way spec.md §4.H describes, entirely from filled
// rectangles — that row-by-row emission is the rasterizer's job, this
// package only supplies the geometry.
func drawBorder(b Backend, x, y, w, h, thickness, contentRadius float32, color Color) {
	outerRadius := contentRadius + thickness
	b.AddRect(Rect{X: x - thickness, Y: y - thickness, W: w + 2*thickness, H: thickness, Color: color, CornerRadius: outerRadius})
	b.AddRect(Rect{X: x - thickness, Y: y + h, W: w + 2*thickness, H: thickness, Color: color, CornerRadius: outerRadius})
	b.AddRect(Rect{X: x - thickness, Y: y, W: thickness, H: h, Color: color, CornerRadius: outerRadius})
	b.AddRect(Rect{X: x + w, Y: y, W: thickness, H: h, Color: color, CornerRadius: outerRadius})
}

// drawDrawingLayer paints every committed stroke plus the in-progress
// one, approximating each stroked segment as a run of square tiles
// (spec.md §4.D rendering note).
func drawDrawingLayer(b Backend, dl *drawing.Layer, c *canvas.Canvas) {
	tileEdge := drawing.TileEdge(c.Scale)
	strokes := dl.Strokes
	if cur := dl.CurrentStroke(); cur != nil {
		strokes = append(append([]*drawing.Stroke{}, strokes...), cur)
	}
	for _, s := range strokes {
		color := Color{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: 1}
		for i := 0; i+1 < len(s.Points); i++ {
			drawStrokeSegment(b, c, s.Points[i], s.Points[i+1], tileEdge, color)
		}
	}
}

func drawStrokeSegment(b Backend, c *canvas.Canvas, p0, p1 geom.Point, tileEdge float32, color Color) {
	a := c.CanvasToScreen(p0)
	z := c.CanvasToScreen(p1)
	length := z.Sub(a).Len()
	tiles := drawing.SegmentTileCount(length)
	denom := tiles - 1
	if denom < 1 {
		denom = 1
	}
	for i := 0; i < tiles; i++ {
		t := float32(i) / float32(denom)
		p := a.Lerp(z, t)
		b.AddRect(Rect{X: p.X - tileEdge/2, Y: p.Y - tileEdge/2, W: tileEdge, H: tileEdge, Color: color})
	}
}

// panelBackgroundColor, actionButtonColor, and selectionHighlightColor
// are the drawing UI panel's fixed chrome colors (spec.md §4.D renders
// the panel as flat fills; the palette swatches carry their own
// color).
var (
	panelBackgroundColor    = Color{R: 0.15, G: 0.15, B: 0.17, A: 0.9}
	actionButtonColor       = Color{R: 0.3, G: 0.3, B: 0.33, A: 1}
	separatorColor          = Color{R: 0.45, G: 0.45, B: 0.48, A: 1}
	selectionHighlightColor = Color{R: 1, G: 1, B: 1, A: 0.8}
)

// drawPanel paints the drawing layer's UI panel (spec.md §3 "UI
// panel"): the 3 color swatches (each its own palette color, the
// selected one ringed), the visual separator, and undo/redo/clear.
func drawPanel(b Backend, panel drawing.PanelGeometry, dl *drawing.Layer) {
	b.AddRect(Rect{X: panel.X, Y: panel.Y, W: panel.Width(), H: panel.Height(), Color: panelBackgroundColor})

	for i, c := range drawing.Palette {
		x, y, w, h := drawing.ButtonRect(panel, i)
		if c.Equal(dl.SelectedColor) {
			const ring = 3.0
			b.AddRect(Rect{X: x - ring, Y: y - ring, W: w + 2*ring, H: h + 2*ring, Color: selectionHighlightColor})
		}
		b.AddRect(Rect{X: x, Y: y, W: w, H: h, Color: Color{R: c.R, G: c.G, B: c.B, A: 1}})
	}

	sx, sy, sw, sh := drawing.SeparatorRect(panel)
	b.AddRect(Rect{X: sx, Y: sy + sh/2 - 1, W: sw, H: 2, Color: separatorColor})

	for _, idx := range []int{drawing.ButtonUndo, drawing.ButtonRedo, drawing.ButtonClear} {
		x, y, w, h := drawing.ButtonRect(panel, idx)
		b.AddRect(Rect{X: x, Y: y, W: w, H: h, Color: actionButtonColor})
	}
}

func drawSwitcher(b Backend, sw *switcher.Switcher, out *layershell.Output) {
	const logicalWidth = 400.0
	w, h := sw.TextureSize(logicalWidth, out.Scale)
	x := (out.Width*out.Scale - w) / 2
	y := (out.Height*out.Scale - h) / 2

	b.AddRect(Rect{
		X: x, Y: y, W: w, H: h,
		Color:        Color{R: 0, G: 0, B: 0, A: switcher.BackgroundOpacity},
		CornerRadius: switcher.CornerRadius * out.Scale,
	})

	rowH := switcher.RowHeight * out.Scale
	for i, row := range sw.Rows() {
		if !row.Selected {
			continue
		}
		ry := y + float32(i)*rowH
		b.AddRect(Rect{
			X: x + 4, Y: ry + 2, W: w - 8, H: rowH - 4,
			Color:        Color{R: 1, G: 1, B: 1, A: switcher.SelectedRowOpacity},
			CornerRadius: switcher.SelectedRowRadius * out.Scale,
		})
	}
	// Row label text is drawn by the out-of-scope text-shaping
	// collaborator (spec.md §1); this package only marks the highlight.
}
