// SPDX-License-Identifier: Unlicense OR MIT

// Package drawing implements the free-hand drawing overlay (spec.md
// component D): stroke capture with a distance filter, an undo/redo
// stack pair, a fixed color palette, and the UI panel's button
// hit-testing.
package drawing

import (
	"math"

	"github.com/ThatOtherAndrew/Infinidesk/internal/geom"
)

// distanceFilter is the minimum canvas-unit gap between consecutive
// stroke points (spec.md §4.D).
const distanceFilter = 2.0

// TileEdgeFactor is the per-scale tile edge length used when the
// renderer (component H) approximates a stroked polyline out of filled
// squares: tile edge = TileEdgeFactor * canvas.scale logical pixels.
const TileEdgeFactor = 4.0

// Color is one of the fixed palette entries.
type Color struct {
	R, G, B float32
}

// Palette is the fixed three-color selection (spec.md §4.D). Colors
// compare equal when every channel differs by less than 0.01.
var Palette = []Color{
	{R: 1, G: 0, B: 0}, // RED
	{R: 0, G: 1, B: 0}, // GREEN
	{R: 0, G: 0, B: 1}, // BLUE
}

// Equal reports whether two colors match within the palette's 0.01
// per-channel tolerance.
func (a Color) Equal(b Color) bool {
	const eps = 0.01
	return absf(a.R-b.R) < eps && absf(a.G-b.G) < eps && absf(a.B-b.B) < eps
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Stroke is one committed or in-progress free-hand line.
type Stroke struct {
	Color  Color
	Points []geom.Point
}

// Layer holds the drawing-mode toggle, the undo/redo stroke stacks,
// and the in-progress stroke.
type Layer struct {
	Mode      bool
	drawing   bool
	current   *Stroke
	lastPoint geom.Point

	Strokes   []*Stroke
	RedoStack []*Stroke

	SelectedColor Color
}

// NewLayer returns a drawing layer with the first palette color
// selected and drawing mode off.
func NewLayer() *Layer {
	return &Layer{SelectedColor: Palette[0]}
}

// Drawing reports whether a stroke is currently in progress.
func (l *Layer) Drawing() bool { return l.drawing }

// ToggleMode flips drawing mode. If it is being disabled while a
// stroke is in progress, the stroke is ended first.
func (l *Layer) ToggleMode() {
	l.Mode = !l.Mode
	if !l.Mode && l.drawing {
		l.StrokeEnd()
	}
}

// SelectColor changes the color used by the next stroke.
func (l *Layer) SelectColor(c Color) {
	l.SelectedColor = c
}

// StrokeBegin starts a new stroke at canvasXY. No-op when drawing mode
// is off.
func (l *Layer) StrokeBegin(canvasXY geom.Point) {
	if !l.Mode {
		return
	}
	l.current = &Stroke{Color: l.SelectedColor, Points: []geom.Point{canvasXY}}
	l.drawing = true
	l.lastPoint = canvasXY
}

// StrokeAddPoint appends canvasXY to the in-progress stroke if it is
// at least distanceFilter canvas units from the last recorded point.
// No-op if no stroke is in progress.
func (l *Layer) StrokeAddPoint(canvasXY geom.Point) {
	if !l.drawing {
		return
	}
	if canvasXY.Sub(l.lastPoint).Len() < distanceFilter {
		return
	}
	l.current.Points = append(l.current.Points, canvasXY)
	l.lastPoint = canvasXY
}

// StrokeEnd commits the in-progress stroke if it has at least two
// points, discarding it otherwise, and clears the redo stack on
// commit.
func (l *Layer) StrokeEnd() {
	if !l.drawing {
		return
	}
	s := l.current
	l.current = nil
	l.drawing = false
	if len(s.Points) < 2 {
		return
	}
	l.Strokes = append(l.Strokes, s)
	l.RedoStack = nil
}

// CurrentStroke returns the in-progress stroke, or nil.
func (l *Layer) CurrentStroke() *Stroke { return l.current }

// UndoLast discards the in-progress stroke if one exists (it is not
// moved to the redo stack); otherwise moves the most recently
// committed stroke to the tail of the redo stack.
func (l *Layer) UndoLast() {
	if l.drawing {
		l.current = nil
		l.drawing = false
		return
	}
	n := len(l.Strokes)
	if n == 0 {
		return
	}
	s := l.Strokes[n-1]
	l.Strokes = l.Strokes[:n-1]
	l.RedoStack = append(l.RedoStack, s)
}

// RedoLast restores the most recently undone stroke. No-op on an empty
// redo stack.
func (l *Layer) RedoLast() {
	n := len(l.RedoStack)
	if n == 0 {
		return
	}
	s := l.RedoStack[n-1]
	l.RedoStack = l.RedoStack[:n-1]
	l.Strokes = append(l.Strokes, s)
}

// ClearAll drops every committed and redo-able stroke.
func (l *Layer) ClearAll() {
	l.Strokes = nil
	l.RedoStack = nil
}

// SegmentTileCount returns the number of square tiles the renderer
// (component H) should lay along a stroke segment of the given screen
// length, approximating a stroked line from filled-rectangle
// primitives (spec.md §4.D).
func SegmentTileCount(length float32) int {
	return int(math.Ceil(float64(length)/2)) + 1
}

// TileEdge returns the tile edge length in logical pixels for the
// given canvas scale.
func TileEdge(canvasScale float32) float32 {
	return TileEdgeFactor * canvasScale
}

// Panel button indices, top to bottom: three color swatches, each
// directly selecting its own palette entry, then the visual separator
// gap (not itself addressable), then undo/redo/clear (spec.md §3 "3
// color swatches + visual separator + {undo, redo, clear}").
const (
	ButtonSwatchRed = iota
	ButtonSwatchGreen
	ButtonSwatchBlue
	ButtonUndo
	ButtonRedo
	ButtonClear
	numButtons
)

// Panel geometry constants, in logical pixels (spec.md §3: "Positions
// and hit boxes are computed from fixed constants (button 50x50,
// spacing 10, padding 10, separator 20, panel x=20)").
const (
	ButtonSize      = 50
	ButtonSpacing   = 10
	PanelPadding    = 10
	SeparatorHeight = 20
	PanelX          = 20
)

// PanelGeometry is the drawing UI panel's on-screen origin; its width,
// height, and per-button bounds all follow from the fixed geometry
// constants above.
type PanelGeometry struct {
	X, Y float32
}

// Width is the panel's fixed outer width: padding on both sides of one
// button column.
func (g PanelGeometry) Width() float32 {
	return 2*PanelPadding + ButtonSize
}

// Height is the panel's fixed outer height: padding, six button rows,
// four ordinary inter-button gaps, and one separator gap between the
// color swatches and the undo/redo/clear group.
func (g PanelGeometry) Height() float32 {
	return 2*PanelPadding + numButtons*ButtonSize + 4*ButtonSpacing + SeparatorHeight
}

// buttonTop returns button idx's top edge, measured from the panel's
// own Y: ordinary rows are ButtonSpacing apart, except the gap between
// index 2 (the last swatch) and index 3 (undo), which is
// SeparatorHeight instead.
func buttonTop(idx int) float32 {
	y := float32(PanelPadding)
	for i := 0; i < idx; i++ {
		y += ButtonSize
		if i == ButtonSwatchBlue {
			y += SeparatorHeight
		} else {
			y += ButtonSpacing
		}
	}
	return y
}

// ButtonAt returns the index of the button containing (x, y), or -1 if
// the point falls outside the panel or in a gap between rows (spec.md
// §4.D "get_button_at": "checks panel bounds then vertically
// partitions by button index").
func ButtonAt(g PanelGeometry, x, y float32) int {
	if x < g.X || x >= g.X+g.Width() || y < g.Y || y >= g.Y+g.Height() {
		return -1
	}
	ly := y - g.Y
	for i := 0; i < numButtons; i++ {
		top := buttonTop(i)
		if ly >= top && ly < top+ButtonSize {
			return i
		}
	}
	return -1
}

// ButtonRect returns button idx's on-screen bounds, for the renderer
// (component H) to paint each swatch and action button individually.
func ButtonRect(g PanelGeometry, idx int) (x, y, w, h float32) {
	return g.X + PanelPadding, g.Y + buttonTop(idx), ButtonSize, ButtonSize
}

// SeparatorRect returns the bounds of the visual separator gap between
// the color swatches and the undo/redo/clear group.
func SeparatorRect(g PanelGeometry) (x, y, w, h float32) {
	top := buttonTop(ButtonUndo) - SeparatorHeight
	return g.X + PanelPadding, g.Y + top, ButtonSize, SeparatorHeight
}
