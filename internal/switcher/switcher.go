// SPDX-License-Identifier: Unlicense OR MIT

// Package switcher implements the Alt-Tab view switcher (spec.md
// component E): selection cycling over the view list and the
// dirty-tracked texture regeneration description the renderer
// consults when painting the overlay.
package switcher

import (
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

// Row layout constants for the switcher's texture (spec.md §4.E).
const (
	CornerRadius       = 10.0
	RowHeight          = 40.0
	SelectedRowRadius  = 5.0
	BackgroundOpacity  = 0.95
	SelectedRowOpacity = 0.80
)

// Switcher holds the active/selected/dirty state machine.
type Switcher struct {
	active   bool
	views    []*view.View
	selected int
	dirty    bool

	// textureValid mirrors "missing texture" in spec.md §4.E: cleared
	// when the switcher (re)starts or deactivates, set by MarkRendered
	// once the caller has regenerated and uploaded it. Selection changes
	// set dirty instead.
	textureValid bool
}

// New returns an inactive switcher.
func New() *Switcher {
	return &Switcher{}
}

// Active reports whether the switcher overlay is currently shown.
func (s *Switcher) Active() bool { return s.active }

// Dirty reports whether the texture needs regeneration: either the
// selection changed since the last render, or none has been rendered
// yet.
func (s *Switcher) Dirty() bool { return s.active && (s.dirty || !s.textureValid) }

// Selected returns the currently highlighted view, or nil if inactive.
func (s *Switcher) Selected() *view.View {
	if !s.active || s.selected < 0 || s.selected >= len(s.views) {
		return nil
	}
	return s.views[s.selected]
}

// Views returns the front-to-back view snapshot the switcher is
// cycling over.
func (s *Switcher) Views() []*view.View { return s.views }

// Start activates the switcher over the given front-to-back view
// snapshot. No-ops on an empty list. Initial selection is the second
// view when at least two exist — index 0 is topmost/currently focused,
// so this is "most-recently-used other view" — else the only view.
func (s *Switcher) Start(views []*view.View) {
	if len(views) == 0 {
		return
	}
	s.views = views
	if len(views) >= 2 {
		s.selected = 1
	} else {
		s.selected = 0
	}
	s.active = true
	s.dirty = true
	s.textureValid = false
}

// Next cycles the selection forward, wrapping at the end. No-op when
// inactive.
func (s *Switcher) Next() {
	if !s.active || len(s.views) == 0 {
		return
	}
	s.selected = (s.selected + 1) % len(s.views)
	s.dirty = true
}

// Prev cycles the selection backward, wrapping at the start. No-op
// when inactive.
func (s *Switcher) Prev() {
	if !s.active || len(s.views) == 0 {
		return
	}
	s.selected = (s.selected - 1 + len(s.views)) % len(s.views)
	s.dirty = true
}

// Confirm snaps c onto the selected view via list.Snap (the primary
// output's effective resolution is outputW, outputH), then deactivates
// the switcher and frees its cached texture.
func (s *Switcher) Confirm(list *view.List, c *canvas.Canvas, outputW, outputH float32, nowMs int64) {
	if sel := s.Selected(); sel != nil {
		list.Snap(sel, c, outputW, outputH, nowMs)
	}
	s.deactivate()
}

// Cancel deactivates the switcher without changing viewport or focus.
func (s *Switcher) Cancel() {
	s.deactivate()
}

func (s *Switcher) deactivate() {
	s.active = false
	s.dirty = false
	s.textureValid = false
	s.views = nil
	s.selected = 0
}

// MarkRendered clears the dirty flag once the caller has regenerated
// and uploaded the overlay texture (spec.md §4.E "render").
func (s *Switcher) MarkRendered() {
	s.dirty = false
	s.textureValid = true
}

// Row describes one line of the switcher's texture: the label text and
// whether it is the highlighted selection.
type Row struct {
	Label    string
	Selected bool
}

// Rows returns the label rows the renderer should draw into the
// texture, in the same front-to-back order as Views, formatted as
// "<app_id> - <title>" per spec.md §4.E (ellipsizing to fit is the
// renderer's job, since it alone knows the glyph metrics).
func (s *Switcher) Rows() []Row {
	rows := make([]Row, len(s.views))
	for i, v := range s.views {
		rows[i] = Row{Label: v.AppID + " - " + v.Title, Selected: i == s.selected}
	}
	return rows
}

// TextureSize returns the physical-pixel size of the switcher's
// texture: logicalWidth wide, one RowHeight-tall row per view, scaled
// by the output's HiDPI factor (spec.md §4.E "allocate a surface sized
// in physical pixels").
func (s *Switcher) TextureSize(logicalWidth, outputScale float32) (w, h float32) {
	logicalHeight := float32(len(s.views)) * RowHeight
	return logicalWidth * outputScale, logicalHeight * outputScale
}
