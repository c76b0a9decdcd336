// SPDX-License-Identifier: Unlicense OR MIT

package switcher

import (
	"testing"

	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

func TestStartNoopsOnEmptyList(t *testing.T) {
	s := New()
	s.Start(nil)
	if s.Active() {
		t.Fatal("start should no-op on an empty view list")
	}
}

func TestStartSelectsSecondView(t *testing.T) {
	l := view.NewList()
	a := l.Create("a", "A")
	b := l.Create("b", "B")
	s := New()
	s.Start(l.Front())
	if s.Selected() != b {
		t.Fatalf("expected second view selected (most-recent-other), got %v want %v", s.Selected(), b)
	}
	if !s.Active() || !s.Dirty() {
		t.Fatal("start should activate and mark dirty")
	}
	_ = a
}

func TestStartSelectsOnlyViewWhenSingleton(t *testing.T) {
	l := view.NewList()
	a := l.Create("a", "A")
	s := New()
	s.Start(l.Front())
	if s.Selected() != a {
		t.Fatal("expected the only view selected")
	}
}

func TestNextPrevWrap(t *testing.T) {
	l := view.NewList()
	a := l.Create("a", "A")
	b := l.Create("b", "B")
	c := l.Create("c", "C")
	s := New()
	s.Start(l.Front()) // selects b (index 1)

	s.Next() // -> c (index 2)
	if s.Selected() != c {
		t.Fatalf("next: got %v want %v", s.Selected(), c)
	}
	s.Next() // wraps -> a (index 0)
	if s.Selected() != a {
		t.Fatalf("next wrap: got %v want %v", s.Selected(), a)
	}
	s.Prev() // -> c
	if s.Selected() != c {
		t.Fatalf("prev wrap: got %v want %v", s.Selected(), c)
	}
	_ = b
}

func TestNextPrevNoopWhenInactive(t *testing.T) {
	s := New()
	s.Next()
	s.Prev()
	if s.Active() {
		t.Fatal("next/prev should not activate an inactive switcher")
	}
}

func TestConfirmSnapsAndDeactivates(t *testing.T) {
	l := view.NewList()
	a := l.Create("a", "A")
	a.Width, a.Height = 100, 100
	c := canvas.New()
	s := New()
	s.Start(l.Front())
	s.Confirm(l, c, 1000, 1000, 0)

	if s.Active() {
		t.Fatal("confirm should deactivate the switcher")
	}
	if !c.SnapActive() {
		t.Fatal("confirm should start a canvas snap onto the selected view")
	}
}

func TestCancelDeactivatesWithoutSnapping(t *testing.T) {
	l := view.NewList()
	l.Create("a", "A")
	c := canvas.New()
	s := New()
	s.Start(l.Front())
	s.Cancel()
	if s.Active() {
		t.Fatal("cancel should deactivate")
	}
	if c.SnapActive() {
		t.Fatal("cancel should not touch the canvas")
	}
}

func TestDirtyClearedByMarkRendered(t *testing.T) {
	l := view.NewList()
	l.Create("a", "A")
	l.Create("b", "B")
	s := New()
	s.Start(l.Front())
	if !s.Dirty() {
		t.Fatal("expected dirty immediately after start")
	}
	s.MarkRendered()
	if s.Dirty() {
		t.Fatal("expected clean after MarkRendered")
	}
	s.Next()
	if !s.Dirty() {
		t.Fatal("expected dirty again after selection change")
	}
}

func TestRowsLabelsAndSelection(t *testing.T) {
	l := view.NewList()
	l.Create("firefox", "Mozilla Firefox")
	l.Create("kitty", "zsh")
	s := New()
	s.Start(l.Front())
	rows := s.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Label != "firefox - Mozilla Firefox" {
		t.Fatalf("label = %q, want %q", rows[0].Label, "firefox - Mozilla Firefox")
	}
	if !rows[1].Selected || rows[0].Selected {
		t.Fatal("expected row 1 (the second view) selected")
	}
}
