// SPDX-License-Identifier: Unlicense OR MIT

package hittest

import (
	"testing"

	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

func TestViewAtFrontToBackPriority(t *testing.T) {
	l := view.NewList()
	back := l.Create("back", "Back")
	back.Mapped = true
	back.SetPosition(0, 0)
	back.Width, back.Height = 200, 200

	front := l.Create("front", "Front")
	front.Mapped = true
	front.SetPosition(50, 50)
	front.Width, front.Height = 50, 50
	l.Raise(front)

	c := canvas.New()
	got, sx, sy, ok := ViewAt(l.Front(), c, 60, 60)
	if !ok || got != front {
		t.Fatalf("expected front view at overlapping point, got %v", got)
	}
	if sx != 10 || sy != 10 {
		t.Fatalf("content-local coords = (%v,%v), want (10,10)", sx, sy)
	}
}

func TestViewAtMissReturnsFalse(t *testing.T) {
	l := view.NewList()
	v := l.Create("a", "A")
	v.Mapped = true
	v.SetPosition(0, 0)
	v.Width, v.Height = 100, 100

	c := canvas.New()
	if _, _, _, ok := ViewAt(l.Front(), c, 500, 500); ok {
		t.Fatal("expected no hit far outside the view")
	}
}

func TestViewAtSkipsUnmapped(t *testing.T) {
	l := view.NewList()
	v := l.Create("a", "A")
	v.Mapped = false
	v.SetPosition(0, 0)
	v.Width, v.Height = 100, 100

	c := canvas.New()
	if _, _, _, ok := ViewAt(l.Front(), c, 10, 10); ok {
		t.Fatal("expected unmapped view not hit-testable")
	}
}

func TestViewAtHonorsCanvasScale(t *testing.T) {
	l := view.NewList()
	v := l.Create("a", "A")
	v.Mapped = true
	v.SetPosition(0, 0)
	v.Width, v.Height = 100, 100

	c := canvas.New()
	c.Scale = 2.0
	// at scale 2, the view spans screen [0,200)x[0,200)
	got, sx, sy, ok := ViewAt(l.Front(), c, 150, 150)
	if !ok || got != v {
		t.Fatal("expected hit within the scaled rendered bounds")
	}
	if sx != 75 || sy != 75 {
		t.Fatalf("content-local coords = (%v,%v), want (75,75)", sx, sy)
	}
}

func TestViewAtAccountsForNonzeroGeoOffset(t *testing.T) {
	l := view.NewList()
	v := l.Create("a", "A")
	v.Mapped = true
	v.SetPosition(100, 100)
	v.Width, v.Height = 100, 100
	v.GeoX, v.GeoY = 10, 10

	c := canvas.New()
	// render_origin = screen(view.xy) - geo*scale = (90,90); the point
	// (95,95) lands inside the rendered rect only once geo is subtracted.
	got, sx, sy, ok := ViewAt(l.Front(), c, 95, 95)
	if !ok || got != v {
		t.Fatal("expected a hit inside the geo-shifted rendered rect")
	}
	if sx != 5 || sy != 5 {
		t.Fatalf("content-local coords = (%v,%v), want (5,5)", sx, sy)
	}
	if _, _, _, ok := ViewAt(l.Front(), c, 195, 195); ok {
		t.Fatal("expected no hit past the rendered rect's trailing edge once geo is subtracted")
	}
}

func TestEdgeAtWithinBand(t *testing.T) {
	l := view.NewList()
	v := l.Create("a", "A")
	v.Mapped = true
	v.SetPosition(0, 0)
	v.Width, v.Height = 100, 100

	c := canvas.New()
	got, edges := EdgeAt(l.Front(), c, 100, 50, 5)
	if got != v {
		t.Fatal("expected edge hit on the view's east border")
	}
	if edges == 0 {
		t.Fatal("expected a non-empty edge bitmask at the border")
	}
}

func TestEdgeAtOutsideBandReturnsNil(t *testing.T) {
	l := view.NewList()
	v := l.Create("a", "A")
	v.Mapped = true
	v.SetPosition(0, 0)
	v.Width, v.Height = 100, 100

	c := canvas.New()
	if got, _ := EdgeAt(l.Front(), c, 50, 50, 5); got != nil {
		t.Fatal("expected no edge hit at the view's center")
	}
}
