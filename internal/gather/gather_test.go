// SPDX-License-Identifier: Unlicense OR MIT

package gather

import (
	"math"
	"testing"

	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

func approx(t *testing.T, got, want, tol float32) {
	t.Helper()
	if math.Abs(float64(got-want)) > float64(tol) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCentroidIsMeanOfCenters(t *testing.T) {
	l := view.NewList()
	a := l.Create("a", "A")
	a.Width, a.Height = 100, 100
	a.SetPosition(0, 0) // center (50,50)
	b := l.Create("b", "B")
	b.Width, b.Height = 100, 100
	b.SetPosition(100, 0) // center (150,50)

	c := Centroid([]*view.View{a, b})
	approx(t, c.X, 100, 1e-4)
	approx(t, c.Y, 50, 1e-4)
}

func TestGatherContractsDistanceByHalf(t *testing.T) {
	l := view.NewList()
	a := l.Create("a", "A")
	a.Mapped = true
	a.Width, a.Height = 10, 10
	a.SetPosition(-5, -5) // center (0,0)
	b := l.Create("b", "B")
	b.Mapped = true
	b.Width, b.Height = 10, 10
	b.SetPosition(995, -5) // center (1000,0)
	// centroid (500, 0); each view is 500 from centroid; edge=5, min=5+gap

	cv := canvas.New()
	Gather(l.Front(), cv, 1000, 1000, 1, 0)

	// new distance should be max(500*0.5, 5+1) = 250.
	got := a.Center()
	approx(t, got.X, 500-250, 1e-2)
	approx(t, got.Y, 0, 1e-2)
}

func TestGatherClampsAtMinimumDistance(t *testing.T) {
	l := view.NewList()
	a := l.Create("a", "A")
	a.Mapped = true
	a.Width, a.Height = 10, 10
	a.SetPosition(-5, -5)
	b := l.Create("b", "B")
	b.Mapped = true
	b.Width, b.Height = 10, 10
	b.SetPosition(15, -5) // centroid (10,0), each view 10 from centroid, edge=5

	cv := canvas.New()
	Gather(l.Front(), cv, 1000, 1000, 20, 0)
	// min_distance = 5+20 = 25 > 10*0.5=5, so distance clamps to 25.
	got := a.Center()
	approx(t, got.X, 10-25, 1e-2)
}

func TestGatherLeavesViewAtCentroidUnmoved(t *testing.T) {
	l := view.NewList()
	a := l.Create("a", "A")
	a.Mapped = true
	a.Width, a.Height = 10, 10
	a.SetPosition(-5, -5) // center (0,0), exactly the centroid of a lone view

	cv := canvas.New()
	before := a.Center()
	Gather(l.Front(), cv, 1000, 1000, 5, 0)
	after := a.Center()
	if before != after {
		t.Fatalf("a lone view at its own centroid should not move: before %v after %v", before, after)
	}
}

func TestGatherSkipsUnmappedViews(t *testing.T) {
	l := view.NewList()
	a := l.Create("a", "A")
	a.Mapped = true
	a.Width, a.Height = 10, 10
	a.SetPosition(0, 0)
	unmapped := l.Create("b", "B")
	unmapped.Mapped = false
	unmapped.SetPosition(1000, 1000)

	cv := canvas.New()
	before := unmapped.Center()
	Gather(l.Front(), cv, 1000, 1000, 5, 0)
	if unmapped.Center() != before {
		t.Fatal("unmapped views should not be included or moved")
	}
}

func TestGatherAnimatesViewportToFinalCentroid(t *testing.T) {
	l := view.NewList()
	a := l.Create("a", "A")
	a.Mapped = true
	a.Width, a.Height = 10, 10
	a.SetPosition(-5, -5)
	b := l.Create("b", "B")
	b.Mapped = true
	b.Width, b.Height = 10, 10
	b.SetPosition(995, -5)

	cv := canvas.New()
	Gather(l.Front(), cv, 1000, 1000, 1, 0)
	if !cv.SnapActive() {
		t.Fatal("gather should start a canvas snap toward the final centroid")
	}
}
