// SPDX-License-Identifier: Unlicense OR MIT

package geom

import (
	"math"
	"testing"
)

func eq(p1, p2 Point) bool {
	tol := 1e-5
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	return math.Abs(math.Sqrt(float64(dx*dx+dy*dy))) < tol
}

func TestPointArithmetic(t *testing.T) {
	p := Point{X: 1, Y: 2}
	o := Point{X: 2, Y: -3}

	if r := p.Add(o); !eq(r, Pt(3, -1)) {
		t.Errorf("add mismatch: have %v, want {3 -1}", r)
	}
	if r := p.Sub(o); !eq(r, Pt(-1, 5)) {
		t.Errorf("sub mismatch: have %v, want {-1 5}", r)
	}
	if r := p.Mul(2); !eq(r, Pt(2, 4)) {
		t.Errorf("mul mismatch: have %v, want {2 4}", r)
	}
	if r := p.Div(2); !eq(r, Pt(0.5, 1)) {
		t.Errorf("div mismatch: have %v, want {0.5 1}", r)
	}
}

func TestPointLerp(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 20)
	if r := a.Lerp(b, 0); !eq(r, a) {
		t.Errorf("lerp(0) mismatch: have %v, want %v", r, a)
	}
	if r := a.Lerp(b, 1); !eq(r, b) {
		t.Errorf("lerp(1) mismatch: have %v, want %v", r, b)
	}
	if r := a.Lerp(b, 0.5); !eq(r, Pt(5, 10)) {
		t.Errorf("lerp(0.5) mismatch: have %v, want {5 10}", r)
	}
}

func TestRectangleOps(t *testing.T) {
	r := Rectangle{Min: Pt(0, 0), Max: Pt(10, 20)}
	if r.Dx() != 10 || r.Dy() != 20 {
		t.Errorf("size mismatch: have %v", r.Size())
	}
	if c := r.Center(); !eq(c, Pt(5, 10)) {
		t.Errorf("center mismatch: have %v, want {5 10}", c)
	}
	if !r.Contains(Pt(5, 10)) {
		t.Errorf("expected (5,10) inside %v", r)
	}
	if r.Contains(Pt(10, 20)) {
		t.Errorf("Max is exclusive: (10,20) should not be inside %v", r)
	}
	if !r.Empty() && r.Canon().Empty() {
		t.Errorf("canon of non-empty rect reported empty")
	}
}

func TestClampAndEase(t *testing.T) {
	if v := Clamp(5, 0, 1); v != 1 {
		t.Errorf("clamp high: have %v, want 1", v)
	}
	if v := Clamp(-5, 0, 1); v != 0 {
		t.Errorf("clamp low: have %v, want 0", v)
	}
	if v := EaseOutCubic(0); v != 0 {
		t.Errorf("ease(0): have %v, want 0", v)
	}
	if v := EaseOutCubic(1); v != 1 {
		t.Errorf("ease(1): have %v, want 1", v)
	}
	if v := EaseOutCubic(0.5); v <= 0.5 {
		t.Errorf("ease-out should be above the linear midpoint: have %v", v)
	}
}
