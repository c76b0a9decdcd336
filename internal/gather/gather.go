// SPDX-License-Identifier: Unlicense OR MIT

// Package gather implements the "gather windows" operation (spec.md
// component F): contracting scattered views toward their shared
// centroid subject to a non-overlap floor, then re-centering the
// viewport on the result.
package gather

import (
	"math"

	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/geom"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

// contraction is the fraction of each view's centroid distance it
// keeps after gathering (spec.md §4.F step 4).
const contraction = 0.5

// centroidEpsilon is the minimum centroid distance below which a view
// is considered already-gathered and left untouched.
const centroidEpsilon = 1e-3

// Gather contracts every mapped view in views toward their shared
// centroid, never closer than its own half-extent plus minimumGap, then
// animates the canvas to re-center on the new centroid via an 800ms
// snap (spec.md §4.F).
func Gather(views []*view.View, c *canvas.Canvas, outputW, outputH, minimumGap float32, nowMs int64) {
	mapped := make([]*view.View, 0, len(views))
	for _, v := range views {
		if v.Mapped {
			mapped = append(mapped, v)
		}
	}
	if len(mapped) == 0 {
		return
	}

	centroid := Centroid(mapped)
	for _, v := range mapped {
		moveTowardCentroid(v, centroid, minimumGap)
	}

	final := Centroid(mapped)
	target := final.Sub(geom.Pt(outputW/2, outputH/2).Div(c.Scale))
	c.SnapBegin(target, nowMs)
}

// Centroid returns the mean of every view's content-rectangle center.
func Centroid(views []*view.View) geom.Point {
	var sum geom.Point
	for _, v := range views {
		sum = sum.Add(v.Center())
	}
	n := float32(len(views))
	return geom.Pt(sum.X/n, sum.Y/n)
}

func moveTowardCentroid(v *view.View, centroid geom.Point, minimumGap float32) {
	center := v.Center()
	delta := center.Sub(centroid)
	d := delta.Len()
	if d < centroidEpsilon {
		return
	}

	dirX, dirY := delta.X/d, delta.Y/d
	edge := edgeDistance(v.Width, v.Height, dirX, dirY)
	minDistance := edge + minimumGap

	newD := maxf(d*contraction, minDistance)
	newCenter := centroid.Add(geom.Pt(dirX*newD, dirY*newD))
	v.SetPosition(newCenter.X-v.Width/2, newCenter.Y-v.Height/2)
}

// edgeDistance returns the distance from a rectangle's center to its
// boundary along the unit direction (dirX, dirY), i.e. the largest t
// such that (t*dirX, t*dirY) still lies within the half-extents.
func edgeDistance(w, h, dirX, dirY float32) float32 {
	ex, ey := float32(math.Inf(1)), float32(math.Inf(1))
	if dirX != 0 {
		ex = (w / 2) / absf(dirX)
	}
	if dirY != 0 {
		ey = (h / 2) / absf(dirY)
	}
	return minf(ex, ey)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
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
