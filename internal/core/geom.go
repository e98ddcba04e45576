// Package core provides fundamental types and utilities for the runner.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned box in terminal cell coordinates.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// RectF is an axis-aligned box in logical surface units.
// The simulation works entirely in RectF; Rect only appears once a
// surface maps logical units onto terminal cells.
type RectF struct {
	X, Y float64
	W, H float64
}

// NewRectF creates a new logical rectangle.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// Intersects reports whether both rectangles overlap on both axes.
// Rectangles that only share an edge do not intersect.
func (r RectF) Intersects(other RectF) bool {
	return r.X < other.Right() &&
		r.Right() > other.X &&
		r.Y < other.Bottom() &&
		r.Bottom() > other.Y
}

// FitRect scales a native nativeW x nativeH image uniformly so that it fits
// inside box, and centers it on both axes. The aspect ratio of the result
// always equals the native aspect ratio.
func FitRect(box RectF, nativeW, nativeH float64) RectF {
	if nativeW <= 0 || nativeH <= 0 {
		return box
	}

	scale := min(box.W/nativeW, box.H/nativeH)
	w := nativeW * scale
	h := nativeH * scale

	return RectF{
		X: box.X + (box.W-w)/2,
		Y: box.Y + (box.H-h)/2,
		W: w,
		H: h,
	}
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

