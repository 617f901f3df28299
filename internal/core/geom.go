// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Vec is a point or offset in continuous board space.
type Vec struct {
	X, Y float64
}

// V creates a vector.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// DistSq returns the squared Euclidean distance between v and o.
// Squared distance avoids a sqrt and is symmetric in its arguments.
func (v Vec) DistSq(o Vec) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Bounds is an axis-aligned rectangle in continuous board space.
// Y grows upward from the bottom edge, like the board it describes.
type Bounds struct {
	X, Y float64 // Bottom-left corner
	W, H float64
}

// NewBounds creates bounds with the given origin and size.
func NewBounds(x, y, w, h float64) Bounds {
	return Bounds{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Bounds) Right() float64 {
	return b.X + b.W
}

// Top returns the y-coordinate of the top edge.
func (b Bounds) Top() float64 {
	return b.Y + b.H
}

// Empty reports whether the bounds enclose no area.
func (b Bounds) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Contains reports whether p lies inside the bounds (right/top edges exclusive).
func (b Bounds) Contains(p Vec) bool {
	return p.X >= b.X && p.X < b.Right() && p.Y >= b.Y && p.Y < b.Top()
}

// Rect represents an axis-aligned box in screen cells.
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

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
