package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestVecDistSq(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec
		expected float64
	}{
		{"same point", V(3, 4), V(3, 4), 0},
		{"horizontal neighbor", V(0, 0), V(10, 0), 100},
		{"vertical neighbor", V(5, 5), V(5, 15), 100},
		{"diagonal neighbor", V(0, 0), V(10, 10), 200},
		{"3-4-5 triangle", V(1, 1), V(4, 5), 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.DistSq(tc.b); got != tc.expected {
				t.Errorf("DistSq() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.DistSq(tc.a); got != tc.expected {
				t.Errorf("DistSq() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestVecArithmetic(t *testing.T) {
	a := V(1.5, -2)
	b := V(0.5, 4)

	if got := a.Add(b); got != V(2, 2) {
		t.Errorf("Add() = %v, expected (2, 2)", got)
	}
	if got := a.Sub(b); got != V(1, -6) {
		t.Errorf("Sub() = %v, expected (1, -6)", got)
	}
}

func TestBounds(t *testing.T) {
	b := NewBounds(10, 20, 30, 40)

	if b.Right() != 40 || b.Top() != 60 {
		t.Errorf("Right/Top = (%v, %v), expected (40, 60)", b.Right(), b.Top())
	}
	if b.Empty() {
		t.Error("non-degenerate bounds reported empty")
	}
	if !NewBounds(0, 0, 0, 10).Empty() || !NewBounds(0, 0, 10, -1).Empty() {
		t.Error("zero or negative size should be empty")
	}
	if !b.Contains(V(10, 20)) {
		t.Error("bottom-left corner should be inside")
	}
	if b.Contains(V(40, 30)) {
		t.Error("right edge should be exclusive")
	}
}
