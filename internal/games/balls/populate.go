package balls

import (
	"github.com/vovakirdan/ballpop/internal/core"
)

// RandomSource is the only randomness the board needs.
// *math/rand.Rand satisfies it; tests inject a seeded or scripted source.
type RandomSource interface {
	Intn(n int) int
}

// Layout describes the board geometry supplied by the layout layer.
type Layout struct {
	Bounds   core.Bounds // Whole board area, y up from the bottom edge
	Margin   float64     // Reserved strip along the bottom edge (HUD)
	Diameter float64     // Uniform piece diameter
}

// Radius returns half the piece diameter.
func (l Layout) Radius() float64 {
	return l.Diameter / 2
}

// Validate rejects layouts that could never hold a piece.
func (l Layout) Validate() error {
	switch {
	case l.Diameter <= 0:
		return invalidConfigf("piece diameter must be positive, got %v", l.Diameter)
	case l.Margin < 0:
		return invalidConfigf("margin must not be negative, got %v", l.Margin)
	case l.Bounds.Empty():
		return invalidConfigf("board bounds %vx%v enclose no area", l.Bounds.W, l.Bounds.H)
	}
	return nil
}

// Columns returns the x-coordinates of the grid columns.
// Columns start 3 radii in from the left edge and stop 3 radii short of the right.
func (l Layout) Columns() []float64 {
	r := l.Radius()
	return strideExclusive(l.Bounds.X+3*r, l.Bounds.Right()-3*r, l.Diameter)
}

// Rows returns the y-coordinates of the grid rows, bottom to top.
// Rows start at the margin and stop one radius short of the top edge.
func (l Layout) Rows() []float64 {
	return strideExclusive(l.Bounds.Y+l.Margin, l.Bounds.Top()-l.Radius(), l.Diameter)
}

// strideExclusive returns from, from+step, ... while the value stays below to.
// Values are computed by multiplication so long rows do not accumulate drift.
func strideExclusive(from, to, step float64) []float64 {
	var out []float64
	for i := 0; ; i++ {
		v := from + float64(i)*step
		if v >= to {
			return out
		}
		out = append(out, v)
	}
}

// Populate tiles the playable area with pieces one diameter apart, drawing
// each color uniformly from palette. It adds to whatever the set already
// holds; Session clears first on restart.
func (s *PieceSet) Populate(layout Layout, palette Palette, rng RandomSource) error {
	if err := layout.Validate(); err != nil {
		return err
	}
	if len(palette) == 0 {
		return invalidConfigf("palette is empty")
	}

	for _, x := range layout.Columns() {
		for _, y := range layout.Rows() {
			color := palette[rng.Intn(len(palette))]
			s.Add(color, core.V(x, y), layout.Diameter)
		}
	}
	return nil
}

// Populate creates a new PieceSet filled for the given layout.
func Populate(layout Layout, palette Palette, rng RandomSource) (*PieceSet, error) {
	s := NewPieceSet()
	if err := s.Populate(layout, palette, rng); err != nil {
		return nil, err
	}
	return s, nil
}
