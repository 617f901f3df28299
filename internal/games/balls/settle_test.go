package balls

import (
	"testing"

	"github.com/vovakirdan/ballpop/internal/core"
)

func TestSettleDropsIntoGaps(t *testing.T) {
	layout := Layout{Bounds: core.NewBounds(0, 0, 6, 4), Diameter: 1}
	// Columns at x=1.5..3.5, rows at y=0..3.
	s := NewPieceSet()
	low := s.Add(ColorRed, core.V(1.5, 1), 1)
	high := s.Add(ColorBlue, core.V(1.5, 2), 1)
	floor := s.Add(ColorGreen, core.V(2.5, 0), 1)
	lone := s.Add(ColorYellow, core.V(3.5, 2), 1)

	moved := Settle(s, layout)
	if moved != 3 {
		t.Errorf("moved = %d, expected 3", moved)
	}

	want := map[PieceID]core.Vec{
		low:   core.V(1.5, 0),
		high:  core.V(1.5, 1),
		floor: core.V(2.5, 0),
		lone:  core.V(3.5, 0),
	}
	for id, pos := range want {
		if p, _ := s.Get(id); p.Pos != pos {
			t.Errorf("piece %d at %v, expected %v", id, p.Pos, pos)
		}
	}

	if Settle(s, layout) != 0 {
		t.Error("settled board should not move again")
	}
}

func TestSettleKeepsGroupsConsistent(t *testing.T) {
	layout := Layout{Bounds: core.NewBounds(0, 0, 6, 5), Diameter: 1}
	s := NewPieceSet()
	// A red column with a hole one row up.
	s.Add(ColorRed, core.V(1.5, 0), 1)
	s.Add(ColorRed, core.V(1.5, 2), 1)
	s.Add(ColorRed, core.V(1.5, 3), 1)

	Settle(s, layout)

	g, err := FindGroup(s, s.IDs()[0])
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 3 {
		t.Errorf("settled column group = %d, expected 3", g.Len())
	}
}
