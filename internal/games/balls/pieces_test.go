package balls

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/ballpop/internal/core"
)

func TestPieceSetAddAssignsFreshIDs(t *testing.T) {
	s := NewPieceSet()
	a := s.Add(ColorRed, core.V(0, 0), 1)
	b := s.Add(ColorBlue, core.V(1, 0), 1)

	if a == b {
		t.Fatalf("ids should differ, both %d", a)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", s.Len())
	}

	p, ok := s.Get(b)
	if !ok || p.Color != ColorBlue || p.Pos != core.V(1, 0) {
		t.Errorf("Get(%d) = %+v, %v", b, p, ok)
	}
}

func TestPieceSetRemoveIsIdempotent(t *testing.T) {
	s := grid(t, "rrb")
	ids := s.IDs()

	if n := s.Remove(ids[0], ids[1]); n != 2 {
		t.Errorf("first Remove = %d, expected 2", n)
	}
	if n := s.Remove(ids[0], ids[1]); n != 0 {
		t.Errorf("second Remove = %d, expected 0", n)
	}
	if n := s.Remove(999); n != 0 {
		t.Errorf("Remove(absent) = %d, expected 0", n)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", s.Len())
	}
}

func TestPieceSetClearKeepsIDCounter(t *testing.T) {
	s := grid(t, "rgb")
	before := s.IDs()

	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Len() after Clear = %d", s.Len())
	}

	id := s.Add(ColorRed, core.V(0, 0), 1)
	if slices.Contains(before, id) {
		t.Errorf("id %d reused after Clear", id)
	}
}

func TestPieceSetMove(t *testing.T) {
	s := grid(t, "r")
	id := s.IDs()[0]

	if !s.Move(id, core.V(4, 5)) {
		t.Fatal("Move of live piece should succeed")
	}
	if p, _ := s.Get(id); p.Pos != core.V(4, 5) {
		t.Errorf("Pos = %v, expected (4, 5)", p.Pos)
	}
	if s.Move(999, core.V(0, 0)) {
		t.Error("Move of absent piece should fail")
	}
}

func TestPieceSetIDsSorted(t *testing.T) {
	s := grid(t, "rgbyp", "pybgr")
	ids := s.IDs()

	if !slices.IsSorted(ids) {
		t.Errorf("IDs() not sorted: %v", ids)
	}
	pieces := s.Pieces()
	for i, p := range pieces {
		if p.ID != ids[i] {
			t.Fatalf("Pieces()[%d].ID = %d, expected %d", i, p.ID, ids[i])
		}
	}
}

func TestParsePalette(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    Palette
		wantErr bool
	}{
		{name: "full names", in: []string{"blue", "Red"}, want: Palette{ColorBlue, ColorRed}},
		{name: "letters", in: []string{"g", "o"}, want: Palette{ColorGreen, ColorOrange}},
		{name: "unknown", in: []string{"blue", "mauve"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePalette(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfiguration) {
					t.Errorf("err = %v, expected ErrInvalidConfiguration", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParsePalette(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
