package balls

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ballpop/internal/core"
)

func TestFindGroup(t *testing.T) {
	tests := []struct {
		name   string
		board  []string
		seed   [2]float64
		size   int
		color  ColorTag
		others [][2]float64 // Positions that must be in the group
	}{
		{
			name:  "horizontal line",
			board: []string{"rrrb"},
			size:  3,
			color: ColorRed,
		},
		{
			name:  "stops at other colors",
			board: []string{"rrbrr"},
			size:  2,
			color: ColorRed,
		},
		{
			name:  "diagonal is not adjacent",
			board: []string{"r.", ".r"},
			seed:  [2]float64{0, 1},
			size:  1,
			color: ColorRed,
		},
		{
			name: "bends around corners",
			board: []string{
				"rrb",
				"brb",
				"brr",
			},
			seed:   [2]float64{0, 2},
			size:   5,
			color:  ColorRed,
			others: [][2]float64{{2, 0}},
		},
		{
			name:  "isolated piece",
			board: []string{"gbg"},
			seed:  [2]float64{1, 0},
			size:  1,
			color: ColorBlue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := grid(t, tt.board...)
			seed := idAt(t, s, tt.seed[0], tt.seed[1])

			g, err := FindGroup(s, seed)
			if err != nil {
				t.Fatalf("FindGroup: %v", err)
			}
			if g.Len() != tt.size {
				t.Errorf("Len() = %d, expected %d (ids %v)", g.Len(), tt.size, g.IDs)
			}
			if !g.Contains(seed) {
				t.Error("group should contain its seed")
			}
			if g.Color != tt.color {
				t.Errorf("Color = %v, expected %v", g.Color, tt.color)
			}
			for _, id := range g.IDs {
				if p, _ := s.Get(id); p.Color != tt.color {
					t.Errorf("piece %d has color %v", id, p.Color)
				}
			}
			for _, pos := range tt.others {
				if !g.Contains(idAt(t, s, pos[0], pos[1])) {
					t.Errorf("piece at %v missing from group", pos)
				}
			}
		})
	}
}

func TestFindGroupNotFound(t *testing.T) {
	s := grid(t, "rrr")

	for _, f := range []Finder{ScanFinder{}, GridFinder{}} {
		if _, err := f.FindGroup(s, 999); !errors.Is(err, ErrPieceNotFound) {
			t.Errorf("%T: err = %v, expected ErrPieceNotFound", f, err)
		}
	}
}

func TestFindGroupDoesNotModifyBoard(t *testing.T) {
	s := grid(t, "rrr", "rbb")
	before := s.Pieces()

	if _, err := FindGroup(s, s.IDs()[0]); err != nil {
		t.Fatal(err)
	}
	if after := s.Pieces(); !slices.Equal(before, after) {
		t.Error("FindGroup modified the board")
	}
}

func TestFindGroupSymmetric(t *testing.T) {
	s := grid(t,
		"rrgbb",
		"rggbr",
		"ryyyr",
	)

	for _, a := range s.IDs() {
		ga, err := FindGroup(s, a)
		if err != nil {
			t.Fatal(err)
		}
		for _, b := range ga.IDs {
			gb, err := FindGroup(s, b)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(ga.IDs, gb.IDs) {
				t.Errorf("group from %d = %v, group from %d = %v", a, ga.IDs, b, gb.IDs)
			}
		}
	}
}

func TestAdjacentThreshold(t *testing.T) {
	a := Piece{ID: 1, Color: ColorRed, Pos: core.V(0, 0), Diameter: 10}

	tests := []struct {
		name string
		pos  core.Vec
		want bool
	}{
		{name: "touching", pos: core.V(10, 0), want: true},
		{name: "within slack", pos: core.V(10.4, 0), want: true},
		{name: "just beyond slack", pos: core.V(10.5, 0), want: false},
		{name: "diagonal neighbour", pos: core.V(10, 10), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Piece{ID: 2, Color: ColorRed, Pos: tt.pos, Diameter: 10}
			if got := Adjacent(a, b); got != tt.want {
				t.Errorf("Adjacent = %v, want %v", got, tt.want)
			}
			if Adjacent(a, b) != Adjacent(b, a) {
				t.Error("Adjacent should be symmetric")
			}
		})
	}

	other := Piece{ID: 3, Color: ColorBlue, Pos: core.V(10, 0), Diameter: 10}
	if Adjacent(a, other) {
		t.Error("different colors should never be adjacent")
	}
}

func TestGridFinderMatchesScan(t *testing.T) {
	layouts := []Layout{
		squareLayout(),
		{Bounds: core.NewBounds(0, 0, 40, 24), Margin: 2, Diameter: 1},
		{Bounds: core.NewBounds(-30, -10, 300, 200), Margin: 7, Diameter: 13},
	}

	for seed := int64(1); seed <= 5; seed++ {
		for _, layout := range layouts {
			rng := rand.New(rand.NewSource(seed))
			s, err := Populate(layout, Palette{ColorRed, ColorBlue, ColorGreen}, rng)
			require.NoError(t, err)

			// Punch holes so groups have ragged edges.
			for _, id := range s.IDs() {
				if rng.Intn(5) == 0 {
					s.Remove(id)
				}
			}

			idx := NewGridIndex(s)
			for _, id := range s.IDs() {
				want, err := FindGroup(s, id)
				require.NoError(t, err)
				got, err := idx.FindGroup(s, id)
				require.NoError(t, err)
				require.Equal(t, want, got, "seed %d, piece %d", seed, id)
			}
		}
	}
}

func TestFinderByName(t *testing.T) {
	for name, want := range map[string]Finder{"": ScanFinder{}, "scan": ScanFinder{}, "grid": GridFinder{}} {
		got, err := FinderByName(name)
		require.NoError(t, err)
		require.IsType(t, want, got)
	}

	_, err := FinderByName("quadtree")
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}
