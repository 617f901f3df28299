package balls

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/ballpop/internal/core"
)

func TestPopulateSquareBoard(t *testing.T) {
	rng := newScriptedRand(0, 1, 2, 3)
	s, err := Populate(squareLayout(), Palette{ColorRed, ColorBlue, ColorGreen, ColorYellow}, rng)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}

	// Columns are filled outer, rows inner.
	want := []Piece{
		{ID: 1, Color: ColorRed, Pos: core.V(15, 0), Diameter: 10},
		{ID: 2, Color: ColorBlue, Pos: core.V(15, 10), Diameter: 10},
		{ID: 3, Color: ColorGreen, Pos: core.V(25, 0), Diameter: 10},
		{ID: 4, Color: ColorYellow, Pos: core.V(25, 10), Diameter: 10},
	}
	if got := s.Pieces(); !slices.Equal(got, want) {
		t.Errorf("Pieces() = %+v\nwant %+v", got, want)
	}
}

func TestLayoutGrid(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		cols   []float64
		rows   []float64
	}{
		{
			name:   "square",
			layout: squareLayout(),
			cols:   []float64{15, 25},
			rows:   []float64{0, 10},
		},
		{
			name: "terminal units",
			layout: Layout{
				Bounds:   core.NewBounds(0, 0, 12, 8),
				Margin:   2,
				Diameter: 1,
			},
			cols: []float64{1.5, 2.5, 3.5, 4.5, 5.5, 6.5, 7.5, 8.5, 9.5},
			rows: []float64{2, 3, 4, 5, 6, 7},
		},
		{
			name: "offset bounds",
			layout: Layout{
				Bounds:   core.NewBounds(100, 50, 50, 20),
				Diameter: 10,
			},
			cols: []float64{115, 125},
			rows: []float64{50, 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.layout.Columns(); !slices.Equal(got, tt.cols) {
				t.Errorf("Columns() = %v, want %v", got, tt.cols)
			}
			if got := tt.layout.Rows(); !slices.Equal(got, tt.rows) {
				t.Errorf("Rows() = %v, want %v", got, tt.rows)
			}
		})
	}
}

func TestPopulateTinyAreaIsEmpty(t *testing.T) {
	layout := Layout{Bounds: core.NewBounds(0, 0, 25, 5), Diameter: 10}

	s, err := Populate(layout, DefaultPalette(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", s.Len())
	}
}

func TestPopulateInvalidConfiguration(t *testing.T) {
	valid := squareLayout()

	tests := []struct {
		name    string
		layout  Layout
		palette Palette
	}{
		{name: "zero diameter", layout: Layout{Bounds: valid.Bounds}, palette: DefaultPalette()},
		{name: "negative diameter", layout: Layout{Bounds: valid.Bounds, Diameter: -1}, palette: DefaultPalette()},
		{name: "negative margin", layout: Layout{Bounds: valid.Bounds, Diameter: 10, Margin: -1}, palette: DefaultPalette()},
		{name: "empty bounds", layout: Layout{Bounds: core.NewBounds(0, 0, 0, 20), Diameter: 10}, palette: DefaultPalette()},
		{name: "empty palette", layout: valid, palette: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Populate(tt.layout, tt.palette, newScriptedRand())
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("err = %v, expected ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestPopulatePiecesInsideBounds(t *testing.T) {
	layout := Layout{Bounds: core.NewBounds(0, 0, 40, 24), Margin: 2, Diameter: 1}
	palette := DefaultPalette()

	s, err := Populate(layout, palette, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if want := len(layout.Columns()) * len(layout.Rows()); s.Len() != want {
		t.Errorf("Len() = %d, expected %d", s.Len(), want)
	}
	for _, p := range s.Pieces() {
		if !layout.Bounds.Contains(p.Pos) {
			t.Errorf("piece %d at %v outside bounds", p.ID, p.Pos)
		}
		if p.Pos.Y < layout.Margin {
			t.Errorf("piece %d at %v inside the margin", p.ID, p.Pos)
		}
		if !slices.Contains(palette, p.Color) {
			t.Errorf("piece %d has color %v outside palette", p.ID, p.Color)
		}
	}
}
