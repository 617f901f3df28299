package balls

import (
	"testing"

	"github.com/vovakirdan/ballpop/internal/core"
)

// scriptedRand returns queued values in order, then 0 once the queue runs out.
type scriptedRand struct {
	values []int
	next   int
}

var _ RandomSource = (*scriptedRand)(nil)

func newScriptedRand(values ...int) *scriptedRand {
	return &scriptedRand{values: values}
}

func (r *scriptedRand) Intn(n int) int {
	if r.next >= len(r.values) {
		return 0
	}
	v := r.values[r.next]
	r.next++
	return v % n
}

// squareLayout is the 2x2 board: columns at x=15,25 and rows at y=0,10.
func squareLayout() Layout {
	return Layout{
		Bounds:   core.NewBounds(0, 0, 50, 20),
		Margin:   0,
		Diameter: 10,
	}
}

// grid builds a PieceSet from rows of color letters, top row first.
// '.' leaves a gap. Pieces sit one unit apart with unit diameter.
func grid(t *testing.T, rows ...string) *PieceSet {
	t.Helper()
	s := NewPieceSet()
	for i, row := range rows {
		y := float64(len(rows) - 1 - i)
		for x, ch := range row {
			if ch == '.' {
				continue
			}
			c, ok := ParseColorTag(string(ch))
			if !ok {
				t.Fatalf("grid: unknown color %q", ch)
			}
			s.Add(c, core.V(float64(x), y), 1)
		}
	}
	return s
}

// idAt returns the id of the piece at the given board position.
func idAt(t *testing.T, s *PieceSet, x, y float64) PieceID {
	t.Helper()
	for _, p := range s.Pieces() {
		if p.Pos == core.V(x, y) {
			return p.ID
		}
	}
	t.Fatalf("no piece at (%v, %v)", x, y)
	return 0
}

type recorder struct {
	events []Event
}

func (r *recorder) listen(e Event) {
	r.events = append(r.events, e)
}

type failingStore struct {
	loadErr error
	saveErr error
	saves   int
}

func (f *failingStore) LoadBestScore() (int, error) {
	return 0, f.loadErr
}

func (f *failingStore) SaveBestScore(int) error {
	f.saves++
	return f.saveErr
}
