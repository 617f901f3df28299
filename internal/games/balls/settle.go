package balls

import (
	"cmp"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/vovakirdan/ballpop/internal/core"
)

// Settle drops pieces toward the bottom of the board after removals: within
// each column, pieces keep their vertical order and slide into the lowest
// grid rows. It stands in for a physics engine and is not part of matching;
// the kernel only ever sees the resulting positions. Returns how many pieces
// moved.
func Settle(pieces *PieceSet, layout Layout) int {
	rows := layout.Rows()
	if len(rows) == 0 || layout.Diameter <= 0 {
		return 0
	}
	originX := layout.Bounds.X + 3*layout.Radius()

	columns := lo.GroupBy(pieces.Pieces(), func(p Piece) int {
		return int(math.Round((p.Pos.X - originX) / layout.Diameter))
	})

	moved := 0
	for _, col := range columns {
		slices.SortFunc(col, func(a, b Piece) int {
			if c := cmp.Compare(a.Pos.Y, b.Pos.Y); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
		for i, p := range col {
			if i >= len(rows) {
				break
			}
			target := core.V(p.Pos.X, rows[i])
			if target != p.Pos {
				pieces.Move(p.ID, target)
				moved++
			}
		}
	}
	return moved
}
