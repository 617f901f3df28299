package balls

import (
	"github.com/vovakirdan/ballpop/internal/core"
)

// PieceAt returns the piece whose disc contains p, preferring the nearest
// center when discs overlap.
func PieceAt(pieces *PieceSet, p core.Vec) (Piece, bool) {
	var (
		hit   Piece
		found bool
		best  float64
	)
	for _, piece := range pieces.Pieces() {
		r := piece.Diameter / 2
		d := piece.Pos.DistSq(p)
		if d > r*r {
			continue
		}
		if !found || d < best {
			hit, best, found = piece, d, true
		}
	}
	return hit, found
}

// hasMoves reports whether any group on the board is large enough to remove.
func hasMoves(pieces *PieceSet, finder Finder) bool {
	seen := make(map[PieceID]struct{}, pieces.Len())
	for _, id := range pieces.IDs() {
		if _, ok := seen[id]; ok {
			continue
		}
		group, err := finder.FindGroup(pieces, id)
		if err != nil {
			continue
		}
		if group.Qualifies() {
			return true
		}
		for _, gid := range group.IDs {
			seen[gid] = struct{}{}
		}
	}
	return false
}
