package balls

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// adjacencySlack widens the exact grid spacing so touching balls (distance
// equal to one diameter) still match despite float jitter, while diagonal
// neighbours (2x the squared diameter) stay out.
const adjacencySlack = 1.1

// MinGroupSize is the smallest group that is removed and scored.
const MinGroupSize = 3

// MatchGroup is the connected same-color group found from a seed.
type MatchGroup struct {
	Seed  PieceID
	Color ColorTag
	IDs   []PieceID // Sorted ascending; always contains Seed
}

// Len returns the number of pieces in the group.
func (g MatchGroup) Len() int {
	return len(g.IDs)
}

// Contains reports whether id is a member.
func (g MatchGroup) Contains(id PieceID) bool {
	_, found := slices.BinarySearch(g.IDs, id)
	return found
}

// Qualifies reports whether the group is large enough to remove.
func (g MatchGroup) Qualifies() bool {
	return g.Len() >= MinGroupSize
}

// Threshold returns the squared-distance bound for pieces of the given diameter.
func Threshold(diameter float64) float64 {
	return diameter * diameter * adjacencySlack
}

// Adjacent reports whether two pieces match each other: same color and
// closer than the slack-widened diameter. It is symmetric.
func Adjacent(a, b Piece) bool {
	if a.Color != b.Color {
		return false
	}
	return a.Pos.DistSq(b.Pos) < Threshold(a.Diameter)
}

// Finder computes connected groups over a PieceSet.
type Finder interface {
	FindGroup(pieces *PieceSet, seed PieceID) (MatchGroup, error)
}

// ScanFinder walks the group by scanning every live piece for each frontier
// piece. O(n²) per query, fine for boards of a few hundred balls.
type ScanFinder struct{}

// FindGroup implements Finder.
func (ScanFinder) FindGroup(pieces *PieceSet, seed PieceID) (MatchGroup, error) {
	return FindGroup(pieces, seed)
}

// FindGroup returns the maximal group of pieces connected to seed through
// chains of Adjacent pairs. pieces is not modified.
func FindGroup(pieces *PieceSet, seed PieceID) (MatchGroup, error) {
	start, ok := pieces.Get(seed)
	if !ok {
		return MatchGroup{}, fmt.Errorf("find group from %d: %w", seed, ErrPieceNotFound)
	}

	all := pieces.Pieces()
	return collect(start, func(cur Piece, visit func(Piece)) {
		for _, p := range all {
			if Adjacent(cur, p) {
				visit(p)
			}
		}
	}), nil
}

// collect runs an iterative depth-first walk from start. neighbours calls
// visit for every piece adjacent to cur; already visited pieces are skipped
// here so cycles in the adjacency graph terminate.
func collect(start Piece, neighbours func(cur Piece, visit func(Piece))) MatchGroup {
	visited := map[PieceID]struct{}{start.ID: {}}
	stack := []Piece{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		neighbours(cur, func(p Piece) {
			if _, seen := visited[p.ID]; seen {
				return
			}
			visited[p.ID] = struct{}{}
			stack = append(stack, p)
		})
	}

	ids := lo.Keys(visited)
	slices.Sort(ids)

	return MatchGroup{Seed: start.ID, Color: start.Color, IDs: ids}
}
