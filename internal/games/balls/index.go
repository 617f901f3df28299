package balls

import (
	"fmt"
	"math"
)

type bucket struct {
	X, Y int
}

// GridIndex buckets pieces into square cells one diameter wide so each
// frontier piece only examines the 3x3 block of cells around it. Results are
// identical to FindGroup.
type GridIndex struct {
	size    float64
	buckets map[bucket][]Piece
}

// NewGridIndex builds an index over the current contents of pieces.
// Cell size is the largest diameter present, which keeps every adjacent pair
// within neighbouring cells.
func NewGridIndex(pieces *PieceSet) *GridIndex {
	all := pieces.Pieces()

	size := 0.0
	for _, p := range all {
		size = math.Max(size, p.Diameter)
	}
	if size <= 0 {
		size = 1
	}
	// Adjacent pairs can be up to sqrt(1.1) diameters apart; one extra ring
	// of cells would be needed otherwise.
	size *= math.Sqrt(adjacencySlack)

	idx := &GridIndex{size: size, buckets: make(map[bucket][]Piece)}
	for _, p := range all {
		b := idx.bucketOf(p)
		idx.buckets[b] = append(idx.buckets[b], p)
	}
	return idx
}

func (g *GridIndex) bucketOf(p Piece) bucket {
	return bucket{
		X: int(math.Floor(p.Pos.X / g.size)),
		Y: int(math.Floor(p.Pos.Y / g.size)),
	}
}

// FindGroup returns the same group as the package-level FindGroup, using the
// index to find neighbours. The index must have been built from pieces.
func (g *GridIndex) FindGroup(pieces *PieceSet, seed PieceID) (MatchGroup, error) {
	start, ok := pieces.Get(seed)
	if !ok {
		return MatchGroup{}, fmt.Errorf("find group from %d: %w", seed, ErrPieceNotFound)
	}

	return collect(start, func(cur Piece, visit func(Piece)) {
		b := g.bucketOf(cur)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, p := range g.buckets[bucket{X: b.X + dx, Y: b.Y + dy}] {
					if Adjacent(cur, p) {
						visit(p)
					}
				}
			}
		}
	}), nil
}

// GridFinder rebuilds a GridIndex for every query. The board changes after
// each successful match, so a cached index would need the same rebuild.
type GridFinder struct{}

// FindGroup implements Finder.
func (GridFinder) FindGroup(pieces *PieceSet, seed PieceID) (MatchGroup, error) {
	return NewGridIndex(pieces).FindGroup(pieces, seed)
}

// FinderByName returns the finder for a configuration name ("scan" or "grid").
func FinderByName(name string) (Finder, error) {
	switch name {
	case "", "scan":
		return ScanFinder{}, nil
	case "grid":
		return GridFinder{}, nil
	default:
		return nil, invalidConfigf("unknown matcher %q", name)
	}
}
