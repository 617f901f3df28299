// Package balls implements the ball-popping puzzle: a board of colored balls
// where selecting one removes its connected same-color group.
//
// The kernel (PieceSet, FindGroup, ScoreTracker, Session) is synchronous and
// owns no goroutines; callers serialize all calls. Game adapts the kernel to
// the arcade platform's tick/render loop.
package balls

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/vovakirdan/ballpop/internal/core"
)

// PieceID identifies a live piece. IDs are never reused within a PieceSet.
type PieceID uint32

// ColorTag is one of the closed set of ball colors.
type ColorTag uint8

const (
	ColorBlue ColorTag = iota
	ColorGreen
	ColorPurple
	ColorRed
	ColorYellow
	ColorOrange
	ColorCyan
)

// String returns the lowercase color name.
func (c ColorTag) String() string {
	switch c {
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorPurple:
		return "purple"
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorOrange:
		return "orange"
	case ColorCyan:
		return "cyan"
	default:
		return "unknown"
	}
}

// ScreenColor maps the tag to a terminal color.
func (c ColorTag) ScreenColor() core.Color {
	switch c {
	case ColorBlue:
		return core.ColorBrightBlue
	case ColorGreen:
		return core.ColorBrightGreen
	case ColorPurple:
		return core.ColorBrightMagenta
	case ColorRed:
		return core.ColorBrightRed
	case ColorYellow:
		return core.ColorBrightYellow
	case ColorOrange:
		return core.ColorOrange
	case ColorCyan:
		return core.ColorBrightCyan
	default:
		return core.ColorDefault
	}
}

// ParseColorTag converts a color name (or its first letter) to a ColorTag.
func ParseColorTag(s string) (ColorTag, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "blue", "b":
		return ColorBlue, true
	case "green", "g":
		return ColorGreen, true
	case "purple", "p":
		return ColorPurple, true
	case "red", "r":
		return ColorRed, true
	case "yellow", "y":
		return ColorYellow, true
	case "orange", "o":
		return ColorOrange, true
	case "cyan", "c":
		return ColorCyan, true
	default:
		return ColorBlue, false
	}
}

// Palette is the set of colors a board draws from.
type Palette []ColorTag

// DefaultPalette is the classic five-color set.
func DefaultPalette() Palette {
	return Palette{ColorBlue, ColorGreen, ColorPurple, ColorRed, ColorYellow}
}

// ParsePalette converts color names to a Palette, reporting the first unknown name.
func ParsePalette(names []string) (Palette, error) {
	p := make(Palette, 0, len(names))
	for _, n := range names {
		c, ok := ParseColorTag(n)
		if !ok {
			return nil, invalidConfigf("unknown color %q", n)
		}
		p = append(p, c)
	}
	return p, nil
}

// Piece is a single ball on the board.
type Piece struct {
	ID       PieceID
	Color    ColorTag
	Pos      core.Vec
	Diameter float64
}

// PieceSet is the collection of live pieces, keyed by id.
type PieceSet struct {
	pieces map[PieceID]Piece
	nextID PieceID
}

// NewPieceSet creates an empty set.
func NewPieceSet() *PieceSet {
	return &PieceSet{
		pieces: make(map[PieceID]Piece),
		nextID: 1,
	}
}

// Add inserts a new piece and returns its freshly assigned id.
func (s *PieceSet) Add(color ColorTag, pos core.Vec, diameter float64) PieceID {
	id := s.nextID
	s.nextID++
	s.pieces[id] = Piece{ID: id, Color: color, Pos: pos, Diameter: diameter}
	return id
}

// Get returns the piece with the given id.
func (s *PieceSet) Get(id PieceID) (Piece, bool) {
	p, ok := s.pieces[id]
	return p, ok
}

// Len returns the number of live pieces.
func (s *PieceSet) Len() int {
	return len(s.pieces)
}

// Remove deletes the given pieces and returns how many were actually present.
// Absent ids are ignored, so removing the same ids twice is harmless.
func (s *PieceSet) Remove(ids ...PieceID) int {
	removed := 0
	for _, id := range ids {
		if _, ok := s.pieces[id]; ok {
			delete(s.pieces, id)
			removed++
		}
	}
	return removed
}

// Clear removes every piece. The id counter keeps running so ids handed out
// before a Clear never alias pieces created after it.
func (s *PieceSet) Clear() {
	clear(s.pieces)
}

// Move updates a piece's position. Reserved for the settling collaborator;
// the matching kernel never moves pieces.
func (s *PieceSet) Move(id PieceID, pos core.Vec) bool {
	p, ok := s.pieces[id]
	if !ok {
		return false
	}
	p.Pos = pos
	s.pieces[id] = p
	return true
}

// IDs returns all live ids in ascending order.
func (s *PieceSet) IDs() []PieceID {
	ids := lo.Keys(s.pieces)
	slices.Sort(ids)
	return ids
}

// Pieces returns a copy of all live pieces ordered by id.
func (s *PieceSet) Pieces() []Piece {
	return lo.Map(s.IDs(), func(id PieceID, _ int) Piece {
		return s.pieces[id]
	})
}
