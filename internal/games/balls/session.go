package balls

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ballpop/internal/core"
)

// SessionState is the turn state of a Session.
type SessionState int

const (
	StateIdle      SessionState = iota // Waiting for input
	StateResolving                     // A selection or restart is in progress
)

// String returns a human-readable state name.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// SessionConfig is everything a Session needs from the layout and
// persistence layers. It is fixed for the lifetime of the session.
type SessionConfig struct {
	Layout  Layout
	Palette Palette

	// ComboThreshold is the group size that triggers BigComboTriggered.
	// It only drives presentation and has no effect on scoring.
	ComboThreshold int

	Rand   RandomSource
	Finder Finder              // Defaults to ScanFinder
	Best   core.BestScoreStore // Optional; nil disables persistence
}

// Validate checks the configuration without building a board.
func (c SessionConfig) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if len(c.Palette) == 0 {
		return invalidConfigf("palette is empty")
	}
	if c.ComboThreshold <= 0 {
		return invalidConfigf("combo threshold must be positive, got %d", c.ComboThreshold)
	}
	if c.Rand == nil {
		return invalidConfigf("random source is required")
	}
	return nil
}

// Outcome describes what a single selection did.
type Outcome struct {
	Group    MatchGroup
	Removed  bool // Group qualified and left the board
	Delta    int  // Score awarded
	NewBest  bool // Score set a new best
	BigCombo bool // Group reached the combo threshold
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for persistence failures and turn tracing.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session runs turns against one board. It exclusively owns its PieceSet
// and ScoreTracker. Calls must be serialized by the caller.
type Session struct {
	cfg       SessionConfig
	finder    Finder
	pieces    *PieceSet
	score     *ScoreTracker
	state     SessionState
	listeners []Listener
	logger    *log.Logger
}

// NewSession validates cfg, loads the best score and populates the board.
func NewSession(cfg SessionConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:    cfg,
		finder: cfg.Finder,
		pieces: NewPieceSet(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.finder == nil {
		s.finder = ScanFinder{}
	}

	s.score = NewScoreTracker(s.loadBest())

	if err := s.pieces.Populate(cfg.Layout, cfg.Palette, cfg.Rand); err != nil {
		return nil, err
	}
	s.logger.Debug("session started", "pieces", s.pieces.Len(), "best", s.score.Best())
	return s, nil
}

func (s *Session) loadBest() int {
	if s.cfg.Best == nil {
		return 0
	}
	best, err := s.cfg.Best.LoadBestScore()
	if err != nil {
		s.logger.Warn("could not load best score", "err", err)
		return 0
	}
	return best
}

func (s *Session) saveBest() {
	if s.cfg.Best == nil {
		return
	}
	if err := s.cfg.Best.SaveBestScore(s.score.Best()); err != nil {
		s.logger.Warn("could not save best score", "best", s.score.Best(), "err", err)
	}
}

// Subscribe registers a listener for session events.
func (s *Session) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Session) emit(e Event) {
	for _, l := range s.listeners {
		l(e)
	}
}

// SelectAt resolves a selection of the given piece. Groups smaller than
// MinGroupSize are computed and discarded. An id that is no longer on the
// board yields ErrPieceNotFound and leaves the session unchanged.
func (s *Session) SelectAt(id PieceID) (Outcome, error) {
	if s.state != StateIdle {
		return Outcome{}, ErrBusy
	}
	s.state = StateResolving
	defer func() { s.state = StateIdle }()

	group, err := s.finder.FindGroup(s.pieces, id)
	if err != nil {
		s.logger.Debug("selection ignored", "piece", id, "err", err)
		return Outcome{}, err
	}

	out := Outcome{Group: group}
	if !group.Qualifies() {
		s.logger.Debug("group too small", "piece", id, "size", group.Len())
		return out, nil
	}

	out.Delta = s.score.ApplyMatch(group.Len())
	out.NewBest = s.score.MaybeUpdateBest()
	if out.NewBest {
		s.saveBest()
	}
	removed := make([]Piece, 0, group.Len())
	for _, gid := range group.IDs {
		if p, ok := s.pieces.Get(gid); ok {
			removed = append(removed, p)
		}
	}
	s.pieces.Remove(group.IDs...)
	out.Removed = true
	out.BigCombo = group.Len() >= s.cfg.ComboThreshold

	s.logger.Debug("group removed",
		"piece", id,
		"color", group.Color,
		"size", group.Len(),
		"delta", out.Delta,
		"score", s.score.Score(),
	)

	s.emit(PiecesRemoved{IDs: group.IDs, Color: group.Color, Pieces: removed})
	s.emit(ScoreChanged{Score: s.score.Score(), Delta: out.Delta})
	if out.NewBest {
		s.emit(BestScoreChanged{Best: s.score.Best()})
	}
	if out.BigCombo {
		s.emit(BigComboTriggered{Size: group.Len()})
	}
	return out, nil
}

// Restart clears the board, zeroes the score and repopulates with the
// original layout and palette. The best score is kept.
func (s *Session) Restart() error {
	if s.state != StateIdle {
		return ErrBusy
	}
	s.state = StateResolving
	defer func() { s.state = StateIdle }()

	previous := s.score.Score()
	s.pieces.Clear()
	s.score.Reset()
	if err := s.pieces.Populate(s.cfg.Layout, s.cfg.Palette, s.cfg.Rand); err != nil {
		return err
	}

	s.logger.Debug("session restarted", "pieces", s.pieces.Len(), "previous_score", previous)
	s.emit(BoardReset{Pieces: s.pieces.Len()})
	s.emit(ScoreChanged{Score: 0, Delta: -previous})
	return nil
}

// Pieces returns the live board. Only the settling collaborator may move
// pieces; everything else must treat it as read-only.
func (s *Session) Pieces() *PieceSet {
	return s.pieces
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score.Score()
}

// Best returns the best score.
func (s *Session) Best() int {
	return s.score.Best()
}

// State returns the turn state.
func (s *Session) State() SessionState {
	return s.state
}

// Layout returns the board layout.
func (s *Session) Layout() Layout {
	return s.cfg.Layout
}

// ComboThreshold returns the configured combo threshold.
func (s *Session) ComboThreshold() int {
	return s.cfg.ComboThreshold
}
