package balls

// Event is emitted by a Session to presentation listeners.
type Event interface {
	ballsEvent()
}

// Listener receives session events synchronously, in emission order.
// Listeners must not call back into the session; such calls fail with ErrBusy.
type Listener func(Event)

// PiecesRemoved is emitted after a qualifying group leaves the board.
type PiecesRemoved struct {
	IDs    []PieceID
	Color  ColorTag
	Pieces []Piece // Removed pieces as they were just before removal
}

func (PiecesRemoved) ballsEvent() {}

// ScoreChanged is emitted whenever the current score changes, including the
// reset to zero on restart.
type ScoreChanged struct {
	Score int
	Delta int
}

func (ScoreChanged) ballsEvent() {}

// BestScoreChanged is emitted when the current score sets a new best.
type BestScoreChanged struct {
	Best int
}

func (BestScoreChanged) ballsEvent() {}

// BigComboTriggered is emitted when a removed group reaches the configured
// combo threshold.
type BigComboTriggered struct {
	Size int
}

func (BigComboTriggered) ballsEvent() {}

// BoardReset is emitted after a restart repopulates the board.
type BoardReset struct {
	Pieces int
}

func (BoardReset) ballsEvent() {}
