package balls

import (
	"errors"
	"fmt"
)

var (
	// ErrPieceNotFound is returned when a selected id is not on the board,
	// typically a stale id from input that raced with a removal.
	ErrPieceNotFound = errors.New("balls: piece not found")

	// ErrInvalidConfiguration is returned for layouts or palettes that could
	// never produce a playable board.
	ErrInvalidConfiguration = errors.New("balls: invalid configuration")

	// ErrBusy is returned when a session call arrives while a previous call
	// is still resolving (for example from inside an event listener).
	ErrBusy = errors.New("balls: session is resolving a turn")
)

func invalidConfigf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
