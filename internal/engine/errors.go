// internal/engine/errors.go
package engine

import "errors"

// Rules errors. All of these are recoverable: the failed call leaves the
// engine exactly as it was, and the caller re-presents options to the player.
var (
	// ErrOutOfTurn is returned when a seat acts while it is not the active
	// seat, or acts in the wrong phase (playing during bidding and vice versa).
	ErrOutOfTurn = errors.New("not your turn")

	// ErrInvalidBid is returned to the last bidder of a cycle when their bid
	// would make the guess total equal the maximum hand quota. The rule
	// guarantees at least one seat misses its bid every round.
	ErrInvalidBid = errors.New("guess total cannot equal the maximum cards in hand")

	// ErrCardNotHeld is returned when a seat plays a card it does not hold.
	ErrCardNotHeld = errors.New("player does not have this card")

	// ErrGameFinished is returned by any mutating call after the game ended.
	ErrGameFinished = errors.New("game is over")
)
