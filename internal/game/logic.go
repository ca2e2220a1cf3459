// internal/game/logic.go
package game

import (
	"github.com/alansouls/guessing-card-game/internal/cards"
	"github.com/alansouls/guessing-card-game/internal/engine"
)

// Logic is the gameplay surface a front end drives, whether the table lives
// in this process or on a server. Implementations are chosen at construction
// (NewLocal here, client.Dial for the network variant); there is no
// uninitialized state to guard against.
type Logic interface {
	// BeginGame starts a match. The local variant seats seatCount players;
	// the remote variant relays a host start request for the joined room.
	BeginGame(seatCount, initialHandSize int) error
	SubmitGuess(seat, value int) error
	PlayCard(seat int, card cards.Card) error

	Hand(seat int) []cards.Card
	HandCount(seat int) int
	Quota(seat int) int
	Guess(seat int) int
	Wins(seat int) int
	ActiveSeat() int
	Bidding() bool
	Finished() bool
	Winner() (int, bool)
	PlayedCards() []cards.PlayedCard
	SeatCount() int
}

// Local drives an in-process engine for hot-seat play. All players share one
// screen, so every accessor is available for every seat.
type Local struct {
	*engine.Engine
}

var _ Logic = (*Local)(nil)

// NewLocal builds the local variant. The engine stays empty until BeginGame.
func NewLocal() *Local {
	return &Local{Engine: engine.New()}
}

// PlayCard narrows the engine's outcome-reporting signature to the shared
// surface. Front ends that need the outcome can query state afterwards.
func (l *Local) PlayCard(seat int, card cards.Card) error {
	_, err := l.Engine.PlayCard(seat, card)
	return err
}
