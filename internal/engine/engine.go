// internal/engine/engine.go
package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/alansouls/guessing-card-game/internal/cards"
)

// Seat count limits for one game.
const (
	MinSeats = 2
	MaxSeats = 8
)

// PlayOutcome describes what a successful PlayCard call caused, so callers
// (UI or dispatcher) know how much state changed.
type PlayOutcome int

const (
	// OutcomeNextPlayer means the trick is still open and the turn moved on.
	OutcomeNextPlayer PlayOutcome = iota
	// OutcomeTrickWon means the trick resolved and its winner leads the next one.
	OutcomeTrickWon
	// OutcomeRoundEnded means the round finished, scoring applied, and a new
	// round was dealt.
	OutcomeRoundEnded
	// OutcomeGameOver means the round finished and only one seat survived.
	OutcomeGameOver
)

// playerSlot holds the per-seat state for the whole game. A seat whose quota
// reaches zero is eliminated: it is dealt no cards and never granted a turn.
type playerSlot struct {
	quota int // cards owed this round; shrinks on a missed bid
	hand  []cards.Card
	guess int // declared trick target for the current round
	wins  int // tricks won so far this round
}

// Engine is the local rules authority for one table of players. It is a pure
// state machine: no I/O, no timers, no locking. Callers that share an Engine
// across goroutines (the session layer) serialize access themselves.
type Engine struct {
	players     []playerSlot
	activeTurn  int
	roundLeader int // seat that opened the current trick or bidding cycle
	bidding     bool
	finished    bool
	played      []cards.PlayedCard
	rng         *rand.Rand
}

// New returns an engine with no seats. BeginGame must be called before any
// other mutating operation.
func New() *Engine {
	return &Engine{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BeginGame resets the table to seatCount seats owing initialHandSize cards
// each and deals the first round.
func (e *Engine) BeginGame(seatCount, initialHandSize int) error {
	if seatCount < MinSeats || seatCount > MaxSeats {
		return fmt.Errorf("seat count %d out of range [%d, %d]", seatCount, MinSeats, MaxSeats)
	}
	if initialHandSize < 1 || seatCount*initialHandSize > 52 {
		return fmt.Errorf("cannot deal %d cards to %d seats from one deck", initialHandSize, seatCount)
	}

	e.players = make([]playerSlot, seatCount)
	for i := range e.players {
		e.players[i].quota = initialHandSize
	}
	e.activeTurn = 0
	e.finished = false
	e.played = nil

	e.startRound()
	return nil
}

// startRound ends the game if a single seat survives, otherwise deals a fresh
// shuffled deck and opens the bidding cycle. Returns the outcome for callers
// inside PlayCard.
func (e *Engine) startRound() PlayOutcome {
	// All remaining seats can miss their bids in the same round and hit quota
	// zero together, so fewer than one survivor also ends the game (with no
	// winner).
	if e.survivorCount() <= 1 {
		e.finished = true
		return OutcomeGameOver
	}

	// The previous round may have eliminated the seat that would lead.
	for e.players[e.activeTurn].quota == 0 {
		e.activeTurn = (e.activeTurn + 1) % len(e.players)
	}
	e.roundLeader = e.activeTurn

	deck := cards.NewDeck()
	deck.Shuffle(e.rng)
	for i := range e.players {
		e.players[i].hand = deck.Deal(e.players[i].quota)
		e.players[i].guess = 0
		e.players[i].wins = 0
	}
	e.played = nil
	e.bidding = true
	return OutcomeRoundEnded
}

// SubmitGuess records the active seat's bid and advances the bidding cycle.
// When the cycle returns to the round leader, trick play begins.
func (e *Engine) SubmitGuess(seat, value int) error {
	if e.finished {
		return ErrGameFinished
	}
	if !e.bidding || seat != e.activeTurn || seat < 0 || seat >= len(e.players) {
		return ErrOutOfTurn
	}
	if value < 0 {
		return ErrInvalidBid
	}

	successor := e.nextOccupiedSeat(seat)
	if successor == e.roundLeader && e.guessTotal()+value == e.maxQuota() {
		// Last bidder may not make the totals match: someone must miss.
		return ErrInvalidBid
	}

	e.players[seat].guess = value
	e.activeTurn = successor
	if e.activeTurn == e.roundLeader {
		e.bidding = false
	}
	return nil
}

// PlayCard removes card from the acting seat's hand and advances the trick.
// The returned outcome tells the caller whether a trick, round, or the whole
// game just resolved.
func (e *Engine) PlayCard(seat int, card cards.Card) (PlayOutcome, error) {
	if e.finished {
		return 0, ErrGameFinished
	}
	if e.bidding || seat != e.activeTurn || seat < 0 || seat >= len(e.players) {
		return 0, ErrOutOfTurn
	}

	hand := e.players[seat].hand
	idx := -1
	for i, c := range hand {
		if c == card {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0, ErrCardNotHeld
	}

	e.players[seat].hand = append(hand[:idx], hand[idx+1:]...)
	e.pushPlayed(cards.PlayedCard{Seat: seat, Card: card})

	e.activeTurn = (e.activeTurn + 1) % len(e.players)
	for len(e.players[e.activeTurn].hand) == 0 && e.activeTurn != e.roundLeader {
		e.activeTurn = (e.activeTurn + 1) % len(e.players)
	}
	if e.activeTurn == e.roundLeader {
		return e.resolveTrick(), nil
	}
	return OutcomeNextPlayer, nil
}

// pushPlayed appends a played card, keeping the running maximum at the end of
// the list so trick resolution reads the last entry.
func (e *Engine) pushPlayed(pc cards.PlayedCard) {
	if n := len(e.played); n > 0 && pc.Card.Less(e.played[n-1].Card) {
		e.played = append(e.played[:n-1], pc, e.played[n-1])
		return
	}
	e.played = append(e.played, pc)
}

// resolveTrick awards the trick to the highest played card and either opens
// the next trick, scores the round, or ends the game.
func (e *Engine) resolveTrick() PlayOutcome {
	winner := e.played[len(e.played)-1].Seat
	e.players[winner].wins++
	e.played = nil

	e.activeTurn = winner
	handsLeft := false
	for i := range e.players {
		if len(e.players[i].hand) > 0 {
			handsLeft = true
			break
		}
	}

	if !handsLeft {
		e.applyScores()
		return e.startRound()
	}

	// The trick winner leads, unless it just ran out of cards.
	for len(e.players[e.activeTurn].hand) == 0 {
		e.activeTurn = (e.activeTurn + 1) % len(e.players)
	}
	e.roundLeader = e.activeTurn
	return OutcomeTrickWon
}

// applyScores decrements the quota of every seat that missed its bid. A seat
// reaching quota zero is eliminated.
func (e *Engine) applyScores() {
	for i := range e.players {
		if e.players[i].wins != e.players[i].guess {
			e.players[i].quota--
		}
	}
}

func (e *Engine) survivorCount() int {
	n := 0
	for i := range e.players {
		if e.players[i].quota > 0 {
			n++
		}
	}
	return n
}

// nextOccupiedSeat returns the next seat after from that still holds cards,
// wrapping around the table.
func (e *Engine) nextOccupiedSeat(from int) int {
	next := (from + 1) % len(e.players)
	for len(e.players[next].hand) == 0 && next != from {
		next = (next + 1) % len(e.players)
	}
	return next
}

func (e *Engine) guessTotal() int {
	total := 0
	for i := range e.players {
		total += e.players[i].guess
	}
	return total
}

func (e *Engine) maxQuota() int {
	max := 0
	for i := range e.players {
		if e.players[i].quota > max {
			max = e.players[i].quota
		}
	}
	return max
}

// SeatCount returns the number of seats at the table.
func (e *Engine) SeatCount() int {
	return len(e.players)
}

// Hand returns a copy of the cards a seat currently holds.
func (e *Engine) Hand(seat int) []cards.Card {
	hand := make([]cards.Card, len(e.players[seat].hand))
	copy(hand, e.players[seat].hand)
	return hand
}

// HandCount returns how many cards a seat currently holds.
func (e *Engine) HandCount(seat int) int {
	return len(e.players[seat].hand)
}

// Quota returns the number of cards a seat is owed this round. Zero means the
// seat is eliminated.
func (e *Engine) Quota(seat int) int {
	return e.players[seat].quota
}

// Guess returns a seat's declared trick target for the current round.
func (e *Engine) Guess(seat int) int {
	return e.players[seat].guess
}

// Wins returns the tricks a seat has won this round.
func (e *Engine) Wins(seat int) int {
	return e.players[seat].wins
}

// ActiveSeat returns the seat expected to act next.
func (e *Engine) ActiveSeat() int {
	return e.activeTurn
}

// Bidding reports whether the table is in the bidding phase.
func (e *Engine) Bidding() bool {
	return e.bidding
}

// Finished reports whether the game has ended.
func (e *Engine) Finished() bool {
	return e.finished
}

// Winner returns the sole surviving seat once the game has finished.
func (e *Engine) Winner() (int, bool) {
	if !e.finished {
		return 0, false
	}
	for i := range e.players {
		if e.players[i].quota > 0 {
			return i, true
		}
	}
	return 0, false
}

// PlayedCards returns a copy of the cards in the open trick. The running
// maximum is always the last entry.
func (e *Engine) PlayedCards() []cards.PlayedCard {
	played := make([]cards.PlayedCard, len(e.played))
	copy(played, e.played)
	return played
}
