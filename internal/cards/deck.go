// internal/cards/deck.go
package cards

import "math/rand"

// Deck is an ordered pile of cards. Dealing consumes from the top (the end of
// the slice); a deck is rebuilt and reshuffled at the start of every round and
// never refilled within one.
type Deck struct {
	cards []Card
}

// NewDeck builds the full 52-card deck in declaration order.
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, Card{Suit: suit, Rank: rank})
		}
	}
	return d
}

// Shuffle randomizes the deck order using the provided source.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns n cards from the top of the deck. It panics if the
// deck holds fewer than n cards; callers deal at most 52 per round.
func (d *Deck) Deal(n int) []Card {
	cut := len(d.cards) - n
	dealt := make([]Card, n)
	copy(dealt, d.cards[cut:])
	d.cards = d.cards[:cut]
	return dealt
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}
