// internal/cards/card.go
package cards

import "fmt"

// Suit is one of the four French suits. The declaration order doubles as the
// tie-break order when two cards share a rank: Hearts < Diamonds < Clubs < Spades.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// String returns a short human-readable suit name.
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	case Spades:
		return "Spades"
	}
	return fmt.Sprintf("Suit(%d)", int(s))
}

// ParseSuit converts a numeric wire value back into a Suit.
func ParseSuit(v int) (Suit, error) {
	if v < int(Hearts) || v > int(Spades) {
		return 0, fmt.Errorf("invalid suit value %d", v)
	}
	return Suit(v), nil
}

// Rank is a card rank from Two (lowest) to Ace (highest).
type Rank int

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns a short human-readable rank name.
func (r Rank) String() string {
	names := []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "Jack", "Queen", "King", "Ace"}
	if r < Two || r > Ace {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return names[r]
}

// ParseRank converts a numeric wire value back into a Rank.
func ParseRank(v int) (Rank, error) {
	if v < int(Two) || v > int(Ace) {
		return 0, fmt.Errorf("invalid rank value %d", v)
	}
	return Rank(v), nil
}

// Card is an immutable (suit, rank) value. Cards are totally ordered: rank
// decides first, suit breaks ties. There is no trump suit anywhere in the game.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// String returns e.g. "Ace of Spades".
func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Less reports whether c sorts strictly below other in the total order used
// for trick resolution.
func (c Card) Less(other Card) bool {
	if c.Rank != other.Rank {
		return c.Rank < other.Rank
	}
	return c.Suit < other.Suit
}

// PlayedCard records which seat played a card into the current trick.
type PlayedCard struct {
	Seat int  `json:"seat"`
	Card Card `json:"card"`
}
