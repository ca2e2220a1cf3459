// internal/cards/card_test.go
package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardOrderRankFirst(t *testing.T) {
	// Rank decides regardless of suit: the Ace of Hearts beats the King of Spades.
	king := Card{Suit: Spades, Rank: King}
	ace := Card{Suit: Hearts, Rank: Ace}
	assert.True(t, king.Less(ace))
	assert.False(t, ace.Less(king))
}

func TestCardOrderSuitBreaksTies(t *testing.T) {
	// Hearts < Diamonds < Clubs < Spades on equal rank.
	assert.True(t, Card{Suit: Hearts, Rank: Ten}.Less(Card{Suit: Diamonds, Rank: Ten}))
	assert.True(t, Card{Suit: Diamonds, Rank: Ten}.Less(Card{Suit: Clubs, Rank: Ten}))
	assert.True(t, Card{Suit: Clubs, Rank: Ten}.Less(Card{Suit: Spades, Rank: Ten}))
	assert.False(t, Card{Suit: Spades, Rank: Ten}.Less(Card{Suit: Hearts, Rank: Ten}))
}

func TestCardNeverLessThanItself(t *testing.T) {
	c := Card{Suit: Clubs, Rank: Seven}
	assert.False(t, c.Less(c))
}

func TestParseSuit(t *testing.T) {
	s, err := ParseSuit(int(Spades))
	require.NoError(t, err)
	assert.Equal(t, Spades, s)

	_, err = ParseSuit(4)
	assert.Error(t, err)
	_, err = ParseSuit(-1)
	assert.Error(t, err)
}

func TestParseRank(t *testing.T) {
	r, err := ParseRank(int(Ace))
	require.NoError(t, err)
	assert.Equal(t, Ace, r)

	_, err = ParseRank(13)
	assert.Error(t, err)
	_, err = ParseRank(-1)
	assert.Error(t, err)
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "Ace of Spades", Card{Suit: Spades, Rank: Ace}.String())
	assert.Equal(t, "2 of Hearts", Card{Suit: Hearts, Rank: Two}.String())
}
