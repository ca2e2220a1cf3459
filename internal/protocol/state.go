// internal/protocol/state.go
package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alansouls/guessing-card-game/internal/cards"
)

// Snapshot param keys. Per-seat lists are comma-joined in seat order; played
// cards are seat:suit:rank triples; the hand param is private to the
// recipient and holds suit:rank pairs.
const (
	ParamTurn    = "turn"
	ParamBidding = "bidding"
	ParamOver    = "over"
	ParamWinner  = "winner"
	ParamQuotas  = "quotas"
	ParamGuesses = "guesses"
	ParamWins    = "wins"
	ParamCounts  = "counts"
	ParamPlayed  = "played"
	ParamHand    = "hand"
)

// NewPlayCard builds a card play for the given seat. Suit and rank travel as
// their numeric enum values.
func NewPlayCard(seat int, c cards.Card) Message {
	return Message{
		Sender: seat,
		Type:   TypePlayCard,
		Params: []Param{
			{Key: ParamCardSuit, Value: strconv.Itoa(int(c.Suit))},
			{Key: ParamCardRank, Value: strconv.Itoa(int(c.Rank))},
		},
	}
}

// CardFromMessage extracts the card carried by a PlayCard message.
func CardFromMessage(m *Message) (cards.Card, error) {
	suitVal, err := m.GetInt(ParamCardSuit)
	if err != nil {
		return cards.Card{}, err
	}
	rankVal, err := m.GetInt(ParamCardRank)
	if err != nil {
		return cards.Card{}, err
	}
	suit, err := cards.ParseSuit(suitVal)
	if err != nil {
		return cards.Card{}, err
	}
	rank, err := cards.ParseRank(rankVal)
	if err != nil {
		return cards.Card{}, err
	}
	return cards.Card{Suit: suit, Rank: rank}, nil
}

// StateSnapshot is the UpdateState payload: everything a client needs to
// render the table, plus the recipient's private hand.
type StateSnapshot struct {
	Turn    int
	Bidding bool
	Over    bool
	Winner  int // meaningful only when Over
	Quotas  []int
	Guesses []int
	Wins    []int
	Counts  []int
	Played  []cards.PlayedCard
	Hand    []cards.Card
}

// NewUpdateState builds an UpdateState message addressed to one seat.
func NewUpdateState(seat int, s StateSnapshot) Message {
	playedParts := make([]string, len(s.Played))
	for i, pc := range s.Played {
		playedParts[i] = fmt.Sprintf("%d:%d:%d", pc.Seat, int(pc.Card.Suit), int(pc.Card.Rank))
	}
	handParts := make([]string, len(s.Hand))
	for i, c := range s.Hand {
		handParts[i] = fmt.Sprintf("%d:%d", int(c.Suit), int(c.Rank))
	}

	return Message{
		Sender: seat,
		Type:   TypeUpdateState,
		Params: []Param{
			{Key: ParamTurn, Value: strconv.Itoa(s.Turn)},
			{Key: ParamBidding, Value: boolValue(s.Bidding)},
			{Key: ParamOver, Value: boolValue(s.Over)},
			{Key: ParamWinner, Value: strconv.Itoa(s.Winner)},
			{Key: ParamQuotas, Value: joinInts(s.Quotas)},
			{Key: ParamGuesses, Value: joinInts(s.Guesses)},
			{Key: ParamWins, Value: joinInts(s.Wins)},
			{Key: ParamCounts, Value: joinInts(s.Counts)},
			{Key: ParamPlayed, Value: strings.Join(playedParts, ",")},
			{Key: ParamHand, Value: strings.Join(handParts, ",")},
		},
	}
}

// ParseUpdateState rebuilds a snapshot from an UpdateState message.
func ParseUpdateState(m *Message) (StateSnapshot, error) {
	if m.Type != TypeUpdateState {
		return StateSnapshot{}, fmt.Errorf("message type %d is not an update", int(m.Type))
	}

	var s StateSnapshot
	var err error
	if s.Turn, err = m.GetInt(ParamTurn); err != nil {
		return StateSnapshot{}, err
	}
	if s.Winner, err = m.GetInt(ParamWinner); err != nil {
		return StateSnapshot{}, err
	}
	bidding, _ := m.Get(ParamBidding)
	s.Bidding = bidding == "1"
	over, _ := m.Get(ParamOver)
	s.Over = over == "1"

	for _, f := range []struct {
		key  string
		dest *[]int
	}{
		{ParamQuotas, &s.Quotas},
		{ParamGuesses, &s.Guesses},
		{ParamWins, &s.Wins},
		{ParamCounts, &s.Counts},
	} {
		v, _ := m.Get(f.key)
		if *f.dest, err = splitInts(v); err != nil {
			return StateSnapshot{}, fmt.Errorf("bad %s list: %w", f.key, err)
		}
	}

	playedRaw, _ := m.Get(ParamPlayed)
	if playedRaw != "" {
		for _, part := range strings.Split(playedRaw, ",") {
			vals, err := splitIntsSep(part, ":")
			if err != nil || len(vals) != 3 {
				return StateSnapshot{}, fmt.Errorf("bad played card %q", part)
			}
			suit, err := cards.ParseSuit(vals[1])
			if err != nil {
				return StateSnapshot{}, err
			}
			rank, err := cards.ParseRank(vals[2])
			if err != nil {
				return StateSnapshot{}, err
			}
			s.Played = append(s.Played, cards.PlayedCard{
				Seat: vals[0],
				Card: cards.Card{Suit: suit, Rank: rank},
			})
		}
	}

	handRaw, _ := m.Get(ParamHand)
	if handRaw != "" {
		for _, part := range strings.Split(handRaw, ",") {
			vals, err := splitIntsSep(part, ":")
			if err != nil || len(vals) != 2 {
				return StateSnapshot{}, fmt.Errorf("bad hand card %q", part)
			}
			suit, err := cards.ParseSuit(vals[0])
			if err != nil {
				return StateSnapshot{}, err
			}
			rank, err := cards.ParseRank(vals[1])
			if err != nil {
				return StateSnapshot{}, err
			}
			s.Hand = append(s.Hand, cards.Card{Suit: suit, Rank: rank})
		}
	}

	return s, nil
}

func boolValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(s string) ([]int, error) {
	return splitIntsSep(s, ",")
}

func splitIntsSep(s, sep string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, sep)
	vals := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
