// internal/protocol/message.go
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MessageType is the numeric wire identifier of a message. The values are
// stable protocol constants and must not be renumbered.
type MessageType int

const (
	// Client -> server.
	TypeJoin       MessageType = 0
	TypeGuess      MessageType = 1
	TypePlayCard   MessageType = 2
	TypeStartMatch MessageType = 5

	// Server -> client.
	TypeJoined      MessageType = 3
	TypeUpdateState MessageType = 4
)

// Parameter keys used on the wire.
const (
	ParamPlayerName = "player_name"
	ParamRoomName   = "room_name"
	ParamGuess      = "guess"
	ParamCardSuit   = "card_suit"
	ParamCardRank   = "card_rank"
	ParamCardCount  = "card_count"
)

// ErrMalformed is returned by Decode for datagrams that cannot be interpreted
// at all. The dispatcher drops these without a reply.
var ErrMalformed = errors.New("malformed message")

// Param is one key/value pair in a message. Order is preserved on the wire.
type Param struct {
	Key   string
	Value string
}

// Message is one datagram payload in either direction:
//
//	<sender>|<type>(|<key>|<value>)*
//
// Sender is the seat id of the client (0 before a seat is assigned); for a
// Joined reply it carries the newly assigned seat.
type Message struct {
	Sender int
	Type   MessageType
	Params []Param
}

// Get returns the value of the first param with the given key.
func (m *Message) Get(key string) (string, bool) {
	for _, p := range m.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// GetInt returns the value of the first param with the given key parsed as an
// integer.
func (m *Message) GetInt(key string) (int, error) {
	v, ok := m.Get(key)
	if !ok {
		return 0, fmt.Errorf("missing param %q", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("param %q is not a number: %w", key, err)
	}
	return n, nil
}

// Encode renders the message in wire form.
func (m Message) Encode() []byte {
	var b strings.Builder
	b.WriteString(strconv.Itoa(m.Sender))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(int(m.Type)))
	for _, p := range m.Params {
		b.WriteByte('|')
		b.WriteString(p.Key)
		b.WriteByte('|')
		b.WriteString(p.Value)
	}
	return []byte(b.String())
}

// Decode parses a datagram payload. A trailing key with no value is ignored,
// matching the lenient behavior expected of a best-effort protocol.
func Decode(data []byte) (Message, error) {
	parts := strings.Split(string(data), "|")
	if len(parts) < 2 {
		return Message{}, fmt.Errorf("%w: need at least sender and type", ErrMalformed)
	}

	sender, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Message{}, fmt.Errorf("%w: bad sender id %q", ErrMalformed, parts[0])
	}

	code, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Message{}, fmt.Errorf("%w: bad type %q", ErrMalformed, parts[1])
	}
	mt := MessageType(code)
	switch mt {
	case TypeJoin, TypeGuess, TypePlayCard, TypeJoined, TypeUpdateState, TypeStartMatch:
	default:
		return Message{}, fmt.Errorf("%w: unknown type %d", ErrMalformed, code)
	}

	msg := Message{Sender: sender, Type: mt}
	for i := 2; i+1 < len(parts); i += 2 {
		msg.Params = append(msg.Params, Param{Key: parts[i], Value: parts[i+1]})
	}
	return msg, nil
}

// NewJoin builds the request a client sends to enter (or create) a room.
func NewJoin(playerName, roomName string) Message {
	return Message{
		Type: TypeJoin,
		Params: []Param{
			{Key: ParamPlayerName, Value: playerName},
			{Key: ParamRoomName, Value: roomName},
		},
	}
}

// NewJoined builds the reply confirming a join; seat rides in the sender field.
func NewJoined(seat int) Message {
	return Message{Sender: seat, Type: TypeJoined}
}

// NewGuess builds a bid submission for the given seat.
func NewGuess(seat, guess int) Message {
	return Message{
		Sender: seat,
		Type:   TypeGuess,
		Params: []Param{{Key: ParamGuess, Value: strconv.Itoa(guess)}},
	}
}

// NewStartMatch builds the host-only request that deals the first round.
func NewStartMatch(seat, cardCount int) Message {
	return Message{
		Sender: seat,
		Type:   TypeStartMatch,
		Params: []Param{{Key: ParamCardCount, Value: strconv.Itoa(cardCount)}},
	}
}
