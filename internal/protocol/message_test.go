// internal/protocol/message_test.go
package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeJoin(t *testing.T) {
	msg := NewJoin("Bob", "Room1")
	assert.Equal(t, "0|0|player_name|Bob|room_name|Room1", string(msg.Encode()))
}

func TestEncodeJoined(t *testing.T) {
	// The assigned seat rides in the leading sender field.
	assert.Equal(t, "2|3", string(NewJoined(2).Encode()))
}

func TestEncodeGuess(t *testing.T) {
	assert.Equal(t, "1|1|guess|2", string(NewGuess(1, 2).Encode()))
}

func TestDecodeRoundTrip(t *testing.T) {
	original := NewStartMatch(0, 5)
	decoded, err := Decode(original.Encode())
	require.NoError(t, err)
	assert.Equal(t, original, decoded)

	count, err := decoded.GetInt(ParamCardCount)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestDecodeTooFewFields(t *testing.T) {
	_, err := Decode([]byte("0"))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode([]byte(""))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeBadSender(t *testing.T) {
	_, err := Decode([]byte("abc|0"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := Decode([]byte("0|9"))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode([]byte("0|x"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeDanglingKeyIgnored(t *testing.T) {
	msg, err := Decode([]byte("0|0|player_name|Bob|room_name"))
	require.NoError(t, err)
	require.Len(t, msg.Params, 1)
	name, ok := msg.Get(ParamPlayerName)
	assert.True(t, ok)
	assert.Equal(t, "Bob", name)
	_, ok = msg.Get(ParamRoomName)
	assert.False(t, ok)
}

func TestGetMissingParam(t *testing.T) {
	msg := NewJoined(0)
	_, ok := msg.Get(ParamGuess)
	assert.False(t, ok)
	_, err := msg.GetInt(ParamGuess)
	assert.Error(t, err)
}
