// internal/session/registry_test.go
package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinCreatesRoom(t *testing.T) {
	r := NewRegistry()

	sess, seat, err := r.JoinOrCreate("Room1", "Bob", "192.0.2.1:4000")
	require.NoError(t, err)
	assert.Equal(t, 0, seat, "creator takes seat 0")
	assert.Equal(t, "Room1", sess.Name)
	assert.Equal(t, 1, r.Len())

	found, ok := r.FindByName("Room1")
	require.True(t, ok)
	assert.Same(t, sess, found)

	found, ok = r.FindByAddr("192.0.2.1:4000")
	require.True(t, ok)
	assert.Same(t, sess, found)
}

func TestJoinAssignsNextSeat(t *testing.T) {
	r := NewRegistry()
	_, _, err := r.JoinOrCreate("Room1", "Bob", "192.0.2.1:4000")
	require.NoError(t, err)

	sess, seat, err := r.JoinOrCreate("Room1", "Carol", "192.0.2.2:4000")
	require.NoError(t, err)
	assert.Equal(t, 1, seat)

	_, seat, err = r.JoinOrCreate("Room1", "Dave", "192.0.2.3:4000")
	require.NoError(t, err)
	assert.Equal(t, 2, seat)

	players := sess.Players()
	require.Len(t, players, 3)
	assert.Equal(t, "Bob", players[0].Name)
	assert.Equal(t, "Dave", players[2].Name)
}

// TestDuplicateJoins is end-to-end scenario D: rejoining the same room and
// joining a second room from one endpoint fail differently.
func TestDuplicateJoins(t *testing.T) {
	r := NewRegistry()
	addr := "192.0.2.1:4000"

	_, _, err := r.JoinOrCreate("Room1", "Bob", addr)
	require.NoError(t, err)

	_, _, err = r.JoinOrCreate("Room1", "Bob", addr)
	assert.ErrorIs(t, err, ErrAddrInThisSession)

	_, _, err = r.JoinOrCreate("Room2", "Bob", addr)
	assert.ErrorIs(t, err, ErrAddrInSession)

	// Neither failure created Room2.
	_, ok := r.FindByName("Room2")
	assert.False(t, ok)
}

func TestStrictJoinRequiresRoom(t *testing.T) {
	r := NewRegistry()

	_, _, err := r.Join("Room1", "Bob", "192.0.2.1:4000")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.Equal(t, 0, r.Len(), "strict join never creates a room")

	_, err = r.Create("Room1", "Bob", "192.0.2.1:4000")
	require.NoError(t, err)

	_, seat, err := r.Join("Room1", "Carol", "192.0.2.2:4000")
	require.NoError(t, err)
	assert.Equal(t, 1, seat)
}

func TestCreateCollisions(t *testing.T) {
	r := NewRegistry()

	_, err := r.Create("Room1", "Bob", "192.0.2.1:4000")
	require.NoError(t, err)

	_, err = r.Create("Room1", "Carol", "192.0.2.2:4000")
	assert.ErrorIs(t, err, ErrRoomExists)

	_, err = r.Create("Room2", "Bob", "192.0.2.1:4000")
	assert.ErrorIs(t, err, ErrAddrInSession)
}

func TestFindMisses(t *testing.T) {
	r := NewRegistry()
	_, ok := r.FindByName("nope")
	assert.False(t, ok)
	_, ok = r.FindByAddr("192.0.2.9:1")
	assert.False(t, ok)
}

// TestConcurrentJoins checks that racing joins to one room never collide on
// a seat.
func TestConcurrentJoins(t *testing.T) {
	r := NewRegistry()
	_, _, err := r.JoinOrCreate("Room1", "host", "192.0.2.0:4000")
	require.NoError(t, err)

	const joiners = 7
	seats := make(chan int, joiners)
	var wg sync.WaitGroup
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			addr := fmt.Sprintf("192.0.2.%d:4000", i+1)
			_, seat, err := r.JoinOrCreate("Room1", fmt.Sprintf("p%d", i), addr)
			assert.NoError(t, err)
			seats <- seat
		}(i)
	}
	wg.Wait()
	close(seats)

	seen := make(map[int]bool)
	for seat := range seats {
		assert.False(t, seen[seat], "seat %d assigned twice", seat)
		assert.Greater(t, seat, 0)
		assert.LessOrEqual(t, seat, joiners)
		seen[seat] = true
	}
	assert.Len(t, seen, joiners)
}

func TestSessionStart(t *testing.T) {
	r := NewRegistry()
	sess, _, err := r.JoinOrCreate("Room1", "Bob", "192.0.2.1:4000")
	require.NoError(t, err)

	// One player is not enough.
	assert.Error(t, sess.Start(3))

	_, _, err = r.JoinOrCreate("Room1", "Carol", "192.0.2.2:4000")
	require.NoError(t, err)

	require.NoError(t, sess.Start(3))
	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	assert.Equal(t, 2, sess.Engine.SeatCount())
	assert.True(t, sess.Engine.Bidding())
	assert.Equal(t, 3, sess.Engine.HandCount(0))
}

func TestSessionStartDefaultHandSize(t *testing.T) {
	r := NewRegistry()
	sess, _, err := r.JoinOrCreate("Room1", "Bob", "192.0.2.1:4000")
	require.NoError(t, err)
	_, _, err = r.JoinOrCreate("Room1", "Carol", "192.0.2.2:4000")
	require.NoError(t, err)

	// card_count <= 0 falls back to the session settings.
	require.NoError(t, sess.Start(0))
	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	assert.Equal(t, DefaultSettings().InitialHandSize, sess.Engine.HandCount(0))
}

func TestSeatByAddr(t *testing.T) {
	r := NewRegistry()
	sess, _, err := r.JoinOrCreate("Room1", "Bob", "192.0.2.1:4000")
	require.NoError(t, err)
	_, _, err = r.JoinOrCreate("Room1", "Carol", "192.0.2.2:4000")
	require.NoError(t, err)

	p, ok := sess.SeatByAddr("192.0.2.2:4000")
	require.True(t, ok)
	assert.Equal(t, 1, p.Seat)
	assert.Equal(t, "Carol", p.Name)

	_, ok = sess.SeatByAddr("192.0.2.9:4000")
	assert.False(t, ok)

	assert.Equal(t, "192.0.2.1:4000", sess.HostAddr())
}
