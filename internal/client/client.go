// internal/client/client.go
package client

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alansouls/guessing-card-game/internal/cards"
	"github.com/alansouls/guessing-card-game/internal/game"
	"github.com/alansouls/guessing-card-game/internal/protocol"
)

// Local bind range scanned by Dial, so several clients can share one host.
const (
	portScanStart = 4000
	portScanEnd   = 5000
)

// joinTimeout bounds how long Join waits for the server's reply. The protocol
// is best-effort: a lost datagram surfaces as this timeout.
const joinTimeout = 5 * time.Second

// Remote is the network variant of game.Logic: it relays actions to a server
// as datagrams and mirrors the table from UpdateState broadcasts. Accessors
// read the last snapshot received; they never block on the network.
type Remote struct {
	log        *logrus.Logger
	conn       *net.UDPConn
	serverAddr *net.UDPAddr

	mu   sync.Mutex
	seat int
	snap protocol.StateSnapshot

	errs chan string
	done chan struct{}
}

var _ game.Logic = (*Remote)(nil)

// Dial binds a local UDP port (scanning a fixed range) and points the client
// at serverAddr. No traffic is sent until Join.
func Dial(serverAddr string, logger *logrus.Logger) (*Remote, error) {
	remote, err := net.ResolveUDPAddr("udp", serverAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid server address %q: %w", serverAddr, err)
	}

	var conn *net.UDPConn
	for port := portScanStart; port <= portScanEnd; port++ {
		addr := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port}
		conn, err = net.ListenUDP("udp", addr)
		if err == nil {
			break
		}
		conn = nil
	}
	if conn == nil {
		return nil, fmt.Errorf("could not bind any port between %d and %d", portScanStart, portScanEnd)
	}

	return &Remote{
		log:        logger,
		conn:       conn,
		serverAddr: remote,
		seat:       -1,
		errs:       make(chan string, 8),
		done:       make(chan struct{}),
	}, nil
}

// Join enters (or creates) the named room and blocks until the server assigns
// a seat or replies with an error. On success the background state listener
// starts.
func (r *Remote) Join(playerName, roomName string) (int, error) {
	if r.Seat() >= 0 {
		// The listener owns the socket once joined; a rejoin would race it.
		return 0, errors.New("already joined a room")
	}

	msg := protocol.NewJoin(playerName, roomName)
	if _, err := r.conn.WriteToUDP(msg.Encode(), r.serverAddr); err != nil {
		return 0, fmt.Errorf("failed to send join: %w", err)
	}

	if err := r.conn.SetReadDeadline(time.Now().Add(joinTimeout)); err != nil {
		return 0, err
	}
	buf := make([]byte, 1024)
	n, _, err := r.conn.ReadFromUDP(buf)
	if err != nil {
		return 0, fmt.Errorf("no reply from server: %w", err)
	}
	r.conn.SetReadDeadline(time.Time{})

	reply, err := protocol.Decode(buf[:n])
	if err != nil {
		// Semantic failures come back as bare error strings.
		return 0, errors.New(string(buf[:n]))
	}
	if reply.Type != protocol.TypeJoined {
		return 0, fmt.Errorf("unexpected reply type %d to join", int(reply.Type))
	}

	r.mu.Lock()
	r.seat = reply.Sender
	r.mu.Unlock()

	go r.listen()
	return reply.Sender, nil
}

// listen mirrors server broadcasts into the cached snapshot until Close.
func (r *Remote) listen() {
	buf := make([]byte, 1024)
	for {
		n, _, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-r.done:
				return
			default:
			}
			r.log.WithError(err).Debug("client read failed")
			return
		}

		msg, err := protocol.Decode(buf[:n])
		if err != nil {
			// Unstructured payloads are server error strings.
			select {
			case r.errs <- string(buf[:n]):
			default:
			}
			continue
		}
		if msg.Type != protocol.TypeUpdateState {
			continue
		}
		snap, err := protocol.ParseUpdateState(&msg)
		if err != nil {
			r.log.WithError(err).Debug("discarding bad state update")
			continue
		}
		r.mu.Lock()
		r.snap = snap
		r.mu.Unlock()
	}
}

// Errors exposes server error replies received out of band.
func (r *Remote) Errors() <-chan string {
	return r.errs
}

// Seat returns the seat assigned by Join, or -1 before joining.
func (r *Remote) Seat() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seat
}

// Close stops the listener and releases the socket.
func (r *Remote) Close() error {
	close(r.done)
	return r.conn.Close()
}

// sendBestEffort fires a gameplay datagram. Outcomes arrive asynchronously as
// state updates or error strings; the send itself is the only failure mode.
func (r *Remote) sendBestEffort(msg protocol.Message) error {
	if _, err := r.conn.WriteToUDP(msg.Encode(), r.serverAddr); err != nil {
		return fmt.Errorf("failed to send: %w", err)
	}
	return nil
}

// BeginGame relays a host start request for the joined room. seatCount is
// decided by the server roster and ignored here.
func (r *Remote) BeginGame(_, initialHandSize int) error {
	return r.sendBestEffort(protocol.NewStartMatch(r.Seat(), initialHandSize))
}

// SubmitGuess relays a bid for our seat.
func (r *Remote) SubmitGuess(seat, value int) error {
	return r.sendBestEffort(protocol.NewGuess(seat, value))
}

// PlayCard relays a card play for our seat.
func (r *Remote) PlayCard(seat int, card cards.Card) error {
	return r.sendBestEffort(protocol.NewPlayCard(seat, card))
}

// Hand returns our private hand. Other seats' hands are never visible to a
// network client; asking for one yields nil.
func (r *Remote) Hand(seat int) []cards.Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seat != r.seat {
		return nil
	}
	hand := make([]cards.Card, len(r.snap.Hand))
	copy(hand, r.snap.Hand)
	return hand
}

// HandCount returns how many cards a seat holds.
func (r *Remote) HandCount(seat int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seat < 0 || seat >= len(r.snap.Counts) {
		return 0
	}
	return r.snap.Counts[seat]
}

// Quota returns a seat's current hand quota.
func (r *Remote) Quota(seat int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seat < 0 || seat >= len(r.snap.Quotas) {
		return 0
	}
	return r.snap.Quotas[seat]
}

// Guess returns a seat's declared bid.
func (r *Remote) Guess(seat int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seat < 0 || seat >= len(r.snap.Guesses) {
		return 0
	}
	return r.snap.Guesses[seat]
}

// Wins returns a seat's trick count this round.
func (r *Remote) Wins(seat int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seat < 0 || seat >= len(r.snap.Wins) {
		return 0
	}
	return r.snap.Wins[seat]
}

// ActiveSeat returns the seat expected to act next.
func (r *Remote) ActiveSeat() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap.Turn
}

// Bidding reports whether the table is in the bidding phase.
func (r *Remote) Bidding() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap.Bidding
}

// Finished reports whether the game has ended.
func (r *Remote) Finished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap.Over
}

// Winner returns the surviving seat once the game is over.
func (r *Remote) Winner() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.snap.Over {
		return 0, false
	}
	return r.snap.Winner, true
}

// PlayedCards returns the open trick as last broadcast.
func (r *Remote) PlayedCards() []cards.PlayedCard {
	r.mu.Lock()
	defer r.mu.Unlock()
	played := make([]cards.PlayedCard, len(r.snap.Played))
	copy(played, r.snap.Played)
	return played
}

// SeatCount returns the number of seats at the table.
func (r *Remote) SeatCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snap.Counts)
}
