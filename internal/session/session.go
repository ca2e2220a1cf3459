// internal/session/session.go
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alansouls/guessing-card-game/internal/engine"
)

// Settings holds the creation-time configuration of one game session.
type Settings struct {
	// InitialHandSize is the quota every seat starts with. StartMatch may
	// override it.
	InitialHandSize int
}

// DefaultSettings mirrors the default table: 3 cards per hand.
func DefaultSettings() Settings {
	return Settings{InitialHandSize: 3}
}

// PlayerInfo is one roster entry: a remote endpoint bound to a fixed seat.
type PlayerInfo struct {
	Seat int
	Name string
	Addr string // remote endpoint, e.g. "192.0.2.1:4000"
}

// Session is a named, server-hosted game that remote players join. The seat 0
// entry is the creator and acts as host. Sessions live for the process
// lifetime; there is no explicit teardown.
//
// Lock order: callers that hold the Registry lock may take Mu, never the
// other way around.
type Session struct {
	ID        uuid.UUID
	Name      string
	Settings  Settings
	CreatedAt time.Time

	// Engine is uninitialized until the host sends StartMatch.
	Engine *engine.Engine

	// Roster maps seat index to player info. Seats are assigned densely in
	// join order and never reused.
	Roster map[int]*PlayerInfo

	// actionSeq numbers the actions recorded to the history stream.
	actionSeq int

	Mu sync.Mutex
}

// NextActionIndex returns the sequence number for the next recorded action.
func (s *Session) NextActionIndex() int {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.actionSeq++
	return s.actionSeq
}

// newSession builds a session whose creator occupies seat 0.
func newSession(name, creatorName, creatorAddr string) *Session {
	s := &Session{
		ID:        uuid.New(),
		Name:      name,
		Settings:  DefaultSettings(),
		CreatedAt: time.Now(),
		Engine:    engine.New(),
		Roster:    make(map[int]*PlayerInfo),
	}
	s.Roster[0] = &PlayerInfo{Seat: 0, Name: creatorName, Addr: creatorAddr}
	return s
}

// addPlayerUnsafe assigns the next seat to a new endpoint. The caller holds
// the Registry lock, which serializes all joins for this room.
func (s *Session) addPlayerUnsafe(name, addr string) int {
	seat := len(s.Roster)
	s.Roster[seat] = &PlayerInfo{Seat: seat, Name: name, Addr: addr}
	return seat
}

// hasAddrUnsafe reports whether the endpoint already occupies a seat here.
func (s *Session) hasAddrUnsafe(addr string) bool {
	for _, p := range s.Roster {
		if p.Addr == addr {
			return true
		}
	}
	return false
}

// SeatByAddr returns the roster entry for an endpoint.
func (s *Session) SeatByAddr(addr string) (*PlayerInfo, bool) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	for _, p := range s.Roster {
		if p.Addr == addr {
			return p, true
		}
	}
	return nil, false
}

// HostAddr returns the creator's endpoint.
func (s *Session) HostAddr() string {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.Roster[0].Addr
}

// Players returns a copy of the roster in seat order.
func (s *Session) Players() []*PlayerInfo {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	players := make([]*PlayerInfo, 0, len(s.Roster))
	for seat := 0; seat < len(s.Roster); seat++ {
		if p, ok := s.Roster[seat]; ok {
			players = append(players, p)
		}
	}
	return players
}

// Start deals the first round for everyone currently on the roster. Host-only
// enforcement is the dispatcher's job; cardCount <= 0 falls back to the
// session settings.
func (s *Session) Start(cardCount int) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if cardCount <= 0 {
		cardCount = s.Settings.InitialHandSize
	}
	if len(s.Roster) < engine.MinSeats {
		return fmt.Errorf("room %q needs at least %d players, has %d", s.Name, engine.MinSeats, len(s.Roster))
	}
	return s.Engine.BeginGame(len(s.Roster), cardCount)
}
