// internal/session/registry.go
package session

import (
	"errors"
	"log"
	"sync"
)

// Session errors, reported back to clients as error-string replies.
var (
	ErrRoomExists        = errors.New("a room with this name already exists")
	ErrRoomNotFound      = errors.New("room not found")
	ErrAddrInSession     = errors.New("player already in a game")
	ErrAddrInThisSession = errors.New("player already in this room")
)

// Registry indexes every active session by room name and by member endpoint,
// so that a room name is unique and an endpoint occupies at most one session.
// One Registry is created per server process and lives for its lifetime.
type Registry struct {
	mu     sync.Mutex
	byName map[string]*Session
	byAddr map[string]*Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Session),
		byAddr: make(map[string]*Session),
	}
}

// Create allocates a new session with the creator on seat 0. Fails if the
// room name is taken or the endpoint already occupies any session.
func (r *Registry) Create(roomName, creatorName, creatorAddr string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createUnsafe(roomName, creatorName, creatorAddr)
}

func (r *Registry) createUnsafe(roomName, creatorName, creatorAddr string) (*Session, error) {
	if _, taken := r.byAddr[creatorAddr]; taken {
		return nil, ErrAddrInSession
	}
	if _, taken := r.byName[roomName]; taken {
		return nil, ErrRoomExists
	}

	s := newSession(roomName, creatorName, creatorAddr)
	r.byName[roomName] = s
	r.byAddr[creatorAddr] = s
	log.Printf("Registry: created room %q (%s), host %q at %s", roomName, s.ID, creatorName, creatorAddr)
	return s, nil
}

// Join seats a new endpoint in an existing room. Fails with ErrRoomNotFound
// when no such room exists.
//
// The membership check against the target room runs before the any-session
// check, so rejoining the same room and joining a second room report
// different errors.
func (r *Registry) Join(roomName, playerName, addr string) (*Session, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.joinUnsafe(roomName, playerName, addr)
}

func (r *Registry) joinUnsafe(roomName, playerName, addr string) (*Session, int, error) {
	s, ok := r.byName[roomName]
	if !ok {
		return nil, 0, ErrRoomNotFound
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.hasAddrUnsafe(addr) {
		return nil, 0, ErrAddrInThisSession
	}
	if _, taken := r.byAddr[addr]; taken {
		return nil, 0, ErrAddrInSession
	}
	seat := s.addPlayerUnsafe(playerName, addr)
	r.byAddr[addr] = s
	log.Printf("Registry: %q at %s joined room %q as seat %d", playerName, addr, roomName, seat)
	return s, seat, nil
}

// JoinOrCreate is the whole sequence behind a wire Join request, atomic under
// the registry lock so concurrent joins can neither collide on a seat nor
// race a room creation. If the room does not exist it is created and the
// caller takes seat 0 as host.
func (r *Registry) JoinOrCreate(roomName, playerName, addr string) (*Session, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, seat, err := r.joinUnsafe(roomName, playerName, addr)
	if !errors.Is(err, ErrRoomNotFound) {
		return s, seat, err
	}

	s, err = r.createUnsafe(roomName, playerName, addr)
	if err != nil {
		return nil, 0, err
	}
	return s, 0, nil
}

// FindByName returns the session registered under a room name.
func (r *Registry) FindByName(roomName string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byName[roomName]
	return s, ok
}

// FindByAddr returns the session an endpoint belongs to. Gameplay requests
// are resolved through this lookup.
func (r *Registry) FindByAddr(addr string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byAddr[addr]
	return s, ok
}

// Len returns the number of active sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byName)
}
