// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/alansouls/guessing-card-game/internal/config"
	"github.com/alansouls/guessing-card-game/internal/engine"
	"github.com/alansouls/guessing-card-game/internal/history"
	"github.com/alansouls/guessing-card-game/internal/protocol"
	"github.com/alansouls/guessing-card-game/internal/session"
)

// maxDatagramSize bounds inbound packets; the protocol never comes close.
const maxDatagramSize = 1024

// Server receives game datagrams, dispatches them against the session
// registry, and sends replies. Every inbound datagram is handled by its own
// goroutine that runs to completion; there is no per-connection state.
type Server struct {
	log      *logrus.Logger
	registry *session.Registry
	recorder *history.Recorder
	bindAddr string

	conn  *net.UDPConn
	ready chan struct{}
}

// New builds a server. recorder may be nil to disable history recording.
func New(cfg config.Config, logger *logrus.Logger, registry *session.Registry, recorder *history.Recorder) *Server {
	return &Server{
		log:      logger,
		registry: registry,
		recorder: recorder,
		bindAddr: cfg.BindAddr,
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the server is bound and receiving. Callers that embed
// the server (or tests) wait on it before dialing.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Run binds the UDP endpoint and serves until ctx is cancelled. A bind
// failure is fatal and returned immediately.
func (s *Server) Run(ctx context.Context) error {
	addr, err := net.ResolveUDPAddr("udp", s.bindAddr)
	if err != nil {
		return fmt.Errorf("invalid bind address %q: %w", s.bindAddr, err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind %q: %w", s.bindAddr, err)
	}
	s.conn = conn
	s.log.WithField("addr", conn.LocalAddr().String()).Info("game server listening")
	close(s.ready)

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	buf := make([]byte, maxDatagramSize)
	for {
		n, src, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		}
		payload := make([]byte, n)
		copy(payload, buf[:n])
		go s.handleDatagram(payload, src)
	}
}

// LocalAddr returns the bound endpoint, valid once Run has started listening.
func (s *Server) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

// handleDatagram decodes one datagram and dispatches it. Malformed datagrams
// are dropped without a reply.
func (s *Server) handleDatagram(data []byte, src *net.UDPAddr) {
	msg, err := protocol.Decode(data)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"remote": src.String(),
			"error":  err,
		}).Debug("dropping malformed datagram")
		return
	}

	switch msg.Type {
	case protocol.TypeJoin:
		s.handleJoin(&msg, src)
	case protocol.TypeStartMatch:
		s.handleStartMatch(&msg, src)
	case protocol.TypeGuess:
		s.handleGuess(&msg, src)
	case protocol.TypePlayCard:
		s.handlePlayCard(&msg, src)
	default:
		// Joined/UpdateState are server-to-client only.
		s.log.WithFields(logrus.Fields{
			"remote": src.String(),
			"type":   int(msg.Type),
		}).Debug("dropping server-bound reply type")
	}
}

// handleJoin enters (or creates) a room for the sender and replies with the
// assigned seat.
func (s *Server) handleJoin(msg *protocol.Message, src *net.UDPAddr) {
	playerName, okName := msg.Get(protocol.ParamPlayerName)
	roomName, okRoom := msg.Get(protocol.ParamRoomName)
	if !okName || !okRoom {
		s.sendError(src, "you must provide a player name and a room name")
		return
	}

	sess, seat, err := s.registry.JoinOrCreate(roomName, playerName, src.String())
	if err != nil {
		s.sendError(src, err.Error())
		return
	}

	s.log.WithFields(logrus.Fields{
		"room":   roomName,
		"player": playerName,
		"seat":   seat,
		"remote": src.String(),
	}).Info("player joined")

	s.send(src, protocol.NewJoined(seat))
	s.record(sess, seat, "join", map[string]interface{}{"player_name": playerName})
}

// handleStartMatch deals the first round. Only the session host (seat 0) may
// start the match.
func (s *Server) handleStartMatch(msg *protocol.Message, src *net.UDPAddr) {
	sess, player, err := s.resolveSender(src)
	if err != nil {
		s.sendError(src, err.Error())
		return
	}
	if player.Seat != 0 {
		s.sendError(src, "only the host can start the match")
		return
	}

	cardCount, err := msg.GetInt(protocol.ParamCardCount)
	if err != nil {
		s.sendError(src, "you must provide a card count")
		return
	}
	if err := sess.Start(cardCount); err != nil {
		s.sendError(src, err.Error())
		return
	}

	s.log.WithFields(logrus.Fields{
		"room":       sess.Name,
		"card_count": cardCount,
	}).Info("match started")

	s.record(sess, player.Seat, "start_match", map[string]interface{}{"card_count": cardCount})
	s.broadcastState(sess)
}

// handleGuess applies a bid from the sender's seat.
func (s *Server) handleGuess(msg *protocol.Message, src *net.UDPAddr) {
	sess, player, err := s.resolveSender(src)
	if err != nil {
		s.sendError(src, err.Error())
		return
	}
	value, err := msg.GetInt(protocol.ParamGuess)
	if err != nil {
		s.sendError(src, "you must provide a guess")
		return
	}

	sess.Mu.Lock()
	err = sess.Engine.SubmitGuess(player.Seat, value)
	sess.Mu.Unlock()
	if err != nil {
		s.sendError(src, err.Error())
		return
	}

	s.record(sess, player.Seat, "guess", map[string]interface{}{"guess": value})
	s.broadcastState(sess)
}

// handlePlayCard applies a card play from the sender's seat.
func (s *Server) handlePlayCard(msg *protocol.Message, src *net.UDPAddr) {
	sess, player, err := s.resolveSender(src)
	if err != nil {
		s.sendError(src, err.Error())
		return
	}
	card, err := protocol.CardFromMessage(msg)
	if err != nil {
		s.sendError(src, "you must provide a valid card")
		return
	}

	sess.Mu.Lock()
	outcome, err := sess.Engine.PlayCard(player.Seat, card)
	sess.Mu.Unlock()
	if err != nil {
		s.sendError(src, err.Error())
		return
	}

	s.record(sess, player.Seat, "play_card", map[string]interface{}{"card": card.String()})
	s.broadcastState(sess)

	if outcome == engine.OutcomeGameOver {
		winner := -1
		sess.Mu.Lock()
		if w, ok := sess.Engine.Winner(); ok {
			winner = w
		}
		sess.Mu.Unlock()
		s.record(sess, player.Seat, "game_over", map[string]interface{}{"winner": winner})
		s.log.WithFields(logrus.Fields{
			"room":   sess.Name,
			"winner": winner,
		}).Info("game over")
	}
}

// resolveSender maps the datagram source to its session and roster entry.
func (s *Server) resolveSender(src *net.UDPAddr) (*session.Session, *session.PlayerInfo, error) {
	sess, ok := s.registry.FindByAddr(src.String())
	if !ok {
		return nil, nil, errors.New("you are not in a room")
	}
	player, ok := sess.SeatByAddr(src.String())
	if !ok {
		return nil, nil, errors.New("you are not seated in this room")
	}
	return sess, player, nil
}

// broadcastState sends every roster member a state snapshot with their own
// hand attached. Payloads are assembled under the session lock and sent after
// releasing it.
func (s *Server) broadcastState(sess *session.Session) {
	type outgoing struct {
		addr string
		msg  protocol.Message
	}

	sess.Mu.Lock()
	eng := sess.Engine
	seats := eng.SeatCount()

	base := protocol.StateSnapshot{
		Turn:    eng.ActiveSeat(),
		Bidding: eng.Bidding(),
		Over:    eng.Finished(),
		Quotas:  make([]int, seats),
		Guesses: make([]int, seats),
		Wins:    make([]int, seats),
		Counts:  make([]int, seats),
		Played:  eng.PlayedCards(),
	}
	if winner, ok := eng.Winner(); ok {
		base.Winner = winner
	}
	for i := 0; i < seats; i++ {
		base.Quotas[i] = eng.Quota(i)
		base.Guesses[i] = eng.Guess(i)
		base.Wins[i] = eng.Wins(i)
		base.Counts[i] = eng.HandCount(i)
	}

	var out []outgoing
	for seat := 0; seat < len(sess.Roster); seat++ {
		player, ok := sess.Roster[seat]
		if !ok {
			continue
		}
		snap := base
		if seat < seats {
			snap.Hand = eng.Hand(seat)
		}
		out = append(out, outgoing{addr: player.Addr, msg: protocol.NewUpdateState(seat, snap)})
	}
	sess.Mu.Unlock()

	for _, o := range out {
		addr, err := net.ResolveUDPAddr("udp", o.addr)
		if err != nil {
			s.log.WithField("addr", o.addr).Warn("bad roster address, skipping broadcast")
			continue
		}
		s.send(addr, o.msg)
	}
}

// send writes an encoded message to one endpoint. Delivery is best-effort.
func (s *Server) send(addr *net.UDPAddr, msg protocol.Message) {
	if _, err := s.conn.WriteToUDP(msg.Encode(), addr); err != nil {
		s.log.WithFields(logrus.Fields{
			"remote": addr.String(),
			"error":  err,
		}).Warn("failed to send reply")
	}
}

// sendError replies with a bare human-readable error string. The protocol
// deliberately keeps failures unstructured.
func (s *Server) sendError(addr *net.UDPAddr, text string) {
	if _, err := s.conn.WriteToUDP([]byte(text), addr); err != nil {
		s.log.WithFields(logrus.Fields{
			"remote": addr.String(),
			"error":  err,
		}).Warn("failed to send error reply")
	}
}

// record publishes one action to the history stream, if configured.
func (s *Server) record(sess *session.Session, seat int, action string, payload map[string]interface{}) {
	if s.recorder == nil {
		return
	}
	rec := history.ActionRecord{
		SessionID:   sess.ID,
		RoomName:    sess.Name,
		ActionIndex: sess.NextActionIndex(),
		Seat:        seat,
		ActionType:  action,
		Payload:     payload,
	}
	if err := s.recorder.Record(context.Background(), rec); err != nil {
		s.log.WithError(err).Warn("failed to record action")
	}
}
