// Package peer plays the game against a remote peer over a line-oriented
// text protocol.
package peer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/rs/zerolog/log"

	"seabattle/board"
	"seabattle/engine"
	"seabattle/types"
)

// Session implements the GameSession interface against one remote peer.
// The initiator dials and shoots first; the other side listens.
//
// Only one goroutine reads from the peer at a time: the one holding the
// current protocol step (handshake, wait for setup, await reply, await shot).
type Session struct {
	config   engine.GameConfig
	conn     *lineConn
	listener *Listener

	board *board.Board
	view  *board.View

	phase         types.Phase
	peerName      string
	myTurn        bool
	myShots       int
	peerShots     int
	peerDestroyed int
	history       []types.LogEntry
	outcome       *types.Outcome

	ctx    context.Context
	cancel context.CancelFunc

	shotCallback   func(entry types.LogEntry)
	changeCallback func()
	endCallback    func(outcome types.Outcome)

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

var _ engine.GameSession = (*Session)(nil)

// NewSession creates a session that dials or listens on Connect.
func NewSession(cfg engine.GameConfig) *Session {
	var b *board.Board
	if cfg.Seed != 0 {
		b = board.NewWithSeed(cfg.Seed)
	} else {
		b = board.New(nil)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		config: cfg,
		board:  b,
		view:   board.NewView(),
		phase:  types.Connect,
		ctx:    ctx,
		cancel: cancel,
	}
}

// NewSessionWithConn creates a session over an established stream.
// Connect then only performs the handshake.
func NewSessionWithConn(cfg engine.GameConfig, rw io.ReadWriteCloser) *Session {
	s := NewSession(cfg)
	s.conn = newLineConn(rw)
	return s
}

// Connect establishes the transport if needed and exchanges names. The
// initiator speaks first; the listener reads first, so the two never wait
// on each other.
func (s *Session) Connect(ctx context.Context) error {
	if !validName(s.config.Name) {
		return ErrInvalidName
	}
	s.mu.Lock()
	if s.phase != types.Connect {
		s.mu.Unlock()
		return ErrWrongPhase
	}
	s.mu.Unlock()

	// Close also abandons a pending accept, dial or handshake.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	if s.conn == nil {
		if err := s.openTransport(ctx); err != nil {
			return err
		}
	}

	peerName, err := s.handshake(ctx)
	if err != nil {
		s.mu.Lock()
		s.setPhase(types.EndOfGame)
		s.mu.Unlock()
		s.Close()
		return err
	}

	s.mu.Lock()
	s.peerName = peerName
	s.myTurn = s.config.Initiator
	s.setPhase(types.Setup)
	if s.config.Random {
		s.board.PlaceAllShipsRandomly()
	}
	s.mu.Unlock()

	log.Info().Str("peer", peerName).Bool("initiator", s.config.Initiator).Msg("connected")
	s.notifyChange()
	return nil
}

func (s *Session) openTransport(ctx context.Context) error {
	if s.config.Initiator {
		conn, err := Dial(ctx, s.config.Address)
		if err != nil {
			return err
		}
		return s.attach(conn, nil)
	}

	l, err := Listen(ctx, s.config.Address)
	if err != nil {
		return err
	}
	log.Info().Str("addr", l.Addr().String()).Msg("waiting for a partner")
	conn, err := l.Accept(ctx)
	if err != nil {
		l.Close()
		return err
	}
	// Keep listening so later callers are turned away as busy.
	return s.attach(conn, l)
}

// attach stores the transport, or releases it if Close already ran.
func (s *Session) attach(conn net.Conn, l *Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		if l != nil {
			l.Close()
		}
		return context.Canceled
	}
	s.conn = newLineConn(conn)
	s.listener = l
	s.mu.Unlock()
	return nil
}

func (s *Session) handshake(ctx context.Context) (string, error) {
	if s.config.Initiator {
		// A busy listener may already have hung up, so a failed write is
		// only reported if no busy line is waiting.
		werr := s.conn.writeLine(s.config.Name)
		name, err := s.conn.readLine(ctx)
		if err == nil && name == "" {
			return "", ErrPeerBusy
		}
		if werr != nil {
			return "", werr
		}
		if err != nil {
			return "", err
		}
		return name, nil
	}

	name, err := s.conn.readLine(ctx)
	if err != nil {
		return "", err
	}
	if !validName(name) {
		return "", &ProtocolError{Line: name, Reason: "invalid display name"}
	}
	if err := s.conn.writeLine(s.config.Name); err != nil {
		return "", err
	}
	return name, nil
}

// setPhase moves forward only. Must be called while holding the lock.
func (s *Session) setPhase(p types.Phase) bool {
	if p <= s.phase {
		return false
	}
	log.Info().Stringer("from", s.phase).Stringer("to", p).Msg("phase change")
	s.phase = p
	return true
}

// PlaceShip places a ship during setup.
func (s *Session) PlaceShip(row, column int, horizontal bool, length int) bool {
	s.mu.Lock()
	if s.phase != types.Setup {
		s.mu.Unlock()
		return false
	}
	placed := s.board.TryPlaceShipAt(row, column, horizontal, length)
	s.mu.Unlock()

	if placed {
		s.notifyChange()
	}
	return placed
}

// RemoveShip removes a ship during setup.
func (s *Session) RemoveShip(row, column int) (*board.Ship, bool) {
	s.mu.Lock()
	if s.phase != types.Setup {
		s.mu.Unlock()
		return nil, false
	}
	ship, ok := s.board.RemoveShipFrom(row, column)
	s.mu.Unlock()

	if ok {
		s.notifyChange()
	}
	return ship, ok
}

// PlaceRandomly replaces the fleet with a random complete one.
func (s *Session) PlaceRandomly() error {
	s.mu.Lock()
	if s.phase != types.Setup {
		s.mu.Unlock()
		return ErrWrongPhase
	}
	s.board.PlaceAllShipsRandomly()
	s.mu.Unlock()

	s.notifyChange()
	return nil
}

// FinishSetup sends the setup-done line and waits for the peer's in the
// background.
func (s *Session) FinishSetup() error {
	s.mu.Lock()
	if s.phase != types.Setup {
		s.mu.Unlock()
		return ErrWrongPhase
	}
	if !s.board.Ready() {
		s.mu.Unlock()
		return ErrFleetIncomplete
	}
	s.setPhase(types.WaitSetup)
	s.mu.Unlock()
	s.notifyChange()

	if err := s.conn.writeLine(""); err != nil {
		s.disconnect(err)
		return err
	}
	go s.waitForPeer()
	return nil
}

func (s *Session) waitForPeer() {
	if _, err := s.conn.readLine(s.ctx); err != nil {
		s.disconnect(err)
		return
	}

	s.mu.Lock()
	if !s.setPhase(types.Game) {
		s.mu.Unlock()
		return
	}
	myTurn := s.myTurn
	s.mu.Unlock()
	s.notifyChange()

	if !myTurn {
		s.awaitShot()
	}
}

// Shoot fires at the peer. It returns once the shot is sent; the reply is
// reported through OnShot.
func (s *Session) Shoot(row, column int) error {
	s.mu.Lock()
	switch {
	case s.phase == types.WaitSetup:
		s.mu.Unlock()
		return ErrPeerNotReady
	case s.phase != types.Game:
		s.mu.Unlock()
		return ErrWrongPhase
	case !s.myTurn:
		s.mu.Unlock()
		return ErrNotYourTurn
	case !inRange(row, column):
		s.mu.Unlock()
		return ErrOutOfRange
	}
	s.myTurn = false
	s.mu.Unlock()

	log.Debug().Int("row", row).Int("column", column).Msg("shoot")
	if err := s.conn.writeLine(formatShot(row, column)); err != nil {
		s.disconnect(err)
		return err
	}
	go s.awaitReply(row, column)
	return nil
}

// awaitReply reads the status for our shot, then listens for the peer's.
func (s *Session) awaitReply(row, column int) {
	line, err := s.conn.readLine(s.ctx)
	if err != nil {
		s.disconnect(err)
		return
	}
	status, perr := parseStatus(line)
	if perr != nil {
		log.Warn().Err(perr).Msg("ignoring malformed reply")
	}

	s.mu.Lock()
	if s.phase != types.Game {
		s.mu.Unlock()
		return
	}
	if perr == nil && s.view.Record(row, column, status) {
		s.peerDestroyed++
	}
	s.myShots++
	entry := types.LogEntry{Actor: s.config.Name, Row: row, Column: column, Status: status, Mine: true}
	s.history = append(s.history, entry)
	won := s.peerDestroyed >= board.FleetSize
	if won {
		s.finish(types.Won)
	}
	outcome := s.outcome
	s.mu.Unlock()

	log.Debug().Int("row", row).Int("column", column).Stringer("status", status).Msg("shot result")
	s.notifyShot(entry)
	if won {
		s.notifyEnd(*outcome)
		return
	}
	s.awaitShot()
}

// awaitShot reads the peer's shot, resolves it and replies.
func (s *Session) awaitShot() {
	line, err := s.conn.readLine(s.ctx)
	if err != nil {
		s.disconnect(err)
		return
	}

	s.mu.Lock()
	if s.phase != types.Game || s.board.IsGameOver() {
		s.mu.Unlock()
		return
	}

	row, column, perr := parseShot(line)
	var status types.CellStatus
	switch {
	case perr != nil || !inRange(row, column):
		// Treated as a miss that touches nothing.
		log.Warn().Err(perr).Str("line", line).Msg("invalid shot from peer")
		status = types.Missed
		s.peerShots++
	case s.board.HasShotAt(row, column):
		status = types.Duplicate
	default:
		s.board.ShootAt(row, column)
		status = s.board.CellStatus(row, column)
		s.peerShots++
	}
	entry := types.LogEntry{Actor: s.peerName, Row: row, Column: column, Status: status}
	s.history = append(s.history, entry)
	lost := s.board.IsGameOver()
	if lost {
		s.finish(types.Lost)
	}
	outcome := s.outcome
	s.mu.Unlock()

	// The reply must be on the wire before our own next shot can be.
	if err := s.conn.writeLine(formatStatus(status)); err != nil {
		s.notifyShot(entry)
		s.disconnect(err)
		return
	}
	if !lost {
		s.mu.Lock()
		s.myTurn = true
		s.mu.Unlock()
	}

	log.Debug().Int("row", row).Int("column", column).Stringer("status", status).Msg("shot received")
	s.notifyShot(entry)
	if lost {
		s.notifyEnd(*outcome)
	}
}

// finish records the outcome. Must be called while holding the lock.
func (s *Session) finish(result types.Result) bool {
	if !s.setPhase(types.EndOfGame) {
		return false
	}
	s.myTurn = false
	winner := ""
	switch result {
	case types.Won:
		winner = s.config.Name
	case types.Lost:
		winner = s.peerName
	}
	s.outcome = &types.Outcome{
		Result:    result,
		Winner:    winner,
		MyName:    s.config.Name,
		PeerName:  s.peerName,
		MyShots:   s.myShots,
		PeerShots: s.peerShots,
	}
	log.Info().Stringer("result", result).Int("my_shots", s.myShots).Int("peer_shots", s.peerShots).Msg("game over")
	return true
}

// disconnect ends the game after a transport failure. It does nothing if
// the game already ended.
func (s *Session) disconnect(err error) {
	if errors.Is(err, context.Canceled) {
		err = fmt.Errorf("%w: session closed", ErrDisconnected)
	}
	s.mu.Lock()
	if !s.finish(types.Disconnected) {
		s.mu.Unlock()
		return
	}
	outcome := *s.outcome
	s.mu.Unlock()

	log.Warn().Err(err).Msg("peer disconnected")
	s.notifyEnd(outcome)
}

// IsMyTurn returns true if the local player may shoot now.
func (s *Session) IsMyTurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == types.Game && s.myTurn
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() *types.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := &types.GameState{
		Phase:         s.phase,
		MyName:        s.config.Name,
		PeerName:      s.peerName,
		MyTurn:        s.phase == types.Game && s.myTurn,
		MyShots:       s.myShots,
		PeerShots:     s.peerShots,
		PeerDestroyed: s.peerDestroyed,
		ShipsSunk:     s.board.ShipsSunk(),
		Fleet:         s.board.Fleet(),
		Target:        s.view.Grid(),
		Log:           append([]types.LogEntry(nil), s.history...),
	}
	for length := 1; length <= board.MaxShipLength; length++ {
		state.ShipsLeft[length-1] = s.board.ShipsLeft(length)
	}
	if s.outcome != nil {
		o := *s.outcome
		state.Outcome = &o
	}
	return state
}

// OnShot registers a callback for every resolved shot.
func (s *Session) OnShot(callback func(entry types.LogEntry)) {
	s.mu.Lock()
	s.shotCallback = callback
	s.mu.Unlock()
}

// OnChange registers a callback for phase changes and fleet edits.
func (s *Session) OnChange(callback func()) {
	s.mu.Lock()
	s.changeCallback = callback
	s.mu.Unlock()
}

// OnGameEnd registers a callback for when the game ends.
func (s *Session) OnGameEnd(callback func(outcome types.Outcome)) {
	s.mu.Lock()
	s.endCallback = callback
	s.mu.Unlock()
}

func (s *Session) notifyShot(entry types.LogEntry) {
	s.mu.Lock()
	cb := s.shotCallback
	s.mu.Unlock()
	if cb != nil {
		cb(entry)
	}
}

func (s *Session) notifyChange() {
	s.mu.Lock()
	cb := s.changeCallback
	s.mu.Unlock()
	if cb != nil {
		cb()
	}
}

func (s *Session) notifyEnd(outcome types.Outcome) {
	s.mu.Lock()
	cb := s.endCallback
	s.mu.Unlock()
	if cb != nil {
		cb(outcome)
	}
}

// Close shuts down the transport. A read blocked on the peer then ends the
// game as a disconnection.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.mu.Lock()
		s.closed = true
		conn, l := s.conn, s.listener
		s.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		if l != nil {
			l.Close()
		}
	})
}
