package peer

import (
	"errors"
	"fmt"
)

var (
	ErrNotYourTurn     = errors.New("please wait for your partner's turn")
	ErrPeerNotReady    = errors.New("your partner has not placed all of their ships yet")
	ErrWrongPhase      = errors.New("not allowed in the current phase")
	ErrFleetIncomplete = errors.New("not all ships are placed")
	ErrOutOfRange      = errors.New("coordinates outside the board")
	ErrPeerBusy        = errors.New("server is busy")
	ErrDisconnected    = errors.New("connection to your partner is lost")
	ErrInvalidName     = errors.New("display name must be a single non-empty line")
)

// ProtocolError reports a line from the peer that could not be decoded.
type ProtocolError struct {
	Line   string
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s: %q", e.Reason, e.Line)
}
