// Package types contains shared data structures for seabattle.
package types

import "fmt"

// CellStatus is what a shooter learns about one cell of the defender's board.
// The integer values are sent over the wire and must not change.
type CellStatus int

const (
	Unknown             CellStatus = 0 // Not shot at yet
	Missed              CellStatus = 1 // The shot hit open water
	Damaged             CellStatus = 2 // A ship was hit but is still afloat
	DestroyedHorizontal CellStatus = 3 // Part of a sunk horizontal ship
	DestroyedVertical   CellStatus = 4 // Part of a sunk vertical ship
	Duplicate           CellStatus = 5 // The cell had been shot at before
)

// Valid reports whether s is one of the known status codes.
func (s CellStatus) Valid() bool {
	return s >= Unknown && s <= Duplicate
}

// IsDestroyed returns true for both destroyed orientations.
func (s CellStatus) IsDestroyed() bool {
	return s == DestroyedHorizontal || s == DestroyedVertical
}

// Describe returns the text used in the shot log.
func (s CellStatus) Describe() string {
	switch s {
	case Missed:
		return "missed"
	case Damaged:
		return "ship damaged"
	case DestroyedHorizontal, DestroyedVertical:
		return "ship destroyed"
	case Duplicate:
		return "duplicate shot"
	default:
		return "unknown"
	}
}

func (s CellStatus) String() string {
	switch s {
	case Unknown:
		return "Unknown"
	case Missed:
		return "Missed"
	case Damaged:
		return "Damaged"
	case DestroyedHorizontal:
		return "DestroyedHorizontal"
	case DestroyedVertical:
		return "DestroyedVertical"
	case Duplicate:
		return "Duplicate"
	}
	return fmt.Sprintf("CellStatus(%d)", int(s))
}

// Phase is the lifecycle stage of a game session. Phases only move forward.
type Phase int

const (
	Connect Phase = iota
	Setup
	WaitSetup
	Game
	EndOfGame
)

func (p Phase) String() string {
	switch p {
	case Connect:
		return "connect"
	case Setup:
		return "setup"
	case WaitSetup:
		return "wait-setup"
	case Game:
		return "game"
	case EndOfGame:
		return "end-of-game"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Result is how a session ended.
type Result int

const (
	Undecided Result = iota
	Won
	Lost
	Disconnected
)

func (r Result) String() string {
	switch r {
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Disconnected:
		return "disconnected"
	}
	return "undecided"
}

// Outcome is reported once, when a session reaches EndOfGame.
type Outcome struct {
	Result    Result
	Winner    string
	MyName    string
	PeerName  string
	MyShots   int
	PeerShots int
}

// Message renders the end-of-game notice shown to the player.
func (o Outcome) Message() string {
	if o.Result == Disconnected {
		return "Connection to your partner is lost."
	}
	return fmt.Sprintf("Game over! Player %s wins.\n%s (you) has made %d shots\n%s (partner) has made %d shots",
		o.Winner, o.MyName, o.MyShots, o.PeerName, o.PeerShots)
}

// LogEntry is one line of the shot log.
type LogEntry struct {
	Actor  string
	Row    int
	Column int
	Status CellStatus
	Mine   bool // true when the local player fired the shot
}

func (e LogEntry) String() string {
	return fmt.Sprintf("%s: (%d, %d) = %s", e.Actor, e.Row, e.Column, e.Status.Describe())
}

// FleetCell describes one cell of the local board for rendering.
type FleetCell struct {
	Occupied   bool
	Horizontal bool
	Length     int
	Status     CellStatus
}

// GameState is a deep copy of a session, safe to read from the UI goroutine.
type GameState struct {
	Phase         Phase
	MyName        string
	PeerName      string
	MyTurn        bool
	MyShots       int
	PeerShots     int
	PeerDestroyed int
	ShipsSunk     int
	ShipsLeft     [4]int // indexed by length-1
	Fleet         [][]FleetCell
	Target        [][]CellStatus
	Log           []LogEntry
	Outcome       *Outcome
}

// Finished returns true if the game is over.
func (g *GameState) Finished() bool {
	return g.Phase == EndOfGame
}

// Size returns the board edge length.
func (g *GameState) Size() int {
	return len(g.Fleet)
}

// BoardPos represents a position on the board.
type BoardPos struct {
	Row    int
	Column int
}
