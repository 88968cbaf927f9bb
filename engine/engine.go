// Package engine defines the interface between the game core and the UI.
package engine

import (
	"context"

	"seabattle/board"
	"seabattle/types"
)

// GameSession defines the interface for playing against a remote peer.
type GameSession interface {
	// Connect establishes the transport and exchanges display names.
	Connect(ctx context.Context) error

	// Snapshot returns a copy of the current state for rendering.
	Snapshot() *types.GameState

	// PlaceShip places a ship of the given length during setup.
	// Returns false if the placement breaks the rules.
	PlaceShip(row, column int, horizontal bool, length int) bool

	// RemoveShip removes the ship covering the cell during setup.
	RemoveShip(row, column int) (*board.Ship, bool)

	// PlaceRandomly replaces the fleet with a random complete one.
	PlaceRandomly() error

	// FinishSetup tells the peer the fleet is ready and waits for theirs.
	FinishSetup() error

	// Shoot fires at the opponent. The reply arrives through OnShot.
	Shoot(row, column int) error

	// IsMyTurn returns true if the local player may shoot.
	IsMyTurn() bool

	// OnShot registers a callback for every resolved shot, by either player.
	OnShot(func(entry types.LogEntry))

	// OnChange registers a callback for any other state change.
	OnChange(func())

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(outcome types.Outcome))

	// Close shuts down the transport.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Name      string // Local display name sent in the handshake
	Address   string // host:port to dial or listen on
	Initiator bool   // true dials and moves first; false listens
	Seed      uint64 // Seed for random fleet placement, 0 picks one from the clock
	Random    bool   // Place the fleet randomly as soon as setup starts
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Name:      "Player",
		Address:   "localhost:7070",
		Initiator: false,
	}
}
