// Package board implements the player's own battlefield: fleet placement
// rules, shot resolution and the per-cell status a shooter is told about.
package board

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"

	"golang.org/x/exp/rand"

	"seabattle/types"
)

const (
	Size      = 10 // cells along one axis
	FleetSize = 10 // ships in a complete fleet
)

// fleetLengths lists the full fleet in random placement order.
var fleetLengths = []int{4, 3, 3, 2, 2, 2, 1, 1, 1, 1}

// initialShipsLeft is the number of ships to place, indexed by length-1.
var initialShipsLeft = [MaxShipLength]int{4, 3, 2, 1}

// Board is the local player's grid. A nil cell is empty sea.
type Board struct {
	ships     [Size][Size]*Ship
	shotAt    [Size][Size]bool
	shipsSunk int
	shipsLeft [MaxShipLength]int
	rnd       *rand.Rand
}

// New creates an empty board drawing random placements from rnd.
// A nil rnd is replaced by a time-seeded source.
func New(rnd *rand.Rand) *Board {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &Board{shipsLeft: initialShipsLeft, rnd: rnd}
}

// NewWithSeed creates an empty board with a deterministic random source.
func NewWithSeed(seed uint64) *Board {
	return New(rand.New(rand.NewSource(seed)))
}

// Reset removes every ship and shot.
func (b *Board) Reset() {
	b.ships = [Size][Size]*Ship{}
	b.shotAt = [Size][Size]bool{}
	b.shipsSunk = 0
	b.shipsLeft = initialShipsLeft
}

func inBounds(row, column int) bool {
	return row >= 0 && column >= 0 && row < Size && column < Size
}

// isOccupied reports whether a ship sits at the cell. Cells outside the
// grid are never occupied.
func (b *Board) isOccupied(row, column int) bool {
	return inBounds(row, column) && b.ships[row][column] != nil
}

// OkToPlaceShipAt reports whether a ship of the given length fits at the bow
// position without leaving the grid or touching another ship, diagonals
// included. It has no side effects.
func (b *Board) OkToPlaceShipAt(row, column int, horizontal bool, length int) bool {
	if !inBounds(row, column) || length < 1 {
		return false
	}
	if horizontal {
		if column+length > Size {
			return false
		}
		for i := -1; i <= length; i++ {
			if b.isOccupied(row, column+i) ||
				b.isOccupied(row-1, column+i) ||
				b.isOccupied(row+1, column+i) {
				return false
			}
		}
		return true
	}
	if row+length > Size {
		return false
	}
	for i := -1; i <= length; i++ {
		if b.isOccupied(row+i, column) ||
			b.isOccupied(row+i, column-1) ||
			b.isOccupied(row+i, column+1) {
			return false
		}
	}
	return true
}

// placeShipAt writes the ship into the grid. Validation must already have
// passed; placing the same ship twice leaves stale cells behind.
func (b *Board) placeShipAt(s *Ship, row, column int, horizontal bool) {
	s.Row = row
	s.Column = column
	s.Horizontal = horizontal
	for _, c := range s.Cells() {
		b.ships[c[0]][c[1]] = s
	}
}

// TryPlaceShipAt places a new ship of the given length if the rules allow it
// and one of that length is still left to place. The board is unchanged on
// failure.
func (b *Board) TryPlaceShipAt(row, column int, horizontal bool, length int) bool {
	if length < 1 || length > MaxShipLength || b.shipsLeft[length-1] == 0 {
		return false
	}
	if !b.OkToPlaceShipAt(row, column, horizontal, length) {
		return false
	}
	b.placeShipAt(mustShip(length), row, column, horizontal)
	b.shipsLeft[length-1]--
	return true
}

// RemoveShipFrom takes the ship at (row, column) off the board and makes its
// length available again. The removed ship is returned so its length and
// orientation can seed the next placement.
func (b *Board) RemoveShipFrom(row, column int) (*Ship, bool) {
	if !b.isOccupied(row, column) {
		return nil, false
	}
	s := b.ships[row][column]
	for _, c := range s.Cells() {
		b.ships[c[0]][c[1]] = nil
	}
	b.shipsLeft[s.Length()-1]++
	return s, true
}

// placeOneShipRandomly enumerates every legal placement and picks one
// uniformly, so it cannot fail while any legal placement exists.
func (b *Board) placeOneShipRandomly(s *Ship) bool {
	type position struct {
		row, column int
		horizontal  bool
	}
	var available []position
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if b.OkToPlaceShipAt(i, j, true, s.Length()) {
				available = append(available, position{i, j, true})
			}
			if b.OkToPlaceShipAt(i, j, false, s.Length()) {
				available = append(available, position{i, j, false})
			}
		}
	}
	if len(available) == 0 {
		return false
	}
	pos := available[b.rnd.Intn(len(available))]
	b.placeShipAt(s, pos.row, pos.column, pos.horizontal)
	return true
}

// PlaceAllShipsRandomly clears the board and places the complete fleet,
// largest ships first. Each ship takes a legal spot if one exists, but the
// earlier ships can be scattered so that a later one has none left; the
// whole fleet is then laid out again.
func (b *Board) PlaceAllShipsRandomly() {
	for {
		b.Reset()
		ok := true
		for _, length := range fleetLengths {
			if !b.placeOneShipRandomly(mustShip(length)) {
				ok = false
				break
			}
			b.shipsLeft[length-1]--
		}
		if ok {
			return
		}
	}
}

// ShootAt resolves a shot at (row, column) and reports whether it hit a ship.
// Coordinates off the board are a miss with no effect. Callers must reject
// repeated shots themselves; see HasShotAt.
func (b *Board) ShootAt(row, column int) bool {
	if !inBounds(row, column) {
		return false
	}
	s := b.ships[row][column]
	hit := s != nil && s.shootAt(row, column)
	b.shotAt[row][column] = true
	if hit && s.IsSunk() {
		b.shipsSunk++
	}
	return hit
}

// HasShotAt reports whether the cell has been shot at.
func (b *Board) HasShotAt(row, column int) bool {
	return inBounds(row, column) && b.shotAt[row][column]
}

// HasShipAt reports whether a ship occupies the cell.
func (b *Board) HasShipAt(row, column int) bool {
	return b.isOccupied(row, column)
}

// ShipAt returns the ship at the cell, or nil for empty sea.
func (b *Board) ShipAt(row, column int) *Ship {
	if !inBounds(row, column) {
		return nil
	}
	return b.ships[row][column]
}

// KindAt returns the class of ship at the cell.
func (b *Board) KindAt(row, column int) Kind {
	if s := b.ShipAt(row, column); s != nil {
		return s.Kind
	}
	return EmptySea
}

// CellStatus derives what a shooter is told about the cell.
func (b *Board) CellStatus(row, column int) types.CellStatus {
	if !inBounds(row, column) || !b.shotAt[row][column] {
		return types.Unknown
	}
	s := b.ships[row][column]
	if s == nil {
		return types.Missed
	}
	if s.IsSunk() {
		if s.Horizontal {
			return types.DestroyedHorizontal
		}
		return types.DestroyedVertical
	}
	return types.Damaged
}

// ShipsSunk returns the number of ships sunk so far.
func (b *Board) ShipsSunk() int {
	return b.shipsSunk
}

// IsGameOver returns true once the whole fleet has been sunk.
func (b *Board) IsGameOver() bool {
	return b.shipsSunk == FleetSize
}

// ShipsLeft returns how many ships of the given length still need placing.
func (b *Board) ShipsLeft(length int) int {
	if length < 1 || length > MaxShipLength {
		return 0
	}
	return b.shipsLeft[length-1]
}

// Ready returns true once the whole fleet is placed.
func (b *Board) Ready() bool {
	for _, n := range b.shipsLeft {
		if n != 0 {
			return false
		}
	}
	return true
}

// OccupiedCells counts cells holding a ship.
func (b *Board) OccupiedCells() int {
	n := 0
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if b.ships[i][j] != nil {
				n++
			}
		}
	}
	return n
}

// Ships returns each placed ship once, in row-major order of their bows.
func (b *Board) Ships() []*Ship {
	seen := make(map[*Ship]bool)
	var ships []*Ship
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			s := b.ships[i][j]
			if s != nil && !seen[s] {
				seen[s] = true
				ships = append(ships, s)
			}
		}
	}
	return ships
}

// Fleet copies the board into a render-friendly grid.
func (b *Board) Fleet() [][]types.FleetCell {
	out := make([][]types.FleetCell, Size)
	for i := range out {
		out[i] = make([]types.FleetCell, Size)
		for j := range out[i] {
			cell := types.FleetCell{Status: b.CellStatus(i, j)}
			if s := b.ships[i][j]; s != nil {
				cell.Occupied = true
				cell.Horizontal = s.Horizontal
				cell.Length = s.Length()
			}
			out[i][j] = cell
		}
	}
	return out
}

// String prints the grid for debugging: S for a ship, - for empty sea.
func (b *Board) String() string {
	var buffer bytes.Buffer
	w := tabwriter.NewWriter(&buffer, 2, 0, 1, ' ', 0)

	fmt.Fprint(w, "\t")
	for j := 0; j < Size; j++ {
		fmt.Fprintf(w, "%d\t", j)
	}
	fmt.Fprint(w, "\n")
	for i := 0; i < Size; i++ {
		fmt.Fprintf(w, "%d\t", i)
		for j := 0; j < Size; j++ {
			if b.ships[i][j] != nil {
				fmt.Fprint(w, "S\t")
			} else {
				fmt.Fprint(w, "-\t")
			}
		}
		fmt.Fprint(w, "\n")
	}
	w.Flush()
	return buffer.String()
}
