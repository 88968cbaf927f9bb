package board

import "fmt"

// MaxShipLength is the length of the largest ship in the fleet.
const MaxShipLength = 4

// Kind identifies a ship class. EmptySea describes a cell with no ship.
type Kind int

const (
	EmptySea Kind = iota
	Submarine
	Destroyer
	Cruiser
	Battleship
)

func (k Kind) String() string {
	switch k {
	case Submarine:
		return "submarine"
	case Destroyer:
		return "destroyer"
	case Cruiser:
		return "cruiser"
	case Battleship:
		return "battleship"
	}
	return "empty sea"
}

// Length returns the number of segments of a ship of this kind.
// EmptySea has length 1.
func (k Kind) Length() int {
	if k == EmptySea {
		return 1
	}
	return int(k)
}

// KindForLength returns the ship class with the given length, or EmptySea.
func KindForLength(length int) Kind {
	if length < 1 || length > MaxShipLength {
		return EmptySea
	}
	return Kind(length)
}

// Ship is one placed vessel. It knows its own position and damage but never
// touches the board grid; the Board owns the cells.
type Ship struct {
	Kind       Kind
	Row        int // bow row
	Column     int // bow column
	Horizontal bool

	hit     []bool
	damaged bool
}

// NewShip creates an unplaced ship of the given length.
func NewShip(length int) (*Ship, error) {
	kind := KindForLength(length)
	if kind == EmptySea {
		return nil, fmt.Errorf("invalid ship length %d", length)
	}
	return &Ship{Kind: kind, hit: make([]bool, kind.Length())}, nil
}

func mustShip(length int) *Ship {
	s, err := NewShip(length)
	if err != nil {
		panic(err)
	}
	return s
}

// Length returns the ship's length.
func (s *Ship) Length() int {
	return len(s.hit)
}

// IsSunk returns true once every segment has been hit.
func (s *Ship) IsSunk() bool {
	for _, h := range s.hit {
		if !h {
			return false
		}
	}
	return true
}

// IsDamaged returns true once any segment has been hit.
func (s *Ship) IsDamaged() bool {
	return s.damaged
}

// Hits returns a copy of the per-segment hit record, bow first.
func (s *Ship) Hits() []bool {
	out := make([]bool, len(s.hit))
	copy(out, s.hit)
	return out
}

// Cells returns the positions the ship occupies, bow first.
func (s *Ship) Cells() [][2]int {
	cells := make([][2]int, s.Length())
	for i := range cells {
		if s.Horizontal {
			cells[i] = [2]int{s.Row, s.Column + i}
		} else {
			cells[i] = [2]int{s.Row + i, s.Column}
		}
	}
	return cells
}

// segment returns the index of (row, column) along the ship, or -1.
func (s *Ship) segment(row, column int) int {
	var dist int
	if s.Horizontal {
		if row != s.Row {
			return -1
		}
		dist = column - s.Column
	} else {
		if column != s.Column {
			return -1
		}
		dist = row - s.Row
	}
	if dist < 0 || dist >= s.Length() {
		return -1
	}
	return dist
}

// shootAt marks the segment at (row, column) as hit. A sunk ship, or a
// position off the ship's axis, counts as a miss and changes nothing.
func (s *Ship) shootAt(row, column int) bool {
	if s.IsSunk() {
		return false
	}
	i := s.segment(row, column)
	if i < 0 {
		return false
	}
	s.hit[i] = true
	s.damaged = true
	return true
}
