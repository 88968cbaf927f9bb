package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seabattle/types"
)

func TestNewBoardIsEmpty(t *testing.T) {
	b := NewWithSeed(1)

	assert.Equal(t, 0, b.OccupiedCells())
	assert.False(t, b.Ready())
	assert.Equal(t, 4, b.ShipsLeft(1))
	assert.Equal(t, 3, b.ShipsLeft(2))
	assert.Equal(t, 2, b.ShipsLeft(3))
	assert.Equal(t, 1, b.ShipsLeft(4))
	assert.Equal(t, 0, b.ShipsLeft(5))

	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			assert.Equal(t, types.Unknown, b.CellStatus(i, j))
		}
	}
}

func TestOkToPlaceShipAt(t *testing.T) {
	b := NewWithSeed(1)
	require.True(t, b.TryPlaceShipAt(4, 4, true, 2)) // (4,4)-(4,5)

	tests := []struct {
		name       string
		row, col   int
		horizontal bool
		length     int
		want       bool
	}{
		{"fits at origin", 0, 0, true, 4, true},
		{"fits at bottom edge", 9, 0, true, 4, true},
		{"fits at right edge vertical", 6, 9, false, 4, true},
		{"past right edge", 0, 7, true, 4, false},
		{"past bottom edge", 7, 0, false, 4, false},
		{"overlaps", 4, 5, false, 1, false},
		{"touches end", 4, 6, true, 1, false},
		{"touches start", 4, 1, true, 3, false},
		{"touches above", 3, 4, true, 1, false},
		{"touches below diagonally", 5, 6, false, 2, false},
		{"touches above diagonally", 2, 3, false, 2, false},
		{"one cell gap", 4, 7, true, 3, true},
		{"gap above", 2, 3, true, 4, true},
		{"negative row", -1, 0, true, 1, false},
		{"zero length", 0, 0, true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := b.OccupiedCells()
			assert.Equal(t, tt.want, b.OkToPlaceShipAt(tt.row, tt.col, tt.horizontal, tt.length))
			assert.Equal(t, before, b.OccupiedCells())
		})
	}
}

func TestTryPlaceShipAt(t *testing.T) {
	t.Run("decrements count", func(t *testing.T) {
		b := NewWithSeed(1)
		require.True(t, b.TryPlaceShipAt(0, 0, true, 4))
		assert.Equal(t, 0, b.ShipsLeft(4))
		assert.Equal(t, 4, b.OccupiedCells())
		assert.Equal(t, Battleship, b.KindAt(0, 3))
		assert.True(t, b.ShipAt(0, 0).Horizontal)
	})

	t.Run("rejects when none left", func(t *testing.T) {
		b := NewWithSeed(1)
		require.True(t, b.TryPlaceShipAt(0, 0, true, 4))
		assert.False(t, b.TryPlaceShipAt(5, 0, true, 4))
		assert.Equal(t, 4, b.OccupiedCells())
	})

	t.Run("rejects adjacency", func(t *testing.T) {
		b := NewWithSeed(1)
		require.True(t, b.TryPlaceShipAt(0, 0, false, 3))
		assert.False(t, b.TryPlaceShipAt(3, 1, true, 1))
		assert.Equal(t, 1, b.ShipsLeft(3))
		assert.Equal(t, 4, b.ShipsLeft(1))
	})

	t.Run("rejects bad length", func(t *testing.T) {
		b := NewWithSeed(1)
		assert.False(t, b.TryPlaceShipAt(0, 0, true, 5))
		assert.False(t, b.TryPlaceShipAt(0, 0, true, 0))
	})
}

func TestRemoveShipFrom(t *testing.T) {
	b := NewWithSeed(1)
	require.True(t, b.TryPlaceShipAt(2, 3, false, 3))
	require.Equal(t, 1, b.ShipsLeft(3))

	removed, ok := b.RemoveShipFrom(3, 3)
	require.True(t, ok)
	assert.Equal(t, 3, removed.Length())
	assert.False(t, removed.Horizontal)
	assert.Equal(t, 0, b.OccupiedCells())
	assert.Equal(t, 2, b.ShipsLeft(3))

	_, ok = b.RemoveShipFrom(3, 3)
	assert.False(t, ok)

	// The freed space can hold the ship again with the removed orientation.
	assert.True(t, b.TryPlaceShipAt(2, 3, removed.Horizontal, removed.Length()))
}

func TestPlaceAllShipsRandomly(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		b := NewWithSeed(seed)
		b.PlaceAllShipsRandomly()

		require.Equal(t, 20, b.OccupiedCells(), "seed %d", seed)
		require.True(t, b.Ready(), "seed %d", seed)
		for length := 1; length <= MaxShipLength; length++ {
			require.Equal(t, 0, b.ShipsLeft(length))
		}
		require.Len(t, b.Ships(), FleetSize)
		assertNoTouching(t, b)
	}
}

func TestPlaceAllShipsRandomlyIsDeterministic(t *testing.T) {
	a := NewWithSeed(42)
	a.PlaceAllShipsRandomly()
	b := NewWithSeed(42)
	b.PlaceAllShipsRandomly()

	assert.Equal(t, a.String(), b.String())
}

func TestPlaceAllShipsRandomlyReplacesFleet(t *testing.T) {
	b := NewWithSeed(7)
	require.True(t, b.TryPlaceShipAt(0, 0, true, 1))
	b.PlaceAllShipsRandomly()
	assert.Equal(t, 20, b.OccupiedCells())
	assert.Len(t, b.Ships(), FleetSize)
}

// assertNoTouching checks that every occupied cell's eight neighbors are
// either empty or part of the same ship.
func assertNoTouching(t *testing.T, b *Board) {
	t.Helper()
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			s := b.ShipAt(i, j)
			if s == nil {
				continue
			}
			for di := -1; di <= 1; di++ {
				for dj := -1; dj <= 1; dj++ {
					n := b.ShipAt(i+di, j+dj)
					if n != nil && n != s {
						t.Fatalf("ships touch at (%d,%d) and (%d,%d)\n%s", i, j, i+di, j+dj, b)
					}
				}
			}
		}
	}
}

func TestShootAtScenario(t *testing.T) {
	b := NewWithSeed(1)
	require.True(t, b.TryPlaceShipAt(2, 1, true, 2))

	assert.False(t, b.ShootAt(2, 0))
	assert.Equal(t, types.Missed, b.CellStatus(2, 0))

	assert.True(t, b.ShootAt(2, 1))
	assert.Equal(t, types.Damaged, b.CellStatus(2, 1))
	assert.True(t, b.HasShotAt(2, 1))
	assert.Equal(t, types.Unknown, b.CellStatus(2, 2))

	assert.True(t, b.ShootAt(2, 2))
	assert.Equal(t, types.DestroyedHorizontal, b.CellStatus(2, 2))
	assert.Equal(t, types.DestroyedHorizontal, b.CellStatus(2, 1))
	assert.Equal(t, 1, b.ShipsSunk())

	// A sunk ship rejects further shots and is never counted twice.
	assert.False(t, b.ShootAt(2, 2))
	assert.Equal(t, 1, b.ShipsSunk())
}

func TestShootAtVerticalDestroyed(t *testing.T) {
	b := NewWithSeed(1)
	require.True(t, b.TryPlaceShipAt(5, 5, false, 3))
	for i := 5; i < 8; i++ {
		require.True(t, b.ShootAt(i, 5))
	}
	assert.Equal(t, types.DestroyedVertical, b.CellStatus(6, 5))
	assert.True(t, b.ShipAt(6, 5).IsSunk())
}

func TestShootAtOutOfBounds(t *testing.T) {
	b := NewWithSeed(1)
	assert.False(t, b.ShootAt(-1, 0))
	assert.False(t, b.ShootAt(0, 10))
	assert.False(t, b.HasShotAt(-1, 0))
	assert.Equal(t, types.Unknown, b.CellStatus(10, 10))
}

func TestShootingEverythingEndsGame(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		b := NewWithSeed(seed)
		b.PlaceAllShipsRandomly()
		hits := 0
		for i := 0; i < Size; i++ {
			for j := 0; j < Size; j++ {
				assert.Equal(t, hits == 20, b.IsGameOver())
				if b.ShootAt(i, j) {
					hits++
				}
			}
		}
		assert.Equal(t, 20, hits)
		assert.True(t, b.IsGameOver())
		assert.Equal(t, FleetSize, b.ShipsSunk())
	}
}

func TestString(t *testing.T) {
	b := NewWithSeed(1)
	require.True(t, b.TryPlaceShipAt(0, 0, true, 2))
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, Size+1)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[1]), "0 S S -"))
}

func TestPlaceOneShipRandomlyDeadEnd(t *testing.T) {
	b := NewWithSeed(1)
	// A submarine on every even cell leaves no free cell without a neighbor.
	for i := 0; i < Size; i += 2 {
		for j := 0; j < Size; j += 2 {
			b.placeShipAt(mustShip(1), i, j, true)
		}
	}
	assert.False(t, b.placeOneShipRandomly(mustShip(1)))

	// A full layout starts over from an empty board.
	b.PlaceAllShipsRandomly()
	assert.Equal(t, 20, b.OccupiedCells())
	assert.True(t, b.Ready())
	assertNoTouching(t, b)
}
