package board

import "seabattle/types"

// View is the shooter's picture of the opponent's board, built only from
// the status replies to its own shots.
type View struct {
	cells [Size][Size]types.CellStatus
}

// NewView returns a view with every cell Unknown.
func NewView() *View {
	return &View{}
}

// At returns the recorded status, Unknown off the board.
func (v *View) At(row, column int) types.CellStatus {
	if !inBounds(row, column) {
		return types.Unknown
	}
	return v.cells[row][column]
}

// Record stores a reply for (row, column). A Duplicate reply never
// overwrites something already learned. A destroyed reply upgrades the
// Damaged cells of the same ship. It returns true if the reply reported a
// ship destroyed.
func (v *View) Record(row, column int, status types.CellStatus) bool {
	if !inBounds(row, column) || !status.Valid() {
		return false
	}
	if status == types.Duplicate && v.cells[row][column] != types.Unknown {
		return false
	}
	v.cells[row][column] = status
	if status.IsDestroyed() {
		v.propagateDestroyed(row, column)
		return true
	}
	return false
}

// propagateDestroyed walks out from (row, column) along the orientation
// recorded there, turning contiguous Damaged cells into the same destroyed
// status. It stops at the first other status or the board edge.
func (v *View) propagateDestroyed(row, column int) {
	status := v.cells[row][column]
	if status == types.DestroyedVertical {
		for i := row - 1; i >= 0 && v.cells[i][column] == types.Damaged; i-- {
			v.cells[i][column] = status
		}
		for i := row + 1; i < Size && v.cells[i][column] == types.Damaged; i++ {
			v.cells[i][column] = status
		}
		return
	}
	for j := column - 1; j >= 0 && v.cells[row][j] == types.Damaged; j-- {
		v.cells[row][j] = status
	}
	for j := column + 1; j < Size && v.cells[row][j] == types.Damaged; j++ {
		v.cells[row][j] = status
	}
}

// Grid copies the view for rendering.
func (v *View) Grid() [][]types.CellStatus {
	out := make([][]types.CellStatus, Size)
	for i := range out {
		out[i] = make([]types.CellStatus, Size)
		copy(out[i], v.cells[i][:])
	}
	return out
}
