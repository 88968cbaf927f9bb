package board

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seabattle/types"
)

func TestViewRecord(t *testing.T) {
	v := NewView()
	assert.Equal(t, types.Unknown, v.At(0, 0))

	assert.False(t, v.Record(0, 0, types.Missed))
	assert.Equal(t, types.Missed, v.At(0, 0))

	assert.False(t, v.Record(-1, 0, types.Damaged))
	assert.False(t, v.Record(0, 1, types.CellStatus(9)))
	assert.Equal(t, types.Unknown, v.At(0, 1))
}

func TestViewDuplicateKeepsKnownStatus(t *testing.T) {
	v := NewView()
	v.Record(3, 3, types.Damaged)
	v.Record(3, 3, types.Duplicate)
	assert.Equal(t, types.Damaged, v.At(3, 3))

	v.Record(4, 4, types.Duplicate)
	assert.Equal(t, types.Duplicate, v.At(4, 4))
}

func TestViewPropagateHorizontal(t *testing.T) {
	v := NewView()
	v.Record(5, 2, types.Damaged)
	v.Record(5, 3, types.Damaged)
	v.Record(5, 6, types.Damaged) // across the gap
	v.Record(4, 4, types.Damaged) // wrong axis
	v.Record(5, 0, types.Damaged) // beyond a Missed cell
	v.Record(5, 1, types.Missed)

	assert.True(t, v.Record(5, 4, types.DestroyedHorizontal))

	assert.Equal(t, types.DestroyedHorizontal, v.At(5, 2))
	assert.Equal(t, types.DestroyedHorizontal, v.At(5, 3))
	assert.Equal(t, types.Unknown, v.At(5, 5))
	assert.Equal(t, types.Damaged, v.At(5, 6))
	assert.Equal(t, types.Missed, v.At(5, 1))
	assert.Equal(t, types.Damaged, v.At(5, 0))
	assert.Equal(t, types.Damaged, v.At(4, 4))
}

func TestViewPropagateVertical(t *testing.T) {
	v := NewView()
	v.Record(1, 7, types.Damaged)
	v.Record(2, 7, types.Damaged)
	v.Record(0, 7, types.Damaged)
	v.Record(3, 6, types.Damaged)
	v.Record(5, 7, types.Damaged)

	assert.True(t, v.Record(3, 7, types.DestroyedVertical))

	for i := 0; i <= 3; i++ {
		assert.Equal(t, types.DestroyedVertical, v.At(i, 7), "row %d", i)
	}
	assert.Equal(t, types.Unknown, v.At(4, 7))
	assert.Equal(t, types.Damaged, v.At(5, 7))
	assert.Equal(t, types.Damaged, v.At(3, 6))
}

func TestViewPropagateAtEdge(t *testing.T) {
	v := NewView()
	v.Record(9, 8, types.Damaged)
	v.Record(9, 9, types.DestroyedHorizontal)
	assert.Equal(t, types.DestroyedHorizontal, v.At(9, 8))

	v.Record(0, 0, types.DestroyedVertical)
	assert.Equal(t, types.DestroyedVertical, v.At(0, 0))
	assert.Equal(t, types.Unknown, v.At(1, 0))
}

func TestViewGridIsCopy(t *testing.T) {
	v := NewView()
	g := v.Grid()
	g[0][0] = types.Damaged
	assert.Equal(t, types.Unknown, v.At(0, 0))
}
