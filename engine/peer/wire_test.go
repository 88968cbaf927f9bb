package peer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seabattle/types"
)

func TestShotRoundTrip(t *testing.T) {
	line := formatShot(3, 7)
	assert.Equal(t, "3 7", line)

	row, column, err := parseShot(line)
	require.NoError(t, err)
	assert.Equal(t, 3, row)
	assert.Equal(t, 7, column)
}

func TestParseShotErrors(t *testing.T) {
	for _, line := range []string{"", "3", "3 4 5", "a 4", "3 b"} {
		_, _, err := parseShot(line)
		var perr *ProtocolError
		assert.ErrorAs(t, err, &perr, "line %q", line)
	}

	// Range is not the parser's concern.
	row, column, err := parseShot("-1 12")
	require.NoError(t, err)
	assert.False(t, inRange(row, column))
}

func TestStatusCodes(t *testing.T) {
	codes := map[types.CellStatus]string{
		types.Unknown:             "0",
		types.Missed:              "1",
		types.Damaged:             "2",
		types.DestroyedHorizontal: "3",
		types.DestroyedVertical:   "4",
		types.Duplicate:           "5",
	}
	for status, code := range codes {
		assert.Equal(t, code, formatStatus(status))
		got, err := parseStatus(code)
		require.NoError(t, err)
		assert.Equal(t, status, got)
	}

	_, err := parseStatus("6")
	assert.Error(t, err)
	_, err = parseStatus("x")
	assert.Error(t, err)
	got, err := parseStatus(" 2 ")
	require.NoError(t, err)
	assert.Equal(t, types.Damaged, got)
}

func TestValidName(t *testing.T) {
	assert.True(t, validName("Alice"))
	assert.False(t, validName(""))
	assert.False(t, validName("  "))
	assert.False(t, validName("Al\nice"))
}
