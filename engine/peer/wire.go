package peer

import (
	"fmt"
	"strconv"
	"strings"

	"seabattle/board"
	"seabattle/types"
)

// Wire format, one message per line:
// - Handshake: the display name
// - Setup done: any line, content ignored
// - Shot: "<row> <column>", 0-indexed
// - Reply: the integer status code of the target cell
//
// A busy listener answers a handshake with an empty line and hangs up.

// formatShot encodes shot coordinates.
func formatShot(row, column int) string {
	return fmt.Sprintf("%d %d", row, column)
}

// parseShot decodes shot coordinates. Range is checked separately by inRange.
func parseShot(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, &ProtocolError{Line: line, Reason: "expected two coordinates"}
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, &ProtocolError{Line: line, Reason: "invalid row"}
	}
	column, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, &ProtocolError{Line: line, Reason: "invalid column"}
	}
	return row, column, nil
}

// inRange reports whether the coordinates are on the board.
func inRange(row, column int) bool {
	return row >= 0 && column >= 0 && row < board.Size && column < board.Size
}

// formatStatus encodes a shot reply.
func formatStatus(status types.CellStatus) string {
	return strconv.Itoa(int(status))
}

// parseStatus decodes a shot reply.
func parseStatus(line string) (types.CellStatus, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return types.Unknown, &ProtocolError{Line: line, Reason: "invalid status code"}
	}
	status := types.CellStatus(n)
	if !status.Valid() {
		return types.Unknown, &ProtocolError{Line: line, Reason: "unknown status code"}
	}
	return status, nil
}

// validName reports whether a display name can travel as one line.
func validName(name string) bool {
	return strings.TrimSpace(name) != "" && !strings.ContainsAny(name, "\r\n")
}
