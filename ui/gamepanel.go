package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"seabattle/types"
)

// maxLogLines is how many shot log entries fit beside the grids.
const maxLogLines = 14

var shipNames = [...]string{"Submarine", "Destroyer", "Cruiser", "Battleship"}

// GameInfoPanel displays the players, counters and shot log alongside the grids.
type GameInfoPanel struct {
	box   *tview.TextView
	state *types.GameState
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetState updates the panel with the current game state.
func (p *GameInfoPanel) SetState(state *types.GameState) {
	p.state = state
	p.box.SetText(p.render())
}

func (p *GameInfoPanel) render() string {
	if p.state == nil {
		return ""
	}
	s := p.state
	var text strings.Builder

	text.WriteString("[white::b]Game Info[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&text, "[white]You:[-:-:-] %s\n", tview.Escape(s.MyName))
	peer := s.PeerName
	if peer == "" {
		peer = "(waiting)"
	}
	fmt.Fprintf(&text, "[white]Partner:[-:-:-] %s\n", tview.Escape(peer))
	fmt.Fprintf(&text, "[white]Phase:[-:-:-] %s\n", s.Phase)

	if s.Phase == types.Setup {
		text.WriteString("\n[white::b]Ships to place[-:-:-]\n")
		text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
		for length := len(shipNames); length >= 1; length-- {
			left := s.ShipsLeft[length-1]
			color := "white"
			if left == 0 {
				color = "dimgray"
			}
			fmt.Fprintf(&text, "[%s]%d %-10s x%d[-]\n", color, length, shipNames[length-1], left)
		}
	} else {
		fmt.Fprintf(&text, "[white]Shots:[-:-:-] %d / %d\n", s.MyShots, s.PeerShots)
		fmt.Fprintf(&text, "[white]Sunk:[-:-:-] %d  [white]Lost:[-:-:-] %d\n", s.PeerDestroyed, s.ShipsSunk)
	}

	if len(s.Log) > 0 || lostGame(s) {
		text.WriteString("\n[white::b]Shots[-:-:-]\n")
		text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
		lines := logLines(s)
		start := 0
		if len(lines) > maxLogLines {
			start = len(lines) - maxLogLines
		}
		if start > 0 {
			fmt.Fprintf(&text, "[dimgray]  ··· %d earlier[-]\n", start)
		}
		for _, line := range lines[start:] {
			text.WriteString(line)
			text.WriteByte('\n')
		}
	}
	return text.String()
}

func lostGame(s *types.GameState) bool {
	return s.Outcome != nil && s.Outcome.Result == types.Lost
}

// logLines formats the shot log, closing with a notice once the local
// fleet is sunk.
func logLines(s *types.GameState) []string {
	lines := make([]string, 0, len(s.Log)+1)
	for _, entry := range s.Log {
		color := "dimgray"
		if entry.Mine {
			color = "white"
		}
		lines = append(lines, fmt.Sprintf("[%s]%s[-]", color, tview.Escape(entry.String())))
	}
	if lostGame(s) {
		lines = append(lines, "[red::b]Game over![-:-:-]")
	}
	return lines
}

// CreateGameLayout lays out both grids, the info panel and the hint bar.
func CreateGameLayout(view *GameView) *tview.Flex {
	// 3 columns of row labels plus 2 per cell, and the border
	gridWidth, gridHeight := 3+2*10+2, 10+3

	grids := tview.NewFlex().SetDirection(tview.FlexColumn)
	grids.AddItem(view.fleet.Box, gridWidth, 0, false)
	grids.AddItem(nil, 2, 0, false)
	grids.AddItem(view.target.Box, gridWidth, 0, true)

	left := tview.NewFlex().SetDirection(tview.FlexRow)
	left.AddItem(grids, gridHeight, 0, true)
	left.AddItem(view.notice, 1, 0, false)
	left.AddItem(nil, 0, 1, false)

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(left, 0, 1, true)
	boardRow.AddItem(view.panel.Box(), 40, 0, false)

	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(view.hint, 5, 0, false)

	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form tview.Primitive, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(form, maxWidth, 0, true)
	centered.AddItem(nil, 0, 1, false)

	return centered
}
