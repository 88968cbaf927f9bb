// Package ui specifies custom controls for tview to play naval combat in the terminal.
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"seabattle/config"
	"seabattle/types"
)

// GridKind selects which side of the game a grid shows.
type GridKind int

const (
	FleetGrid  GridKind = iota // own ships and the shots received
	TargetGrid                 // what is known about the partner's ships
)

// Style indexes into OceanGridUI.styles.
const (
	styleWater = iota
	styleWaterAlt
	styleShip
	styleMissed
	styleDamaged
	styleDestroyed
	styleDuplicate
	styleCursorFG
	styleCursorBG
	styleLastShot
)

type OceanGridUI struct {
	Box      *tview.Box
	kind     GridKind
	state    *types.GameState
	cfg      *config.Config
	styles   []tcell.Color
	selRow   int
	selCol   int
	lastShot *types.BoardPos

	// Ship outline shown under the cursor while placing.
	previewLength     int
	previewHorizontal bool
}

func NewOceanGrid(kind GridKind, c *config.Config) *OceanGridUI {
	grid := &OceanGridUI{
		Box:    tview.NewBox(),
		kind:   kind,
		selRow: -1,
		selCol: -1,
	}
	grid.SetConfig(c)
	grid.Box.SetBorder(true)
	if kind == FleetGrid {
		grid.Box.SetTitle(" Your fleet ")
	} else {
		grid.Box.SetTitle(" Partner's waters ")
	}
	grid.Box.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		ix, iy, iw, ih := x+1, y+1, width-2, height-2
		if grid.state == nil || grid.state.Size() == 0 {
			return ix, iy, iw, ih
		}
		size := grid.state.Size()
		for row := 0; row < size; row++ {
			for col := 0; col < size; col++ {
				r, style := grid.cellLook(row, col)
				drawCell(screen, style, r, col, row, ix+3, iy+1)
			}
		}
		grid.drawCoordinates(screen, ix, iy, size)
		return ix, iy, iw, ih
	})
	return grid
}

func (g *OceanGridUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.Water),         // 0
		tcell.PaletteColor(c.Theme.Colors.WaterAlt),      // 1
		tcell.PaletteColor(c.Theme.Colors.Ship),          // 2
		tcell.PaletteColor(c.Theme.Colors.Missed),        // 3
		tcell.PaletteColor(c.Theme.Colors.Damaged),       // 4
		tcell.PaletteColor(c.Theme.Colors.Destroyed),     // 5
		tcell.PaletteColor(c.Theme.Colors.Duplicate),     // 6
		tcell.PaletteColor(c.Theme.Colors.CursorColorFG), // 7
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG), // 8
		tcell.PaletteColor(c.Theme.Colors.LastShotBG),    // 9
	}
	g.cfg = c
}

// SetState replaces the state the grid renders.
func (g *OceanGridUI) SetState(state *types.GameState) {
	g.state = state
}

// SetLastShot marks the cell of the latest shot on this grid, nil clears it.
func (g *OceanGridUI) SetLastShot(pos *types.BoardPos) {
	g.lastShot = pos
}

// SetPreview outlines a ship of the given length at the cursor. A length of
// 0 turns the outline off.
func (g *OceanGridUI) SetPreview(length int, horizontal bool) {
	g.previewLength = length
	g.previewHorizontal = horizontal
}

func (g *OceanGridUI) SelectedTile() *types.BoardPos {
	if g.selRow == -1 && g.selCol == -1 {
		return nil
	}
	return &types.BoardPos{Row: g.selRow, Column: g.selCol}
}

// MoveSelection moves the cursor, placing it in the middle of the grid
// if there is none yet.
func (g *OceanGridUI) MoveSelection(dRow, dCol int) {
	if g.state == nil {
		return
	}
	size := g.state.Size()
	if g.SelectedTile() == nil {
		g.selRow, g.selCol = size/2, size/2
		return
	}
	if g.selRow+dRow < 0 || g.selRow+dRow >= size {
		return
	}
	if g.selCol+dCol < 0 || g.selCol+dCol >= size {
		return
	}
	g.selRow += dRow
	g.selCol += dCol
}

func (g *OceanGridUI) ResetSelection() {
	g.selRow = -1
	g.selCol = -1
}

// inPreview reports whether (row, col) is covered by the placement outline.
func (g *OceanGridUI) inPreview(row, col int) bool {
	if g.previewLength == 0 || g.SelectedTile() == nil {
		return false
	}
	if g.previewHorizontal {
		return row == g.selRow && col >= g.selCol && col < g.selCol+g.previewLength
	}
	return col == g.selCol && row >= g.selRow && row < g.selRow+g.previewLength
}

// cellLook picks the symbol and style for one cell.
func (g *OceanGridUI) cellLook(row, col int) (rune, tcell.Style) {
	symbols := g.cfg.Theme.Symbols

	bg := styleWater
	if g.cfg.Theme.CheckeredWater && (row%2+col%2) == 1 {
		bg = styleWaterAlt
	}
	fg := styleWater
	r := symbols.Water

	var status types.CellStatus
	occupied := false
	if g.kind == FleetGrid {
		cell := g.state.Fleet[row][col]
		status = cell.Status
		occupied = cell.Occupied
	} else {
		status = g.state.Target[row][col]
	}

	switch {
	case status == types.Missed:
		r, fg = symbols.Missed, styleMissed
	case status == types.Damaged:
		r, fg = symbols.Damaged, styleDamaged
	case status.IsDestroyed():
		r, fg = symbols.Destroyed, styleDestroyed
	case status == types.Duplicate:
		r, fg = symbols.Missed, styleDuplicate
	case occupied:
		r, fg = symbols.Ship, styleShip
	default:
		fg = styleWaterAlt
		if bg == styleWaterAlt {
			fg = styleWater
		}
	}

	switch {
	case row == g.selRow && col == g.selCol, g.inPreview(row, col):
		if g.cfg.Theme.DrawCursorBackground {
			bg = styleCursorBG
		} else {
			r = symbols.Cursor
		}
		if status == types.Unknown && !occupied {
			fg = styleCursorFG
		}
	case g.lastShot != nil && row == g.lastShot.Row && col == g.lastShot.Column:
		if g.cfg.Theme.DrawLastShotBackground {
			bg = styleLastShot
		}
	}
	return r, tcell.StyleDefault.Background(g.styles[bg]).Foreground(g.styles[fg])
}

// drawCell draws one cell two characters wide so it looks square.
func drawCell(s tcell.Screen, c tcell.Style, r rune, col, row, l, t int) {
	s.SetContent(l+col*2, t+row, r, nil, c)
	s.SetContent(l+col*2+1, t+row, ' ', nil, c)
}

func (g *OceanGridUI) drawCoordinates(s tcell.Screen, x, y, size int) {
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(g.styles[styleCursorBG])

	for col := 0; col < size; col++ {
		_style := style
		if col == g.selCol {
			_style = highlight
		}
		s.SetContent(x+3+col*2, y, rune('0'+col), nil, _style)
		s.SetContent(x+3+col*2+1, y, ' ', nil, _style)
	}
	for row := 0; row < size; row++ {
		_style := style
		if row == g.selRow {
			_style = highlight
		}
		s.SetContent(x+1, y+1+row, rune('0'+row), nil, _style)
	}
}
