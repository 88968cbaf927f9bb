package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"seabattle/config"
	"seabattle/engine"
	"seabattle/engine/peer"
	"seabattle/types"
)

// GameView ties a session to the two grids and drives it from the keyboard.
type GameView struct {
	app     *tview.Application
	cfg     *config.Config
	session engine.GameSession
	state   *types.GameState

	fleet  *OceanGridUI
	target *OceanGridUI
	panel  *GameInfoPanel
	notice *tview.TextView
	hint   *tview.TextView
	flex   *tview.Flex

	// Ship selected for placement.
	length     int
	horizontal bool

	onEnd  func(types.Outcome)
	onQuit func()
}

func NewGameView(app *tview.Application, c *config.Config) *GameView {
	view := &GameView{
		app:        app,
		cfg:        c,
		fleet:      NewOceanGrid(FleetGrid, c),
		target:     NewOceanGrid(TargetGrid, c),
		panel:      NewGameInfoPanel(),
		notice:     tview.NewTextView(),
		hint:       tview.NewTextView(),
		length:     4,
		horizontal: true,
	}
	view.notice.SetDynamicColors(true)
	view.hint.SetDynamicColors(true)
	view.hint.SetBorder(true)
	view.hint.SetBorderPadding(0, 0, 1, 1)
	view.hint.SetTitle(" Status ")
	view.hint.SetTitleAlign(tview.AlignLeft)
	view.flex = CreateGameLayout(view)
	view.flex.SetInputCapture(view.HandleKey)
	return view
}

// Flex returns the root layout of the game screen.
func (g *GameView) Flex() *tview.Flex {
	return g.flex
}

// OnGameEnd registers a callback run on the UI goroutine when the game ends.
func (g *GameView) OnGameEnd(callback func(types.Outcome)) {
	g.onEnd = callback
}

// OnQuit registers a callback for when the player leaves the game screen.
func (g *GameView) OnQuit(callback func()) {
	g.onQuit = callback
}

// ConnectSession attaches the view to a session. The session must not be
// connected yet; Connect is left to the caller.
func (g *GameView) ConnectSession(s engine.GameSession) {
	g.session = s
	g.length = 4
	g.horizontal = true
	g.fleet.ResetSelection()
	g.target.ResetSelection()
	g.fleet.SetLastShot(nil)
	g.target.SetLastShot(nil)
	g.setNotice("")

	// Callbacks can fire on the UI goroutine itself, so redraws are queued
	// from a fresh goroutine to avoid a deadlock.
	s.OnChange(func() {
		go g.app.QueueUpdateDraw(func() {
			if g.session == s {
				g.refresh()
			}
		})
	})
	s.OnShot(func(entry types.LogEntry) {
		go g.app.QueueUpdateDraw(func() {
			if g.session != s {
				return
			}
			pos := &types.BoardPos{Row: entry.Row, Column: entry.Column}
			if entry.Mine {
				g.target.SetLastShot(pos)
			} else {
				g.fleet.SetLastShot(pos)
			}
			g.refresh()
		})
	})
	s.OnGameEnd(func(outcome types.Outcome) {
		go g.app.QueueUpdateDraw(func() {
			if g.session != s {
				return
			}
			g.refresh()
			if g.onEnd != nil {
				g.onEnd(outcome)
			}
		})
	})
	g.refresh()
}

// Close shuts down the session and detaches it from the view.
func (g *GameView) Close() {
	if g.session == nil {
		return
	}
	s := g.session
	g.session = nil
	g.state = nil
	s.Close()
}

// activeGrid is the grid the cursor works on in the current phase.
func (g *GameView) activeGrid() *OceanGridUI {
	if g.state != nil && g.state.Phase == types.Setup {
		return g.fleet
	}
	return g.target
}

func (g *GameView) refresh() {
	if g.session == nil {
		return
	}
	g.state = g.session.Snapshot()
	g.fleet.SetState(g.state)
	g.target.SetState(g.state)
	g.panel.SetState(g.state)

	if g.state.Phase == types.Setup {
		g.length = nextLength(g.state.ShipsLeft, g.length)
		g.fleet.SetPreview(g.length, g.horizontal)
		g.fleet.Box.SetBorderColor(MenuColors.BorderFocus)
		g.target.Box.SetBorderColor(MenuColors.Border)
	} else {
		g.fleet.SetPreview(0, false)
		g.fleet.ResetSelection()
		g.fleet.Box.SetBorderColor(MenuColors.Border)
		g.target.Box.SetBorderColor(MenuColors.BorderFocus)
	}
	g.refreshHint()
}

// nextLength keeps the current length while ships of it are left, otherwise
// picks the longest one still to place. It returns 0 once the fleet is complete.
func nextLength(left [4]int, current int) int {
	if current >= 1 && current <= len(left) && left[current-1] > 0 {
		return current
	}
	for length := len(left); length >= 1; length-- {
		if left[length-1] > 0 {
			return length
		}
	}
	return 0
}

func (g *GameView) setNotice(text string) {
	g.notice.SetText(text)
}

// noticeFor turns a session error into a line for the player.
func noticeFor(err error) string {
	switch {
	case errors.Is(err, peer.ErrNotYourTurn):
		return "[yellow]Please wait for your partner's turn[-]"
	case errors.Is(err, peer.ErrPeerNotReady):
		return "[yellow]Your partner has not placed all ships yet[-]"
	case errors.Is(err, peer.ErrFleetIncomplete):
		return "[yellow]Place all ships before playing[-]"
	case errors.Is(err, peer.ErrWrongPhase):
		return "[dimgray]Not now[-]"
	default:
		return fmt.Sprintf("[red]%s[-]", tview.Escape(err.Error()))
	}
}

// HandleKey processes keyboard input for the game screen.
func (g *GameView) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
		if grid := g.activeGrid(); grid.SelectedTile() != nil {
			grid.ResetSelection()
		} else if g.onQuit != nil {
			g.onQuit()
		}
		return nil
	}
	if g.session == nil || g.state == nil {
		return event
	}
	grid := g.activeGrid()
	switch event.Key() {
	case tcell.KeyUp:
		grid.MoveSelection(-1, 0)
		return nil
	case tcell.KeyDown:
		grid.MoveSelection(1, 0)
		return nil
	case tcell.KeyLeft:
		grid.MoveSelection(0, -1)
		return nil
	case tcell.KeyRight:
		grid.MoveSelection(0, 1)
		return nil
	case tcell.KeyEnter:
		g.activate(grid)
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			grid.MoveSelection(0, -1)
		case 'j':
			grid.MoveSelection(1, 0)
		case 'k':
			grid.MoveSelection(-1, 0)
		case 'l':
			grid.MoveSelection(0, 1)
		case ' ':
			g.activate(grid)
		case '1', '2', '3', '4':
			g.selectLength(int(event.Rune() - '0'))
		case 'r':
			g.horizontal = !g.horizontal
			g.fleet.SetPreview(g.length, g.horizontal)
		case 'a':
			if err := g.session.PlaceRandomly(); err != nil {
				g.setNotice(noticeFor(err))
			}
		case 'p':
			if err := g.session.FinishSetup(); err != nil {
				g.setNotice(noticeFor(err))
			} else {
				g.setNotice("")
			}
		default:
			return event
		}
		return nil
	}
	return event
}

func (g *GameView) selectLength(length int) {
	if g.state.Phase != types.Setup {
		return
	}
	if g.state.ShipsLeft[length-1] == 0 {
		g.setNotice(fmt.Sprintf("[yellow]No %s left to place[-]", shipNames[length-1]))
		return
	}
	g.length = length
	g.fleet.SetPreview(g.length, g.horizontal)
	g.setNotice("")
}

// activate places, removes or shoots at the selected cell depending on the phase.
func (g *GameView) activate(grid *OceanGridUI) {
	tile := grid.SelectedTile()
	if tile == nil {
		grid.MoveSelection(0, 0)
		return
	}
	if g.state.Phase == types.Setup {
		g.editFleet(tile)
		return
	}
	if err := g.session.Shoot(tile.Row, tile.Column); err != nil {
		g.setNotice(noticeFor(err))
		return
	}
	g.setNotice("")
}

// editFleet removes the ship under the cursor and arms its length and
// orientation, or places the selected ship there.
func (g *GameView) editFleet(tile *types.BoardPos) {
	if g.state.Fleet[tile.Row][tile.Column].Occupied {
		ship, ok := g.session.RemoveShip(tile.Row, tile.Column)
		if ok {
			g.length = ship.Length()
			g.horizontal = ship.Horizontal
			g.setNotice("")
		}
		return
	}
	if g.length == 0 {
		g.setNotice("[yellow]All ships placed, press p to play[-]")
		return
	}
	if !g.session.PlaceShip(tile.Row, tile.Column, g.horizontal, g.length) {
		g.setNotice("[yellow]A ship cannot be placed here[-]")
		return
	}
	g.setNotice("")
}

func (g *GameView) refreshHint() {
	var statusLine, controlsLine string
	s := g.state

	switch s.Phase {
	case types.Connect:
		statusLine = "  ◌ Waiting for a partner..."
		controlsLine = "  q · quit"
	case types.Setup:
		orientation := "horizontal"
		if !g.horizontal {
			orientation = "vertical"
		}
		if g.length > 0 {
			statusLine = fmt.Sprintf("  ■ Place your fleet: %s (%d, %s)", shipNames[g.length-1], g.length, orientation)
		} else {
			statusLine = "  ■ Fleet complete, press p to play"
		}
		controlsLine = "  hjkl/↑↓←→ move   ⏎ place/remove   1-4 ship   r rotate\n  a allocate   p play   q quit"
	case types.WaitSetup:
		statusLine = "  ◌ Waiting for your partner to place ships..."
		controlsLine = "  q · quit"
	case types.Game:
		if s.MyTurn {
			statusLine = "  ● Your turn"
		} else {
			statusLine = fmt.Sprintf("  ◌ %s is aiming...", tview.Escape(s.PeerName))
		}
		controlsLine = "  hjkl/↑↓←→ move   ⏎ shoot   q quit"
	case types.EndOfGame:
		statusLine = "───────── Game Complete ─────────"
		if s.Outcome != nil && s.Outcome.Result != types.Disconnected {
			statusLine += fmt.Sprintf("\n  Winner: %s", tview.Escape(s.Outcome.Winner))
		}
		controlsLine = "  q · return to menu"
	}

	g.hint.SetText(fmt.Sprintf("%s\n%s", statusLine, controlsLine))
}
