package ui

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"seabattle/config"
	"seabattle/engine"
)

// GameSetupUI provides a form for connecting to a partner.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	errText  *tview.TextView
	cfg      *config.Config
	onStart  func(engine.GameConfig)
	onCancel func()

	name      string
	host      string
	port      int
	initiator bool
	random    bool
}

var connectModes = []string{"Host (wait for a partner)", "Join (connect to a host)"}

// NewGameSetup creates a new connection form filled from the config.
func NewGameSetup(c *config.Config, onStart func(engine.GameConfig), onCancel func()) *GameSetupUI {
	setup := &GameSetupUI{
		cfg:      c,
		onStart:  onStart,
		onCancel: onCancel,
		name:     c.Player.Name,
		host:     c.Player.Host,
		port:     c.Player.Port,
	}

	form := tview.NewForm()

	form.AddInputField("Your Name", setup.name, 24, nil, func(text string) {
		setup.name = text
	})

	form.AddDropDown("Mode", connectModes, 0, func(option string, index int) {
		setup.initiator = index == 1
	})

	form.AddInputField("Host", setup.host, 24, nil, func(text string) {
		setup.host = strings.TrimSpace(text)
	})

	form.AddInputField("Port", strconv.Itoa(setup.port), 8, tview.InputFieldInteger, func(text string) {
		if val, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			setup.port = val
		}
	})

	form.AddCheckbox("Random fleet", false, func(checked bool) {
		setup.random = checked
	})

	form.AddButton("Connect", func() {
		cfg, err := setup.GameConfig()
		if err != nil {
			setup.errText.SetText(err.Error())
			return
		}
		setup.errText.SetText("")
		setup.storePlayer(cfg)
		if err := setup.cfg.Save(); err != nil {
			log.Warn().Err(err).Msg("could not save config")
		}
		onStart(cfg)
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" Sea Battle ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetBorderColor(MenuColors.Border)
	form.SetLabelColor(MenuColors.Label)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	errText := tview.NewTextView().SetTextAlign(tview.AlignCenter)
	errText.SetTextColor(tcell.ColorRed)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(errText, 1, 0, false).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	setup.errText = errText
	return setup
}

// GameConfig validates the form and builds the session config.
func (s *GameSetupUI) GameConfig() (engine.GameConfig, error) {
	name := strings.TrimSpace(s.name)
	if err := config.ValidateName(name); err != nil {
		return engine.GameConfig{}, err
	}
	if s.port < 1 || s.port > 65535 {
		return engine.GameConfig{}, fmt.Errorf("port %d is out of range", s.port)
	}
	host := s.host
	if host == "" && s.initiator {
		host = "localhost"
	}
	return engine.GameConfig{
		Name:      name,
		Address:   net.JoinHostPort(host, strconv.Itoa(s.port)),
		Initiator: s.initiator,
		Random:    s.random,
	}, nil
}

// storePlayer keeps the submitted name, host and port as the next defaults.
func (s *GameSetupUI) storePlayer(gameCfg engine.GameConfig) {
	s.cfg.Player.Name = gameCfg.Name
	s.cfg.Player.Host = s.host
	s.cfg.Player.Port = s.port
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
