// seabattle is a terminal application to play naval combat against a partner
// over a direct TCP connection.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"seabattle/config"
	"seabattle/engine"
	"seabattle/engine/peer"
	"seabattle/types"
	"seabattle/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagHost     = flag.Bool("host", false, "Wait for a partner to connect")
	flagJoin     = flag.String("join", "", "Connect to a partner at host[:port]")
	flagName     = flag.String("name", "", "Display name sent to the partner")
	flagAddr     = flag.String("addr", "", "Interface to listen on with --host")
	flagPort     = flag.Int("port", 0, "TCP port (default from config, 7070)")
	flagSeed     = flag.Uint64("seed", 0, "Seed for random fleet placement")
	flagRandom   = flag.Bool("random", false, "Place the fleet randomly when setup starts")
	flagLogLevel = flag.String("log-level", "", "Log level: debug, info, warn or error")
	flagVersion  = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameView *ui.GameView
var cfg *config.Config

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("seabattle %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logFile, err := setupLogging(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %s\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.Info().Str("version", Version).Msg("starting")

	quickStart := *flagHost || *flagJoin != ""

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ⚓ seabattle ")

	gameView = ui.NewGameView(app, cfg)
	gameView.OnQuit(func() {
		gameView.Close()
		rootPage.SwitchToPage("setup")
	})
	gameView.OnGameEnd(showOutcome)

	setupUI := ui.NewGameSetup(cfg,
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
	)

	setupUI.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			app.Stop()
			return nil
		}
		return event
	})

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !quickStart)
	rootPage.AddPage("gameview", gameView.Flex(), true, quickStart)

	if quickStart {
		startGame(buildGameConfigFromFlags())
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		gameView.Close()
		log.Error().Err(err).Msg("application stopped")
		os.Exit(1)
	}
	gameView.Close()
}

// applyFlags overrides config values with the flags that were set.
func applyFlags(c *config.Config) {
	if *flagName != "" {
		c.Player.Name = *flagName
	}
	if *flagAddr != "" {
		c.Player.Host = *flagAddr
	}
	if *flagPort != 0 {
		c.Player.Port = *flagPort
	}
	if *flagLogLevel != "" {
		c.LogLevel = *flagLogLevel
	}
}

// setupLogging sends the global logger to a file so it does not draw over
// the terminal UI.
func setupLogging(level string) (*os.File, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	path, err := config.LogFilePath()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// buildGameConfigFromFlags creates a GameConfig for the quick start flags.
func buildGameConfigFromFlags() engine.GameConfig {
	gameCfg := engine.DefaultConfig()
	gameCfg.Name = cfg.Player.Name
	gameCfg.Random = *flagRandom
	if *flagJoin != "" {
		gameCfg.Initiator = true
		gameCfg.Address = joinAddress(*flagJoin, cfg.Player.Port)
	} else {
		gameCfg.Address = net.JoinHostPort(*flagAddr, strconv.Itoa(cfg.Player.Port))
	}
	return gameCfg
}

// joinAddress adds the default port to a bare host.
func joinAddress(target string, port int) string {
	if _, _, err := net.SplitHostPort(target); err == nil {
		return target
	}
	return net.JoinHostPort(target, strconv.Itoa(port))
}

// startGame starts a session with the given configuration. Connecting
// runs in the background; the game view shows the Connect phase meanwhile.
func startGame(gameCfg engine.GameConfig) {
	gameCfg.Seed = *flagSeed
	if *flagRandom {
		gameCfg.Random = true
	}

	session := peer.NewSession(gameCfg)
	gameView.ConnectSession(session)
	rootPage.SwitchToPage("gameview")

	go func() {
		if err := session.Connect(context.Background()); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Error().Err(err).Str("addr", gameCfg.Address).Msg("connect failed")
			app.QueueUpdateDraw(func() {
				showError(err)
			})
		}
	}()
}

func showError(err error) {
	text := fmt.Sprintf("Failed to start game:\n%s", err.Error())
	if errors.Is(err, peer.ErrPeerBusy) {
		text = "Server is busy"
	}
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("error")
			rootPage.SwitchToPage("setup")
		})
	rootPage.AddPage("error", modal, true, true)
}

// showOutcome shows the end of game notice over the game view.
func showOutcome(outcome types.Outcome) {
	modal := tview.NewModal().
		SetText(outcome.Message()).
		AddButtons([]string{"OK", "Menu"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("outcome")
			if buttonLabel == "Menu" {
				gameView.Close()
				rootPage.SwitchToPage("setup")
			}
		})
	rootPage.AddPage("outcome", modal, true, true)
}
