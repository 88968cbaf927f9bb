package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"
)

var (
	cfgFile = "seabattle/config.json"
	logFile = "seabattle/debug.log"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// ConfigColors holds 256-color palette indexes.
type ConfigColors struct {
	Water         int `json:"water"`
	WaterAlt      int `json:"water_alt"`
	Ship          int `json:"ship"`
	Missed        int `json:"missed"`
	Damaged       int `json:"damaged"`
	Destroyed     int `json:"destroyed"`
	Duplicate     int `json:"duplicate"`
	CursorColorFG int `json:"cursor_fg"`
	CursorColorBG int `json:"cursor_bg"`
	LastShotBG    int `json:"last_shot_bg"`
}

type ConfigSymbols struct {
	Water     rune `json:"water"`
	Ship      rune `json:"ship"`
	Missed    rune `json:"missed"`
	Damaged   rune `json:"damaged"`
	Destroyed rune `json:"destroyed"`
	Cursor    rune `json:"cursor"`
}

type Theme struct {
	DrawCursorBackground   bool          `json:"draw_cursor_bg"`
	DrawLastShotBackground bool          `json:"draw_last_shot_bg"`
	CheckeredWater         bool          `json:"checkered_water"`
	Colors                 ConfigColors  `json:"colors"`
	Symbols                ConfigSymbols `json:"symbols"`
}

// PlayerConfig holds the defaults for the connection form.
type PlayerConfig struct {
	Name string `json:"name" env:"SEABATTLE_NAME"`
	Host string `json:"host" env:"SEABATTLE_HOST"`
	Port int    `json:"port" env:"SEABATTLE_PORT"`
}

type Config struct {
	Theme    Theme        `json:"theme"`
	Player   PlayerConfig `json:"player"`
	LogLevel string       `json:"log_level" env:"SEABATTLE_LOG_LEVEL"`
}

// InitConfig loads the config file if there is one, then applies
// environment overrides.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		absPath = ""
	}
	return Load(absPath)
}

// Load reads the config at path over the defaults. An empty path reads
// the environment only.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if path != "" {
		if err := cleanenv.ReadConfig(path, &config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if err := ValidateName(c.Player.Name); err != nil {
		return err
	}
	if c.Player.Port < 1 || c.Player.Port > 65535 {
		return &InvalidConfig{fmt.Sprintf("port %d is out of range", c.Player.Port)}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	s := c.Theme.Symbols
	for _, r := range []rune{s.Water, s.Ship, s.Missed, s.Damaged, s.Destroyed, s.Cursor} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	return nil
}

// ValidateName checks a display name can travel on a single protocol line.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &InvalidConfig{"name must not be empty"}
	}
	if strings.ContainsAny(name, "\r\n") {
		return &InvalidConfig{"name must not contain line breaks"}
	}
	return nil
}

// Address joins the configured host and port.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Player.Host, strconv.Itoa(c.Player.Port))
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

// LogFilePath returns where the debug log is written, creating the
// directory if needed.
func LogFilePath() (string, error) {
	return xdg.StateFile(logFile)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}
