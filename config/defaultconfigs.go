package config

var DefaultConfig Config
var DefaultTheme Theme

const DefaultPort = 7070

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground:   true,
		DrawLastShotBackground: true,
		CheckeredWater:         true,
		Colors: ConfigColors{
			Water:         24,
			WaterAlt:      25,
			Ship:          250,
			Missed:        117,
			Damaged:       208,
			Destroyed:     160,
			Duplicate:     226,
			CursorColorFG: 15,
			CursorColorBG: 2,
			LastShotBG:    94,
		},
		Symbols: ConfigSymbols{
			Water:     '~',
			Ship:      '■',
			Missed:    '•',
			Damaged:   '✕',
			Destroyed: '█',
			Cursor:    '+',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Player: PlayerConfig{
			Name: "Player",
			Host: "localhost",
			Port: DefaultPort,
		},
		LogLevel: "info",
	}
}
