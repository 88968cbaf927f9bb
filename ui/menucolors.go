package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette for the connection form and grid frames.
var MenuColors = struct {
	Border      tcell.Color // grid frame while the other grid is in use
	BorderFocus tcell.Color // grid frame the cursor works on
	Label       tcell.Color
	Hint        tcell.Color
	ButtonBG    tcell.Color
	ButtonText  tcell.Color
}{
	Border:      tcell.PaletteColor(60),
	BorderFocus: tcell.PaletteColor(109),
	Label:       tcell.PaletteColor(250),
	Hint:        tcell.PaletteColor(245),
	ButtonBG:    tcell.PaletteColor(60),
	ButtonText:  tcell.PaletteColor(255),
}
