package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HiddenFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	DirectoryFg tcell.Color
	SymlinkFg   tcell.Color
	FileFg      tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	PaneTitleBg tcell.Color
	PaneTitleFg tcell.Color
	MutedFg     tcell.Color
	ErrorFg     tcell.Color
	SeparatorFg tcell.Color
}

// GetColorTheme returns the color scheme for the dark or light theme.
func GetColorTheme(dark bool) ColorTheme {
	if !dark {
		return ColorTheme{
			Background:  tcell.NewRGBColor(0xfa, 0xfa, 0xfa),
			Foreground:  tcell.NewRGBColor(0x1b, 0x1b, 0x1b),
			HiddenFg:    tcell.ColorGray,
			SelectionBg: tcell.Color33,
			SelectionFg: tcell.ColorWhite,
			DirectoryFg: tcell.Color25,
			SymlinkFg:   tcell.Color30,
			FileFg:      tcell.NewRGBColor(0x1b, 0x1b, 0x1b),
			FooterBg:    tcell.Color254,
			FooterFg:    tcell.Color235,
			PaneTitleBg: tcell.Color252,
			PaneTitleFg: tcell.Color235,
			MutedFg:     tcell.Color244,
			ErrorFg:     tcell.Color124,
			SeparatorFg: tcell.Color250,
		}
	}
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HiddenFg:    tcell.ColorLightSlateGray,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		DirectoryFg: tcell.Color33,
		SymlinkFg:   tcell.Color51,
		FileFg:      tcell.ColorDefault,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		PaneTitleBg: tcell.Color236,
		PaneTitleFg: tcell.Color252,
		MutedFg:     tcell.Color244,
		ErrorFg:     tcell.Color203,
		SeparatorFg: tcell.Color239,
	}
}
