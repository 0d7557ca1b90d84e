package surface

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme is the light/dark choice of the containing UI. Background and Text
// may be left as tcell.ColorDefault to use the built-in palette.
type Theme struct {
	Dark       bool
	Background tcell.Color
	Text       tcell.Color
}

var (
	darkBackground  = tcell.NewRGBColor(0x1e, 0x1e, 0x1e)
	darkText        = tcell.NewRGBColor(0xe6, 0xe6, 0xe6)
	lightBackground = tcell.NewRGBColor(0xfa, 0xfa, 0xfa)
	lightText       = tcell.NewRGBColor(0x1b, 0x1b, 0x1b)
)

// minContrast is the smallest Lab distance accepted between text and
// background before the text color is replaced.
const minContrast = 0.35

// DarkTheme and LightTheme use the built-in palette.
var (
	DarkTheme  = Theme{Dark: true, Background: tcell.ColorDefault, Text: tcell.ColorDefault}
	LightTheme = Theme{Dark: false, Background: tcell.ColorDefault, Text: tcell.ColorDefault}
)

// Colors resolves the background and text colors pushed to components.
// Text that would be unreadable on the background is replaced with black
// or white, whichever is further away.
func (t Theme) Colors() (background, text tcell.Color) {
	background, text = t.Background, t.Text
	if background == tcell.ColorDefault {
		background = lightBackground
		if t.Dark {
			background = darkBackground
		}
	}
	if text == tcell.ColorDefault {
		text = lightText
		if t.Dark {
			text = darkText
		}
	}

	bg, ok := toColorful(background)
	if !ok {
		return background, text
	}
	fg, ok := toColorful(text)
	if !ok || bg.DistanceLab(fg) < minContrast {
		text = contrastingText(bg)
	}
	return background, text
}

// Style returns the tcell style for the resolved colors.
func (t Theme) Style() tcell.Style {
	bg, fg := t.Colors()
	return tcell.StyleDefault.Background(bg).Foreground(fg)
}

func contrastingText(bg colorful.Color) tcell.Color {
	black := colorful.Color{R: 0, G: 0, B: 0}
	white := colorful.Color{R: 1, G: 1, B: 1}
	if bg.DistanceLab(black) > bg.DistanceLab(white) {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}

func toColorful(c tcell.Color) (colorful.Color, bool) {
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}
