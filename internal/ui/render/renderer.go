package render

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/previewhost/internal/state"
	textutil "github.com/kk-code-lab/previewhost/internal/textutil"
)

const yankFlashDuration = 100 * time.Millisecond

// Renderer handles all UI rendering except the embedded preview, which
// draws itself into the preview area afterwards.
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	dark             bool
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
	now              func() time.Time
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(true),
		dark:   true,
		now:    time.Now,
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	if state.DarkTheme != r.dark {
		r.dark = state.DarkTheme
		r.theme = GetColorTheme(r.dark)
	}

	r.screen.Clear()
	w, h := r.screen.Size()
	layout := computeLayout(w, h, state)
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)

	r.drawHeader(state, w)
	r.drawFileList(state, layout, base)
	if layout.showPreview {
		sepStyle := base.Foreground(r.theme.SeparatorFg)
		for y := layout.contentTop; y < layout.contentBottom; y++ {
			r.screen.SetContent(layout.separatorX, y, '│', nil, sepStyle)
		}
		r.drawPreviewPane(state, layout, base)
	}
	r.drawStatusLine(state, w, h)

	r.screen.Show()
}

// drawHeader renders the top bar with title and current directory
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	endX := r.drawTextLine(0, 0, w, "previewhost ", style.Bold(true))
	path := textutil.SanitizeTerminalText(state.CurrentPath)
	endX = r.drawTextLine(endX, 0, w-endX, r.fitPath(path, w-endX), style)
	r.fillRow(endX, w, 0, style)
}

func (r *Renderer) drawFileList(state *statepkg.AppState, layout layoutMetrics, base tcell.Style) {
	panelWidth := layout.listWidth
	y := layout.contentTop

	if len(state.Files) == 0 {
		msg := "(empty)"
		if state.LastError != nil {
			msg = state.LastError.Error()
		}
		if y < layout.contentBottom {
			end := r.drawTextLine(0, y, panelWidth, r.truncateTextToWidth(" "+msg, panelWidth), base.Foreground(r.theme.MutedFg))
			r.fillRow(end, panelWidth, y, base)
			y++
		}
	}

	for idx := state.ScrollOffset; idx < len(state.Files) && y < layout.contentBottom; idx++ {
		f := state.Files[idx]
		isSelected := idx == state.SelectedIndex

		var rowStyle tcell.Style
		switch {
		case isSelected:
			rowStyle = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		case f.IsSymlink:
			rowStyle = base.Foreground(r.theme.SymlinkFg)
		case f.IsDir:
			rowStyle = base.Foreground(r.theme.DirectoryFg)
		default:
			rowStyle = base.Foreground(r.theme.FileFg)
		}
		if f.IsHidden() && !isSelected {
			rowStyle = rowStyle.Foreground(r.theme.HiddenFg)
		}
		if isSelected && state.Focus == statepkg.FocusPreview {
			rowStyle = rowStyle.Dim(true)
		}

		// Icon: @ for symlinks, / for directories, space for files
		icon := " "
		if f.IsSymlink {
			icon = "@"
		} else if f.IsDir {
			icon = "/"
		}

		prefix := fmt.Sprintf(" %s ", icon)
		name := r.truncateTextToWidth(textutil.SanitizeTerminalText(f.Name), panelWidth-r.measureTextWidth(prefix))
		end := r.drawTextLine(0, y, panelWidth, prefix+name, rowStyle)
		r.fillRow(end, panelWidth, y, rowStyle)
		y++
	}

	for ; y < layout.contentBottom; y++ {
		r.fillRow(0, panelWidth, y, base)
	}
}

// drawPreviewPane draws the pane title. The pane body belongs to the
// embedded preview; a message is drawn there only when nothing is loaded.
func (r *Renderer) drawPreviewPane(state *statepkg.AppState, layout layoutMetrics, base tcell.Style) {
	titleStyle := tcell.StyleDefault.Background(r.theme.PaneTitleBg).Foreground(r.theme.PaneTitleFg)
	if state.Focus == statepkg.FocusPreview {
		titleStyle = titleStyle.Bold(true)
	}
	title := " " + previewTitle(state)
	x := layout.previewStart
	end := r.drawTextLine(x, layout.contentTop, layout.previewWidth, r.truncateTextToWidth(title, layout.previewWidth), titleStyle)
	r.fillRow(end, x+layout.previewWidth, layout.contentTop, titleStyle)

	msg, style := r.previewMessage(state, base)
	if msg == "" {
		return
	}
	y := layout.contentTop + paneTitleHeight
	if y < layout.contentBottom {
		r.drawTextLine(x+1, y, layout.previewWidth-1, r.truncateTextToWidth(msg, layout.previewWidth-1), style)
	}
}

func previewTitle(state *statepkg.AppState) string {
	target := state.PreviewTarget()
	if target == nil {
		return "Preview"
	}
	return textutil.SanitizeTerminalText(target.Name)
}

func (r *Renderer) previewMessage(state *statepkg.AppState, base tcell.Style) (string, tcell.Style) {
	if state.PreviewTarget() == nil {
		return "", base
	}
	muted := base.Foreground(r.theme.MutedFg)
	switch state.PreviewStatus {
	case statepkg.PreviewLoading:
		return "Loading…", muted
	case statepkg.PreviewUnsupported:
		return "No preview available", muted
	case statepkg.PreviewFailed:
		msg := "Preview failed"
		if state.PreviewErr != nil {
			msg = fmt.Sprintf("Preview failed: %v", state.PreviewErr)
		}
		return textutil.SanitizeTerminalText(msg), base.Foreground(r.theme.ErrorFg)
	}
	return "", base
}

// drawStatusLine renders the selected path and key help on the last row
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	if h <= 0 {
		return
	}
	y := h - 1
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	pathStyle := normalStyle
	if !state.LastYankTime.IsZero() && r.now().Sub(state.LastYankTime) < yankFlashDuration {
		pathStyle = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	}

	help := buildFooterHelpText(state)
	helpWidth := r.measureTextWidth(help)
	pathWidth := w - helpWidth - 1
	if pathWidth < w/2 {
		pathWidth = w
		help = ""
	}

	text := r.fitPath(textutil.SanitizeTerminalText(state.CurrentFilePath()), pathWidth)
	if state.LastError != nil {
		text = r.truncateTextToWidth(textutil.SanitizeTerminalText("error: "+state.LastError.Error()), pathWidth)
		pathStyle = normalStyle.Foreground(r.theme.ErrorFg)
	}
	end := r.drawTextLine(0, y, pathWidth, text, pathStyle)
	r.fillRow(end, w, y, normalStyle)
	if help != "" {
		r.drawTextLine(w-helpWidth, y, helpWidth, help, normalStyle.Foreground(r.theme.MutedFg))
	}
}

// Theme returns the active palette.
func (r *Renderer) Theme() ColorTheme {
	return r.theme
}
