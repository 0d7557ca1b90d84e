package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/previewhost/internal/state"
)

type footerHelpSegment struct {
	key   string
	label string
}

func footerHelpSegments(state *statepkg.AppState) []footerHelpSegment {
	if state.Focus == statepkg.FocusPreview {
		return []footerHelpSegment{{"Esc", "back"}, {"^C", "quit"}}
	}
	segments := []footerHelpSegment{{"↑↓", "move"}, {"⏎", "open"}}
	if state.ClipboardAvailable && state.PreviewTarget() != nil {
		segments = append(segments, footerHelpSegment{"y", "copy"})
	}
	if state.PreviewVisible {
		if state.PreviewStatus == statepkg.PreviewLoaded {
			segments = append(segments, footerHelpSegment{"Tab", "focus"})
		}
		segments = append(segments, footerHelpSegment{"p", "hide"})
	} else {
		segments = append(segments, footerHelpSegment{"p", "show"})
	}
	return append(segments, footerHelpSegment{"t", "theme"}, footerHelpSegment{"q", "quit"})
}

func buildFooterHelpText(state *statepkg.AppState) string {
	segments := footerHelpSegments(state)
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.key + " " + s.label
	}
	return strings.Join(parts, "  ")
}
