package catalog

import (
	"context"
	"strings"

	"github.com/kk-code-lab/previewhost/internal/fs"
	"github.com/kk-code-lab/previewhost/internal/plugin"
	"github.com/kk-code-lab/previewhost/internal/textutil"
)

// textPreviewLimit caps how much of a file the text previewer reads.
const textPreviewLimit = 64 * 1024

// TextPreviewer renders the beginning of a text file.
type TextPreviewer struct {
	canvas
	truncated bool
}

// NewTextPreviewer is the Factory of the text previewer class.
func NewTextPreviewer(context.Context) (plugin.Handler, error) {
	return &TextPreviewer{canvas: newCanvas()}, nil
}

// InitializeWithStream implements plugin.StreamInitializer.
func (p *TextPreviewer) InitializeWithStream(s plugin.Stream, _ plugin.Mode) error {
	data, err := fs.ReadHead(s, textPreviewLimit+1)
	if err != nil {
		return err
	}
	if len(data) > textPreviewLimit {
		data = data[:textPreviewLimit]
		p.truncated = true
	}
	if !fs.Sniff(data).IsText() {
		return ErrNotText
	}
	p.lines = textLines(fs.NormalizeTextContent(data))
	if p.truncated {
		p.lines = append(p.lines, "…")
	}
	return nil
}

func textLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		line = textutil.ExpandTabs(line, textutil.DefaultTabWidth)
		lines[i] = textutil.SanitizeTerminalText(line)
	}
	return lines
}
