package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/kk-code-lab/previewhost/internal/fs"
	"github.com/kk-code-lab/previewhost/internal/plugin"
)

const (
	hexPreviewMaxBytes  = 4096
	hexPreviewLineWidth = 16
)

// HexPreviewer renders a hex dump of the first bytes of a file.
type HexPreviewer struct {
	canvas
}

// NewHexPreviewer is the Factory of the hex previewer class.
func NewHexPreviewer(context.Context) (plugin.Handler, error) {
	return &HexPreviewer{canvas: newCanvas()}, nil
}

// InitializeWithStream implements plugin.StreamInitializer.
func (p *HexPreviewer) InitializeWithStream(s plugin.Stream, _ plugin.Mode) error {
	data, err := fs.ReadHead(s, hexPreviewMaxBytes+1)
	if err != nil {
		return err
	}
	more := len(data) > hexPreviewMaxBytes
	if more {
		data = data[:hexPreviewMaxBytes]
	}
	p.lines = hexLines(data, more)
	return nil
}

func hexLines(content []byte, more bool) []string {
	lines := make([]string, 0, len(content)/hexPreviewLineWidth+2)
	for offset := 0; offset < len(content); offset += hexPreviewLineWidth {
		end := min(offset+hexPreviewLineWidth, len(content))
		lines = append(lines, formatHexLine(offset, content[offset:end]))
	}
	if more {
		lines = append(lines, fmt.Sprintf("… (only the first %d bytes are shown)", hexPreviewMaxBytes))
	}
	return lines
}

func formatHexLine(offset int, chunk []byte) string {
	var b strings.Builder
	b.Grow(80)
	fmt.Fprintf(&b, "%08X  ", offset)

	for i := 0; i < hexPreviewLineWidth; i++ {
		if i < len(chunk) {
			fmt.Fprintf(&b, "%02X ", chunk[i])
		} else {
			b.WriteString("   ")
		}
		if i == 7 {
			b.WriteString(" ")
		}
	}

	b.WriteString(" |")
	for _, c := range chunk {
		b.WriteByte(printableASCII(c))
	}
	b.WriteString(strings.Repeat(" ", hexPreviewLineWidth-len(chunk)))
	b.WriteString("|")
	return b.String()
}

func printableASCII(b byte) byte {
	if b >= 32 && b <= 126 {
		return b
	}
	return '.'
}
