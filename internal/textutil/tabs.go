package textutil

import (
	"strings"

	"github.com/rivo/uniseg"
)

const DefaultTabWidth = 4

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	column := 0
	state := -1
	for len(text) > 0 {
		var cluster string
		var width int
		cluster, text, width, state = uniseg.FirstGraphemeClusterInString(text, state)
		if cluster == "\t" {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteString(cluster)
		column += max(width, 1)
	}
	return builder.String()
}

// DisplayWidth reports the printable width of text, measuring each grapheme
// cluster (emoji sequences, flags, combining marks) as one unit.
func DisplayWidth(text string) int {
	return uniseg.StringWidth(text)
}

// Truncate shortens text to at most width columns, ending it with an
// ellipsis when something was cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	var builder strings.Builder
	column := 0
	state := -1
	for len(text) > 0 {
		var cluster string
		var w int
		cluster, text, w, state = uniseg.FirstGraphemeClusterInString(text, state)
		if column+w > width-1 {
			break
		}
		builder.WriteString(cluster)
		column += w
	}
	builder.WriteString("…")
	return builder.String()
}
