package textutil

import (
	"fmt"
	"strings"
	"unicode"
)

// formatLabels names the invisible format characters most often used to
// disguise file names and file content.
var formatLabels = map[rune]string{
	0x00AD: "SHY",
	0x061C: "ALM",
	0x200B: "ZWSP",
	0x200C: "ZWNJ",
	0x200D: "ZWJ",
	0x200E: "LRM",
	0x200F: "RLM",
	0x2028: "LSEP",
	0x2029: "PSEP",
	0x202A: "LRE",
	0x202B: "RLE",
	0x202C: "PDF",
	0x202D: "LRO",
	0x202E: "RLO",
	0x2060: "WJ",
	0x2066: "LRI",
	0x2067: "RLI",
	0x2068: "FSI",
	0x2069: "PDI",
	0xFEFF: "BOM",
}

// SanitizeTerminalText makes text safe to draw: control characters become
// '?' or a space so they cannot start escape sequences, and invisible
// format characters are shown as ⟪LABEL⟫.
func SanitizeTerminalText(text string) string {
	if strings.IndexFunc(text, needsSanitizing) < 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		case isFormat(r):
			b.WriteString(formatLabel(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsSanitizing(r rune) bool {
	if r == '\t' {
		return false
	}
	return r < 0x20 || r == 0x7f || isFormat(r)
}

// isFormat reports Unicode format characters (category Cf) and the line and
// paragraph separators.
func isFormat(r rune) bool {
	if _, ok := formatLabels[r]; ok {
		return true
	}
	return r > 0x7f && unicode.Is(unicode.Cf, r)
}

func formatLabel(r rune) string {
	if label, ok := formatLabels[r]; ok {
		return "⟪" + label + "⟫"
	}
	return fmt.Sprintf("⟪U+%04X⟫", r)
}
