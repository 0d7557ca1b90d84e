package fs

import (
	"bytes"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const (
	// TextSampleSize is how much content is sniffed to tell text from binary.
	TextSampleSize               = 4096
	nonPrintableThresholdPercent = 30
)

// Encoding is the content kind found by Sniff.
type Encoding int

const (
	EncodingText Encoding = iota
	EncodingUTF8BOM
	EncodingUTF16LE
	EncodingUTF16BE
	EncodingBinary
)

func (e Encoding) String() string {
	switch e {
	case EncodingText:
		return "text"
	case EncodingUTF8BOM:
		return "text (UTF-8 BOM)"
	case EncodingUTF16LE:
		return "text (UTF-16 LE)"
	case EncodingUTF16BE:
		return "text (UTF-16 BE)"
	default:
		return "binary"
	}
}

// IsText reports whether e is one of the text encodings.
func (e Encoding) IsText() bool {
	return e != EncodingBinary
}

// Sniff classifies the head of some content. Empty content is text.
func Sniff(content []byte) Encoding {
	sample := content
	if len(sample) > TextSampleSize {
		sample = sample[:TextSampleSize]
	}
	if enc := byteOrderMark(sample); enc != EncodingText {
		return enc
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return EncodingBinary
	}
	if utf8.Valid(sample) {
		return EncodingText
	}

	printable := 0
	nonPrintable := 0
	for _, b := range sample {
		if isCommonTextByte(b) {
			printable++
		} else {
			nonPrintable++
		}
	}
	if printable == 0 || nonPrintable*100/len(sample) >= nonPrintableThresholdPercent {
		return EncodingBinary
	}
	return EncodingText
}

// SniffFile classifies the head of the file at path.
func SniffFile(path string) (Encoding, error) {
	f, err := os.Open(path)
	if err != nil {
		return EncodingBinary, err
	}
	defer func() {
		_ = f.Close()
	}()
	head, err := ReadHead(f, TextSampleSize)
	if err != nil {
		return EncodingBinary, err
	}
	return Sniff(head), nil
}

// ReadHead returns up to limit bytes from r. It never closes r.
func ReadHead(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 || r == nil {
		return nil, nil
	}
	return io.ReadAll(io.LimitReader(r, limit))
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == 0x09 || b == 0x0A || b == 0x0D:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b == 0x1B:
		return true
	case b >= 0x80:
		return true
	default:
		return false
	}
}

func byteOrderMark(sample []byte) Encoding {
	switch {
	case bytes.HasPrefix(sample, []byte{0xEF, 0xBB, 0xBF}):
		return EncodingUTF8BOM
	case bytes.HasPrefix(sample, []byte{0xFF, 0xFE}):
		return EncodingUTF16LE
	case bytes.HasPrefix(sample, []byte{0xFE, 0xFF}):
		return EncodingUTF16BE
	}
	return EncodingText
}

// NormalizeTextContent decodes BOM-marked content to a UTF-8 string.
func NormalizeTextContent(content []byte) string {
	switch byteOrderMark(content) {
	case EncodingUTF8BOM:
		return string(content[3:])
	case EncodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case EncodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return string(content)
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
