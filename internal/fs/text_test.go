package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    Encoding
	}{
		{"empty", nil, EncodingText},
		{"ascii", []byte("hello\n"), EncodingText},
		{"utf8", []byte("zażółć gęślą jaźń"), EncodingText},
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'a'}, EncodingUTF8BOM},
		{"utf16 le", []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}, EncodingUTF16LE},
		{"utf16 be", []byte{0xFE, 0xFF, 0x00, 0x41}, EncodingUTF16BE},
		{"nul", []byte{'a', 0x00, 'b'}, EncodingBinary},
		{"control bytes", []byte{0x01, 0x02, 0x03, 0x04, 'a'}, EncodingBinary},
		{"latin1", []byte("caf\xe9 au lait"), EncodingText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff(tt.content); got != tt.want {
				t.Fatalf("Sniff = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncodingIsText(t *testing.T) {
	if !EncodingUTF16LE.IsText() || EncodingBinary.IsText() {
		t.Fatalf("unexpected IsText results")
	}
	if EncodingBinary.String() != "binary" {
		t.Fatalf("String = %q", EncodingBinary.String())
	}
}

func TestSniffFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	if err := os.WriteFile(path, []byte{0x00, 0x01}, 0o644); err != nil {
		t.Fatal(err)
	}
	enc, err := SniffFile(path)
	if err != nil || enc != EncodingBinary {
		t.Fatalf("SniffFile = (%v, %v), want binary", enc, err)
	}
	if _, err := SniffFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNormalizeTextContentUTF16LE(t *testing.T) {
	content := []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}
	got := NormalizeTextContent(content)
	want := "A\r\n"
	if got != want {
		t.Fatalf("NormalizeTextContent returned %q, want %q", got, want)
	}
}

func TestNormalizeTextContentStripsUTF8BOM(t *testing.T) {
	if got := NormalizeTextContent([]byte("\xEF\xBB\xBFhi")); got != "hi" {
		t.Fatalf("NormalizeTextContent returned %q", got)
	}
}

func TestReadHeadStopsAtLimit(t *testing.T) {
	got, err := ReadHead(strings.NewReader("abcdef"), 4)
	if err != nil {
		t.Fatalf("ReadHead: %v", err)
	}
	if string(got) != "abcd" {
		t.Fatalf("ReadHead returned %q, want %q", got, "abcd")
	}
}
