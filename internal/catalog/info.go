package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kk-code-lab/previewhost/internal/fs"
	"github.com/kk-code-lab/previewhost/internal/plugin"
	"github.com/kk-code-lab/previewhost/internal/textutil"
)

// InfoPreviewer shows file metadata. It opens nothing itself and is
// initialized with the path.
type InfoPreviewer struct {
	canvas
	path string
}

// NewInfoPreviewer is the Factory of the info previewer class.
func NewInfoPreviewer(context.Context) (plugin.Handler, error) {
	return &InfoPreviewer{canvas: newCanvas()}, nil
}

// InitializeWithPath implements plugin.PathInitializer.
func (p *InfoPreviewer) InitializeWithPath(path string, _ plugin.Mode) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	p.path = path
	p.lines = []string{
		textutil.SanitizeTerminalText(filepath.Base(path)),
		"",
		"Size:     " + formatSize(info.Size()),
		"Mode:     " + info.Mode().String(),
		"Modified: " + info.ModTime().Format(time.DateTime),
	}
	if info.Mode().IsRegular() {
		if enc, err := fs.SniffFile(path); err == nil {
			p.lines = append(p.lines, "Content:  "+enc.String())
		}
	}
	if info.Mode()&os.ModeSymlink != 0 {
		if target, err := os.Readlink(path); err == nil {
			p.lines = append(p.lines, "Target:   "+textutil.SanitizeTerminalText(target))
		}
	}
	return nil
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
