package app

import (
	"bytes"
	"fmt"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	fsutil "github.com/kk-code-lab/previewhost/internal/fs"
)

var commandBuilder = exec.Command

// commandClipboard places storage items on the system clipboard by piping
// their path into a clipboard command.
type commandClipboard struct {
	cmd  []string
	goos string
}

func newCommandClipboard(cmd []string) *commandClipboard {
	return &commandClipboard{cmd: cmd, goos: runtime.GOOS}
}

// SetStorageItem implements host.Clipboard.
func (c *commandClipboard) SetStorageItem(item fsutil.StorageItem) error {
	if len(c.cmd) == 0 {
		return fmt.Errorf("no clipboard command available")
	}
	cmd := commandBuilder(c.cmd[0], c.cmd[1:]...)
	cmd.Stdin = strings.NewReader(normalizeClipboardPath(item.Path, c.goos))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", filepath.Base(c.cmd[0]), err, msg)
		}
		return fmt.Errorf("%s: %w", filepath.Base(c.cmd[0]), err)
	}
	return nil
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		cleaned := filepath.Clean(inputPath)
		return strings.ReplaceAll(cleaned, "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}
