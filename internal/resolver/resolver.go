// Package resolver maps file extensions to the class identifier of the
// preview handler registered for them.
package resolver

import (
	"log/slog"
	"strings"

	"github.com/kk-code-lab/previewhost/internal/plugin"
	"github.com/kk-code-lab/previewhost/internal/registry"
	"golang.org/x/text/unicode/norm"
)

// PreviewHandlerKey is the shell extension sub-key holding the class id of
// a file type's preview handler.
const PreviewHandlerKey = `shellex\{8895b1c6-b41f-4c1c-a562-0d564250836f}`

// Resolver looks up preview handler associations in a registry.Store.
type Resolver struct {
	store  registry.Store
	logger *slog.Logger
}

// New creates a Resolver reading from store.
func New(store registry.Store, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve returns the class id registered for ext. An extension-level
// association wins over the one of the extension's class; absence at any
// step is reported as false, never as an error.
func (r *Resolver) Resolve(ext string) (plugin.ClassID, bool) {
	ext = NormalizeExtension(ext)
	if ext == "" || r.store == nil {
		return "", false
	}

	extKey, err := r.store.OpenKey(ext)
	if err != nil {
		return "", false
	}
	defer func() {
		_ = extKey.Close()
	}()

	if id, ok := handlerUnder(extKey); ok {
		r.logger.Debug("preview handler resolved", slog.String("ext", ext), slog.String("class", id.String()))
		return id, true
	}

	className, err := extKey.DefaultValue()
	if err != nil || strings.TrimSpace(className) == "" {
		return "", false
	}

	classKey, err := r.store.OpenKey(strings.TrimSpace(className))
	if err != nil {
		return "", false
	}
	defer func() {
		_ = classKey.Close()
	}()

	id, ok := handlerUnder(classKey)
	if ok {
		r.logger.Debug("preview handler resolved", slog.String("ext", ext),
			slog.String("via", className), slog.String("class", id.String()))
	}
	return id, ok
}

// IsSupported reports whether a preview handler is registered for ext.
func (r *Resolver) IsSupported(ext string) bool {
	_, ok := r.Resolve(ext)
	return ok
}

func handlerUnder(k registry.Key) (plugin.ClassID, bool) {
	sub, err := k.OpenSubKey(PreviewHandlerKey)
	if err != nil {
		return "", false
	}
	defer func() {
		_ = sub.Close()
	}()

	v, err := sub.DefaultValue()
	if err != nil {
		return "", false
	}
	id, err := plugin.ParseClassID(v)
	if err != nil {
		return "", false
	}
	return id, true
}

// NormalizeExtension returns ext in NFC form with a single leading dot.
// Case is left alone; stores compare keys case-insensitively.
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(norm.NFC.String(ext))
	ext = strings.TrimLeft(ext, ".")
	if ext == "" {
		return ""
	}
	return "." + ext
}
