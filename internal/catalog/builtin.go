package catalog

import (
	"errors"

	"github.com/kk-code-lab/previewhost/internal/registry"
	"github.com/kk-code-lab/previewhost/internal/resolver"
)

// Class ids of the built-in previewers.
const (
	TextPreviewerClass = "{5A1C3E2B-7D4F-4B8A-9C61-2E8F0D3B7A14}"
	HexPreviewerClass  = "{B7E2D4F1-3C8A-4E6B-A915-6D2F8C0E4B37}"
	InfoPreviewerClass = "{0F4D8A6C-2B1E-4C7D-8E3F-9A5B6C7D8E90}"
)

// RegisterBuiltins registers the built-in previewers with c.
func RegisterBuiltins(c *Catalog) error {
	return errors.Join(
		c.Register(TextPreviewerClass, "Text Preview Handler", NewTextPreviewer),
		c.Register(HexPreviewerClass, "Hex Preview Handler", NewHexPreviewer),
		c.Register(InfoPreviewerClass, "File Info Preview Handler", NewInfoPreviewer),
	)
}

// Script is a scripted previewer declared in configuration.
type Script struct {
	Class string
	Name  string
	Path  string
}

// RegisterScripts registers one Lua previewer class per script.
func RegisterScripts(c *Catalog, scripts []Script) error {
	var errs []error
	for _, s := range scripts {
		name := s.Name
		if name == "" {
			name = s.Path
		}
		errs = append(errs, c.Register(s.Class, name, LuaFactory(s.Path)))
	}
	return errors.Join(errs...)
}

// builtinAssociations maps extensions to the program id of a built-in class.
var builtinAssociations = map[string]string{
	".txt":  "previewhost.text",
	".md":   "previewhost.text",
	".log":  "previewhost.text",
	".go":   "previewhost.text",
	".json": "previewhost.text",
	".yaml": "previewhost.text",
	".yml":  "previewhost.text",
	".toml": "previewhost.text",
	".csv":  "previewhost.text",
	".bin":  "previewhost.hex",
	".dat":  "previewhost.hex",
	".exe":  "previewhost.hex",
	".so":   "previewhost.hex",
	".dll":  "previewhost.hex",
	".iso":  "previewhost.info",
	".img":  "previewhost.info",
}

var builtinProgIDs = map[string]string{
	"previewhost.text": TextPreviewerClass,
	"previewhost.hex":  HexPreviewerClass,
	"previewhost.info": InfoPreviewerClass,
}

// DefaultAssociations returns registry entries associating common
// extensions with the built-in previewers through program id keys.
func DefaultAssociations() map[string]string {
	entries := make(map[string]string, len(builtinAssociations)+len(builtinProgIDs))
	for ext, progID := range builtinAssociations {
		entries[ext] = progID
	}
	for progID, class := range builtinProgIDs {
		entries[registry.Join(progID, resolver.PreviewHandlerKey)] = class
	}
	return entries
}
