// Package output renders check results, guard outcomes and match sets.
package output

import (
	"io"
	"slices"

	"github.com/jokarl/banlist/internal/types"
)

// Renderer defines the interface for output renderers
type Renderer interface {
	// Render writes the check result to the writer
	Render(w io.Writer, result *types.CheckResult) error
}

// Format represents an output format
type Format string

const (
	FormatText       Format = "text"
	FormatJSON       Format = "json"
	FormatCompact    Format = "compact"
	FormatCheckstyle Format = "checkstyle"
	FormatJUnit      Format = "junit"
	FormatSARIF      Format = "sarif"
)

// ToolVersion is reported by renderers that embed tool metadata. The CLI
// overrides it with the build version.
var ToolVersion = "dev"

const (
	toolName = "banlist"
	toolURI  = "https://github.com/jokarl/banlist"
)

var validFormats = []Format{FormatText, FormatJSON, FormatCompact, FormatCheckstyle, FormatJUnit, FormatSARIF}

// NewRenderer creates a renderer for the given format
func NewRenderer(format Format, colorEnabled bool) Renderer {
	switch format {
	case FormatJSON:
		return &JSONRenderer{}
	case FormatCompact:
		return &CompactRenderer{}
	case FormatCheckstyle:
		return &CheckstyleRenderer{}
	case FormatJUnit:
		return &JUnitRenderer{}
	case FormatSARIF:
		return &SARIFRenderer{}
	default:
		return &TextRenderer{ColorEnabled: colorEnabled}
	}
}

// ValidFormats returns the names of all supported formats
func ValidFormats() []string {
	names := make([]string, len(validFormats))
	for i, f := range validFormats {
		names[i] = string(f)
	}
	return names
}

// IsValidFormat reports whether s names a supported format
func IsValidFormat(s string) bool {
	return slices.Contains(validFormats, Format(s))
}

// position returns the file, line and column of a finding, with
// placeholders when it has no location
func position(f *types.Finding) (string, int, int) {
	if f.Location == nil {
		return "<unknown>", 0, 0
	}
	return f.Location.Filename, f.Location.Line, f.Location.Column
}
