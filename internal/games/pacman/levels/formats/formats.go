// Package formats provides level file format parsers.
// Every format ends in the same validated core.Layout.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman/core"
)

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Layout   *core.Layout
	Metadata map[string]string
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".pac", ".yaml", ".yml"}
}

// IsSupported reports whether ext (with the leading dot) has a parser.
func IsSupported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Parse routes data to the parser for ext. id is used when the file does
// not name itself.
func Parse(id string, data []byte, ext string) (Level, error) {
	switch strings.ToLower(ext) {
	case ".txt", ".pac":
		return ParseText(id, data)
	case ".yaml", ".yml":
		return ParseYAML(id, data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
