package formats

import (
	"strings"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman/core"
)

// ParseText parses the native level format: one character per tile, '#'
// comments. Leading comment lines of the form "# key: value" become
// metadata, and a "name" key sets the display name.
func ParseText(id string, data []byte) (Level, error) {
	text := string(data)
	meta := headerMetadata(text)

	name := meta["name"]
	if name == "" {
		name = id
	}

	layout, err := core.ParseLayout(name, text)
	if err != nil {
		return Level{}, err
	}

	return Level{
		ID:       id,
		Name:     name,
		Layout:   layout,
		Metadata: meta,
	}, nil
}

// headerMetadata collects "# key: value" pairs from the comment block at
// the top of the file.
func headerMetadata(text string) map[string]string {
	meta := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			break
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(line, "#"), ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" || strings.ContainsAny(key, " \t") {
			continue
		}
		meta[key] = strings.TrimSpace(value)
	}
	return meta
}
