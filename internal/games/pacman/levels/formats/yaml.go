package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman/core"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML level file. The rows use the same alphabet as
// the text format. fallbackID is used when the file has no id.
func ParseYAML(fallbackID string, data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	id := yl.ID
	if id == "" {
		id = fallbackID
	}
	name := yl.Name
	if name == "" {
		name = id
	}

	layout, err := core.NewLayout(name, yl.Rows)
	if err != nil {
		return Level{}, err
	}

	meta := yl.Metadata
	if meta == nil {
		meta = make(map[string]string)
	}

	return Level{
		ID:       id,
		Name:     name,
		Layout:   layout,
		Metadata: meta,
	}, nil
}
