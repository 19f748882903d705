package levels

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml maps
var builtinFS embed.FS

// catalogFile lists the built-in levels in menu order.
type catalogFile struct {
	Levels []struct {
		ID   string `yaml:"id"`
		File string `yaml:"file"`
	} `yaml:"levels"`
}

var (
	builtinOnce   sync.Once
	builtinLevels []Level
	builtinErr    error
)

// Builtin returns the levels shipped with the binary in catalog order.
// Layouts are shared and must be treated as read-only.
func Builtin() ([]Level, error) {
	builtinOnce.Do(func() {
		builtinLevels, builtinErr = loadCatalog()
	})
	if builtinErr != nil {
		return nil, builtinErr
	}
	out := make([]Level, len(builtinLevels))
	copy(out, builtinLevels)
	return out, nil
}

// BuiltinByID returns the built-in level with the given id.
func BuiltinByID(id string) (Level, error) {
	all, err := Builtin()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range all {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

func loadCatalog() ([]Level, error) {
	data, err := builtinFS.ReadFile("catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading level catalog: %w", err)
	}

	var cat catalogFile
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing level catalog: %w", err)
	}

	loader := NewFSLoader(builtinFS)
	levels := make([]Level, 0, len(cat.Levels))
	for _, entry := range cat.Levels {
		lvl, err := loader.LoadFile(entry.File)
		if err != nil {
			return nil, fmt.Errorf("built-in level %s: %w", entry.ID, err)
		}
		lvl.ID = entry.ID
		levels = append(levels, lvl)
	}
	return levels, nil
}
