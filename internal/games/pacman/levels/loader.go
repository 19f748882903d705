// Package levels provides level loading for Pac-Man.
// This package depends on core but core does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/levels/formats"
)

// ErrLevelNotFound is returned when no level matches the requested id.
var ErrLevelNotFound = errors.New("level not found")

// Level represents a complete, validated level definition.
type Level struct {
	ID       string
	Name     string
	Layout   *core.Layout
	Metadata map[string]string
	FilePath string
}

// NewEngine creates an engine with the level already loaded.
func (l *Level) NewEngine(rules core.Rules, pick core.Picker) (*core.Engine, error) {
	e, err := core.NewEngine(rules, pick)
	if err != nil {
		return nil, err
	}
	if err := e.Initialize(l.Layout); err != nil {
		return nil, err
	}
	return e, nil
}

// Loader handles loading levels from a file system.
type Loader struct {
	FS fs.FS
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root)}
}

// NewFSLoader creates a loader over an arbitrary file system.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{FS: fsys}
}

// SkippedFile is a level file that could not be loaded.
type SkippedFile struct {
	Path string
	Err  error
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, _, err := l.Scan()
	return levels, err
}

// Scan is LoadAll that also reports every level file it skipped and why.
func (l *Loader) Scan() ([]Level, []SkippedFile, error) {
	var (
		levels  []Level
		skipped []SkippedFile
	)

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !formats.IsSupported(path.Ext(p)) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			skipped = append(skipped, SkippedFile{Path: p, Err: err})
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking levels: %w", err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, skipped, nil
}

// LoadFile loads a single level file relative to the loader's root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parse(p, data)
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// LoadPath loads a level file from an arbitrary path on disk.
func LoadPath(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parse(p, data)
}

// parse derives the fallback id from the file name and routes to the
// parser for its extension.
func parse(p string, data []byte) (Level, error) {
	base := filepath.Base(p)
	ext := strings.ToLower(filepath.Ext(base))
	id := strings.TrimSuffix(base, filepath.Ext(base))

	parsed, err := formats.Parse(id, data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Layout:   parsed.Layout,
		Metadata: parsed.Metadata,
		FilePath: p,
	}, nil
}
