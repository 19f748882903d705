// Package pacman provides the Pac-Man maze game for the platform.
// Each level in the catalog is registered as its own game.
package pacman

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/tui-pacman/internal/config"
	platformcore "github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/levels"
	"github.com/vovakirdan/tui-pacman/internal/registry"
)

// IDPrefix is prepended to level ids to form game ids.
const IDPrefix = "pacman-"

// messageTicks is how long an event message stays in the HUD.
const messageTicks = 6

// Game adapts the tile engine to the platform's Game interface.
type Game struct {
	level  levels.Level
	cfg    config.PacmanConfig
	rng    *rand.Rand
	engine *core.Engine
	err    error

	// Screen dimensions
	screenW int
	screenH int

	paused     bool
	message    string
	messageTTL int
}

// Package-level variables for configuration
var (
	configMu   sync.RWMutex
	configPath string
)

// SetConfigPath sets the pacman.yaml path used on the next Reset.
// Empty means the default search order.
func SetConfigPath(path string) {
	configMu.Lock()
	defer configMu.Unlock()
	configPath = path
}

func currentConfigPath() string {
	configMu.RLock()
	defer configMu.RUnlock()
	return configPath
}

func init() {
	all, err := levels.Builtin()
	if err != nil {
		panic(fmt.Sprintf("pacman: built-in levels: %v", err))
	}
	for _, lvl := range all {
		register(lvl)
	}
}

func register(lvl levels.Level) string {
	registry.Register(func() registry.Game {
		return New(lvl)
	})
	return GameID(lvl.ID)
}

// GameID returns the registry id for a level id.
func GameID(levelID string) string {
	return IDPrefix + levelID
}

// RegisterFile loads a level file from disk and registers it.
// Returns the game id to play it with.
func RegisterFile(path string) (string, error) {
	lvl, err := levels.LoadPath(path)
	if err != nil {
		return "", err
	}
	id := GameID(lvl.ID)
	if registry.Exists(id) {
		return "", fmt.Errorf("level %q is already registered", lvl.ID)
	}
	return register(lvl), nil
}

// RegisterDir registers every valid level found under dir whose id is not
// taken yet. Returns the ids of the new games and the files that failed to load.
func RegisterDir(dir string) ([]string, []levels.SkippedFile, error) {
	all, skipped, err := levels.NewLoader(dir).Scan()
	if err != nil {
		return nil, nil, err
	}
	var ids []string
	for _, lvl := range all {
		if registry.Exists(GameID(lvl.ID)) {
			continue
		}
		ids = append(ids, register(lvl))
	}
	return ids, skipped, nil
}

// New creates a game for the given level.
func New(lvl levels.Level) *Game {
	return &Game{level: lvl}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID(g.level.ID)
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Pac-Man: " + g.level.Name
}

// Level returns the level id scores are stored under.
func (g *Game) Level() string {
	return g.level.ID
}

// Reset loads the configuration and starts the level from scratch.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.message = ""
	g.messageTTL = 0
	g.engine = nil
	g.err = nil

	pcfg, err := config.LoadPacman(currentConfigPath())
	if err != nil {
		g.err = err
		return
	}
	g.cfg = pcfg

	rules := pcfg.Rules()
	if cfg.TickPeriod > 0 {
		rules.TickPeriod = cfg.TickPeriod
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.engine, g.err = g.level.NewEngine(rules, g.rng)
}

// Step advances the game by one tick.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	if g.engine == nil {
		return platformcore.StepResult{State: g.State()}
	}

	if input.Has(platformcore.ActionRestart) {
		if err := g.engine.Restart(); err != nil {
			g.err = err
		}
		g.paused = false
		g.message = ""
		g.messageTTL = 0
		return platformcore.StepResult{State: g.State()}
	}

	if input.Has(platformcore.ActionPause) && !g.engine.GameOver() {
		g.paused = !g.paused
	}

	if g.paused || g.engine.GameOver() {
		return platformcore.StepResult{State: g.State()}
	}

	if err := g.engine.Step(directionFrom(input)); err != nil {
		g.err = err
		return platformcore.StepResult{State: g.State()}
	}
	g.updateMessage()

	return platformcore.StepResult{State: g.State()}
}

// directionFrom maps the frame's direction action to an engine direction.
// No direction repeats the current facing.
func directionFrom(input platformcore.InputFrame) core.Direction {
	switch {
	case input.Has(platformcore.ActionUp):
		return core.DirUp
	case input.Has(platformcore.ActionDown):
		return core.DirDown
	case input.Has(platformcore.ActionLeft):
		return core.DirLeft
	case input.Has(platformcore.ActionRight):
		return core.DirRight
	default:
		return core.DirNone
	}
}

// updateMessage picks the HUD message for the tick that just ran.
func (g *Game) updateMessage() {
	if g.messageTTL > 0 {
		g.messageTTL--
	}
	for _, ev := range g.engine.Events() {
		var msg string
		switch ev.Kind {
		case core.EventBigItem:
			msg = "POWER UP!"
		case core.EventGhostEaten:
			msg = fmt.Sprintf("GHOST +%d", ev.Points)
		case core.EventPowerExpired:
			msg = "power over"
		case core.EventGhostRevived:
			msg = "a ghost is back"
		default:
			continue
		}
		g.message = msg
		g.messageTTL = messageTicks
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.engine == nil {
		return platformcore.GameState{GameOver: g.err != nil}
	}
	return platformcore.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.GameOver() || g.err != nil,
		Won:      g.engine.Victorious(),
		Paused:   g.paused,
		Ticks:    int(g.engine.Tick()),
	}
}

// Err returns the error that stopped the game, if any.
func (g *Game) Err() error {
	return g.err
}

// Snapshot returns the engine snapshot for determinism checks.
func (g *Game) Snapshot() (core.Snapshot, error) {
	if g.engine == nil {
		return core.Snapshot{}, core.ErrInvalidState
	}
	return g.engine.Snapshot()
}
