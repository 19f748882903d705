package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

// Model is the Bubble Tea model for playing one game.
// It is used directly by `play` and embedded in menu and SSH sessions.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	logger     *log.Logger
	renderer   *ScreenRenderer
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	tickOwner  string
	runID      string
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		logger:     logger,
		renderer:   NewScreenRenderer(nil),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		tickOwner:  uuid.NewString(),
		runID:      uuid.NewString(),
	}
}

// WithRenderer returns the model drawing through r.
func (m Model) WithRenderer(r *ScreenRenderer) Model {
	if r != nil {
		m.renderer = r
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("level started", "game", m.game.ID(), "seed", m.config.Seed, "run", m.runID)

	return tickCmd(m.tickOwner, m.config.TickPeriod)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Owner != m.tickOwner {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Debug("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		return m, tea.Quit
	}

	m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleResize processes window resize events.
// The game keeps running; it lays itself out on the next render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) {
		m.scoreSaved = false
		m.runID = uuid.NewString()
		m.logger.Debug("level restarted", "game", m.game.ID(), "run", m.runID)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.recordResult()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.tickOwner, m.config.TickPeriod)
}

// recordResult logs the outcome and saves the score once per run.
func (m *Model) recordResult() {
	m.logger.Debug("game over",
		"game", m.game.ID(),
		"score", m.gameState.Score,
		"won", m.gameState.Won,
		"ticks", m.gameState.Ticks,
	)

	if m.store == nil || (m.gameState.Score == 0 && !m.gameState.Won) {
		return
	}

	_, err := m.store.SaveScore(storage.ScoreRecord{
		LevelID:    m.game.Level(),
		Score:      m.gameState.Score,
		Victorious: m.gameState.Won,
		Ticks:      m.gameState.Ticks,
		RunID:      m.runID,
	})
	if err != nil {
		m.logger.Warn("could not save score", "level", m.game.Level(), "error", err)
	}
}

// saveScreenshot writes the current screen as plain text to ~/.pacman/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".pacman", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen)
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Config returns the current runtime config (may have been updated by resize).
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// RunResult reports how a game run ended.
type RunResult struct {
	Config     core.RuntimeConfig
	BackToMenu bool
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (RunResult, error) {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return RunResult{Config: cfg}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return RunResult{Config: cfg}, nil
	}
	return RunResult{Config: m.Config(), BackToMenu: m.BackToMenu()}, nil
}
