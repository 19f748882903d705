package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

// countdownGame scores ten points per tick and ends after a fixed number of ticks.
type countdownGame struct {
	ticks  int
	limit  int
	resets int
	won    bool
	last   core.InputFrame
}

func (g *countdownGame) ID() string { return "countdown" }
func (g *countdownGame) Title() string { return "Countdown" }
func (g *countdownGame) Level() string { return "countdown-level" }

func (g *countdownGame) Reset(core.RuntimeConfig) {
	g.ticks = 0
	g.resets++
}

func (g *countdownGame) Step(in core.InputFrame) core.StepResult {
	g.last = core.NewInputFrame()
	for a := range in.Actions {
		g.last.Set(a)
	}
	if in.Has(core.ActionRestart) {
		g.ticks = 0
		return core.StepResult{State: g.State()}
	}
	if g.ticks < g.limit {
		g.ticks++
	}
	return core.StepResult{State: g.State()}
}

func (g *countdownGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "tick")
}

func (g *countdownGame) State() core.GameState {
	over := g.ticks >= g.limit
	return core.GameState{
		Score:    g.ticks * 10,
		GameOver: over,
		Won:      over && g.won,
		Ticks:    g.ticks,
	}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickPeriod: 10 * time.Millisecond, Seed: 1}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// tick delivers one tick owned by m.
func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(TickMsg{At: time.Now(), Owner: m.tickOwner})
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	return next.(Model)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelTickStepsGameWithBufferedInput(t *testing.T) {
	game := &countdownGame{limit: 100}
	m := NewModel(game, nil, testConfig(), nil)
	if m.Init() == nil {
		t.Fatal("Init() should start the ticker")
	}
	if game.resets != 1 {
		t.Fatalf("Init() reset the game %d times, expected 1", game.resets)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m = tick(t, m)

	if !game.last.Has(core.ActionLeft) || game.last.Has(core.ActionUp) {
		t.Errorf("game saw %v, expected only the last direction", game.last.Actions)
	}
	if m.State().Ticks != 1 {
		t.Errorf("Ticks = %d, expected 1", m.State().Ticks)
	}

	m = tick(t, m)
	if len(game.last.Actions) != 0 {
		t.Errorf("input frame should be cleared after a tick, got %v", game.last.Actions)
	}
}

func TestModelIgnoresForeignTicks(t *testing.T) {
	game := &countdownGame{limit: 100}
	m := NewModel(game, nil, testConfig(), nil)
	m.Init()

	next, cmd := m.Update(TickMsg{At: time.Now(), Owner: "someone-else"})
	if cmd != nil {
		t.Error("foreign tick should not schedule another tick")
	}
	if next.(Model).State().Ticks != 0 || game.ticks != 0 {
		t.Error("foreign tick should not step the game")
	}
}

func TestModelSavesScoreOncePerRun(t *testing.T) {
	store := openStore(t)
	game := &countdownGame{limit: 3, won: true}
	m := NewModel(game, store, testConfig(), nil)
	m.Init()

	for i := 0; i < 6; i++ {
		m = tick(t, m)
	}

	scores, err := store.TopScores("countdown-level", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, expected 1", len(scores))
	}
	if scores[0].Score != 30 || !scores[0].Victorious || scores[0].Ticks != 3 {
		t.Errorf("saved %+v", scores[0])
	}

	// A restart starts a new run that is saved separately.
	m, _ = press(m, runeKey('r'))
	for i := 0; i < 4; i++ {
		m = tick(t, m)
	}

	scores, err = store.TopScores("countdown-level", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("saved %d scores after restart, expected 2", len(scores))
	}
	if scores[0].RunID == scores[1].RunID {
		t.Error("runs should have distinct ids")
	}
}

func TestModelSkipsEmptyLosses(t *testing.T) {
	store := openStore(t)
	game := &countdownGame{limit: 0}
	m := NewModel(game, store, testConfig(), nil)
	m.Init()
	tick(t, m)

	if hs, err := store.HighScore("countdown-level"); err != nil || hs != 0 {
		t.Errorf("HighScore() = %d, %v; expected nothing saved", hs, err)
	}
}

func TestModelBackAndQuit(t *testing.T) {
	game := &countdownGame{limit: 100}

	m := NewModel(game, nil, testConfig(), nil)
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() || cmd == nil {
		t.Errorf("esc: back=%v quit=%v", m.BackToMenu(), m.IsQuitting())
	}
	if m.View() != "" {
		t.Error("view should be empty after leaving")
	}

	m = NewModel(game, nil, testConfig(), nil)
	m, cmd = press(m, runeKey('q'))
	if !m.IsQuitting() || m.BackToMenu() || cmd == nil {
		t.Errorf("q: back=%v quit=%v", m.BackToMenu(), m.IsQuitting())
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := &countdownGame{limit: 100}
	m := NewModel(game, nil, testConfig(), nil)
	m.Init()
	m = tick(t, m)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	if game.resets != 1 {
		t.Errorf("resize reset the game")
	}
	if cfg := m.Config(); cfg.ScreenW != 100 || cfg.ScreenH != 30 {
		t.Errorf("Config() = %dx%d, expected 100x30", cfg.ScreenW, cfg.ScreenH)
	}
	if !strings.HasPrefix(m.View(), "tick") {
		t.Errorf("View() = %q", m.View())
	}
}

func TestNewModelPicksSeed(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 0
	m := NewModel(&countdownGame{}, nil, cfg, nil)
	if m.Config().Seed == 0 {
		t.Error("zero seed should be replaced")
	}
}
