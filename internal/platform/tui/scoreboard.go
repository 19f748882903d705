package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

const (
	minWidthForSidebar = 84 // below this, levels are shown as a single selector line
	sidebarWidth       = 24
	maxScores          = 100
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreboardStyles holds the lipgloss styles of one scoreboard.
type scoreboardStyles struct {
	title    lipgloss.Style
	box      lipgloss.Style
	active   lipgloss.Style
	inactive lipgloss.Style
	stats    lipgloss.Style
	empty    lipgloss.Style
	help     lipgloss.Style
}

func newScoreboardStyles(r *lipgloss.Renderer) scoreboardStyles {
	return scoreboardStyles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		box:      r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("4")).Padding(0, 1),
		active:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		inactive: r.NewStyle().Foreground(lipgloss.Color("245")),
		stats:    r.NewStyle().Foreground(lipgloss.Color("14")),
		empty:    r.NewStyle().Foreground(lipgloss.Color("245")).Italic(true).Padding(2, 4),
		help:     r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// ScoreboardModel is the Bubble Tea model for the per-level high score screen.
type ScoreboardModel struct {
	levels      []registry.GameInfo
	cursor      int
	store       *storage.Store
	scores      []storage.ScoreEntry
	stats       *storage.LevelStats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	styles      scoreboardStyles
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	return NewScoreboardModelWithRenderer(store, width, height, lipgloss.DefaultRenderer())
}

// NewScoreboardModelWithRenderer is NewScoreboardModel with styles bound to r.
func NewScoreboardModelWithRenderer(store *storage.Store, width, height int, r *lipgloss.Renderer) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		levels:      registry.List(),
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		styles:      newScoreboardStyles(r),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadScores()

	return m
}

// createTable creates a table sized to the current window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Result", Width: 6},
		{Title: "Ticks", Width: 7},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("11")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// currentLevel returns the level id under the cursor, or "" if there are none.
func (m *ScoreboardModel) currentLevel() string {
	if len(m.levels) == 0 {
		return ""
	}
	return m.levels[m.cursor].Level
}

// loadScores reads scores and stats for the level under the cursor.
func (m *ScoreboardModel) loadScores() {
	m.scores = nil
	m.stats = nil

	level := m.currentLevel()
	if m.store != nil && level != "" {
		if scores, err := m.store.TopScores(level, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.LevelStats(level); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		result := "LOSS"
		if s.Victorious {
			result = "WIN"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(s.Score),
			result,
			strconv.Itoa(s.Ticks),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// moveLevel shifts the level cursor by delta, wrapping around.
func (m *ScoreboardModel) moveLevel(delta int) {
	if len(m.levels) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.levels)) % len(m.levels)
	m.loadScores()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLevel):
			m.moveLevel(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			m.moveLevel(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if len(m.levels) > 0 {
		title = fmt.Sprintf("HIGH SCORES - %s", m.levels[m.cursor].Title)
	}
	b.WriteString(centerStyled(m.styles.title.Render(title), len([]rune(title)), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", m.renderScores()))
	} else {
		b.WriteString(m.renderSelector())
		b.WriteString("\n\n")
		b.WriteString(m.renderScores())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar lists the levels with the cursor marked.
func (m ScoreboardModel) renderSidebar() string {
	var list strings.Builder
	list.WriteString("Levels\n")
	list.WriteString(strings.Repeat("-", sidebarWidth-4))
	list.WriteString("\n")

	for i, lvl := range m.levels {
		name := truncate(lvl.Title, sidebarWidth-6)
		if i == m.cursor {
			list.WriteString(m.styles.active.Render("> " + name))
		} else {
			list.WriteString(m.styles.inactive.Render("  " + name))
		}
		list.WriteString("\n")
	}

	return m.styles.box.Width(sidebarWidth).Render(list.String())
}

// renderSelector shows the current level between arrows for narrow windows.
func (m ScoreboardModel) renderSelector() string {
	if len(m.levels) == 0 {
		return ""
	}
	line := fmt.Sprintf("< %s >", m.levels[m.cursor].Title)
	return centerText(line, m.width)
}

// renderScores renders the stats line and the table, or an empty message.
func (m ScoreboardModel) renderScores() string {
	if len(m.scores) == 0 {
		return m.styles.box.Render(m.styles.empty.Render("No scores recorded yet.\nClear a maze to set a high score!"))
	}

	content := m.table.View()
	if line := m.statsLine(); line != "" {
		content = m.styles.stats.Render(line) + "\n\n" + content
	}
	return m.styles.box.Render(content)
}

// statsLine summarizes the level's history.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	line := fmt.Sprintf("Played %d  Won %d  Avg %.0f", m.stats.GamesCount, m.stats.Wins, m.stats.AvgScore)
	if m.stats.BestTicks > 0 {
		line += fmt.Sprintf("  Fastest clear %d ticks", m.stats.BestTicks)
	}
	return line
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
