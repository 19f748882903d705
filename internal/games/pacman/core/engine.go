package core

import (
	"fmt"
	"math/rand"
)

// Status is the engine's position in its state machine.
type Status uint8

const (
	StatusRunning Status = iota
	StatusWon
	StatusLost
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// EventKind classifies what happened during a tick.
type EventKind uint8

const (
	EventPlayerMoved EventKind = iota
	EventSmallItem
	EventBigItem
	EventPowerExpired
	EventGhostMoved
	EventGhostEaten
	EventGhostRevived
	EventPlayerCaught
	EventLevelCleared
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPlayerMoved:
		return "player_moved"
	case EventSmallItem:
		return "small_item"
	case EventBigItem:
		return "big_item"
	case EventPowerExpired:
		return "power_expired"
	case EventGhostMoved:
		return "ghost_moved"
	case EventGhostEaten:
		return "ghost_eaten"
	case EventGhostRevived:
		return "ghost_revived"
	case EventPlayerCaught:
		return "player_caught"
	case EventLevelCleared:
		return "level_cleared"
	default:
		return "unknown"
	}
}

// Event records one thing that happened during the most recent tick.
type Event struct {
	Kind   EventKind
	Ghost  int // index in spawn order, -1 when not about a ghost
	Pos    Position
	Dir    Direction
	Points int
}

// Engine owns the working grid and every agent, and advances the game one
// tick per Step call. It is not safe for concurrent use: the caller
// serializes ticks.
type Engine struct {
	rules  Rules
	pick   Picker
	layout *Layout

	grid   []CellKind
	player *Player
	ghosts []*Ghost

	score  int
	small  int
	big    int
	status Status
	tick   uint64
	events []Event
}

// NewEngine creates an engine with the given rules. pick supplies the
// random ghost choices; a nil pick uses a generator seeded with 0.
func NewEngine(rules Rules, pick Picker) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if pick == nil {
		pick = rand.New(rand.NewSource(0))
	}
	return &Engine{rules: rules, pick: pick}, nil
}

// Rules returns the rules the engine was built with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Initialize loads a level and starts a fresh game on it.
func (e *Engine) Initialize(layout *Layout) error {
	if layout == nil {
		return fmt.Errorf("initialize: %w: nil level layout", ErrInvalidState)
	}
	e.layout = layout
	return e.reset()
}

// Restart starts a fresh game on the current level without re-parsing it.
func (e *Engine) Restart() error {
	if e.layout == nil {
		return fmt.Errorf("restart: %w: no level layout defined yet", ErrInvalidState)
	}
	return e.reset()
}

func (e *Engine) reset() error {
	l := e.layout

	e.grid = make([]CellKind, len(l.cells))
	for i, k := range l.cells {
		if k == CellPlayerStart || k == CellGhostStart {
			k = CellEmpty
		}
		e.grid[i] = k
	}

	player, err := newPlayer(l, e.rules)
	if err != nil {
		return err
	}
	ghosts := make([]*Ghost, 0, len(l.ghosts))
	for i, spawn := range l.ghosts {
		g, err := newGhost(i, l, spawn, e.rules)
		if err != nil {
			return err
		}
		ghosts = append(ghosts, g)
	}

	e.player = player
	e.ghosts = ghosts
	e.score = 0
	e.small = l.small
	e.big = l.big
	e.status = StatusRunning
	e.tick = 0
	e.events = nil
	return nil
}

// Step advances the simulation by one tick. requested is the player's
// desired direction; DirNone repeats the current facing. Once the game is
// over Step does nothing.
func (e *Engine) Step(requested Direction) error {
	if e.layout == nil {
		return fmt.Errorf("step: %w: no level layout defined yet", ErrInvalidState)
	}
	if e.status != StatusRunning {
		return nil
	}

	e.tick++
	e.events = e.events[:0]
	if requested == DirNone {
		requested = e.player.Direction()
	}

	// Expire timed effects before anything moves.
	wasPowered := e.player.Powered()
	e.player.PreTick()
	if wasPowered && !e.player.Powered() {
		e.record(EventPowerExpired, -1, e.player.Position(), DirNone, 0)
	}
	for i, g := range e.ghosts {
		wasDead := g.Dead()
		g.PreTick()
		if wasDead && !g.Dead() {
			e.record(EventGhostRevived, i, g.Position(), g.Direction(), 0)
		}
	}

	// Whatever the player stands on has already been consumed.
	e.setCell(e.player.Position(), CellEmpty)

	pos := e.player.Position()
	if e.player.AttemptMove(requested, e.layout.ValidDirections(pos)) {
		e.record(EventPlayerMoved, -1, e.player.Position(), e.player.Direction(), 0)
	}

	for i, g := range e.ghosts {
		over, err := e.resolveCollision(i, g)
		if err != nil || over {
			return err
		}
	}

	pos = e.player.Position()
	switch e.cell(pos) {
	case CellBigItem:
		e.big--
		e.score += e.rules.BigItemPoints
		e.player.EnterPowerMode()
		e.record(EventBigItem, -1, pos, DirNone, e.rules.BigItemPoints)
	case CellSmallItem:
		e.small--
		e.score += e.rules.SmallItemPoints
		e.record(EventSmallItem, -1, pos, DirNone, e.rules.SmallItemPoints)
	}

	if e.small == 0 && e.big == 0 {
		e.status = StatusWon
		e.record(EventLevelCleared, -1, pos, DirNone, 0)
		return nil
	}

	for i, g := range e.ghosts {
		if g.Dead() {
			continue
		}
		valid := e.layout.ValidDirections(g.Position())
		toward := e.VisibleDirection(g.Position())
		dir := g.DecideMove(valid, toward, e.player.Powered(), e.pick)
		e.record(EventGhostMoved, i, g.Position(), dir, 0)

		over, err := e.resolveCollision(i, g)
		if err != nil || over {
			return err
		}
	}

	return nil
}

// resolveCollision handles the player meeting ghost i. A powered player eats
// the ghost; otherwise the game is lost. Returns true when the game ended.
func (e *Engine) resolveCollision(i int, g *Ghost) (bool, error) {
	if g.Dead() {
		return false, nil
	}
	same, err := e.player.SameCell(&g.Sprite)
	if err != nil {
		return false, err
	}
	if !same {
		return false, nil
	}

	if e.player.Powered() {
		at := g.Position()
		g.Kill()
		e.score += e.rules.GhostPoints
		e.record(EventGhostEaten, i, at, g.Direction(), e.rules.GhostPoints)
		return false, nil
	}

	e.status = StatusLost
	e.record(EventPlayerCaught, i, g.Position(), g.Direction(), 0)
	return true, nil
}

// VisibleDirection returns the direction from a ghost at from toward the
// player when they share a row or column with no wall strictly between
// them, and DirNone otherwise. Sight lines never wrap around the level.
func (e *Engine) VisibleDirection(from Position) Direction {
	if e.player == nil {
		return DirNone
	}
	to := e.player.Position()
	switch {
	case from == to:
		return DirNone
	case from.Row == to.Row:
		lo, hi := min(from.Col, to.Col), max(from.Col, to.Col)
		for c := lo + 1; c < hi; c++ {
			if e.layout.IsWall(Position{Row: from.Row, Col: c}) {
				return DirNone
			}
		}
		if from.Col < to.Col {
			return DirRight
		}
		return DirLeft
	case from.Col == to.Col:
		lo, hi := min(from.Row, to.Row), max(from.Row, to.Row)
		for r := lo + 1; r < hi; r++ {
			if e.layout.IsWall(Position{Row: r, Col: from.Col}) {
				return DirNone
			}
		}
		if from.Row < to.Row {
			return DirDown
		}
		return DirUp
	}
	return DirNone
}

func (e *Engine) record(kind EventKind, ghost int, pos Position, dir Direction, points int) {
	e.events = append(e.events, Event{Kind: kind, Ghost: ghost, Pos: pos, Dir: dir, Points: points})
}

func (e *Engine) cell(p Position) CellKind {
	return e.grid[p.Row*e.layout.width+p.Col]
}

func (e *Engine) setCell(p Position, k CellKind) {
	if e.cell(p) == CellWall {
		return
	}
	e.grid[p.Row*e.layout.width+p.Col] = k
}

// Layout returns the level being played.
func (e *Engine) Layout() (*Layout, error) {
	if e.layout == nil {
		return nil, fmt.Errorf("%w: no level layout defined yet", ErrInvalidState)
	}
	return e.layout, nil
}

// Cell returns the working-grid content at (row, col).
func (e *Engine) Cell(row, col int) (CellKind, error) {
	if e.layout == nil {
		return CellEmpty, fmt.Errorf("%w: no level layout defined yet", ErrInvalidState)
	}
	if row < 0 || row >= e.layout.height {
		return CellEmpty, BoundsError{Axis: AxisRow, Index: row, Limit: e.layout.height}
	}
	if col < 0 || col >= e.layout.width {
		return CellEmpty, BoundsError{Axis: AxisColumn, Index: col, Limit: e.layout.width}
	}
	return e.cell(Position{Row: row, Col: col}), nil
}

// Player returns a copy of the player agent.
func (e *Engine) Player() (Player, error) {
	if e.player == nil {
		return Player{}, fmt.Errorf("%w: no level layout defined yet", ErrInvalidState)
	}
	return *e.player, nil
}

// Ghosts returns copies of the ghosts in spawn order.
func (e *Engine) Ghosts() ([]Ghost, error) {
	if e.player == nil {
		return nil, fmt.Errorf("%w: no level layout defined yet", ErrInvalidState)
	}
	out := make([]Ghost, len(e.ghosts))
	for i, g := range e.ghosts {
		out[i] = *g
	}
	return out, nil
}

// Events returns what happened during the most recent tick.
func (e *Engine) Events() []Event {
	out := make([]Event, len(e.events))
	copy(out, e.events)
	return out
}

// Score returns the accumulated score.
func (e *Engine) Score() int {
	return e.score
}

// Status returns the current state machine status.
func (e *Engine) Status() Status {
	return e.status
}

// GameOver reports whether the game has ended, won or lost.
func (e *Engine) GameOver() bool {
	return e.layout != nil && e.status != StatusRunning
}

// Victorious reports whether the game ended with every item consumed.
func (e *Engine) Victorious() bool {
	return e.status == StatusWon
}

// Tick returns the number of ticks simulated since the last (re)start.
func (e *Engine) Tick() uint64 {
	return e.tick
}

// SmallItemsLeft returns the number of small items not yet eaten.
func (e *Engine) SmallItemsLeft() int {
	return e.small
}

// BigItemsLeft returns the number of big items not yet eaten.
func (e *Engine) BigItemsLeft() int {
	return e.big
}
