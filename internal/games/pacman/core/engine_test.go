package core

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestEngine(t *testing.T, pick Picker, rows ...string) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultRules(), pick)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	if err := e.Initialize(mustLayout(t, rows...)); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	return e
}

func mustStep(t *testing.T, e *Engine, d Direction) {
	t.Helper()
	if err := e.Step(d); err != nil {
		t.Fatalf("Step(%v) failed: %v", d, err)
	}
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestEngineRequiresLevel(t *testing.T) {
	e, err := NewEngine(DefaultRules(), nil)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	if err := e.Step(DirLeft); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Step() before Initialize error = %v, expected ErrInvalidState", err)
	}
	if err := e.Restart(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Restart() before Initialize error = %v, expected ErrInvalidState", err)
	}
	if _, err := e.Player(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Player() before Initialize error = %v, expected ErrInvalidState", err)
	}
	if _, err := e.Cell(0, 0); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Cell() before Initialize error = %v, expected ErrInvalidState", err)
	}
	if err := e.Initialize(nil); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Initialize(nil) error = %v, expected ErrInvalidState", err)
	}
	if e.GameOver() {
		t.Error("GameOver() should be false before Initialize")
	}
}

func TestNewEngineRejectsBadRules(t *testing.T) {
	rules := DefaultRules()
	rules.TickPeriod = 0
	if _, err := NewEngine(rules, nil); err == nil {
		t.Error("NewEngine() accepted a zero tick period")
	}
}

func TestEngineInitialize(t *testing.T) {
	e := newTestEngine(t, nil, openRows...)

	if e.Score() != 0 || e.GameOver() || e.Victorious() || e.Status() != StatusRunning {
		t.Errorf("fresh engine: score=%d over=%v won=%v status=%v", e.Score(), e.GameOver(), e.Victorious(), e.Status())
	}
	if e.SmallItemsLeft() != 62 || e.BigItemsLeft() != 0 {
		t.Errorf("items = %d/%d, expected 62/0", e.SmallItemsLeft(), e.BigItemsLeft())
	}

	// Start tiles are plain floor in the working grid.
	for _, p := range []Position{{8, 8}, {4, 4}} {
		kind, err := e.Cell(p.Row, p.Col)
		if err != nil {
			t.Fatalf("Cell(%v) failed: %v", p, err)
		}
		if kind != CellEmpty {
			t.Errorf("Cell(%v) = %v, expected EMPTY", p, kind)
		}
	}

	if _, err := e.Cell(10, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Cell(10,0) error = %v, expected ErrOutOfBounds", err)
	}

	player, err := e.Player()
	if err != nil {
		t.Fatalf("Player() failed: %v", err)
	}
	if player.Position() != (Position{8, 8}) || player.Direction() != DirNone {
		t.Errorf("player at %v facing %v", player.Position(), player.Direction())
	}

	ghosts, err := e.Ghosts()
	if err != nil {
		t.Fatalf("Ghosts() failed: %v", err)
	}
	if len(ghosts) != 1 || ghosts[0].Position() != (Position{4, 4}) || ghosts[0].Name() != "ghost-1" {
		t.Errorf("Ghosts() = %+v", ghosts)
	}
}

func TestGhostSpawnOrder(t *testing.T) {
	e := newTestEngine(t, nil,
		"WWWWWWWWWW",
		"WSSSSSSGSW",
		"WSSSSSSSSW",
		"WGSSSSSSSW",
		"WSSSSSSSSW",
		"WSSSSSSSGW",
		"WSSSSSSSSW",
		"WSSSSSSSSW",
		"WSSSSSSSPW",
		"WWWWWWWWWW",
	)
	ghosts, _ := e.Ghosts()
	want := []Position{{1, 7}, {3, 1}, {5, 8}}
	if len(ghosts) != len(want) {
		t.Fatalf("got %d ghosts, expected %d", len(ghosts), len(want))
	}
	for i, g := range ghosts {
		if g.Spawn() != want[i] {
			t.Errorf("ghost %d spawn = %v, expected %v", i, g.Spawn(), want[i])
		}
	}
}

func TestScoringIsIdempotent(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(7)), openRows...)

	mustStep(t, e, DirLeft)
	if e.Score() != 10 || e.SmallItemsLeft() != 61 {
		t.Fatalf("after eating: score=%d small=%d, expected 10/61", e.Score(), e.SmallItemsLeft())
	}
	if !hasEvent(e.Events(), EventSmallItem) {
		t.Error("expected a small_item event")
	}

	// Back onto the start tile, then onto the tile just eaten.
	mustStep(t, e, DirRight)
	mustStep(t, e, DirLeft)
	if e.Score() != 10 || e.SmallItemsLeft() != 61 {
		t.Errorf("after revisiting: score=%d small=%d, expected 10/61", e.Score(), e.SmallItemsLeft())
	}
	if kind, _ := e.Cell(8, 7); kind != CellEmpty {
		t.Errorf("Cell(8,7) = %v, expected EMPTY", kind)
	}
}

func TestStepRepeatsLastDirection(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(1)), openRows...)

	mustStep(t, e, DirNone)
	if p, _ := e.Player(); p.Position() != (Position{8, 8}) {
		t.Fatalf("player moved to %v with no direction ever requested", p.Position())
	}

	mustStep(t, e, DirLeft)
	mustStep(t, e, DirNone)
	mustStep(t, e, DirNone)
	p, _ := e.Player()
	if p.Position() != (Position{8, 5}) {
		t.Errorf("player at %v, expected (8,5)", p.Position())
	}
	if e.Score() != 30 {
		t.Errorf("Score() = %d, expected 30", e.Score())
	}
}

func TestBlockedRequestKeepsPlayer(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(1)), openRows...)

	mustStep(t, e, DirRight)
	p, _ := e.Player()
	if p.Position() != (Position{8, 8}) || p.Direction() != DirNone {
		t.Errorf("player at %v facing %v after walking into a wall", p.Position(), p.Direction())
	}
}

func TestWinScenario(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(3)),
		"WWWWWWWWWW",
		"WPSBWWWWWW",
		"WWWWWWWWWW",
		"WWWWWWWWWW",
		"WWWWWWWWWW",
		"WWWWWWWWWW",
		"WWWWWWWWWW",
		"WWWWWEEEWW",
		"WWWWWEGEWW",
		"WWWWWWWWWW",
	)

	mustStep(t, e, DirRight)
	if e.GameOver() {
		t.Fatal("game ended after the first item")
	}
	if !hasEvent(e.Events(), EventGhostMoved) {
		t.Error("ghost should move on a regular tick")
	}

	before, _ := e.Ghosts()
	mustStep(t, e, DirRight)

	if !e.GameOver() || !e.Victorious() {
		t.Fatalf("GameOver()=%v Victorious()=%v, expected true/true", e.GameOver(), e.Victorious())
	}
	if e.Score() != 60 {
		t.Errorf("Score() = %d, expected 60", e.Score())
	}
	events := e.Events()
	if hasEvent(events, EventGhostMoved) {
		t.Error("ghosts must not move on the winning tick")
	}
	if !hasEvent(events, EventLevelCleared) {
		t.Error("expected a level_cleared event")
	}
	after, _ := e.Ghosts()
	if after[0].Position() != before[0].Position() {
		t.Errorf("ghost moved from %v to %v on the winning tick", before[0].Position(), after[0].Position())
	}

	// Terminal state ignores further steps.
	tick := e.Tick()
	mustStep(t, e, DirLeft)
	if e.Tick() != tick {
		t.Error("Step() advanced a finished game")
	}
}

func TestLossScenario(t *testing.T) {
	e := newTestEngine(t, noPicker{t},
		"WWWWWWWWWW",
		"WSPGWWWWWW",
		"WWWWWWWWWW",
		"WWWWWWWWWW",
		"WWWWWWWWWW",
		"WSSSSSSSSW",
		"WWWWWWWWWW",
		"WWWWWWWWWW",
		"WWWWWWWWWW",
		"WWWWWWWWWW",
	)

	// The player eats the item; the ghost sees it and chases into (1,2).
	mustStep(t, e, DirLeft)
	if e.Score() != 10 || e.GameOver() {
		t.Fatalf("after first tick: score=%d over=%v", e.Score(), e.GameOver())
	}
	ghosts, _ := e.Ghosts()
	if ghosts[0].Position() != (Position{1, 2}) || ghosts[0].Direction() != DirLeft {
		t.Fatalf("ghost at %v facing %v, expected (1,2) facing LEFT", ghosts[0].Position(), ghosts[0].Direction())
	}

	mustStep(t, e, DirRight)
	if !e.GameOver() || e.Victorious() {
		t.Fatalf("GameOver()=%v Victorious()=%v, expected true/false", e.GameOver(), e.Victorious())
	}
	if e.Status() != StatusLost {
		t.Errorf("Status() = %v, expected lost", e.Status())
	}
	if e.Score() != 10 {
		t.Errorf("Score() = %d, expected the losing step to leave it at 10", e.Score())
	}
	if !hasEvent(e.Events(), EventPlayerCaught) {
		t.Error("expected a player_caught event")
	}
}

// chaseRows puts a big item between the player and a ghost stuck in a
// dead end, so the powered player meets the ghost on the same tick.
var chaseRows = []string{
	"WWWWWWWWWW",
	"WEPBGWWWWW",
	"WWWWWWWWWW",
	"WWWWWWWWWW",
	"WSSSSSSSSW",
	"WWWWWWWWWW",
	"WWWWWWWWWW",
	"WWWWWWWWWW",
	"WWWWWWWWWW",
	"WWWWWWWWWW",
}

func TestChaseThenEatScenario(t *testing.T) {
	e := newTestEngine(t, &scriptedPicker{t: t, picks: []int{0}}, chaseRows...)

	mustStep(t, e, DirRight)

	if e.GameOver() {
		t.Fatal("game ended, expected the powered player to eat the ghost")
	}
	if e.Score() != 150 {
		t.Errorf("Score() = %d, expected 50 for the big item plus 100 for the ghost", e.Score())
	}
	ghosts, _ := e.Ghosts()
	if !ghosts[0].Dead() {
		t.Error("ghost should be dead")
	}
	if ghosts[0].Position() != ghosts[0].Spawn() {
		t.Errorf("ghost at %v, expected spawn %v", ghosts[0].Position(), ghosts[0].Spawn())
	}
	if !hasEvent(e.Events(), EventGhostEaten) {
		t.Error("expected a ghost_eaten event")
	}

	// A dead ghost neither moves nor collides.
	mustStep(t, e, DirNone)
	p, _ := e.Player()
	if p.Position() != (Position{1, 4}) {
		t.Fatalf("player at %v, expected (1,4)", p.Position())
	}
	if e.GameOver() || e.Score() != 150 {
		t.Errorf("stepping onto a dead ghost: over=%v score=%d", e.GameOver(), e.Score())
	}
}

func TestRevivedGhostOnPlayerTile(t *testing.T) {
	e := newTestEngine(t, &scriptedPicker{t: t, picks: []int{0}}, chaseRows...)
	rules := e.Rules()

	// Tick 1 kills the ghost; the player then parks on its spawn tile.
	mustStep(t, e, DirRight)
	deadTicks := rules.Ticks(rules.DeadDuration)
	for i := 0; i < deadTicks-1; i++ {
		mustStep(t, e, DirNone)
	}
	if e.GameOver() {
		t.Fatalf("game ended at tick %d while the ghost was still dead", e.Tick())
	}

	// Power mode has long expired, so the revived ghost catches the player.
	mustStep(t, e, DirNone)
	if !e.GameOver() || e.Victorious() {
		t.Errorf("GameOver()=%v Victorious()=%v at tick %d, expected true/false", e.GameOver(), e.Victorious(), e.Tick())
	}
	events := e.Events()
	if !hasEvent(events, EventGhostRevived) || !hasEvent(events, EventPlayerCaught) {
		t.Errorf("events = %+v, expected ghost_revived and player_caught", events)
	}
}

func TestVisibleDirection(t *testing.T) {
	e := newTestEngine(t, nil,
		"WWWWWWWWWW",
		"WPSSWSSSGW",
		"WSSSSSSSSW",
		"WSSSSSSSSW",
		"WSSSSSSSSW",
		"WGSSSSSSSW",
		"WSSSSSSSSW",
		"WSSSSSSSSW",
		"WSSSSSSSSW",
		"WWWWWWWWWW",
	)

	tests := []struct {
		from Position
		want Direction
	}{
		{Position{1, 8}, DirNone},  // wall in between
		{Position{5, 1}, DirUp},    // same column, clear
		{Position{1, 3}, DirLeft},  // same row, clear
		{Position{1, 2}, DirLeft},  // adjacent
		{Position{2, 2}, DirNone},  // diagonal
		{Position{1, 1}, DirNone},  // same cell
		{Position{8, 1}, DirUp},    // far end of the column
	}
	for _, tt := range tests {
		if got := e.VisibleDirection(tt.from); got != tt.want {
			t.Errorf("VisibleDirection(%v) = %v, expected %v", tt.from, got, tt.want)
		}
	}

	// Sight is recomputed from the player's new tile.
	mustStep(t, e, DirDown)
	if got := e.VisibleDirection(Position{8, 1}); got != DirUp {
		t.Errorf("VisibleDirection(8,1) after moving = %v, expected UP", got)
	}
}

func TestRestart(t *testing.T) {
	e := newTestEngine(t, rand.New(rand.NewSource(9)), openRows...)
	initial, err := e.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}

	for _, d := range []Direction{DirLeft, DirLeft, DirUp, DirUp} {
		mustStep(t, e, d)
	}
	if e.Score() == 0 {
		t.Fatal("expected some score before restarting")
	}

	if err := e.Restart(); err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	again, _ := e.Snapshot()
	if !again.Equal(initial) {
		t.Errorf("snapshot after Restart:\n%s\nexpected:\n%s", again, initial)
	}
	if kind, _ := e.Cell(8, 7); kind != CellSmallItem {
		t.Errorf("Cell(8,7) = %v after restart, expected SMALL_ITEM", kind)
	}
}

func TestDeterminism(t *testing.T) {
	l := loadClassic(t)
	script := []Direction{DirLeft, DirNone, DirNone, DirUp, DirNone, DirRight, DirNone, DirDown, DirLeft}

	run := func() Snapshot {
		e, err := NewEngine(DefaultRules(), rand.New(rand.NewSource(12345)))
		if err != nil {
			t.Fatalf("NewEngine() failed: %v", err)
		}
		if err := e.Initialize(l); err != nil {
			t.Fatalf("Initialize() failed: %v", err)
		}
		for i := 0; i < 300; i++ {
			if err := e.Step(script[i%len(script)]); err != nil {
				t.Fatalf("Step() failed: %v", err)
			}
		}
		snap, err := e.Snapshot()
		if err != nil {
			t.Fatalf("Snapshot() failed: %v", err)
		}
		return snap
	}

	a, b := run(), run()
	if !a.Equal(b) {
		t.Errorf("same seed and inputs diverged:\n%s\nvs\n%s", a, b)
	}
}

func TestEngineInvariantsOnClassic(t *testing.T) {
	l := loadClassic(t)
	e, _ := NewEngine(DefaultRules(), rand.New(rand.NewSource(99)))
	if err := e.Initialize(l); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	rng := rand.New(rand.NewSource(5))
	prevScore := 0
	for i := 0; i < 500 && !e.GameOver(); i++ {
		mustStep(t, e, Directions[rng.Intn(4)])

		if e.Score() < prevScore {
			t.Fatalf("score decreased from %d to %d", prevScore, e.Score())
		}
		prevScore = e.Score()

		p, _ := e.Player()
		if l.IsWall(p.Position()) {
			t.Fatalf("player on a wall at %v", p.Position())
		}
		ghosts, _ := e.Ghosts()
		for _, g := range ghosts {
			if l.IsWall(g.Position()) {
				t.Fatalf("%s on a wall at %v", g.Name(), g.Position())
			}
		}

		eaten := (l.SmallItems() - e.SmallItemsLeft()) * 10
		eaten += (l.BigItems() - e.BigItemsLeft()) * 50
		if (e.Score()-eaten)%100 != 0 || e.Score() < eaten {
			t.Fatalf("score %d does not match %d item points plus ghost points", e.Score(), eaten)
		}
	}
}
