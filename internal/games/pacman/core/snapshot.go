package core

import (
	"fmt"
	"strings"
)

// SpriteState is the observable state of one sprite.
type SpriteState struct {
	Name string
	Pos  Position
	Dir  Direction
}

// GhostState is the observable state of one ghost.
type GhostState struct {
	SpriteState
	Dead      bool
	DeadTicks int // ticks until revival, 0 while alive
}

// Snapshot captures the complete engine state for determinism testing and
// headless runs.
type Snapshot struct {
	Tick       uint64
	Score      int
	Status     Status
	SmallLeft  int
	BigLeft    int
	Player     SpriteState
	Powered    bool
	PowerTicks int // ticks of power mode left, 0 while not powered
	Ghosts     []GhostState
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() (Snapshot, error) {
	if e.player == nil {
		return Snapshot{}, fmt.Errorf("%w: no level layout defined yet", ErrInvalidState)
	}

	snap := Snapshot{
		Tick:      e.tick,
		Score:     e.score,
		Status:    e.status,
		SmallLeft: e.small,
		BigLeft:   e.big,
		Player:    spriteState(&e.player.Sprite),
		Powered:   e.player.Powered(),
		Ghosts:    make([]GhostState, len(e.ghosts)),
	}
	if left, err := e.player.PowerTicksLeft(); err == nil {
		snap.PowerTicks = left
	}
	for i, g := range e.ghosts {
		gs := GhostState{SpriteState: spriteState(&g.Sprite), Dead: g.Dead()}
		if left, err := g.DeadTicksLeft(); err == nil {
			gs.DeadTicks = left
		}
		snap.Ghosts[i] = gs
	}
	return snap, nil
}

func spriteState(s *Sprite) SpriteState {
	return SpriteState{Name: s.Name(), Pos: s.Position(), Dir: s.Direction()}
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Tick != o.Tick || s.Score != o.Score || s.Status != o.Status ||
		s.SmallLeft != o.SmallLeft || s.BigLeft != o.BigLeft ||
		s.Player != o.Player || s.Powered != o.Powered || s.PowerTicks != o.PowerTicks ||
		len(s.Ghosts) != len(o.Ghosts) {
		return false
	}
	for i := range s.Ghosts {
		if s.Ghosts[i] != o.Ghosts[i] {
			return false
		}
	}
	return true
}

// String renders the snapshot as a short multi-line report.
func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tick=%d status=%s score=%d small=%d big=%d\n",
		s.Tick, s.Status, s.Score, s.SmallLeft, s.BigLeft)
	fmt.Fprintf(&b, "%s at %s facing %s", s.Player.Name, s.Player.Pos, s.Player.Dir)
	if s.Powered {
		fmt.Fprintf(&b, " powered (%d ticks)", s.PowerTicks)
	}
	b.WriteByte('\n')
	for _, g := range s.Ghosts {
		fmt.Fprintf(&b, "%s at %s facing %s", g.Name, g.Pos, g.Dir)
		if g.Dead {
			fmt.Fprintf(&b, " dead (%d ticks)", g.DeadTicks)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
