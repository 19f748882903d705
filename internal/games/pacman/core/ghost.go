package core

import (
	"fmt"
	"time"
)

// Ghost is an autonomous adversary.
type Ghost struct {
	Sprite

	dead       bool
	elapsed    int // ticks spent dead, meaningful only while dead
	limitTicks int
	duration   time.Duration
	tickPeriod time.Duration
	spawn      Position
}

func newGhost(index int, layout *Layout, spawn Position, rules Rules) (*Ghost, error) {
	s, err := newSprite(fmt.Sprintf("ghost-%d", index+1), layout, spawn)
	if err != nil {
		return nil, err
	}
	return &Ghost{
		Sprite:     s,
		limitTicks: rules.Ticks(rules.DeadDuration),
		duration:   rules.DeadDuration,
		tickPeriod: rules.TickPeriod,
		spawn:      spawn,
	}, nil
}

// PreTick advances the dead timer. Revival clears the flag but leaves the
// ghost where it is.
func (g *Ghost) PreTick() {
	if !g.dead {
		return
	}
	g.elapsed++
	if g.elapsed >= g.limitTicks {
		g.dead = false
		g.elapsed = 0
	}
}

// Kill sends the ghost back to its spawn tile and starts the dead timer.
func (g *Ghost) Kill() {
	g.dead = true
	g.elapsed = 0
	g.pos = g.spawn
}

// Dead reports whether the ghost is waiting to revive.
func (g *Ghost) Dead() bool {
	return g.dead
}

// Spawn returns the ghost's original start tile.
func (g *Ghost) Spawn() Position {
	return g.spawn
}

// DeadTicksLeft returns the ticks until the ghost revives.
func (g *Ghost) DeadTicksLeft() (int, error) {
	if !g.dead {
		return 0, fmt.Errorf("%w: %s is not dead", ErrInvalidState, g.name)
	}
	return g.limitTicks - g.elapsed, nil
}

// DeadRemaining returns the time until the ghost revives.
func (g *Ghost) DeadRemaining() (time.Duration, error) {
	if !g.dead {
		return 0, fmt.Errorf("%w: %s is not dead", ErrInvalidState, g.name)
	}
	return g.duration - time.Duration(g.elapsed)*g.tickPeriod, nil
}

// DecideMove picks and performs this tick's move and returns the chosen
// direction. toward is the direction of the player when visible, DirNone
// otherwise.
//
//   - Visible, player not powered: step straight toward the player.
//   - Visible, player powered: drop the toward direction from the candidates,
//     but only when another way out exists.
//   - Not visible: keep going if the current facing is still open.
//   - Otherwise pick uniformly among the candidates.
//
// An empty valid set leaves the ghost in place and returns DirNone.
func (g *Ghost) DecideMove(valid DirectionSet, toward Direction, playerPowered bool, pick Picker) Direction {
	candidates := valid
	if toward != DirNone {
		if !playerPowered {
			g.Move(toward)
			return toward
		}
		if candidates.Len() > 1 {
			candidates = candidates.Remove(toward)
		}
	} else if candidates.Has(g.dir) {
		g.Move(g.dir)
		return g.dir
	}

	options := candidates.Slice()
	if len(options) == 0 {
		return DirNone
	}
	d := options[pick.Intn(len(options))]
	g.Move(d)
	return d
}
