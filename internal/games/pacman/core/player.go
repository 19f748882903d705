package core

import (
	"fmt"
	"time"
)

// Player is the controllable agent.
type Player struct {
	Sprite

	powered    bool
	elapsed    int // ticks spent in power mode, meaningful only while powered
	limitTicks int
	duration   time.Duration
	tickPeriod time.Duration
}

func newPlayer(layout *Layout, rules Rules) (*Player, error) {
	s, err := newSprite("pacman", layout, layout.PlayerStart())
	if err != nil {
		return nil, err
	}
	return &Player{
		Sprite:     s,
		limitTicks: rules.Ticks(rules.PowerDuration),
		duration:   rules.PowerDuration,
		tickPeriod: rules.TickPeriod,
	}, nil
}

// AttemptMove moves in the requested direction only if it is in valid.
// Otherwise neither position nor facing changes.
func (p *Player) AttemptMove(requested Direction, valid DirectionSet) bool {
	if !valid.Has(requested) {
		return false
	}
	return p.Move(requested)
}

// PreTick advances the power-mode timer and clears it on expiry.
func (p *Player) PreTick() {
	if !p.powered {
		return
	}
	p.elapsed++
	if p.elapsed >= p.limitTicks {
		p.powered = false
		p.elapsed = 0
	}
}

// EnterPowerMode starts power mode, or restarts its full duration when
// already active.
func (p *Player) EnterPowerMode() {
	p.powered = true
	p.elapsed = 0
}

// Powered reports whether power mode is active.
func (p *Player) Powered() bool {
	return p.powered
}

// PowerTicksLeft returns the ticks until power mode expires.
func (p *Player) PowerTicksLeft() (int, error) {
	if !p.powered {
		return 0, fmt.Errorf("%w: player is not in power mode", ErrInvalidState)
	}
	return p.limitTicks - p.elapsed, nil
}

// PowerRemaining returns the power-mode time left.
func (p *Player) PowerRemaining() (time.Duration, error) {
	if !p.powered {
		return 0, fmt.Errorf("%w: player is not in power mode", ErrInvalidState)
	}
	return p.duration - time.Duration(p.elapsed)*p.tickPeriod, nil
}
