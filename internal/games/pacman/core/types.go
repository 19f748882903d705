// Package core implements the Pac-Man game engine.
// It has no UI dependencies and is fully deterministic given a seed:
// level layouts are parsed once, then an Engine advances the maze one
// discrete tick per Step call.
package core

import (
	"fmt"
	"strings"
)

// Direction is the facing/movement direction of a sprite.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four movement directions in canonical order.
// Random choices and direction sets always enumerate in this order.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "UP"
	case DirDown:
		return "DOWN"
	case DirLeft:
		return "LEFT"
	case DirRight:
		return "RIGHT"
	default:
		return "NONE"
	}
}

// Delta returns the row/column offset of one step in this direction.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction. DirNone has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// ParseDirection parses a direction name or its single-letter form
// (U, D, L, R, N). Matching is case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "U", "UP":
		return DirUp, nil
	case "D", "DOWN":
		return DirDown, nil
	case "L", "LEFT":
		return DirLeft, nil
	case "R", "RIGHT":
		return DirRight, nil
	case "N", "NONE", "":
		return DirNone, nil
	}
	return DirNone, fmt.Errorf("unknown direction %q", s)
}

// Position is a tile coordinate, 0-indexed from the top-left corner.
type Position struct {
	Row int
	Col int
}

// String returns the position as "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// DirectionSet is a set of movement directions.
type DirectionSet uint8

func dirBit(d Direction) DirectionSet {
	if d == DirNone {
		return 0
	}
	return 1 << (d - 1)
}

// NewDirectionSet builds a set from the given directions. DirNone is ignored.
func NewDirectionSet(dirs ...Direction) DirectionSet {
	var s DirectionSet
	for _, d := range dirs {
		s = s.Add(d)
	}
	return s
}

// Add returns the set with d included.
func (s DirectionSet) Add(d Direction) DirectionSet {
	return s | dirBit(d)
}

// Remove returns the set with d excluded.
func (s DirectionSet) Remove(d Direction) DirectionSet {
	return s &^ dirBit(d)
}

// Has reports whether d is a member of the set.
func (s DirectionSet) Has(d Direction) bool {
	return d != DirNone && s&dirBit(d) != 0
}

// Len returns the number of directions in the set.
func (s DirectionSet) Len() int {
	n := 0
	for _, d := range Directions {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Slice returns the members in canonical order.
func (s DirectionSet) Slice() []Direction {
	out := make([]Direction, 0, 4)
	for _, d := range Directions {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// String returns the members as "{UP,LEFT}".
func (s DirectionSet) String() string {
	names := make([]string, 0, 4)
	for _, d := range s.Slice() {
		names = append(names, d.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Picker chooses an index in [0,n). *rand.Rand satisfies it, which keeps
// ghost decisions reproducible for a fixed seed.
type Picker interface {
	Intn(n int) int
}
