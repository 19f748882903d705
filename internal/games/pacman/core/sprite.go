package core

import "fmt"

// Sprite is the movement and position state shared by every maze-bound actor.
// Its position is never on a wall tile.
type Sprite struct {
	name   string
	pos    Position
	dir    Direction
	layout *Layout
}

// newSprite places a sprite at start, facing DirNone.
func newSprite(name string, layout *Layout, start Position) (Sprite, error) {
	s := Sprite{name: name, layout: layout}
	if err := s.SetPosition(start); err != nil {
		return Sprite{}, err
	}
	return s, nil
}

// Name returns the sprite's name.
func (s *Sprite) Name() string {
	return s.name
}

// Position returns the current tile.
func (s *Sprite) Position() Position {
	return s.pos
}

// Row returns the current row.
func (s *Sprite) Row() int {
	return s.pos.Row
}

// Col returns the current column.
func (s *Sprite) Col() int {
	return s.pos.Col
}

// Direction returns the facing direction.
func (s *Sprite) Direction() Direction {
	return s.dir
}

// SetPosition teleports the sprite. The target must be inside the level
// and not a wall.
func (s *Sprite) SetPosition(p Position) error {
	if !s.layout.InBounds(p) {
		return fmt.Errorf("%w: %s cannot be placed at %s outside a %dx%d level",
			ErrInvariantViolation, s.name, p, s.layout.Height(), s.layout.Width())
	}
	if s.layout.IsWall(p) {
		return fmt.Errorf("%w: %s cannot be placed on wall %s", ErrInvariantViolation, s.name, p)
	}
	s.pos = p
	return nil
}

// Move turns the sprite to d and advances one tile with toroidal
// wraparound. A wall at the destination blocks the step but the facing
// still changes. Returns whether the position changed.
func (s *Sprite) Move(d Direction) bool {
	s.dir = d
	if d == DirNone {
		return false
	}
	next := s.layout.Wrap(s.pos, d)
	if s.layout.IsWall(next) {
		return false
	}
	s.pos = next
	return true
}

// Continue repeats a step in the current facing direction.
func (s *Sprite) Continue() bool {
	return s.Move(s.dir)
}

// ValidDirections returns the directions not blocked by an adjacent wall.
func (s *Sprite) ValidDirections() DirectionSet {
	return s.layout.ValidDirections(s.pos)
}

// SameCell reports whether both sprites occupy the same tile.
// Comparing a sprite with itself is a programming error.
func (s *Sprite) SameCell(other *Sprite) (bool, error) {
	if s == other {
		return false, fmt.Errorf("%w: %s compared with itself", ErrInvariantViolation, s.name)
	}
	return s.pos == other.pos, nil
}
