package core

import (
	"errors"
	"testing"
)

// tunnelRows has a horizontal tunnel on row 1, a vertical one on column 1
// and a half-open edge on row 5 (open at column 0, wall at column 9).
var tunnelRows = []string{
	"WEWWWWWWWW",
	"EPSSSSSSSE",
	"WWWWWWWWWW",
	"WSSSSSSSGW",
	"WWWWWWWWWW",
	"ESSSSSSSSW",
	"WWWWWWWWWW",
	"WSSSSSSSSW",
	"WSSSSSSSSW",
	"WEWWWWWWWW",
}

func spriteAt(t *testing.T, l *Layout, p Position) *Sprite {
	t.Helper()
	s, err := newSprite("probe", l, p)
	if err != nil {
		t.Fatalf("newSprite(%v) failed: %v", p, err)
	}
	return &s
}

func TestSpriteMoveWraparound(t *testing.T) {
	l := mustLayout(t, tunnelRows...)

	tests := []struct {
		name      string
		start     Position
		dir       Direction
		want      Position
		wantMoved bool
	}{
		{"left edge wraps to last column", Position{1, 0}, DirLeft, Position{1, 9}, true},
		{"right edge wraps to first column", Position{1, 9}, DirRight, Position{1, 0}, true},
		{"top edge wraps to last row", Position{0, 1}, DirUp, Position{9, 1}, true},
		{"bottom edge wraps to first row", Position{9, 1}, DirDown, Position{0, 1}, true},
		{"wrapped wall blocks", Position{5, 0}, DirLeft, Position{5, 0}, false},
		{"interior wall blocks", Position{3, 1}, DirUp, Position{3, 1}, false},
		{"open step", Position{1, 2}, DirRight, Position{1, 3}, true},
		{"none stays", Position{1, 2}, DirNone, Position{1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := spriteAt(t, l, tt.start)
			moved := s.Move(tt.dir)
			if moved != tt.wantMoved {
				t.Errorf("Move(%v) moved = %v, expected %v", tt.dir, moved, tt.wantMoved)
			}
			if s.Position() != tt.want {
				t.Errorf("Position() = %v, expected %v", s.Position(), tt.want)
			}
			if s.Direction() != tt.dir {
				t.Errorf("Direction() = %v, expected %v (facing updates even when blocked)", s.Direction(), tt.dir)
			}
		})
	}
}

func TestSpriteContinue(t *testing.T) {
	l := mustLayout(t, tunnelRows...)
	s := spriteAt(t, l, Position{1, 7})

	s.Move(DirRight)
	s.Continue()
	if s.Position() != (Position{1, 9}) {
		t.Fatalf("Position() = %v, expected (1,9)", s.Position())
	}
	s.Continue()
	if s.Position() != (Position{1, 0}) {
		t.Errorf("Position() = %v, expected (1,0) after wrapping", s.Position())
	}
}

func TestSpriteSetPosition(t *testing.T) {
	l := mustLayout(t, tunnelRows...)
	s := spriteAt(t, l, Position{1, 1})

	for _, p := range []Position{{-1, 0}, {0, 10}, {10, 1}, {2, 2}} {
		if err := s.SetPosition(p); !errors.Is(err, ErrInvariantViolation) {
			t.Errorf("SetPosition(%v) error = %v, expected ErrInvariantViolation", p, err)
		}
	}
	if s.Position() != (Position{1, 1}) {
		t.Errorf("failed SetPosition moved the sprite to %v", s.Position())
	}
	if err := s.SetPosition(Position{7, 4}); err != nil {
		t.Errorf("SetPosition(7,4) failed: %v", err)
	}
}

func TestSpriteSameCell(t *testing.T) {
	l := mustLayout(t, tunnelRows...)
	a := spriteAt(t, l, Position{1, 3})
	b := spriteAt(t, l, Position{1, 3})

	if _, err := a.SameCell(a); !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("SameCell(self) error = %v, expected ErrInvariantViolation", err)
	}

	same, err := a.SameCell(b)
	if err != nil || !same {
		t.Errorf("SameCell() = %v, %v, expected true, nil", same, err)
	}

	b.Move(DirRight)
	same, err = a.SameCell(b)
	if err != nil || same {
		t.Errorf("SameCell() after move = %v, %v, expected false, nil", same, err)
	}
}

func TestDirectionSet(t *testing.T) {
	s := NewDirectionSet(DirRight, DirUp, DirNone, DirLeft)
	if s.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", s.Len())
	}
	if s.Has(DirNone) || s.Has(DirDown) {
		t.Errorf("set %v should not contain NONE or DOWN", s)
	}

	got := s.Slice()
	want := []Direction{DirUp, DirLeft, DirRight}
	if len(got) != len(want) {
		t.Fatalf("Slice() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Slice()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}

	s = s.Remove(DirUp)
	if s.Has(DirUp) || s.Len() != 2 {
		t.Errorf("Remove(UP) = %v", s)
	}
	if s.String() != "{LEFT,RIGHT}" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"u", DirUp},
		{"DOWN", DirDown},
		{"Left", DirLeft},
		{"r", DirRight},
		{"", DirNone},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, %v, expected %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection(sideways) should fail")
	}
}

func TestOpposite(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v.Opposite().Opposite() = %v", d, d.Opposite().Opposite())
		}
		dr, dc := d.Delta()
		or, oc := d.Opposite().Delta()
		if dr+or != 0 || dc+oc != 0 {
			t.Errorf("%v and its opposite do not cancel out", d)
		}
	}
}
