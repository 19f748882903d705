package core

import (
	"strings"
	"unicode"
)

// MinLevelSize is the smallest accepted level height and width.
const MinLevelSize = 10

// CellKind is the content of a single maze tile.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellSmallItem
	CellBigItem
	CellWall
	CellGhostStart
	CellPlayerStart
)

// Symbol returns the character that encodes this kind in level text.
func (k CellKind) Symbol() rune {
	switch k {
	case CellSmallItem:
		return 'S'
	case CellBigItem:
		return 'B'
	case CellWall:
		return 'W'
	case CellGhostStart:
		return 'G'
	case CellPlayerStart:
		return 'P'
	default:
		return 'E'
	}
}

// String returns a human-readable name for the cell kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "EMPTY"
	case CellSmallItem:
		return "SMALL_ITEM"
	case CellBigItem:
		return "BIG_ITEM"
	case CellWall:
		return "WALL"
	case CellGhostStart:
		return "GHOST_START"
	case CellPlayerStart:
		return "PLAYER_START"
	default:
		return "UNKNOWN"
	}
}

// IsItem reports whether the cell holds a collectible.
func (k CellKind) IsItem() bool {
	return k == CellSmallItem || k == CellBigItem
}

// ParseCellKind maps a level-text character to its cell kind.
func ParseCellKind(r rune) (CellKind, bool) {
	switch r {
	case 'E':
		return CellEmpty, true
	case 'S':
		return CellSmallItem, true
	case 'B':
		return CellBigItem, true
	case 'W':
		return CellWall, true
	case 'G':
		return CellGhostStart, true
	case 'P':
		return CellPlayerStart, true
	}
	return CellEmpty, false
}

// Layout is a validated, immutable maze description.
// It is shared read-only by the engine and every sprite.
type Layout struct {
	name   string
	width  int
	height int
	cells  []CellKind // row-major: cells[row*width+col]

	player Position
	ghosts []Position
	small  int
	big    int
}

// ParseLayout parses raw level text. Each line holds one character per tile
// from the alphabet E,S,B,W,G,P. A '#' starts a comment running to the end
// of the line, whitespace is ignored and blank lines are dropped.
func ParseLayout(name, text string) (*Layout, error) {
	return NewLayout(name, strings.Split(text, "\n"))
}

// NewLayout builds a layout from pre-split lines, applying the same comment
// and whitespace stripping as ParseLayout.
func NewLayout(name string, lines []string) (*Layout, error) {
	rows := make([][]rune, 0, len(lines))
	for _, line := range lines {
		if row := cleanLine(line); len(row) > 0 {
			rows = append(rows, row)
		}
	}

	if len(rows) < MinLevelSize {
		return nil, levelErr(CodeTooShort, "level height cannot be less than %d (got %d)", MinLevelSize, len(rows))
	}
	width := len(rows[0])
	if width < MinLevelSize {
		return nil, levelErr(CodeTooNarrow, "level width cannot be less than %d (got %d)", MinLevelSize, width)
	}

	l := &Layout{
		name:   name,
		width:  width,
		height: len(rows),
		cells:  make([]CellKind, width*len(rows)),
	}

	players := 0
	for r, row := range rows {
		if len(row) != width {
			return nil, levelErr(CodeNotRectangular, "level must be rectangular: row %d has %d cells, expected %d", r, len(row), width)
		}
		for c, ch := range row {
			kind, ok := ParseCellKind(ch)
			if !ok {
				return nil, levelErr(CodeInvalidSymbol, "invalid symbol %q at row %d, column %d", ch, r, c)
			}
			switch kind {
			case CellPlayerStart:
				players++
				if players > 1 {
					return nil, levelErr(CodeMultiplePlayer, "there can only be one player start (second at row %d, column %d)", r, c)
				}
				l.player = Position{Row: r, Col: c}
			case CellGhostStart:
				l.ghosts = append(l.ghosts, Position{Row: r, Col: c})
			case CellSmallItem:
				l.small++
			case CellBigItem:
				l.big++
			}
			l.cells[r*width+c] = kind
		}
	}

	if players == 0 {
		return nil, levelErr(CodeNoPlayer, "level must define one player start")
	}
	if l.small == 0 {
		return nil, levelErr(CodeNoSmallItems, "level must define at least one small item")
	}
	if len(l.ghosts) == 0 {
		return nil, levelErr(CodeNoGhosts, "level must define at least one ghost start")
	}

	return l, nil
}

// cleanLine strips the comment and all whitespace from one line of level text.
func cleanLine(line string) []rune {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	out := make([]rune, 0, len(line))
	for _, r := range line {
		if !unicode.IsSpace(r) {
			out = append(out, r)
		}
	}
	return out
}

// Name returns the level display name.
func (l *Layout) Name() string {
	return l.name
}

// Width returns the number of columns.
func (l *Layout) Width() int {
	return l.width
}

// Height returns the number of rows.
func (l *Layout) Height() int {
	return l.height
}

// Component returns the cell kind at (row, col).
// Out-of-range indices fail with a BoundsError naming the offending axis.
func (l *Layout) Component(row, col int) (CellKind, error) {
	if row < 0 || row >= l.height {
		return CellEmpty, BoundsError{Axis: AxisRow, Index: row, Limit: l.height}
	}
	if col < 0 || col >= l.width {
		return CellEmpty, BoundsError{Axis: AxisColumn, Index: col, Limit: l.width}
	}
	return l.cells[row*l.width+col], nil
}

// at returns the cell at an in-bounds position.
func (l *Layout) at(p Position) CellKind {
	return l.cells[p.Row*l.width+p.Col]
}

// InBounds reports whether p lies inside the level.
func (l *Layout) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < l.height && p.Col >= 0 && p.Col < l.width
}

// IsWall reports whether the in-bounds position p is a wall.
func (l *Layout) IsWall(p Position) bool {
	return l.at(p) == CellWall
}

// Wrap returns the neighbor of p one step in direction d. Only the axis of
// motion wraps: leaving column 0 to the left lands on column width-1.
func (l *Layout) Wrap(p Position, d Direction) Position {
	dr, dc := d.Delta()
	return Position{
		Row: (p.Row + dr + l.height) % l.height,
		Col: (p.Col + dc + l.width) % l.width,
	}
}

// ValidDirections returns the directions whose wrapped neighbor of p is not a wall.
func (l *Layout) ValidDirections(p Position) DirectionSet {
	var set DirectionSet
	for _, d := range Directions {
		if !l.IsWall(l.Wrap(p, d)) {
			set = set.Add(d)
		}
	}
	return set
}

// PlayerStart returns the player's spawn tile.
func (l *Layout) PlayerStart() Position {
	return l.player
}

// GhostStarts returns ghost spawn tiles in row-major scan order.
func (l *Layout) GhostStarts() []Position {
	out := make([]Position, len(l.ghosts))
	copy(out, l.ghosts)
	return out
}

// Ghosts returns the number of ghost start tiles.
func (l *Layout) Ghosts() int {
	return len(l.ghosts)
}

// SmallItems returns the number of small item tiles.
func (l *Layout) SmallItems() int {
	return l.small
}

// BigItems returns the number of big item tiles.
func (l *Layout) BigItems() int {
	return l.big
}

// Rows returns the canonical text form of the layout, one string per row.
func (l *Layout) Rows() []string {
	rows := make([]string, l.height)
	buf := make([]rune, l.width)
	for r := 0; r < l.height; r++ {
		for c := 0; c < l.width; c++ {
			buf[c] = l.cells[r*l.width+c].Symbol()
		}
		rows[r] = string(buf)
	}
	return rows
}

// String returns the canonical text form joined by newlines.
func (l *Layout) String() string {
	return strings.Join(l.Rows(), "\n")
}
