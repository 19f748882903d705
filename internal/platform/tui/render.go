package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// palette maps core.Color to ANSI color codes.
var palette = map[core.Color]string{
	core.ColorWall:        "4",
	core.ColorDot:         "7",
	core.ColorPowerPellet: "15",
	core.ColorPlayer:      "11",
	core.ColorBlinky:      "1",
	core.ColorPinky:       "13",
	core.ColorInky:        "6",
	core.ColorClyde:       "208",
	core.ColorFrightened:  "12",
	core.ColorEyes:        "245",
	core.ColorHUD:         "11",
	core.ColorNotice:      "14",
	core.ColorDim:         "245",
	core.ColorText:        "7",
	core.ColorVictory:     "10",
	core.ColorDefeat:      "9",
	core.ColorWarning:     "3",
	core.ColorError:       "1",
}

// ScreenRenderer turns Screen buffers into styled strings for one output.
// SSH sessions need their own renderer so color detection follows the client
// terminal rather than the server's.
type ScreenRenderer struct {
	styles map[core.Color]lipgloss.Style
	plain  lipgloss.Style
}

// NewScreenRenderer builds styles for the given lipgloss renderer.
// A nil renderer uses the process default.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	sr := &ScreenRenderer{
		styles: make(map[core.Color]lipgloss.Style, len(palette)),
		plain:  r.NewStyle(),
	}
	for c, code := range palette {
		sr.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return sr
}

// Render converts a Screen buffer to a styled string.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(sr.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

func (sr *ScreenRenderer) style(c core.Color) lipgloss.Style {
	if style, ok := sr.styles[c]; ok {
		return style
	}
	return sr.plain
}
