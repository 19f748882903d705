package pacman

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/core"
)

const (
	hudHeight    = 2 // status line and separator
	footerHeight = 1 // controls hint
)

// ghostColors cycles through the classic ghost palette in spawn order.
var ghostColors = []platformcore.Color{
	platformcore.ColorBlinky,
	platformcore.ColorPinky,
	platformcore.ColorInky,
	platformcore.ColorClyde,
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.engine == nil {
		msg := "No level loaded"
		if g.err != nil {
			msg = g.err.Error()
		}
		renderOverlay(dst, platformcore.ColorError, "Cannot start level", msg)
		return
	}

	g.renderHUD(dst)

	layout, cellW, ok := g.cellWidth(dst)
	if !ok {
		renderOverlay(dst, platformcore.ColorWarning, "Window too small", "Resize to continue")
		return
	}

	offX := (dst.Width() - layout.Width()*cellW) / 2
	offY := hudHeight + (dst.Height()-hudHeight-footerHeight-layout.Height())/2

	g.renderMaze(dst, layout, offX, offY, cellW)
	g.renderGhosts(dst, offX, offY, cellW)
	g.renderPlayer(dst, offX, offY, cellW)
	g.renderFooter(dst)

	switch {
	case g.err != nil:
		renderOverlay(dst, platformcore.ColorError, "Engine error", g.err.Error())
	case g.engine.Victorious():
		renderOverlay(dst, platformcore.ColorVictory, "LEVEL CLEARED!", fmt.Sprintf("Score %d  -  R to replay", g.engine.Score()))
	case g.engine.GameOver():
		renderOverlay(dst, platformcore.ColorDefeat, "GAME OVER", fmt.Sprintf("Score %d  -  R to retry", g.engine.Score()))
	case g.paused:
		renderOverlay(dst, platformcore.ColorWarning, "Paused", "Press P to continue")
	}
}

// cellWidth picks two columns per tile when the maze fits, one otherwise.
// It also returns the layout it measured.
func (g *Game) cellWidth(dst *platformcore.Screen) (*core.Layout, int, bool) {
	layout, err := g.engine.Layout()
	if err != nil {
		return nil, 0, false
	}
	if dst.Height() < layout.Height()+hudHeight+footerHeight {
		return nil, 0, false
	}
	switch {
	case layout.Width()*2 <= dst.Width():
		return layout, 2, true
	case layout.Width() <= dst.Width():
		return layout, 1, true
	default:
		return nil, 0, false
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := fmt.Sprintf(" PAC-MAN | %s | Score: %d | Dots: %d | Power pellets: %d",
		g.level.Name, g.engine.Score(), g.engine.SmallItemsLeft(), g.engine.BigItemsLeft())
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorHUD)

	x := len([]rune(hud)) + 1
	if player, err := g.engine.Player(); err == nil {
		if left, err := player.PowerRemaining(); err == nil {
			power := fmt.Sprintf("| POWER %.1fs", left.Seconds())
			dst.DrawTextWithColor(x, 0, power, platformcore.ColorFrightened)
			x += len(power) + 1
		}
	}
	if g.messageTTL > 0 && g.message != "" {
		dst.DrawTextWithColor(x, 0, "| "+g.message, platformcore.ColorNotice)
	}

	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 1, '─', platformcore.ColorDim)
	}
}

// renderFooter draws the controls hint on the last line.
func (g *Game) renderFooter(dst *platformcore.Screen) {
	dst.DrawTextWithColor(0, dst.Height()-1,
		" Arrows/WASD: Move | P: Pause | R: Restart | Esc: Menu | Q: Quit", platformcore.ColorDim)
}

// renderMaze draws walls and the items still on the board.
func (g *Game) renderMaze(dst *platformcore.Screen, layout *core.Layout, offX, offY, cellW int) {
	for row := 0; row < layout.Height(); row++ {
		for col := 0; col < layout.Width(); col++ {
			kind, err := g.engine.Cell(row, col)
			if err != nil {
				continue
			}
			x := offX + col*cellW
			y := offY + row
			switch kind {
			case core.CellWall:
				for i := 0; i < cellW; i++ {
					dst.SetWithColor(x+i, y, '█', platformcore.ColorWall)
				}
			case core.CellSmallItem:
				dst.SetWithColor(x, y, '·', platformcore.ColorDot)
			case core.CellBigItem:
				dst.SetWithColor(x, y, '●', platformcore.ColorPowerPellet)
			}
		}
	}
}

// renderGhosts draws ghosts. Vulnerable ghosts turn blue; dead ones show as
// eyes at their spawn and blink shortly before reviving.
func (g *Game) renderGhosts(dst *platformcore.Screen, offX, offY, cellW int) {
	ghosts, err := g.engine.Ghosts()
	if err != nil {
		return
	}
	player, err := g.engine.Player()
	if err != nil {
		return
	}
	powered := player.Powered()
	blinkOn := g.engine.Tick()%2 == 0

	for i := range ghosts {
		gh := &ghosts[i]
		x := offX + gh.Col()*cellW
		y := offY + gh.Row()

		if gh.Dead() {
			if left, err := gh.DeadRemaining(); err == nil && left <= g.cfg.BlinkWindow() && !blinkOn {
				continue
			}
			dst.SetWithColor(x, y, '"', platformcore.ColorEyes)
			continue
		}

		color := ghostColors[i%len(ghostColors)]
		if powered {
			color = platformcore.ColorFrightened
		}
		dst.SetWithColor(x, y, 'M', color)
	}
}

// renderPlayer draws the player with its mouth open toward its facing.
func (g *Game) renderPlayer(dst *platformcore.Screen, offX, offY, cellW int) {
	player, err := g.engine.Player()
	if err != nil {
		return
	}
	dst.SetWithColor(offX+player.Col()*cellW, offY+player.Row(), playerGlyph(player.Direction()), platformcore.ColorPlayer)
}

func playerGlyph(d core.Direction) rune {
	switch d {
	case core.DirUp:
		return 'V'
	case core.DirDown:
		return '^'
	case core.DirLeft:
		return '>'
	case core.DirRight:
		return '<'
	default:
		return 'O'
	}
}

// renderOverlay draws a centered boxed message.
func renderOverlay(dst *platformcore.Screen, color platformcore.Color, line1, line2 string) {
	width := platformcore.Max(len([]rune(line1)), len([]rune(line2))) + 4
	width = platformcore.Min(width, dst.Width())
	box := platformcore.CenteredRect(dst.Width(), dst.Height(), width, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)
	dst.DrawTextCenteredWithColor(box.Y+1, line1, color)
	dst.DrawTextCenteredWithColor(box.Y+3, line2, platformcore.ColorText)
}
