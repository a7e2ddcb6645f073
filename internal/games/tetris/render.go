package tetris

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

const (
	blockRune = '█'
	ghostRune = '░'
	emptyRune = '·'
)

// Render draws the well, both side panels and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.eng == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	rows := g.eng.Rows()
	boardW := engine.Columns*cellW + 2
	x0 := (g.screenW - g.minWidth()) / 2
	boardX := x0 + panelW
	boardY := titleRows

	dst.DrawTextCentered(0, strings.ToUpper(g.Title()), core.ColorBrightWhite)
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, rows+2), core.ColorGray)
	g.renderWell(dst, boardX+1, boardY+1)
	g.renderHold(dst, x0, boardY)
	g.renderStats(dst, x0, boardY+6)
	g.renderQueue(dst, boardX+boardW+1, boardY)
	g.renderOverlay(dst, boardX, boardY, boardW, rows+2)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorBrightRed)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.minWidth(), g.cfg.Board.MinRows+titleRows+2), core.ColorGray)
}

func (g *Game) setBlock(dst *core.Screen, x, y int, r rune, c core.Color) {
	for i := 0; i < cellW; i++ {
		dst.SetColored(x+i, y, r, c)
	}
}

func (g *Game) renderWell(dst *core.Screen, x, y int) {
	board := g.eng.Board()
	for row := 0; row < board.Rows(); row++ {
		for col := 0; col < engine.Columns; col++ {
			sx, sy := x+col*cellW, y+row
			if k, ok := board.At(col, row).Kind(); ok {
				g.setBlock(dst, sx, sy, blockRune, k.Color())
				continue
			}
			dst.SetColored(sx+1, sy, emptyRune, core.ColorDarkGray)
		}
	}

	p, ok := g.eng.Active()
	if !ok {
		return
	}
	if g.cfg.Display.Ghost {
		for _, c := range g.eng.Ghost() {
			g.setBlock(dst, x+c.X*cellW, y+c.Y, ghostRune, core.ColorDarkGray)
		}
	}
	for _, c := range p.Cells() {
		g.setBlock(dst, x+c.X*cellW, y+c.Y, blockRune, p.Kind.Color())
	}
}

// drawMini draws a kind in its spawn rotation, top-aligned at (x, y).
func (g *Game) drawMini(dst *core.Screen, x, y int, k engine.Kind, c core.Color) {
	offsets := engine.Offsets(k, 0)
	top := offsets[0].Y
	for _, o := range offsets[1:] {
		top = min(top, o.Y)
	}
	for _, o := range offsets {
		g.setBlock(dst, x+o.X*cellW, y+o.Y-top, blockRune, c)
	}
}

func (g *Game) renderHold(dst *core.Screen, x, y int) {
	dst.DrawTextColored(x, y, "HOLD", core.ColorGray)
	k, ok := g.eng.Held()
	if !ok {
		return
	}
	c := k.Color()
	if !g.eng.CanHold() {
		c = core.ColorDarkGray
	}
	g.drawMini(dst, x, y+2, k, c)
}

func (g *Game) renderStats(dst *core.Screen, x, y int) {
	lines := []struct {
		label string
		value string
	}{
		{"SCORE", fmt.Sprint(g.eng.Score())},
		{"LINES", g.linesText()},
		{"LEVEL", fmt.Sprint(g.eng.Level())},
		{"TIME", FormatClock(g.elapsed)},
	}
	for i, l := range lines {
		dst.DrawTextColored(x, y+i*2, l.label, core.ColorGray)
		dst.DrawTextColored(x, y+i*2+1, l.value, core.ColorBrightWhite)
	}

	y += len(lines) * 2
	if combo := g.eng.Combo(); combo > 0 {
		dst.DrawTextColored(x, y, fmt.Sprintf("COMBO %d", combo), core.ColorBrightGreen)
		y++
	}
	if g.eng.BackToBack() {
		dst.DrawTextColored(x, y, "B2B", core.ColorBrightMagenta)
	}
}

func (g *Game) linesText() string {
	if g.mode == ModeSprint {
		return fmt.Sprintf("%d/%d", g.eng.Lines(), g.goal)
	}
	return fmt.Sprint(g.eng.Lines())
}

func (g *Game) renderQueue(dst *core.Screen, x, y int) {
	dst.DrawTextColored(x, y, "NEXT", core.ColorGray)
	// each preview takes three rows; stop at the bottom of the well
	limit := (g.eng.Rows() + 1) / 3
	for i, k := range g.eng.Queue() {
		if i >= limit {
			break
		}
		g.drawMini(dst, x, y+2+i*3, k, k.Color())
	}
}

func (g *Game) renderOverlay(dst *core.Screen, x, y, w, h int) {
	mid := y + h/2
	center := func(row int, text string, c core.Color) {
		dst.DrawTextColored(x+(w-len([]rune(text)))/2, row, text, c)
	}

	switch {
	case g.finished:
		center(mid-1, "SPRINT CLEAR", core.ColorBrightGreen)
		center(mid, FormatClock(g.elapsed), core.ColorBrightWhite)
		center(mid+1, "R: restart", core.ColorGray)
	case g.eng.GameOver():
		center(mid-1, "GAME OVER", core.ColorBrightRed)
		center(mid, fmt.Sprintf("Score %d", g.eng.Score()), core.ColorBrightWhite)
		center(mid+1, "R: restart", core.ColorGray)
	case g.eng.Paused():
		center(mid, "PAUSED", core.ColorBrightYellow)
	case g.bannerTicks > 0 && g.banner != "":
		center(y+h/3, g.banner, g.bannerColor)
	}
}

// FormatClock renders d as m:ss.cc, the way sprint times are shown.
func FormatClock(d time.Duration) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("%d:%02d.%02d", ms/60000, ms/1000%60, ms%1000/10)
}
