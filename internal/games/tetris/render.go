package tetris

import (
	"fmt"

	platform "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

const (
	cellW     = 2  // screen columns per board column
	panelW    = 16 // side panel width
	panelGap  = 2
	blockRune = '█'
	ghostRune = '░'
	emptyRune = '·'
)

var kindColors = map[core.Kind]platform.Color{
	core.KindO: platform.ColorYellow,
	core.KindI: platform.ColorCyan,
	core.KindS: platform.ColorGreen,
	core.KindZ: platform.ColorRed,
	core.KindT: platform.ColorMagenta,
	core.KindL: platform.ColorOrange,
	core.KindJ: platform.ColorBlue,
}

// layout returns the well's outer rectangle and the panel origin.
func (g *Game) layout(dst *platform.Screen) (well platform.Rect, panelX int, fits bool) {
	wellW := g.board.Width()*cellW + 2
	wellH := g.board.Height() + 2
	total := platform.CenteredIn(platform.NewRect(0, 0, dst.Width(), dst.Height()), wellW+panelGap+panelW, wellH)
	well = platform.NewRect(total.X, total.Y, wellW, wellH)
	fits = total.W <= dst.Width() && total.H <= dst.Height()
	return well, well.Right() + panelGap, fits
}

// Render draws the well, pieces and side panel.
func (g *Game) Render(dst *platform.Screen) {
	dst.Clear()
	well, panelX, fits := g.layout(dst)
	if !fits {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", panelX+panelW, well.H))
		return
	}

	inner := well.Inset(1)
	dst.DrawBox(well, platform.ColorGray)
	for r := 0; r < g.board.Height(); r++ {
		for c := 0; c < g.board.Width(); c++ {
			g.drawCell(dst, inner, r, c, emptyRune, platform.ColorDim)
		}
	}
	for _, cell := range g.board.Settled() {
		g.drawCell(dst, inner, cell.Row, cell.Col, blockRune, kindColors[cell.Kind])
	}

	if p, ok := g.board.Falling(); ok {
		if g.cfg.Gameplay.Ghost {
			if rest, legal := g.board.DropFrom(p); legal {
				for _, blk := range rest.Blocks() {
					g.drawCell(dst, inner, blk.Row, blk.Col, ghostRune, platform.ColorDim)
				}
			}
		}
		for _, blk := range p.Blocks() {
			g.drawCell(dst, inner, blk.Row, blk.Col, blockRune, kindColors[p.Kind])
		}
	}

	g.renderPanel(dst, panelX, well.Y)

	switch {
	case g.gameOver:
		g.renderBanner(dst, inner, "GAME OVER", fmt.Sprintf("Score %d", g.board.Score()), "R restart")
	case g.paused:
		g.renderBanner(dst, inner, "PAUSED", "", "P resume")
	}
}

func (g *Game) drawCell(dst *platform.Screen, inner platform.Rect, row, col int, r rune, c platform.Color) {
	x := inner.X + col*cellW
	y := inner.Y + row
	for i := 0; i < cellW; i++ {
		dst.SetColor(x+i, y, r, c)
	}
}

func (g *Game) renderPanel(dst *platform.Screen, x, y int) {
	dst.DrawTextColor(x, y, g.Title(), platform.ColorBrightWhite)

	dst.DrawText(x, y+2, "NEXT")
	next := g.board.Next()
	if next.Kind.Valid() {
		for _, off := range core.Cells(next.Kind, 0) {
			for i := 0; i < cellW; i++ {
				dst.SetColor(x+off.Col*cellW+i, y+3+off.Row, blockRune, kindColors[next.Kind])
			}
		}
	}

	stats := []struct {
		label string
		value int
	}{
		{"SCORE", g.board.Score()},
		{"LINES", g.board.Lines()},
		{"PIECES", g.board.PiecesPlaced()},
		{"LEVEL", g.Level()},
	}
	for i, s := range stats {
		dst.DrawText(x, y+8+i*2, s.label)
		dst.DrawTextColor(x, y+9+i*2, fmt.Sprintf("%d", s.value), platform.ColorWhite)
	}

	if limit := g.board.PieceLimit(); limit >= 0 {
		dst.DrawText(x, y+16, fmt.Sprintf("LEFT %d", limit))
	}

	if g.mode == ModeBot {
		dst.DrawTextColor(x, y+18, "P pause  Q quit", platform.ColorGray)
		return
	}
	dst.DrawTextColor(x, y+18, "←→ move  ↑ turn", platform.ColorGray)
	dst.DrawTextColor(x, y+19, "↓ soft  ␣ drop", platform.ColorGray)
}

func (g *Game) renderBanner(dst *platform.Screen, inner platform.Rect, lines ...string) {
	top := inner.Y + inner.H/2 - len(lines)/2
	for i, line := range lines {
		if line == "" {
			continue
		}
		x := inner.X + (inner.W-len([]rune(line)))/2
		dst.DrawTextColor(x, top+i, line, platform.ColorBrightWhite)
	}
}
