package balls

import (
	"fmt"

	"github.com/vovakirdan/ballpop/internal/core"
)

const (
	ballRune     = '●'
	burstRune    = '✶'
	restartLabel = "RESTART"
	comboLabel   = "OMG!"
)

// Render draws the board, HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.session == nil {
		g.renderError(dst)
		return
	}

	g.renderBursts(dst)
	g.renderPieces(dst)
	g.renderCursor(dst)
	g.renderHUD(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorDefault)
}

func (g *Game) renderError(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Could not start game", core.ColorBrightRed)
	if g.err != nil {
		dst.DrawTextCentered(y+1, g.err.Error(), core.ColorGray)
	}
}

func (g *Game) renderPieces(dst *core.Screen) {
	for _, p := range g.session.Pieces().Pieces() {
		c := g.toCell(p.Pos)
		dst.SetColored(c.X, c.Y, ballRune, p.Color.ScreenColor())
	}
}

func (g *Game) renderBursts(dst *core.Screen) {
	for _, b := range g.bursts {
		dst.SetColored(b.pos.X, b.pos.Y, burstRune, b.color)
	}
}

// renderCursor brackets the ball under the cursor.
func (g *Game) renderCursor(dst *core.Screen) {
	l := g.session.Layout()
	if len(l.Columns()) == 0 || len(l.Rows()) == 0 {
		return
	}
	c := g.toCell(g.cursorPoint())
	dst.SetColored(c.X-1, c.Y, '[', core.ColorBrightWhite)
	dst.SetColored(c.X+1, c.Y, ']', core.ColorBrightWhite)
}

// renderHUD draws the best score and the restart button on the bottom row
// with the running score centered above them.
func (g *Game) renderHUD(dst *core.Screen) {
	y := g.screenH - 1
	dst.DrawTextColored(1, y, g.bestLabel, core.ColorBrightYellow)
	dst.DrawTextColored(g.restartBtn.X, g.restartBtn.Y, restartLabel, core.ColorBrightCyan)
	dst.DrawTextCentered(y-1, g.scoreLabel, core.ColorBrightWhite)
}

func (g *Game) renderOverlays(dst *core.Screen) {
	mid := g.screenH / 2

	if g.comboTicks > 0 {
		msg := fmt.Sprintf(" %s  %d in a row ", comboLabel, g.comboSize)
		w := len([]rune(msg)) + 2
		box := core.NewRect((g.screenW-w)/2, mid-1, w, 3)
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, mid, ' ')
		}
		dst.DrawBox(box, core.ColorBrightMagenta)
		dst.DrawTextCentered(mid, msg, core.ColorBrightMagenta)
	}

	if g.paused {
		dst.DrawTextCentered(mid, "PAUSED", core.ColorBrightWhite)
		dst.DrawTextCentered(mid+1, "Press P to continue", core.ColorGray)
		return
	}

	if g.noMoves && g.comboTicks == 0 {
		dst.DrawTextCentered(mid, "No groups left", core.ColorGray)
		dst.DrawTextCentered(mid+1, "Press R to restart", core.ColorGray)
	}
}
