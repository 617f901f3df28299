package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ballpop/internal/core"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// ansiColors maps core.Color to ANSI 256-color codes.
var ansiColors = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// Painter turns Screen buffers into styled strings for one output. SSH
// sessions each get their own so colors follow the client's terminal.
type Painter struct {
	styles map[core.Color]lipgloss.Style
}

// NewPainter builds a painter for the given renderer.
// A nil renderer uses the process's stdout.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := make(map[core.Color]lipgloss.Style, len(ansiColors)+1)
	styles[core.ColorDefault] = r.NewStyle()
	for c, code := range ansiColors {
		styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return &Painter{styles: styles}
}

// Render converts a Screen buffer to a styled string.
// Adjacent cells with the same color share one escape sequence.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p.styles[color]
			if !ok {
				style = p.styles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

var defaultPainter = NewPainter(nil)

// RenderScreen renders with the default stdout painter.
func RenderScreen(s *core.Screen) string {
	return defaultPainter.Render(s)
}
