package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/board-runner/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// styleCache maps a foreground/background pair to its lipgloss style.
var styleCache = struct {
	sync.Mutex
	styles map[colorPair]lipgloss.Style
}{styles: make(map[colorPair]lipgloss.Style)}

func cellStyle(fg, bg core.Color) lipgloss.Style {
	key := colorPair{fg, bg}

	styleCache.Lock()
	defer styleCache.Unlock()
	if st, ok := styleCache.styles[key]; ok {
		return st
	}

	st := lipgloss.NewStyle()
	if fg != core.ColorDefault {
		st = st.Foreground(lipgloss.Color(fg.Hex()))
	}
	if bg != core.ColorDefault {
		st = st.Background(lipgloss.Color(bg.Hex()))
	}
	styleCache.styles[key] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start.Color || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Color == core.ColorDefault && start.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(cellStyle(start.Color, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
