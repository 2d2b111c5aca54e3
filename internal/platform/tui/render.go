package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gravity-maze/internal/core"
)

// colorStyles maps core.Color to lipgloss styles. Colors follow the
// window frontend: green walls, orange-red goal, blue player.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorWall:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorGoal:       lipgloss.NewStyle().Foreground(lipgloss.Color("202")),
	core.ColorPlayer:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	core.ColorButtonPlay: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorButtonMenu: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorTitle:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorTrophy:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	core.ColorMuted:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
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

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
