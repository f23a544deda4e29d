package components

import (
	"strings"

	"github.com/theirongolddev/dials/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Hint is one key binding shown in the status bar.
type Hint struct {
	Key   string
	Label string
}

// RenderHints renders hints as "[k]label" pairs.
func RenderHints(hints []Hint) string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	bracketStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			bracketStyle.Render("[")+keyStyle.Render(h.Key)+bracketStyle.Render("]")+labelStyle.Render(h.Label))
	}
	return strings.Join(parts, spaceStyle.Render("  "))
}

// RenderStatusBar renders the bottom bar: hints on the left, right aligned
// status text on the right.
func RenderStatusBar(width int, hints []Hint, right string) string {
	t := theme.Active

	left := " " + RenderHints(hints)
	rightStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if right != "" {
		right = rightStyle.Render(right + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	bar := left + lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", padding)) + right
	return lipgloss.NewStyle().Background(t.Surface).MaxWidth(width).Render(bar)
}
