package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/dials/internal/cli"
	"github.com/theirongolddev/dials/internal/model"
	"github.com/theirongolddev/dials/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ShareBar renders a 0-100 percentage as a solid bar of the given color.
func ShareBar(pct float64, width int, color lipgloss.Color) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 1 {
		width = 1
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)
	return bar.ViewAs(pct / 100)
}

// BenchmarkBar renders one benchmark line: label, bar, value and target.
func BenchmarkBar(r model.BenchmarkResult, labelW, barW int) string {
	t := theme.Active
	color := t.StatusColor(r.Status)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	targetStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, r.Label)) +
		spaceStyle.Render(" ") +
		ShareBar(r.Value, barW, color) +
		spaceStyle.Render(" ") +
		valueStyle.Render(fmt.Sprintf("%6s", cli.FormatPercent(r.Value))) +
		spaceStyle.Render("  ") +
		targetStyle.Render(r.Target)
}

// AllocationBar renders the proportional stacked bar of segments.
// Every cell is colored by a segment; rounding leftovers go to the largest.
func AllocationBar(segs []model.Segment, width int) string {
	t := theme.Active
	if width < 1 {
		return ""
	}

	total := 0.0
	largest := -1
	for i, s := range segs {
		total += s.Amount
		if largest < 0 || s.Amount > segs[largest].Amount {
			largest = i
		}
	}
	if total <= 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render(strings.Repeat("░", width))
	}

	cells := make([]int, len(segs))
	used := 0
	for i, s := range segs {
		cells[i] = int(s.Amount / total * float64(width))
		used += cells[i]
	}
	cells[largest] += width - used

	var b strings.Builder
	for i, s := range segs {
		if cells[i] == 0 {
			continue
		}
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(s.Color)).
			Background(t.Surface).
			Render(strings.Repeat("█", cells[i])))
	}
	return b.String()
}

// Legend renders "● label amount" entries, wrapped to width.
func Legend(segs []model.Segment, width int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var (
		lines []string
		line  string
	)
	for _, s := range segs {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Background(t.Surface).Render("●")
		entry := dot + labelStyle.Render(" "+s.Label+" "+cli.FormatMoney(s.Amount))
		if line != "" && lipgloss.Width(line)+2+lipgloss.Width(entry) > width {
			lines = append(lines, line)
			line = ""
		}
		if line != "" {
			line += spaceStyle.Render("  ")
		}
		line += entry
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
