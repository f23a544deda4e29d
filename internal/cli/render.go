package cli

import (
	"strings"

	"github.com/theirongolddev/dials/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	goodStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	badStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows. A row holding
// the single cell "---" draws a separator. Cells after the first are
// right-aligned.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}
	widths := t.columnWidths()

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		cells := make([]string, len(widths))
		for i := range widths {
			if i < len(t.Headers) {
				cells[i] = headerStyle.Render(" " + padRight(t.Headers[i], widths[i]) + " ")
			}
		}
		b.WriteString(joinCells(cells))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		cells := make([]string, len(widths))
		for i, w := range widths {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			if i == 0 {
				cells[i] = valueStyle.Render(" " + padRight(cell, w) + " ")
			} else {
				cells[i] = valueStyle.Render(" " + padLeft(cell, w) + " ")
			}
		}
		b.WriteString(joinCells(cells))
	}

	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

// columnWidths returns the explicit widths or the widest visible cell per column.
func (t Table) columnWidths() []int {
	n := len(t.Headers)
	if n == 0 {
		n = len(t.Rows[0])
	}
	widths := make([]int, n)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	grow := func(cells []string) {
		for i, c := range cells {
			if i < n {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}
	grow(t.Headers)
	for _, row := range t.Rows {
		grow(row)
	}
	return widths
}

// rule draws one horizontal border line.
func rule(widths []int, left, mid, right string) string {
	segs := make([]string, len(widths))
	for i, w := range widths {
		segs[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(segs, mid)+right) + "\n"
}

func joinCells(cells []string) string {
	sep := dimStyle.Render("│")
	return sep + strings.Join(cells, sep) + sep + "\n"
}

// padRight and padLeft measure visible width so pre-styled cells line up.
func padRight(s string, w int) string {
	return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
}

func padLeft(s string, w int) string {
	return strings.Repeat(" ", max(w-lipgloss.Width(s), 0)) + s
}

// RenderStatus renders a benchmark status with its color.
func RenderStatus(s model.Status) string {
	label := strings.ToUpper(string(s))
	switch s {
	case model.StatusGood:
		return goodStyle.Render(label)
	case model.StatusBad:
		return badStyle.Render(label)
	case model.StatusWarning:
		return warnStyle.Render(label)
	default:
		return mutedStyle.Render(label)
	}
}

// RenderWarning renders a highlighted warning line.
func RenderWarning(msg string) string {
	return "  " + badStyle.Bold(true).Render("! ") + warnStyle.Render(msg)
}

// RenderBar renders a bar of width cells filled to pct (0-100) in color.
func RenderBar(pct float64, width int, color string) string {
	if width <= 0 {
		return ""
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	return fill.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

// RenderStackedBar renders one bar split proportionally between segments.
// Rounding leftovers go to the largest segment.
func RenderStackedBar(segs []model.Segment, width int) string {
	var total float64
	for _, s := range segs {
		total += s.Amount
	}
	if total <= 0 || width <= 0 {
		return dimStyle.Render(strings.Repeat("░", max(width, 0)))
	}

	cells := make([]int, len(segs))
	used, largest := 0, 0
	for i, s := range segs {
		cells[i] = int(s.Amount / total * float64(width))
		used += cells[i]
		if s.Amount > segs[largest].Amount {
			largest = i
		}
	}
	cells[largest] += width - used

	var b strings.Builder
	for i, s := range segs {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render(strings.Repeat("█", cells[i])))
	}
	return b.String()
}

// RenderLegendDot renders a colored bullet for legends.
func RenderLegendDot(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

// Muted renders s in the secondary text color.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// Header renders s in the section header style.
func Header(s string) string {
	return headerStyle.Render(s)
}
