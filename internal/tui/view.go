package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/dials/internal/cli"
	"github.com/theirongolddev/dials/internal/pipeline"
	"github.com/theirongolddev/dials/internal/tui/components"
	"github.com/theirongolddev/dials/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	twoColumnWidth = 100
	rowLabelWidth  = 16
	benchLabelW    = 13
)

var mainHints = []components.Hint{
	{Key: "↑↓", Label: "move"},
	{Key: "enter", Label: "edit"},
	{Key: "+/-", Label: "dial"},
	{Key: "n", Label: "ew dial"},
	{Key: "a", Label: "dvice"},
	{Key: "?", Label: "help"},
	{Key: "q", Label: "uit"},
}

var editHints = []components.Hint{
	{Key: "enter", Label: "save"},
	{Key: "esc", Label: "cancel"},
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  dials needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"j k ↑ ↓", "Move between rows"},
			{"g G", "First / last row"},
		}},
		{"Editing", []struct{ key, desc string }{
			{"Enter", "Edit the amount"},
			{"+ -", "Turn the selected dial"},
			{"n", "Add a dial"},
			{"d", "Delete the selected dial"},
			{"e", "Rename the selected dial"},
			{"D", "Describe why the dial matters"},
		}},
		{"Other", []struct{ key, desc string }{
			{"a", "Ask for spending advice"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := a.renderHeader(w)
	statusBar := a.renderStatusBar(w)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	top := lipgloss.JoinVertical(lipgloss.Left,
		a.renderMetricCards(cw),
		a.renderAllocation(cw),
	)
	editorRows := contentH - lipgloss.Height(top) - 3 // card border + title

	var body string
	if cw >= twoColumnWidth {
		widths := components.LayoutRow(cw, 2)
		left := a.renderEditor(widths[0], editorRows)
		right := lipgloss.JoinVertical(lipgloss.Left,
			a.renderBenchmarks(widths[1]),
			a.renderAdvice(widths[1]),
		)
		body = components.CardRow([]string{left, right})
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left,
			a.renderEditor(cw, editorRows),
			a.renderBenchmarks(cw),
			a.renderAdvice(cw),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, top, body)
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderHeader(w int) string {
	t := theme.Active
	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true).Render(" ◈ Money Dials")
	tag := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(" · spend extravagantly on what you love ")
	return lipgloss.NewStyle().Background(t.Surface).Width(w).MaxWidth(w).Render(logo + tag)
}

func (a App) renderStatusBar(w int) string {
	hints := mainHints
	if a.edit.mode != editNone {
		hints = editHints
	}
	return components.RenderStatusBar(w, hints, a.flash)
}

func (a App) renderMetricCards(cw int) string {
	t := theme.Active
	tot := a.metrics.Totals
	pct := a.metrics.Percentages

	remaining := components.Metric{
		Label: "Remaining",
		Value: cli.FormatMoney(tot.Remaining),
		Sub:   cli.FormatPercent(pct.Remaining) + " unallocated",
		Color: t.Green,
	}
	if a.metrics.OverBudget() {
		remaining.Color = t.Red
		remaining.Sub = cli.FormatPercent(pipeline.Pct(-tot.Remaining, tot.Income)) + " over budget"
	}

	return components.MetricCardRow([]components.Metric{
		{Label: "Income", Value: cli.FormatMoney(tot.Income)},
		{Label: "Fixed Costs", Value: cli.FormatMoney(tot.Fixed), Sub: cli.FormatPercent(pct.Fixed) + " of income"},
		{Label: "Future You", Value: cli.FormatMoney(tot.Future), Sub: cli.FormatPercent(pct.Future) + " of income"},
		{Label: "Dials", Value: cli.FormatMoney(tot.Dials), Sub: cli.FormatPercent(pct.Dials) + " of income"},
		remaining,
	}, cw)
}

func (a App) renderAllocation(cw int) string {
	inner := components.CardInnerWidth(cw)
	body := components.AllocationBar(a.metrics.Segments, inner)
	if legend := components.Legend(a.metrics.Segments, inner); legend != "" {
		body += "\n" + legend
	}
	return components.ContentCard("Where the money goes", body, cw, false)
}

// renderEditor lists the editable rows. When there are more lines than
// maxLines, a window around the cursor is shown.
func (a App) renderEditor(outerW, maxLines int) string {
	t := theme.Active
	inner := components.CardInnerWidth(outerW)

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Italic(true)

	maxV := pipeline.DialMax(a.budget.Income)

	var (
		lines     []string
		cursorIdx int
		prev      = section(-1)
	)
	for i, r := range a.rows {
		if r.section != prev {
			if prev >= 0 {
				lines = append(lines, "")
			}
			lines = append(lines, sectionStyle.Render(sectionTitles[r.section]))
			prev = r.section
		}

		selected := i == a.cursor
		marker := "  "
		ls, vs := labelStyle, valueStyle
		if selected {
			marker = "▸ "
			ls, vs = selStyle, selStyle
			cursorIdx = len(lines)
		}

		label := fmt.Sprintf("%-*s", rowLabelWidth, truncStr(r.label, rowLabelWidth))
		line := ls.Render(marker+label) + ls.Render(" ")

		switch {
		case selected && a.edit.mode != editNone:
			line += labelStyle.Render(editTitles[a.edit.mode]+": ") + a.edit.input.View()
		case r.isDial():
			amount := fmt.Sprintf("%14s", cli.FormatMoney(r.value))
			barW := inner - lipgloss.Width(line) - 14 - 9
			line += vs.Render(amount)
			if barW >= 6 {
				line += labelStyle.Render(" ") + components.ShareBar(r.value/maxV*100, barW, lipgloss.Color(pipeline.DialColor(a.dialIndex(r))))
			}
			line += labelStyle.Render(fmt.Sprintf(" %7s", cli.FormatPercent(pipeline.Pct(r.value, a.budget.Income))))
		default:
			line += vs.Render(fmt.Sprintf("%14s", cli.FormatMoney(r.value)))
		}
		lines = append(lines, line)

		if selected && r.isDial() && r.dial.Description != "" && a.edit.mode == editNone {
			lines = append(lines, dimStyle.Render("    "+truncStr(r.dial.Description, inner-4)))
		}
	}

	lines = windowLines(lines, cursorIdx, maxLines)
	return components.ContentCard("Budget", strings.Join(lines, "\n"), outerW, true)
}

func (a App) dialIndex(r row) int {
	return a.budget.DialIndex(r.dial.ID)
}

// windowLines returns at most limit lines of lines, keeping focus visible.
func windowLines(lines []string, focus, limit int) []string {
	if limit < 1 {
		limit = 1
	}
	if len(lines) <= limit {
		return lines
	}
	start := focus - limit/2
	if start < 0 {
		start = 0
	}
	if start+limit > len(lines) {
		start = len(lines) - limit
	}
	return lines[start : start+limit]
}

func (a App) renderBenchmarks(outerW int) string {
	inner := components.CardInnerWidth(outerW)
	barW := inner - benchLabelW - 1 - 1 - 6 - 2 - 7
	if barW < 5 {
		barW = 5
	}

	lines := make([]string, 0, len(a.metrics.Benchmarks))
	for _, r := range a.metrics.Benchmarks {
		lines = append(lines, components.BenchmarkBar(r, benchLabelW, barW))
	}
	return components.ContentCard("Benchmarks", strings.Join(lines, "\n"), outerW, false)
}

func (a App) renderAdvice(outerW int) string {
	t := theme.Active
	inner := components.CardInnerWidth(outerW)

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(inner)
	tipStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Width(inner)

	var b strings.Builder
	switch {
	case a.adviceLoading:
		b.WriteString(a.spinner.View())
		b.WriteString(dimStyle.Render(" Asking the advisor..."))
		if a.advice == nil {
			break
		}
		b.WriteString("\n\n")
		fallthrough
	case a.advice != nil:
		adv := *a.advice
		badge := lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.ToneColor(adv.Tone)).
			Bold(true).
			Padding(0, 1).
			Render(strings.ToUpper(string(adv.Tone)))
		b.WriteString(badge)
		if a.adviceStale {
			b.WriteString(dimStyle.Render("  budget changed, press a to refresh"))
		}
		b.WriteString("\n")
		b.WriteString(textStyle.Render(adv.Summary))
		for i, tip := range adv.Tips {
			b.WriteString("\n")
			b.WriteString(tipStyle.Render(fmt.Sprintf("%d. %s", i+1, tip)))
		}
	default:
		b.WriteString(dimStyle.Render("Press [a] for advice on this budget."))
	}

	return components.ContentCard("Advice", b.String(), outerW, false)
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
