package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/dials/internal/model"
	"github.com/theirongolddev/dials/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tc := range []struct{ total, n int }{{80, 3}, {100, 7}, {5, 5}, {0, 2}} {
		sum := 0
		for _, w := range LayoutRow(tc.total, tc.n) {
			sum += w
		}
		if sum != tc.total {
			t.Fatalf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow(n=0) should be nil")
	}
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22, false)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22, true)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}

	want := lipgloss.Width(tallCard) + lipgloss.Width(shortCard)
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Fatalf("line %d width = %d, want %d", i, w, want)
		}
		// Padding below the short card must still be styled.
		if i >= shortLines && !strings.Contains(line, "\x1b[") {
			t.Fatalf("line %d has no ANSI codes: %q", i, line)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Income", Value: "$4,000,000"},
		{Label: "Remaining", Value: "-$200", Color: theme.Active.Red, Sub: "5.0% over"},
		{Label: "Future", Value: "$400,000"},
	}, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Fatalf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestAllocationBarWidth(t *testing.T) {
	segs := []model.Segment{
		{Amount: 2_000_000, Color: "#2dd4bf"},
		{Amount: 150_000, Color: "#60a5fa"},
		{Amount: 1, Color: "#818cf8"},
	}
	for _, w := range []int{1, 10, 63} {
		if got := lipgloss.Width(AllocationBar(segs, w)); got != w {
			t.Fatalf("AllocationBar width %d rendered %d", w, got)
		}
	}
	if got := lipgloss.Width(AllocationBar(nil, 12)); got != 12 {
		t.Fatalf("empty AllocationBar width = %d, want 12", got)
	}
}

func TestLegendWraps(t *testing.T) {
	segs := []model.Segment{
		{Label: "Rent", Amount: 1000, Color: "#2dd4bf"},
		{Label: "Utilities", Amount: 200, Color: "#60a5fa"},
		{Label: "Food", Amount: 300, Color: "#a78bfa"},
	}
	out := Legend(segs, 20)
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("Legend did not wrap at width 20:\n%s", out)
	}
	if !strings.Contains(out, "Utilities") {
		t.Fatalf("Legend missing label:\n%s", out)
	}
}

func TestRenderStatusBarWidth(t *testing.T) {
	bar := RenderStatusBar(60, []Hint{{"q", "uit"}, {"?", "help"}}, "saved")
	if w := lipgloss.Width(bar); w != 60 {
		t.Fatalf("status bar width = %d, want 60", w)
	}
}
