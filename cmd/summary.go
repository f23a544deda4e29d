package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/dials/internal/cli"
	"github.com/theirongolddev/dials/internal/model"
	"github.com/theirongolddev/dials/internal/pipeline"

	"github.com/spf13/cobra"
)

const barWidth = 30

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Budget summary with benchmarks and allocation",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	b := st.Snapshot()
	m := pipeline.Compute(b)
	fmt.Print(renderSummary(b, m))
	return nil
}

func renderSummary(b model.Budget, m model.Metrics) string {
	tot, pct := m.Totals, m.Percentages

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(cli.RenderTitle("MONEY DIALS"))
	out.WriteString("\n\n")

	remaining := cli.FormatMoney(tot.Remaining)
	if m.OverBudget() {
		remaining = cli.RenderStatus(model.StatusBad) + " " + remaining
	}

	out.WriteString(cli.RenderTable(cli.Table{
		Headers: []string{"Group", "Amount", "% Income"},
		Rows: [][]string{
			{"Income", cli.FormatMoney(tot.Income), ""},
			{"---"},
			{"Fixed Costs", cli.FormatMoney(tot.Fixed), cli.FormatPercent(pct.Fixed)},
			{"Future You", cli.FormatMoney(tot.Future), cli.FormatPercent(pct.Future)},
			{"Money Dials", cli.FormatMoney(tot.Dials), cli.FormatPercent(pct.Dials)},
			{"---"},
			{"Expenses", cli.FormatMoney(tot.Expenses), ""},
			{"Remaining", remaining, cli.FormatPercent(pct.Remaining)},
		},
	}))

	if m.OverBudget() {
		deficit := pipeline.Pct(-tot.Remaining, tot.Income)
		out.WriteString("\n")
		out.WriteString(cli.RenderWarning(fmt.Sprintf("Over budget by %s (%s of income)",
			cli.FormatMoney(-tot.Remaining),
			cli.FormatPercent(deficit))))
		out.WriteString("\n  ")
		out.WriteString(cli.RenderBar(deficit, 2*barWidth, pipeline.ColorOverBudget))
		out.WriteString("\n")
	}

	benchRows := make([][]string, 0, len(m.Benchmarks))
	for _, r := range m.Benchmarks {
		benchRows = append(benchRows, []string{r.Label, cli.FormatPercent(r.Value), r.Target, cli.RenderStatus(r.Status)})
	}
	out.WriteString("\n")
	out.WriteString(cli.RenderTable(cli.Table{
		Title:   "Benchmarks",
		Headers: []string{"Check", "Actual", "Target", "Status"},
		Rows:    benchRows,
	}))

	out.WriteString("\n  ")
	out.WriteString(cli.Header("Allocation"))
	out.WriteString("\n  ")
	out.WriteString(cli.RenderStackedBar(m.Segments, 2*barWidth))
	out.WriteString("\n")
	for _, s := range m.Segments {
		fmt.Fprintf(&out, "  %s %-16s %14s  %s %s\n",
			cli.RenderLegendDot(s.Color),
			s.Label,
			cli.FormatMoney(s.Amount),
			cli.RenderBar(pipeline.Pct(s.Amount, tot.Income), barWidth, s.Color),
			cli.Muted(cli.FormatPercent(pipeline.Pct(s.Amount, tot.Income))))
	}

	if len(b.Dials) == 0 {
		out.WriteString("\n  ")
		out.WriteString(cli.Muted("No money dials yet. Add one with `dials dial add --name Food`."))
		out.WriteString("\n")
	}
	out.WriteString("\n")
	return out.String()
}
