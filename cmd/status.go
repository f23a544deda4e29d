package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/dials/internal/cli"
	"github.com/theirongolddev/dials/internal/model"
	"github.com/theirongolddev/dials/internal/pipeline"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "One-line budget status (for prompts and scripts)",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	fmt.Println(statusLine(pipeline.Compute(st.Snapshot())))
	return nil
}

// statusLine summarizes the remaining amount and the worst benchmark.
func statusLine(m model.Metrics) string {
	tot := m.Totals
	if tot.Income <= 0 {
		return cli.RenderStatus(model.StatusNeutral) + " no income set (dials set income <amount>)"
	}

	var b strings.Builder
	if m.OverBudget() {
		b.WriteString(cli.RenderStatus(model.StatusBad))
		fmt.Fprintf(&b, " %s over budget (%s)",
			cli.FormatMoney(-tot.Remaining),
			cli.FormatPercent(pipeline.Pct(-tot.Remaining, tot.Income)))
	} else {
		b.WriteString(cli.RenderStatus(model.StatusGood))
		fmt.Fprintf(&b, " %s left of %s (%s)",
			cli.FormatMoney(tot.Remaining),
			cli.FormatMoney(tot.Income),
			cli.FormatPercent(m.Percentages.Remaining))
	}

	var bad, warn int
	for _, r := range m.Benchmarks {
		switch r.Status {
		case model.StatusBad:
			bad++
		case model.StatusWarning:
			warn++
		}
	}
	if bad+warn > 0 {
		fmt.Fprintf(&b, " · %d off target", bad+warn)
	}
	return b.String()
}
