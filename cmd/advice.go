package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/dials/internal/advisor"
	"github.com/theirongolddev/dials/internal/cli"
	"github.com/theirongolddev/dials/internal/model"

	"github.com/spf13/cobra"
)

var adviceCmd = &cobra.Command{
	Use:   "advice",
	Short: "Ask for spending advice on the current budget",
	Args:  cobra.NoArgs,
	RunE:  runAdvice,
}

func init() {
	rootCmd.AddCommand(adviceCmd)
}

func runAdvice(cmd *cobra.Command, _ []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	adv := newAdvisor()
	if !adv.Enabled() && !flagQuiet {
		fmt.Fprintln(os.Stderr, "  No advice key configured (DIALS_ADVICE_KEY, GEMINI_API_KEY or `dials setup`); showing the basics.")
	} else if !flagQuiet {
		fmt.Fprintln(os.Stderr, "  Asking the advisor...")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Print(renderAdvice(adv.Advise(ctx, advisor.BuildSummary(st.Snapshot()))))
	return nil
}

func renderAdvice(a model.Advice) string {
	var status model.Status
	switch a.Tone {
	case model.TonePositive:
		status = model.StatusGood
	case model.ToneWarning:
		status = model.StatusWarning
	default:
		status = model.StatusNeutral
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(cli.RenderTitle("ADVICE"))
	b.WriteString("\n\n  ")
	b.WriteString(cli.RenderStatus(status))
	b.WriteString("  ")
	b.WriteString(a.Summary)
	b.WriteString("\n\n")
	for i, tip := range a.Tips {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, tip)
	}
	b.WriteString("\n")
	return b.String()
}
