package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/dials/internal/budget"
	"github.com/theirongolddev/dials/internal/cli"
	"github.com/theirongolddev/dials/internal/model"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <income|rent|utilities|other|savings|investment> <amount>",
	Short: "Set income, a fixed cost or a future allocation",
	Long: "Amounts accept the grouping the summary prints for your locale\n" +
		"(es-CO: 1.500.000), commas (1,500,000) and k/m shorthand.",
	Example: "  dials set income 4m\n" +
		"  dials set rent 1,500,000\n" +
		"  dials set savings 250k",
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(_ *cobra.Command, args []string) error {
	amount, err := cli.ParseAmount(args[1])
	if err != nil {
		return err
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	field := strings.ToLower(args[0])
	if err := setField(st, field, amount); err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Printf("  %s set to %s\n", field, cli.FormatMoney(amount))
	}
	return nil
}

func setField(st *budget.Store, field string, amount float64) error {
	if field == "income" {
		return st.SetIncome(amount)
	}
	if f, ok := model.ParseFixedField(field); ok {
		return st.SetFixed(f, amount)
	}
	if f, ok := model.ParseFutureField(field); ok {
		return st.SetFuture(f, amount)
	}
	return fmt.Errorf("unknown field %q (want income, rent, utilities, other, savings or investment)", field)
}
