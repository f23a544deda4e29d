package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/dials/internal/cli"
	"github.com/theirongolddev/dials/internal/model"
	"github.com/theirongolddev/dials/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagDialName        string
	flagDialValue       string
	flagDialDescription string
)

var dialCmd = &cobra.Command{
	Use:   "dial",
	Short: "Manage money dials",
}

var dialLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List money dials",
	Args:    cobra.NoArgs,
	RunE:    runDialLs,
}

var dialAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a money dial",
	Args:  cobra.NoArgs,
	RunE:  runDialAdd,
}

var dialUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a dial's name, amount or description",
	Args:  cobra.ExactArgs(1),
	RunE:  runDialUpdate,
}

var dialRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a money dial",
	Args:    cobra.ExactArgs(1),
	RunE:    runDialRm,
}

func init() {
	addDialFlags(dialAddCmd)
	addDialFlags(dialUpdateCmd)

	dialCmd.AddCommand(dialLsCmd, dialAddCmd, dialUpdateCmd, dialRmCmd)
	rootCmd.AddCommand(dialCmd)
}

func runDialLs(_ *cobra.Command, _ []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	b := st.Snapshot()
	if len(b.Dials) == 0 {
		fmt.Println("\n  No money dials yet.")
		return nil
	}

	rows := make([][]string, 0, len(b.Dials))
	for _, d := range b.Dials {
		rows = append(rows, []string{
			d.ID,
			d.Name,
			cli.FormatMoney(d.Value),
			cli.FormatPercent(pipeline.Pct(d.Value, b.Income)),
			cli.Muted(d.Description),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Money Dials",
		Headers: []string{"ID", "Name", "Amount", "% Income", "Why"},
		Rows:    rows,
	}))
	return nil
}

func runDialAdd(cmd *cobra.Command, _ []string) error {
	edits, err := parseDialEdits(cmd)
	if err != nil {
		return err
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	d := edits.apply(model.Dial{Name: model.NewDialName})
	id, err := st.InsertDial(d.Name, d.Value, d.Description)
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Printf("  Added dial %s\n", id)
	}
	return nil
}

func runDialUpdate(cmd *cobra.Command, args []string) error {
	edits, err := parseDialEdits(cmd)
	if err != nil {
		return err
	}
	if edits.empty() {
		return errors.New("nothing to update: pass --name, --value or --description")
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	id := args[0]
	cur, ok := st.Dial(id)
	if !ok {
		return fmt.Errorf("no dial with id %q", id)
	}
	d := edits.apply(cur)
	if err := st.UpdateDial(id, d.Name, d.Value, edits.description); err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Printf("  Updated dial %s\n", id)
	}
	return nil
}

func runDialRm(_ *cobra.Command, args []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	id := args[0]
	if _, ok := st.Dial(id); !ok {
		return fmt.Errorf("no dial with id %q", id)
	}
	st.RemoveDial(id)

	if !flagQuiet {
		fmt.Printf("  Removed dial %s\n", id)
	}
	return nil
}

func addDialFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagDialName, "name", "", "Dial name")
	c.Flags().StringVar(&flagDialValue, "value", "", "Monthly amount")
	c.Flags().StringVar(&flagDialDescription, "description", "", "Why this dial matters")
}

// dialEdits holds the dial flags that were set on the command line.
type dialEdits struct {
	name        *string
	value       *float64
	description *string
}

// parseDialEdits reads and validates the changed dial flags before any
// store is touched.
func parseDialEdits(cmd *cobra.Command) (dialEdits, error) {
	var e dialEdits
	flags := cmd.Flags()
	if flags.Changed("name") {
		name := flagDialName
		e.name = &name
	}
	if flags.Changed("value") {
		v, err := cli.ParseAmount(flagDialValue)
		if err != nil {
			return dialEdits{}, err
		}
		e.value = &v
	}
	if flags.Changed("description") {
		desc := flagDialDescription
		e.description = &desc
	}
	return e, nil
}

func (e dialEdits) empty() bool {
	return e.name == nil && e.value == nil && e.description == nil
}

// apply returns d with the set fields replaced.
func (e dialEdits) apply(d model.Dial) model.Dial {
	if e.name != nil {
		d.Name = *e.name
	}
	if e.value != nil {
		d.Value = *e.value
	}
	if e.description != nil {
		d.Description = *e.description
	}
	return d
}
