package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/dials/internal/config"
	"github.com/theirongolddev/dials/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive budget editor",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// The alt screen owns stderr, so logs go to a file while the TUI runs.
	if err := os.MkdirAll(appCfg.DataDir(), 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	//nolint:gosec // log path is under the user's data dir
	logf, err := os.OpenFile(tuiLogPath(), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logf.Close() }()
	logger.SetOutput(logf)
	defer logger.SetOutput(os.Stderr)

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	// Force TrueColor so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(st, newAdvisor(), !config.Exists())
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
