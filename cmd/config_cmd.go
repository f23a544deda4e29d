// Package cmd implements the dials CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/dials/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", cfg.DataDir())
	fmt.Printf("    Backend:        %s\n", cfg.General.Backend)
	fmt.Printf("    Format:         %s\n", cfg.General.Format)
	fmt.Println()

	fmt.Println("  [Advice]")
	key := config.GetAdviceKey(cfg)
	switch {
	case key == "":
		fmt.Println("    API key: not configured (fallback tips only)")
	case os.Getenv("DIALS_ADVICE_KEY") != "" || os.Getenv("GEMINI_API_KEY") != "":
		fmt.Printf("    API key: %s (from environment)\n", maskAPIKey(key))
	default:
		fmt.Printf("    API key: %s\n", maskAPIKey(key))
	}
	fmt.Printf("    Model:   %s\n", cfg.Advice.Model)
	fmt.Printf("    Timeout: %s\n", cfg.AdviceTimeout())
	if cfg.Advice.BaseURL != "" {
		fmt.Printf("    Base URL: %s\n", cfg.Advice.BaseURL)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:    %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Locale:   %s\n", cfg.Appearance.Locale)
	fmt.Printf("    Currency: %s\n", cfg.Appearance.CurrencySymbol)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:  %s\n", cfg.Server.Addr)
	fmt.Printf("    Interval: %s\n", cfg.ServerInterval())
	fmt.Println()

	fmt.Println("  Run `dials setup` to reconfigure.")
	return nil
}
