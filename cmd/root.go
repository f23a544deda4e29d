package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/dials/internal/advisor"
	"github.com/theirongolddev/dials/internal/budget"
	"github.com/theirongolddev/dials/internal/cli"
	"github.com/theirongolddev/dials/internal/config"
	"github.com/theirongolddev/dials/internal/store"
	"github.com/theirongolddev/dials/internal/tui/theme"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagBackend string
	flagFormat  string
	flagQuiet   bool
	flagVerbose bool
)

// appCfg is the effective configuration: the config file with flag
// overrides applied.
var appCfg = config.DefaultConfig()

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "dials",
	ReportTimestamp: true,
})

var rootCmd = &cobra.Command{
	Use:   "dials",
	Short: "Money Dials budgeting calculator",
	Long: "Split your income into fixed costs, your future self, and the discretionary\n" +
		"\"money dials\" you care about. Spend extravagantly on what you love, cut\n" +
		"ruthlessly on what you don't.",
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Budget data directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend: file, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "Blob format: json or cbor")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// loadRuntime reads .env and the config file, then applies flag overrides.
func loadRuntime(_ *cobra.Command, _ []string) error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("config unreadable, using defaults", "path", config.Path(), "err", err)
		cfg = config.DefaultConfig()
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if flagBackend != "" {
		cfg.General.Backend = flagBackend
	}
	if flagFormat != "" {
		cfg.General.Format = flagFormat
	}
	appCfg = cfg

	switch {
	case flagVerbose:
		logger.SetLevel(log.DebugLevel)
	case flagQuiet:
		logger.SetLevel(log.ErrorLevel)
	}

	cli.SetMoneyLocale(cfg.Appearance.Locale, cfg.Appearance.CurrencySymbol)
	theme.SetActive(cfg.Appearance.Theme)
	return nil
}

// openStore opens the configured backend and loads the saved budget.
// The returned func releases the backend.
func openStore() (*budget.Store, func(), error) {
	backend, codec, err := store.Open(store.Options{
		Backend: appCfg.General.Backend,
		Format:  appCfg.General.Format,
		Dir:     appCfg.DataDir(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("opening budget store: %w", err)
	}

	st := budget.NewStore(backend, codec, logger)
	if st.Load() {
		logger.Debug("loaded budget", "dir", appCfg.DataDir(), "backend", appCfg.General.Backend)
	}
	return st, func() { _ = backend.Close() }, nil
}

// newAdvisor builds the advisor from config. Without a key every request
// returns the fallback advice.
func newAdvisor() *advisor.Advisor {
	var gen advisor.Generator
	client := advisor.NewClient(config.GetAdviceKey(appCfg),
		advisor.WithBaseURL(appCfg.Advice.BaseURL),
		advisor.WithModel(appCfg.Advice.Model),
	)
	if client != nil {
		gen = client
	}
	return advisor.New(gen, logger.WithPrefix("advice"), appCfg.AdviceTimeout())
}

// tuiLogPath is where logs go while the TUI owns the terminal.
func tuiLogPath() string {
	return filepath.Join(appCfg.DataDir(), "dials.log")
}
