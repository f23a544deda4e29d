package tui

import (
	"strings"

	"github.com/theirongolddev/dials/internal/config"
	"github.com/theirongolddev/dials/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues collects the answers of the first-run form.
type SetupValues struct {
	AdviceKey string
	Theme     string
	Locale    string
	Backend   string
}

var localeOptions = []huh.Option[string]{
	huh.NewOption("Colombia ($4.000.000)", "es-CO"),
	huh.NewOption("United States ($4,000,000)", "en-US"),
	huh.NewOption("Germany (4.000.000)", "de-DE"),
	huh.NewOption("India (40,00,000)", "en-IN"),
}

// NewSetupForm builds the huh form used by the TUI and by `dials setup`.
// vals is pre-filled from cfg and receives the answers.
func NewSetupForm(cfg config.Config, vals *SetupValues) *huh.Form {
	vals.Theme = cfg.Appearance.Theme
	vals.Locale = cfg.Appearance.Locale
	vals.Backend = cfg.General.Backend

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to dials").
				Description("Set your money dials: fixed costs, your future self, and the things you love.\nA few questions and you're in."),
			huh.NewInput().
				Title("Gemini API key").
				Description("Used for spending advice. Leave blank to use the built-in tips.").
				Placeholder("AIza...").
				EchoMode(huh.EchoModePassword).
				Value(&vals.AdviceKey),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Money format").
				Options(localeOptions...).
				Value(&vals.Locale),
			huh.NewSelect[string]().
				Title("Storage").
				Options(
					huh.NewOption("JSON file", "file"),
					huh.NewOption("SQLite database", "sqlite"),
				).
				Value(&vals.Backend),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithShowHelp(true)
}

// ApplySetup copies the form answers into cfg. A blank key keeps the
// existing one.
func ApplySetup(cfg *config.Config, vals SetupValues) {
	if key := strings.TrimSpace(vals.AdviceKey); key != "" {
		cfg.Advice.APIKey = key
	}
	if vals.Theme != "" {
		cfg.Appearance.Theme = vals.Theme
	}
	if vals.Locale != "" {
		cfg.Appearance.Locale = vals.Locale
	}
	if vals.Backend != "" {
		cfg.General.Backend = vals.Backend
	}
}

func (a *App) saveSetupConfig() error {
	cfg := loadConfigOrDefault()
	ApplySetup(&cfg, a.setupVals)
	theme.SetActive(cfg.Appearance.Theme)
	return config.Save(cfg)
}

// loadConfigOrDefault loads config, returning defaults on error so the TUI
// can always start.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}
