// Package theme defines color themes for the dials TUI.
package theme

import (
	"github.com/theirongolddev/dials/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	SurfaceHover lipgloss.Color // Selected row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // Focused card
	TextDim      lipgloss.Color // Hints, disabled
	TextMuted    lipgloss.Color // Labels
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Green        lipgloss.Color
	Orange       lipgloss.Color
	Red          lipgloss.Color
	Blue         lipgloss.Color
	Yellow       lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Green:        lipgloss.Color("#879A39"),
	Orange:       lipgloss.Color("#DA702C"),
	Red:          lipgloss.Color("#D14D41"),
	Blue:         lipgloss.Color("#4385BE"),
	Yellow:       lipgloss.Color("#D0A215"),
}

// Slate follows the web app's dark slate palette with teal and amber accents.
var Slate = Theme{
	Name:         "slate",
	Background:   lipgloss.Color("#020617"),
	Surface:      lipgloss.Color("#0F172A"),
	SurfaceHover: lipgloss.Color("#1E293B"),
	Border:       lipgloss.Color("#334155"),
	BorderAccent: lipgloss.Color("#2DD4BF"),
	TextDim:      lipgloss.Color("#475569"),
	TextMuted:    lipgloss.Color("#94A3B8"),
	TextPrimary:  lipgloss.Color("#F1F5F9"),
	Accent:       lipgloss.Color("#2DD4BF"),
	AccentBright: lipgloss.Color("#5EEAD4"),
	Green:        lipgloss.Color("#34D399"),
	Orange:       lipgloss.Color("#FB923C"),
	Red:          lipgloss.Color("#F43F5E"),
	Blue:         lipgloss.Color("#60A5FA"),
	Yellow:       lipgloss.Color("#FBBF24"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Green:        lipgloss.Color("2"),
	Orange:       lipgloss.Color("3"),
	Red:          lipgloss.Color("1"),
	Blue:         lipgloss.Color("4"),
	Yellow:       lipgloss.Color("3"),
}

// All available themes.
var All = []Theme{FlexokiDark, Slate, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// StatusColor maps a benchmark rating to a theme color.
func (t Theme) StatusColor(s model.Status) lipgloss.Color {
	switch s {
	case model.StatusGood:
		return t.Green
	case model.StatusWarning:
		return t.Yellow
	case model.StatusBad:
		return t.Red
	default:
		return t.TextMuted
	}
}

// ToneColor maps an advice tone to a theme color.
func (t Theme) ToneColor(tone model.Tone) lipgloss.Color {
	switch tone {
	case model.TonePositive:
		return t.Green
	case model.ToneWarning:
		return t.Orange
	default:
		return t.Blue
	}
}
