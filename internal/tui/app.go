// Package tui provides the interactive Bubble Tea budget editor for dials.
package tui

import (
	"strings"

	"github.com/theirongolddev/dials/internal/advisor"
	"github.com/theirongolddev/dials/internal/budget"
	"github.com/theirongolddev/dials/internal/model"
	"github.com/theirongolddev/dials/internal/pipeline"
	"github.com/theirongolddev/dials/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// App is the root Bubble Tea model.
type App struct {
	store   *budget.Store
	advisor *advisor.Advisor

	// Current snapshot and what is derived from it
	budget  model.Budget
	metrics model.Metrics
	rows    []row
	rev     int // bumped on every mutation

	// UI state
	width    int
	height   int
	cursor   int
	showHelp bool
	edit     editState
	flash    string

	// Advice
	spinner       spinner.Model
	advice        *model.Advice
	adviceLoading bool
	adviceStale   bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// NewApp creates the editor over st. When needSetup is set the first-run
// form is shown before the editor.
func NewApp(st *budget.Store, adv *advisor.Advisor, needSetup bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	if adv == nil {
		adv = advisor.New(nil, nil, 0)
	}

	a := App{
		store:     st,
		advisor:   adv,
		spinner:   sp,
		needSetup: needSetup,
	}
	a.load()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.needSetup {
		return a.setupForm.Init()
	}
	return nil
}

// load reads the store without counting as a mutation.
func (a *App) load() {
	a.budget = a.store.Snapshot()
	a.metrics = pipeline.Compute(a.budget)
	a.rows = buildRows(a.budget)
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.needSetup && a.setupForm == nil {
		cfg := loadConfigOrDefault()
		a.setupForm = NewSetupForm(cfg, &a.setupVals)
	}
}

// refresh re-reads the store after a mutation and marks any shown or
// pending advice as stale.
func (a *App) refresh() {
	a.rev++
	a.load()
	if a.advice != nil {
		a.adviceStale = true
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.edit.mode != editNone {
			return a.updateEdit(msg)
		}
		return a.handleKey(msg)

	case AdviceMsg:
		return a.handleAdvice(msg)

	case spinner.TickMsg:
		if a.adviceLoading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.edit.mode != editNone {
		var cmd tea.Cmd
		a.edit.input, cmd = a.edit.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		a.cursor = len(a.rows) - 1
	case "enter":
		return a.startEdit(editValue)
	case "e":
		return a.startEdit(editName)
	case "D":
		return a.startEdit(editDescription)
	case "+", "=", "l", "right":
		a.stepDial(1)
	case "-", "_", "h", "left":
		a.stepDial(-1)
	case "n":
		id := a.store.AddDial()
		a.refresh()
		a.cursorToDial(id)
	case "d":
		if r := a.rows[a.cursor]; r.isDial() {
			a.store.RemoveDial(r.dial.ID)
			a.refresh()
		}
	case "a":
		return a.requestAdvice()
	}
	return a, nil
}

func (a *App) stepDial(dir int) {
	r := a.rows[a.cursor]
	if !r.isDial() {
		return
	}
	maxV := pipeline.DialMax(a.budget.Income)
	v := stepValue(r.value, pipeline.DialStep(maxV), maxV, dir)
	if v == r.value {
		return
	}
	if err := applyValue(a.store, r, v); err != nil {
		a.flash = err.Error()
		return
	}
	a.refresh()
}

func (a *App) cursorToDial(id string) {
	for i, r := range a.rows {
		if r.isDial() && r.dial.ID == id {
			a.cursor = i
			return
		}
	}
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.saveSetupConfig(); err != nil {
			a.flash = "config not saved: " + err.Error()
		} else {
			a.flash = "config saved"
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with the background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
