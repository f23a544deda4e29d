package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/dials/internal/budget"
	"github.com/theirongolddev/dials/internal/cli"
	"github.com/theirongolddev/dials/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type section int

const (
	sectionIncome section = iota
	sectionFixed
	sectionFuture
	sectionDials
)

var sectionTitles = map[section]string{
	sectionIncome: "Income",
	sectionFixed:  "Fixed Costs",
	sectionFuture: "Future You",
	sectionDials:  "Money Dials",
}

// row is one editable line of the budget editor.
type row struct {
	section section
	fixed   model.FixedField
	future  model.FutureField
	dial    model.Dial
	label   string
	value   float64
}

func (r row) isDial() bool { return r.section == sectionDials }

// buildRows flattens a budget into editor rows, in display order.
func buildRows(b model.Budget) []row {
	rows := []row{{section: sectionIncome, label: "Monthly income", value: b.Income}}

	rows = append(rows,
		row{section: sectionFixed, fixed: model.FixedRent, label: "Rent", value: b.Fixed.Rent},
		row{section: sectionFixed, fixed: model.FixedUtilities, label: "Utilities", value: b.Fixed.Utilities},
		row{section: sectionFixed, fixed: model.FixedOther, label: "Other fixed", value: b.Fixed.Other},
		row{section: sectionFuture, future: model.FutureSavings, label: "Savings", value: b.Future.Savings},
		row{section: sectionFuture, future: model.FutureInvestment, label: "Investment", value: b.Future.Investment},
	)

	for _, d := range b.Dials {
		rows = append(rows, row{section: sectionDials, dial: d, label: d.Name, value: d.Value})
	}
	return rows
}

// applyValue writes v to the field behind r.
func applyValue(st *budget.Store, r row, v float64) error {
	switch r.section {
	case sectionIncome:
		return st.SetIncome(v)
	case sectionFixed:
		return st.SetFixed(r.fixed, v)
	case sectionFuture:
		return st.SetFuture(r.future, v)
	default:
		return st.UpdateDial(r.dial.ID, r.dial.Name, v, nil)
	}
}

// stepValue moves v by one slider step. Stepping up stops at max unless the
// value was typed past it already; stepping down stops at zero.
func stepValue(v, step, maxV float64, dir int) float64 {
	if dir > 0 {
		if v >= maxV {
			return v
		}
		return math.Min(v+step, maxV)
	}
	return math.Max(v-step, 0)
}

type editMode int

const (
	editNone editMode = iota
	editValue
	editName
	editDescription
)

var editTitles = map[editMode]string{
	editValue:       "Amount",
	editName:        "Name",
	editDescription: "Why it matters",
}

// editState holds the inline text input while a row is being edited.
type editState struct {
	mode  editMode
	row   row
	input textinput.Model
}

func (a App) startEdit(mode editMode) (tea.Model, tea.Cmd) {
	if len(a.rows) == 0 {
		return a, nil
	}
	r := a.rows[a.cursor]
	if mode != editValue && !r.isDial() {
		return a, nil
	}

	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 40
	switch mode {
	case editValue:
		ti.Placeholder = "e.g. 1500000, 1.5m or 250k"
		ti.SetValue(strconv.FormatFloat(r.value, 'f', -1, 64))
	case editName:
		ti.Placeholder = model.NewDialName
		ti.SetValue(r.dial.Name)
	case editDescription:
		ti.Placeholder = "What does this dial buy you?"
		ti.CharLimit = 280
		ti.SetValue(r.dial.Description)
	}
	ti.CursorEnd()
	ti.Focus()

	a.edit = editState{mode: mode, row: r, input: ti}
	a.flash = ""
	return a, textinput.Blink
}

func (a App) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.commitEdit()
		a.edit = editState{}
		return a, nil
	case "esc":
		a.edit = editState{}
		return a, nil
	}

	var cmd tea.Cmd
	a.edit.input, cmd = a.edit.input.Update(msg)
	return a, cmd
}

func (a *App) commitEdit() {
	r := a.edit.row
	val := strings.TrimSpace(a.edit.input.Value())

	var err error
	switch a.edit.mode {
	case editValue:
		v, perr := cli.ParseAmount(val)
		if perr != nil {
			a.flash = perr.Error()
			return
		}
		err = applyValue(a.store, r, v)
	case editName:
		if val == "" {
			val = model.NewDialName
		}
		err = a.store.UpdateDial(r.dial.ID, val, r.dial.Value, nil)
	case editDescription:
		err = a.store.UpdateDial(r.dial.ID, r.dial.Name, r.dial.Value, &val)
	}
	if err != nil {
		a.flash = err.Error()
		return
	}
	a.refresh()
}
