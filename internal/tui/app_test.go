package tui

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/theirongolddev/dials/internal/advisor"
	"github.com/theirongolddev/dials/internal/budget"
	"github.com/theirongolddev/dials/internal/model"
	"github.com/theirongolddev/dials/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func newTestApp(t *testing.T) (App, *budget.Store) {
	t.Helper()
	n := 0
	st := budget.NewStore(store.NewMemoryBackend(), store.JSONCodec{}, log.New(io.Discard),
		budget.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}))
	a := NewApp(st, advisor.New(nil, log.New(io.Discard), 0), false)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App), st
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(a App, keys ...string) (App, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var m tea.Model
		m, cmd = a.Update(keyMsg(k))
		a = m.(App)
	}
	return a, cmd
}

// firstDial moves the cursor to the first dial row.
func firstDial(t *testing.T, a App) App {
	t.Helper()
	for i, r := range a.rows {
		if r.isDial() {
			a.cursor = i
			return a
		}
	}
	t.Fatal("no dial rows")
	return a
}

func TestEditIncome(t *testing.T) {
	a, st := newTestApp(t)

	a, _ = press(a, "enter")
	if a.edit.mode != editValue {
		t.Fatalf("edit mode = %v, want editValue", a.edit.mode)
	}
	a.edit.input.SetValue("4m")
	a, _ = press(a, "enter")

	if a.edit.mode != editNone {
		t.Fatal("still editing after enter")
	}
	if got := st.Snapshot().Income; got != 4_000_000 {
		t.Fatalf("Income = %v, want 4000000", got)
	}
	if a.metrics.Totals.Income != 4_000_000 {
		t.Fatal("metrics not recomputed after edit")
	}
}

func TestEditRejectsBadAmount(t *testing.T) {
	a, st := newTestApp(t)

	a, _ = press(a, "down", "enter")
	a.edit.input.SetValue("lots")
	a, _ = press(a, "enter")

	if a.flash == "" {
		t.Fatal("no flash message for invalid amount")
	}
	if st.Snapshot().Fixed.Rent != 0 {
		t.Fatal("rent changed on invalid input")
	}
}

func TestEscCancelsEdit(t *testing.T) {
	a, st := newTestApp(t)
	a, _ = press(a, "enter")
	a.edit.input.SetValue("999")
	a, _ = press(a, "esc")
	if a.edit.mode != editNone || st.Snapshot().Income != 0 {
		t.Fatal("esc did not cancel the edit")
	}
}

func TestStepDial(t *testing.T) {
	a, st := newTestApp(t)
	if err := st.SetIncome(4_000_000); err != nil {
		t.Fatal(err)
	}
	a.load()
	a = firstDial(t, a)
	id := a.rows[a.cursor].dial.ID

	a, _ = press(a, "+", "+")
	d, _ := st.Dial(id)
	if d.Value != 80_000 {
		t.Fatalf("after two steps value = %v, want 80000", d.Value)
	}

	a, _ = press(a, "-", "-", "-")
	d, _ = st.Dial(id)
	if d.Value != 0 {
		t.Fatalf("value = %v, want clamped at 0", d.Value)
	}
	_ = a
}

func TestStepDialStopsAtMax(t *testing.T) {
	if got := stepValue(95, 1, 100, 1); got != 96 {
		t.Fatalf("stepValue up = %v, want 96", got)
	}
	if got := stepValue(99.5, 1, 100, 1); got != 100 {
		t.Fatalf("stepValue near max = %v, want 100", got)
	}
	if got := stepValue(250, 1, 100, 1); got != 250 {
		t.Fatalf("stepValue past max = %v, want unchanged 250", got)
	}
	if got := stepValue(0.5, 1, 100, -1); got != 0 {
		t.Fatalf("stepValue down = %v, want 0", got)
	}
}

func TestStepIgnoresNonDialRows(t *testing.T) {
	a, st := newTestApp(t)
	before := st.Snapshot()
	a, _ = press(a, "+")
	if a.rev != 0 || st.Snapshot().Income != before.Income {
		t.Fatal("+ on income row mutated the budget")
	}
}

func TestAddRenameDeleteDial(t *testing.T) {
	a, st := newTestApp(t)

	a, _ = press(a, "n")
	r := a.rows[a.cursor]
	if !r.isDial() || r.dial.ID != "id-1" || r.label != model.NewDialName {
		t.Fatalf("cursor row after add = %+v", r)
	}

	a, _ = press(a, "e")
	a.edit.input.SetValue("Books")
	a, _ = press(a, "enter")
	if d, _ := st.Dial("id-1"); d.Name != "Books" {
		t.Fatalf("name = %q, want Books", d.Name)
	}

	a, _ = press(a, "D")
	a.edit.input.SetValue("fiction only")
	a, _ = press(a, "enter")
	if d, _ := st.Dial("id-1"); d.Description != "fiction only" {
		t.Fatalf("description = %q", d.Description)
	}

	a, _ = press(a, "d")
	if _, ok := st.Dial("id-1"); ok {
		t.Fatal("dial still present after d")
	}
	if len(st.Snapshot().Dials) != 3 {
		t.Fatalf("dials = %d, want 3", len(st.Snapshot().Dials))
	}
	if a.cursor >= len(a.rows) {
		t.Fatal("cursor out of range after delete")
	}
}

func TestRenameOnlyOnDials(t *testing.T) {
	a, _ := newTestApp(t)
	a, _ = press(a, "e")
	if a.edit.mode != editNone {
		t.Fatal("rename started on income row")
	}
}

func TestAdviceOneInFlight(t *testing.T) {
	a, _ := newTestApp(t)

	a, cmd := press(a, "a")
	if !a.adviceLoading || cmd == nil {
		t.Fatal("advice request not started")
	}
	a, cmd = press(a, "a")
	if cmd != nil {
		t.Fatal("second request started while one is in flight")
	}

	m, _ := a.Update(AdviceMsg{Advice: model.FallbackAdvice(), Rev: a.rev})
	a = m.(App)
	if a.adviceLoading || a.advice == nil || a.adviceStale {
		t.Fatalf("loading=%v advice=%v stale=%v", a.adviceLoading, a.advice, a.adviceStale)
	}
}

func TestAdviceStaleAfterEdit(t *testing.T) {
	a, _ := newTestApp(t)

	a, _ = press(a, "a")
	rev := a.rev
	a, _ = press(a, "n") // budget changes while the request is out

	m, _ := a.Update(AdviceMsg{Advice: model.FallbackAdvice(), Rev: rev})
	a = m.(App)
	if !a.adviceStale {
		t.Fatal("advice built from an older budget not marked stale")
	}

	a, _ = press(a, "d")
	if !a.adviceStale {
		t.Fatal("shown advice not marked stale after another edit")
	}
}

func TestAdviceCmdFallsBack(t *testing.T) {
	adv := advisor.New(nil, log.New(io.Discard), 0)
	msg := adviceCmd(adv, advisor.BuildSummary(model.DefaultBudget()), 7)()
	am, ok := msg.(AdviceMsg)
	if !ok {
		t.Fatalf("msg = %T, want AdviceMsg", msg)
	}
	if am.Rev != 7 || am.Advice.Tone != model.ToneNeutral || len(am.Advice.Tips) != 3 {
		t.Fatalf("AdviceMsg = %+v", am)
	}
}

func TestWindowLines(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	got := windowLines(lines, 9, 4)
	if strings.Join(got, "") != "6789" {
		t.Fatalf("window at end = %v", got)
	}
	got = windowLines(lines, 0, 4)
	if strings.Join(got, "") != "0123" {
		t.Fatalf("window at start = %v", got)
	}
	got = windowLines(lines, 5, 4)
	if strings.Join(got, "") != "3456" {
		t.Fatalf("window in middle = %v", got)
	}
	if len(windowLines(lines[:3], 1, 4)) != 3 {
		t.Fatal("short list should be returned whole")
	}
}

func TestViewRenders(t *testing.T) {
	a, st := newTestApp(t)
	_ = st.SetIncome(1000)
	_ = st.SetFixed(model.FixedRent, 1200)
	a.load()

	tests := []struct {
		width int
		want  []string
	}{
		{80, []string{"Money Dials", "Budget", "Monthly income"}},
		{140, []string{"Money Dials", "Benchmarks", "over budget", "Advice"}},
	}
	for _, tt := range tests {
		m, _ := a.Update(tea.WindowSizeMsg{Width: tt.width, Height: 40})
		out := m.(App).View()
		for _, want := range tt.want {
			if !strings.Contains(out, want) {
				t.Fatalf("width %d: view missing %q", tt.width, want)
			}
		}
	}

	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if !strings.Contains(m.(App).View(), "too narrow") {
		t.Fatal("narrow terminal message missing")
	}
}

func TestHelpToggle(t *testing.T) {
	a, _ := newTestApp(t)
	a, _ = press(a, "?")
	if !a.showHelp || !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Fatal("help not shown")
	}
	a, _ = press(a, "j")
	if a.showHelp || a.cursor != 0 {
		t.Fatal("any key should only close help")
	}
}
