package tui

import (
	"context"

	"github.com/theirongolddev/dials/internal/advisor"
	"github.com/theirongolddev/dials/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// AdviceMsg is sent when an advice request resolves. Rev is the budget
// revision the request was built from.
type AdviceMsg struct {
	Advice model.Advice
	Rev    int
}

// adviceCmd asks the advisor in the background. The advisor never fails, so
// the message always carries something displayable.
func adviceCmd(adv *advisor.Advisor, s advisor.Summary, rev int) tea.Cmd {
	return func() tea.Msg {
		return AdviceMsg{Advice: adv.Advise(context.Background(), s), Rev: rev}
	}
}

// requestAdvice starts a request unless one is already outstanding.
func (a App) requestAdvice() (tea.Model, tea.Cmd) {
	if a.adviceLoading {
		return a, nil
	}
	a.adviceLoading = true
	return a, tea.Batch(
		a.spinner.Tick,
		adviceCmd(a.advisor, advisor.BuildSummary(a.budget), a.rev),
	)
}

func (a App) handleAdvice(msg AdviceMsg) (tea.Model, tea.Cmd) {
	adv := msg.Advice
	a.advice = &adv
	a.adviceLoading = false
	a.adviceStale = msg.Rev != a.rev
	return a, nil
}
