package advisor

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/theirongolddev/dials/internal/model"
	"github.com/theirongolddev/dials/internal/pipeline"
)

// DialSummary is one dial as sent to the advice generator.
type DialSummary struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Summary is the budget digest the advice generator works from.
type Summary struct {
	Income      float64       `json:"income"`
	FixedTotal  float64       `json:"fixedTotal"`
	FutureTotal float64       `json:"futureTotal"`
	DialsTotal  float64       `json:"dialsTotal"`
	Remaining   float64       `json:"remaining"`
	Dials       []DialSummary `json:"dials"`
}

// BuildSummary digests b.
func BuildSummary(b model.Budget) Summary {
	t := pipeline.ComputeTotals(b)
	dials := make([]DialSummary, 0, len(b.Dials))
	for _, d := range b.Dials {
		dials = append(dials, DialSummary{Name: d.Name, Value: d.Value})
	}
	return Summary{
		Income:      t.Income,
		FixedTotal:  t.Fixed,
		FutureTotal: t.Future,
		DialsTotal:  t.Dials,
		Remaining:   t.Remaining,
		Dials:       dials,
	}
}

var promptTmpl = template.Must(template.New("prompt").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.0f", v) },
	"pct":   func(v, income float64) string { return fmt.Sprintf("%.1f%%", pipeline.Pct(v, income)) },
}).Parse(`Review this monthly budget for a Conscious Spending plan built around "money dials":
spend extravagantly on the things you love and cut costs mercilessly on the things you don't.

- Monthly income: {{money .Income}}
- Fixed costs (rent, utilities, other): {{money .FixedTotal}} ({{pct .FixedTotal .Income}} of income)
- Future (savings and investment): {{money .FutureTotal}} ({{pct .FutureTotal .Income}} of income)
- Money dials (guilt-free spending on what you love): {{money .DialsTotal}} ({{pct .DialsTotal .Income}} of income)
- Remaining balance: {{money .Remaining}}

Current dials: {{.DialList}}.

Reply in JSON with a one-paragraph "summary", exactly 3 short actionable "tips",
and a "tone" of "positive", "warning" or "neutral".
`))

// RenderPrompt turns s into the natural-language request.
func RenderPrompt(s Summary) (string, error) {
	names := make([]string, 0, len(s.Dials))
	for _, d := range s.Dials {
		names = append(names, fmt.Sprintf("%s (%.0f)", d.Name, d.Value))
	}
	list := strings.Join(names, ", ")
	if list == "" {
		list = "none"
	}

	var b strings.Builder
	err := promptTmpl.Execute(&b, struct {
		Summary
		DialList string
	}{s, list})
	if err != nil {
		return "", fmt.Errorf("advisor: rendering prompt: %w", err)
	}
	return b.String(), nil
}
