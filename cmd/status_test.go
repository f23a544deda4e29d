package cmd

import (
	"strings"
	"testing"

	"github.com/theirongolddev/dials/internal/model"
	"github.com/theirongolddev/dials/internal/pipeline"
)

func TestStatusLine(t *testing.T) {
	tests := []struct {
		name string
		b    model.Budget
		want string
	}{
		{
			name: "no income",
			b:    model.Budget{},
			want: "no income set",
		},
		{
			name: "under budget",
			b: model.Budget{
				Income: 1000,
				Fixed:  model.FixedCosts{Rent: 500},
			},
			want: "left of",
		},
		{
			name: "over budget",
			b: model.Budget{
				Income: 1000,
				Fixed:  model.FixedCosts{Rent: 1200},
			},
			want: "over budget",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statusLine(pipeline.Compute(tt.b))
			if !strings.Contains(got, tt.want) {
				t.Fatalf("statusLine() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := map[string]string{
		"":                     "****",
		"abcd":                 "****",
		"abcdefgh":             "abcd...",
		"AIzaSyABCDEFGHIJKLMN": "AIzaSy...KLMN",
	}
	for in, want := range tests {
		if got := maskAPIKey(in); got != want {
			t.Fatalf("maskAPIKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderSummaryOverBudget(t *testing.T) {
	b := model.Budget{
		Income: 1000,
		Fixed:  model.FixedCosts{Rent: 1500},
		Dials:  []model.Dial{},
	}
	out := renderSummary(b, pipeline.Compute(b))
	for _, want := range []string{"Over budget by", "50.0%", "No money dials yet"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
