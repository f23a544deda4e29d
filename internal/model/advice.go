package model

// Tone classifies the overall sentiment of an Advice.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneWarning  Tone = "warning"
	ToneNeutral  Tone = "neutral"
)

// Valid reports whether t is one of the known tones.
func (t Tone) Valid() bool {
	switch t {
	case TonePositive, ToneWarning, ToneNeutral:
		return true
	}
	return false
}

// Advice is the structured commentary returned by the advice generator.
type Advice struct {
	Summary string   `json:"summary"`
	Tips    []string `json:"tips"`
	Tone    Tone     `json:"tone"`

	// Fallback marks advice that was substituted rather than generated.
	Fallback bool `json:"-"`
}

// FallbackAdvice is substituted whenever the generator cannot produce a
// usable answer.
func FallbackAdvice() Advice {
	return Advice{
		Summary: "We couldn't reach the advisor right now, so here are the basics of conscious spending.",
		Tips: []string{
			"Cover your fixed costs first and try to keep them at or under 60% of income.",
			"Pay your future self: aim for at least 5% to savings and 5% to investment.",
			"Spend extravagantly on the dials you love and cut ruthlessly on the ones you don't.",
		},
		Tone:     ToneNeutral,
		Fallback: true,
	}
}
