package pipeline

import "github.com/theirongolddev/dials/internal/model"

// Chart colors.
const (
	ColorRent       = "#2dd4bf"
	ColorUtilities  = "#60a5fa"
	ColorOther      = "#818cf8"
	ColorSavings    = "#38bdf8"
	ColorInvestment = "#fbbf24"
	ColorRemaining  = "#334155"
	ColorOverBudget = "#f43f5e"
)

// DialPalette is cycled by dial position: dial i gets DialPalette[i%len].
var DialPalette = []string{
	"#f43f5e",
	"#d946ef",
	"#8b5cf6",
	"#06b6d4",
	"#10b981",
	"#f97316",
}

// DialColor returns the palette color for the dial at position i.
func DialColor(i int) string {
	return DialPalette[i%len(DialPalette)]
}

// Segments builds the ordered allocation chart for b. Segments with a
// non-positive amount are omitted, and Remaining only appears when there
// is money left over.
func Segments(b model.Budget, totals model.Totals) []model.Segment {
	candidates := []model.Segment{
		{Key: "rent", Label: "Rent", Amount: b.Fixed.Rent, Color: ColorRent},
		{Key: "utilities", Label: "Utilities", Amount: b.Fixed.Utilities, Color: ColorUtilities},
		{Key: "other", Label: "Other Fixed", Amount: b.Fixed.Other, Color: ColorOther},
		{Key: "savings", Label: "Savings", Amount: b.Future.Savings, Color: ColorSavings},
		{Key: "investment", Label: "Investment", Amount: b.Future.Investment, Color: ColorInvestment},
	}
	for i, d := range b.Dials {
		candidates = append(candidates, model.Segment{
			Key:    "dial:" + d.ID,
			Label:  d.Name,
			Amount: d.Value,
			Color:  DialColor(i),
		})
	}
	if totals.Remaining > 0 {
		candidates = append(candidates, model.Segment{
			Key:    "remaining",
			Label:  "Remaining",
			Amount: totals.Remaining,
			Color:  ColorRemaining,
		})
	}

	out := make([]model.Segment, 0, len(candidates))
	for _, s := range candidates {
		if s.Amount > 0 {
			out = append(out, s)
		}
	}
	return out
}
