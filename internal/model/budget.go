// Package model defines the budget record and the metrics derived from it.
package model

// NewDialName is the placeholder name given to freshly added dials.
const NewDialName = "New Dial"

// FixedCosts holds the mandatory recurring expenses.
type FixedCosts struct {
	Rent      float64 `json:"rent"`
	Utilities float64 `json:"utilities"`
	Other     float64 `json:"other"`
}

// Total returns rent + utilities + other.
func (f FixedCosts) Total() float64 {
	return f.Rent + f.Utilities + f.Other
}

// FutureAllocation holds money directed to savings and investment.
type FutureAllocation struct {
	Savings    float64 `json:"savings"`
	Investment float64 `json:"investment"`
}

// Total returns savings + investment.
func (f FutureAllocation) Total() float64 {
	return f.Savings + f.Investment
}

// Dial is a user-defined discretionary spending category.
type Dial struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Description string  `json:"description,omitempty"`
}

// Budget is the single persisted record. Its serialized shape is the
// persistence blob format.
type Budget struct {
	Income float64          `json:"income"`
	Fixed  FixedCosts       `json:"fixed"`
	Future FutureAllocation `json:"future"`
	Dials  []Dial           `json:"dials"`
}

// DefaultBudget returns the record used when nothing has been persisted yet.
func DefaultBudget() Budget {
	return Budget{
		Dials: []Dial{
			{ID: "1", Name: "Food"},
			{ID: "2", Name: "Travel"},
			{ID: "3", Name: "Giving"},
		},
	}
}

// Clone returns a deep copy that shares no slices with b.
func (b Budget) Clone() Budget {
	out := b
	out.Dials = make([]Dial, len(b.Dials))
	copy(out.Dials, b.Dials)
	return out
}

// DialIndex returns the position of the dial with the given id, or -1.
func (b Budget) DialIndex(id string) int {
	for i, d := range b.Dials {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// FixedField selects one of the fixed-cost amounts.
type FixedField int

const (
	FixedRent FixedField = iota
	FixedUtilities
	FixedOther
)

var fixedFieldNames = map[FixedField]string{
	FixedRent:      "rent",
	FixedUtilities: "utilities",
	FixedOther:     "other",
}

func (f FixedField) String() string {
	if s, ok := fixedFieldNames[f]; ok {
		return s
	}
	return "unknown"
}

// ParseFixedField maps "rent", "utilities" or "other" to a FixedField.
func ParseFixedField(s string) (FixedField, bool) {
	for f, name := range fixedFieldNames {
		if name == s {
			return f, true
		}
	}
	return 0, false
}

// FutureField selects one of the future-allocation amounts.
type FutureField int

const (
	FutureSavings FutureField = iota
	FutureInvestment
)

var futureFieldNames = map[FutureField]string{
	FutureSavings:    "savings",
	FutureInvestment: "investment",
}

func (f FutureField) String() string {
	if s, ok := futureFieldNames[f]; ok {
		return s
	}
	return "unknown"
}

// ParseFutureField maps "savings" or "investment" to a FutureField.
func ParseFutureField(s string) (FutureField, bool) {
	for f, name := range futureFieldNames {
		if name == s {
			return f, true
		}
	}
	return 0, false
}
