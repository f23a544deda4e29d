package model

// Status is the qualitative rating of a benchmarked category.
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusBad     Status = "bad"
	StatusNeutral Status = "neutral"
)

// Totals holds the group sums derived from a Budget.
type Totals struct {
	Income    float64 `json:"income"`
	Fixed     float64 `json:"fixed"`
	Future    float64 `json:"future"`
	Dials     float64 `json:"dials"`
	Expenses  float64 `json:"expenses"`
	Remaining float64 `json:"remaining"` // negative means a deficit
}

// Percentages holds each group as a share of income, 0-100 scale.
// Every field is 0 when income is not positive.
type Percentages struct {
	Fixed      float64 `json:"fixed"`
	Savings    float64 `json:"savings"`
	Investment float64 `json:"investment"`
	Future     float64 `json:"future"`
	Dials      float64 `json:"dials"`
	Remaining  float64 `json:"remaining"`
}

// BenchmarkResult is one evaluated row of the benchmark table.
type BenchmarkResult struct {
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Target string  `json:"target"`
	Status Status  `json:"status"`
}

// Segment is one slice of the allocation chart.
type Segment struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Color  string  `json:"color"`
}

// Metrics bundles everything derived from a Budget in one pass.
type Metrics struct {
	Totals      Totals            `json:"totals"`
	Percentages Percentages       `json:"percentages"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
	Segments    []Segment         `json:"segments"`
}

// OverBudget reports whether allocations exceed income.
func (m Metrics) OverBudget() bool {
	return m.Totals.Remaining < 0
}
