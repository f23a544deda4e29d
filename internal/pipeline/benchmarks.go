package pipeline

import "github.com/theirongolddev/dials/internal/model"

// Benchmark is one row of the benchmark table: a percentage metric and the
// rule that rates it.
type Benchmark struct {
	Label  string
	Target string
	Metric func(model.Percentages) float64
	Rate   func(pct float64) model.Status
}

// Benchmarks is evaluated in order; the output preserves this order.
var Benchmarks = []Benchmark{
	{
		Label:  "Fixed Costs",
		Target: "≤ 60%",
		Metric: func(p model.Percentages) float64 { return p.Fixed },
		Rate:   atMost(60, model.StatusBad),
	},
	{
		Label:  "Savings",
		Target: "≥ 5%",
		Metric: func(p model.Percentages) float64 { return p.Savings },
		Rate:   atLeast(5, model.StatusWarning),
	},
	{
		Label:  "Investment",
		Target: "≥ 5%",
		Metric: func(p model.Percentages) float64 { return p.Investment },
		Rate:   atLeast(5, model.StatusWarning),
	},
	{
		Label:  "Discretionary",
		Target: "20-35%",
		Metric: func(p model.Percentages) float64 { return p.Dials },
		Rate:   within(20, 35, model.StatusNeutral),
	},
}

func atMost(limit float64, otherwise model.Status) func(float64) model.Status {
	return func(v float64) model.Status {
		if v <= limit {
			return model.StatusGood
		}
		return otherwise
	}
}

func atLeast(limit float64, otherwise model.Status) func(float64) model.Status {
	return func(v float64) model.Status {
		if v >= limit {
			return model.StatusGood
		}
		return otherwise
	}
}

func within(lo, hi float64, otherwise model.Status) func(float64) model.Status {
	return func(v float64) model.Status {
		if v >= lo && v <= hi {
			return model.StatusGood
		}
		return otherwise
	}
}

// EvaluateBenchmarks rates p against every entry of Benchmarks.
func EvaluateBenchmarks(p model.Percentages) []model.BenchmarkResult {
	out := make([]model.BenchmarkResult, 0, len(Benchmarks))
	for _, bm := range Benchmarks {
		v := bm.Metric(p)
		out = append(out, model.BenchmarkResult{
			Label:  bm.Label,
			Value:  v,
			Target: bm.Target,
			Status: bm.Rate(v),
		})
	}
	return out
}
