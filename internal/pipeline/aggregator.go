// Package pipeline derives totals, percentages, benchmark ratings and chart
// segments from a budget record. Every function here is pure.
package pipeline

import (
	"math"

	"github.com/theirongolddev/dials/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// sums holds group totals in exact decimal form so percentage boundaries
// (60% exactly, 5% exactly) are not blurred by float drift.
type sums struct {
	income    decimal.Decimal
	fixed     decimal.Decimal
	savings   decimal.Decimal
	invest    decimal.Decimal
	future    decimal.Decimal
	dials     decimal.Decimal
	expenses  decimal.Decimal
	remaining decimal.Decimal
}

// dec converts an amount to decimal. Non-finite amounts count as zero.
func dec(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func sumBudget(b model.Budget) sums {
	var s sums
	s.income = dec(b.Income)
	s.fixed = dec(b.Fixed.Rent).Add(dec(b.Fixed.Utilities)).Add(dec(b.Fixed.Other))
	s.savings = dec(b.Future.Savings)
	s.invest = dec(b.Future.Investment)
	s.future = s.savings.Add(s.invest)

	s.dials = decimal.Zero
	for _, d := range b.Dials {
		s.dials = s.dials.Add(dec(d.Value))
	}

	s.expenses = s.fixed.Add(s.future).Add(s.dials)
	s.remaining = s.income.Sub(s.expenses)
	return s
}

// ComputeTotals sums each group of the budget.
func ComputeTotals(b model.Budget) model.Totals {
	return sumBudget(b).totals()
}

func (s sums) totals() model.Totals {
	return model.Totals{
		Income:    s.income.InexactFloat64(),
		Fixed:     s.fixed.InexactFloat64(),
		Future:    s.future.InexactFloat64(),
		Dials:     s.dials.InexactFloat64(),
		Expenses:  s.expenses.InexactFloat64(),
		Remaining: s.remaining.InexactFloat64(),
	}
}

// Pct returns amount as a percentage of income, or 0 when income <= 0.
func Pct(amount, income float64) float64 {
	return pct(dec(amount), dec(income))
}

func pct(amount, income decimal.Decimal) float64 {
	if !income.IsPositive() {
		return 0
	}
	return amount.Div(income).Mul(hundred).InexactFloat64()
}

// ComputePercentages returns each group as a share of income.
func ComputePercentages(b model.Budget) model.Percentages {
	return sumBudget(b).percentages()
}

func (s sums) percentages() model.Percentages {
	return model.Percentages{
		Fixed:      pct(s.fixed, s.income),
		Savings:    pct(s.savings, s.income),
		Investment: pct(s.invest, s.income),
		Future:     pct(s.future, s.income),
		Dials:      pct(s.dials, s.income),
		Remaining:  pct(s.remaining, s.income),
	}
}

// Compute derives the full metric set for b in one pass.
func Compute(b model.Budget) model.Metrics {
	s := sumBudget(b)
	totals := s.totals()
	pcts := s.percentages()

	return model.Metrics{
		Totals:      totals,
		Percentages: pcts,
		Benchmarks:  EvaluateBenchmarks(pcts),
		Segments:    Segments(b, totals),
	}
}

// DialMax is the upper bound of a dial's adjustment range.
func DialMax(income float64) float64 {
	return math.Max(100, income)
}

// DialStep is the increment used when nudging a dial up or down.
func DialStep(max float64) float64 {
	return math.Max(1, math.Floor(max/100))
}
