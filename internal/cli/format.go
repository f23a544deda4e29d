// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyFormatter renders amounts with locale digit grouping and no
// fractional digits.
type MoneyFormatter struct {
	printer *message.Printer
	symbol  string
	group   string // digit grouping separator, "." for es-CO
	decimal string
}

// NewMoneyFormatter builds a formatter for a BCP 47 locale such as "es-CO".
// Unparseable locales fall back to English grouping.
func NewMoneyFormatter(locale, symbol string) MoneyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	group, decimal := separators(p)
	return MoneyFormatter{printer: p, symbol: symbol, group: group, decimal: decimal}
}

// separators reads the grouping and decimal marks the printer uses.
func separators(p *message.Printer) (group, decimal string) {
	s := p.Sprint(number.Decimal(1234567.5, number.MinFractionDigits(1)))
	var marks []string
	for _, r := range s {
		if !unicode.IsDigit(r) {
			marks = append(marks, string(r))
		}
	}
	if len(marks) < 2 || marks[0] == marks[len(marks)-1] {
		return ",", "."
	}
	return marks[0], marks[len(marks)-1]
}

// Format renders v, e.g. 4000000 -> "$4.000.000" for es-CO.
func (m MoneyFormatter) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return m.symbol + "?"
	}
	rounded := math.Round(v)
	digits := m.printer.Sprint(number.Decimal(math.Abs(rounded), number.MaxFractionDigits(0)))
	if rounded < 0 {
		return "-" + m.symbol + digits
	}
	return m.symbol + digits
}

var money = NewMoneyFormatter("es-CO", "$")

// SetMoneyLocale replaces the formatter used by FormatMoney.
func SetMoneyLocale(locale, symbol string) {
	money = NewMoneyFormatter(locale, symbol)
}

// FormatMoney formats an amount with the active locale.
func FormatMoney(v float64) string {
	return money.Format(v)
}

// FormatPercent formats a 0-100 percentage with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// ErrBadAmount is returned by ParseAmount for input that is not a
// non-negative number.
var ErrBadAmount = errors.New("amount must be a non-negative number")

// ParseAmount reads user input such as "4000000", "$4,000,000", "4_000_000",
// "1.5m" or "250k" with the active locale. See MoneyFormatter.Parse.
func ParseAmount(s string) (float64, error) {
	return money.Parse(s)
}

// Parse reads an amount. Anything Format prints parses back, so with es-CO
// "$1.500.000" is one and a half million. Otherwise commas, underscores,
// spaces and a leading currency symbol are ignored and "." is the decimal
// point.
func (m MoneyFormatter) Parse(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if m.symbol != "" {
		s = strings.TrimPrefix(s, strings.ToLower(m.symbol))
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))

	if m.group != "" && m.group != "," && m.localeGrouped(s) {
		s = strings.ReplaceAll(s, m.group, "")
		s = strings.Replace(s, m.decimal, ".", 1)
	}
	s = strings.NewReplacer(",", "", "_", "", " ", "", "\u00a0", "", "\u202f", "").Replace(s)

	mult := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		mult, s = 1_000, strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		mult, s = 1_000_000, strings.TrimSuffix(s, "m")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadAmount, s)
	}
	return v * mult, nil
}

// localeGrouped reports whether s is written with the locale's thousands
// groups, like "1.500.000" or "1.234,5" for es-CO.
func (m MoneyFormatter) localeGrouped(s string) bool {
	re := `^\d{1,3}(` + regexp.QuoteMeta(m.group) + `\d{3})+(` + regexp.QuoteMeta(m.decimal) + `\d+)?$`
	ok, _ := regexp.MatchString(re, s)
	return ok
}
