// Package documents extracts headline financial figures from free text.
// Results are for display and export only; nothing here feeds the pricing
// pipeline.
package documents

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// NotFound is the sentinel reported for metrics the text does not mention.
const NotFound = "Not Found"

// Metric is one extracted figure.
type Metric struct {
	Value decimal.Decimal
	Found bool
}

// MarshalJSON renders the amount or the Not Found sentinel.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Found {
		return json.Marshal(NotFound)
	}
	return json.Marshal(m.Value)
}

type pattern struct {
	name string
	re   *regexp.Regexp
}

var patterns = []pattern{
	{"Revenue", regexp.MustCompile(`(?i)(Revenue|Total Revenue|Sales)\D*\$?([\d,\.]+)`)},
	{"Net Profit", regexp.MustCompile(`(?i)(Net (Profit|Income|Earnings))\D*\$?([\d,\.]+)`)},
	{"Total Assets", regexp.MustCompile(`(?i)(Total Assets)\D*\$?([\d,\.]+)`)},
	{"Liabilities", regexp.MustCompile(`(?i)(Total Liabilities|Liabilities)\D*\$?([\d,\.]+)`)},
	{"Equity", regexp.MustCompile(`(?i)(Equity|Shareholders'? Equity)\D*\$?([\d,\.]+)`)},
	{"Cash Flow", regexp.MustCompile(`(?i)(Cash Flow|Operating Cash Flow)\D*\$?([\d,\.]+)`)},
}

// MetricNames lists the metrics in report order.
func MetricNames() []string {
	names := make([]string, len(patterns))
	for i, p := range patterns {
		names[i] = p.name
	}
	return names
}

// ExtractFinancials scans the text for each known metric and parses the last
// numeric capture group of the first match.
func ExtractFinancials(text string) map[string]Metric {
	results := make(map[string]Metric, len(patterns))
	for _, p := range patterns {
		results[p.name] = extractOne(p.re, text)
	}
	return results
}

func extractOne(re *regexp.Regexp, text string) Metric {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return Metric{}
	}
	for i := len(match) - 1; i >= 1; i-- {
		candidate := strings.ReplaceAll(match[i], ",", "")
		// the capture class is greedy enough to swallow a sentence-ending dot
		candidate = strings.TrimRight(candidate, ".")
		if candidate == "" || !hasDigit(candidate) {
			continue
		}
		value, err := decimal.NewFromString(candidate)
		if err != nil {
			continue
		}
		return Metric{Value: value, Found: true}
	}
	return Metric{}
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
