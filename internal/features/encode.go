package features

import "strings"

const categoryPrefix = "Category_"

// CategoryColumn names the one-hot indicator column for a category value,
// matching the encoding the training pipeline produced.
func CategoryColumn(value string) string {
	return categoryPrefix + strings.TrimSpace(value)
}

// ExpandCategory sets the indicator column for the row's category value.
// Encoding happens before alignment; the aligner itself never encodes.
func ExpandCategory(record map[string]float64, category string) {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return
	}
	record[CategoryColumn(trimmed)] = 1
}
