// Package features reconciles arbitrary tabular records against the feature
// schema a trained model was fit on.
package features

import (
	"sort"

	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
)

// Align produces a numeric vector holding exactly the schema's columns in
// schema order. Schema names absent from the record default to zero and are
// reported back so callers can flag the prediction as low confidence; record
// columns outside the schema are dropped.
func Align(record map[string]float64, schema []string) ([]float64, []string, error) {
	if len(schema) == 0 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeSchemaMissing, "target feature schema is empty")
	}

	vector := make([]float64, len(schema))
	var zeroFilled []string
	for i, name := range schema {
		value, ok := record[name]
		if !ok {
			zeroFilled = append(zeroFilled, name)
			continue
		}
		vector[i] = value
	}
	return vector, zeroFilled, nil
}

// NumericColumns returns the sorted union of column names across records.
// This is the degraded fallback used when a model declares no schema; callers
// must label results built on it as low confidence.
func NumericColumns(records []map[string]float64) []string {
	seen := map[string]struct{}{}
	for _, record := range records {
		for name := range record {
			seen[name] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for name := range seen {
		columns = append(columns, name)
	}
	sort.Strings(columns)
	return columns
}
