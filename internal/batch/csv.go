package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/money"
)

// Canonical column headers, matching the sample the training job consumes.
const (
	colProduct     = "Product"
	colCategory    = "Category"
	colStock       = "Stock"
	colSales       = "Sales"
	colPrice       = "Price"
	colMarketPrice = "Market_Price"
	colSuggested   = "Suggested_Sell_Price"
	colAdvice      = "Price_Advice"
)

// ReadTable decodes a product CSV. A header without Product or Price is
// fatal; malformed numeric cells inside a row degrade that cell to absent
// (price itself excluded: a row with an unparsable price is dropped with a
// warning, since advice against a made-up price would be meaningless).
func ReadTable(r io.Reader) ([]Row, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeMalformedInput, err, "read csv header")
	}

	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, required := range []string{colProduct, colPrice} {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeMissingColumn,
			fmt.Sprintf("csv is missing required columns: %s", strings.Join(missing, ", "))).
			WithDetails(map[string]any{"missing": missing})
	}

	var rows []Row
	var warnings []string
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		cell := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		price, err := money.ParsePrice(cell(colPrice))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: unparsable price %q, row skipped", line, cell(colPrice)))
			continue
		}
		priceF, _ := price.Float64()

		row := Row{
			Product:  cell(colProduct),
			Category: cell(colCategory),
			Price:    floatPtr(priceF),
		}
		row.Stock = parseOptional(cell(colStock), line, colStock, &warnings)
		row.Sales = parseOptional(cell(colSales), line, colSales, &warnings)
		row.MarketPrice = parseOptional(cell(colMarketPrice), line, colMarketPrice, &warnings)

		rows = append(rows, row)
	}

	return rows, warnings, nil
}

// WriteTable encodes the enriched rows back to CSV.
func WriteTable(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	header := []string{colProduct, colCategory, colStock, colSales, colPrice, colMarketPrice, colSuggested, colAdvice}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Product,
			row.Category,
			formatOptional(row.Stock),
			formatOptional(row.Sales),
			formatOptional(row.Price),
			formatOptional(row.MarketPrice),
			formatOptional(row.SuggestedSellPrice),
			string(row.PriceAdvice),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func parseOptional(raw string, line int, column string, warnings *[]string) *float64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("line %d: unparsable %s %q, treated as absent", line, column, raw))
		return nil
	}
	return floatPtr(value)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
