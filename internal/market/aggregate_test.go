package market

import (
	"testing"

	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
)

func TestAggregateFiltersUnparsableListings(t *testing.T) {
	listings := []Listing{
		{Source: "Seller 1", Price: "$100.00"},
		{Source: "Seller 2", Price: "$200.00"},
		{Source: "Seller 3", Price: "garbage"},
	}

	summary, err := Aggregate(listings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.Listings) != 2 {
		t.Fatalf("expected 2 parsed listings, got %d", len(summary.Listings))
	}
	if summary.Skipped != 1 {
		t.Fatalf("expected 1 skipped listing, got %d", summary.Skipped)
	}
	if got := summary.Mean.String(); got != "150" {
		t.Fatalf("mean must exclude the garbage entry: got %s, want 150", got)
	}
	if got := summary.Suggested.String(); got != "157.5" {
		t.Fatalf("suggested = mean x 1.05: got %s, want 157.5", got)
	}
}

func TestAggregateThousandsSeparators(t *testing.T) {
	summary, err := Aggregate([]Listing{{Price: "$1,299.00"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := summary.Mean.String(); got != "1299" {
		t.Fatalf("unexpected mean %s", got)
	}
}

func TestAggregateAllUnparsableFails(t *testing.T) {
	_, err := Aggregate([]Listing{
		{Price: "garbage"},
		{Price: ""},
		{Price: "N/A"},
	})
	if err == nil {
		t.Fatal("all-unparsable listings must fail, not produce a zero mean")
	}
	if !pkgerrors.HasCode(err, pkgerrors.CodeNoListings) {
		t.Fatalf("expected no-valid-listings code, got %v", err)
	}
}

func TestAggregateEmptyInputFails(t *testing.T) {
	if _, err := Aggregate(nil); !pkgerrors.HasCode(err, pkgerrors.CodeNoListings) {
		t.Fatalf("empty input must fail with no-valid-listings, got %v", err)
	}
}

func TestAggregateNegativePriceFiltered(t *testing.T) {
	summary, err := Aggregate([]Listing{
		{Price: "-$50.00"},
		{Price: "$100.00"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := summary.Mean.String(); got != "100" {
		t.Fatalf("negative listing must be filtered, mean = %s", got)
	}
}

func TestEstimateSales(t *testing.T) {
	if got := EstimateSales(100, 100); got != 1000 {
		t.Fatalf("price at market average should estimate 1000, got %v", got)
	}
	if got := EstimateSales(105, 100); got != 500 {
		t.Fatalf("5 over average should estimate 500, got %v", got)
	}
	if got := EstimateSales(200, 100); got != 0 {
		t.Fatalf("far above average should floor at 0, got %v", got)
	}
	if got := EstimateSales(95, 100); got != 1500 {
		t.Fatalf("below average should estimate 1500, got %v", got)
	}
}
