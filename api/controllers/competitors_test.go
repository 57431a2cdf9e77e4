package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/oscarvaldez-dev/pricepulse-backend/internal/market"
	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
)

func TestCompetitorsSuccess(t *testing.T) {
	summary := &market.Summary{
		Listings: []market.ParsedListing{
			{Listing: market.Listing{Title: "Mouse", Source: "Seller 1", Price: "$100.00"}, Parsed: decimal.NewFromInt(100)},
			{Listing: market.Listing{Title: "Mouse", Source: "Seller 2", Price: "$200.00"}, Parsed: decimal.NewFromInt(200)},
		},
		Skipped:   1,
		Mean:      decimal.NewFromInt(150),
		Suggested: decimal.RequireFromString("157.5"),
	}
	handler := Competitors(stubPricingService{summary: summary}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/competitors?product=Mouse", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data market.Summary `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Listings) != 2 {
		t.Fatalf("expected 2 listings got %d", len(envelope.Data.Listings))
	}
	if envelope.Data.Skipped != 1 {
		t.Fatalf("expected skipped count to survive, got %d", envelope.Data.Skipped)
	}
}

func TestCompetitorsRequiresProductParam(t *testing.T) {
	handler := Competitors(stubPricingService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/competitors", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCompetitorsNoValidListings(t *testing.T) {
	handler := Competitors(stubPricingService{
		err: pkgerrors.New(pkgerrors.CodeNoListings, "no competitor listings could be parsed"),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/competitors?product=Mouse", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}
