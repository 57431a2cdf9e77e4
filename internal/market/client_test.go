package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/config"
	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
)

func newTestFetcher(t *testing.T, baseURL string) *HTTPFetcher {
	t.Helper()
	f, err := NewHTTPFetcher(config.MarketConfig{
		BaseURL:      baseURL,
		APIKey:       "test-key",
		Engine:       "google_shopping",
		FetchTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewHTTPFetcher: %v", err)
	}
	return f
}

func TestHTTPFetcherDecodesListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("engine"); got != "google_shopping" {
			t.Errorf("unexpected engine %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "iPhone 14" {
			t.Errorf("unexpected query %q", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("unexpected api key %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"shopping_results":[
			{"title":"iPhone 14 128GB","source":"Tech Store","price":"$799.00"},
			{"title":"iPhone 14","source":"Outlet","price":"$749.99"}
		]}`))
	}))
	defer srv.Close()

	listings, err := newTestFetcher(t, srv.URL).Fetch(context.Background(), "iPhone 14")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
	if listings[0].Source != "Tech Store" || listings[0].Price != "$799.00" {
		t.Fatalf("unexpected first listing %+v", listings[0])
	}
}

func TestHTTPFetcherNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestFetcher(t, srv.URL).Fetch(context.Background(), "Jeans")
	if !pkgerrors.HasCode(err, pkgerrors.CodeUpstreamFetch) {
		t.Fatalf("expected upstream-fetch code, got %v", err)
	}
}

func TestHTTPFetcherTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := newTestFetcher(t, srv.URL).Fetch(context.Background(), "Jeans")
	if !pkgerrors.HasCode(err, pkgerrors.CodeUpstreamFetch) {
		t.Fatalf("expected upstream-fetch code, got %v", err)
	}
}

func TestHTTPFetcherRequiresProduct(t *testing.T) {
	_, err := newTestFetcher(t, "http://localhost:0").Fetch(context.Background(), "  ")
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSimulatedSourceShape(t *testing.T) {
	src := NewSimulatedSource(func() float64 { return 0.5 })
	listings, err := src.Fetch(context.Background(), "Shirt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 5 {
		t.Fatalf("expected 5 simulated sellers, got %d", len(listings))
	}
	for i, l := range listings {
		if l.Source == "" || l.Price == "" {
			t.Fatalf("listing %d incomplete: %+v", i, l)
		}
		if l.SalesPerYear < 100 || l.SalesPerYear > 1000 {
			t.Fatalf("listing %d sales out of range: %d", i, l.SalesPerYear)
		}
	}
	// mid-draw price: 20 + 0.5*180 = 110
	if listings[0].Price != "$110.00" {
		t.Fatalf("unexpected simulated price %s", listings[0].Price)
	}
}

func TestSimulatedMarketRange(t *testing.T) {
	low := NewSimulatedMarket(func() float64 { return 0 })
	if got := low.MarketPrice("x"); got != 20 {
		t.Fatalf("floor draw should give 20, got %v", got)
	}
	high := NewSimulatedMarket(func() float64 { return 1 })
	if got := high.MarketPrice("x"); got != 200 {
		t.Fatalf("ceiling draw should give 200, got %v", got)
	}
}
