package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	batchsvc "github.com/oscarvaldez-dev/pricepulse-backend/internal/batch"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/market"
	pricingsvc "github.com/oscarvaldez-dev/pricepulse-backend/internal/pricing"
	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/metrics"
)

type stubPricingService struct {
	analysis *pricingsvc.Analysis
	summary  *market.Summary
	err      error
}

func (s stubPricingService) AnalyzeProduct(ctx context.Context, input pricingsvc.AnalyzeInput) (*pricingsvc.Analysis, error) {
	return s.analysis, s.err
}

func (s stubPricingService) Competitors(ctx context.Context, product string) (*market.Summary, error) {
	return s.summary, s.err
}

func TestAnalyzeProductSuccess(t *testing.T) {
	analysis := &pricingsvc.Analysis{
		ProductName:    "Wireless Mouse",
		CurrentPrice:   30,
		SuggestedPrice: 157.5,
		Advice:         pricingsvc.RaisePrice,
		Basis:          pricingsvc.BasisMarketAverage,
	}
	handler := AnalyzeProduct(stubPricingService{analysis: analysis}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/analyze",
		strings.NewReader(`{"product_name":"Wireless Mouse","current_price":30}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data pricingsvc.Analysis `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.SuggestedPrice != 157.5 {
		t.Fatalf("unexpected suggested price %v", envelope.Data.SuggestedPrice)
	}
	if envelope.Data.Basis != pricingsvc.BasisMarketAverage {
		t.Fatalf("unexpected basis %q", envelope.Data.Basis)
	}
}

func TestAnalyzeProductRejectsMissingFields(t *testing.T) {
	handler := AnalyzeProduct(stubPricingService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/analyze",
		strings.NewReader(`{"product_name":"Mouse"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAnalyzeProductRejectsUnknownFields(t *testing.T) {
	handler := AnalyzeProduct(stubPricingService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/analyze",
		strings.NewReader(`{"product_name":"Mouse","current_price":30,"surprise":true}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAnalyzeProductMapsUpstreamFailure(t *testing.T) {
	handler := AnalyzeProduct(stubPricingService{
		err: pkgerrors.New(pkgerrors.CodeUpstreamFetch, "lookup failed"),
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/analyze",
		strings.NewReader(`{"product_name":"Mouse","current_price":30}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 got %d", resp.Code)
	}
}

type flatModel struct {
	price    float64
	features []string
}

func (f flatModel) Predict(rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i := range out {
		out[i] = f.price
	}
	return out, nil
}

func (f flatModel) FeatureNames() []string {
	return f.features
}

type fixedMarket struct{ price float64 }

func (f fixedMarket) MarketPrice(string) float64 { return f.price }

func newTestOrchestrator(t *testing.T) *batchsvc.Orchestrator {
	t.Helper()
	orch, err := batchsvc.NewOrchestrator(
		flatModel{price: 25.99, features: []string{"Stock", "Sales", "Market_Price"}},
		fixedMarket{price: 25},
		metrics.NewPricingMetrics(prometheus.NewRegistry()),
		nil,
	)
	if err != nil {
		t.Fatalf("build orchestrator: %v", err)
	}
	return orch
}

func TestEnrichBatchSuccess(t *testing.T) {
	handler := EnrichBatch(newTestOrchestrator(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/batch",
		strings.NewReader(`{"rows":[{"product":"Mouse","price":30,"stock":12,"sales":300}]}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data batchsvc.Result `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Rows) != 1 {
		t.Fatalf("expected 1 row got %d", len(envelope.Data.Rows))
	}
	row := envelope.Data.Rows[0]
	if row.SuggestedSellPrice == nil || *row.SuggestedSellPrice != 25.99 {
		t.Fatalf("unexpected suggested price %v", row.SuggestedSellPrice)
	}
	if row.PriceAdvice != pricingsvc.Competitive {
		t.Fatalf("unexpected advice %q", row.PriceAdvice)
	}
}

func TestEnrichBatchMissingPriceColumnIsFatal(t *testing.T) {
	handler := EnrichBatch(newTestOrchestrator(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/batch",
		strings.NewReader(`{"rows":[{"product":"Mouse"}]}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeMissingColumn) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
}

func TestEnrichBatchEmptyRowsRejected(t *testing.T) {
	handler := EnrichBatch(newTestOrchestrator(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/batch",
		strings.NewReader(`{"rows":[]}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
