package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/config"
	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
)

// Fetcher looks up competitor listings for a product name. A failed lookup is
// an UpstreamFetchFailure; callers fall back to the simulated path instead of
// treating the error as zero competitors.
type Fetcher interface {
	Fetch(ctx context.Context, product string) ([]Listing, error)
}

// HTTPFetcher queries a google-shopping style search API. Single attempt, no
// retries; the interactive caller decides what to do with a failure.
type HTTPFetcher struct {
	baseURL string
	apiKey  string
	engine  string
	client  *http.Client
}

// NewHTTPFetcher wires the upstream lookup from config.
func NewHTTPFetcher(cfg config.MarketConfig) (*HTTPFetcher, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("market base url required")
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFetcher{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		engine:  cfg.Engine,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type searchResponse struct {
	ShoppingResults []Listing `json:"shopping_results"`
}

// Fetch runs the lookup keyed by product name.
func (f *HTTPFetcher) Fetch(ctx context.Context, product string) ([]Listing, error) {
	if strings.TrimSpace(product) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}

	params := url.Values{}
	params.Set("engine", f.engine)
	params.Set("q", product)
	if f.apiKey != "" {
		params.Set("api_key", f.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamFetch, err, "build competitor lookup request")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamFetch, err, "competitor lookup request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, pkgerrors.New(pkgerrors.CodeUpstreamFetch,
			fmt.Sprintf("competitor lookup returned status %d", resp.StatusCode))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamFetch, err, "decode competitor lookup response")
	}

	return decoded.ShoppingResults, nil
}
