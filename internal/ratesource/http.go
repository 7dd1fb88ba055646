// Package ratesource provides currency.Source implementations: an HTTP
// client for an external exchange rate endpoint and an adapter over the
// exchange rate repository so cached conversions can run off database rates.
package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/famled/family_finance_app/internal/currency"
)

const defaultHTTPTimeout = 10 * time.Second

// HTTPSource fetches rates with a GET request. The endpoint must return a
// JSON array of {fromCurrency, toCurrency, rate} objects; any other shape or
// a non-2xx status is a fetch failure, which the rate cache treats as "no
// update happened".
type HTTPSource struct {
	client   *http.Client
	endpoint string
}

// NewHTTPSource builds a source for the given endpoint URL. A nil client
// gets a default with a request timeout, so a hung endpoint cannot hang a
// render path.
func NewHTTPSource(endpoint string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTPSource{client: client, endpoint: endpoint}
}

// FetchRates implements currency.Source.
func (s *HTTPSource) FetchRates(ctx context.Context) ([]currency.RatePair, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("rate endpoint returned status %d", resp.StatusCode)
	}

	var pairs []currency.RatePair
	if err := json.NewDecoder(resp.Body).Decode(&pairs); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}
	return pairs, nil
}
