package ratesource

import (
	"context"
	"fmt"

	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	"github.com/famled/family_finance_app/internal/currency"
)

// DBSource adapts the exchange rate repository to currency.Source so the
// conversion cache can serve the rates administrators maintain in the
// database.
type DBSource struct {
	rateRepo portsrepo.ExchangeRateReader
}

// NewDBSource builds a source over the exchange rate repository.
func NewDBSource(rateRepo portsrepo.ExchangeRateReader) *DBSource {
	return &DBSource{rateRepo: rateRepo}
}

// FetchRates implements currency.Source.
func (s *DBSource) FetchRates(ctx context.Context) ([]currency.RatePair, error) {
	rates, err := s.rateRepo.ListLatestRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load exchange rates from repository: %w", err)
	}
	pairs := make([]currency.RatePair, 0, len(rates))
	for _, r := range rates {
		pairs = append(pairs, currency.RatePair{
			FromCurrency: r.FromCurrencyCode,
			ToCurrency:   r.ToCurrencyCode,
			Rate:         r.Rate,
		})
	}
	return pairs, nil
}
