package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/famled/family_finance_app/internal/apperrors"
	"github.com/famled/family_finance_app/internal/core/domain"
	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/currency"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/famled/family_finance_app/internal/middleware"
	"github.com/famled/family_finance_app/internal/rbac"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRateService handles business logic related to exchange rates.
type ExchangeRateService struct {
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	rateCache    *currency.RateCache
}

// NewExchangeRateService creates a new ExchangeRateService. The rate cache
// may be nil in contexts that never convert (it is only invalidated, never
// read, by this service).
func NewExchangeRateService(rr portsrepo.ExchangeRateRepositoryFacade, cr portsrepo.CurrencyReader, cache *currency.RateCache) portssvc.ExchangeRateSvcFacade {
	return &ExchangeRateService{
		rateRepo:     rr,
		currencyRepo: cr,
		rateCache:    cache,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// GetExchangeRate retrieves the latest exchange rate between two currencies.
func (s *ExchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find exchange rate: %w", err)
	}
	return rate, nil
}

// ListLatestRates retrieves the latest rate per currency pair.
func (s *ExchangeRateService) ListLatestRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListLatestRates(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list exchange rates", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	return rates, nil
}

// CreateExchangeRate persists a new exchange rate; requires currency:manage.
// The conversion rate cache is cleared so the new rate takes effect on the
// next conversion instead of after the freshness window lapses.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string, creatorRole rbac.Role) (*domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := canManageCurrencies(creatorRole); err != nil {
		return nil, err
	}
	if req.FromCurrencyCode == req.ToCurrencyCode {
		return nil, fmt.Errorf("%w: from and to currency must differ", apperrors.ErrValidation)
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}
	if err := validateEntryCurrency(ctx, s.currencyRepo, req.FromCurrencyCode); err != nil {
		return nil, err
	}
	if err := validateEntryCurrency(ctx, s.currencyRepo, req.ToCurrencyCode); err != nil {
		return nil, err
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   req.ToCurrencyCode,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		logger.Error("Failed to save exchange rate", slog.String("error", err.Error()), slog.String("from", req.FromCurrencyCode), slog.String("to", req.ToCurrencyCode))
		return nil, fmt.Errorf("failed to create exchange rate: %w", err)
	}

	if s.rateCache != nil {
		s.rateCache.Clear()
	}

	logger.Info("Exchange rate created", slog.String("from", req.FromCurrencyCode), slog.String("to", req.ToCurrencyCode), slog.String("rate", req.Rate.String()))
	return &rate, nil
}
