package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/famled/family_finance_app/internal/apperrors"
	"github.com/famled/family_finance_app/internal/core/domain"
	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/famled/family_finance_app/internal/core/ports/services"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/famled/family_finance_app/internal/middleware"
	"github.com/famled/family_finance_app/internal/rbac"
)

// canManageCurrencies guards currency and exchange-rate writes; only
// SUPERUSER holds currency:manage.
var canManageCurrencies = rbac.RequirePermission(rbac.ResourceCurrency, rbac.ActionManage)

// CurrencyService handles business logic related to currencies.
type CurrencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(cr portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &CurrencyService{currencyRepo: cr}
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

// GetCurrencyByCode retrieves a specific currency by its code.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find currency: %w", err)
	}
	return currency, nil
}

// ListCurrencies retrieves all available currencies.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list currencies", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

// CreateCurrency persists a new currency; requires currency:manage.
func (s *CurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string, creatorRole rbac.Role) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := canManageCurrencies(creatorRole); err != nil {
		return nil, err
	}

	existing, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check currency existence: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: currency %s already exists", apperrors.ErrDuplicate, req.CurrencyCode)
	}

	now := time.Now()
	currency := domain.Currency{
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    req.Precision,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		logger.Error("Failed to save currency", slog.String("error", err.Error()), slog.String("currency_code", req.CurrencyCode))
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	logger.Info("Currency created", slog.String("currency_code", req.CurrencyCode))
	return &currency, nil
}
