package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/famled/family_finance_app/internal/apperrors"
	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	"github.com/famled/family_finance_app/internal/currency"
)

// validateEntryCurrency checks that a currency code attached to an expense or
// income entry is known, either as a database row or in the static registry.
func validateEntryCurrency(ctx context.Context, currencyRepo portsrepo.CurrencyReader, code string) error {
	_, err := currencyRepo.FindCurrencyByCode(ctx, code)
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		if currency.IsSupported(code) {
			return nil
		}
		return fmt.Errorf("%w: unsupported currency code %s", apperrors.ErrValidation, code)
	}
	return fmt.Errorf("failed to validate currency code: %w", err)
}
