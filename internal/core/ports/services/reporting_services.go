package services

import (
	"context"
	"time"

	"github.com/famled/family_finance_app/internal/core/domain"
	"github.com/famled/family_finance_app/internal/rbac"
)

// ReportingSvcFacade produces dashboard aggregates in the family's display
// currency.
type ReportingSvcFacade interface {
	// GetDashboardSummary aggregates a family's expenses and income over the
	// window, converted into the family's display currency via cached rates.
	GetDashboardSummary(ctx context.Context, familyID string, from, to time.Time, callerUserID string, callerRole rbac.Role) (*domain.DashboardSummary, error)
}
