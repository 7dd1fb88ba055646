package services

import (
	"context"

	"github.com/famled/family_finance_app/internal/core/domain"
	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	"github.com/famled/family_finance_app/internal/dto"
	"github.com/famled/family_finance_app/internal/rbac"
)

// IncomeReaderSvc defines read operations for income data
type IncomeReaderSvc interface {
	// GetIncomeByID retrieves one income entry; read_own vs read_all applies.
	GetIncomeByID(ctx context.Context, incomeID, callerUserID string, callerRole rbac.Role) (*domain.Income, error)

	// ListIncome retrieves a page of a family's income entries. Callers
	// without income:read_all are restricted to their own entries.
	ListIncome(ctx context.Context, familyID string, params portsrepo.ListEntriesParams, callerUserID string, callerRole rbac.Role) ([]domain.Income, string, error)
}

// IncomeWriterSvc defines write operations for income data
type IncomeWriterSvc interface {
	// CreateIncome records an income entry; requires income:create and
	// family membership with write access.
	CreateIncome(ctx context.Context, familyID string, req dto.CreateIncomeRequest, creatorUserID string, creatorRole rbac.Role) (*domain.Income, error)

	// UpdateIncome updates an income entry; update_own vs update_all applies.
	UpdateIncome(ctx context.Context, incomeID string, req dto.UpdateIncomeRequest, updaterUserID string, updaterRole rbac.Role) (*domain.Income, error)

	// DeleteIncome removes an income entry; delete_own vs delete_all applies.
	DeleteIncome(ctx context.Context, incomeID, deleterUserID string, deleterRole rbac.Role) error
}

// IncomeSvcFacade combines all income-related service interfaces
type IncomeSvcFacade interface {
	IncomeReaderSvc
	IncomeWriterSvc
}
