package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/famled/family_finance_app/internal/apperrors"
	"github.com/famled/family_finance_app/internal/core/domain"
	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	"github.com/famled/family_finance_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const incomeColumns = `income_id, family_id, user_id, category_id, amount, currency_code, date, source, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxIncomeRepository struct {
	BaseRepository
}

// newPgxIncomeRepository creates a new repository for income data.
func newPgxIncomeRepository(pool *pgxpool.Pool) portsrepo.IncomeRepositoryFacade {
	return &PgxIncomeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.IncomeRepositoryFacade = (*PgxIncomeRepository)(nil)

func scanIncome(row pgx.Row) (domain.Income, error) {
	var in domain.Income
	err := row.Scan(
		&in.IncomeID,
		&in.FamilyID,
		&in.UserID,
		&in.CategoryID,
		&in.Amount,
		&in.CurrencyCode,
		&in.Date,
		&in.Source,
		&in.Notes,
		&in.CreatedAt,
		&in.CreatedBy,
		&in.LastUpdatedAt,
		&in.LastUpdatedBy,
	)
	return in, err
}

// SaveIncome persists a new income entry.
func (r *PgxIncomeRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	query := `
		INSERT INTO income (income_id, family_id, user_id, category_id, amount, currency_code, date, source, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		income.IncomeID,
		income.FamilyID,
		income.UserID,
		income.CategoryID,
		income.Amount,
		income.CurrencyCode,
		income.Date,
		income.Source,
		income.Notes,
		income.CreatedAt,
		income.CreatedBy,
		income.LastUpdatedAt,
		income.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save income entry %s: %w", income.IncomeID, err)
	}
	return nil
}

// FindIncomeByID retrieves an income entry by ID.
func (r *PgxIncomeRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	query := fmt.Sprintf(`SELECT %s FROM income WHERE income_id = $1;`, incomeColumns)
	income, err := scanIncome(r.Pool.QueryRow(ctx, query, incomeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find income entry by id %s: %w", incomeID, err)
	}
	return &income, nil
}

// ListIncomeByFamily retrieves a page of a family's income entries ordered by
// date descending with (date, created_at) cursor pagination.
func (r *PgxIncomeRepository) ListIncomeByFamily(ctx context.Context, familyID string, params portsrepo.ListEntriesParams) ([]domain.Income, string, error) {
	query := fmt.Sprintf(`SELECT %s FROM income WHERE family_id = $1`, incomeColumns)
	args := []any{familyID}

	if params.UserID != "" {
		args = append(args, params.UserID)
		query += ` AND user_id = $` + strconv.Itoa(len(args))
	}
	if params.FromDate != nil {
		args = append(args, *params.FromDate)
		query += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if params.ToDate != nil {
		args = append(args, *params.ToDate)
		query += ` AND date <= $` + strconv.Itoa(len(args))
	}
	if params.NextToken != "" {
		cursorDate, cursorCreatedAt, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: invalid page token", apperrors.ErrValidation)
		}
		args = append(args, cursorDate, cursorCreatedAt)
		query += fmt.Sprintf(` AND (date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, params.Limit+1)
	query += fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query income entries for family %s: %w", familyID, err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Income, error) {
		return scanIncome(row)
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan income entries: %w", err)
	}

	nextToken := ""
	if len(entries) > params.Limit {
		entries = entries[:params.Limit]
		last := entries[len(entries)-1]
		nextToken = pagination.EncodeToken(last.Date, last.CreatedAt)
	}
	return entries, nextToken, nil
}

// UpdateIncome persists changes to an existing income entry.
func (r *PgxIncomeRepository) UpdateIncome(ctx context.Context, income domain.Income) error {
	query := `
		UPDATE income
		SET category_id = $2, amount = $3, currency_code = $4, date = $5, source = $6, notes = $7, last_updated_at = $8, last_updated_by = $9
		WHERE income_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		income.IncomeID,
		income.CategoryID,
		income.Amount,
		income.CurrencyCode,
		income.Date,
		income.Source,
		income.Notes,
		income.LastUpdatedAt,
		income.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update income entry %s: %w", income.IncomeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteIncome removes an income entry.
func (r *PgxIncomeRepository) DeleteIncome(ctx context.Context, incomeID string) error {
	query := `DELETE FROM income WHERE income_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, incomeID)
	if err != nil {
		return fmt.Errorf("failed to delete income entry %s: %w", incomeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
