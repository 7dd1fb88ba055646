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

const expenseColumns = `expense_id, family_id, user_id, category_id, amount, currency_code, date, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(
		&e.ExpenseID,
		&e.FamilyID,
		&e.UserID,
		&e.CategoryID,
		&e.Amount,
		&e.CurrencyCode,
		&e.Date,
		&e.Notes,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

// SaveExpense persists a new expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (expense_id, family_id, user_id, category_id, amount, currency_code, date, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.FamilyID,
		expense.UserID,
		expense.CategoryID,
		expense.Amount,
		expense.CurrencyCode,
		expense.Date,
		expense.Notes,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM expenses WHERE expense_id = $1;`, expenseColumns)
	expense, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by id %s: %w", expenseID, err)
	}
	return &expense, nil
}

// ListExpensesByFamily retrieves a page of a family's expenses ordered by
// date descending with (date, created_at) cursor pagination.
func (r *PgxExpenseRepository) ListExpensesByFamily(ctx context.Context, familyID string, params portsrepo.ListEntriesParams) ([]domain.Expense, string, error) {
	query := fmt.Sprintf(`SELECT %s FROM expenses WHERE family_id = $1`, expenseColumns)
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

	// Fetch one extra row to decide whether another page exists.
	args = append(args, params.Limit+1)
	query += fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query expenses for family %s: %w", familyID, err)
	}
	defer rows.Close()

	expenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Expense, error) {
		return scanExpense(row)
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan expenses: %w", err)
	}

	nextToken := ""
	if len(expenses) > params.Limit {
		expenses = expenses[:params.Limit]
		last := expenses[len(expenses)-1]
		nextToken = pagination.EncodeToken(last.Date, last.CreatedAt)
	}
	return expenses, nextToken, nil
}

// UpdateExpense persists changes to an existing expense.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		UPDATE expenses
		SET category_id = $2, amount = $3, currency_code = $4, date = $5, notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE expense_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.CategoryID,
		expense.Amount,
		expense.CurrencyCode,
		expense.Date,
		expense.Notes,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpense removes an expense.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	query := `DELETE FROM expenses WHERE expense_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
