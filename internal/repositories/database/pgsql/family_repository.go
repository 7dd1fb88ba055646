package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/famled/family_finance_app/internal/apperrors"
	"github.com/famled/family_finance_app/internal/core/domain"
	portsrepo "github.com/famled/family_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const familyColumns = `family_id, name, description, invite_code, default_currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxFamilyRepository struct {
	BaseRepository
}

// newPgxFamilyRepository creates a new repository for family data.
func newPgxFamilyRepository(pool *pgxpool.Pool) portsrepo.FamilyRepositoryFacade {
	return &PgxFamilyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FamilyRepositoryFacade = (*PgxFamilyRepository)(nil)

func scanFamily(row pgx.Row) (domain.Family, error) {
	var f domain.Family
	err := row.Scan(
		&f.FamilyID,
		&f.Name,
		&f.Description,
		&f.InviteCode,
		&f.DefaultCurrencyCode,
		&f.IsActive,
		&f.CreatedAt,
		&f.CreatedBy,
		&f.LastUpdatedAt,
		&f.LastUpdatedBy,
	)
	return f, err
}

// SaveFamily persists a new family.
func (r *PgxFamilyRepository) SaveFamily(ctx context.Context, family domain.Family) error {
	query := `
		INSERT INTO families (family_id, name, description, invite_code, default_currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		family.FamilyID,
		family.Name,
		family.Description,
		family.InviteCode,
		family.DefaultCurrencyCode,
		family.IsActive,
		family.CreatedAt,
		family.CreatedBy,
		family.LastUpdatedAt,
		family.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save family %s: %w", family.FamilyID, err)
	}
	return nil
}

// UpdateFamily persists changes to an existing family.
func (r *PgxFamilyRepository) UpdateFamily(ctx context.Context, family domain.Family) error {
	query := `
		UPDATE families
		SET name = $2, description = $3, invite_code = $4, default_currency_code = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE family_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		family.FamilyID,
		family.Name,
		family.Description,
		family.InviteCode,
		family.DefaultCurrencyCode,
		family.IsActive,
		family.LastUpdatedAt,
		family.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update family %s: %w", family.FamilyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindFamilyByID retrieves a family by ID.
func (r *PgxFamilyRepository) FindFamilyByID(ctx context.Context, familyID string) (*domain.Family, error) {
	query := fmt.Sprintf(`SELECT %s FROM families WHERE family_id = $1;`, familyColumns)
	family, err := scanFamily(r.Pool.QueryRow(ctx, query, familyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find family by id %s: %w", familyID, err)
	}
	return &family, nil
}

// FindFamilyByInviteCode retrieves an active family by its invite code.
func (r *PgxFamilyRepository) FindFamilyByInviteCode(ctx context.Context, inviteCode string) (*domain.Family, error) {
	query := fmt.Sprintf(`SELECT %s FROM families WHERE invite_code = $1;`, familyColumns)
	family, err := scanFamily(r.Pool.QueryRow(ctx, query, inviteCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find family by invite code: %w", err)
	}
	return &family, nil
}

// ListFamiliesForUser retrieves the families a user is a member of.
func (r *PgxFamilyRepository) ListFamiliesForUser(ctx context.Context, userID string) ([]domain.Family, error) {
	query := `
		SELECT f.family_id, f.name, f.description, f.invite_code, f.default_currency_code, f.is_active, f.created_at, f.created_by, f.last_updated_at, f.last_updated_by
		FROM families f
		JOIN family_members fm ON fm.family_id = f.family_id
		WHERE fm.user_id = $1 AND fm.role != 'REMOVED'
		ORDER BY f.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query families for user %s: %w", userID, err)
	}
	defer rows.Close()

	families, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Family, error) {
		return scanFamily(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan families: %w", err)
	}
	return families, nil
}

// FindMembership retrieves a user's membership in a family.
func (r *PgxFamilyRepository) FindMembership(ctx context.Context, familyID, userID string) (*domain.UserFamily, error) {
	query := `
		SELECT fm.user_id, u.name, fm.family_id, fm.role, fm.joined_at
		FROM family_members fm
		JOIN users u ON u.user_id = fm.user_id
		WHERE fm.family_id = $1 AND fm.user_id = $2;
	`
	var m domain.UserFamily
	err := r.Pool.QueryRow(ctx, query, familyID, userID).Scan(
		&m.UserID,
		&m.UserName,
		&m.FamilyID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return &m, nil
}

// ListMembers retrieves all non-removed members of a family.
func (r *PgxFamilyRepository) ListMembers(ctx context.Context, familyID string) ([]domain.UserFamily, error) {
	query := `
		SELECT fm.user_id, u.name, fm.family_id, fm.role, fm.joined_at
		FROM family_members fm
		JOIN users u ON u.user_id = fm.user_id
		WHERE fm.family_id = $1 AND fm.role != 'REMOVED'
		ORDER BY fm.joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members of family %s: %w", familyID, err)
	}
	defer rows.Close()

	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.UserFamily, error) {
		var m domain.UserFamily
		err := row.Scan(&m.UserID, &m.UserName, &m.FamilyID, &m.Role, &m.JoinedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan members: %w", err)
	}
	return members, nil
}

// AddMember adds a user to a family with the given role.
func (r *PgxFamilyRepository) AddMember(ctx context.Context, membership domain.UserFamily) error {
	joinedAt := membership.JoinedAt
	if joinedAt.IsZero() {
		joinedAt = time.Now()
	}
	query := `
		INSERT INTO family_members (family_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, membership.FamilyID, membership.UserID, membership.Role, joinedAt)
	if err != nil {
		return fmt.Errorf("failed to add member %s to family %s: %w", membership.UserID, membership.FamilyID, err)
	}
	return nil
}

// UpdateMemberRole changes a member's role within a family.
func (r *PgxFamilyRepository) UpdateMemberRole(ctx context.Context, familyID, userID string, role domain.UserFamilyRole) error {
	query := `
		UPDATE family_members
		SET role = $3
		WHERE family_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, familyID, userID, role)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
