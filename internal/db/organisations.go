package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/expomadeinworld/directory-service/internal/models"
)

var organisationListing = listing{
	table:      "organisations",
	searchCols: []string{"name", "id::text"},
	sortKeys: map[string]string{
		"name": "LOWER(name)",
		"id":   "id",
	},
}

const organisationColumns = "id, name, status, enable_user_login, created_at"

func scanOrganisation(row pgx.Row) (models.Organisation, error) {
	var org models.Organisation
	err := row.Scan(&org.ID, &org.Name, &org.Status, &org.EnableUserLogin, &org.CreatedAt)
	return org, err
}

// ListOrganisations returns the filtered, sorted and windowed organisations
// along with the total count of all matching rows.
func (d *Database) ListOrganisations(ctx context.Context, params models.ListParams) ([]models.Organisation, int, error) {
	q := d.querier(ctx)
	where, args := organisationListing.filterClause(params.Search)

	// Count before windowing so total reflects the full filtered set
	var total int
	if err := q.QueryRow(ctx, organisationListing.countSQL(where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count organisations: %w", err)
	}

	query := organisationListing.selectSQL(
		organisationColumns,
		where,
		organisationListing.orderClause(params.Sorting),
		len(args)+1,
	)
	limit, offset := window(params.Size, params.Page)
	rows, err := q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query organisations: %w", err)
	}
	defer rows.Close()

	orgs := make([]models.Organisation, 0)
	for rows.Next() {
		org, err := scanOrganisation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan organisation: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating organisations: %w", err)
	}

	return orgs, total, nil
}

// GetOrganisation retrieves an organisation by ID
func (d *Database) GetOrganisation(ctx context.Context, id int) (*models.Organisation, error) {
	query := "SELECT " + organisationColumns + " FROM organisations WHERE id = $1"
	org, err := scanOrganisation(d.querier(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organisation: %w", err)
	}
	return &org, nil
}

// CreateOrganisation inserts a new organisation and returns the stored record
func (d *Database) CreateOrganisation(ctx context.Context, in models.OrganisationCreate) (*models.Organisation, error) {
	query := `
		INSERT INTO organisations (name, status)
		VALUES ($1, $2)
		RETURNING ` + organisationColumns
	org, err := scanOrganisation(d.querier(ctx).QueryRow(ctx, query, in.Name, int(in.Status)))
	if err != nil {
		return nil, constraintErr(fmt.Errorf("failed to create organisation: %w", err))
	}
	return &org, nil
}

// UpdateOrganisation applies only the provided fields to an organisation
func (d *Database) UpdateOrganisation(ctx context.Context, id int, updates models.OrganisationUpdate) error {
	var setParts []string
	var args []any
	argIndex := 1

	if updates.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *updates.Name)
		argIndex++
	}
	if updates.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, int(*updates.Status))
		argIndex++
	}

	if len(setParts) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE organisations SET %s WHERE id = $%d", strings.Join(setParts, ", "), argIndex)

	result, err := d.querier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return constraintErr(fmt.Errorf("failed to update organisation: %w", err))
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOrganisation removes an organisation by ID. The boolean reports
// whether a row existed at delete time.
func (d *Database) DeleteOrganisation(ctx context.Context, id int) (bool, error) {
	result, err := d.querier(ctx).Exec(ctx, "DELETE FROM organisations WHERE id = $1", id)
	if err != nil {
		return false, constraintErr(fmt.Errorf("failed to delete organisation: %w", err))
	}
	return result.RowsAffected() > 0, nil
}

// CountOrganisationUsers counts the users attached to an organisation
func (d *Database) CountOrganisationUsers(ctx context.Context, orgID int) (int, error) {
	var count int
	err := d.querier(ctx).QueryRow(ctx,
		"SELECT COUNT(*) FROM users WHERE organisation_id = $1", orgID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count organisation users: %w", err)
	}
	return count, nil
}

// ListOrganisationUsers lists the users attached to an organisation
func (d *Database) ListOrganisationUsers(ctx context.Context, orgID int) ([]models.User, error) {
	query := `
		SELECT id, COALESCE(first_name, ''), COALESCE(last_name, ''), email, organisation_id, state, created_at
		FROM users
		WHERE organisation_id = $1
		ORDER BY id`
	rows, err := d.querier(ctx).Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query organisation users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.OrganisationID, &u.State, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// OrganisationNameExists reports whether a name is already taken, compared
// case-insensitively. Runs on the pool, outside any request transaction:
// validation checks use their own short-lived scope.
func (d *Database) OrganisationNameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := d.Pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM organisations WHERE LOWER(name) = LOWER($1))", name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check organisation name: %w", err)
	}
	return exists, nil
}

// OrganisationExists reports whether an organisation with the ID exists.
// Runs on the pool, outside any request transaction.
func (d *Database) OrganisationExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := d.Pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM organisations WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check organisation existence: %w", err)
	}
	return exists, nil
}
