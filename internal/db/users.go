package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/expomadeinworld/directory-service/internal/models"
)

var userListing = listing{
	table:      "users",
	searchCols: []string{"last_name", "first_name", "email", "id::text"},
	sortKeys: map[string]string{
		"first_name": "LOWER(first_name)",
		"last_name":  "LOWER(last_name)",
	},
}

const userColumns = "id, COALESCE(first_name, ''), COALESCE(last_name, ''), email, organisation_id, state, created_at"

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.OrganisationID, &u.State, &u.CreatedAt)
	return u, err
}

// ListUsers returns the filtered, sorted and windowed users along with the
// total count of all matching rows.
func (d *Database) ListUsers(ctx context.Context, params models.ListParams) ([]models.User, int, error) {
	q := d.querier(ctx)
	where, args := userListing.filterClause(params.Search)

	var total int
	if err := q.QueryRow(ctx, userListing.countSQL(where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := userListing.selectSQL(
		userColumns,
		where,
		userListing.orderClause(params.Sorting),
		len(args)+1,
	)
	limit, offset := window(params.Size, params.Page)
	rows, err := q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating users: %w", err)
	}

	return users, total, nil
}

// GetUser retrieves a user by ID together with the owning organisation's name
func (d *Database) GetUser(ctx context.Context, id int) (*models.User, string, error) {
	query := `
		SELECT u.id, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), u.email,
		       u.organisation_id, u.state, u.created_at, COALESCE(o.name, '')
		FROM users u
		LEFT JOIN organisations o ON o.id = u.organisation_id
		WHERE u.id = $1`

	var u models.User
	var orgName string
	err := d.querier(ctx).QueryRow(ctx, query, id).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email,
		&u.OrganisationID, &u.State, &u.CreatedAt, &orgName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	return &u, orgName, nil
}

// CreateUser inserts a new user and returns the stored record
func (d *Database) CreateUser(ctx context.Context, in models.UserCreate) (*models.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, organisation_id, state)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns
	u, err := scanUser(d.querier(ctx).QueryRow(ctx, query,
		in.FirstName, in.LastName, in.Email, in.OrganisationID, int(in.State)))
	if err != nil {
		return nil, constraintErr(fmt.Errorf("failed to create user: %w", err))
	}
	return &u, nil
}

// UpdateUser applies only the provided fields to a user
func (d *Database) UpdateUser(ctx context.Context, id int, updates models.UserUpdate) error {
	var setParts []string
	var args []any
	argIndex := 1

	if updates.FirstName != nil {
		setParts = append(setParts, fmt.Sprintf("first_name = $%d", argIndex))
		args = append(args, *updates.FirstName)
		argIndex++
	}
	if updates.LastName != nil {
		setParts = append(setParts, fmt.Sprintf("last_name = $%d", argIndex))
		args = append(args, *updates.LastName)
		argIndex++
	}
	if updates.OrganisationID != nil {
		setParts = append(setParts, fmt.Sprintf("organisation_id = $%d", argIndex))
		args = append(args, *updates.OrganisationID)
		argIndex++
	}

	if len(setParts) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setParts, ", "), argIndex)

	result, err := d.querier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return constraintErr(fmt.Errorf("failed to update user: %w", err))
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes a user by ID. The boolean reports whether a row existed
// at delete time.
func (d *Database) DeleteUser(ctx context.Context, id int) (bool, error) {
	result, err := d.querier(ctx).Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// UserEmailExists reports whether an email is already taken, compared
// exactly as written. Runs on the pool, outside any request transaction.
func (d *Database) UserEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := d.Pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return exists, nil
}
