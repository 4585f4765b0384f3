// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/viamunicipal/potholes-backend/internal/adapter/postgres"
	"github.com/viamunicipal/potholes-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO users (id, username, display_name, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5)`

const getByIDSQL = `
SELECT id, username, display_name, password_hash, created_at
FROM users
WHERE id = $1`

const getByUsernameSQL = `
SELECT id, username, display_name, password_hash, created_at
FROM users
WHERE username = $1`

// Create inserts a user. Returns domain.ErrAlreadyExists on a duplicate username.
func (r *Repo) Create(ctx context.Context, u domain.User) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createSQL,
		u.ID, u.Username, u.DisplayName, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		return mapError(err, u.Username)
	}

	return nil
}

// GetByID returns a user by ID. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, mapError(err, id.String())
	}

	return u, nil
}

// GetByUsername returns a user by username (case-insensitive: usernames are
// stored lower-case and the lookup lowers its input).
// Returns domain.ErrNotFound if absent.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByUsernameSQL, strings.ToLower(strings.TrimSpace(username))))
	if err != nil {
		return nil, mapError(err, username)
	}

	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, ref string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("user %s: %w", ref, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("user %s: %w", ref, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("user %s: %w", ref, domain.ErrAlreadyExists)
	}

	return fmt.Errorf("user %s: %w", ref, err)
}
