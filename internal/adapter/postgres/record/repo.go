// Package record implements the PotholeRecord repository using PostgreSQL.
// All methods honor a transaction carried in the context (see postgres.QuerierFromCtx),
// so multi-record operations — batch create, renumber-on-delete, photo fan-out —
// compose into a single atomic unit under the TxManager.
package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/viamunicipal/potholes-backend/internal/adapter/postgres"
	"github.com/viamunicipal/potholes-backend/internal/domain"
)

// Repo provides pothole record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const recordColumns = `id, submission_id, identifier, street, neighborhood,
       width, length, thickness, weather, photo_links, recorded_by, recorded_at`

const insertSQL = `
INSERT INTO pothole_records
  (id, submission_id, identifier, street, neighborhood, width, length, thickness, weather, photo_links, recorded_by, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const getByIDSQL = `
SELECT ` + recordColumns + `
FROM pothole_records
WHERE id = $1`

const listBySubmissionSQL = `
SELECT ` + recordColumns + `
FROM pothole_records
WHERE submission_id = $1`

// CreateBatch inserts all records in one pgx batch. Callers wrap it in a
// transaction so the batch is all-or-nothing; a failed insert fails the
// whole submission.
func (r *Repo) CreateBatch(ctx context.Context, records []domain.PotholeRecord) error {
	if len(records) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(insertSQL,
			rec.ID, rec.SubmissionID, rec.Identifier, rec.Street, rec.Neighborhood,
			rec.Dimensions.Width, rec.Dimensions.Length, rec.Dimensions.Thickness,
			rec.Weather, rec.PhotoLinks, rec.RecordedBy, rec.RecordedAt,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return mapError(err, "pothole_record", uuid.Nil)
		}
	}

	return results.Close()
}

// Create inserts a single record.
func (r *Repo) Create(ctx context.Context, rec domain.PotholeRecord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertSQL,
		rec.ID, rec.SubmissionID, rec.Identifier, rec.Street, rec.Neighborhood,
		rec.Dimensions.Width, rec.Dimensions.Length, rec.Dimensions.Thickness,
		rec.Weather, rec.PhotoLinks, rec.RecordedBy, rec.RecordedAt,
	)
	if err != nil {
		return mapError(err, "pothole_record", rec.ID)
	}

	return nil
}

// GetByID returns a single record. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PotholeRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rec, err := scanRecord(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, mapError(err, "pothole_record", id)
	}

	return rec, nil
}

// ListBySubmission returns every record of a submission. Ordering is left to
// the caller: the numeric-suffix ordering of identifiers is a domain concern
// (domain.SortRecordsByIdentifier), not something SQL text ordering can do.
// Returns an empty slice (not nil) when the submission has no records.
func (r *Repo) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.PotholeRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listBySubmissionSQL, submissionID)
	if err != nil {
		return nil, fmt.Errorf("list records by submission: %w", err)
	}
	defer rows.Close()

	result, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("list records by submission: %w", err)
	}

	return result, nil
}

const countBySubmissionSQL = `
SELECT COUNT(*) FROM pothole_records WHERE submission_id = $1`

// CountBySubmission returns the number of records in a submission.
func (r *Repo) CountBySubmission(ctx context.Context, submissionID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int64
	if err := querier.QueryRow(ctx, countBySubmissionSQL, submissionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records by submission: %w", err)
	}

	return int(count), nil
}

const updateDimensionsSQL = `
UPDATE pothole_records
SET width = $1, length = $2, thickness = $3
WHERE id = $4`

// UpdateDimensions overwrites only the dimensions of a record.
// Returns domain.ErrNotFound if the record does not exist.
func (r *Repo) UpdateDimensions(ctx context.Context, id uuid.UUID, dims domain.Dimensions) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateDimensionsSQL, dims.Width, dims.Length, dims.Thickness, id)
	if err != nil {
		return mapError(err, "pothole_record", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pothole_record %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

const updateIdentifierSQL = `
UPDATE pothole_records SET identifier = $1 WHERE id = $2`

// UpdateIdentifier rewrites the human label of a record. Used by the
// renumbering pass after a deletion; must run inside a transaction.
func (r *Repo) UpdateIdentifier(ctx context.Context, id uuid.UUID, identifier string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateIdentifierSQL, identifier, id)
	if err != nil {
		return mapError(err, "pothole_record", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pothole_record %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

const updatePhotoLinksSQL = `
UPDATE pothole_records SET photo_links = $1 WHERE submission_id = $2`

// UpdatePhotoLinksBySubmission replaces the photo link list of every record
// in a submission. The caller computes the merged set; must run inside a
// transaction together with the read that produced it.
func (r *Repo) UpdatePhotoLinksBySubmission(ctx context.Context, submissionID uuid.UUID, links []string) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updatePhotoLinksSQL, links, submissionID)
	if err != nil {
		return 0, mapError(err, "submission", submissionID)
	}

	return tag.RowsAffected(), nil
}

const deleteSQL = `
DELETE FROM pothole_records WHERE id = $1`

// Delete removes a record by ID. Returns domain.ErrNotFound if absent.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return mapError(err, "pothole_record", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pothole_record %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

const deleteBySubmissionSQL = `
DELETE FROM pothole_records WHERE submission_id = $1`

// DeleteBySubmission removes every record of a submission and returns the
// number of rows deleted.
func (r *Repo) DeleteBySubmission(ctx context.Context, submissionID uuid.UUID) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteBySubmissionSQL, submissionID)
	if err != nil {
		return 0, mapError(err, "submission", submissionID)
	}

	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanRecord(row pgx.Row) (*domain.PotholeRecord, error) {
	var rec domain.PotholeRecord
	err := row.Scan(
		&rec.ID, &rec.SubmissionID, &rec.Identifier, &rec.Street, &rec.Neighborhood,
		&rec.Dimensions.Width, &rec.Dimensions.Length, &rec.Dimensions.Thickness,
		&rec.Weather, &rec.PhotoLinks, &rec.RecordedBy, &rec.RecordedAt,
	)
	if err != nil {
		return nil, err
	}
	if rec.PhotoLinks == nil {
		rec.PhotoLinks = []string{}
	}
	return &rec, nil
}

func scanRecords(rows pgx.Rows) ([]domain.PotholeRecord, error) {
	var result []domain.PotholeRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.PotholeRecord{}
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
