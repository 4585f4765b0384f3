package record

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/viamunicipal/potholes-backend/internal/adapter/postgres"
	"github.com/viamunicipal/potholes-backend/internal/domain"
)

// Filter defines parameters for listing a user's pothole records.
type Filter struct {
	// RecordedBy restricts results to one user's records. Required for
	// the report page; listing is always per-user.
	RecordedBy uuid.UUID

	// Street performs ILIKE '%...%' on the street name. Empty means no filter.
	Street string

	// SubmissionID restricts results to one visit.
	SubmissionID *uuid.UUID

	// Limit is the maximum number of records to return. Default: 500, max: 2000.
	Limit int

	// Offset is the number of records to skip.
	Offset int
}

const (
	defaultLimit = 500
	maxLimit     = 2000
)

// normalize applies defaults and clamps values.
func (f *Filter) normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// List returns the user's records matching the filter, most recent first.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, filter Filter) ([]domain.PotholeRecord, error) {
	filter.normalize()

	builder := sq.Select(
		"id", "submission_id", "identifier", "street", "neighborhood",
		"width", "length", "thickness", "weather", "photo_links", "recorded_by", "recorded_at",
	).
		From("pothole_records").
		Where(sq.Eq{"recorded_by": filter.RecordedBy}).
		OrderBy("recorded_at DESC", "identifier ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		PlaceholderFormat(sq.Dollar)

	if filter.Street != "" {
		builder = builder.Where(sq.ILike{"street": "%" + filter.Street + "%"})
	}
	if filter.SubmissionID != nil {
		builder = builder.Where(sq.Eq{"submission_id": *filter.SubmissionID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	result, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	return result, nil
}
