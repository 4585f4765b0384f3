package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/viamunicipal/potholes-backend/internal/adapter/postgres/record"
	"github.com/viamunicipal/potholes-backend/internal/domain"
	"github.com/viamunicipal/potholes-backend/pkg/ctxutil"
)

// ListFilter narrows List and ListVisits results.
type ListFilter struct {
	// Street matches as a case-insensitive substring.
	Street       string
	SubmissionID *uuid.UUID
}

// List returns the flat records of the authenticated user, most recent
// visit first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]domain.PotholeRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	records, err := s.records.List(ctx, record.Filter{
		RecordedBy:   userID,
		Street:       filter.Street,
		SubmissionID: filter.SubmissionID,
	})
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	return records, nil
}

// ListVisits returns the user's records grouped by submission, most recent
// visit first, members ordered by identifier.
func (s *Service) ListVisits(ctx context.Context, filter ListFilter) ([]domain.Visit, error) {
	records, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return domain.Visits(records), nil
}
