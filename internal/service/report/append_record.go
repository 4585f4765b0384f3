package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/viamunicipal/potholes-backend/internal/domain"
	"github.com/viamunicipal/potholes-backend/pkg/ctxutil"
)

// AppendRecord adds one measurement to an existing visit. The new record
// takes identifier count+1 and copies the visit-level fields from a current
// member. Count and insert run in one transaction so a concurrent delete
// cannot produce a duplicate or gapped identifier.
// Returns ErrNotFound when the submission has no records.
func (s *Service) AppendRecord(ctx context.Context, submissionID uuid.UUID, measurement domain.Dimensions) (*domain.PotholeRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	measurement = measurement.Normalize()
	if measurement.IsZero() {
		return nil, domain.NewValidationError("measurement", "required")
	}

	var created domain.PotholeRecord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		members, err := s.records.ListBySubmission(txCtx, submissionID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		if len(members) == 0 {
			return domain.ErrNotFound
		}

		head := members[0]
		if err := s.checkMutable(&head, userID); err != nil {
			return err
		}
		if len(members) >= s.cfg.MaxRecords {
			return domain.NewValidationError("measurement", fmt.Sprintf("visit already has %d records", len(members)))
		}

		created = domain.PotholeRecord{
			ID:           uuid.New(),
			SubmissionID: submissionID,
			Identifier:   domain.BuildIdentifier(s.cfg.IdentifierPrefix, len(members)+1),
			Street:       head.Street,
			Neighborhood: head.Neighborhood,
			Dimensions:   measurement,
			Weather:      head.Weather,
			PhotoLinks:   head.PhotoLinks,
			RecordedBy:   head.RecordedBy,
			RecordedAt:   head.RecordedAt,
		}

		if err := s.records.Create(txCtx, created); err != nil {
			return fmt.Errorf("create record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "record appended",
		slog.String("submission_id", submissionID.String()),
		slog.String("record_id", created.ID.String()),
		slog.String("identifier", created.Identifier),
	)

	return &created, nil
}
