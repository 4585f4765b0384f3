package submission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/viamunicipal/potholes-backend/internal/domain"
	"github.com/viamunicipal/potholes-backend/pkg/ctxutil"
)

// Create stores one visit: uploads the photos, then inserts one record per
// measurement in a single transaction. Identifiers follow input order,
// "REPAIR 1".."REPAIR N". Photo upload happens before any database write,
// so an upload failure leaves the store untouched; a failed batch insert
// rolls back completely and never creates a partial visit.
func (s *Service) Create(ctx context.Context, input CreateInput) (uuid.UUID, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, 0, domain.ErrUnauthorized
	}

	input.Normalize()
	if err := input.Validate(s.cfg.MaxRecords, s.cfg.MaxPhotos); err != nil {
		return uuid.Nil, 0, err
	}

	now := s.now()

	// Step 1: Upload photos. Aborts before any DB write on failure.
	photoLinks := []string{}
	if len(input.Photos) > 0 {
		links, err := s.photos.Upload(ctx, input.Street, now.In(s.loc), input.Photos)
		if err != nil {
			return uuid.Nil, 0, fmt.Errorf("submission.Create upload photos: %w", err)
		}
		photoLinks = links
	}

	// Step 2: Build one record per measurement.
	submissionID := uuid.New()
	recordedAt := now.UTC()
	records := make([]domain.PotholeRecord, 0, len(input.Measurements))
	for n, dims := range input.Measurements {
		records = append(records, domain.PotholeRecord{
			ID:           uuid.New(),
			SubmissionID: submissionID,
			Identifier:   domain.BuildIdentifier(s.cfg.IdentifierPrefix, n+1),
			Street:       input.Street,
			Neighborhood: input.Neighborhood,
			Dimensions:   dims,
			Weather:      input.Weather,
			PhotoLinks:   photoLinks,
			RecordedBy:   userID,
			RecordedAt:   recordedAt,
		})
	}

	// Step 3: Single atomic batch insert.
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.records.CreateBatch(txCtx, records)
	})
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("submission.Create insert records: %w", err)
	}

	s.log.InfoContext(ctx, "submission created",
		slog.String("submission_id", submissionID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("records", len(records)),
		slog.Int("photos", len(photoLinks)),
	)

	return submissionID, len(records), nil
}
