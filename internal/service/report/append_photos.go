package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/viamunicipal/potholes-backend/internal/adapter/gcs"
	"github.com/viamunicipal/potholes-backend/internal/domain"
	"github.com/viamunicipal/potholes-backend/pkg/ctxutil"
)

// AppendPhotos uploads new photos and unions their links into every record
// of the visit. The union preserves existing order and drops duplicates, so
// re-sending the same links leaves the visit unchanged. Uploads finish
// before the store is touched; the link fan-out runs in one transaction.
// Returns the merged link list.
func (s *Service) AppendPhotos(ctx context.Context, submissionID uuid.UUID, files []gcs.File) ([]string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if len(files) == 0 {
		return nil, domain.NewValidationError("photos", "at least one required")
	}
	if len(files) > s.cfg.MaxPhotos {
		return nil, domain.NewValidationError("photos", fmt.Sprintf("at most %d allowed", s.cfg.MaxPhotos))
	}

	members, err := s.records.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("report.AppendPhotos list members: %w", err)
	}
	if len(members) == 0 {
		return nil, domain.ErrNotFound
	}

	head := members[0]
	if err := s.checkMutable(&head, userID); err != nil {
		return nil, err
	}

	newLinks, err := s.photos.Upload(ctx, head.Street, s.now().In(s.loc), files)
	if err != nil {
		return nil, fmt.Errorf("report.AppendPhotos upload: %w", err)
	}

	merged := domain.MergePhotoLinks(head.PhotoLinks, newLinks)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		updated, err := s.records.UpdatePhotoLinksBySubmission(txCtx, submissionID, merged)
		if err != nil {
			return fmt.Errorf("fan out links: %w", err)
		}
		if updated == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "photos appended",
		slog.String("submission_id", submissionID.String()),
		slog.Int("uploaded", len(newLinks)),
		slog.Int("total_links", len(merged)),
	)

	return merged, nil
}
