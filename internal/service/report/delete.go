package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/viamunicipal/potholes-backend/internal/domain"
	"github.com/viamunicipal/potholes-backend/pkg/ctxutil"
)

// DeleteRecord removes one record from a visit and renumbers the remaining
// members back to a dense 1..N-1 sequence by their current numeric suffix.
// Delete and renumber run in one transaction; only records whose identifier
// actually changes are written. Returns the number of records left.
func (s *Service) DeleteRecord(ctx context.Context, recordID, submissionID uuid.UUID) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	remaining := 0
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		members, err := s.records.ListBySubmission(txCtx, submissionID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}

		var target *domain.PotholeRecord
		for n := range members {
			if members[n].ID == recordID {
				target = &members[n]
				break
			}
		}
		if target == nil {
			return domain.ErrNotFound
		}
		if err := s.checkMutable(target, userID); err != nil {
			return err
		}

		if err := s.records.Delete(txCtx, recordID); err != nil {
			return fmt.Errorf("delete record: %w", err)
		}

		// Renumber survivors to 1..N-1 in current suffix order. Ascending
		// order means each target label was freed by the delete or by the
		// previous update, so the unique constraint never trips.
		survivors := make([]domain.PotholeRecord, 0, len(members)-1)
		for _, m := range members {
			if m.ID != recordID {
				survivors = append(survivors, m)
			}
		}
		domain.SortRecordsByIdentifier(survivors)

		for n, m := range survivors {
			want := domain.BuildIdentifier(s.cfg.IdentifierPrefix, n+1)
			if m.Identifier == want {
				continue
			}
			if err := s.records.UpdateIdentifier(txCtx, m.ID, want); err != nil {
				return fmt.Errorf("renumber %s: %w", m.ID, err)
			}
		}

		remaining = len(survivors)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "record deleted",
		slog.String("record_id", recordID.String()),
		slog.String("submission_id", submissionID.String()),
		slog.Int("remaining", remaining),
	)

	return remaining, nil
}

// DeleteSubmission removes every record of a visit atomically.
func (s *Service) DeleteSubmission(ctx context.Context, submissionID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		members, err := s.records.ListBySubmission(txCtx, submissionID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		if len(members) == 0 {
			return domain.ErrNotFound
		}
		if err := s.checkMutable(&members[0], userID); err != nil {
			return err
		}

		if _, err := s.records.DeleteBySubmission(txCtx, submissionID); err != nil {
			return fmt.Errorf("delete submission: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "submission deleted",
		slog.String("submission_id", submissionID.String()),
		slog.String("user_id", userID.String()),
	)

	return nil
}
