package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/viamunicipal/potholes-backend/internal/domain"
	"github.com/viamunicipal/potholes-backend/pkg/ctxutil"
)

// UpdateDimensions overwrites the dimensions of a single record.
// Returns ErrNotFound for an unknown record and ErrForbidden when the record
// belongs to another user or its edit window has closed. No other field
// changes.
func (s *Service) UpdateDimensions(ctx context.Context, recordID uuid.UUID, dims domain.Dimensions) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	dims = dims.Normalize()
	if dims.IsZero() {
		return domain.NewValidationError("dimensions", "at least one measurement required")
	}

	rec, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return fmt.Errorf("report.UpdateDimensions get record: %w", err)
	}
	if err := s.checkMutable(rec, userID); err != nil {
		return err
	}

	if err := s.records.UpdateDimensions(ctx, recordID, dims); err != nil {
		return fmt.Errorf("report.UpdateDimensions update: %w", err)
	}

	s.log.InfoContext(ctx, "dimensions updated",
		slog.String("record_id", recordID.String()),
		slog.String("user_id", userID.String()),
	)

	return nil
}
