// Package report implements listing and mutation of pothole visits:
// dimension edits, record append, photo append, and deletes with dense
// renumbering. Every mutation is limited to the reporting user and to
// records still inside their same-day edit window.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/viamunicipal/potholes-backend/internal/adapter/gcs"
	"github.com/viamunicipal/potholes-backend/internal/adapter/postgres/record"
	"github.com/viamunicipal/potholes-backend/internal/config"
	"github.com/viamunicipal/potholes-backend/internal/domain"
)

// recordRepo defines the record repository interface needed by report service.
type recordRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PotholeRecord, error)
	ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.PotholeRecord, error)
	CountBySubmission(ctx context.Context, submissionID uuid.UUID) (int, error)
	Create(ctx context.Context, rec domain.PotholeRecord) error
	UpdateDimensions(ctx context.Context, id uuid.UUID, dims domain.Dimensions) error
	UpdateIdentifier(ctx context.Context, id uuid.UUID, identifier string) error
	UpdatePhotoLinksBySubmission(ctx context.Context, submissionID uuid.UUID, links []string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySubmission(ctx context.Context, submissionID uuid.UUID) (int64, error)
	List(ctx context.Context, filter record.Filter) ([]domain.PotholeRecord, error)
}

// txManager defines the transaction manager interface needed by report service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// photoStore defines the blob storage interface needed by report service.
type photoStore interface {
	Upload(ctx context.Context, street string, day time.Time, files []gcs.File) ([]string, error)
}

// Service implements visit listing and mutation operations.
type Service struct {
	log     *slog.Logger
	records recordRepo
	tx      txManager
	photos  photoStore
	cfg     config.ReportConfig
	loc     *time.Location
	now     func() time.Time
}

// NewService creates a new report service instance.
func NewService(
	logger *slog.Logger,
	records recordRepo,
	tx txManager,
	photos photoStore,
	cfg config.ReportConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "report"),
		records: records,
		tx:      tx,
		photos:  photos,
		cfg:     cfg,
		loc:     domain.ParseTimezone(cfg.Timezone),
		now:     time.Now,
	}
}

// checkMutable gates every mutation: the caller must own the record and the
// record's edit window must still be open.
func (s *Service) checkMutable(rec *domain.PotholeRecord, userID uuid.UUID) error {
	if rec.RecordedBy != userID {
		return domain.ErrForbidden
	}
	if !domain.IsEditable(*rec, s.now(), s.loc) {
		return fmt.Errorf("edit window closed: %w", domain.ErrForbidden)
	}
	return nil
}
