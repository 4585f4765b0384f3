// Package submission implements the creation of pothole visits: one photo
// upload plus an all-or-nothing batch of measurement records.
package submission

import (
	"context"
	"log/slog"
	"time"

	"github.com/viamunicipal/potholes-backend/internal/adapter/gcs"
	"github.com/viamunicipal/potholes-backend/internal/config"
	"github.com/viamunicipal/potholes-backend/internal/domain"
)

// recordRepo defines the record repository interface needed by submission service.
type recordRepo interface {
	CreateBatch(ctx context.Context, records []domain.PotholeRecord) error
}

// txManager defines the transaction manager interface needed by submission service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// photoStore defines the blob storage interface needed by submission service.
type photoStore interface {
	Upload(ctx context.Context, street string, day time.Time, files []gcs.File) ([]string, error)
}

// Service implements submission creation.
type Service struct {
	log     *slog.Logger
	records recordRepo
	tx      txManager
	photos  photoStore
	cfg     config.ReportConfig
	loc     *time.Location
	now     func() time.Time
}

// NewService creates a new submission service instance.
func NewService(
	logger *slog.Logger,
	records recordRepo,
	tx txManager,
	photos photoStore,
	cfg config.ReportConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "submission"),
		records: records,
		tx:      tx,
		photos:  photos,
		cfg:     cfg,
		loc:     domain.ParseTimezone(cfg.Timezone),
		now:     time.Now,
	}
}
