// Package refcatalog serves the street and neighborhood reference lists used
// by the report forms, caching the upstream spreadsheet with per-list TTLs.
package refcatalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/viamunicipal/potholes-backend/internal/config"
)

// catalogSource defines the upstream reference list reader needed by the
// refcatalog service.
type catalogSource interface {
	FetchStreets(ctx context.Context) ([]string, error)
	FetchNeighborhoods(ctx context.Context) ([]string, error)
}

// cacheEntry holds one fetched list and its fetch time.
type cacheEntry struct {
	values    []string
	fetchedAt time.Time
}

func (e *cacheEntry) fresh(now time.Time, ttl time.Duration) bool {
	return e.values != nil && now.Sub(e.fetchedAt) < ttl
}

// Service implements catalog queries over a TTL cache. Expired entries are
// refetched on demand; when the upstream is down an expired entry is served
// rather than failing the request.
type Service struct {
	log    *slog.Logger
	source catalogSource
	cfg    config.CatalogConfig
	now    func() time.Time

	mu            sync.Mutex
	streets       cacheEntry
	neighborhoods cacheEntry
}

// NewService creates a new refcatalog service instance.
func NewService(logger *slog.Logger, source catalogSource, cfg config.CatalogConfig) *Service {
	return &Service{
		log:    logger.With("service", "refcatalog"),
		source: source,
		cfg:    cfg,
		now:    time.Now,
	}
}
