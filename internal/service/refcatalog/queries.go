package refcatalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/viamunicipal/potholes-backend/internal/domain"
)

// SearchStreets returns up to the configured number of street suggestions
// matching the query. Matching is accent- and case-insensitive and looks for
// the query as a prefix of any word in the street name. An empty query
// returns an empty result.
func (s *Service) SearchStreets(ctx context.Context, query string) ([]string, error) {
	query = domain.FoldAccents(strings.TrimSpace(query))
	if query == "" {
		return []string{}, nil
	}

	streets, err := s.cachedStreets(ctx)
	if err != nil {
		return nil, err
	}

	limit := s.cfg.MaxStreetResults
	matches := make([]string, 0, limit)
	for _, street := range streets {
		if !matchesQuery(street, query) {
			continue
		}
		matches = append(matches, street)
		if len(matches) >= limit {
			break
		}
	}
	return matches, nil
}

// Neighborhoods returns the full neighborhood list.
func (s *Service) Neighborhoods(ctx context.Context) ([]string, error) {
	return s.cachedNeighborhoods(ctx)
}

// matchesQuery reports whether the folded query prefixes the street name or
// any word inside it, so "sete" finds "RUA SETE DE SETEMBRO".
func matchesQuery(street, foldedQuery string) bool {
	folded := domain.FoldAccents(street)
	if strings.HasPrefix(folded, foldedQuery) {
		return true
	}
	for _, word := range strings.Fields(folded) {
		if strings.HasPrefix(word, foldedQuery) {
			return true
		}
	}
	return false
}

func (s *Service) cachedStreets(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.streets.fresh(now, s.cfg.StreetsTTL) {
		return s.streets.values, nil
	}

	values, err := s.source.FetchStreets(ctx)
	if err != nil {
		// Serve the stale list if we have one.
		if s.streets.values != nil {
			s.log.WarnContext(ctx, "street fetch failed, serving stale cache",
				slog.String("error", err.Error()))
			return s.streets.values, nil
		}
		return nil, fmt.Errorf("fetch streets: %w", err)
	}

	s.streets = cacheEntry{values: values, fetchedAt: now}
	s.log.InfoContext(ctx, "street cache refreshed", slog.Int("count", len(values)))
	return values, nil
}

func (s *Service) cachedNeighborhoods(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.neighborhoods.fresh(now, s.cfg.NeighborhoodsTTL) {
		return s.neighborhoods.values, nil
	}

	values, err := s.source.FetchNeighborhoods(ctx)
	if err != nil {
		if s.neighborhoods.values != nil {
			s.log.WarnContext(ctx, "neighborhood fetch failed, serving stale cache",
				slog.String("error", err.Error()))
			return s.neighborhoods.values, nil
		}
		return nil, fmt.Errorf("fetch neighborhoods: %w", err)
	}

	s.neighborhoods = cacheEntry{values: values, fetchedAt: now}
	s.log.InfoContext(ctx, "neighborhood cache refreshed", slog.Int("count", len(values)))
	return values, nil
}
