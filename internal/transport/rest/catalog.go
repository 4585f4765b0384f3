package rest

import (
	"context"
	"log/slog"
	"net/http"
)

// catalogService defines the minimal interface needed for the reference
// list endpoints.
type catalogService interface {
	SearchStreets(ctx context.Context, query string) ([]string, error)
	Neighborhoods(ctx context.Context) ([]string, error)
}

// CatalogHandler serves the street and neighborhood reference lists.
type CatalogHandler struct {
	catalog catalogService
	log     *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalog catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		log:     logger.With("handler", "catalog"),
	}
}

// SearchStreets handles GET /api/streets?q=.
func (h *CatalogHandler) SearchStreets(w http.ResponseWriter, r *http.Request) {
	streets, err := h.catalog.SearchStreets(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	if streets == nil {
		streets = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"streets": streets})
}

// Neighborhoods handles GET /api/neighborhoods.
func (h *CatalogHandler) Neighborhoods(w http.ResponseWriter, r *http.Request) {
	neighborhoods, err := h.catalog.Neighborhoods(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	if neighborhoods == nil {
		neighborhoods = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"neighborhoods": neighborhoods})
}
