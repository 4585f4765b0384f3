package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/viamunicipal/potholes-backend/internal/config"
	"github.com/viamunicipal/potholes-backend/internal/transport/middleware"
)

// tokenValidator resolves a bearer token to a user ID.
type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// RouterDeps carries everything the HTTP router needs.
type RouterDeps struct {
	Auth      *AuthHandler
	Report    *ReportHandler
	Catalog   *CatalogHandler
	Health    *HealthHandler
	Validator tokenValidator
	Limiter   *middleware.RateLimiter
	Logger    *slog.Logger
	CORS      config.CORSConfig
	// AuthRatePerMin bounds login and registration attempts per client IP.
	AuthRatePerMin int
}

// NewRouter assembles the HTTP routes and middleware chain.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Probes stay outside the API chain.
	mux.HandleFunc("GET /live", deps.Health.Live)
	mux.HandleFunc("GET /ready", deps.Health.Ready)
	mux.HandleFunc("GET /health", deps.Health.Health)

	authLimit := middleware.Chain(deps.Limiter.Limit(deps.AuthRatePerMin))
	mux.Handle("POST /api/auth/login", authLimit(http.HandlerFunc(deps.Auth.Login)))
	mux.Handle("POST /api/auth/register", authLimit(http.HandlerFunc(deps.Auth.Register)))

	mux.HandleFunc("POST /api/submissions", deps.Report.CreateSubmission)
	mux.HandleFunc("DELETE /api/submissions/{submissionId}", deps.Report.DeleteSubmission)
	mux.HandleFunc("POST /api/submissions/{submissionId}/records", deps.Report.AppendRecord)
	mux.HandleFunc("PATCH /api/submissions/{submissionId}/photos", deps.Report.AppendPhotos)

	mux.HandleFunc("GET /api/records", deps.Report.ListRecords)
	mux.HandleFunc("PATCH /api/records/{id}/dimensions", deps.Report.UpdateDimensions)
	mux.HandleFunc("DELETE /api/records/{id}", deps.Report.DeleteRecord)

	mux.HandleFunc("GET /api/visits", deps.Report.ListVisits)

	mux.HandleFunc("GET /api/streets", deps.Catalog.SearchStreets)
	mux.HandleFunc("GET /api/neighborhoods", deps.Catalog.Neighborhoods)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(deps.Logger),
		middleware.CORS(deps.CORS),
		middleware.Logger(deps.Logger),
		middleware.Auth(deps.Validator),
	)
	return chain(mux)
}
