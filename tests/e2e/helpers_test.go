//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/viamunicipal/potholes-backend/internal/adapter/gcs"
	"github.com/viamunicipal/potholes-backend/internal/adapter/postgres"
	"github.com/viamunicipal/potholes-backend/internal/adapter/postgres/record"
	"github.com/viamunicipal/potholes-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/viamunicipal/potholes-backend/internal/adapter/postgres/user"
	authpkg "github.com/viamunicipal/potholes-backend/internal/auth"
	"github.com/viamunicipal/potholes-backend/internal/config"
	authsvc "github.com/viamunicipal/potholes-backend/internal/service/auth"
	"github.com/viamunicipal/potholes-backend/internal/service/refcatalog"
	"github.com/viamunicipal/potholes-backend/internal/service/report"
	"github.com/viamunicipal/potholes-backend/internal/service/submission"
	"github.com/viamunicipal/potholes-backend/internal/transport/middleware"
	"github.com/viamunicipal/potholes-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// Fake blob storage and catalog source. E2E tests exercise the full HTTP
// and database stack but must not reach Google APIs.
// ---------------------------------------------------------------------------

type fakePhotoStore struct{}

func (f *fakePhotoStore) Upload(_ context.Context, street string, day time.Time, files []gcs.File) ([]string, error) {
	links := make([]string, 0, len(files))
	for _, file := range files {
		key := gcs.ObjectPrefix(street, day) + "/" + gcs.SanitizeFilename(file.Name)
		links = append(links, "https://storage.test/"+key)
	}
	return links, nil
}

type fakeCatalogSource struct {
	streets       []string
	neighborhoods []string
}

func (f *fakeCatalogSource) FetchStreets(_ context.Context) ([]string, error) {
	return f.streets, nil
}

func (f *fakeCatalogSource) FetchNeighborhoods(_ context.Context) ([]string, error) {
	return f.neighborhoods, nil
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	// 1. Get pool from testcontainers-backed helper.
	pool := testhelper.SetupTestDB(t)

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	// 3. Repositories.
	recordRepo := record.New(pool)
	userRepo := userrepo.New(pool)

	// 4. JWT manager with a test secret (>= 32 chars).
	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "potholes-e2e", 15*time.Minute)

	// 5. Services. MinCost keeps registration fast.
	authService := authsvc.NewService(logger, userRepo, jwtMgr, config.AuthConfig{
		JWTSecret:      "test-secret-at-least-32-chars-long!!",
		JWTIssuer:      "potholes-e2e",
		AccessTokenTTL: 15 * time.Minute,
		BcryptCost:     bcrypt.MinCost,
	})

	reportCfg := config.ReportConfig{
		Timezone:         "America/Sao_Paulo",
		IdentifierPrefix: "REPAIR",
		MaxRecords:       50,
		MaxPhotos:        20,
		MaxPhotoSizeMB:   10,
	}
	photos := &fakePhotoStore{}
	submissionService := submission.NewService(logger, recordRepo, txm, photos, reportCfg)
	reportService := report.NewService(logger, recordRepo, txm, photos, reportCfg)

	catalogService := refcatalog.NewService(logger, &fakeCatalogSource{
		streets:       []string{"RUA DAS FLORES", "RUA SETE DE SETEMBRO", "AVENIDA BRASIL"},
		neighborhoods: []string{"CENTRO", "VILA NOVA"},
	}, config.CatalogConfig{
		StreetsTTL:       time.Hour,
		NeighborhoodsTTL: time.Hour,
		MaxStreetResults: 10,
	})

	// 6. Router with the production middleware chain.
	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	router := rest.NewRouter(rest.RouterDeps{
		Auth:           rest.NewAuthHandler(authService, logger),
		Report:         rest.NewReportHandler(submissionService, reportService, logger, 64<<20),
		Catalog:        rest.NewCatalogHandler(catalogService, logger),
		Health:         rest.NewHealthHandler(pool, "test-version"),
		Validator:      authService,
		Limiter:        limiter,
		Logger:         logger,
		CORS: config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		},
		AuthRatePerMin: 1000,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// ---------------------------------------------------------------------------
// HTTP helpers.
// ---------------------------------------------------------------------------

// doJSON sends a JSON request and returns status + decoded body.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "marshal request body")
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err, "create request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err, "do request")
	defer resp.Body.Close()

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && err != io.EOF {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, result
}

// createSubmission posts a multipart visit with the given measurements and
// photo file names, returning status + decoded body.
func (ts *testServer) createSubmission(t *testing.T, token, street string, measurements []map[string]string, photoNames []string) (int, map[string]any) {
	t.Helper()

	data := map[string]any{
		"street":       street,
		"neighborhood": "centro",
		"weather":      "clear",
		"measurements": measurements,
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err, "marshal data part")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("data", string(jsonData)))
	for _, name := range photoNames {
		part, err := w.CreateFormFile("photos", name)
		require.NoError(t, err, "create photo part")
		_, err = part.Write([]byte("jpeg-bytes-" + name))
		require.NoError(t, err, "write photo part")
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/submissions", &buf)
	require.NoError(t, err, "create request")
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err, "do request")
	defer resp.Body.Close()

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && err != io.EOF {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, result
}

// buildPhotoForm builds a multipart body with a single "photos" file part.
func buildPhotoForm(t *testing.T, photoName string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("photos", photoName)
	require.NoError(t, err, "create photo part")
	_, err = part.Write([]byte("jpeg-bytes-" + photoName))
	require.NoError(t, err, "write photo part")
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

var userCounter int

// registerAndLogin creates a fresh crew account through the API and returns
// its access token.
func registerAndLogin(t *testing.T, ts *testServer) string {
	t.Helper()

	userCounter++
	username := fmt.Sprintf("crew-%d-%d", time.Now().UnixNano(), userCounter)

	status, body := ts.doJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username":    username,
		"displayName": "Equipe de Campo",
		"password":    "correct-horse-battery",
	}, "")
	require.Equal(t, http.StatusCreated, status, "register: %v", body)

	token, ok := body["accessToken"].(string)
	require.True(t, ok, "expected accessToken in register response")
	require.NotEmpty(t, token)
	return token
}

// visitRecords extracts the records array from the first visit in a
// /api/visits response.
func visitRecords(t *testing.T, body map[string]any) []map[string]any {
	t.Helper()

	visits, ok := body["visits"].([]any)
	require.True(t, ok, "expected visits array")
	require.NotEmpty(t, visits)

	first, ok := visits[0].(map[string]any)
	require.True(t, ok)
	rawRecords, ok := first["records"].([]any)
	require.True(t, ok, "expected records array in visit")

	records := make([]map[string]any, 0, len(rawRecords))
	for _, r := range rawRecords {
		rec, ok := r.(map[string]any)
		require.True(t, ok)
		records = append(records, rec)
	}
	return records
}
