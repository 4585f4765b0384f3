package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/viamunicipal/potholes-backend/internal/adapter/gcs"
	"github.com/viamunicipal/potholes-backend/internal/domain"
	"github.com/viamunicipal/potholes-backend/internal/service/report"
	"github.com/viamunicipal/potholes-backend/internal/service/submission"
)

// submissionService defines the minimal interface needed for creating visits.
type submissionService interface {
	Create(ctx context.Context, input submission.CreateInput) (uuid.UUID, int, error)
}

// reportService defines the minimal interface needed for listing and
// mutating visits.
type reportService interface {
	List(ctx context.Context, filter report.ListFilter) ([]domain.PotholeRecord, error)
	ListVisits(ctx context.Context, filter report.ListFilter) ([]domain.Visit, error)
	UpdateDimensions(ctx context.Context, recordID uuid.UUID, dims domain.Dimensions) error
	AppendRecord(ctx context.Context, submissionID uuid.UUID, measurement domain.Dimensions) (*domain.PotholeRecord, error)
	AppendPhotos(ctx context.Context, submissionID uuid.UUID, files []gcs.File) ([]string, error)
	DeleteRecord(ctx context.Context, recordID, submissionID uuid.UUID) (int, error)
	DeleteSubmission(ctx context.Context, submissionID uuid.UUID) error
}

// ReportHandler serves the visit submission and mutation endpoints.
type ReportHandler struct {
	submissions    submissionService
	reports        reportService
	log            *slog.Logger
	maxUploadBytes int64
}

// NewReportHandler creates a ReportHandler. maxUploadBytes bounds the total
// size of a multipart request body.
func NewReportHandler(submissions submissionService, reports reportService, logger *slog.Logger, maxUploadBytes int64) *ReportHandler {
	return &ReportHandler{
		submissions:    submissions,
		reports:        reports,
		log:            logger.With("handler", "report"),
		maxUploadBytes: maxUploadBytes,
	}
}

type dimensionsPayload struct {
	Width     string `json:"width"`
	Length    string `json:"length"`
	Thickness string `json:"thickness"`
}

func (p dimensionsPayload) toDomain() domain.Dimensions {
	return domain.Dimensions{Width: p.Width, Length: p.Length, Thickness: p.Thickness}
}

type submissionData struct {
	Street       string              `json:"street"`
	Neighborhood string              `json:"neighborhood"`
	Weather      string              `json:"weather"`
	Measurements []dimensionsPayload `json:"measurements"`
}

type recordResponse struct {
	ID           string            `json:"id"`
	SubmissionID string            `json:"submissionId"`
	Identifier   string            `json:"identifier"`
	Street       string            `json:"street"`
	Neighborhood string            `json:"neighborhood"`
	Dimensions   dimensionsPayload `json:"dimensions"`
	Weather      string            `json:"weather"`
	PhotoLinks   []string          `json:"photoLinks"`
	RecordedAt   time.Time         `json:"recordedAt"`
}

type visitResponse struct {
	SubmissionID string           `json:"submissionId"`
	Street       string           `json:"street"`
	Neighborhood string           `json:"neighborhood"`
	Weather      string           `json:"weather"`
	PhotoLinks   []string         `json:"photoLinks"`
	RecordedAt   time.Time        `json:"recordedAt"`
	Records      []recordResponse `json:"records"`
}

// CreateSubmission handles POST /api/submissions. The body is multipart:
// a "data" part with the visit JSON and zero or more "photos" file parts.
func (h *ReportHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	dataPart := r.FormValue("data")
	if dataPart == "" {
		writeError(w, http.StatusBadRequest, "missing data part")
		return
	}
	var data submissionData
	if err := json.Unmarshal([]byte(dataPart), &data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid data JSON")
		return
	}

	photos, closeFiles, err := openPhotoParts(r.MultipartForm.File["photos"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable photo part")
		return
	}
	defer closeFiles()

	measurements := make([]domain.Dimensions, 0, len(data.Measurements))
	for _, m := range data.Measurements {
		measurements = append(measurements, m.toDomain())
	}

	submissionID, created, err := h.submissions.Create(r.Context(), submission.CreateInput{
		Street:       data.Street,
		Neighborhood: data.Neighborhood,
		Weather:      data.Weather,
		Measurements: measurements,
		Photos:       photos,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"submissionId": submissionID.String(),
		"created":      created,
	})
}

// ListRecords handles GET /api/records?street=.
func (h *ReportHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter, ok := listFilterFromQuery(w, r)
	if !ok {
		return
	}

	records, err := h.reports.List(r.Context(), filter)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordResponse(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": out})
}

// ListVisits handles GET /api/visits?street=.
func (h *ReportHandler) ListVisits(w http.ResponseWriter, r *http.Request) {
	filter, ok := listFilterFromQuery(w, r)
	if !ok {
		return
	}

	visits, err := h.reports.ListVisits(r.Context(), filter)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]visitResponse, 0, len(visits))
	for _, v := range visits {
		out = append(out, toVisitResponse(v))
	}
	writeJSON(w, http.StatusOK, map[string]any{"visits": out})
}

// UpdateDimensions handles PATCH /api/records/{id}/dimensions.
func (h *ReportHandler) UpdateDimensions(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dimensionsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.reports.UpdateDimensions(r.Context(), recordID, req.toDomain()); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AppendRecord handles POST /api/submissions/{submissionId}/records.
func (h *ReportHandler) AppendRecord(w http.ResponseWriter, r *http.Request) {
	submissionID, ok := pathUUID(w, r, "submissionId")
	if !ok {
		return
	}

	var req dimensionsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.reports.AppendRecord(r.Context(), submissionID, req.toDomain())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(*created))
}

// AppendPhotos handles PATCH /api/submissions/{submissionId}/photos.
// The multipart body carries "photos" file parts.
func (h *ReportHandler) AppendPhotos(w http.ResponseWriter, r *http.Request) {
	submissionID, ok := pathUUID(w, r, "submissionId")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	photos, closeFiles, err := openPhotoParts(r.MultipartForm.File["photos"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable photo part")
		return
	}
	defer closeFiles()

	links, err := h.reports.AppendPhotos(r.Context(), submissionID, photos)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"photoLinks": links})
}

// DeleteRecord handles DELETE /api/records/{id}. The body carries the
// submission the record belongs to.
func (h *ReportHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		SubmissionID string `json:"submissionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	submissionID, err := uuid.Parse(req.SubmissionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid submissionId")
		return
	}

	remaining, err := h.reports.DeleteRecord(r.Context(), recordID, submissionID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"remaining": remaining})
}

// DeleteSubmission handles DELETE /api/submissions/{submissionId}.
func (h *ReportHandler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID, ok := pathUUID(w, r, "submissionId")
	if !ok {
		return
	}

	if err := h.reports.DeleteSubmission(r.Context(), submissionID); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func listFilterFromQuery(w http.ResponseWriter, r *http.Request) (report.ListFilter, bool) {
	filter := report.ListFilter{Street: r.URL.Query().Get("street")}

	if raw := r.URL.Query().Get("submissionId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid submissionId")
			return report.ListFilter{}, false
		}
		filter.SubmissionID = &id
	}
	return filter, true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// openPhotoParts opens every uploaded file. The returned closer releases
// them once the service has consumed the contents.
func openPhotoParts(headers []*multipart.FileHeader) ([]gcs.File, func(), error) {
	files := make([]gcs.File, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			f.Close() //nolint:errcheck
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		files = append(files, gcs.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     f,
		})
	}
	return files, closeAll, nil
}

func toRecordResponse(rec domain.PotholeRecord) recordResponse {
	links := rec.PhotoLinks
	if links == nil {
		links = []string{}
	}
	return recordResponse{
		ID:           rec.ID.String(),
		SubmissionID: rec.SubmissionID.String(),
		Identifier:   rec.Identifier,
		Street:       rec.Street,
		Neighborhood: rec.Neighborhood,
		Dimensions: dimensionsPayload{
			Width:     rec.Dimensions.Width,
			Length:    rec.Dimensions.Length,
			Thickness: rec.Dimensions.Thickness,
		},
		Weather:    rec.Weather,
		PhotoLinks: links,
		RecordedAt: rec.RecordedAt,
	}
}

func toVisitResponse(v domain.Visit) visitResponse {
	records := make([]recordResponse, 0, len(v.Records))
	for _, rec := range v.Records {
		records = append(records, toRecordResponse(rec))
	}
	links := v.PhotoLinks
	if links == nil {
		links = []string{}
	}
	return visitResponse{
		SubmissionID: v.SubmissionID.String(),
		Street:       v.Street,
		Neighborhood: v.Neighborhood,
		Weather:      v.Weather,
		PhotoLinks:   links,
		RecordedAt:   v.RecordedAt,
		Records:      records,
	}
}
