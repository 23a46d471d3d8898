package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dataflow-ng/statement-auditor/internal/api/middleware"
	"github.com/dataflow-ng/statement-auditor/internal/audit"
	"github.com/dataflow-ng/statement-auditor/internal/config"
	"github.com/dataflow-ng/statement-auditor/internal/jobs"
	"github.com/dataflow-ng/statement-auditor/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxUploadBytes caps statement uploads at 25 MB.
const maxUploadBytes = 25 << 20

// AuditsHandler handles audit endpoints.
type AuditsHandler struct {
	auditor   *audit.Auditor
	cfg       *config.Config
	publisher jobs.Publisher
	reports   *ReportStore
	uploadDir string
	log       zerolog.Logger
}

// NewAuditsHandler creates an audits handler. uploadDir receives uploaded
// documents before they are processed.
func NewAuditsHandler(auditor *audit.Auditor, cfg *config.Config, publisher jobs.Publisher, reports *ReportStore, uploadDir string, log zerolog.Logger) *AuditsHandler {
	return &AuditsHandler{
		auditor:   auditor,
		cfg:       cfg,
		publisher: publisher,
		reports:   reports,
		uploadDir: uploadDir,
		log:       log,
	}
}

// RunAudit handles POST /api/audits: multipart PDF upload plus a "salary"
// form value, audited synchronously.
func (h *AuditsHandler) RunAudit(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithContext(r.Context(), h.log)

	path, cleanup, err := h.saveUpload(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	var salary float64
	if v := r.FormValue("salary"); v != "" {
		salary, err = strconv.ParseFloat(v, 64)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "salary must be a number")
			return
		}
	}
	policy := h.cfg.RiskPolicy(salary)

	report, err := h.auditor.AuditStatement(ctx, path, policy)
	if err != nil {
		h.writeAuditError(w, err)
		return
	}

	h.reports.Save(report)
	middleware.WriteJSON(w, http.StatusOK, report)
}

// RunWaybills handles POST /api/waybills: multipart PDF upload of one
// logistics document, extracted synchronously.
func (h *AuditsHandler) RunWaybills(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithContext(r.Context(), h.log)

	path, cleanup, err := h.saveUpload(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	records, err := h.auditor.ExtractWaybills(ctx, path)
	if err != nil {
		h.writeAuditError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"waybills": records,
		"count":    len(records),
	})
}

// EnqueueAudit handles POST /api/audits/async: queues an audit of a file
// already present on disk and returns the job ID.
func (h *AuditsHandler) EnqueueAudit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FilePath       string  `json:"file_path"`
		DeclaredSalary float64 `json:"declared_salary"`
		Type           string  `json:"type"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FilePath == "" {
		middleware.WriteError(w, http.StatusBadRequest, "file_path is required")
		return
	}

	jobType := jobs.JobTypeAuditStatement
	if req.Type == string(jobs.JobTypeExtractWaybill) {
		jobType = jobs.JobTypeExtractWaybill
	}

	job := &jobs.AuditJob{
		Type:           jobType,
		FilePath:       req.FilePath,
		DeclaredSalary: req.DeclaredSalary,
	}

	if err := h.publisher.PublishAudit(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue audit job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue audit job")
		return
	}

	h.log.Info().Str("job_id", job.JobID).Str("file", req.FilePath).Msg("Audit job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"status": string(job.Status),
	})
}

// GetReport handles GET /api/reports/{reportID}. Audit and waybill reports
// share one ID space; the store holds each kind separately.
func (h *AuditsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	if report, err := h.reports.Get(reportID); err == nil {
		middleware.WriteJSON(w, http.StatusOK, report)
		return
	}
	if report, err := h.reports.GetWaybills(reportID); err == nil {
		middleware.WriteJSON(w, http.StatusOK, report)
		return
	}

	middleware.WriteError(w, http.StatusNotFound, "Report not found")
}

// saveUpload stores the "file" part of a multipart request in the upload
// directory and returns its path plus a cleanup func.
func (h *AuditsHandler) saveUpload(r *http.Request) (string, func(), error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", nil, errors.New("expected multipart form with a \"file\" part")
	}

	src, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, errors.New("file part is required")
	}
	defer src.Close()

	name := uuid.New().String() + "-" + filepath.Base(header.Filename)
	path := filepath.Join(h.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", nil, errors.New("failed to store upload")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", nil, errors.New("failed to store upload")
	}

	return path, func() { os.Remove(path) }, nil
}

// writeAuditError maps the document-level error taxonomy onto HTTP statuses.
// Every failure is reported explicitly; none degrade into an empty success.
func (h *AuditsHandler) writeAuditError(w http.ResponseWriter, err error) {
	h.log.Error().Err(err).Msg("Audit failed")

	switch {
	case errors.Is(err, audit.ErrNoExtractableText):
		middleware.WriteError(w, http.StatusUnprocessableEntity,
			"Scanned image detected: the document has no extractable text. Upload a digital PDF.")
	case errors.Is(err, audit.ErrEmptyExtraction):
		middleware.WriteError(w, http.StatusBadGateway,
			"The model response contained no transaction data.")
	case errors.Is(err, audit.ErrCompletionUnavailable):
		middleware.WriteError(w, http.StatusBadGateway,
			"Completion service unavailable.")
	default:
		middleware.WriteError(w, http.StatusInternalServerError, "Audit failed")
	}
}

// JobsHandler handles job status endpoints.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{store: store, log: log}
}

// GetJob handles GET /api/jobs/{jobID}.
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs with optional status/limit/offset filters.
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := jobs.JobFilter{
		Status: jobs.JobStatus(query.Get("status")),
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}
