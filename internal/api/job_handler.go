// Package api exposes the HTTP surface for job submission, status
// queries, deck downloads, and job listings. Handlers are thin wrappers
// over the job service; no invariants live here.
package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/deckforge/deckforge/internal/api/shared"
	"github.com/deckforge/deckforge/internal/domain"
	"github.com/deckforge/deckforge/internal/service"
)

// JobHandler handles job-related HTTP requests.
type JobHandler struct {
	jobService service.JobService
	uploadDir  string
	maxBytes   int64
	logger     *slog.Logger
}

// NewJobHandler creates a JobHandler. Uploaded files land in uploadDir;
// requests larger than maxBytes are rejected.
func NewJobHandler(jobService service.JobService, uploadDir string, maxBytes int64, logger *slog.Logger) *JobHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobHandler{
		jobService: jobService,
		uploadDir:  uploadDir,
		maxBytes:   maxBytes,
		logger:     logger.With("component", "job_handler"),
	}
}

// SubmitJob handles POST /api/jobs: inline-content submission.
func (h *JobHandler) SubmitJob(w http.ResponseWriter, r *http.Request) {
	var req SubmitJobRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	job, err := h.jobService.Submit(r.Context(), req.Filename, req.Content, "", req.Owner)
	if err != nil {
		h.logger.Error("failed to submit job", "error", err, "filename", req.Filename)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to submit job")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, jobToResponse(job))
}

// UploadFiles handles POST /api/upload: one or more .txt files as
// multipart form data, one job per accepted file. Rejected files are
// reported alongside the accepted ones rather than failing the batch.
func (h *JobHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart request")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No files provided")
		return
	}
	owner := r.FormValue("user")

	var resp UploadResponse
	for _, header := range files {
		filename := filepath.Base(header.Filename)
		if !strings.EqualFold(filepath.Ext(filename), ".txt") {
			resp.Errors = append(resp.Errors, fmt.Sprintf("invalid file: %s", header.Filename))
			continue
		}

		jobID, err := h.storeAndSubmit(r, header, filename, owner)
		if err != nil {
			h.logger.Error("failed to accept uploaded file", "error", err, "filename", filename)
			resp.Errors = append(resp.Errors, fmt.Sprintf("failed to accept %s", filename))
			continue
		}

		resp.Jobs = append(resp.Jobs, UploadedJob{JobID: jobID, Filename: filename})
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// storeAndSubmit saves one uploaded file under the upload directory and
// submits a job referencing it.
func (h *JobHandler) storeAndSubmit(r *http.Request, header *multipart.FileHeader, filename, owner string) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = src.Close() }()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	// Prefix with a fresh id so same-named uploads never collide.
	path := filepath.Join(h.uploadDir, fmt.Sprintf("%s_%s", uuid.NewString(), filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close upload file: %w", err)
	}

	job, err := h.jobService.Submit(r.Context(), filename, "", path, owner)
	if err != nil {
		return "", err
	}
	return job.ID.String(), nil
}

// GetJobStatus handles GET /api/jobs/{id}.
func (h *JobHandler) GetJobStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobIDFromRequest(w, r)
	if !ok {
		return
	}

	job, err := h.jobService.GetStatus(r.Context(), id)
	if errors.Is(err, service.ErrJobNotFound) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Job not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get job status", "error", err, "job_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to get job status")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, jobToResponse(job))
}

// DownloadDeck handles GET /api/jobs/{id}/deck: the CSV artifact for a
// completed job, served from the stored record so the REST tier needs no
// access to the worker's filesystem.
func (h *JobHandler) DownloadDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobIDFromRequest(w, r)
	if !ok {
		return
	}

	job, err := h.jobService.GetStatus(r.Context(), id)
	if errors.Is(err, service.ErrJobNotFound) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Job not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load job for download", "error", err, "job_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to load job")
		return
	}

	if job.Status != domain.JobStatusCompleted {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			fmt.Sprintf("Job not completed (status: %s)", job.Status))
		return
	}

	base := strings.TrimSuffix(job.Filename, filepath.Ext(job.Filename))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", base+"_deck.csv"))
	if err := job.Deck.WriteCSV(w); err != nil {
		h.logger.Error("failed to stream deck", "error", err, "job_id", id)
	}
}

// ListJobs handles GET /api/jobs with optional user and limit query
// parameters.
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("user")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	jobs, err := h.jobService.ListJobs(r.Context(), owner, limit)
	if err != nil {
		h.logger.Error("failed to list jobs", "error", err, "owner", owner)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	resp := JobListResponse{Jobs: make([]JobResponse, 0, len(jobs)), Count: len(jobs)}
	for _, job := range jobs {
		resp.Jobs = append(resp.Jobs, jobToResponse(job))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// jobIDFromRequest parses the {id} route parameter, responding with 400
// on a malformed id.
func (h *JobHandler) jobIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid job id")
		return uuid.Nil, false
	}
	return id, true
}
