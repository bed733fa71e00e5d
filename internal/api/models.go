package api

import (
	"time"

	"github.com/deckforge/deckforge/internal/domain"
)

// SubmitJobRequest is the JSON body for direct (non-multipart) job
// submission.
type SubmitJobRequest struct {
	Filename string `json:"filename" validate:"required,min=1"`
	Content  string `json:"content"  validate:"required,min=1"`
	Owner    string `json:"owner"`
}

// CardResponse is one flashcard in a job response.
type CardResponse struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// JobResponse is the API representation of a job record.
type JobResponse struct {
	ID          string                    `json:"id"`
	Filename    string                    `json:"filename"`
	Owner       string                    `json:"owner"`
	Status      string                    `json:"status"`
	Deck        []CardResponse            `json:"deck,omitempty"`
	Readability *domain.ReadabilityReport `json:"readability,omitempty"`
	Error       string                    `json:"error,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
	StartedAt   *time.Time                `json:"started_at,omitempty"`
	CompletedAt *time.Time                `json:"completed_at,omitempty"`
	FailedAt    *time.Time                `json:"failed_at,omitempty"`
}

// JobListResponse is the response for job listings.
type JobListResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Count int           `json:"count"`
}

// UploadResponse reports per-file outcomes of a multipart upload.
type UploadResponse struct {
	Jobs   []UploadedJob `json:"jobs"`
	Errors []string      `json:"errors,omitempty"`
}

// UploadedJob identifies one accepted file and its job.
type UploadedJob struct {
	JobID    string `json:"job_id"`
	Filename string `json:"filename"`
}

// jobToResponse converts a domain.Job to its API representation.
func jobToResponse(job *domain.Job) JobResponse {
	resp := JobResponse{
		ID:          job.ID.String(),
		Filename:    job.Filename,
		Owner:       job.Owner,
		Status:      string(job.Status),
		Readability: job.Readability,
		Error:       job.Error,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
		StartedAt:   job.StartedAt,
		CompletedAt: job.CompletedAt,
		FailedAt:    job.FailedAt,
	}
	for _, card := range job.Deck {
		resp.Deck = append(resp.Deck, CardResponse{Front: card.Front, Back: card.Back})
	}
	return resp
}
