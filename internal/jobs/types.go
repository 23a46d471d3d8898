package jobs

import (
	"context"
	"time"
)

// JobType represents the type of job to be executed.
type JobType string

const (
	// JobTypeAuditStatement is a bank statement audit job.
	JobTypeAuditStatement JobType = "audit_statement"
	// JobTypeExtractWaybill is a logistics document extraction job.
	JobTypeExtractWaybill JobType = "extract_waybill"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// AuditJob is a queued request to process one document.
type AuditJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// Type selects the statement audit or the waybill variant.
	Type JobType `json:"type"`

	// FilePath is the document to process.
	FilePath string `json:"file_path"`

	// DeclaredSalary parameterizes the risk pass; ignored for waybills.
	DeclaredSalary float64 `json:"declared_salary,omitempty"`

	// ReportID is set once the audit has completed.
	ReportID string `json:"report_id,omitempty"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains failure details if the job failed.
	Error string `json:"error,omitempty"`

	// RetryCount and MaxRetries drive the queue's retry logic.
	RetryCount int `json:"retry_count"`
	MaxRetries int `json:"max_retries"`
}

// Job is a generic interface over queued work.
type Job interface {
	GetID() string
	GetType() JobType
	GetStatus() JobStatus
}

// GetID implements the Job interface.
func (j *AuditJob) GetID() string { return j.JobID }

// GetType implements the Job interface.
func (j *AuditJob) GetType() JobType { return j.Type }

// GetStatus implements the Job interface.
func (j *AuditJob) GetStatus() JobStatus { return j.Status }

// Publisher defines the interface for publishing jobs to a queue.
type Publisher interface {
	// PublishAudit publishes a document processing job.
	PublishAudit(ctx context.Context, job *AuditJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Consumer defines the interface for consuming jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs; handler runs for each job received.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobHandler processes one job. A returned error marks the job for retry.
type JobHandler func(ctx context.Context, job Job) error

// JobStore stores and retrieves job state.
type JobStore interface {
	SaveJob(ctx context.Context, job *AuditJob) error
	GetJob(ctx context.Context, jobID string) (*AuditJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*AuditJob, error)
	UpdateJobStatus(ctx context.Context, jobID string, status JobStatus, errorMsg string) error
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	// FilePath filters jobs by document path.
	FilePath string

	// Status filters jobs by status.
	Status JobStatus

	// Limit caps the number of results; Offset paginates.
	Limit  int
	Offset int
}
