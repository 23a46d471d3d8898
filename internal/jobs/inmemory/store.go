package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dataflow-ng/statement-auditor/internal/jobs"
)

// Store is an in-memory JobStore, safe for concurrent use. Job state is
// lost on restart; audits are cheap to re-run so nothing durable is kept.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*jobs.AuditJob
}

// NewStore creates a new in-memory job store.
func NewStore() *Store {
	return &Store{
		jobs: make(map[string]*jobs.AuditJob),
	}
}

// SaveJob saves or updates a job.
func (s *Store) SaveJob(ctx context.Context, job *jobs.AuditJob) error {
	if job.JobID == "" {
		return fmt.Errorf("job ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy so callers cannot mutate stored state.
	jobCopy := *job
	s.jobs[job.JobID] = &jobCopy

	return nil
}

// GetJob retrieves a job by ID.
func (s *Store) GetJob(ctx context.Context, jobID string) (*jobs.AuditJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}

	jobCopy := *job
	return &jobCopy, nil
}

// ListJobs retrieves jobs matching the filter.
func (s *Store) ListJobs(ctx context.Context, filter jobs.JobFilter) ([]*jobs.AuditJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*jobs.AuditJob

	for _, job := range s.jobs {
		if filter.FilePath != "" && job.FilePath != filter.FilePath {
			continue
		}
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}

		jobCopy := *job
		result = append(result, &jobCopy)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*jobs.AuditJob{}, nil
		}
		result = result[filter.Offset:]
	}

	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

// UpdateJobStatus updates the status of a stored job.
func (s *Store) UpdateJobStatus(ctx context.Context, jobID string, status jobs.JobStatus, errorMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	job.Status = status
	if errorMsg != "" {
		job.Error = errorMsg
	}

	return nil
}

// Ensure Store implements JobStore.
var _ jobs.JobStore = (*Store)(nil)
