package inmemory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dataflow-ng/statement-auditor/internal/jobs"
)

func TestQueue_PublishAndProcess(t *testing.T) {
	store := NewStore()
	queue := NewQueue(10, store)
	defer queue.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	processed := make(map[string]bool)
	done := make(chan struct{}, 1)

	handler := func(ctx context.Context, job jobs.Job) error {
		mu.Lock()
		processed[job.GetID()] = true
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	if err := queue.Start(ctx, handler); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	job := &jobs.AuditJob{FilePath: "statement.pdf"}
	if err := queue.PublishAudit(ctx, job); err != nil {
		t.Fatalf("PublishAudit failed: %v", err)
	}
	if job.JobID == "" {
		t.Fatal("publish did not assign a job ID")
	}
	if job.Type != jobs.JobTypeAuditStatement {
		t.Errorf("got type %q, want audit_statement default", job.Type)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}

	mu.Lock()
	if !processed[job.JobID] {
		t.Error("handler did not receive the published job")
	}
	mu.Unlock()

	// Give the queue a moment to persist the final status.
	deadline := time.Now().Add(time.Second)
	for {
		got, err := store.GetJob(ctx, job.JobID)
		if err == nil && got.Status == jobs.JobStatusCompleted {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("job never reached completed status, last: %+v", got)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestQueue_PublishAfterClose(t *testing.T) {
	queue := NewQueue(1, NewStore())
	if err := queue.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	err := queue.PublishAudit(context.Background(), &jobs.AuditJob{FilePath: "x.pdf"})
	if err == nil {
		t.Error("expected publish on closed queue to fail")
	}
}
