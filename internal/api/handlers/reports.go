package handlers

import (
	"fmt"
	"sync"

	"github.com/dataflow-ng/statement-auditor/internal/domain"
)

// ReportStore keeps completed audit reports in memory so asynchronously
// produced results can be fetched by ID. Reports do not survive a restart;
// nothing in an audit is durable by design.
type ReportStore struct {
	mu       sync.RWMutex
	reports  map[string]*domain.AuditReport
	waybills map[string]*domain.WaybillReport
}

// NewReportStore creates an empty report store.
func NewReportStore() *ReportStore {
	return &ReportStore{
		reports:  make(map[string]*domain.AuditReport),
		waybills: make(map[string]*domain.WaybillReport),
	}
}

// Save stores a completed report under its ID.
func (s *ReportStore) Save(report *domain.AuditReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ReportID] = report
}

// Get retrieves a report by ID.
func (s *ReportStore) Get(reportID string) (*domain.AuditReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.reports[reportID]
	if !ok {
		return nil, fmt.Errorf("report not found: %s", reportID)
	}
	return report, nil
}

// SaveWaybills stores a completed waybill report under its ID.
func (s *ReportStore) SaveWaybills(report *domain.WaybillReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waybills[report.ReportID] = report
}

// GetWaybills retrieves a waybill report by ID.
func (s *ReportStore) GetWaybills(reportID string) (*domain.WaybillReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.waybills[reportID]
	if !ok {
		return nil, fmt.Errorf("report not found: %s", reportID)
	}
	return report, nil
}
