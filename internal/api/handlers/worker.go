package handlers

import (
	"context"
	"fmt"

	"github.com/dataflow-ng/statement-auditor/internal/audit"
	"github.com/dataflow-ng/statement-auditor/internal/config"
	"github.com/dataflow-ng/statement-auditor/internal/domain"
	"github.com/dataflow-ng/statement-auditor/internal/jobs"
	"github.com/dataflow-ng/statement-auditor/internal/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NewJobHandler returns the worker callback that processes queued jobs. Both
// job types land their results in the report store under a fresh report ID,
// written back onto the job, so the output stays retrievable through
// GET /api/reports/{reportID} after the job completes.
func NewJobHandler(auditor *audit.Auditor, cfg *config.Config, reports *ReportStore, log zerolog.Logger) jobs.JobHandler {
	return func(ctx context.Context, job jobs.Job) error {
		auditJob, ok := job.(*jobs.AuditJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		ctx = logger.WithContext(ctx, log)
		log.Info().
			Str("job_id", auditJob.JobID).
			Str("file", auditJob.FilePath).
			Str("type", string(auditJob.Type)).
			Msg("Processing audit job")

		if auditJob.Type == jobs.JobTypeExtractWaybill {
			records, err := auditor.ExtractWaybills(ctx, auditJob.FilePath)
			if err != nil {
				return err
			}
			report := &domain.WaybillReport{
				ReportID: uuid.NewString(),
				File:     auditJob.FilePath,
				Waybills: records,
			}
			auditJob.ReportID = report.ReportID
			reports.SaveWaybills(report)
			return nil
		}

		report, err := auditor.AuditStatement(ctx, auditJob.FilePath, cfg.RiskPolicy(auditJob.DeclaredSalary))
		if err != nil {
			return err
		}

		auditJob.ReportID = report.ReportID
		reports.Save(report)
		return nil
	}
}
