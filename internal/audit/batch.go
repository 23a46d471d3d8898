package audit

import (
	"context"

	"github.com/dataflow-ng/statement-auditor/internal/domain"
	"github.com/dataflow-ng/statement-auditor/internal/logger"
)

// BatchItem reports the outcome of one document in a batch. Exactly one of
// Report and Err is set for audits; Waybills is set for the logistics mode.
type BatchItem struct {
	File     string
	Index    int
	Total    int
	Report   *domain.AuditReport
	Waybills []domain.WaybillRecord
	Err      error
}

// ProgressFunc receives each item as soon as it completes, so callers can
// render progress incrementally instead of waiting for the whole batch.
type ProgressFunc func(item BatchItem)

// AuditBatch processes documents sequentially and independently. One
// document's failure is reported through the progress callback and the batch
// moves on; only context cancellation stops the sweep early.
func (a *Auditor) AuditBatch(ctx context.Context, files []string, policy RiskPolicy, progress ProgressFunc) []BatchItem {
	log := logger.FromContext(ctx)

	items := make([]BatchItem, 0, len(files))
	for i, file := range files {
		if ctx.Err() != nil {
			break
		}

		item := BatchItem{File: file, Index: i, Total: len(files)}
		report, err := a.AuditStatement(ctx, file, policy)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("Document audit failed, continuing batch")
			item.Err = err
		} else {
			item.Report = report
		}

		items = append(items, item)
		if progress != nil {
			progress(item)
		}
	}
	return items
}

// WaybillBatch is AuditBatch's counterpart for logistics documents. The
// results concatenate into one master table, a row per extracted waybill.
func (a *Auditor) WaybillBatch(ctx context.Context, files []string, progress ProgressFunc) []BatchItem {
	log := logger.FromContext(ctx)

	items := make([]BatchItem, 0, len(files))
	for i, file := range files {
		if ctx.Err() != nil {
			break
		}

		item := BatchItem{File: file, Index: i, Total: len(files)}
		records, err := a.ExtractWaybills(ctx, file)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("Waybill extraction failed, continuing batch")
			item.Err = err
		} else {
			item.Waybills = records
		}

		items = append(items, item)
		if progress != nil {
			progress(item)
		}
	}
	return items
}
