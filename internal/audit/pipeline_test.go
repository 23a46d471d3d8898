package audit_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dataflow-ng/statement-auditor/internal/audit"
	"github.com/dataflow-ng/statement-auditor/internal/domain"
)

// mockTextSource is a func-field mock of the TextSource interface.
type mockTextSource struct {
	ExtractFunc func(path string, maxPages int) (string, error)
}

func (m *mockTextSource) Extract(path string, maxPages int) (string, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(path, maxPages)
	}
	return strings.Repeat("statement text ", 20), nil
}

// mockCompletionClient is a func-field mock of the CompletionClient interface.
type mockCompletionClient struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *mockCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "", errors.New("no completion configured")
}

func testOptions(delim audit.Delimiter) audit.Options {
	return audit.Options{
		Delimiter:      delim,
		MaxPromptChars: 6000,
		MaxPages:       4,
		MinTextLength:  50,
	}
}

func TestAuditStatement_EndToEnd(t *testing.T) {
	completion := "01/01\tSALARY\t500000\t0\t500000\n02/01\tGIFT\t800000\t0\t1300000"

	auditor := audit.NewAuditor(
		&mockTextSource{},
		&mockCompletionClient{
			CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
				return completion, nil
			},
		},
		testOptions(audit.DelimiterTab),
	)

	report, err := auditor.AuditStatement(context.Background(), "statement.pdf", audit.DefaultRiskPolicy(200000))
	if err != nil {
		t.Fatalf("AuditStatement failed: %v", err)
	}

	if len(report.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(report.Records))
	}

	// Threshold 600000: the 500000 salary credit is below it, the 800000
	// gift is above and not salary-labelled.
	if len(report.Flags) != 1 {
		t.Fatalf("got %d flags, want 1: %+v", len(report.Flags), report.Flags)
	}
	flag := report.Flags[0]
	if flag.Kind != domain.FlagLumpSum {
		t.Errorf("got kind %q, want lump sum", flag.Kind)
	}
	if !strings.Contains(flag.Message, "800,000.00") || !strings.Contains(flag.Message, "02/01") {
		t.Errorf("flag message missing amount or date: %q", flag.Message)
	}

	if report.Summary.TotalInflow != 1300000 {
		t.Errorf("got total inflow %v, want 1300000", report.Summary.TotalInflow)
	}
	if report.Summary.ClosingBalance != 1300000 {
		t.Errorf("got closing balance %v, want 1300000", report.Summary.ClosingBalance)
	}
	if report.Clean {
		t.Error("report with flags must not be clean")
	}
	if report.ReportID == "" {
		t.Error("report ID not set")
	}
}

func TestAuditStatement_ShortRowDefaults(t *testing.T) {
	auditor := audit.NewAuditor(
		&mockTextSource{},
		&mockCompletionClient{
			CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
				return "03/01 | REFUND | 1,200,000", nil
			},
		},
		testOptions(audit.DelimiterPipe),
	)

	report, err := auditor.AuditStatement(context.Background(), "statement.pdf", audit.DefaultRiskPolicy(10000000))
	if err != nil {
		t.Fatalf("AuditStatement failed: %v", err)
	}

	rec := report.Records[0]
	if rec.Credit != 1200000 {
		t.Errorf("got credit %v, want 1200000", rec.Credit)
	}
	if rec.Debit != 0 || rec.Balance != 0 {
		t.Errorf("missing columns should default to 0: %+v", rec)
	}
}

func TestAuditStatement_CleanSheet(t *testing.T) {
	auditor := audit.NewAuditor(
		&mockTextSource{},
		&mockCompletionClient{
			CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
				return "01/01 | SALARY | 200000 | 0 | 200000", nil
			},
		},
		testOptions(audit.DelimiterPipe),
	)

	report, err := auditor.AuditStatement(context.Background(), "statement.pdf", audit.DefaultRiskPolicy(200000))
	if err != nil {
		t.Fatalf("AuditStatement failed: %v", err)
	}
	if !report.Clean || len(report.Flags) != 0 {
		t.Errorf("expected clean report, got flags %+v", report.Flags)
	}
}

func TestAuditStatement_NoExtractableText(t *testing.T) {
	auditor := audit.NewAuditor(
		&mockTextSource{
			ExtractFunc: func(path string, maxPages int) (string, error) {
				return "short", nil // below the 50-char threshold
			},
		},
		&mockCompletionClient{},
		testOptions(audit.DelimiterPipe),
	)

	_, err := auditor.AuditStatement(context.Background(), "scan.pdf", audit.DefaultRiskPolicy(200000))
	if !errors.Is(err, audit.ErrNoExtractableText) {
		t.Errorf("got err %v, want ErrNoExtractableText", err)
	}
}

func TestAuditStatement_CompletionUnavailable(t *testing.T) {
	auditor := audit.NewAuditor(
		&mockTextSource{},
		&mockCompletionClient{
			CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
				return "", errors.New("dial tcp: connection refused")
			},
		},
		testOptions(audit.DelimiterPipe),
	)

	_, err := auditor.AuditStatement(context.Background(), "statement.pdf", audit.DefaultRiskPolicy(200000))
	if !errors.Is(err, audit.ErrCompletionUnavailable) {
		t.Errorf("got err %v, want ErrCompletionUnavailable", err)
	}
}

func TestAuditStatement_EmptyExtraction(t *testing.T) {
	auditor := audit.NewAuditor(
		&mockTextSource{},
		&mockCompletionClient{
			CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
				return "I'm sorry, I could not find any transactions.", nil
			},
		},
		testOptions(audit.DelimiterPipe),
	)

	_, err := auditor.AuditStatement(context.Background(), "statement.pdf", audit.DefaultRiskPolicy(200000))
	if !errors.Is(err, audit.ErrEmptyExtraction) {
		t.Errorf("got err %v, want ErrEmptyExtraction", err)
	}
}

func TestAuditStatement_PromptExcerptTruncated(t *testing.T) {
	var gotPrompt string
	opts := testOptions(audit.DelimiterPipe)
	opts.MaxPromptChars = 100

	auditor := audit.NewAuditor(
		&mockTextSource{
			ExtractFunc: func(path string, maxPages int) (string, error) {
				return strings.Repeat("x", 10000), nil
			},
		},
		&mockCompletionClient{
			CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
				gotPrompt = prompt
				return "01/01 | A | 1 | 0 | 1", nil
			},
		},
		opts,
	)

	if _, err := auditor.AuditStatement(context.Background(), "big.pdf", audit.DefaultRiskPolicy(200000)); err != nil {
		t.Fatalf("AuditStatement failed: %v", err)
	}
	if strings.Count(gotPrompt, "x") > 100 {
		t.Errorf("excerpt not truncated: %d chars of text embedded", strings.Count(gotPrompt, "x"))
	}
}

func TestAuditBatch_ContinuesPastFailures(t *testing.T) {
	auditor := audit.NewAuditor(
		&mockTextSource{
			ExtractFunc: func(path string, maxPages int) (string, error) {
				if path == "scan.pdf" {
					return "", nil
				}
				return strings.Repeat("statement text ", 20), nil
			},
		},
		&mockCompletionClient{
			CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
				return "01/01 | A | 1000 | 0 | 1000", nil
			},
		},
		testOptions(audit.DelimiterPipe),
	)

	var progress []audit.BatchItem
	items := auditor.AuditBatch(
		context.Background(),
		[]string{"first.pdf", "scan.pdf", "third.pdf"},
		audit.DefaultRiskPolicy(200000),
		func(item audit.BatchItem) { progress = append(progress, item) },
	)

	if len(items) != 3 {
		t.Fatalf("got %d items, want 3 (batch must continue past failures)", len(items))
	}
	if len(progress) != 3 {
		t.Fatalf("progress callback fired %d times, want 3", len(progress))
	}

	if items[0].Err != nil || items[2].Err != nil {
		t.Errorf("healthy documents failed: %+v", items)
	}
	if !errors.Is(items[1].Err, audit.ErrNoExtractableText) {
		t.Errorf("scan.pdf: got err %v, want ErrNoExtractableText", items[1].Err)
	}
	if items[1].Index != 1 || items[1].Total != 3 {
		t.Errorf("wrong progress counters: %+v", items[1])
	}
}

func TestExtractWaybills(t *testing.T) {
	var gotPrompt string
	auditor := audit.NewAuditor(
		&mockTextSource{},
		&mockCompletionClient{
			CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
				gotPrompt = prompt
				return "12/03 | WB-4471 | Acme Haulage | ₦45,000.00", nil
			},
		},
		testOptions(audit.DelimiterPipe),
	)

	records, err := auditor.ExtractWaybills(context.Background(), "invoice.pdf")
	if err != nil {
		t.Fatalf("ExtractWaybills failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	wb := records[0]
	if wb.File != "invoice.pdf" || wb.WaybillNumber != "WB-4471" || wb.Amount != 45000 {
		t.Errorf("unexpected waybill record: %+v", wb)
	}

	if !strings.Contains(gotPrompt, "Waybill_Number") {
		t.Error("waybill prompt does not name the waybill schema")
	}
}
