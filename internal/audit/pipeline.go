package audit

import (
	"context"
	"fmt"

	"github.com/dataflow-ng/statement-auditor/internal/domain"
	"github.com/dataflow-ng/statement-auditor/internal/logger"
	"github.com/google/uuid"
)

// TextSource yields extracted plain text for a bounded page range of a
// document. PDF parsing itself lives behind this boundary.
type TextSource interface {
	Extract(path string, maxPages int) (string, error)
}

// Options are the knobs of one auditor instance, passed in explicitly so the
// core stays testable without any live service or ambient state.
type Options struct {
	Delimiter      Delimiter
	MaxPromptChars int
	MaxPages       int
	MinTextLength  int
}

// Auditor runs the document-to-report pipeline. One invocation owns its full
// object graph; nothing is shared across invocations.
type Auditor struct {
	source TextSource
	client CompletionClient
	opts   Options
}

// NewAuditor wires a text source and completion client into an auditor.
func NewAuditor(source TextSource, client CompletionClient, opts Options) *Auditor {
	return &Auditor{source: source, client: client, opts: opts}
}

// Step is a single stage of the audit pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// State is the shared state threaded through the pipeline steps.
type State struct {
	File   string
	Policy RiskPolicy

	Text       string
	Prompt     string
	Completion string
	Rows       [][]string

	Records []domain.TransactionRecord
	Flags   []domain.Flag
	Summary domain.AuditSummary
}

// ExtractTextStep pulls text out of the PDF and rejects documents below the
// minimum length threshold, the proxy for scanned images.
type ExtractTextStep struct {
	source        TextSource
	maxPages      int
	minTextLength int
}

func (s *ExtractTextStep) Execute(ctx context.Context, state *State) error {
	text, err := s.source.Extract(state.File, s.maxPages)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoExtractableText, err)
	}
	if len(text) < s.minTextLength {
		return fmt.Errorf("%w: got %d characters, need at least %d",
			ErrNoExtractableText, len(text), s.minTextLength)
	}
	state.Text = text
	return nil
}

// BuildPromptStep constructs the model instruction from the excerpt.
type BuildPromptStep struct {
	schema   Schema
	delim    Delimiter
	maxChars int
}

func (s *BuildPromptStep) Execute(ctx context.Context, state *State) error {
	state.Prompt = BuildExtractionPrompt(s.schema, s.delim, state.Text, s.maxChars)
	return nil
}

// CompletionStep makes the one external blocking call of the pipeline.
type CompletionStep struct {
	client CompletionClient
}

func (s *CompletionStep) Execute(ctx context.Context, state *State) error {
	text, err := s.client.Complete(ctx, state.Prompt)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCompletionUnavailable, err)
	}
	state.Completion = text
	return nil
}

// ParseStep coerces the raw completion into field tuples.
type ParseStep struct {
	schema Schema
	delim  Delimiter
}

func (s *ParseStep) Execute(ctx context.Context, state *State) error {
	rows, err := ParseCompletion(state.Completion, s.schema, s.delim)
	if err != nil {
		return err
	}
	state.Rows = rows
	return nil
}

// NormalizeStep types the raw tuples into transaction records.
type NormalizeStep struct{}

func (s *NormalizeStep) Execute(ctx context.Context, state *State) error {
	state.Records = NormalizeStatement(state.Rows)
	return nil
}

// RiskStep runs the rule pass over the normalized records.
type RiskStep struct{}

func (s *RiskStep) Execute(ctx context.Context, state *State) error {
	state.Flags, state.Summary = EvaluateRisk(state.Records, state.Policy)
	return nil
}

// Pipeline executes steps in order, stopping at the first failure.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a pipeline from the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps sequentially against the shared state.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for _, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return err
		}
	}
	return nil
}

// AuditStatement runs the full statement audit for one document.
func (a *Auditor) AuditStatement(ctx context.Context, file string, policy RiskPolicy) (*domain.AuditReport, error) {
	log := logger.FromContext(ctx)

	state := &State{File: file, Policy: policy}
	pipeline := NewPipeline(
		&ExtractTextStep{source: a.source, maxPages: a.opts.MaxPages, minTextLength: a.opts.MinTextLength},
		&BuildPromptStep{schema: StatementSchema, delim: a.opts.Delimiter, maxChars: a.opts.MaxPromptChars},
		&CompletionStep{client: a.client},
		&ParseStep{schema: StatementSchema, delim: a.opts.Delimiter},
		&NormalizeStep{},
		&RiskStep{},
	)

	if err := pipeline.Execute(ctx, state); err != nil {
		return nil, fmt.Errorf("audit %s: %w", file, err)
	}

	report := &domain.AuditReport{
		ReportID: uuid.NewString(),
		File:     file,
		Records:  state.Records,
		Flags:    state.Flags,
		Summary:  state.Summary,
		Clean:    len(state.Flags) == 0,
	}

	log.Info().
		Str("report_id", report.ReportID).
		Str("file", file).
		Int("records", len(report.Records)).
		Int("flags", len(report.Flags)).
		Msg("Statement audit completed")

	return report, nil
}

// ExtractWaybills runs the logistics variant over one document: same parser
// and delimiter machinery, four-column schema, no risk pass. First page only;
// waybills are single-page documents.
func (a *Auditor) ExtractWaybills(ctx context.Context, file string) ([]domain.WaybillRecord, error) {
	state := &State{File: file}
	pipeline := NewPipeline(
		&ExtractTextStep{source: a.source, maxPages: 1, minTextLength: a.opts.MinTextLength},
		&BuildPromptStep{schema: WaybillSchema, delim: a.opts.Delimiter, maxChars: a.opts.MaxPromptChars},
		&CompletionStep{client: a.client},
		&ParseStep{schema: WaybillSchema, delim: a.opts.Delimiter},
	)

	if err := pipeline.Execute(ctx, state); err != nil {
		return nil, fmt.Errorf("extract waybills %s: %w", file, err)
	}

	records := make([]domain.WaybillRecord, 0, len(state.Rows))
	for _, row := range state.Rows {
		records = append(records, NormalizeWaybill(row, file))
	}
	return records, nil
}
