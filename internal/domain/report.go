package domain

// FlagKind identifies which risk rule produced a flag.
type FlagKind string

const (
	FlagLumpSum      FlagKind = "LUMP_SUM"
	FlagTurnoverRisk FlagKind = "TURNOVER_RISK"
)

// Flag is a single human-readable audit finding. RecordIndex points into the
// report's record sequence; -1 for findings not tied to one record.
type Flag struct {
	Kind        FlagKind `json:"kind"`
	Message     string   `json:"message"`
	RecordIndex int      `json:"record_index"`
}

// AuditSummary holds the headline metrics shown next to the flag list.
type AuditSummary struct {
	TotalInflow    float64 `json:"total_inflow"`
	ClosingBalance float64 `json:"closing_balance"`
}

// WaybillReport is the output of one waybill extraction, retrievable by ID
// the same way an audit report is.
type WaybillReport struct {
	ReportID string          `json:"report_id"`
	File     string          `json:"file,omitempty"`
	Waybills []WaybillRecord `json:"waybills"`
}

// AuditReport is the full output of one statement audit. Clean is true when
// the risk pass ran and produced no flags, which is a meaningful result in
// its own right, not a missing one.
type AuditReport struct {
	ReportID string              `json:"report_id"`
	File     string              `json:"file,omitempty"`
	Records  []TransactionRecord `json:"records"`
	Flags    []Flag              `json:"flags"`
	Summary  AuditSummary        `json:"summary"`
	Clean    bool                `json:"clean"`
}
