package audit

// ColumnKind tells the parser and normalizer how to default and coerce a
// column. Text columns default to "-", money columns to "0".
type ColumnKind int

const (
	ColumnText ColumnKind = iota
	ColumnMoney
)

// Column is one position in the expected model output.
type Column struct {
	Name string
	Kind ColumnKind
}

// Schema is the ordered column contract the model is instructed to follow
// and the parser coerces rows into.
type Schema struct {
	Columns []Column
}

// Len returns the expected field count per row.
func (s Schema) Len() int { return len(s.Columns) }

// Default returns the pad value for the column at position i.
func (s Schema) Default(i int) string {
	if s.Columns[i].Kind == ColumnMoney {
		return "0"
	}
	return "-"
}

// Delimiter is the field separator the model is asked to emit. Comma is
// deliberately not an option: monetary text carries thousands separators and
// comma-delimited output silently shifts column alignment.
type Delimiter rune

const (
	DelimiterPipe Delimiter = '|'
	DelimiterTab  Delimiter = '\t'
)

// String returns the delimiter as a one-character string.
func (d Delimiter) String() string { return string(rune(d)) }

// StatementSchema is the five-column bank statement contract.
var StatementSchema = Schema{Columns: []Column{
	{Name: "Date", Kind: ColumnText},
	{Name: "Description", Kind: ColumnText},
	{Name: "Credit", Kind: ColumnMoney},
	{Name: "Debit", Kind: ColumnMoney},
	{Name: "Balance", Kind: ColumnMoney},
}}

// WaybillSchema is the four-column logistics document contract.
var WaybillSchema = Schema{Columns: []Column{
	{Name: "Date", Kind: ColumnText},
	{Name: "Waybill_Number", Kind: ColumnText},
	{Name: "Vendor_Name", Kind: ColumnText},
	{Name: "Total_Amount", Kind: ColumnMoney},
}}
