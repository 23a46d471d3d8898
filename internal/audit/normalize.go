package audit

import (
	"strconv"
	"strings"

	"github.com/dataflow-ng/statement-auditor/internal/domain"
)

// moneyReplacer strips the decorations banks print around amounts: thousands
// separators, currency glyphs, Dr/Cr direction markers, and stray delimiter
// characters the model sometimes leaves behind.
var moneyReplacer = strings.NewReplacer(
	",", "",
	"₦", "",
	"£", "",
	"$", "",
	"€", "",
	"DR", "", "Dr", "", "dr", "",
	"CR", "", "Cr", "", "cr", "",
	"|", "",
)

// CleanMoney coerces a noisy textual money value into a float. Empty,
// null-like, and unparseable inputs all come back as 0.0: one corrupted
// field degrades to zero instead of aborting the record or the batch.
func CleanMoney(val string) float64 {
	s := strings.TrimSpace(val)
	if s == "" || s == "-" {
		return 0.0
	}
	s = strings.TrimSpace(moneyReplacer.Replace(s))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return f
}

// NormalizeStatement maps raw parser tuples into typed transaction records.
// Tuples arrive already fitted to StatementSchema, so every record leaves
// here with all five fields defined. Text fields pass through trimmed with
// no semantic validation; dates in particular stay whatever label the
// statement printed. Row order is preserved.
func NormalizeStatement(rows [][]string) []domain.TransactionRecord {
	records := make([]domain.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.TransactionRecord{
			Date:        strings.TrimSpace(row[0]),
			Description: strings.TrimSpace(row[1]),
			Credit:      CleanMoney(row[2]),
			Debit:       CleanMoney(row[3]),
			Balance:     CleanMoney(row[4]),
		})
	}
	return records
}

// NormalizeWaybill maps one raw tuple fitted to WaybillSchema into a typed
// waybill record tagged with its source filename.
func NormalizeWaybill(row []string, file string) domain.WaybillRecord {
	return domain.WaybillRecord{
		File:          file,
		Date:          strings.TrimSpace(row[0]),
		WaybillNumber: strings.TrimSpace(row[1]),
		Vendor:        strings.TrimSpace(row[2]),
		Amount:        CleanMoney(row[3]),
	}
}
