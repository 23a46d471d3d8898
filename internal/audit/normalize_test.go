package audit

import "testing"

func TestCleanMoney(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1,000.00", 1000.00},
		{"₦500,000", 500000},
		{"£1,234.56", 1234.56},
		{"$99.99", 99.99},
		{"€2,500", 2500},
		{"1,200,000.50 Cr", 1200000.50},
		{"350.75Dr", 350.75},
		{"  250000  ", 250000},
		{"-450.25", -450.25},
		{"", 0},
		{"-", 0},
		{"   ", 0},
		{"N/A", 0},
		{"see note 3", 0},
		{"12.34.56", 0},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CleanMoney(tt.input); got != tt.want {
				t.Errorf("CleanMoney(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeStatement(t *testing.T) {
	rows := [][]string{
		{"01/02", " TRANSFER FROM ACME ", "₦5,000.00", "0", "5,000.00"},
		{"02/02", "POS BUY", "junk", "1,200", "3,800 Cr"},
	}

	records := NormalizeStatement(rows)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.Date != "01/02" {
		t.Errorf("got date %q, want 01/02", first.Date)
	}
	if first.Description != "TRANSFER FROM ACME" {
		t.Errorf("description not trimmed: %q", first.Description)
	}
	if first.Credit != 5000 || first.Debit != 0 || first.Balance != 5000 {
		t.Errorf("unexpected amounts: %+v", first)
	}

	// A corrupted credit token degrades to zero, never fails the record.
	second := records[1]
	if second.Credit != 0 {
		t.Errorf("junk credit should coerce to 0, got %v", second.Credit)
	}
	if second.Debit != 1200 || second.Balance != 3800 {
		t.Errorf("unexpected amounts: %+v", second)
	}
}

func TestNormalizeWaybill(t *testing.T) {
	wb := NormalizeWaybill([]string{"03/01", " WB-1001 ", "Acme Haulage", "₦45,000.00"}, "invoice.pdf")

	if wb.File != "invoice.pdf" {
		t.Errorf("got file %q, want invoice.pdf", wb.File)
	}
	if wb.WaybillNumber != "WB-1001" {
		t.Errorf("waybill number not trimmed: %q", wb.WaybillNumber)
	}
	if wb.Vendor != "Acme Haulage" {
		t.Errorf("got vendor %q", wb.Vendor)
	}
	if wb.Amount != 45000 {
		t.Errorf("got amount %v, want 45000", wb.Amount)
	}
}
