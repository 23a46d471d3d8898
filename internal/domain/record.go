package domain

// TransactionRecord is one normalized statement row produced by the model.
// Date is kept as the label printed on the statement; formats vary by bank
// and downstream consumers never interpret it as a calendar value.
type TransactionRecord struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Credit      float64 `json:"credit"`
	Debit       float64 `json:"debit"`
	Balance     float64 `json:"balance"`
}

// WaybillRecord is one extracted logistics document, one document per row.
type WaybillRecord struct {
	File          string  `json:"file"`
	Date          string  `json:"date"`
	WaybillNumber string  `json:"waybill_number"`
	Vendor        string  `json:"vendor"`
	Amount        float64 `json:"amount"`
}
