package model

import "time"

// InvoiceSummary is the result of finalising a project. AmountDue is
// TotalFee - AmountPaid; PaidInFull is true when nothing is owed, in which
// case no invoice document is produced.
type InvoiceSummary struct {
	ProjectID      int
	ProjectName    string
	TotalFee       float64
	AmountPaid     float64
	AmountDue      float64
	PaidInFull     bool
	CompletionDate time.Time
	Customer       Person
}
