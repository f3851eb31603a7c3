package model

import "time"

type ReportKind string

const (
	ReportKindIncomplete ReportKind = "INCOMPLETE"
	ReportKindOverdue    ReportKind = "OVERDUE"
)

// Title returns the heading used on exported reports.
func (k ReportKind) Title() string {
	switch k {
	case ReportKindIncomplete:
		return "Projects to be completed"
	case ReportKindOverdue:
		return "Projects past deadline"
	default:
		return "Projects"
	}
}

// ProjectReport is a point-in-time listing handed to the spreadsheet
// exporter.
type ProjectReport struct {
	Kind        ReportKind
	GeneratedAt time.Time
	Projects    []Project
}
