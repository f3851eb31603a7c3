package model

import "time"

// ProjectField names one updatable project column.
type ProjectField string

const (
	ProjectFieldName           ProjectField = "name"
	ProjectFieldBuildingType   ProjectField = "building_type"
	ProjectFieldAddress        ProjectField = "address"
	ProjectFieldErfNum         ProjectField = "erf_num"
	ProjectFieldTotalFee       ProjectField = "total_fee"
	ProjectFieldAmountPaid     ProjectField = "amount_paid"
	ProjectFieldDeadline       ProjectField = "deadline"
	ProjectFieldCompletionDate ProjectField = "completion_date"
)

// Project is one project record. CompletionDate is nil until the project is
// finalised and immutable afterwards.
type Project struct {
	ID             int
	Name           string
	BuildingType   string
	Address        string
	ErfNum         string
	TotalFee       float64
	AmountPaid     float64
	Deadline       time.Time
	CompletionDate *time.Time

	StructuralEngineerID int
	ProjectManagerID     int
	ArchitectID          int
	CustomerID           int
}

// Finalised reports whether the project has a completion date.
func (p *Project) Finalised() bool {
	return p.CompletionDate != nil
}

// StakeholderID returns the identifier attached for the given role.
func (p *Project) StakeholderID(role Role) int {
	switch role {
	case RoleStructuralEngineer:
		return p.StructuralEngineerID
	case RoleProjectManager:
		return p.ProjectManagerID
	case RoleArchitect:
		return p.ArchitectID
	case RoleCustomer:
		return p.CustomerID
	default:
		return 0
	}
}
