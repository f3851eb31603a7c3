package model

// Role is one of the four fixed stakeholder roles attached to every project.
type Role string

const (
	RoleStructuralEngineer Role = "STRUCTURAL_ENGINEER"
	RoleProjectManager     Role = "PROJECT_MANAGER"
	RoleArchitect          Role = "ARCHITECT"
	RoleCustomer           Role = "CUSTOMER"
)

// Roles lists the stakeholder roles in the fixed order they are attached to a
// project: structural engineer, project manager, architect, customer.
var Roles = []Role{
	RoleStructuralEngineer,
	RoleProjectManager,
	RoleArchitect,
	RoleCustomer,
}

// Table returns the name of the table holding rows for this role. Each role
// has its own table with an independent identifier sequence.
func (r Role) Table() string {
	switch r {
	case RoleStructuralEngineer:
		return "structural_engineers"
	case RoleProjectManager:
		return "project_managers"
	case RoleArchitect:
		return "architects"
	case RoleCustomer:
		return "customers"
	default:
		return ""
	}
}

// Label returns the operator-facing name of the role.
func (r Role) Label() string {
	switch r {
	case RoleStructuralEngineer:
		return "Structural Engineer"
	case RoleProjectManager:
		return "Project Manager"
	case RoleArchitect:
		return "Architect"
	case RoleCustomer:
		return "Customer"
	default:
		return string(r)
	}
}

// PersonField names one updatable person column.
type PersonField string

const (
	PersonFieldName    PersonField = "name"
	PersonFieldPhone   PersonField = "phone"
	PersonFieldEmail   PersonField = "email"
	PersonFieldAddress PersonField = "address"
)

type Person struct {
	ID      int
	Role    Role
	Name    string
	Phone   string
	Email   string
	Address string
}
