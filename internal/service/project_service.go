package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/poisebuild/poise-pms/internal/model"
	"github.com/poisebuild/poise-pms/internal/repository"
)

// ExcelGenerator renders a project listing as a spreadsheet.
type ExcelGenerator interface {
	Generate(report model.ProjectReport) ([]byte, error)
}

// InvoiceGenerator renders an invoice document for a finalised project with
// an outstanding balance.
type InvoiceGenerator interface {
	Generate(summary model.InvoiceSummary) ([]byte, error)
}

type ProjectService struct {
	people   *repository.PersonRepository
	projects *repository.ProjectRepository
	excel    ExcelGenerator
	invoices InvoiceGenerator
}

type CreateProjectInput struct {
	Name         string
	BuildingType string
	Address      string
	ErfNum       string
	TotalFee     float64
	AmountPaid   float64
	Deadline     time.Time
	Stakeholders map[model.Role]int
}

func NewProjectService(
	people *repository.PersonRepository,
	projects *repository.ProjectRepository,
	excel ExcelGenerator,
	invoices InvoiceGenerator,
) *ProjectService {
	return &ProjectService{
		people:   people,
		projects: projects,
		excel:    excel,
		invoices: invoices,
	}
}

// ProjectNameTaken reports whether a project name is already in use.
func (s *ProjectService) ProjectNameTaken(ctx context.Context, name string) (bool, error) {
	return s.projects.Exists(ctx, name)
}

// CreateProject assigns the next project identifier and inserts the record.
// The name must still be unique at this point; stakeholder identifiers must
// already be persisted, one per role.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*model.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	if input.TotalFee < 0 || input.AmountPaid < 0 {
		return nil, fmt.Errorf("%w: fees must not be negative", ErrInvalidInput)
	}
	if input.Deadline.IsZero() {
		return nil, fmt.Errorf("%w: deadline is required", ErrInvalidInput)
	}
	for _, role := range model.Roles {
		if input.Stakeholders[role] == 0 {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidInput, role.Label())
		}
	}

	taken, err := s.projects.Exists(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	id, err := s.projects.NextID(ctx)
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		ID:                   id,
		Name:                 input.Name,
		BuildingType:         input.BuildingType,
		Address:              input.Address,
		ErfNum:               input.ErfNum,
		TotalFee:             input.TotalFee,
		AmountPaid:           input.AmountPaid,
		Deadline:             input.Deadline,
		StructuralEngineerID: input.Stakeholders[model.RoleStructuralEngineer],
		ProjectManagerID:     input.Stakeholders[model.RoleProjectManager],
		ArchitectID:          input.Stakeholders[model.RoleArchitect],
		CustomerID:           input.Stakeholders[model.RoleCustomer],
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// AddPerson assigns the next identifier in the role's table and persists the
// stakeholder immediately.
func (s *ProjectService) AddPerson(ctx context.Context, person model.Person) (*model.Person, error) {
	if strings.TrimSpace(person.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	id, err := s.people.NextID(ctx, person.Role)
	if err != nil {
		return nil, err
	}
	person.ID = id
	if err := s.people.Create(ctx, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

func (s *ProjectService) GetPerson(ctx context.Context, role model.Role, id int) (*model.Person, error) {
	person, err := s.people.Get(ctx, role, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return person, nil
}

func (s *ProjectService) ListPeople(ctx context.Context, role model.Role) ([]model.Person, error) {
	return s.people.List(ctx, role)
}

// Stakeholders loads the four stakeholders of a project in fixed role order.
func (s *ProjectService) Stakeholders(ctx context.Context, project *model.Project) ([]model.Person, error) {
	people := make([]model.Person, 0, len(model.Roles))
	for _, role := range model.Roles {
		person, err := s.GetPerson(ctx, role, project.StakeholderID(role))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", role.Label(), err)
		}
		people = append(people, *person)
	}
	return people, nil
}

func (s *ProjectService) FindProjectByName(ctx context.Context, name string) (*model.Project, error) {
	return s.mapProject(s.projects.FindByName(ctx, name))
}

func (s *ProjectService) FindProjectByID(ctx context.Context, id int) (*model.Project, error) {
	return s.mapProject(s.projects.FindByID(ctx, id))
}

func (s *ProjectService) mapProject(project *model.Project, err error) (*model.Project, error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

// UpdateProjectField writes one project column. Monetary fields must stay
// non-negative; a vanished identifier surfaces as ErrNotFound.
func (s *ProjectService) UpdateProjectField(ctx context.Context, id int, field model.ProjectField, value interface{}) error {
	if field == model.ProjectFieldTotalFee || field == model.ProjectFieldAmountPaid {
		amount, ok := value.(float64)
		if !ok || amount < 0 {
			return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
		}
	}

	rows, err := s.projects.UpdateField(ctx, id, field, value)
	if err != nil {
		if errors.Is(err, repository.ErrNotFinalised) {
			return ErrNotFinalised
		}
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProjectService) UpdatePersonField(ctx context.Context, role model.Role, id int, field model.PersonField, value string) error {
	rows, err := s.people.UpdateField(ctx, role, id, field, value)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Finalise stamps the completion date exactly once and computes the invoice
// summary. An already-finalised project performs zero writes and returns
// ErrAlreadyFinalised.
func (s *ProjectService) Finalise(ctx context.Context, id int, completionDate time.Time) (*model.InvoiceSummary, error) {
	project, err := s.FindProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.Finalised() {
		return nil, ErrAlreadyFinalised
	}

	rows, err := s.projects.Finalise(ctx, id, completionDate)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAlreadyFinalised
	}

	customer, err := s.GetPerson(ctx, model.RoleCustomer, project.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}

	amountDue := project.TotalFee - project.AmountPaid
	return &model.InvoiceSummary{
		ProjectID:      project.ID,
		ProjectName:    project.Name,
		TotalFee:       project.TotalFee,
		AmountPaid:     project.AmountPaid,
		AmountDue:      amountDue,
		PaidInFull:     amountDue <= 0,
		CompletionDate: completionDate,
		Customer:       *customer,
	}, nil
}

func (s *ProjectService) ListIncomplete(ctx context.Context) ([]model.Project, error) {
	return s.projects.ListIncomplete(ctx)
}

func (s *ProjectService) ListOverdue(ctx context.Context, asOf time.Time) ([]model.Project, error) {
	return s.projects.ListOverdue(ctx, asOf)
}

// ExportReport renders a listing as a spreadsheet and names the file.
func (s *ProjectService) ExportReport(report model.ProjectReport) (string, []byte, error) {
	content, err := s.excel.Generate(report)
	if err != nil {
		return "", nil, err
	}
	name := fmt.Sprintf("projects-%s-%s.xlsx",
		strings.ToLower(string(report.Kind)),
		report.GeneratedAt.Format("20060102"))
	return name, content, nil
}

// InvoiceDocument renders the invoice artifact for a finalisation that left
// a balance due.
func (s *ProjectService) InvoiceDocument(summary model.InvoiceSummary) (string, []byte, error) {
	if summary.PaidInFull {
		return "", nil, fmt.Errorf("%w: nothing owed, no invoice to render", ErrInvalidInput)
	}
	content, err := s.invoices.Generate(summary)
	if err != nil {
		return "", nil, err
	}
	name := fmt.Sprintf("invoice-%d-%s.pdf", summary.ProjectID, summary.CompletionDate.Format("20060102"))
	return name, content, nil
}
