package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/poisebuild/poise-pms/internal/db"
	"github.com/poisebuild/poise-pms/internal/excel"
	"github.com/poisebuild/poise-pms/internal/model"
	"github.com/poisebuild/poise-pms/internal/pdf"
	"github.com/poisebuild/poise-pms/internal/repository"
)

func newTestService(t *testing.T) *ProjectService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "poise.db")
	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	conn := repository.NewConn(database)
	return NewProjectService(
		repository.NewPersonRepository(conn),
		repository.NewProjectRepository(conn),
		excel.NewGenerator(),
		pdf.NewGenerator("R"),
	)
}

func addStakeholders(t *testing.T, svc *ProjectService) map[model.Role]int {
	t.Helper()
	ctx := context.Background()
	ids := make(map[model.Role]int, len(model.Roles))
	for _, role := range model.Roles {
		person, err := svc.AddPerson(ctx, model.Person{
			Role:    role,
			Name:    "Test " + role.Label(),
			Phone:   "0820000000",
			Email:   "test@example.com",
			Address: "1 Test St",
		})
		require.NoError(t, err)
		ids[role] = person.ID
	}
	return ids
}

func createInput(name string, totalFee, amountPaid float64, stakeholders map[model.Role]int) CreateProjectInput {
	return CreateProjectInput{
		Name:         name,
		BuildingType: "Apartment",
		Address:      "12 Main Rd",
		ErfNum:       "ERF-1001",
		TotalFee:     totalFee,
		AmountPaid:   amountPaid,
		Deadline:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Stakeholders: stakeholders,
	}
}

func TestAddPersonAssignsSequentialIDs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.AddPerson(ctx, model.Person{Role: model.RoleCustomer, Name: "Sipho Ndlovu"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := svc.AddPerson(ctx, model.Person{Role: model.RoleCustomer, Name: "Anna Meyer"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	_, err = svc.AddPerson(ctx, model.Person{Role: model.RoleCustomer, Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateProjectRejectsDuplicateName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	stakeholders := addStakeholders(t, svc)

	project, err := svc.CreateProject(ctx, createInput("Tower A", 1000, 0, stakeholders))
	require.NoError(t, err)
	assert.Equal(t, 1, project.ID)

	_, err = svc.CreateProject(ctx, createInput("Tower A", 2000, 0, stakeholders))
	assert.ErrorIs(t, err, ErrDuplicateName)

	// no second row was inserted
	projects, err := svc.ListIncomplete(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestCreateProjectValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	stakeholders := addStakeholders(t, svc)

	_, err := svc.CreateProject(ctx, createInput("", 1000, 0, stakeholders))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateProject(ctx, createInput("Tower A", -1, 0, stakeholders))
	assert.ErrorIs(t, err, ErrInvalidInput)

	incomplete := map[model.Role]int{model.RoleCustomer: stakeholders[model.RoleCustomer]}
	_, err = svc.CreateProject(ctx, createInput("Tower A", 1000, 0, incomplete))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFinaliseComputesInvoice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	stakeholders := addStakeholders(t, svc)

	project, err := svc.CreateProject(ctx, createInput("Tower B", 5000, 2000, stakeholders))
	require.NoError(t, err)

	completion := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	summary, err := svc.Finalise(ctx, project.ID, completion)
	require.NoError(t, err)

	assert.InDelta(t, 5000, summary.TotalFee, 0.001)
	assert.InDelta(t, 2000, summary.AmountPaid, 0.001)
	assert.InDelta(t, 3000, summary.AmountDue, 0.001)
	assert.False(t, summary.PaidInFull)
	assert.Equal(t, "Test Customer", summary.Customer.Name)
	assert.Equal(t, completion, summary.CompletionDate)
}

func TestFinalisePaidInFull(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	stakeholders := addStakeholders(t, svc)

	project, err := svc.CreateProject(ctx, createInput("Tower A", 1000, 1000, stakeholders))
	require.NoError(t, err)

	summary, err := svc.Finalise(ctx, project.ID, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, summary.PaidInFull)
	assert.Zero(t, summary.AmountDue)

	_, _, err = svc.InvoiceDocument(*summary)
	assert.ErrorIs(t, err, ErrInvalidInput, "paid in full never yields an invoice")
}

func TestFinaliseTwiceIsRejectedWithoutWrites(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	stakeholders := addStakeholders(t, svc)

	project, err := svc.CreateProject(ctx, createInput("Tower A", 1000, 500, stakeholders))
	require.NoError(t, err)

	first := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Finalise(ctx, project.ID, first)
	require.NoError(t, err)

	_, err = svc.Finalise(ctx, project.ID, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrAlreadyFinalised)

	reloaded, err := svc.FindProjectByID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.CompletionDate)
	assert.Equal(t, first.Format("2006-01-02"), reloaded.CompletionDate.Format("2006-01-02"))
}

func TestUpdateProjectFieldGuards(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	stakeholders := addStakeholders(t, svc)

	project, err := svc.CreateProject(ctx, createInput("Tower A", 1000, 500, stakeholders))
	require.NoError(t, err)

	err = svc.UpdateProjectField(ctx, project.ID, model.ProjectFieldCompletionDate,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNotFinalised)

	err = svc.UpdateProjectField(ctx, project.ID, model.ProjectFieldTotalFee, -5.0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.UpdateProjectField(ctx, 99, model.ProjectFieldAddress, "9 New Rd")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.UpdateProjectField(ctx, project.ID, model.ProjectFieldAmountPaid, 750.0))
	reloaded, err := svc.FindProjectByID(ctx, project.ID)
	require.NoError(t, err)
	assert.InDelta(t, 750, reloaded.AmountPaid, 0.001)
}

func TestListOverdueExcludesFinalised(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	stakeholders := addStakeholders(t, svc)

	past := createInput("Late One", 1000, 0, stakeholders)
	past.Deadline = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	late, err := svc.CreateProject(ctx, past)
	require.NoError(t, err)

	done := createInput("Late Done", 1000, 1000, stakeholders)
	done.Deadline = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	finished, err := svc.CreateProject(ctx, done)
	require.NoError(t, err)
	_, err = svc.Finalise(ctx, finished.ID, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	overdue, err := svc.ListOverdue(ctx, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, late.ID, overdue[0].ID)
}

func TestExportReportNamesFile(t *testing.T) {
	svc := newTestService(t)

	name, content, err := svc.ExportReport(model.ProjectReport{
		Kind:        model.ReportKindOverdue,
		GeneratedAt: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "projects-overdue-20260829.xlsx", name)
	assert.NotEmpty(t, content)
}
