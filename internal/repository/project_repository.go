package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/poisebuild/poise-pms/internal/model"
)

const projectColumns = `
	id,
	name,
	building_type,
	address,
	erf_num,
	total_fee,
	amount_paid,
	deadline,
	completion_date,
	struc_eng_id AS structural_engineer_id,
	proj_mgr_id AS project_manager_id,
	architect_id,
	cust_id AS customer_id`

type projectRow struct {
	ID                   int
	Name                 string
	BuildingType         string
	Address              string
	ErfNum               string
	TotalFee             float64
	AmountPaid           float64
	Deadline             time.Time
	CompletionDate       *time.Time
	StructuralEngineerID int
	ProjectManagerID     int
	ArchitectID          int
	CustomerID           int
}

func (row projectRow) toModel() model.Project {
	return model.Project{
		ID:                   row.ID,
		Name:                 row.Name,
		BuildingType:         row.BuildingType,
		Address:              row.Address,
		ErfNum:               row.ErfNum,
		TotalFee:             row.TotalFee,
		AmountPaid:           row.AmountPaid,
		Deadline:             row.Deadline,
		CompletionDate:       row.CompletionDate,
		StructuralEngineerID: row.StructuralEngineerID,
		ProjectManagerID:     row.ProjectManagerID,
		ArchitectID:          row.ArchitectID,
		CustomerID:           row.CustomerID,
	}
}

type ProjectRepository struct {
	conn Conn
}

func NewProjectRepository(conn Conn) *ProjectRepository {
	return &ProjectRepository{conn: conn}
}

// Exists reports whether a project with exactly this name is present. Names
// are unique, so creation is gated on this check.
func (r *ProjectRepository) Exists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.conn.DB().WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM projects WHERE name = ?`, name).
		Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextID computes max(existing id)+1, or 1 when no projects exist.
func (r *ProjectRepository) NextID(ctx context.Context) (int, error) {
	var next int
	err := r.conn.DB().WithContext(ctx).
		Raw(`SELECT COALESCE(MAX(id), 0) + 1 FROM projects`).
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Create inserts the full project row. The enclosing transaction must not be
// committed unless this succeeds.
func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.conn.DB().WithContext(ctx).Exec(`
		INSERT INTO projects (
			id,
			name,
			building_type,
			address,
			erf_num,
			total_fee,
			amount_paid,
			deadline,
			completion_date,
			struc_eng_id,
			proj_mgr_id,
			architect_id,
			cust_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		project.ID,
		project.Name,
		project.BuildingType,
		project.Address,
		project.ErfNum,
		project.TotalFee,
		project.AmountPaid,
		project.Deadline,
		project.CompletionDate,
		project.StructuralEngineerID,
		project.ProjectManagerID,
		project.ArchitectID,
		project.CustomerID,
	).Error
}

func (r *ProjectRepository) FindByName(ctx context.Context, name string) (*model.Project, error) {
	return r.findOne(ctx, `WHERE name = ?`, name)
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int) (*model.Project, error) {
	return r.findOne(ctx, `WHERE id = ?`, id)
}

func (r *ProjectRepository) findOne(ctx context.Context, where string, arg interface{}) (*model.Project, error) {
	var row projectRow
	query := fmt.Sprintf(`SELECT %s FROM projects %s LIMIT 1`, projectColumns, where)
	if err := r.conn.DB().WithContext(ctx).Raw(query, arg).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, ErrNotFound
	}
	project := row.toModel()
	return &project, nil
}

// UpdateField updates exactly one named column and returns the count of rows
// affected. Direct completion-date updates are rejected with ErrNotFinalised
// while the project's completion date is still unset.
func (r *ProjectRepository) UpdateField(ctx context.Context, id int, field model.ProjectField, value interface{}) (int64, error) {
	column, err := projectColumn(field)
	if err != nil {
		return 0, err
	}

	if field == model.ProjectFieldCompletionDate {
		project, err := r.FindByID(ctx, id)
		if err != nil {
			return 0, err
		}
		if !project.Finalised() {
			return 0, ErrNotFinalised
		}
	}

	stmt := fmt.Sprintf(`UPDATE projects SET %s = ? WHERE id = ?`, column)
	result := r.conn.DB().WithContext(ctx).Exec(stmt, value, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListIncomplete returns all projects without a completion date. The result
// is re-queried on every call, never cached.
func (r *ProjectRepository) ListIncomplete(ctx context.Context) ([]model.Project, error) {
	return r.list(ctx, `WHERE completion_date IS NULL`)
}

// ListOverdue returns the projects with a deadline before asOf and no
// completion date. A project finalised after its deadline does not appear.
func (r *ProjectRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]model.Project, error) {
	return r.list(ctx, `WHERE deadline < ? AND completion_date IS NULL`, asOf)
}

func (r *ProjectRepository) list(ctx context.Context, where string, args ...interface{}) ([]model.Project, error) {
	var rows []projectRow
	query := fmt.Sprintf(`SELECT %s FROM projects %s ORDER BY id`, projectColumns, where)
	if err := r.conn.DB().WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	projects := make([]model.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, row.toModel())
	}
	return projects, nil
}

// Finalise stamps the completion date on a project that does not have one
// yet. Zero rows affected means the project was already finalised (or gone);
// no write happens in that case.
func (r *ProjectRepository) Finalise(ctx context.Context, id int, completionDate time.Time) (int64, error) {
	result := r.conn.DB().WithContext(ctx).Exec(`
		UPDATE projects SET completion_date = ? WHERE id = ? AND completion_date IS NULL
	`, completionDate, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func projectColumn(field model.ProjectField) (string, error) {
	switch field {
	case model.ProjectFieldName,
		model.ProjectFieldBuildingType,
		model.ProjectFieldAddress,
		model.ProjectFieldErfNum,
		model.ProjectFieldTotalFee,
		model.ProjectFieldAmountPaid,
		model.ProjectFieldDeadline,
		model.ProjectFieldCompletionDate:
		return string(field), nil
	default:
		return "", fmt.Errorf("unknown project field %q", field)
	}
}
