package repository

import (
	"context"
	"fmt"

	"github.com/poisebuild/poise-pms/internal/model"
)

type PersonRepository struct {
	conn Conn
}

func NewPersonRepository(conn Conn) *PersonRepository {
	return &PersonRepository{conn: conn}
}

// Get fetches one stakeholder row from the role's table by identifier.
func (r *PersonRepository) Get(ctx context.Context, role model.Role, id int) (*model.Person, error) {
	table, err := roleTable(role)
	if err != nil {
		return nil, err
	}

	var row struct {
		ID      int
		Name    string
		Phone   string
		Email   string
		Address string
	}
	query := fmt.Sprintf(`SELECT id, name, phone, email, address FROM %s WHERE id = ?`, table)
	if err := r.conn.DB().WithContext(ctx).Raw(query, id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, ErrNotFound
	}

	return &model.Person{
		ID:      row.ID,
		Role:    role,
		Name:    row.Name,
		Phone:   row.Phone,
		Email:   row.Email,
		Address: row.Address,
	}, nil
}

// List returns all stakeholders of a role ordered by identifier.
func (r *PersonRepository) List(ctx context.Context, role model.Role) ([]model.Person, error) {
	table, err := roleTable(role)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID      int
		Name    string
		Phone   string
		Email   string
		Address string
	}
	query := fmt.Sprintf(`SELECT id, name, phone, email, address FROM %s ORDER BY id`, table)
	if err := r.conn.DB().WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}

	people := make([]model.Person, 0, len(rows))
	for _, row := range rows {
		people = append(people, model.Person{
			ID:      row.ID,
			Role:    role,
			Name:    row.Name,
			Phone:   row.Phone,
			Email:   row.Email,
			Address: row.Address,
		})
	}
	return people, nil
}

// NextID computes max(existing id)+1 for the role's table, or 1 when the
// table is empty. Retired identifiers are never reused within a session.
func (r *PersonRepository) NextID(ctx context.Context, role model.Role) (int, error) {
	table, err := roleTable(role)
	if err != nil {
		return 0, err
	}

	var next int
	query := fmt.Sprintf(`SELECT COALESCE(MAX(id), 0) + 1 FROM %s`, table)
	if err := r.conn.DB().WithContext(ctx).Raw(query).Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

// Create inserts a stakeholder row with its already-assigned identifier.
func (r *PersonRepository) Create(ctx context.Context, person *model.Person) error {
	table, err := roleTable(person.Role)
	if err != nil {
		return err
	}

	stmt := fmt.Sprintf(`INSERT INTO %s (id, name, phone, email, address) VALUES (?, ?, ?, ?, ?)`, table)
	return r.conn.DB().WithContext(ctx).
		Exec(stmt, person.ID, person.Name, person.Phone, person.Email, person.Address).Error
}

// UpdateField updates exactly one named column for the row matching id and
// returns the count of rows affected. Zero rows means the identifier no
// longer exists and must be surfaced to the operator, not treated as success.
func (r *PersonRepository) UpdateField(ctx context.Context, role model.Role, id int, field model.PersonField, value string) (int64, error) {
	table, err := roleTable(role)
	if err != nil {
		return 0, err
	}
	column, err := personColumn(field)
	if err != nil {
		return 0, err
	}

	stmt := fmt.Sprintf(`UPDATE %s SET %s = ? WHERE id = ?`, table, column)
	result := r.conn.DB().WithContext(ctx).Exec(stmt, value, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// roleTable resolves the role's table name. Table identifiers always come
// from this fixed set, never from operator input.
func roleTable(role model.Role) (string, error) {
	table := role.Table()
	if table == "" {
		return "", fmt.Errorf("unknown stakeholder role %q", role)
	}
	return table, nil
}

func personColumn(field model.PersonField) (string, error) {
	switch field {
	case model.PersonFieldName, model.PersonFieldPhone, model.PersonFieldEmail, model.PersonFieldAddress:
		return string(field), nil
	default:
		return "", fmt.Errorf("unknown person field %q", field)
	}
}
