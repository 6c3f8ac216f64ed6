package pg

import (
	"context"

	"github.com/hrmslite/hrms/internal/envelope"
	"github.com/hrmslite/hrms/internal/hrm"
)

const departmentColumns = `id, name, code, description`

func (s *Store) ListDepartments(ctx context.Context, page envelope.Page) ([]hrm.Department, int, error) {
	rows := []hrm.Department{}
	total, err := s.selectPage(ctx, &rows,
		`select `+departmentColumns+` from departments`,
		`select count(*) from departments`,
		"name, id", filter{}, page)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Store) GetDepartment(ctx context.Context, id int64) (hrm.Department, error) {
	var d hrm.Department
	if err := s.db.GetContext(ctx, &d, `select `+departmentColumns+` from departments where id = $1`, id); err != nil {
		return hrm.Department{}, mapReadError(err)
	}
	return d, nil
}

func (s *Store) DepartmentCodeExists(ctx context.Context, code string, excludeID int64) (bool, error) {
	return s.exists(ctx, `select 1 from departments where code = ? and id <> ?`, code, excludeID)
}

func (s *Store) CreateDepartment(ctx context.Context, d hrm.Department) (hrm.Department, error) {
	var out hrm.Department
	err := s.db.GetContext(ctx, &out, `
		insert into departments (name, code, description)
		values ($1, $2, $3)
		returning `+departmentColumns,
		d.Name, d.Code, d.Description)
	if err != nil {
		return hrm.Department{}, mapWriteError(err)
	}
	return out, nil
}

func (s *Store) UpdateDepartment(ctx context.Context, d hrm.Department) (hrm.Department, error) {
	var out hrm.Department
	err := s.db.GetContext(ctx, &out, `
		update departments set name = $1, code = $2, description = $3
		where id = $4
		returning `+departmentColumns,
		d.Name, d.Code, d.Description, d.ID)
	if err != nil {
		return hrm.Department{}, mapWriteError(err)
	}
	return out, nil
}

func (s *Store) DeleteDepartment(ctx context.Context, id int64) error {
	return s.execAffected(ctx, `delete from departments where id = ?`, id)
}
