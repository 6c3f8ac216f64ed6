package pg

import (
	"context"

	"github.com/hrmslite/hrms/internal/envelope"
	"github.com/hrmslite/hrms/internal/hrm"
)

const employeeColumns = `id, employee_id, full_name, email, phone, department, department_id,
	designation, date_of_joining, manager_id, address, emergency_contact_name,
	emergency_contact_phone, date_of_birth, gender, employee_type, is_active,
	created_at, updated_at`

func (s *Store) ListEmployees(ctx context.Context, f hrm.EmployeeFilter, page envelope.Page) ([]hrm.Employee, int, error) {
	var where filter
	if f.Department != nil {
		where.add("department = ?", *f.Department)
	}
	if f.DepartmentID != nil {
		where.add("department_id = ?", *f.DepartmentID)
	}
	if f.IsActive != nil {
		where.add("is_active = ?", *f.IsActive)
	}
	rows := []hrm.Employee{}
	total, err := s.selectPage(ctx, &rows,
		`select `+employeeColumns+` from employees`,
		`select count(*) from employees`,
		"id", where, page)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (hrm.Employee, error) {
	var e hrm.Employee
	if err := s.db.GetContext(ctx, &e, `select `+employeeColumns+` from employees where id = $1`, id); err != nil {
		return hrm.Employee{}, mapReadError(err)
	}
	return e, nil
}

func (s *Store) EmployeeCodeExists(ctx context.Context, employeeID string) (bool, error) {
	return s.exists(ctx, `select 1 from employees where employee_id = ?`, employeeID)
}

func (s *Store) EmployeeEmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return s.exists(ctx, `select 1 from employees where lower(email) = lower(?) and id <> ?`, email, excludeID)
}

func (s *Store) CreateEmployee(ctx context.Context, e hrm.Employee) (hrm.Employee, error) {
	var out hrm.Employee
	err := s.db.GetContext(ctx, &out, `
		insert into employees (employee_id, full_name, email, phone, department, department_id,
			designation, date_of_joining, manager_id, address, emergency_contact_name,
			emergency_contact_phone, date_of_birth, gender, employee_type, is_active)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		returning `+employeeColumns,
		e.EmployeeID, e.FullName, e.Email, e.Phone, e.Department, e.DepartmentID,
		e.Designation, e.DateOfJoining, e.ManagerID, e.Address, e.EmergencyContactName,
		e.EmergencyContactPhone, e.DateOfBirth, e.Gender, e.EmployeeType, e.IsActive)
	if err != nil {
		return hrm.Employee{}, mapWriteError(err)
	}
	return out, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, e hrm.Employee) (hrm.Employee, error) {
	var out hrm.Employee
	err := s.db.GetContext(ctx, &out, `
		update employees set
			full_name = $1, email = $2, phone = $3, department = $4, department_id = $5,
			designation = $6, date_of_joining = $7, manager_id = $8, address = $9,
			emergency_contact_name = $10, emergency_contact_phone = $11, date_of_birth = $12,
			gender = $13, employee_type = $14, is_active = $15, updated_at = now()
		where id = $16
		returning `+employeeColumns,
		e.FullName, e.Email, e.Phone, e.Department, e.DepartmentID,
		e.Designation, e.DateOfJoining, e.ManagerID, e.Address,
		e.EmergencyContactName, e.EmergencyContactPhone, e.DateOfBirth,
		e.Gender, e.EmployeeType, e.IsActive, e.ID)
	if err != nil {
		return hrm.Employee{}, mapWriteError(err)
	}
	return out, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	return s.execAffected(ctx, `delete from employees where id = ?`, id)
}
