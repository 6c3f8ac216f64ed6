package hrm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/envelope"
)

// EmployeeService manages employee records.
type EmployeeService struct {
	store EmployeeStore
	depts DepartmentStore
	now   func() time.Time
}

func NewEmployeeService(store EmployeeStore, depts DepartmentStore) *EmployeeService {
	return &EmployeeService{store: store, depts: depts, now: time.Now}
}

func (s *EmployeeService) List(ctx context.Context, f EmployeeFilter, page envelope.Page) ([]Employee, int, error) {
	return s.store.ListEmployees(ctx, f, page)
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (Employee, error) {
	return getEmployee(ctx, s.store, id)
}

// Create enforces unique employee_id then email, and fills the department
// name from department_id.
func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (Employee, error) {
	e := Employee{
		EmployeeID:            strings.TrimSpace(in.EmployeeID),
		FullName:              strings.TrimSpace(in.FullName),
		Email:                 strings.TrimSpace(in.Email),
		Phone:                 in.Phone,
		Department:            in.Department,
		DepartmentID:          in.DepartmentID,
		Designation:           in.Designation,
		DateOfJoining:         in.DateOfJoining,
		ManagerID:             in.ManagerID,
		Address:               in.Address,
		EmergencyContactName:  in.EmergencyContactName,
		EmergencyContactPhone: in.EmergencyContactPhone,
		DateOfBirth:           in.DateOfBirth,
		Gender:                in.Gender,
		EmployeeType:          EmployeeFullTime,
		IsActive:              true,
	}
	if in.EmployeeType != nil {
		e.EmployeeType = *in.EmployeeType
	}

	exists, err := s.store.EmployeeCodeExists(ctx, e.EmployeeID)
	if err != nil {
		return Employee{}, err
	}
	if exists {
		return Employee{}, apperr.Conflict("Employee ID already exists", "employee_id")
	}
	if err := s.checkEmail(ctx, e.Email, 0); err != nil {
		return Employee{}, err
	}
	if err := s.resolveDepartment(ctx, &e); err != nil {
		return Employee{}, err
	}
	if e.ManagerID != nil {
		if _, err := getEmployee(ctx, s.store, *e.ManagerID); err != nil {
			return Employee{}, apperr.FieldInvalid("manager_id", "manager does not exist")
		}
	}
	now := s.now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	return s.store.CreateEmployee(ctx, e)
}

func (s *EmployeeService) Update(ctx context.Context, id int64, upd EmployeeUpdate) (Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if upd.FullName.Present {
		name := strings.TrimSpace(upd.FullName.Value)
		if upd.FullName.Null || name == "" {
			return Employee{}, apperr.FieldInvalid("full_name", "must not be empty")
		}
		e.FullName = name
	}
	if upd.Email.Present {
		email := strings.TrimSpace(upd.Email.Value)
		if upd.Email.Null || email == "" {
			return Employee{}, apperr.FieldInvalid("email", "must not be empty")
		}
		if !strings.EqualFold(email, e.Email) {
			if err := s.checkEmail(ctx, email, id); err != nil {
				return Employee{}, err
			}
		}
		e.Email = email
	}
	if upd.EmployeeType.Present {
		if upd.EmployeeType.Null {
			return Employee{}, apperr.FieldInvalid("employee_type", "must not be null")
		}
		e.EmployeeType = upd.EmployeeType.Value
	}
	if upd.ManagerID.HasValue() {
		if upd.ManagerID.Value == id {
			return Employee{}, apperr.FieldInvalid("manager_id", "employee cannot manage themselves")
		}
		if _, err := getEmployee(ctx, s.store, upd.ManagerID.Value); err != nil {
			return Employee{}, apperr.FieldInvalid("manager_id", "manager does not exist")
		}
	}
	upd.Phone.Apply(&e.Phone)
	upd.Department.Apply(&e.Department)
	upd.Designation.Apply(&e.Designation)
	upd.DateOfJoining.Apply(&e.DateOfJoining)
	upd.ManagerID.Apply(&e.ManagerID)
	upd.Address.Apply(&e.Address)
	upd.EmergencyContactName.Apply(&e.EmergencyContactName)
	upd.EmergencyContactPhone.Apply(&e.EmergencyContactPhone)
	upd.DateOfBirth.Apply(&e.DateOfBirth)
	upd.Gender.Apply(&e.Gender)
	upd.IsActive.ApplyValue(&e.IsActive)
	if upd.DepartmentID.Present {
		upd.DepartmentID.Apply(&e.DepartmentID)
		// Unlinking drops the copied name unless one is sent alongside.
		if e.DepartmentID == nil && !upd.Department.Present {
			e.Department = nil
		}
		if err := s.resolveDepartment(ctx, &e); err != nil {
			return Employee{}, err
		}
	}
	e.UpdatedAt = s.now().UTC()
	return s.store.UpdateEmployee(ctx, e)
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteEmployee(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return employeeNotFound()
	}
	return err
}

func (s *EmployeeService) checkEmail(ctx context.Context, email string, excludeID int64) error {
	exists, err := s.store.EmployeeEmailExists(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("Email already registered", "email")
	}
	return nil
}

// resolveDepartment copies the department name into the denormalised column.
func (s *EmployeeService) resolveDepartment(ctx context.Context, e *Employee) error {
	if e.DepartmentID == nil || s.depts == nil {
		return nil
	}
	d, err := s.depts.GetDepartment(ctx, *e.DepartmentID)
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.NotFound("Department not found", "department_id")
	}
	if err != nil {
		return err
	}
	name := d.Name
	e.Department = &name
	return nil
}

func getEmployee(ctx context.Context, store EmployeeStore, id int64) (Employee, error) {
	e, err := store.GetEmployee(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return Employee{}, employeeNotFound()
	}
	return e, err
}

func employeeNotFound() error {
	return apperr.NotFound("Employee not found", "employee_id")
}
