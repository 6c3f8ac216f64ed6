package hrm

import (
	"context"
	"errors"
	"strings"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/envelope"
)

// DepartmentService manages departments. Codes are stored upper-case.
type DepartmentService struct {
	store DepartmentStore
}

func NewDepartmentService(store DepartmentStore) *DepartmentService {
	return &DepartmentService{store: store}
}

func (s *DepartmentService) List(ctx context.Context, page envelope.Page) ([]Department, int, error) {
	return s.store.ListDepartments(ctx, page)
}

func (s *DepartmentService) Get(ctx context.Context, id int64) (Department, error) {
	d, err := s.store.GetDepartment(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return Department{}, apperr.NotFound("Department not found", "department_id")
	}
	return d, err
}

func (s *DepartmentService) Create(ctx context.Context, in DepartmentInput) (Department, error) {
	d := Department{
		Name:        strings.TrimSpace(in.Name),
		Code:        normalizeCode(in.Code),
		Description: in.Description,
	}
	if d.Name == "" {
		return Department{}, apperr.FieldInvalid("name", "must not be empty")
	}
	if d.Code == "" {
		return Department{}, apperr.FieldInvalid("code", "must not be empty")
	}
	if err := s.checkCode(ctx, d.Code, 0); err != nil {
		return Department{}, err
	}
	return s.store.CreateDepartment(ctx, d)
}

func (s *DepartmentService) Update(ctx context.Context, id int64, upd DepartmentUpdate) (Department, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return Department{}, err
	}
	if upd.Name.Present {
		name := strings.TrimSpace(upd.Name.Value)
		if upd.Name.Null || name == "" {
			return Department{}, apperr.FieldInvalid("name", "must not be empty")
		}
		d.Name = name
	}
	if upd.Code.Present {
		code := normalizeCode(upd.Code.Value)
		if upd.Code.Null || code == "" {
			return Department{}, apperr.FieldInvalid("code", "must not be empty")
		}
		if code != d.Code {
			if err := s.checkCode(ctx, code, id); err != nil {
				return Department{}, err
			}
		}
		d.Code = code
	}
	upd.Description.Apply(&d.Description)
	return s.store.UpdateDepartment(ctx, d)
}

func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteDepartment(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.NotFound("Department not found", "department_id")
	}
	return err
}

func (s *DepartmentService) checkCode(ctx context.Context, code string, excludeID int64) error {
	exists, err := s.store.DepartmentCodeExists(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("Department code already exists", "code")
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
