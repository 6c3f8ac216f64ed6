package hrm

import (
	"context"
	"errors"
	"testing"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/envelope"
	"github.com/hrmslite/hrms/internal/patch"
)

func strPtr(s string) *string { return &s }

func TestCreateEmployeeConflicts(t *testing.T) {
	store := newMemStore()
	svc := NewEmployeeService(store, store)
	ctx := context.Background()

	e, err := svc.Create(ctx, EmployeeInput{EmployeeID: "EMP001", FullName: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !e.IsActive || e.EmployeeType != EmployeeFullTime {
		t.Fatalf("defaults not applied: %+v", e)
	}

	cases := []struct {
		in    EmployeeInput
		field string
	}{
		{EmployeeInput{EmployeeID: "EMP001", FullName: "B", Email: "ada@example.com"}, "employee_id"},
		{EmployeeInput{EmployeeID: "EMP002", FullName: "B", Email: "ADA@example.com"}, "email"},
	}
	for _, tc := range cases {
		_, err := svc.Create(ctx, tc.in)
		ae, ok := apperr.As(err)
		if !ok || ae.Code != apperr.CodeConflict || ae.Details[0].Field != tc.field {
			t.Fatalf("expected conflict on %s, got %v", tc.field, err)
		}
	}
}

func TestCreateEmployeeResolvesDepartment(t *testing.T) {
	store := newMemStore()
	dept, err := NewDepartmentService(store).Create(context.Background(), DepartmentInput{Name: "Engineering", Code: "eng"})
	if err != nil {
		t.Fatalf("Create department: %v", err)
	}
	svc := NewEmployeeService(store, store)

	e, err := svc.Create(context.Background(), EmployeeInput{EmployeeID: "E1", FullName: "Ada", Email: "ada@example.com", Department: strPtr("stale"), DepartmentID: &dept.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.Department == nil || *e.Department != "Engineering" {
		t.Fatalf("department name not resolved: %+v", e.Department)
	}

	missing := int64(404)
	_, err = svc.Create(context.Background(), EmployeeInput{EmployeeID: "E2", FullName: "Bob", Email: "bob@example.com", DepartmentID: &missing})
	if ae, ok := apperr.As(err); !ok || ae.Code != apperr.CodeNotFound || ae.Details[0].Field != "department_id" {
		t.Fatalf("expected department not found, got %v", err)
	}
}

func TestUpdateEmployeePatchSemantics(t *testing.T) {
	store := newMemStore()
	svc := NewEmployeeService(store, store)
	ctx := context.Background()
	e, err := svc.Create(ctx, EmployeeInput{EmployeeID: "E1", FullName: "Ada", Email: "ada@example.com", Phone: strPtr("555"), Designation: strPtr("Engineer")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, EmployeeInput{EmployeeID: "E2", FullName: "Bob", Email: "bob@example.com"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	e, err = svc.Update(ctx, e.ID, EmployeeUpdate{Phone: patch.Clear[string](), IsActive: patch.Set(false)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if e.Phone != nil || e.IsActive {
		t.Fatalf("phone should be cleared and employee inactive: %+v", e)
	}
	if e.Designation == nil || *e.Designation != "Engineer" {
		t.Fatalf("absent field must stay unchanged: %+v", e.Designation)
	}

	_, err = svc.Update(ctx, e.ID, EmployeeUpdate{Email: patch.Set("bob@example.com")})
	if ae, ok := apperr.As(err); !ok || ae.Code != apperr.CodeConflict || ae.Details[0].Field != "email" {
		t.Fatalf("expected email conflict, got %v", err)
	}
	if _, err := svc.Update(ctx, e.ID, EmployeeUpdate{Email: patch.Set("ada@example.com")}); err != nil {
		t.Fatalf("keeping own email must succeed: %v", err)
	}
	if _, err := svc.Update(ctx, e.ID, EmployeeUpdate{ManagerID: patch.Set(e.ID)}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected self-manager validation, got %v", err)
	}
}

func TestUpdateEmployeeClearsDepartmentLink(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	dept, err := NewDepartmentService(store).Create(ctx, DepartmentInput{Name: "Engineering", Code: "ENG"})
	if err != nil {
		t.Fatalf("Create department: %v", err)
	}
	svc := NewEmployeeService(store, store)
	e, err := svc.Create(ctx, EmployeeInput{EmployeeID: "E1", FullName: "Ada", Email: "ada@example.com", DepartmentID: &dept.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.Department == nil || *e.Department != "Engineering" {
		t.Fatalf("expected department name copied, got %v", e.Department)
	}

	e, err = svc.Update(ctx, e.ID, EmployeeUpdate{DepartmentID: patch.Clear[int64]()})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if e.DepartmentID != nil || e.Department != nil {
		t.Fatalf("expected department link and name cleared, got %v %v", e.DepartmentID, e.Department)
	}

	e, err = svc.Update(ctx, e.ID, EmployeeUpdate{DepartmentID: patch.Clear[int64](), Department: patch.Set("Contractors")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if e.Department == nil || *e.Department != "Contractors" {
		t.Fatalf("explicit department name dropped: %v", e.Department)
	}
}

func TestEmployeeNotFound(t *testing.T) {
	store := newMemStore()
	svc := NewEmployeeService(store, store)
	_, err := svc.Get(context.Background(), 12345)
	ae, ok := apperr.As(err)
	if !ok || ae.Code != apperr.CodeNotFound || ae.Message != "Employee not found" {
		t.Fatalf("expected employee not found, got %v", err)
	}
	if err := svc.Delete(context.Background(), 12345); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found on delete, got %v", err)
	}
}

func TestListEmployeesFilters(t *testing.T) {
	store := newMemStore()
	seedEmployee(store, 1, "E1", true)
	seedEmployee(store, 2, "E2", false)
	seedEmployee(store, 3, "E3", true)
	svc := NewEmployeeService(store, store)

	active := true
	rows, total, err := svc.List(context.Background(), EmployeeFilter{IsActive: &active}, envelope.Page{Page: 1, PerPage: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(rows) != 1 || rows[0].ID != 1 {
		t.Fatalf("unexpected page: total=%d rows=%+v", total, rows)
	}
}

func TestDepartmentCodeRules(t *testing.T) {
	store := newMemStore()
	svc := NewDepartmentService(store)
	ctx := context.Background()
	d, err := svc.Create(ctx, DepartmentInput{Name: "Finance", Code: " fin "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.Code != "FIN" {
		t.Fatalf("code not normalised: %q", d.Code)
	}
	if _, err := svc.Create(ctx, DepartmentInput{Name: "Fin 2", Code: "Fin"}); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	d, err = svc.Update(ctx, d.ID, DepartmentUpdate{Description: patch.Set("Money")})
	if err != nil || d.Description == nil || *d.Description != "Money" {
		t.Fatalf("Update: %v %+v", err, d)
	}
	if _, err := svc.Get(ctx, 99); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
