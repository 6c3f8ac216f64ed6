package httpapi

import (
	"net/http"

	"github.com/hrmslite/hrms/internal/audit"
	"github.com/hrmslite/hrms/internal/hrm"
)

func (a *API) listEmployees(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	page := q.page(employeePages)
	f := hrm.EmployeeFilter{
		Department:   q.text("department"),
		DepartmentID: q.id("department_id"),
		IsActive:     q.flag("is_active"),
	}
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	rows, total, err := a.hr.Employees.List(r.Context(), f, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, rows, page, total)
}

func (a *API) getEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "employee_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := a.hr.Employees.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, e, "")
}

func (a *API) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req hrm.EmployeeInput
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := a.hr.Employees.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "employee", "create", e.ID)
	writeData(w, http.StatusCreated, e, "Employee created")
}

func (a *API) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "employee_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req hrm.EmployeeUpdate
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := a.hr.Employees.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "employee", "update", e.ID)
	writeData(w, http.StatusOK, e, "Employee updated")
}

func (a *API) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "employee_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.hr.Employees.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "employee", "delete", id)
	writeNoContent(w)
}

func (a *API) listDepartments(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	page := q.page(catalogPages)
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	rows, total, err := a.hr.Departments.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, rows, page, total)
}

func (a *API) getDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "department_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	d, err := a.hr.Departments.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, d, "")
}

func (a *API) createDepartment(w http.ResponseWriter, r *http.Request) {
	var req hrm.DepartmentInput
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	d, err := a.hr.Departments.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "department", "create", d.ID)
	writeData(w, http.StatusCreated, d, "Department created")
}

func (a *API) updateDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "department_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req hrm.DepartmentUpdate
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	d, err := a.hr.Departments.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "department", "update", d.ID)
	writeData(w, http.StatusOK, d, "Department updated")
}

func (a *API) deleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "department_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.hr.Departments.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "department", "delete", id)
	writeNoContent(w)
}
