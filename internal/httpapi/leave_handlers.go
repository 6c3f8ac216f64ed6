package httpapi

import (
	"net/http"

	"github.com/hrmslite/hrms/internal/audit"
	"github.com/hrmslite/hrms/internal/auth"
	"github.com/hrmslite/hrms/internal/hrm"
)

var leaveStatuses = []string{hrm.LeavePending, hrm.LeaveApproved, hrm.LeaveRejected, hrm.LeaveCancelled}

func (a *API) listLeaveTypes(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	page := q.page(catalogPages)
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	rows, total, err := a.hr.LeaveTypes.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, rows, page, total)
}

func (a *API) getLeaveType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "leave_type_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	lt, err := a.hr.LeaveTypes.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, lt, "")
}

func (a *API) createLeaveType(w http.ResponseWriter, r *http.Request) {
	var req hrm.LeaveTypeInput
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	lt, err := a.hr.LeaveTypes.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "leave_type", "create", lt.ID)
	writeData(w, http.StatusCreated, lt, "Leave type created")
}

func (a *API) updateLeaveType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "leave_type_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req hrm.LeaveTypeUpdate
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	lt, err := a.hr.LeaveTypes.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "leave_type", "update", lt.ID)
	writeData(w, http.StatusOK, lt, "Leave type updated")
}

func (a *API) deleteLeaveType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "leave_type_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.hr.LeaveTypes.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "leave_type", "delete", id)
	writeNoContent(w)
}

func (a *API) listLeaveBalances(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	page := q.page(catalogPages)
	f := hrm.LeaveBalanceFilter{
		EmployeeID: q.id("employee_id"),
		Year:       q.integer("year"),
	}
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	rows, total, err := a.hr.LeaveBalances.List(r.Context(), f, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, rows, page, total)
}

func (a *API) employeeLeaveBalances(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathID(r, "employee_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := newQuery(r)
	year := q.integer("year")
	if year == nil && q.err() == nil {
		q.fail("year", "Field required")
	}
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := a.hr.LeaveBalances.ForEmployee(r.Context(), employeeID, *year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rows, "")
}

func (a *API) createLeaveBalance(w http.ResponseWriter, r *http.Request) {
	var req hrm.LeaveBalanceInput
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := a.hr.LeaveBalances.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "leave_balance", "create", b.ID)
	writeData(w, http.StatusCreated, b, "Leave balance created")
}

func (a *API) updateLeaveBalance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "balance_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req hrm.LeaveBalanceUpdate
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := a.hr.LeaveBalances.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "leave_balance", "update", b.ID)
	writeData(w, http.StatusOK, b, "Leave balance updated")
}

func (a *API) listLeaveRequests(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	page := q.page(catalogPages)
	f := hrm.LeaveRequestFilter{
		EmployeeID: q.id("employee_id"),
		Status:     q.oneOf("status", leaveStatuses...),
		From:       q.date("from_date"),
		To:         q.date("to_date"),
	}
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	rows, total, err := a.hr.LeaveRequests.List(r.Context(), f, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, rows, page, total)
}

func (a *API) getLeaveRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "request_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	lr, err := a.hr.LeaveRequests.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, lr, "")
}

func (a *API) submitLeaveRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathID(r, "employee_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req hrm.LeaveRequestInput
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	lr, err := a.hr.LeaveRequests.Submit(r.Context(), employeeID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "leave_request", "create", lr.ID)
	writeData(w, http.StatusCreated, lr, "Leave request submitted")
}

func (a *API) updateLeaveRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "request_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req hrm.LeaveRequestUpdate
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.IsStatusChange() {
		if err := a.checkPermission(r.Context(), auth.PermLeaveApprove); err != nil {
			writeError(w, r, err)
			return
		}
	}
	lr, err := a.hr.LeaveRequests.Update(r.Context(), id, req, auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "leave_request", "update", lr.ID)
	writeData(w, http.StatusOK, lr, "Leave request updated")
}

func (a *API) cancelLeaveRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "request_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.hr.LeaveRequests.Cancel(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "leave_request", "cancel", id)
	writeNoContent(w)
}
