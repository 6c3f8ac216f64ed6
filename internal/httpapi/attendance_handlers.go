package httpapi

import (
	"net/http"

	"github.com/hrmslite/hrms/internal/audit"
	"github.com/hrmslite/hrms/internal/hrm"
)

var attendanceStatuses = []string{
	hrm.AttendancePresent, hrm.AttendanceAbsent, hrm.AttendanceHalfDay, hrm.AttendanceOnLeave, hrm.AttendanceWFH,
}

func (a *API) listAttendance(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	page := q.page(attendancePages)
	f := hrm.AttendanceFilter{
		From:       q.date("from_date"),
		To:         q.date("to_date"),
		Status:     q.oneOf("status", attendanceStatuses...),
		Department: q.text("department"),
	}
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	rows, total, err := a.hr.Attendance.List(r.Context(), f, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, rows, page, total)
}

func (a *API) listEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathID(r, "employee_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := newQuery(r)
	page := q.page(attendancePages)
	f := hrm.AttendanceFilter{
		From:   q.date("from_date"),
		To:     q.date("to_date"),
		Status: q.oneOf("status", attendanceStatuses...),
	}
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	rows, total, err := a.hr.Attendance.ListForEmployee(r.Context(), employeeID, f, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, rows, page, total)
}

func (a *API) presentDays(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathID(r, "employee_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := newQuery(r)
	from, to := q.date("from_date"), q.date("to_date")
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := a.hr.Attendance.PresentDays(r.Context(), employeeID, from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res, "")
}

func (a *API) markAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathID(r, "employee_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req hrm.AttendanceInput
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := a.hr.Attendance.Mark(r.Context(), employeeID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "attendance", "create", rec.ID)
	writeData(w, http.StatusCreated, rec, "Attendance marked")
}

func (a *API) updateAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "attendance_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req hrm.AttendanceUpdate
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := a.hr.Attendance.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "attendance", "update", rec.ID)
	writeData(w, http.StatusOK, rec, "Attendance updated")
}

func (a *API) deleteAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "attendance_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.hr.Attendance.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "attendance", "delete", id)
	writeNoContent(w)
}
