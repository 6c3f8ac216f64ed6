package httpapi

import "net/http"

func (a *API) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	from, to := q.date("from_date"), q.date("to_date")
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := a.hr.Insights.Summary(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res, "")
}

func (a *API) dashboardDepartments(w http.ResponseWriter, r *http.Request) {
	res, err := a.hr.Insights.DepartmentHeadcount(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res, "")
}

func (a *API) attendanceReport(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	from, to := q.date("from_date"), q.date("to_date")
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := a.hr.Insights.AttendanceReport(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res, "")
}

func (a *API) employeeCountByDepartment(w http.ResponseWriter, r *http.Request) {
	res, err := a.hr.Insights.EmployeeCountByDepartment(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res, "")
}

func (a *API) calendarLogs(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	from, to := q.requiredDate("from_date"), q.requiredDate("to_date")
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := a.hr.Insights.Calendar(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res, "")
}
