package httpapi

import (
	"net/http"

	"github.com/hrmslite/hrms/internal/audit"
	"github.com/hrmslite/hrms/internal/hrm"
)

func (a *API) listHolidays(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	page := q.page(holidayPages)
	f := hrm.HolidayFilter{
		Year: q.integer("year"),
		From: q.date("from_date"),
		To:   q.date("to_date"),
	}
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	rows, total, err := a.hr.Holidays.List(r.Context(), f, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, rows, page, total)
}

func (a *API) getHoliday(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "holiday_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	h, err := a.hr.Holidays.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, h, "")
}

func (a *API) createHoliday(w http.ResponseWriter, r *http.Request) {
	var req hrm.HolidayInput
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h, err := a.hr.Holidays.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "holiday", "create", h.ID)
	writeData(w, http.StatusCreated, h, "Holiday created")
}

func (a *API) updateHoliday(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "holiday_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req hrm.HolidayUpdate
	if err := a.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h, err := a.hr.Holidays.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "holiday", "update", h.ID)
	writeData(w, http.StatusOK, h, "Holiday updated")
}

func (a *API) deleteHoliday(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "holiday_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.hr.Holidays.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	audit.Mutation(r.Context(), "holiday", "delete", id)
	writeNoContent(w)
}
