package pg

import (
	"context"

	"github.com/hrmslite/hrms/internal/envelope"
	"github.com/hrmslite/hrms/internal/hrm"
)

const attendanceColumns = `id, employee_id, date, status, check_in_time, check_out_time, work_hours, source, notes`

const attendanceRecordSelect = `
	select a.id, a.employee_id, a.date, a.status, a.check_in_time, a.check_out_time,
		a.work_hours, a.source, a.notes,
		e.employee_id as employee_employee_id, e.full_name as employee_full_name
	from attendance a
	join employees e on e.id = a.employee_id`

const attendanceRecordCount = `select count(*) from attendance a join employees e on e.id = a.employee_id`

func attendanceFilter(f hrm.AttendanceFilter) filter {
	var where filter
	if f.EmployeeID != nil {
		where.add("a.employee_id = ?", *f.EmployeeID)
	}
	if f.From != nil {
		where.add("a.date >= ?", *f.From)
	}
	if f.To != nil {
		where.add("a.date <= ?", *f.To)
	}
	if f.Status != nil {
		where.add("a.status = ?", *f.Status)
	}
	if f.Department != nil {
		where.add("e.department = ?", *f.Department)
	}
	if f.ActiveOnly {
		where.add("e.is_active = true")
	}
	return where
}

func (s *Store) ListAttendance(ctx context.Context, f hrm.AttendanceFilter, page envelope.Page) ([]hrm.AttendanceRecord, int, error) {
	rows := []hrm.AttendanceRecord{}
	total, err := s.selectPage(ctx, &rows, attendanceRecordSelect, attendanceRecordCount,
		"a.date desc, a.id", attendanceFilter(f), page)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Store) RangeAttendance(ctx context.Context, f hrm.AttendanceFilter) ([]hrm.AttendanceRecord, error) {
	where := attendanceFilter(f)
	rows := []hrm.AttendanceRecord{}
	query := s.db.Rebind(attendanceRecordSelect + where.where() + " order by a.date, a.employee_id")
	if err := s.db.SelectContext(ctx, &rows, query, where.args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) GetAttendance(ctx context.Context, id int64) (hrm.Attendance, error) {
	var a hrm.Attendance
	if err := s.db.GetContext(ctx, &a, `select `+attendanceColumns+` from attendance where id = $1`, id); err != nil {
		return hrm.Attendance{}, mapReadError(err)
	}
	return a, nil
}

func (s *Store) AttendanceExists(ctx context.Context, employeeID int64, date hrm.Date) (bool, error) {
	return s.exists(ctx, `select 1 from attendance where employee_id = ? and date = ?`, employeeID, date)
}

func (s *Store) CountPresentDays(ctx context.Context, employeeID int64, from, to *hrm.Date) (int, error) {
	where := attendanceFilter(hrm.AttendanceFilter{EmployeeID: &employeeID, From: from, To: to})
	where.add("a.status = ?", hrm.AttendancePresent)
	var n int
	if err := s.db.GetContext(ctx, &n, s.db.Rebind(`select count(*) from attendance a`+where.where()), where.args...); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) CreateAttendance(ctx context.Context, a hrm.Attendance) (hrm.Attendance, error) {
	var out hrm.Attendance
	err := s.db.GetContext(ctx, &out, `
		insert into attendance (employee_id, date, status, check_in_time, check_out_time, work_hours, source, notes)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		returning `+attendanceColumns,
		a.EmployeeID, a.Date, a.Status, a.CheckInTime, a.CheckOutTime, a.WorkHours, a.Source, a.Notes)
	if err != nil {
		return hrm.Attendance{}, mapWriteError(err)
	}
	return out, nil
}

func (s *Store) UpdateAttendance(ctx context.Context, a hrm.Attendance) (hrm.Attendance, error) {
	var out hrm.Attendance
	err := s.db.GetContext(ctx, &out, `
		update attendance set
			status = $1, check_in_time = $2, check_out_time = $3, work_hours = $4,
			source = $5, notes = $6, updated_at = now()
		where id = $7
		returning `+attendanceColumns,
		a.Status, a.CheckInTime, a.CheckOutTime, a.WorkHours, a.Source, a.Notes, a.ID)
	if err != nil {
		return hrm.Attendance{}, mapWriteError(err)
	}
	return out, nil
}

func (s *Store) DeleteAttendance(ctx context.Context, id int64) error {
	return s.execAffected(ctx, `delete from attendance where id = ?`, id)
}
