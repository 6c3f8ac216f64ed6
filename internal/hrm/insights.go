package hrm

import (
	"context"

	"github.com/hrmslite/hrms/internal/apperr"
)

// DepartmentCount is a department headcount row.
type DepartmentCount struct {
	Name          *string `db:"name" json:"name"`
	EmployeeCount int     `db:"employee_count" json:"employee_count"`
}

type DepartmentCounts struct {
	Departments []DepartmentCount `json:"departments"`
}

type DashboardSummary struct {
	TotalEmployees         int   `json:"total_employees"`
	TotalAttendanceRecords int   `json:"total_attendance_records"`
	PresentCount           int   `json:"present_count"`
	AbsentCount            int   `json:"absent_count"`
	FromDate               *Date `json:"from_date"`
	ToDate                 *Date `json:"to_date"`
}

type AttendanceReport struct {
	FromDate     *Date `json:"from_date"`
	ToDate       *Date `json:"to_date"`
	TotalRecords int   `json:"total_records"`
	Present      int   `json:"present"`
	Absent       int   `json:"absent"`
	Other        int   `json:"other"`
}

type CalendarAttendance struct {
	ID           int64    `json:"id"`
	Date         Date     `json:"date"`
	EmployeeID   int64    `json:"employee_id"`
	EmployeeName *string  `json:"employee_name"`
	EmployeeCode *string  `json:"employee_employee_id"`
	Status       string   `json:"status"`
	CheckInTime  *Clock   `json:"check_in_time"`
	CheckOutTime *Clock   `json:"check_out_time"`
	WorkHours    *float64 `json:"work_hours"`
	Notes        *string  `json:"notes"`
}

type CalendarHoliday struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Date Date   `json:"date"`
	Year *int   `json:"year"`
}

type CalendarLeave struct {
	ID          int64 `json:"id"`
	EmployeeID  int64 `json:"employee_id"`
	FromDate    Date  `json:"from_date"`
	ToDate      Date  `json:"to_date"`
	LeaveTypeID int64 `json:"leave_type_id"`
}

type Calendar struct {
	FromDate       Date                 `json:"from_date"`
	ToDate         Date                 `json:"to_date"`
	AttendanceLogs []CalendarAttendance `json:"attendance_logs"`
	Holidays       []CalendarHoliday    `json:"holidays"`
	Leave          []CalendarLeave      `json:"leave"`
}

// InsightService builds dashboard, report and calendar views.
type InsightService struct {
	stats      StatsStore
	attendance AttendanceStore
	holidays   HolidayStore
	leave      LeaveRequestStore
}

func NewInsightService(stats StatsStore, attendance AttendanceStore, holidays HolidayStore, leave LeaveRequestStore) *InsightService {
	return &InsightService{stats: stats, attendance: attendance, holidays: holidays, leave: leave}
}

// Summary counts active employees and attendance; absent is every non-present row.
func (s *InsightService) Summary(ctx context.Context, from, to *Date) (DashboardSummary, error) {
	employees, err := s.stats.CountActiveEmployees(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	counts, err := s.stats.AttendanceStatusCounts(ctx, from, to)
	if err != nil {
		return DashboardSummary{}, err
	}
	total := sumCounts(counts)
	present := counts[AttendancePresent]
	return DashboardSummary{
		TotalEmployees:         employees,
		TotalAttendanceRecords: total,
		PresentCount:           present,
		AbsentCount:            total - present,
		FromDate:               from,
		ToDate:                 to,
	}, nil
}

func (s *InsightService) DepartmentHeadcount(ctx context.Context) (DepartmentCounts, error) {
	rows, err := s.stats.EmployeesByDepartment(ctx, true)
	if err != nil {
		return DepartmentCounts{}, err
	}
	return DepartmentCounts{Departments: nonNil(rows)}, nil
}

func (s *InsightService) AttendanceReport(ctx context.Context, from, to *Date) (AttendanceReport, error) {
	counts, err := s.stats.AttendanceStatusCounts(ctx, from, to)
	if err != nil {
		return AttendanceReport{}, err
	}
	total := sumCounts(counts)
	present, absent := counts[AttendancePresent], counts[AttendanceAbsent]
	return AttendanceReport{
		FromDate:     from,
		ToDate:       to,
		TotalRecords: total,
		Present:      present,
		Absent:       absent,
		Other:        total - present - absent,
	}, nil
}

// EmployeeCountByDepartment excludes employees without a department.
func (s *InsightService) EmployeeCountByDepartment(ctx context.Context) (DepartmentCounts, error) {
	rows, err := s.stats.EmployeesByDepartment(ctx, false)
	if err != nil {
		return DepartmentCounts{}, err
	}
	return DepartmentCounts{Departments: nonNil(rows)}, nil
}

// Calendar collects attendance, holidays and approved leave for [from, to].
// A to before from is clamped to from.
func (s *InsightService) Calendar(ctx context.Context, from, to Date) (Calendar, error) {
	if from.IsZero() || to.IsZero() {
		return Calendar{}, apperr.FieldInvalid("from_date", "from_date and to_date are required")
	}
	if to.Before(from) {
		to = from
	}
	out := Calendar{
		FromDate:       from,
		ToDate:         to,
		AttendanceLogs: []CalendarAttendance{},
		Holidays:       []CalendarHoliday{},
		Leave:          []CalendarLeave{},
	}

	logs, err := s.attendance.RangeAttendance(ctx, AttendanceFilter{From: &from, To: &to, ActiveOnly: true})
	if err != nil {
		return Calendar{}, err
	}
	for _, a := range logs {
		out.AttendanceLogs = append(out.AttendanceLogs, CalendarAttendance{
			ID:           a.ID,
			Date:         a.Date,
			EmployeeID:   a.EmployeeID,
			EmployeeName: a.EmployeeName,
			EmployeeCode: a.EmployeeCode,
			Status:       a.Status,
			CheckInTime:  a.CheckInTime,
			CheckOutTime: a.CheckOutTime,
			WorkHours:    a.WorkHours,
			Notes:        a.Notes,
		})
	}

	holidays, err := s.holidays.RangeHolidays(ctx, from, to)
	if err != nil {
		return Calendar{}, err
	}
	for _, h := range holidays {
		out.Holidays = append(out.Holidays, CalendarHoliday{ID: h.ID, Name: h.Name, Date: h.Date, Year: h.Year})
	}

	leave, err := s.leave.ApprovedLeaveOverlapping(ctx, from, to)
	if err != nil {
		return Calendar{}, err
	}
	for _, r := range leave {
		out.Leave = append(out.Leave, CalendarLeave{
			ID:          r.ID,
			EmployeeID:  r.EmployeeID,
			FromDate:    r.FromDate,
			ToDate:      r.ToDate,
			LeaveTypeID: r.LeaveTypeID,
		})
	}
	return out, nil
}


func sumCounts(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

func nonNil(rows []DepartmentCount) []DepartmentCount {
	if rows == nil {
		return []DepartmentCount{}
	}
	return rows
}
