package hrm

import (
	"context"

	"github.com/hrmslite/hrms/internal/envelope"
)

// Repositories return apperr.ErrNotFound when a row is missing. Update
// methods write every mutable column of the given row.

type DepartmentStore interface {
	ListDepartments(ctx context.Context, page envelope.Page) ([]Department, int, error)
	GetDepartment(ctx context.Context, id int64) (Department, error)
	DepartmentCodeExists(ctx context.Context, code string, excludeID int64) (bool, error)
	CreateDepartment(ctx context.Context, d Department) (Department, error)
	UpdateDepartment(ctx context.Context, d Department) (Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
}

type EmployeeStore interface {
	ListEmployees(ctx context.Context, f EmployeeFilter, page envelope.Page) ([]Employee, int, error)
	GetEmployee(ctx context.Context, id int64) (Employee, error)
	EmployeeCodeExists(ctx context.Context, employeeID string) (bool, error)
	EmployeeEmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	CreateEmployee(ctx context.Context, e Employee) (Employee, error)
	UpdateEmployee(ctx context.Context, e Employee) (Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

type AttendanceStore interface {
	ListAttendance(ctx context.Context, f AttendanceFilter, page envelope.Page) ([]AttendanceRecord, int, error)
	// RangeAttendance returns every matching row ordered by date, employee.
	RangeAttendance(ctx context.Context, f AttendanceFilter) ([]AttendanceRecord, error)
	GetAttendance(ctx context.Context, id int64) (Attendance, error)
	AttendanceExists(ctx context.Context, employeeID int64, date Date) (bool, error)
	CountPresentDays(ctx context.Context, employeeID int64, from, to *Date) (int, error)
	CreateAttendance(ctx context.Context, a Attendance) (Attendance, error)
	UpdateAttendance(ctx context.Context, a Attendance) (Attendance, error)
	DeleteAttendance(ctx context.Context, id int64) error
}

type HolidayStore interface {
	ListHolidays(ctx context.Context, f HolidayFilter, page envelope.Page) ([]Holiday, int, error)
	// RangeHolidays returns every holiday dated within [from, to], ordered by date.
	RangeHolidays(ctx context.Context, from, to Date) ([]Holiday, error)
	GetHoliday(ctx context.Context, id int64) (Holiday, error)
	CreateHoliday(ctx context.Context, h Holiday) (Holiday, error)
	UpdateHoliday(ctx context.Context, h Holiday) (Holiday, error)
	DeleteHoliday(ctx context.Context, id int64) error
}

type LeaveTypeStore interface {
	ListLeaveTypes(ctx context.Context, page envelope.Page) ([]LeaveType, int, error)
	GetLeaveType(ctx context.Context, id int64) (LeaveType, error)
	LeaveTypeCodeExists(ctx context.Context, code string, excludeID int64) (bool, error)
	CreateLeaveType(ctx context.Context, lt LeaveType) (LeaveType, error)
	UpdateLeaveType(ctx context.Context, lt LeaveType) (LeaveType, error)
	DeleteLeaveType(ctx context.Context, id int64) error
}

type LeaveBalanceStore interface {
	ListLeaveBalances(ctx context.Context, f LeaveBalanceFilter, page envelope.Page) ([]LeaveBalance, int, error)
	EmployeeLeaveBalances(ctx context.Context, employeeID int64, year int) ([]LeaveBalance, error)
	GetLeaveBalance(ctx context.Context, id int64) (LeaveBalance, error)
	LeaveBalanceExists(ctx context.Context, employeeID, leaveTypeID int64, year int) (bool, error)
	CreateLeaveBalance(ctx context.Context, b LeaveBalance) (LeaveBalance, error)
	UpdateLeaveBalance(ctx context.Context, b LeaveBalance) (LeaveBalance, error)
}

type LeaveRequestStore interface {
	ListLeaveRequests(ctx context.Context, f LeaveRequestFilter, page envelope.Page) ([]LeaveRequest, int, error)
	// ApprovedLeaveOverlapping returns approved requests intersecting [from, to].
	ApprovedLeaveOverlapping(ctx context.Context, from, to Date) ([]LeaveRequest, error)
	GetLeaveRequest(ctx context.Context, id int64) (LeaveRequest, error)
	CreateLeaveRequest(ctx context.Context, r LeaveRequest) (LeaveRequest, error)
	UpdateLeaveRequest(ctx context.Context, r LeaveRequest) (LeaveRequest, error)
}

// StatsStore serves dashboard and report aggregates.
type StatsStore interface {
	CountActiveEmployees(ctx context.Context) (int, error)
	// AttendanceStatusCounts returns row counts keyed by status within the optional range.
	AttendanceStatusCounts(ctx context.Context, from, to *Date) (map[string]int, error)
	// EmployeesByDepartment groups active employees by the denormalised department name.
	EmployeesByDepartment(ctx context.Context, includeUnassigned bool) ([]DepartmentCount, error)
}

// Store is everything the domain services need.
type Store interface {
	DepartmentStore
	EmployeeStore
	AttendanceStore
	HolidayStore
	LeaveTypeStore
	LeaveBalanceStore
	LeaveRequestStore
	StatsStore
}
