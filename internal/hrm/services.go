// Package hrm holds the HR domain: employees, departments, attendance,
// leave, holidays and the dashboard/report views built on them.
package hrm

import "github.com/hrmslite/hrms/internal/envelope"

// Services bundles every domain service over one Store.
type Services struct {
	Departments   *DepartmentService
	Employees     *EmployeeService
	Attendance    *AttendanceService
	Holidays      *HolidayService
	LeaveTypes    *LeaveTypeService
	LeaveBalances *LeaveBalanceService
	LeaveRequests *LeaveRequestService
	Insights      *InsightService
}

func NewServices(store Store) *Services {
	return &Services{
		Departments:   NewDepartmentService(store),
		Employees:     NewEmployeeService(store, store),
		Attendance:    NewAttendanceService(store, store),
		Holidays:      NewHolidayService(store),
		LeaveTypes:    NewLeaveTypeService(store),
		LeaveBalances: NewLeaveBalanceService(store, store, store),
		LeaveRequests: NewLeaveRequestService(store, store, store),
		Insights:      NewInsightService(store, store, store, store),
	}
}

func pageOf(page, perPage int) envelope.Page {
	return envelope.Page{Page: page, PerPage: perPage}
}
