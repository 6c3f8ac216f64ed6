package hrm

import (
	"time"

	"github.com/hrmslite/hrms/internal/patch"
)

// Enumerations stored as text with check constraints.
const (
	GenderMale           = "male"
	GenderFemale         = "female"
	GenderOther          = "other"
	GenderPreferNotToSay = "prefer_not_to_say"

	EmployeeFullTime = "full_time"
	EmployeeContract = "contract"
	EmployeeIntern   = "intern"
	EmployeePartTime = "part_time"

	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceHalfDay = "half_day"
	AttendanceOnLeave = "on_leave"
	AttendanceWFH     = "wfh"

	SourceWeb       = "web"
	SourceManual    = "manual"
	SourceBiometric = "biometric"
	SourceAPI       = "api"

	LeavePending   = "pending"
	LeaveApproved  = "approved"
	LeaveRejected  = "rejected"
	LeaveCancelled = "cancelled"
)

type Department struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Code        string  `db:"code" json:"code"`
	Description *string `db:"description" json:"description"`
}

type DepartmentInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Code        string  `json:"code" validate:"required,min=1,max=20"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type DepartmentUpdate struct {
	Name        patch.Field[string] `json:"name" validate:"omitempty,min=1,max=100"`
	Code        patch.Field[string] `json:"code" validate:"omitempty,min=1,max=20"`
	Description patch.Field[string] `json:"description" validate:"omitempty,max=500"`
}

type Employee struct {
	ID                    int64     `db:"id" json:"id"`
	EmployeeID            string    `db:"employee_id" json:"employee_id"`
	FullName              string    `db:"full_name" json:"full_name"`
	Email                 string    `db:"email" json:"email"`
	Phone                 *string   `db:"phone" json:"phone"`
	Department            *string   `db:"department" json:"department"`
	DepartmentID          *int64    `db:"department_id" json:"department_id"`
	Designation           *string   `db:"designation" json:"designation"`
	DateOfJoining         *Date     `db:"date_of_joining" json:"date_of_joining"`
	ManagerID             *int64    `db:"manager_id" json:"manager_id"`
	Address               *string   `db:"address" json:"address"`
	EmergencyContactName  *string   `db:"emergency_contact_name" json:"emergency_contact_name"`
	EmergencyContactPhone *string   `db:"emergency_contact_phone" json:"emergency_contact_phone"`
	DateOfBirth           *Date     `db:"date_of_birth" json:"date_of_birth"`
	Gender                *string   `db:"gender" json:"gender"`
	EmployeeType          string    `db:"employee_type" json:"employee_type"`
	IsActive              bool      `db:"is_active" json:"is_active"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

type EmployeeInput struct {
	EmployeeID            string  `json:"employee_id" validate:"required,min=1,max=50"`
	FullName              string  `json:"full_name" validate:"required,min=1,max=255"`
	Email                 string  `json:"email" validate:"required,hrms_email"`
	Phone                 *string `json:"phone" validate:"omitempty,max=20"`
	Department            *string `json:"department" validate:"omitempty,max=100"`
	DepartmentID          *int64  `json:"department_id" validate:"omitempty,gt=0"`
	Designation           *string `json:"designation" validate:"omitempty,max=100"`
	DateOfJoining         *Date   `json:"date_of_joining"`
	ManagerID             *int64  `json:"manager_id" validate:"omitempty,gt=0"`
	Address               *string `json:"address"`
	EmergencyContactName  *string `json:"emergency_contact_name" validate:"omitempty,max=255"`
	EmergencyContactPhone *string `json:"emergency_contact_phone" validate:"omitempty,max=20"`
	DateOfBirth           *Date   `json:"date_of_birth"`
	Gender                *string `json:"gender" validate:"omitempty,oneof=male female other prefer_not_to_say"`
	EmployeeType          *string `json:"employee_type" validate:"omitempty,oneof=full_time contract intern part_time"`
}

// EmployeeUpdate is a partial update; nullable columns accept explicit null.
type EmployeeUpdate struct {
	FullName              patch.Field[string] `json:"full_name" validate:"omitempty,min=1,max=255"`
	Email                 patch.Field[string] `json:"email" validate:"omitempty,hrms_email"`
	Phone                 patch.Field[string] `json:"phone" validate:"omitempty,max=20"`
	Department            patch.Field[string] `json:"department" validate:"omitempty,max=100"`
	DepartmentID          patch.Field[int64]  `json:"department_id" validate:"omitempty,gt=0"`
	Designation           patch.Field[string] `json:"designation" validate:"omitempty,max=100"`
	DateOfJoining         patch.Field[Date]   `json:"date_of_joining"`
	ManagerID             patch.Field[int64]  `json:"manager_id" validate:"omitempty,gt=0"`
	Address               patch.Field[string] `json:"address"`
	EmergencyContactName  patch.Field[string] `json:"emergency_contact_name" validate:"omitempty,max=255"`
	EmergencyContactPhone patch.Field[string] `json:"emergency_contact_phone" validate:"omitempty,max=20"`
	DateOfBirth           patch.Field[Date]   `json:"date_of_birth"`
	Gender                patch.Field[string] `json:"gender" validate:"omitempty,oneof=male female other prefer_not_to_say"`
	EmployeeType          patch.Field[string] `json:"employee_type" validate:"omitempty,oneof=full_time contract intern part_time"`
	IsActive              patch.Field[bool]   `json:"is_active"`
}

type EmployeeFilter struct {
	Department   *string
	DepartmentID *int64
	IsActive     *bool
}

type Attendance struct {
	ID           int64    `db:"id" json:"id"`
	EmployeeID   int64    `db:"employee_id" json:"employee_id"`
	Date         Date     `db:"date" json:"date"`
	Status       string   `db:"status" json:"status"`
	CheckInTime  *Clock   `db:"check_in_time" json:"check_in_time"`
	CheckOutTime *Clock   `db:"check_out_time" json:"check_out_time"`
	WorkHours    *float64 `db:"work_hours" json:"work_hours"`
	Source       *string  `db:"source" json:"source"`
	Notes        *string  `db:"notes" json:"notes"`
}

// AttendanceRecord is an attendance row joined with its employee.
type AttendanceRecord struct {
	Attendance
	EmployeeCode *string `db:"employee_employee_id" json:"employee_employee_id"`
	EmployeeName *string `db:"employee_full_name" json:"employee_full_name"`
}

type AttendanceInput struct {
	Date         Date     `json:"date" validate:"required"`
	Status       string   `json:"status" validate:"omitempty,oneof=present absent half_day on_leave wfh"`
	CheckInTime  *Clock   `json:"check_in_time"`
	CheckOutTime *Clock   `json:"check_out_time"`
	WorkHours    *float64 `json:"work_hours" validate:"omitempty,min=0,max=24"`
	Source       *string  `json:"source" validate:"omitempty,oneof=web manual biometric api"`
	Notes        *string  `json:"notes"`
}

type AttendanceUpdate struct {
	Status       patch.Field[string]  `json:"status" validate:"omitempty,oneof=present absent half_day on_leave wfh"`
	CheckInTime  patch.Field[Clock]   `json:"check_in_time"`
	CheckOutTime patch.Field[Clock]   `json:"check_out_time"`
	WorkHours    patch.Field[float64] `json:"work_hours" validate:"omitempty,min=0,max=24"`
	Source       patch.Field[string]  `json:"source" validate:"omitempty,oneof=web manual biometric api"`
	Notes        patch.Field[string]  `json:"notes"`
}

type AttendanceFilter struct {
	EmployeeID *int64
	From       *Date
	To         *Date
	Status     *string
	Department *string
	// ActiveOnly restricts rows to active employees.
	ActiveOnly bool
}

type Holiday struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Date        Date    `db:"date" json:"date"`
	Year        *int    `db:"year" json:"year"`
	Description *string `db:"description" json:"description"`
}

type HolidayInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Date        Date    `json:"date" validate:"required"`
	Year        *int    `json:"year" validate:"omitempty,min=2000,max=2100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

type HolidayUpdate struct {
	Name        patch.Field[string] `json:"name" validate:"omitempty,min=1,max=100"`
	Date        patch.Field[Date]   `json:"date"`
	Year        patch.Field[int]    `json:"year" validate:"omitempty,min=2000,max=2100"`
	Description patch.Field[string] `json:"description" validate:"omitempty,max=255"`
}

type HolidayFilter struct {
	Year *int
	From *Date
	To   *Date
}

type LeaveType struct {
	ID                 int64   `db:"id" json:"id"`
	Name               string  `db:"name" json:"name"`
	Code               string  `db:"code" json:"code"`
	DefaultDaysPerYear int     `db:"default_days_per_year" json:"default_days_per_year"`
	Description        *string `db:"description" json:"description"`
}

type LeaveTypeInput struct {
	Name               string  `json:"name" validate:"required,min=1,max=50"`
	Code               string  `json:"code" validate:"required,min=1,max=20"`
	DefaultDaysPerYear int     `json:"default_days_per_year" validate:"min=0"`
	Description        *string `json:"description" validate:"omitempty,max=255"`
}

type LeaveTypeUpdate struct {
	Name               patch.Field[string] `json:"name" validate:"omitempty,min=1,max=50"`
	Code               patch.Field[string] `json:"code" validate:"omitempty,min=1,max=20"`
	DefaultDaysPerYear patch.Field[int]    `json:"default_days_per_year" validate:"omitempty,min=0"`
	Description        patch.Field[string] `json:"description" validate:"omitempty,max=255"`
}

type LeaveBalance struct {
	ID            int64   `db:"id" json:"id"`
	EmployeeID    int64   `db:"employee_id" json:"employee_id"`
	LeaveTypeID   int64   `db:"leave_type_id" json:"leave_type_id"`
	Year          int     `db:"year" json:"year"`
	BalanceDays   int     `db:"balance_days" json:"balance_days"`
	UsedDays      int     `db:"used_days" json:"used_days"`
	EmployeeName  *string `db:"employee_name" json:"employee_name"`
	LeaveTypeName *string `db:"leave_type_name" json:"leave_type_name"`
	AvailableDays int     `db:"-" json:"available_days"`
}

// WithAvailable fills the derived available_days.
func (b LeaveBalance) WithAvailable() LeaveBalance {
	b.AvailableDays = b.BalanceDays - b.UsedDays
	return b
}

type LeaveBalanceInput struct {
	EmployeeID  int64 `json:"employee_id" validate:"required,gt=0"`
	LeaveTypeID int64 `json:"leave_type_id" validate:"required,gt=0"`
	Year        int   `json:"year" validate:"required,min=2000,max=2100"`
	BalanceDays int   `json:"balance_days" validate:"min=0"`
	UsedDays    int   `json:"used_days" validate:"min=0"`
}

type LeaveBalanceUpdate struct {
	BalanceDays patch.Field[int] `json:"balance_days" validate:"omitempty,min=0"`
	UsedDays    patch.Field[int] `json:"used_days" validate:"omitempty,min=0"`
}

type LeaveBalanceFilter struct {
	EmployeeID *int64
	Year       *int
}

type LeaveRequest struct {
	ID            int64     `db:"id" json:"id"`
	EmployeeID    int64     `db:"employee_id" json:"employee_id"`
	LeaveTypeID   int64     `db:"leave_type_id" json:"leave_type_id"`
	FromDate      Date      `db:"from_date" json:"from_date"`
	ToDate        Date      `db:"to_date" json:"to_date"`
	Status        string    `db:"status" json:"status"`
	Reason        *string   `db:"reason" json:"reason"`
	ApprovedByID  *int64    `db:"approved_by_id" json:"approved_by_id"`
	EmployeeName  *string   `db:"employee_name" json:"employee_name"`
	LeaveTypeName *string   `db:"leave_type_name" json:"leave_type_name"`
	TotalDays     int       `db:"-" json:"total_days"`
	CreatedAt     time.Time `db:"created_at" json:"-"`
	UpdatedAt     time.Time `db:"updated_at" json:"-"`
}

// WithTotalDays fills the inclusive day count.
func (r LeaveRequest) WithTotalDays() LeaveRequest {
	r.TotalDays = InclusiveDays(r.FromDate, r.ToDate)
	return r
}

type LeaveRequestInput struct {
	LeaveTypeID int64   `json:"leave_type_id" validate:"required,gt=0"`
	FromDate    Date    `json:"from_date" validate:"required"`
	ToDate      Date    `json:"to_date" validate:"required"`
	Reason      *string `json:"reason"`
}

type LeaveRequestUpdate struct {
	Status patch.Field[string] `json:"status" validate:"omitempty,oneof=pending approved rejected cancelled"`
	Reason patch.Field[string] `json:"reason"`
}

type LeaveRequestFilter struct {
	EmployeeID *int64
	Status     *string
	From       *Date
	To         *Date
}

// InclusiveDays counts days in [from, to], both ends included.
func InclusiveDays(from, to Date) int {
	return from.DaysUntil(to) + 1
}
