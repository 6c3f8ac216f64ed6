package auth

// Permission codes checked by the HTTP layer.
const (
	PermEmployeeEdit     = "employee:edit"
	PermEmployeeDelete   = "employee:delete"
	PermAttendanceMark   = "attendance:mark"
	PermAttendanceView   = "attendance:view"
	PermLeaveApprove     = "leave:approve"
	PermLeaveTypeManage  = "leave_type:manage"
	PermRoleManage       = "role:manage"
	PermHolidayManage    = "holiday:manage"
	PermDepartmentManage = "department:manage"
	PermReportView       = "report:view"
	PermDataExport       = "data:export"
)

// BuiltinPermissions is the seeded catalog.
var BuiltinPermissions = []Permission{
	{Code: PermEmployeeEdit, Name: "Edit employees"},
	{Code: PermEmployeeDelete, Name: "Delete employees"},
	{Code: PermAttendanceMark, Name: "Mark attendance"},
	{Code: PermLeaveApprove, Name: "Approve leave"},
	{Code: PermRoleManage, Name: "Manage roles"},
	{Code: PermHolidayManage, Name: "Manage holidays"},
	{Code: PermReportView, Name: "View reports"},
	{Code: PermDataExport, Name: "Export data"},
	{Code: PermDepartmentManage, Name: "Manage departments"},
	{Code: PermAttendanceView, Name: "View attendance"},
	{Code: PermLeaveTypeManage, Name: "Manage leave types"},
}

// AdminRoleCode is the seeded role holding every permission.
const AdminRoleCode = "admin"
