package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/auth"
	"github.com/hrmslite/hrms/internal/obs"
)

// Handler builds the full router.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID, LoggingJSON, obs.Instrument, Recoverer, SecurityHeaders, CORS(a.corsOrigins))
	r.Use(func(next http.Handler) http.Handler { return MaxBodyBytes(next, a.maxBody) })

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, apperr.NotFound("Not found", ""))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, &apperr.Error{Status: http.StatusMethodNotAllowed, Code: apperr.CodeBadRequest, Message: "Method not allowed"})
	})

	r.Get("/health", a.health)
	r.Get("/readyz", a.readyz)
	r.Method(http.MethodGet, "/metrics", obs.Handler())

	r.Route(a.prefix, func(r chi.Router) {
		r.Get("/health", a.apiHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Use(func(next http.Handler) http.Handler { return RateLimit(next, a.rateBurst, a.ratePerSec) })
			r.Post("/login", a.login)
			r.Post("/refresh", a.refresh)
			r.Group(func(r chi.Router) {
				r.Use(a.requireAuth)
				r.Get("/me", a.me)
				r.Post("/change-password", a.changePassword)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(a.requireAuth)
			a.mountRBAC(r)
			a.mountEmployees(r)
			a.mountDepartments(r)
			a.mountAttendance(r)
			a.mountLeave(r)
			a.mountHolidays(r)
			a.mountInsights(r)
		})
	})
	return r
}

func (a *API) mountRBAC(r chi.Router) {
	manage := a.requirePermission(auth.PermRoleManage)
	r.Get("/permissions", a.listPermissions)
	r.With(manage).Post("/permissions", a.createPermission)

	r.Route("/roles", func(r chi.Router) {
		r.Get("/", a.listRoles)
		r.With(manage).Post("/", a.createRole)
		r.Get("/{role_id}", a.getRole)
		r.With(manage).Patch("/{role_id}", a.updateRole)
		r.With(manage).Delete("/{role_id}", a.deleteRole)
		r.With(manage).Put("/{role_id}/permissions", a.setRolePermissions)
	})
}

func (a *API) mountEmployees(r chi.Router) {
	edit := a.requirePermission(auth.PermEmployeeEdit)
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", a.listEmployees)
		r.With(edit).Post("/", a.createEmployee)
		r.Get("/{employee_id}", a.getEmployee)
		r.With(edit).Patch("/{employee_id}", a.updateEmployee)
		r.With(a.requirePermission(auth.PermEmployeeDelete)).Delete("/{employee_id}", a.deleteEmployee)
	})
}

func (a *API) mountDepartments(r chi.Router) {
	manage := a.requirePermission(auth.PermDepartmentManage)
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", a.listDepartments)
		r.With(manage).Post("/", a.createDepartment)
		r.Get("/{department_id}", a.getDepartment)
		r.With(manage).Patch("/{department_id}", a.updateDepartment)
		r.With(manage).Delete("/{department_id}", a.deleteDepartment)
	})
}

func (a *API) mountAttendance(r chi.Router) {
	mark := a.requirePermission(auth.PermAttendanceMark)
	r.Route("/attendance", func(r chi.Router) {
		r.Get("/", a.listAttendance)
		r.Get("/employee/{employee_id}", a.listEmployeeAttendance)
		r.Get("/employee/{employee_id}/present-days", a.presentDays)
		r.With(mark).Post("/employee/{employee_id}", a.markAttendance)
		r.With(mark).Patch("/{attendance_id}", a.updateAttendance)
		r.With(mark).Delete("/{attendance_id}", a.deleteAttendance)
	})
}

func (a *API) mountLeave(r chi.Router) {
	manage := a.requirePermission(auth.PermLeaveTypeManage)
	r.Route("/leave-types", func(r chi.Router) {
		r.Get("/", a.listLeaveTypes)
		r.With(manage).Post("/", a.createLeaveType)
		r.Get("/{leave_type_id}", a.getLeaveType)
		r.With(manage).Patch("/{leave_type_id}", a.updateLeaveType)
		r.With(manage).Delete("/{leave_type_id}", a.deleteLeaveType)
	})
	r.Route("/leave-balances", func(r chi.Router) {
		r.Get("/", a.listLeaveBalances)
		r.Get("/employee/{employee_id}", a.employeeLeaveBalances)
		r.With(manage).Post("/", a.createLeaveBalance)
		r.With(manage).Patch("/{balance_id}", a.updateLeaveBalance)
	})
	r.Route("/leave-requests", func(r chi.Router) {
		r.Get("/", a.listLeaveRequests)
		r.Get("/{request_id}", a.getLeaveRequest)
		r.Post("/employee/{employee_id}", a.submitLeaveRequest)
		// Status changes are checked in the handler.
		r.Patch("/{request_id}", a.updateLeaveRequest)
		r.With(a.requirePermission(auth.PermLeaveApprove)).Delete("/{request_id}", a.cancelLeaveRequest)
	})
}

func (a *API) mountHolidays(r chi.Router) {
	manage := a.requirePermission(auth.PermHolidayManage)
	r.Route("/holidays", func(r chi.Router) {
		r.Get("/", a.listHolidays)
		r.With(manage).Post("/", a.createHoliday)
		r.Get("/{holiday_id}", a.getHoliday)
		r.With(manage).Patch("/{holiday_id}", a.updateHoliday)
		r.With(manage).Delete("/{holiday_id}", a.deleteHoliday)
	})
}

func (a *API) mountInsights(r chi.Router) {
	r.Get("/dashboard/summary", a.dashboardSummary)
	r.Get("/dashboard/departments", a.dashboardDepartments)
	r.Get("/reports/attendance-summary", a.attendanceReport)
	r.Get("/reports/employee-count-by-department", a.employeeCountByDepartment)
	r.Get("/calendar/logs", a.calendarLogs)
}
