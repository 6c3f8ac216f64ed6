package pg

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hrmslite/hrms/internal/apperr"
)

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
	pgErrCheckViolation      = "23514"
)

type constraintInfo struct {
	field   string
	message string
}

// uniqueConstraints maps constraint names from the schema to client errors.
var uniqueConstraints = map[string]constraintInfo{
	"users_email_key":           {"email", "Email already registered"},
	"roles_code_key":            {"code", "Role code already exists"},
	"permissions_code_key":      {"code", "Permission code already exists"},
	"departments_code_key":      {"code", "Department code already exists"},
	"employees_employee_id_key": {"employee_id", "Employee ID already exists"},
	"employees_email_key":       {"email", "Email already registered"},
	"uq_employee_date":          {"date", "Attendance already marked for this employee on this date"},
	"leave_types_code_key":      {"code", "Leave type code already exists"},
	"uq_leave_balance":          {"leave_type_id", "Leave balance already exists for this employee, leave type and year"},
}

// foreignKeys maps FK constraint names to the referencing field.
var foreignKeys = map[string]constraintInfo{
	"users_role_id_fkey":                {"role_id", "Role not found"},
	"employees_department_id_fkey":      {"department_id", "Department not found"},
	"employees_manager_id_fkey":         {"manager_id", "Employee not found"},
	"attendance_employee_id_fkey":       {"employee_id", "Employee not found"},
	"leave_balances_employee_id_fkey":   {"employee_id", "Employee not found"},
	"leave_balances_leave_type_id_fkey": {"leave_type_id", "Leave type not found"},
	"leave_requests_employee_id_fkey":   {"employee_id", "Employee not found"},
	"leave_requests_leave_type_id_fkey": {"leave_type_id", "Leave type not found"},
	"leave_requests_approved_by_fkey":   {"approved_by_id", "User not found"},
	"role_permissions_permission_fkey":  {"permission_ids", "Permission not found"},
}

// checkConstraints maps table-level checks, which carry no column name, to the field they guard.
var checkConstraints = map[string]constraintInfo{
	"employees_gender_check":         {"gender", "invalid gender"},
	"employees_employee_type_check":  {"employee_type", "invalid employee type"},
	"attendance_status_check":        {"status", "invalid attendance status"},
	"attendance_source_check":        {"source", "invalid attendance source"},
	"attendance_work_hours_check":    {"work_hours", "must be between 0 and 24"},
	"leave_types_default_days_check": {"default_days_per_year", "must not be negative"},
	"leave_balances_year_check":      {"year", "must be between 2000 and 2100"},
	"leave_balances_days_check":      {"balance_days", "days must not be negative"},
	"leave_requests_status_check":    {"status", "invalid leave request status"},
	"leave_requests_dates_check":     {"to_date", "must not be before from_date"},
}

// referencedMessages overrides the generic delete conflict message.
var referencedMessages = map[string]string{
	"users_role_id_fkey": "Role is assigned to users",
}

func maybePgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func errNotFound() error { return apperr.ErrNotFound }

// mapReadError turns sql.ErrNoRows into apperr.ErrNotFound.
func mapReadError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errNotFound()
	}
	return err
}

// mapWriteError converts constraint violations raised by inserts and updates.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errNotFound()
	}
	pgErr, ok := maybePgError(err)
	if !ok {
		return err
	}
	switch pgErr.Code {
	case pgErrUniqueViolation:
		if info, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
			return apperr.Conflict(info.message, info.field)
		}
		return apperr.Conflict("Resource already exists", "")
	case pgErrForeignKeyViolation:
		if info, ok := foreignKeys[pgErr.ConstraintName]; ok {
			return apperr.NotFound(info.message, info.field)
		}
		return apperr.NotFound("Referenced resource not found", "")
	case pgErrCheckViolation:
		if info, ok := checkConstraints[pgErr.ConstraintName]; ok {
			return apperr.FieldInvalid(info.field, info.message)
		}
		field := pgErr.ColumnName
		if field == "" {
			field = "body"
		}
		return apperr.FieldInvalid(field, "violates "+pgErr.ConstraintName)
	}
	return err
}

// mapDeleteError reports rows still referenced elsewhere as a conflict.
func mapDeleteError(err error) error {
	if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrForeignKeyViolation {
		msg, ok := referencedMessages[pgErr.ConstraintName]
		if !ok {
			msg = "Resource is still referenced"
		}
		return apperr.Conflict(msg, foreignKeys[pgErr.ConstraintName].field)
	}
	return mapWriteError(err)
}
