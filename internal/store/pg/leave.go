package pg

import (
	"context"

	"github.com/hrmslite/hrms/internal/envelope"
	"github.com/hrmslite/hrms/internal/hrm"
)

const leaveTypeColumns = `id, name, code, default_days_per_year, description`

func (s *Store) ListLeaveTypes(ctx context.Context, page envelope.Page) ([]hrm.LeaveType, int, error) {
	rows := []hrm.LeaveType{}
	total, err := s.selectPage(ctx, &rows,
		`select `+leaveTypeColumns+` from leave_types`,
		`select count(*) from leave_types`,
		"name, id", filter{}, page)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Store) GetLeaveType(ctx context.Context, id int64) (hrm.LeaveType, error) {
	var lt hrm.LeaveType
	if err := s.db.GetContext(ctx, &lt, `select `+leaveTypeColumns+` from leave_types where id = $1`, id); err != nil {
		return hrm.LeaveType{}, mapReadError(err)
	}
	return lt, nil
}

func (s *Store) LeaveTypeCodeExists(ctx context.Context, code string, excludeID int64) (bool, error) {
	return s.exists(ctx, `select 1 from leave_types where code = ? and id <> ?`, code, excludeID)
}

func (s *Store) CreateLeaveType(ctx context.Context, lt hrm.LeaveType) (hrm.LeaveType, error) {
	var out hrm.LeaveType
	err := s.db.GetContext(ctx, &out, `
		insert into leave_types (name, code, default_days_per_year, description)
		values ($1, $2, $3, $4)
		returning `+leaveTypeColumns,
		lt.Name, lt.Code, lt.DefaultDaysPerYear, lt.Description)
	if err != nil {
		return hrm.LeaveType{}, mapWriteError(err)
	}
	return out, nil
}

func (s *Store) UpdateLeaveType(ctx context.Context, lt hrm.LeaveType) (hrm.LeaveType, error) {
	var out hrm.LeaveType
	err := s.db.GetContext(ctx, &out, `
		update leave_types set name = $1, code = $2, default_days_per_year = $3, description = $4
		where id = $5
		returning `+leaveTypeColumns,
		lt.Name, lt.Code, lt.DefaultDaysPerYear, lt.Description, lt.ID)
	if err != nil {
		return hrm.LeaveType{}, mapWriteError(err)
	}
	return out, nil
}

func (s *Store) DeleteLeaveType(ctx context.Context, id int64) error {
	return s.execAffected(ctx, `delete from leave_types where id = ?`, id)
}

const leaveBalanceSelect = `
	select b.id, b.employee_id, b.leave_type_id, b.year, b.balance_days, b.used_days,
		e.full_name as employee_name, t.name as leave_type_name
	from leave_balances b
	join employees e on e.id = b.employee_id
	join leave_types t on t.id = b.leave_type_id`

func withAvailable(rows []hrm.LeaveBalance) []hrm.LeaveBalance {
	for i := range rows {
		rows[i] = rows[i].WithAvailable()
	}
	return rows
}

func (s *Store) ListLeaveBalances(ctx context.Context, f hrm.LeaveBalanceFilter, page envelope.Page) ([]hrm.LeaveBalance, int, error) {
	var where filter
	if f.EmployeeID != nil {
		where.add("b.employee_id = ?", *f.EmployeeID)
	}
	if f.Year != nil {
		where.add("b.year = ?", *f.Year)
	}
	rows := []hrm.LeaveBalance{}
	total, err := s.selectPage(ctx, &rows, leaveBalanceSelect,
		`select count(*) from leave_balances b`,
		"b.year desc, b.employee_id, b.leave_type_id", where, page)
	if err != nil {
		return nil, 0, err
	}
	return withAvailable(rows), total, nil
}

func (s *Store) EmployeeLeaveBalances(ctx context.Context, employeeID int64, year int) ([]hrm.LeaveBalance, error) {
	rows := []hrm.LeaveBalance{}
	err := s.db.SelectContext(ctx, &rows, leaveBalanceSelect+`
		where b.employee_id = $1 and b.year = $2
		order by t.name`, employeeID, year)
	if err != nil {
		return nil, err
	}
	return withAvailable(rows), nil
}

func (s *Store) GetLeaveBalance(ctx context.Context, id int64) (hrm.LeaveBalance, error) {
	var b hrm.LeaveBalance
	if err := s.db.GetContext(ctx, &b, leaveBalanceSelect+` where b.id = $1`, id); err != nil {
		return hrm.LeaveBalance{}, mapReadError(err)
	}
	return b.WithAvailable(), nil
}

func (s *Store) LeaveBalanceExists(ctx context.Context, employeeID, leaveTypeID int64, year int) (bool, error) {
	return s.exists(ctx, `select 1 from leave_balances where employee_id = ? and leave_type_id = ? and year = ?`,
		employeeID, leaveTypeID, year)
}

func (s *Store) CreateLeaveBalance(ctx context.Context, b hrm.LeaveBalance) (hrm.LeaveBalance, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `
		insert into leave_balances (employee_id, leave_type_id, year, balance_days, used_days)
		values ($1, $2, $3, $4, $5)
		returning id
	`, b.EmployeeID, b.LeaveTypeID, b.Year, b.BalanceDays, b.UsedDays)
	if err != nil {
		return hrm.LeaveBalance{}, mapWriteError(err)
	}
	return s.GetLeaveBalance(ctx, id)
}

func (s *Store) UpdateLeaveBalance(ctx context.Context, b hrm.LeaveBalance) (hrm.LeaveBalance, error) {
	res, err := s.db.ExecContext(ctx, `
		update leave_balances set balance_days = $1, used_days = $2
		where id = $3
	`, b.BalanceDays, b.UsedDays, b.ID)
	if err != nil {
		return hrm.LeaveBalance{}, mapWriteError(err)
	}
	if aff, err := res.RowsAffected(); err != nil {
		return hrm.LeaveBalance{}, err
	} else if aff == 0 {
		return hrm.LeaveBalance{}, errNotFound()
	}
	return s.GetLeaveBalance(ctx, b.ID)
}

const leaveRequestSelect = `
	select r.id, r.employee_id, r.leave_type_id, r.from_date, r.to_date, r.status, r.reason,
		r.approved_by_id, r.created_at, r.updated_at,
		e.full_name as employee_name, t.name as leave_type_name
	from leave_requests r
	join employees e on e.id = r.employee_id
	join leave_types t on t.id = r.leave_type_id`

func withTotalDays(rows []hrm.LeaveRequest) []hrm.LeaveRequest {
	for i := range rows {
		rows[i] = rows[i].WithTotalDays()
	}
	return rows
}

func (s *Store) ListLeaveRequests(ctx context.Context, f hrm.LeaveRequestFilter, page envelope.Page) ([]hrm.LeaveRequest, int, error) {
	var where filter
	if f.EmployeeID != nil {
		where.add("r.employee_id = ?", *f.EmployeeID)
	}
	if f.Status != nil {
		where.add("r.status = ?", *f.Status)
	}
	if f.From != nil {
		where.add("r.from_date >= ?", *f.From)
	}
	if f.To != nil {
		where.add("r.to_date <= ?", *f.To)
	}
	rows := []hrm.LeaveRequest{}
	total, err := s.selectPage(ctx, &rows, leaveRequestSelect,
		`select count(*) from leave_requests r`,
		"r.from_date desc, r.id desc", where, page)
	if err != nil {
		return nil, 0, err
	}
	return withTotalDays(rows), total, nil
}

func (s *Store) ApprovedLeaveOverlapping(ctx context.Context, from, to hrm.Date) ([]hrm.LeaveRequest, error) {
	rows := []hrm.LeaveRequest{}
	err := s.db.SelectContext(ctx, &rows, leaveRequestSelect+`
		where r.status = $1 and r.from_date <= $2 and r.to_date >= $3
		order by r.from_date, r.id`, hrm.LeaveApproved, to, from)
	if err != nil {
		return nil, err
	}
	return withTotalDays(rows), nil
}

func (s *Store) GetLeaveRequest(ctx context.Context, id int64) (hrm.LeaveRequest, error) {
	var r hrm.LeaveRequest
	if err := s.db.GetContext(ctx, &r, leaveRequestSelect+` where r.id = $1`, id); err != nil {
		return hrm.LeaveRequest{}, mapReadError(err)
	}
	return r.WithTotalDays(), nil
}

func (s *Store) CreateLeaveRequest(ctx context.Context, r hrm.LeaveRequest) (hrm.LeaveRequest, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `
		insert into leave_requests (employee_id, leave_type_id, from_date, to_date, status, reason)
		values ($1, $2, $3, $4, $5, $6)
		returning id
	`, r.EmployeeID, r.LeaveTypeID, r.FromDate, r.ToDate, r.Status, r.Reason)
	if err != nil {
		return hrm.LeaveRequest{}, mapWriteError(err)
	}
	return s.GetLeaveRequest(ctx, id)
}

func (s *Store) UpdateLeaveRequest(ctx context.Context, r hrm.LeaveRequest) (hrm.LeaveRequest, error) {
	res, err := s.db.ExecContext(ctx, `
		update leave_requests set status = $1, reason = $2, approved_by_id = $3, updated_at = now()
		where id = $4
	`, r.Status, r.Reason, r.ApprovedByID, r.ID)
	if err != nil {
		return hrm.LeaveRequest{}, mapWriteError(err)
	}
	if aff, err := res.RowsAffected(); err != nil {
		return hrm.LeaveRequest{}, err
	} else if aff == 0 {
		return hrm.LeaveRequest{}, errNotFound()
	}
	return s.GetLeaveRequest(ctx, r.ID)
}
