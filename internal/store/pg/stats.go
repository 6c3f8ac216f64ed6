package pg

import (
	"context"

	"github.com/hrmslite/hrms/internal/hrm"
)

func (s *Store) CountActiveEmployees(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `select count(*) from employees where is_active = true`); err != nil {
		return 0, err
	}
	return n, nil
}

type statusCount struct {
	Status string `db:"status"`
	N      int    `db:"n"`
}

func (s *Store) AttendanceStatusCounts(ctx context.Context, from, to *hrm.Date) (map[string]int, error) {
	var where filter
	if from != nil {
		where.add("date >= ?", *from)
	}
	if to != nil {
		where.add("date <= ?", *to)
	}
	var rows []statusCount
	query := s.db.Rebind(`select status, count(*) as n from attendance` + where.where() + ` group by status`)
	if err := s.db.SelectContext(ctx, &rows, query, where.args...); err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}

func (s *Store) EmployeesByDepartment(ctx context.Context, includeUnassigned bool) ([]hrm.DepartmentCount, error) {
	where := filter{}
	where.add("is_active = true")
	if !includeUnassigned {
		where.add("department is not null")
	}
	rows := []hrm.DepartmentCount{}
	query := `select department as name, count(*) as employee_count from employees` +
		where.where() + ` group by department order by department nulls last`
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	return rows, nil
}
