package hrm

import (
	"context"
	"sort"
	"strings"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/envelope"
)

// memStore is an in-memory Store for service tests.
type memStore struct {
	seq         int64
	departments map[int64]Department
	employees   map[int64]Employee
	attendance  map[int64]Attendance
	holidays    map[int64]Holiday
	leaveTypes  map[int64]LeaveType
	balances    map[int64]LeaveBalance
	requests    map[int64]LeaveRequest
}

var _ Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		departments: map[int64]Department{},
		employees:   map[int64]Employee{},
		attendance:  map[int64]Attendance{},
		holidays:    map[int64]Holiday{},
		leaveTypes:  map[int64]LeaveType{},
		balances:    map[int64]LeaveBalance{},
		requests:    map[int64]LeaveRequest{},
	}
}

func (m *memStore) next() int64 {
	m.seq++
	return m.seq
}

func paginate[T any](rows []T, page envelope.Page) ([]T, int) {
	total := len(rows)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.PerPage
	if end > total {
		end = total
	}
	return rows[start:end], total
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *memStore) ListDepartments(_ context.Context, page envelope.Page) ([]Department, int, error) {
	var out []Department
	for _, id := range sortedIDs(m.departments) {
		out = append(out, m.departments[id])
	}
	rows, total := paginate(out, page)
	return rows, total, nil
}

func (m *memStore) GetDepartment(_ context.Context, id int64) (Department, error) {
	d, ok := m.departments[id]
	if !ok {
		return Department{}, apperr.ErrNotFound
	}
	return d, nil
}

func (m *memStore) DepartmentCodeExists(_ context.Context, code string, excludeID int64) (bool, error) {
	for id, d := range m.departments {
		if d.Code == code && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateDepartment(_ context.Context, d Department) (Department, error) {
	d.ID = m.next()
	m.departments[d.ID] = d
	return d, nil
}

func (m *memStore) UpdateDepartment(_ context.Context, d Department) (Department, error) {
	m.departments[d.ID] = d
	return d, nil
}

func (m *memStore) DeleteDepartment(_ context.Context, id int64) error {
	if _, ok := m.departments[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.departments, id)
	return nil
}

func (m *memStore) ListEmployees(_ context.Context, f EmployeeFilter, page envelope.Page) ([]Employee, int, error) {
	var out []Employee
	for _, id := range sortedIDs(m.employees) {
		e := m.employees[id]
		if f.IsActive != nil && e.IsActive != *f.IsActive {
			continue
		}
		if f.DepartmentID != nil && (e.DepartmentID == nil || *e.DepartmentID != *f.DepartmentID) {
			continue
		}
		if f.Department != nil && (e.Department == nil || *e.Department != *f.Department) {
			continue
		}
		out = append(out, e)
	}
	rows, total := paginate(out, page)
	return rows, total, nil
}

func (m *memStore) GetEmployee(_ context.Context, id int64) (Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return Employee{}, apperr.ErrNotFound
	}
	return e, nil
}

func (m *memStore) EmployeeCodeExists(_ context.Context, code string) (bool, error) {
	for _, e := range m.employees {
		if e.EmployeeID == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) EmployeeEmailExists(_ context.Context, email string, excludeID int64) (bool, error) {
	for id, e := range m.employees {
		if strings.EqualFold(e.Email, email) && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateEmployee(_ context.Context, e Employee) (Employee, error) {
	e.ID = m.next()
	m.employees[e.ID] = e
	return e, nil
}

func (m *memStore) UpdateEmployee(_ context.Context, e Employee) (Employee, error) {
	m.employees[e.ID] = e
	return e, nil
}

func (m *memStore) DeleteEmployee(_ context.Context, id int64) error {
	if _, ok := m.employees[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.employees, id)
	return nil
}

func (m *memStore) matchAttendance(f AttendanceFilter) []AttendanceRecord {
	var out []AttendanceRecord
	for _, id := range sortedIDs(m.attendance) {
		a := m.attendance[id]
		e := m.employees[a.EmployeeID]
		if f.EmployeeID != nil && a.EmployeeID != *f.EmployeeID {
			continue
		}
		if f.ActiveOnly && !e.IsActive {
			continue
		}
		if f.From != nil && a.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && a.Date.After(*f.To) {
			continue
		}
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		code, name := e.EmployeeID, e.FullName
		out = append(out, AttendanceRecord{Attendance: a, EmployeeCode: &code, EmployeeName: &name})
	}
	return out
}

func (m *memStore) ListAttendance(_ context.Context, f AttendanceFilter, page envelope.Page) ([]AttendanceRecord, int, error) {
	rows, total := paginate(m.matchAttendance(f), page)
	return rows, total, nil
}

func (m *memStore) RangeAttendance(_ context.Context, f AttendanceFilter) ([]AttendanceRecord, error) {
	return m.matchAttendance(f), nil
}

func (m *memStore) GetAttendance(_ context.Context, id int64) (Attendance, error) {
	a, ok := m.attendance[id]
	if !ok {
		return Attendance{}, apperr.ErrNotFound
	}
	return a, nil
}

func (m *memStore) AttendanceExists(_ context.Context, employeeID int64, date Date) (bool, error) {
	for _, a := range m.attendance {
		if a.EmployeeID == employeeID && a.Date.Equal(date.Time) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CountPresentDays(_ context.Context, employeeID int64, from, to *Date) (int, error) {
	status := AttendancePresent
	return len(m.matchAttendance(AttendanceFilter{EmployeeID: &employeeID, From: from, To: to, Status: &status})), nil
}

func (m *memStore) CreateAttendance(_ context.Context, a Attendance) (Attendance, error) {
	a.ID = m.next()
	m.attendance[a.ID] = a
	return a, nil
}

func (m *memStore) UpdateAttendance(_ context.Context, a Attendance) (Attendance, error) {
	m.attendance[a.ID] = a
	return a, nil
}

func (m *memStore) DeleteAttendance(_ context.Context, id int64) error {
	if _, ok := m.attendance[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.attendance, id)
	return nil
}

func (m *memStore) ListHolidays(_ context.Context, f HolidayFilter, page envelope.Page) ([]Holiday, int, error) {
	var out []Holiday
	for _, id := range sortedIDs(m.holidays) {
		h := m.holidays[id]
		if f.Year != nil && h.Year != nil && *h.Year != *f.Year {
			continue
		}
		if f.From != nil && h.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && h.Date.After(*f.To) {
			continue
		}
		out = append(out, h)
	}
	rows, total := paginate(out, page)
	return rows, total, nil
}

func (m *memStore) RangeHolidays(_ context.Context, from, to Date) ([]Holiday, error) {
	var out []Holiday
	for _, id := range sortedIDs(m.holidays) {
		h := m.holidays[id]
		if h.Date.Before(from) || h.Date.After(to) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (m *memStore) GetHoliday(_ context.Context, id int64) (Holiday, error) {
	h, ok := m.holidays[id]
	if !ok {
		return Holiday{}, apperr.ErrNotFound
	}
	return h, nil
}

func (m *memStore) CreateHoliday(_ context.Context, h Holiday) (Holiday, error) {
	h.ID = m.next()
	m.holidays[h.ID] = h
	return h, nil
}

func (m *memStore) UpdateHoliday(_ context.Context, h Holiday) (Holiday, error) {
	m.holidays[h.ID] = h
	return h, nil
}

func (m *memStore) DeleteHoliday(_ context.Context, id int64) error {
	if _, ok := m.holidays[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.holidays, id)
	return nil
}

func (m *memStore) ListLeaveTypes(_ context.Context, page envelope.Page) ([]LeaveType, int, error) {
	var out []LeaveType
	for _, id := range sortedIDs(m.leaveTypes) {
		out = append(out, m.leaveTypes[id])
	}
	rows, total := paginate(out, page)
	return rows, total, nil
}

func (m *memStore) GetLeaveType(_ context.Context, id int64) (LeaveType, error) {
	lt, ok := m.leaveTypes[id]
	if !ok {
		return LeaveType{}, apperr.ErrNotFound
	}
	return lt, nil
}

func (m *memStore) LeaveTypeCodeExists(_ context.Context, code string, excludeID int64) (bool, error) {
	for id, lt := range m.leaveTypes {
		if lt.Code == code && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateLeaveType(_ context.Context, lt LeaveType) (LeaveType, error) {
	lt.ID = m.next()
	m.leaveTypes[lt.ID] = lt
	return lt, nil
}

func (m *memStore) UpdateLeaveType(_ context.Context, lt LeaveType) (LeaveType, error) {
	m.leaveTypes[lt.ID] = lt
	return lt, nil
}

func (m *memStore) DeleteLeaveType(_ context.Context, id int64) error {
	if _, ok := m.leaveTypes[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.leaveTypes, id)
	return nil
}

func (m *memStore) ListLeaveBalances(_ context.Context, f LeaveBalanceFilter, page envelope.Page) ([]LeaveBalance, int, error) {
	var out []LeaveBalance
	for _, id := range sortedIDs(m.balances) {
		b := m.balances[id]
		if f.EmployeeID != nil && b.EmployeeID != *f.EmployeeID {
			continue
		}
		if f.Year != nil && b.Year != *f.Year {
			continue
		}
		out = append(out, b)
	}
	rows, total := paginate(out, page)
	return rows, total, nil
}

func (m *memStore) EmployeeLeaveBalances(ctx context.Context, employeeID int64, year int) ([]LeaveBalance, error) {
	rows, _, err := m.ListLeaveBalances(ctx, LeaveBalanceFilter{EmployeeID: &employeeID, Year: &year}, pageOf(1, 1000))
	return rows, err
}

func (m *memStore) GetLeaveBalance(_ context.Context, id int64) (LeaveBalance, error) {
	b, ok := m.balances[id]
	if !ok {
		return LeaveBalance{}, apperr.ErrNotFound
	}
	return b, nil
}

func (m *memStore) LeaveBalanceExists(_ context.Context, employeeID, leaveTypeID int64, year int) (bool, error) {
	for _, b := range m.balances {
		if b.EmployeeID == employeeID && b.LeaveTypeID == leaveTypeID && b.Year == year {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateLeaveBalance(_ context.Context, b LeaveBalance) (LeaveBalance, error) {
	b.ID = m.next()
	m.balances[b.ID] = b
	return b, nil
}

func (m *memStore) UpdateLeaveBalance(_ context.Context, b LeaveBalance) (LeaveBalance, error) {
	m.balances[b.ID] = b
	return b, nil
}

func (m *memStore) ListLeaveRequests(_ context.Context, f LeaveRequestFilter, page envelope.Page) ([]LeaveRequest, int, error) {
	var out []LeaveRequest
	for _, id := range sortedIDs(m.requests) {
		r := m.requests[id]
		if f.EmployeeID != nil && r.EmployeeID != *f.EmployeeID {
			continue
		}
		if f.Status != nil && r.Status != *f.Status {
			continue
		}
		if f.From != nil && r.FromDate.Before(*f.From) {
			continue
		}
		if f.To != nil && r.ToDate.After(*f.To) {
			continue
		}
		out = append(out, r)
	}
	rows, total := paginate(out, page)
	return rows, total, nil
}

func (m *memStore) ApprovedLeaveOverlapping(_ context.Context, from, to Date) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, id := range sortedIDs(m.requests) {
		r := m.requests[id]
		if r.Status == LeaveApproved && !r.FromDate.After(to) && !r.ToDate.Before(from) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) GetLeaveRequest(_ context.Context, id int64) (LeaveRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return LeaveRequest{}, apperr.ErrNotFound
	}
	return r, nil
}

func (m *memStore) CreateLeaveRequest(_ context.Context, r LeaveRequest) (LeaveRequest, error) {
	r.ID = m.next()
	m.requests[r.ID] = r
	return r, nil
}

func (m *memStore) UpdateLeaveRequest(_ context.Context, r LeaveRequest) (LeaveRequest, error) {
	m.requests[r.ID] = r
	return r, nil
}

func (m *memStore) CountActiveEmployees(_ context.Context) (int, error) {
	n := 0
	for _, e := range m.employees {
		if e.IsActive {
			n++
		}
	}
	return n, nil
}

func (m *memStore) AttendanceStatusCounts(_ context.Context, from, to *Date) (map[string]int, error) {
	counts := map[string]int{}
	for _, a := range m.matchAttendance(AttendanceFilter{From: from, To: to}) {
		counts[a.Status]++
	}
	return counts, nil
}

func (m *memStore) EmployeesByDepartment(_ context.Context, includeUnassigned bool) ([]DepartmentCount, error) {
	counts := map[string]int{}
	unassigned := 0
	for _, e := range m.employees {
		if !e.IsActive {
			continue
		}
		if e.Department == nil {
			unassigned++
			continue
		}
		counts[*e.Department]++
	}
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Strings(names)
	var out []DepartmentCount
	for _, n := range names {
		name := n
		out = append(out, DepartmentCount{Name: &name, EmployeeCount: counts[n]})
	}
	if includeUnassigned && unassigned > 0 {
		out = append(out, DepartmentCount{EmployeeCount: unassigned})
	}
	return out, nil
}
