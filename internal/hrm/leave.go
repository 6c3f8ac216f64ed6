package hrm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/envelope"
)

type LeaveTypeService struct {
	store LeaveTypeStore
}

func NewLeaveTypeService(store LeaveTypeStore) *LeaveTypeService {
	return &LeaveTypeService{store: store}
}

func (s *LeaveTypeService) List(ctx context.Context, page envelope.Page) ([]LeaveType, int, error) {
	return s.store.ListLeaveTypes(ctx, page)
}

func (s *LeaveTypeService) Get(ctx context.Context, id int64) (LeaveType, error) {
	return getLeaveType(ctx, s.store, id)
}

func (s *LeaveTypeService) Create(ctx context.Context, in LeaveTypeInput) (LeaveType, error) {
	lt := LeaveType{
		Name:               strings.TrimSpace(in.Name),
		Code:               normalizeCode(in.Code),
		DefaultDaysPerYear: in.DefaultDaysPerYear,
		Description:        in.Description,
	}
	if lt.Name == "" {
		return LeaveType{}, apperr.FieldInvalid("name", "must not be empty")
	}
	if lt.Code == "" {
		return LeaveType{}, apperr.FieldInvalid("code", "must not be empty")
	}
	if lt.DefaultDaysPerYear < 0 {
		return LeaveType{}, apperr.FieldInvalid("default_days_per_year", "must be zero or greater")
	}
	if err := s.checkCode(ctx, lt.Code, 0); err != nil {
		return LeaveType{}, err
	}
	return s.store.CreateLeaveType(ctx, lt)
}

func (s *LeaveTypeService) Update(ctx context.Context, id int64, upd LeaveTypeUpdate) (LeaveType, error) {
	lt, err := s.Get(ctx, id)
	if err != nil {
		return LeaveType{}, err
	}
	if upd.Name.Present {
		name := strings.TrimSpace(upd.Name.Value)
		if upd.Name.Null || name == "" {
			return LeaveType{}, apperr.FieldInvalid("name", "must not be empty")
		}
		lt.Name = name
	}
	if upd.Code.Present {
		code := normalizeCode(upd.Code.Value)
		if upd.Code.Null || code == "" {
			return LeaveType{}, apperr.FieldInvalid("code", "must not be empty")
		}
		if code != lt.Code {
			if err := s.checkCode(ctx, code, id); err != nil {
				return LeaveType{}, err
			}
		}
		lt.Code = code
	}
	if upd.DefaultDaysPerYear.HasValue() && upd.DefaultDaysPerYear.Value < 0 {
		return LeaveType{}, apperr.FieldInvalid("default_days_per_year", "must be zero or greater")
	}
	upd.DefaultDaysPerYear.ApplyValue(&lt.DefaultDaysPerYear)
	upd.Description.Apply(&lt.Description)
	return s.store.UpdateLeaveType(ctx, lt)
}

func (s *LeaveTypeService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteLeaveType(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return leaveTypeNotFound()
	}
	return err
}

func (s *LeaveTypeService) checkCode(ctx context.Context, code string, excludeID int64) error {
	exists, err := s.store.LeaveTypeCodeExists(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("Leave type code already exists", "code")
	}
	return nil
}

// LeaveBalanceService tracks yearly allowances per employee and leave type.
type LeaveBalanceService struct {
	store      LeaveBalanceStore
	employees  EmployeeStore
	leaveTypes LeaveTypeStore
}

func NewLeaveBalanceService(store LeaveBalanceStore, employees EmployeeStore, leaveTypes LeaveTypeStore) *LeaveBalanceService {
	return &LeaveBalanceService{store: store, employees: employees, leaveTypes: leaveTypes}
}

func (s *LeaveBalanceService) List(ctx context.Context, f LeaveBalanceFilter, page envelope.Page) ([]LeaveBalance, int, error) {
	rows, total, err := s.store.ListLeaveBalances(ctx, f, page)
	if err != nil {
		return nil, 0, err
	}
	return withAvailable(rows), total, nil
}

func (s *LeaveBalanceService) ForEmployee(ctx context.Context, employeeID int64, year int) ([]LeaveBalance, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	if _, err := getEmployee(ctx, s.employees, employeeID); err != nil {
		return nil, err
	}
	rows, err := s.store.EmployeeLeaveBalances(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}
	return withAvailable(rows), nil
}

func (s *LeaveBalanceService) Get(ctx context.Context, id int64) (LeaveBalance, error) {
	b, err := s.store.GetLeaveBalance(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return LeaveBalance{}, apperr.NotFound("Leave balance not found", "leave_balance_id")
	}
	if err != nil {
		return LeaveBalance{}, err
	}
	return b.WithAvailable(), nil
}

func (s *LeaveBalanceService) Create(ctx context.Context, in LeaveBalanceInput) (LeaveBalance, error) {
	if err := checkYear(in.Year); err != nil {
		return LeaveBalance{}, err
	}
	if in.BalanceDays < 0 || in.UsedDays < 0 {
		return LeaveBalance{}, apperr.FieldInvalid("balance_days", "days must be zero or greater")
	}
	if _, err := getEmployee(ctx, s.employees, in.EmployeeID); err != nil {
		return LeaveBalance{}, err
	}
	if _, err := getLeaveType(ctx, s.leaveTypes, in.LeaveTypeID); err != nil {
		return LeaveBalance{}, err
	}
	exists, err := s.store.LeaveBalanceExists(ctx, in.EmployeeID, in.LeaveTypeID, in.Year)
	if err != nil {
		return LeaveBalance{}, err
	}
	if exists {
		return LeaveBalance{}, apperr.Conflict("Leave balance already exists for this employee, leave type and year", "leave_type_id")
	}
	created, err := s.store.CreateLeaveBalance(ctx, LeaveBalance{
		EmployeeID:  in.EmployeeID,
		LeaveTypeID: in.LeaveTypeID,
		Year:        in.Year,
		BalanceDays: in.BalanceDays,
		UsedDays:    in.UsedDays,
	})
	if err != nil {
		return LeaveBalance{}, err
	}
	return created.WithAvailable(), nil
}

func (s *LeaveBalanceService) Update(ctx context.Context, id int64, upd LeaveBalanceUpdate) (LeaveBalance, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return LeaveBalance{}, err
	}
	if upd.BalanceDays.Null || (upd.BalanceDays.HasValue() && upd.BalanceDays.Value < 0) {
		return LeaveBalance{}, apperr.FieldInvalid("balance_days", "must be zero or greater")
	}
	if upd.UsedDays.Null || (upd.UsedDays.HasValue() && upd.UsedDays.Value < 0) {
		return LeaveBalance{}, apperr.FieldInvalid("used_days", "must be zero or greater")
	}
	upd.BalanceDays.ApplyValue(&b.BalanceDays)
	upd.UsedDays.ApplyValue(&b.UsedDays)
	updated, err := s.store.UpdateLeaveBalance(ctx, b)
	if err != nil {
		return LeaveBalance{}, err
	}
	return updated.WithAvailable(), nil
}

// LeaveRequestService handles the leave request lifecycle.
type LeaveRequestService struct {
	store      LeaveRequestStore
	employees  EmployeeStore
	leaveTypes LeaveTypeStore
	now        func() time.Time
}

func NewLeaveRequestService(store LeaveRequestStore, employees EmployeeStore, leaveTypes LeaveTypeStore) *LeaveRequestService {
	return &LeaveRequestService{store: store, employees: employees, leaveTypes: leaveTypes, now: time.Now}
}

func (s *LeaveRequestService) List(ctx context.Context, f LeaveRequestFilter, page envelope.Page) ([]LeaveRequest, int, error) {
	rows, total, err := s.store.ListLeaveRequests(ctx, f, page)
	if err != nil {
		return nil, 0, err
	}
	for i := range rows {
		rows[i] = rows[i].WithTotalDays()
	}
	return rows, total, nil
}

func (s *LeaveRequestService) Get(ctx context.Context, id int64) (LeaveRequest, error) {
	r, err := s.store.GetLeaveRequest(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return LeaveRequest{}, apperr.NotFound("Leave request not found", "leave_request_id")
	}
	if err != nil {
		return LeaveRequest{}, err
	}
	return r.WithTotalDays(), nil
}

// Submit files a pending request. to_date before from_date is rejected.
func (s *LeaveRequestService) Submit(ctx context.Context, employeeID int64, in LeaveRequestInput) (LeaveRequest, error) {
	if in.ToDate.Before(in.FromDate) {
		return LeaveRequest{}, apperr.FieldInvalid("to_date", "must not be before from_date")
	}
	if _, err := getEmployee(ctx, s.employees, employeeID); err != nil {
		return LeaveRequest{}, err
	}
	if _, err := getLeaveType(ctx, s.leaveTypes, in.LeaveTypeID); err != nil {
		return LeaveRequest{}, err
	}
	now := s.now().UTC()
	created, err := s.store.CreateLeaveRequest(ctx, LeaveRequest{
		EmployeeID:  employeeID,
		LeaveTypeID: in.LeaveTypeID,
		FromDate:    in.FromDate,
		ToDate:      in.ToDate,
		Status:      LeavePending,
		Reason:      in.Reason,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return LeaveRequest{}, err
	}
	return created.WithTotalDays(), nil
}

// Update changes status and/or reason. Any status change records actorID
// as approver.
func (s *LeaveRequestService) Update(ctx context.Context, id int64, upd LeaveRequestUpdate, actorID int64) (LeaveRequest, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return LeaveRequest{}, err
	}
	if upd.Status.Present {
		if upd.Status.Null {
			return LeaveRequest{}, apperr.FieldInvalid("status", "must not be null")
		}
		r.Status = upd.Status.Value
		if actorID > 0 {
			r.ApprovedByID = &actorID
		}
	}
	upd.Reason.Apply(&r.Reason)
	r.UpdatedAt = s.now().UTC()
	updated, err := s.store.UpdateLeaveRequest(ctx, r)
	if err != nil {
		return LeaveRequest{}, err
	}
	return updated.WithTotalDays(), nil
}

// Cancel marks the request cancelled instead of deleting it.
func (s *LeaveRequestService) Cancel(ctx context.Context, id int64) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	r.Status = LeaveCancelled
	r.UpdatedAt = s.now().UTC()
	_, err = s.store.UpdateLeaveRequest(ctx, r)
	return err
}

// IsStatusChange reports whether upd touches status.
func (upd LeaveRequestUpdate) IsStatusChange() bool {
	return upd.Status.Present
}

func withAvailable(rows []LeaveBalance) []LeaveBalance {
	for i := range rows {
		rows[i] = rows[i].WithAvailable()
	}
	return rows
}

func checkYear(year int) error {
	if year < 2000 || year > 2100 {
		return apperr.FieldInvalid("year", "must be between 2000 and 2100")
	}
	return nil
}

func getLeaveType(ctx context.Context, store LeaveTypeStore, id int64) (LeaveType, error) {
	lt, err := store.GetLeaveType(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return LeaveType{}, leaveTypeNotFound()
	}
	return lt, err
}

func leaveTypeNotFound() error {
	return apperr.NotFound("Leave type not found", "leave_type_id")
}
