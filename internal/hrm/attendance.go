package hrm

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/envelope"
)

// AttendanceService records at most one attendance row per employee per day.
type AttendanceService struct {
	store     AttendanceStore
	employees EmployeeStore
}

func NewAttendanceService(store AttendanceStore, employees EmployeeStore) *AttendanceService {
	return &AttendanceService{store: store, employees: employees}
}

// PresentDays is the per-employee present count.
type PresentDays struct {
	EmployeeID  int64 `json:"employee_id"`
	PresentDays int   `json:"present_days"`
}

// List returns attendance of active employees, newest first.
func (s *AttendanceService) List(ctx context.Context, f AttendanceFilter, page envelope.Page) ([]AttendanceRecord, int, error) {
	f.ActiveOnly = true
	f.EmployeeID = nil
	if err := checkRange(f.From, f.To); err != nil {
		return nil, 0, err
	}
	return s.store.ListAttendance(ctx, f, page)
}

func (s *AttendanceService) ListForEmployee(ctx context.Context, employeeID int64, f AttendanceFilter, page envelope.Page) ([]AttendanceRecord, int, error) {
	if _, err := getEmployee(ctx, s.employees, employeeID); err != nil {
		return nil, 0, err
	}
	if err := checkRange(f.From, f.To); err != nil {
		return nil, 0, err
	}
	f.EmployeeID = &employeeID
	f.ActiveOnly = false
	f.Department = nil
	return s.store.ListAttendance(ctx, f, page)
}

func (s *AttendanceService) PresentDays(ctx context.Context, employeeID int64, from, to *Date) (PresentDays, error) {
	if _, err := getEmployee(ctx, s.employees, employeeID); err != nil {
		return PresentDays{}, err
	}
	n, err := s.store.CountPresentDays(ctx, employeeID, from, to)
	if err != nil {
		return PresentDays{}, err
	}
	return PresentDays{EmployeeID: employeeID, PresentDays: n}, nil
}

func (s *AttendanceService) Get(ctx context.Context, id int64) (Attendance, error) {
	a, err := s.store.GetAttendance(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return Attendance{}, attendanceNotFound()
	}
	return a, err
}

// Mark creates the attendance row for (employee, date).
func (s *AttendanceService) Mark(ctx context.Context, employeeID int64, in AttendanceInput) (Attendance, error) {
	if _, err := getEmployee(ctx, s.employees, employeeID); err != nil {
		return Attendance{}, err
	}
	a := Attendance{
		EmployeeID:   employeeID,
		Date:         in.Date,
		Status:       in.Status,
		CheckInTime:  in.CheckInTime,
		CheckOutTime: in.CheckOutTime,
		WorkHours:    in.WorkHours,
		Source:       in.Source,
		Notes:        in.Notes,
	}
	if a.Status == "" {
		a.Status = AttendancePresent
	}
	if a.Source == nil {
		src := SourceWeb
		a.Source = &src
	}
	if err := validateAttendance(a); err != nil {
		return Attendance{}, err
	}
	exists, err := s.store.AttendanceExists(ctx, employeeID, a.Date)
	if err != nil {
		return Attendance{}, err
	}
	if exists {
		return Attendance{}, duplicateAttendance(a.Date)
	}
	created, err := s.store.CreateAttendance(ctx, a)
	if errors.Is(err, apperr.ErrConflict) {
		// lost the race against a concurrent insert
		return Attendance{}, duplicateAttendance(a.Date)
	}
	return created, err
}

func (s *AttendanceService) Update(ctx context.Context, id int64, upd AttendanceUpdate) (Attendance, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return Attendance{}, err
	}
	if upd.Status.Present {
		if upd.Status.Null {
			return Attendance{}, apperr.FieldInvalid("status", "must not be null")
		}
		a.Status = upd.Status.Value
	}
	upd.CheckInTime.Apply(&a.CheckInTime)
	upd.CheckOutTime.Apply(&a.CheckOutTime)
	upd.WorkHours.Apply(&a.WorkHours)
	upd.Source.Apply(&a.Source)
	upd.Notes.Apply(&a.Notes)
	if err := validateAttendance(a); err != nil {
		return Attendance{}, err
	}
	return s.store.UpdateAttendance(ctx, a)
}

func (s *AttendanceService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteAttendance(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return attendanceNotFound()
	}
	return err
}

func validateAttendance(a Attendance) error {
	if a.CheckInTime != nil && a.CheckOutTime != nil && a.CheckOutTime.Before(*a.CheckInTime) {
		return apperr.FieldInvalid("check_out_time", "must not be before check_in_time")
	}
	if a.WorkHours != nil && (*a.WorkHours < 0 || *a.WorkHours > 24) {
		return apperr.FieldInvalid("work_hours", "must be between 0 and 24")
	}
	return nil
}

func duplicateAttendance(d Date) error {
	return apperr.Conflict(fmt.Sprintf("Attendance already marked for this employee on %s", d), "date")
}

func attendanceNotFound() error {
	return apperr.NotFound("Attendance record not found", "attendance_id")
}

func checkRange(from, to *Date) error {
	if from != nil && to != nil && to.Before(*from) {
		return apperr.FieldInvalid("to_date", "must not be before from_date")
	}
	return nil
}
