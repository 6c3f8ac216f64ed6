package hrm

import (
	"context"
	"errors"
	"testing"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/patch"
)

func TestInclusiveDays(t *testing.T) {
	cases := []struct {
		from, to Date
		want     int
	}{
		{NewDate(2024, 3, 1), NewDate(2024, 3, 3), 3},
		{NewDate(2024, 3, 1), NewDate(2024, 3, 1), 1},
		{NewDate(2024, 2, 28), NewDate(2024, 3, 1), 3},
		{NewDate(2023, 12, 31), NewDate(2024, 1, 1), 2},
	}
	for _, tc := range cases {
		if got := InclusiveDays(tc.from, tc.to); got != tc.want {
			t.Fatalf("InclusiveDays(%s,%s)=%d want %d", tc.from, tc.to, got, tc.want)
		}
	}
}

func newLeaveFixture(t *testing.T) (*memStore, *LeaveRequestService, LeaveType) {
	t.Helper()
	store := newMemStore()
	seedEmployee(store, 1, "EMP001", true)
	lt, err := NewLeaveTypeService(store).Create(context.Background(), LeaveTypeInput{Name: "Annual Leave", Code: "annual", DefaultDaysPerYear: 20})
	if err != nil {
		t.Fatalf("Create leave type: %v", err)
	}
	return store, NewLeaveRequestService(store, store, store), lt
}

func TestSubmitLeaveRequest(t *testing.T) {
	_, svc, lt := newLeaveFixture(t)
	ctx := context.Background()

	r, err := svc.Submit(ctx, 1, LeaveRequestInput{LeaveTypeID: lt.ID, FromDate: NewDate(2024, 3, 1), ToDate: NewDate(2024, 3, 3)})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if r.TotalDays != 3 || r.Status != LeavePending {
		t.Fatalf("unexpected request: %+v", r)
	}

	_, err = svc.Submit(ctx, 1, LeaveRequestInput{LeaveTypeID: lt.ID, FromDate: NewDate(2024, 3, 3), ToDate: NewDate(2024, 3, 1)})
	ae, ok := apperr.As(err)
	if !ok || ae.Status != 422 || ae.Details[0].Field != "to_date" {
		t.Fatalf("expected 422 on to_date, got %v", err)
	}

	_, err = svc.Submit(ctx, 1, LeaveRequestInput{LeaveTypeID: 999, FromDate: NewDate(2024, 3, 1), ToDate: NewDate(2024, 3, 1)})
	if ae, ok := apperr.As(err); !ok || ae.Details[0].Field != "leave_type_id" {
		t.Fatalf("expected leave type not found, got %v", err)
	}
	_, err = svc.Submit(ctx, 42, LeaveRequestInput{LeaveTypeID: lt.ID, FromDate: NewDate(2024, 3, 1), ToDate: NewDate(2024, 3, 1)})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected employee not found, got %v", err)
	}
}

func TestLeaveRequestStatusChangeRecordsApprover(t *testing.T) {
	store, svc, lt := newLeaveFixture(t)
	ctx := context.Background()
	r, err := svc.Submit(ctx, 1, LeaveRequestInput{LeaveTypeID: lt.ID, FromDate: NewDate(2024, 5, 6), ToDate: NewDate(2024, 5, 10)})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	r, err = svc.Update(ctx, r.ID, LeaveRequestUpdate{Reason: patch.Set("family event")}, 9)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if r.ApprovedByID != nil {
		t.Fatalf("reason-only update must not set approver")
	}

	r, err = svc.Update(ctx, r.ID, LeaveRequestUpdate{Status: patch.Set(LeaveApproved)}, 9)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if r.Status != LeaveApproved || r.ApprovedByID == nil || *r.ApprovedByID != 9 || r.TotalDays != 5 {
		t.Fatalf("unexpected approval: %+v", r)
	}

	if err := svc.Cancel(ctx, r.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if store.requests[r.ID].Status != LeaveCancelled {
		t.Fatalf("request not cancelled")
	}
	if err := svc.Cancel(ctx, 777); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLeaveTypeCodeUppercasedAndUnique(t *testing.T) {
	store := newMemStore()
	svc := NewLeaveTypeService(store)
	ctx := context.Background()
	lt, err := svc.Create(ctx, LeaveTypeInput{Name: "Sick Leave", Code: " sick "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if lt.Code != "SICK" {
		t.Fatalf("code not normalised: %q", lt.Code)
	}
	_, err = svc.Create(ctx, LeaveTypeInput{Name: "Sick again", Code: "Sick"})
	if ae, ok := apperr.As(err); !ok || ae.Code != apperr.CodeConflict || ae.Details[0].Field != "code" {
		t.Fatalf("expected code conflict, got %v", err)
	}
}

func TestLeaveBalances(t *testing.T) {
	store, _, lt := newLeaveFixture(t)
	svc := NewLeaveBalanceService(store, store, store)
	ctx := context.Background()

	b, err := svc.Create(ctx, LeaveBalanceInput{EmployeeID: 1, LeaveTypeID: lt.ID, Year: 2024, BalanceDays: 20, UsedDays: 4})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.AvailableDays != 16 {
		t.Fatalf("available days = %d, want 16", b.AvailableDays)
	}

	_, err = svc.Create(ctx, LeaveBalanceInput{EmployeeID: 1, LeaveTypeID: lt.ID, Year: 2024})
	if ae, ok := apperr.As(err); !ok || ae.Code != apperr.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	b, err = svc.Update(ctx, b.ID, LeaveBalanceUpdate{UsedDays: patch.Set(6)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if b.BalanceDays != 20 || b.UsedDays != 6 || b.AvailableDays != 14 {
		t.Fatalf("unexpected balance: %+v", b)
	}

	if _, err := svc.ForEmployee(ctx, 1, 1999); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected year validation, got %v", err)
	}
	rows, err := svc.ForEmployee(ctx, 1, 2024)
	if err != nil || len(rows) != 1 || rows[0].AvailableDays != 14 {
		t.Fatalf("ForEmployee: %v %+v", err, rows)
	}
}
