package pg_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/hrm"
	"github.com/hrmslite/hrms/internal/migrate"
	"github.com/hrmslite/hrms/internal/store/pg"
)

// TestStoreIntegration runs the attendance flow against a live Postgres.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("HRMS_INTEGRATION") != "true" {
		t.Skip("set HRMS_INTEGRATION=true to run this integration test")
	}
	_ = godotenv.Load("../../../.env")
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := pg.Open(ctx, dsn, pg.PoolOptions{MaxOpen: 4})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	mgr := migrate.NewEmbedded(store.DB().DB)
	if _, err := mgr.Up(ctx); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	if _, err := mgr.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := hrm.NewServices(store)
	suffix := time.Now().UnixNano()

	dept, err := svc.Departments.Create(ctx, hrm.DepartmentInput{
		Name: fmt.Sprintf("Integration %d", suffix),
		Code: fmt.Sprintf("it%d", suffix%1_000_000),
	})
	if err != nil {
		t.Fatalf("create department: %v", err)
	}
	defer func() { _ = svc.Departments.Delete(context.Background(), dept.ID) }()

	emp, err := svc.Employees.Create(ctx, hrm.EmployeeInput{
		EmployeeID:   fmt.Sprintf("IT-%d", suffix),
		FullName:     "Integration Tester",
		Email:        fmt.Sprintf("it_%d@example.com", suffix),
		DepartmentID: &dept.ID,
	})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	defer func() { _ = svc.Employees.Delete(context.Background(), emp.ID) }()

	if emp.Department == nil || *emp.Department != dept.Name {
		t.Fatalf("expected department name to be filled, got %v", emp.Department)
	}

	day := hrm.NewDate(2024, time.March, 4)
	if _, err := svc.Attendance.Mark(ctx, emp.ID, hrm.AttendanceInput{Date: day, Status: "present"}); err != nil {
		t.Fatalf("mark attendance: %v", err)
	}
	_, err = svc.Attendance.Mark(ctx, emp.ID, hrm.AttendanceInput{Date: day, Status: "absent"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict on duplicate attendance, got %v", err)
	}

	present, err := svc.Attendance.PresentDays(ctx, emp.ID, nil, nil)
	if err != nil {
		t.Fatalf("present days: %v", err)
	}
	if present.PresentDays != 1 {
		t.Fatalf("expected 1 present day, got %d", present.PresentDays)
	}
}
