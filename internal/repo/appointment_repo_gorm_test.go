package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"clinic-appointments/internal/domain"
)

// dryRunDB 只生成 SQL 不连库
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=127.0.0.1 user=clinic dbname=clinic sslmode=disable"}),
		&gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func renderStatusUpdate(t *testing.T, db *gorm.DB, ch domain.StatusChange) string {
	t.Helper()
	stmt := updateStatus(db.Session(&gorm.Session{}), "a1", ch).Statement
	return db.Dialector.Explain(stmt.SQL.String(), stmt.Vars...)
}

func TestGormUpdateStatusSQL(t *testing.T) {
	db := dryRunDB(t)
	now := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	done := renderStatusUpdate(t, db, domain.StatusChange{Status: domain.StatusCompleted, UpdatedAt: now, CompletedDate: &now})
	if !strings.Contains(done, `"status"='completed'`) || strings.Contains(done, `"completed_date"=NULL`) {
		t.Fatalf("complete sql = %s", done)
	}
	if !strings.Contains(done, `WHERE id = 'a1'`) {
		t.Fatalf("complete sql missing id filter: %s", done)
	}

	reopen := renderStatusUpdate(t, db, domain.StatusChange{Status: domain.StatusPending, UpdatedAt: now})
	if !strings.Contains(reopen, `"status"='pending'`) || !strings.Contains(reopen, `"completed_date"=NULL`) {
		t.Fatalf("reopen sql = %s", reopen)
	}
}

func TestGormUpdateStatusRejectsUnknownBeforeSQL(t *testing.T) {
	r := NewAppointmentRepo(dryRunDB(t))
	err := r.UpdateStatus(context.Background(), "a1", domain.StatusChange{Status: "archived"})
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v", err)
	}
}
