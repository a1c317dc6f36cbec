package scheduler

import (
	"context"
	"testing"
	"time"

	"gymku_backend/internals/databases/dbtest"
	"gymku_backend/internals/features/users/auth/model"
	"gymku_backend/internals/features/users/auth/service"
	"gymku_backend/internals/helpers/dbtime"
)

func TestStartSchedulerRejectsBadSpec(t *testing.T) {
	svc := service.NewBlacklistService(dbtest.NewSQLite(t), nil, "s", nil)
	if _, err := StartBlacklistCleanupScheduler(svc, "every now and then", 7); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
	c, err := StartBlacklistCleanupScheduler(svc, "@daily", 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Fatalf("entries = %d", len(c.Entries()))
	}
	<-c.Stop().Done()
}

func TestRunCleanup(t *testing.T) {
	db := dbtest.NewSQLite(t)
	clock := dbtime.NewFixedClock(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	svc := service.NewBlacklistService(db, nil, "s", clock)
	if err := svc.Revoke(context.Background(), "tok", time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}

	clock.Set(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	RunCleanup(svc, 24*time.Hour)

	var n int64
	if err := db.Unscoped().Model(&model.TokenBlacklist{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("rows left = %d", n)
	}
}
