package service

import (
	"context"
	"testing"
	"time"

	"gymku_backend/internals/databases/dbtest"
	"gymku_backend/internals/features/users/auth/model"
	"gymku_backend/internals/helpers/dbtime"
)

func TestBlacklistRevokeAndLookup(t *testing.T) {
	db := dbtest.NewSQLite(t)
	clock := dbtime.NewFixedClock(time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC))
	svc := NewBlacklistService(db, nil, "test-secret", clock)
	ctx := context.Background()
	exp := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	if err := svc.Revoke(ctx, "token-a", exp); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	// idempotent
	if err := svc.Revoke(ctx, "token-a", exp.Add(time.Hour)); err != nil {
		t.Fatalf("revoke again: %v", err)
	}

	var rows []model.TokenBlacklist
	if err := db.Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d want 1", len(rows))
	}
	if rows[0].Token == "token-a" {
		t.Fatal("raw token must not be stored")
	}

	check := svc.Checker()
	if hit, err := check("token-a"); err != nil || !hit {
		t.Fatalf("token-a: hit=%v err=%v", hit, err)
	}
	if hit, err := check("token-b"); err != nil || hit {
		t.Fatalf("token-b: hit=%v err=%v", hit, err)
	}
	if hit, _ := svc.IsBlacklisted(ctx, "   "); hit {
		t.Fatal("empty token must not be blacklisted")
	}

	// sudah kadaluarsa: tidak perlu dicatat
	if err := svc.Revoke(ctx, "token-old", clock.Now().Add(-time.Minute)); err != nil {
		t.Fatal(err)
	}
	if hit, _ := svc.IsBlacklisted(ctx, "token-old"); hit {
		t.Fatal("expired token should not be recorded")
	}

	clock.Set(exp.Add(2 * time.Hour))
	if hit, _ := svc.IsBlacklisted(ctx, "token-a"); hit {
		t.Fatal("blacklist entry must lapse after token expiry")
	}
}

func TestBlacklistPurgeExpired(t *testing.T) {
	db := dbtest.NewSQLite(t)
	clock := dbtime.NewFixedClock(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	svc := NewBlacklistService(db, nil, "s", clock)
	ctx := context.Background()

	if err := svc.Revoke(ctx, "short", time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if err := svc.Revoke(ctx, "long", time.Date(2026, 10, 30, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}

	clock.Set(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	n, err := svc.PurgeExpired(ctx, 7*24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("purged = %d want 1", n)
	}
	if hit, _ := svc.IsBlacklisted(ctx, "long"); !hit {
		t.Fatal("live entry must survive purge")
	}
}
