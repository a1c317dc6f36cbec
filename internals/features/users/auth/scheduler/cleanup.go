package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"gymku_backend/internals/features/users/auth/service"
)

// StartBlacklistCleanupScheduler menjadwalkan purge token_blacklist (spec cron,
// default "@daily"). Caller wajib Stop() saat shutdown.
func StartBlacklistCleanupScheduler(svc *service.BlacklistService, spec string, ttlDays int) (*cron.Cron, error) {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	retention := time.Duration(ttlDays) * 24 * time.Hour

	c := cron.New()
	if _, err := c.AddFunc(spec, func() { RunCleanup(svc, retention) }); err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[CLEANUP] scheduler aktif (%s, retensi %d hari)", spec, ttlDays)
	return c, nil
}

func RunCleanup(svc *service.BlacklistService, retention time.Duration) {
	log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := svc.PurgeExpired(ctx, retention)
	switch {
	case err != nil:
		log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
	case n > 0:
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	default:
		log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
}
