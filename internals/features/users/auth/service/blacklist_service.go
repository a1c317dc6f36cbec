package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymku_backend/internals/features/users/auth/model"
	"gymku_backend/internals/helpers/dbtime"
)

const redisKeyPrefix = "token_blacklist:"

// BlacklistService: sumber kebenaran di DB; Redis (opsional) sebagai cache lookup.
type BlacklistService struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Secret string
	Clock  dbtime.Clock
}

func NewBlacklistService(db *gorm.DB, rdb *redis.Client, secret string, clock dbtime.Clock) *BlacklistService {
	if clock == nil {
		clock = dbtime.SystemClock{}
	}
	return &BlacklistService{DB: db, Redis: rdb, Secret: secret, Clock: clock}
}

func (s *BlacklistService) hash(raw string) string {
	m := hmac.New(sha256.New, []byte(s.Secret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}

// Revoke: idempotent. Token yang sudah lewat expiry tidak perlu dicatat.
func (s *BlacklistService) Revoke(ctx context.Context, raw string, expiresAt time.Time) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	now := s.Clock.Now().UTC()
	expiresAt = expiresAt.UTC()
	if !expiresAt.After(now) {
		return nil
	}
	h := s.hash(raw)

	row := model.TokenBlacklist{Token: h, ExpiredAt: expiresAt}
	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token"}},
		DoUpdates: clause.Assignments(map[string]any{
			"expired_at": expiresAt,
			"deleted_at": nil,
		}),
	}).Create(&row).Error; err != nil {
		return err
	}

	if s.Redis != nil {
		if err := s.Redis.Set(ctx, redisKeyPrefix+h, "1", expiresAt.Sub(now)).Err(); err != nil {
			log.Printf("[BLACKLIST] redis set gagal (DB tetap tercatat): %v", err)
		}
	}
	return nil
}

func (s *BlacklistService) IsBlacklisted(ctx context.Context, raw string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	h := s.hash(raw)

	if s.Redis != nil {
		err := s.Redis.Get(ctx, redisKeyPrefix+h).Err()
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, redis.Nil):
			// miss: cek DB (cache bisa kosong setelah restart redis)
		default:
			log.Printf("[BLACKLIST] redis get gagal, fallback DB: %v", err)
		}
	}

	var n int64
	err := s.DB.WithContext(ctx).Model(&model.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", h, s.Clock.Now().UTC()).
		Count(&n).Error
	return n > 0, err
}

// Checker: adapter untuk AuthJWTOpts.BlacklistChecker
func (s *BlacklistService) Checker() func(rawToken string) (bool, error) {
	return func(rawToken string) (bool, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return s.IsBlacklisted(ctx, rawToken)
	}
}

// PurgeExpired: hard delete baris yang expired lebih lama dari retention.
func (s *BlacklistService) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.Clock.Now().UTC().Add(-retention)
	res := s.DB.WithContext(ctx).Unscoped().
		Where("expired_at < ?", cutoff).
		Delete(&model.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
