package configs

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// Config dibaca dari ENV (setelah .env dimuat kalau ada).
type Config struct {
	Port string `env:"PORT" env-default:"3000"`

	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBName     string `env:"DB_NAME" env-default:"gymku"`
	DBSSLMode  string `env:"DB_SSLMODE" env-default:"require"`

	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" env-default:"20"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	DBConnIdleTime time.Duration `env:"DB_CONN_IDLE_TIME" env-default:"60s"`
	DBConnLifetime time.Duration `env:"DB_CONN_LIFETIME" env-default:"10m"`

	JWTSecret string `env:"JWT_SECRET"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// zona waktu default gym kalau token tidak membawa gym_timezone
	DefaultTimezone string `env:"GYM_DEFAULT_TIMEZONE" env-default:"UTC"`

	BlacklistTTLDays int    `env:"TOKEN_BLACKLIST_TTL_DAYS" env-default:"7"`
	CleanupCron      string `env:"TOKEN_BLACKLIST_CLEANUP_CRON" env-default:"@daily"`

	CorsOrigins []string `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:3001,http://localhost:5173"`

	RateLimitMax     int           `env:"RATE_LIMIT_MAX" env-default:"100"`
	RateLimitWindow  time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1m"`
	BookingLimitMax  int           `env:"BOOKING_LIMIT_MAX" env-default:"20"`
	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
}

var (
	JWTSecret string
	Cfg       Config
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() Config {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env tidak ditemukan, pakai ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	if err := cleanenv.ReadEnv(&Cfg); err != nil {
		log.Fatalf("❌ Gagal membaca konfigurasi: %v", err)
	}
	JWTSecret = Cfg.JWTSecret

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
	return Cfg
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// DSN postgres dari Config; statement_timeout selaras dengan timeout HTTP.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=gymku&options=-c statement_timeout=3000",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// DefaultLocation: *time.Location dari GYM_DEFAULT_TIMEZONE, fallback UTC.
func (c Config) DefaultLocation() *time.Location {
	tz := strings.TrimSpace(c.DefaultTimezone)
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("[WARN] timezone %q tidak valid, pakai UTC: %v", tz, err)
		return time.UTC
	}
	return loc
}

// =======================
// DATABASE CONNECTOR (migrasi / seeder)
// =======================
func InitSeederDB(cfg Config) *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("❌ Gagal koneksi ke database (Seeder): %v", err)
	}
	log.Println("✅ Database (Seeder) terkoneksi.")
	return db
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && err != gormLogger.ErrRecordNotFound:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
