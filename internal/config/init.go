package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config تنظیمات برنامه که از .env و متغیرهای محیطی خوانده می‌شود
type Config struct {
	AppEnv  string
	AppPort string

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	FeaturedCacheTTL  time.Duration
	ReconcileInterval time.Duration

	AuthRateLimit float64
	AuthRateBurst int
}

// Init بارگذاری .env و ساخت Config؛ نبود مقادیر ضروری خطا برمی‌گرداند
func Init() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv فقط از متغیرهای محیطی می‌خواند
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:        getenv("APP_ENV", "development"),
		AppPort:       getenv("APP_PORT", "8080"),
		DBDriver:      getenv("DB_DRIVER", "mysql"),
		DBDSN:         os.Getenv("DB_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}

	var err error
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = intEnv("BCRYPT_COST", 10); err != nil {
		return nil, err
	}
	if cfg.AuthRateBurst, err = intEnv("AUTH_RATE_BURST", 10); err != nil {
		return nil, err
	}
	if cfg.JWTTTL, err = durationEnv("JWT_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.FeaturedCacheTTL, err = durationEnv("FEATURED_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ReconcileInterval, err = durationEnv("RECONCILE_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	rps := getenv("AUTH_RATE_LIMIT", "5")
	if cfg.AuthRateLimit, err = strconv.ParseFloat(rps, 64); err != nil {
		return nil, fmt.Errorf("AUTH_RATE_LIMIT: %w", err)
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	switch cfg.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
