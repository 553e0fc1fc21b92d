package config

import (
	"fmt"

	"celebnetwork/internal/core/celebrity"
	"celebnetwork/internal/core/fan"
	"celebnetwork/internal/core/following"
	"celebnetwork/internal/core/user"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB اتصال gorm را بر اساس DB_DRIVER باز می‌کند
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// sqlite فقط یک نویسنده همزمان دارد
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	Logger.Info("Database connected", zap.String("driver", driver))
	return db, nil
}

// Migrate اعمال مایگریشن برای مدل‌ها
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&celebrity.Celebrity{},
		&fan.Fan{},
		&following.Following{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	Logger.Info("✅ Database migrations completed")
	return nil
}

// CloseDB بستن اتصال دیتابیس
func CloseDB(db *gorm.DB) {
	sqlDB, err := db.DB() // گرفتن *sql.DB از *gorm.DB
	if err != nil {
		Logger.Error("Error getting raw DB:", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		Logger.Error("Error closing database connection:", zap.Error(err))
	}
}
