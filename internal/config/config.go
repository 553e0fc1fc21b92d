package config

import (
	"log"

	"go.uber.org/zap"
)

// Logger لاگر سراسری برنامه؛ تا قبل از InitLogger بی‌صداست
var Logger = zap.NewNop()

// InitLogger بر اساس محیط اجرا لاگر development یا production می‌سازد
func InitLogger(env string) {
	var err error
	if env == "production" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}

	Logger.Info("✅ Zap logger initialized", zap.String("env", env))
}
