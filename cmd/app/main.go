package main

import (
	"os"

	"celebnetwork/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	root := &cobra.Command{
		Use:           "celebnetwork",
		Short:         "CelebNetwork API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(serveCmd(), migrateCmd(), createAdminCmd())

	if err := root.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError خطاهایی که پیش از ساخت لاگر رخ داده‌اند (تنظیمات، فلگ‌ها) هم باید دیده شوند
func reportError(err error) {
	if !config.Logger.Core().Enabled(zap.ErrorLevel) {
		config.InitLogger(os.Getenv("APP_ENV"))
	}
	config.Logger.Error("❌ Command failed", zap.Error(err))
	_ = config.Logger.Sync()
}
