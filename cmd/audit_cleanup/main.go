package main

import (
	"context"
	"os"
	"time"

	"videorental/internal/config"
	"videorental/internal/database"
	"videorental/internal/domain/audit"
	"videorental/internal/logger"
)

// audit_cleanup purges expired audit entries once, for hosts that run it
// from system cron instead of the API's scheduler.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Connect(cfg.Database.URL, cfg.Log.Level)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := audit.NewService(audit.NewRepository(db)).Purge(ctx)
	if err != nil {
		logger.Error("audit cleanup failed", "error", err)
		os.Exit(1)
	}
	logger.Info("audit cleanup completed", "deleted", n)
}
