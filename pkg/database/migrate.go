package database

import (
	"fmt"
	"time"

	"casavista-listings/pkg/logger"
	"casavista-listings/pkg/metrics"
)

// run schema migration for the given models. Indexes come from the gorm
// struct tags, so each service passes only the entities it owns.
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	start := time.Now()
	err := DB.AutoMigrate(models...)
	metrics.DBOperationDuration.WithLabelValues("migrate", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBErrorsTotal.WithLabelValues("migrate", "").Inc()
		return fmt.Errorf("failed to run migrations: %v", err)
	}

	logger.GlobalLogger.Printf("Schema migration completed for %d models", len(models))
	return nil
}
