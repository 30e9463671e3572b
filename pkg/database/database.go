package database

import (
	"context"
	"fmt"
	"time"

	"casavista-listings/pkg/config"
	"casavista-listings/pkg/logger"
	"casavista-listings/pkg/metrics"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// open the Postgres connection pool and verify it.
func InitDB(cfg *config.Config) error {
	logMode := gormlogger.Warn
	if cfg.IsProduction() {
		logMode = gormlogger.Error
	}

	start := time.Now()
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logMode),
		TranslateError: true,
	})
	metrics.DBOperationDuration.WithLabelValues("connect", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBErrorsTotal.WithLabelValues("connect", "").Inc()
		logger.GlobalLogger.Errorf("failed to connect to Postgres: %v", err)
		return fmt.Errorf("failed to connect to Postgres: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start = time.Now()
	err = sqlDB.PingContext(ctx)
	metrics.DBOperationDuration.WithLabelValues("ping", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBErrorsTotal.WithLabelValues("ping", "").Inc()
		return fmt.Errorf("failed to ping Postgres: %v", err)
	}

	DB = db
	logger.GlobalLogger.Println("Connected to Postgres")
	return nil
}

// health-check ping against the pool.
func Ping(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func CloseDB() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		logger.GlobalLogger.Errorf("failed to access connection pool on close: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.GlobalLogger.Errorf("failed to close Postgres connection: %v", err)
		return
	}
	logger.GlobalLogger.Println("Postgres connection closed")
}
