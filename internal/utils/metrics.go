package utils

import (
	"time"

	"casavista-listings/pkg/metrics"
)

func RecordDBOperation(operation, table string, start time.Time) {
	metrics.DBOperationDuration.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

func RecordDBError(operation, table string) {
	metrics.DBErrorsTotal.WithLabelValues(operation, table).Inc()
}

func RecordRedisOperation(operation string, start time.Time) {
	metrics.RedisOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func RecordRedisError(operation string) {
	metrics.RedisErrorsTotal.WithLabelValues(operation).Inc()
}
