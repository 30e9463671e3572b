package utils

import (
	"fmt"
	"strings"

	"casavista-listings/internal/errors"
	"casavista-listings/pkg/logger"
)

// LogAndMapError logs technical details and returns a user-facing AppError.
// params are alternating key/value pairs appended to the log line.
func LogAndMapError(err error, operation string, params ...interface{}) *errors.AppError {
	appErr := errors.MapError(err)
	if appErr == nil {
		return nil
	}

	var details strings.Builder
	for i := 0; i+1 < len(params); i += 2 {
		fmt.Fprintf(&details, ", %v=%v", params[i], params[i+1])
	}
	logger.GlobalLogger.Errorf("%s failed: error=%s%s", operation, appErr.TechnicalMessage, details.String())

	return appErr
}

// WrapError adds context to an error while preserving the original.
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(message, args...), err)
}
