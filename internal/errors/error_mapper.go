package errors

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgPropertyNotFound,
			Code:             ErrCodeNotFound,
			HTTPStatus:       http.StatusNotFound,
			OriginalError:    err,
		}
	case errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(technicalMessage, "duplicate key"):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgDuplicateResource,
			Code:             ErrCodeConflict,
			HTTPStatus:       http.StatusConflict,
			OriginalError:    err,
		}
	case errors.Is(err, context.DeadlineExceeded) || strings.Contains(technicalMessage, "connection refused"):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgServiceUnavailable,
			Code:             ErrCodeServiceUnavailable,
			HTTPStatus:       http.StatusServiceUnavailable,
			OriginalError:    err,
		}
	case strings.Contains(technicalMessage, "not found"):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgPropertyNotFound,
			Code:             ErrCodeNotFound,
			HTTPStatus:       http.StatusNotFound,
			OriginalError:    err,
		}
	default:
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgInternalError,
			Code:             ErrCodeInternalError,
			HTTPStatus:       http.StatusInternalServerError,
			OriginalError:    err,
		}
	}
}
