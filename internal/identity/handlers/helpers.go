package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apperrors "casavista-listings/internal/errors"
)

func pageParams(c *gin.Context) (int, int) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return offset, limit
}

// bindingError turns a bind failure into the uniform validation error. When
// the cause is field validation the technical message names the offending
// fields rather than dumping full struct paths.
func bindingError(err error) *apperrors.AppError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, len(fieldErrs))
		for i, fe := range fieldErrs {
			fields[i] = fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag())
		}
		return apperrors.NewValidationError(
			"request validation failed: "+strings.Join(fields, ", "),
			apperrors.MsgInvalidParameters, err)
	}
	return apperrors.NewValidationError(err.Error(), apperrors.MsgInvalidParameters, err)
}

// uuidParam rejects malformed ids before they reach the database, where
// they would surface as opaque type errors.
func uuidParam(c *gin.Context, name string) (string, error) {
	value := c.Param(name)
	if _, err := uuid.Parse(value); err != nil {
		return "", apperrors.NewValidationError(
			"malformed uuid in path parameter "+name,
			apperrors.MsgInvalidParameters, err)
	}
	return value, nil
}

// requestBaseURL rebuilds the absolute URL of the current route for
// pagination links.
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + c.Request.URL.Path
}
