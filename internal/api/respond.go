package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/logging"
)

// errorBody is the JSON shape of every error response
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// respondError maps a service error onto an HTTP status and error code.
// Unrecognized errors become a 500 with a generic body; the detail stays
// in the server log.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status, code := statusFor(appErr)
		body := errorBody{Code: code, Message: appErr.Message, Field: appErr.Field}
		c.AbortWithStatusJSON(status, body)
		return
	}

	logging.GetLogger().Error("request failed",
		zap.String("path", c.FullPath()),
		zap.String("request_id", RequestID(c)),
		zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{
		Code:    "internal_error",
		Message: "internal server error",
	})
}

// invalidBody wraps a JSON binding failure in the validation taxonomy
func invalidBody(err error) error {
	return apperror.Validation("body", "invalid request body: "+err.Error())
}

// pagingParams reads page and limit query parameters; the service layer
// clamps out-of-range values
func pagingParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

func statusFor(err *apperror.AppError) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperror.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication_required"
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperror.ErrAlreadyExists):
		return http.StatusConflict, "already_exists"
	case errors.Is(err, apperror.ErrInvalidOperation):
		return http.StatusConflict, "invalid_operation"
	}
	return http.StatusInternalServerError, "internal_error"
}
